// Package filter implements C4, the timing-preserving event filter: drop
// events matching a predicate while conserving the sum of delta-times (and
// every surviving event's absolute time) in the track.
package filter

import "go-smf/smf"

// PreserveDeltaTimes keeps every event in events for which keep returns
// true, in original order, folding each dropped event's delta-time into
// the next kept event. The track's total duration survives as long as
// keep is true for the last event; the deltas of dropped events after the
// last kept event are discarded (§4.4).
func PreserveDeltaTimes(events []smf.Event, keep func(smf.Event) bool) []smf.Event {
	return smf.PreserveDeltaTimes(events, keep)
}

// FilterEvents drops every event in seq's track whose Tag equals kind,
// returning a new Sequence with that track replaced. Track 0 is the
// conductor; 1..N are content tracks. Fails with smf.ErrTrackOutOfRange
// if trackIndex is out of bounds.
func FilterEvents(seq *smf.Sequence, trackIndex int, kind smf.Tag) (*smf.Sequence, error) {
	return FilterPredicate(seq, trackIndex, func(e smf.Event) bool { return e.Tag != kind })
}

// FilterPredicate is the general form of FilterEvents: it keeps events for
// which keep returns true.
func FilterPredicate(seq *smf.Sequence, trackIndex int, keep func(smf.Event) bool) (*smf.Sequence, error) {
	track, err := seq.Track(trackIndex)
	if err != nil {
		return nil, err
	}

	filtered := smf.Track{Events: PreserveDeltaTimes(track.Events, keep)}
	return seq.WithTrack(trackIndex, filtered)
}

// RemoveChannel drops every channel-voice event on the given MIDI channel
// from seq's track, a common convenience over FilterPredicate grounded on
// the "strip a channel lane" operation seen in comparable SMF tooling.
func RemoveChannel(seq *smf.Sequence, trackIndex int, channel uint8) (*smf.Sequence, error) {
	return FilterPredicate(seq, trackIndex, func(e smf.Event) bool {
		return !(e.Tag.IsChannelVoice() && e.Channel == channel)
	})
}

// RemoveControllers drops every Controller event in seq's track whose
// controller number (Data1) is one of ccs.
func RemoveControllers(seq *smf.Sequence, trackIndex int, ccs ...uint8) (*smf.Sequence, error) {
	drop := make(map[uint8]bool, len(ccs))
	for _, cc := range ccs {
		drop[cc] = true
	}
	return FilterPredicate(seq, trackIndex, func(e smf.Event) bool {
		return !(e.Tag == smf.Controller && drop[e.Data1])
	})
}
