package smf

// Track is an ordered sequence of events terminated by exactly one
// track-end event. Delta-times are non-negative; their sum is the
// track's total tick duration.
type Track struct {
	Events []Event
}

// SumDelta returns the track's total tick duration.
func (t Track) SumDelta() uint64 {
	return SumDelta(t.Events)
}

// AbsoluteTimes returns the absolute tick of each event in the track.
func (t Track) AbsoluteTimes() []uint64 {
	return AbsoluteTimes(t.Events)
}

// TrackEndIndex returns the index of the track's track-end event, and
// whether one was found. A well-formed track always has exactly one, as
// its last event.
func (t Track) TrackEndIndex() (int, bool) {
	for i, e := range t.Events {
		if e.Tag == TrackEnd {
			return i, true
		}
	}
	return 0, false
}

// withTrackEnd returns t with a synthetic track-end appended if one is
// not already present.
func (t Track) withTrackEnd() Track {
	if _, ok := t.TrackEndIndex(); ok {
		return t
	}
	events := make([]Event, len(t.Events), len(t.Events)+1)
	copy(events, t.Events)
	events = append(events, NewTrackEnd(0))
	return Track{Events: events}
}
