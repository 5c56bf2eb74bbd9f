package smf

import "go-smf/timebasis"

// Sequence is the top-level decoded form of a Standard MIDI File. On read,
// a format-0 file is normalized into this format-1 shape: meta events
// (name, tempo, time/key signature, track-end) are routed into Conductor,
// everything else forms a single content track. Format-1 input keeps
// track 0 as Conductor by SMF convention and the remaining MTrk chunks as
// content tracks.
type Sequence struct {
	Basis     timebasis.TimeBasis
	Conductor Track
	Tracks    []Track
}

// Format reports the SMF format word Write emits: always 1. A Sequence
// is always held in the normalized conductor-plus-content-tracks shape
// internally (§3), so the file it writes is always format 1 regardless
// of whether the source file was format 0 or 1 (§6).
func (s *Sequence) Format() int {
	return 1
}

// TrackCount returns the number of tracks read(output) would carry:
// the conductor plus every content track.
func (s *Sequence) TrackCount() int {
	return 1 + len(s.Tracks)
}

// TrackNames returns the SeqName text of the conductor track followed by
// each content track's, using "" for tracks with no name event.
func (s *Sequence) TrackNames() []string {
	all := append([]Track{s.Conductor}, s.Tracks...)
	names := make([]string, len(all))
	for i, tr := range all {
		for _, e := range tr.Events {
			if e.Tag == SeqName {
				names[i] = string(e.Data)
				break
			}
		}
	}
	return names
}

// BPM derives the tempo from the conductor track's first set-tempo event
// as 60,000,000 divided by its microseconds-per-quarter value in integer
// arithmetic, so the result is a whole number of beats per minute.
// Returns (0, false) if there is none.
func (s *Sequence) BPM() (float64, bool) {
	for _, e := range s.Conductor.Events {
		if e.Tag == SetTempo {
			if e.MicrosecondsPerQuarter == 0 {
				return 0, false
			}
			return float64(60_000_000 / e.MicrosecondsPerQuarter), true
		}
	}
	return 0, false
}

// SetBPM returns a copy of s with the conductor track's first set-tempo
// event rewritten to reflect bpm, leaving s itself untouched (the same
// copy-on-write discipline WithTrack follows). If the conductor has no
// tempo event, this is a documented no-op: it returns ErrNoConductorTempo
// as a diagnostic rather than silently inserting one, per spec §7's
// warning-as-diagnostic policy.
func (s *Sequence) SetBPM(bpm float64) (*Sequence, error) {
	for i, e := range s.Conductor.Events {
		if e.Tag == SetTempo {
			micros := uint32(60_000_000.0 / bpm)
			events := append([]Event(nil), s.Conductor.Events...)
			events[i] = NewSetTempo(e.Delta, micros)
			conductor := Track{Events: events}
			return s.WithTrack(0, conductor)
		}
	}
	return nil, ErrNoConductorTempo
}

// Track returns the conductor (index 0) or a 1-based content track,
// failing with ErrTrackOutOfRange otherwise. It is the shared bounds
// check used by the filter and note packages.
func (s *Sequence) Track(index int) (Track, error) {
	if index == 0 {
		return s.Conductor, nil
	}
	if index-1 < 0 || index-1 >= len(s.Tracks) {
		return Track{}, ErrTrackOutOfRange
	}
	return s.Tracks[index-1], nil
}

// WithTrack returns a copy of s with track `index` replaced by t. Like
// every editor in this module, it never mutates the receiver.
func (s *Sequence) WithTrack(index int, t Track) (*Sequence, error) {
	if index < 0 || index > len(s.Tracks) {
		return nil, ErrTrackOutOfRange
	}
	out := &Sequence{Basis: s.Basis, Conductor: s.Conductor, Tracks: append([]Track(nil), s.Tracks...)}
	if index == 0 {
		out.Conductor = t
		return out, nil
	}
	out.Tracks[index-1] = t
	return out, nil
}
