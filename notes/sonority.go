package notes

import (
	"sort"

	"go-smf/smf"
)

// SonorityKind classifies a reconstructed time segment.
type SonorityKind int

const (
	// Rest is a segment with no sounding notes.
	Rest SonorityKind = iota
	// SingleNote is a segment with exactly one sounding note.
	SingleNote
	// Chord is a segment with two or more simultaneously sounding notes.
	Chord
)

// Sonority is one segment of a track_to_sonorities reconstruction:
// a rest, a single note, or a chord, each with a duration. Notes is empty
// for Rest, length 1 for SingleNote, length >= 2 for Chord.
type Sonority struct {
	Kind          SonorityKind
	Notes         []Note
	StartTick     uint64
	DurationTicks uint64
	ppqn          uint16 // 0 if the caller supplied none
}

// DurationBeats returns the segment's duration in beats (DurationTicks /
// ppqn) and true, if Options.PPQN was supplied to TrackToSonorities;
// otherwise it returns (0, false) and the caller should use DurationTicks.
func (s Sonority) DurationBeats() (float64, bool) {
	if s.ppqn == 0 {
		return 0, false
	}
	return float64(s.DurationTicks) / float64(s.ppqn), true
}

// Options configures TrackToSonorities.
type Options struct {
	// ChordTolerance is the maximum tick gap between note starts for them
	// to be treated as the same onset when segmenting (spec §4.5
	// Transform B).
	ChordTolerance uint64
	// PPQN, if non-zero, causes Sonority.DurationBeats to report a beat
	// value; durations are always available in ticks regardless.
	PPQN uint16
}

// TrackToSonorities reconstructs a chronological sequence of sonorities
// from track's note-on/note-off events: the pairing pass recovers notes,
// then the track's distinct start/end ticks are used as segment
// boundaries. A boundary pair with no note covering it is a Rest, exactly
// one a SingleNote, and two or more a Chord. Adjacent segments of the same
// kind covered by the same notes are merged into one sonority whose
// duration is their sum. Zero-length segments (two boundaries with no tick
// gap between them) are skipped.
func TrackToSonorities(track smf.Track, opts Options) []Sonority {
	notes := PairNotes(track.Events)
	if len(notes) == 0 {
		return nil
	}

	boundarySet := make(map[uint64]bool, len(notes)*2)
	for _, n := range notes {
		boundarySet[n.StartTick] = true
		boundarySet[n.EndTick] = true
	}
	boundaries := make([]uint64, 0, len(boundarySet))
	for t := range boundarySet {
		boundaries = append(boundaries, t)
	}
	sort.Slice(boundaries, func(i, j int) bool { return boundaries[i] < boundaries[j] })

	var out []Sonority
	for i := 0; i+1 < len(boundaries); i++ {
		start, end := boundaries[i], boundaries[i+1]
		if start == end {
			continue
		}

		var covering []Note
		for _, n := range notes {
			if n.StartTick <= start+opts.ChordTolerance && n.EndTick >= end {
				covering = append(covering, n)
			}
		}

		s := Sonority{StartTick: start, DurationTicks: end - start, ppqn: opts.PPQN}
		switch len(covering) {
		case 0:
			s.Kind = Rest
		case 1:
			s.Kind = SingleNote
			s.Notes = covering
		default:
			s.Kind = Chord
			s.Notes = covering
		}

		if n := len(out); n > 0 && out[n-1].Kind == s.Kind && notesEqual(out[n-1].Notes, s.Notes) {
			out[n-1].DurationTicks += s.DurationTicks
			continue
		}
		out = append(out, s)
	}

	return out
}

// notesEqual reports whether a and b name the same covering notes, in the
// same order — true when two adjacent segments were produced by an
// identical set of sounding notes and so represent one musical event split
// only by an intervening, tolerance-absorbed onset or release.
func notesEqual(a, b []Note) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// SequenceToSonorities validates trackIndex against seq before delegating
// to TrackToSonorities, for callers that have a *smf.Sequence rather than
// an already-extracted Track. Fails with smf.ErrTrackOutOfRange if
// trackIndex is out of bounds.
func SequenceToSonorities(seq *smf.Sequence, trackIndex int, opts Options) ([]Sonority, error) {
	track, err := seq.Track(trackIndex)
	if err != nil {
		return nil, err
	}
	return TrackToSonorities(track, opts), nil
}
