package notes

import (
	"testing"

	"go-smf/smf"
)

func TestPairNotesBasic(t *testing.T) {
	on, _ := smf.NewNoteOn(0, 0, 60, 100)
	off, _ := smf.NewNoteOff(50, 0, 60, 64)
	events := []smf.Event{on, off}

	notes := PairNotes(events)
	if len(notes) != 1 {
		t.Fatalf("got %d notes, want 1", len(notes))
	}
	n := notes[0]
	if n.Key != 60 || n.StartTick != 0 || n.EndTick != 50 || n.OnVelocity != 100 {
		t.Errorf("unexpected note: %+v", n)
	}
}

func TestPairNotesVelocityZeroIsNoteOff(t *testing.T) {
	on, _ := smf.NewNoteOn(0, 0, 60, 100)
	onZero, _ := smf.NewNoteOn(30, 0, 60, 0) // equivalent to a note-off
	events := []smf.Event{on, onZero}

	notes := PairNotes(events)
	if len(notes) != 1 || notes[0].EndTick != 30 {
		t.Fatalf("velocity-0 note-on did not close the pair: %+v", notes)
	}
}

func TestPairNotesUnmatchedOffDiscarded(t *testing.T) {
	off, _ := smf.NewNoteOff(10, 0, 60, 64)
	notes := PairNotes([]smf.Event{off})
	if len(notes) != 0 {
		t.Fatalf("unmatched note-off should be discarded, got %+v", notes)
	}
}

func TestPairNotesUnmatchedOnClosedAtStreamEnd(t *testing.T) {
	on, _ := smf.NewNoteOn(0, 0, 60, 100)
	other, _ := smf.NewController(40, 0, 7, 100)
	notes := PairNotes([]smf.Event{on, other})
	if len(notes) != 1 || notes[0].EndTick != 40 {
		t.Fatalf("unmatched note-on should close at stream end, got %+v", notes)
	}
}

func TestPairNotesEmptyStreamSentinel(t *testing.T) {
	if notes := PairNotes(nil); len(notes) != 0 {
		t.Fatalf("empty stream should yield no notes, got %+v", notes)
	}
}

// TestProcessNotesRemoveS5 is scenario S5: removing C4 from a two-note
// chord leaves E4 alone, its note-off delta absorbing C4's drop-deltas.
func TestProcessNotesRemoveS5(t *testing.T) {
	onC, _ := smf.NewNoteOn(0, 0, 60, 100)
	onE, _ := smf.NewNoteOn(0, 0, 64, 100)
	offC, _ := smf.NewNoteOff(100, 0, 60, 64)
	offE, _ := smf.NewNoteOff(100, 0, 64, 64)
	track := smf.Track{Events: []smf.Event{onC, onE, offC, offE}}
	seq := &smf.Sequence{Tracks: []smf.Track{track}}

	out, err := ProcessNotes(seq, 1, func(n Note) bool { return n.Key == 60 }, Remove())
	if err != nil {
		t.Fatalf("ProcessNotes: %v", err)
	}

	got := out.Tracks[0].Events
	if len(got) != 2 {
		t.Fatalf("got %d events, want 2: %+v", len(got), got)
	}
	if got[0].Tag != smf.NoteOn || got[0].Data1 != 64 || got[0].Delta != 0 {
		t.Errorf("unexpected survivor note-on: %+v", got[0])
	}
	if got[1].Tag != smf.NoteOff || got[1].Data1 != 64 || got[1].Delta != 200 {
		t.Errorf("unexpected survivor note-off: %+v", got[1])
	}
}

// TestProcessNotesShiftPitchClampS6 is scenario S6: shifting key 120 by
// +20 clamps to 127 on both the note-on and the note-off.
func TestProcessNotesShiftPitchClampS6(t *testing.T) {
	on, _ := smf.NewNoteOn(0, 0, 120, 100)
	off, _ := smf.NewNoteOff(10, 0, 120, 64)
	track := smf.Track{Events: []smf.Event{on, off}}
	seq := &smf.Sequence{Tracks: []smf.Track{track}}

	out, err := ProcessNotes(seq, 1, func(Note) bool { return true }, ShiftPitch(20))
	if err != nil {
		t.Fatalf("ProcessNotes: %v", err)
	}

	got := out.Tracks[0].Events
	if got[0].Data1 != 127 || got[1].Data1 != 127 {
		t.Errorf("expected clamped key 127 on both events, got %+v", got)
	}
}

func TestProcessNotesSetVelocity(t *testing.T) {
	on, _ := smf.NewNoteOn(0, 0, 60, 50)
	off, _ := smf.NewNoteOff(10, 0, 60, 64)
	track := smf.Track{Events: []smf.Event{on, off}}
	seq := &smf.Sequence{Tracks: []smf.Track{track}}

	out, err := ProcessNotes(seq, 1, func(Note) bool { return true }, SetVelocity(200))
	if err != nil {
		t.Fatalf("ProcessNotes: %v", err)
	}
	got := out.Tracks[0].Events
	if got[0].Data2 != 127 {
		t.Errorf("note-on velocity = %d, want clamped 127", got[0].Data2)
	}
	if got[1].Data2 != 64 {
		t.Errorf("note-off velocity must be left unchanged, got %d", got[1].Data2)
	}
}

func TestProcessNotesTrackOutOfRange(t *testing.T) {
	seq := &smf.Sequence{}
	if _, err := ProcessNotes(seq, 5, func(Note) bool { return true }, Remove()); err != smf.ErrTrackOutOfRange {
		t.Errorf("error = %v, want ErrTrackOutOfRange", err)
	}
}

func buildTriadTrack() smf.Track {
	on60, _ := smf.NewNoteOn(0, 0, 60, 100)
	on64, _ := smf.NewNoteOn(5, 0, 64, 100)
	on67, _ := smf.NewNoteOn(5, 0, 67, 100)
	off60, _ := smf.NewNoteOff(90, 0, 60, 64)
	off64, _ := smf.NewNoteOff(0, 0, 64, 64)
	off67, _ := smf.NewNoteOff(0, 0, 67, 64)
	return smf.Track{Events: []smf.Event{on60, on64, on67, off60, off64, off67}}
}

// TestTrackToSonoritiesChordToleranceS7 is scenario S7's first half: with
// generous tolerance the three staggered onsets collapse into a single
// 100-tick chord.
func TestTrackToSonoritiesChordToleranceS7(t *testing.T) {
	track := buildTriadTrack()
	sonorities := TrackToSonorities(track, Options{ChordTolerance: 10, PPQN: 480})

	if len(sonorities) != 1 {
		t.Fatalf("got %d sonorities, want 1: %+v", len(sonorities), sonorities)
	}
	s := sonorities[0]
	if s.Kind != Chord || len(s.Notes) != 3 {
		t.Fatalf("expected a 3-note chord, got %+v", s)
	}
	if s.DurationTicks != 100 {
		t.Errorf("duration = %d ticks, want 100", s.DurationTicks)
	}
	beats, ok := s.DurationBeats()
	if !ok || beats != 100.0/480.0 {
		t.Errorf("DurationBeats = %v, %v, want %v, true", beats, ok, 100.0/480.0)
	}
}

// TestTrackToSonoritiesNoToleranceS7 is scenario S7's second half: with no
// tolerance the staggered onsets produce a mix of Note and Chord segments.
func TestTrackToSonoritiesNoToleranceS7(t *testing.T) {
	track := buildTriadTrack()
	sonorities := TrackToSonorities(track, Options{ChordTolerance: 0, PPQN: 480})

	if len(sonorities) < 2 {
		t.Fatalf("got %d sonorities, want at least 2: %+v", len(sonorities), sonorities)
	}
	var sawNote, sawChord bool
	for _, s := range sonorities {
		switch s.Kind {
		case SingleNote:
			sawNote = true
		case Chord:
			sawChord = true
		}
	}
	if !sawNote || !sawChord {
		t.Errorf("expected a mix of Note and Chord sonorities, got %+v", sonorities)
	}
}

func TestTrackToSonoritiesRest(t *testing.T) {
	on, _ := smf.NewNoteOn(10, 0, 60, 100)
	off, _ := smf.NewNoteOff(20, 0, 60, 64)
	on2, _ := smf.NewNoteOn(30, 0, 64, 100)
	off2, _ := smf.NewNoteOff(10, 0, 64, 64)
	track := smf.Track{Events: []smf.Event{on, off, on2, off2}}

	sonorities := TrackToSonorities(track, Options{})
	if len(sonorities) != 3 {
		t.Fatalf("got %d sonorities, want 3 (note, rest, note): %+v", len(sonorities), sonorities)
	}
	if sonorities[0].Kind != SingleNote || sonorities[1].Kind != Rest || sonorities[2].Kind != SingleNote {
		t.Errorf("unexpected sonority sequence: %+v", sonorities)
	}
}

func TestTrackToSonoritiesTrackOutOfRange(t *testing.T) {
	seq := &smf.Sequence{}
	if _, err := SequenceToSonorities(seq, 5, Options{}); err != smf.ErrTrackOutOfRange {
		t.Errorf("error = %v, want ErrTrackOutOfRange", err)
	}
}
