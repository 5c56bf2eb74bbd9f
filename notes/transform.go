package notes

import "go-smf/smf"

// OpKind selects which per-note transform an Op applies.
type OpKind int

const (
	// OpRemove deletes both events of every matched note, folding their
	// delta-times into the next surviving event (spec §4.5 Transform A).
	OpRemove OpKind = iota
	// OpShiftPitch adds Semitones to the key of every matched note's
	// note-on and note-off, clamped to 0..127.
	OpShiftPitch
	// OpSetVelocity rewrites the note-on velocity of every matched note,
	// clamped to 0..127. VelocityFunc, if set, takes precedence over the
	// constant Velocity field.
	OpSetVelocity
)

// Op describes one Transform A operation. Build one with Remove,
// ShiftPitch, SetVelocity, or SetVelocityFunc rather than constructing it
// directly.
type Op struct {
	Kind         OpKind
	Semitones    int32
	Velocity     uint8
	VelocityFunc func(Note) uint8
}

// Remove builds an Op that deletes matched notes entirely.
func Remove() Op { return Op{Kind: OpRemove} }

// ShiftPitch builds an Op that transposes matched notes by semitones,
// clamping the result to 0..127.
func ShiftPitch(semitones int32) Op { return Op{Kind: OpShiftPitch, Semitones: semitones} }

// SetVelocity builds an Op that sets every matched note's on-velocity to
// a constant value, clamped to 0..127.
func SetVelocity(velocity uint8) Op { return Op{Kind: OpSetVelocity, Velocity: clampVelocity(velocity)} }

// SetVelocityFunc builds an Op that derives each matched note's
// on-velocity from the note itself (e.g. a velocity curve), clamped to
// 0..127.
func SetVelocityFunc(f func(Note) uint8) Op { return Op{Kind: OpSetVelocity, VelocityFunc: f} }

// ProcessNotes runs the pairing pass over seq's track, selects the notes
// for which predicate returns true, and applies op to the note-on/note-off
// event pairs that produced them. Track 0 is the conductor; it will
// never contain notes, but is a valid, always-empty-result target. Fails
// with smf.ErrTrackOutOfRange if trackIndex is out of bounds.
func ProcessNotes(seq *smf.Sequence, trackIndex int, predicate func(Note) bool, op Op) (*smf.Sequence, error) {
	track, err := seq.Track(trackIndex)
	if err != nil {
		return nil, err
	}

	pairs := pairEvents(track.Events)
	onMatch := make(map[int]Note, len(pairs))
	offMatch := make(map[int]Note, len(pairs))
	for _, p := range pairs {
		if !predicate(p.note) {
			continue
		}
		onMatch[p.onIdx] = p.note
		if p.offIdx >= 0 {
			offMatch[p.offIdx] = p.note
		}
	}

	var outEvents []smf.Event
	switch op.Kind {
	case OpRemove:
		outEvents = smf.PreserveDeltaTimesIndexed(track.Events, func(i int, e smf.Event) bool {
			_, isOn := onMatch[i]
			_, isOff := offMatch[i]
			return !isOn && !isOff
		})

	case OpShiftPitch:
		outEvents = make([]smf.Event, len(track.Events))
		for i, e := range track.Events {
			if _, ok := onMatch[i]; ok {
				e.Data1 = clampKey(int32(e.Data1) + op.Semitones)
			} else if _, ok := offMatch[i]; ok {
				e.Data1 = clampKey(int32(e.Data1) + op.Semitones)
			}
			outEvents[i] = e
		}

	case OpSetVelocity:
		outEvents = make([]smf.Event, len(track.Events))
		for i, e := range track.Events {
			if note, ok := onMatch[i]; ok {
				v := op.Velocity
				if op.VelocityFunc != nil {
					v = clampVelocity(op.VelocityFunc(note))
				}
				e.Data2 = v
			}
			outEvents[i] = e
		}

	default:
		outEvents = track.Events
	}

	return seq.WithTrack(trackIndex, smf.Track{Events: outEvents})
}

// Transpose is ProcessNotes with an always-true predicate: the common
// case of shifting every note in a track by semitones.
func Transpose(seq *smf.Sequence, trackIndex int, semitones int32) (*smf.Sequence, error) {
	return ProcessNotes(seq, trackIndex, func(Note) bool { return true }, ShiftPitch(semitones))
}

// SetAllVelocity is ProcessNotes with an always-true predicate: the
// common case of rewriting every note-on velocity in a track.
func SetAllVelocity(seq *smf.Sequence, trackIndex int, velocity uint8) (*smf.Sequence, error) {
	return ProcessNotes(seq, trackIndex, func(Note) bool { return true }, SetVelocity(velocity))
}
