package notes

import "strconv"

// LetterPitchCodec is an optional collaborator port (spec §6): if a
// caller supplies one, FormatPitch renders a Note's key as a letter name
// and octave instead of a raw MIDI key number. The core package never
// requires one; analytic features degrade to raw numbers in its absence,
// grounded on the teacher's noteToName helper.
type LetterPitchCodec interface {
	// ToLetter renders key (0..127) as a letter name (e.g. "C") and octave.
	ToLetter(key uint8) (letter string, octave int)
	// FromLetter parses a letter name and octave back to a key number,
	// returning false if the pair is out of MIDI range.
	FromLetter(letter string, octave int) (key uint8, ok bool)
}

// FormatPitch renders key using codec if non-nil, otherwise falling back
// to the raw key number.
func FormatPitch(key uint8, codec LetterPitchCodec) string {
	if codec == nil {
		return rawPitch(key)
	}
	letter, octave := codec.ToLetter(key)
	return letter + strconv.Itoa(octave)
}

// ChordDetector is an optional collaborator port: if a caller supplies
// one, DescribeChord names a Chord sonority's root and quality (e.g.
// "C", "major") instead of leaving the caller to enumerate raw keys.
type ChordDetector interface {
	Detect(notes []Note) (root string, quality string, ok bool)
}

// DescribeChord names s's notes using det if non-nil and s is a Chord,
// otherwise returning ("", "", false).
func DescribeChord(s Sonority, det ChordDetector) (root string, quality string, ok bool) {
	if det == nil || s.Kind != Chord {
		return "", "", false
	}
	return det.Detect(s.Notes)
}

func rawPitch(key uint8) string {
	return strconv.Itoa(int(key))
}

var sharpNoteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// DefaultLetterPitchCodec is the concrete LetterPitchCodec cmd/smf wires
// in by default: sharp-spelled letter names with MIDI's usual octave
// numbering (key 60 -> "C4"), the same name/octave math as the teacher's
// noteToName helper.
type DefaultLetterPitchCodec struct{}

func (DefaultLetterPitchCodec) ToLetter(key uint8) (letter string, octave int) {
	return sharpNoteNames[key%12], int(key)/12 - 1
}

func (DefaultLetterPitchCodec) FromLetter(letter string, octave int) (key uint8, ok bool) {
	for i, n := range sharpNoteNames {
		if n != letter {
			continue
		}
		k := (octave+1)*12 + i
		if k < 0 || k > 127 {
			return 0, false
		}
		return uint8(k), true
	}
	return 0, false
}
