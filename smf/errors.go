package smf

import "errors"

// Sentinel errors for the reader and writer, per the error taxonomy in
// spec §7. Wrap these with fmt.Errorf("...: %w", err) for context; callers
// branch on kind with errors.Is.
var (
	// ErrBadCookie is returned when no MThd chunk (or a required MTrk
	// chunk) can be found in the byte stream.
	ErrBadCookie = errors.New("smf: chunk cookie not found")

	// ErrTruncatedChunk is returned when a chunk's declared length
	// exceeds the bytes remaining in the stream.
	ErrTruncatedChunk = errors.New("smf: chunk length exceeds available bytes")

	// ErrTrackOutOfRange is returned by editors given an out-of-bounds
	// track index.
	ErrTrackOutOfRange = errors.New("smf: track index out of range")

	// ErrInvalidVelocity is returned by constructors given a velocity
	// outside 0..127.
	ErrInvalidVelocity = errors.New("smf: velocity out of range 0..127")

	// ErrInvalidKey is returned by constructors given a key number
	// outside 0..127.
	ErrInvalidKey = errors.New("smf: key number out of range 0..127")

	// ErrInvalidChannel is returned by constructors given a channel
	// outside 0..15.
	ErrInvalidChannel = errors.New("smf: channel out of range 0..15")

	// ErrNoConductorTempo is the diagnostic returned by Sequence.SetBPM
	// when the conductor track has no set-tempo event to update.
	ErrNoConductorTempo = errors.New("smf: conductor track has no tempo event")
)
