package main

import (
	"fmt"
	"strconv"

	"go-smf/notes"
	"go-smf/smf"
)

func runShift(args []string) error {
	if len(args) < 4 {
		return fmt.Errorf("usage: smf shift <in> <out> <track> <semitones>")
	}
	in, out, trackArg, semitonesArg := args[0], args[1], args[2], args[3]

	trackIndex, err := strconv.Atoi(trackArg)
	if err != nil {
		return fmt.Errorf("track index: %w", err)
	}
	semitones, err := strconv.Atoi(semitonesArg)
	if err != nil {
		return fmt.Errorf("semitones: %w", err)
	}

	seq, err := smf.ReadFile(in)
	if err != nil {
		return err
	}

	shifted, err := notes.Transpose(seq, trackIndex, int32(semitones))
	if err != nil {
		return err
	}

	return smf.WriteFile(out, shifted)
}

func runVelocity(args []string) error {
	if len(args) < 4 {
		return fmt.Errorf("usage: smf velocity <in> <out> <track> <velocity>")
	}
	in, out, trackArg, velocityArg := args[0], args[1], args[2], args[3]

	trackIndex, err := strconv.Atoi(trackArg)
	if err != nil {
		return fmt.Errorf("track index: %w", err)
	}
	velocity, err := strconv.Atoi(velocityArg)
	if err != nil || velocity < 0 || velocity > 255 {
		return fmt.Errorf("velocity must be 0..255 (clamped to 0..127): %v", err)
	}

	seq, err := smf.ReadFile(in)
	if err != nil {
		return err
	}

	adjusted, err := notes.SetAllVelocity(seq, trackIndex, uint8(velocity))
	if err != nil {
		return err
	}

	return smf.WriteFile(out, adjusted)
}
