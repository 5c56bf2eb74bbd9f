package main

import (
	"fmt"
	"strconv"

	"go-smf/filter"
	"go-smf/smf"
)

var filterKinds = map[string]smf.Tag{
	"note_on":          smf.NoteOn,
	"note_off":         smf.NoteOff,
	"controller":       smf.Controller,
	"program_change":   smf.ProgramChange,
	"pitch_bend":       smf.PitchBend,
	"poly_pressure":    smf.PolyPressure,
	"channel_pressure": smf.ChannelPressure,
}

func runFilter(args []string) error {
	if len(args) < 4 {
		return fmt.Errorf("usage: smf filter <in> <out> <track> <kind>")
	}
	in, out, trackArg, kindArg := args[0], args[1], args[2], args[3]

	trackIndex, err := strconv.Atoi(trackArg)
	if err != nil {
		return fmt.Errorf("track index: %w", err)
	}
	kind, ok := filterKinds[kindArg]
	if !ok {
		return fmt.Errorf("unknown event kind %q", kindArg)
	}

	seq, err := smf.ReadFile(in)
	if err != nil {
		return err
	}

	filtered, err := filter.FilterEvents(seq, trackIndex, kind)
	if err != nil {
		return err
	}

	return smf.WriteFile(out, filtered)
}
