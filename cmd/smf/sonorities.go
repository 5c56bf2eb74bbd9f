package main

import (
	"fmt"
	"strconv"

	"go-smf/config"
	"go-smf/notes"
	"go-smf/smf"
)

func runSonorities(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: smf sonorities <file> <track> [chord_tolerance]")
	}
	path, trackArg := args[0], args[1]

	trackIndex, err := strconv.Atoi(trackArg)
	if err != nil {
		return fmt.Errorf("track index: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	tolerance := cfg.Sonorities.ChordTolerance

	if len(args) >= 3 {
		t, err := strconv.ParseUint(args[2], 10, 64)
		if err != nil {
			return fmt.Errorf("chord tolerance: %w", err)
		}
		tolerance = t
	}

	seq, err := smf.ReadFile(path)
	if err != nil {
		return err
	}

	ppqn, _ := seq.Basis.PPQN() // 0 if the file uses an SMPTE time basis
	if cfg.Sonorities.PPQN != 0 {
		ppqn = cfg.Sonorities.PPQN
	}

	sonorities, err := notes.SequenceToSonorities(seq, trackIndex, notes.Options{ChordTolerance: tolerance, PPQN: ppqn})
	if err != nil {
		return err
	}

	for _, s := range sonorities {
		printSonority(s)
	}
	return nil
}

func printSonority(s notes.Sonority) {
	dur := fmt.Sprintf("%d ticks", s.DurationTicks)
	if beats, ok := s.DurationBeats(); ok {
		dur = fmt.Sprintf("%.3f beats", beats)
	}

	switch s.Kind {
	case notes.Rest:
		fmt.Printf("rest       %s\n", dur)
	case notes.SingleNote:
		fmt.Printf("note  %-4s %s\n", notes.FormatPitch(s.Notes[0].Key, notes.DefaultLetterPitchCodec{}), dur)
	case notes.Chord:
		letters := make([]string, len(s.Notes))
		for i, n := range s.Notes {
			letters[i] = notes.FormatPitch(n.Key, notes.DefaultLetterPitchCodec{})
		}
		fmt.Printf("chord %v %s\n", letters, dur)
	}
}
