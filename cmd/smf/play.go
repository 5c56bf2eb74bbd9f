package main

import (
	"fmt"
	"strconv"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"go-smf/config"
	"go-smf/debug"
	"go-smf/smf"
)

// runPlay streams a track's note-on, note-off, controller and
// program-change events to a MIDI output port in real time (the port named
// in config if available, else the first one), scaling tick durations by
// the sequence's tempo and time basis. Other channel-voice events are
// skipped.
func runPlay(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: smf play <file> [track]")
	}
	path := args[0]

	trackIndex := 1
	if len(args) >= 2 {
		t, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("track index: %w", err)
		}
		trackIndex = t
	}

	seq, err := smf.ReadFile(path)
	if err != nil {
		return err
	}
	track, err := seq.Track(trackIndex)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	outs := midi.GetOutPorts()
	if len(outs) == 0 {
		return fmt.Errorf("no MIDI output ports available")
	}
	outPort := selectOutPort(outs, cfg.Playback.PortName)

	send, err := midi.SendTo(outPort)
	if err != nil {
		return fmt.Errorf("open MIDI output %s: %w", outPort.String(), err)
	}
	fmt.Printf("playing on %s\n", outPort.String())

	secondsPerTick := tickDuration(seq)
	abs := track.AbsoluteTimes()
	var lastTick uint64

	for i, e := range track.Events {
		wait := time.Duration(float64(abs[i]-lastTick) * secondsPerTick * float64(time.Second))
		if wait > 0 {
			time.Sleep(wait)
		}
		lastTick = abs[i]

		var msg midi.Message
		switch e.Tag {
		case smf.NoteOn:
			msg = midi.NoteOn(e.Channel, e.Data1, e.Data2)
		case smf.NoteOff:
			msg = midi.NoteOff(e.Channel, e.Data1)
		case smf.Controller:
			msg = midi.ControlChange(e.Channel, e.Data1, e.Data2)
		case smf.ProgramChange:
			msg = midi.ProgramChange(e.Channel, e.Data1)
		default:
			continue
		}

		if err := send(msg); err != nil {
			debug.PlaySendFailed(20, e.Tag.String(), err)
		}
	}

	return nil
}

// selectOutPort returns the output port named in config, falling back to
// the first available port if the name is unset or not found.
func selectOutPort(outs []drivers.Out, preferredName string) drivers.Out {
	if preferredName != "" {
		for _, p := range outs {
			if p.String() == preferredName {
				return p
			}
		}
	}
	return outs[0]
}

// tickDuration returns seconds per tick for seq's time basis, falling
// back to 120 BPM if the conductor carries no tempo event.
func tickDuration(seq *smf.Sequence) float64 {
	if ppqn, ok := seq.Basis.PPQN(); ok {
		bpm, found := seq.BPM()
		if !found {
			bpm = 120
		}
		return 60.0 / bpm / float64(ppqn)
	}

	fps, _ := seq.Basis.SmpteFps()
	tpf, _ := seq.Basis.SmpteTpf()
	framesPerSecond := float64(-fps)
	return 1.0 / (framesPerSecond * float64(tpf))
}
