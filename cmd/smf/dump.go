package main

import (
	"fmt"

	"go-smf/debug"
	"go-smf/smf"
)

func runDump(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: smf dump <file>")
	}

	seq, err := smf.ReadFile(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("format: %d\n", seq.Format())
	fmt.Printf("tracks: %d (1 conductor + %d content)\n", seq.TrackCount(), len(seq.Tracks))
	if bpm, ok := seq.BPM(); ok {
		fmt.Printf("tempo: %.2f BPM\n", bpm)
	}

	names := seq.TrackNames()
	for i, tr := range append([]smf.Track{seq.Conductor}, seq.Tracks...) {
		label := displayText(names[i])
		if label == "" {
			label = "(unnamed)"
		}
		fmt.Printf("  track %d %-20s events=%-5d ticks=%d\n", i, label, len(tr.Events), tr.SumDelta())
		logRecoveredEvents(i, tr)
	}

	return nil
}

// logRecoveredEvents records every byte the reader couldn't classify in
// track i, so a look at ~/.config/go-smf/debug.log (with SMF_DEBUG set)
// explains a file that dumped fewer recognized events than expected.
func logRecoveredEvents(i int, tr smf.Track) {
	for _, e := range tr.Events {
		switch e.Tag {
		case smf.UnknownStatus:
			debug.UnknownStatus(i, e.StatusByte)
		case smf.UnknownMeta:
			debug.UnknownMeta(i, e.MetaType, len(e.Data))
		}
	}
}
