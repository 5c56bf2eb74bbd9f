// Command smf is a CLI front end over go-smf: read, inspect, edit, play,
// and browse Standard MIDI Files.
package main

import (
	"fmt"
	"os"

	"go-smf/debug"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	if os.Getenv("SMF_DEBUG") != "" {
		if err := debug.Enable(); err != nil {
			fmt.Fprintf(os.Stderr, "smf: could not enable debug logging: %v\n", err)
		}
		defer debug.Disable()
	}

	var err error
	switch os.Args[1] {
	case "dump":
		err = runDump(os.Args[2:])
	case "filter":
		err = runFilter(os.Args[2:])
	case "shift":
		err = runShift(os.Args[2:])
	case "velocity":
		err = runVelocity(os.Args[2:])
	case "sonorities":
		err = runSonorities(os.Args[2:])
	case "play":
		err = runPlay(os.Args[2:])
	case "browse":
		err = runBrowse(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "smf: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("smf - Standard MIDI File toolkit")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  dump       <file>                          - print sequence summary")
	fmt.Println("  filter     <in> <out> <track> <kind>        - drop one event kind from a track")
	fmt.Println("  shift      <in> <out> <track> <semitones>    - transpose every note in a track")
	fmt.Println("  velocity   <in> <out> <track> <velocity>     - set every note-on velocity in a track")
	fmt.Println("  sonorities <file> <track> [tolerance]        - print the track's rest/note/chord sequence")
	fmt.Println("  play       <file> [track]                    - play one track live (default track 1)")
	fmt.Println("  browse     <file>                            - interactive terminal browser")
}
