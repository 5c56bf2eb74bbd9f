package main

import "golang.org/x/text/unicode/norm"

// displayText normalizes a meta-event text payload (track name, lyric,
// marker) to NFC before it reaches the terminal, the same correctness
// concern the teacher's terminal rendering stack already carries for
// combining characters and width-sensitive glyphs.
func displayText(raw string) string {
	return norm.NFC.String(raw)
}
