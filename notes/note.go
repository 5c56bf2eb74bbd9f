// Package notes implements C5: pairing note-on/note-off events into
// logical notes, applying per-note transforms that lower back to events,
// and reconstructing a chronological sequence of sonorities (rest, note,
// chord) from a track.
package notes

import "go-smf/smf"

// Note is the logical entity C5 reconstructs by pairing a note-on with its
// matching note-off. Durations and positions are in ticks.
type Note struct {
	Channel    uint8
	Key        uint8
	StartTick  uint64
	EndTick    uint64
	OnVelocity uint8
}

// Duration returns the note's length in ticks.
func (n Note) Duration() uint64 {
	return n.EndTick - n.StartTick
}

type openKey struct {
	channel, key uint8
}

// pairedEvent records which track indices produced a logical Note.
// OffIdx is -1 for a note-on left open at end-of-stream: it was closed at
// a sentinel time rather than by a matching note-off event.
type pairedEvent struct {
	onIdx, offIdx int
	note          Note
}

// pairEvents is the pairing pass shared by PairNotes, ProcessNotes, and
// TrackToSonorities (spec §4.5): absolute times are prefix-summed deltas;
// a note-on with velocity > 0 opens; a note-off, or a note-on with
// velocity 0, closes the most recently opened note on that
// (channel, key). Unmatched note-offs are discarded silently. A note-on
// that is still open when another note-on opens the same (channel, key)
// is superseded and produces no Note. Note-ons still open at the end are
// closed at the stream's final absolute time (0 if the stream is empty). Matched pairs come out in note-off order; unmatched
// note-ons follow, in the order they were opened.
func pairEvents(events []smf.Event) []pairedEvent {
	abs := smf.AbsoluteTimes(events)

	type pending struct {
		key   openKey
		start uint64
		vel   uint8
		onIdx int
	}

	open := make(map[openKey]*pending)
	var order []*pending
	var pairs []pairedEvent
	var lastAbs uint64

	for i, e := range events {
		t := abs[i]
		if t > lastAbs {
			lastAbs = t
		}

		switch {
		case e.Tag == smf.NoteOn && e.Data2 > 0:
			k := openKey{e.Channel, e.Data1}
			p := &pending{key: k, start: t, vel: e.Data2, onIdx: i}
			open[k] = p
			order = append(order, p)

		case e.Tag == smf.NoteOff || (e.Tag == smf.NoteOn && e.Data2 == 0):
			k := openKey{e.Channel, e.Data1}
			if p, ok := open[k]; ok {
				pairs = append(pairs, pairedEvent{
					onIdx:  p.onIdx,
					offIdx: i,
					note:   Note{Channel: e.Channel, Key: e.Data1, StartTick: p.start, EndTick: t, OnVelocity: p.vel},
				})
				delete(open, k)
			}
		}
	}

	for _, p := range order {
		if open[p.key] != p {
			continue // superseded by a later retrigger of the same (channel, key)
		}
		pairs = append(pairs, pairedEvent{
			onIdx:  p.onIdx,
			offIdx: -1,
			note:   Note{Channel: p.key.channel, Key: p.key.key, StartTick: p.start, EndTick: lastAbs, OnVelocity: p.vel},
		})
		delete(open, p.key)
	}

	return pairs
}

// PairNotes runs the pairing pass and returns the logical notes, in the
// order pairEvents produces them: matched pairs in note-off order, then
// any notes left open at end-of-stream.
func PairNotes(events []smf.Event) []Note {
	pairs := pairEvents(events)
	notes := make([]Note, len(pairs))
	for i, p := range pairs {
		notes[i] = p.note
	}
	return notes
}

func clampKey(v int32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 127 {
		return 127
	}
	return uint8(v)
}

func clampVelocity(v uint8) uint8 {
	if v > 127 {
		return 127
	}
	return v
}
