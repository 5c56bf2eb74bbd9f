package smf

// PreserveDeltaTimes implements the core of C4 (spec §4.4): it keeps every
// event for which keep returns true, in order, and folds the delta-time of
// each dropped event into the delta of the next kept event (or discards it
// if no kept event follows). The sum of delta-times over the result equals
// the sum over events, provided keep is true for at least the last event.
//
// This is the shared primitive behind the filter package's public API and
// the reader's format-0 conductor/content-track split.
func PreserveDeltaTimes(events []Event, keep func(Event) bool) []Event {
	return PreserveDeltaTimesIndexed(events, func(_ int, e Event) bool { return keep(e) })
}

// PreserveDeltaTimesIndexed is PreserveDeltaTimes with the predicate also
// given the event's index in events, for callers (the notes package's
// note-removal transform) that must drop specific event occurrences rather
// than every event of a kind.
func PreserveDeltaTimesIndexed(events []Event, keep func(int, Event) bool) []Event {
	out := make([]Event, 0, len(events))
	var carry uint64

	for i, e := range events {
		if !keep(i, e) {
			carry += uint64(e.Delta)
			continue
		}
		kept := e
		kept.Delta = uint32(uint64(e.Delta) + carry)
		out = append(out, kept)
		carry = 0
	}

	return out
}
