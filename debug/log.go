// Package debug provides opt-in file logging for cmd/smf's own
// diagnostics: the recoveries the reader makes for bytes it doesn't
// recognize, and the per-event failures a live playback can hit mid-
// stream. The core codec and transform packages never import this
// package; per spec, the core never logs or prints in normal operation,
// it only returns UnknownStatus/UnknownMeta events for the caller to
// inspect.
package debug

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	file    *os.File
	mu      sync.Mutex
	enabled bool
)

// logDir is ~/.config/go-smf, matching config.ConfigDir's layout.
func logDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-smf"), nil
}

// Enable starts debug logging to ~/.config/go-smf/debug.log, truncating
// any previous run's log.
func Enable() error {
	mu.Lock()
	defer mu.Unlock()

	if enabled {
		return nil
	}

	dir, err := logDir()
	if err != nil {
		return fmt.Errorf("debug: locate log directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("debug: create log directory: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(dir, "debug.log"), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("debug: open log file: %w", err)
	}

	file = f
	enabled = true
	writeLine("session", "=== Debug logging started ===")
	return nil
}

// Disable stops debug logging and closes the log file.
func Disable() {
	mu.Lock()
	defer mu.Unlock()

	if file != nil {
		file.Close()
		file = nil
	}
	enabled = false
}

// writeLine writes one timestamped log line. Callers must hold mu.
func writeLine(category, msg string) {
	if !enabled || file == nil {
		return
	}
	ts := time.Now().Format("15:04:05.000")
	fmt.Fprintf(file, "[%s] %-14s %s\n", ts, category, msg)
	file.Sync()
}

// UnknownStatus logs a status byte the reader could not classify as any
// known channel-voice or system message, recovered as an UnknownStatus
// event rather than aborting the file (spec §7).
func UnknownStatus(trackIndex int, statusByte byte) {
	mu.Lock()
	defer mu.Unlock()
	writeLine("unknown_status", fmt.Sprintf("track %d: status byte 0x%02X", trackIndex, statusByte))
}

// UnknownMeta logs a meta event type code the reader did not recognize,
// recovered as an UnknownMeta event carrying the raw payload.
func UnknownMeta(trackIndex int, metaType byte, payloadLen int) {
	mu.Lock()
	defer mu.Unlock()
	writeLine("unknown_meta", fmt.Sprintf("track %d: meta type 0x%02X, %d byte payload", trackIndex, metaType, payloadLen))
}

// PlaySendFailed logs a MIDI output send failure during cmd/smf play,
// throttled to once every n occurrences of the same event kind so a
// disconnected port doesn't flood the log one line per tick.
func PlaySendFailed(n int, eventKind string, err error) {
	mu.Lock()
	defer mu.Unlock()

	key := "send:" + eventKind
	counters[key]++
	count := counters[key]
	if count%n != 0 {
		return
	}
	writeLine("play_send", fmt.Sprintf("%s failed (occurrence %d): %v", eventKind, count, err))
}

var counters = make(map[string]int)
