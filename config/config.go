// Package config stores cmd/smf's persistent preferences: the default
// chord tolerance and tick resolution used by the sonorities subcommand,
// and the preferred MIDI output port for play.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// SonorityDefaults holds the track_to_sonorities options applied when a
// subcommand invocation doesn't override them.
type SonorityDefaults struct {
	ChordTolerance uint64 `json:"chordTolerance"`
	PPQN           uint16 `json:"ppqn,omitempty"`
}

// PlaybackConfig names the preferred MIDI output port for the play
// subcommand.
type PlaybackConfig struct {
	PortName string `json:"portName,omitempty"`
}

// Config is the main configuration structure, persisted as JSON.
type Config struct {
	Sonorities SonorityDefaults `json:"sonorities"`
	Playback   PlaybackConfig   `json:"playback"`
}

// DefaultConfig returns a config with sensible defaults: no chord
// tolerance, no fixed ppqn (sonority durations report in raw ticks until
// a file's division supplies one).
func DefaultConfig() *Config {
	return &Config{
		Sonorities: SonorityDefaults{ChordTolerance: 0},
	}
}

// ConfigDir is ~/.config/go-smf, where config.json and debug.log
// (see the debug package) both live.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-smf"), nil
}

// ConfigPath joins ConfigDir with config.json's filename.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads config.json from ConfigDir. A missing config directory or a
// missing config.json both fall back to DefaultConfig rather than
// erroring: a brand-new install of cmd/smf should work with no setup
// step.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return DefaultConfig(), nil
	case err != nil:
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save JSON-encodes c and writes it to ConfigPath, creating ConfigDir
// first if this is the first save.
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	path := filepath.Join(dir, "config.json")
	return os.WriteFile(path, data, 0644)
}
