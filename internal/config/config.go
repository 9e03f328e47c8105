// Package config defines the desktop-rpa configuration file format and its
// defaults. Timing values and matching thresholds are deliberately
// configuration, not constants: they are tuning policy, not invariants.
package config

import (
	"os"
	"path/filepath"
)

// Config is the complete desktop-rpa configuration.
type Config struct {
	Settings Settings `yaml:"settings"`
	Hotkeys  Hotkeys  `yaml:"hotkeys"`
	Replay   Replay   `yaml:"replay"`
	Capture  Capture  `yaml:"capture"`
}

// Settings contains global settings.
type Settings struct {
	// DataDir holds the session database and snapshot files.
	// Empty means ~/.desktop-rpa.
	DataDir  string `yaml:"data_dir,omitempty"`
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file,omitempty"`
}

// Hotkeys binds the four control signals to global key combos.
type Hotkeys struct {
	ToggleTrain string `yaml:"toggle_train"`
	Run         string `yaml:"run"`
	TogglePause string `yaml:"toggle_pause"`
	Stop        string `yaml:"stop"`
}

// Replay controls playback pacing.
type Replay struct {
	SettleDelayMs    int `yaml:"settle_delay_ms"`    // wait after each executed step
	PausePollMs      int `yaml:"pause_poll_ms"`      // pause-flag polling interval
	PostClickDelayMs int `yaml:"post_click_delay_ms"` // wait after an injected click
	KeystrokeDelayMs int `yaml:"keystroke_delay_ms"` // delay between injected keystrokes
}

// Capture controls recording and OCR behavior.
type Capture struct {
	Display            int     `yaml:"display"`              // display index to capture
	SnapshotScale      float64 `yaml:"snapshot_scale"`       // downscale factor for stored snapshots
	SnapshotMaxAgeDays int     `yaml:"snapshot_max_age_days"` // 0 disables cleanup
	OCRConfidenceFloor float64 `yaml:"ocr_confidence_floor"` // discard OCR boxes below this
	TesseractPath      string  `yaml:"tesseract_path,omitempty"`
	TesseractLangs     string  `yaml:"tesseract_langs,omitempty"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Settings: Settings{
			LogLevel: "info",
		},
		Hotkeys: Hotkeys{
			ToggleTrain: "ctrl+alt+t",
			Run:         "ctrl+alt+r",
			TogglePause: "ctrl+alt+p",
			Stop:        "ctrl+alt+s",
		},
		Replay: Replay{
			SettleDelayMs:    600,
			PausePollMs:      200,
			PostClickDelayMs: 250,
			KeystrokeDelayMs: 50,
		},
		Capture: Capture{
			Display:            0,
			SnapshotScale:      0.5,
			SnapshotMaxAgeDays: 30,
			OCRConfidenceFloor: 40,
			TesseractLangs:     "eng",
		},
	}
}

// DataDir resolves the configured data directory, defaulting to
// ~/.desktop-rpa when unset.
func (c *Config) DataDir() (string, error) {
	if c.Settings.DataDir != "" {
		return c.Settings.DataDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".desktop-rpa"), nil
}

// DBPath returns the session database path under the data directory.
func (c *Config) DBPath() (string, error) {
	dir, err := c.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "memory.sqlite3"), nil
}

// SnapsDir returns the snapshot directory under the data directory.
func (c *Config) SnapsDir() (string, error) {
	dir, err := c.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "snaps"), nil
}
