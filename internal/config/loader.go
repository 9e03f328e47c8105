package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFileName = "config.yaml"

// DefaultPath returns the default config file location
// (~/.desktop-rpa/config.yaml).
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".desktop-rpa", configFileName), nil
}

// Load reads the config file at path, applying values over the defaults.
// A missing file is not an error: the defaults are returned as-is. Path ""
// means the default location.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var overlay Config
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	merge(cfg, &overlay)
	return cfg, nil
}

// merge copies set values from overlay onto base. Zero values in the overlay
// leave the default in place, so a partial config file is fine.
func merge(base, overlay *Config) {
	base.Settings.DataDir = coalesce(overlay.Settings.DataDir, base.Settings.DataDir)
	base.Settings.LogLevel = coalesce(overlay.Settings.LogLevel, base.Settings.LogLevel)
	base.Settings.LogFile = coalesce(overlay.Settings.LogFile, base.Settings.LogFile)

	base.Hotkeys.ToggleTrain = coalesce(overlay.Hotkeys.ToggleTrain, base.Hotkeys.ToggleTrain)
	base.Hotkeys.Run = coalesce(overlay.Hotkeys.Run, base.Hotkeys.Run)
	base.Hotkeys.TogglePause = coalesce(overlay.Hotkeys.TogglePause, base.Hotkeys.TogglePause)
	base.Hotkeys.Stop = coalesce(overlay.Hotkeys.Stop, base.Hotkeys.Stop)

	if overlay.Replay.SettleDelayMs != 0 {
		base.Replay.SettleDelayMs = overlay.Replay.SettleDelayMs
	}
	if overlay.Replay.PausePollMs != 0 {
		base.Replay.PausePollMs = overlay.Replay.PausePollMs
	}
	if overlay.Replay.PostClickDelayMs != 0 {
		base.Replay.PostClickDelayMs = overlay.Replay.PostClickDelayMs
	}
	if overlay.Replay.KeystrokeDelayMs != 0 {
		base.Replay.KeystrokeDelayMs = overlay.Replay.KeystrokeDelayMs
	}

	if overlay.Capture.Display != 0 {
		base.Capture.Display = overlay.Capture.Display
	}
	if overlay.Capture.SnapshotScale != 0 {
		base.Capture.SnapshotScale = overlay.Capture.SnapshotScale
	}
	if overlay.Capture.SnapshotMaxAgeDays != 0 {
		base.Capture.SnapshotMaxAgeDays = overlay.Capture.SnapshotMaxAgeDays
	}
	if overlay.Capture.OCRConfidenceFloor != 0 {
		base.Capture.OCRConfidenceFloor = overlay.Capture.OCRConfidenceFloor
	}
	base.Capture.TesseractPath = coalesce(overlay.Capture.TesseractPath, base.Capture.TesseractPath)
	base.Capture.TesseractLangs = coalesce(overlay.Capture.TesseractLangs, base.Capture.TesseractLangs)
}

func coalesce(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
