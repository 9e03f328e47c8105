package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}

	want := DefaultConfig()
	if cfg.Hotkeys != want.Hotkeys {
		t.Errorf("hotkeys = %+v, want defaults %+v", cfg.Hotkeys, want.Hotkeys)
	}
	if cfg.Replay != want.Replay {
		t.Errorf("replay = %+v, want defaults %+v", cfg.Replay, want.Replay)
	}
	if cfg.Capture != want.Capture {
		t.Errorf("capture = %+v, want defaults %+v", cfg.Capture, want.Capture)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
hotkeys:
  run: ctrl+alt+x
replay:
  settle_delay_ms: 1200
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Hotkeys.Run != "ctrl+alt+x" {
		t.Errorf("run hotkey = %q, want override", cfg.Hotkeys.Run)
	}
	if cfg.Hotkeys.ToggleTrain != "ctrl+alt+t" {
		t.Errorf("toggle_train = %q, want default", cfg.Hotkeys.ToggleTrain)
	}
	if cfg.Replay.SettleDelayMs != 1200 {
		t.Errorf("settle_delay_ms = %d, want 1200", cfg.Replay.SettleDelayMs)
	}
	if cfg.Replay.PausePollMs != 200 {
		t.Errorf("pause_poll_ms = %d, want default 200", cfg.Replay.PausePollMs)
	}
	if cfg.Capture.OCRConfidenceFloor != 40 {
		t.Errorf("ocr_confidence_floor = %v, want default 40", cfg.Capture.OCRConfidenceFloor)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("hotkeys: ["), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("malformed config must fail loudly, not fall back to defaults")
	}
}

func TestDataPaths(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Settings.DataDir = "/tmp/rpa-test"

	db, err := cfg.DBPath()
	if err != nil {
		t.Fatal(err)
	}
	if db != filepath.Join("/tmp/rpa-test", "memory.sqlite3") {
		t.Errorf("db path = %q", db)
	}

	snaps, err := cfg.SnapsDir()
	if err != nil {
		t.Fatal(err)
	}
	if snaps != filepath.Join("/tmp/rpa-test", "snaps") {
		t.Errorf("snaps dir = %q", snaps)
	}
}
