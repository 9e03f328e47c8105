package cmd

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/mj1618/desktop-rpa/internal/config"
	"github.com/mj1618/desktop-rpa/internal/store"
)

func TestStringParam(t *testing.T) {
	params := map[string]interface{}{
		"session": "abc-123",
		"count":   float64(3),
	}
	if got := stringParam(params, "session", ""); got != "abc-123" {
		t.Errorf("got %q", got)
	}
	if got := stringParam(params, "missing", "fallback"); got != "fallback" {
		t.Errorf("got %q", got)
	}
	// JSON numbers arrive as float64; stringify rather than drop.
	if got := stringParam(params, "count", ""); got != "3" {
		t.Errorf("got %q", got)
	}
}

func TestBoolParam(t *testing.T) {
	params := map[string]interface{}{"dry_run": true, "str": "yes"}
	if !boolParam(params, "dry_run", false) {
		t.Error("want true")
	}
	if boolParam(params, "missing", false) {
		t.Error("want default false")
	}
	if !boolParam(params, "missing", true) {
		t.Error("want default true")
	}
	if boolParam(params, "str", false) {
		t.Error("non-bool value should fall back to default")
	}
}

func TestPlayerOptions(t *testing.T) {
	c := config.DefaultConfig()
	c.Replay.SettleDelayMs = 600
	c.Replay.PausePollMs = 200

	opts := playerOptions(c, true)
	if opts.SettleDelay != 600*time.Millisecond {
		t.Errorf("settle = %v", opts.SettleDelay)
	}
	if opts.PausePoll != 200*time.Millisecond {
		t.Errorf("poll = %v", opts.PausePoll)
	}
	if !opts.DryRun {
		t.Error("dry run flag should carry through")
	}
}

func TestSelectSession(t *testing.T) {
	st, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "memory.sqlite3"))
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	if _, err := selectSession(st, ""); err == nil {
		t.Error("empty store should have no latest session")
	}
	if _, err := selectSession(st, "nope"); err == nil {
		t.Error("unknown id should fail")
	}

	first, _ := st.CreateSession("")
	second, _ := st.CreateSession("")

	got, err := selectSession(st, "")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != second.ID {
		t.Errorf("latest = %s, want %s", got.ID, second.ID)
	}

	got, err = selectSession(st, first.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != first.ID {
		t.Errorf("explicit = %s, want %s", got.ID, first.ID)
	}
}
