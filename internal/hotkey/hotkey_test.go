package hotkey

import (
	"testing"

	"github.com/mj1618/desktop-rpa/internal/platform"
)

func keyDown(key string, r rune) platform.InputEvent {
	return platform.InputEvent{Kind: platform.KeyDown, Key: key, Rune: r}
}

func keyUp(key string, r rune) platform.InputEvent {
	return platform.InputEvent{Kind: platform.KeyUp, Key: key, Rune: r}
}

func TestManager_ComboFires(t *testing.T) {
	m := NewManager()
	fired := 0
	if err := m.Register("ctrl+alt+t", func() { fired++ }); err != nil {
		t.Fatal(err)
	}

	m.Handle(keyDown("ctrl", 0))
	m.Handle(keyDown("alt", 0))
	if fired != 0 {
		t.Fatal("combo must not fire before the last key")
	}
	m.Handle(keyDown("t", 't'))
	if fired != 1 {
		t.Errorf("fired = %d, want 1", fired)
	}
}

func TestManager_KeyRepeatDoesNotRetrigger(t *testing.T) {
	m := NewManager()
	fired := 0
	if err := m.Register("ctrl+alt+t", func() { fired++ }); err != nil {
		t.Fatal(err)
	}

	m.Handle(keyDown("ctrl", 0))
	m.Handle(keyDown("alt", 0))
	m.Handle(keyDown("t", 't'))
	// OS key repeat while the combo stays held.
	m.Handle(keyDown("t", 't'))
	m.Handle(keyDown("t", 't'))

	if fired != 1 {
		t.Errorf("fired = %d, want 1 (repeat must not retrigger)", fired)
	}
}

func TestManager_ReleaseRearmsCombo(t *testing.T) {
	m := NewManager()
	fired := 0
	if err := m.Register("ctrl+alt+t", func() { fired++ }); err != nil {
		t.Fatal(err)
	}

	press := func() {
		m.Handle(keyDown("ctrl", 0))
		m.Handle(keyDown("alt", 0))
		m.Handle(keyDown("t", 't'))
	}
	release := func() {
		m.Handle(keyUp("t", 't'))
		m.Handle(keyUp("alt", 0))
		m.Handle(keyUp("ctrl", 0))
	}

	press()
	release()
	press()

	if fired != 2 {
		t.Errorf("fired = %d, want 2", fired)
	}
}

func TestManager_PartialComboDoesNotFire(t *testing.T) {
	m := NewManager()
	fired := 0
	if err := m.Register("ctrl+alt+t", func() { fired++ }); err != nil {
		t.Fatal(err)
	}

	m.Handle(keyDown("ctrl", 0))
	m.Handle(keyDown("t", 't'))

	if fired != 0 {
		t.Errorf("fired = %d, want 0 (alt missing)", fired)
	}
}

func TestManager_ComboIsCaseInsensitive(t *testing.T) {
	m := NewManager()
	fired := 0
	if err := m.Register("Ctrl+Alt+T", func() { fired++ }); err != nil {
		t.Fatal(err)
	}

	m.Handle(keyDown("ctrl", 0))
	m.Handle(keyDown("alt", 0))
	m.Handle(keyDown("", 'T'))

	if fired != 1 {
		t.Errorf("fired = %d, want 1", fired)
	}
}

func TestManager_MultipleBindings(t *testing.T) {
	m := NewManager()
	var trainFired, runFired int
	if err := m.Register("ctrl+alt+t", func() { trainFired++ }); err != nil {
		t.Fatal(err)
	}
	if err := m.Register("ctrl+alt+r", func() { runFired++ }); err != nil {
		t.Fatal(err)
	}

	m.Handle(keyDown("ctrl", 0))
	m.Handle(keyDown("alt", 0))
	m.Handle(keyDown("r", 'r'))

	if trainFired != 0 || runFired != 1 {
		t.Errorf("trainFired = %d, runFired = %d", trainFired, runFired)
	}
}

func TestManager_MouseEventsIgnored(t *testing.T) {
	m := NewManager()
	fired := 0
	if err := m.Register("ctrl+alt+t", func() { fired++ }); err != nil {
		t.Fatal(err)
	}

	m.Handle(platform.InputEvent{Kind: platform.MouseDown, X: 1, Y: 2})
	m.Handle(platform.InputEvent{Kind: platform.MouseUp, X: 1, Y: 2})

	if fired != 0 {
		t.Errorf("fired = %d, want 0", fired)
	}
}

func TestManager_RegisterRejectsBadCombos(t *testing.T) {
	m := NewManager()
	for _, combo := range []string{"", "  ", "ctrl++t", "+t"} {
		if err := m.Register(combo, func() {}); err == nil {
			t.Errorf("Register(%q) should fail", combo)
		}
	}
}
