// Package hotkey matches global key combos ("ctrl+alt+t") against the input
// event stream and fires the bound callbacks. Pure state tracking over
// events, so it is testable without an OS hook.
package hotkey

import (
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/mj1618/desktop-rpa/internal/platform"
)

// Manager tracks currently pressed keys and dispatches combo callbacks.
type Manager struct {
	mu       sync.Mutex
	bindings []*binding
	pressed  map[string]bool
}

type binding struct {
	parts    []string
	original string
	callback func()
}

// NewManager returns an empty Manager.
func NewManager() *Manager {
	return &Manager{pressed: make(map[string]bool)}
}

// Register binds a combo string like "ctrl+alt+t" to a callback. The
// callback runs on the event-loop goroutine when the full combo is pressed.
func (m *Manager) Register(combo string, callback func()) error {
	combo = strings.TrimSpace(combo)
	if combo == "" {
		return fmt.Errorf("empty hotkey combo")
	}

	parts := strings.Split(strings.ToLower(combo), "+")
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return fmt.Errorf("invalid hotkey combo: %q", combo)
		}
		parts[i] = p
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.bindings = append(m.bindings, &binding{parts: parts, original: combo, callback: callback})
	return nil
}

// Handle feeds one input event into the key-state tracker. Mouse events are
// ignored. A combo fires only on the transition that completes it, so OS
// key-repeat does not re-trigger while the keys stay held.
func (m *Manager) Handle(ev platform.InputEvent) {
	key := normalize(ev)
	if key == "" {
		return
	}

	switch ev.Kind {
	case platform.KeyDown:
		m.mu.Lock()
		repeat := m.pressed[key]
		m.pressed[key] = true
		var fire []func()
		if !repeat {
			fire = m.matchesLocked()
		}
		m.mu.Unlock()

		for _, cb := range fire {
			cb()
		}
	case platform.KeyUp:
		m.mu.Lock()
		delete(m.pressed, key)
		m.mu.Unlock()
	}
}

func (m *Manager) matchesLocked() []func() {
	var fire []func()
	for _, b := range m.bindings {
		match := true
		for _, part := range b.parts {
			if !m.pressed[part] {
				match = false
				break
			}
		}
		if match {
			fire = append(fire, b.callback)
		}
	}
	return fire
}

// normalize maps an event to the key name used in combo strings: the hook's
// key name when present ("ctrl", "enter", ...), otherwise the lowercased
// printable rune.
func normalize(ev platform.InputEvent) string {
	if ev.Key != "" {
		return strings.ToLower(ev.Key)
	}
	if ev.Rune != 0 && unicode.IsPrint(ev.Rune) && ev.Rune != ' ' {
		return string(unicode.ToLower(ev.Rune))
	}
	return ""
}
