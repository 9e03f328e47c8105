// Package hookevents adapts the gohook global input hook into the
// platform.EventSource interface. One OS hook feeds both the recorder and
// the hotkey manager.
package hookevents

import (
	"strings"
	"sync"
	"unicode"

	hook "github.com/robotn/gohook"

	"github.com/mj1618/desktop-rpa/internal/platform"
)

// Source streams translated global input events.
type Source struct {
	events    chan platform.InputEvent
	done      chan struct{}
	closeOnce sync.Once
}

// New starts the global hook and returns the event source.
func New() *Source {
	s := &Source{
		events: make(chan platform.InputEvent, 128),
		done:   make(chan struct{}),
	}
	go s.loop()
	return s
}

// Events implements platform.EventSource.
func (s *Source) Events() <-chan platform.InputEvent {
	return s.events
}

// Close stops the OS hook and closes the event channel.
func (s *Source) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
		hook.End()
	})
	return nil
}

func (s *Source) loop() {
	raw := hook.Start()
	defer close(s.events)

	for {
		select {
		case <-s.done:
			return
		case ev, ok := <-raw:
			if !ok {
				return
			}
			out, keep := translate(ev)
			if !keep {
				continue
			}
			select {
			case s.events <- out:
			case <-s.done:
				return
			default:
				// Consumer is behind; dropping one hook event is better
				// than blocking the OS callback thread.
			}
		}
	}
}

// translate maps a raw hook event onto the platform event model. Move,
// drag, and wheel events are not recorded and are dropped here.
func translate(ev hook.Event) (platform.InputEvent, bool) {
	switch ev.Kind {
	case hook.MouseDown:
		return platform.InputEvent{Kind: platform.MouseDown, X: int(ev.X), Y: int(ev.Y)}, true
	case hook.MouseUp:
		return platform.InputEvent{Kind: platform.MouseUp, X: int(ev.X), Y: int(ev.Y)}, true
	case hook.KeyDown, hook.KeyHold:
		return keyEvent(platform.KeyDown, ev), true
	case hook.KeyUp:
		return keyEvent(platform.KeyUp, ev), true
	default:
		return platform.InputEvent{}, false
	}
}

func keyEvent(kind platform.EventKind, ev hook.Event) platform.InputEvent {
	out := platform.InputEvent{Kind: kind}
	if ev.Keychar != 0 && ev.Keychar != 65535 && unicode.IsPrint(ev.Keychar) {
		out.Rune = ev.Keychar
	}
	out.Key = keyName(ev)
	return out
}

// keyName normalizes the hook's raw key naming to the names used in combo
// strings and by the recorder ("ctrl", "alt", "enter", "tab", "space").
func keyName(ev hook.Event) string {
	name := strings.ToLower(hook.RawcodetoKeychar(ev.Rawcode))
	switch name {
	case "lctrl", "rctrl", "control", "ctrl":
		return "ctrl"
	case "lalt", "ralt", "alt", "option":
		return "alt"
	case "lshift", "rshift", "shift":
		return "shift"
	case "lcmd", "rcmd", "cmd", "command", "meta", "super":
		return "cmd"
	case "return", "enter", "\n", "\r":
		return "enter"
	case "tab", "\t":
		return "tab"
	case "space", " ":
		return "space"
	case "escape", "esc":
		return "esc"
	}
	if ev.Keychar == '\n' || ev.Keychar == '\r' {
		return "enter"
	}
	if ev.Keychar == '\t' {
		return "tab"
	}
	if len(name) == 1 {
		return name
	}
	return ""
}
