// Package recorder captures a demonstration: it turns global input events
// into durable session steps enriched with descriptors of the UI elements
// involved.
package recorder

import (
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/mj1618/desktop-rpa/internal/logger"
	"github.com/mj1618/desktop-rpa/internal/model"
	"github.com/mj1618/desktop-rpa/internal/platform"
	"github.com/mj1618/desktop-rpa/internal/store"
)

// Recorder builds and appends steps for the current training session.
// Events arrive via HandleEvent from the foreground event loop; session
// lifecycle calls may come from hotkey callbacks on another goroutine.
type Recorder struct {
	store   store.Store
	snaps   *store.Snapshots
	tree    platform.Tree
	screens platform.Screenshotter
	display int

	mu       sync.Mutex
	session  *model.Session
	orderIdx int
	typed    []rune
}

// New returns a Recorder. tree and screens may be nil; recording then
// degrades to positions without descriptors or snapshots.
func New(st store.Store, snaps *store.Snapshots, tree platform.Tree, screens platform.Screenshotter, display int) *Recorder {
	return &Recorder{store: st, snaps: snaps, tree: tree, screens: screens, display: display}
}

// StartSession creates a new session and resets the step counter.
func (r *Recorder) StartSession(name string) (*model.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session != nil {
		return nil, fmt.Errorf("session %s is already being recorded", r.session.ID)
	}

	sess, err := r.store.CreateSession(name)
	if err != nil {
		return nil, err
	}
	r.session = sess
	r.orderIdx = 0
	r.typed = nil
	logger.Info().Str("session", sess.ID).Msg("training session started")
	return sess, nil
}

// EndSession finalizes the current session and discards any partially typed
// text. Steps are already durably appended one by one, so there is nothing
// to flush. Returns the ended session, or nil when none was active.
func (r *Recorder) EndSession() *model.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess := r.session
	r.session = nil
	r.orderIdx = 0
	r.typed = nil
	if sess != nil {
		logger.Info().Str("session", sess.ID).Msg("training session ended")
	}
	return sess
}

// Active reports whether a session is currently being recorded.
func (r *Recorder) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session != nil
}

// HandleEvent feeds one global input event into the recording pipeline.
// Events outside an active session are ignored.
func (r *Recorder) HandleEvent(ev platform.InputEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session == nil {
		return
	}

	switch ev.Kind {
	case platform.MouseUp:
		// Only the release commits a click; recording on press would double
		// up drag gestures. Drags are not specially supported.
		r.recordClick(ev.X, ev.Y)
	case platform.MouseDown:
		// ignored, see MouseUp
	case platform.KeyDown:
		r.bufferKey(ev)
	case platform.KeyUp:
		// Enter or Tab ends a field entry. A heuristic boundary, not real
		// input-method awareness.
		if ev.Key == "enter" || ev.Key == "tab" {
			r.flushTyped()
		}
	}
}

// bufferKey accumulates printable characters, space, and newline. Dead keys,
// IME composition, and modifier-only input are out of scope.
func (r *Recorder) bufferKey(ev platform.InputEvent) {
	switch {
	case ev.Key == "enter":
		r.typed = append(r.typed, '\n')
	case ev.Key == "space":
		r.typed = append(r.typed, ' ')
	case ev.Rune == ' ' || ev.Rune == '\n':
		r.typed = append(r.typed, ev.Rune)
	case ev.Rune != 0 && unicode.IsPrint(ev.Rune):
		r.typed = append(r.typed, ev.Rune)
	}
}

func (r *Recorder) recordClick(x, y int) {
	snapPath := r.snapshot("click")
	desc := r.probeDescriptor(x, y)

	step := &model.Step{
		SessionID:    r.session.ID,
		OrderIndex:   r.orderIdx,
		Action:       model.ActionClick,
		Position:     &model.Point{X: x, Y: y},
		Descriptor:   desc,
		SnapshotPath: snapPath,
	}
	if desc != nil && !model.EmptyBounds(desc.Bounds) {
		bounds := desc.Bounds
		step.Bounds = &bounds
	}

	r.appendStep(step)
}

func (r *Recorder) flushTyped() {
	text := strings.TrimSpace(string(r.typed))
	r.typed = nil
	if text == "" {
		return
	}

	step := &model.Step{
		SessionID:    r.session.ID,
		OrderIndex:   r.orderIdx,
		Action:       model.ActionType,
		Text:         text,
		SnapshotPath: r.snapshot("type"),
	}
	r.appendStep(step)
}

// appendStep persists a step and advances the counter. The store already
// retries once internally; if the write still fails the session is aborted
// visibly rather than silently dropping the step.
func (r *Recorder) appendStep(step *model.Step) {
	if err := r.store.AppendStep(step); err != nil {
		logger.Error().Err(err).
			Str("session", r.session.ID).
			Int("order", step.OrderIndex).
			Msg("failed to persist step, aborting training session")
		r.session = nil
		r.orderIdx = 0
		r.typed = nil
		return
	}

	logger.Info().
		Int("order", step.OrderIndex).
		Str("action", string(step.Action)).
		Str("text", step.Text).
		Msg("recorded step")
	r.orderIdx++
}

// snapshot captures and stores a screenshot, returning its reference.
// Best-effort: any failure logs and yields an empty reference.
func (r *Recorder) snapshot(prefix string) string {
	if r.screens == nil || r.snaps == nil {
		return ""
	}
	img, err := r.screens.CaptureDisplay(r.display)
	if err != nil {
		logger.Warn().Err(err).Msg("screen capture failed, step recorded without snapshot")
		return ""
	}
	path, err := r.snaps.Save(img, prefix)
	if err != nil {
		logger.Warn().Err(err).Msg("snapshot save failed, step recorded without snapshot")
		return ""
	}
	return path
}

// probeDescriptor reads the topmost element at a point. Read-only; every
// provider failure is treated as "no element" so recording continues with
// the coordinate fallback only.
func (r *Recorder) probeDescriptor(x, y int) *model.ElementDescriptor {
	if r.tree == nil {
		return nil
	}
	el, err := r.tree.ElementAt(x, y)
	if err != nil || el == nil {
		logger.Debug().Err(err).Int("x", x).Int("y", y).Msg("no element at click point")
		return nil
	}

	desc := &model.ElementDescriptor{}
	if v, err := el.Name(); err == nil {
		desc.Name = v
	}
	if v, err := el.ControlType(); err == nil {
		desc.ControlType = v
	}
	if v, err := el.AutomationID(); err == nil {
		desc.AutomationID = v
	}
	if v, err := el.ClassName(); err == nil {
		desc.ClassName = v
	}
	if v, err := el.Bounds(); err == nil {
		desc.Bounds = v
	}
	if v, err := el.RuntimePath(); err == nil {
		desc.RuntimePath = v
	}
	return desc
}
