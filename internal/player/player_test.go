package player

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/mj1618/desktop-rpa/internal/match"
	"github.com/mj1618/desktop-rpa/internal/model"
	"github.com/mj1618/desktop-rpa/internal/resolve"
	"github.com/mj1618/desktop-rpa/internal/store"
)

// fakeInputter records injected actions and can run a callback per click,
// which tests use to flip signals mid-run deterministically.
type fakeInputter struct {
	mu      sync.Mutex
	clicks  []model.Point
	typed   []string
	onClick func()
}

func (f *fakeInputter) MoveAndClick(x, y int) error {
	f.mu.Lock()
	f.clicks = append(f.clicks, model.Point{X: x, Y: y})
	cb := f.onClick
	f.mu.Unlock()
	if cb != nil {
		cb()
	}
	return nil
}

func (f *fakeInputter) TypeText(text string, delayMs int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.typed = append(f.typed, text)
	return nil
}

func (f *fakeInputter) snapshot() ([]model.Point, []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Point(nil), f.clicks...), append([]string(nil), f.typed...)
}

func fastOptions() Options {
	return Options{
		SettleDelay: time.Millisecond,
		PausePoll:   time.Millisecond,
	}
}

// positionResolver resolves clicks from recorded positions only.
func positionResolver() *resolve.Resolver {
	return resolve.New(nil, match.NewTreeMatcher(match.PartialRatio{}), nil, nil, 0)
}

func seedSession(t *testing.T, st store.Store, steps ...*model.Step) *model.Session {
	t.Helper()
	sess, err := st.CreateSession("")
	if err != nil {
		t.Fatal(err)
	}
	for i, step := range steps {
		step.SessionID = sess.ID
		step.OrderIndex = i
		if err := st.AppendStep(step); err != nil {
			t.Fatal(err)
		}
	}
	return sess
}

func openTestStore(t *testing.T) store.Store {
	t.Helper()
	st, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "memory.sqlite3"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestPlayer_ExecutesStepsInOrder(t *testing.T) {
	st := openTestStore(t)
	sess := seedSession(t, st,
		&model.Step{Action: model.ActionClick, Position: &model.Point{X: 10, Y: 20}},
		&model.Step{Action: model.ActionType, Text: "hello"},
		&model.Step{Action: model.ActionClick, Position: &model.Point{X: 30, Y: 40}},
	)

	input := &fakeInputter{}
	pl := New(st, positionResolver(), input, fastOptions())

	res, err := pl.Run(&Signals{}, sess.ID)
	if err != nil {
		t.Fatal(err)
	}
	if res.Total != 3 || res.Executed != 3 || res.Unresolved != 0 || res.Stopped {
		t.Errorf("result = %+v", res)
	}

	clicks, typed := input.snapshot()
	if len(clicks) != 2 || clicks[0] != (model.Point{X: 10, Y: 20}) || clicks[1] != (model.Point{X: 30, Y: 40}) {
		t.Errorf("clicks = %+v", clicks)
	}
	if len(typed) != 1 || typed[0] != "hello" {
		t.Errorf("typed = %+v", typed)
	}
}

func TestPlayer_EmptySessionIsNoOp(t *testing.T) {
	st := openTestStore(t)
	sess := seedSession(t, st)

	input := &fakeInputter{}
	pl := New(st, positionResolver(), input, fastOptions())

	res, err := pl.Run(&Signals{}, sess.ID)
	if err != nil {
		t.Fatal(err)
	}
	if res.Total != 0 || res.Executed != 0 {
		t.Errorf("result = %+v", res)
	}
	clicks, typed := input.snapshot()
	if len(clicks) != 0 || len(typed) != 0 {
		t.Error("nothing should be injected for an empty session")
	}
}

func TestPlayer_UnknownSessionIsNoOp(t *testing.T) {
	st := openTestStore(t)
	pl := New(st, positionResolver(), &fakeInputter{}, fastOptions())

	res, err := pl.Run(&Signals{}, "no-such-session")
	if err != nil {
		t.Fatal(err)
	}
	if res.Total != 0 {
		t.Errorf("result = %+v", res)
	}
}

func TestPlayer_UnresolvedStepIsSkippedNotFatal(t *testing.T) {
	st := openTestStore(t)
	// First step carries only a descriptor; with no tree and no OCR it
	// cannot resolve. The second step must still run.
	sess := seedSession(t, st,
		&model.Step{Action: model.ActionClick, Descriptor: &model.ElementDescriptor{Name: "Gone"}},
		&model.Step{Action: model.ActionType, Text: "still runs"},
	)

	input := &fakeInputter{}
	pl := New(st, positionResolver(), input, fastOptions())

	res, err := pl.Run(&Signals{}, sess.ID)
	if err != nil {
		t.Fatal(err)
	}
	if res.Executed != 1 || res.Unresolved != 1 {
		t.Errorf("result = %+v", res)
	}
	_, typed := input.snapshot()
	if len(typed) != 1 || typed[0] != "still runs" {
		t.Errorf("typed = %+v", typed)
	}
}

func TestPlayer_StopBeforeStart(t *testing.T) {
	st := openTestStore(t)
	sess := seedSession(t, st,
		&model.Step{Action: model.ActionClick, Position: &model.Point{X: 1, Y: 2}},
	)

	sig := &Signals{}
	sig.Stop()

	input := &fakeInputter{}
	pl := New(st, positionResolver(), input, fastOptions())

	res, err := pl.Run(sig, sess.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Stopped || res.Executed != 0 {
		t.Errorf("result = %+v", res)
	}
}

func TestPlayer_StopTakesEffectAtStepBoundary(t *testing.T) {
	st := openTestStore(t)
	sess := seedSession(t, st,
		&model.Step{Action: model.ActionClick, Position: &model.Point{X: 1, Y: 1}},
		&model.Step{Action: model.ActionClick, Position: &model.Point{X: 2, Y: 2}},
		&model.Step{Action: model.ActionClick, Position: &model.Point{X: 3, Y: 3}},
	)

	sig := &Signals{}
	input := &fakeInputter{}
	// Request stop while the first step is executing: the in-flight step
	// completes, the rest never run.
	input.onClick = sig.Stop

	pl := New(st, positionResolver(), input, fastOptions())
	res, err := pl.Run(sig, sess.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Stopped {
		t.Error("run should report stopped")
	}
	if res.Executed != 1 {
		t.Errorf("executed = %d, want 1 (in-flight step finishes)", res.Executed)
	}
	clicks, _ := input.snapshot()
	if len(clicks) != 1 {
		t.Errorf("clicks = %+v", clicks)
	}
}

func TestPlayer_PauseBlocksProgress(t *testing.T) {
	st := openTestStore(t)
	sess := seedSession(t, st,
		&model.Step{Action: model.ActionClick, Position: &model.Point{X: 1, Y: 1}},
		&model.Step{Action: model.ActionClick, Position: &model.Point{X: 2, Y: 2}},
	)

	sig := &Signals{}
	input := &fakeInputter{}
	// Pause during the first click; the run must not reach the second step
	// until resumed.
	input.onClick = func() {
		input.mu.Lock()
		input.onClick = nil
		input.mu.Unlock()
		sig.TogglePause()
	}

	pl := New(st, positionResolver(), input, fastOptions())

	done := make(chan Result, 1)
	go func() {
		res, _ := pl.Run(sig, sess.ID)
		done <- res
	}()

	time.Sleep(50 * time.Millisecond)
	if clicks, _ := input.snapshot(); len(clicks) != 1 {
		t.Fatalf("paused run should sit at 1 click, got %d", len(clicks))
	}
	select {
	case <-done:
		t.Fatal("run finished while paused")
	default:
	}

	sig.TogglePause()
	select {
	case res := <-done:
		if res.Executed != 2 {
			t.Errorf("executed = %d, want 2", res.Executed)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("run did not resume after unpause")
	}
}

func TestPlayer_DryRunInjectsNothing(t *testing.T) {
	st := openTestStore(t)
	sess := seedSession(t, st,
		&model.Step{Action: model.ActionClick, Position: &model.Point{X: 1, Y: 1}},
		&model.Step{Action: model.ActionType, Text: "hello"},
	)

	input := &fakeInputter{}
	opts := fastOptions()
	opts.DryRun = true
	pl := New(st, positionResolver(), input, opts)

	res, err := pl.Run(&Signals{}, sess.ID)
	if err != nil {
		t.Fatal(err)
	}
	if res.Executed != 2 {
		t.Errorf("dry run should still resolve and count steps, got %+v", res)
	}
	clicks, typed := input.snapshot()
	if len(clicks) != 0 || len(typed) != 0 {
		t.Error("dry run must not inject input")
	}
}
