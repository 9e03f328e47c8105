// Package control owns the record/replay state machine. All mode transitions
// go through the Controller; hotkey handlers call into it and invalid
// requests are rejected with a user-visible error instead of being queued.
package control

import (
	"fmt"
	"sync"

	"github.com/mj1618/desktop-rpa/internal/logger"
	"github.com/mj1618/desktop-rpa/internal/model"
	"github.com/mj1618/desktop-rpa/internal/player"
	"github.com/mj1618/desktop-rpa/internal/recorder"
	"github.com/mj1618/desktop-rpa/internal/store"
)

// Mode is the process-wide state. Exactly one value is active at a time.
type Mode int

const (
	Idle Mode = iota
	Training
	Running
	Paused
	Stopping
)

// String returns the mode name for logs and status output.
func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Training:
		return "training"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Stopping:
		return "stopping"
	default:
		return "unknown"
	}
}

// Controller drives the Idle/Training/Running/Paused/Stopping state machine
// and owns the recorder and the single background replay worker.
type Controller struct {
	rec   *recorder.Recorder
	pl    *player.Player
	store store.Store

	mu   sync.Mutex
	mode Mode
	sig  *player.Signals

	done     chan struct{}
	doneOnce sync.Once
}

// New returns a Controller in the Idle state.
func New(rec *recorder.Recorder, pl *player.Player, st store.Store) *Controller {
	return &Controller{
		rec:   rec,
		pl:    pl,
		store: st,
		mode:  Idle,
		sig:   &player.Signals{},
		done:  make(chan struct{}),
	}
}

// Mode returns the current state.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Done is closed once a stop request has fully taken effect (any in-flight
// replay worker has exited). The foreground loop waits on it to terminate.
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

// ToggleTrain starts a new training session from Idle, or ends the current
// one from Training. Rejected while a replay is in progress.
func (c *Controller) ToggleTrain(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.mode {
	case Idle:
		if _, err := c.rec.StartSession(name); err != nil {
			return err
		}
		c.mode = Training
		return nil
	case Training:
		c.rec.EndSession()
		c.mode = Idle
		return nil
	case Running, Paused:
		return fmt.Errorf("cannot start training while a replay is %s", c.mode)
	default:
		return fmt.Errorf("cannot toggle training while %s", c.mode)
	}
}

// Run replays the most recently recorded session on a background worker so
// hotkeys stay responsive. At most one worker is ever active; a second run
// request is rejected, not queued.
func (c *Controller) Run() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.mode {
	case Training:
		return fmt.Errorf("stop training before running a session")
	case Running, Paused:
		return fmt.Errorf("a replay is already %s", c.mode)
	case Stopping:
		return fmt.Errorf("shutting down")
	}

	sess, err := c.store.LatestSession()
	if err != nil {
		return err
	}
	if sess == nil {
		return fmt.Errorf("no recorded sessions to run")
	}

	c.sig.Reset()
	c.mode = Running
	go c.runWorker(sess)
	return nil
}

func (c *Controller) runWorker(sess *model.Session) {
	logger.Info().Str("session", sess.ID).Msg("replay starting")
	if _, err := c.pl.Run(c.sig, sess.ID); err != nil {
		logger.Error().Err(err).Str("session", sess.ID).Msg("replay failed")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode == Stopping {
		c.signalDone()
		return
	}
	c.mode = Idle
}

// TogglePause suspends or resumes step execution. Only meaningful while a
// replay is in progress.
func (c *Controller) TogglePause() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.mode {
	case Running:
		c.sig.TogglePause()
		c.mode = Paused
		logger.Info().Msg("replay paused")
		return nil
	case Paused:
		c.sig.TogglePause()
		c.mode = Running
		logger.Info().Msg("replay resumed")
		return nil
	default:
		return fmt.Errorf("nothing to pause while %s", c.mode)
	}
}

// Stop requests shutdown from any state. Cancellation is cooperative: a
// running worker finishes its in-flight step, observes the flag at the next
// step boundary, and only then is Done signaled. An active training session
// is ended first so its steps stay replayable.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.mode
	if prev == Training {
		c.rec.EndSession()
	}
	c.mode = Stopping
	c.sig.Stop()
	logger.Info().Str("from", prev.String()).Msg("stop requested")

	// No worker to wait for unless a replay was in flight.
	if prev != Running && prev != Paused {
		c.signalDone()
	}
}

func (c *Controller) signalDone() {
	c.doneOnce.Do(func() { close(c.done) })
}
