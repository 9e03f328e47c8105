package player

import "sync/atomic"

// Signals carries the pause and stop flags shared between the hotkey
// foreground and a running replay. Stop is cooperative: the player checks it
// at step boundaries only, never mid-action.
type Signals struct {
	paused  atomic.Bool
	stopped atomic.Bool
}

// TogglePause flips the pause flag and returns the new value.
func (s *Signals) TogglePause() bool {
	for {
		old := s.paused.Load()
		if s.paused.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// Paused reports whether replay is currently paused.
func (s *Signals) Paused() bool { return s.paused.Load() }

// Stop requests cancellation at the next step boundary.
func (s *Signals) Stop() { s.stopped.Store(true) }

// Stopped reports whether stop has been requested.
func (s *Signals) Stopped() bool { return s.stopped.Load() }

// Reset clears both flags for a fresh run.
func (s *Signals) Reset() {
	s.paused.Store(false)
	s.stopped.Store(false)
}
