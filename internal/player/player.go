// Package player replays a recorded session: it walks the session's steps in
// order, resolves each target on the current screen, and injects the action.
package player

import (
	"time"

	"github.com/mj1618/desktop-rpa/internal/logger"
	"github.com/mj1618/desktop-rpa/internal/model"
	"github.com/mj1618/desktop-rpa/internal/platform"
	"github.com/mj1618/desktop-rpa/internal/resolve"
	"github.com/mj1618/desktop-rpa/internal/store"
)

// Options controls replay pacing.
type Options struct {
	// SettleDelay is the wait after each executed step.
	SettleDelay time.Duration
	// PausePoll is how often the pause flag is re-checked while paused.
	// Coarse polling is fine: steps themselves take hundreds of ms.
	PausePoll time.Duration
	// PostClickDelay is the wait after an injected click before the settle
	// delay, giving the target app time to react.
	PostClickDelay time.Duration
	// KeystrokeDelayMs is the per-keystroke delay passed to the inputter.
	KeystrokeDelayMs int
	// DryRun resolves every step but injects nothing.
	DryRun bool
}

// Result summarizes a replay run.
type Result struct {
	SessionID  string `yaml:"session_id"          json:"session_id"`
	Total      int    `yaml:"total"               json:"total"`
	Executed   int    `yaml:"executed"            json:"executed"`
	Unresolved int    `yaml:"unresolved"          json:"unresolved"`
	Stopped    bool   `yaml:"stopped,omitempty"   json:"stopped,omitempty"`
}

// Player executes recorded sessions sequentially.
type Player struct {
	store    store.Store
	resolver *resolve.Resolver
	input    platform.Inputter
	opts     Options
}

// New returns a Player. input may be nil only for dry runs.
func New(st store.Store, resolver *resolve.Resolver, input platform.Inputter, opts Options) *Player {
	return &Player{store: st, resolver: resolver, input: input, opts: opts}
}

// Run replays the session's steps in ascending order index. Before each
// step the stop flag is checked (abort) and the pause flag is polled until
// cleared. A step that cannot be resolved or injected is reported and
// skipped; a single bad step never aborts the run. An empty or unknown
// session is a no-op, not an error.
func (p *Player) Run(sig *Signals, sessionID string) (Result, error) {
	res := Result{SessionID: sessionID}

	steps, err := p.store.Steps(sessionID)
	if err != nil {
		return res, err
	}
	res.Total = len(steps)
	if len(steps) == 0 {
		logger.Info().Str("session", sessionID).Msg("nothing to run")
		return res, nil
	}

	for i := range steps {
		if p.waitWhilePaused(sig) {
			logger.Info().Int("order", steps[i].OrderIndex).Msg("replay stopped")
			res.Stopped = true
			return res, nil
		}

		if p.executeStep(&steps[i]) {
			res.Executed++
		} else {
			res.Unresolved++
		}

		time.Sleep(p.opts.SettleDelay)
	}

	logger.Info().
		Str("session", sessionID).
		Int("executed", res.Executed).
		Int("unresolved", res.Unresolved).
		Msg("replay finished")
	return res, nil
}

// waitWhilePaused blocks while the pause flag is set, polling at the
// configured interval. Returns true when stop was requested.
func (p *Player) waitWhilePaused(sig *Signals) (stopped bool) {
	if sig == nil {
		return false
	}
	for {
		if sig.Stopped() {
			return true
		}
		if !sig.Paused() {
			return false
		}
		time.Sleep(p.opts.PausePoll)
	}
}

// executeStep resolves and injects one step. Returns false when the step
// could not be resolved or injected; the failure is logged against the step.
func (p *Player) executeStep(step *model.Step) bool {
	target, err := p.resolver.Resolve(step)
	if err != nil {
		logger.Warn().
			Int("order", step.OrderIndex).
			Str("target", step.TargetName()).
			Msg("could not resolve step target, skipping")
		return false
	}

	switch target.Action {
	case model.ActionClick:
		logger.Info().
			Int("order", step.OrderIndex).
			Str("tier", string(target.Tier)).
			Int("score", target.Score).
			Int("x", target.Point.X).
			Int("y", target.Point.Y).
			Msg("click")
		if p.opts.DryRun {
			return true
		}
		if err := p.input.MoveAndClick(target.Point.X, target.Point.Y); err != nil {
			logger.Warn().Err(err).Int("order", step.OrderIndex).Msg("click injection failed")
			return false
		}
		time.Sleep(p.opts.PostClickDelay)

	case model.ActionType:
		logger.Info().
			Int("order", step.OrderIndex).
			Str("text", target.Text).
			Msg("type")
		if p.opts.DryRun {
			return true
		}
		if err := p.input.TypeText(target.Text, p.opts.KeystrokeDelayMs); err != nil {
			logger.Warn().Err(err).Int("order", step.OrderIndex).Msg("text injection failed")
			return false
		}
	}

	return true
}
