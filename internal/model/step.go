// Package model defines the recorded-session data model: sessions, steps,
// and the element descriptors that drive target resolution during replay.
package model

import (
	"fmt"
	"time"
)

// ActionKind identifies what a recorded step does on replay.
type ActionKind string

const (
	// ActionClick moves the pointer to a resolved point and clicks.
	ActionClick ActionKind = "click"
	// ActionType injects previously captured text at the current focus.
	ActionType ActionKind = "type"
)

// ParseActionKind converts a stored string to an ActionKind.
func ParseActionKind(s string) (ActionKind, error) {
	switch ActionKind(s) {
	case ActionClick, ActionType:
		return ActionKind(s), nil
	default:
		return "", fmt.Errorf("unknown action kind: %q", s)
	}
}

// Point is an absolute screen coordinate.
type Point struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// Session identifies one recorded demonstration. Sessions are immutable once
// training ends; steps are only ever appended while the session is live.
type Session struct {
	ID        string    `yaml:"id"             json:"id"`
	CreatedAt time.Time `yaml:"created_at"     json:"created_at"`
	Name      string    `yaml:"name,omitempty" json:"name,omitempty"`
}

// Step is one recorded action within a session, ordered by OrderIndex
// (zero-based, dense, strictly increasing). Steps are created once at capture
// time and never mutated.
type Step struct {
	ID         int64      `yaml:"id"                   json:"id"`
	SessionID  string     `yaml:"session_id"           json:"session_id"`
	OrderIndex int        `yaml:"order_index"          json:"order_index"`
	Action     ActionKind `yaml:"action"               json:"action"`
	Text       string     `yaml:"text,omitempty"       json:"text,omitempty"`
	Position   *Point     `yaml:"position,omitempty"   json:"position,omitempty"`
	// Bounds duplicates the descriptor's rectangle for fast access,
	// [x, y, width, height].
	Bounds       *[4]int            `yaml:"bounds,omitempty"     json:"bounds,omitempty"`
	Descriptor   *ElementDescriptor `yaml:"descriptor,omitempty" json:"descriptor,omitempty"`
	SnapshotPath string             `yaml:"snapshot,omitempty"   json:"snapshot,omitempty"`
}

// Validate reports whether the step is well-formed enough to persist.
// A click step with neither a descriptor nor a recorded position could never
// be resolved and must not enter the store.
func (s *Step) Validate() error {
	switch s.Action {
	case ActionClick:
		if s.Descriptor == nil && s.Position == nil {
			return fmt.Errorf("click step %d has no descriptor and no position", s.OrderIndex)
		}
	case ActionType:
		if s.Text == "" {
			return fmt.Errorf("type step %d has no text", s.OrderIndex)
		}
	default:
		return fmt.Errorf("step %d has unknown action kind %q", s.OrderIndex, s.Action)
	}
	return nil
}

// TargetName returns the display name the resolver should match against:
// the recorded element's name for clicks, or empty when no descriptor was
// captured.
func (s *Step) TargetName() string {
	if s.Descriptor == nil {
		return ""
	}
	return s.Descriptor.Name
}
