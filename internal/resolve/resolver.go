// Package resolve decides where a recorded step should act on the current
// screen. Click targets are re-located through a layered fallback: live
// UI-tree match, then OCR over a fresh capture, then the coordinates recorded
// at capture time.
package resolve

import (
	"errors"

	"github.com/mj1618/desktop-rpa/internal/logger"
	"github.com/mj1618/desktop-rpa/internal/match"
	"github.com/mj1618/desktop-rpa/internal/model"
	"github.com/mj1618/desktop-rpa/internal/platform"
)

// Tier names which fallback produced a resolution.
type Tier string

const (
	// TierTree means a live UI-tree element matched the recorded name.
	TierTree Tier = "tree"
	// TierOCR means an OCR text region matched the recorded name.
	TierOCR Tier = "ocr"
	// TierPosition means the literal recorded coordinates were used. No
	// guarantee the element is still there.
	TierPosition Tier = "position"
	// TierText is the trivial resolution of a type step.
	TierText Tier = "text"
)

// ErrUnresolved is returned when no tier produced a usable target. The
// player reports it against the step and continues.
var ErrUnresolved = errors.New("no tier resolved a target")

// Target is a resolved action: a click point or a text payload.
type Target struct {
	Action model.ActionKind
	Point  model.Point // set for clicks
	Text   string      // set for type actions
	Tier   Tier
	Score  int // match score for tree/ocr tiers
}

// Resolver re-locates recorded steps on the current screen. The OCR matcher
// and screenshotter may be nil; resolution then degrades to the remaining
// tiers.
type Resolver struct {
	tree    platform.Tree
	trees   *match.TreeMatcher
	ocr     *match.OCRMatcher
	screens platform.Screenshotter
	display int
}

// New builds a Resolver from the available collaborators.
func New(tree platform.Tree, trees *match.TreeMatcher, ocr *match.OCRMatcher, screens platform.Screenshotter, display int) *Resolver {
	return &Resolver{tree: tree, trees: trees, ocr: ocr, screens: screens, display: display}
}

// Resolve maps one step to a concrete action target.
//
// Click steps try, in order and short-circuiting on first success:
// a live-tree name match with a non-empty current rectangle, an OCR match on
// a fresh full-screen capture, and the literal recorded position. Type steps
// carry their payload as-is; keyboard focus is assumed correct from the
// preceding click, a known limitation.
func (r *Resolver) Resolve(step *model.Step) (Target, error) {
	if step.Action == model.ActionType {
		return Target{Action: model.ActionType, Text: step.Text, Tier: TierText}, nil
	}

	name := step.TargetName()

	if t, ok := r.resolveTree(name); ok {
		return t, nil
	}
	if t, ok := r.resolveOCR(name); ok {
		return t, nil
	}
	if step.Position != nil {
		return Target{Action: model.ActionClick, Point: *step.Position, Tier: TierPosition}, nil
	}
	return Target{}, ErrUnresolved
}

func (r *Resolver) resolveTree(name string) (Target, bool) {
	if name == "" || r.tree == nil {
		return Target{}, false
	}

	root, err := r.tree.Root()
	if err != nil {
		logger.Debug().Err(err).Msg("resolve: tree root unavailable")
		return Target{}, false
	}

	// Whole-desktop scan, no control-type filter: the same control may be
	// re-rendered with a different type after an app update.
	m, ok := r.trees.FindBest(root, name, "")
	if !ok {
		return Target{}, false
	}

	bounds, err := m.Element.Bounds()
	if err != nil || model.EmptyBounds(bounds) {
		logger.Debug().Err(err).Str("name", m.Name).Msg("resolve: matched element has no usable bounds")
		return Target{}, false
	}

	return Target{
		Action: model.ActionClick,
		Point:  model.Center(bounds),
		Tier:   TierTree,
		Score:  m.Score,
	}, true
}

func (r *Resolver) resolveOCR(name string) (Target, bool) {
	if name == "" || r.ocr == nil || r.screens == nil {
		return Target{}, false
	}

	img, err := r.screens.CaptureDisplay(r.display)
	if err != nil {
		logger.Debug().Err(err).Msg("resolve: screen capture failed")
		return Target{}, false
	}

	m, ok := r.ocr.FindBest(img, name)
	if !ok {
		return Target{}, false
	}

	return Target{
		Action: model.ActionClick,
		Point:  model.Center(m.Box.Bounds),
		Tier:   TierOCR,
		Score:  m.Score,
	}, true
}
