package match

import (
	"github.com/mj1618/desktop-rpa/internal/logger"
	"github.com/mj1618/desktop-rpa/internal/platform"
)

// TreeMatch is the winning element of a tree scan.
type TreeMatch struct {
	Element platform.Element
	// Name is the element's display name at scan time.
	Name  string
	Score int
}

// TreeMatcher finds the live element whose display name best matches a
// target. Each call is a full breadth-first scan of the reachable tree,
// uncached because the tree mutates between calls.
type TreeMatcher struct {
	scorer Scorer
}

// NewTreeMatcher returns a TreeMatcher using the given scorer.
func NewTreeMatcher(scorer Scorer) *TreeMatcher {
	return &TreeMatcher{scorer: scorer}
}

// FindBest scans breadth-first from root and returns the highest-scoring
// element. Ties keep the first-encountered element, so shallower elements
// win. When controlType is non-empty, elements of other control types are
// not scored (they are still traversed for their children). An empty target
// name cannot be matched and returns ok=false. Failures on individual
// elements are skipped without aborting the scan.
func (m *TreeMatcher) FindBest(root platform.Element, targetName, controlType string) (TreeMatch, bool) {
	if targetName == "" || root == nil {
		return TreeMatch{}, false
	}

	var best TreeMatch
	found := false

	queue := []platform.Element{root}
	for len(queue) > 0 {
		el := queue[0]
		queue = queue[1:]

		if children, err := el.Children(); err == nil {
			queue = append(queue, children...)
		} else {
			logger.Debug().Err(err).Msg("tree scan: children read failed")
		}

		if controlType != "" {
			ct, err := el.ControlType()
			if err != nil || ct != controlType {
				continue
			}
		}

		name, err := el.Name()
		if err != nil {
			logger.Debug().Err(err).Msg("tree scan: name read failed")
			continue
		}

		score := m.scorer.Score(targetName, name)
		if !found || score > best.Score {
			best = TreeMatch{Element: el, Name: name, Score: score}
			found = true
		}
	}

	return best, found
}
