// Package match implements fuzzy target matching for replay: a string
// similarity scorer plus the two matching tiers (live UI tree, OCR regions).
package match

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Scorer rates how well a candidate string matches a target, on a 0-100
// scale. 100 means the target occurs in the candidate (or vice versa).
// Abstracted so the matchers are testable with deterministic scores.
type Scorer interface {
	Score(target, candidate string) int
}

// PartialRatio is the default Scorer: case-insensitive best-window
// Levenshtein similarity between the shorter string and every equal-length
// window of the longer one. An exact substring scores 100.
type PartialRatio struct{}

// Score implements Scorer.
func (PartialRatio) Score(target, candidate string) int {
	a := strings.ToLower(target)
	b := strings.ToLower(candidate)
	if a == "" || b == "" {
		return 0
	}

	shorter, longer := []rune(a), []rune(b)
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}

	if strings.Contains(string(longer), string(shorter)) {
		return 100
	}

	n := len(shorter)
	best := 0
	for i := 0; i+n <= len(longer); i++ {
		window := string(longer[i : i+n])
		dist := levenshtein.ComputeDistance(string(shorter), window)
		score := (n - dist) * 100 / n
		if score > best {
			best = score
		}
	}
	return best
}
