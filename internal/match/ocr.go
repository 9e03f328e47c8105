package match

import (
	"image"

	"github.com/mj1618/desktop-rpa/internal/platform"
)

// OCRMatch is the winning text region of an OCR pass.
type OCRMatch struct {
	Box   platform.TextBox
	Score int
}

// OCRMatcher finds the extracted text region best matching a target string.
// This tier needs a fresh full-screen capture plus recognition, so the
// resolver only reaches for it when the tree tier fails.
type OCRMatcher struct {
	ocr    platform.OCR
	scorer Scorer
	// floor is the minimum confidence for a region to be considered at all.
	floor float64
}

// NewOCRMatcher returns an OCRMatcher that discards regions below the given
// confidence floor.
func NewOCRMatcher(ocr platform.OCR, scorer Scorer, confidenceFloor float64) *OCRMatcher {
	return &OCRMatcher{ocr: ocr, scorer: scorer, floor: confidenceFloor}
}

// FindBest extracts text regions from img and returns the highest-scoring
// one. Regions below the confidence floor are noise and never win. Ties keep
// the first-extracted region. Returns ok=false when the target is empty or
// no region survives the floor.
func (m *OCRMatcher) FindBest(img image.Image, target string) (OCRMatch, bool) {
	if target == "" {
		return OCRMatch{}, false
	}

	var best OCRMatch
	found := false

	for _, box := range m.ocr.ExtractTextBoxes(img) {
		if box.Confidence < m.floor {
			continue
		}
		score := m.scorer.Score(target, box.Text)
		if !found || score > best.Score {
			best = OCRMatch{Box: box, Score: score}
			found = true
		}
	}

	return best, found
}
