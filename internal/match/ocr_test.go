package match

import (
	"image"
	"testing"

	"github.com/mj1618/desktop-rpa/internal/platform"
)

// fakeOCR returns a fixed set of text boxes for any image.
type fakeOCR struct {
	boxes []platform.TextBox
}

func (f *fakeOCR) ExtractTextBoxes(img image.Image) []platform.TextBox {
	return f.boxes
}

func testImage() image.Image {
	return image.NewRGBA(image.Rect(0, 0, 10, 10))
}

func TestOCRMatcher_FindsBestRegion(t *testing.T) {
	ocr := &fakeOCR{boxes: []platform.TextBox{
		{Text: "Cancel", Confidence: 90, Bounds: [4]int{10, 10, 50, 20}},
		{Text: "Submit", Confidence: 85, Bounds: [4]int{100, 200, 80, 30}},
	}}
	m := NewOCRMatcher(ocr, exactScorer{}, 40)

	got, ok := m.FindBest(testImage(), "Submit")
	if !ok {
		t.Fatal("expected a match")
	}
	if got.Box.Text != "Submit" || got.Score != 100 {
		t.Errorf("got %q score %d, want Submit score 100", got.Box.Text, got.Score)
	}
}

func TestOCRMatcher_ConfidenceFloorDiscardsNoise(t *testing.T) {
	// The only exact match sits below the floor; the match must not use it.
	ocr := &fakeOCR{boxes: []platform.TextBox{
		{Text: "Submit", Confidence: 39, Bounds: [4]int{100, 200, 80, 30}},
	}}
	m := NewOCRMatcher(ocr, exactScorer{}, 40)

	if _, ok := m.FindBest(testImage(), "Submit"); ok {
		t.Error("regions below the confidence floor must never win")
	}
}

func TestOCRMatcher_FloorIsInclusive(t *testing.T) {
	ocr := &fakeOCR{boxes: []platform.TextBox{
		{Text: "Submit", Confidence: 40, Bounds: [4]int{100, 200, 80, 30}},
	}}
	m := NewOCRMatcher(ocr, exactScorer{}, 40)

	if _, ok := m.FindBest(testImage(), "Submit"); !ok {
		t.Error("a region at exactly the floor should be considered")
	}
}

func TestOCRMatcher_EmptyTarget(t *testing.T) {
	ocr := &fakeOCR{boxes: []platform.TextBox{
		{Text: "Submit", Confidence: 90, Bounds: [4]int{100, 200, 80, 30}},
	}}
	m := NewOCRMatcher(ocr, exactScorer{}, 40)

	if _, ok := m.FindBest(testImage(), ""); ok {
		t.Error("empty target must not match")
	}
}

func TestOCRMatcher_NoRegions(t *testing.T) {
	m := NewOCRMatcher(&fakeOCR{}, exactScorer{}, 40)
	if _, ok := m.FindBest(testImage(), "Submit"); ok {
		t.Error("no extracted regions means no match")
	}
}
