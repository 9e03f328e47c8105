package tesseract

import "testing"

const sampleTSV = `level	page_num	block_num	par_num	line_num	word_num	left	top	width	height	conf	text
1	1	0	0	0	0	0	0	1920	1080	-1
2	1	1	0	0	0	100	200	80	30	-1
5	1	1	1	1	1	100	200	80	30	91.5	Submit
5	1	1	1	1	2	200	200	60	30	12.0	Cancel
5	1	1	1	1	3	300	200	60	30	88.0
5	1	1	1	1	4	400	200	60	30	bogus	Save`

func TestParseTSV(t *testing.T) {
	boxes := parseTSV([]byte(sampleTSV))

	// Layout rows (conf -1), empty text, and unparsable confidence are all
	// dropped; low-confidence words survive (the matcher applies the floor).
	if len(boxes) != 2 {
		t.Fatalf("got %d boxes, want 2: %+v", len(boxes), boxes)
	}

	if boxes[0].Text != "Submit" || boxes[0].Confidence != 91.5 {
		t.Errorf("boxes[0] = %+v", boxes[0])
	}
	if boxes[0].Bounds != [4]int{100, 200, 80, 30} {
		t.Errorf("boxes[0].Bounds = %v", boxes[0].Bounds)
	}
	if boxes[1].Text != "Cancel" || boxes[1].Confidence != 12.0 {
		t.Errorf("boxes[1] = %+v", boxes[1])
	}
}

func TestParseTSV_Empty(t *testing.T) {
	if boxes := parseTSV(nil); boxes != nil {
		t.Errorf("empty output should yield no boxes, got %+v", boxes)
	}
}

func TestNew_Defaults(t *testing.T) {
	e := New("", "")
	if e.path != "tesseract" || e.langs != "eng" {
		t.Errorf("defaults = %q %q", e.path, e.langs)
	}
}
