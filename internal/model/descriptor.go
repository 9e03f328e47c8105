package model

// ElementDescriptor is a snapshot of a UI element's identifying attributes
// taken at record time. None of the fields are guaranteed stable across
// application restarts; replay treats them as hints, not keys.
type ElementDescriptor struct {
	// Name is the element's visible label. May be empty, in which case the
	// structural and OCR tiers cannot match and replay falls back to the
	// recorded position.
	Name string `yaml:"name,omitempty" json:"name,omitempty"`
	// ControlType is a free-text classification, e.g. "Button", "Edit".
	ControlType string `yaml:"control_type,omitempty" json:"control_type,omitempty"`
	// AutomationID is the toolkit's automation identifier when one exists.
	// It may be absent or non-unique.
	AutomationID string `yaml:"automation_id,omitempty" json:"automation_id,omitempty"`
	ClassName    string `yaml:"class_name,omitempty"    json:"class_name,omitempty"`
	// Bounds is [x, y, width, height] at capture time.
	Bounds [4]int `yaml:"bounds" json:"bounds"`
	// RuntimePath addresses the element within the live tree at capture time
	// (an opaque integer sequence). Not stable across restarts.
	RuntimePath []int `yaml:"runtime_path,omitempty" json:"runtime_path,omitempty"`
}

// Center returns the midpoint of an [x, y, width, height] rectangle,
// truncated toward zero on each axis.
func Center(bounds [4]int) Point {
	return CenterLTRB(bounds[0], bounds[1], bounds[0]+bounds[2], bounds[1]+bounds[3])
}

// CenterLTRB returns the midpoint of a (left, top, right, bottom) rectangle,
// truncated toward zero on each axis.
func CenterLTRB(left, top, right, bottom int) Point {
	return Point{X: (left + right) / 2, Y: (top + bottom) / 2}
}

// EmptyBounds reports whether a rectangle has no area. Live elements
// sometimes report zero-size rectangles (off-screen or virtualized); those
// are not clickable targets.
func EmptyBounds(bounds [4]int) bool {
	return bounds[2] <= 0 || bounds[3] <= 0
}
