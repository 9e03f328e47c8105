package platform

// EventKind classifies a global input event.
type EventKind int

const (
	MouseDown EventKind = iota
	MouseUp
	KeyDown
	KeyUp
)

// String returns the event kind name for logs.
func (k EventKind) String() string {
	switch k {
	case MouseDown:
		return "mouse-down"
	case MouseUp:
		return "mouse-up"
	case KeyDown:
		return "key-down"
	case KeyUp:
		return "key-up"
	default:
		return "unknown"
	}
}

// InputEvent is one global mouse or keyboard event observed by the OS hook.
// Mouse events carry coordinates; key events carry the printable rune (0 when
// none) and a normalized key name ("enter", "tab", "ctrl", ...) when the hook
// could determine one.
type InputEvent struct {
	Kind EventKind
	X    int
	Y    int
	Rune rune
	Key  string
}

// TextBox is one OCR-extracted text region.
type TextBox struct {
	Text string
	// Confidence is the recognizer's 0-100 confidence for this region.
	Confidence float64
	// Bounds is [x, y, width, height] in image coordinates.
	Bounds [4]int
}
