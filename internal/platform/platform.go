package platform

import "image"

// Element is a handle to a node in the live UI tree. Every accessor may fail
// independently (the element can disconnect between calls); callers must
// treat a failed accessor as "attribute absent", never as fatal.
type Element interface {
	// Name returns the element's visible label, possibly empty.
	Name() (string, error)
	// ControlType returns a free-text classification such as "Button".
	ControlType() (string, error)
	// AutomationID returns the toolkit automation identifier, possibly empty.
	AutomationID() (string, error)
	// ClassName returns the element's class name, possibly empty.
	ClassName() (string, error)
	// Bounds returns the element's current screen rectangle as
	// [x, y, width, height].
	Bounds() ([4]int, error)
	// RuntimePath returns an opaque integer sequence addressing the element
	// within the current tree. Not stable across application restarts.
	RuntimePath() ([]int, error)
	// Children returns the element's direct children. The result is a fresh
	// read each call; the tree mutates between calls.
	Children() ([]Element, error)
}

// Tree exposes the OS UI-automation tree.
type Tree interface {
	// Root returns the whole-desktop root element.
	Root() (Element, error)
	// ElementAt returns the topmost element at a screen point, or an error
	// when the provider reports nothing there.
	ElementAt(x, y int) (Element, error)
}

// Inputter injects synthetic input. Both calls block until the OS has
// accepted the events.
type Inputter interface {
	// MoveAndClick moves the pointer to (x, y) and left-clicks.
	MoveAndClick(x, y int) error
	// TypeText types text at the current keyboard focus, pausing delayMs
	// between keystrokes.
	TypeText(text string, delayMs int) error
}

// Screenshotter captures raster images of a display.
type Screenshotter interface {
	CaptureDisplay(index int) (image.Image, error)
}

// OCR extracts text regions from a raster image. Implementations never
// return an error: a failed recognition yields an empty slice, and replay
// degrades to the coordinate fallback.
type OCR interface {
	ExtractTextBoxes(img image.Image) []TextBox
}

// EventSource streams global input events. The channel closes when the
// source is closed or the OS hook ends.
type EventSource interface {
	Events() <-chan InputEvent
	Close() error
}
