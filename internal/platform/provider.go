package platform

import (
	"fmt"
	"runtime"
)

// Provider bundles the OS collaborators for the current platform. The OCR
// and Events fields are filled in separately by the caller: text recognition
// and the global input hook are not OS-specific (see the tesseract and
// hookevents subpackages), and the hook must not start for commands that
// never consume events.
type Provider struct {
	Tree          Tree
	Inputter      Inputter
	Screenshotter Screenshotter
	OCR           OCR
	Events        EventSource
}

// ErrUnsupported is returned on platforms with no registered backend.
var ErrUnsupported = fmt.Errorf("desktop-rpa has no native backend for %s/%s", runtime.GOOS, runtime.GOARCH)

// NewProviderFunc is set by platform-specific packages via init().
// See the darwin subpackage for the macOS registration.
var NewProviderFunc func() (*Provider, error)

// RequestPermissionsFunc is set by platform-specific packages via init().
// It triggers OS permission prompts (accessibility, screen recording) at
// startup so the first capture doesn't fail silently.
var RequestPermissionsFunc func()

// NewProvider returns the Provider for the current OS, or ErrUnsupported.
func NewProvider() (*Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrUnsupported
	}
	return NewProviderFunc()
}
