//go:build darwin && cgo

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework ApplicationServices -framework CoreGraphics -framework Foundation
#include <ApplicationServices/ApplicationServices.h>
#include <CoreGraphics/CoreGraphics.h>

static int ax_is_trusted() {
    return AXIsProcessTrusted();
}

static int cg_has_screen_access() {
    return CGPreflightScreenCaptureAccess();
}

static void cg_request_screen_access() {
    CGRequestScreenCaptureAccess();
}
*/
import "C"
import "fmt"

// CheckAccessibilityPermission returns an error with remediation steps when
// the process lacks macOS accessibility permission.
func CheckAccessibilityPermission() error {
	if C.ax_is_trusted() == 0 {
		return fmt.Errorf(
			"accessibility permission required\n\n" +
				"Grant permission at: System Settings > Privacy & Security > Accessibility\n" +
				"Add your terminal app, then restart the terminal and try again.")
	}
	return nil
}

// CheckScreenRecordingPermission returns an error with remediation steps
// when the process lacks macOS screen recording permission.
func CheckScreenRecordingPermission() error {
	if C.cg_has_screen_access() == 0 {
		return fmt.Errorf(
			"screen recording permission required\n\n" +
				"Grant permission at: System Settings > Privacy & Security > Screen Recording\n" +
				"Add your terminal app, then restart the terminal and try again.")
	}
	return nil
}

// RequestPermissions triggers the OS permission prompts at startup so the
// first capture does not fail silently.
func RequestPermissions() {
	if C.cg_has_screen_access() == 0 {
		C.cg_request_screen_access()
	}
}
