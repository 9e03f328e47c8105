//go:build darwin && cgo

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework ApplicationServices -framework CoreGraphics -framework CoreFoundation -framework Foundation
#include <ApplicationServices/ApplicationServices.h>
#include <CoreGraphics/CoreGraphics.h>
#include <stdlib.h>
#include <string.h>

static AXUIElementRef ax_element_at(float x, float y) {
    AXUIElementRef sys = AXUIElementCreateSystemWide();
    if (!sys) return NULL;
    AXUIElementRef el = NULL;
    AXError err = AXUIElementCopyElementAtPosition(sys, x, y, &el);
    CFRelease(sys);
    if (err != kAXErrorSuccess) return NULL;
    return el;
}

static AXUIElementRef ax_app_element(int pid) {
    return AXUIElementCreateApplication((pid_t)pid);
}

// Returns a malloc'd UTF-8 copy of a string attribute, or NULL.
static char *ax_copy_string_attr(AXUIElementRef el, const char *attr) {
    CFStringRef name = CFStringCreateWithCString(NULL, attr, kCFStringEncodingUTF8);
    if (!name) return NULL;
    CFTypeRef value = NULL;
    AXError err = AXUIElementCopyAttributeValue(el, name, &value);
    CFRelease(name);
    if (err != kAXErrorSuccess || !value) return NULL;
    if (CFGetTypeID(value) != CFStringGetTypeID()) {
        CFRelease(value);
        return NULL;
    }
    CFIndex len = CFStringGetMaximumSizeForEncoding(CFStringGetLength((CFStringRef)value), kCFStringEncodingUTF8) + 1;
    char *buf = malloc(len);
    if (!buf) {
        CFRelease(value);
        return NULL;
    }
    if (!CFStringGetCString((CFStringRef)value, buf, len, kCFStringEncodingUTF8)) {
        free(buf);
        CFRelease(value);
        return NULL;
    }
    CFRelease(value);
    return buf;
}

// Bounds as x, y, width, height.
static int ax_bounds(AXUIElementRef el, int *x, int *y, int *w, int *h) {
    CFTypeRef posValue = NULL, sizeValue = NULL;
    if (AXUIElementCopyAttributeValue(el, kAXPositionAttribute, &posValue) != kAXErrorSuccess) return -1;
    if (AXUIElementCopyAttributeValue(el, kAXSizeAttribute, &sizeValue) != kAXErrorSuccess) {
        CFRelease(posValue);
        return -1;
    }
    CGPoint pos;
    CGSize size;
    int ok = AXValueGetValue((AXValueRef)posValue, kAXValueTypeCGPoint, &pos) &&
             AXValueGetValue((AXValueRef)sizeValue, kAXValueTypeCGSize, &size);
    CFRelease(posValue);
    CFRelease(sizeValue);
    if (!ok) return -1;
    *x = (int)pos.x;
    *y = (int)pos.y;
    *w = (int)size.width;
    *h = (int)size.height;
    return 0;
}

// Returns a malloc'd array of retained child refs; caller releases each
// ref and frees the array.
static int ax_children(AXUIElementRef el, AXUIElementRef **out) {
    CFTypeRef value = NULL;
    if (AXUIElementCopyAttributeValue(el, kAXChildrenAttribute, &value) != kAXErrorSuccess || !value) return -1;
    if (CFGetTypeID(value) != CFArrayGetTypeID()) {
        CFRelease(value);
        return -1;
    }
    CFArrayRef arr = (CFArrayRef)value;
    CFIndex n = CFArrayGetCount(arr);
    AXUIElementRef *refs = NULL;
    if (n > 0) {
        refs = malloc(sizeof(AXUIElementRef) * n);
        if (!refs) {
            CFRelease(value);
            return -1;
        }
        for (CFIndex i = 0; i < n; i++) {
            AXUIElementRef child = (AXUIElementRef)CFArrayGetValueAtIndex(arr, i);
            CFRetain(child);
            refs[i] = child;
        }
    }
    CFRelease(value);
    *out = refs;
    return (int)n;
}

static void ax_release(AXUIElementRef el) {
    if (el) CFRelease(el);
}

// PIDs owning on-screen layer-0 windows, front to back.
static int cg_window_pids(int **out, int max) {
    CFArrayRef windows = CGWindowListCopyWindowInfo(
        kCGWindowListOptionOnScreenOnly | kCGWindowListExcludeDesktopElements,
        kCGNullWindowID);
    if (!windows) return -1;
    int *pids = malloc(sizeof(int) * max);
    if (!pids) {
        CFRelease(windows);
        return -1;
    }
    int count = 0;
    CFIndex n = CFArrayGetCount(windows);
    for (CFIndex i = 0; i < n && count < max; i++) {
        CFDictionaryRef info = CFArrayGetValueAtIndex(windows, i);
        CFNumberRef layerRef = CFDictionaryGetValue(info, kCGWindowLayer);
        int layer = -1;
        if (layerRef) CFNumberGetValue(layerRef, kCFNumberIntType, &layer);
        if (layer != 0) continue;
        CFNumberRef pidRef = CFDictionaryGetValue(info, kCGWindowOwnerPID);
        if (!pidRef) continue;
        int pid = 0;
        CFNumberGetValue(pidRef, kCFNumberIntType, &pid);
        int seen = 0;
        for (int j = 0; j < count; j++) {
            if (pids[j] == pid) { seen = 1; break; }
        }
        if (!seen) pids[count++] = pid;
    }
    CFRelease(windows);
    *out = pids;
    return count;
}
*/
import "C"

import (
	"errors"
	"fmt"
	"runtime"
	"unsafe"

	"github.com/mj1618/desktop-rpa/internal/platform"
)

var errAttrUnavailable = errors.New("attribute unavailable")

// Tree walks the accessibility hierarchy on macOS.
type Tree struct{}

// NewTree returns the macOS accessibility tree.
func NewTree() *Tree {
	return &Tree{}
}

// Root returns a synthetic desktop element whose children are the
// accessibility roots of every application with an on-screen window.
func (t *Tree) Root() (platform.Element, error) {
	if err := CheckAccessibilityPermission(); err != nil {
		return nil, err
	}
	return &desktopElement{}, nil
}

// ElementAt returns the deepest accessibility element under the point.
func (t *Tree) ElementAt(x, y int) (platform.Element, error) {
	if err := CheckAccessibilityPermission(); err != nil {
		return nil, err
	}
	ref := C.ax_element_at(C.float(x), C.float(y))
	if ref == nil {
		return nil, fmt.Errorf("no accessibility element at (%d, %d)", x, y)
	}
	return newAXElement(ref), nil
}

// axElement wraps a retained AXUIElementRef.
type axElement struct {
	ref C.AXUIElementRef
}

func newAXElement(ref C.AXUIElementRef) *axElement {
	el := &axElement{ref: ref}
	runtime.SetFinalizer(el, func(e *axElement) {
		C.ax_release(e.ref)
	})
	return el
}

func (e *axElement) stringAttr(attr string) (string, error) {
	cattr := C.CString(attr)
	defer C.free(unsafe.Pointer(cattr))
	cstr := C.ax_copy_string_attr(e.ref, cattr)
	runtime.KeepAlive(e)
	if cstr == nil {
		return "", errAttrUnavailable
	}
	defer C.free(unsafe.Pointer(cstr))
	return C.GoString(cstr), nil
}

func (e *axElement) Name() (string, error) {
	return e.stringAttr("AXTitle")
}

func (e *axElement) ControlType() (string, error) {
	return e.stringAttr("AXRole")
}

func (e *axElement) AutomationID() (string, error) {
	return e.stringAttr("AXIdentifier")
}

func (e *axElement) ClassName() (string, error) {
	return e.stringAttr("AXRoleDescription")
}

func (e *axElement) Bounds() ([4]int, error) {
	var x, y, w, h C.int
	ok := C.ax_bounds(e.ref, &x, &y, &w, &h)
	runtime.KeepAlive(e)
	if ok != 0 {
		return [4]int{}, errAttrUnavailable
	}
	return [4]int{int(x), int(y), int(w), int(h)}, nil
}

func (e *axElement) RuntimePath() ([]int, error) {
	// The accessibility API has no stable sibling-index path.
	return nil, errAttrUnavailable
}

func (e *axElement) Children() ([]platform.Element, error) {
	var refs *C.AXUIElementRef
	n := C.ax_children(e.ref, &refs)
	runtime.KeepAlive(e)
	if n < 0 {
		return nil, errAttrUnavailable
	}
	if n == 0 {
		return nil, nil
	}
	defer C.free(unsafe.Pointer(refs))
	slice := unsafe.Slice(refs, int(n))
	children := make([]platform.Element, 0, int(n))
	for _, ref := range slice {
		children = append(children, newAXElement(ref))
	}
	return children, nil
}

// desktopElement is the synthetic root above all application elements.
type desktopElement struct{}

func (d *desktopElement) Name() (string, error)         { return "Desktop", nil }
func (d *desktopElement) ControlType() (string, error)  { return "AXDesktop", nil }
func (d *desktopElement) AutomationID() (string, error) { return "", errAttrUnavailable }
func (d *desktopElement) ClassName() (string, error)    { return "", errAttrUnavailable }
func (d *desktopElement) Bounds() ([4]int, error)       { return [4]int{}, errAttrUnavailable }
func (d *desktopElement) RuntimePath() ([]int, error)   { return nil, errAttrUnavailable }

func (d *desktopElement) Children() ([]platform.Element, error) {
	var pids *C.int
	n := C.cg_window_pids(&pids, 64)
	if n < 0 {
		return nil, fmt.Errorf("failed to list on-screen windows")
	}
	if n == 0 {
		return nil, nil
	}
	defer C.free(unsafe.Pointer(pids))
	slice := unsafe.Slice(pids, int(n))
	apps := make([]platform.Element, 0, int(n))
	for _, pid := range slice {
		ref := C.ax_app_element(C.int(pid))
		if ref == nil {
			continue
		}
		apps = append(apps, newAXElement(ref))
	}
	return apps, nil
}
