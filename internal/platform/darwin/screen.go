//go:build darwin && cgo

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation -framework Foundation
#include <CoreGraphics/CoreGraphics.h>
#include <stdlib.h>
#include <string.h>

// Capture one display into a malloc'd BGRA buffer.
static int cg_capture_display(int index, unsigned char **out, int *w, int *h, int *stride) {
    CGDirectDisplayID ids[16];
    uint32_t n = 0;
    if (CGGetActiveDisplayList(16, ids, &n) != kCGErrorSuccess || n == 0) return -1;
    if (index < 0 || (uint32_t)index >= n) return -1;

    CGImageRef img = CGDisplayCreateImage(ids[index]);
    if (!img) return -1;

    size_t width = CGImageGetWidth(img);
    size_t height = CGImageGetHeight(img);
    size_t bpr = CGImageGetBytesPerRow(img);

    CFDataRef data = CGDataProviderCopyData(CGImageGetDataProvider(img));
    if (!data) {
        CGImageRelease(img);
        return -1;
    }

    CFIndex len = CFDataGetLength(data);
    unsigned char *buf = malloc(len);
    if (!buf) {
        CFRelease(data);
        CGImageRelease(img);
        return -1;
    }
    memcpy(buf, CFDataGetBytePtr(data), len);
    CFRelease(data);
    CGImageRelease(img);

    *out = buf;
    *w = (int)width;
    *h = (int)height;
    *stride = (int)bpr;
    return 0;
}
*/
import "C"

import (
	"fmt"
	"image"
	"unsafe"
)

// Screenshotter captures display rasters on macOS.
type Screenshotter struct{}

// NewScreenshotter returns the macOS screenshotter.
func NewScreenshotter() *Screenshotter {
	return &Screenshotter{}
}

// CaptureDisplay grabs the given display as an RGBA image.
func (s *Screenshotter) CaptureDisplay(index int) (image.Image, error) {
	if err := CheckScreenRecordingPermission(); err != nil {
		return nil, err
	}

	var (
		buf          *C.uchar
		w, h, stride C.int
	)
	if C.cg_capture_display(C.int(index), &buf, &w, &h, &stride) != 0 {
		return nil, fmt.Errorf("failed to capture display %d", index)
	}
	defer C.free(unsafe.Pointer(buf))

	width, height, rowBytes := int(w), int(h), int(stride)
	src := unsafe.Slice((*byte)(unsafe.Pointer(buf)), height*rowBytes)

	// CGDisplayCreateImage yields BGRA; swizzle into an RGBA image.
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		srcRow := src[y*rowBytes:]
		dstRow := img.Pix[y*img.Stride:]
		for x := 0; x < width; x++ {
			si, di := x*4, x*4
			dstRow[di+0] = srcRow[si+2]
			dstRow[di+1] = srcRow[si+1]
			dstRow[di+2] = srcRow[si+0]
			dstRow[di+3] = srcRow[si+3]
		}
	}
	return img, nil
}
