// Package darwin implements the platform collaborators for macOS using the
// Accessibility (AX) and CoreGraphics APIs. It registers itself with the
// platform package via init().
package darwin
