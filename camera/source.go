// Package camera provides the frame sources the compositor reads from.
package camera

import (
	"errors"
	"fmt"
	"image"
	"strings"
	"sync/atomic"
)

// ErrNotReady is returned by a Source that has no frame yet.
var ErrNotReady = errors.New("camera: no frame ready")

// Source yields the current camera frame. The returned image is read-only and only valid
// until the next call.
type Source interface {
	Frame() (*image.RGBA, error)
}

// Facing is the direction a camera points.
type Facing int

const (
	FacingUnknown Facing = iota
	FacingFront
	FacingBack
)

// ParseFacing parses "front", "back" or "unknown". The browser names "user" and
// "environment" are accepted too.
func ParseFacing(s string) (Facing, error) {
	switch strings.ToLower(s) {
	case "", "unknown":
		return FacingUnknown, nil
	case "front", "user":
		return FacingFront, nil
	case "back", "environment":
		return FacingBack, nil
	}
	return FacingUnknown, fmt.Errorf("camera: unknown facing %q", s)
}

func (f Facing) String() string {
	switch f {
	case FacingFront:
		return "front"
	case FacingBack:
		return "back"
	}
	return "unknown"
}

// Mirrored reports whether frames from this camera are shown mirrored. Cameras of unknown
// facing are treated as selfie cameras.
func (f Facing) Mirrored() bool {
	return f != FacingBack
}

// Feed is a Source that another goroutine pushes frames into, such as a capture device
// driver. Only the latest frame is kept.
type Feed struct {
	latest atomic.Pointer[image.RGBA]
}

// Push publishes img as the current frame. The caller must not modify img afterwards.
func (f *Feed) Push(img *image.RGBA) {
	f.latest.Store(img)
}

// Frame implements Source.
func (f *Feed) Frame() (*image.RGBA, error) {
	img := f.latest.Load()
	if img == nil {
		return nil, ErrNotReady
	}
	return img, nil
}
