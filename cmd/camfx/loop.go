package main

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"net/http"

	"github.com/golang/glog"
	"github.com/peragwin/camfx/compositor"
	"github.com/peragwin/camfx/segment"
)

// frameLoop ticks the compositor and answers snapshot requests between ticks, so surface
// output is only ever read from the render goroutine.
type frameLoop struct {
	*compositor.Compositor
	surf      compositor.Surface
	snapshots chan chan *image.RGBA
}

func newFrameLoop(c *compositor.Compositor, surf compositor.Surface) *frameLoop {
	return &frameLoop{Compositor: c, surf: surf, snapshots: make(chan chan *image.RGBA)}
}

func (l *frameLoop) Tick() (compositor.Outcome, error) {
	outcome, err := l.Compositor.Tick()
	select {
	case reply := <-l.snapshots:
		out, oerr := l.surf.Output()
		if oerr != nil {
			reply <- nil
		} else {
			reply <- segment.Clone(out)
		}
	default:
	}
	return outcome, err
}

// run ticks at fps until ctx is done.
func (l *frameLoop) run(ctx context.Context, ticks <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticks:
			if _, err := l.Tick(); err != nil {
				glog.Errorf("tick: %v", err)
			}
		}
	}
}

// snapshot waits for the next tick to copy the surface output.
func (l *frameLoop) snapshot(ctx context.Context) (*image.RGBA, error) {
	reply := make(chan *image.RGBA, 1)
	select {
	case l.snapshots <- reply:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case img := <-reply:
		if img == nil {
			return nil, compositor.ErrNoOutput
		}
		return img, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (l *frameLoop) serveSnapshot(w http.ResponseWriter, r *http.Request) {
	img, err := l.snapshot(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		http.Error(w, fmt.Sprintf("encoding snapshot: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}
