package segment

import (
	"context"
	"image"
	"sync"
	"sync/atomic"

	"github.com/golang/glog"
)

// Pump submits frames to a Segmenter one at a time. Frames offered while a request is in
// flight are dropped.
type Pump struct {
	seg Segmenter
	box Mailbox
	ctx context.Context

	wg      sync.WaitGroup
	dropped atomic.Uint64
	failed  atomic.Uint64
}

// NewPump returns a pump whose requests are canceled with ctx.
func NewPump(ctx context.Context, seg Segmenter) *Pump {
	return &Pump{seg: seg, ctx: ctx}
}

// Offer starts a segmentation of a copy of frame unless one is already running. It never
// blocks and reports whether the frame was accepted.
func (p *Pump) Offer(frame *image.RGBA) bool {
	if p.ctx.Err() != nil {
		return false
	}
	if !p.box.TryAcquire() {
		p.dropped.Add(1)
		return false
	}
	snapshot := Clone(frame)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer p.box.Release()

		res, err := p.seg.Segment(p.ctx, snapshot)
		switch {
		case err != nil:
			p.failed.Add(1)
			glog.Warningf("segment: %v", err)
		case !res.Complete():
			p.failed.Add(1)
			glog.Warning("segment: incomplete result discarded")
		default:
			p.box.Store(res)
		}
	}()
	return true
}

// Latest returns the newest complete result, or nil if none has arrived yet.
func (p *Pump) Latest() *Result {
	return p.box.Latest()
}

// Busy reports whether a segmentation is in flight.
func (p *Pump) Busy() bool {
	return p.box.InFlight()
}

// Dropped is the number of frames refused because a request was in flight.
func (p *Pump) Dropped() uint64 {
	return p.dropped.Load()
}

// Failed is the number of requests that errored or returned an incomplete result.
func (p *Pump) Failed() uint64 {
	return p.failed.Load()
}

// Wait blocks until no request is in flight.
func (p *Pump) Wait() {
	p.wg.Wait()
}
