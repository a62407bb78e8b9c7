package segment

import (
	"context"
	"errors"
	"image"
	"image/color"
	"sync"
	"testing"
	"time"
)

func halves(w, h int, left, right uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := left
			if x >= w/2 {
				v = right
			}
			img.SetRGBA(x, y, color.RGBA{v, v, v, 255})
		}
	}
	return img
}

func TestOtsuThreshold(t *testing.T) {
	hist := make([]float64, 256)
	hist[30] = 100
	hist[200] = 100
	thr := OtsuThreshold(hist)
	if thr < 30 || thr >= 200 {
		t.Fatal("threshold", thr)
	}
	if OtsuThreshold(make([]float64, 256)) != 0 {
		t.Fatal("empty histogram")
	}
}

func TestOtsuSegment(t *testing.T) {
	frame := halves(16, 8, 30, 200)
	res, err := Otsu{}.Segment(context.Background(), frame)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Complete() {
		t.Fatal("incomplete result")
	}
	for x := 0; x < 16; x++ {
		want := uint8(0)
		if x >= 8 {
			want = 0xff
		}
		if got := res.Mask.AlphaAt(x, 3).A; got != want {
			t.Fatalf("x=%d: mask %d, want %d", x, got, want)
		}
	}

	inv, err := Otsu{Invert: true, Softness: 1}.Segment(context.Background(), frame)
	if err != nil {
		t.Fatal(err)
	}
	if inv.Mask.AlphaAt(0, 3).A < 0xf0 || inv.Mask.AlphaAt(15, 3).A > 0x0f {
		t.Fatal("inverted soft mask", inv.Mask.AlphaAt(0, 3), inv.Mask.AlphaAt(15, 3))
	}
	edge := inv.Mask.AlphaAt(7, 3).A
	if edge == 0 || edge == 0xff {
		t.Fatal("edge not softened", edge)
	}
}

func TestResultComplete(t *testing.T) {
	var r *Result
	if r.Complete() {
		t.Fatal("nil result complete")
	}
	if (&Result{Mask: image.NewAlpha(image.Rect(0, 0, 1, 1))}).Complete() {
		t.Fatal("result without image complete")
	}
}

func TestMailbox(t *testing.T) {
	var m Mailbox
	if m.Latest() != nil {
		t.Fatal("empty mailbox has a value")
	}
	if !m.TryAcquire() {
		t.Fatal("first acquire failed")
	}
	if m.TryAcquire() {
		t.Fatal("second acquire succeeded while in flight")
	}
	a, b := &Result{}, &Result{}
	m.Store(a)
	m.Store(b)
	if m.Latest() != b {
		t.Fatal("latest is not the newest store")
	}
	m.Release()
	if m.InFlight() || !m.TryAcquire() {
		t.Fatal("release did not clear the flag")
	}
}

// blockingSegmenter holds every request until release is closed.
type blockingSegmenter struct {
	started chan struct{}
	release chan struct{}
	mu      sync.Mutex
	calls   int
}

func (s *blockingSegmenter) Segment(ctx context.Context, frame *image.RGBA) (*Result, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	s.started <- struct{}{}
	select {
	case <-s.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return &Result{Mask: image.NewAlpha(frame.Rect), Image: frame}, nil
}

func TestPumpDropsWhileBusy(t *testing.T) {
	seg := &blockingSegmenter{started: make(chan struct{}, 1), release: make(chan struct{})}
	p := NewPump(context.Background(), seg)
	frame := halves(4, 4, 0, 255)

	if !p.Offer(frame) {
		t.Fatal("first offer refused")
	}
	<-seg.started
	for i := 0; i < 3; i++ {
		if p.Offer(frame) {
			t.Fatal("offer accepted while in flight")
		}
	}
	if p.Dropped() != 3 {
		t.Fatal("dropped", p.Dropped())
	}
	if p.Latest() != nil {
		t.Fatal("result visible before completion")
	}

	close(seg.release)
	p.Wait()
	res := p.Latest()
	if !res.Complete() {
		t.Fatal("no result after completion")
	}
	if &res.Image.Pix[0] == &frame.Pix[0] {
		t.Fatal("segmenter saw the caller's frame instead of a copy")
	}
	if p.Busy() {
		t.Fatal("still busy after completion")
	}

	if !p.Offer(frame) {
		t.Fatal("offer refused after completion")
	}
	<-seg.started
	p.Wait()
	if seg.calls != 2 {
		t.Fatal("calls", seg.calls)
	}
}

func TestPumpKeepsLastGoodResult(t *testing.T) {
	calls := 0
	p := NewPump(context.Background(), SegmenterFunc(func(ctx context.Context, f *image.RGBA) (*Result, error) {
		calls++
		switch calls {
		case 1:
			return &Result{Mask: image.NewAlpha(f.Rect), Image: f}, nil
		case 2:
			return nil, errors.New("model unavailable")
		}
		return &Result{Image: f}, nil
	}))
	frame := halves(2, 2, 0, 255)
	for i := 0; i < 3; i++ {
		if !p.Offer(frame) {
			t.Fatal("offer refused")
		}
		p.Wait()
	}
	if p.Failed() != 2 {
		t.Fatal("failed", p.Failed())
	}
	if !p.Latest().Complete() {
		t.Fatal("good result was replaced")
	}
}

func TestPumpCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	seg := &blockingSegmenter{started: make(chan struct{}, 1), release: make(chan struct{})}
	p := NewPump(ctx, seg)
	p.Offer(halves(2, 2, 0, 255))
	<-seg.started
	cancel()

	done := make(chan struct{})
	go func() { p.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("pump did not stop on cancel")
	}
	if p.Offer(halves(2, 2, 0, 255)) {
		t.Fatal("offer accepted after cancel")
	}
}
