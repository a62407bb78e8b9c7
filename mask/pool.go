package mask

import (
	"errors"
	"image"
	"sync"
)

// ErrPoolExhausted is returned by With when the surfaces are already lent out.
var ErrPoolExhausted = errors.New("mask: scratch surfaces already in use")

// Pool owns the two scratch surfaces used while compositing. They are allocated on first
// use and again only when the requested size changes.
type Pool struct {
	mu     sync.Mutex
	a, b   *image.RGBA
	inUse  bool
	allocs int
}

// NewPool returns an empty pool.
func NewPool() *Pool {
	return &Pool{}
}

// With lends both surfaces, cleared and sized w×h, to fn for the duration of the call.
func (p *Pool) With(w, h int, fn func(a, b *image.RGBA) error) error {
	a, b, err := p.acquire(w, h)
	if err != nil {
		return err
	}
	defer p.release()

	clear(a.Pix)
	clear(b.Pix)
	return fn(a, b)
}

// Allocations counts how many times the surfaces were (re)allocated.
func (p *Pool) Allocations() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.allocs
}

func (p *Pool) acquire(w, h int) (*image.RGBA, *image.RGBA, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.inUse {
		return nil, nil, ErrPoolExhausted
	}
	r := image.Rect(0, 0, w, h)
	if p.a == nil || p.a.Rect != r {
		p.a = image.NewRGBA(r)
		p.b = image.NewRGBA(r)
		p.allocs++
	}
	p.inUse = true
	return p.a, p.b, nil
}

func (p *Pool) release() {
	p.mu.Lock()
	p.inUse = false
	p.mu.Unlock()
}
