package compositor

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/peragwin/camfx/effects"
)

// ErrUnknownEffect is returned when selecting a key that is not in the catalog.
var ErrUnknownEffect = errors.New("unknown effect")

// FilterState is the state that persists across ticks: the selected effect, the audio
// palette index and the clock. It is safe for concurrent use; the selected effect is a
// single atomic value so a switch is seen whole on the next tick.
type FilterState struct {
	effect  atomic.Pointer[string]
	palette atomic.Int32

	start time.Time
	now   func() time.Time
}

// NewFilterState starts the clock with key selected.
func NewFilterState(key string) *FilterState {
	s := &FilterState{now: time.Now}
	s.start = s.now()
	s.effect.Store(&key)
	return s
}

// Effect is the selected effect key.
func (s *FilterState) Effect() string {
	return *s.effect.Load()
}

// Select switches to key, which must be in the catalog.
func (s *FilterState) Select(key string) error {
	if _, ok := effects.Find(key); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEffect, key)
	}
	s.effect.Store(&key)
	return nil
}

// Next selects the following catalog entry and returns its key.
func (s *FilterState) Next() string {
	return s.advance(effects.Next)
}

// Prev selects the preceding catalog entry and returns its key.
func (s *FilterState) Prev() string {
	return s.advance(effects.Prev)
}

func (s *FilterState) advance(step func(string) string) string {
	for {
		old := s.effect.Load()
		key := step(*old)
		if s.effect.CompareAndSwap(old, &key) {
			return key
		}
	}
}

// Palette is the audio palette index.
func (s *FilterState) Palette() int {
	return int(s.palette.Load())
}

func (s *FilterState) setPalette(i int) {
	s.palette.Store(int32(i))
}

// Elapsed is the time since the state was created, in seconds. Switching effects does not
// reset it.
func (s *FilterState) Elapsed() float64 {
	return s.now().Sub(s.start).Seconds()
}
