package util

import (
	"sync"
)

// RingBuffer keeps the most recent samples of a stream.
type RingBuffer struct {
	sync.RWMutex
	buf   []float32
	index int
	count int
}

// NewRingBuffer creates a new ring buffer with the given size.
func NewRingBuffer(size int) *RingBuffer {
	return &RingBuffer{buf: make([]float32, size)}
}

// Size is the capacity of the buffer.
func (r *RingBuffer) Size() int {
	return len(r.buf)
}

// Push data onto the ring buffer. When data is longer than the buffer only its tail is
// kept.
func (r *RingBuffer) Push(data []float32) {
	r.Lock()
	defer r.Unlock()

	if len(data) >= len(r.buf) {
		copy(r.buf, data[len(data)-len(r.buf):])
		r.index = 0
		r.count = len(r.buf)
		return
	}

	n := copy(r.buf[r.index:], data)
	copy(r.buf, data[n:])
	r.index = (r.index + len(data)) % len(r.buf)
	r.count += len(data)
	if r.count > len(r.buf) {
		r.count = len(r.buf)
	}
}

// Latest fills dst with the most recent len(dst) samples, oldest first. Slots that were
// never written read as zero.
func (r *RingBuffer) Latest(dst []float64) {
	if len(dst) > len(r.buf) {
		panic("cant get size greater than size of buffer")
	}

	r.RLock()
	defer r.RUnlock()

	size := len(r.buf)
	st := r.index - len(dst)
	for i := range dst {
		j := (st + i + size) % size
		dst[i] = float64(r.buf[j])
	}
}

// Len is the number of samples written so far, capped at the buffer size.
func (r *RingBuffer) Len() int {
	r.RLock()
	defer r.RUnlock()
	return r.count
}
