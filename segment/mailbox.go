package segment

import "sync/atomic"

// Mailbox is a single-slot, latest-value cell plus an in-flight flag. Writers replace the
// whole Result; readers never block and may see nil or a stale value.
type Mailbox struct {
	latest   atomic.Pointer[Result]
	inflight atomic.Bool
}

// Latest returns the most recent result, or nil.
func (m *Mailbox) Latest() *Result {
	return m.latest.Load()
}

// Store publishes r, replacing any previous result.
func (m *Mailbox) Store(r *Result) {
	m.latest.Store(r)
}

// TryAcquire marks a request in flight. It returns false if one already is.
func (m *Mailbox) TryAcquire() bool {
	return m.inflight.CompareAndSwap(false, true)
}

// Release clears the in-flight flag.
func (m *Mailbox) Release() {
	m.inflight.Store(false)
}

// InFlight reports whether a request is outstanding.
func (m *Mailbox) InFlight() bool {
	return m.inflight.Load()
}
