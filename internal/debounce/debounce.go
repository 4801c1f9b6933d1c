// Package debounce coalesces rapid criteria changes into a single delayed
// call and tags each call with a generation so stale results can be dropped.
package debounce

import (
	"sync"
	"sync/atomic"
	"time"
)

// DefaultDelay is the quiet period between the last change and the call.
const DefaultDelay = 300 * time.Millisecond

// Func receives the criteria of the last Schedule call and its generation.
type Func[C any] func(criteria C, gen uint64)

// Trigger delays fn until Schedule has not been called for the delay.
// Only the most recent criteria ever reach fn.
type Trigger[C any] struct {
	delay time.Duration
	fn    Func[C]

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool

	gen atomic.Uint64
}

// New creates a trigger. A non-positive delay uses DefaultDelay.
func New[C any](delay time.Duration, fn Func[C]) *Trigger[C] {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Trigger[C]{delay: delay, fn: fn}
}

// Schedule cancels any pending call and starts a new delay for criteria.
// It returns the generation assigned to this call.
func (t *Trigger[C]) Schedule(criteria C) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
	}
	gen := t.gen.Add(1)
	if t.stopped {
		return gen
	}
	t.timer = time.AfterFunc(t.delay, func() {
		// A newer Schedule may have raced the timer.
		if !t.IsCurrent(gen) {
			return
		}
		t.fn(criteria, gen)
	})
	return gen
}

// Now cancels any pending call and invokes fn synchronously with a new
// generation. Used for changes that must not wait, such as a retry.
func (t *Trigger[C]) Now(criteria C) uint64 {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
	}
	gen := t.gen.Add(1)
	stopped := t.stopped
	t.mu.Unlock()

	if !stopped {
		t.fn(criteria, gen)
	}
	return gen
}

// IsCurrent reports whether gen is the latest scheduled generation.
func (t *Trigger[C]) IsCurrent(gen uint64) bool {
	return t.gen.Load() == gen
}

// Generation returns the latest generation.
func (t *Trigger[C]) Generation() uint64 {
	return t.gen.Load()
}

// Stop cancels any pending call and makes later Schedule calls no-ops.
// Results of in-flight calls become stale.
func (t *Trigger[C]) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
	}
	t.gen.Add(1)
}
