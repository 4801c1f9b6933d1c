package debounce

import (
	"sync"
	"testing"
	"time"
)

type recorder struct {
	mu    sync.Mutex
	calls []string
	gens  []uint64
	done  chan struct{}
}

func newRecorder() *recorder {
	return &recorder{done: make(chan struct{}, 16)}
}

func (r *recorder) fn(c string, gen uint64) {
	r.mu.Lock()
	r.calls = append(r.calls, c)
	r.gens = append(r.gens, gen)
	r.mu.Unlock()
	r.done <- struct{}{}
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func TestTrigger_Coalesces(t *testing.T) {
	rec := newRecorder()
	tr := New(20*time.Millisecond, rec.fn)

	var last uint64
	for _, q := range []string{"d", "da", "dam", "dama", "damas"} {
		last = tr.Schedule(q)
	}

	select {
	case <-rec.done:
	case <-time.After(2 * time.Second):
		t.Fatal("trigger never fired")
	}
	// Give any stray timers a chance to fire.
	time.Sleep(60 * time.Millisecond)

	calls := rec.snapshot()
	if len(calls) != 1 || calls[0] != "damas" {
		t.Fatalf("calls = %v, want exactly [damas]", calls)
	}
	if rec.gens[0] != last {
		t.Errorf("gen = %d, want %d", rec.gens[0], last)
	}
	if !tr.IsCurrent(last) {
		t.Error("last generation should be current")
	}
}

func TestTrigger_GenerationsIncrease(t *testing.T) {
	tr := New(time.Hour, func(string, uint64) {})
	defer tr.Stop()

	a := tr.Schedule("a")
	b := tr.Schedule("b")
	if b <= a {
		t.Errorf("generations not increasing: %d then %d", a, b)
	}
	if tr.IsCurrent(a) {
		t.Error("superseded generation reported current")
	}
	if tr.Generation() != b {
		t.Errorf("Generation = %d, want %d", tr.Generation(), b)
	}
}

func TestTrigger_StopCancelsPending(t *testing.T) {
	rec := newRecorder()
	tr := New(20*time.Millisecond, rec.fn)

	gen := tr.Schedule("x")
	tr.Stop()
	time.Sleep(60 * time.Millisecond)

	if calls := rec.snapshot(); len(calls) != 0 {
		t.Errorf("calls after Stop = %v", calls)
	}
	if tr.IsCurrent(gen) {
		t.Error("in-flight generation should be stale after Stop")
	}
	tr.Schedule("y")
	time.Sleep(60 * time.Millisecond)
	if calls := rec.snapshot(); len(calls) != 0 {
		t.Errorf("Schedule after Stop fired: %v", calls)
	}
}

func TestTrigger_Now(t *testing.T) {
	rec := newRecorder()
	tr := New(time.Hour, rec.fn)
	defer tr.Stop()

	tr.Schedule("pending")
	gen := tr.Now("immediate")

	calls := rec.snapshot()
	if len(calls) != 1 || calls[0] != "immediate" {
		t.Errorf("calls = %v", calls)
	}
	if !tr.IsCurrent(gen) {
		t.Error("Now generation should be current")
	}
}

func TestNew_DefaultDelay(t *testing.T) {
	tr := New[string](0, func(string, uint64) {})
	if tr.delay != DefaultDelay {
		t.Errorf("delay = %v, want %v", tr.delay, DefaultDelay)
	}
}
