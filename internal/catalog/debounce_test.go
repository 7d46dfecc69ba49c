package catalog

import (
	"sync"
	"testing"
	"time"
)

type evalRecorder struct {
	mu     sync.Mutex
	values []string
}

func (r *evalRecorder) record(value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, value)
}

func (r *evalRecorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.values))
	copy(out, r.values)
	return out
}

func TestDebouncerCoalescesRapidInput(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	rec := &evalRecorder{}

	d.Set("a", rec.record)
	d.Set("ab", rec.record)
	d.Set("abc", rec.record)

	time.Sleep(200 * time.Millisecond)

	values := rec.snapshot()
	if len(values) != 1 {
		t.Fatalf("expected exactly one evaluation, got %d: %v", len(values), values)
	}
	if values[0] != "abc" {
		t.Fatalf("expected settled value %q, got %q", "abc", values[0])
	}
}

func TestDebouncerEchoesRawInputImmediately(t *testing.T) {
	d := NewDebouncer(time.Second)
	d.Set("par", func(string) {})
	if d.Value() != "par" {
		t.Fatalf("expected immediate echo of raw input, got %q", d.Value())
	}
}

func TestDebouncerSeparatedInputsEachEvaluate(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	rec := &evalRecorder{}

	d.Set("first", rec.record)
	time.Sleep(100 * time.Millisecond)
	d.Set("second", rec.record)
	time.Sleep(100 * time.Millisecond)

	values := rec.snapshot()
	if len(values) != 2 || values[0] != "first" || values[1] != "second" {
		t.Fatalf("expected two settled evaluations, got %v", values)
	}
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	rec := &evalRecorder{}

	d.Set("typed", rec.record)
	d.Stop()
	time.Sleep(100 * time.Millisecond)

	if values := rec.snapshot(); len(values) != 0 {
		t.Fatalf("expected no evaluation after Stop, got %v", values)
	}
	if d.Value() != "typed" {
		t.Fatalf("Stop should keep the recorded value, got %q", d.Value())
	}
}

func TestDebouncerDefaultWindow(t *testing.T) {
	d := NewDebouncer(0)
	if d.wait != DefaultDebounce {
		t.Fatalf("expected default window %v, got %v", DefaultDebounce, d.wait)
	}
}
