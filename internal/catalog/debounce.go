package catalog

import (
	"sync"
	"time"
)

const DefaultDebounce = 300 * time.Millisecond

// Debouncer coalesces rapid text input. Set records the raw value
// immediately (for UI echo via Value) but defers the evaluation callback;
// an input arriving within the window cancels the previously pending
// evaluation, so only the settled value is ever evaluated.
type Debouncer struct {
	mu    sync.Mutex
	wait  time.Duration
	timer *time.Timer
	value string
}

func NewDebouncer(wait time.Duration) *Debouncer {
	if wait <= 0 {
		wait = DefaultDebounce
	}
	return &Debouncer{wait: wait}
}

func (d *Debouncer) Set(value string, evaluate func(settled string)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.value = value
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.wait, func() {
		d.mu.Lock()
		settled := d.value
		d.mu.Unlock()
		evaluate(settled)
	})
}

// Value returns the raw input as last typed, settled or not.
func (d *Debouncer) Value() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.value
}

// Stop cancels any pending evaluation. The recorded value is kept.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
