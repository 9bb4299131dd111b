package forms

import (
	"sync"
	"time"
)

// DefaultSaveDelay is how long a form waits after the last edit before
// persisting it.
const DefaultSaveDelay = 2000 * time.Millisecond

// Debouncer coalesces a burst of calls into a single deferred one. Each
// Schedule cancels the previous pending function, so only the latest
// scheduled call ever fires.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultSaveDelay
	}
	return &Debouncer{delay: delay}
}

// Schedule arranges for fn to run after the configured delay, replacing any
// previously scheduled function. fn runs on a timer goroutine.
func (d *Debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Cancel drops the pending function, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
