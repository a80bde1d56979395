package listing

import (
	"sync"
	"time"
)

// debouncer coalesces rapid updates and delivers only the last value once the
// input has been quiet for delay (trailing edge).
type debouncer struct {
	delay time.Duration
	fire  func(string)

	mu      sync.Mutex
	timer   *time.Timer
	pending string
	seq     uint64
	stopped bool
	wg      sync.WaitGroup
}

func newDebouncer(delay time.Duration, fire func(string)) *debouncer {
	return &debouncer{delay: delay, fire: fire}
}

// Trigger records v as the pending value and restarts the quiet period.
func (d *debouncer) Trigger(v string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.seq++
	seq := d.seq
	d.pending = v
	if d.timer != nil && d.timer.Stop() {
		d.wg.Done()
	}
	d.wg.Add(1)
	d.timer = time.AfterFunc(d.delay, func() {
		defer d.wg.Done()
		d.flush(seq)
	})
}

// flush delivers the pending value if no newer Trigger happened since seq.
func (d *debouncer) flush(seq uint64) {
	d.mu.Lock()
	if d.stopped || seq != d.seq {
		d.mu.Unlock()
		return
	}
	v := d.pending
	d.mu.Unlock()
	d.fire(v)
}

// Stop cancels any pending delivery and waits for a running one to return.
func (d *debouncer) Stop() {
	d.mu.Lock()
	d.stopped = true
	if d.timer != nil && d.timer.Stop() {
		d.wg.Done()
	}
	d.mu.Unlock()
	d.wg.Wait()
}
