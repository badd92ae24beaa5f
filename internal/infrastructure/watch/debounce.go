package watch

import (
	"sync"
	"time"
)

// debouncer coalesces bursts of editor writes into one reload.
type debouncer struct {
	window time.Duration
	fire   func()

	mu    sync.Mutex
	timer *time.Timer
}

func newDebouncer(window time.Duration, fire func()) *debouncer {
	return &debouncer{window: window, fire: fire}
}

// trigger restarts the window; fire runs once the window passes quietly.
func (d *debouncer) trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
