// Package debounce provides a trailing-edge debouncer: when calls arrive in
// a burst, only the last one runs, after the quiet window elapses. Callers
// whose turn was taken over by a newer call get ErrSuperseded.
package debounce

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrSuperseded is returned to a caller whose pending call was replaced by a
// newer one before its window elapsed.
var ErrSuperseded = errors.New("debounce: superseded by a newer call")

// Debouncer coalesces bursts of calls into the trailing call. Executions are
// not cancelled once started: two calls spaced wider than the window both
// run, and their results land in arrival order.
type Debouncer struct {
	mu     sync.Mutex
	window time.Duration
	seq    uint64
}

// New returns a debouncer with the given quiet window.
func New(window time.Duration) *Debouncer {
	return &Debouncer{window: window}
}

// Do executes fn after the quiet window, unless a newer Do call arrives
// first, in which case it returns ErrSuperseded without running fn.
func Do[T any](ctx context.Context, d *Debouncer, fn func() (T, error)) (T, error) {
	var zero T

	d.mu.Lock()
	d.seq++
	turn := d.seq
	d.mu.Unlock()

	timer := time.NewTimer(d.window)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-timer.C:
	}

	d.mu.Lock()
	superseded := d.seq != turn
	d.mu.Unlock()
	if superseded {
		return zero, ErrSuperseded
	}

	return fn()
}
