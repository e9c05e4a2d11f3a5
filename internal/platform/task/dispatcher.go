// Package task runs fire-and-forget background work.
package task

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Dispatcher runs functions on background goroutines. A dispatched function's
// error or panic is logged and dropped; it never reaches the request that
// scheduled it.
type Dispatcher struct {
	wg      sync.WaitGroup
	timeout time.Duration
}

// NewDispatcher creates a Dispatcher. timeout bounds each task's context;
// 0 falls back to one minute.
func NewDispatcher(timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &Dispatcher{timeout: timeout}
}

// Go schedules fn on a new goroutine with its own bounded context.
func (d *Dispatcher) Go(name string, fn func(ctx context.Context) error) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				slog.Error("background task panicked", "task", name, "panic", r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := fn(ctx); err != nil {
			slog.Error("background task failed", "task", name, "error", err)
		}
	}()
}

// Wait blocks until all dispatched tasks finish. Used at shutdown and in tests.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
