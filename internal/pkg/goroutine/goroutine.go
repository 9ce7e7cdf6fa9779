// Package goroutine runs background work (NATS consumers, the OTP sweeper,
// fire-and-forget tasks) under one bounded, panic-safe manager that the app
// drains on shutdown.
package goroutine

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"runtime/debug"
	"sync"
	"time"

	"github.com/shandysiswandi/backlink/internal/pkg/stacktrace"
)

// DefaultMaxGoroutine is the per-CPU slot count used when NewManager gets a
// non-positive limit.
const DefaultMaxGoroutine int = 100

// Manager runs tasks with a fixed number of slots and collects their errors.
//
// Long-lived tasks must return once their context is done, otherwise Wait
// blocks forever.
type Manager struct {
	slots chan struct{}
	wg    sync.WaitGroup

	// state guards closed; Go holds it for reading until the task is
	// registered with wg so Wait never races an Add.
	state  sync.RWMutex
	closed bool

	errMu sync.Mutex
	errs  []error
}

// NewManager returns a Manager with maxGoroutine slots.
func NewManager(maxGoroutine int) *Manager {
	if maxGoroutine < 1 {
		maxGoroutine = runtime.NumCPU() * DefaultMaxGoroutine
	}

	return &Manager{slots: make(chan struct{}, maxGoroutine)}
}

// Go runs f in a new goroutine when a slot is free. A full or closed manager
// drops f and logs a warning.
func (g *Manager) Go(ctx context.Context, f func(ctx context.Context) error) {
	if g == nil {
		return
	}

	g.state.RLock()
	defer g.state.RUnlock()

	if g.closed {
		slog.WarnContext(ctx, "goroutine manager is closed, task dropped")
		return
	}

	select {
	case g.slots <- struct{}{}:
	default:
		slog.WarnContext(ctx, "goroutine limit reached, task dropped", "limit", cap(g.slots))
		return
	}

	g.wg.Add(1)
	go g.run(ctx, f)
}

func (g *Manager) run(ctx context.Context, f func(ctx context.Context) error) {
	defer g.wg.Done()
	defer func() { <-g.slots }()
	defer recoverTask(ctx)

	if err := ctx.Err(); err != nil {
		slog.WarnContext(ctx, "task skipped, context already done", "error", err)
		return
	}

	if err := f(ctx); err != nil {
		g.errMu.Lock()
		g.errs = append(g.errs, err)
		g.errMu.Unlock()
	}
}

func recoverTask(ctx context.Context) {
	rvr := recover()
	if rvr == nil {
		return
	}

	stack := debug.Stack()
	if paths := stacktrace.InternalPaths(stack); len(paths) > 0 {
		slog.ErrorContext(ctx, "panic in background task", "panic", rvr, "stack", paths)
		return
	}
	slog.ErrorContext(ctx, "panic in background task", "panic", rvr, "stack", string(stack))
}

// Wait stops accepting tasks, blocks until running ones finish and returns
// their joined errors.
func (g *Manager) Wait() error {
	if g == nil {
		return nil
	}

	g.state.Lock()
	g.closed = true
	g.state.Unlock()

	g.wg.Wait()

	g.errMu.Lock()
	defer g.errMu.Unlock()
	return errors.Join(g.errs...)
}

// Every runs f once per interval until ctx is done, holding one slot for the
// whole loop. Errors from f are logged and do not stop the loop. A
// non-positive interval schedules nothing.
func (g *Manager) Every(ctx context.Context, name string, interval time.Duration, f func(ctx context.Context) error) {
	if interval <= 0 {
		return
	}

	g.Go(ctx, func(ctx context.Context) error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				slog.InfoContext(ctx, "periodic job stopped", "job", name)
				return nil
			case <-ticker.C:
				if err := f(ctx); err != nil {
					slog.ErrorContext(ctx, "periodic job failed", "job", name, "error", err)
				}
			}
		}
	})
}
