// Package loop provides a single-goroutine run-to-completion task queue and a
// repeating scheduler whose firings are delivered through that queue.
package loop

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jwulff/slider/internal/slider"
)

// ErrStopped is returned when work is submitted to a loop that is no longer
// running.
var ErrStopped = errors.New("loop stopped")

// Loop runs posted tasks one at a time, in FIFO order, on the goroutine that
// called Run.
type Loop struct {
	tasks    chan func()
	done     chan struct{}
	stopOnce sync.Once
}

// New creates a Loop whose queue holds up to buffer pending tasks.
func New(buffer int) *Loop {
	if buffer < 1 {
		buffer = 1
	}
	return &Loop{
		tasks: make(chan func(), buffer),
		done:  make(chan struct{}),
	}
}

// Run drains the queue until ctx is cancelled. Tasks still queued at that
// point are dropped.
func (l *Loop) Run(ctx context.Context) error {
	defer l.stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.tasks:
			fn()
		}
	}
}

// Done is closed once Run has returned.
func (l *Loop) Done() <-chan struct{} { return l.done }

// Post enqueues fn. It blocks while the queue is full and returns false if
// the loop has stopped.
func (l *Loop) Post(fn func()) bool {
	return l.send(fn, nil)
}

// Do runs fn on the loop and waits for it to finish.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	task := func() {
		defer close(finished)
		fn()
	}
	select {
	case l.tasks <- task:
	case <-l.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-finished:
		return nil
	case <-l.done:
		// Run may have returned between dequeuing and finishing.
		select {
		case <-finished:
			return nil
		default:
			return ErrStopped
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ScheduleRepeating arms a task that posts action to the loop every period.
// The returned timer's Cancel must be called from the loop (or before Run
// starts) for the no-late-firing guarantee to hold.
func (l *Loop) ScheduleRepeating(action func(), period time.Duration) slider.Timer {
	t := &repeatingTimer{stop: make(chan struct{})}
	ticker := time.NewTicker(period)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-t.stop:
				return
			case <-l.done:
				return
			case <-ticker.C:
				fire := func() {
					if t.cancelled.Load() {
						return
					}
					action()
				}
				if !l.send(fire, t.stop) {
					return
				}
			}
		}
	}()
	return t
}

func (l *Loop) send(fn func(), abort <-chan struct{}) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.tasks <- fn:
		return true
	case <-l.done:
		return false
	case <-abort:
		return false
	}
}

func (l *Loop) stop() {
	l.stopOnce.Do(func() { close(l.done) })
}

type repeatingTimer struct {
	cancelled atomic.Bool
	stop      chan struct{}
	once      sync.Once
}

// Cancel stops the ticker goroutine and marks any queued firing as dead.
func (t *repeatingTimer) Cancel() {
	t.once.Do(func() {
		t.cancelled.Store(true)
		close(t.stop)
	})
}
