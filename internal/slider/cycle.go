// Package slider implements a cyclic slide cursor with an optional
// auto-advance timer. Presentation and scheduling are supplied by the caller.
package slider

import "time"

// DefaultPeriod is the auto-advance interval used when Options.Period is zero.
const DefaultPeriod = 5 * time.Second

// Presenter makes exactly the slide at index visible and hides all others.
// A single call must switch visibility as one step.
type Presenter interface {
	ShowSlide(index int)
}

// PresenterFunc adapts a plain function to Presenter.
type PresenterFunc func(index int)

// ShowSlide calls f(index).
func (f PresenterFunc) ShowSlide(index int) { f(index) }

// Timer is a handle to a repeating scheduled task. Cancel must be idempotent
// and must prevent any firing that has not run yet.
type Timer interface {
	Cancel()
}

// Scheduler arms repeating tasks.
type Scheduler interface {
	ScheduleRepeating(action func(), period time.Duration) Timer
}

// Options configures a Cycle.
type Options struct {
	// Period between automatic advances. Zero means DefaultPeriod.
	Period time.Duration
	// StopOnNext makes a manual Next cancel auto-advance the way Retreat does.
	StopOnNext bool
}

// Cycle owns the cursor over a fixed sequence of slides.
//
// A Cycle is not safe for concurrent use. All methods, including the timer
// callback, must run on the same control thread.
type Cycle[S any] struct {
	slides    []S
	cursor    int
	presenter Presenter
	scheduler Scheduler
	timer     Timer
	opts      Options
}

// New builds a Cycle over slides. If there is at least one slide, the first
// one is shown and auto-advance is armed.
func New[S any](slides []S, presenter Presenter, scheduler Scheduler, opts Options) *Cycle[S] {
	if opts.Period <= 0 {
		opts.Period = DefaultPeriod
	}
	c := &Cycle[S]{
		slides:    append([]S(nil), slides...),
		presenter: presenter,
		scheduler: scheduler,
		opts:      opts,
	}
	if len(c.slides) > 0 {
		c.presenter.ShowSlide(c.cursor)
		c.arm()
	}
	return c
}

// Wrap maps any index onto [0, n). It returns 0 when n <= 0.
func Wrap(index, n int) int {
	if n <= 0 {
		return 0
	}
	return ((index % n) + n) % n
}

// Show moves the cursor to index, wrapping out-of-range values, and presents
// the resulting slide. No-op on an empty sequence.
func (c *Cycle[S]) Show(index int) {
	if len(c.slides) == 0 {
		return
	}
	c.cursor = Wrap(index, len(c.slides))
	c.presenter.ShowSlide(c.cursor)
}

// Advance shows the next slide. The auto-advance timer calls this.
func (c *Cycle[S]) Advance() {
	c.Show(c.cursor + 1)
}

// Next is the manual "next" control. It behaves like Advance unless
// Options.StopOnNext is set, in which case auto-advance is cancelled first.
func (c *Cycle[S]) Next() {
	if c.opts.StopOnNext {
		c.Pause()
	}
	c.Advance()
}

// Retreat cancels auto-advance and shows the previous slide.
func (c *Cycle[S]) Retreat() {
	c.Pause()
	c.Show(c.cursor - 1)
}

// Pause cancels auto-advance. Safe to call when nothing is armed.
func (c *Cycle[S]) Pause() {
	if c.timer == nil {
		return
	}
	c.timer.Cancel()
	c.timer = nil
}

// Resume re-arms auto-advance if it is not running and there is something
// to show.
func (c *Cycle[S]) Resume() {
	if len(c.slides) == 0 || c.timer != nil {
		return
	}
	c.arm()
}

// Stop releases the timer. Owners call it on shutdown.
func (c *Cycle[S]) Stop() { c.Pause() }

// Cursor returns the index of the visible slide.
func (c *Cycle[S]) Cursor() int { return c.cursor }

// Len returns the number of slides.
func (c *Cycle[S]) Len() int { return len(c.slides) }

// Period returns the auto-advance interval.
func (c *Cycle[S]) Period() time.Duration { return c.opts.Period }

// AutoAdvancing reports whether a timer is armed.
func (c *Cycle[S]) AutoAdvancing() bool { return c.timer != nil }

// Current returns the visible slide. ok is false for an empty sequence.
func (c *Cycle[S]) Current() (s S, ok bool) {
	if len(c.slides) == 0 {
		return s, false
	}
	return c.slides[c.cursor], true
}

// Slide returns the slide at index i, wrapped.
func (c *Cycle[S]) Slide(i int) (s S, ok bool) {
	if len(c.slides) == 0 {
		return s, false
	}
	return c.slides[Wrap(i, len(c.slides))], true
}

func (c *Cycle[S]) arm() {
	c.timer = c.scheduler.ScheduleRepeating(c.Advance, c.opts.Period)
}
