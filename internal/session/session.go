// Package session runs a slide cycle headlessly on an event loop and exposes
// its controls to goroutines outside that loop.
package session

import (
	"context"
	"log"
	"sync"

	"github.com/jwulff/slider/internal/deck"
	"github.com/jwulff/slider/internal/loop"
	"github.com/jwulff/slider/internal/slider"
)

// State is a snapshot of the slideshow.
type State struct {
	Cursor      int
	Total       int
	AutoAdvance bool
	Slide       deck.Slide
}

// Title returns the label of the visible slide, or "" for an empty deck.
func (s State) Title() string {
	if s.Total == 0 {
		return ""
	}
	return s.Slide.Label()
}

// Session owns one cycle and the loop that drives it.
type Session struct {
	deck   deck.Deck
	loop   *loop.Loop
	cycle  *slider.Cycle[deck.Slide]
	logger *log.Logger

	mu      sync.Mutex
	subs    map[int]chan State
	nextSub int
}

// New builds a session over d. The first slide is shown immediately and
// auto-advance firings queue until Run is called.
func New(d deck.Deck, opts slider.Options, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.Default()
	}
	s := &Session{
		deck:   d,
		loop:   loop.New(64),
		logger: logger,
		subs:   make(map[int]chan State),
	}
	s.cycle = slider.New(d.Slides, slider.PresenterFunc(s.present), s.loop, opts)
	return s
}

// Run drives the session until ctx is cancelled.
func (s *Session) Run(ctx context.Context) error {
	err := s.loop.Run(ctx)
	// The loop has stopped, so nothing else touches the cycle.
	s.cycle.Stop()
	s.closeSubscribers()
	return err
}

// Deck returns the deck being shown.
func (s *Session) Deck() deck.Deck { return s.deck }

// Next is the manual "next" control.
func (s *Session) Next(ctx context.Context) (State, error) {
	return s.do(ctx, func(c *slider.Cycle[deck.Slide]) { c.Next() })
}

// Previous retreats and cancels auto-advance.
func (s *Session) Previous(ctx context.Context) (State, error) {
	return s.do(ctx, func(c *slider.Cycle[deck.Slide]) { c.Retreat() })
}

// Show jumps to index, wrapping out-of-range values.
func (s *Session) Show(ctx context.Context, index int) (State, error) {
	return s.do(ctx, func(c *slider.Cycle[deck.Slide]) { c.Show(index) })
}

// Pause cancels auto-advance.
func (s *Session) Pause(ctx context.Context) (State, error) {
	return s.do(ctx, func(c *slider.Cycle[deck.Slide]) { c.Pause() })
}

// Resume re-arms auto-advance.
func (s *Session) Resume(ctx context.Context) (State, error) {
	return s.do(ctx, func(c *slider.Cycle[deck.Slide]) { c.Resume() })
}

// Status returns the current state.
func (s *Session) Status(ctx context.Context) (State, error) {
	return s.do(ctx, func(*slider.Cycle[deck.Slide]) {})
}

// Subscribe returns a channel receiving a State every time a slide is
// presented. Slow receivers miss updates. Call cancel to unsubscribe.
func (s *Session) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 16)

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if _, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(ch)
			}
		})
	}
}

func (s *Session) do(ctx context.Context, fn func(c *slider.Cycle[deck.Slide])) (State, error) {
	var st State
	err := s.loop.Do(ctx, func() {
		fn(s.cycle)
		st = s.snapshot(s.cycle.Cursor())
	})
	return st, err
}

func (s *Session) snapshot(index int) State {
	st := State{Cursor: index, Total: len(s.deck.Slides)}
	if st.Total > 0 {
		st.Slide = s.deck.Slides[index]
	}
	// cycle is nil while New is still presenting the first slide.
	if s.cycle != nil {
		st.AutoAdvance = s.cycle.AutoAdvancing()
	} else {
		st.AutoAdvance = st.Total > 0
	}
	return st
}

// present is the cycle's presenter. It runs on the loop.
func (s *Session) present(index int) {
	st := s.snapshot(index)
	s.logger.Printf("slide %d/%d: %s", st.Cursor+1, st.Total, st.Title())

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- st:
		default:
		}
	}
}

func (s *Session) closeSubscribers() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}
