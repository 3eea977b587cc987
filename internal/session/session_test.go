package session

import (
	"bytes"
	"context"
	"io"
	"log"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jwulff/slider/internal/deck"
	"github.com/jwulff/slider/internal/loop"
	"github.com/jwulff/slider/internal/slider"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeSlides() deck.Deck {
	return deck.Deck{
		Name: "demo",
		Slides: []deck.Slide{
			{ID: "a", Title: "Alpha"},
			{ID: "b", Title: "Beta"},
			{ID: "c", Title: "Gamma"},
		},
	}
}

func runSession(t *testing.T, d deck.Deck, opts slider.Options, logger *log.Logger) *Session {
	t.Helper()
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := New(d, opts, logger)
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		wg.Wait()
	})
	return s
}

func TestNavigation(t *testing.T) {
	s := runSession(t, threeSlides(), slider.Options{Period: time.Hour}, nil)
	ctx := context.Background()

	st, err := s.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, st.Cursor)
	assert.Equal(t, 3, st.Total)
	assert.True(t, st.AutoAdvance)
	assert.Equal(t, "Alpha", st.Title())

	st, err = s.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Cursor)
	assert.True(t, st.AutoAdvance)

	st, err = s.Previous(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, st.Cursor)
	assert.False(t, st.AutoAdvance)

	st, err = s.Show(ctx, -1)
	require.NoError(t, err)
	assert.Equal(t, 2, st.Cursor)
	assert.Equal(t, "Gamma", st.Slide.Title)

	st, err = s.Resume(ctx)
	require.NoError(t, err)
	assert.True(t, st.AutoAdvance)

	st, err = s.Pause(ctx)
	require.NoError(t, err)
	assert.False(t, st.AutoAdvance)
}

func TestAutoAdvancePublishes(t *testing.T) {
	s := runSession(t, threeSlides(), slider.Options{Period: 5 * time.Millisecond}, nil)

	events, cancel := s.Subscribe()
	defer cancel()

	seen := map[int]bool{}
	deadline := time.After(2 * time.Second)
	for len(seen) < 3 {
		select {
		case st := <-events:
			seen[st.Cursor] = true
		case <-deadline:
			t.Fatalf("saw cursors %v before timeout", seen)
		}
	}
}

func TestPreviousStopsAutoAdvance(t *testing.T) {
	s := runSession(t, threeSlides(), slider.Options{Period: 5 * time.Millisecond}, nil)
	ctx := context.Background()

	st, err := s.Previous(ctx)
	require.NoError(t, err)
	assert.False(t, st.AutoAdvance)

	time.Sleep(30 * time.Millisecond)
	after, err := s.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, st.Cursor, after.Cursor)
}

func TestEmptyDeck(t *testing.T) {
	var buf bytes.Buffer
	s := runSession(t, deck.Deck{Name: "empty"}, slider.Options{}, log.New(&buf, "", 0))
	ctx := context.Background()

	st, err := s.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, st.Cursor)
	assert.Equal(t, 0, st.Total)
	assert.False(t, st.AutoAdvance)
	assert.Equal(t, "", st.Title())

	_, err = s.Previous(ctx)
	require.NoError(t, err)
	// Read the log from inside the loop so the write has certainly happened
	// if it was going to.
	var logged string
	require.NoError(t, s.loop.Do(ctx, func() { logged = buf.String() }))
	assert.Empty(t, logged)
}

func TestPresentLogs(t *testing.T) {
	var buf bytes.Buffer
	s := runSession(t, threeSlides(), slider.Options{Period: time.Hour}, log.New(&buf, "", 0))
	ctx := context.Background()

	_, err := s.Next(ctx)
	require.NoError(t, err)

	var logged string
	require.NoError(t, s.loop.Do(ctx, func() { logged = buf.String() }))
	assert.True(t, strings.Contains(logged, "slide 1/3: Alpha"), logged)
	assert.True(t, strings.Contains(logged, "slide 2/3: Beta"), logged)
}

func TestSubscribeCancel(t *testing.T) {
	s := runSession(t, threeSlides(), slider.Options{Period: time.Hour}, nil)

	events, cancel := s.Subscribe()
	cancel()
	cancel()

	_, ok := <-events
	assert.False(t, ok)
}

func TestOperationsAfterStop(t *testing.T) {
	s := New(threeSlides(), slider.Options{Period: time.Hour}, log.New(io.Discard, "", 0))
	events, _ := s.Subscribe()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.Run(ctx)

	_, err := s.Next(context.Background())
	assert.ErrorIs(t, err, loop.ErrStopped)

	_, ok := <-events
	assert.False(t, ok, "subscribers should be closed when the session stops")
}
