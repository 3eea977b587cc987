package loop

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startLoop(t *testing.T) (*Loop, context.CancelFunc) {
	t.Helper()
	l := New(16)
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		l.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		wg.Wait()
	})
	return l, cancel
}

func TestDoRunsInOrder(t *testing.T) {
	l, _ := startLoop(t)

	var got []int
	for i := 0; i < 5; i++ {
		i := i
		require.True(t, l.Post(func() { got = append(got, i) }))
	}
	var snapshot []int
	require.NoError(t, l.Do(context.Background(), func() {
		snapshot = append(snapshot, got...)
	}))
	assert.Equal(t, []int{0, 1, 2, 3, 4}, snapshot)
}

func TestRunReturnsContextError(t *testing.T) {
	l := New(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := l.Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled))

	select {
	case <-l.Done():
	default:
		t.Fatal("Done should be closed after Run returns")
	}
}

func TestPostAfterStop(t *testing.T) {
	l := New(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l.Run(ctx)

	assert.False(t, l.Post(func() {}))
	assert.ErrorIs(t, l.Do(context.Background(), func() {}), ErrStopped)
}

func TestDoHonoursContext(t *testing.T) {
	l, _ := startLoop(t)

	release := make(chan struct{})
	require.True(t, l.Post(func() { <-release }))
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := l.Do(ctx, func() {})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestScheduleRepeatingFires(t *testing.T) {
	l, _ := startLoop(t)

	fired := make(chan struct{}, 8)
	var timer interface{ Cancel() }
	require.NoError(t, l.Do(context.Background(), func() {
		timer = l.ScheduleRepeating(func() { fired <- struct{}{} }, 5*time.Millisecond)
	}))

	for i := 0; i < 3; i++ {
		select {
		case <-fired:
		case <-time.After(time.Second):
			t.Fatalf("firing %d did not arrive", i+1)
		}
	}
	require.NoError(t, l.Do(context.Background(), timer.Cancel))
}

func TestCancelDropsQueuedFirings(t *testing.T) {
	l, _ := startLoop(t)

	count := 0
	var timer interface{ Cancel() }
	require.NoError(t, l.Do(context.Background(), func() {
		timer = l.ScheduleRepeating(func() { count++ }, 2*time.Millisecond)
		// Hold the loop so several firings queue up behind this task,
		// then cancel before any of them runs.
		time.Sleep(20 * time.Millisecond)
		timer.Cancel()
	}))

	time.Sleep(20 * time.Millisecond)
	var got int
	require.NoError(t, l.Do(context.Background(), func() { got = count }))
	assert.Equal(t, 0, got)
}

func TestCancelIsIdempotent(t *testing.T) {
	l, _ := startLoop(t)

	var timer interface{ Cancel() }
	require.NoError(t, l.Do(context.Background(), func() {
		timer = l.ScheduleRepeating(func() {}, time.Hour)
		timer.Cancel()
		timer.Cancel()
	}))
	timer.Cancel()
}
