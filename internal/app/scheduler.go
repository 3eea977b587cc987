package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jwulff/slider/internal/slider"
)

// tickScheduler arms repeating timers on top of tea.Tick. Each armed timer
// gets a fresh id; a tick whose id is not the live timer's is dropped, so a
// cancelled timer never fires even if its tick is already queued.
type tickScheduler struct {
	nextID  int
	active  *tickTimer
	pending []tea.Cmd
}

type tickTimer struct {
	s      *tickScheduler
	id     int
	action func()
	period time.Duration
}

func (s *tickScheduler) ScheduleRepeating(action func(), period time.Duration) slider.Timer {
	s.nextID++
	t := &tickTimer{s: s, id: s.nextID, action: action, period: period}
	s.active = t
	s.pending = append(s.pending, advanceTickCmd(t.id, period))
	return t
}

func (t *tickTimer) Cancel() {
	if t.s.active == t {
		t.s.active = nil
	}
}

// fire runs the live timer's action for a tick with the given id and returns
// the command for the next tick.
func (s *tickScheduler) fire(id int) tea.Cmd {
	t := s.active
	if t == nil || t.id != id {
		return nil
	}
	t.action()
	if s.active != t {
		return nil
	}
	return advanceTickCmd(t.id, t.period)
}

// drain returns ticks armed since the last call.
func (s *tickScheduler) drain() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}

func advanceTickCmd(id int, period time.Duration) tea.Cmd {
	return tea.Tick(period, func(time.Time) tea.Msg {
		return AdvanceTickMsg{ID: id}
	})
}
