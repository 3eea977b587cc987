package app

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jwulff/slider/internal/deck"
	"github.com/jwulff/slider/internal/slider"
)

var errNoDeck = errors.New("no deck to load")

// LoadFunc produces the deck to present.
type LoadFunc func() (deck.Deck, error)

// slideView is the presenter: it records which slide is visible. One field
// means exactly one slide is ever visible.
type slideView struct {
	visible int
	shows   int
}

func (v *slideView) ShowSlide(index int) {
	v.visible = index
	v.shows++
}

// Model is the root bubbletea model for the slider TUI.
type Model struct {
	load LoadFunc
	opts slider.Options

	// Deck state
	deck   deck.Deck
	loaded bool
	cycle  *slider.Cycle[deck.Slide]
	sched  *tickScheduler
	view   *slideView

	// UI state
	width  int
	height int

	// Status
	flash    string
	flashSeq int

	// Errors
	errorMessage string
}

// New creates a Model that loads its deck with load.
func New(load LoadFunc, opts slider.Options) Model {
	return Model{
		load:  load,
		opts:  opts,
		sched: &tickScheduler{},
		view:  &slideView{},
	}
}

// Init returns the initial command: load the deck.
func (m Model) Init() tea.Cmd {
	return loadDeckCmd(m.load)
}

// loadDeckCmd runs the loader off the update loop.
func loadDeckCmd(load LoadFunc) tea.Cmd {
	return func() tea.Msg {
		if load == nil {
			return DeckLoadErrorMsg{Err: errNoDeck}
		}
		d, err := load()
		if err != nil {
			return DeckLoadErrorMsg{Err: err}
		}
		return DeckLoadedMsg{Deck: d}
	}
}

// clearFlashCmd fires after a delay to clear the flash line.
func clearFlashCmd(seq int) tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return ClearFlashMsg{Seq: seq}
	})
}

// Update processes messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case DeckLoadedMsg:
		if m.cycle != nil {
			m.cycle.Stop()
		}
		m.deck = msg.Deck
		m.loaded = true
		m.errorMessage = ""
		m.cycle = slider.New(m.deck.Slides, m.view, m.sched, m.opts)
		return m, m.sched.drain()

	case DeckLoadErrorMsg:
		m.errorMessage = msg.Err.Error()
		return m, nil

	case AdvanceTickMsg:
		return m, m.sched.fire(msg.ID)

	case ClearFlashMsg:
		if msg.Seq == m.flashSeq {
			m.flash = ""
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyQuit, KeyQuitUpper, KeyCtrlC:
		if m.cycle != nil {
			m.cycle.Stop()
		}
		return m, tea.Quit
	}

	if m.cycle == nil {
		return m, nil
	}

	switch msg.String() {
	case KeyRight, KeyL, KeyN:
		wasAuto := m.cycle.AutoAdvancing()
		m.cycle.Next()
		if wasAuto && !m.cycle.AutoAdvancing() {
			return m.setFlash("Auto-advance stopped")
		}

	case KeyLeft, KeyH, KeyP:
		wasAuto := m.cycle.AutoAdvancing()
		m.cycle.Retreat()
		if wasAuto {
			return m.setFlash("Auto-advance stopped")
		}

	case KeySpace:
		if m.cycle.Len() == 0 {
			return m, nil
		}
		if m.cycle.AutoAdvancing() {
			m.cycle.Pause()
			return m.setFlash("Auto-advance paused")
		}
		m.cycle.Resume()
		ticks := m.sched.drain()
		next, flash := m.setFlash("Auto-advance resumed")
		return next, tea.Batch(ticks, flash)

	case KeyFirst, KeyHome:
		m.cycle.Show(0)

	case KeyLast, KeyEnd:
		m.cycle.Show(-1)

	default:
		// 1-9 jump straight to a slide.
		if k := msg.String(); len(k) == 1 && k[0] >= '1' && k[0] <= '9' {
			m.cycle.Show(int(k[0] - '1'))
		}
	}

	return m, nil
}

func (m Model) setFlash(text string) (tea.Model, tea.Cmd) {
	m.flashSeq++
	m.flash = text
	return m, clearFlashCmd(m.flashSeq)
}

// Cursor returns the index of the visible slide, for callers outside the
// update loop such as tests.
func (m Model) Cursor() int {
	if m.cycle == nil {
		return 0
	}
	return m.cycle.Cursor()
}
