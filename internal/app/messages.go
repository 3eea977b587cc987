package app

import "github.com/jwulff/slider/internal/deck"

// DeckLoadedMsg carries the deck to present.
type DeckLoadedMsg struct {
	Deck deck.Deck
}

// DeckLoadErrorMsg is sent when the deck could not be loaded.
type DeckLoadErrorMsg struct {
	Err error
}

// AdvanceTickMsg is one firing of the auto-advance timer with the given id.
type AdvanceTickMsg struct {
	ID int
}

// ClearFlashMsg clears a transient status line after a timeout.
type ClearFlashMsg struct {
	Seq int
}
