// Package deck defines slide content and loads decks from YAML files or
// directories of images.
package deck

import (
	"errors"
	"fmt"

	"github.com/rs/xid"
)

// ErrEmptyDeck is returned by Validate for a deck with no slides.
var ErrEmptyDeck = errors.New("deck has no slides")

// Slide is one displayable item.
type Slide struct {
	ID     string `yaml:"id,omitempty"`
	Title  string `yaml:"title"`
	Body   string `yaml:"body,omitempty"`
	Image  string `yaml:"image,omitempty"`
	Width  int    `yaml:"width,omitempty"`
	Height int    `yaml:"height,omitempty"`
}

// Deck is a named, ordered list of slides.
type Deck struct {
	Name   string  `yaml:"name"`
	Slides []Slide `yaml:"slides"`
}

// Len returns the number of slides.
func (d Deck) Len() int { return len(d.Slides) }

// Validate checks that the deck can be stored.
func (d Deck) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("deck name is required")
	}
	if len(d.Slides) == 0 {
		return fmt.Errorf("deck %q: %w", d.Name, ErrEmptyDeck)
	}
	return nil
}

// assignIDs gives every slide without an ID a fresh one.
func (d *Deck) assignIDs() {
	for i := range d.Slides {
		if d.Slides[i].ID == "" {
			d.Slides[i].ID = xid.New().String()
		}
	}
}

// Label returns a short human label for the slide.
func (s Slide) Label() string {
	if s.Title != "" {
		return s.Title
	}
	if s.Image != "" {
		return s.Image
	}
	return s.ID
}
