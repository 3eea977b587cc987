// Package db provides SQLite storage for slide decks.
package db

import "time"

// DeckInfo summarises a stored deck.
type DeckInfo struct {
	Name      string
	Slides    int
	CreatedAt time.Time
	UpdatedAt time.Time
}

const schema = `
	CREATE TABLE IF NOT EXISTS decks (
		name TEXT PRIMARY KEY,
		createdAt REAL NOT NULL,
		updatedAt REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS slides (
		id TEXT NOT NULL,
		deckName TEXT NOT NULL REFERENCES decks(name) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		title TEXT NOT NULL,
		body TEXT NOT NULL DEFAULT '',
		image TEXT NOT NULL DEFAULT '',
		width INTEGER NOT NULL DEFAULT 0,
		height INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY(deckName, id),
		UNIQUE(deckName, position)
	);
`
