package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jwulff/slider/internal/deck"

	_ "modernc.org/sqlite"
)

// ErrDeckNotFound is returned when a named deck does not exist.
var ErrDeckNotFound = errors.New("deck not found")

// Store provides access to the slider SQLite database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// DefaultDBPath returns the default database path.
func DefaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir, _ = os.UserHomeDir()
	}
	return filepath.Join(dir, "slider", "slider.sqlite")
}

// Open opens (creating if needed) the database with WAL and applies the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create database dir: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)", path)
	s, err := open(dsn)
	if err != nil {
		return nil, err
	}
	if _, err := s.db.Exec(schema); err != nil {
		s.db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return s, nil
}

// OpenReadOnly opens an existing database without write access.
func OpenReadOnly(path string) (*Store, error) {
	return open(fmt.Sprintf("file:%s?mode=ro&_pragma=foreign_keys(1)", path))
}

func open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Verify connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveDeck inserts or replaces a deck and all of its slides.
func (s *Store) SaveDeck(d deck.Deck) error {
	if err := d.Validate(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	now := unixFromTime(s.now())
	if _, err := tx.Exec(`
		INSERT INTO decks (name, createdAt, updatedAt) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET updatedAt = excluded.updatedAt
	`, d.Name, now, now); err != nil {
		return fmt.Errorf("upsert deck: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM slides WHERE deckName = ?`, d.Name); err != nil {
		return fmt.Errorf("clear slides: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO slides (id, deckName, position, title, body, image, width, height)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare slide insert: %w", err)
	}
	defer stmt.Close()

	for i, sl := range d.Slides {
		if _, err := stmt.Exec(sl.ID, d.Name, i, sl.Title, sl.Body, sl.Image, sl.Width, sl.Height); err != nil {
			return fmt.Errorf("insert slide %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Decks returns all stored decks ordered by name.
func (s *Store) Decks() ([]DeckInfo, error) {
	rows, err := s.db.Query(`
		SELECT d.name, d.createdAt, d.updatedAt, COUNT(sl.id)
		FROM decks d
		LEFT JOIN slides sl ON sl.deckName = d.name
		GROUP BY d.name
		ORDER BY d.name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query decks: %w", err)
	}
	defer rows.Close()

	var decks []DeckInfo
	for rows.Next() {
		var info DeckInfo
		var createdAt, updatedAt float64
		if err := rows.Scan(&info.Name, &createdAt, &updatedAt, &info.Slides); err != nil {
			return nil, fmt.Errorf("scan deck: %w", err)
		}
		info.CreatedAt = timeFromUnix(createdAt)
		info.UpdatedAt = timeFromUnix(updatedAt)
		decks = append(decks, info)
	}
	return decks, rows.Err()
}

// LoadDeck returns the named deck with slides in stored order.
func (s *Store) LoadDeck(name string) (deck.Deck, error) {
	var exists int
	err := s.db.QueryRow(`SELECT 1 FROM decks WHERE name = ?`, name).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return deck.Deck{}, fmt.Errorf("%q: %w", name, ErrDeckNotFound)
	}
	if err != nil {
		return deck.Deck{}, fmt.Errorf("query deck: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT id, title, body, image, width, height
		FROM slides
		WHERE deckName = ?
		ORDER BY position ASC
	`, name)
	if err != nil {
		return deck.Deck{}, fmt.Errorf("query slides: %w", err)
	}
	defer rows.Close()

	d := deck.Deck{Name: name}
	for rows.Next() {
		var sl deck.Slide
		if err := rows.Scan(&sl.ID, &sl.Title, &sl.Body, &sl.Image, &sl.Width, &sl.Height); err != nil {
			return deck.Deck{}, fmt.Errorf("scan slide: %w", err)
		}
		d.Slides = append(d.Slides, sl)
	}
	return d, rows.Err()
}

// DeleteDeck removes a deck and its slides.
func (s *Store) DeleteDeck(name string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM slides WHERE deckName = ?`, name); err != nil {
		return fmt.Errorf("delete slides: %w", err)
	}
	res, err := tx.Exec(`DELETE FROM decks WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete deck: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%q: %w", name, ErrDeckNotFound)
	}
	return tx.Commit()
}

func timeFromUnix(ts float64) time.Time {
	sec := int64(ts)
	nsec := int64((ts - float64(sec)) * 1e9)
	return time.Unix(sec, nsec)
}

func unixFromTime(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}
