package colorgrid

import (
	"crypto/sha1"
	"database/sql"
	"fmt"
	"sync"

	"github.com/bodgit/colorgrid/grid"
	_ "github.com/mattn/go-sqlite3" // register sqlite3
)

// Archive records every grid encoded along with the text it carries, so an
// image can be matched back to its original message.
type Archive struct {
	mu sync.Mutex
	db *sql.DB
}

// Message is an archived message.
type Message struct {
	ID       int64
	Alphabet string
	Text     string
	Size     int
}

// NewArchive opens, creating if necessary, the archive stored in file.
func NewArchive(file string) (*Archive, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=5000", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS grid (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, size INTEGER NOT NULL, data BLOB NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS message (id INTEGER PRIMARY KEY NOT NULL, grid_id INTEGER NOT NULL, alphabet TEXT NOT NULL, text TEXT NOT NULL, UNIQUE(grid_id, alphabet, text), FOREIGN KEY(grid_id) REFERENCES grid(id))"); err != nil {
		db.Close()
		return nil, err
	}

	return &Archive{
		db: db,
	}, nil
}

// Close closes the archive.
func (a *Archive) Close() error {
	return a.db.Close()
}

func fingerprint(g *grid.Grid) (string, []byte, error) {
	b, err := g.MarshalBinary()
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("%X", sha1.Sum(b)), b, nil
}

// Add stores g and the text it was encoded from, returning the message id.
// Adding the same message twice returns the existing id.
func (a *Archive) Add(alphabet, text string, g *grid.Grid) (int64, error) {
	sha, b, err := fingerprint(g)
	if err != nil {
		return 0, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	id, err := a.addGrid(sha, g.Size(), b)
	if err != nil {
		return 0, err
	}

	return a.addMessage(id, alphabet, text)
}

func (a *Archive) addGrid(sha string, size int, b []byte) (int64, error) {
	var id int64
	switch err := a.db.QueryRow("SELECT id FROM grid WHERE sha1 = ?", sha).Scan(&id); err {
	case sql.ErrNoRows:
		result, err := a.db.Exec("INSERT INTO grid (sha1, size, data) VALUES (?, ?, ?)", sha, size, b)
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	case nil:
		return id, nil
	default:
		return 0, err
	}
}

func (a *Archive) addMessage(gridID int64, alphabet, text string) (int64, error) {
	var id int64
	switch err := a.db.QueryRow("SELECT id FROM message WHERE grid_id = ? AND alphabet = ? AND text = ?", gridID, alphabet, text).Scan(&id); err {
	case sql.ErrNoRows:
		result, err := a.db.Exec("INSERT INTO message (grid_id, alphabet, text) VALUES (?, ?, ?)", gridID, alphabet, text)
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	case nil:
		return id, nil
	default:
		return 0, err
	}
}

// Find returns the earliest message archived with a grid identical to g, or
// nil if there is none.
func (a *Archive) Find(g *grid.Grid) (*Message, error) {
	sha, _, err := fingerprint(g)
	if err != nil {
		return nil, err
	}

	var m Message
	switch err := a.db.QueryRow("SELECT m.id, m.alphabet, m.text, g.size FROM grid AS g JOIN message AS m ON m.grid_id = g.id WHERE g.sha1 = ? ORDER BY m.id LIMIT 1", sha).Scan(&m.ID, &m.Alphabet, &m.Text, &m.Size); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return &m, nil
	default:
		return nil, err
	}
}

// Grid returns the grid stored for a message, or nil if there is no such
// message.
func (a *Archive) Grid(id int64) (*grid.Grid, error) {
	var b []byte
	switch err := a.db.QueryRow("SELECT g.data FROM message AS m JOIN grid AS g ON m.grid_id = g.id WHERE m.id = ?", id).Scan(&b); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		g := new(grid.Grid)
		if err := g.UnmarshalBinary(b); err != nil {
			return nil, err
		}
		return g, nil
	default:
		return nil, err
	}
}

// Len returns the number of archived messages.
func (a *Archive) Len() (int, error) {
	var n int
	if err := a.db.QueryRow("SELECT COUNT(*) FROM message").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
