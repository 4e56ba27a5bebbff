// Package storage provides SQLite-based persistence for recorded sessions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// A replay is the seed a session started from plus the elapsed time and
// input of every tick. Feeding those back through a fresh game reproduces
// the session exactly, so no scores or boards are stored.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNotFound is returned when no replay matches an ID.
var ErrNotFound = errors.New("storage: replay not found")

// ErrAmbiguous is returned when an ID prefix matches more than one replay.
var ErrAmbiguous = errors.New("storage: replay id prefix is ambiguous")

// Store manages the SQLite database connection for the replay journal.
type Store struct {
	db *sql.DB
}

// Replay describes one recorded session.
type Replay struct {
	ID        string
	GameID    string
	Seed      int64
	TickRate  int
	Frames    int
	CreatedAt time.Time
}

// ShortID returns the first block of the UUID, enough to pick a replay on
// the command line.
func (r Replay) ShortID() string {
	if len(r.ID) < 8 {
		return r.ID
	}
	return r.ID[:8]
}

// Frame is the input of one tick.
type Frame struct {
	Tick int
	DT   time.Duration
	Mask uint32 // core.InputFrame bitmask
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS replays (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			tick_rate INTEGER NOT NULL,
			frames INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_replays_created ON replays(created_at);

		CREATE TABLE IF NOT EXISTS replay_frames (
			replay_id TEXT NOT NULL REFERENCES replays(id),
			tick INTEGER NOT NULL,
			dt_ns INTEGER NOT NULL,
			mask INTEGER NOT NULL,
			PRIMARY KEY (replay_id, tick)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// CreateReplay starts a new, empty replay and returns it.
func (s *Store) CreateReplay(gameID string, seed int64, tickRate int) (Replay, error) {
	r := Replay{
		ID:       uuid.NewString(),
		GameID:   gameID,
		Seed:     seed,
		TickRate: tickRate,
	}

	_, err := s.db.Exec(
		"INSERT INTO replays (id, game_id, seed, tick_rate) VALUES (?, ?, ?, ?)",
		r.ID, r.GameID, r.Seed, r.TickRate,
	)
	if err != nil {
		return Replay{}, fmt.Errorf("storage: cannot create replay: %w", err)
	}

	return r, nil
}

// AppendFrames adds frames to a replay in one transaction.
func (s *Store) AppendFrames(replayID string, frames []Frame) error {
	if len(frames) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	stmt, err := tx.Prepare("INSERT INTO replay_frames (replay_id, tick, dt_ns, mask) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("storage: cannot prepare frame insert: %w", err)
	}
	defer stmt.Close()

	for _, f := range frames {
		if _, err := stmt.Exec(replayID, f.Tick, int64(f.DT), int64(f.Mask)); err != nil {
			return fmt.Errorf("storage: cannot save frame %d: %w", f.Tick, err)
		}
	}

	res, err := tx.Exec("UPDATE replays SET frames = frames + ? WHERE id = ?", len(frames), replayID)
	if err != nil {
		return fmt.Errorf("storage: cannot update frame count: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit frames: %w", err)
	}
	return nil
}

// ListReplays returns the most recent replays, newest first.
func (s *Store) ListReplays(limit int) ([]Replay, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, seed, tick_rate, frames, created_at
		 FROM replays
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var replays []Replay
	for rows.Next() {
		r, err := scanReplay(rows)
		if err != nil {
			return nil, err
		}
		replays = append(replays, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return replays, nil
}

// FindReplay looks a replay up by full ID or unique ID prefix.
func (s *Store) FindReplay(idOrPrefix string) (Replay, error) {
	if idOrPrefix == "" {
		return Replay{}, ErrNotFound
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, seed, tick_rate, frames, created_at
		 FROM replays
		 WHERE id = ? OR substr(id, 1, length(?)) = ?
		 LIMIT 2`,
		idOrPrefix, idOrPrefix, idOrPrefix,
	)
	if err != nil {
		return Replay{}, fmt.Errorf("storage: cannot query replay: %w", err)
	}
	defer rows.Close()

	var found []Replay
	for rows.Next() {
		r, err := scanReplay(rows)
		if err != nil {
			return Replay{}, err
		}
		found = append(found, r)
	}
	if err := rows.Err(); err != nil {
		return Replay{}, fmt.Errorf("storage: row iteration error: %w", err)
	}

	switch len(found) {
	case 0:
		return Replay{}, ErrNotFound
	case 1:
		return found[0], nil
	default:
		return Replay{}, ErrAmbiguous
	}
}

// Frames returns every frame of a replay in tick order.
func (s *Store) Frames(replayID string) ([]Frame, error) {
	rows, err := s.db.Query(
		`SELECT tick, dt_ns, mask
		 FROM replay_frames
		 WHERE replay_id = ?
		 ORDER BY tick`,
		replayID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query frames: %w", err)
	}
	defer rows.Close()

	var frames []Frame
	for rows.Next() {
		var f Frame
		var dt, mask int64
		if err := rows.Scan(&f.Tick, &dt, &mask); err != nil {
			return nil, fmt.Errorf("storage: cannot scan frame: %w", err)
		}
		f.DT = time.Duration(dt)
		f.Mask = uint32(mask)
		frames = append(frames, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return frames, nil
}

// DeleteReplay removes a replay and its frames.
func (s *Store) DeleteReplay(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	if _, err := tx.Exec("DELETE FROM replay_frames WHERE replay_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete frames: %w", err)
	}
	res, err := tx.Exec("DELETE FROM replays WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}

// PruneReplays keeps the newest keep replays and deletes the rest.
// Returns how many were deleted.
func (s *Store) PruneReplays(keep int) (int, error) {
	const stale = `SELECT id FROM replays WHERE id NOT IN (
		SELECT id FROM replays ORDER BY created_at DESC, rowid DESC LIMIT ?
	)`
	keep = max(keep, 0)

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	if _, err := tx.Exec("DELETE FROM replay_frames WHERE replay_id IN ("+stale+")", keep); err != nil {
		return 0, fmt.Errorf("storage: cannot prune frames: %w", err)
	}
	res, err := tx.Exec("DELETE FROM replays WHERE id IN ("+stale+")", keep)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prune replays: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count pruned replays: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit prune: %w", err)
	}
	return int(n), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReplay(row rowScanner) (Replay, error) {
	var r Replay
	var createdAt any
	if err := row.Scan(&r.ID, &r.GameID, &r.Seed, &r.TickRate, &r.Frames, &createdAt); err != nil {
		return Replay{}, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and the string form SQLite may return.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
