// Package storage provides SQLite-based persistence for simulation runs and
// the collisions they produced.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
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

	"github.com/vovakirdan/collide/internal/collision"
	"github.com/vovakirdan/collide/internal/core"
)

// Store manages the SQLite database connection for the collision journal.
type Store struct {
	db *sql.DB
}

// Run describes one recorded simulation run.
type Run struct {
	ID         string
	SceneID    string
	Seed       int64
	TickRate   int
	Workers    int
	Ticks      int
	Collisions int
	Hash       string // Final snapshot hash in hex; empty until finished
	CreatedAt  time.Time
}

// Finished reports whether FinishRun has been called for the run.
func (r Run) Finished() bool {
	return r.Hash != ""
}

// CollisionRecord is one stored collision event.
type CollisionRecord struct {
	ID      int64
	RunID   string
	Tick    uint64
	EntityA core.EntityID
	RectA   core.Rect
	EntityB core.EntityID
	RectB   core.Rect
}

// PairCount is the number of ticks a pair of entities spent overlapping.
type PairCount struct {
	EntityA core.EntityID
	EntityB core.EntityID
	Count   int
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

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			scene_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			tick_rate INTEGER NOT NULL,
			workers INTEGER NOT NULL DEFAULT 1,
			ticks INTEGER NOT NULL DEFAULT 0,
			collisions INTEGER NOT NULL DEFAULT 0,
			hash TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_scene_id ON runs(scene_id);

		CREATE TABLE IF NOT EXISTS collisions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			tick INTEGER NOT NULL,
			entity_a INTEGER NOT NULL,
			a_min_x REAL NOT NULL, a_min_y REAL NOT NULL,
			a_max_x REAL NOT NULL, a_max_y REAL NOT NULL,
			entity_b INTEGER NOT NULL,
			b_min_x REAL NOT NULL, b_min_y REAL NOT NULL,
			b_max_x REAL NOT NULL, b_max_y REAL NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_collisions_run_tick ON collisions(run_id, tick);
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

// CreateRun starts a new run record and returns its ID.
func (s *Store) CreateRun(sceneID string, rt core.RuntimeConfig, workers int) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		"INSERT INTO runs (id, scene_id, seed, tick_rate, workers) VALUES (?, ?, ?, ?, ?)",
		id, sceneID, rt.Seed, rt.TickRate, workers,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot create run: %w", err)
	}
	return id, nil
}

// FinishRun stores the totals and final snapshot hash of a run.
func (s *Store) FinishRun(runID string, ticks, collisions int, hash uint64) error {
	res, err := s.db.Exec(
		"UPDATE runs SET ticks = ?, collisions = ?, hash = ? WHERE id = ?",
		ticks, collisions, fmt.Sprintf("%016x", hash), runID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot finish run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("storage: unknown run %q", runID)
	}
	return nil
}

// RecordCollisions appends events to a run in a single transaction.
func (s *Store) RecordCollisions(runID string, events []collision.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.Prepare(
		`INSERT INTO collisions
		 (run_id, tick, entity_a, a_min_x, a_min_y, a_max_x, a_max_y,
		  entity_b, b_min_x, b_min_y, b_max_x, b_max_y)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range events {
		_, err := stmt.Exec(
			runID, int64(e.Tick),
			int64(e.A), e.RectA.Min.X(), e.RectA.Min.Y(), e.RectA.Max.X(), e.RectA.Max.Y(),
			int64(e.B), e.RectB.Min.X(), e.RectB.Min.Y(), e.RectB.Max.X(), e.RectB.Max.Y(),
		)
		if err != nil {
			return fmt.Errorf("storage: cannot save collision: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit collisions: %w", err)
	}
	return nil
}

// RunByID retrieves a run by its ID. Returns nil if it does not exist.
func (s *Store) RunByID(runID string) (*Run, error) {
	row := s.db.QueryRow(
		`SELECT id, scene_id, seed, tick_rate, workers, ticks, collisions, hash, created_at
		 FROM runs
		 WHERE id = ?`,
		runID,
	)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &run, nil
}

// RecentRuns retrieves the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, scene_id, seed, tick_rate, workers, ticks, collisions, hash, created_at
		 FROM runs
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// Collisions retrieves the recorded collisions of a run in detection order.
// A limit <= 0 returns all of them.
func (s *Store) Collisions(runID string, limit int) ([]CollisionRecord, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, tick,
		        entity_a, a_min_x, a_min_y, a_max_x, a_max_y,
		        entity_b, b_min_x, b_min_y, b_max_x, b_max_y
		 FROM collisions
		 WHERE run_id = ?
		 ORDER BY id
		 LIMIT ?`,
		runID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query collisions: %w", err)
	}
	defer rows.Close()

	var records []CollisionRecord
	for rows.Next() {
		var (
			r                          CollisionRecord
			tick, a, b                 int64
			aMinX, aMinY, aMaxX, aMaxY float64
			bMinX, bMinY, bMaxX, bMaxY float64
		)
		if err := rows.Scan(
			&r.ID, &r.RunID, &tick,
			&a, &aMinX, &aMinY, &aMaxX, &aMaxY,
			&b, &bMinX, &bMinY, &bMaxX, &bMaxY,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		r.Tick = uint64(tick)
		r.EntityA = core.EntityID(a)
		r.RectA = core.NewRect(core.V(aMinX, aMinY), core.V(aMaxX, aMaxY))
		r.EntityB = core.EntityID(b)
		r.RectB = core.NewRect(core.V(bMinX, bMinY), core.V(bMaxX, bMaxY))
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// PairCounts returns how many collision events each entity pair produced in
// a run, most frequent first.
func (s *Store) PairCounts(runID string, limit int) ([]PairCount, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT entity_a, entity_b, COUNT(*) AS n
		 FROM collisions
		 WHERE run_id = ?
		 GROUP BY entity_a, entity_b
		 ORDER BY n DESC, entity_a, entity_b
		 LIMIT ?`,
		runID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query pair counts: %w", err)
	}
	defer rows.Close()

	var counts []PairCount
	for rows.Next() {
		var a, b int64
		var pc PairCount
		if err := rows.Scan(&a, &b, &pc.Count); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		pc.EntityA = core.EntityID(a)
		pc.EntityB = core.EntityID(b)
		counts = append(counts, pc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return counts, nil
}

// DeleteRun removes a run and its collisions.
func (s *Store) DeleteRun(runID string) error {
	if _, err := s.db.Exec("DELETE FROM collisions WHERE run_id = ?", runID); err != nil {
		return fmt.Errorf("storage: cannot delete collisions: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM runs WHERE id = ?", runID); err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var run Run
	var hash sql.NullString
	var createdAt any
	if err := row.Scan(
		&run.ID,
		&run.SceneID,
		&run.Seed,
		&run.TickRate,
		&run.Workers,
		&run.Ticks,
		&run.Collisions,
		&hash,
		&createdAt,
	); err != nil {
		return Run{}, err
	}

	if hash.Valid {
		run.Hash = hash.String
	}
	run.CreatedAt = parseTime(createdAt)
	return run, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	case int64:
		return time.Unix(v, 0)
	}
	return time.Time{}
}
