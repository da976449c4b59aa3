package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Run modes recorded in the journal.
const (
	ModeExport = "export"
	ModeImport = "import"
)

// Per-series outcomes recorded in the journal.
const (
	OutcomeWritten = "written"
	OutcomePushed  = "pushed"
	OutcomeSkipped = "skipped"
	OutcomeFailed  = "failed"
)

// Run captures a single sync invocation and its aggregate counts.
type Run struct {
	ID         string
	Mode       string
	LibraryID  string
	StartedAt  time.Time
	FinishedAt *time.Time
	SeriesSeen int
	Written    int
	Skipped    int
	Failed     int
}

// Event records the outcome for one series within a run.
type Event struct {
	RunID      string
	SeriesID   string
	SeriesName string
	Outcome    string
	Detail     string
	At         time.Time
}

// Store manages run history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the journal database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// BeginRun inserts a new run row and returns it with a fresh ID.
func (s *Store) BeginRun(ctx context.Context, mode, libraryID string) (*Run, error) {
	run := &Run{
		ID:        uuid.NewString(),
		Mode:      mode,
		LibraryID: libraryID,
		StartedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO runs (id, mode, library_id, started_at) VALUES (?, ?, ?, ?)`,
		run.ID,
		run.Mode,
		run.LibraryID,
		run.StartedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// FinishRun stamps the run as completed and stores its final counts.
func (s *Store) FinishRun(ctx context.Context, runID string, seen, written, skipped, failed int) error {
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE runs SET finished_at = ?, series_seen = ?, written = ?, skipped = ?, failed = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339Nano),
		seen,
		written,
		skipped,
		failed,
		runID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish run rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("finish run: unknown run %q", runID)
	}
	return nil
}

// RecordEvent appends a per-series outcome to the run.
func (s *Store) RecordEvent(ctx context.Context, ev Event) error {
	at := ev.At
	if at.IsZero() {
		at = time.Now().UTC()
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO run_events (run_id, series_id, series_name, outcome, detail, created_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		ev.RunID,
		ev.SeriesID,
		ev.SeriesName,
		ev.Outcome,
		ev.Detail,
		at.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert run event: %w", err)
	}
	return nil
}

// RecentRuns returns the most recent runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, mode, library_id, started_at, finished_at, series_seen, written, skipped, failed
         FROM runs ORDER BY started_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// RunEvents returns the per-series outcomes for a run in insertion order.
func (s *Store) RunEvents(ctx context.Context, runID string) ([]Event, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT run_id, series_id, series_name, outcome, detail, created_at
         FROM run_events WHERE run_id = ? ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query run events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var ev Event
		var created string
		if err := rows.Scan(&ev.RunID, &ev.SeriesID, &ev.SeriesName, &ev.Outcome, &ev.Detail, &created); err != nil {
			return nil, fmt.Errorf("scan run event: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339Nano, created); err == nil {
			ev.At = ts
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run events: %w", err)
	}
	return events, nil
}

func scanRun(rows *sql.Rows) (Run, error) {
	var run Run
	var started string
	var finished sql.NullString
	if err := rows.Scan(
		&run.ID,
		&run.Mode,
		&run.LibraryID,
		&started,
		&finished,
		&run.SeriesSeen,
		&run.Written,
		&run.Skipped,
		&run.Failed,
	); err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	if ts, err := time.Parse(time.RFC3339Nano, started); err == nil {
		run.StartedAt = ts
	}
	if finished.Valid {
		if ts, err := time.Parse(time.RFC3339Nano, finished.String); err == nil {
			run.FinishedAt = &ts
		}
	}
	return run, nil
}
