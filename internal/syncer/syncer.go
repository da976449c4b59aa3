package syncer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"shelfsync/internal/config"
	"shelfsync/internal/journal"
	"shelfsync/internal/komga"
	"shelfsync/internal/logging"
)

// Syncer sequences catalog fetches, translation, and persistence for both
// sync directions. It owns no mapping logic itself.
type Syncer struct {
	cfg    *config.Config
	client *komga.Client
	store  *journal.Store
	logger *slog.Logger
	lock   *flock.Flock
}

// Summary reports the aggregate outcome of one run.
type Summary struct {
	RunID      string
	SeriesSeen int
	Written    int
	Pushed     int
	Skipped    int
	Failed     int
}

// New constructs a syncer. The journal store may be nil when run history is
// disabled; logger may be nil for silent operation.
func New(cfg *config.Config, client *komga.Client, store *journal.Store, logger *slog.Logger) (*Syncer, error) {
	if cfg == nil || client == nil {
		return nil, errors.New("syncer requires config and client")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Syncer{
		cfg:    cfg,
		client: client,
		store:  store,
		logger: logger,
		lock:   flock.New(cfg.LockPath()),
	}, nil
}

// acquireLock enforces a single running instance per state directory.
func (s *Syncer) acquireLock() (func(), error) {
	if dir := filepath.Dir(s.lock.Path()); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create lock directory: %w", err)
		}
	}
	ok, err := s.lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return nil, errors.New("another shelfsync run is already in progress")
	}
	return func() { _ = s.lock.Unlock() }, nil
}

func (s *Syncer) beginRun(ctx context.Context, mode, libraryID string) string {
	if s.store == nil {
		return ""
	}
	run, err := s.store.BeginRun(ctx, mode, libraryID)
	if err != nil {
		s.logger.Warn("journal unavailable, run will not be recorded", logging.Error(err))
		return ""
	}
	return run.ID
}

func (s *Syncer) recordEvent(ctx context.Context, runID string, series *komga.Series, outcome, detail string) {
	if s.store == nil || runID == "" {
		return
	}
	err := s.store.RecordEvent(ctx, journal.Event{
		RunID:      runID,
		SeriesID:   series.ID,
		SeriesName: series.Name,
		Outcome:    outcome,
		Detail:     detail,
	})
	if err != nil {
		s.logger.Warn("journal event not recorded", logging.Error(err))
	}
}

func (s *Syncer) finishRun(ctx context.Context, runID string, summary *Summary, written int) {
	if s.store == nil || runID == "" {
		return
	}
	if err := s.store.FinishRun(ctx, runID, summary.SeriesSeen, written, summary.Skipped, summary.Failed); err != nil {
		s.logger.Warn("journal run not finalized", logging.Error(err))
	}
}
