package syncer

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"

	"shelfsync/internal/journal"
	"shelfsync/internal/komga"
	"shelfsync/internal/logging"
	"shelfsync/internal/mylar"
	"shelfsync/internal/translate"
)

// Import reads each series' sidecar back and pushes sparse metadata patches
// to the server. Series without a readable sidecar are skipped; individual
// push failures do not stop the batch.
func (s *Syncer) Import(ctx context.Context, libraryID string) (*Summary, error) {
	release, err := s.acquireLock()
	if err != nil {
		return nil, err
	}
	defer release()

	logger := logging.NewComponentLogger(s.logger, "import")
	summary := &Summary{}
	summary.RunID = s.beginRun(ctx, journal.ModeImport, libraryID)

	series, listErr := s.client.ListSeries(ctx, libraryID)
	if listErr != nil {
		if errors.Is(listErr, komga.ErrAuthentication) {
			return nil, listErr
		}
		logger.Warn("series listing incomplete, continuing with fetched pages",
			logging.Error(listErr), logging.Int("series", len(series)))
	}
	summary.SeriesSeen = len(series)
	logger.Info("starting import", logging.String("library", libraryID), logging.Int("series", len(series)))

	for i := range series {
		sr := &series[i]
		s.importSeries(ctx, logger, summary, sr)
	}

	s.finishRun(ctx, summary.RunID, summary, summary.Pushed)
	logger.Info("import complete",
		logging.Int("seen", summary.SeriesSeen),
		logging.Int("pushed", summary.Pushed),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed", summary.Failed))
	return summary, nil
}

func (s *Syncer) importSeries(ctx context.Context, logger *slog.Logger, summary *Summary, sr *komga.Series) {
	dir, err := s.targetDir(sr.URL)
	if err != nil {
		summary.Skipped++
		logger.Debug("series path unresolvable",
			logging.String("series", sr.Name), logging.String("id", sr.ID), logging.Error(err))
		s.recordEvent(ctx, summary.RunID, sr, journal.OutcomeSkipped, err.Error())
		return
	}

	sidecar := filepath.Join(dir, mylar.FileName)
	doc, err := mylar.ReadFile(sidecar)
	if err != nil {
		summary.Skipped++
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("no sidecar for series",
				logging.String("series", sr.Name), logging.String("path", sidecar))
			s.recordEvent(ctx, summary.RunID, sr, journal.OutcomeSkipped, "no sidecar")
		} else {
			logger.Warn("sidecar unreadable",
				logging.String("series", sr.Name), logging.String("path", sidecar), logging.Error(err))
			s.recordEvent(ctx, summary.RunID, sr, journal.OutcomeSkipped, err.Error())
		}
		return
	}

	update := translate.SeriesUpdate(doc)
	pushed := false
	failed := false

	if !update.IsZero() {
		if err := s.client.UpdateSeriesMetadata(ctx, sr.ID, update); err != nil {
			failed = true
			logger.Warn("series update failed",
				logging.String("series", sr.Name), logging.String("id", sr.ID), logging.Error(err))
		} else {
			pushed = true
			logger.Debug("series metadata pushed",
				logging.String("series", sr.Name), logging.Any("fields", update.Fields()))
		}
	}

	books, err := s.client.ListBooks(ctx, sr.ID)
	if err != nil {
		logger.Warn("book listing incomplete, continuing with fetched pages",
			logging.String("series", sr.Name), logging.Error(err), logging.Int("books", len(books)))
	}
	for i := range books {
		book := &books[i]
		bookUpdate := translate.BookUpdate(book, doc, sr, update)
		if bookUpdate.IsZero() {
			continue
		}
		if err := s.client.UpdateBookMetadata(ctx, book.ID, bookUpdate); err != nil {
			failed = true
			logger.Warn("book update failed",
				logging.String("series", sr.Name), logging.String("book", book.Name),
				logging.String("id", book.ID), logging.Error(err))
			continue
		}
		pushed = true
		logger.Debug("book metadata pushed",
			logging.String("book", book.Name), logging.Any("fields", bookUpdate.Fields()))
	}

	switch {
	case failed:
		summary.Failed++
		s.recordEvent(ctx, summary.RunID, sr, journal.OutcomeFailed, "one or more updates failed")
	case pushed:
		summary.Pushed++
		s.recordEvent(ctx, summary.RunID, sr, journal.OutcomePushed, "")
	default:
		summary.Skipped++
		s.recordEvent(ctx, summary.RunID, sr, journal.OutcomeSkipped, "nothing to push")
	}
}
