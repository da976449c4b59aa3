package syncer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"shelfsync/internal/journal"
	"shelfsync/internal/komga"
	"shelfsync/internal/logging"
	"shelfsync/internal/mylar"
	"shelfsync/internal/translate"
)

// Export writes one series.json per eligible series in the library.
// Authentication failures abort the run; everything else is reported
// per-series and the batch continues.
func (s *Syncer) Export(ctx context.Context, libraryID string) (*Summary, error) {
	release, err := s.acquireLock()
	if err != nil {
		return nil, err
	}
	defer release()

	logger := logging.NewComponentLogger(s.logger, "export")
	summary := &Summary{}
	summary.RunID = s.beginRun(ctx, journal.ModeExport, libraryID)

	series, listErr := s.client.ListSeries(ctx, libraryID)
	if listErr != nil {
		if errors.Is(listErr, komga.ErrAuthentication) {
			return nil, listErr
		}
		logger.Warn("series listing incomplete, continuing with fetched pages",
			logging.Error(listErr), logging.Int("series", len(series)))
	}
	summary.SeriesSeen = len(series)
	logger.Info("starting export", logging.String("library", libraryID), logging.Int("series", len(series)))

	for i := range series {
		sr := &series[i]

		if reason := exportSkipReason(sr); reason != "" {
			summary.Skipped++
			logger.Debug("series skipped",
				logging.String("series", sr.Name), logging.String("id", sr.ID), logging.String("reason", reason))
			s.recordEvent(ctx, summary.RunID, sr, journal.OutcomeSkipped, reason)
			continue
		}

		dir, err := s.targetDir(sr.URL)
		if err != nil {
			summary.Skipped++
			logger.Warn("series path unresolvable",
				logging.String("series", sr.Name), logging.String("id", sr.ID), logging.Error(err))
			s.recordEvent(ctx, summary.RunID, sr, journal.OutcomeSkipped, err.Error())
			continue
		}

		if err := s.writeSidecar(sr, dir); err != nil {
			summary.Failed++
			logger.Warn("series export failed",
				logging.String("series", sr.Name), logging.String("id", sr.ID), logging.Error(err))
			s.recordEvent(ctx, summary.RunID, sr, journal.OutcomeFailed, err.Error())
			continue
		}

		if s.cfg.Export.DownloadCovers {
			if err := s.downloadCover(ctx, sr, dir); err != nil {
				logger.Warn("cover download failed",
					logging.String("series", sr.Name), logging.String("id", sr.ID), logging.Error(err))
			}
		}

		summary.Written++
		logger.Info("series exported",
			logging.String("series", sr.Name), logging.String("path", filepath.Join(dir, mylar.FileName)))
		s.recordEvent(ctx, summary.RunID, sr, journal.OutcomeWritten, "")
	}

	s.finishRun(ctx, summary.RunID, summary, summary.Written)
	logger.Info("export complete",
		logging.Int("seen", summary.SeriesSeen),
		logging.Int("written", summary.Written),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed", summary.Failed))
	return summary, nil
}

// exportSkipReason returns a non-empty reason when the series must not be
// exported. One-shots are excluded entirely; their metadata flows through
// the reverse direction instead.
func exportSkipReason(sr *komga.Series) string {
	switch {
	case sr.Deleted:
		return "series is deleted"
	case sr.Oneshot:
		return "one-shot series"
	case translate.TotalBooks(sr) <= 0:
		return "no books"
	case strings.TrimSpace(sr.URL) == "":
		return "no storage path"
	}
	return ""
}

func (s *Syncer) writeSidecar(sr *komga.Series, dir string) error {
	doc := translate.SeriesDocument(sr)
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("translate series: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create series directory: %w", err)
	}
	if err := mylar.WriteFile(filepath.Join(dir, mylar.FileName), doc); err != nil {
		return fmt.Errorf("write sidecar: %w", err)
	}
	return nil
}

// downloadCover fetches the series poster once. Existing files are left
// alone, with no freshness check.
func (s *Syncer) downloadCover(ctx context.Context, sr *komga.Series, dir string) error {
	path := filepath.Join(dir, mylar.CoverFileName)
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	data, err := s.client.DownloadThumbnail(ctx, sr.ID)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write cover: %w", err)
	}
	return nil
}
