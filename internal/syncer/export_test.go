package syncer_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"shelfsync/internal/config"
	"shelfsync/internal/mylar"
)

func exportConfig(t *testing.T) (*config.Config, string) {
	t.Helper()
	libraryDir := t.TempDir()
	cfg := config.Default()
	cfg.Komga.URL = "http://ignored"
	cfg.Paths.StateDir = t.TempDir()
	return &cfg, libraryDir
}

func TestExportWritesSidecarsAndAppliesSkipPolicy(t *testing.T) {
	cfg, libraryDir := exportConfig(t)
	keepDir := filepath.Join(libraryDir, "Keep Me")

	fake := newFakeKomga()
	deleted := testSeries("s2", "Deleted", filepath.Join(libraryDir, "Deleted"), 4)
	deleted.Deleted = true
	oneshot := testSeries("s3", "One Shot", filepath.Join(libraryDir, "One Shot"), 1)
	oneshot.Oneshot = true
	empty := testSeries("s4", "Empty", filepath.Join(libraryDir, "Empty"), 0)
	empty.Metadata.TotalBookCount = 0
	pathless := testSeries("s5", "Pathless", "", 2)
	fake.series = append(fake.series,
		testSeries("s1", "Keep Me", keepDir, 3),
		deleted, oneshot, empty, pathless,
	)

	s := newTestSyncer(t, fake, cfg)
	summary, err := s.Export(context.Background(), "LIB1")
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	if summary.SeriesSeen != 5 || summary.Written != 1 || summary.Skipped != 4 || summary.Failed != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	doc, err := mylar.ReadFile(filepath.Join(keepDir, mylar.FileName))
	if err != nil {
		t.Fatalf("sidecar missing: %v", err)
	}
	if doc.Metadata.Name != "Keep Me" || doc.Metadata.TotalIssues != 3 {
		t.Fatalf("unexpected document: %+v", doc.Metadata)
	}

	for _, name := range []string{"Deleted", "One Shot", "Empty"} {
		if _, err := os.Stat(filepath.Join(libraryDir, name, mylar.FileName)); err == nil {
			t.Fatalf("series %q should not have been exported", name)
		}
	}
}

func TestExportMirrorsLibraryUnderOutputDir(t *testing.T) {
	cfg, _ := exportConfig(t)
	outputDir := t.TempDir()
	cfg.Export.OutputDir = outputDir
	cfg.Export.LibraryRoot = "/data/comics"

	fake := newFakeKomga()
	fake.series = append(fake.series,
		testSeries("s1", "Inside", "/data/comics/shonen/Inside", 2),
		testSeries("s2", "Outside", "/other/place/Outside", 2),
	)

	s := newTestSyncer(t, fake, cfg)
	summary, err := s.Export(context.Background(), "LIB1")
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if summary.Written != 1 || summary.Skipped != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	want := filepath.Join(outputDir, "shonen", "Inside", mylar.FileName)
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("expected mirrored sidecar at %s: %v", want, err)
	}
}

func TestExportFlattensWithoutLibraryRoot(t *testing.T) {
	cfg, _ := exportConfig(t)
	outputDir := t.TempDir()
	cfg.Export.OutputDir = outputDir

	fake := newFakeKomga()
	fake.series = append(fake.series,
		testSeries("s1", "Shallow", "/data/comics/Shallow", 2),
		testSeries("s2", "Nested", "/data/comics/shonen/Nested", 2),
	)

	s := newTestSyncer(t, fake, cfg)
	summary, err := s.Export(context.Background(), "LIB1")
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if summary.Written != 2 || summary.Skipped != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	// Each series lands in output/<basename>, depth in the library ignored.
	for _, name := range []string{"Shallow", "Nested"} {
		if _, err := os.Stat(filepath.Join(outputDir, name, mylar.FileName)); err != nil {
			t.Fatalf("expected flat sidecar for %q: %v", name, err)
		}
	}
}

func TestExportDownloadsCoverOnce(t *testing.T) {
	cfg, libraryDir := exportConfig(t)
	cfg.Export.DownloadCovers = true

	fake := newFakeKomga()
	fake.series = append(fake.series, testSeries("s1", "Covered", filepath.Join(libraryDir, "Covered"), 2))

	s := newTestSyncer(t, fake, cfg)
	if _, err := s.Export(context.Background(), "LIB1"); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	coverPath := filepath.Join(libraryDir, "Covered", mylar.CoverFileName)
	data, err := os.ReadFile(coverPath)
	if err != nil {
		t.Fatalf("cover missing: %v", err)
	}
	if string(data) != "jpeg-bytes" {
		t.Fatalf("unexpected cover content: %q", data)
	}

	// Second run must leave the existing cover alone.
	if _, err := s.Export(context.Background(), "LIB1"); err != nil {
		t.Fatalf("second Export failed: %v", err)
	}
	if fake.coverFetches != 1 {
		t.Fatalf("expected a single thumbnail fetch, got %d", fake.coverFetches)
	}
}

func TestExportRefusesConcurrentRuns(t *testing.T) {
	cfg, libraryDir := exportConfig(t)
	fake := newFakeKomga()
	fake.series = append(fake.series, testSeries("s1", "Solo", filepath.Join(libraryDir, "Solo"), 1))

	first := newTestSyncer(t, fake, cfg)
	second := newTestSyncer(t, fake, cfg)

	release, err := first.HoldLockForTest()
	if err != nil {
		t.Fatalf("prelock: %v", err)
	}
	defer release()

	if _, err := second.Export(context.Background(), "LIB1"); err == nil {
		t.Fatal("expected lock contention error")
	}
}
