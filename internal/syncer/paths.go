package syncer

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// targetDir resolves the local directory a series' sidecar belongs in. With
// no output dir configured, files land directly in the series' own storage
// path. With an output dir alone, each series gets a flat subdirectory named
// after its path basename. With a library root as well, the root prefix is
// swapped for the output dir; paths outside the root are unresolvable.
func (s *Syncer) targetDir(seriesPath string) (string, error) {
	trimmed := strings.TrimSpace(seriesPath)
	if trimmed == "" {
		return "", errors.New("series has no storage path")
	}
	if s.cfg.Export.OutputDir == "" {
		return filepath.Clean(trimmed), nil
	}
	if s.cfg.Export.LibraryRoot == "" {
		return filepath.Join(s.cfg.Export.OutputDir, filepath.Base(filepath.Clean(trimmed))), nil
	}
	return remapPath(trimmed, s.cfg.Export.LibraryRoot, s.cfg.Export.OutputDir)
}

func remapPath(seriesPath, libraryRoot, outputDir string) (string, error) {
	rel, err := filepath.Rel(libraryRoot, filepath.Clean(seriesPath))
	if err != nil {
		return "", fmt.Errorf("relativize %q under %q: %w", seriesPath, libraryRoot, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("series path %q is outside library root %q", seriesPath, libraryRoot)
	}
	return filepath.Join(outputDir, rel), nil
}
