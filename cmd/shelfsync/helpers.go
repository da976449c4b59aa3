package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"shelfsync/internal/config"
)

// resolveCredentials returns the username and password for the catalog
// server. Config and environment values win; a terminal prompt is the
// fallback so passwords never have to live in files.
func resolveCredentials(cfg *config.Config) (string, string, error) {
	username := strings.TrimSpace(cfg.Komga.Username)
	password := cfg.Komga.Password

	if username == "" && stdinIsTerminal() {
		fmt.Fprint(os.Stderr, "Komga username: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", "", fmt.Errorf("read username: %w", err)
		}
		username = strings.TrimSpace(line)
	}
	if username == "" {
		return "", "", errors.New("username required: set komga.username, KOMGA_USERNAME, or run interactively")
	}

	if password == "" && stdinIsTerminal() {
		fmt.Fprintf(os.Stderr, "Komga password for %s: ", username)
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", "", fmt.Errorf("read password: %w", err)
		}
		password = string(raw)
	}
	if password == "" {
		return "", "", errors.New("password required: set komga.password, KOMGA_PASSWORD, or run interactively")
	}

	return username, password, nil
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// requireLibrary picks the target library from the flag or config.
func requireLibrary(cfg *config.Config, flagValue string) (string, error) {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v, nil
	}
	if cfg.Komga.LibraryID != "" {
		return cfg.Komga.LibraryID, nil
	}
	return "", errors.New("library required: pass --library, set komga.library_id, or KOMGA_LIBRARY_ID")
}

// applyExportOverrides folds command-line flags into the loaded config.
func applyExportOverrides(cfg *config.Config, outputDir, libraryRoot string, covers bool) error {
	if v := strings.TrimSpace(outputDir); v != "" {
		expanded, err := config.ExpandPath(v)
		if err != nil {
			return fmt.Errorf("resolve output dir: %w", err)
		}
		cfg.Export.OutputDir = expanded
	}
	if v := strings.TrimSpace(libraryRoot); v != "" {
		cfg.Export.LibraryRoot = strings.TrimRight(v, "/")
	}
	if covers {
		cfg.Export.DownloadCovers = true
	}
	if cfg.Export.LibraryRoot != "" && cfg.Export.OutputDir == "" {
		return errors.New("--library-root has no effect without --output")
	}
	return nil
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
