package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"shelfsync/internal/logging"
)

func TestConsoleHandlerFormatsComponentAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	child := logging.NewComponentLogger(logger, "export")
	child.Info("series written", logging.String("series", "One Piece"), logging.Int("books", 3))

	line := buf.String()
	if !strings.Contains(line, " INFO export: series written") {
		t.Fatalf("unexpected line: %q", line)
	}
	if !strings.Contains(line, `series="One Piece"`) {
		t.Fatalf("expected quoted series attr, got %q", line)
	}
	if !strings.Contains(line, "books=3") {
		t.Fatalf("expected books attr, got %q", line)
	}
	if !strings.HasSuffix(line, "\n") {
		t.Fatal("expected trailing newline")
	}
}

func TestConsoleHandlerHonorsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("suppressed")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Fatalf("info line should be suppressed: %q", out)
	}
	if !strings.Contains(out, "WARN kept") {
		t.Fatalf("warn line missing: %q", out)
	}
}

func TestJSONHandlerEmitsCanonicalKeys(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("run complete", logging.Int("written", 12))

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if payload["msg"] != "run complete" {
		t.Fatalf("unexpected msg: %v", payload["msg"])
	}
	if payload["level"] != "info" {
		t.Fatalf("unexpected level: %v", payload["level"])
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatal("expected ts key")
	}
	if payload["written"] != float64(12) {
		t.Fatalf("unexpected written attr: %v", payload["written"])
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestErrorAttrHandlesNil(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Error("failed", logging.Error(nil))
	if !strings.Contains(buf.String(), "error=<nil>") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}
