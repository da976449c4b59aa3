package mylar

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// WriteFile persists the document as human-readable JSON: two-space
// indent, no HTML escaping so CJK text stays literal, trailing newline.
func WriteFile(path string, doc *Document) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode series document: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write series document: %w", err)
	}
	return nil
}

// ReadFile loads a previously written document. The content is returned
// as parsed, without validation; callers decide how strict to be.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read series document: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse series document %s: %w", path, err)
	}
	return &doc, nil
}
