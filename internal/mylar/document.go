package mylar

import (
	"fmt"

	"shelfsync/internal/komga"
)

// SchemaVersion is the document version the consuming tool expects. It
// must match exactly or the sidecar is ignored on the Mylar side.
const SchemaVersion = "1.0.2"

// Series status values permitted by the schema.
const (
	StatusContinuing = "Continuing"
	StatusEnded      = "Ended"
)

// Fixed values required by the schema's shape. The comic id and default
// year are placeholders with no semantic meaning; the consuming tool only
// needs the keys to exist.
const (
	DocumentType       = "comicSeries"
	PlaceholderComicID = 9527
	DefaultYear        = 2001
	DefaultBookType    = "Print"
)

// File names used next to a series' directory.
const (
	FileName      = "series.json"
	CoverFileName = "cover.jpg"
)

// Document is one series.json sidecar: a version tag plus a metadata
// block. Exactly one document corresponds to one catalog series.
type Document struct {
	Version  string   `json:"version"`
	Metadata Metadata `json:"metadata"`
}

// Metadata mirrors the schema's metadata block. Every key is always
// present in the serialized document; absent values are JSON null, which
// is why nullable fields are pointers and lists stay nil when empty.
type Metadata struct {
	Type                 string                 `json:"type"`
	Publisher            string                 `json:"publisher"`
	Imprint              *string                `json:"imprint"`
	Name                 string                 `json:"name"`
	ComicID              int                    `json:"comicid"`
	Year                 int                    `json:"year"`
	DescriptionText      string                 `json:"description_text"`
	DescriptionFormatted *string                `json:"description_formatted"`
	Volume               *int                   `json:"volume"`
	BookType             string                 `json:"booktype"`
	AgeRating            *string                `json:"age_rating"`
	Collects             *string                `json:"collects"`
	ComicImage           string                 `json:"comic_image"`
	TotalIssues          int                    `json:"total_issues"`
	PublicationRun       string                 `json:"publication_run"`
	Status               string                 `json:"status"`
	Language             *string                `json:"language"`
	ReadingDirection     *string                `json:"readingDirection"`
	ReleaseDate          *string                `json:"releaseDate"`
	Authors              []komga.Author         `json:"authors"`
	Links                []komga.WebLink        `json:"links"`
	AlternateTitles      []komga.AlternateTitle `json:"alternateTitles"`
	Genres               []string               `json:"genres"`
	Tags                 []string               `json:"tags"`
}

// Validate checks the schema invariants: a positive issue count and a
// recognized status value.
func (d *Document) Validate() error {
	if d.Version != SchemaVersion {
		return fmt.Errorf("unsupported schema version %q", d.Version)
	}
	if d.Metadata.TotalIssues <= 0 {
		return fmt.Errorf("total_issues must be positive, got %d", d.Metadata.TotalIssues)
	}
	if d.Metadata.Status != StatusContinuing && d.Metadata.Status != StatusEnded {
		return fmt.Errorf("status must be %q or %q, got %q", StatusContinuing, StatusEnded, d.Metadata.Status)
	}
	return nil
}
