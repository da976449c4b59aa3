package komga

import (
	"strconv"
	"strings"
)

// Series is a catalog series record as served by the API. The client only
// reads these; updates go through the sparse metadata payloads below.
type Series struct {
	ID            string         `json:"id"`
	LibraryID     string         `json:"libraryId"`
	Name          string         `json:"name"`
	URL           string         `json:"url"`
	BooksCount    int            `json:"booksCount"`
	Oneshot       bool           `json:"oneshot"`
	Deleted       bool           `json:"deleted"`
	Metadata      SeriesMetadata `json:"metadata"`
	BooksMetadata BooksMetadata  `json:"booksMetadata"`
}

// SeriesMetadata is the editable metadata block of a series.
type SeriesMetadata struct {
	Title            string           `json:"title"`
	Status           string           `json:"status"`
	Publisher        string           `json:"publisher"`
	Summary          string           `json:"summary"`
	AgeRating        AgeRating        `json:"ageRating"`
	Language         string           `json:"language"`
	ReadingDirection string           `json:"readingDirection"`
	Links            []WebLink        `json:"links"`
	AlternateTitles  []AlternateTitle `json:"alternateTitles"`
	Genres           []string         `json:"genres"`
	Tags             []string         `json:"tags"`
	TotalBookCount   int              `json:"totalBookCount"`
}

// BooksMetadata aggregates metadata across a series' books.
type BooksMetadata struct {
	Summary     string   `json:"summary"`
	ReleaseDate string   `json:"releaseDate"`
	Authors     []Author `json:"authors"`
	Tags        []string `json:"tags"`
}

// Book is a catalog book record. Every book belongs to exactly one series.
type Book struct {
	ID       string       `json:"id"`
	SeriesID string       `json:"seriesId"`
	Name     string       `json:"name"`
	Deleted  bool         `json:"deleted"`
	Metadata BookMetadata `json:"metadata"`
}

// BookMetadata is the editable metadata block of a book.
type BookMetadata struct {
	Title   string    `json:"title"`
	Summary string    `json:"summary"`
	Number  string    `json:"number"`
	Authors []Author  `json:"authors"`
	Tags    []string  `json:"tags"`
	Links   []WebLink `json:"links"`
}

// Author is a credited contributor with a role such as "writer".
type Author struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// WebLink is a labelled URL attached to a series or book.
type WebLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// AlternateTitle is a labelled alternate title for a series.
type AlternateTitle struct {
	Label string `json:"label"`
	Title string `json:"title"`
}

// AgeRating holds the raw content-rating value. The API serves it as a
// number or null, and some sources hand it over as a quoted number, so it
// is kept as text and coerced on demand.
type AgeRating string

func (a *AgeRating) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*a = ""
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return err
		}
		*a = AgeRating(strings.TrimSpace(unquoted))
		return nil
	}
	*a = AgeRating(s)
	return nil
}

func (a AgeRating) MarshalJSON() ([]byte, error) {
	if a == "" {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(string(a))), nil
}

// String returns the raw value, empty when the rating is absent.
func (a AgeRating) String() string { return string(a) }

// SeriesMetadataUpdate is a sparse PATCH body for series metadata. Zero
// fields are omitted from the wire payload, never sent as empty values.
type SeriesMetadataUpdate struct {
	Language         string           `json:"language,omitempty"`
	ReadingDirection string           `json:"readingDirection,omitempty"`
	Genres           []string         `json:"genres,omitempty"`
	Tags             []string         `json:"tags,omitempty"`
	Links            []WebLink        `json:"links,omitempty"`
	AlternateTitles  []AlternateTitle `json:"alternateTitles,omitempty"`
}

// IsZero reports whether the update carries no fields.
func (u SeriesMetadataUpdate) IsZero() bool {
	return u.Language == "" && u.ReadingDirection == "" &&
		len(u.Genres) == 0 && len(u.Tags) == 0 &&
		len(u.Links) == 0 && len(u.AlternateTitles) == 0
}

// Fields lists the populated field names, for logging.
func (u SeriesMetadataUpdate) Fields() []string {
	var fields []string
	if u.Language != "" {
		fields = append(fields, "language")
	}
	if u.ReadingDirection != "" {
		fields = append(fields, "readingDirection")
	}
	if len(u.Genres) > 0 {
		fields = append(fields, "genres")
	}
	if len(u.Tags) > 0 {
		fields = append(fields, "tags")
	}
	if len(u.Links) > 0 {
		fields = append(fields, "links")
	}
	if len(u.AlternateTitles) > 0 {
		fields = append(fields, "alternateTitles")
	}
	return fields
}

// BookMetadataUpdate is a sparse PATCH body for book metadata.
type BookMetadataUpdate struct {
	Title   string    `json:"title,omitempty"`
	Number  string    `json:"number,omitempty"`
	Summary string    `json:"summary,omitempty"`
	Authors []Author  `json:"authors,omitempty"`
	Tags    []string  `json:"tags,omitempty"`
	Links   []WebLink `json:"links,omitempty"`
}

// IsZero reports whether the update carries no fields.
func (u BookMetadataUpdate) IsZero() bool {
	return u.Title == "" && u.Number == "" && u.Summary == "" &&
		len(u.Authors) == 0 && len(u.Tags) == 0 && len(u.Links) == 0
}

// Fields lists the populated field names, for logging.
func (u BookMetadataUpdate) Fields() []string {
	var fields []string
	if u.Title != "" {
		fields = append(fields, "title")
	}
	if u.Number != "" {
		fields = append(fields, "number")
	}
	if u.Summary != "" {
		fields = append(fields, "summary")
	}
	if len(u.Authors) > 0 {
		fields = append(fields, "authors")
	}
	if len(u.Tags) > 0 {
		fields = append(fields, "tags")
	}
	if len(u.Links) > 0 {
		fields = append(fields, "links")
	}
	return fields
}
