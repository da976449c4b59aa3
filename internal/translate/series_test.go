package translate_test

import (
	"encoding/json"
	"reflect"
	"testing"

	"shelfsync/internal/komga"
	"shelfsync/internal/mylar"
	"shelfsync/internal/translate"
)

func testSeries() *komga.Series {
	return &komga.Series{
		ID:         "s1",
		Name:       "Test Series",
		URL:        "/library/Test Series",
		BooksCount: 5,
		Metadata: komga.SeriesMetadata{
			Title:            "Test Series",
			Status:           "ONGOING",
			Publisher:        "Shogakukan",
			Summary:          "A test series.",
			AgeRating:        "15",
			Language:         "ja",
			ReadingDirection: "RIGHT_TO_LEFT",
			Genres:           []string{"fantasy"},
			Tags:             []string{"isekai"},
			TotalBookCount:   5,
		},
		BooksMetadata: komga.BooksMetadata{
			ReleaseDate: "2020-04-17",
			Authors:     []komga.Author{{Name: "Yamada Kanehito", Role: "writer"}},
		},
	}
}

func TestSeriesDocumentMapping(t *testing.T) {
	doc := translate.SeriesDocument(testSeries())
	meta := doc.Metadata

	if doc.Version != mylar.SchemaVersion {
		t.Errorf("version = %q, want %q", doc.Version, mylar.SchemaVersion)
	}
	if meta.Type != mylar.DocumentType || meta.BookType != mylar.DefaultBookType {
		t.Errorf("fixed type fields wrong: %q %q", meta.Type, meta.BookType)
	}
	if meta.ComicID != mylar.PlaceholderComicID {
		t.Errorf("comicid = %d", meta.ComicID)
	}
	if meta.Name != "Test Series" {
		t.Errorf("name = %q", meta.Name)
	}
	if meta.Status != mylar.StatusContinuing {
		t.Errorf("status = %q, want Continuing", meta.Status)
	}
	if meta.AgeRating == nil || *meta.AgeRating != "15+" {
		t.Errorf("age_rating = %v, want 15+", meta.AgeRating)
	}
	if meta.TotalIssues != 5 {
		t.Errorf("total_issues = %d, want 5", meta.TotalIssues)
	}
	if meta.Year != 2020 {
		t.Errorf("year = %d, want 2020 from release date", meta.Year)
	}
	if meta.Language == nil || *meta.Language != "ja" {
		t.Errorf("language = %v", meta.Language)
	}
	if len(meta.Authors) != 1 || meta.Authors[0].Name != "Yamada Kanehito" {
		t.Errorf("authors = %#v", meta.Authors)
	}
	if err := doc.Validate(); err != nil {
		t.Errorf("document invalid: %v", err)
	}
}

func TestSeriesDocumentFallbacks(t *testing.T) {
	series := testSeries()
	series.Metadata.Title = ""
	series.Metadata.Summary = ""
	series.Metadata.Tags = nil
	series.BooksMetadata.Summary = "Aggregate summary."
	series.BooksMetadata.Tags = []string{"from-books"}

	meta := translate.SeriesDocument(series).Metadata
	if meta.Name != "Test Series" {
		t.Errorf("name fallback to display name failed: %q", meta.Name)
	}
	if meta.DescriptionText != "Aggregate summary." {
		t.Errorf("description fallback failed: %q", meta.DescriptionText)
	}
	if !reflect.DeepEqual(meta.Tags, []string{"from-books"}) {
		t.Errorf("tags fallback failed: %#v", meta.Tags)
	}
}

func TestSeriesDocumentStatusMapping(t *testing.T) {
	cases := map[string]string{
		"ONGOING":   mylar.StatusContinuing,
		"HIATUS":    mylar.StatusContinuing,
		"ABANDONED": mylar.StatusContinuing,
		"ENDED":     mylar.StatusEnded,
		"ongoing":   mylar.StatusContinuing,
		"":          mylar.StatusContinuing,
		"UNKNOWN":   mylar.StatusContinuing,
	}
	for status, want := range cases {
		series := testSeries()
		series.Metadata.Status = status
		if got := translate.SeriesDocument(series).Metadata.Status; got != want {
			t.Errorf("status %q mapped to %q, want %q", status, got, want)
		}
	}
}

func TestSeriesDocumentYearPlaceholder(t *testing.T) {
	for _, date := range []string{"", "April 2020", "20-04-17", "n/a"} {
		series := testSeries()
		series.BooksMetadata.ReleaseDate = date
		if got := translate.SeriesDocument(series).Metadata.Year; got != mylar.DefaultYear {
			t.Errorf("release date %q: year = %d, want placeholder %d", date, got, mylar.DefaultYear)
		}
	}
}

func TestSeriesDocumentOmitsUnrepresentableRating(t *testing.T) {
	series := testSeries()
	series.Metadata.AgeRating = ""
	if got := translate.SeriesDocument(series).Metadata.AgeRating; got != nil {
		t.Errorf("expected nil age_rating for absent rating, got %v", *got)
	}
	series.Metadata.AgeRating = "mature"
	if got := translate.SeriesDocument(series).Metadata.AgeRating; got != nil {
		t.Errorf("expected nil age_rating for non-numeric rating, got %v", *got)
	}
}

func TestSeriesDocumentIdempotent(t *testing.T) {
	series := testSeries()
	first, err := json.Marshal(translate.SeriesDocument(series))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second, err := json.Marshal(translate.SeriesDocument(series))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(first) != string(second) {
		t.Fatal("translating the same series twice produced different documents")
	}
}

func TestTotalBooks(t *testing.T) {
	series := testSeries()
	series.Metadata.TotalBookCount = 12
	series.BooksCount = 5
	if got := translate.TotalBooks(series); got != 12 {
		t.Errorf("TotalBooks = %d, want metadata count 12", got)
	}
	series.Metadata.TotalBookCount = 0
	if got := translate.TotalBooks(series); got != 5 {
		t.Errorf("TotalBooks = %d, want aggregate count 5", got)
	}
}

func TestRoundTripSeriesFields(t *testing.T) {
	series := testSeries()
	doc := translate.SeriesDocument(series)
	update := translate.SeriesUpdate(doc)

	if update.Language != series.Metadata.Language {
		t.Errorf("language: got %q, want %q", update.Language, series.Metadata.Language)
	}
	if update.ReadingDirection != series.Metadata.ReadingDirection {
		t.Errorf("readingDirection: got %q, want %q", update.ReadingDirection, series.Metadata.ReadingDirection)
	}
	if !reflect.DeepEqual(update.Genres, series.Metadata.Genres) {
		t.Errorf("genres: got %#v", update.Genres)
	}
	if !reflect.DeepEqual(update.Tags, series.Metadata.Tags) {
		t.Errorf("tags: got %#v", update.Tags)
	}
}
