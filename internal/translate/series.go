package translate

import (
	"strconv"
	"strings"

	"shelfsync/internal/komga"
	"shelfsync/internal/mylar"
)

// statusLabels maps the catalog status enum onto the sidecar schema's
// two-value status. Everything still being published, paused, or dropped
// reads as Continuing; only an explicit end reads as Ended.
var statusLabels = map[string]string{
	"ONGOING":   mylar.StatusContinuing,
	"HIATUS":    mylar.StatusContinuing,
	"ABANDONED": mylar.StatusContinuing,
	"ENDED":     mylar.StatusEnded,
}

// SeriesDocument builds the sidecar document for a catalog series. It is
// a pure function of the record: calling it twice on the same series
// yields identical documents, and persistence is the caller's business.
func SeriesDocument(series *komga.Series) *mylar.Document {
	meta := series.Metadata
	agg := series.BooksMetadata

	status, ok := statusLabels[strings.ToUpper(meta.Status)]
	if !ok {
		status = mylar.StatusContinuing
	}

	doc := &mylar.Document{
		Version: mylar.SchemaVersion,
		Metadata: mylar.Metadata{
			Type:             mylar.DocumentType,
			Publisher:        meta.Publisher,
			Name:             firstNonEmpty(meta.Title, series.Name),
			ComicID:          mylar.PlaceholderComicID,
			Year:             releaseYear(agg.ReleaseDate),
			DescriptionText:  firstNonEmpty(meta.Summary, agg.Summary),
			BookType:         mylar.DefaultBookType,
			TotalIssues:      TotalBooks(series),
			Status:           status,
			Language:         optional(meta.Language),
			ReadingDirection: optional(meta.ReadingDirection),
			ReleaseDate:      optional(agg.ReleaseDate),
			Authors:          compact(agg.Authors),
			Links:            compact(meta.Links),
			AlternateTitles:  compact(meta.AlternateTitles),
			Genres:           compact(meta.Genres),
			Tags:             tagFallback(meta.Tags, agg.Tags),
		},
	}
	if label, ok := NormalizeAgeRating(meta.AgeRating.String()); ok {
		doc.Metadata.AgeRating = &label
	}
	return doc
}

// TotalBooks resolves a series' book count: the metadata total when set,
// otherwise the outer aggregate count. The export filter rejects series
// whose resolved count is not positive.
func TotalBooks(series *komga.Series) int {
	if series.Metadata.TotalBookCount != 0 {
		return series.Metadata.TotalBookCount
	}
	return series.BooksCount
}

// releaseYear derives the publication year from the aggregate release
// date when its first four characters are digits; otherwise the schema's
// placeholder year stands.
func releaseYear(releaseDate string) int {
	if len(releaseDate) < 4 {
		return mylar.DefaultYear
	}
	prefix := releaseDate[:4]
	for _, r := range prefix {
		if r < '0' || r > '9' {
			return mylar.DefaultYear
		}
	}
	year, _ := strconv.Atoi(prefix)
	return year
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

// compact turns empty lists into nil so they serialize as null rather
// than [].
func compact[T any](list []T) []T {
	if len(list) == 0 {
		return nil
	}
	return list
}

func tagFallback(seriesTags, aggregateTags []string) []string {
	if len(seriesTags) > 0 {
		return seriesTags
	}
	return compact(aggregateTags)
}
