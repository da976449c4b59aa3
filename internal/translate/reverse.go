package translate

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"shelfsync/internal/komga"
	"shelfsync/internal/mylar"
	"shelfsync/internal/volume"
)

// volumeTitleFormat is the fixed display label assigned to books with a
// detected volume token, e.g. "卷 03".
const volumeTitleFormat = "卷 %s"

// SeriesUpdate builds the series-level patch from a sidecar document.
// Only fields present in the document are included; absent fields stay
// out of the payload so existing catalog values are never blanked.
func SeriesUpdate(doc *mylar.Document) komga.SeriesMetadataUpdate {
	meta := doc.Metadata
	return komga.SeriesMetadataUpdate{
		Language:         canonicalLanguage(deref(meta.Language)),
		ReadingDirection: deref(meta.ReadingDirection),
		Genres:           compact(meta.Genres),
		Tags:             compact(meta.Tags),
		Links:            compact(meta.Links),
		AlternateTitles:  compact(meta.AlternateTitles),
	}
}

// BookUpdate builds the per-book patch. Authors come verbatim from the
// document; a detected volume token sets the display title and number;
// a one-shot series copies its narrative metadata into its sole book.
// Callers must drop updates whose IsZero reports true rather than pushing
// empty patches.
func BookUpdate(book *komga.Book, doc *mylar.Document, series *komga.Series, seriesUpdate komga.SeriesMetadataUpdate) komga.BookMetadataUpdate {
	var update komga.BookMetadataUpdate
	if authors := compact(doc.Metadata.Authors); len(authors) > 0 {
		update.Authors = authors
	}
	if token, ok := volume.Extract(book.Name, book.Metadata.Title); ok {
		update.Title = fmt.Sprintf(volumeTitleFormat, token)
		update.Number = token
	}
	if series.Oneshot {
		update.Summary = series.Metadata.Summary
		update.Links = seriesUpdate.Links
		update.Tags = seriesUpdate.Tags
	}
	return update
}

// canonicalLanguage normalizes a language code to its BCP-47 canonical
// form before it is pushed to the catalog. Lenient: values the parser
// rejects pass through unchanged, preserving the round-trip property.
func canonicalLanguage(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return raw
	}
	return tag.String()
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
