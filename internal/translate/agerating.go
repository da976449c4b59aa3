package translate

import (
	"strconv"
	"strings"
)

// Age-rating category labels, ordered by severity.
const (
	RatingAll       = "All"
	RatingNine      = "9+"
	RatingTwelve    = "12+"
	RatingFifteen   = "15+"
	RatingSeventeen = "17+"
	RatingAdult     = "Adult"
)

// NormalizeAgeRating maps a raw rating value onto the ordinal category
// scale. The raw value may be a number or a numeric string; an empty
// value (absent) or a non-numeric string is unrepresentable and reported
// via the second return, letting the caller omit the field entirely.
func NormalizeAgeRating(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return "", false
	}
	switch {
	case v <= 0:
		return RatingAll, true
	case v < 12:
		return RatingNine, true
	case v < 15:
		return RatingTwelve, true
	case v < 17:
		return RatingFifteen, true
	case v < 18:
		return RatingSeventeen, true
	default:
		return RatingAdult, true
	}
}
