// Package volume detects volume designators in book display names and
// titles and derives a zero-padded volume token from them.
//
// The original convention was a single regular expression with a negative
// lookahead ruling out chapter-style units. RE2 has no lookahead, so the
// pattern is re-expressed as a two-stage matcher: a trigger scan for
// volume keywords followed by an exclusion scan over the trailing context.
package volume

import (
	"fmt"
	"unicode"

	"shelfsync/internal/cjknum"
)

// asciiTriggers are the Latin volume keywords, longest first so "volume"
// wins over "vol" at the same position.
var asciiTriggers = []string{"volumes", "volume", "vols", "vol"}

// glyphTriggers are the CJK glyphs that introduce a volume designator,
// including the ordinal marker 第.
var glyphTriggers = map[rune]bool{
	'巻': true, '卷': true, '册': true, '冊': true, '第': true,
}

// exclusions are unit glyphs for chapters, episodes, parts, issues and
// pages. A trigger followed anywhere later by one of these is rejected,
// disambiguating "第三卷" from "第3话".
var exclusions = map[rune]bool{
	'话': true, '話': true, '章': true, '回': true, '迴': true,
	'篇': true, '期': true, '辑': true, '輯': true, '节': true,
	'節': true, '页': true, '頁': true, '部': true,
}

// Extract searches the display name and then the title for a volume
// designator. It returns a decimal token zero-padded to at least two
// digits, or false when neither string contains one. Callers must leave
// book numbering untouched on a miss; Extract never synthesizes a default.
func Extract(name, title string) (string, bool) {
	if token, ok := scan(name); ok {
		return token, true
	}
	return scan(title)
}

func scan(s string) (string, bool) {
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		end, ok := triggerAt(runes, i)
		if !ok {
			continue
		}
		if containsExclusion(runes[end:]) {
			continue
		}
		if token, ok := captureNumeral(runes[end:]); ok {
			return token, true
		}
	}
	return "", false
}

func triggerAt(runes []rune, i int) (int, bool) {
	if glyphTriggers[runes[i]] {
		return i + 1, true
	}
	for _, kw := range asciiTriggers {
		if matchFold(runes, i, kw) {
			return i + len(kw), true
		}
	}
	return 0, false
}

func matchFold(runes []rune, i int, keyword string) bool {
	if i+len(keyword) > len(runes) {
		return false
	}
	for k := 0; k < len(keyword); k++ {
		if unicode.ToLower(runes[i+k]) != rune(keyword[k]) {
			return false
		}
	}
	return true
}

func containsExclusion(rest []rune) bool {
	for _, r := range rest {
		if exclusions[r] {
			return true
		}
	}
	return false
}

// captureNumeral skips separator characters after the trigger, then reads
// either a run of decimal digits (half-width or full-width) or a run of CJK
// numeral glyphs. The optional closing counter glyph (巻卷册冊集) needs no
// handling: it is not a numeral, so the run simply stops before it.
func captureNumeral(rest []rune) (string, bool) {
	j := 0
	for j < len(rest) && isSeparator(rest[j]) {
		j++
	}
	if j >= len(rest) {
		return "", false
	}
	if _, ok := digitValue(rest[j]); ok {
		n := 0
		for j < len(rest) {
			d, ok := digitValue(rest[j])
			if !ok {
				break
			}
			n = n*10 + d
			j++
		}
		return pad(n), true
	}
	if cjknum.IsNumeral(rest[j]) {
		start := j
		for j < len(rest) && cjknum.IsNumeral(rest[j]) {
			j++
		}
		return pad(cjknum.Parse(string(rest[start:j]))), true
	}
	return "", false
}

// digitValue recognizes the decimal digits that appear in volume labels:
// ASCII 0-9 and their full-width forms ０-９.
func digitValue(r rune) (int, bool) {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0'), true
	case r >= '０' && r <= '９':
		return int(r - '０'), true
	}
	return 0, false
}

// isSeparator mirrors the original pattern's [\W_] class: anything that is
// not a letter or digit, plus the underscore.
func isSeparator(r rune) bool {
	return r == '_' || (!unicode.IsLetter(r) && !unicode.IsDigit(r))
}

func pad(n int) string {
	return fmt.Sprintf("%02d", n)
}
