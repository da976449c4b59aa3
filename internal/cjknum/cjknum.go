// Package cjknum converts strings of Chinese/Japanese numeral glyphs into
// integers under the traditional positional convention ("三十五" → 35).
//
// Parsing is deliberately lenient: glyphs outside the recognized set
// contribute nothing instead of failing, so callers can hand over loosely
// matched spans without pre-validating them.
package cjknum

// glyphValues maps each recognized numeral glyph to its value. Digit glyphs
// carry 0-9, multiplier glyphs carry their positional value. 两 and 俩 are
// colloquial synonyms for two.
var glyphValues = map[rune]int{
	'零': 0, '〇': 0,
	'一': 1, '二': 2, '三': 3, '四': 4, '五': 5,
	'六': 6, '七': 7, '八': 8, '九': 9,
	'十': 10, '百': 100, '千': 1000, '万': 10000,
	'两': 2, '俩': 2,
}

// IsNumeral reports whether r is a recognized numeral glyph.
func IsNumeral(r rune) bool {
	_, ok := glyphValues[r]
	return ok
}

// Parse evaluates a numeral glyph sequence right to left, accumulating
// digit*unit products. A multiplier with no digit before it counts as one
// (so a leading 十 reads as ten, not zero tens), and a string ending on the
// most-significant multiplier folds its pending digit in after the scan.
// Single-digit inputs fall out of the zero-total case.
func Parse(s string) int {
	var (
		total int
		num   int
		unit  = 1
	)
	runes := []rune(s)
	for i := len(runes) - 1; i >= 0; i-- {
		val, ok := glyphValues[runes[i]]
		if !ok {
			continue
		}
		if val >= 10 {
			if num == 0 {
				num = 1
			}
			unit = val
			continue
		}
		total += val * unit
		unit = 1
		num = 0
	}
	if unit > 1 {
		total += num * unit
	}
	if total > 0 {
		return total
	}
	return num
}
