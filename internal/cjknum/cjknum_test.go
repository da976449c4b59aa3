package cjknum_test

import (
	"testing"

	"shelfsync/internal/cjknum"
)

func TestParse(t *testing.T) {
	cases := []struct {
		input string
		want  int
	}{
		{"一", 1},
		{"二", 2},
		{"两", 2},
		{"俩", 2},
		{"五", 5},
		{"九", 9},
		{"十", 10},
		{"十二", 12},
		{"二十", 20},
		{"二十一", 21},
		{"三十五", 35},
		{"九十九", 99},
		{"百", 100},
		{"一百二十", 120},
		{"两百", 200},
		{"一千零一", 1001},
		{"二千零一十", 2010},
		{"一万", 10000},
		{"〇", 0},
		{"零", 0},
	}
	for _, tc := range cases {
		if got := cjknum.Parse(tc.input); got != tc.want {
			t.Errorf("Parse(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

func TestParseIgnoresUnrecognizedGlyphs(t *testing.T) {
	// Lenient policy: stray glyphs contribute nothing rather than erroring.
	if got := cjknum.Parse("第三十五卷"); got != 35 {
		t.Fatalf("Parse with surrounding glyphs = %d, want 35", got)
	}
	if got := cjknum.Parse("abc"); got != 0 {
		t.Fatalf("Parse with no numerals = %d, want 0", got)
	}
}

func TestIsNumeral(t *testing.T) {
	for _, r := range "一二三四五六七八九十百千万零〇两俩" {
		if !cjknum.IsNumeral(r) {
			t.Errorf("IsNumeral(%q) = false, want true", r)
		}
	}
	for _, r := range "卷第话A3" {
		if cjknum.IsNumeral(r) {
			t.Errorf("IsNumeral(%q) = true, want false", r)
		}
	}
}
