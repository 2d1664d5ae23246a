// Package textwidth measures and shortens display text using a fixed
// double-width table for CJK scripts.
package textwidth

import "strings"

// Ellipsis is appended to truncated text.
const Ellipsis = "..."

// wideRanges lists the code point ranges that occupy two columns.
var wideRanges = [][2]rune{
	{0x3040, 0x309F}, // hiragana
	{0x30A0, 0x30FF}, // katakana
	{0x4E00, 0x9FFF}, // CJK unified ideographs
	{0xFF00, 0xFF9F}, // fullwidth forms
}

// RuneWidth returns the display width of r: 2 for wide scripts, 1 otherwise.
func RuneWidth(r rune) int {
	for _, rng := range wideRanges {
		if r >= rng[0] && r <= rng[1] {
			return 2
		}
	}
	return 1
}

// Width returns the display width of s.
func Width(s string) int {
	w := 0
	for _, r := range s {
		w += RuneWidth(r)
	}
	return w
}

// Truncate shortens text so that its width does not exceed max, appending
// Ellipsis when anything was cut. The ellipsis itself is not counted.
func Truncate(text string, max int) string {
	width := 0
	for i, r := range text {
		width += RuneWidth(r)
		if width > max {
			var b strings.Builder
			b.Grow(i + len(Ellipsis))
			b.WriteString(text[:i])
			b.WriteString(Ellipsis)
			return b.String()
		}
	}
	return text
}
