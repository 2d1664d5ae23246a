package renderer

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/compactlinks/internal/decoration"
)

// Theme maps decoration classes to terminal styles.
type Theme struct {
	// Text is the style of undecorated text.
	Text tcell.Style

	// Status is the style of the status line.
	Status tcell.Style

	// Classes holds the style of each decoration class.
	Classes map[string]tcell.Style
}

// DefaultTheme returns the built-in theme.
func DefaultTheme() Theme {
	link := tcell.StyleDefault.Foreground(tcell.ColorTeal).Underline(true)
	return Theme{
		Text:   tcell.StyleDefault,
		Status: tcell.StyleDefault.Reverse(true),
		Classes: map[string]tcell.Style{
			decoration.ClassAliasCustom:  link,
			decoration.ClassURLHidden:    link.Dim(true),
			decoration.ClassURLDomain:    link,
			decoration.ClassURLScheme:    link.Bold(true),
			decoration.ClassURLTruncated: link.Italic(true),
			decoration.ClassURLCustom:    link,
			decoration.ClassAltTruncated: tcell.StyleDefault.Foreground(tcell.ColorOlive).Italic(true),
			decoration.ClassAltCustom:    tcell.StyleDefault.Foreground(tcell.ColorOlive),
		},
	}
}

// Resolve returns the style for a space-separated class list. The last class
// with a style wins, so modifiers listed after a base class take effect.
func (t Theme) Resolve(class string) tcell.Style {
	style := t.Text
	for _, c := range strings.Fields(class) {
		if s, ok := t.Classes[c]; ok {
			style = s
		}
	}
	return style
}

// Selected returns style with selection highlighting applied.
func Selected(style tcell.Style) tcell.Style {
	return style.Reverse(true)
}
