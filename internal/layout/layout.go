package layout

import (
	"strings"

	"golang.org/x/image/font"
)

// Layout is the wrapped line set of one text block at one font context.
type Layout struct {
	Lines      []string
	LineHeight float64
}

// New wraps text for the given font context and maximum pixel width.
func New(text string, maxWidth int, fc FontContext) *Layout {
	return &Layout{
		Lines:      Wrap(strings.Fields(text), maxWidth, fc.Face),
		LineHeight: fc.LineHeight,
	}
}

// TotalHeight is the stacked pixel height of all lines.
func (l *Layout) TotalHeight() float64 {
	return float64(len(l.Lines)) * l.LineHeight
}

// Joined returns the lines re-joined with single spaces. The typewriter
// animation walks this string rune by rune.
func (l *Layout) Joined() string {
	return strings.Join(l.Lines, " ")
}

// Wrap greedily fills lines: the next word is appended while the measured
// width stays within maxWidth, otherwise it starts a new line. A single
// word wider than maxWidth is never split; it overflows on its own line.
func Wrap(words []string, maxWidth int, face font.Face) []string {
	var lines []string
	current := ""

	for _, word := range words {
		test := word
		if current != "" {
			test = current + " " + word
		}
		if Measure(face, test) > maxWidth && current != "" {
			lines = append(lines, current)
			current = word
		} else {
			current = test
		}
	}

	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// Measure returns the advance width of s in whole pixels.
func Measure(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}
