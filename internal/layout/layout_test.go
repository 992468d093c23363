package layout

import (
	"math"
	"strings"
	"testing"

	"github.com/ivlev/story2video/internal/config"
)

func testFonts(t *testing.T) *FontSet {
	t.Helper()
	fonts, err := NewFontSet(config.Default())
	if err != nil {
		t.Fatalf("NewFontSet: %v", err)
	}
	return fonts
}

func TestWrapRoundTrip(t *testing.T) {
	fonts := testFonts(t)
	text := "Once upon a time a small village stood at the edge of a deep and quiet forest where nobody ever went after dark"

	l := New(text, 600, fonts.Content)
	if len(l.Lines) < 2 {
		t.Fatalf("Expected text to wrap into multiple lines, got %d", len(l.Lines))
	}

	// Wrapping must preserve the word sequence exactly.
	if got := l.Joined(); got != text {
		t.Errorf("Joined lines differ from input:\n  in:  %q\n  out: %q", text, got)
	}
}

func TestWrapRespectsMaxWidth(t *testing.T) {
	fonts := testFonts(t)
	const maxWidth = 480

	l := New("the quick brown fox jumps over the lazy dog again and again until sunset", maxWidth, fonts.Content)
	for i, line := range l.Lines {
		if len(strings.Fields(line)) == 1 {
			continue // a single overlong word may exceed the width
		}
		if w := Measure(fonts.Content.Face, line); w > maxWidth {
			t.Errorf("Line %d wider than %d: %d (%q)", i, maxWidth, w, line)
		}
	}
}

func TestWrapOverlongWordAlone(t *testing.T) {
	fonts := testFonts(t)
	long := strings.Repeat("x", 80)

	lines := Wrap([]string{"a", long, "b"}, 200, fonts.Content.Face)
	found := false
	for _, line := range lines {
		if line == long {
			found = true
		} else if strings.Contains(line, long) {
			t.Errorf("Overlong word shares a line: %q", line)
		}
	}
	if !found {
		t.Errorf("Overlong word missing from lines %q", lines)
	}
}

func TestWrapEmpty(t *testing.T) {
	fonts := testFonts(t)

	l := New("   ", 600, fonts.Content)
	if len(l.Lines) != 0 {
		t.Errorf("Expected no lines for blank text, got %q", l.Lines)
	}
	if l.TotalHeight() != 0 {
		t.Errorf("Expected zero height, got %f", l.TotalHeight())
	}
}

func TestFontSetSizes(t *testing.T) {
	cust := config.Default()
	cust.FontSize = 36

	fonts, err := NewFontSet(cust)
	if err != nil {
		t.Fatalf("NewFontSet: %v", err)
	}

	// 1.5x body capped at body+40.
	if math.Abs(fonts.Title.Size-54) > 0.0001 {
		t.Errorf("Expected title size 54, got %f", fonts.Title.Size)
	}
	// 1.2x body capped at body+20.
	if math.Abs(fonts.Outro.Size-43.2) > 0.0001 {
		t.Errorf("Expected outro size 43.2, got %f", fonts.Outro.Size)
	}
	if math.Abs(fonts.Content.LineHeight-57.6) > 0.0001 {
		t.Errorf("Expected content line height 57.6, got %f", fonts.Content.LineHeight)
	}
}

func TestFontSetCaps(t *testing.T) {
	cust := config.Default()
	cust.FontSize = 100

	fonts, err := NewFontSet(cust)
	if err != nil {
		t.Fatalf("NewFontSet: %v", err)
	}

	if math.Abs(fonts.Title.Size-140) > 0.0001 { // min(150, 100+40)
		t.Errorf("Expected capped title size 140, got %f", fonts.Title.Size)
	}
	if math.Abs(fonts.Outro.Size-120) > 0.0001 { // min(120, 100+20)
		t.Errorf("Expected capped outro size 120, got %f", fonts.Outro.Size)
	}
}
