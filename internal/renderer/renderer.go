// Package renderer draws the frames of a render: the Title -> Content ->
// Outro state machine, the three content animations and the low-level
// canvas operations they are built on.
package renderer

import (
	"image"
	"image/color"

	"github.com/ivlev/story2video/internal/config"
	"github.com/ivlev/story2video/internal/layout"
	"github.com/ivlev/story2video/internal/timeline"
)

// Overlay strengths: stronger for title/outro, where text sits on a
// photograph, lighter behind scrolling content.
const (
	titleOverlay   = 0.3
	contentOverlay = 0.2
	outroOverlay   = 0.3

	titleShadowOffset = 4
	outroShadowOffset = 3
)

// Context is the per-call render state threaded through every drawing
// routine. It is built once per render and never mutated by Draw.
type Context struct {
	Width  int
	Height int

	Cust     *config.VideoCustomization
	Timeline *timeline.Timeline
	Fonts    *layout.FontSet

	TitleLayout   *layout.Layout
	ContentLayout *layout.Layout
	OutroLayout   *layout.Layout

	// Pre-scaled to the canvas size, nil when the slot is unused or the
	// image failed to load.
	Background image.Image
	Starting   image.Image
	Outro      image.Image

	// Optional channel-link QR code shown under the outro lines.
	QR image.Image

	TextColor       color.NRGBA
	BackgroundColor color.NRGBA
}

// FrameRenderer draws single frames for one render context.
type FrameRenderer struct {
	rc *Context
}

func New(rc *Context) *FrameRenderer {
	return &FrameRenderer{rc: rc}
}

// Draw renders frame idx into dst. Frames may be drawn in any order in
// principle, but the engine always calls this in increasing index order.
func (r *FrameRenderer) Draw(dst *image.RGBA, idx int) {
	c := NewCanvas(dst)

	phase, progress := r.rc.Timeline.PhaseAt(idx)
	switch phase {
	case timeline.PhaseTitle:
		r.drawTitle(c, progress)
	case timeline.PhaseContent:
		r.drawContent(c, progress)
	default:
		r.drawOutro(c, progress)
	}
}

func (r *FrameRenderer) backdrop(c *Canvas, img image.Image, overlay float64) {
	if img != nil {
		c.DrawImageFill(img)
		c.Overlay(overlay)
		return
	}
	c.Fill(r.rc.BackgroundColor)
}

func (r *FrameRenderer) drawTitle(c *Canvas, progress float64) {
	r.backdrop(c, r.rc.Starting, titleOverlay)

	alpha := FadeInOut(progress, 0.2, 0.2)
	style := TextStyle{
		Face:         r.rc.Fonts.Title.Face,
		Color:        r.rc.TextColor,
		Alpha:        alpha,
		ShadowOffset: titleShadowOffset,
	}

	lines := r.rc.TitleLayout.Lines
	lh := r.rc.TitleLayout.LineHeight
	centerY := float64(c.H) / 2
	for i, line := range lines {
		y := centerY + float64(i)*lh - float64(len(lines))*lh/2
		c.DrawTextLine(line, style, y)
	}
}

func (r *FrameRenderer) drawContent(c *Canvas, progress float64) {
	r.backdrop(c, r.rc.Background, contentOverlay)

	// Body text never gets a drop shadow; legibility comes from the
	// solid or darkened background.
	style := TextStyle{
		Face:  r.rc.Fonts.Content.Face,
		Color: r.rc.TextColor,
		Alpha: 1,
	}

	switch r.rc.Cust.TextAnimation {
	case config.AnimationFade:
		r.drawFade(c, style, progress)
	case config.AnimationTypewriter:
		r.drawTypewriter(c, style, progress)
	default:
		r.drawScroll(c, style, progress)
	}
}

// drawOutro is only reachable with a positive outro duration, which
// requires a loaded outro image; without one it degenerates to the
// background fill.
func (r *FrameRenderer) drawOutro(c *Canvas, progress float64) {
	if r.rc.Outro == nil {
		c.Fill(r.rc.BackgroundColor)
		return
	}

	c.DrawImageFill(r.rc.Outro)
	c.Overlay(outroOverlay)

	// Fade in only; the video ends while the outro holds.
	alpha := FadeInOut(progress, 0.3, 0)
	style := TextStyle{
		Face:         r.rc.Fonts.Outro.Face,
		Color:        r.rc.TextColor,
		Alpha:        alpha,
		ShadowOffset: outroShadowOffset,
	}

	lines := r.rc.OutroLayout.Lines
	lh := r.rc.OutroLayout.LineHeight
	centerY := float64(c.H) / 2
	for i, line := range lines {
		y := centerY + float64(i)*lh - float64(len(lines))*lh/2
		c.DrawTextLine(line, style, y)
	}

	if r.rc.QR != nil && alpha >= 1 {
		qw := r.rc.QR.Bounds().Dx()
		x := (c.W - qw) / 2
		y := int(centerY + float64(len(lines))*lh/2 + 40)
		c.DrawImageAt(r.rc.QR, x, y)
	}
}

func (r *FrameRenderer) drawScroll(c *Canvas, style TextStyle, progress float64) {
	l := r.rc.ContentLayout
	scrollY := ScrollY(progress, l.TotalHeight(), float64(c.H))

	for i, line := range l.Lines {
		y := scrollY + float64(i)*l.LineHeight
		// Lines outside the visible band are skipped; no visual effect.
		if y <= -l.LineHeight || y >= float64(c.H)+l.LineHeight {
			continue
		}
		c.DrawTextLine(line, style, y)
	}
}

func (r *FrameRenderer) drawFade(c *Canvas, style TextStyle, progress float64) {
	l := r.rc.ContentLayout
	perScreen := timeline.LinesPerScreen(c.H, l.LineHeight)
	screens := timeline.Screens(len(l.Lines), c.H, l.LineHeight)

	screen, within := FadeScreen(progress, screens)

	var start, end int
	if screen >= screens {
		// All screens shown: the final screen stays static.
		start = (screens - 1) * perScreen
		if start < 0 {
			start = 0
		}
		end = len(l.Lines)
		style.Alpha = 1
	} else {
		start = screen * perScreen
		end = start + perScreen
		if end > len(l.Lines) {
			end = len(l.Lines)
		}
		if screen == screens-1 {
			// The last screen fades in and then holds; the content
			// phase ends on visible text.
			style.Alpha = FadeInOut(within, 0.15, 0)
		} else {
			style.Alpha = FadeInOut(within, 0.15, 0.15)
		}
	}

	centerY := float64(c.H) / 2
	count := end - start
	for i := start; i < end; i++ {
		y := centerY + float64(i-start)*l.LineHeight - float64(count)*l.LineHeight/2
		c.DrawTextLine(l.Lines[i], style, y)
	}
}

func (r *FrameRenderer) drawTypewriter(c *Canvas, style TextStyle, progress float64) {
	l := r.rc.ContentLayout
	total := len([]rune(l.Joined()))
	visible := TypewriterVisible(progress, total)

	var shown []string
	if visible >= total {
		shown = l.Lines
	} else {
		count := 0
		for _, line := range l.Lines {
			runes := []rune(line)
			if count+len(runes) <= visible {
				shown = append(shown, line)
				count += len(runes) + 1 // joining space
			} else if count < visible {
				shown = append(shown, string(runes[:visible-count]))
				break
			} else {
				break
			}
		}
	}

	centerY := float64(c.H) / 2
	for i, line := range shown {
		y := centerY + float64(i)*l.LineHeight - float64(len(shown))*l.LineHeight/2
		c.DrawTextLine(line, style, y)
	}
}

// FadeInOut ramps alpha linearly from 0 over the first in fraction of
// progress and back to 0 over the last out fraction. A zero band
// disables that edge.
func FadeInOut(progress, in, out float64) float64 {
	p := clamp01(progress)
	if in > 0 && p < in {
		return p / in
	}
	if out > 0 && p > 1-out {
		return (1 - p) / out
	}
	return 1
}

// ScrollY returns the vertical position of the first content line: a
// linear glide over the first 90% of the content phase from below the
// frame to fully above it, holding the final position for the rest.
// The travel distance is the text height plus 0.8x the canvas height.
func ScrollY(progress, totalHeight, canvasHeight float64) float64 {
	const scrollPhase = 0.9
	distance := totalHeight + canvasHeight*0.8

	p := clamp01(progress)
	if p >= scrollPhase {
		return canvasHeight - distance
	}
	return canvasHeight - p/scrollPhase*distance
}

// FadeScreen maps content progress to the active fade screen index and
// the progress within it. The index equals screens once every screen has
// been shown.
func FadeScreen(progress float64, screens int) (int, float64) {
	sp := clamp01(progress) * float64(screens)
	idx := int(sp)
	if idx >= screens {
		return screens, 1
	}
	return idx, sp - float64(idx)
}

// TypewriterVisible is how many runes of the joined text are revealed:
// proportional to elapsed progress across the first 90% of the content
// phase, everything afterwards.
func TypewriterVisible(progress float64, totalRunes int) int {
	const typingPhase = 0.9

	p := clamp01(progress)
	if p >= typingPhase {
		return totalRunes
	}
	n := int(p / typingPhase * float64(totalRunes))
	if n > totalRunes {
		n = totalRunes
	}
	return n
}
