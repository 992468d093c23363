package renderer

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Canvas wraps one RGBA frame buffer with the drawing operations the
// phase renderers need: solid fills, translucent overlays, fill-to-frame
// image blits and centered text with alpha and an optional drop shadow.
type Canvas struct {
	img *image.RGBA
	W   int
	H   int
}

func NewCanvas(img *image.RGBA) *Canvas {
	b := img.Bounds()
	return &Canvas{img: img, W: b.Dx(), H: b.Dy()}
}

// Fill paints the whole frame with a solid color.
func (c *Canvas) Fill(col color.Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

// Overlay paints a translucent black layer over the whole frame.
func (c *Canvas) Overlay(alpha float64) {
	if alpha <= 0 {
		return
	}
	col := color.NRGBA{A: uint8(clamp01(alpha) * 255)}
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Over)
}

// DrawImageFill draws src scaled to cover the frame exactly. Images that
// were pre-scaled to the frame size are blitted directly.
func (c *Canvas) DrawImageFill(src image.Image) {
	if src == nil {
		return
	}
	sb := src.Bounds()
	if sb.Dx() == c.W && sb.Dy() == c.H {
		draw.Draw(c.img, c.img.Bounds(), src, sb.Min, draw.Src)
		return
	}
	xdraw.ApproxBiLinear.Scale(c.img, c.img.Bounds(), src, sb, xdraw.Src, nil)
}

// DrawImageAt composites src over the frame with its top-left at (x, y).
func (c *Canvas) DrawImageAt(src image.Image, x, y int) {
	if src == nil {
		return
	}
	sb := src.Bounds()
	rect := image.Rect(x, y, x+sb.Dx(), y+sb.Dy())
	draw.Draw(c.img, rect, src, sb.Min, draw.Over)
}

// TextStyle controls one DrawTextLine call.
type TextStyle struct {
	Face         font.Face
	Color        color.NRGBA
	Alpha        float64
	ShadowOffset int // 0 disables the drop shadow
}

// DrawTextLine draws s horizontally centered with its vertical middle at
// centerY, matching a middle text baseline.
func (c *Canvas) DrawTextLine(s string, style TextStyle, centerY float64) {
	if s == "" {
		return
	}

	width := font.MeasureString(style.Face, s).Ceil()
	x := (c.W - width) / 2

	m := style.Face.Metrics()
	baseline := int(centerY) + (m.Ascent.Ceil()-m.Descent.Ceil())/2

	alpha := clamp01(style.Alpha)
	if alpha <= 0 {
		return
	}

	if style.ShadowOffset > 0 {
		shadow := &font.Drawer{
			Dst:  c.img,
			Src:  image.NewUniform(color.NRGBA{A: uint8(alpha * 204)}),
			Face: style.Face,
			Dot:  fixed.P(x+style.ShadowOffset, baseline+style.ShadowOffset),
		}
		shadow.DrawString(s)
	}

	col := style.Color
	col.A = uint8(alpha * float64(col.A))
	drawer := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: style.Face,
		Dot:  fixed.P(x, baseline),
	}
	drawer.DrawString(s)
}

// ScaleTo resizes src to w x h once, so the per-frame blit is a copy.
func ScaleTo(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// ParseHexColor parses #rgb or #rrggbb, returning fallback on anything
// it cannot read.
func ParseHexColor(s string, fallback color.NRGBA) color.NRGBA {
	if len(s) == 0 || s[0] != '#' {
		return fallback
	}
	hex := s[1:]

	var r, g, b uint8
	switch len(hex) {
	case 3:
		rv, ok1 := hexNibble(hex[0])
		gv, ok2 := hexNibble(hex[1])
		bv, ok3 := hexNibble(hex[2])
		if !ok1 || !ok2 || !ok3 {
			return fallback
		}
		r, g, b = rv*17, gv*17, bv*17
	case 6:
		var vals [3]uint8
		for i := 0; i < 3; i++ {
			hi, ok1 := hexNibble(hex[i*2])
			lo, ok2 := hexNibble(hex[i*2+1])
			if !ok1 || !ok2 {
				return fallback
			}
			vals[i] = hi<<4 | lo
		}
		r, g, b = vals[0], vals[1], vals[2]
	default:
		return fallback
	}

	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
