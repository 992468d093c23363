// Package layout builds font contexts and wraps text into
// pixel-width-constrained lines for the frame renderer.
package layout

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/opentype"

	"github.com/ivlev/story2video/internal/config"
)

// FontContext is one face with its derived vertical metrics. The title,
// content and outro phases each use their own context.
type FontContext struct {
	Face       font.Face
	Size       float64
	LineHeight float64
}

// FontSet holds the three font contexts of a render.
//
// Title runs at 1.5x the body size capped at body+40 with the heaviest
// weight, outro at 1.2x capped at body+20 with a medium weight.
type FontSet struct {
	Title   FontContext
	Content FontContext
	Outro   FontContext
}

// NewFontSet builds faces for the customization. FontPath overrides the
// embedded families with a caller-supplied TTF/OTF used at every weight.
func NewFontSet(cust *config.VideoCustomization) (*FontSet, error) {
	size := cust.FontSize
	titleSize := minf(size*1.5, size+40)
	outroSize := minf(size*1.2, size+20)

	heavy, medium, err := loadWeights(cust)
	if err != nil {
		return nil, err
	}

	titleFace, err := newFace(heavy, titleSize)
	if err != nil {
		return nil, errors.Wrap(err, "title face")
	}
	contentFace, err := newFace(heavy, size)
	if err != nil {
		return nil, errors.Wrap(err, "content face")
	}
	outroFace, err := newFace(medium, outroSize)
	if err != nil {
		return nil, errors.Wrap(err, "outro face")
	}

	return &FontSet{
		Title:   FontContext{Face: titleFace, Size: titleSize, LineHeight: titleSize * 1.4},
		Content: FontContext{Face: contentFace, Size: size, LineHeight: size * 1.6},
		Outro:   FontContext{Face: outroFace, Size: outroSize, LineHeight: outroSize * 1.5},
	}, nil
}

func loadWeights(cust *config.VideoCustomization) (heavy, medium *opentype.Font, err error) {
	if cust.FontPath != "" {
		data, err := os.ReadFile(cust.FontPath)
		if err != nil {
			return nil, nil, errors.Wrap(err, "read font file")
		}
		f, err := opentype.Parse(data)
		if err != nil {
			return nil, nil, errors.Wrap(err, "parse font file")
		}
		return f, f, nil
	}

	var heavyTTF, mediumTTF []byte
	switch cust.FontFamily {
	case "mono", "monospace":
		heavyTTF, mediumTTF = gomonobold.TTF, gomono.TTF
	default: // sans, serif and anything else use the Go sans family
		heavyTTF, mediumTTF = gobold.TTF, gomedium.TTF
	}

	if heavy, err = opentype.Parse(heavyTTF); err != nil {
		return nil, nil, errors.Wrap(err, "parse heavy font")
	}
	if medium, err = opentype.Parse(mediumTTF); err != nil {
		return nil, nil, errors.Wrap(err, "parse medium font")
	}
	return heavy, medium, nil
}

func newFace(f *opentype.Font, size float64) (font.Face, error) {
	// DPI 72 makes the point size equal the pixel size.
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
