package source

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func tinyPNG(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestLoadEmptySlot(t *testing.T) {
	l := NewLoader(zerolog.Nop())
	if img := l.Load(context.Background(), ""); img != nil {
		t.Error("Expected nil for an empty slot")
	}
}

func TestLoadDataURI(t *testing.T) {
	l := NewLoader(zerolog.Nop())

	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(tinyPNG(t))
	img := l.Load(context.Background(), uri)
	if img == nil {
		t.Fatal("Expected decoded image from data URI")
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 4 {
		t.Errorf("Expected 4x4 image, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestLoadDataURIMalformed(t *testing.T) {
	l := NewLoader(zerolog.Nop())

	for _, uri := range []string{
		"data:image/png;base64",             // no payload separator
		"data:image/png,notbase64",          // unsupported encoding
		"data:image/png;base64,%%%invalid",  // broken base64
		"data:image/png;base64,aGVsbG8=",    // valid base64, not an image
	} {
		if img := l.Load(context.Background(), uri); img != nil {
			t.Errorf("Expected nil for %q", uri)
		}
	}
}

func TestLoadFile(t *testing.T) {
	l := NewLoader(zerolog.Nop())

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := os.WriteFile(path, tinyPNG(t), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if img := l.Load(context.Background(), path); img == nil {
		t.Error("Expected decoded image from file")
	}
}

func TestLoadMissingFile(t *testing.T) {
	l := NewLoader(zerolog.Nop())
	if img := l.Load(context.Background(), "/no/such/file.png"); img != nil {
		t.Error("Expected nil for a missing file")
	}
}
