package engine

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ivlev/story2video/internal/config"
	"github.com/ivlev/story2video/internal/encoder"
	"github.com/ivlev/story2video/internal/source"
)

// fakeSink counts frames instead of encoding them.
type fakeSink struct {
	width, height, fps int

	frames   int
	started  bool
	finished bool
	aborted  bool
}

func (s *fakeSink) Start(width, height, fps int) error {
	s.width, s.height, s.fps = width, height, fps
	s.started = true
	return nil
}

func (s *fakeSink) Write(frame *image.RGBA) error {
	b := frame.Bounds()
	if b.Dx() != s.width || b.Dy() != s.height {
		panic("frame size does not match stream")
	}
	s.frames++
	return nil
}

func (s *fakeSink) Finish() (*encoder.Output, error) {
	s.finished = true
	return &encoder.Output{Data: []byte("fake webm"), MIMEType: encoder.MIMEType}, nil
}

func (s *fakeSink) Abort() {
	s.aborted = true
}

func newTestRenderer(sink encoder.FrameSink) *Renderer {
	return New(sink, source.NewLoader(zerolog.Nop()), zerolog.Nop())
}

// quickCust keeps test renders short: tiny text plus the typewriter
// animation bottoms out at the minimum content duration.
func quickCust() *config.VideoCustomization {
	c := config.Default()
	c.TextAnimation = config.AnimationTypewriter
	c.Speed = 2.0
	return c
}

func TestRenderVideoProgress(t *testing.T) {
	sink := &fakeSink{}
	r := newTestRenderer(sink)

	var progress []int
	res, err := r.RenderVideo(context.Background(), "hello world", "a tiny story", quickCust(), func(p int) {
		progress = append(progress, p)
	})
	if err != nil {
		t.Fatalf("RenderVideo: %v", err)
	}

	if !sink.started || !sink.finished {
		t.Error("Expected the sink to be started and finished")
	}
	if sink.frames == 0 {
		t.Fatal("Expected frames to be written")
	}

	// One progress call per frame, non-decreasing, ending at 100.
	if len(progress) != sink.frames {
		t.Errorf("Expected %d progress calls, got %d", sink.frames, len(progress))
	}
	for i := 1; i < len(progress); i++ {
		if progress[i] < progress[i-1] {
			t.Fatalf("Progress went backwards at call %d: %d -> %d", i, progress[i-1], progress[i])
		}
	}
	if last := progress[len(progress)-1]; last != 100 {
		t.Errorf("Expected final progress 100, got %d", last)
	}

	if res.MIMEType != encoder.MIMEType {
		t.Errorf("Expected MIME type %q, got %q", encoder.MIMEType, res.MIMEType)
	}
	if len(res.Data) == 0 {
		t.Error("Expected non-empty result data")
	}
	if res.Title != "A Tiny Story" {
		t.Errorf("Expected cleaned title, got %q", res.Title)
	}
}

func TestRenderVideoDimensions(t *testing.T) {
	cases := []struct {
		aspect        config.AspectRatio
		width, height int
	}{
		{config.AspectPortrait, 720, 1280},
		{config.AspectLandscape, 1280, 720},
	}

	for _, c := range cases {
		sink := &fakeSink{}
		cust := quickCust()
		cust.AspectRatio = c.aspect

		if _, err := newTestRenderer(sink).RenderVideo(context.Background(), "hello", "t", cust, nil); err != nil {
			t.Fatalf("%s: RenderVideo: %v", c.aspect, err)
		}
		if sink.width != c.width || sink.height != c.height {
			t.Errorf("%s: expected %dx%d stream, got %dx%d", c.aspect, c.width, c.height, sink.width, sink.height)
		}
	}
}

func TestRenderVideoOutroOnlyWithImage(t *testing.T) {
	plain := &fakeSink{}
	if _, err := newTestRenderer(plain).RenderVideo(context.Background(), "hello", "t", quickCust(), nil); err != nil {
		t.Fatalf("RenderVideo: %v", err)
	}

	// A broken outro slot degrades to no outro, not to an error.
	broken := &fakeSink{}
	cust := quickCust()
	cust.OutroImage = "/no/such/outro.png"
	if _, err := newTestRenderer(broken).RenderVideo(context.Background(), "hello", "t", cust, nil); err != nil {
		t.Fatalf("RenderVideo with broken outro: %v", err)
	}
	if broken.frames != plain.frames {
		t.Errorf("Broken outro changed the frame count: %d vs %d", broken.frames, plain.frames)
	}

	// A loadable outro image adds exactly its duration in frames.
	path := filepath.Join(t.TempDir(), "outro.png")
	writeTestPNG(t, path)

	withOutro := &fakeSink{}
	cust = quickCust()
	cust.OutroImage = path
	cust.OutroDuration = 2
	if _, err := newTestRenderer(withOutro).RenderVideo(context.Background(), "hello", "t", cust, nil); err != nil {
		t.Fatalf("RenderVideo with outro: %v", err)
	}
	if diff := withOutro.frames - plain.frames; diff != 2*30 {
		t.Errorf("Expected %d extra outro frames, got %d", 2*30, diff)
	}
}

func TestRenderVideoCancellation(t *testing.T) {
	sink := &fakeSink{}
	r := newTestRenderer(sink)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := r.RenderVideo(ctx, "hello world", "t", quickCust(), nil)
	if err != context.Canceled {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if res != nil {
		t.Error("Expected no result after cancellation")
	}
	if !sink.aborted {
		t.Error("Expected the sink to be aborted")
	}
	if sink.finished {
		t.Error("Finish must not run after cancellation")
	}
}

func TestRenderVideoDoesNotMutateCaller(t *testing.T) {
	cust := quickCust()
	cust.Speed = 9.0 // out of range, clamped internally

	sink := &fakeSink{}
	if _, err := newTestRenderer(sink).RenderVideo(context.Background(), "hello", "t", cust, nil); err != nil {
		t.Fatalf("RenderVideo: %v", err)
	}

	if cust.Speed != 9.0 {
		t.Errorf("Caller customization mutated: speed %f", cust.Speed)
	}
}

func writeTestPNG(t *testing.T, path string) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: 40, G: 80, B: 120, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write png: %v", err)
	}
}
