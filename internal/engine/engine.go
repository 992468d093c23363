// Package engine orchestrates one render: normalize the request, load
// images, plan the timeline, drive the frame loop and hand the encoded
// binary back to the caller.
package engine

import (
	"context"
	"image"
	"image/color"
	"math"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/story2video/internal/config"
	"github.com/ivlev/story2video/internal/encoder"
	"github.com/ivlev/story2video/internal/layout"
	"github.com/ivlev/story2video/internal/renderer"
	"github.com/ivlev/story2video/internal/script"
	"github.com/ivlev/story2video/internal/source"
	"github.com/ivlev/story2video/internal/system"
	"github.com/ivlev/story2video/internal/timeline"
)

// Wrap margins per font context: body text gets the widest padding, the
// title the narrowest.
const (
	contentMargin = 120
	titleMargin   = 80
	outroMargin   = 100
)

// ProgressFunc receives the render progress, called once per frame with
// a non-decreasing percentage ending at 100.
type ProgressFunc func(percent int)

// Result is the finished render.
type Result struct {
	Data     []byte
	MIMEType string
	// Title after cleanup; callers typically use it for the filename.
	Title string
}

// Renderer renders story text into a video. One Renderer supports one
// render at a time; concurrent calls on the same instance are not
// supported, construct one per concurrent render instead.
type Renderer struct {
	sink   encoder.FrameSink
	loader *source.Loader
	log    zerolog.Logger
}

func New(sink encoder.FrameSink, loader *source.Loader, log zerolog.Logger) *Renderer {
	return &Renderer{
		sink:   sink,
		loader: loader,
		log:    log.With().Str("component", "engine").Logger(),
	}
}

// RenderVideo produces the video for text and title under the given
// customization. Image problems degrade to solid backgrounds and never
// fail the call; encoder problems are fatal and returned. The context is
// checked at every frame boundary; cancellation tears the encoder down
// and discards all output.
func (r *Renderer) RenderVideo(ctx context.Context, text, title string, cust *config.VideoCustomization, onProgress ProgressFunc) (*Result, error) {
	startTime := time.Now()

	// Per-call copy: the caller's struct stays untouched by clamping.
	c := *cust
	c.Normalize()
	width, height := c.Dimensions()

	system.Preflight(r.log, width, height)

	cleanTitle := script.CleanTitle(title, c.Language)
	outroText := script.OutroText(c.Language)

	fonts, err := layout.NewFontSet(&c)
	if err != nil {
		return nil, errors.Wrap(err, "build fonts")
	}

	bgImg, startImg, outroImg := r.loadImages(ctx, &c, width, height)

	contentLayout := layout.New(text, width-contentMargin, fonts.Content)
	titleLayout := layout.New(cleanTitle, width-titleMargin, fonts.Title)
	outroLayout := layout.New(outroText, width-outroMargin, fonts.Outro)

	plan := timeline.Plan(timeline.Input{
		WordCount:        len(strings.Fields(text)),
		RuneCount:        len([]rune(contentLayout.Joined())),
		LineCount:        len(contentLayout.Lines),
		LineHeight:       contentLayout.LineHeight,
		CanvasHeight:     height,
		Animation:        c.TextAnimation,
		Speed:            c.Speed,
		HasStartingImage: startImg != nil,
		HasOutroImage:    outroImg != nil,
		StartingDuration: c.StartingDuration,
		OutroDuration:    c.OutroDuration,
	})

	r.log.Info().
		Str("animation", string(c.TextAnimation)).
		Int("width", width).Int("height", height).
		Int("frames", plan.TotalFrames).
		Float64("duration", plan.TotalDuration()).
		Msg("render planned")

	rc := &renderer.Context{
		Width:           width,
		Height:          height,
		Cust:            &c,
		Timeline:        plan,
		Fonts:           fonts,
		TitleLayout:     titleLayout,
		ContentLayout:   contentLayout,
		OutroLayout:     outroLayout,
		Background:      bgImg,
		Starting:        startImg,
		Outro:           outroImg,
		QR:              r.channelQR(&c, outroImg != nil, width, height),
		TextColor:       renderer.ParseHexColor(c.TextColor, color.NRGBA{R: 255, G: 255, B: 255, A: 255}),
		BackgroundColor: renderer.ParseHexColor(c.BackgroundColor, color.NRGBA{R: 26, G: 26, B: 46, A: 255}),
	}
	frames := renderer.New(rc)

	if err := r.sink.Start(width, height, timeline.FPS); err != nil {
		return nil, errors.Wrap(err, "start encoder")
	}

	if err := r.runLoop(ctx, frames, plan, &c, width, height, onProgress); err != nil {
		return nil, err
	}

	out, err := r.sink.Finish()
	if err != nil {
		return nil, errors.Wrap(err, "finalize encoding")
	}

	if c.ShowStats {
		elapsed := time.Since(startTime)
		r.log.Info().
			Float64("seconds", elapsed.Seconds()).
			Float64("fps", float64(plan.TotalFrames)/elapsed.Seconds()).
			Float64("mem_used_pct", system.MemoryUsedPercent()).
			Int("bytes", len(out.Data)).
			Msg("render stats")
	}

	return &Result{Data: out.Data, MIMEType: out.MIMEType, Title: cleanTitle}, nil
}

// runLoop draws and submits frames in strict index order. Submission of
// frame N completes before frame N+1 is drawn: the sink write blocks
// until the encoder has consumed the frame.
func (r *Renderer) runLoop(ctx context.Context, frames *renderer.FrameRenderer, plan *timeline.Timeline, c *config.VideoCustomization, width, height int, onProgress ProgressFunc) error {
	pool := system.NewFramePool(width, height)

	var tick *time.Ticker
	if c.Realtime {
		tick = time.NewTicker(time.Second / timeline.FPS)
		defer tick.Stop()
	}

	for i := 0; i < plan.TotalFrames; i++ {
		select {
		case <-ctx.Done():
			r.sink.Abort()
			return ctx.Err()
		default:
		}

		frame := pool.Get()
		frames.Draw(frame, i)

		if err := r.sink.Write(frame); err != nil {
			return errors.Wrapf(err, "encode frame %d", i)
		}
		pool.Put(frame)

		if onProgress != nil {
			onProgress(int(math.Round(float64(i+1) / float64(plan.TotalFrames) * 100)))
		}

		if tick != nil {
			select {
			case <-ctx.Done():
				r.sink.Abort()
				return ctx.Err()
			case <-tick.C:
			}
		}
	}

	return nil
}

// loadImages resolves the three image slots concurrently before the loop
// starts. Every failure has already degraded to nil inside the loader.
func (r *Renderer) loadImages(ctx context.Context, c *config.VideoCustomization, width, height int) (bg, start, outro image.Image) {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		bg = r.loader.Load(gctx, c.BackgroundImage)
		return nil
	})
	g.Go(func() error {
		start = r.loader.Load(gctx, c.StartingImage)
		return nil
	})
	g.Go(func() error {
		outro = r.loader.Load(gctx, c.OutroImage)
		return nil
	})
	_ = g.Wait()

	// Scale once here so the per-frame backdrop blit is a plain copy.
	if bg != nil {
		bg = renderer.ScaleTo(bg, width, height)
	}
	if start != nil {
		start = renderer.ScaleTo(start, width, height)
	}
	if outro != nil {
		outro = renderer.ScaleTo(outro, width, height)
	}
	return bg, start, outro
}

// channelQR renders the channel link as a QR code for the outro. Only
// the outro shows it, so without an outro image there is nothing to do.
func (r *Renderer) channelQR(c *config.VideoCustomization, hasOutro bool, width, height int) image.Image {
	if c.ChannelURL == "" || !hasOutro {
		return nil
	}

	qr, err := qrcode.New(c.ChannelURL, qrcode.Medium)
	if err != nil {
		r.log.Warn().Err(err).Msg("channel QR skipped")
		return nil
	}
	qr.DisableBorder = true

	size := width
	if height < size {
		size = height
	}
	return qr.Image(size / 5)
}
