// Package timeline computes phase durations and the total frame count of
// a render from the text metrics, animation kind and speed.
package timeline

import (
	"math"

	"github.com/ivlev/story2video/internal/config"
)

// FPS is the fixed output frame rate.
const FPS = 30

const (
	// Title is always shown, at least this long, even without an image.
	minTitleDuration = 3.0
	// Floor for the content phase so an empty story still renders.
	minContentDuration = 3.0
)

// Phase is one of the mutually exclusive time segments of the video.
type Phase int

const (
	PhaseTitle Phase = iota
	PhaseContent
	PhaseOutro
)

// Input carries everything the planner needs. Image presence flags refer
// to images that actually loaded, not just to filled slots.
type Input struct {
	WordCount int
	RuneCount int
	LineCount int

	LineHeight   float64
	CanvasHeight int

	Animation config.Animation
	Speed     float64

	HasStartingImage bool
	HasOutroImage    bool
	StartingDuration float64
	OutroDuration    float64
}

// Timeline is the phase plan of one render.
type Timeline struct {
	TitleDuration   float64
	ContentDuration float64
	OutroDuration   float64
	TotalFrames     int
}

// Plan computes the phase durations and total frame count.
func Plan(in Input) *Timeline {
	t := &Timeline{}

	t.TitleDuration = minTitleDuration
	if in.HasStartingImage {
		t.TitleDuration = in.StartingDuration
	}

	// The outro exists only when an outro image loaded.
	if in.HasOutroImage {
		t.OutroDuration = in.OutroDuration
	}

	t.ContentDuration = contentDuration(in)

	t.TotalFrames = int(math.Ceil(FPS * t.TotalDuration()))
	return t
}

func contentDuration(in Input) float64 {
	var d float64
	switch in.Animation {
	case config.AnimationFade:
		screens := float64(Screens(in.LineCount, in.CanvasHeight, in.LineHeight))
		perScreen := math.Max(2.5, float64(in.WordCount)/screens/180*60)
		d = (perScreen*screens + 0.5) / in.Speed
	case config.AnimationTypewriter:
		runesPerSecond := 60 / in.Speed
		d = float64(in.RuneCount)/runesPerSecond + 1
	default: // scroll
		base := math.Max(12, float64(in.WordCount)/150*60)
		d = (base + 1) / in.Speed
	}

	return math.Max(d, minContentDuration)
}

// LinesPerScreen is how many wrapped lines fit one fade screen: 80% of
// the canvas height divided by the line height, at least one.
func LinesPerScreen(canvasHeight int, lineHeight float64) int {
	n := int(float64(canvasHeight) * 0.8 / lineHeight)
	if n < 1 {
		n = 1
	}
	return n
}

// Screens is the number of fade pages for a line count, at least one.
func Screens(lineCount, canvasHeight int, lineHeight float64) int {
	per := LinesPerScreen(canvasHeight, lineHeight)
	n := (lineCount + per - 1) / per
	if n < 1 {
		n = 1
	}
	return n
}

func (t *Timeline) TotalDuration() float64 {
	return t.TitleDuration + t.ContentDuration + t.OutroDuration
}

// TitleFraction is the share of the video occupied by the title phase.
func (t *Timeline) TitleFraction() float64 {
	return t.TitleDuration / t.TotalDuration()
}

// ContentFraction is the share occupied by the content phase.
func (t *Timeline) ContentFraction() float64 {
	return t.ContentDuration / t.TotalDuration()
}

// PhaseAt maps a frame index to its phase and the progress within that
// phase in [0, 1]. Phases advance strictly forward, never re-entered.
func (t *Timeline) PhaseAt(frame int) (Phase, float64) {
	progress := float64(frame) / float64(t.TotalFrames)
	titleFrac := t.TitleFraction()
	contentFrac := t.ContentFraction()

	switch {
	case progress <= titleFrac:
		return PhaseTitle, clamp01(progress / titleFrac)
	case progress <= titleFrac+contentFrac:
		return PhaseContent, clamp01((progress - titleFrac) / contentFrac)
	default:
		outroFrac := 1 - titleFrac - contentFrac
		if outroFrac <= 0 {
			return PhaseOutro, 1
		}
		return PhaseOutro, clamp01((progress - titleFrac - contentFrac) / outroFrac)
	}
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
