package config

// AspectRatio selects the output pixel dimensions.
type AspectRatio string

const (
	AspectPortrait  AspectRatio = "9:16"
	AspectLandscape AspectRatio = "16:9"
)

// Animation is the content-phase reveal style.
type Animation string

const (
	AnimationScroll     Animation = "scroll"
	AnimationFade       Animation = "fade"
	AnimationTypewriter Animation = "typewriter"
)

// VideoCustomization describes everything the caller controls about the
// look and pacing of one render. Zero values are filled by Normalize.
type VideoCustomization struct {
	BackgroundColor string      `yaml:"background_color"`
	TextColor       string      `yaml:"text_color"`
	FontSize        float64     `yaml:"font_size"`
	FontFamily      string      `yaml:"font_family"`
	FontPath        string      `yaml:"font_path,omitempty"`
	AspectRatio     AspectRatio `yaml:"aspect_ratio"`
	Language        string      `yaml:"language"`
	Speed           float64     `yaml:"speed"`
	TextAnimation   Animation   `yaml:"text_animation"`

	// Image slots. Each accepts an http(s) URL, a data URI or a local
	// path; an empty string means the slot is unused.
	BackgroundImage string `yaml:"background_image,omitempty"`
	StartingImage   string `yaml:"starting_image,omitempty"`
	OutroImage      string `yaml:"outro_image,omitempty"`

	// Seconds. Only consulted when the matching image slot is filled.
	StartingDuration float64 `yaml:"starting_duration,omitempty"`
	OutroDuration    float64 `yaml:"outro_duration,omitempty"`

	// Optional link rendered as a QR code during the outro.
	ChannelURL string `yaml:"channel_url,omitempty"`

	// Realtime paces the frame loop at wall-clock fps instead of
	// encoding as fast as the encoder drains frames.
	Realtime  bool `yaml:"realtime,omitempty"`
	ShowStats bool `yaml:"show_stats,omitempty"`
}

const (
	MinSpeed = 0.5
	MaxSpeed = 2.0

	DefaultStartingDuration = 5.0
	DefaultOutroDuration    = 5.0
)

func Default() *VideoCustomization {
	return &VideoCustomization{
		BackgroundColor:  "#1a1a2e",
		TextColor:        "#ffffff",
		FontSize:         36,
		FontFamily:       "sans",
		AspectRatio:      AspectPortrait,
		Language:         "en",
		Speed:            1.0,
		TextAnimation:    AnimationScroll,
		StartingDuration: DefaultStartingDuration,
		OutroDuration:    DefaultOutroDuration,
	}
}

// Normalize fills defaults and clamps out-of-range values. A cosmetic
// input error never fails a render: unknown animation kinds fall back to
// scroll, speed is clamped into [MinSpeed, MaxSpeed].
func (c *VideoCustomization) Normalize() {
	def := Default()

	if c.BackgroundColor == "" {
		c.BackgroundColor = def.BackgroundColor
	}
	if c.TextColor == "" {
		c.TextColor = def.TextColor
	}
	if c.FontSize <= 0 {
		c.FontSize = def.FontSize
	}
	if c.FontFamily == "" {
		c.FontFamily = def.FontFamily
	}
	if c.Language == "" {
		c.Language = def.Language
	}

	switch c.AspectRatio {
	case AspectPortrait, AspectLandscape:
	default:
		c.AspectRatio = def.AspectRatio
	}

	switch c.TextAnimation {
	case AnimationScroll, AnimationFade, AnimationTypewriter:
	default:
		c.TextAnimation = def.TextAnimation
	}

	if c.Speed == 0 {
		c.Speed = def.Speed
	}
	if c.Speed < MinSpeed {
		c.Speed = MinSpeed
	}
	if c.Speed > MaxSpeed {
		c.Speed = MaxSpeed
	}

	if c.StartingDuration <= 0 {
		c.StartingDuration = DefaultStartingDuration
	}
	if c.OutroDuration <= 0 {
		c.OutroDuration = DefaultOutroDuration
	}
}

// Dimensions returns the canvas size in pixels for the aspect ratio.
func (c *VideoCustomization) Dimensions() (width, height int) {
	if c.AspectRatio == AspectLandscape {
		return 1280, 720
	}
	return 720, 1280
}
