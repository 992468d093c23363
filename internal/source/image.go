// Package source resolves the customization image slots. A slot value is
// any string resolvable as an image: an http(s) URL, a data URI or a
// local file path.
package source

import (
	"context"
	"encoding/base64"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Loader fetches and decodes backdrop images. Load failures are
// non-fatal by contract: a broken slot falls back to the solid
// background color for its phase instead of aborting the render.
type Loader struct {
	client *http.Client
	log    zerolog.Logger
}

func NewLoader(log zerolog.Logger) *Loader {
	return &Loader{
		client: &http.Client{Timeout: 30 * time.Second},
		log:    log.With().Str("component", "source").Logger(),
	}
}

// Load resolves a slot to a decoded image, or nil when the slot is empty
// or the image cannot be fetched or decoded.
func (l *Loader) Load(ctx context.Context, src string) image.Image {
	if src == "" {
		return nil
	}

	img, err := l.load(ctx, src)
	if err != nil {
		l.log.Warn().Err(err).Str("src", truncate(src, 80)).Msg("image slot unusable, using solid background")
		return nil
	}
	return img
}

func (l *Loader) load(ctx context.Context, src string) (image.Image, error) {
	switch {
	case strings.HasPrefix(src, "data:"):
		return decodeDataURI(src)
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		return l.fetch(ctx, src)
	default:
		return decodeFile(src)
	}
}

func (l *Loader) fetch(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetch image")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("fetch image: status %d", resp.StatusCode)
	}

	img, _, err := image.Decode(resp.Body)
	return img, errors.Wrap(err, "decode image")
}

func decodeDataURI(src string) (image.Image, error) {
	comma := strings.IndexByte(src, ',')
	if comma < 0 {
		return nil, errors.New("malformed data URI")
	}

	meta, payload := src[:comma], src[comma+1:]
	if !strings.HasSuffix(meta, ";base64") {
		return nil, errors.New("unsupported data URI encoding")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, errors.Wrap(err, "decode base64 payload")
	}

	img, _, err := image.Decode(strings.NewReader(string(data)))
	return img, errors.Wrap(err, "decode image")
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open image file")
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, errors.Wrap(err, "decode image")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
