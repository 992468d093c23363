// Package encoder turns an ordered stream of raw RGBA frames into a
// finished webm binary. Frames are piped over stdin into an ffmpeg
// process compiled with ffmpeg-go; the muxed output is accumulated in
// memory and handed back on Finish.
package encoder

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os/exec"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// MIMEType tags the finished binary.
const MIMEType = "video/webm;codecs=vp9"

// Output is the assembled result of one encode.
type Output struct {
	Data     []byte
	MIMEType string
}

// FrameSink accepts drawn frames at a fixed cadence and produces an
// order-preserving compressed video binary. Write must not be called
// concurrently; it blocks until the encoder has consumed the frame,
// which is what keeps frame N+1 from starting before N is submitted.
type FrameSink interface {
	Start(width, height, fps int) error
	Write(frame *image.RGBA) error
	Finish() (*Output, error)
	Abort()
}

// FFmpegSink encodes to VP9/webm through an external ffmpeg process.
type FFmpegSink struct {
	log zerolog.Logger

	width  int
	height int

	cmd    *exec.Cmd
	pw     *io.PipeWriter
	out    bytes.Buffer
	errOut bytes.Buffer
	done   chan error
}

func NewFFmpegSink(log zerolog.Logger) *FFmpegSink {
	return &FFmpegSink{
		log: log.With().Str("component", "encoder").Logger(),
	}
}

// Start launches the encoder before the first frame is drawn.
func (s *FFmpegSink) Start(width, height, fps int) error {
	s.width, s.height = width, height
	s.out.Reset()
	s.errOut.Reset()

	pr, pw := io.Pipe()
	s.pw = pw
	s.done = make(chan error, 1)

	stream := ffmpeg.Input("pipe:",
		ffmpeg.KwArgs{
			"format":     "rawvideo",
			"pix_fmt":    "rgba",
			"video_size": fmtSize(width, height),
			"framerate":  fps,
		}).
		Output("pipe:", ffmpeg.KwArgs{
			"format":   "webm",
			"c:v":      "libvpx-vp9",
			"pix_fmt":  "yuv420p",
			"b:v":      "2M",
			"deadline": "good",
			"cpu-used": "4",
			"row-mt":   "1",
		}).
		WithInput(pr).
		WithOutput(&s.out).
		WithErrorOutput(&s.errOut)

	s.cmd = stream.Compile()
	if err := s.cmd.Start(); err != nil {
		pw.Close()
		return errors.Wrap(err, "start ffmpeg")
	}

	go func() {
		err := s.cmd.Wait()
		// Unblock any pending frame write once the process is gone.
		pr.CloseWithError(io.ErrClosedPipe)
		s.done <- err
	}()

	s.log.Debug().Int("width", width).Int("height", height).Int("fps", fps).Msg("encoder started")
	return nil
}

// Write submits one frame. It returns once ffmpeg has read the frame,
// so the caller may reuse the buffer immediately after.
func (s *FFmpegSink) Write(frame *image.RGBA) error {
	b := frame.Bounds()
	if b.Dx() != s.width || b.Dy() != s.height {
		return errors.Errorf("frame size %dx%d does not match stream %dx%d", b.Dx(), b.Dy(), s.width, s.height)
	}

	// ffmpeg expects tightly packed rows.
	rgba := frame
	if rgba.Stride != b.Dx()*4 || rgba.Rect.Min.X != 0 || rgba.Rect.Min.Y != 0 {
		packed := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(packed, packed.Bounds(), frame, b.Min, draw.Src)
		rgba = packed
	}

	if _, err := s.pw.Write(rgba.Pix); err != nil {
		return s.failure(errors.Wrap(err, "submit frame"))
	}
	return nil
}

// Finish closes the frame stream, waits for the encoder to flush and
// returns the assembled binary.
func (s *FFmpegSink) Finish() (*Output, error) {
	s.pw.Close()

	if err := <-s.done; err != nil {
		return nil, s.failure(errors.Wrap(err, "ffmpeg exited"))
	}
	if s.out.Len() == 0 {
		return nil, s.failure(errors.New("encoder produced no output"))
	}

	s.log.Debug().Int("bytes", s.out.Len()).Msg("encode finished")
	return &Output{Data: s.out.Bytes(), MIMEType: MIMEType}, nil
}

// Abort kills the encoder and discards everything produced so far.
// Calling it before Start is a no-op.
func (s *FFmpegSink) Abort() {
	if s.pw == nil {
		return
	}
	s.pw.CloseWithError(errors.New("render aborted"))
	if s.cmd != nil && s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	<-s.done
}

// failure folds the tail of ffmpeg's stderr into the error so encoding
// problems are diagnosable from the rejection alone.
func (s *FFmpegSink) failure(err error) error {
	tail := s.errOut.String()
	if len(tail) > 400 {
		tail = tail[len(tail)-400:]
	}
	if tail != "" {
		return errors.Wrapf(err, "ffmpeg log: %s", tail)
	}
	return err
}

func fmtSize(w, h int) string {
	return fmt.Sprintf("%dx%d", w, h)
}
