package render

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/gogpu/gg/recording"
	_ "github.com/gogpu/gg/recording/backends/raster" // Register the "raster" playback backend

	"github.com/gogpu/fingerpaint"
)

// RasterBackend is the name of the built-in recording backend used by
// Rasterize and EncodePNG.
const RasterBackend = "raster"

// Recorder is a fingerpaint.Surface that records drawing commands instead
// of rasterizing them. Call Finish to obtain the recording, then play it
// back with Rasterize, EncodePNG or any registered recording backend.
type Recorder struct {
	rec  *recording.Recorder
	opts options

	markers  int
	segments int
	finished bool
}

var _ fingerpaint.Surface = (*Recorder)(nil)

// NewRecorder starts a recording of the given size, beginning with a fill
// of the background color.
func NewRecorder(width, height int, opts ...Option) *Recorder {
	o := buildOptions(opts)

	rec := recording.NewRecorder(width, height)
	rec.SetFillRGBA(o.background.R, o.background.G, o.background.B, o.background.A)
	rec.DrawRectangle(0, 0, float64(width), float64(height))
	rec.Fill()

	rec.SetColor(o.ink)
	rec.SetLineWidth(o.lineWidth)
	rec.SetLineCap(recording.LineCapRound)

	return &Recorder{rec: rec, opts: o}
}

// DrawMarker records a filled circle at p.
func (r *Recorder) DrawMarker(p fingerpaint.Position) {
	if r.finished {
		return
	}
	r.rec.DrawCircle(p.X, p.Y, r.opts.markerRadius)
	r.rec.Fill()
	r.markers++
}

// DrawSegment records a stroked line from one position to another.
func (r *Recorder) DrawSegment(from, to fingerpaint.Position) {
	if r.finished {
		return
	}
	r.rec.MoveTo(from.X, from.Y)
	r.rec.LineTo(to.X, to.Y)
	r.rec.Stroke()
	r.segments++
}

// Counts returns the number of markers and segments recorded so far.
func (r *Recorder) Counts() (markers, segments int) {
	return r.markers, r.segments
}

// Finish ends the recording. Drawing calls made afterwards are ignored.
func (r *Recorder) Finish() *recording.Recording {
	r.finished = true
	return r.rec.FinishRecording()
}

// Playback replays a recording to the named recording backend and returns
// the backend for output.
func Playback(rec *recording.Recording, backend string) (recording.Backend, error) {
	b, err := recording.NewBackend(backend)
	if err != nil {
		return nil, err
	}
	if err := rec.Playback(b); err != nil {
		return nil, fmt.Errorf("render: playback to %s: %w", backend, err)
	}
	return b, nil
}

// errNoImage is returned when a backend cannot expose its pixels.
var errNoImage = errors.New("render: backend does not provide an image")

// Rasterize plays a recording back through the raster backend and returns
// the resulting image.
func Rasterize(rec *recording.Recording) (image.Image, error) {
	b, err := Playback(rec, RasterBackend)
	if err != nil {
		return nil, err
	}
	if ib, ok := b.(interface{ Image() image.Image }); ok {
		return ib.Image(), nil
	}
	return nil, errNoImage
}

// EncodePNG plays a recording back through the raster backend and writes
// the result as PNG to w.
func EncodePNG(rec *recording.Recording, w io.Writer) error {
	b, err := Playback(rec, RasterBackend)
	if err != nil {
		return err
	}
	wb, ok := b.(recording.WriterBackend)
	if !ok {
		return errNoImage
	}
	_, err = wb.WriteTo(w)
	return err
}
