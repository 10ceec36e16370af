package render

import "github.com/gogpu/gg"

// Defaults match a plain drawing canvas: thin black ink on white.
const (
	// DefaultLineWidth is the stroke width of segments, in pixels.
	DefaultLineWidth = 1.0

	// DefaultMarkerRadius is the radius of start markers, in pixels.
	DefaultMarkerRadius = 0.5

	// DefaultCaptionSize is the font size used by Caption, in points.
	DefaultCaptionSize = 12.0
)

// Option configures a Canvas or Recorder during creation.
//
// Example:
//
//	c := render.NewCanvas(512, 512,
//	    render.WithLineWidth(3),
//	    render.WithInk(gg.Hex("#1f4e9e")),
//	)
type Option func(*options)

type options struct {
	ink          gg.RGBA
	background   gg.RGBA
	lineWidth    float64
	markerRadius float64
	captionSize  float64
}

func defaultOptions() options {
	return options{
		ink:          gg.Black,
		background:   gg.White,
		lineWidth:    DefaultLineWidth,
		markerRadius: DefaultMarkerRadius,
		captionSize:  DefaultCaptionSize,
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithInk sets the color of markers, segments and captions.
func WithInk(c gg.RGBA) Option {
	return func(o *options) {
		o.ink = c
	}
}

// WithBackground sets the color the surface is cleared to.
func WithBackground(c gg.RGBA) Option {
	return func(o *options) {
		o.background = c
	}
}

// WithLineWidth sets the segment stroke width. Non-positive values are
// ignored.
func WithLineWidth(w float64) Option {
	return func(o *options) {
		if w > 0 {
			o.lineWidth = w
		}
	}
}

// WithMarkerRadius sets the start marker radius. Non-positive values are
// ignored.
func WithMarkerRadius(r float64) Option {
	return func(o *options) {
		if r > 0 {
			o.markerRadius = r
		}
	}
}

// WithCaptionSize sets the caption font size. Non-positive values are
// ignored.
func WithCaptionSize(size float64) Option {
	return func(o *options) {
		if size > 0 {
			o.captionSize = size
		}
	}
}
