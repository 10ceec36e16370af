package render

import (
	"fmt"
	"image"
	"io"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/fingerpaint"
)

// Canvas is an immediate-mode fingerpaint.Surface backed by a gg.Context.
//
// Canvas is not safe for concurrent use; like the Tracker that drives it,
// it belongs to a single canvas.
type Canvas struct {
	dc   *gg.Context
	opts options

	markers  int
	segments int
	err      error
}

var _ fingerpaint.Surface = (*Canvas)(nil)

// NewCanvas creates a canvas cleared to the background color.
func NewCanvas(width, height int, opts ...Option) *Canvas {
	o := buildOptions(opts)

	dc := gg.NewContext(width, height)
	dc.ClearWithColor(o.background)
	dc.SetRGBA(o.ink.R, o.ink.G, o.ink.B, o.ink.A)
	dc.SetLineWidth(o.lineWidth)
	dc.SetLineCap(gg.LineCapRound)

	return &Canvas{dc: dc, opts: o}
}

// DrawMarker fills a small circle at p.
func (c *Canvas) DrawMarker(p fingerpaint.Position) {
	c.dc.DrawCircle(p.X, p.Y, c.opts.markerRadius)
	c.check("marker", c.dc.Fill())
	c.markers++
}

// DrawSegment strokes a line from one position to another.
func (c *Canvas) DrawSegment(from, to fingerpaint.Position) {
	c.dc.MoveTo(from.X, from.Y)
	c.dc.LineTo(to.X, to.Y)
	c.check("segment", c.dc.Stroke())
	c.segments++
}

// check records the first rendering failure. Surface methods have no error
// result, so failures are logged and reported later by Err.
func (c *Canvas) check(what string, err error) {
	if err == nil {
		return
	}
	fingerpaint.Logger().Warn("render: draw failed", "shape", what, "err", err)
	if c.err == nil {
		c.err = fmt.Errorf("render: %s: %w", what, err)
	}
}

// Err returns the first error encountered while drawing, if any.
func (c *Canvas) Err() error {
	return c.err
}

// Counts returns the number of markers and segments drawn so far.
func (c *Canvas) Counts() (markers, segments int) {
	return c.markers, c.segments
}

var regularFont = sync.OnceValues(func() (*text.FontSource, error) {
	return text.NewFontSource(goregular.TTF)
})

// Caption writes s along the bottom-left edge of the canvas in the ink
// color, using the Go Regular font.
func (c *Canvas) Caption(s string) error {
	source, err := regularFont()
	if err != nil {
		return fmt.Errorf("render: load caption font: %w", err)
	}

	c.dc.SetFont(source.Face(c.opts.captionSize))
	margin := c.opts.captionSize / 2
	c.dc.DrawStringAnchored(s, margin, float64(c.dc.Height())-margin, 0, 0)
	return nil
}

// Context returns the underlying gg context.
func (c *Canvas) Context() *gg.Context {
	return c.dc
}

// Image returns the rendered image.
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

// SavePNG writes the canvas to a PNG file.
func (c *Canvas) SavePNG(path string) error {
	return c.dc.SavePNG(path)
}

// EncodePNG writes the canvas as PNG to w.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return c.dc.EncodePNG(w)
}

// Close releases the canvas resources.
func (c *Canvas) Close() error {
	return c.dc.Close()
}
