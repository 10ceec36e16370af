package render

import (
	"bytes"
	"image"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/recording"

	"github.com/gogpu/fingerpaint"
	"github.com/gogpu/fingerpaint/permute"
)

// isDark reports whether the pixel at (x, y) is closer to black than white.
func isDark(img image.Image, x, y int) bool {
	r, g, b, _ := img.At(x, y).RGBA()
	return (r+g+b)/3 < 0x8000
}

// anyDark reports whether any pixel in the column x between y0 and y1 is dark.
func anyDark(img image.Image, x, y0, y1 int) bool {
	for y := y0; y <= y1; y++ {
		if isDark(img, x, y) {
			return true
		}
	}
	return false
}

func TestDefaultOptions(t *testing.T) {
	o := buildOptions(nil)
	if o.lineWidth != DefaultLineWidth {
		t.Errorf("lineWidth = %v, want %v", o.lineWidth, DefaultLineWidth)
	}
	if o.markerRadius != DefaultMarkerRadius {
		t.Errorf("markerRadius = %v, want %v", o.markerRadius, DefaultMarkerRadius)
	}
	if o.ink != gg.Black || o.background != gg.White {
		t.Errorf("colors = %v on %v, want black on white", o.ink, o.background)
	}
}

func TestOptionsIgnoreNonPositive(t *testing.T) {
	o := buildOptions([]Option{WithLineWidth(-1), WithMarkerRadius(0), WithCaptionSize(-3)})
	if o.lineWidth != DefaultLineWidth || o.markerRadius != DefaultMarkerRadius || o.captionSize != DefaultCaptionSize {
		t.Errorf("non-positive values should be ignored, got %+v", o)
	}
}

func TestCanvasDrawsSegment(t *testing.T) {
	c := NewCanvas(64, 64, WithLineWidth(4))
	defer func() { _ = c.Close() }()

	c.DrawSegment(fingerpaint.Pt(8, 32), fingerpaint.Pt(56, 32))
	if err := c.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}

	img := c.Image()
	if got := img.Bounds(); got.Dx() != 64 || got.Dy() != 64 {
		t.Fatalf("image bounds = %v, want 64x64", got)
	}
	if !anyDark(img, 32, 28, 36) {
		t.Error("expected ink along the segment")
	}
	if isDark(img, 32, 4) {
		t.Error("expected background away from the segment")
	}

	if m, s := c.Counts(); m != 0 || s != 1 {
		t.Errorf("Counts() = %d, %d; want 0, 1", m, s)
	}
}

func TestCanvasDrawsMarker(t *testing.T) {
	c := NewCanvas(32, 32, WithMarkerRadius(6))
	c.DrawMarker(fingerpaint.Pt(16, 16))

	if !isDark(c.Image(), 16, 16) {
		t.Error("expected ink at the marker center")
	}
	if isDark(c.Image(), 2, 2) {
		t.Error("expected background in the corner")
	}
}

func TestCanvasAsTrackerSurface(t *testing.T) {
	c := NewCanvas(100, 100, WithLineWidth(3))
	tr := fingerpaint.NewTracker(
		fingerpaint.WithSurface(c),
		fingerpaint.WithResolver(fingerpaint.NewResolver(fingerpaint.WithPermutationCache(permute.NewCache()))),
	)

	tr.Start([]fingerpaint.Position{fingerpaint.Pt(10, 20), fingerpaint.Pt(10, 80)})
	for x := 20.0; x <= 90; x += 10 {
		if err := tr.Move([]fingerpaint.Position{fingerpaint.Pt(x, 80), fingerpaint.Pt(x, 20)}); err != nil {
			t.Fatalf("Move() error = %v", err)
		}
	}

	if m, s := c.Counts(); m != 2 || s != 16 {
		t.Errorf("Counts() = %d, %d; want 2, 16", m, s)
	}
	img := c.Image()
	if !anyDark(img, 50, 17, 23) || !anyDark(img, 50, 77, 83) {
		t.Error("expected both strokes to be visible")
	}
	if isDark(img, 50, 50) {
		t.Error("strokes must not cross between the fingers")
	}
}

func TestCanvasSaveAndEncodePNG(t *testing.T) {
	c := NewCanvas(16, 16)
	c.DrawSegment(fingerpaint.Pt(0, 0), fingerpaint.Pt(15, 15))

	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG() error = %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if img.Bounds().Dx() != 16 {
		t.Errorf("decoded width = %d, want 16", img.Bounds().Dx())
	}

	path := filepath.Join(t.TempDir(), "out.png")
	if err := c.SavePNG(path); err != nil {
		t.Errorf("SavePNG() error = %v", err)
	}
}

func TestCanvasCaption(t *testing.T) {
	c := NewCanvas(200, 60)
	if err := c.Caption("3 events, 1 finger"); err != nil {
		t.Fatalf("Caption() error = %v", err)
	}
	if c.Context() == nil {
		t.Error("Context() returned nil")
	}
}

func TestRecorderCommands(t *testing.T) {
	r := NewRecorder(50, 50)
	r.DrawMarker(fingerpaint.Pt(10, 10))
	r.DrawSegment(fingerpaint.Pt(10, 10), fingerpaint.Pt(40, 10))
	r.DrawSegment(fingerpaint.Pt(40, 10), fingerpaint.Pt(40, 40))

	rec := r.Finish()
	r.DrawSegment(fingerpaint.Pt(0, 0), fingerpaint.Pt(1, 1)) // ignored

	var fills, strokes int
	for _, cmd := range rec.Commands() {
		switch cmd.(type) {
		case recording.FillPathCommand:
			fills++
		case recording.StrokePathCommand:
			strokes++
		}
	}
	// One background fill plus one per marker.
	if fills != 2 {
		t.Errorf("fill commands = %d, want 2", fills)
	}
	if strokes != 2 {
		t.Errorf("stroke commands = %d, want 2", strokes)
	}
	if m, s := r.Counts(); m != 1 || s != 2 {
		t.Errorf("Counts() = %d, %d; want 1, 2", m, s)
	}
	if rec.Width() != 50 || rec.Height() != 50 {
		t.Errorf("recording size = %dx%d, want 50x50", rec.Width(), rec.Height())
	}
}

func TestRecorderRasterize(t *testing.T) {
	r := NewRecorder(64, 64, WithLineWidth(4))
	r.DrawSegment(fingerpaint.Pt(8, 32), fingerpaint.Pt(56, 32))

	img, err := Rasterize(r.Finish())
	if err != nil {
		t.Fatalf("Rasterize() error = %v", err)
	}
	if got := img.Bounds(); got.Dx() != 64 || got.Dy() != 64 {
		t.Fatalf("image bounds = %v, want 64x64", got)
	}
	if !anyDark(img, 32, 28, 36) {
		t.Error("expected ink along the played-back segment")
	}
	if isDark(img, 32, 4) {
		t.Error("expected background away from the segment")
	}
}

func TestRecorderEncodePNG(t *testing.T) {
	r := NewRecorder(20, 10)
	r.DrawMarker(fingerpaint.Pt(5, 5))

	var buf bytes.Buffer
	if err := EncodePNG(r.Finish(), &buf); err != nil {
		t.Fatalf("EncodePNG() error = %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if img.Bounds().Dx() != 20 || img.Bounds().Dy() != 10 {
		t.Errorf("decoded size = %v, want 20x10", img.Bounds())
	}
}

func TestPlaybackUnknownBackend(t *testing.T) {
	r := NewRecorder(4, 4)
	if _, err := Playback(r.Finish(), "no-such-backend"); err == nil {
		t.Error("expected an error for an unregistered backend")
	}
}
