// Command fingerpaint replays a recorded touch event log and renders the
// strokes it draws to a PNG image.
//
// Usage:
//
//	fingerpaint -in session.jsonl -out strokes.png -width 512
//
// See package eventlog for the log format.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gogpu/gg"

	"github.com/gogpu/fingerpaint"
	"github.com/gogpu/fingerpaint/eventlog"
	"github.com/gogpu/fingerpaint/permute"
	"github.com/gogpu/fingerpaint/render"
)

type config struct {
	in           string
	out          string
	width        int
	height       int
	lineWidth    float64
	markerRadius float64
	record       bool
	caption      bool
	keepGoing    bool
	verbose      bool
}

func parseFlags(args []string) (config, error) {
	var cfg config
	fs := flag.NewFlagSet("fingerpaint", flag.ContinueOnError)
	fs.StringVar(&cfg.in, "in", "-", "event log to replay (- for stdin)")
	fs.StringVar(&cfg.out, "out", "strokes.png", "output PNG file")
	fs.IntVar(&cfg.width, "width", 512, "canvas width")
	fs.IntVar(&cfg.height, "height", 0, "canvas height (0: same as width)")
	fs.Float64Var(&cfg.lineWidth, "line-width", render.DefaultLineWidth, "stroke width")
	fs.Float64Var(&cfg.markerRadius, "marker-radius", render.DefaultMarkerRadius, "start marker radius")
	fs.BoolVar(&cfg.record, "record", false, "record drawing commands and rasterize them at the end")
	fs.BoolVar(&cfg.caption, "caption", false, "stamp a replay summary on the image")
	fs.BoolVar(&cfg.keepGoing, "keep-going", false, "skip rejected events instead of stopping")
	fs.BoolVar(&cfg.verbose, "v", false, "log every event, assignment and stroke")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if cfg.height == 0 {
		cfg.height = cfg.width
	}
	if cfg.width <= 0 || cfg.height <= 0 {
		return cfg, fmt.Errorf("invalid canvas size %dx%d", cfg.width, cfg.height)
	}
	if cfg.record && cfg.caption {
		return cfg, fmt.Errorf("-caption is not supported with -record")
	}
	return cfg, nil
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "fingerpaint:", err)
		os.Exit(2)
	}

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	fingerpaint.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("fingerpaint failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config, logger *slog.Logger) error {
	if a := gg.Accelerator(); a != nil {
		logger.Info("GPU accelerator registered", "name", a.Name())
	}

	in, closeIn, err := openInput(cfg.in)
	if err != nil {
		return err
	}
	defer closeIn()

	opts := []render.Option{
		render.WithLineWidth(cfg.lineWidth),
		render.WithMarkerRadius(cfg.markerRadius),
	}

	var (
		surface fingerpaint.Surface
		canvas  *render.Canvas
		rec     *render.Recorder
	)
	if cfg.record {
		rec = render.NewRecorder(cfg.width, cfg.height, opts...)
		surface = rec
	} else {
		canvas = render.NewCanvas(cfg.width, cfg.height, opts...)
		defer func() { _ = canvas.Close() }()
		surface = canvas
	}

	tracker := fingerpaint.NewTracker(fingerpaint.WithSurface(surface))
	sum, err := eventlog.Replay(ctx, in, tracker, eventlog.ReplayOptions{KeepGoing: cfg.keepGoing})
	if err != nil {
		return err
	}

	stats := permute.Shared().Stats()
	logger.Info("replayed",
		"events", sum.Events,
		"faults", sum.Faults,
		"fingers_left", sum.Fingers,
		"shapes_cached", stats.Len,
		"cache_hit_rate", stats.HitRate)

	if rec != nil {
		return writeRecording(rec, cfg.out)
	}

	if err := canvas.Err(); err != nil {
		return err
	}
	if cfg.caption {
		caption := fmt.Sprintf("%d events, %d faults, %d fingers left", sum.Events, sum.Faults, sum.Fingers)
		if err := canvas.Caption(caption); err != nil {
			return err
		}
	}
	if err := canvas.SavePNG(cfg.out); err != nil {
		return fmt.Errorf("save %s: %w", cfg.out, err)
	}
	logger.Info("saved", "path", cfg.out, "width", cfg.width, "height", cfg.height)
	return nil
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

func writeRecording(rec *render.Recorder, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if err := render.EncodePNG(rec.Finish(), f); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
