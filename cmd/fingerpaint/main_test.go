package main

import (
	"context"
	"errors"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/fingerpaint"
)

func TestParseFlagsDefaults(t *testing.T) {
	cfg, err := parseFlags(nil)
	if err != nil {
		t.Fatalf("parseFlags() error = %v", err)
	}
	if cfg.in != "-" || cfg.out != "strokes.png" {
		t.Errorf("in/out = %q/%q, want -/strokes.png", cfg.in, cfg.out)
	}
	if cfg.width != 512 || cfg.height != 512 {
		t.Errorf("size = %dx%d, want 512x512", cfg.width, cfg.height)
	}
}

func TestParseFlagsErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"negative width", []string{"-width", "-3"}},
		{"zero width", []string{"-width", "0"}},
		{"caption with record", []string{"-record", "-caption"}},
		{"unknown flag", []string{"-bogus"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseFlags(tt.args); err == nil {
				t.Errorf("parseFlags(%q) expected an error", tt.args)
			}
		})
	}
}

const session = `{"kind":"start","points":[[10,10],[10,50]]}
{"kind":"move","points":[[50,50],[50,10]]}
{"kind":"end","points":[[50,10]]}
`

func writeSession(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.jsonl")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRun(t *testing.T) {
	for _, record := range []bool{false, true} {
		name := "canvas"
		if record {
			name = "record"
		}
		t.Run(name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "out.png")
			cfg, err := parseFlags([]string{
				"-in", writeSession(t, session),
				"-out", out,
				"-width", "64",
				"-height", "48",
			})
			if err != nil {
				t.Fatal(err)
			}
			cfg.record = record

			if err := run(context.Background(), cfg, quietLogger()); err != nil {
				t.Fatalf("run() error = %v", err)
			}

			f, err := os.Open(out)
			if err != nil {
				t.Fatal(err)
			}
			defer func() { _ = f.Close() }()
			img, err := png.Decode(f)
			if err != nil {
				t.Fatalf("png.Decode() error = %v", err)
			}
			if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
				t.Errorf("image size = %v, want 64x48", b)
			}
		})
	}
}

func TestRunCaption(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.png")
	cfg, err := parseFlags([]string{"-in", writeSession(t, session), "-out", out, "-width", "200", "-caption"})
	if err != nil {
		t.Fatal(err)
	}
	if err := run(context.Background(), cfg, quietLogger()); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("expected %s to exist: %v", out, err)
	}
}

func TestRunRejectedEvent(t *testing.T) {
	bad := `{"kind":"start","points":[[1,1]]}
{"kind":"move","points":[[2,2],[3,3]]}
`
	out := filepath.Join(t.TempDir(), "out.png")
	cfg, err := parseFlags([]string{"-in", writeSession(t, bad), "-out", out, "-width", "8"})
	if err != nil {
		t.Fatal(err)
	}

	err = run(context.Background(), cfg, quietLogger())
	if !errors.Is(err, fingerpaint.ErrInvalidPrecondition) {
		t.Fatalf("run() error = %v, want ErrInvalidPrecondition", err)
	}

	cfg.keepGoing = true
	if err := run(context.Background(), cfg, quietLogger()); err != nil {
		t.Errorf("run() with -keep-going error = %v", err)
	}
}

func TestRunMissingInput(t *testing.T) {
	cfg, err := parseFlags([]string{"-in", filepath.Join(t.TempDir(), "missing.jsonl")})
	if err != nil {
		t.Fatal(err)
	}
	if err := run(context.Background(), cfg, quietLogger()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("run() error = %v, want os.ErrNotExist", err)
	}
}
