// Package eventlog reads recorded touch input and replays it into a
// fingerpaint.Tracker.
//
// A log holds one JSON object per line:
//
//	{"kind":"start","offset":[10,20],"points":[[15,25],[40,60]]}
//	{"kind":"move","offset":[10,20],"points":[[18,27]]}
//	{"kind":"end","points":[[18,27],[40,60]]}
//
// kind is one of start, move, end, cancel (the DOM names touchstart, ...
// are accepted too). points are host coordinates; offset is the canvas
// origin in the same space and defaults to [0,0]. Blank lines and lines
// starting with # are ignored.
package eventlog

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/gogpu/fingerpaint"
)

// maxLine bounds a single log line.
const maxLine = 1 << 20

// record is the on-disk form of one event.
type record struct {
	Kind   string      `json:"kind"`
	Offset []float64   `json:"offset,omitempty"`
	Points [][]float64 `json:"points"`
}

// LineError attaches a log line number to a decoding or replay fault.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("eventlog: line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// Decoder reads events from an event log.
type Decoder struct {
	sc   *bufio.Scanner
	line int
}

// NewDecoder returns a decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLine)
	return &Decoder{sc: sc}
}

// Line returns the line number of the most recently read event.
func (d *Decoder) Line() int {
	return d.line
}

// Next returns the next event. It returns io.EOF after the last one.
// Malformed records are reported as a *LineError wrapping a
// *fingerpaint.MalformedInputError; decoding can continue after them.
func (d *Decoder) Next() (fingerpaint.Event, error) {
	for d.sc.Scan() {
		d.line++
		raw := bytes.TrimSpace(d.sc.Bytes())
		if len(raw) == 0 || raw[0] == '#' {
			continue
		}

		e, err := decode(raw)
		if err != nil {
			return fingerpaint.Event{}, &LineError{Line: d.line, Err: err}
		}
		return e, nil
	}
	if err := d.sc.Err(); err != nil {
		return fingerpaint.Event{}, fmt.Errorf("eventlog: read: %w", err)
	}
	return fingerpaint.Event{}, io.EOF
}

func decode(raw []byte) (fingerpaint.Event, error) {
	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return fingerpaint.Event{}, &fingerpaint.MalformedInputError{Index: -1, Reason: "invalid JSON: " + err.Error()}
	}

	kind, err := fingerpaint.ParseEventKind(rec.Kind)
	if err != nil {
		return fingerpaint.Event{}, err
	}

	e := fingerpaint.Event{Kind: kind, Points: make([]fingerpaint.Position, len(rec.Points))}
	switch len(rec.Offset) {
	case 0:
	case 2:
		e.Offset = fingerpaint.Pt(rec.Offset[0], rec.Offset[1])
	default:
		return fingerpaint.Event{}, &fingerpaint.MalformedInputError{Index: -1, Reason: "offset must have two coordinates"}
	}
	for i, p := range rec.Points {
		if len(p) != 2 {
			return fingerpaint.Event{}, &fingerpaint.MalformedInputError{
				Index:  i,
				Reason: fmt.Sprintf("expected 2 coordinates, got %d", len(p)),
			}
		}
		e.Points[i] = fingerpaint.Pt(p[0], p[1])
	}

	if err := e.Validate(); err != nil {
		return fingerpaint.Event{}, err
	}
	return e, nil
}

// Encode writes e as one event log line.
func Encode(w io.Writer, e fingerpaint.Event) error {
	rec := record{
		Kind:   e.Kind.String(),
		Points: make([][]float64, len(e.Points)),
	}
	if e.Offset != (fingerpaint.Position{}) {
		rec.Offset = []float64{e.Offset.X, e.Offset.Y}
	}
	for i, p := range e.Points {
		rec.Points[i] = []float64{p.X, p.Y}
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("eventlog: encode: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// Summary counts what a replay did.
type Summary struct {
	Events  int
	Starts  int
	Moves   int
	Ends    int
	Cancels int

	// Faults counts events that were rejected and skipped.
	Faults int

	// Fingers is the number of fingers still tracked at the end.
	Fingers int
}

// ReplayOptions controls Replay.
type ReplayOptions struct {
	// KeepGoing skips rejected events instead of stopping at the first one.
	// Every skipped event is still logged and counted in Summary.Faults.
	KeepGoing bool
}

// Replay feeds every event from r into t, in order.
//
// It stops at the first malformed record or rejected event unless
// opts.KeepGoing is set, and returns the fault as a *LineError. Read errors
// and context cancellation always stop the replay.
func Replay(ctx context.Context, r io.Reader, t *fingerpaint.Tracker, opts ReplayOptions) (Summary, error) {
	var sum Summary
	log := fingerpaint.Logger()
	dec := NewDecoder(r)

	for {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		e, err := dec.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		// The tracker logs its own rejections; only decode faults are
		// reported here at warn level.
		level := slog.LevelWarn
		if err == nil {
			err = t.Handle(e)
			if err != nil {
				err = &LineError{Line: dec.Line(), Err: err}
				level = slog.LevelDebug
			}
		}
		if err != nil {
			var le *LineError
			if !errors.As(err, &le) {
				return sum, err
			}
			sum.Faults++
			log.Log(ctx, level, "eventlog: skipped event", "line", le.Line, "err", le.Err)
			if !opts.KeepGoing {
				sum.Fingers = t.Len()
				return sum, err
			}
			continue
		}

		sum.Events++
		switch e.Kind {
		case fingerpaint.EventStart:
			sum.Starts++
		case fingerpaint.EventMove:
			sum.Moves++
		case fingerpaint.EventEnd:
			sum.Ends++
		case fingerpaint.EventCancel:
			sum.Cancels++
		}
	}

	sum.Fingers = t.Len()
	log.Info("eventlog: replay finished",
		"events", sum.Events,
		"faults", sum.Faults,
		"fingers", sum.Fingers)
	return sum, nil
}
