package fingerpaint

import (
	"context"
	"errors"
	"log/slog"
	"slices"
)

// Finger is a tracked contact.
//
// Fingers are matched across events by position alone; ID is assigned when
// the contact starts and follows it for as long as the resolver keeps
// matching it, which makes strokes and removals easier to follow in logs.
type Finger struct {
	ID  uint64
	Pos Position
}

// Tracker maintains the ordered set of fingers on one canvas and turns
// input events into markers and stroke segments on its Surface.
//
// New fingers are appended at the end; the order of the remaining fingers
// never changes otherwise. A Tracker is not safe for concurrent use: each
// canvas owns one and feeds it events serially.
type Tracker struct {
	fingers  []Finger
	nextID   uint64
	surface  Surface
	resolver *Resolver
}

// NewTracker creates an empty tracker.
func NewTracker(opts ...TrackerOption) *Tracker {
	o := defaultTrackerOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.resolver == nil {
		o.resolver = NewResolver()
	}
	return &Tracker{
		nextID:   1,
		surface:  o.surface,
		resolver: o.resolver,
	}
}

// Handle validates an event, converts it to canvas-local coordinates and
// applies it. Rejected events leave the finger set untouched.
func (t *Tracker) Handle(e Event) error {
	if err := e.Validate(); err != nil {
		Logger().Warn("fingerpaint: rejected event", "kind", e.Kind, "err", err)
		return err
	}

	batch := e.Local()
	if log := Logger(); log.Enabled(context.Background(), slog.LevelDebug) {
		log.Debug("fingerpaint: event", "kind", e.Kind, "changed", len(batch), "points", batch)
		log.Debug("fingerpaint: fingers", "positions", t.Positions())
	}

	switch e.Kind {
	case EventStart:
		t.Start(batch)
		return nil
	case EventMove:
		return t.Move(batch)
	case EventEnd:
		return t.End(batch)
	default:
		return t.Cancel(batch)
	}
}

// Start registers every position in batch as a new finger, in batch order,
// and draws a marker at each.
func (t *Tracker) Start(batch []Position) {
	for _, p := range batch {
		t.surface.DrawMarker(p)
		t.fingers = append(t.fingers, Finger{ID: t.nextID, Pos: p})
		t.nextID++
	}
}

// Move matches the batch to tracked fingers, draws a segment from each
// matched finger's previous position to its new one and moves the finger.
func (t *Tracker) Move(batch []Position) error {
	assignment, err := t.resolve("move", batch)
	if err != nil {
		return err
	}

	log := Logger()
	debug := log.Enabled(context.Background(), slog.LevelDebug)
	for touch, idx := range assignment {
		from, to := t.fingers[idx].Pos, batch[touch]
		if debug {
			log.Debug("fingerpaint: stroke", "finger", t.fingers[idx].ID, "from", from, "to", to)
		}
		t.surface.DrawSegment(from, to)
		t.fingers[idx].Pos = to
	}
	return nil
}

// End matches the batch to tracked fingers and removes the matched ones.
func (t *Tracker) End(batch []Position) error {
	return t.remove("end", batch)
}

// Cancel behaves like End; hosts report aborted contacts this way.
func (t *Tracker) Cancel(batch []Position) error {
	return t.remove("cancel", batch)
}

func (t *Tracker) remove(op string, batch []Position) error {
	assignment, err := t.resolve(op, batch)
	if err != nil {
		return err
	}

	// Remove from the highest index down so pending indices stay valid.
	slices.Sort(assignment)
	log := Logger()
	debug := log.Enabled(context.Background(), slog.LevelDebug)
	for i := len(assignment) - 1; i >= 0; i-- {
		idx := assignment[i]
		if debug {
			log.Debug("fingerpaint: lifted", "finger", t.fingers[idx].ID, "at", t.fingers[idx].Pos)
		}
		t.fingers = slices.Delete(t.fingers, idx, idx+1)
	}
	return nil
}

func (t *Tracker) resolve(op string, batch []Position) ([]int, error) {
	assignment, err := t.resolver.Resolve(t.Positions(), batch)
	if err != nil {
		var pe *PreconditionError
		if errors.As(err, &pe) {
			pe.Op = op
		}
		Logger().Warn("fingerpaint: rejected event", "op", op, "err", err)
		return nil, err
	}
	if log := Logger(); log.Enabled(context.Background(), slog.LevelDebug) {
		log.Debug("fingerpaint: changes to fingers", "op", op, "assignment", assignment)
	}
	return assignment, nil
}

// Fingers returns a copy of the tracked fingers in slot order.
func (t *Tracker) Fingers() []Finger {
	return slices.Clone(t.fingers)
}

// Positions returns the tracked finger positions in slot order.
func (t *Tracker) Positions() []Position {
	positions := make([]Position, len(t.fingers))
	for i, f := range t.fingers {
		positions[i] = f.Pos
	}
	return positions
}

// Len returns the number of tracked fingers.
func (t *Tracker) Len() int {
	return len(t.fingers)
}

// Reset forgets every tracked finger, ending the drawing session.
// Finger IDs keep increasing across sessions.
func (t *Tracker) Reset() {
	if n := len(t.fingers); n > 0 {
		Logger().Info("fingerpaint: session reset", "dropped", n)
	}
	t.fingers = t.fingers[:0]
}
