// Package fingerpaint turns raw multi-touch events into persistent fingers
// and draws the strokes they leave.
//
// # Overview
//
// Touch hosts report each event as an unordered batch of contact points
// with no identifier that can be trusted across the whole gesture.
// fingerpaint infers which tracked finger every new point belongs to by
// choosing the assignment with the smallest total Manhattan distance,
// searching every candidate exhaustively. The search is exact and cheap for
// the handful of contacts a touch screen reports.
//
// # Quick Start
//
//	canvas := render.NewCanvas(512, 512)
//	t := fingerpaint.NewTracker(fingerpaint.WithSurface(canvas))
//
//	t.Handle(fingerpaint.Event{Kind: fingerpaint.EventStart, Points: []fingerpaint.Position{{X: 10, Y: 10}}})
//	t.Handle(fingerpaint.Event{Kind: fingerpaint.EventMove, Points: []fingerpaint.Position{{X: 40, Y: 25}}})
//	t.Handle(fingerpaint.Event{Kind: fingerpaint.EventEnd, Points: []fingerpaint.Position{{X: 40, Y: 25}}})
//
//	canvas.SavePNG("strokes.png")
//
// # Lifecycle
//
//   - start: every point becomes a new finger appended to the finger list
//     and a marker is drawn at it.
//   - move: points are matched to fingers; each matched finger draws a
//     segment to its new position and moves there.
//   - end, cancel: points are matched to fingers and the matched fingers
//     are removed, highest index first.
//
// A move, end or cancel batch larger than the finger list means the host
// lost a start event; the tracker rejects it with ErrInvalidPrecondition
// instead of guessing.
//
// # Concurrency
//
// A Tracker belongs to one canvas and is fed events serially. Resolvers and
// the permutation cache they share (permute.Shared) are safe for concurrent
// use by trackers on different goroutines.
//
// # Logging
//
// fingerpaint is silent by default. See SetLogger.
package fingerpaint
