package fingerpaint

// Surface is the rendering collaborator driven by a Tracker.
//
// The tracker only issues drawing calls; all rendering state (colors,
// line width, backing image) belongs to the implementation. See package
// render for implementations on top of gg.
type Surface interface {
	// DrawMarker draws a small filled marker where a contact started.
	DrawMarker(p Position)

	// DrawSegment draws a line from a finger's previous position to its
	// new one.
	DrawSegment(from, to Position)
}

// NopSurface discards all drawing calls.
type NopSurface struct{}

func (NopSurface) DrawMarker(Position)            {}
func (NopSurface) DrawSegment(Position, Position) {}
