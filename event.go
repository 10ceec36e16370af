package fingerpaint

import "strings"

// EventKind tags an input event.
type EventKind int

const (
	// EventStart reports new contacts.
	EventStart EventKind = iota + 1

	// EventMove reports moved contacts.
	EventMove

	// EventEnd reports lifted contacts.
	EventEnd

	// EventCancel reports contacts the host aborted; handled like EventEnd.
	EventCancel
)

var kindNames = [...]string{
	EventStart:  "start",
	EventMove:   "move",
	EventEnd:    "end",
	EventCancel: "cancel",
}

// String implements fmt.Stringer.
func (k EventKind) String() string {
	if k >= EventStart && k <= EventCancel {
		return kindNames[k]
	}
	return "unknown"
}

// ParseEventKind parses an event kind name. Both the short names
// ("start", "move", "end", "cancel") and the DOM touch event names
// ("touchstart", "touchmove", "touchend", "touchcancel") are accepted.
func ParseEventKind(s string) (EventKind, error) {
	name := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "touch")
	for k := EventStart; k <= EventCancel; k++ {
		if kindNames[k] == name {
			return k, nil
		}
	}
	return 0, &MalformedInputError{Index: -1, Reason: "unknown event kind " + `"` + s + `"`}
}

// Event is one input event: a kind and the batch of changed contact points.
type Event struct {
	Kind EventKind

	// Points are the changed contacts in host coordinates, in delivery order.
	Points []Position

	// Offset is the canvas origin in host coordinates.
	Offset Position
}

// Validate checks the event before it reaches the tracker.
// The returned error, if any, is a *MalformedInputError.
func (e Event) Validate() error {
	if e.Kind < EventStart || e.Kind > EventCancel {
		return &MalformedInputError{Index: -1, Reason: "unknown event kind"}
	}
	if len(e.Points) == 0 {
		return &MalformedInputError{Index: -1, Reason: "empty touch batch"}
	}
	if !e.Offset.IsFinite() {
		return &MalformedInputError{Index: -1, Reason: "non-finite canvas offset"}
	}
	for i, p := range e.Points {
		if !p.IsFinite() {
			return &MalformedInputError{Index: i, Reason: "non-finite coordinate"}
		}
	}
	return nil
}

// Local returns the event's points in canvas-local coordinates.
func (e Event) Local() []Position {
	local := make([]Position, len(e.Points))
	for i, p := range e.Points {
		local[i] = p.Sub(e.Offset)
	}
	return local
}
