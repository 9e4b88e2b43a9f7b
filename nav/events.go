package nav

import "time"

// EventType names the coordinator's emitted events.
type EventType string

const (
	EventOpen     EventType = "open"
	EventClose    EventType = "close"
	EventNavigate EventType = "navigate"
	EventHover    EventType = "hover"
	EventActivate EventType = "activate"
)

// EventTypes lists every emitted type, in a stable order.
func EventTypes() []EventType {
	return []EventType{EventOpen, EventClose, EventNavigate, EventHover, EventActivate}
}

// Event is delivered to On handlers. State is the effective state at emission
// time (pending batched writes already merged in), never a live reference.
type Event struct {
	Type   EventType
	ItemID string // affected item; "" when none (open/close, hover cleared)
	State  State
	Time   time.Time
}
