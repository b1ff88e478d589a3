package engine

// Event represents an engine session notification.
// Minimal and stable: name plus optional fields via key/values.
//
// Names emitted by the manager: "ready", "move_result", "eval_update",
// "error", "process_closed", "spawn".
type Event struct {
	Name   string
	Fields map[string]any
}

// EventPublisher receives events from the manager. Implementations should be
// lightweight and non-blocking; Publish must not panic.
type EventPublisher interface {
	Publish(Event)
}

// noopPublisher is the default; it drops events.
type noopPublisher struct{}

func (noopPublisher) Publish(Event) {}
