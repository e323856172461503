package progress

import "time"

// Status indicates the state of a write operation.
type Status string

const (
	StatusRunning Status = "running"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event is the contract for live write-progress display. The writer emits
// one event when an operation starts and one when it settles.
type Event struct {
	Operation string // "write", "write_json", "skip"
	Status    Status
	Timestamp time.Time
	Metadata  map[string]string // optional: chars, duration_ms, error
}

// Emitter receives progress events. Implementations must not block.
type Emitter interface {
	Emit(ev Event)
}

// ChanEmitter emits events to a channel for a UI to consume.
type ChanEmitter struct {
	Ch chan<- Event
}

// Emit sends the event to the channel (non-blocking; drops if full).
func (e *ChanEmitter) Emit(ev Event) {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}
	select {
	case e.Ch <- ev:
	default:
		// Channel full; drop rather than stall the writer
	}
}
