package writer

import (
	"time"

	"teletype/internal/progress"
	"teletype/internal/telemetry"
)

// Option configures a Writer at construction.
type Option func(*Writer)

// WithAutoScroll makes the writer bring the target into view after every
// appended character.
func WithAutoScroll() Option {
	return func(w *Writer) { w.autoScroll = true }
}

// WithEmitter attaches a progress emitter notified when operations start
// and settle.
func WithEmitter(e progress.Emitter) Option {
	return func(w *Writer) { w.emitter = e }
}

// WithTracer attaches a tracer that spans each operation. A nil tracer is
// fine; spans become no-ops.
func WithTracer(t *telemetry.Tracer) Option {
	return func(w *Writer) { w.tracer = t }
}

// WriteOption configures a single Write or WriteJSON call.
type WriteOption func(*writeRequest)

// writeRequest carries one call's transient settings.
type writeRequest struct {
	speed      float64
	lead       time.Duration
	clearFirst bool
}

func newWriteRequest(defaultSpeed float64, opts []WriteOption) writeRequest {
	req := writeRequest{speed: defaultSpeed}
	for _, o := range opts {
		o(&req)
	}
	return req
}

// Speed scales the per-character pause for this call. Values below zero
// clamp to zero (no pause).
func Speed(multiplier float64) WriteOption {
	return func(r *writeRequest) {
		if multiplier < 0 {
			multiplier = 0
		}
		r.speed = multiplier
	}
}

// LeadDelay pauses once before the first character of the call. Values
// below zero clamp to zero.
func LeadDelay(d time.Duration) WriteOption {
	return func(r *writeRequest) {
		if d < 0 {
			d = 0
		}
		r.lead = d
	}
}

// ClearFirst discards the target's existing content before the first
// character of each scalar written by this call.
func ClearFirst() WriteOption {
	return func(r *writeRequest) { r.clearFirst = true }
}
