// Package writer implements the sequenced writer: it reveals text into an
// output surface one character at a time, pacing each step by a configurable
// delay, with an optional per-call wrapper element and a JSON pretty-print
// mode.
package writer

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"teletype/internal/jsonutil"
	"teletype/internal/progress"
	"teletype/internal/surface"
	"teletype/internal/telemetry"

	"go.opentelemetry.io/otel/attribute"
)

// DefaultStepDelay is the base per-character pause before any multiplier.
const DefaultStepDelay = 100 * time.Millisecond

// DefaultJSONSpeed is the default speed multiplier for WriteJSON.
const DefaultJSONSpeed = 0.4

// charWrapTag is the fixed inline element wrapping every character written
// by Write. Independent of the configurable per-call wrapper tag.
const charWrapTag = "span"

// jsonBlockTag is the fixed block element WriteJSON streams into.
const jsonBlockTag = "pre"

// ErrNoSurface reports that the destination was never resolved (or the
// last SetDestination lookup failed). Returned before any mutation.
var ErrNoSurface = errors.New("output surface not resolved")

// Writer reveals content into a surface at a controlled pace.
//
// Configuration (destination, step delay, wrapper tag) is shared mutable
// state read fresh at each step: a setter called mid-sequence affects only
// steps not yet executed. Independent calls against the same Writer are
// not serialized; concurrent calls interleave their character steps.
type Writer struct {
	doc *surface.Document

	mu         sync.Mutex
	target     surface.Surface
	stepDelay  time.Duration
	wrapperTag string
	autoScroll bool

	emitter progress.Emitter
	tracer  *telemetry.Tracer
}

// New creates a Writer targeting the element registered under id in doc.
// A failed lookup leaves the destination unset; the first Write then
// returns ErrNoSurface.
func New(doc *surface.Document, id string, opts ...Option) *Writer {
	w := &Writer{doc: doc, stepDelay: DefaultStepDelay}
	for _, o := range opts {
		o(w)
	}
	w.SetDestination(id)
	return w
}

// SetDestination re-targets the writer at the element registered under id.
// A failed lookup unsets the destination silently, matching the
// collaborator contract; subsequent writes fail with ErrNoSurface.
func (w *Writer) SetDestination(id string) {
	el := w.doc.Lookup(id)
	w.mu.Lock()
	defer w.mu.Unlock()
	if el == nil {
		w.target = nil
		return
	}
	w.target = el
}

// SetStepDelay sets the base per-character pause. Negative values clamp
// to zero.
func (w *Writer) SetStepDelay(d time.Duration) {
	if d < 0 {
		d = 0
	}
	w.mu.Lock()
	w.stepDelay = d
	w.mu.Unlock()
}

// StepDelay returns the current base per-character pause.
func (w *Writer) StepDelay() time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stepDelay
}

// SetWrapperTag sets the element tag wrapping each scalar write call's
// output. The empty string clears it.
func (w *Writer) SetWrapperTag(tag string) {
	w.mu.Lock()
	w.wrapperTag = tag
	w.mu.Unlock()
}

// SetAutoScroll toggles scrolling the target into view after each append.
func (w *Writer) SetAutoScroll(on bool) {
	w.mu.Lock()
	w.autoScroll = on
	w.mu.Unlock()
}

// Write reveals content character by character. Sequences are drained in
// order, each element written to completion before the next begins. The
// lead delay is honored once, before the first character of the whole
// call; speed and clear-first apply to every scalar in the call.
//
// Write returns once the last character of the deepest-nested scalar has
// been appended, or earlier with ctx.Err() when ctx is canceled.
func (w *Writer) Write(ctx context.Context, content Content, opts ...WriteOption) (err error) {
	req := newWriteRequest(1, opts)

	ctx, end := w.tracer.StartSpan(ctx, "writer.write",
		attribute.Int("writer.chars", countRunes(content)),
		attribute.Float64("writer.speed", req.speed),
		attribute.Int64("writer.step_delay_ms", w.StepDelay().Milliseconds()),
	)
	started := time.Now()
	w.emit("write", progress.StatusRunning, nil)
	defer func() {
		end(err)
		w.emitSettled("write", started, countRunes(content), err)
	}()

	if req.lead > 0 {
		if err = w.pause(ctx, req.lead); err != nil {
			return err
		}
	}
	return w.writeContent(ctx, content, req)
}

// writeContent dispatches on the content union.
func (w *Writer) writeContent(ctx context.Context, content Content, req writeRequest) error {
	switch c := content.(type) {
	case nil:
		return nil
	case textContent:
		return w.writeScalar(ctx, string(c), req)
	case seqContent:
		for _, item := range c {
			if err := w.writeContent(ctx, item, req); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("write: unsupported content type %T", content)
	}
}

// writeScalar writes one scalar string: resolve the target (wrapper child
// if configured), clear once if requested, then reveal each character.
func (w *Writer) writeScalar(ctx context.Context, s string, req writeRequest) error {
	w.mu.Lock()
	target := w.target
	wrapperTag := w.wrapperTag
	w.mu.Unlock()

	if target == nil {
		return ErrNoSurface
	}
	if wrapperTag != "" {
		target = target.AppendChild(wrapperTag)
	}
	if req.clearFirst {
		target.Clear()
	}

	for _, r := range s {
		if d := w.stepPause(req.speed); d > 0 {
			if err := w.pause(ctx, d); err != nil {
				return err
			}
		}
		target.AppendMarkup(wrapChar(r))
		w.scrollAfterAppend(target)
	}
	return nil
}

// WriteJSON pretty-prints v at 2-space indentation and reveals it as plain
// text (no per-character wrapping) inside a freshly appended preformatted
// block. Textual input (string, []byte, json.RawMessage) that is not valid
// JSON yields an explicit error before anything is appended. Sequences are
// not supported; v is a single structured value.
func (w *Writer) WriteJSON(ctx context.Context, v any, opts ...WriteOption) (err error) {
	req := newWriteRequest(DefaultJSONSpeed, opts)

	w.mu.Lock()
	target := w.target
	w.mu.Unlock()
	if target == nil {
		return ErrNoSurface
	}

	data, err := jsonutil.IndentValue(v)
	if err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	text := string(data)

	ctx, end := w.tracer.StartSpan(ctx, "writer.write_json",
		attribute.Int("writer.chars", len([]rune(text))),
		attribute.Float64("writer.speed", req.speed),
	)
	started := time.Now()
	w.emit("write_json", progress.StatusRunning, nil)
	defer func() {
		end(err)
		w.emitSettled("write_json", started, len([]rune(text)), err)
	}()

	if req.lead > 0 {
		if err = w.pause(ctx, req.lead); err != nil {
			return err
		}
	}

	block := target.AppendChild(jsonBlockTag)
	for _, r := range text {
		if d := w.stepPause(req.speed); d > 0 {
			if err = w.pause(ctx, d); err != nil {
				return err
			}
		}
		block.AppendText(string(r))
		w.scrollAfterAppend(block)
	}
	return nil
}

// SkipAnimation forces the step delay to zero for one previous-delay-long
// window, then restores it. Any write step whose pause check happens in
// that window observes zero delay and proceeds immediately. The override
// is global: it affects every in-flight call on this Writer, and it does
// not cut short a pause already in progress.
func (w *Writer) SkipAnimation(ctx context.Context) error {
	w.mu.Lock()
	prev := w.stepDelay
	w.stepDelay = 0
	w.mu.Unlock()

	w.emit("skip", progress.StatusRunning, nil)
	started := time.Now()
	err := w.pause(ctx, prev)

	w.mu.Lock()
	w.stepDelay = prev
	w.mu.Unlock()

	w.emitSettled("skip", started, 0, err)
	return err
}

// stepPause computes the current per-character pause. A product of exactly
// zero means no pause is scheduled at all.
func (w *Writer) stepPause(speed float64) time.Duration {
	w.mu.Lock()
	base := w.stepDelay
	w.mu.Unlock()
	return time.Duration(float64(base) * speed)
}

// scrollAfterAppend reads the auto-scroll flag fresh, like every other
// per-step configuration read.
func (w *Writer) scrollAfterAppend(target surface.Surface) {
	w.mu.Lock()
	scroll := w.autoScroll
	w.mu.Unlock()
	if scroll {
		target.ScrollIntoView()
	}
}

// pause suspends for d or until ctx is canceled.
func (w *Writer) pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Writer) emit(op string, status progress.Status, meta map[string]string) {
	if w.emitter == nil {
		return
	}
	w.emitter.Emit(progress.Event{Operation: op, Status: status, Metadata: meta})
}

func (w *Writer) emitSettled(op string, started time.Time, chars int, err error) {
	if w.emitter == nil {
		return
	}
	meta := map[string]string{
		"chars":       strconv.Itoa(chars),
		"duration_ms": strconv.FormatInt(time.Since(started).Milliseconds(), 10),
	}
	status := progress.StatusDone
	if err != nil {
		status = progress.StatusError
		meta["error"] = err.Error()
	}
	w.emit(op, status, meta)
}

// wrapChar wraps one character in the fixed inline markup element.
func wrapChar(r rune) string {
	return "<" + charWrapTag + ">" + surface.EscapeText(string(r)) + "</" + charWrapTag + ">"
}

// countRunes totals the characters a content value will emit.
func countRunes(content Content) int {
	switch c := content.(type) {
	case textContent:
		return len([]rune(string(c)))
	case seqContent:
		total := 0
		for _, item := range c {
			total += countRunes(item)
		}
		return total
	default:
		return 0
	}
}
