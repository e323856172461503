package writer

import (
	"context"
	"strings"
	"testing"
	"time"

	"teletype/internal/progress"
	"teletype/internal/surface"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestWriter builds a zero-delay writer targeting a fresh "console"
// element, so most tests run synchronously.
func newTestWriter(t *testing.T, opts ...Option) (*Writer, *surface.Element) {
	t.Helper()
	doc := surface.NewDocument()
	el := doc.CreateElement("console", "div")
	w := New(doc, "console", opts...)
	w.SetStepDelay(0)
	return w, el
}

func TestWrite_AppendsWrappedUnitsInOrder(t *testing.T) {
	w, el := newTestWriter(t)

	err := w.Write(context.Background(), Text("hi!"))
	require.NoError(t, err)

	assert.Equal(t, "<span>h</span><span>i</span><span>!</span>", el.Markup())
	assert.Equal(t, "hi!", el.InnerText())
}

func TestWrite_UnicodeCodePoints(t *testing.T) {
	w, el := newTestWriter(t)

	err := w.Write(context.Background(), Text("hé👍"))
	require.NoError(t, err)

	assert.Equal(t, "<span>h</span><span>é</span><span>👍</span>", el.Markup())
	assert.Equal(t, 3, strings.Count(el.Markup(), "<span>"))
}

func TestWrite_EscapesMarkupCharacters(t *testing.T) {
	w, el := newTestWriter(t)

	err := w.Write(context.Background(), Text("<&>"))
	require.NoError(t, err)

	assert.Equal(t, "<span>&lt;</span><span>&amp;</span><span>&gt;</span>", el.Markup())
	assert.Equal(t, "<&>", el.InnerText())
}

func TestWrite_SequenceConcatenatesInOrder(t *testing.T) {
	w, el := newTestWriter(t)

	err := w.Write(context.Background(), Lines("ab", "cd"))
	require.NoError(t, err)

	assert.Equal(t, "abcd", el.InnerText())
}

func TestWrite_NestedSequences(t *testing.T) {
	w, el := newTestWriter(t)

	content := Sequence(Text("a"), Sequence(Text("b"), Text("c")), Text("d"))
	err := w.Write(context.Background(), content)
	require.NoError(t, err)

	assert.Equal(t, "abcd", el.InnerText())
}

func TestWrite_EmptyInputsAreNoOps(t *testing.T) {
	w, el := newTestWriter(t)

	require.NoError(t, w.Write(context.Background(), Text("")))
	require.NoError(t, w.Write(context.Background(), Sequence()))
	require.NoError(t, w.Write(context.Background(), nil))

	assert.Empty(t, el.Markup())
}

func TestWrite_WrapperTagScopesOneScalarCall(t *testing.T) {
	w, el := newTestWriter(t)
	w.SetWrapperTag("span")

	err := w.Write(context.Background(), Text("hi"))
	require.NoError(t, err)

	// One wrapper child containing two independently wrapped units,
	// not a single child per call's whole text.
	assert.Equal(t, "<span><span>h</span><span>i</span></span>", el.Markup())
}

func TestWrite_WrapperTagPerSequenceElement(t *testing.T) {
	w, el := newTestWriter(t)
	w.SetWrapperTag("p")

	err := w.Write(context.Background(), Lines("a", "b"))
	require.NoError(t, err)

	assert.Equal(t, "<p><span>a</span></p><p><span>b</span></p>", el.Markup())
}

func TestWrite_ClearFirstClearsBeforeFirstCharacter(t *testing.T) {
	w, el := newTestWriter(t)
	el.AppendText("stale")

	err := w.Write(context.Background(), Text("ok"), ClearFirst())
	require.NoError(t, err)

	assert.Equal(t, "<span>o</span><span>k</span>", el.Markup())
}

func TestWrite_ClearFirstAppliesPerScalar(t *testing.T) {
	w, el := newTestWriter(t)

	// Without a wrapper tag each scalar clears the shared target, so
	// only the last element survives.
	err := w.Write(context.Background(), Lines("gone", "kept"), ClearFirst())
	require.NoError(t, err)

	assert.Equal(t, "kept", el.InnerText())
}

func TestWrite_ClearFirstWithWrapperLeavesSiblings(t *testing.T) {
	w, el := newTestWriter(t)
	el.AppendText("prior")
	w.SetWrapperTag("span")

	// The wrapper child becomes the target, so clearing scopes to it.
	err := w.Write(context.Background(), Text("x"), ClearFirst())
	require.NoError(t, err)

	assert.Equal(t, "prior<span><span>x</span></span>", el.Markup())
}

func TestWrite_MissingDestination(t *testing.T) {
	doc := surface.NewDocument()
	w := New(doc, "nowhere")
	w.SetStepDelay(0)

	err := w.Write(context.Background(), Text("hi"))
	require.ErrorIs(t, err, ErrNoSurface)
}

func TestSetDestination_FailedLookupUnsetsTarget(t *testing.T) {
	w, _ := newTestWriter(t)

	w.SetDestination("missing")

	err := w.Write(context.Background(), Text("hi"))
	require.ErrorIs(t, err, ErrNoSurface)
}

func TestSetDestination_RetargetsNextWrite(t *testing.T) {
	doc := surface.NewDocument()
	doc.CreateElement("a", "div")
	b := doc.CreateElement("b", "div")
	w := New(doc, "a")
	w.SetStepDelay(0)

	w.SetDestination("b")
	require.NoError(t, w.Write(context.Background(), Text("x")))

	assert.Equal(t, "x", b.InnerText())
}

func TestSetStepDelay_NegativeClampsToZero(t *testing.T) {
	w, _ := newTestWriter(t)

	w.SetStepDelay(-50 * time.Millisecond)

	assert.Equal(t, time.Duration(0), w.StepDelay())
}

func TestWrite_ZeroProductIsSynchronous(t *testing.T) {
	w, el := newTestWriter(t)
	w.SetStepDelay(50 * time.Millisecond)

	start := time.Now()
	err := w.Write(context.Background(), Text(strings.Repeat("x", 40)), Speed(0))
	require.NoError(t, err)

	assert.Less(t, time.Since(start), 50*time.Millisecond)
	assert.Equal(t, 40, strings.Count(el.Markup(), "<span>"))
}

func TestWrite_LeadDelayPausesOnce(t *testing.T) {
	w, el := newTestWriter(t)

	start := time.Now()
	err := w.Write(context.Background(), Lines("a", "b"), LeadDelay(40*time.Millisecond))
	require.NoError(t, err)

	elapsed := time.Since(start)
	assert.GreaterOrEqual(t, elapsed, 40*time.Millisecond)
	// Characters are free (zero delay), so the lead is the only pause.
	assert.Less(t, elapsed, 200*time.Millisecond)
	assert.Equal(t, "ab", el.InnerText())
}

func TestWrite_ContextCancellationStopsMidSequence(t *testing.T) {
	w, el := newTestWriter(t)
	w.SetStepDelay(10 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 35*time.Millisecond)
	defer cancel()

	err := w.Write(ctx, Text(strings.Repeat("x", 100)))
	require.ErrorIs(t, err, context.DeadlineExceeded)

	written := strings.Count(el.Markup(), "<span>")
	assert.Less(t, written, 100)
}

func TestWrite_AutoScrollBringsTargetIntoView(t *testing.T) {
	doc := surface.NewDocument()
	el := doc.CreateElement("console", "div")
	w := New(doc, "console", WithAutoScroll())
	w.SetStepDelay(0)

	require.NoError(t, w.Write(context.Background(), Text("x")))

	assert.Equal(t, el, doc.Scrolled())
}

func TestWriteJSON_CanonicalPrettyPrint(t *testing.T) {
	w, el := newTestWriter(t)

	err := w.WriteJSON(context.Background(), `{"a":1}`)
	require.NoError(t, err)

	assert.Equal(t, "<pre>{\n  \"a\": 1\n}</pre>", el.Markup())
	assert.Equal(t, "{\n  \"a\": 1\n}", el.InnerText())
}

func TestWriteJSON_StructuredValue(t *testing.T) {
	w, el := newTestWriter(t)

	err := w.WriteJSON(context.Background(), map[string]int{"a": 1})
	require.NoError(t, err)

	assert.Equal(t, "{\n  \"a\": 1\n}", el.InnerText())
}

func TestWriteJSON_PlainTextNoPerCharWrapping(t *testing.T) {
	w, el := newTestWriter(t)

	err := w.WriteJSON(context.Background(), `[1]`)
	require.NoError(t, err)

	assert.NotContains(t, el.Markup(), "<span>")
}

func TestWriteJSON_IgnoresWrapperTag(t *testing.T) {
	w, el := newTestWriter(t)
	w.SetWrapperTag("b")

	err := w.WriteJSON(context.Background(), `true`)
	require.NoError(t, err)

	assert.Equal(t, "<pre>true</pre>", el.Markup())
}

func TestWriteJSON_MalformedInputWritesNothing(t *testing.T) {
	w, el := newTestWriter(t)

	err := w.WriteJSON(context.Background(), `{"a":`)
	require.Error(t, err)
	assert.Empty(t, el.Markup())
}

func TestWriteJSON_MissingDestination(t *testing.T) {
	doc := surface.NewDocument()
	w := New(doc, "nowhere")

	err := w.WriteJSON(context.Background(), `{}`)
	require.ErrorIs(t, err, ErrNoSurface)
}

func TestSkipAnimation_TakesPreviousDelayAndRestoresIt(t *testing.T) {
	w, _ := newTestWriter(t)
	w.SetStepDelay(50 * time.Millisecond)

	start := time.Now()
	err := w.SkipAnimation(context.Background())
	require.NoError(t, err)

	elapsed := time.Since(start)
	assert.GreaterOrEqual(t, elapsed, 50*time.Millisecond)
	assert.Less(t, elapsed, 500*time.Millisecond)
	assert.Equal(t, 50*time.Millisecond, w.StepDelay())
}

func TestSkipAnimation_InFlightWriteObservesZeroDelay(t *testing.T) {
	w, el := newTestWriter(t)
	w.SetStepDelay(20 * time.Millisecond)

	done := make(chan error, 1)
	go func() {
		done <- w.Write(context.Background(), Text(strings.Repeat("x", 50)))
	}()

	// Let a few paced characters land, then fast-forward.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, w.SkipAnimation(context.Background()))

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("write did not finish after skip")
	}
	assert.Equal(t, 50, strings.Count(el.Markup(), "<span>"))
	assert.Equal(t, 20*time.Millisecond, w.StepDelay())
}

func TestWrite_EmitsProgressEvents(t *testing.T) {
	ch := make(chan progress.Event, 8)
	doc := surface.NewDocument()
	doc.CreateElement("console", "div")
	w := New(doc, "console", WithEmitter(&progress.ChanEmitter{Ch: ch}))
	w.SetStepDelay(0)

	require.NoError(t, w.Write(context.Background(), Text("hi")))

	first := <-ch
	assert.Equal(t, "write", first.Operation)
	assert.Equal(t, progress.StatusRunning, first.Status)

	second := <-ch
	assert.Equal(t, progress.StatusDone, second.Status)
	assert.Equal(t, "2", second.Metadata["chars"])
}

func TestWrite_EmitsErrorEvent(t *testing.T) {
	ch := make(chan progress.Event, 8)
	doc := surface.NewDocument()
	w := New(doc, "nowhere", WithEmitter(&progress.ChanEmitter{Ch: ch}))
	w.SetStepDelay(0)

	require.Error(t, w.Write(context.Background(), Text("hi")))

	<-ch // running
	settled := <-ch
	assert.Equal(t, progress.StatusError, settled.Status)
	assert.Contains(t, settled.Metadata["error"], "surface")
}
