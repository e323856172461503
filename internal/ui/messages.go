package ui

// RefreshMsg is sent whenever the document mutates; the console re-renders
// its content from a fresh snapshot.
type RefreshMsg struct{}

// ScriptDoneMsg is sent when the demo script driving the writer finishes.
type ScriptDoneMsg struct {
	Err error
}

// skipDoneMsg is sent when a requested skip-animation window has elapsed.
type skipDoneMsg struct{}
