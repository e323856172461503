package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"teletype/internal/progress"
	"teletype/internal/surface"
	"teletype/internal/telemetry"
	"teletype/internal/ui"
	"teletype/internal/writer"
)

func main() {
	ctx := context.Background()

	tracer, err := telemetry.New(ctx, "teletype")
	if err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: %v\n", err)
		os.Exit(1)
	}

	doc := surface.NewDocument()
	console := doc.CreateElement("console", "div")

	events := make(chan progress.Event, 64)
	w := writer.New(doc, "console",
		writer.WithAutoScroll(),
		writer.WithEmitter(&progress.ChanEmitter{Ch: events}),
		writer.WithTracer(tracer),
	)
	w.SetStepDelay(35 * time.Millisecond)

	model := ui.NewConsole(doc, console, w)
	p := tea.NewProgram(model, tea.WithAltScreen())

	ui.NotifyOnChange(doc, p)
	go func() {
		for ev := range events {
			p.Send(ev)
		}
	}()
	go func() {
		p.Send(ui.ScriptDoneMsg{Err: runScript(ctx, w)})
	}()

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := tracer.Shutdown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "telemetry shutdown: %v\n", err)
	}
}

// runScript drives the demo: a greeting, a wrapped list, and a JSON blob.
func runScript(ctx context.Context, w *writer.Writer) error {
	if err := w.Write(ctx, writer.Text("hello, this is teletype.")); err != nil {
		return err
	}

	w.SetWrapperTag("p")
	lines := writer.Lines(
		"each list element gets its own paragraph,",
		"written to completion before the next begins,",
		"one character at a time.",
	)
	if err := w.Write(ctx, lines, writer.LeadDelay(600*time.Millisecond)); err != nil {
		return err
	}
	w.SetWrapperTag("")

	payload := map[string]any{
		"writer": map[string]any{
			"step_delay_ms": 35,
			"wrapper_tag":   "p",
			"auto_scroll":   true,
		},
		"surface": "console",
	}
	if err := w.WriteJSON(ctx, payload, writer.LeadDelay(600*time.Millisecond)); err != nil {
		return err
	}

	return w.Write(ctx, writer.Text("done. press q to quit."),
		writer.LeadDelay(400*time.Millisecond))
}
