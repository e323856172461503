package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"teletype/internal/progress"
	"teletype/internal/surface"
	"teletype/internal/ui/textutil"
	"teletype/internal/writer"
)

const defaultConsoleWidth = 80
const defaultConsoleHeight = 20

// Console is the Bubble Tea model presenting one document element while a
// writer animates into it. It re-renders on RefreshMsg, shows the latest
// progress event in the status bar, and fast-forwards on "s".
type Console struct {
	root     *surface.Element
	doc      *surface.Document
	writer   *writer.Writer
	viewport viewport.Model
	width    int
	height   int
	status   string
	skipping bool
}

// NewConsole creates a console presenting root, driven by w.
func NewConsole(doc *surface.Document, root *surface.Element, w *writer.Writer) *Console {
	vp := viewport.New(defaultConsoleWidth, defaultConsoleHeight)
	vp.Style = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(0, 1)
	return &Console{
		doc:      doc,
		root:     root,
		writer:   w,
		viewport: vp,
		width:    defaultConsoleWidth,
		height:   defaultConsoleHeight,
		status:   "starting",
	}
}

// Init implements tea.Model.
func (c *Console) Init() tea.Cmd {
	return c.viewport.Init()
}

// Update implements tea.Model.
func (c *Console) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshMsg:
		c.refreshContent()
		return c, nil

	case progress.Event:
		c.status = formatEvent(msg)
		return c, nil

	case ScriptDoneMsg:
		if msg.Err != nil {
			c.status = "script failed: " + msg.Err.Error()
		} else {
			c.status = "script finished"
		}
		return c, nil

	case skipDoneMsg:
		c.skipping = false
		return c, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return c, tea.Quit
		case "s":
			if !c.skipping {
				c.skipping = true
				return c, skipCmd(c.writer)
			}
			return c, nil
		}

	case tea.WindowSizeMsg:
		c.width = msg.Width
		c.height = msg.Height
		w := msg.Width - 4
		h := msg.Height - 5
		if w < 40 {
			w = 40
		}
		if h < 8 {
			h = 8
		}
		c.viewport.Width = w
		c.viewport.Height = h
		c.refreshContent()
		return c, nil
	}

	var cmd tea.Cmd
	c.viewport, cmd = c.viewport.Update(msg)
	return c, cmd
}

// View implements tea.Model.
func (c *Console) View() string {
	header := Styles.Title.Render("teletype") +
		Styles.Hint.Render("  s: skip animation  j/k: scroll  q: quit")
	status := c.status
	if c.skipping {
		status += "  (fast-forwarding)"
	}
	bar := Styles.Status.Render(textutil.Truncate(status, c.viewport.Width))
	return header + "\n" + c.viewport.View() + "\n" + bar
}

// refreshContent rebuilds the viewport from a fresh document snapshot and
// follows the writer's scroll target.
func (c *Console) refreshContent() {
	c.viewport.SetContent(RenderRoot(c.root))
	if c.doc.Scrolled() != nil {
		c.viewport.GotoBottom()
	}
}

func skipCmd(w *writer.Writer) tea.Cmd {
	return func() tea.Msg {
		_ = w.SkipAnimation(context.Background())
		return skipDoneMsg{}
	}
}

func formatEvent(ev progress.Event) string {
	ts := ev.Timestamp.Format("15:04:05")
	line := fmt.Sprintf("[%s] %s %s", ts, ev.Operation, ev.Status)
	if chars, ok := ev.Metadata["chars"]; ok {
		line += " (" + chars + " chars)"
	}
	if errMsg, ok := ev.Metadata["error"]; ok {
		line += " " + errMsg
	}
	return line
}
