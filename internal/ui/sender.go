package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"teletype/internal/surface"
)

// Sender is the message sink the document notifies. Implemented by
// *tea.Program and by test doubles.
type Sender interface {
	Send(msg tea.Msg)
}

// NotifyOnChange makes every document mutation send a RefreshMsg to s.
func NotifyOnChange(doc *surface.Document, s Sender) {
	doc.SetOnChange(func() {
		s.Send(RefreshMsg{})
	})
}
