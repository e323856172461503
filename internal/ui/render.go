package ui

import (
	"strings"

	"teletype/internal/surface"
)

// Render converts a surface snapshot into styled terminal text. Tags map
// onto terminal presentation: pre becomes a bordered block, b/em style
// their content, p and div end with a line break, everything else is
// rendered inline.
func Render(n surface.Node) string {
	if n.Tag == "" && len(n.Children) == 0 {
		return n.Text
	}

	var b strings.Builder
	for _, c := range n.Children {
		b.WriteString(Render(c))
	}
	inner := b.String()

	switch n.Tag {
	case "pre":
		return "\n" + Styles.Pre.Render(inner) + "\n"
	case "b", "strong":
		return Styles.Bold.Render(inner)
	case "em", "i":
		return Styles.Italic.Render(inner)
	case "p", "div":
		return inner + "\n"
	default:
		return inner
	}
}

// RenderRoot renders an element's content without the root tag's own
// block break.
func RenderRoot(el *surface.Element) string {
	snap := el.Snapshot()
	var b strings.Builder
	for _, c := range snap.Children {
		b.WriteString(Render(c))
	}
	return strings.TrimRight(b.String(), "\n")
}
