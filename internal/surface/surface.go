// Package surface provides the output surface the sequenced writer mutates:
// an in-memory tree of elements addressable by identifier, renderable as
// markup or plain text.
//
// Core abstractions:
//   - Surface: the mutation contract a writer needs (append child/markup/text,
//     clear, scroll into view)
//   - Document: owns the element tree, resolves elements by identifier, and
//     notifies an observer after every mutation
package surface

import "strings"

// Surface is the mutable container contract required by the writer.
// Implementations must be safe for concurrent use.
type Surface interface {
	// AppendChild appends a new child element with the given tag and
	// returns it.
	AppendChild(tag string) Surface

	// AppendMarkup appends a raw markup fragment to the end of the
	// container's content.
	AppendMarkup(fragment string)

	// AppendText appends plain text to the end of the container's content.
	AppendText(text string)

	// Clear discards the container's existing content.
	Clear()

	// ScrollIntoView brings the container into view.
	ScrollIntoView()
}

var markupEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// EscapeText escapes a string for safe embedding in a markup fragment.
func EscapeText(s string) string {
	return markupEscaper.Replace(s)
}

// stripTags removes markup tags from a fragment and unescapes the basic
// entities, yielding the fragment's visible text.
func stripTags(fragment string) string {
	var b strings.Builder
	inTag := false
	for _, r := range fragment {
		switch {
		case inTag:
			if r == '>' {
				inTag = false
			}
		case r == '<':
			inTag = true
		default:
			b.WriteRune(r)
		}
	}
	return unescapeEntities(b.String())
}

var entityUnescaper = strings.NewReplacer("&lt;", "<", "&gt;", ">", "&amp;", "&")

func unescapeEntities(s string) string {
	return entityUnescaper.Replace(s)
}
