package surface

import (
	"fmt"
	"strings"
	"sync"
)

// nodeKind discriminates the three child node shapes an element can hold.
type nodeKind int

const (
	nodeElement nodeKind = iota
	nodeText
	nodeMarkup
)

// node is one ordered child of an element: a nested element, a plain text
// chunk, or a raw markup fragment.
type node struct {
	kind nodeKind
	elem *Element
	data string // text or markup payload for non-element nodes
}

// Document owns a tree of elements and resolves them by identifier.
// All mutations go through the document mutex; the onChange callback
// fires after each mutation, outside the lock, so observers may read
// the document freely.
type Document struct {
	mu       sync.Mutex
	byID     map[string]*Element
	scrolled *Element
	onChange func()
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{byID: make(map[string]*Element)}
}

// SetOnChange registers a callback invoked after every mutation.
// Pass nil to remove it.
func (d *Document) SetOnChange(fn func()) {
	d.mu.Lock()
	d.onChange = fn
	d.mu.Unlock()
}

// CreateElement creates a root-level element addressable by id and
// returns it. Creating a second element with the same id replaces the
// registration but not the existing element.
func (d *Document) CreateElement(id, tag string) *Element {
	d.mu.Lock()
	el := &Element{doc: d, id: id, tag: tag}
	d.byID[id] = el
	d.mu.Unlock()
	d.notify()
	return el
}

// Lookup resolves an element by identifier. Returns nil when the id is
// unknown; resolution failure is not an error at this layer.
func (d *Document) Lookup(id string) *Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.byID[id]
}

// Scrolled reports the element most recently brought into view, or nil.
func (d *Document) Scrolled() *Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.scrolled
}

// notify must be called without the lock held.
func (d *Document) notify() {
	d.mu.Lock()
	fn := d.onChange
	d.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Element is one container in the document tree.
type Element struct {
	doc      *Document
	id       string
	tag      string
	children []node
}

var _ Surface = (*Element)(nil)

// Tag returns the element's tag name.
func (e *Element) Tag() string { return e.tag }

// ID returns the identifier the element was registered under, or "" for
// anonymous children.
func (e *Element) ID() string { return e.id }

// AppendChild implements Surface.
func (e *Element) AppendChild(tag string) Surface {
	return e.appendChildElement(tag)
}

// appendChildElement is AppendChild with a concrete return type for
// callers inside the package.
func (e *Element) appendChildElement(tag string) *Element {
	e.doc.mu.Lock()
	child := &Element{doc: e.doc, tag: tag}
	e.children = append(e.children, node{kind: nodeElement, elem: child})
	e.doc.mu.Unlock()
	e.doc.notify()
	return child
}

// AppendMarkup implements Surface.
func (e *Element) AppendMarkup(fragment string) {
	e.doc.mu.Lock()
	e.children = append(e.children, node{kind: nodeMarkup, data: fragment})
	e.doc.mu.Unlock()
	e.doc.notify()
}

// AppendText implements Surface.
func (e *Element) AppendText(text string) {
	e.doc.mu.Lock()
	e.children = append(e.children, node{kind: nodeText, data: text})
	e.doc.mu.Unlock()
	e.doc.notify()
}

// Clear implements Surface.
func (e *Element) Clear() {
	e.doc.mu.Lock()
	e.children = nil
	e.doc.mu.Unlock()
	e.doc.notify()
}

// ScrollIntoView implements Surface. The document records the element as
// the current scroll target; presentation layers decide what that means.
func (e *Element) ScrollIntoView() {
	e.doc.mu.Lock()
	e.doc.scrolled = e
	e.doc.mu.Unlock()
	e.doc.notify()
}

// Markup serializes the element's content in innerHTML style: child
// elements as tag pairs, text escaped, markup fragments verbatim.
func (e *Element) Markup() string {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	var b strings.Builder
	e.writeMarkup(&b)
	return b.String()
}

// OuterMarkup serializes the element including its own tag pair.
func (e *Element) OuterMarkup() string {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	var b strings.Builder
	b.WriteString(openTag(e.tag, e.id))
	e.writeMarkup(&b)
	fmt.Fprintf(&b, "</%s>", e.tag)
	return b.String()
}

func openTag(tag, id string) string {
	if id != "" {
		return fmt.Sprintf("<%s id=%q>", tag, id)
	}
	return fmt.Sprintf("<%s>", tag)
}

// writeMarkup must be called with the document lock held.
func (e *Element) writeMarkup(b *strings.Builder) {
	for _, n := range e.children {
		switch n.kind {
		case nodeElement:
			b.WriteString(openTag(n.elem.tag, n.elem.id))
			n.elem.writeMarkup(b)
			fmt.Fprintf(b, "</%s>", n.elem.tag)
		case nodeText:
			b.WriteString(EscapeText(n.data))
		case nodeMarkup:
			b.WriteString(n.data)
		}
	}
}

// InnerText returns the element's visible text: markup fragments with
// their tags stripped, text chunks verbatim, children recursively.
func (e *Element) InnerText() string {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	var b strings.Builder
	e.writeText(&b)
	return b.String()
}

// writeText must be called with the document lock held.
func (e *Element) writeText(b *strings.Builder) {
	for _, n := range e.children {
		switch n.kind {
		case nodeElement:
			n.elem.writeText(b)
		case nodeText:
			b.WriteString(n.data)
		case nodeMarkup:
			b.WriteString(stripTags(n.data))
		}
	}
}

// Node is an immutable snapshot of an element subtree for rendering.
// Leaf chunks carry Text; element nodes carry Tag and Children.
type Node struct {
	Tag      string
	Text     string
	Children []Node
}

// Snapshot copies the element subtree for lock-free rendering. Markup
// fragments are reduced to their visible text.
func (e *Element) Snapshot() Node {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	return e.snapshot()
}

// snapshot must be called with the document lock held.
func (e *Element) snapshot() Node {
	n := Node{Tag: e.tag}
	for _, c := range e.children {
		switch c.kind {
		case nodeElement:
			n.Children = append(n.Children, c.elem.snapshot())
		case nodeText:
			n.Children = append(n.Children, Node{Text: c.data})
		case nodeMarkup:
			n.Children = append(n.Children, Node{Text: stripTags(c.data)})
		}
	}
	return n
}
