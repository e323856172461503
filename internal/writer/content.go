package writer

// Content is the input to Write: either a scalar string or an ordered
// sequence of further Content, which may nest. The explicit union avoids
// shape-sniffing on arbitrary values.
type Content interface {
	isContent()
}

type textContent string

func (textContent) isContent() {}

type seqContent []Content

func (seqContent) isContent() {}

// Text wraps a scalar string for writing.
func Text(s string) Content { return textContent(s) }

// Sequence orders multiple Content values; each is written to completion
// before the next begins.
func Sequence(items ...Content) Content { return seqContent(items) }

// Lines is a convenience for the common all-strings sequence.
func Lines(items ...string) Content {
	seq := make(seqContent, len(items))
	for i, s := range items {
		seq[i] = textContent(s)
	}
	return seq
}
