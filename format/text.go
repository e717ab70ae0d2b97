package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/greennom/syntax"
)

// TextEncoder writes a tree as an indented outline, one element per line.
// Tokens are followed by their quoted text; diagnostics are listed after
// the tree.
type TextEncoder struct {
	w         io.Writer
	positions bool
	tree      *Tree
}

func NewTextEncoder(w io.Writer, positions bool) *TextEncoder {
	return &TextEncoder{w: w, positions: positions}
}

func (e *TextEncoder) Encode(tree *Tree) error {
	e.tree = tree
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TextEncoder) MarshalText() ([]byte, error) {
	if e.tree == nil || e.tree.Root == nil {
		return nil, fmt.Errorf("format: no tree to encode")
	}
	var b strings.Builder
	b.WriteString(Outline(e.tree, e.positions))
	for _, d := range e.tree.Diagnostics {
		fmt.Fprintf(&b, "error at %d: %s\n", d.Offset, d.Message)
	}
	return []byte(b.String()), nil
}

// Outline renders the tree part of t.
func Outline(t *Tree, positions bool) string {
	var b strings.Builder
	writeElement(&b, t, t.Root, 0, positions)
	return b.String()
}

func writeElement(b *strings.Builder, t *Tree, e syntax.Element, indent int, positions bool) {
	b.WriteString(strings.Repeat("  ", indent))
	b.WriteString(t.kindName(e.Kind()))
	if positions {
		b.WriteString(" [" + e.TextRange().String() + "]")
	}
	node, ok := e.(*syntax.Node)
	if !ok {
		fmt.Fprintf(b, " %q\n", e.Text())
		return
	}
	b.WriteString("\n")
	for _, child := range node.ChildrenWithTokens() {
		writeElement(b, t, child, indent+1, positions)
	}
}
