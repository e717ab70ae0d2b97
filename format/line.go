package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/greennom/syntax"
)

// LineEncoder writes one tab-separated line per token: the path of
// enclosing node kinds, the token kind, its range and its quoted text.
// Diagnostics follow as "error" lines. The output is meant for grep and
// cut.
type LineEncoder struct {
	w    io.Writer
	tree *Tree
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(tree *Tree) error {
	e.tree = tree
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	if e.tree == nil || e.tree.Root == nil {
		return nil, fmt.Errorf("format: no tree to encode")
	}
	var sb strings.Builder
	t := e.tree

	t.Root.Walk(func(el syntax.Element) bool {
		node, ok := el.(*syntax.Node)
		if ok {
			if node.NumChildren() == 0 {
				fmt.Fprintf(&sb, "%s\t-\t%s\t\n", e.path(node), node.TextRange())
			}
			return true
		}
		fmt.Fprintf(&sb, "%s\t%s\t%s\t%q\n",
			e.path(el.Parent()),
			t.kindName(el.Kind()),
			el.TextRange(),
			el.Text(),
		)
		return true
	})

	for _, d := range t.Diagnostics {
		fmt.Fprintf(&sb, "error\t%d\t%s\n", d.Offset, d.Message)
	}
	return []byte(sb.String()), nil
}

// path joins the kinds from the root down to n with "/".
func (e *LineEncoder) path(n *syntax.Node) string {
	ancestors := n.Ancestors()
	names := make([]string, len(ancestors))
	for i, a := range ancestors {
		names[len(ancestors)-1-i] = e.tree.kindName(a.Kind())
	}
	return strings.Join(names, "/")
}
