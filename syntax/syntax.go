// Package syntax provides a read-only, positioned view over a green tree.
//
// A syntax Node wraps a green node together with its parent and absolute
// text offset. Wrappers are created lazily while navigating and are never
// stored in the green tree, so the same green subtree can appear in many
// syntax trees at different positions.
package syntax

import (
	"fmt"

	"github.com/dhamidi/greennom/green"
)

// TextRange is a half-open byte range [Start, End) into the source text.
type TextRange struct {
	Start int
	End   int
}

func (r TextRange) Len() int { return r.End - r.Start }

// Contains reports whether offset lies inside r.
func (r TextRange) Contains(offset int) bool {
	return r.Start <= offset && offset < r.End
}

// ContainsRange reports whether o lies entirely inside r.
func (r TextRange) ContainsRange(o TextRange) bool {
	return r.Start <= o.Start && o.End <= r.End
}

func (r TextRange) String() string {
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}

// Element is either a *Node or a *Token.
type Element interface {
	Kind() green.Kind
	TextRange() TextRange
	Text() string
	Parent() *Node
	Index() int
	Green() green.Element
}

// Node is a positioned view of a green node.
type Node struct {
	green  *green.Node
	parent *Node
	index  int
	offset int
}

// NewRoot returns the root view of a finished green tree.
func NewRoot(g *green.Node) *Node {
	return &Node{green: g}
}

func (n *Node) Green() green.Element   { return n.green }
func (n *Node) GreenNode() *green.Node { return n.green }
func (n *Node) Kind() green.Kind       { return n.green.Kind() }
func (n *Node) Parent() *Node          { return n.parent }
func (n *Node) Index() int             { return n.index }
func (n *Node) Text() string           { return n.green.Text() }

func (n *Node) TextRange() TextRange {
	return TextRange{Start: n.offset, End: n.offset + n.green.TextLen()}
}

// Root walks up the parent chain to the root of the tree.
func (n *Node) Root() *Node {
	for n.parent != nil {
		n = n.parent
	}
	return n
}

// NumChildren returns the number of direct children, tokens included.
func (n *Node) NumChildren() int { return n.green.NumChildren() }

// ChildAt returns the i-th direct child, node or token.
func (n *Node) ChildAt(i int) Element {
	offset := n.offset
	for j := 0; j < i; j++ {
		offset += n.green.Child(j).TextLen()
	}
	return n.wrap(i, offset)
}

func (n *Node) wrap(i, offset int) Element {
	switch g := n.green.Child(i).(type) {
	case *green.Node:
		return &Node{green: g, parent: n, index: i, offset: offset}
	case *green.Token:
		return &Token{green: g, parent: n, index: i, offset: offset}
	}
	return nil
}

// ChildrenWithTokens returns every direct child in order.
func (n *Node) ChildrenWithTokens() []Element {
	out := make([]Element, 0, n.green.NumChildren())
	offset := n.offset
	for i := 0; i < n.green.NumChildren(); i++ {
		out = append(out, n.wrap(i, offset))
		offset += n.green.Child(i).TextLen()
	}
	return out
}

// Children returns the direct children that are nodes.
func (n *Node) Children() []*Node {
	var out []*Node
	for _, child := range n.ChildrenWithTokens() {
		if node, ok := child.(*Node); ok {
			out = append(out, node)
		}
	}
	return out
}

// FirstChildOfKind returns the first direct child node of the given kind.
func (n *Node) FirstChildOfKind(kind green.Kind) *Node {
	for _, child := range n.Children() {
		if child.Kind() == kind {
			return child
		}
	}
	return nil
}

// Ancestors returns n and all its ancestors, innermost first.
func (n *Node) Ancestors() []*Node {
	var out []*Node
	for cur := n; cur != nil; cur = cur.parent {
		out = append(out, cur)
	}
	return out
}

// NextSibling returns the following sibling element, or nil.
func (n *Node) NextSibling() Element { return nextSibling(n) }

// PrevSibling returns the preceding sibling element, or nil.
func (n *Node) PrevSibling() Element { return prevSibling(n) }

// Walk visits n and its descendants in preorder. When fn returns false for
// a node its children are skipped.
func (n *Node) Walk(fn func(Element) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.ChildrenWithTokens() {
		switch c := child.(type) {
		case *Node:
			c.Walk(fn)
		case *Token:
			fn(c)
		}
	}
}

// Tokens returns every leaf below n in tree order.
func (n *Node) Tokens() []*Token {
	var out []*Token
	n.Walk(func(e Element) bool {
		if tok, ok := e.(*Token); ok {
			out = append(out, tok)
		}
		return true
	})
	return out
}

// TokenAtOffset returns the leaf covering offset. An offset equal to the
// end of n yields the last non-empty leaf. It returns nil when offset is
// outside n or n has no text.
func (n *Node) TokenAtOffset(offset int) *Token {
	r := n.TextRange()
	if offset < r.Start || offset > r.End {
		return nil
	}
	var last *Token
	for _, tok := range n.Tokens() {
		tr := tok.TextRange()
		if tr.Contains(offset) {
			return tok
		}
		if tr.Len() > 0 {
			last = tok
		}
	}
	if offset == r.End {
		return last
	}
	return nil
}

// CoveringElement returns the innermost element whose range contains r.
func (n *Node) CoveringElement(r TextRange) Element {
	if !n.TextRange().ContainsRange(r) {
		return nil
	}
	var cur Element = n
	for {
		node, ok := cur.(*Node)
		if !ok {
			return cur
		}
		var next Element
		for _, child := range node.ChildrenWithTokens() {
			cr := child.TextRange()
			if cr.Len() > 0 && cr.ContainsRange(r) {
				next = child
				break
			}
		}
		if next == nil {
			return cur
		}
		cur = next
	}
}

// Token is a positioned view of a green token.
type Token struct {
	green  *green.Token
	parent *Node
	index  int
	offset int
}

func (t *Token) Green() green.Element     { return t.green }
func (t *Token) GreenToken() *green.Token { return t.green }
func (t *Token) Kind() green.Kind         { return t.green.Kind() }
func (t *Token) Parent() *Node            { return t.parent }
func (t *Token) Index() int               { return t.index }
func (t *Token) Text() string             { return t.green.Text() }

func (t *Token) TextRange() TextRange {
	return TextRange{Start: t.offset, End: t.offset + t.green.TextLen()}
}

// NextSibling returns the following sibling element, or nil.
func (t *Token) NextSibling() Element { return nextSibling(t) }

// PrevSibling returns the preceding sibling element, or nil.
func (t *Token) PrevSibling() Element { return prevSibling(t) }

func nextSibling(e Element) Element {
	p := e.Parent()
	if p == nil || e.Index()+1 >= p.NumChildren() {
		return nil
	}
	return p.wrap(e.Index()+1, e.TextRange().End)
}

func prevSibling(e Element) Element {
	p := e.Parent()
	if p == nil || e.Index() == 0 {
		return nil
	}
	prev := p.green.Child(e.Index() - 1)
	return p.wrap(e.Index()-1, e.TextRange().Start-prev.TextLen())
}
