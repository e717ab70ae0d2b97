// Package green provides immutable, structurally shared syntax tree records.
//
// Green records know their kind, their text and their children, but not
// their position or parent. They are built bottom-up and never mutated, so
// a subtree can be shared by any number of trees. Positional navigation is
// provided by package syntax on top of a finished green tree.
package green

import (
	"encoding/binary"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Kind is the compact ordinal of a token or node kind.
type Kind uint16

// Element is either a *Node or a *Token.
type Element interface {
	Kind() Kind
	TextLen() int
	Text() string
	Hash() uint64

	writeText(b *strings.Builder)
	isElement()
}

const (
	tagToken byte = 't'
	tagNode  byte = 'n'
)

// Token is a leaf of the tree: a kind and the exact source text it covers.
type Token struct {
	kind Kind
	text string
	hash uint64
}

// NewToken creates a leaf with the given kind and text.
func NewToken(kind Kind, text string) *Token {
	d := xxhash.New()
	var hdr [3]byte
	hdr[0] = tagToken
	binary.LittleEndian.PutUint16(hdr[1:], uint16(kind))
	d.Write(hdr[:])
	d.WriteString(text)
	return &Token{kind: kind, text: text, hash: d.Sum64()}
}

func (t *Token) Kind() Kind   { return t.kind }
func (t *Token) TextLen() int { return len(t.text) }
func (t *Token) Text() string { return t.text }
func (t *Token) Hash() uint64 { return t.hash }

func (t *Token) writeText(b *strings.Builder) { b.WriteString(t.text) }
func (t *Token) isElement()                   {}

// Node is an interior record owning an ordered sequence of children.
type Node struct {
	kind     Kind
	children []Element
	textLen  int
	hash     uint64
}

// NewNode creates a node of the given kind. The children slice is copied;
// later changes to it do not affect the node.
func NewNode(kind Kind, children []Element) *Node {
	owned := make([]Element, len(children))
	copy(owned, children)

	d := xxhash.New()
	var hdr [3]byte
	hdr[0] = tagNode
	binary.LittleEndian.PutUint16(hdr[1:], uint16(kind))
	d.Write(hdr[:])

	var buf [8]byte
	textLen := 0
	for _, child := range owned {
		textLen += child.TextLen()
		binary.LittleEndian.PutUint64(buf[:], child.Hash())
		d.Write(buf[:])
	}

	return &Node{kind: kind, children: owned, textLen: textLen, hash: d.Sum64()}
}

func (n *Node) Kind() Kind   { return n.kind }
func (n *Node) TextLen() int { return n.textLen }
func (n *Node) Hash() uint64 { return n.hash }

// Text returns the concatenated text of all leaves below n.
func (n *Node) Text() string {
	var b strings.Builder
	b.Grow(n.textLen)
	n.writeText(&b)
	return b.String()
}

func (n *Node) writeText(b *strings.Builder) {
	for _, child := range n.children {
		child.writeText(b)
	}
}

func (n *Node) isElement() {}

// NumChildren returns the number of direct children.
func (n *Node) NumChildren() int { return len(n.children) }

// Child returns the i-th direct child.
func (n *Node) Child(i int) Element { return n.children[i] }

// Children returns a copy of the direct children.
func (n *Node) Children() []Element {
	out := make([]Element, len(n.children))
	copy(out, n.children)
	return out
}

// Equal reports whether a and b are structurally identical: same kinds,
// same texts and same shape.
func Equal(a, b Element) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() || a.Hash() != b.Hash() || a.TextLen() != b.TextLen() {
		return false
	}
	switch x := a.(type) {
	case *Token:
		y, ok := b.(*Token)
		return ok && x.text == y.text
	case *Node:
		y, ok := b.(*Node)
		if !ok || len(x.children) != len(y.children) {
			return false
		}
		if x == y {
			return true
		}
		for i := range x.children {
			if !Equal(x.children[i], y.children[i]) {
				return false
			}
		}
		return true
	}
	return false
}
