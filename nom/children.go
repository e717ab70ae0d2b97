package nom

import (
	"slices"
	"strings"

	"github.com/dhamidi/greennom/green"
	"github.com/dhamidi/greennom/syntax"
)

// Children is the output of every parser: green elements that are built but
// not yet attached to a parent, and the diagnostics collected while building
// them.
//
// Children is a monoid under Concat with Empty as identity. Values are
// immutable; every operation returns a new value and never shares backing
// arrays with its operands.
type Children[K Kind[K], E any] struct {
	inner  []green.Element
	errors []E
}

// Empty returns the identity fragment.
func Empty[K Kind[K], E any]() Children[K, E] {
	return Children[K, E]{}
}

// FromError returns a fragment holding a single childless node of the
// vocabulary's error kind and the diagnostic diag. It stands for something
// that was expected but not found.
func FromError[K Kind[K], E any](diag E) Children[K, E] {
	return Children[K, E]{
		inner:  []green.Element{green.NewNode(errorKind[K]().ToRaw(), nil)},
		errors: []E{diag},
	}
}

// FromTokens wraps tokens as leaf elements.
func FromTokens[K Kind[K], E any](tokens []RichToken[K]) Children[K, E] {
	if len(tokens) == 0 {
		return Children[K, E]{}
	}
	inner := make([]green.Element, len(tokens))
	for i, tok := range tokens {
		inner[i] = green.NewToken(tok.Kind.ToRaw(), tok.Text)
	}
	return Children[K, E]{inner: inner}
}

// FromGreen wraps already built green elements and their diagnostics, for
// instance the children of a node from a previous parse.
func FromGreen[K Kind[K], E any](elements []green.Element, errors []E) Children[K, E] {
	return Children[K, E]{
		inner:  cloneSlice(elements),
		errors: cloneSlice(errors),
	}
}

// Concat returns c followed by o: elements and diagnostics are merged in
// order, without reordering or deduplication.
func (c Children[K, E]) Concat(o Children[K, E]) Children[K, E] {
	var out Children[K, E]
	out.extend(c)
	out.extend(o)
	return out
}

// extend appends o to c in place. It must only be called on a fragment
// whose slices were allocated by extend itself.
func (c *Children[K, E]) extend(o Children[K, E]) {
	c.inner = append(c.inner, o.inner...)
	c.errors = append(c.errors, o.errors...)
}

// AddError returns c with diag appended to its diagnostics, without adding
// an error node.
func (c Children[K, E]) AddError(diag E) Children[K, E] {
	var out Children[K, E]
	out.extend(c)
	out.errors = append(out.errors, diag)
	return out
}

// IntoNode wraps every element of c in a single new node of kind. The
// diagnostics are carried over unchanged.
func (c Children[K, E]) IntoNode(kind K) Children[K, E] {
	return Children[K, E]{
		inner:  []green.Element{green.NewNode(kind.ToRaw(), c.inner)},
		errors: cloneSlice(c.errors),
	}
}

// IntoRoot builds the final tree: a root node of kind holding every element
// of c, and the diagnostics collected during the parse.
func (c Children[K, E]) IntoRoot(kind K) (*syntax.Node, []E) {
	root := green.NewNode(kind.ToRaw(), c.inner)
	return syntax.NewRoot(root), cloneSlice(c.errors)
}

// Len returns the number of elements.
func (c Children[K, E]) Len() int { return len(c.inner) }

// Elements returns a copy of the elements.
func (c Children[K, E]) Elements() []green.Element { return cloneSlice(c.inner) }

// Errors returns a copy of the diagnostics.
func (c Children[K, E]) Errors() []E { return cloneSlice(c.errors) }

// Text returns the concatenated source text of every element.
func (c Children[K, E]) Text() string {
	var b strings.Builder
	for _, e := range c.inner {
		b.WriteString(e.Text())
	}
	return b.String()
}

func cloneSlice[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	return slices.Clone(s)
}
