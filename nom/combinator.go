package nom

import (
	"errors"

	"github.com/dhamidi/greennom/syntax"
)

// ErrNoMatch is returned by a root parser whose top rule backtracked
// instead of recovering.
var ErrNoMatch = errors.New("nom: top-level rule did not match")

// Parser is the shape of every combinator. On success it returns the
// advanced cursor, the fragment it built and true. On failure it returns
// the unchanged cursor, an empty fragment and false; failure consumes
// nothing and only means "this alternative does not apply here".
type Parser[K Kind[K], E any] func(in Input[K]) (Input[K], Children[K, E], bool)

// T matches a single token of kind. Leading trivia is consumed with it and
// kept in the fragment, ahead of the token.
func T[K Kind[K], E any](kind K) Parser[K, E] {
	return func(in Input[K]) (Input[K], Children[K, E], bool) {
		if !in.At(kind) {
			return in, Children[K, E]{}, false
		}
		rest, consumed, _ := in.Advance()
		return rest, FromTokens[K, E](consumed), true
	}
}

// Any matches the next token, whatever its kind.
func Any[K Kind[K], E any]() Parser[K, E] {
	return func(in Input[K]) (Input[K], Children[K, E], bool) {
		rest, consumed, ok := in.Advance()
		if !ok {
			return in, Children[K, E]{}, false
		}
		return rest, FromTokens[K, E](consumed), true
	}
}

// Join runs parsers one after the other and concatenates their fragments.
// If any of them fails, Join fails and the partial fragment is dropped.
func Join[K Kind[K], E any](parsers ...Parser[K, E]) Parser[K, E] {
	return func(in Input[K]) (Input[K], Children[K, E], bool) {
		var acc Children[K, E]
		cur := in
		for _, p := range parsers {
			rest, out, ok := p(cur)
			if !ok {
				return in, Children[K, E]{}, false
			}
			acc.extend(out)
			cur = rest
		}
		return cur, acc, true
	}
}

// Many0 applies p as long as it succeeds and concatenates the fragments of
// every successful iteration. It never fails: zero iterations yield the
// identity fragment.
//
// p must consume input whenever it succeeds. An iteration that succeeds
// without consuming anything stops the loop and its fragment is dropped.
func Many0[K Kind[K], E any](p Parser[K, E]) Parser[K, E] {
	return func(in Input[K]) (Input[K], Children[K, E], bool) {
		var acc Children[K, E]
		cur := in
		for {
			rest, out, ok := p(cur)
			if !ok || rest.pos == cur.pos {
				return cur, acc, true
			}
			acc.extend(out)
			cur = rest
		}
	}
}

// Many1 is like Many0 but fails unless p succeeds at least once.
func Many1[K Kind[K], E any](p Parser[K, E]) Parser[K, E] {
	many := Many0(p)
	return func(in Input[K]) (Input[K], Children[K, E], bool) {
		rest, first, ok := p(in)
		if !ok {
			return in, Children[K, E]{}, false
		}
		rest, more, _ := many(rest)
		return rest, first.Concat(more), true
	}
}

// Opt runs p and succeeds with the identity fragment when p fails.
func Opt[K Kind[K], E any](p Parser[K, E]) Parser[K, E] {
	return func(in Input[K]) (Input[K], Children[K, E], bool) {
		if rest, out, ok := p(in); ok {
			return rest, out, true
		}
		return in, Children[K, E]{}, true
	}
}

// Alt tries each parser in order from the same cursor and returns the
// outcome of the first one that succeeds. It fails if all of them fail.
func Alt[K Kind[K], E any](parsers ...Parser[K, E]) Parser[K, E] {
	return func(in Input[K]) (Input[K], Children[K, E], bool) {
		for _, p := range parsers {
			if rest, out, ok := p(in); ok {
				return rest, out, true
			}
		}
		return in, Children[K, E]{}, false
	}
}

// Node wraps the fragment of p in a new node of kind. When p fails, Node
// fails too and no node is created.
func Node[K Kind[K], E any](kind K, p Parser[K, E]) Parser[K, E] {
	return func(in Input[K]) (Input[K], Children[K, E], bool) {
		rest, out, ok := p(in)
		if !ok {
			return in, Children[K, E]{}, false
		}
		return rest, out.IntoNode(kind), true
	}
}

// EOF succeeds when no non-trivia token remains. Remaining trivia is
// consumed into the fragment so that it stays in the tree; without trailing
// trivia the fragment is the identity.
func EOF[K Kind[K], E any]() Parser[K, E] {
	return func(in Input[K]) (Input[K], Children[K, E], bool) {
		if !in.AtEnd() {
			return in, Children[K, E]{}, false
		}
		rest, trivia := in.skipTrivia()
		return rest, FromTokens[K, E](trivia), true
	}
}

// RootNode returns the entry point of a grammar: it runs p over the full
// token sequence and turns the resulting fragment into a tree rooted at a
// node of kind, together with every diagnostic collected. It returns
// ErrNoMatch when p itself fails.
func RootNode[K Kind[K], E any](kind K, p Parser[K, E]) func(tokens []RichToken[K]) (*syntax.Node, []E, error) {
	return func(tokens []RichToken[K]) (*syntax.Node, []E, error) {
		_, out, ok := p(NewInput(tokens))
		if !ok {
			return nil, nil, ErrNoMatch
		}
		root, diags := out.IntoRoot(kind)
		return root, diags, nil
	}
}
