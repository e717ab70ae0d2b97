package nom

import (
	"fmt"
	"slices"
)

// Error is a ready-made diagnostic: a message anchored at a byte offset of
// the source.
type Error struct {
	Offset  int
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Offset, e.Message)
}

// Expected returns a diagnostic builder reporting that what was expected at
// the cursor, naming the token found instead when there is one.
func Expected[K Kind[K]](what string) func(in Input[K]) Error {
	return func(in Input[K]) Error {
		if found, ok := in.Peek(0); ok {
			return Error{Offset: in.Offset(), Message: fmt.Sprintf("expected %s, found %v", what, found)}
		}
		return Error{Offset: in.Offset(), Message: fmt.Sprintf("expected %s, found end of input", what)}
	}
}

// Expect runs p and, when it fails, succeeds without consuming input with
// an error node and the diagnostic built by diag. Use it where the grammar
// knows what must come next and a complete tree matters more than trying
// other alternatives.
func Expect[K Kind[K], E any](p Parser[K, E], diag func(in Input[K]) E) Parser[K, E] {
	return func(in Input[K]) (Input[K], Children[K, E], bool) {
		if rest, out, ok := p(in); ok {
			return rest, out, true
		}
		return in, FromError[K, E](diag(in)), true
	}
}

// SkipUntil consumes tokens up to the next non-trivia token whose kind is
// one of sync, or up to the end of input, and wraps them in a single error
// node with the diagnostic built by diag. It fails when there is nothing to
// skip.
func SkipUntil[K Kind[K], E any](diag func(in Input[K]) E, sync ...K) Parser[K, E] {
	return func(in Input[K]) (Input[K], Children[K, E], bool) {
		var skipped Children[K, E]
		cur := in
		for {
			kind, ok := cur.Peek(0)
			if !ok || slices.Contains(sync, kind) {
				break
			}
			rest, consumed, _ := cur.Advance()
			skipped.extend(FromTokens[K, E](consumed))
			cur = rest
		}
		if cur.pos == in.pos {
			return in, Children[K, E]{}, false
		}
		return cur, skipped.IntoNode(errorKind[K]()).AddError(diag(in)), true
	}
}

// RecoverEOF behaves like EOF at the end of input. Otherwise it wraps every
// remaining token in an error node with the diagnostic built by diag, so
// that trailing garbage still ends up in the tree.
func RecoverEOF[K Kind[K], E any](diag func(in Input[K]) E) Parser[K, E] {
	return Alt(
		EOF[K, E](),
		Join(SkipUntil[K, E](diag), EOF[K, E]()),
	)
}
