// Package nom is a resilient parser-combinator engine that builds lossless
// concrete syntax trees.
//
// Every combinator returns a Children fragment: the green elements built so
// far plus the diagnostics collected while building them. Failure is a
// local, non-consuming backtrack signal used by Alt and Many0; diagnostics
// are data carried in successful fragments. A grammar decides per rule
// whether unmatched input backtracks or is absorbed into an error node (see
// Expect and RecoverEOF), so a parse can always produce a complete tree.
//
// A grammar is a set of functions composed from the primitives:
//
//	func multiplicative(in nom.Input[Kind]) (nom.Input[Kind], nom.Children[Kind, nom.Error], bool) {
//		return nom.Node(Multiplicative, nom.Join(
//			nom.T[Kind, nom.Error](Literal),
//			nom.Many0(nom.Join(nom.T[Kind, nom.Error](Mul), nom.T[Kind, nom.Error](Literal))),
//		))(in)
//	}
//
// and is driven by RootNode.
package nom

import "github.com/dhamidi/greennom/green"

// Kind is the capability a token/node vocabulary provides to the engine.
// It is implemented by the vocabulary type itself, usually a small integer
// enumeration. FromRaw and ErrorKind do not depend on the receiver.
type Kind[K any] interface {
	comparable

	// ToRaw converts the kind to the compact ordinal stored in green records.
	ToRaw() green.Kind
	// FromRaw converts an ordinal produced by ToRaw back into a kind.
	FromRaw(raw green.Kind) K
	// IsTrivia reports whether tokens of this kind are skipped by lookahead.
	IsTrivia() bool
	// ErrorKind returns the kind used for synthesized error nodes.
	ErrorKind() K
}

// KindOf returns the vocabulary kind of a green ordinal.
func KindOf[K Kind[K]](raw green.Kind) K {
	var k K
	return k.FromRaw(raw)
}

func errorKind[K Kind[K]]() K {
	var k K
	return k.ErrorKind()
}

// RichToken is a lexed token: its kind and the exact source text it covers.
type RichToken[K Kind[K]] struct {
	Kind K
	Text string
}
