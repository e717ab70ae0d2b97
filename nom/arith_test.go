package nom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/greennom/green"
	"github.com/dhamidi/greennom/nom"
	"github.com/dhamidi/greennom/syntax"
)

type arith uint16

const (
	aAdd arith = iota
	aSub
	aMul
	aLiteral
	aSpace
	aError
	aAdditive
	aMultiplicative
	aRoot
)

func (k arith) ToRaw() green.Kind             { return green.Kind(k) }
func (k arith) FromRaw(raw green.Kind) arith { return arith(raw) }
func (k arith) IsTrivia() bool                { return k == aSpace }
func (k arith) ErrorKind() arith              { return aError }

type arithParser = nom.Parser[arith, nom.Error]

func tok(kind arith) arithParser { return nom.T[arith, nom.Error](kind) }

func arithGrammar() func([]nom.RichToken[arith]) (*syntax.Node, []nom.Error, error) {
	operand := nom.Expect(multiplicative(), nom.Expected[arith]("operand"))
	additive := nom.Node(aAdditive, nom.Join(
		multiplicative(),
		nom.Many0(nom.Join(nom.Alt(tok(aAdd), tok(aSub)), operand)),
	))
	return nom.RootNode(aRoot, nom.Join(additive, nom.EOF[arith, nom.Error]()))
}

func multiplicative() arithParser {
	return nom.Node(aMultiplicative, nom.Join(
		tok(aLiteral),
		nom.Many0(nom.Join(tok(aMul), tok(aLiteral))),
	))
}

func leaf(kind arith, text string) green.Element { return green.NewToken(kind.ToRaw(), text) }

func node(kind arith, children ...green.Element) *green.Node {
	return green.NewNode(kind.ToRaw(), children)
}

func TestArithmeticTree(t *testing.T) {
	sp := nom.RichToken[arith]{Kind: aSpace, Text: " "}
	tokens := []nom.RichToken[arith]{
		{Kind: aLiteral, Text: "10"}, sp, {Kind: aSub, Text: "-"}, sp,
		{Kind: aLiteral, Text: "2"}, sp, {Kind: aMul, Text: "*"}, sp, {Kind: aLiteral, Text: "3"},
	}

	root, diags, err := arithGrammar()(tokens)
	require.NoError(t, err)
	assert.Empty(t, diags)

	space := leaf(aSpace, " ")
	want := node(aRoot,
		node(aAdditive,
			node(aMultiplicative, leaf(aLiteral, "10")),
			space, leaf(aSub, "-"),
			node(aMultiplicative,
				space, leaf(aLiteral, "2"),
				space, leaf(aMul, "*"),
				space, leaf(aLiteral, "3"),
			),
		),
	)
	assert.True(t, green.Equal(want, root.GreenNode()), "got %q", root.Text())
	assert.Equal(t, "10 - 2 * 3", root.Text())
}

func TestArithmeticMissingOperand(t *testing.T) {
	tokens := []nom.RichToken[arith]{
		{Kind: aLiteral, Text: "10"}, {Kind: aSpace, Text: " "}, {Kind: aAdd, Text: "+"},
	}

	root, diags, err := arithGrammar()(tokens)
	require.NoError(t, err)

	want := node(aRoot,
		node(aAdditive,
			node(aMultiplicative, leaf(aLiteral, "10")),
			leaf(aSpace, " "), leaf(aAdd, "+"),
			node(aError),
		),
	)
	assert.True(t, green.Equal(want, root.GreenNode()), "got %q", root.Text())
	assert.Equal(t, "10 +", root.Text())
	assert.Equal(t, []nom.Error{{Offset: 4, Message: "expected operand, found end of input"}}, diags)
}
