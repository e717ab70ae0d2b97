package nom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/dhamidi/greennom/green"
)

type testKind uint16

const (
	tkWord testKind = iota
	tkPlus
	tkSpace
	tkError
	tkGroup
	tkRoot
)

var testKindNames = [...]string{"Word", "Plus", "Space", "Error", "Group", "Root"}

func (k testKind) ToRaw() green.Kind               { return green.Kind(k) }
func (k testKind) FromRaw(raw green.Kind) testKind { return testKind(raw) }
func (k testKind) IsTrivia() bool                  { return k == tkSpace }
func (k testKind) ErrorKind() testKind             { return tkError }
func (k testKind) String() string                  { return testKindNames[k] }

type tparser = Parser[testKind, Error]

func match(k testKind) tparser { return T[testKind, Error](k) }

func word(s string) RichToken[testKind] { return RichToken[testKind]{Kind: tkWord, Text: s} }

var (
	space = RichToken[testKind]{Kind: tkSpace, Text: " "}
	plus  = RichToken[testKind]{Kind: tkPlus, Text: "+"}
)

func sameChildren(a, b Children[testKind, Error]) bool {
	if len(a.inner) != len(b.inner) || len(a.errors) != len(b.errors) {
		return false
	}
	for i := range a.inner {
		if !green.Equal(a.inner[i], b.inner[i]) {
			return false
		}
	}
	for i := range a.errors {
		if a.errors[i] != b.errors[i] {
			return false
		}
	}
	return true
}

func TestInputPeekSkipsTrivia(t *testing.T) {
	in := NewInput([]RichToken[testKind]{space, word("a"), space, space, plus, word("b"), space})

	k, ok := in.Peek(0)
	require.True(t, ok)
	assert.Equal(t, tkWord, k)

	k, ok = in.Peek(1)
	require.True(t, ok)
	assert.Equal(t, tkPlus, k)

	k, ok = in.Peek(2)
	require.True(t, ok)
	assert.Equal(t, tkWord, k)

	_, ok = in.Peek(3)
	assert.False(t, ok)

	assert.Equal(t, 1, in.Offset())
	assert.Equal(t, 0, in.RawOffset())
	assert.False(t, in.AtEnd())
}

func TestInputAdvance(t *testing.T) {
	in := NewInput([]RichToken[testKind]{space, word("a"), space})

	rest, consumed, ok := in.Advance()
	require.True(t, ok)
	assert.Equal(t, []RichToken[testKind]{space, word("a")}, consumed)
	assert.Equal(t, 2, rest.Pos())
	assert.True(t, rest.AtEnd())
	assert.Equal(t, 3, rest.Offset())
	assert.Equal(t, " a", in.SpanText(rest))
	assert.Equal(t, "", rest.SpanText(in))

	_, _, ok = rest.Advance()
	assert.False(t, ok)

	// the original cursor is untouched
	assert.Equal(t, 0, in.Pos())
	assert.Equal(t, 3, in.Len())
}

func TestFromError(t *testing.T) {
	diag := Error{Offset: 3, Message: "missing"}
	c := FromError[testKind, Error](diag)

	require.Equal(t, 1, c.Len())
	n, ok := c.Elements()[0].(*green.Node)
	require.True(t, ok)
	assert.Equal(t, tkError.ToRaw(), n.Kind())
	assert.Equal(t, 0, n.NumChildren())
	assert.Equal(t, []Error{diag}, c.Errors())
	assert.Equal(t, "3: missing", diag.Error())
}

func TestIntoNode(t *testing.T) {
	toks := []RichToken[testKind]{word("a"), space, plus}
	c := FromTokens[testKind, Error](toks).AddError(Error{Message: "x"})
	node := c.IntoNode(tkGroup)

	require.Equal(t, 1, node.Len())
	assert.Equal(t, tkGroup.ToRaw(), node.Elements()[0].Kind())
	assert.Equal(t, "a +", node.Text())
	assert.Equal(t, c.Errors(), node.Errors())

	root, diags := node.IntoRoot(tkRoot)
	assert.Equal(t, tkRoot.ToRaw(), root.Kind())
	assert.Equal(t, "a +", root.Text())
	assert.Len(t, diags, 1)
}

func TestConcatDoesNotAlias(t *testing.T) {
	base := FromTokens[testKind, Error]([]RichToken[testKind]{word("a")})
	left := base.Concat(FromTokens[testKind, Error]([]RichToken[testKind]{word("b")}))
	right := base.Concat(FromTokens[testKind, Error]([]RichToken[testKind]{word("c")}))

	assert.Equal(t, "ab", left.Text())
	assert.Equal(t, "ac", right.Text())
	assert.Equal(t, "a", base.Text())
}

func TestAccessorsReturnCopies(t *testing.T) {
	empty := FromGreen[testKind, Error](nil, nil)
	assert.Nil(t, empty.Elements())
	assert.Nil(t, empty.Errors())

	tokA := green.NewToken(tkWord.ToRaw(), "a")
	c := FromGreen[testKind, Error]([]green.Element{tokA}, []Error{{Message: "m"}})
	elements, errs := c.Elements(), c.Errors()
	elements[0] = green.NewToken(tkWord.ToRaw(), "z")
	errs[0].Message = "changed"

	assert.Same(t, tokA, c.Elements()[0])
	assert.Equal(t, "m", c.Errors()[0].Message)
}

func genChildren() *rapid.Generator[Children[testKind, Error]] {
	return rapid.Custom(func(t *rapid.T) Children[testKind, Error] {
		var c Children[testKind, Error]
		n := rapid.IntRange(0, 4).Draw(t, "pieces")
		for i := 0; i < n; i++ {
			switch rapid.IntRange(0, 2).Draw(t, "piece") {
			case 0:
				text := rapid.StringMatching(`[a-z]{1,3}`).Draw(t, "word")
				c = c.Concat(FromTokens[testKind, Error]([]RichToken[testKind]{word(text)}))
			case 1:
				offset := rapid.IntRange(0, 100).Draw(t, "offset")
				c = c.Concat(FromError[testKind, Error](Error{Offset: offset, Message: "e"}))
			case 2:
				c = c.IntoNode(tkGroup)
			}
		}
		return c
	})
}

func TestConcatIsAssociative(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := genChildren().Draw(rt, "a")
		b := genChildren().Draw(rt, "b")
		c := genChildren().Draw(rt, "c")
		if !sameChildren(a.Concat(b).Concat(c), a.Concat(b.Concat(c))) {
			rt.Fatalf("(a+b)+c != a+(b+c)")
		}
	})
}

func TestConcatIdentity(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := genChildren().Draw(rt, "a")
		empty := Empty[testKind, Error]()
		if !sameChildren(empty.Concat(a), a) || !sameChildren(a.Concat(empty), a) {
			rt.Fatalf("empty is not an identity")
		}
	})
}

func TestIntoNodePreservesText(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := genChildren().Draw(rt, "a")
		node := a.IntoNode(tkGroup)
		if node.Text() != a.Text() {
			rt.Fatalf("text %q != %q", node.Text(), a.Text())
		}
		if len(node.Errors()) != len(a.Errors()) {
			rt.Fatalf("diagnostics changed")
		}
	})
}
