package ebnflex

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/ebnf"
)

const testGrammar = `
Ident = letter { letter | digit } .
If = "if" .
Number = digit { digit } .
Arrow = "->" .
Minus = "-" .
Space = " " { " " } .
Newline = "\n" .

letter = "a" … "z" | "é" .
digit = "0" … "9" .
`

func mustGrammar(t *testing.T) ebnf.Grammar {
	t.Helper()
	g, err := ParseGrammar("test.ebnf", strings.NewReader(testGrammar))
	require.NoError(t, err)
	return g
}

func TestTokenNames(t *testing.T) {
	assert.Equal(t, []string{"Arrow", "Ident", "If", "Minus", "Newline", "Number", "Space"}, TokenNames(mustGrammar(t)))
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		input string
		kinds []string
	}{
		{"", []string{KindEOF}},
		{"abc", []string{"Ident", KindEOF}},
		{"a1 -> 42", []string{"Ident", "Space", "Arrow", "Space", "Number", KindEOF}},
		{"-x", []string{"Minus", "Ident", KindEOF}},
		{"if", []string{"Ident", KindEOF}},
		{"café", []string{"Ident", KindEOF}},
		{"a?b", []string{"Ident", KindError, "Ident", KindEOF}},
		{"€", []string{KindError, KindEOF}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, err := NewLexer(mustGrammar(t), tt.input, "test").Tokenize()
			require.NoError(t, err)

			var kinds []string
			var text strings.Builder
			for _, tok := range tokens {
				kinds = append(kinds, tok.Kind)
				text.WriteString(tok.Literal)
			}
			assert.Equal(t, tt.kinds, kinds)
			assert.Equal(t, tt.input, text.String())
		})
	}
}

func TestPositions(t *testing.T) {
	tokens, err := NewLexer(mustGrammar(t), "ab\n 12", "f.txt").Tokenize()
	require.NoError(t, err)
	require.Len(t, tokens, 5)

	num := tokens[3]
	assert.Equal(t, "Number", num.Kind)
	assert.Equal(t, Position{Filename: "f.txt", Offset: 4, Line: 2, Column: 2}, num.Position)
	assert.Equal(t, 6, num.End())
	assert.Equal(t, "f.txt:2:2", num.Position.String())
	assert.Equal(t, "2:2", Position{Line: 2, Column: 2}.String())
}

func TestParseGrammarError(t *testing.T) {
	_, err := ParseGrammar("bad.ebnf", strings.NewReader(`Broken = "a"`))
	assert.Error(t, err)
}

func TestTokenizeEmptySubexpressions(t *testing.T) {
	const grammar = `
Literal = digit { digit } .
Signed = [ "+" | "-" ] digit "." { digit } .
Space = space { space } .
Word = { "x" } "y" .

digit = "0" … "9" .
space = " " | "\t" .
`
	g, err := ParseGrammar("empty.ebnf", strings.NewReader(grammar))
	require.NoError(t, err)

	tests := []struct {
		name  string
		input string
		kinds []string
	}{
		{"single digit", "1", []string{"Literal", KindEOF}},
		{"single space", " ", []string{"Space", KindEOF}},
		{"empty option and repetition", "7.", []string{"Signed", KindEOF}},
		{"present option", "-7.25", []string{"Signed", KindEOF}},
		{"leading repetition empty", "y", []string{"Word", KindEOF}},
		{"mixed", "1 2\t3", []string{"Literal", "Space", "Literal", "Space", "Literal", KindEOF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := NewLexer(g, tt.input, "empty").Tokenize()
			require.NoError(t, err)

			var kinds []string
			for _, tok := range tokens {
				kinds = append(kinds, tok.Kind)
			}
			assert.Equal(t, tt.kinds, kinds)
		})
	}
}

func TestEmptyMatchIsNotAToken(t *testing.T) {
	g, err := ParseGrammar("opt.ebnf", strings.NewReader(`Maybe = [ "a" ] .`))
	require.NoError(t, err)

	tokens, err := NewLexer(g, "b", "opt").Tokenize()
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, KindError, tokens[0].Kind)
	assert.Equal(t, "b", tokens[0].Literal)
}
