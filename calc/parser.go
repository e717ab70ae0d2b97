// Package calc is a small arithmetic language built on package nom: integer
// literals combined with +, - and *, with whitespace kept as trivia.
//
//	Additive       = Multiplicative { ( "+" | "-" ) Multiplicative } .
//	Multiplicative = Literal { "*" Literal } .
//
// Missing operands and trailing garbage are recovered into Error nodes, so
// Parse returns a tree covering the whole input for any source text.
package calc

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/greennom/ebnflex"
	"github.com/dhamidi/greennom/green"
	"github.com/dhamidi/greennom/nom"
	"github.com/dhamidi/greennom/syntax"
)

//go:embed calc.ebnf
var grammarSource string

var loadGrammar = sync.OnceValues(func() (ebnf.Grammar, error) {
	return ebnflex.ParseGrammar("calc.ebnf", strings.NewReader(grammarSource))
})

// Grammar returns the token grammar of the language.
func Grammar() (ebnf.Grammar, error) {
	return loadGrammar()
}

type Option func(*Parser)

// WithFile sets the file name used in token positions.
func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

// WithTrace logs every grammar rule attempt at debug level.
func WithTrace() Option {
	return func(p *Parser) {
		p.trace = true
	}
}

// WithCache interns every parsed tree in c, so that trees parsed with the
// same cache share their equal subtrees.
func WithCache(c *green.Cache) Option {
	return func(p *Parser) {
		p.cache = c
	}
}

type parser = nom.Parser[Kind, nom.Error]

type Parser struct {
	file  string
	trace bool
	cache *green.Cache
	root  func([]nom.RichToken[Kind]) (*syntax.Node, []nom.Error, error)
}

func NewParser(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	p.root = nom.RootNode(Root, p.source())
	return p
}

// Parse lexes and parses src. The returned tree always spans all of src;
// problems are reported as diagnostics.
func Parse(src string, opts ...Option) (*syntax.Node, []nom.Error, error) {
	return NewParser(opts...).Parse(src)
}

func (p *Parser) Parse(src string) (*syntax.Node, []nom.Error, error) {
	tokens, err := Lex(src, p.file)
	if err != nil {
		return nil, nil, err
	}
	root, diags, err := p.root(tokens)
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", p.name(), err)
	}
	if p.cache != nil {
		root = syntax.NewRoot(p.cache.Intern(root.GreenNode()).(*green.Node))
	}
	return root, diags, nil
}

func (p *Parser) name() string {
	if p.file == "" {
		return "<input>"
	}
	return p.file
}

// Lex splits src into tokens. Characters outside the language become Error
// tokens; the token texts concatenate back to src.
func Lex(src string, file string) ([]nom.RichToken[Kind], error) {
	g, err := Grammar()
	if err != nil {
		return nil, err
	}
	lexed, err := ebnflex.NewLexer(g, src, file).Tokenize()
	if err != nil {
		return nil, fmt.Errorf("lex %s: %w", file, err)
	}
	tokens := make([]nom.RichToken[Kind], 0, len(lexed))
	for _, tok := range lexed {
		switch tok.Kind {
		case ebnflex.KindEOF:
			continue
		case ebnflex.KindError:
			tokens = append(tokens, nom.RichToken[Kind]{Kind: Error, Text: tok.Literal})
		default:
			kind, ok := kindsByName[tok.Kind]
			if !ok {
				return nil, fmt.Errorf("lex %s: unknown token kind %q", file, tok.Kind)
			}
			tokens = append(tokens, nom.RichToken[Kind]{Kind: kind, Text: tok.Literal})
		}
	}
	return tokens, nil
}

func t(kind Kind) parser {
	return nom.T[Kind, nom.Error](kind)
}

func expected(what string) func(nom.Input[Kind]) nom.Error {
	return nom.Expected[Kind](what)
}

func (p *Parser) rule(name string, r parser) parser {
	if p.trace {
		return nom.Trace(name, r)
	}
	return r
}

func (p *Parser) source() parser {
	return p.rule("source", nom.Join(
		nom.Expect(p.additive(), expected("expression")),
		nom.RecoverEOF(expected("end of input")),
	))
}

func (p *Parser) additive() parser {
	multiplicative := p.multiplicative()
	return p.rule("additive", nom.Node(Additive, nom.Join(
		multiplicative,
		nom.Many0(nom.Join(
			nom.Alt(t(Add), t(Sub)),
			nom.Expect(multiplicative, expected("operand")),
		)),
	)))
}

func (p *Parser) multiplicative() parser {
	return p.rule("multiplicative", nom.Node(Multiplicative, nom.Join(
		t(Literal),
		nom.Many0(nom.Join(
			t(Mul),
			nom.Expect(t(Literal), expected("number")),
		)),
	)))
}
