// Package ebnflex provides lexical scanning based on EBNF grammars.
//
// Productions whose name starts with an uppercase letter are tokens; the
// others are helpers that tokens may refer to. The lexer is lossless: every
// byte of the input ends up in exactly one token, and bytes that no token
// production matches become ERROR tokens one character at a time.
package ebnflex

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tliron/commonlog"
	"golang.org/x/exp/ebnf"
)

const (
	// KindEOF is the kind of the token returned at the end of input.
	KindEOF = "EOF"
	// KindError is the kind of a character no token production matches.
	KindError = "ERROR"
)

var log = commonlog.GetLogger("greennom.ebnflex")

// Position represents a location in source code.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token represents a lexical token with its position. Literal is a slice of
// the lexer's input.
type Token struct {
	Kind     string
	Literal  string
	Position Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s %q", t.Position, t.Kind, t.Literal)
}

// End returns the byte offset just past the token.
func (t Token) End() int {
	return t.Position.Offset + len(t.Literal)
}

// memoKey is used for memoization of match results.
type memoKey struct {
	name   string
	offset int
}

// Lexer tokenizes input based on an EBNF grammar.
type Lexer struct {
	grammar  ebnf.Grammar
	names    []string // token productions, sorted
	input    string
	filename string
	pos      int
	line     int
	column   int
	memo     map[memoKey]match // outcome by production and offset
	visiting map[memoKey]bool  // cycle detection
}

// NewLexer creates a lexer for the given grammar and input.
func NewLexer(grammar ebnf.Grammar, input string, filename string) *Lexer {
	return &Lexer{
		grammar:  grammar,
		names:    TokenNames(grammar),
		input:    input,
		filename: filename,
		line:     1,
		column:   1,
		memo:     make(map[memoKey]match),
		visiting: make(map[memoKey]bool),
	}
}

// LoadGrammar loads an EBNF grammar from a file.
func LoadGrammar(filename string) (ebnf.Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()

	return ParseGrammar(filename, f)
}

// ParseGrammar parses an EBNF grammar read from r.
func ParseGrammar(filename string, r io.Reader) (ebnf.Grammar, error) {
	grammar, err := ebnf.Parse(filename, r)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	log.Debugf("loaded grammar %s with %d productions", filename, len(grammar))
	return grammar, nil
}

// TokenNames returns the names of the token productions of grammar in the
// order the lexer tries them.
func TokenNames(grammar ebnf.Grammar) []string {
	var names []string
	for name, prod := range grammar {
		if prod.Expr == nil || !isTokenName(name) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func isTokenName(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}

// Position returns the current position in the input.
func (l *Lexer) Position() Position {
	return Position{
		Filename: l.filename,
		Offset:   l.pos,
		Line:     l.line,
		Column:   l.column,
	}
}

func (l *Lexer) advance(n int) {
	for _, ch := range l.input[l.pos : l.pos+n] {
		if ch == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
	}
	l.pos += n
}

// NextToken returns the next token from the input. It tries every token
// production and keeps the longest match; on equal lengths the production
// whose name sorts first wins. At the end of input it returns an EOF token
// and io.EOF.
func (l *Lexer) NextToken() (Token, error) {
	tok := Token{Position: l.Position()}
	if l.pos >= len(l.input) {
		tok.Kind = KindEOF
		return tok, io.EOF
	}

	kind, n := l.longestMatch()
	if n == 0 {
		// lossless: an unknown character becomes a token of its own
		kind = KindError
		_, n = utf8.DecodeRuneInString(l.input[l.pos:])
	}
	tok.Kind = kind
	tok.Literal = l.input[l.pos : l.pos+n]
	l.advance(n)
	return tok, nil
}

// longestMatch returns the token production matching the most bytes at the
// current position. Productions that match nothing or only the empty string
// are not candidates.
func (l *Lexer) longestMatch() (kind string, n int) {
	// memoized outcomes are only valid for one starting position
	clear(l.memo)
	for _, name := range l.names {
		clear(l.visiting)
		if m, ok := l.tryMatch(l.grammar[name].Expr, l.pos); ok && m > n {
			kind, n = name, m
		}
	}
	return kind, n
}

// tryMatch reports how many bytes expr consumes at offset. A successful
// match may be empty; ok is false only when expr cannot match at all.
func (l *Lexer) tryMatch(expr ebnf.Expression, offset int) (n int, ok bool) {
	switch e := expr.(type) {
	case *ebnf.Token:
		if !strings.HasPrefix(l.input[offset:], e.String) {
			return 0, false
		}
		return len(e.String), true

	case *ebnf.Range:
		return l.tryMatchRange(e.Begin.String, e.End.String, offset)

	case ebnf.Sequence:
		for _, item := range e {
			m, matched := l.tryMatch(item, offset+n)
			if !matched {
				return 0, false
			}
			n += m
		}
		return n, true

	case ebnf.Alternative:
		// longest alternative wins; an empty match still counts as a match
		for _, alt := range e {
			if m, matched := l.tryMatch(alt, offset); matched && (!ok || m > n) {
				n, ok = m, true
			}
		}
		return n, ok

	case *ebnf.Repetition:
		for {
			m, matched := l.tryMatch(e.Body, offset+n)
			if !matched || m == 0 {
				return n, true
			}
			n += m
		}

	case *ebnf.Option:
		m, _ := l.tryMatch(e.Body, offset)
		return m, true

	case *ebnf.Group:
		return l.tryMatch(e.Body, offset)

	case *ebnf.Name:
		return l.tryMatchName(e.String, offset)
	}
	return 0, false
}

// match is a memoized tryMatch outcome.
type match struct {
	n  int
	ok bool
}

func (l *Lexer) tryMatchName(name string, offset int) (int, bool) {
	key := memoKey{name: name, offset: offset}
	if m, seen := l.memo[key]; seen {
		return m.n, m.ok
	}
	prod := l.grammar[name]
	if l.visiting[key] || prod == nil || prod.Expr == nil {
		// a production re-entered at the same offset is left recursive
		return 0, false
	}

	l.visiting[key] = true
	n, ok := l.tryMatch(prod.Expr, offset)
	delete(l.visiting, key)

	l.memo[key] = match{n: n, ok: ok}
	return n, ok
}

// tryMatchRange matches a single character in a range such as "a" … "z".
func (l *Lexer) tryMatchRange(begin, end string, offset int) (int, bool) {
	if offset >= len(l.input) {
		return 0, false
	}
	lo, loSize := utf8.DecodeRuneInString(begin)
	hi, hiSize := utf8.DecodeRuneInString(end)
	if loSize != len(begin) || hiSize != len(end) {
		return 0, false
	}
	ch, size := utf8.DecodeRuneInString(l.input[offset:])
	if ch < lo || ch > hi {
		return 0, false
	}
	return size, true
}

// Tokenize reads all tokens from input. The last token is always the EOF
// token.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err == io.EOF {
			tokens = append(tokens, tok)
			break
		}
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}
