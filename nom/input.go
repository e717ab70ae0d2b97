package nom

import "strings"

// Input is an immutable cursor over a slice of lexed tokens. Methods that
// move the cursor return a new Input; the receiver is never changed, so any
// number of alternatives can be tried from the same Input.
type Input[K Kind[K]] struct {
	tokens  []RichToken[K]
	offsets []int // offsets[i] is the byte offset of tokens[i]; one extra entry for the end
	pos     int
}

// NewInput returns a cursor at the start of tokens. The tokens are borrowed
// and must not be modified while the Input or anything derived from it is
// in use.
func NewInput[K Kind[K]](tokens []RichToken[K]) Input[K] {
	offsets := make([]int, len(tokens)+1)
	for i, tok := range tokens {
		offsets[i+1] = offsets[i] + len(tok.Text)
	}
	return Input[K]{tokens: tokens, offsets: offsets}
}

// Pos returns the index of the next token, trivia included.
func (in Input[K]) Pos() int { return in.pos }

// Len returns the number of tokens left, trivia included.
func (in Input[K]) Len() int { return len(in.tokens) - in.pos }

// Rest returns the unconsumed tokens.
func (in Input[K]) Rest() []RichToken[K] { return in.tokens[in.pos:] }

// nextSignificant returns the index of the first non-trivia token at or
// after from, or len(tokens).
func (in Input[K]) nextSignificant(from int) int {
	for from < len(in.tokens) && in.tokens[from].Kind.IsTrivia() {
		from++
	}
	return from
}

// Peek returns the kind of the n-th next non-trivia token, counting from 0.
// It reports false when fewer than n+1 non-trivia tokens remain.
func (in Input[K]) Peek(n int) (K, bool) {
	i := in.nextSignificant(in.pos)
	for ; n > 0 && i < len(in.tokens); n-- {
		i = in.nextSignificant(i + 1)
	}
	if i >= len(in.tokens) {
		var zero K
		return zero, false
	}
	return in.tokens[i].Kind, true
}

// At reports whether the next non-trivia token has the given kind.
func (in Input[K]) At(kind K) bool {
	k, ok := in.Peek(0)
	return ok && k == kind
}

// AtEnd reports whether no non-trivia token remains.
func (in Input[K]) AtEnd() bool {
	return in.nextSignificant(in.pos) >= len(in.tokens)
}

// Advance consumes the next non-trivia token. It returns the cursor after
// it and the consumed tokens: any leading trivia followed by the token
// itself. It reports false at end of input.
func (in Input[K]) Advance() (Input[K], []RichToken[K], bool) {
	i := in.nextSignificant(in.pos)
	if i >= len(in.tokens) {
		return in, nil, false
	}
	consumed := in.tokens[in.pos : i+1]
	in.pos = i + 1
	return in, consumed, true
}

// skipTrivia consumes leading trivia only.
func (in Input[K]) skipTrivia() (Input[K], []RichToken[K]) {
	i := in.nextSignificant(in.pos)
	consumed := in.tokens[in.pos:i]
	in.pos = i
	return in, consumed
}

// Offset returns the byte offset of the next non-trivia token, or of the
// end of the input when none remains.
func (in Input[K]) Offset() int {
	return in.offsets[in.nextSignificant(in.pos)]
}

// RawOffset returns the byte offset of the next token, trivia included.
func (in Input[K]) RawOffset() int {
	return in.offsets[in.pos]
}

// SpanText returns the source text between in and a later cursor to over
// the same tokens.
func (in Input[K]) SpanText(to Input[K]) string {
	if to.pos <= in.pos {
		return ""
	}
	var b strings.Builder
	b.Grow(to.offsets[to.pos] - in.offsets[in.pos])
	for _, tok := range in.tokens[in.pos:to.pos] {
		b.WriteString(tok.Text)
	}
	return b.String()
}
