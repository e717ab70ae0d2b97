package format

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/greennom/calc"
	"github.com/dhamidi/greennom/nom"
	"github.com/dhamidi/greennom/syntax"
)

func parse(t *testing.T, src string) *Tree {
	t.Helper()
	root, diags, err := calc.Parse(src)
	require.NoError(t, err)
	return &Tree{Root: root, Diagnostics: diags, KindName: calc.KindName}
}

func TestTextEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTextEncoder(&buf, true).Encode(parse(t, "1 *")))

	want := `Root [0..3]
  Additive [0..3]
    Multiplicative [0..3]
      Literal [0..1] "1"
      Space [1..2] " "
      Mul [2..3] "*"
      Error [3..3]
error at 3: expected number, found end of input
`
	assert.Equal(t, want, buf.String())
}

func TestOutlineWithoutKindNames(t *testing.T) {
	tree := parse(t, "4")
	tree.KindName = nil
	assert.Equal(t, "8\n  6\n    7\n      3 \"4\"\n", Outline(tree, false))
}

func TestJSONEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONEncoder(&buf).Encode(parse(t, "2 +")))

	var got struct {
		Root struct {
			Kind     string `json:"kind"`
			Span     struct{ Start, End int }
			Children []json.RawMessage `json:"children"`
		} `json:"root"`
		Diagnostics []nom.Error `json:"diagnostics"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "Root", got.Root.Kind)
	assert.Equal(t, 3, got.Root.Span.End)
	assert.Len(t, got.Root.Children, 1)
	assert.Equal(t, []nom.Error{{Offset: 3, Message: "expected operand, found end of input"}}, got.Diagnostics)
}

func TestLineEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewLineEncoder(&buf).Encode(parse(t, "1 -")))

	want := "Root/Additive/Multiplicative\tLiteral\t0..1\t\"1\"\n" +
		"Root/Additive\tSpace\t1..2\t\" \"\n" +
		"Root/Additive\tSub\t2..3\t\"-\"\n" +
		"Root/Additive/Error\t-\t3..3\t\n" +
		"error\t3\texpected operand, found end of input\n"
	assert.Equal(t, want, buf.String())
}

func TestEncodeWithoutTree(t *testing.T) {
	encoders := []Encoder{
		NewTextEncoder(&bytes.Buffer{}, false),
		NewJSONEncoder(&bytes.Buffer{}),
		NewLineEncoder(&bytes.Buffer{}),
	}
	for _, e := range encoders {
		assert.Error(t, e.Encode(&Tree{Root: (*syntax.Node)(nil)}))
	}
}
