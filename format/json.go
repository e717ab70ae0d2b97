package format

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dhamidi/greennom/syntax"
)

type JSONEncoder struct {
	w    io.Writer
	tree *Tree
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(tree *Tree) error {
	e.tree = tree
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	if e.tree == nil || e.tree.Root == nil {
		return nil, fmt.Errorf("format: no tree to encode")
	}
	out := jsonTree{
		Root:        elementToJSON(e.tree, e.tree.Root),
		Diagnostics: make([]jsonDiagnostic, 0, len(e.tree.Diagnostics)),
	}
	for _, d := range e.tree.Diagnostics {
		out.Diagnostics = append(out.Diagnostics, jsonDiagnostic{Offset: d.Offset, Message: d.Message})
	}
	return json.MarshalIndent(out, "", "  ")
}

type jsonTree struct {
	Root        *jsonElement     `json:"root"`
	Diagnostics []jsonDiagnostic `json:"diagnostics"`
}

type jsonElement struct {
	Kind     string         `json:"kind"`
	Span     jsonSpan       `json:"span"`
	Text     *string        `json:"text,omitempty"`
	Children []*jsonElement `json:"children,omitempty"`
}

type jsonSpan struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type jsonDiagnostic struct {
	Offset  int    `json:"offset"`
	Message string `json:"message"`
}

func elementToJSON(t *Tree, e syntax.Element) *jsonElement {
	r := e.TextRange()
	je := &jsonElement{
		Kind: t.kindName(e.Kind()),
		Span: jsonSpan{Start: r.Start, End: r.End},
	}

	node, ok := e.(*syntax.Node)
	if !ok {
		text := e.Text()
		je.Text = &text
		return je
	}

	for _, child := range node.ChildrenWithTokens() {
		je.Children = append(je.Children, elementToJSON(t, child))
	}
	return je
}
