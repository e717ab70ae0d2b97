package calc

import "github.com/dhamidi/greennom/green"

// Kind enumerates the tokens and nodes of the calculator language.
type Kind uint16

const (
	// Tokens
	Add Kind = iota
	Sub
	Mul
	Literal
	Space
	Error

	// Nodes
	Additive
	Multiplicative
	Root
)

var kindNames = map[Kind]string{
	Add:            "Add",
	Sub:            "Sub",
	Mul:            "Mul",
	Literal:        "Literal",
	Space:          "Space",
	Error:          "Error",
	Additive:       "Additive",
	Multiplicative: "Multiplicative",
	Root:           "Root",
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		m[name] = k
	}
	return m
}()

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

func (k Kind) ToRaw() green.Kind           { return green.Kind(k) }
func (k Kind) FromRaw(raw green.Kind) Kind { return Kind(raw) }
func (k Kind) IsTrivia() bool              { return k == Space }
func (k Kind) ErrorKind() Kind             { return Error }

// KindName returns the name of a raw kind, for printing trees.
func KindName(raw green.Kind) string {
	return Kind(raw).String()
}
