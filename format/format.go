// Package format renders syntax trees and their diagnostics.
package format

import (
	"encoding"
	"strconv"

	"github.com/dhamidi/greennom/green"
	"github.com/dhamidi/greennom/nom"
	"github.com/dhamidi/greennom/syntax"
)

// Tree is a parse result ready to be encoded.
type Tree struct {
	Root        *syntax.Node
	Diagnostics []nom.Error
	// KindName names raw kinds; kinds print as numbers when nil.
	KindName func(green.Kind) string
}

func (t *Tree) kindName(k green.Kind) string {
	if t.KindName == nil {
		return strconv.Itoa(int(k))
	}
	return t.KindName(k)
}

type Encoder interface {
	encoding.TextMarshaler
	Encode(tree *Tree) error
}
