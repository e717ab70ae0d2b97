package lsp

import (
	"sort"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// lineIndex converts between byte offsets and LSP positions, whose
// characters count UTF-16 code units.
type lineIndex struct {
	text   string
	starts []int
}

func newLineIndex(text string) *lineIndex {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{text: text, starts: starts}
}

func (li *lineIndex) position(offset int) protocol.Position {
	offset = min(max(offset, 0), len(li.text))
	line := sort.Search(len(li.starts), func(i int) bool { return li.starts[i] > offset }) - 1
	units := 0
	for _, r := range li.text[li.starts[line]:offset] {
		units += utf16Len(r)
	}
	return protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(units)}
}

func (li *lineIndex) offset(pos protocol.Position) int {
	line := int(pos.Line)
	if line >= len(li.starts) {
		return len(li.text)
	}
	end := len(li.text)
	if line+1 < len(li.starts) {
		end = li.starts[line+1] - 1
	}
	offset := li.starts[line]
	units := 0
	for offset < end && units < int(pos.Character) {
		r, size := utf8.DecodeRuneInString(li.text[offset:])
		units += utf16Len(r)
		offset += size
	}
	return offset
}

func (li *lineIndex) rangeOf(start, end int) protocol.Range {
	return protocol.Range{Start: li.position(start), End: li.position(end)}
}

func utf16Len(r rune) int {
	if r >= 0x10000 {
		return 2
	}
	return 1
}
