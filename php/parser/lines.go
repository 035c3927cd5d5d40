package parser

import (
	"fmt"
	"sort"
)

type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// LineTable maps byte offsets to 1-based line and column numbers. Columns
// count bytes.
type LineTable struct {
	starts []int
	size   int
}

// newLineTable builds a table directly from source text.
func newLineTable(src []byte) *LineTable {
	starts := []int{0}
	for i := range src {
		if isLineBreak(src, i) {
			starts = append(starts, i+1)
		}
	}
	return &LineTable{starts: starts, size: len(src)}
}

func (t *LineTable) LineCount() int {
	return len(t.starts)
}

func (t *LineTable) Position(offset int) Position {
	offset = max(0, min(offset, t.size))
	line := sort.Search(len(t.starts), func(i int) bool {
		return t.starts[i] > offset
	}) - 1
	return Position{
		Offset: offset,
		Line:   line + 1,
		Column: offset - t.starts[line] + 1,
	}
}

// Offset converts a 1-based line and column back to a byte offset, clamping
// to the input.
func (t *LineTable) Offset(line, column int) int {
	if line < 1 {
		return 0
	}
	if line > len(t.starts) {
		return t.size
	}
	offset := t.starts[line-1] + max(column, 1) - 1
	if line < len(t.starts) {
		offset = min(offset, t.starts[line]-1)
	}
	return min(offset, t.size)
}
