package format

import (
	"bytes"
	"io"

	"github.com/dhamidi/phpfront/php/parser"
)

// DumpEncoder writes the indented text rendering of parser.Dump.
type DumpEncoder struct {
	w    io.Writer
	tree *parser.Tree
}

func NewDumpEncoder(w io.Writer) *DumpEncoder {
	return &DumpEncoder{w: w}
}

func (e *DumpEncoder) Encode(tree *parser.Tree) error {
	e.tree = tree
	text, err := e.MarshalText()
	return write(e.w, text, err)
}

func (e *DumpEncoder) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	if err := parser.Dump(&buf, e.tree.Root, e.tree.Source); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
