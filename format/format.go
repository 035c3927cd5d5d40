package format

import (
	"encoding"
	"fmt"
	"io"
	"slices"

	"github.com/dhamidi/phpfront/php/parser"
)

// Encoder renders a parsed file. Encode remembers the tree so that
// MarshalText can render it again.
type Encoder interface {
	encoding.TextMarshaler
	Encode(tree *parser.Tree) error
}

var encoders = map[string]func(io.Writer) Encoder{
	"json":    func(w io.Writer) Encoder { return NewASTJSONEncoder(w) },
	"dump":    func(w io.Writer) Encoder { return NewDumpEncoder(w) },
	"tokens":  func(w io.Writer) Encoder { return NewLineEncoder(w) },
	"summary": func(w io.Writer) Encoder { return NewJSONEncoder(w) },
}

// Names lists the formats accepted by New.
func Names() []string {
	names := make([]string, 0, len(encoders))
	for name := range encoders {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func New(name string, w io.Writer) (Encoder, error) {
	newEncoder, ok := encoders[name]
	if !ok {
		return nil, fmt.Errorf("unknown format %q, want one of %v", name, Names())
	}
	return newEncoder(w), nil
}

func write(w io.Writer, text []byte, err error) error {
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}
