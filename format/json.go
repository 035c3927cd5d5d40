package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/phpfront/php/codebase"
	"github.com/dhamidi/phpfront/php/parser"
)

// JSONEncoder writes a summary of a file: its declarations and its syntax
// errors, without the tree itself.
type JSONEncoder struct {
	w    io.Writer
	tree *parser.Tree
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(tree *parser.Tree) error {
	e.tree = tree
	text, err := e.MarshalText()
	return write(e.w, append(text, '\n'), err)
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(e.buildSummary(), "", "  ")
}

type jsonSummary struct {
	File        string           `json:"file,omitempty"`
	Lines       int              `json:"lines"`
	Tokens      int              `json:"tokens"`
	Symbols     []jsonSymbol     `json:"symbols"`
	Diagnostics []jsonDiagnostic `json:"diagnostics"`
}

type jsonSymbol struct {
	Kind      string `json:"kind"`
	Name      string `json:"name"`
	Container string `json:"container,omitempty"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
}

type jsonDiagnostic struct {
	Line       int      `json:"line"`
	Column     int      `json:"column"`
	EndLine    int      `json:"endLine"`
	EndColumn  int      `json:"endColumn"`
	Message    string   `json:"message"`
	Expected   []string `json:"expected,omitempty"`
	Suggestion string   `json:"suggestion,omitempty"`
}

func (e *JSONEncoder) buildSummary() jsonSummary {
	t := e.tree
	s := jsonSummary{
		File:        t.File,
		Lines:       t.Lines.LineCount(),
		Tokens:      len(parser.Tokens(t.Root)),
		Symbols:     []jsonSymbol{},
		Diagnostics: []jsonDiagnostic{},
	}

	for _, sym := range codebase.Symbols(t) {
		pos := t.Lines.Position(sym.NameSpan.Start)
		s.Symbols = append(s.Symbols, jsonSymbol{
			Kind:      sym.Kind.String(),
			Name:      sym.Name,
			Container: sym.Container,
			Line:      pos.Line,
			Column:    pos.Column,
		})
	}

	for _, d := range codebase.Diagnostics(t) {
		s.Diagnostics = append(s.Diagnostics, jsonDiagnostic{
			Line:       d.Start.Line,
			Column:     d.Start.Column,
			EndLine:    d.End.Line,
			EndColumn:  d.End.Column,
			Message:    d.Message,
			Expected:   d.Expected,
			Suggestion: d.Suggestion,
		})
	}
	return s
}
