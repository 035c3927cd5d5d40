package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/phpfront/php/parser"
)

// ASTJSONEncoder writes the tree as nested JSON objects carrying line and
// column positions and token text. Whitespace and comments are left out
// unless IncludeTrivia is set.
type ASTJSONEncoder struct {
	w             io.Writer
	tree          *parser.Tree
	IncludeTrivia bool
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(tree *parser.Tree) error {
	e.tree = tree
	text, err := e.MarshalText()
	return write(e.w, append(text, '\n'), err)
}

func (e *ASTJSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(e.nodeToJSON(e.tree.Root), "", "  ")
}

type astJSONNode struct {
	Kind     string         `json:"kind"`
	Span     *astJSONSpan   `json:"span,omitempty"`
	Token    *string        `json:"token,omitempty"`
	Error    *astJSONError  `json:"error,omitempty"`
	Children []*astJSONNode `json:"children,omitempty"`
}

type astJSONSpan struct {
	Start astJSONPosition `json:"start"`
	End   astJSONPosition `json:"end"`
}

type astJSONPosition struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

type astJSONError struct {
	Message  string   `json:"message"`
	Expected []string `json:"expected,omitempty"`
	Got      string   `json:"got,omitempty"`
}

func (e *ASTJSONEncoder) nodeToJSON(n parser.Node) *astJSONNode {
	jn := &astJSONNode{}
	if span, ok := parser.SpanOf(n); ok {
		jn.Span = &astJSONSpan{
			Start: e.position(span.Start),
			End:   e.position(span.End),
		}
	}

	switch n := n.(type) {
	case *parser.Phrase:
		jn.Kind = n.Kind.String()
		for _, child := range n.Children {
			if t, ok := child.(*parser.Token); ok && !e.IncludeTrivia && t.Kind.IsTrivia() {
				continue
			}
			jn.Children = append(jn.Children, e.nodeToJSON(child))
		}
	case *parser.Token:
		jn.Kind = n.Kind.String()
		text := n.Text(e.tree.Source)
		jn.Token = &text
	case *parser.ParseError:
		jn.Kind = "Error"
		jn.Error = &astJSONError{Message: n.Error()}
		for _, k := range n.Expected {
			jn.Error.Expected = append(jn.Error.Expected, k.String())
		}
		if got := n.Unexpected(); got != nil {
			jn.Error.Got = got.Text(e.tree.Source)
		}
		for _, t := range n.Skipped {
			if e.IncludeTrivia || !t.Kind.IsTrivia() {
				jn.Children = append(jn.Children, e.nodeToJSON(t))
			}
		}
	}
	return jn
}

func (e *ASTJSONEncoder) position(offset int) astJSONPosition {
	p := e.tree.Lines.Position(offset)
	return astJSONPosition{Offset: p.Offset, Line: p.Line, Column: p.Column}
}
