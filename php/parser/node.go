package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Node is one of *Phrase, *Token or *ParseError.
type Node interface {
	isNode()
}

func (*Phrase) isNode()     {}
func (*Token) isNode()      {}
func (*ParseError) isNode() {}

type Phrase struct {
	Kind     PhraseKind
	Children []Node
}

func (p *Phrase) AddChild(child Node) {
	if child != nil {
		p.Children = append(p.Children, child)
	}
}

func (p *Phrase) FirstChildOfKind(kind PhraseKind) *Phrase {
	for _, child := range p.Children {
		if c, ok := child.(*Phrase); ok && c.Kind == kind {
			return c
		}
	}
	return nil
}

func (p *Phrase) ChildrenOfKind(kind PhraseKind) []*Phrase {
	var result []*Phrase
	for _, child := range p.Children {
		if c, ok := child.(*Phrase); ok && c.Kind == kind {
			result = append(result, c)
		}
	}
	return result
}

// FirstTokenOfKind returns the first direct child token of the given kind.
func (p *Phrase) FirstTokenOfKind(kind TokenKind) *Token {
	for _, child := range p.Children {
		if t, ok := child.(*Token); ok && t.Kind == kind {
			return t
		}
	}
	return nil
}

// ParseError marks a recovered syntax error. Skipped holds the tokens that
// were consumed while resynchronising, trivia included; it is empty when a
// required token was simply missing. Offset is where the error was detected.
type ParseError struct {
	Offset   int
	Skipped  []*Token
	Expected []TokenKind
}

func (e *ParseError) Error() string {
	var b strings.Builder
	switch {
	case len(e.Skipped) > 0 && len(e.Expected) > 0:
		fmt.Fprintf(&b, "unexpected %s, expected %s", e.Unexpected().Kind, kindList(e.Expected))
	case len(e.Skipped) > 0:
		fmt.Fprintf(&b, "unexpected %s", e.Unexpected().Kind)
	case len(e.Expected) > 0:
		fmt.Fprintf(&b, "missing %s", kindList(e.Expected))
	default:
		b.WriteString("syntax error")
	}
	return b.String()
}

// Unexpected returns the first significant skipped token, or nil.
func (e *ParseError) Unexpected() *Token {
	for _, t := range e.Skipped {
		if !t.Kind.IsTrivia() {
			return t
		}
	}
	if len(e.Skipped) > 0 {
		return e.Skipped[0]
	}
	return nil
}

func kindList(kinds []TokenKind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return strings.Join(names, " or ")
}

type Span struct {
	Start int
	End   int
}

func (s Span) Len() int {
	return s.End - s.Start
}

func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset <= s.End
}

// FirstToken returns the first token under n, or nil if n covers no tokens.
func FirstToken(n Node) *Token {
	switch n := n.(type) {
	case *Token:
		return n
	case *ParseError:
		if len(n.Skipped) > 0 {
			return n.Skipped[0]
		}
	case *Phrase:
		for _, child := range n.Children {
			if t := FirstToken(child); t != nil {
				return t
			}
		}
	}
	return nil
}

func LastToken(n Node) *Token {
	switch n := n.(type) {
	case *Token:
		return n
	case *ParseError:
		if len(n.Skipped) > 0 {
			return n.Skipped[len(n.Skipped)-1]
		}
	case *Phrase:
		for i := len(n.Children) - 1; i >= 0; i-- {
			if t := LastToken(n.Children[i]); t != nil {
				return t
			}
		}
	}
	return nil
}

// SpanOf derives the byte range covered by n from its first and last tokens.
// A ParseError without skipped tokens has an empty span at its Offset. A
// phrase without tokens has no span.
func SpanOf(n Node) (Span, bool) {
	first, last := FirstToken(n), LastToken(n)
	if first == nil {
		if e, ok := n.(*ParseError); ok {
			return Span{Start: e.Offset, End: e.Offset}, true
		}
		return Span{}, false
	}
	return Span{Start: first.Offset, End: last.End()}, true
}

// Dump writes an indented rendering of n. Token text is quoted.
func Dump(w io.Writer, n Node, src []byte) error {
	var b strings.Builder
	dumpIndent(&b, n, src, 0)
	_, err := io.WriteString(w, b.String())
	return err
}

func dumpIndent(b *strings.Builder, n Node, src []byte, indent int) {
	prefix := strings.Repeat("  ", indent)
	switch n := n.(type) {
	case *Phrase:
		b.WriteString(prefix + n.Kind.String() + "\n")
		for _, child := range n.Children {
			dumpIndent(b, child, src, indent+1)
		}
	case *Token:
		b.WriteString(prefix + n.Kind.String() + " " + strconv.Quote(n.Text(src)) + "\n")
	case *ParseError:
		b.WriteString(prefix + "ParseError @" + strconv.Itoa(n.Offset) + " " + n.Error() + "\n")
		for _, t := range n.Skipped {
			dumpIndent(b, t, src, indent+1)
		}
	}
}
