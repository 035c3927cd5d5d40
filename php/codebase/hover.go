package codebase

import (
	"fmt"
	"strings"

	"github.com/dhamidi/phpfront/php/parser"
)

// Describe renders the node at offset and the phrases enclosing it, from
// the innermost outwards, as Markdown.
func Describe(f *File, offset int) string {
	if f == nil || f.Tree == nil {
		return ""
	}
	node, ancestors := parser.NodeAt(f.Tree.Root, offset)
	if node == nil {
		return ""
	}

	var b strings.Builder
	switch n := node.(type) {
	case *parser.Token:
		fmt.Fprintf(&b, "**%s** `%s`\n", n.Kind, snippet(n.Text(f.Source())))
		if len(n.Modes) > 0 {
			modes := make([]string, len(n.Modes))
			for i, m := range n.Modes {
				modes[i] = m.String()
			}
			fmt.Fprintf(&b, "\nmodes: %s\n", strings.Join(modes, " > "))
		}
	case *parser.ParseError:
		fmt.Fprintf(&b, "**syntax error**: %s\n", n.Error())
		if s := SuggestForError(f, n); s != "" {
			fmt.Fprintf(&b, "\ndid you mean `%s`?\n", s)
		}
	}

	if len(ancestors) > 0 {
		kinds := make([]string, 0, len(ancestors))
		for i := len(ancestors) - 1; i >= 0; i-- {
			kinds = append(kinds, ancestors[i].Kind.String())
		}
		fmt.Fprintf(&b, "\n%s\n", strings.Join(kinds, " < "))
	}
	return b.String()
}

// SuggestForError returns a keyword suggestion for an error that skipped a
// name.
func SuggestForError(f *File, e *parser.ParseError) string {
	got := e.Unexpected()
	if got == nil || got.Kind != parser.TokenName {
		return ""
	}
	return SuggestKeyword(got.Text(f.Source()))
}

func (f *File) Source() []byte {
	if f.Tree != nil {
		return f.Tree.Source
	}
	return f.Content
}

func snippet(s string) string {
	return shorten(strings.ReplaceAll(s, "`", "'"), 40)
}
