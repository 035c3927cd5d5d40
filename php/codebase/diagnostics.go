package codebase

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dhamidi/phpfront/php/parser"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Diagnostic is a syntax error located in the source. Start and End cover
// the skipped tokens, or are equal when a token was missing.
type Diagnostic struct {
	Span       parser.Span
	Start      parser.Position
	End        parser.Position
	Message    string
	Got        string
	Expected   []string
	Suggestion string
}

func (d Diagnostic) String() string {
	msg := fmt.Sprintf("%s: %s", d.Start, d.Message)
	if d.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", d.Suggestion)
	}
	return msg
}

func Diagnostics(tree *parser.Tree) []Diagnostic {
	var diags []Diagnostic
	for _, e := range parser.Errors(tree.Root) {
		diags = append(diags, diagnosticFor(tree, e))
	}
	return diags
}

func diagnosticFor(tree *parser.Tree, e *parser.ParseError) Diagnostic {
	span := significantSpan(e.Skipped)
	if span == nil {
		span = &parser.Span{Start: e.Offset, End: e.Offset}
	}
	d := Diagnostic{
		Span:  *span,
		Start: tree.Lines.Position(span.Start),
		End:   tree.Lines.Position(span.End),
	}
	for _, k := range e.Expected {
		d.Expected = append(d.Expected, k.String())
	}

	got := e.Unexpected()
	if got != nil {
		d.Got = got.Text(tree.Source)
	}
	switch {
	case got != nil && got.Kind == parser.TokenEndOfFile:
		d.Message = "unexpected end of file"
		if len(d.Expected) > 0 {
			d.Message += ", expected " + strings.Join(d.Expected, " or ")
		}
	case got != nil:
		d.Message = fmt.Sprintf("unexpected %s %s", got.Kind, quoteSnippet(d.Got))
		if len(d.Expected) > 0 {
			d.Message += ", expected " + strings.Join(d.Expected, " or ")
		}
		if got.Kind == parser.TokenName {
			d.Suggestion = SuggestKeyword(d.Got)
		}
	default:
		d.Message = e.Error()
	}
	return d
}

// significantSpan is the range from the first to the last non-trivia token,
// or nil when there is none.
func significantSpan(tokens []*parser.Token) *parser.Span {
	var span *parser.Span
	for _, t := range tokens {
		if t.Kind.IsTrivia() {
			continue
		}
		if span == nil {
			span = &parser.Span{Start: t.Offset}
		}
		span.End = t.End()
	}
	return span
}

func quoteSnippet(s string) string {
	return "'" + shorten(s, 24) + "'"
}

// shorten keeps the first line of s, cut to at most limit bytes on a rune
// boundary, and marks either cut with "...".
func shorten(s string, limit int) string {
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		s = s[:i] + "..."
	}
	if len(s) > limit {
		for limit > 0 && !utf8.RuneStart(s[limit]) {
			limit--
		}
		s = s[:limit] + "..."
	}
	return s
}

// SuggestKeyword returns the reserved word closest to name, or "" if none
// is close. Matching is case-insensitive and requires the characters of
// name to appear in order in the keyword.
func SuggestKeyword(name string) string {
	if len(name) < 2 {
		return ""
	}
	name = strings.ToLower(name)
	ranks := fuzzy.RankFind(name, parser.Keywords())
	sort.Stable(ranks)
	for _, r := range ranks {
		if r.Distance == 0 {
			continue
		}
		if r.Distance <= len(name) {
			return r.Target
		}
	}
	return ""
}
