package codebase

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/dhamidi/phpfront/php/parser"
)

func TestDiagnosticsUnexpectedName(t *testing.T) {
	tree := parser.Parse([]byte("<?php\nclass A exten B {}\n"))
	diags := Diagnostics(tree)
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", len(diags), diags)
	}
	d := diags[0]

	if d.Span != (parser.Span{Start: 14, End: 19}) {
		t.Errorf("Span = %+v, want {14 19}", d.Span)
	}
	if d.Start.Line != 2 || d.Start.Column != 9 {
		t.Errorf("Start = %s, want 2:9", d.Start)
	}
	if d.End.Line != 2 || d.End.Column != 14 {
		t.Errorf("End = %s, want 2:14", d.End)
	}
	if d.Got != "exten" {
		t.Errorf("Got = %q, want %q", d.Got, "exten")
	}
	if d.Suggestion != "extends" {
		t.Errorf("Suggestion = %q, want %q", d.Suggestion, "extends")
	}
	if !strings.HasPrefix(d.Message, "unexpected Name 'exten', expected ") {
		t.Errorf("Message = %q", d.Message)
	}
	if !strings.Contains(d.String(), `did you mean "extends"?`) {
		t.Errorf("String() = %q, want a suggestion", d.String())
	}
}

func TestDiagnosticsMissingToken(t *testing.T) {
	tree := parser.Parse([]byte("<?php echo 1"))
	diags := Diagnostics(tree)
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", len(diags), diags)
	}
	d := diags[0]
	if d.Message != "missing Semicolon" {
		t.Errorf("Message = %q, want %q", d.Message, "missing Semicolon")
	}
	if d.Span.Len() != 0 || d.Span.Start != 12 {
		t.Errorf("Span = %+v, want empty at 12", d.Span)
	}
	if d.Got != "" || d.Suggestion != "" {
		t.Errorf("Got = %q, Suggestion = %q, want both empty", d.Got, d.Suggestion)
	}
	if len(d.Expected) != 1 || d.Expected[0] != "Semicolon" {
		t.Errorf("Expected = %v, want [Semicolon]", d.Expected)
	}
}

func TestDiagnosticsValidSource(t *testing.T) {
	tree := parser.Parse([]byte("<?php\nnamespace A;\nfunction f(int $x): int { return $x ** 2; }\n"))
	if diags := Diagnostics(tree); len(diags) != 0 {
		t.Errorf("got diagnostics %v, want none", diags)
	}
}

func TestSuggestKeyword(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"exten", "extends"},
		{"fuction", "function"},
		{"implemnts", "implements"},
		{"EXTEN", "extends"},
		{"x", ""},
		{"zzzz", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SuggestKeyword(tt.name); got != tt.want {
				t.Errorf("SuggestKeyword(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestQuoteSnippet(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"abc", "'abc'"},
		{"a\nb", "'a...'"},
		{strings.Repeat("x", 30), "'" + strings.Repeat("x", 24) + "...'"},
		{"a" + strings.Repeat("é", 12), "'a" + strings.Repeat("é", 11) + "...'"},
		{"x" + strings.Repeat("😀", 6), "'x" + strings.Repeat("😀", 5) + "...'"},
	}
	for _, tt := range tests {
		got := quoteSnippet(tt.in)
		if got != tt.want {
			t.Errorf("quoteSnippet(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("quoteSnippet(%q) = %q, not valid UTF-8", tt.in, got)
		}
	}
}
