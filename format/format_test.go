package format

import (
	"bytes"
	"encoding/json"
	"slices"
	"strings"
	"testing"

	"github.com/dhamidi/phpfront/php/parser"
)

func TestNew(t *testing.T) {
	for _, name := range Names() {
		enc, err := New(name, &bytes.Buffer{})
		if err != nil || enc == nil {
			t.Errorf("New(%q) = %v, %v", name, enc, err)
		}
	}
	if _, err := New("xml", &bytes.Buffer{}); err == nil {
		t.Errorf("New(xml) succeeded, want error")
	}
	if want := []string{"dump", "json", "summary", "tokens"}; !slices.Equal(Names(), want) {
		t.Errorf("Names() = %v, want %v", Names(), want)
	}
}

func TestASTJSONEncoder(t *testing.T) {
	tree := parser.Parse([]byte("<?php\necho $a;"))
	var buf bytes.Buffer
	if err := NewASTJSONEncoder(&buf).Encode(tree); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var root astJSONNode
	if err := json.Unmarshal(buf.Bytes(), &root); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if root.Kind != "StatementList" {
		t.Errorf("root kind = %q, want StatementList", root.Kind)
	}
	if len(root.Children) != 3 {
		t.Fatalf("root has %d children, want 3", len(root.Children))
	}

	echo := root.Children[1]
	if echo.Kind != "EchoIntrinsic" {
		t.Fatalf("second child = %q, want EchoIntrinsic", echo.Kind)
	}
	if echo.Span == nil || echo.Span.Start.Line != 2 || echo.Span.Start.Column != 1 {
		t.Errorf("echo span = %+v, want start 2:1", echo.Span)
	}
	first := echo.Children[0]
	if first.Kind != "Echo" || first.Token == nil || *first.Token != "echo" {
		t.Errorf("first echo child = %+v, want the echo keyword", first)
	}
	for _, c := range echo.Children {
		if c.Kind == "Whitespace" {
			t.Errorf("trivia included without IncludeTrivia")
		}
	}
}

func TestASTJSONEncoderError(t *testing.T) {
	tree := parser.Parse([]byte("<?php class A exten B {}"))
	enc := NewASTJSONEncoder(nil)
	enc.tree = tree
	data, err := enc.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	var root astJSONNode
	if err := json.Unmarshal(data, &root); err != nil {
		t.Fatal(err)
	}

	var found *astJSONNode
	var find func(n *astJSONNode)
	find = func(n *astJSONNode) {
		if n.Kind == "Error" && found == nil {
			found = n
		}
		for _, c := range n.Children {
			find(c)
		}
	}
	find(&root)

	if found == nil || found.Error == nil {
		t.Fatalf("no error node in %s", data)
	}
	if found.Error.Got != "exten" {
		t.Errorf("Got = %q, want exten", found.Error.Got)
	}
	if !slices.Contains(found.Error.Expected, "OpenBrace") {
		t.Errorf("Expected = %v, want OpenBrace among them", found.Error.Expected)
	}
	if len(found.Children) != 1 {
		t.Errorf("error children = %d, want the skipped name only", len(found.Children))
	}
}

func TestLineEncoder(t *testing.T) {
	tree := parser.Parse([]byte("<?php $a\n= 1 ]"))
	var buf bytes.Buffer
	if err := NewLineEncoder(&buf).Encode(tree); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")

	want := []string{
		"0\t6\t1:1\tOpenTag\tInitial\t\"<?php \"",
		"6\t2\t1:7\tVariableName\tScripting\t\"$a\"",
		"8\t1\t1:9\tWhitespace\tScripting\t\"\\n\"",
		"9\t1\t2:1\tEquals\tScripting\t\"=\"",
	}
	if len(lines) < len(want) {
		t.Fatalf("got %d lines, want at least %d:\n%s", len(lines), len(want), buf.String())
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %q, want %q", i, lines[i], w)
		}
	}

	var skipped []string
	for _, l := range lines {
		if strings.HasSuffix(l, "\tskipped") {
			skipped = append(skipped, strings.Split(l, "\t")[3])
		}
	}
	if want := []string{"Whitespace", "CloseBracket"}; !slices.Equal(skipped, want) {
		t.Errorf("skipped kinds = %v, want %v", skipped, want)
	}
	if last := lines[len(lines)-1]; !strings.Contains(last, "EndOfFile") {
		t.Errorf("last line = %q, want EndOfFile", last)
	}
}

func TestDumpEncoder(t *testing.T) {
	tree := parser.Parse([]byte("<?php 1;"))
	var buf bytes.Buffer
	if err := NewDumpEncoder(&buf).Encode(tree); err != nil {
		t.Fatal(err)
	}
	var want bytes.Buffer
	parser.Dump(&want, tree.Root, tree.Source)
	if buf.String() != want.String() {
		t.Errorf("Dump output differs:\n%s\nwant:\n%s", buf.String(), want.String())
	}
}

func TestJSONEncoderSummary(t *testing.T) {
	src := "<?php\nnamespace N;\nclass A { function m() {} }\nclass B exten A {}\n"
	tree := parser.Parse([]byte(src), parser.WithFile("n.php"))
	var buf bytes.Buffer
	if err := NewJSONEncoder(&buf).Encode(tree); err != nil {
		t.Fatal(err)
	}

	var s jsonSummary
	if err := json.Unmarshal(buf.Bytes(), &s); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if s.File != "n.php" || s.Lines != 5 {
		t.Errorf("File, Lines = %q, %d, want n.php, 5", s.File, s.Lines)
	}
	if s.Tokens != len(parser.Tokens(tree.Root)) {
		t.Errorf("Tokens = %d, want %d", s.Tokens, len(parser.Tokens(tree.Root)))
	}

	var names []string
	for _, sym := range s.Symbols {
		names = append(names, sym.Kind+" "+sym.Name)
	}
	want := []string{"namespace N", `class N\A`, "method m", `class N\B`}
	if !slices.Equal(names, want) {
		t.Errorf("symbols = %v, want %v", names, want)
	}
	if s.Symbols[1].Line != 3 || s.Symbols[1].Column != 7 {
		t.Errorf("class position = %d:%d, want 3:7", s.Symbols[1].Line, s.Symbols[1].Column)
	}

	if len(s.Diagnostics) == 0 {
		t.Fatalf("no diagnostics for the misspelled keyword")
	}
	if d := s.Diagnostics[0]; d.Line != 4 || d.Column != 9 || d.Suggestion != "extends" {
		t.Errorf("first diagnostic = %+v, want 4:9 suggesting extends", d)
	}
}
