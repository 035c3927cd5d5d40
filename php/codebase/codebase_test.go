package codebase

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/dhamidi/phpfront/php/parser"
	"github.com/dhamidi/phpfront/project"
)

func newTestCodebase(t *testing.T, files map[string]string) *Codebase {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return New(&project.Project{RootDir: root, Config: project.DefaultConfig()})
}

func TestScanAll(t *testing.T) {
	c := newTestCodebase(t, map[string]string{
		"a.php":        "<?php function a() {}",
		"lib/b.php":    "<?php class B {",
		"vendor/c.php": "<?php",
		"notes.txt":    "<?php",
	})
	if err := c.ScanAll(); err != nil {
		t.Fatalf("ScanAll error: %v", err)
	}

	var rel []string
	for _, p := range c.Paths() {
		r, _ := filepath.Rel(c.RootDir(), p)
		rel = append(rel, filepath.ToSlash(r))
	}
	if want := []string{"a.php", "lib/b.php"}; !slices.Equal(rel, want) {
		t.Fatalf("Paths = %v, want %v", rel, want)
	}

	a := c.GetFile(filepath.Join(c.RootDir(), "a.php"))
	if a == nil || a.Tree == nil {
		t.Fatalf("a.php not parsed")
	}
	if len(a.Diagnostics) != 0 {
		t.Errorf("a.php diagnostics = %v, want none", a.Diagnostics)
	}

	b := c.GetFile(filepath.Join(c.RootDir(), "lib", "b.php"))
	if b == nil || len(b.Diagnostics) == 0 {
		t.Errorf("lib/b.php has no diagnostics, want the missing close brace")
	}
}

func TestUpdateAndRemoveFile(t *testing.T) {
	c := newTestCodebase(t, nil)
	path := filepath.Join(c.RootDir(), "x.php")

	f := c.UpdateFile(path, []byte("<?php class X {}"))
	if got := c.GetFile(path); got != f {
		t.Fatalf("GetFile did not return the updated file")
	}
	if n := len(c.AllSymbols()); n != 1 {
		t.Errorf("AllSymbols has %d entries, want 1", n)
	}

	c.UpdateFile(path, []byte("<?php class X {} class Y {}"))
	if n := len(c.AllSymbols()); n != 2 {
		t.Errorf("AllSymbols after update has %d entries, want 2", n)
	}

	c.RemoveFile(path)
	if c.GetFile(path) != nil {
		t.Errorf("GetFile after RemoveFile is not nil")
	}
	if n := len(c.AllSymbols()); n != 0 {
		t.Errorf("AllSymbols after remove has %d entries, want 0", n)
	}
}

func TestScanFileMissing(t *testing.T) {
	c := newTestCodebase(t, nil)
	if err := c.ScanFile(filepath.Join(c.RootDir(), "missing.php")); err == nil {
		t.Errorf("ScanFile of a missing file succeeded")
	}
}

func TestPhraseAt(t *testing.T) {
	c := newTestCodebase(t, nil)
	path := filepath.Join(c.RootDir(), "p.php")
	c.UpdateFile(path, []byte("<?php\n$a = foo(1);\n"))

	tests := []struct {
		line, column int
		kind         parser.TokenKind
		parent       parser.PhraseKind
	}{
		{2, 1, parser.TokenVariableName, parser.PhraseSimpleVariable},
		{2, 6, parser.TokenName, parser.PhraseNamespaceName},
		{2, 10, parser.TokenIntegerLiteral, parser.PhraseArgumentExpressionList},
	}
	for _, tt := range tests {
		n, path := c.PhraseAt(path, tt.line, tt.column)
		tok, ok := n.(*parser.Token)
		if !ok || tok.Kind != tt.kind {
			t.Errorf("PhraseAt(%d, %d) = %v, want %v", tt.line, tt.column, n, tt.kind)
			continue
		}
		if len(path) == 0 || path[len(path)-1].Kind != tt.parent {
			t.Errorf("PhraseAt(%d, %d) parent = %v, want %v", tt.line, tt.column, path, tt.parent)
		}
	}

	if n, _ := c.PhraseAt("nope.php", 1, 1); n != nil {
		t.Errorf("PhraseAt on unknown file = %v, want nil", n)
	}
}

func TestParseFileIsDeterministic(t *testing.T) {
	src := []byte("<?php if ($a) { echo 1 } else")
	a := ParseFile("a.php", src)
	b := ParseFile("a.php", src)
	if a.Err != nil || b.Err != nil {
		t.Fatalf("ParseFile errors: %v, %v", a.Err, b.Err)
	}
	if len(a.Diagnostics) != len(b.Diagnostics) {
		t.Fatalf("diagnostic counts differ: %d vs %d", len(a.Diagnostics), len(b.Diagnostics))
	}
	for i := range a.Diagnostics {
		if a.Diagnostics[i].String() != b.Diagnostics[i].String() {
			t.Errorf("diagnostic %d differs: %s vs %s", i, a.Diagnostics[i], b.Diagnostics[i])
		}
	}
}
