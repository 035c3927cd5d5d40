package codebase

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestOffsetAt(t *testing.T) {
	src := []byte("<?php\r\n$é = '😀x';\nend")
	tests := []struct {
		line, char uint32
		want       int
	}{
		{0, 0, 0},
		{0, 3, 3},
		{0, 99, 5},
		{1, 0, 7},
		{1, 2, 10},
		{1, 6, 14},
		{1, 8, 18},
		{1, 9, 19},
		{2, 1, 23},
		{7, 0, len(src)},
	}
	for _, tt := range tests {
		got := OffsetAt(src, protocol.Position{Line: tt.line, Character: tt.char})
		if got != tt.want {
			t.Errorf("OffsetAt(%d:%d) = %d, want %d", tt.line, tt.char, got, tt.want)
		}
	}
}

func TestPositionAt(t *testing.T) {
	src := []byte("<?php\r\n$é = '😀x';\nend")
	tests := []struct {
		offset     int
		line, char uint32
	}{
		{0, 0, 0},
		{5, 0, 5},
		{7, 1, 0},
		{10, 1, 2},
		{18, 1, 8},
		{22, 2, 0},
		{23, 2, 1},
		{999, 2, 3},
	}
	for _, tt := range tests {
		got := PositionAt(src, tt.offset)
		if got.Line != tt.line || got.Character != tt.char {
			t.Errorf("PositionAt(%d) = %d:%d, want %d:%d", tt.offset, got.Line, got.Character, tt.line, tt.char)
		}
		if tt.offset <= len(src) {
			if back := OffsetAt(src, got); back != tt.offset {
				t.Errorf("OffsetAt(PositionAt(%d)) = %d", tt.offset, back)
			}
		}
	}
}

func TestProtocolDiagnostics(t *testing.T) {
	f := ParseFile("a.php", []byte("<?php\nclass A exten B {}\n"))
	diags := ProtocolDiagnostics(f)
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(diags))
	}
	d := diags[0]
	want := protocol.Range{
		Start: protocol.Position{Line: 1, Character: 8},
		End:   protocol.Position{Line: 1, Character: 13},
	}
	if d.Range != want {
		t.Errorf("Range = %+v, want %+v", d.Range, want)
	}
	if d.Severity == nil || *d.Severity != protocol.DiagnosticSeverityError {
		t.Errorf("Severity = %v, want error", d.Severity)
	}
	if d.Source == nil || *d.Source != "phpfront" {
		t.Errorf("Source = %v, want phpfront", d.Source)
	}
	if got := d.Message; !strings.HasSuffix(got, "; did you mean 'extends'?") {
		t.Errorf("Message = %q", got)
	}

	clean := ParseFile("b.php", []byte("<?php echo 1;"))
	if diags := ProtocolDiagnostics(clean); diags == nil || len(diags) != 0 {
		t.Errorf("clean file diagnostics = %#v, want an empty non-nil slice", diags)
	}
}

func TestDocumentSymbols(t *testing.T) {
	f := ParseFile("user.php", []byte(symbolSource))
	symbols := DocumentSymbols(f)

	var names []string
	for _, s := range symbols {
		names = append(names, s.Name)
	}
	want := []string{`App\Models`, "HasName", "User", "Greets", "helper"}
	if len(names) != len(want) {
		t.Fatalf("top-level symbols = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("symbol %d = %q, want %q", i, names[i], want[i])
		}
	}

	user := symbols[2]
	if user.Kind != protocol.SymbolKindClass {
		t.Errorf("User kind = %v, want class", user.Kind)
	}
	if len(user.Children) != 2 || user.Children[0].Name != "name" || user.Children[1].Name != "make" {
		t.Errorf("User children = %+v, want name and make", user.Children)
	}
	if user.SelectionRange.Start.Line != 5 || user.SelectionRange.Start.Character != 15 {
		t.Errorf("User selection starts at %+v, want 5:15", user.SelectionRange.Start)
	}
	if len(symbols[1].Children) != 1 {
		t.Errorf("HasName children = %+v, want one method", symbols[1].Children)
	}
}

func TestURIConversion(t *testing.T) {
	tests := []struct {
		uri  string
		path string
	}{
		{"file:///home/u/a.php", "/home/u/a.php"},
		{"file:///home/u/my%20dir/a.php", "/home/u/my dir/a.php"},
		{"untitled:1", "untitled:1"},
	}
	for _, tt := range tests {
		got, err := uriToPath(tt.uri)
		if err != nil {
			t.Errorf("uriToPath(%q) error: %v", tt.uri, err)
			continue
		}
		if got != tt.path {
			t.Errorf("uriToPath(%q) = %q, want %q", tt.uri, got, tt.path)
		}
	}

	if got := pathToURI("/home/u/my dir/a.php"); got != "file:///home/u/my%20dir/a.php" {
		t.Errorf("pathToURI = %q", got)
	}
}

func TestWatcherKeepsOpenBuffer(t *testing.T) {
	ls := NewLSPServer("test")
	ls.codebase = newTestCodebase(t, map[string]string{"a.php": "<?php class Disk {}"})
	path := filepath.Join(ls.codebase.RootDir(), "a.php")
	uri := pathToURI(path)

	var published []string
	ls.notify = func(method string, params any) {
		if p, ok := params.(protocol.PublishDiagnosticsParams); ok {
			published = append(published, p.URI)
		}
	}
	ctx := &glsp.Context{Notify: ls.notify}

	w := ls.newWatcher(time.Hour)
	w.Poll()

	buffer := "<?php class Buffer {}"
	err := ls.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "php", Text: buffer},
	})
	if err != nil {
		t.Fatal(err)
	}
	published = nil

	if err := os.WriteFile(path, []byte("<?php class DiskChanged {}"), 0o644); err != nil {
		t.Fatal(err)
	}
	later := time.Now().Add(time.Minute)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}

	changed, _ := w.Poll()
	if slices.Contains(changed, path) {
		t.Errorf("Poll reparsed open file %s", path)
	}
	if got := string(ls.codebase.GetFile(path).Content); got != buffer {
		t.Errorf("cached content of open file = %q, want %q", got, buffer)
	}
	if len(published) != 0 {
		t.Errorf("published %v for an open file, want nothing", published)
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if _, removed := w.Poll(); len(removed) != 0 {
		t.Errorf("Poll removed %v while it is open", removed)
	}
	if ls.codebase.GetFile(path) == nil {
		t.Fatalf("open file dropped from the cache after deletion on disk")
	}

	if err := os.WriteFile(path, []byte("<?php class Closed {}"), 0o644); err != nil {
		t.Fatal(err)
	}
	err = ls.textDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	if err != nil {
		t.Fatal(err)
	}
	if syms := ls.codebase.GetFile(path).Symbols; len(syms) != 1 || syms[0].Name != "Closed" {
		t.Errorf("symbols after close = %+v, want Closed from disk", syms)
	}
}
