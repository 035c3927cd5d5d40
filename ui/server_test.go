package ui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dhamidi/phpfront/php/codebase"
	"github.com/dhamidi/phpfront/project"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"a.php":     "<?php\nfunction alpha() {}\n",
		"lib/b.php": "<?php\nclass Beta exten A {}\n",
	}
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	c := codebase.New(&project.Project{RootDir: root, Config: project.DefaultConfig()})
	if err := c.ScanAll(); err != nil {
		t.Fatalf("ScanAll error: %v", err)
	}
	s, err := NewServer(c)
	if err != nil {
		t.Fatalf("NewServer error: %v", err)
	}
	return s
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestIndexJSON(t *testing.T) {
	s := newTestServer(t)
	rec := get(t, s, "/?format=json")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var data indexData
	if err := json.Unmarshal(rec.Body.Bytes(), &data); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(data.Files) != 2 {
		t.Fatalf("files = %v, want 2 entries", data.Files)
	}
	if data.Files[0].Path != "a.php" || data.Files[1].Path != "lib/b.php" {
		t.Errorf("paths = %s, %s, want a.php, lib/b.php", data.Files[0].Path, data.Files[1].Path)
	}
	if data.Files[0].Diagnostics != 0 || data.Files[1].Diagnostics == 0 {
		t.Errorf("diagnostics = %d, %d, want 0 and some", data.Files[0].Diagnostics, data.Files[1].Diagnostics)
	}
}

func TestIndexHTML(t *testing.T) {
	s := newTestServer(t)
	rec := get(t, s, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}
	body := rec.Body.String()
	for _, want := range []string{`href="/f/lib/b.php"`, "2 files"} {
		if !strings.Contains(body, want) {
			t.Errorf("index does not contain %q", want)
		}
	}
}

func TestFile(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		target string
		status int
		want   string
	}{
		{"/f/lib/b.php", http.StatusOK, "did you mean extends?"},
		{"/f/lib/b.php?format=tokens", http.StatusOK, "OpenTag"},
		{"/f/a.php?format=dump", http.StatusOK, "FunctionDeclaration"},
		{"/f/a.php?format=nope", http.StatusBadRequest, "nope"},
		{"/f/missing.php", http.StatusNotFound, "not found"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := get(t, s, tt.target)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if !strings.Contains(rec.Body.String(), tt.want) {
				t.Errorf("body does not contain %q:\n%s", tt.want, rec.Body)
			}
		})
	}
}

func TestLookupStaysInRoot(t *testing.T) {
	s := newTestServer(t)
	if f := s.lookup("../a.php"); f != nil {
		t.Errorf("lookup(../a.php) = %s, want nil", f.Path)
	}
	if f := s.lookup("a.php"); f == nil {
		t.Errorf("lookup(a.php) = nil, want the file")
	}
}

func TestSymbolsJSON(t *testing.T) {
	s := newTestServer(t)
	rec := get(t, s, "/symbols?q=beta&format=json")

	var got []struct {
		Kind string `json:"kind"`
		Name string `json:"name"`
		Link string `json:"link"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("symbols = %v, want one", got)
	}
	if got[0].Kind != "class" || got[0].Name != "Beta" || got[0].Link != "/f/lib/b.php#L2" {
		t.Errorf("symbol = %+v, want class Beta at /f/lib/b.php#L2", got[0])
	}
}

func TestParse(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/parse?format=dump", strings.NewReader("<?php echo 1;"))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.HasPrefix(rec.Body.String(), "StatementList\n") {
		t.Errorf("body = %q, want a StatementList dump", rec.Body)
	}
	if !strings.Contains(rec.Body.String(), "EchoIntrinsic") {
		t.Errorf("body does not contain EchoIntrinsic:\n%s", rec.Body)
	}
}
