package format

import (
	"bytes"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/dhamidi/phpfront/php/parser"
)

var testcasesDir string
var testFilter string

func init() {
	flag.StringVar(&testcasesDir, "testcases", "testdata", "directory containing .php test files")
	flag.StringVar(&testFilter, "filter", "", "filter test files by substring match on filename")
}

func TestMain(m *testing.M) {
	flag.Parse()
	os.Exit(m.Run())
}

// TestRoundTrip_Testcases checks, for every .php file under the testcases
// directory, that the token listing reproduces the file byte for byte and
// that the JSON tree is well formed and lists the same tokens.
func TestRoundTrip_Testcases(t *testing.T) {
	if os.Getenv("IN_GIT_PRECOMMIT") == "1" {
		t.Skip("skipping roundtrip tests during pre-commit")
	}

	var files []string
	err := filepath.WalkDir(testcasesDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".php") && strings.Contains(filepath.Base(path), testFilter) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", testcasesDir, err)
	}
	if len(files) == 0 {
		t.Skip("no test files found")
	}

	for _, path := range files {
		t.Run(filepath.Base(path), func(t *testing.T) {
			src, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			tree := parser.Parse(src, parser.WithFile(path))

			text, err := (&LineEncoder{tree: tree}).MarshalText()
			if err != nil {
				t.Fatalf("LineEncoder: %v", err)
			}
			if got := joinTokenText(t, text); got != string(src) {
				t.Errorf("token listing does not reproduce the source\ngot:  %q\nwant: %q", got, src)
			}

			enc := &ASTJSONEncoder{tree: tree, IncludeTrivia: true}
			data, err := enc.MarshalText()
			if err != nil {
				t.Fatalf("ASTJSONEncoder: %v", err)
			}
			var root astJSONNode
			if err := json.Unmarshal(data, &root); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			var buf bytes.Buffer
			collectTokenText(&root, &buf)
			if buf.String() != string(src) {
				t.Errorf("JSON tokens do not reproduce the source")
			}
		})
	}
}

// joinTokenText concatenates the unquoted text column of a token listing.
func joinTokenText(t *testing.T, listing []byte) string {
	t.Helper()
	var b strings.Builder
	for _, line := range strings.Split(strings.TrimSuffix(string(listing), "\n"), "\n") {
		fields := strings.Split(line, "\t")
		if len(fields) < 6 {
			t.Fatalf("short line %q", line)
		}
		text, err := strconv.Unquote(fields[5])
		if err != nil {
			t.Fatalf("unquote %q: %v", fields[5], err)
		}
		b.WriteString(text)
	}
	return b.String()
}

func collectTokenText(n *astJSONNode, buf *bytes.Buffer) {
	if n.Token != nil {
		buf.WriteString(*n.Token)
	}
	for _, child := range n.Children {
		collectTokenText(child, buf)
	}
}
