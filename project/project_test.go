package project

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestLoadFromWithoutConfig(t *testing.T) {
	root := t.TempDir()
	p, err := LoadFrom(root)
	if err != nil {
		t.Fatalf("LoadFrom error: %v", err)
	}
	if p.ConfigPath != "" {
		t.Errorf("ConfigPath = %q, want empty", p.ConfigPath)
	}
	if p.RootDir != root {
		t.Errorf("RootDir = %q, want %q", p.RootDir, root)
	}
}

func TestLoadFromFindsParentConfig(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		ConfigFileName:  "[scan]\nextensions = [\".php\"]\n",
		"src/app/a.php": "<?php",
	})

	p, err := LoadFrom(filepath.Join(root, "src", "app"))
	if err != nil {
		t.Fatalf("LoadFrom error: %v", err)
	}
	if p.RootDir != root {
		t.Errorf("RootDir = %q, want %q", p.RootDir, root)
	}
	if want := filepath.Join(root, ConfigFileName); p.ConfigPath != want {
		t.Errorf("ConfigPath = %q, want %q", p.ConfigPath, want)
	}
	if p.IsSource("x.inc") {
		t.Errorf("IsSource(x.inc) = true, want false with extensions [.php]")
	}
}

func TestLoadFromBadConfig(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{ConfigFileName: "[scan\n"})
	if _, err := LoadFrom(root); err == nil {
		t.Errorf("LoadFrom with malformed config succeeded, want error")
	}
}

func TestSourceFiles(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"index.php":                "<?php",
		"lib/Util.PHP":             "<?php",
		"lib/view.phtml":           "x",
		"lib/readme.md":            "x",
		"vendor/pkg/a.php":         "<?php",
		".git/hooks/h.php":         "<?php",
		"cache/tmp/c.php":          "<?php",
		"templates/cache/keep.php": "<?php",
	})
	p := &Project{RootDir: root, Config: DefaultConfig()}
	p.Config.Scan.Exclude = append(p.Config.Scan.Exclude, "cache/*")

	files, err := p.SourceFiles()
	if err != nil {
		t.Fatalf("SourceFiles error: %v", err)
	}
	var rel []string
	for _, f := range files {
		r, _ := filepath.Rel(root, f)
		rel = append(rel, filepath.ToSlash(r))
	}
	want := []string{"index.php", "lib/Util.PHP", "lib/view.phtml", "templates/cache/keep.php"}
	if !slices.Equal(rel, want) {
		t.Errorf("SourceFiles = %v, want %v", rel, want)
	}
}

func TestExcluded(t *testing.T) {
	p := &Project{RootDir: "/proj", Config: DefaultConfig()}
	tests := []struct {
		path string
		want bool
	}{
		{"/proj", false},
		{"/proj/src/a.php", false},
		{"/proj/vendor", true},
		{"/proj/src/vendor/a.php", true},
		{"/proj/.idea/a.php", true},
		{"/elsewhere/vendor/a.php", false},
		{"src/node_modules/x.php", true},
	}
	for _, tt := range tests {
		if got := p.Excluded(tt.path); got != tt.want {
			t.Errorf("Excluded(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
