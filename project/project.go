package project

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Project is a directory tree of PHP sources together with its settings.
type Project struct {
	RootDir string
	// ConfigPath is empty when no phpfront.toml was found and the defaults
	// are in effect.
	ConfigPath string
	Config     *Config
}

// Load detects the project containing the current directory.
func Load() (*Project, error) {
	return LoadFrom(".")
}

// LoadFrom searches dir and its parents for phpfront.toml. The directory
// holding the file becomes the project root; without one, dir itself is the
// root and the default config applies.
func LoadFrom(dir string) (*Project, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dir, err)
	}

	for cur := abs; ; {
		candidate := filepath.Join(cur, ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			cfg, err := LoadConfig(candidate)
			if err != nil {
				return nil, err
			}
			return &Project{RootDir: cur, ConfigPath: candidate, Config: cfg}, nil
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			break
		}
		cur = parent
	}

	return &Project{RootDir: abs, Config: DefaultConfig()}, nil
}

// IsSource reports whether path has one of the configured PHP extensions.
func (p *Project) IsSource(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range p.Config.Scan.Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Excluded reports whether path, absolute or relative to the root, matches
// an exclude pattern. Hidden files and directories are always excluded.
func (p *Project) Excluded(path string) bool {
	rel := path
	if filepath.IsAbs(path) {
		r, err := filepath.Rel(p.RootDir, path)
		if err != nil || strings.HasPrefix(r, "..") {
			return false
		}
		rel = r
	}
	if rel == "." {
		return false
	}
	rel = filepath.ToSlash(rel)

	for _, elem := range strings.Split(rel, "/") {
		if strings.HasPrefix(elem, ".") && elem != "." && elem != ".." {
			return true
		}
		for _, pattern := range p.Config.Scan.Exclude {
			if ok, _ := filepath.Match(pattern, elem); ok {
				return true
			}
		}
	}
	for _, pattern := range p.Config.Scan.Exclude {
		if ok, _ := filepath.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// SourceFiles returns every PHP file under the root that is not excluded,
// in lexical order.
func (p *Project) SourceFiles() ([]string, error) {
	return p.SourceFilesIn(p.RootDir)
}

func (p *Project) SourceFilesIn(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != dir && p.Excluded(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !p.IsSource(path) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan php files in %s: %w", dir, err)
	}
	return files, nil
}
