package codebase

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/dhamidi/phpfront/php/parser"
	"github.com/dhamidi/phpfront/project"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("phpfront.codebase")

// Codebase caches the parse of every PHP file in a project, keyed by path.
type Codebase struct {
	mu      sync.RWMutex
	project *project.Project
	files   map[string]*File
	symbols []Symbol
}

type File struct {
	Path        string
	Content     []byte
	Tree        *parser.Tree
	Diagnostics []Diagnostic
	Symbols     []Symbol
	// Err is set when the parser itself failed on this file. Tree is nil
	// in that case.
	Err error
}

func New(p *project.Project) *Codebase {
	return &Codebase{
		project: p,
		files:   make(map[string]*File),
	}
}

func (c *Codebase) RootDir() string {
	return c.project.RootDir
}

func (c *Codebase) Project() *project.Project {
	return c.project
}

// ScanAll parses every source file of the project. Files that cannot be
// read are logged and skipped.
func (c *Codebase) ScanAll() error {
	paths, err := c.project.SourceFiles()
	if err != nil {
		return err
	}
	for _, path := range paths {
		if err := c.ScanFile(path); err != nil {
			log.Warningf("scan %s: %s", path, err)
		}
	}
	log.Infof("scanned %d files under %s", len(paths), c.project.RootDir)
	return nil
}

func (c *Codebase) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	c.UpdateFile(path, content)
	return nil
}

// UpdateFile reparses content and replaces the cached entry for path.
func (c *Codebase) UpdateFile(path string, content []byte) *File {
	f := ParseFile(path, content)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.files[path] = f
	c.rebuildSymbolsLocked()
	return f
}

// ParseFile parses content without touching any cache. An internal parser
// failure is recovered and recorded in File.Err.
func ParseFile(path string, content []byte) (f *File) {
	f = &File{Path: path, Content: content}
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		var inv *parser.InvariantError
		if err, ok := r.(error); ok && errors.As(err, &inv) {
			log.Errorf("%s: %s", path, inv)
			f.Tree, f.Diagnostics, f.Symbols = nil, nil, nil
			f.Err = inv
			return
		}
		panic(r)
	}()

	f.Tree = parser.Parse(content, parser.WithFile(path))
	f.Diagnostics = Diagnostics(f.Tree)
	f.Symbols = Symbols(f.Tree)
	if n := len(f.Diagnostics); n > 0 {
		log.Debugf("%s: %d syntax errors", path, n)
	}
	return f
}

func (c *Codebase) rebuildSymbolsLocked() {
	var all []Symbol
	for _, f := range c.files {
		all = append(all, f.Symbols...)
	}
	slices.SortFunc(all, compareSymbols)
	c.symbols = all
}

func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
	c.rebuildSymbolsLocked()
}

func (c *Codebase) GetFile(path string) *File {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

// Paths returns the cached file paths in lexical order.
func (c *Codebase) Paths() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	paths := make([]string, 0, len(c.files))
	for path := range c.files {
		paths = append(paths, path)
	}
	slices.Sort(paths)
	return paths
}

func (c *Codebase) AllSymbols() []Symbol {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.symbols
}

// NodeAt returns the token or error at offset in a cached file together
// with its enclosing phrases.
func (c *Codebase) NodeAt(path string, offset int) (parser.Node, []*parser.Phrase) {
	f := c.GetFile(path)
	if f == nil || f.Tree == nil {
		return nil, nil
	}
	return parser.NodeAt(f.Tree.Root, offset)
}

// PhraseAt is NodeAt addressed by 1-based line and byte column.
func (c *Codebase) PhraseAt(path string, line, column int) (parser.Node, []*parser.Phrase) {
	f := c.GetFile(path)
	if f == nil || f.Tree == nil {
		return nil, nil
	}
	return parser.NodeAt(f.Tree.Root, f.Tree.Lines.Offset(line, column))
}
