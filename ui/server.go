package ui

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhamidi/phpfront/format"
	"github.com/dhamidi/phpfront/php/codebase"
	"github.com/tliron/commonlog"
)

//go:embed static/*.css templates/*.html
var embeddedFS embed.FS

var log = commonlog.GetLogger("phpfront.ui")

const maxSymbols = 20

// Server is a read-only browser over a parsed codebase.
type Server struct {
	codebase   *codebase.Codebase
	staticFS   fs.FS
	mux        *http.ServeMux
	templateFS fs.FS
	funcMap    template.FuncMap
}

func NewServer(c *codebase.Codebase) (*Server, error) {
	staticFS := overlayFS("ui/static", mustSub(embeddedFS, "static"))
	templateFS := overlayFS("ui/templates", mustSub(embeddedFS, "templates"))

	s := &Server{
		codebase:   c,
		staticFS:   staticFS,
		mux:        http.NewServeMux(),
		templateFS: templateFS,
	}
	s.funcMap = template.FuncMap{
		"rel":        s.rel,
		"fileLink":   func(rel string) string { return "/f/" + rel },
		"symbolLink": s.symbolLink,
	}

	if _, err := s.parseTemplates(); err != nil {
		return nil, err
	}

	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	s.mux.HandleFunc("GET /f/{path...}", s.handleFile)
	s.mux.HandleFunc("GET /symbols", s.handleSymbols)
	s.mux.HandleFunc("POST /parse", s.handleParse)
	s.mux.HandleFunc("GET /{$}", s.handleIndex)

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) parseTemplates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(s.funcMap).ParseFS(s.templateFS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

// render parses the templates on every request so that edits under
// ui/templates show up without a restart.
func (s *Server) render(w http.ResponseWriter, name string, data any) {
	tmpl, err := s.parseTemplates()
	if err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		log.Errorf("render %s: %s", name, err)
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

func wantsJSON(r *http.Request) bool {
	return r.Header.Get("Accept") == "application/json" || r.URL.Query().Get("format") == "json"
}

func (s *Server) rel(path string) string {
	rel, err := filepath.Rel(s.codebase.RootDir(), path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func (s *Server) symbolLink(sym codebase.Symbol) string {
	f := s.codebase.GetFile(sym.Path)
	if f == nil || f.Tree == nil {
		return "/f/" + s.rel(sym.Path)
	}
	pos := f.Tree.Lines.Position(sym.NameSpan.Start)
	return fmt.Sprintf("/f/%s#L%d", s.rel(sym.Path), pos.Line)
}

type fileEntry struct {
	Path        string `json:"path"`
	Diagnostics int    `json:"diagnostics"`
	Symbols     int    `json:"symbols"`
	Error       string `json:"error,omitempty"`
}

type indexData struct {
	Root        string      `json:"root"`
	Files       []fileEntry `json:"files"`
	Diagnostics int         `json:"diagnostics"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := indexData{Root: s.codebase.RootDir()}
	for _, path := range s.codebase.Paths() {
		f := s.codebase.GetFile(path)
		if f == nil {
			continue
		}
		entry := fileEntry{
			Path:        s.rel(path),
			Diagnostics: len(f.Diagnostics),
			Symbols:     len(f.Symbols),
		}
		if f.Err != nil {
			entry.Error = f.Err.Error()
		}
		data.Files = append(data.Files, entry)
		data.Diagnostics += len(f.Diagnostics)
	}

	if wantsJSON(r) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(data)
		return
	}
	s.render(w, "index.html", data)
}

type sourceLine struct {
	Number      int
	Text        string
	Diagnostics []codebase.Diagnostic
}

type fileData struct {
	Path    string
	File    *codebase.File
	Lines   []sourceLine
	Symbols []codebase.Symbol
}

// lookup maps a slash separated path relative to the project root to a
// parsed file. Paths that leave the root are rejected.
func (s *Server) lookup(rel string) *codebase.File {
	if !filepath.IsLocal(filepath.FromSlash(rel)) {
		return nil
	}
	return s.codebase.GetFile(filepath.Join(s.codebase.RootDir(), filepath.FromSlash(rel)))
}

func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	f := s.lookup(r.PathValue("path"))
	if f == nil {
		http.Error(w, "file not found", http.StatusNotFound)
		return
	}

	if name := r.URL.Query().Get("format"); name != "" || wantsJSON(r) {
		if name == "" {
			name = "json"
		}
		s.encode(w, name, f)
		return
	}

	data := fileData{Path: f.Path, File: f, Symbols: f.Symbols}
	text := strings.ReplaceAll(string(f.Content), "\r\n", "\n")
	for i, line := range strings.Split(text, "\n") {
		data.Lines = append(data.Lines, sourceLine{Number: i + 1, Text: line})
	}
	for _, d := range f.Diagnostics {
		if i := d.Start.Line - 1; i >= 0 && i < len(data.Lines) {
			data.Lines[i].Diagnostics = append(data.Lines[i].Diagnostics, d)
		}
	}
	s.render(w, "file.html", data)
}

func (s *Server) encode(w http.ResponseWriter, name string, f *codebase.File) {
	if f.Err != nil {
		http.Error(w, f.Err.Error(), http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	enc, err := format.New(name, &buf)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := enc.Encode(f.Tree); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if name == "json" || name == "summary" {
		w.Header().Set("Content-Type", "application/json")
	} else {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	buf.WriteTo(w)
}

type symbolsData struct {
	Query        string
	Symbols      []codebase.Symbol
	TotalMatches int
	HasMore      bool
}

func (s *Server) handleSymbols(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	all := s.codebase.FindSymbols(query)

	data := symbolsData{
		Query:        query,
		Symbols:      all,
		TotalMatches: len(all),
		HasMore:      len(all) > maxSymbols,
	}
	if data.HasMore {
		data.Symbols = all[:maxSymbols]
	}

	if wantsJSON(r) {
		type jsonSymbol struct {
			Kind      string `json:"kind"`
			Name      string `json:"name"`
			Container string `json:"container,omitempty"`
			Link      string `json:"link"`
		}
		out := make([]jsonSymbol, 0, len(data.Symbols))
		for _, sym := range data.Symbols {
			out = append(out, jsonSymbol{
				Kind:      sym.Kind.String(),
				Name:      sym.Name,
				Container: sym.Container,
				Link:      s.symbolLink(sym),
			})
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(out)
		return
	}
	s.render(w, "_symbols.html", data)
}

// handleParse parses the request body, or the "source" form field, and
// writes the tree in the format named by the "format" query parameter.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var src []byte
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form data: "+err.Error(), http.StatusBadRequest)
			return
		}
		src = []byte(r.FormValue("source"))
	} else {
		data, err := io.ReadAll(io.LimitReader(r.Body, 32<<20))
		if err != nil {
			http.Error(w, "read body: "+err.Error(), http.StatusBadRequest)
			return
		}
		src = data
	}

	name := r.URL.Query().Get("format")
	if name == "" {
		name = "json"
	}
	s.encode(w, name, codebase.ParseFile("<input>", src))
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

type overlayFSType struct {
	primary   fs.FS
	secondary fs.FS
}

// overlayFS prefers files under primaryPath on disk and falls back to the
// embedded copy.
func overlayFS(primaryPath string, secondary fs.FS) fs.FS {
	return &overlayFSType{
		primary:   os.DirFS(primaryPath),
		secondary: secondary,
	}
}

func (o *overlayFSType) Open(name string) (fs.File, error) {
	f, err := o.primary.Open(name)
	if err == nil {
		return f, nil
	}
	return o.secondary.Open(name)
}

func (o *overlayFSType) ReadDir(name string) ([]fs.DirEntry, error) {
	entries := make(map[string]fs.DirEntry)

	if rd, ok := o.secondary.(fs.ReadDirFS); ok {
		if list, err := rd.ReadDir(name); err == nil {
			for _, e := range list {
				entries[e.Name()] = e
			}
		}
	}

	if rd, ok := o.primary.(fs.ReadDirFS); ok {
		if list, err := rd.ReadDir(name); err == nil {
			for _, e := range list {
				entries[e.Name()] = e
			}
		}
	}

	result := make([]fs.DirEntry, 0, len(entries))
	for _, e := range entries {
		result = append(result, e)
	}
	return result, nil
}
