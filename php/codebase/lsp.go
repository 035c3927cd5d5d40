package codebase

import (
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/dhamidi/phpfront/php/parser"
	"github.com/dhamidi/phpfront/project"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "phpfront"

var lspLog = commonlog.GetLogger("phpfront.lsp")

type LSPServer struct {
	codebase *Codebase
	watcher  *FileWatcher
	handler  protocol.Handler
	server   *server.Server
	version  string

	mu     sync.Mutex
	notify glsp.NotifyFunc
	open   map[string]bool
}

func NewLSPServer(version string) *LSPServer {
	ls := &LSPServer{
		version: version,
		open:    make(map[string]bool),
	}

	ls.handler = protocol.Handler{
		Initialize:                 ls.initialize,
		Initialized:                ls.initialized,
		Shutdown:                   ls.shutdown,
		SetTrace:                   ls.setTrace,
		TextDocumentDidOpen:        ls.textDocumentDidOpen,
		TextDocumentDidChange:      ls.textDocumentDidChange,
		TextDocumentDidClose:       ls.textDocumentDidClose,
		TextDocumentDidSave:        ls.textDocumentDidSave,
		TextDocumentHover:          ls.textDocumentHover,
		TextDocumentDocumentSymbol: ls.textDocumentDocumentSymbol,
		WorkspaceSymbol:            ls.workspaceSymbol,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	proj, err := project.LoadFrom(rootDir)
	if err != nil {
		lspLog.Errorf("load project: %s", err)
		proj = &project.Project{RootDir: rootDir, Config: project.DefaultConfig()}
	}
	ls.codebase = New(proj)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    intPtr(int(protocol.TextDocumentSyncKindFull)),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	ls.mu.Lock()
	ls.notify = ctx.Notify
	ls.mu.Unlock()

	if err := ls.codebase.ScanAll(); err != nil {
		lspLog.Errorf("scan: %s", err)
	}

	cfg := ls.codebase.Project().Config
	if cfg.LSP.Watch {
		ls.watcher = ls.newWatcher(cfg.LSP.PollInterval.Duration)
		ls.watcher.Start()
	}
	return nil
}

// newWatcher makes a watcher that leaves open documents alone: the editor
// buffer, not the file on disk, is their source of truth until didClose.
func (ls *LSPServer) newWatcher(interval time.Duration) *FileWatcher {
	w := NewFileWatcher(ls.codebase, interval)
	w.Skip = ls.isOpen
	w.OnChange = func(path string, removed bool) {
		if removed {
			ls.publish(path, nil)
			return
		}
		ls.publish(path, ls.codebase.GetFile(path))
	}
	return w
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	if ls.watcher != nil {
		ls.watcher.Stop()
	}
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.setOpen(path, true)
	f := ls.codebase.UpdateFile(path, []byte(params.TextDocument.Text))
	ls.publish(path, f)
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			f := ls.codebase.UpdateFile(path, []byte(textChange.Text))
			ls.publish(path, f)
		}
	}
	return nil
}

// textDocumentDidClose drops unsaved edits by rereading the file from disk.
func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.setOpen(path, false)
	if err := ls.codebase.ScanFile(path); err != nil {
		ls.codebase.RemoveFile(path)
		ls.publish(path, nil)
		return nil
	}
	ls.publish(path, ls.codebase.GetFile(path))
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if params.Text != nil {
		ls.codebase.UpdateFile(path, []byte(*params.Text))
	} else if err := ls.codebase.ScanFile(path); err != nil {
		lspLog.Warningf("%s", err)
	}
	ls.publish(path, ls.codebase.GetFile(path))
	return nil
}

func (ls *LSPServer) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	f := ls.codebase.GetFile(path)
	if f == nil || f.Tree == nil {
		return nil, nil
	}

	text := Describe(f, OffsetAt(f.Source(), params.Position))
	if text == "" {
		return nil, nil
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: text,
		},
	}, nil
}

func (ls *LSPServer) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	f := ls.codebase.GetFile(path)
	if f == nil || f.Tree == nil {
		return nil, nil
	}
	return DocumentSymbols(f), nil
}

func (ls *LSPServer) workspaceSymbol(ctx *glsp.Context, params *protocol.WorkspaceSymbolParams) ([]protocol.SymbolInformation, error) {
	var result []protocol.SymbolInformation
	for _, s := range ls.codebase.FindSymbols(params.Query) {
		f := ls.codebase.GetFile(s.Path)
		if f == nil {
			continue
		}
		info := protocol.SymbolInformation{
			Name: s.Name,
			Kind: toProtocolSymbolKind(s.Kind),
			Location: protocol.Location{
				URI:   pathToURI(s.Path),
				Range: spanRange(f.Source(), s.NameSpan.Start, s.NameSpan.End),
			},
		}
		if s.Container != "" {
			container := s.Container
			info.ContainerName = &container
		}
		result = append(result, info)
	}
	return result, nil
}

func (ls *LSPServer) publish(path string, f *File) {
	ls.mu.Lock()
	notify := ls.notify
	ls.mu.Unlock()
	if notify == nil {
		return
	}

	diagnostics := []protocol.Diagnostic{}
	if f != nil {
		diagnostics = ProtocolDiagnostics(f)
	}
	notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         pathToURI(path),
		Diagnostics: diagnostics,
	})
}

func (ls *LSPServer) setOpen(path string, open bool) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if open {
		ls.open[path] = true
	} else {
		delete(ls.open, path)
	}
}

func (ls *LSPServer) isOpen(path string) bool {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.open[path]
}

// ProtocolDiagnostics converts the syntax errors of f, or the parser
// failure recorded in it, to LSP diagnostics.
func ProtocolDiagnostics(f *File) []protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	source := lsName
	diagnostics := []protocol.Diagnostic{}

	if f.Err != nil {
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    protocol.Range{},
			Severity: &severity,
			Source:   &source,
			Message:  f.Err.Error(),
		})
		return diagnostics
	}

	for _, d := range f.Diagnostics {
		msg := d.Message
		if d.Suggestion != "" {
			msg += "; did you mean '" + d.Suggestion + "'?"
		}
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    spanRange(f.Source(), d.Span.Start, d.Span.End),
			Severity: &severity,
			Source:   &source,
			Message:  msg,
		})
	}
	return diagnostics
}

// DocumentSymbols nests the methods of f under their type.
func DocumentSymbols(f *File) []protocol.DocumentSymbol {
	var result []protocol.DocumentSymbol
	parent := -1
	var parentSpan parser.Span
	for _, s := range f.Symbols {
		ds := protocol.DocumentSymbol{
			Name:           s.ShortName(),
			Kind:           toProtocolSymbolKind(s.Kind),
			Range:          spanRange(f.Source(), s.Span.Start, s.Span.End),
			SelectionRange: spanRange(f.Source(), s.NameSpan.Start, s.NameSpan.End),
		}
		if s.Kind == SymbolNamespace {
			ds.Name = s.Name
		}

		if s.Kind == SymbolMethod && parent >= 0 && s.Span.Start >= parentSpan.Start && s.Span.End <= parentSpan.End {
			result[parent].Children = append(result[parent].Children, ds)
			continue
		}
		switch s.Kind {
		case SymbolClass, SymbolInterface, SymbolTrait:
			parent, parentSpan = len(result), s.Span
		}
		result = append(result, ds)
	}
	return result
}

func toProtocolSymbolKind(kind SymbolKind) protocol.SymbolKind {
	switch kind {
	case SymbolNamespace:
		return protocol.SymbolKindNamespace
	case SymbolClass, SymbolTrait:
		return protocol.SymbolKindClass
	case SymbolInterface:
		return protocol.SymbolKindInterface
	case SymbolMethod:
		return protocol.SymbolKindMethod
	default:
		return protocol.SymbolKindFunction
	}
}

// OffsetAt converts an LSP position, whose character counts UTF-16 code
// units, to a byte offset. Positions past the end of a line clamp to it.
func OffsetAt(src []byte, pos protocol.Position) int {
	i := 0
	for line := uint32(0); line < pos.Line; line++ {
		next := nextLine(src, i)
		if next < 0 {
			return len(src)
		}
		i = next
	}

	units := int(pos.Character)
	for i < len(src) && units > 0 {
		r, size := utf8.DecodeRune(src[i:])
		if r == '\n' || r == '\r' {
			break
		}
		units -= utf16.RuneLen(r)
		i += size
	}
	return i
}

// nextLine returns the offset after the line break at or following i, or -1
// when there is none.
func nextLine(src []byte, i int) int {
	for ; i < len(src); i++ {
		switch src[i] {
		case '\n':
			return i + 1
		case '\r':
			if i+1 < len(src) && src[i+1] == '\n' {
				return i + 2
			}
			return i + 1
		}
	}
	return -1
}

// PositionAt is the inverse of OffsetAt.
func PositionAt(src []byte, offset int) protocol.Position {
	offset = max(0, min(offset, len(src)))
	var line uint32
	start := 0
	for {
		next := nextLine(src, start)
		if next < 0 || next > offset {
			break
		}
		line++
		start = next
	}

	var units uint32
	for _, r := range string(src[start:offset]) {
		units += uint32(utf16.RuneLen(r))
	}
	return protocol.Position{Line: line, Character: units}
}

func spanRange(src []byte, start, end int) protocol.Range {
	return protocol.Range{
		Start: PositionAt(src, start),
		End:   PositionAt(src, end),
	}
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func pathToURI(path string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}

func boolPtr(b bool) *bool {
	return &b
}

func intPtr(i int) *protocol.TextDocumentSyncKind {
	v := protocol.TextDocumentSyncKind(i)
	return &v
}
