package codebase

import (
	"cmp"
	"sort"
	"strings"

	"github.com/dhamidi/phpfront/php/parser"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

type SymbolKind int

const (
	SymbolNamespace SymbolKind = iota
	SymbolClass
	SymbolInterface
	SymbolTrait
	SymbolFunction
	SymbolMethod
)

var symbolKindNames = map[SymbolKind]string{
	SymbolNamespace: "namespace",
	SymbolClass:     "class",
	SymbolInterface: "interface",
	SymbolTrait:     "trait",
	SymbolFunction:  "function",
	SymbolMethod:    "method",
}

func (k SymbolKind) String() string {
	if name, ok := symbolKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Symbol is a named declaration. Name is namespace qualified for classes,
// interfaces, traits and functions; methods carry their type in Container.
type Symbol struct {
	Kind      SymbolKind
	Name      string
	Container string
	Path      string
	Span      parser.Span
	NameSpan  parser.Span
}

// ShortName drops the namespace from Name.
func (s Symbol) ShortName() string {
	if i := strings.LastIndexByte(s.Name, '\\'); i >= 0 {
		return s.Name[i+1:]
	}
	return s.Name
}

func compareSymbols(a, b Symbol) int {
	if c := cmp.Compare(a.Path, b.Path); c != 0 {
		return c
	}
	return cmp.Compare(a.Span.Start, b.Span.Start)
}

// Symbols lists the declarations of a tree in document order. Declarations
// with a missing name are left out.
func Symbols(tree *parser.Tree) []Symbol {
	var symbols []Symbol
	namespace := ""

	parser.Walk(tree.Root, func(n parser.Node, ancestors []*parser.Phrase) bool {
		p, ok := n.(*parser.Phrase)
		if !ok {
			return false
		}

		var kind SymbolKind
		switch p.Kind {
		case parser.PhraseNamespaceDefinition:
			namespace = ""
			if name := p.FirstChildOfKind(parser.PhraseNamespaceName); name != nil {
				namespace = phraseText(name, tree.Source)
				symbols = append(symbols, newSymbol(tree, SymbolNamespace, namespace, p, significantSpanOf(name)))
			}
			return true
		case parser.PhraseClassDeclarationHeader:
			kind = SymbolClass
		case parser.PhraseInterfaceDeclarationHeader:
			kind = SymbolInterface
		case parser.PhraseTraitDeclarationHeader:
			kind = SymbolTrait
		case parser.PhraseFunctionDeclarationHeader:
			kind = SymbolFunction
		case parser.PhraseMethodDeclarationHeader:
			id := p.FirstChildOfKind(parser.PhraseIdentifier)
			if id == nil || len(ancestors) == 0 {
				return false
			}
			name := phraseText(id, tree.Source)
			if name == "" {
				return false
			}
			s := newSymbol(tree, SymbolMethod, name, ancestors[len(ancestors)-1], significantSpanOf(id))
			s.Container = enclosingType(ancestors, tree.Source, namespace)
			symbols = append(symbols, s)
			return false
		default:
			return true
		}

		nameTok := p.FirstTokenOfKind(parser.TokenName)
		if nameTok == nil || len(ancestors) == 0 {
			return false
		}
		name := qualify(namespace, nameTok.Text(tree.Source))
		nameSpan := &parser.Span{Start: nameTok.Offset, End: nameTok.End()}
		symbols = append(symbols, newSymbol(tree, kind, name, ancestors[len(ancestors)-1], nameSpan))
		return false
	})
	return symbols
}

func newSymbol(tree *parser.Tree, kind SymbolKind, name string, decl *parser.Phrase, nameSpan *parser.Span) Symbol {
	s := Symbol{Kind: kind, Name: name, Path: tree.File}
	if span := significantSpanOf(decl); span != nil {
		s.Span = *span
	}
	if nameSpan != nil {
		s.NameSpan = *nameSpan
	} else {
		s.NameSpan = parser.Span{Start: s.Span.Start, End: s.Span.Start}
	}
	return s
}

// enclosingType names the innermost class, interface or trait among the
// ancestors.
func enclosingType(ancestors []*parser.Phrase, src []byte, namespace string) string {
	for i := len(ancestors) - 1; i >= 0; i-- {
		var header *parser.Phrase
		switch ancestors[i].Kind {
		case parser.PhraseClassDeclaration:
			header = ancestors[i].FirstChildOfKind(parser.PhraseClassDeclarationHeader)
		case parser.PhraseInterfaceDeclaration:
			header = ancestors[i].FirstChildOfKind(parser.PhraseInterfaceDeclarationHeader)
		case parser.PhraseTraitDeclaration:
			header = ancestors[i].FirstChildOfKind(parser.PhraseTraitDeclarationHeader)
		case parser.PhraseAnonymousClassDeclaration:
			return "class@anonymous"
		default:
			continue
		}
		if header == nil {
			return ""
		}
		if tok := header.FirstTokenOfKind(parser.TokenName); tok != nil {
			return qualify(namespace, tok.Text(src))
		}
		return ""
	}
	return ""
}

func qualify(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + `\` + name
}

// phraseText concatenates the significant tokens under n.
func phraseText(n parser.Node, src []byte) string {
	var b strings.Builder
	for _, t := range parser.Tokens(n) {
		if !t.Kind.IsTrivia() {
			b.WriteString(t.Text(src))
		}
	}
	return b.String()
}

func significantSpanOf(n parser.Node) *parser.Span {
	return significantSpan(parser.Tokens(n))
}

// FindSymbols ranks the workspace symbols against a query. An empty query
// returns every symbol.
func (c *Codebase) FindSymbols(query string) []Symbol {
	all := c.AllSymbols()
	if query == "" {
		return all
	}

	names := make([]string, len(all))
	for i, s := range all {
		names[i] = s.ShortName()
	}
	ranks := fuzzy.RankFindFold(query, names)
	sort.Stable(ranks)

	result := make([]Symbol, 0, len(ranks))
	for _, r := range ranks {
		result = append(result, all[r.OriginalIndex])
	}
	return result
}
