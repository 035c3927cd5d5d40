package parser

import (
	"fmt"
	"slices"
)

type Option func(*Parser)

func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

// WithStartOffset starts lexing at offset instead of the beginning of the
// input. Combine with WithModes to resume inside PHP code or a string.
func WithStartOffset(offset int) Option {
	return func(p *Parser) {
		p.offset = offset
	}
}

func WithModes(modes ...LexerMode) Option {
	return func(p *Parser) {
		p.modes = modes
	}
}

// Tree is the result of a parse. Root is always a StatementList whose last
// child is the EndOfFile token.
type Tree struct {
	File   string
	Root   *Phrase
	Source []byte
	Lines  *LineTable
}

// InvariantError reports a bug in the parser itself. It is the only
// condition under which Parse panics.
type InvariantError struct {
	Token *Token
	Msg   string
}

func (e *InvariantError) Error() string {
	if e.Token == nil {
		return "parser invariant violated: " + e.Msg
	}
	return fmt.Sprintf("parser invariant violated at offset %d: %s (%s)", e.Token.Offset, e.Msg, e.Token.Kind)
}

// Parser holds the state of a single parse. A new one is made per Parse
// call, so concurrent parses share nothing.
type Parser struct {
	file     string
	offset   int
	modes    []LexerMode
	lexer    *Lexer
	stream   *TokenStream
	stack    []*Phrase
	recover  [][]TokenKind
	consumed int
	eofTaken bool
}

// Parse builds the syntax tree for a PHP source file. It never fails on
// malformed input: problems are recorded as ParseError nodes in the tree.
func Parse(input []byte, opts ...Option) *Tree {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	if p.offset > 0 || len(p.modes) > 0 {
		p.lexer = NewLexerAt(input, p.offset, p.modes)
	} else {
		p.lexer = NewLexer(input)
	}
	p.stream = NewTokenStream(p.lexer)

	root := p.parseRoot()
	return &Tree{
		File:   p.file,
		Root:   root,
		Source: input,
		Lines:  p.lexer.LineTable(),
	}
}

func (p *Parser) parseRoot() *Phrase {
	p.start(PhraseStatementList)
	for {
		p.listBody(p.statement, isStatementStart, nil, statementRecoverSet)
		if p.peek(0).Kind == TokenEndOfFile {
			break
		}
		err := &ParseError{Offset: p.peek(0).Offset}
		p.skipInto(err, 1)
		p.append(err)
	}
	if !p.eofTaken {
		p.next()
	}
	return p.end()
}

func (p *Parser) peek(n int) *Token {
	return p.stream.Peek(n, false)
}

func (p *Parser) check(kind TokenKind) bool {
	return p.peek(0).Kind == kind
}

func (p *Parser) match(kinds ...TokenKind) bool {
	return slices.Contains(kinds, p.peek(0).Kind)
}

func (p *Parser) top() *Phrase {
	return p.stack[len(p.stack)-1]
}

func (p *Parser) start(kind PhraseKind) *Phrase {
	phrase := &Phrase{Kind: kind}
	p.stack = append(p.stack, phrase)
	return phrase
}

func (p *Parser) end() *Phrase {
	phrase := p.top()
	p.stack = p.stack[:len(p.stack)-1]
	return phrase
}

func (p *Parser) append(n Node) {
	switch n := n.(type) {
	case nil:
		return
	case *Token:
		if n == nil {
			return
		}
	case *Phrase:
		if n == nil {
			return
		}
	case *ParseError:
		if n == nil {
			return
		}
	}
	p.top().AddChild(n)
}

// take consumes the next token. Trivia in front of it goes to the innermost
// open phrase; the token itself is returned for the caller to place.
func (p *Parser) take() *Token {
	tok, trivia := p.stream.Next(false)
	for _, t := range trivia {
		p.append(t)
	}
	if tok.Kind == TokenEndOfFile {
		p.eofTaken = true
	} else {
		p.consumed++
	}
	return tok
}

// next consumes the next token and appends it to the innermost open phrase.
func (p *Parser) next() *Token {
	tok := p.take()
	p.append(tok)
	return tok
}

func (p *Parser) optional(kind TokenKind) *Token {
	if p.check(kind) {
		return p.next()
	}
	return nil
}

// expect appends the next token if it is of the given kind. A close tag
// stands in for a missing semicolon. If the token after the next one
// matches, both are wrapped in a ParseError; otherwise a zero-width
// ParseError is appended and nothing is consumed.
func (p *Parser) expect(kind TokenKind) *Token {
	return p.expectOneOf(kind)
}

func (p *Parser) expectOneOf(kinds ...TokenKind) *Token {
	t := p.peek(0)
	if slices.Contains(kinds, t.Kind) {
		return p.next()
	}
	if t.Kind == TokenCloseTag && slices.Contains(kinds, TokenSemicolon) {
		return nil
	}
	if t.Kind != TokenEndOfFile && slices.Contains(kinds, p.peek(1).Kind) {
		err := &ParseError{Offset: t.Offset, Expected: kinds}
		p.skipInto(err, 2)
		p.append(err)
		return nil
	}
	p.append(p.missing(kinds...))
	return nil
}

func (p *Parser) missing(expected ...TokenKind) *ParseError {
	return &ParseError{Offset: p.peek(0).Offset, Expected: expected}
}

// skipInto consumes up to n tokens, with their trivia, into err. EndOfFile
// is never skipped.
func (p *Parser) skipInto(err *ParseError, n int) {
	for i := 0; i < n && !p.check(TokenEndOfFile); i++ {
		tok, trivia := p.stream.Next(false)
		err.Skipped = append(err.Skipped, trivia...)
		err.Skipped = append(err.Skipped, tok)
		p.consumed++
	}
}

// skipUntil consumes tokens until one in set or EndOfFile is next.
func (p *Parser) skipUntil(set []TokenKind, expected ...TokenKind) *ParseError {
	err := &ParseError{Offset: p.peek(0).Offset, Expected: expected}
	for !p.check(TokenEndOfFile) && !p.match(set...) {
		p.skipInto(err, 1)
	}
	return err
}

func (p *Parser) pushRecover(set []TokenKind) {
	p.recover = append(p.recover, set)
}

func (p *Parser) popRecover() {
	p.recover = p.recover[:len(p.recover)-1]
}

// mergedRecoverSet is the union of every active recover set, innermost
// first.
func (p *Parser) mergedRecoverSet() []TokenKind {
	var merged []TokenKind
	for i := len(p.recover) - 1; i >= 0; i-- {
		merged = append(merged, p.recover[i]...)
	}
	return merged
}

// mustProgress returns a function that reports whether any token has been
// consumed since mustProgress was called.
func (p *Parser) mustProgress() func() bool {
	saved := p.consumed
	return func() bool {
		return p.consumed != saved
	}
}

// parseElement appends one list element. An element parser that consumed
// nothing is followed by a forced single-token skip so lists always
// advance. It returns false at end of input.
func (p *Parser) parseElement(element func() Node) bool {
	progressed := p.mustProgress()
	p.append(element())
	if progressed() {
		return true
	}
	if p.check(TokenEndOfFile) {
		return false
	}
	err := &ParseError{Offset: p.peek(0).Offset}
	p.skipInto(err, 1)
	p.append(err)
	return true
}

// recoverInList handles a token that neither starts an element nor ends the
// list. A single stray token is skipped when the one after it looks right.
// Otherwise tokens are skipped up to the nearest recover set of any
// enclosing list; the list continues only if that token belongs to its own
// recover set.
func (p *Parser) recoverInList(starts func(*Token) bool, breakOn, own []TokenKind) bool {
	t := p.peek(0)
	after := p.peek(1)
	if starts(after) || after.Kind == TokenEndOfFile || slices.Contains(breakOn, after.Kind) {
		err := &ParseError{Offset: t.Offset}
		p.skipInto(err, 1)
		p.append(err)
		return true
	}
	merged := p.mergedRecoverSet()
	if slices.Contains(merged, t.Kind) {
		return false
	}
	p.append(p.skipUntil(merged))
	return slices.Contains(own, p.peek(0).Kind)
}

// list parses an undelimited sequence of elements up to a token in breakOn.
func (p *Parser) list(kind PhraseKind, element func() Node, starts func(*Token) bool, breakOn, recoverSet []TokenKind) *Phrase {
	p.start(kind)
	p.listBody(element, starts, breakOn, recoverSet)
	return p.end()
}

func (p *Parser) listBody(element func() Node, starts func(*Token) bool, breakOn, recoverSet []TokenKind) {
	p.pushRecover(recoverSet)
	defer p.popRecover()
	for {
		t := p.peek(0)
		if starts(t) {
			if !p.parseElement(element) {
				return
			}
			continue
		}
		if t.Kind == TokenEndOfFile || slices.Contains(breakOn, t.Kind) {
			return
		}
		if !p.recoverInList(starts, breakOn, recoverSet) {
			return
		}
	}
}

// delimitedList parses elements separated by delimiter up to a token in
// breakOn. A trailing delimiter is accepted. With emptyElements, a
// delimiter may follow another delimiter directly, as in "[, $b]".
func (p *Parser) delimitedList(kind PhraseKind, element func() Node, starts func(*Token) bool, delimiter TokenKind, breakOn []TokenKind, emptyElements bool) *Phrase {
	p.start(kind)
	recoverSet := append([]TokenKind{delimiter}, breakOn...)
	p.pushRecover(recoverSet)
	defer p.popRecover()

	for {
		t := p.peek(0)
		switch {
		case starts(t):
			if !p.parseElement(element) {
				return p.end()
			}
		case t.Kind == delimiter:
			if !emptyElements {
				p.append(p.missing())
			}
		case t.Kind == TokenEndOfFile || slices.Contains(breakOn, t.Kind):
			return p.end()
		default:
			if !p.recoverInList(starts, breakOn, recoverSet) {
				return p.end()
			}
			continue
		}

		t = p.peek(0)
		if t.Kind == delimiter {
			p.next()
			continue
		}
		if t.Kind == TokenEndOfFile || slices.Contains(breakOn, t.Kind) {
			return p.end()
		}
		if !p.recoverInList(starts, breakOn, recoverSet) {
			return p.end()
		}
		if p.check(delimiter) {
			p.next()
		}
	}
}

func tokenIs(kinds ...TokenKind) func(*Token) bool {
	return func(t *Token) bool {
		return slices.Contains(kinds, t.Kind)
	}
}
