package parser

// TokenStream buffers lexer output so the parser can look ahead past trivia.
type TokenStream struct {
	lexer  *Lexer
	buffer []*Token
	eof    *Token
}

func NewTokenStream(lexer *Lexer) *TokenStream {
	return &TokenStream{lexer: lexer}
}

func (s *TokenStream) fill(n int) bool {
	for len(s.buffer) < n {
		if s.eof != nil {
			return false
		}
		tok := s.lexer.Lex()
		s.buffer = append(s.buffer, tok)
		if tok.Kind == TokenEndOfFile {
			s.eof = tok
		}
	}
	return true
}

func skipped(tok *Token, allowDoc bool) bool {
	switch tok.Kind {
	case TokenWhitespace, TokenComment:
		return true
	case TokenDocumentComment:
		return !allowDoc
	}
	return false
}

// Peek returns the n-th significant token ahead without consuming anything.
// Peek(0, false) is the token Next would return.
func (s *TokenStream) Peek(n int, allowDoc bool) *Token {
	seen := -1
	for i := 0; ; i++ {
		if !s.fill(i + 1) {
			return s.eof
		}
		tok := s.buffer[i]
		if skipped(tok, allowDoc) {
			continue
		}
		seen++
		if seen == n || tok.Kind == TokenEndOfFile {
			return tok
		}
	}
}

// Next consumes the next significant token and returns it together with the
// trivia that preceded it. After EndOfFile it keeps returning EndOfFile with
// no trivia.
func (s *TokenStream) Next(allowDoc bool) (*Token, []*Token) {
	var trivia []*Token
	for {
		if !s.fill(1) {
			return s.eof, trivia
		}
		tok := s.buffer[0]
		s.buffer = s.buffer[1:]
		if skipped(tok, allowDoc) {
			trivia = append(trivia, tok)
			continue
		}
		if tok.Kind == TokenEndOfFile {
			// keep returning the same token
			s.buffer = append(s.buffer[:0:0], tok)
		}
		return tok, trivia
	}
}

// Lines returns the line table of the underlying lexer.
func (s *TokenStream) Lines() *LineTable {
	return s.lexer.LineTable()
}
