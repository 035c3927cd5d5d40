package parser

import "testing"

func TestTokenStreamPeek(t *testing.T) {
	stream := NewTokenStream(NewLexer([]byte("<?php /** doc */ $a; // c\n")))

	tests := []struct {
		n        int
		allowDoc bool
		want     TokenKind
	}{
		{0, false, TokenOpenTag},
		{1, false, TokenVariableName},
		{1, true, TokenDocumentComment},
		{2, false, TokenSemicolon},
		{3, false, TokenEndOfFile},
		{10, false, TokenEndOfFile},
	}

	for _, tt := range tests {
		if got := stream.Peek(tt.n, tt.allowDoc).Kind; got != tt.want {
			t.Errorf("Peek(%d, %v) = %v, want %v", tt.n, tt.allowDoc, got, tt.want)
		}
	}
}

func TestTokenStreamNext(t *testing.T) {
	stream := NewTokenStream(NewLexer([]byte("<?php /** doc */ $a; // c\n")))

	tests := []struct {
		kind   TokenKind
		trivia []TokenKind
	}{
		{TokenOpenTag, nil},
		{TokenVariableName, []TokenKind{TokenDocumentComment, TokenWhitespace}},
		{TokenSemicolon, nil},
		{TokenEndOfFile, []TokenKind{TokenWhitespace, TokenComment}},
		{TokenEndOfFile, nil},
	}

	for i, tt := range tests {
		tok, trivia := stream.Next(false)
		if tok.Kind != tt.kind {
			t.Errorf("Next() #%d = %v, want %v", i, tok.Kind, tt.kind)
		}
		if len(trivia) != len(tt.trivia) {
			t.Errorf("Next() #%d trivia = %d tokens, want %d", i, len(trivia), len(tt.trivia))
			continue
		}
		for j := range trivia {
			if trivia[j].Kind != tt.trivia[j] {
				t.Errorf("Next() #%d trivia[%d] = %v, want %v", i, j, trivia[j].Kind, tt.trivia[j])
			}
		}
	}
}

func TestTokenStreamAllowDoc(t *testing.T) {
	stream := NewTokenStream(NewLexer([]byte("<?php /** doc */ $a;")))
	stream.Next(true)
	tok, trivia := stream.Next(true)
	if tok.Kind != TokenDocumentComment {
		t.Errorf("Next(true) = %v, want %v", tok.Kind, TokenDocumentComment)
	}
	if len(trivia) != 0 {
		t.Errorf("trivia = %d tokens, want 0", len(trivia))
	}
}
