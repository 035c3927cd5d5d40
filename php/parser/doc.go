// Package parser implements a lexer and an error-tolerant parser for PHP 7.
//
// The lexer is a state machine over a stack of modes (scripting code, the
// various string bodies, property lookups and so on). Each token records the
// mode stack it was scanned with, so scanning can resume at any token with
// NewLexerAt.
//
// Parse always returns a tree. The tree is lossless: every byte of input,
// whitespace and comments included, belongs to exactly one token in it.
// Syntax errors appear as ParseError nodes holding the tokens that were
// skipped and the token kinds that were expected.
//
//	tree := parser.Parse(src)
//	for _, err := range parser.Errors(tree.Root) {
//		pos := tree.Lines.Position(err.Offset)
//		fmt.Printf("%s: %s\n", pos, err)
//	}
package parser
