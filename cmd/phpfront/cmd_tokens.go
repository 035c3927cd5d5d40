package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/phpfront/format"
	"github.com/dhamidi/phpfront/php/parser"
	"github.com/spf13/cobra"
)

func newTokensCmd() *cobra.Command {
	var resumeAt int
	var withTrivia bool

	cmd := &cobra.Command{
		Use:   "tokens <file|->",
		Short: "Run the lexer alone and list its tokens",
		Long: `List every token with its offset, length, position, kind, the lexer
mode stack it was scanned in and its text.

With --resume-at, the file is lexed once to find the token starting at or
before the offset, and a second lexer is started there from that token's
mode stack.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(args[0])
			if err != nil {
				return err
			}

			tokens, lines := lexAll(parser.NewLexer(data))
			if cmd.Flags().Changed("resume-at") {
				start := tokenAtOrBefore(tokens, resumeAt)
				if start == nil {
					return fmt.Errorf("no token at offset %d", resumeAt)
				}
				log.Debugf("resuming at %d in modes %v", start.Offset, start.Modes)
				tokens, _ = lexAll(parser.NewLexerAt(data, start.Offset, start.Modes))
			}

			if !withTrivia {
				significant := tokens[:0:0]
				for _, t := range tokens {
					if !t.Kind.IsTrivia() {
						significant = append(significant, t)
					}
				}
				tokens = significant
			}
			return format.WriteTokens(os.Stdout, data, lines, tokens)
		},
	}

	cmd.Flags().IntVar(&resumeAt, "resume-at", 0, "start lexing at the token covering this byte offset")
	cmd.Flags().BoolVar(&withTrivia, "trivia", true, "include whitespace and comments")

	return cmd
}

// lexAll runs l to the end of input. The EndOfFile token is included.
func lexAll(l *parser.Lexer) ([]*parser.Token, *parser.LineTable) {
	var tokens []*parser.Token
	for {
		t := l.Lex()
		tokens = append(tokens, t)
		if t.Kind == parser.TokenEndOfFile {
			return tokens, l.LineTable()
		}
	}
}

func tokenAtOrBefore(tokens []*parser.Token, offset int) *parser.Token {
	var found *parser.Token
	for _, t := range tokens {
		if t.Offset > offset {
			break
		}
		found = t
	}
	return found
}
