package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dhamidi/phpfront/php/parser"
)

// LineEncoder writes one tab separated line per token in the tree:
// offset, length, line:column, kind, mode stack and quoted text. Tokens
// skipped by error recovery are marked with a trailing "skipped".
type LineEncoder struct {
	w    io.Writer
	tree *parser.Tree
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(tree *parser.Tree) error {
	e.tree = tree
	text, err := e.MarshalText()
	return write(e.w, text, err)
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	src := e.tree.Source

	parser.Walk(e.tree.Root, func(n parser.Node, ancestors []*parser.Phrase) bool {
		switch n := n.(type) {
		case *parser.ParseError:
			for _, t := range n.Skipped {
				writeTokenLine(&sb, e.tree.Lines, t, src)
				sb.WriteString("\tskipped\n")
			}
			return false
		case *parser.Token:
			writeTokenLine(&sb, e.tree.Lines, n, src)
			sb.WriteByte('\n')
		}
		return true
	})
	return []byte(sb.String()), nil
}

// WriteTokens lists tokens straight from a lexer in the same layout.
func WriteTokens(w io.Writer, src []byte, lines *parser.LineTable, tokens []*parser.Token) error {
	var sb strings.Builder
	for _, t := range tokens {
		writeTokenLine(&sb, lines, t, src)
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeTokenLine(sb *strings.Builder, lines *parser.LineTable, t *parser.Token, src []byte) {
	pos := lines.Position(t.Offset)
	fmt.Fprintf(sb, "%d\t%d\t%s\t%s\t%s\t%s",
		t.Offset,
		t.Length,
		pos,
		t.Kind,
		modeList(t.Modes),
		strconv.Quote(t.Text(src)),
	)
}

func modeList(modes []parser.LexerMode) string {
	if len(modes) == 0 {
		return "-"
	}
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = m.String()
	}
	return strings.Join(names, ",")
}
