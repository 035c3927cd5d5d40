package parser

import (
	"bytes"
	"strings"
)

// Lexer turns PHP source into tokens. Every byte of input ends up in exactly
// one token; Lex returns EndOfFile once the input is exhausted.
type Lexer struct {
	input         []byte
	pos           int
	modes         modeStack
	heredocLabels []string
	lines         []int
	haltState     int
}

const haltDone = 4

func NewLexer(input []byte) *Lexer {
	return &Lexer{
		input: input,
		modes: modeStack{ModeInitial},
		lines: []int{0},
	}
}

// NewLexerAt starts scanning at offset with the given mode stack, which is
// normally the Modes snapshot of the token found at that offset.
func NewLexerAt(input []byte, offset int, modes []LexerMode) *Lexer {
	offset = max(0, min(offset, len(input)))
	l := &Lexer{
		input: input,
		pos:   offset,
		lines: []int{0},
	}
	if len(modes) == 0 {
		l.modes = modeStack{ModeInitial}
	} else {
		l.modes = append(modeStack(nil), modes...)
	}
	for i := 0; i < offset; i++ {
		if isLineBreak(input, i) {
			l.lines = append(l.lines, i+1)
		}
	}
	l.heredocLabels = recoverHeredocLabels(input[:offset], l.modes)
	return l
}

// LineTable returns the line starts seen so far. After EndOfFile has been
// returned it covers the whole input.
func (l *Lexer) LineTable() *LineTable {
	starts := make([]int, len(l.lines))
	copy(starts, l.lines)
	return &LineTable{starts: starts, size: len(l.input)}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	if isLineBreak(l.input, l.pos) {
		l.lines = append(l.lines, l.pos+1)
	}
	l.pos++
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

// isLineBreak reports whether a line ends at input[i]. A CR LF pair ends one
// line, at the LF.
func isLineBreak(input []byte, i int) bool {
	switch input[i] {
	case '\n':
		return true
	case '\r':
		return i+1 >= len(input) || input[i+1] != '\n'
	}
	return false
}

func (l *Lexer) atLineStart() bool {
	if l.pos == 0 {
		return true
	}
	ch := l.input[l.pos-1]
	return ch == '\n' || ch == '\r'
}

func (l *Lexer) Lex() *Token {
	modes := l.modes
	start := l.pos
	if start >= len(l.input) {
		return &Token{Kind: TokenEndOfFile, Offset: start, Modes: modes}
	}
	if l.haltState == haltDone {
		l.advanceN(len(l.input) - l.pos)
		return &Token{Kind: TokenText, Offset: start, Length: l.pos - start, Modes: modes}
	}

	kind := l.scan()
	if l.pos == start {
		l.advance()
		kind = TokenUnknown
	}
	return &Token{Kind: kind, Offset: start, Length: l.pos - start, Modes: modes}
}

func (l *Lexer) scan() TokenKind {
	for {
		var kind TokenKind
		var ok bool
		switch l.modes.top() {
		case ModeInitial:
			return l.scanInitial()
		case ModeScripting:
			return l.scanScripting()
		case ModeDoubleQuotes:
			return l.scanQuoted('"', TokenDoubleQuote)
		case ModeBacktick:
			return l.scanQuoted('`', TokenBacktick)
		case ModeHereDoc:
			return l.scanHereDoc(true)
		case ModeNowDoc:
			return l.scanHereDoc(false)
		case ModeVarOffset:
			return l.scanVarOffset()
		case ModeEndHereDoc:
			kind, ok = l.scanEndHereDoc()
		case ModeLookingForProperty:
			kind, ok = l.scanLookingForProperty()
		case ModeLookingForVarName:
			kind, ok = l.scanLookingForVarName()
		default:
			l.modes = l.modes.swap(ModeScripting)
		}
		if ok {
			return kind
		}
	}
}

func (l *Lexer) scanInitial() TokenKind {
	if kind, n := openTagAt(l.input, l.pos); n > 0 {
		l.advanceN(n)
		l.modes = l.modes.swap(ModeScripting)
		return kind
	}
	for l.pos < len(l.input) {
		if l.peek() == '<' {
			if _, n := openTagAt(l.input, l.pos); n > 0 {
				break
			}
		}
		l.advance()
	}
	return TokenText
}

// openTagAt returns the open tag at input[i] and its length, including the
// single whitespace character that must follow "<?php".
func openTagAt(input []byte, i int) (TokenKind, int) {
	rest := input[i:]
	if bytes.HasPrefix(rest, []byte("<?=")) {
		return TokenOpenTagEcho, 3
	}
	if len(rest) < 5 || !strings.EqualFold(string(rest[:5]), "<?php") {
		return TokenUnknown, 0
	}
	if len(rest) == 5 {
		return TokenOpenTag, 5
	}
	switch rest[5] {
	case ' ', '\t', '\n':
		return TokenOpenTag, 6
	case '\r':
		if len(rest) > 6 && rest[6] == '\n' {
			return TokenOpenTag, 7
		}
		return TokenOpenTag, 6
	}
	return TokenUnknown, 0
}

func (l *Lexer) scanScripting() TokenKind {
	kind := l.scanScriptingToken()
	if kind == TokenHaltCompiler || l.haltState != 0 {
		l.trackHalt(kind)
	}
	return kind
}

// trackHalt follows "__halt_compiler ( ) ;" so that everything after it can
// be returned as a single Text token.
func (l *Lexer) trackHalt(kind TokenKind) {
	if kind.IsTrivia() {
		return
	}
	switch {
	case kind == TokenHaltCompiler:
		l.haltState = 1
	case l.haltState == 1 && kind == TokenOpenParenthesis:
		l.haltState = 2
	case l.haltState == 2 && kind == TokenCloseParenthesis:
		l.haltState = 3
	case l.haltState == 3 && (kind == TokenSemicolon || kind == TokenCloseTag):
		l.haltState = haltDone
	default:
		l.haltState = 0
	}
}

func (l *Lexer) scanScriptingToken() TokenKind {
	ch := l.peek()
	switch {
	case isWhitespace(ch):
		l.scanWhitespace()
		return TokenWhitespace
	case ch == '#' || (ch == '/' && l.peekN(1) == '/'):
		l.scanLineComment()
		return TokenComment
	case ch == '/' && l.peekN(1) == '*':
		return l.scanBlockComment()
	case ch == '?' && l.peekN(1) == '>':
		l.advanceN(2)
		switch l.peek() {
		case '\n':
			l.advance()
		case '\r':
			l.advance()
			if l.peek() == '\n' {
				l.advance()
			}
		}
		l.modes = l.modes.swap(ModeInitial)
		return TokenCloseTag
	case ch == '$' && isLabelStart(l.peekN(1)):
		l.advance()
		l.scanLabel()
		return TokenVariableName
	case isLabelStart(ch):
		return l.scanLabelOrKeyword()
	case isDigit(ch) || (ch == '.' && isDigit(l.peekN(1))):
		return l.scanNumber()
	case ch == '\'':
		return l.scanSingleQuoted()
	case ch == '"':
		return l.scanDoubleQuoteStart()
	case ch == '`':
		l.advance()
		l.modes = l.modes.push(ModeBacktick)
		return TokenBacktick
	case ch == '<' && l.peekN(1) == '<' && l.peekN(2) == '<':
		if label, nowdoc, n, ok := heredocOpenerAt(l.input, l.pos); ok {
			l.advanceN(n)
			l.heredocLabels = append(l.heredocLabels, label)
			if nowdoc {
				l.modes = l.modes.push(ModeNowDoc)
			} else {
				l.modes = l.modes.push(ModeHereDoc)
			}
			return TokenStartHeredoc
		}
	case ch == '(':
		if kind, n := castAt(l.input, l.pos); n > 0 {
			l.advanceN(n)
			return kind
		}
	case ch == '{':
		l.advance()
		l.modes = l.modes.push(ModeScripting)
		return TokenOpenBrace
	case ch == '}':
		l.advance()
		if len(l.modes) > 1 {
			l.modes = l.modes.pop()
		}
		return TokenCloseBrace
	case ch == '-' && l.peekN(1) == '>':
		l.advanceN(2)
		l.modes = l.modes.push(ModeLookingForProperty)
		return TokenArrow
	}
	return l.scanOperator()
}

func (l *Lexer) scanWhitespace() {
	for isWhitespace(l.peek()) && l.pos < len(l.input) {
		l.advance()
	}
}

// scanLineComment stops before "?>" and includes the line terminator.
func (l *Lexer) scanLineComment() {
	for l.pos < len(l.input) {
		ch := l.peek()
		if ch == '?' && l.peekN(1) == '>' {
			return
		}
		l.advance()
		if ch == '\n' {
			return
		}
		if ch == '\r' {
			if l.peek() == '\n' {
				l.advance()
			}
			return
		}
	}
}

func (l *Lexer) scanBlockComment() TokenKind {
	kind := TokenComment
	if l.peekN(2) == '*' && isWhitespace(l.peekN(3)) && l.pos+3 < len(l.input) {
		kind = TokenDocumentComment
	}
	l.advanceN(2)
	for l.pos < len(l.input) {
		if l.peek() == '*' && l.peekN(1) == '/' {
			l.advanceN(2)
			break
		}
		l.advance()
	}
	return kind
}

func (l *Lexer) scanLabel() {
	for l.pos < len(l.input) && isLabelChar(l.peek()) {
		l.advance()
	}
}

func (l *Lexer) scanLabelOrKeyword() TokenKind {
	start := l.pos
	l.scanLabel()
	kind := LookupKeyword(string(l.input[start:l.pos]))
	if kind == TokenYield {
		if n := yieldFromSuffix(l.input, l.pos); n > 0 {
			l.advanceN(n)
			return TokenYieldFrom
		}
	}
	return kind
}

// yieldFromSuffix returns the length of the whitespace plus "from" that
// turns a preceding "yield" into "yield from".
func yieldFromSuffix(input []byte, i int) int {
	j := i
	for j < len(input) && isWhitespace(input[j]) {
		j++
	}
	if j == i || len(input)-j < 4 || !strings.EqualFold(string(input[j:j+4]), "from") {
		return 0
	}
	if j+4 < len(input) && isLabelChar(input[j+4]) {
		return 0
	}
	return j + 4 - i
}

func (l *Lexer) scanNumber() TokenKind {
	if l.peek() == '0' {
		switch l.peekN(1) {
		case 'x', 'X':
			if isHexDigit(l.peekN(2)) {
				l.advanceN(2)
				l.scanDigits(isHexDigit)
				return TokenIntegerLiteral
			}
		case 'b', 'B':
			if isBinaryDigit(l.peekN(2)) {
				l.advanceN(2)
				l.scanDigits(isBinaryDigit)
				return TokenIntegerLiteral
			}
		}
	}

	kind := TokenIntegerLiteral
	l.scanDigits(isDigit)
	if l.peek() == '.' {
		l.advance()
		l.scanDigits(isDigit)
		kind = TokenFloatingLiteral
	}
	if ch := l.peek(); ch == 'e' || ch == 'E' {
		next := l.peekN(1)
		switch {
		case isDigit(next):
			l.advance()
			l.scanDigits(isDigit)
			kind = TokenFloatingLiteral
		case (next == '+' || next == '-') && isDigit(l.peekN(2)):
			l.advanceN(2)
			l.scanDigits(isDigit)
			kind = TokenFloatingLiteral
		}
	}
	return kind
}

// scanDigits accepts single underscores between digits.
func (l *Lexer) scanDigits(accept func(byte) bool) {
	for l.pos < len(l.input) {
		switch {
		case accept(l.peek()):
			l.advance()
		case l.peek() == '_' && accept(l.peekN(1)) && l.pos+1 < len(l.input):
			l.advance()
		default:
			return
		}
	}
}

func (l *Lexer) scanSingleQuoted() TokenKind {
	l.advance()
	for l.pos < len(l.input) {
		switch l.advance() {
		case '\\':
			l.advance()
		case '\'':
			return TokenStringLiteral
		}
	}
	return TokenEncapsulatedAndWhitespace
}

// scanDoubleQuoteStart returns the whole string as one StringLiteral when it
// contains no interpolation. Otherwise only the quote is consumed and the
// body is scanned in DoubleQuotes mode.
func (l *Lexer) scanDoubleQuoteStart() TokenKind {
	for i := l.pos + 1; i < len(l.input); i++ {
		switch {
		case l.input[i] == '\\':
			i++
		case l.input[i] == '"':
			l.advanceN(i + 1 - l.pos)
			return TokenStringLiteral
		case interpolationAt(l.input, i):
			l.advance()
			l.modes = l.modes.push(ModeDoubleQuotes)
			return TokenDoubleQuote
		}
	}
	l.advanceN(len(l.input) - l.pos)
	return TokenEncapsulatedAndWhitespace
}

func interpolationAt(input []byte, i int) bool {
	if i+1 >= len(input) {
		return false
	}
	switch input[i] {
	case '$':
		return isLabelStart(input[i+1]) || input[i+1] == '{'
	case '{':
		return input[i+1] == '$'
	}
	return false
}

// scanInterpolation scans a variable, "${" or "{$" inside an interpolating
// string body.
func (l *Lexer) scanInterpolation() (TokenKind, bool) {
	ch := l.peek()
	switch {
	case ch == '$' && isLabelStart(l.peekN(1)):
		l.advance()
		l.scanLabel()
		switch {
		case l.peek() == '[':
			l.modes = l.modes.push(ModeVarOffset)
		case l.peek() == '-' && l.peekN(1) == '>' && isLabelStart(l.peekN(2)):
			l.modes = l.modes.push(ModeLookingForProperty)
		}
		return TokenVariableName, true
	case ch == '$' && l.peekN(1) == '{':
		l.advanceN(2)
		l.modes = l.modes.push(ModeLookingForVarName)
		return TokenDollarCurlyOpen, true
	case ch == '{' && l.peekN(1) == '$':
		l.advance()
		l.modes = l.modes.push(ModeScripting)
		return TokenCurlyOpen, true
	}
	return TokenUnknown, false
}

func (l *Lexer) scanQuoted(closing byte, closingKind TokenKind) TokenKind {
	if l.peek() == closing {
		l.advance()
		l.modes = l.modes.pop()
		return closingKind
	}
	if kind, ok := l.scanInterpolation(); ok {
		return kind
	}
	l.scanBody(closing, false, true)
	return TokenEncapsulatedAndWhitespace
}

func (l *Lexer) scanHereDoc(interpolate bool) TokenKind {
	if l.atLineStart() {
		if n := l.heredocEndAt(l.pos); n > 0 {
			l.advanceN(n)
			l.endHeredoc()
			return TokenEndHeredoc
		}
	}
	if interpolate {
		if kind, ok := l.scanInterpolation(); ok {
			return kind
		}
	}
	l.scanBody(0, true, interpolate)
	if l.pos < len(l.input) && l.atLineStart() && l.heredocEndAt(l.pos) > 0 {
		l.modes = l.modes.swap(ModeEndHereDoc)
	}
	return TokenEncapsulatedAndWhitespace
}

// scanBody consumes string text up to the closing delimiter, an
// interpolation, the heredoc terminator or end of input.
func (l *Lexer) scanBody(closing byte, heredoc, interpolate bool) {
	for l.pos < len(l.input) {
		if heredoc && l.atLineStart() && l.heredocEndAt(l.pos) > 0 {
			return
		}
		ch := l.peek()
		if closing != 0 && ch == closing {
			return
		}
		if interpolate {
			if interpolationAt(l.input, l.pos) {
				return
			}
			if ch == '\\' {
				l.advance()
			}
		}
		l.advance()
	}
}

func (l *Lexer) scanEndHereDoc() (TokenKind, bool) {
	if n := l.heredocEndAt(l.pos); n > 0 {
		l.advanceN(n)
		l.endHeredoc()
		return TokenEndHeredoc, true
	}
	l.endHeredoc()
	return TokenUnknown, false
}

func (l *Lexer) endHeredoc() {
	l.modes = l.modes.pop()
	if len(l.heredocLabels) > 0 {
		l.heredocLabels = l.heredocLabels[:len(l.heredocLabels)-1]
	}
}

// heredocEndAt returns the length of the closing label at input[i], or 0.
// The label must be followed by an optional ';' and then a line break or
// end of input.
func (l *Lexer) heredocEndAt(i int) int {
	if len(l.heredocLabels) == 0 {
		return 0
	}
	label := l.heredocLabels[len(l.heredocLabels)-1]
	if !bytes.HasPrefix(l.input[i:], []byte(label)) {
		return 0
	}
	j := i + len(label)
	if j < len(l.input) && l.input[j] == ';' {
		j++
	}
	if j == len(l.input) || l.input[j] == '\n' || l.input[j] == '\r' {
		return len(label)
	}
	return 0
}

// heredocOpenerAt parses "<<<LABEL", "<<<\"LABEL\"" or "<<<'LABEL'" followed
// by a line break. The returned length includes the line break.
func heredocOpenerAt(input []byte, i int) (label string, nowdoc bool, n int, ok bool) {
	if !bytes.HasPrefix(input[i:], []byte("<<<")) {
		return "", false, 0, false
	}
	j := i + 3
	for j < len(input) && (input[j] == ' ' || input[j] == '\t') {
		j++
	}
	var quote byte
	if j < len(input) && (input[j] == '\'' || input[j] == '"') {
		quote = input[j]
		j++
	}
	if j >= len(input) || !isLabelStart(input[j]) {
		return "", false, 0, false
	}
	start := j
	for j < len(input) && isLabelChar(input[j]) {
		j++
	}
	label = string(input[start:j])
	if quote != 0 {
		if j >= len(input) || input[j] != quote {
			return "", false, 0, false
		}
		j++
	}
	switch {
	case j < len(input) && input[j] == '\n':
		j++
	case j < len(input) && input[j] == '\r':
		j++
		if j < len(input) && input[j] == '\n' {
			j++
		}
	default:
		return "", false, 0, false
	}
	return label, quote == '\'', j - i, true
}

// recoverHeredocLabels finds the labels of the heredocs that are still open
// when scanning resumes inside one.
func recoverHeredocLabels(prefix []byte, modes modeStack) []string {
	open := 0
	for _, m := range modes {
		if m == ModeHereDoc || m == ModeNowDoc || m == ModeEndHereDoc {
			open++
		}
	}
	if open == 0 {
		return nil
	}
	var labels []string
	for i := 0; i < len(prefix); i++ {
		if prefix[i] != '<' {
			continue
		}
		if label, _, n, ok := heredocOpenerAt(prefix, i); ok {
			labels = append(labels, label)
			i += n - 1
		}
	}
	if len(labels) > open {
		labels = labels[len(labels)-open:]
	}
	return labels
}

var castTypes = map[string]TokenKind{
	"int":     TokenIntegerCast,
	"integer": TokenIntegerCast,
	"bool":    TokenBooleanCast,
	"boolean": TokenBooleanCast,
	"float":   TokenFloatCast,
	"double":  TokenFloatCast,
	"real":    TokenFloatCast,
	"string":  TokenStringCast,
	"binary":  TokenStringCast,
	"array":   TokenArrayCast,
	"object":  TokenObjectCast,
	"unset":   TokenUnsetCast,
}

// castAt recognises "(" type ")" with optional blanks inside the parentheses.
func castAt(input []byte, i int) (TokenKind, int) {
	j := i + 1
	for j < len(input) && (input[j] == ' ' || input[j] == '\t') {
		j++
	}
	start := j
	for j < len(input) && isLetter(input[j]) {
		j++
	}
	kind, ok := castTypes[strings.ToLower(string(input[start:j]))]
	if !ok {
		return TokenUnknown, 0
	}
	for j < len(input) && (input[j] == ' ' || input[j] == '\t') {
		j++
	}
	if j >= len(input) || input[j] != ')' {
		return TokenUnknown, 0
	}
	return kind, j + 1 - i
}

func (l *Lexer) scanVarOffset() TokenKind {
	ch := l.peek()
	switch {
	case ch == '[':
		l.advance()
		return TokenOpenBracket
	case ch == ']':
		l.advance()
		l.modes = l.modes.pop()
		return TokenCloseBracket
	case isDigit(ch):
		l.scanLabel()
		return TokenIntegerLiteral
	case ch == '$' && isLabelStart(l.peekN(1)):
		l.advance()
		l.scanLabel()
		return TokenVariableName
	case isLabelStart(ch):
		l.scanLabel()
		return TokenName
	case ch == '-':
		l.advance()
		return TokenMinus
	}
	l.advance()
	l.modes = l.modes.pop()
	return TokenUnknown
}

func (l *Lexer) scanLookingForProperty() (TokenKind, bool) {
	ch := l.peek()
	switch {
	case isWhitespace(ch):
		l.scanWhitespace()
		return TokenWhitespace, true
	case ch == '-' && l.peekN(1) == '>':
		l.advanceN(2)
		return TokenArrow, true
	case isLabelStart(ch):
		l.scanLabel()
		l.modes = l.modes.pop()
		return TokenName, true
	}
	l.modes = l.modes.pop()
	return TokenUnknown, false
}

func (l *Lexer) scanLookingForVarName() (TokenKind, bool) {
	if isLabelStart(l.peek()) {
		j := l.pos
		for j < len(l.input) && isLabelChar(l.input[j]) {
			j++
		}
		if j < len(l.input) && (l.input[j] == '[' || l.input[j] == '}') {
			l.scanLabel()
			l.modes = l.modes.swap(ModeScripting)
			return TokenName, true
		}
	}
	l.modes = l.modes.swap(ModeScripting)
	return TokenUnknown, false
}

type operator struct {
	text string
	kind TokenKind
}

// operators is ordered longest first.
var operators = []operator{
	{"<<=", TokenLessThanLessThanEquals},
	{">>=", TokenGreaterThanGreaterThanEquals},
	{"**=", TokenAsteriskAsteriskEquals},
	{"...", TokenEllipsis},
	{"??=", TokenQuestionQuestionEquals},
	{"===", TokenEqualsEqualsEquals},
	{"!==", TokenExclamationEqualsEquals},
	{"<=>", TokenSpaceship},
	{"==", TokenEqualsEquals},
	{"!=", TokenExclamationEquals},
	{"<>", TokenExclamationEquals},
	{"<=", TokenLessThanEquals},
	{">=", TokenGreaterThanEquals},
	{"&&", TokenAmpersandAmpersand},
	{"||", TokenBarBar},
	{"++", TokenPlusPlus},
	{"--", TokenMinusMinus},
	{"+=", TokenPlusEquals},
	{"-=", TokenMinusEquals},
	{"*=", TokenAsteriskEquals},
	{"/=", TokenForwardSlashEquals},
	{".=", TokenDotEquals},
	{"%=", TokenPercentEquals},
	{"&=", TokenAmpersandEquals},
	{"|=", TokenBarEquals},
	{"^=", TokenCaretEquals},
	{"<<", TokenLessThanLessThan},
	{">>", TokenGreaterThanGreaterThan},
	{"??", TokenQuestionQuestion},
	{"::", TokenColonColon},
	{"=>", TokenFatArrow},
	{"**", TokenAsteriskAsterisk},
	{"=", TokenEquals},
	{"~", TokenTilde},
	{":", TokenColon},
	{";", TokenSemicolon},
	{"!", TokenExclamation},
	{"$", TokenDollar},
	{"/", TokenForwardSlash},
	{"%", TokenPercent},
	{",", TokenComma},
	{"@", TokenAtSymbol},
	{"?", TokenQuestion},
	{"<", TokenLessThan},
	{">", TokenGreaterThan},
	{"*", TokenAsterisk},
	{"&", TokenAmpersand},
	{"+", TokenPlus},
	{"-", TokenMinus},
	{"[", TokenOpenBracket},
	{"]", TokenCloseBracket},
	{"(", TokenOpenParenthesis},
	{")", TokenCloseParenthesis},
	{"|", TokenBar},
	{"^", TokenCaret},
	{".", TokenDot},
	{"\\", TokenBackslash},
}

func (l *Lexer) scanOperator() TokenKind {
	rest := l.input[l.pos:]
	for _, op := range operators {
		if bytes.HasPrefix(rest, []byte(op.text)) {
			l.advanceN(len(op.text))
			return op.kind
		}
	}
	l.advance()
	return TokenUnknown
}

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isBinaryDigit(ch byte) bool {
	return ch == '0' || ch == '1'
}

func isLabelStart(ch byte) bool {
	return isLetter(ch) || ch == '_' || ch >= 0x80
}

func isLabelChar(ch byte) bool {
	return isLabelStart(ch) || isDigit(ch)
}
