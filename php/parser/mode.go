package parser

// LexerMode is a lexical state. The lexer keeps a stack of them; the top
// decides how the next token is recognised.
type LexerMode int

const (
	ModeInitial LexerMode = iota
	ModeScripting
	ModeLookingForProperty
	ModeDoubleQuotes
	ModeNowDoc
	ModeHereDoc
	ModeEndHereDoc
	ModeBacktick
	ModeVarOffset
	ModeLookingForVarName
)

var lexerModeNames = map[LexerMode]string{
	ModeInitial:            "Initial",
	ModeScripting:          "Scripting",
	ModeLookingForProperty: "LookingForProperty",
	ModeDoubleQuotes:       "DoubleQuotes",
	ModeNowDoc:             "NowDoc",
	ModeHereDoc:            "HereDoc",
	ModeEndHereDoc:         "EndHereDoc",
	ModeBacktick:           "Backtick",
	ModeVarOffset:          "VarOffset",
	ModeLookingForVarName:  "LookingForVarName",
}

func (m LexerMode) String() string {
	if name, ok := lexerModeNames[m]; ok {
		return name
	}
	return "Unknown"
}

// modeStack is a persistent stack: push and pop build a new slice so that
// snapshots handed out with earlier tokens never change.
type modeStack []LexerMode

func (s modeStack) top() LexerMode {
	if len(s) == 0 {
		return ModeInitial
	}
	return s[len(s)-1]
}

func (s modeStack) push(m LexerMode) modeStack {
	next := make(modeStack, len(s)+1)
	copy(next, s)
	next[len(s)] = m
	return next
}

func (s modeStack) pop() modeStack {
	if len(s) <= 1 {
		return modeStack{ModeInitial}
	}
	next := make(modeStack, len(s)-1)
	copy(next, s)
	return next
}

// swap replaces the top mode.
func (s modeStack) swap(m LexerMode) modeStack {
	next := make(modeStack, len(s))
	copy(next, s)
	if len(next) == 0 {
		return modeStack{m}
	}
	next[len(next)-1] = m
	return next
}
