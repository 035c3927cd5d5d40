package parser

import (
	"slices"
	"strings"
)

type TokenKind int

const (
	TokenUnknown TokenKind = iota
	TokenEndOfFile

	// Keywords
	TokenAbstract
	TokenArray
	TokenAs
	TokenBreak
	TokenCallable
	TokenCase
	TokenCatch
	TokenClass
	TokenClone
	TokenConst
	TokenContinue
	TokenDeclare
	TokenDefault
	TokenDo
	TokenEcho
	TokenElse
	TokenElseIf
	TokenEmpty
	TokenEndDeclare
	TokenEndFor
	TokenEndForeach
	TokenEndIf
	TokenEndSwitch
	TokenEndWhile
	TokenEval
	TokenExit
	TokenExtends
	TokenFinal
	TokenFinally
	TokenFor
	TokenForeach
	TokenFunction
	TokenGlobal
	TokenGoto
	TokenHaltCompiler
	TokenIf
	TokenImplements
	TokenInclude
	TokenIncludeOnce
	TokenInstanceOf
	TokenInsteadOf
	TokenInterface
	TokenIsset
	TokenList
	TokenAnd
	TokenOr
	TokenXor
	TokenNamespace
	TokenNew
	TokenPrint
	TokenPrivate
	TokenPublic
	TokenProtected
	TokenRequire
	TokenRequireOnce
	TokenReturn
	TokenStatic
	TokenSwitch
	TokenThrow
	TokenTrait
	TokenTry
	TokenUnset
	TokenUse
	TokenVar
	TokenWhile
	TokenYield
	TokenYieldFrom

	// Magic constants
	TokenClassConstant
	TokenDirectoryConstant
	TokenFileConstant
	TokenFunctionConstant
	TokenLineConstant
	TokenMethodConstant
	TokenNamespaceConstant
	TokenTraitConstant

	// Literals and names
	TokenStringLiteral
	TokenFloatingLiteral
	TokenIntegerLiteral
	TokenEncapsulatedAndWhitespace
	TokenText
	TokenName
	TokenVariableName

	// Punctuation and operators
	TokenEquals
	TokenTilde
	TokenColon
	TokenSemicolon
	TokenExclamation
	TokenDollar
	TokenForwardSlash
	TokenPercent
	TokenComma
	TokenAtSymbol
	TokenBacktick
	TokenQuestion
	TokenDoubleQuote
	TokenLessThan
	TokenGreaterThan
	TokenAsterisk
	TokenAmpersandAmpersand
	TokenAmpersand
	TokenAmpersandEquals
	TokenCaretEquals
	TokenLessThanLessThan
	TokenLessThanLessThanEquals
	TokenGreaterThanGreaterThan
	TokenGreaterThanGreaterThanEquals
	TokenBarEquals
	TokenPlus
	TokenPlusEquals
	TokenAsteriskAsterisk
	TokenAsteriskAsteriskEquals
	TokenArrow
	TokenOpenBrace
	TokenOpenBracket
	TokenOpenParenthesis
	TokenCloseBrace
	TokenCloseBracket
	TokenCloseParenthesis
	TokenQuestionQuestion
	TokenQuestionQuestionEquals
	TokenBar
	TokenBarBar
	TokenCaret
	TokenDot
	TokenDotEquals
	TokenCurlyOpen
	TokenMinusMinus
	TokenForwardSlashEquals
	TokenDollarCurlyOpen
	TokenFatArrow
	TokenColonColon
	TokenEllipsis
	TokenPlusPlus
	TokenEqualsEquals
	TokenGreaterThanEquals
	TokenEqualsEqualsEquals
	TokenExclamationEquals
	TokenExclamationEqualsEquals
	TokenLessThanEquals
	TokenSpaceship
	TokenMinus
	TokenMinusEquals
	TokenPercentEquals
	TokenAsteriskEquals
	TokenBackslash

	// Casts
	TokenBooleanCast
	TokenUnsetCast
	TokenStringCast
	TokenObjectCast
	TokenIntegerCast
	TokenFloatCast
	TokenArrayCast

	// Strings and tags
	TokenStartHeredoc
	TokenEndHeredoc
	TokenOpenTag
	TokenOpenTagEcho
	TokenCloseTag

	// Trivia
	TokenComment
	TokenDocumentComment
	TokenWhitespace
)

var tokenKindNames = map[TokenKind]string{
	TokenUnknown:                      "Unknown",
	TokenEndOfFile:                    "EndOfFile",
	TokenAbstract:                     "Abstract",
	TokenArray:                        "Array",
	TokenAs:                           "As",
	TokenBreak:                        "Break",
	TokenCallable:                     "Callable",
	TokenCase:                         "Case",
	TokenCatch:                        "Catch",
	TokenClass:                        "Class",
	TokenClone:                        "Clone",
	TokenConst:                        "Const",
	TokenContinue:                     "Continue",
	TokenDeclare:                      "Declare",
	TokenDefault:                      "Default",
	TokenDo:                           "Do",
	TokenEcho:                         "Echo",
	TokenElse:                         "Else",
	TokenElseIf:                       "ElseIf",
	TokenEmpty:                        "Empty",
	TokenEndDeclare:                   "EndDeclare",
	TokenEndFor:                       "EndFor",
	TokenEndForeach:                   "EndForeach",
	TokenEndIf:                        "EndIf",
	TokenEndSwitch:                    "EndSwitch",
	TokenEndWhile:                     "EndWhile",
	TokenEval:                         "Eval",
	TokenExit:                         "Exit",
	TokenExtends:                      "Extends",
	TokenFinal:                        "Final",
	TokenFinally:                      "Finally",
	TokenFor:                          "For",
	TokenForeach:                      "Foreach",
	TokenFunction:                     "Function",
	TokenGlobal:                       "Global",
	TokenGoto:                         "Goto",
	TokenHaltCompiler:                 "HaltCompiler",
	TokenIf:                           "If",
	TokenImplements:                   "Implements",
	TokenInclude:                      "Include",
	TokenIncludeOnce:                  "IncludeOnce",
	TokenInstanceOf:                   "InstanceOf",
	TokenInsteadOf:                    "InsteadOf",
	TokenInterface:                    "Interface",
	TokenIsset:                        "Isset",
	TokenList:                         "List",
	TokenAnd:                          "And",
	TokenOr:                           "Or",
	TokenXor:                          "Xor",
	TokenNamespace:                    "Namespace",
	TokenNew:                          "New",
	TokenPrint:                        "Print",
	TokenPrivate:                      "Private",
	TokenPublic:                       "Public",
	TokenProtected:                    "Protected",
	TokenRequire:                      "Require",
	TokenRequireOnce:                  "RequireOnce",
	TokenReturn:                       "Return",
	TokenStatic:                       "Static",
	TokenSwitch:                       "Switch",
	TokenThrow:                        "Throw",
	TokenTrait:                        "Trait",
	TokenTry:                          "Try",
	TokenUnset:                        "Unset",
	TokenUse:                          "Use",
	TokenVar:                          "Var",
	TokenWhile:                        "While",
	TokenYield:                        "Yield",
	TokenYieldFrom:                    "YieldFrom",
	TokenClassConstant:                "ClassConstant",
	TokenDirectoryConstant:            "DirectoryConstant",
	TokenFileConstant:                 "FileConstant",
	TokenFunctionConstant:             "FunctionConstant",
	TokenLineConstant:                 "LineConstant",
	TokenMethodConstant:               "MethodConstant",
	TokenNamespaceConstant:            "NamespaceConstant",
	TokenTraitConstant:                "TraitConstant",
	TokenStringLiteral:                "StringLiteral",
	TokenFloatingLiteral:              "FloatingLiteral",
	TokenIntegerLiteral:               "IntegerLiteral",
	TokenEncapsulatedAndWhitespace:    "EncapsulatedAndWhitespace",
	TokenText:                         "Text",
	TokenName:                         "Name",
	TokenVariableName:                 "VariableName",
	TokenEquals:                       "Equals",
	TokenTilde:                        "Tilde",
	TokenColon:                        "Colon",
	TokenSemicolon:                    "Semicolon",
	TokenExclamation:                  "Exclamation",
	TokenDollar:                       "Dollar",
	TokenForwardSlash:                 "ForwardSlash",
	TokenPercent:                      "Percent",
	TokenComma:                        "Comma",
	TokenAtSymbol:                     "AtSymbol",
	TokenBacktick:                     "Backtick",
	TokenQuestion:                     "Question",
	TokenDoubleQuote:                  "DoubleQuote",
	TokenLessThan:                     "LessThan",
	TokenGreaterThan:                  "GreaterThan",
	TokenAsterisk:                     "Asterisk",
	TokenAmpersandAmpersand:           "AmpersandAmpersand",
	TokenAmpersand:                    "Ampersand",
	TokenAmpersandEquals:              "AmpersandEquals",
	TokenCaretEquals:                  "CaretEquals",
	TokenLessThanLessThan:             "LessThanLessThan",
	TokenLessThanLessThanEquals:       "LessThanLessThanEquals",
	TokenGreaterThanGreaterThan:       "GreaterThanGreaterThan",
	TokenGreaterThanGreaterThanEquals: "GreaterThanGreaterThanEquals",
	TokenBarEquals:                    "BarEquals",
	TokenPlus:                         "Plus",
	TokenPlusEquals:                   "PlusEquals",
	TokenAsteriskAsterisk:             "AsteriskAsterisk",
	TokenAsteriskAsteriskEquals:       "AsteriskAsteriskEquals",
	TokenArrow:                        "Arrow",
	TokenOpenBrace:                    "OpenBrace",
	TokenOpenBracket:                  "OpenBracket",
	TokenOpenParenthesis:              "OpenParenthesis",
	TokenCloseBrace:                   "CloseBrace",
	TokenCloseBracket:                 "CloseBracket",
	TokenCloseParenthesis:             "CloseParenthesis",
	TokenQuestionQuestion:             "QuestionQuestion",
	TokenQuestionQuestionEquals:       "QuestionQuestionEquals",
	TokenBar:                          "Bar",
	TokenBarBar:                       "BarBar",
	TokenCaret:                        "Caret",
	TokenDot:                          "Dot",
	TokenDotEquals:                    "DotEquals",
	TokenCurlyOpen:                    "CurlyOpen",
	TokenMinusMinus:                   "MinusMinus",
	TokenForwardSlashEquals:           "ForwardSlashEquals",
	TokenDollarCurlyOpen:              "DollarCurlyOpen",
	TokenFatArrow:                     "FatArrow",
	TokenColonColon:                   "ColonColon",
	TokenEllipsis:                     "Ellipsis",
	TokenPlusPlus:                     "PlusPlus",
	TokenEqualsEquals:                 "EqualsEquals",
	TokenGreaterThanEquals:            "GreaterThanEquals",
	TokenEqualsEqualsEquals:           "EqualsEqualsEquals",
	TokenExclamationEquals:            "ExclamationEquals",
	TokenExclamationEqualsEquals:      "ExclamationEqualsEquals",
	TokenLessThanEquals:               "LessThanEquals",
	TokenSpaceship:                    "Spaceship",
	TokenMinus:                        "Minus",
	TokenMinusEquals:                  "MinusEquals",
	TokenPercentEquals:                "PercentEquals",
	TokenAsteriskEquals:               "AsteriskEquals",
	TokenBackslash:                    "Backslash",
	TokenBooleanCast:                  "BooleanCast",
	TokenUnsetCast:                    "UnsetCast",
	TokenStringCast:                   "StringCast",
	TokenObjectCast:                   "ObjectCast",
	TokenIntegerCast:                  "IntegerCast",
	TokenFloatCast:                    "FloatCast",
	TokenArrayCast:                    "ArrayCast",
	TokenStartHeredoc:                 "StartHeredoc",
	TokenEndHeredoc:                   "EndHeredoc",
	TokenOpenTag:                      "OpenTag",
	TokenOpenTagEcho:                  "OpenTagEcho",
	TokenCloseTag:                     "CloseTag",
	TokenComment:                      "Comment",
	TokenDocumentComment:              "DocumentComment",
	TokenWhitespace:                   "Whitespace",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsTrivia reports whether tokens of this kind are skipped by the parser's
// lookahead. Document comments are trivia unless explicitly requested.
func (k TokenKind) IsTrivia() bool {
	return k == TokenWhitespace || k == TokenComment || k == TokenDocumentComment
}

// Token is a terminal of the syntax tree. Modes is the lexer mode stack as it
// was before the token was scanned; it is shared between tokens and must not
// be modified.
type Token struct {
	Kind   TokenKind
	Offset int
	Length int
	Modes  []LexerMode
}

func (t *Token) End() int {
	return t.Offset + t.Length
}

// Text returns the source text covered by the token.
func (t *Token) Text(src []byte) string {
	if t.Offset < 0 || t.End() > len(src) {
		return ""
	}
	return string(src[t.Offset:t.End()])
}

var keywords = map[string]TokenKind{
	"abstract":        TokenAbstract,
	"and":             TokenAnd,
	"array":           TokenArray,
	"as":              TokenAs,
	"break":           TokenBreak,
	"callable":        TokenCallable,
	"case":            TokenCase,
	"catch":           TokenCatch,
	"class":           TokenClass,
	"clone":           TokenClone,
	"const":           TokenConst,
	"continue":        TokenContinue,
	"declare":         TokenDeclare,
	"default":         TokenDefault,
	"die":             TokenExit,
	"do":              TokenDo,
	"echo":            TokenEcho,
	"else":            TokenElse,
	"elseif":          TokenElseIf,
	"empty":           TokenEmpty,
	"enddeclare":      TokenEndDeclare,
	"endfor":          TokenEndFor,
	"endforeach":      TokenEndForeach,
	"endif":           TokenEndIf,
	"endswitch":       TokenEndSwitch,
	"endwhile":        TokenEndWhile,
	"eval":            TokenEval,
	"exit":            TokenExit,
	"extends":         TokenExtends,
	"final":           TokenFinal,
	"finally":         TokenFinally,
	"for":             TokenFor,
	"foreach":         TokenForeach,
	"function":        TokenFunction,
	"global":          TokenGlobal,
	"goto":            TokenGoto,
	"__halt_compiler": TokenHaltCompiler,
	"if":              TokenIf,
	"implements":      TokenImplements,
	"include":         TokenInclude,
	"include_once":    TokenIncludeOnce,
	"instanceof":      TokenInstanceOf,
	"insteadof":       TokenInsteadOf,
	"interface":       TokenInterface,
	"isset":           TokenIsset,
	"list":            TokenList,
	"namespace":       TokenNamespace,
	"new":             TokenNew,
	"or":              TokenOr,
	"print":           TokenPrint,
	"private":         TokenPrivate,
	"protected":       TokenProtected,
	"public":          TokenPublic,
	"require":         TokenRequire,
	"require_once":    TokenRequireOnce,
	"return":          TokenReturn,
	"static":          TokenStatic,
	"switch":          TokenSwitch,
	"throw":           TokenThrow,
	"trait":           TokenTrait,
	"try":             TokenTry,
	"unset":           TokenUnset,
	"use":             TokenUse,
	"var":             TokenVar,
	"while":           TokenWhile,
	"xor":             TokenXor,
	"yield":           TokenYield,
}

var magicConstants = map[string]TokenKind{
	"__CLASS__":     TokenClassConstant,
	"__DIR__":       TokenDirectoryConstant,
	"__FILE__":      TokenFileConstant,
	"__FUNCTION__":  TokenFunctionConstant,
	"__LINE__":      TokenLineConstant,
	"__METHOD__":    TokenMethodConstant,
	"__NAMESPACE__": TokenNamespaceConstant,
	"__TRAIT__":     TokenTraitConstant,
}

// LookupKeyword classifies a label. Keywords match case-insensitively, magic
// constants match exactly; anything else is a Name.
func LookupKeyword(label string) TokenKind {
	if kind, ok := keywords[strings.ToLower(label)]; ok {
		return kind
	}
	if strings.HasPrefix(label, "__") {
		if kind, ok := magicConstants[label]; ok {
			return kind
		}
	}
	return TokenName
}

// Keywords returns the lower-case spelling of every reserved word.
func Keywords() []string {
	words := make([]string, 0, len(keywords))
	for word := range keywords {
		words = append(words, word)
	}
	slices.Sort(words)
	return words
}

// isSemiReserved reports whether a keyword token may be used as a member,
// method or constant name.
func isSemiReserved(kind TokenKind) bool {
	return (kind >= TokenAbstract && kind <= TokenYield) ||
		(kind >= TokenClassConstant && kind <= TokenTraitConstant)
}
