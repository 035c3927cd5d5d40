package parser

type associativity int

const (
	assocNone associativity = iota
	assocLeft
	assocRight
)

type operatorInfo struct {
	precedence int
	assoc      associativity
}

// Operand precedences for prefix forms. precedenceHighest admits no binary
// operator at all.
const (
	precedenceHighest    = 49
	precedenceUnary      = 47
	precedenceNot        = 45
	precedenceAssignment = 32
)

var binaryOperators = map[TokenKind]operatorInfo{
	TokenAsteriskAsterisk:             {48, assocRight},
	TokenInstanceOf:                   {46, assocNone},
	TokenAsterisk:                     {44, assocLeft},
	TokenForwardSlash:                 {44, assocLeft},
	TokenPercent:                      {44, assocLeft},
	TokenPlus:                         {43, assocLeft},
	TokenMinus:                        {43, assocLeft},
	TokenDot:                          {43, assocLeft},
	TokenLessThanLessThan:             {42, assocLeft},
	TokenGreaterThanGreaterThan:       {42, assocLeft},
	TokenLessThan:                     {41, assocNone},
	TokenGreaterThan:                  {41, assocNone},
	TokenLessThanEquals:               {41, assocNone},
	TokenGreaterThanEquals:            {41, assocNone},
	TokenEqualsEquals:                 {40, assocNone},
	TokenEqualsEqualsEquals:           {40, assocNone},
	TokenExclamationEquals:            {40, assocNone},
	TokenExclamationEqualsEquals:      {40, assocNone},
	TokenSpaceship:                    {40, assocNone},
	TokenAmpersand:                    {39, assocLeft},
	TokenCaret:                        {38, assocLeft},
	TokenBar:                          {37, assocLeft},
	TokenAmpersandAmpersand:           {36, assocLeft},
	TokenBarBar:                       {35, assocLeft},
	TokenQuestionQuestion:             {34, assocRight},
	TokenQuestion:                     {33, assocLeft},
	TokenEquals:                       {32, assocRight},
	TokenDotEquals:                    {32, assocRight},
	TokenPlusEquals:                   {32, assocRight},
	TokenMinusEquals:                  {32, assocRight},
	TokenAsteriskEquals:               {32, assocRight},
	TokenForwardSlashEquals:           {32, assocRight},
	TokenPercentEquals:                {32, assocRight},
	TokenAsteriskAsteriskEquals:       {32, assocRight},
	TokenAmpersandEquals:              {32, assocRight},
	TokenBarEquals:                    {32, assocRight},
	TokenCaretEquals:                  {32, assocRight},
	TokenLessThanLessThanEquals:       {32, assocRight},
	TokenGreaterThanGreaterThanEquals: {32, assocRight},
	TokenQuestionQuestionEquals:       {32, assocRight},
	TokenAnd:                          {31, assocLeft},
	TokenXor:                          {30, assocLeft},
	TokenOr:                           {29, assocLeft},
}

func isBinaryOperator(kind TokenKind) bool {
	switch kind {
	case TokenAsteriskAsterisk, TokenInstanceOf,
		TokenAsterisk, TokenForwardSlash, TokenPercent,
		TokenPlus, TokenMinus, TokenDot,
		TokenLessThanLessThan, TokenGreaterThanGreaterThan,
		TokenLessThan, TokenGreaterThan, TokenLessThanEquals, TokenGreaterThanEquals,
		TokenEqualsEquals, TokenEqualsEqualsEquals, TokenExclamationEquals,
		TokenExclamationEqualsEquals, TokenSpaceship,
		TokenAmpersand, TokenCaret, TokenBar,
		TokenAmpersandAmpersand, TokenBarBar, TokenQuestionQuestion, TokenQuestion,
		TokenAnd, TokenXor, TokenOr:
		return true
	}
	return isAssignmentOperator(kind)
}

func isAssignmentOperator(kind TokenKind) bool {
	switch kind {
	case TokenEquals, TokenDotEquals, TokenPlusEquals, TokenMinusEquals,
		TokenAsteriskEquals, TokenForwardSlashEquals, TokenPercentEquals,
		TokenAsteriskAsteriskEquals, TokenAmpersandEquals, TokenBarEquals,
		TokenCaretEquals, TokenLessThanLessThanEquals,
		TokenGreaterThanGreaterThanEquals, TokenQuestionQuestionEquals:
		return true
	}
	return false
}

// precedence looks up a binary operator. Only tokens accepted by
// isBinaryOperator may reach it.
func precedence(t *Token) operatorInfo {
	info, ok := binaryOperators[t.Kind]
	if !ok {
		panic(&InvariantError{Token: t, Msg: "operator has no precedence"})
	}
	return info
}

func binaryPhraseKind(kind TokenKind) PhraseKind {
	switch kind {
	case TokenAsteriskAsterisk:
		return PhraseExponentiationExpression
	case TokenInstanceOf:
		return PhraseInstanceOfExpression
	case TokenAsterisk, TokenForwardSlash, TokenPercent:
		return PhraseMultiplicativeExpression
	case TokenPlus, TokenMinus, TokenDot:
		return PhraseAdditiveExpression
	case TokenLessThanLessThan, TokenGreaterThanGreaterThan:
		return PhraseShiftExpression
	case TokenLessThan, TokenGreaterThan, TokenLessThanEquals, TokenGreaterThanEquals:
		return PhraseRelationalExpression
	case TokenEqualsEquals, TokenEqualsEqualsEquals, TokenExclamationEquals,
		TokenExclamationEqualsEquals, TokenSpaceship:
		return PhraseEqualityExpression
	case TokenAmpersand, TokenCaret, TokenBar:
		return PhraseBitwiseExpression
	case TokenAmpersandAmpersand, TokenBarBar, TokenAnd, TokenOr, TokenXor:
		return PhraseLogicalExpression
	case TokenQuestionQuestion:
		return PhraseCoalesceExpression
	case TokenQuestion:
		return PhraseTernaryExpression
	case TokenEquals:
		return PhraseSimpleAssignmentExpression
	}
	if isAssignmentOperator(kind) {
		return PhraseCompoundAssignmentExpression
	}
	return PhraseUnknown
}

func isExpressionStart(t *Token) bool {
	switch t.Kind {
	case TokenVariableName, TokenDollar, TokenArray, TokenOpenBracket,
		TokenStringLiteral, TokenBackslash, TokenName, TokenNamespace,
		TokenOpenParenthesis, TokenStatic, TokenPlusPlus, TokenMinusMinus,
		TokenPlus, TokenMinus, TokenExclamation, TokenTilde, TokenAtSymbol,
		TokenIntegerCast, TokenFloatCast, TokenStringCast, TokenArrayCast,
		TokenObjectCast, TokenBooleanCast, TokenUnsetCast, TokenList, TokenClone,
		TokenNew, TokenFloatingLiteral, TokenIntegerLiteral, TokenLineConstant,
		TokenFileConstant, TokenDirectoryConstant, TokenTraitConstant,
		TokenMethodConstant, TokenFunctionConstant, TokenNamespaceConstant,
		TokenClassConstant, TokenStartHeredoc, TokenDoubleQuote, TokenBacktick,
		TokenPrint, TokenYield, TokenYieldFrom, TokenFunction, TokenInclude,
		TokenIncludeOnce, TokenRequire, TokenRequireOnce, TokenEval,
		TokenEmpty, TokenIsset, TokenExit:
		return true
	}
	return false
}

// isVariable reports whether n is a variable: a simple variable or any
// chain that has been dereferenced. Only variables take postfix ++ and --
// and bind an assignment regardless of the surrounding precedence.
func isVariable(n Node) bool {
	phrase, ok := n.(*Phrase)
	if !ok {
		return false
	}
	switch phrase.Kind {
	case PhraseSimpleVariable, PhraseSubscriptExpression, PhrasePropertyAccessExpression,
		PhraseScopedPropertyAccessExpression, PhraseFunctionCallExpression,
		PhraseMethodCallExpression, PhraseScopedCallExpression:
		return true
	}
	return false
}

// expression parses by precedence climbing: operators binding at least as
// tightly as minPrecedence are folded into the left operand.
func (p *Parser) expression(minPrecedence int) Node {
	lhs := p.expressionAtom()

	for {
		op := p.peek(0)
		if !isBinaryOperator(op.Kind) {
			return lhs
		}
		info := precedence(op)
		if info.precedence < minPrecedence &&
			!(isAssignmentOperator(op.Kind) && isVariable(lhs)) {
			return lhs
		}

		rhsPrecedence := info.precedence
		if info.assoc != assocRight {
			rhsPrecedence++
		}

		if op.Kind == TokenQuestion {
			lhs = p.ternaryExpression(lhs, rhsPrecedence)
			continue
		}

		kind := binaryPhraseKind(op.Kind)
		phrase := p.start(kind)
		p.append(lhs)
		p.next()
		switch {
		case op.Kind == TokenInstanceOf:
			p.append(p.typeDesignator(PhraseInstanceofTypeDesignator))
		case op.Kind == TokenEquals && p.check(TokenAmpersand):
			phrase.Kind = PhraseByRefAssignmentExpression
			p.next()
			p.append(p.expression(rhsPrecedence))
		default:
			p.append(p.expression(rhsPrecedence))
		}
		lhs = p.end()
	}
}

// ternaryExpression handles both "a ? b : c" and "a ?: c".
func (p *Parser) ternaryExpression(test Node, falsePrecedence int) Node {
	p.start(PhraseTernaryExpression)
	p.append(test)
	p.next()
	if p.check(TokenColon) {
		p.next()
		p.append(p.expression(falsePrecedence))
		return p.end()
	}
	p.append(p.expression(0))
	p.expect(TokenColon)
	p.append(p.expression(falsePrecedence))
	return p.end()
}

func (p *Parser) expressionAtom() Node {
	t := p.peek(0)
	switch t.Kind {
	case TokenStatic:
		if p.peek(1).Kind == TokenFunction {
			return p.anonymousFunctionCreationExpression()
		}
		return p.postfix(p.variable(p.variableAtom()))
	case TokenVariableName, TokenDollar, TokenArray, TokenOpenBracket,
		TokenStringLiteral, TokenBackslash, TokenName, TokenNamespace,
		TokenOpenParenthesis:
		return p.postfix(p.variable(p.variableAtom()))
	case TokenPlusPlus:
		return p.unaryExpression(PhrasePrefixIncrementExpression, precedenceUnary)
	case TokenMinusMinus:
		return p.unaryExpression(PhrasePrefixDecrementExpression, precedenceUnary)
	case TokenPlus, TokenMinus, TokenTilde:
		return p.unaryExpression(PhraseUnaryOpExpression, precedenceUnary)
	case TokenExclamation:
		return p.unaryExpression(PhraseUnaryOpExpression, precedenceNot)
	case TokenAtSymbol:
		return p.unaryExpression(PhraseErrorControlExpression, precedenceUnary)
	case TokenIntegerCast, TokenFloatCast, TokenStringCast, TokenArrayCast,
		TokenObjectCast, TokenBooleanCast, TokenUnsetCast:
		return p.unaryExpression(PhraseCastExpression, precedenceUnary)
	case TokenList:
		return p.listIntrinsic()
	case TokenClone:
		return p.unaryExpression(PhraseCloneExpression, precedenceHighest)
	case TokenNew:
		return p.objectCreationExpression()
	case TokenFloatingLiteral, TokenIntegerLiteral, TokenLineConstant,
		TokenFileConstant, TokenDirectoryConstant, TokenTraitConstant,
		TokenMethodConstant, TokenFunctionConstant, TokenNamespaceConstant,
		TokenClassConstant:
		return p.take()
	case TokenStartHeredoc:
		return p.heredocStringLiteral()
	case TokenDoubleQuote:
		return p.quotedStringLiteral(PhraseDoubleQuotedStringLiteral, TokenDoubleQuote)
	case TokenBacktick:
		return p.quotedStringLiteral(PhraseShellCommandExpression, TokenBacktick)
	case TokenPrint:
		return p.unaryExpression(PhrasePrintIntrinsic, precedenceAssignment)
	case TokenYield:
		return p.yieldExpression()
	case TokenYieldFrom:
		return p.unaryExpression(PhraseYieldFromExpression, precedenceAssignment)
	case TokenFunction:
		return p.anonymousFunctionCreationExpression()
	case TokenInclude:
		return p.unaryExpression(PhraseIncludeExpression, 0)
	case TokenIncludeOnce:
		return p.unaryExpression(PhraseIncludeOnceExpression, 0)
	case TokenRequire:
		return p.unaryExpression(PhraseRequireExpression, 0)
	case TokenRequireOnce:
		return p.unaryExpression(PhraseRequireOnceExpression, 0)
	case TokenEval:
		return p.parenthesisedIntrinsic(PhraseEvalIntrinsic)
	case TokenEmpty:
		return p.parenthesisedIntrinsic(PhraseEmptyIntrinsic)
	case TokenIsset:
		return p.issetIntrinsic()
	case TokenExit:
		return p.exitIntrinsic()
	}
	return p.missing()
}

// unaryExpression parses an operator token followed by one operand bound at
// operandPrecedence.
func (p *Parser) unaryExpression(kind PhraseKind, operandPrecedence int) Node {
	p.start(kind)
	p.next()
	p.append(p.expression(operandPrecedence))
	return p.end()
}

func (p *Parser) postfix(expr Node) Node {
	if !isVariable(expr) {
		return expr
	}
	switch p.peek(0).Kind {
	case TokenPlusPlus:
		p.start(PhrasePostfixIncrementExpression)
	case TokenMinusMinus:
		p.start(PhrasePostfixDecrementExpression)
	default:
		return expr
	}
	p.append(expr)
	p.next()
	return p.end()
}

func (p *Parser) yieldExpression() Node {
	p.start(PhraseYieldExpression)
	p.next()
	if !isExpressionStart(p.peek(0)) {
		return p.end()
	}
	key := p.expression(precedenceAssignment)
	if !p.check(TokenFatArrow) {
		p.append(key)
		return p.end()
	}
	p.start(PhraseArrayKey)
	p.append(key)
	p.append(p.end())
	p.next()
	p.start(PhraseArrayValue)
	p.append(p.expression(precedenceAssignment))
	p.append(p.end())
	return p.end()
}

func (p *Parser) parenthesisedIntrinsic(kind PhraseKind) Node {
	p.start(kind)
	p.next()
	p.parenthesisedExpression()
	return p.end()
}

func (p *Parser) issetIntrinsic() Node {
	p.start(PhraseIssetIntrinsic)
	p.next()
	p.expect(TokenOpenParenthesis)
	p.append(p.delimitedList(PhraseVariableList, p.expressionElement, isExpressionStart, TokenComma,
		[]TokenKind{TokenCloseParenthesis}, false))
	p.expect(TokenCloseParenthesis)
	return p.end()
}

func (p *Parser) exitIntrinsic() Node {
	p.start(PhraseExitIntrinsic)
	p.next()
	if p.check(TokenOpenParenthesis) {
		p.next()
		if isExpressionStart(p.peek(0)) {
			p.append(p.expression(0))
		}
		p.expect(TokenCloseParenthesis)
	}
	return p.end()
}

func (p *Parser) listIntrinsic() Node {
	p.start(PhraseListIntrinsic)
	p.next()
	p.expect(TokenOpenParenthesis)
	p.append(p.arrayInitialiserList(TokenCloseParenthesis))
	p.expect(TokenCloseParenthesis)
	return p.end()
}

func (p *Parser) arrayInitialiserList(closing TokenKind) *Phrase {
	return p.delimitedList(PhraseArrayInitialiserList, p.arrayElement, isArrayElementStart, TokenComma,
		[]TokenKind{closing}, true)
}

func isArrayElementStart(t *Token) bool {
	return t.Kind == TokenAmpersand || t.Kind == TokenEllipsis || isExpressionStart(t)
}

func (p *Parser) arrayElement() Node {
	p.start(PhraseArrayElement)
	switch p.peek(0).Kind {
	case TokenEllipsis:
		p.append(p.unaryExpression(PhraseVariadicUnpacking, 0))
		return p.end()
	case TokenAmpersand:
		p.append(p.arrayValue(nil))
		return p.end()
	}

	expr := p.expression(0)
	if !p.check(TokenFatArrow) {
		p.append(p.arrayValue(expr))
		return p.end()
	}
	p.start(PhraseArrayKey)
	p.append(expr)
	p.append(p.end())
	p.next()
	p.append(p.arrayValue(nil))
	return p.end()
}

// arrayValue wraps an already parsed value, or parses an optionally
// by-reference one.
func (p *Parser) arrayValue(expr Node) Node {
	p.start(PhraseArrayValue)
	if expr == nil {
		p.optional(TokenAmpersand)
		expr = p.expression(0)
	}
	p.append(expr)
	return p.end()
}

func (p *Parser) arrayCreationExpression() Node {
	p.start(PhraseArrayCreationExpression)
	closing := TokenCloseBracket
	if p.check(TokenArray) {
		p.next()
		p.expect(TokenOpenParenthesis)
		closing = TokenCloseParenthesis
	} else {
		p.next()
	}
	if !p.check(closing) {
		p.append(p.arrayInitialiserList(closing))
	}
	p.expect(closing)
	return p.end()
}

// variableAtom parses the start of a dereference chain.
func (p *Parser) variableAtom() Node {
	t := p.peek(0)
	switch t.Kind {
	case TokenVariableName, TokenDollar:
		return p.simpleVariable()
	case TokenOpenParenthesis:
		p.start(PhraseEncapsulatedExpression)
		p.parenthesisedExpression()
		return p.end()
	case TokenArray:
		if p.peek(1).Kind == TokenOpenParenthesis {
			return p.arrayCreationExpression()
		}
		// "array" used as a name, as in array::class
		p.start(PhraseErrorVariableAtom)
		p.next()
		return p.end()
	case TokenOpenBracket:
		return p.arrayCreationExpression()
	case TokenStringLiteral:
		return p.take()
	case TokenStatic:
		p.start(PhraseRelativeScope)
		p.next()
		return p.scopedAccess(p.end())
	case TokenName, TokenBackslash, TokenNamespace:
		name := p.qualifiedName()
		switch p.peek(0).Kind {
		case TokenOpenParenthesis, TokenColonColon:
			return name
		}
		p.start(PhraseConstantAccessExpression)
		p.append(name)
		return p.end()
	}
	p.start(PhraseErrorVariableAtom)
	p.append(p.missing(TokenVariableName))
	return p.end()
}

func isSimpleVariableStart(t *Token) bool {
	return t.Kind == TokenVariableName || t.Kind == TokenDollar
}

// simpleVariable parses $name, $$name or ${expr}.
func (p *Parser) simpleVariable() Node {
	p.start(PhraseSimpleVariable)
	switch p.peek(0).Kind {
	case TokenVariableName:
		p.next()
	case TokenDollar:
		p.next()
		switch p.peek(0).Kind {
		case TokenOpenBrace:
			p.next()
			p.append(p.expression(0))
			p.expect(TokenCloseBrace)
		case TokenDollar, TokenVariableName:
			p.append(p.simpleVariable())
		default:
			p.append(p.missing(TokenVariableName))
		}
	default:
		p.append(p.missing(TokenVariableName))
	}
	return p.end()
}

// variable applies member access, static access, subscripts and calls to an
// atom for as long as they follow.
func (p *Parser) variable(atom Node) Node {
	for {
		switch p.peek(0).Kind {
		case TokenArrow:
			atom = p.memberAccess(atom)
		case TokenColonColon:
			atom = p.scopedAccess(atom)
		case TokenOpenBracket:
			atom = p.subscript(atom, TokenCloseBracket)
		case TokenOpenBrace:
			if !isVariable(atom) {
				return atom
			}
			atom = p.subscript(atom, TokenCloseBrace)
		case TokenOpenParenthesis:
			if _, ok := atom.(*Token); ok {
				return atom
			}
			atom = p.functionCall(atom)
		default:
			return atom
		}
	}
}

func (p *Parser) subscript(lhs Node, closing TokenKind) Node {
	p.start(PhraseSubscriptExpression)
	p.append(lhs)
	p.next()
	if !p.check(closing) {
		p.append(p.expression(0))
	}
	p.expect(closing)
	return p.end()
}

func (p *Parser) functionCall(callee Node) Node {
	p.start(PhraseFunctionCallExpression)
	p.append(callee)
	p.argumentList()
	return p.end()
}

// argumentList parses "(" arguments ")" into the open phrase.
func (p *Parser) argumentList() {
	p.expect(TokenOpenParenthesis)
	if isArgumentStart(p.peek(0)) {
		p.append(p.delimitedList(PhraseArgumentExpressionList, p.argumentExpression, isArgumentStart,
			TokenComma, []TokenKind{TokenCloseParenthesis}, false))
	}
	p.expect(TokenCloseParenthesis)
}

func isArgumentStart(t *Token) bool {
	return t.Kind == TokenEllipsis || isExpressionStart(t)
}

func (p *Parser) argumentExpression() Node {
	if p.check(TokenEllipsis) {
		return p.unaryExpression(PhraseVariadicUnpacking, 0)
	}
	return p.expression(0)
}

// memberAccess parses "->" name, optionally followed by a call.
func (p *Parser) memberAccess(lhs Node) Node {
	phrase := p.start(PhrasePropertyAccessExpression)
	p.append(lhs)
	p.next()
	p.append(p.memberName())
	if p.check(TokenOpenParenthesis) {
		phrase.Kind = PhraseMethodCallExpression
		p.argumentList()
	}
	return p.end()
}

func (p *Parser) memberName() Node {
	p.start(PhraseMemberName)
	t := p.peek(0)
	switch {
	case t.Kind == TokenName || isSemiReserved(t.Kind):
		p.next()
	case t.Kind == TokenVariableName || t.Kind == TokenDollar:
		p.append(p.simpleVariable())
	case t.Kind == TokenOpenBrace:
		p.next()
		p.append(p.expression(0))
		p.expect(TokenCloseBrace)
	default:
		p.append(p.missing(TokenName))
	}
	return p.end()
}

// scopedAccess parses "::" followed by a static property, a constant or a
// static call.
func (p *Parser) scopedAccess(scope Node) Node {
	phrase := p.start(PhraseErrorScopedAccessExpression)
	p.append(scope)
	if p.expect(TokenColonColon) == nil {
		return p.end()
	}

	t := p.peek(0)
	switch {
	case t.Kind == TokenVariableName || t.Kind == TokenDollar:
		p.start(PhraseScopedMemberName)
		p.append(p.simpleVariable())
		p.append(p.end())
		phrase.Kind = PhraseScopedPropertyAccessExpression
		if p.check(TokenOpenParenthesis) {
			phrase.Kind = PhraseScopedCallExpression
			p.argumentList()
		}
	case t.Kind == TokenName || isSemiReserved(t.Kind):
		p.start(PhraseScopedMemberName)
		p.append(p.identifier())
		p.append(p.end())
		phrase.Kind = PhraseClassConstantAccessExpression
		if p.check(TokenOpenParenthesis) {
			phrase.Kind = PhraseScopedCallExpression
			p.argumentList()
		}
	case t.Kind == TokenOpenBrace:
		p.start(PhraseScopedMemberName)
		p.next()
		p.append(p.expression(0))
		p.expect(TokenCloseBrace)
		p.append(p.end())
		phrase.Kind = PhraseScopedCallExpression
		p.argumentList()
	default:
		p.append(p.missing(TokenName, TokenVariableName))
	}
	return p.end()
}

// typeDesignator parses the class operand of new and instanceof: a name,
// static, or a variable with property and subscript access but no calls.
func (p *Parser) typeDesignator(kind PhraseKind) Node {
	p.start(kind)
	t := p.peek(0)
	switch {
	case isNameStart(t):
		p.append(p.qualifiedName())
	case t.Kind == TokenStatic:
		p.start(PhraseRelativeScope)
		p.next()
		p.append(p.end())
	case isSimpleVariableStart(t):
		p.append(p.designatorVariable())
	default:
		p.append(p.missing(TokenName, TokenVariableName))
	}
	return p.end()
}

func (p *Parser) designatorVariable() Node {
	atom := p.simpleVariable()
	for {
		switch p.peek(0).Kind {
		case TokenOpenBracket:
			atom = p.subscript(atom, TokenCloseBracket)
		case TokenOpenBrace:
			atom = p.subscript(atom, TokenCloseBrace)
		case TokenArrow:
			p.start(PhrasePropertyAccessExpression)
			p.append(atom)
			p.next()
			p.append(p.memberName())
			atom = p.end()
		case TokenColonColon:
			if !isSimpleVariableStart(p.peek(1)) {
				return atom
			}
			p.start(PhraseScopedPropertyAccessExpression)
			p.append(atom)
			p.next()
			p.start(PhraseScopedMemberName)
			p.append(p.simpleVariable())
			p.append(p.end())
			atom = p.end()
		default:
			return atom
		}
	}
}

func (p *Parser) objectCreationExpression() Node {
	p.start(PhraseObjectCreationExpression)
	p.next()
	if p.check(TokenClass) {
		p.append(p.anonymousClassDeclaration())
		return p.end()
	}
	p.append(p.typeDesignator(PhraseClassTypeDesignator))
	if p.check(TokenOpenParenthesis) {
		p.argumentList()
	}
	return p.end()
}

func (p *Parser) anonymousClassDeclaration() Node {
	p.start(PhraseAnonymousClassDeclaration)
	p.start(PhraseAnonymousClassDeclarationHeader)
	p.next()
	if p.check(TokenOpenParenthesis) {
		p.argumentList()
	}
	p.classHeaderClauses()
	p.append(p.end())
	p.append(p.classDeclarationBody(PhraseClassDeclarationBody, PhraseClassMemberDeclarationList))
	return p.end()
}

func (p *Parser) anonymousFunctionCreationExpression() Node {
	p.start(PhraseAnonymousFunctionCreationExpression)
	p.start(PhraseAnonymousFunctionHeader)
	p.optional(TokenStatic)
	p.expect(TokenFunction)
	p.optional(TokenAmpersand)
	p.parameterList()
	if p.check(TokenUse) {
		p.start(PhraseAnonymousFunctionUseClause)
		p.next()
		p.expect(TokenOpenParenthesis)
		p.append(p.delimitedList(PhraseClosureUseList, p.anonymousFunctionUseVariable,
			tokenIs(TokenAmpersand, TokenVariableName), TokenComma, []TokenKind{TokenCloseParenthesis}, false))
		p.expect(TokenCloseParenthesis)
		p.append(p.end())
	}
	p.returnType()
	p.append(p.end())
	p.append(p.compoundStatement(PhraseFunctionDeclarationBody))
	return p.end()
}

func (p *Parser) anonymousFunctionUseVariable() Node {
	p.start(PhraseAnonymousFunctionUseVariable)
	p.optional(TokenAmpersand)
	p.expect(TokenVariableName)
	return p.end()
}
