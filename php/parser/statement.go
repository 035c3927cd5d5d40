package parser

var statementRecoverSet = []TokenKind{
	TokenUse, TokenHaltCompiler, TokenConst, TokenFunction, TokenClass,
	TokenAbstract, TokenFinal, TokenTrait, TokenInterface, TokenOpenBrace,
	TokenIf, TokenWhile, TokenDo, TokenFor, TokenSwitch, TokenBreak,
	TokenContinue, TokenReturn, TokenGlobal, TokenStatic, TokenEcho,
	TokenUnset, TokenForeach, TokenDeclare, TokenTry, TokenThrow, TokenGoto,
	TokenSemicolon, TokenCloseTag, TokenOpenTagEcho, TokenText, TokenOpenTag,
}

func isStatementStart(t *Token) bool {
	switch t.Kind {
	case TokenNamespace, TokenUse, TokenHaltCompiler, TokenConst, TokenFunction,
		TokenClass, TokenAbstract, TokenFinal, TokenTrait, TokenInterface,
		TokenOpenBrace, TokenIf, TokenWhile, TokenDo, TokenFor, TokenSwitch,
		TokenBreak, TokenContinue, TokenReturn, TokenGlobal, TokenStatic,
		TokenEcho, TokenUnset, TokenForeach, TokenDeclare, TokenTry,
		TokenThrow, TokenGoto, TokenSemicolon, TokenCloseTag, TokenText,
		TokenOpenTag, TokenOpenTagEcho:
		return true
	}
	return isExpressionStart(t)
}

func (p *Parser) statement() Node {
	t := p.peek(0)
	switch t.Kind {
	case TokenNamespace:
		if p.peek(1).Kind == TokenBackslash {
			return p.expressionStatement()
		}
		return p.namespaceDefinition()
	case TokenUse:
		return p.namespaceUseDeclaration()
	case TokenHaltCompiler:
		return p.haltCompilerStatement()
	case TokenConst:
		return p.constDeclaration()
	case TokenFunction:
		if next := p.peek(1); next.Kind == TokenName ||
			(next.Kind == TokenAmpersand && p.peek(2).Kind == TokenName) {
			return p.functionDeclaration()
		}
		return p.expressionStatement()
	case TokenAbstract, TokenFinal, TokenClass:
		return p.classDeclaration()
	case TokenTrait:
		return p.traitDeclaration()
	case TokenInterface:
		return p.interfaceDeclaration()
	case TokenOpenBrace:
		return p.compoundStatement(PhraseCompoundStatement)
	case TokenIf:
		return p.ifStatement()
	case TokenWhile:
		return p.whileStatement()
	case TokenDo:
		return p.doStatement()
	case TokenFor:
		return p.forStatement()
	case TokenSwitch:
		return p.switchStatement()
	case TokenBreak:
		return p.keywordOptionalExpressionStatement(PhraseBreakStatement)
	case TokenContinue:
		return p.keywordOptionalExpressionStatement(PhraseContinueStatement)
	case TokenReturn:
		return p.keywordOptionalExpressionStatement(PhraseReturnStatement)
	case TokenGlobal:
		return p.globalDeclaration()
	case TokenStatic:
		if p.peek(1).Kind == TokenVariableName {
			return p.functionStaticDeclaration()
		}
		return p.expressionStatement()
	case TokenEcho, TokenOpenTagEcho:
		return p.echoIntrinsic()
	case TokenUnset:
		return p.unsetIntrinsic()
	case TokenForeach:
		return p.foreachStatement()
	case TokenDeclare:
		return p.declareStatement()
	case TokenTry:
		return p.tryStatement()
	case TokenThrow:
		return p.throwStatement()
	case TokenGoto:
		return p.gotoStatement()
	case TokenSemicolon:
		p.start(PhraseNullStatement)
		p.next()
		return p.end()
	case TokenCloseTag, TokenText, TokenOpenTag:
		return p.inlineText()
	case TokenName:
		if p.peek(1).Kind == TokenColon {
			p.start(PhraseNamedLabelStatement)
			p.next()
			p.next()
			return p.end()
		}
	}
	return p.expressionStatement()
}

// statementList parses statements up to one of breakOn, for block bodies and
// the alternative control-structure syntax.
func (p *Parser) statementList(breakOn ...TokenKind) *Phrase {
	return p.list(PhraseStatementList, p.statement, isStatementStart, breakOn, statementRecoverSet)
}

func (p *Parser) inlineText() Node {
	p.start(PhraseInlineText)
	p.optional(TokenCloseTag)
	p.optional(TokenText)
	p.optional(TokenOpenTag)
	return p.end()
}

func (p *Parser) expressionStatement() Node {
	p.start(PhraseExpressionStatement)
	p.append(p.expression(0))
	p.expect(TokenSemicolon)
	return p.end()
}

func (p *Parser) compoundStatement(kind PhraseKind) *Phrase {
	p.start(kind)
	p.expect(TokenOpenBrace)
	if !p.check(TokenCloseBrace) {
		p.append(p.statementList(TokenCloseBrace))
	}
	p.expect(TokenCloseBrace)
	return p.end()
}

func (p *Parser) echoIntrinsic() Node {
	p.start(PhraseEchoIntrinsic)
	p.next()
	p.append(p.expressionList(TokenSemicolon, TokenCloseTag))
	p.expect(TokenSemicolon)
	return p.end()
}

func (p *Parser) expressionList(breakOn ...TokenKind) *Phrase {
	return p.delimitedList(PhraseExpressionList, p.expressionElement, isExpressionStart, TokenComma, breakOn, false)
}

func (p *Parser) expressionElement() Node {
	return p.expression(0)
}

func (p *Parser) haltCompilerStatement() Node {
	p.start(PhraseHaltCompilerStatement)
	p.next()
	p.expect(TokenOpenParenthesis)
	p.expect(TokenCloseParenthesis)
	p.expect(TokenSemicolon)
	return p.end()
}

// keywordOptionalExpressionStatement covers break, continue and return.
func (p *Parser) keywordOptionalExpressionStatement(kind PhraseKind) Node {
	p.start(kind)
	p.next()
	if isExpressionStart(p.peek(0)) {
		p.append(p.expression(0))
	}
	p.expect(TokenSemicolon)
	return p.end()
}

func (p *Parser) throwStatement() Node {
	p.start(PhraseThrowStatement)
	p.next()
	p.append(p.expression(0))
	p.expect(TokenSemicolon)
	return p.end()
}

func (p *Parser) gotoStatement() Node {
	p.start(PhraseGotoStatement)
	p.next()
	p.expect(TokenName)
	p.expect(TokenSemicolon)
	return p.end()
}

func (p *Parser) globalDeclaration() Node {
	p.start(PhraseGlobalDeclaration)
	p.next()
	p.append(p.delimitedList(PhraseVariableList, p.simpleVariable, isSimpleVariableStart, TokenComma, []TokenKind{TokenSemicolon, TokenCloseTag}, false))
	p.expect(TokenSemicolon)
	return p.end()
}

func (p *Parser) functionStaticDeclaration() Node {
	p.start(PhraseFunctionStaticDeclaration)
	p.next()
	p.append(p.delimitedList(PhraseStaticVariableDeclarationList, p.staticVariableDeclaration,
		tokenIs(TokenVariableName), TokenComma, []TokenKind{TokenSemicolon, TokenCloseTag}, false))
	p.expect(TokenSemicolon)
	return p.end()
}

func (p *Parser) staticVariableDeclaration() Node {
	p.start(PhraseStaticVariableDeclaration)
	p.next()
	if p.check(TokenEquals) {
		p.start(PhraseFunctionStaticInitialiser)
		p.next()
		p.append(p.expression(0))
		p.append(p.end())
	}
	return p.end()
}

func (p *Parser) unsetIntrinsic() Node {
	p.start(PhraseUnsetIntrinsic)
	p.next()
	p.expect(TokenOpenParenthesis)
	p.append(p.delimitedList(PhraseVariableList, p.expressionElement, isExpressionStart, TokenComma, []TokenKind{TokenCloseParenthesis}, false))
	p.expect(TokenCloseParenthesis)
	p.expect(TokenSemicolon)
	return p.end()
}

// controlBody parses the statement governed by if, while, for, foreach and
// declare. With the alternative syntax the body is a statement list closed
// by endKeyword and a semicolon; extra names further tokens that end the
// list, such as elseif and else.
func (p *Parser) controlBody(endKeyword TokenKind, extra ...TokenKind) (alternative bool) {
	if !p.check(TokenColon) {
		p.append(p.statement())
		return false
	}
	p.next()
	breakOn := append([]TokenKind{endKeyword}, extra...)
	p.append(p.statementList(breakOn...))
	return true
}

func (p *Parser) endAlternative(endKeyword TokenKind) {
	p.expect(endKeyword)
	p.expect(TokenSemicolon)
}

func (p *Parser) parenthesisedExpression() {
	p.expect(TokenOpenParenthesis)
	p.append(p.expression(0))
	p.expect(TokenCloseParenthesis)
}

func (p *Parser) ifStatement() Node {
	p.start(PhraseIfStatement)
	p.next()
	p.parenthesisedExpression()
	alternative := p.controlBody(TokenEndIf, TokenElseIf, TokenElse)

	if p.check(TokenElseIf) {
		p.start(PhraseElseIfClauseList)
		for p.check(TokenElseIf) {
			p.start(PhraseElseIfClause)
			p.next()
			p.parenthesisedExpression()
			p.ifClauseBody(alternative)
			p.append(p.end())
		}
		p.append(p.end())
	}
	if p.check(TokenElse) {
		p.start(PhraseElseClause)
		p.next()
		p.ifClauseBody(alternative)
		p.append(p.end())
	}
	if alternative {
		p.endAlternative(TokenEndIf)
	}
	return p.end()
}

func (p *Parser) ifClauseBody(alternative bool) {
	if !alternative {
		p.append(p.statement())
		return
	}
	p.expect(TokenColon)
	p.append(p.statementList(TokenEndIf, TokenElseIf, TokenElse))
}

func (p *Parser) whileStatement() Node {
	p.start(PhraseWhileStatement)
	p.next()
	p.parenthesisedExpression()
	if p.controlBody(TokenEndWhile) {
		p.endAlternative(TokenEndWhile)
	}
	return p.end()
}

func (p *Parser) doStatement() Node {
	p.start(PhraseDoStatement)
	p.next()
	p.append(p.statement())
	p.expect(TokenWhile)
	p.parenthesisedExpression()
	p.expect(TokenSemicolon)
	return p.end()
}

func (p *Parser) forStatement() Node {
	p.start(PhraseForStatement)
	p.next()
	p.expect(TokenOpenParenthesis)
	p.forExpressionGroup(PhraseForInitialiser, TokenSemicolon)
	p.expect(TokenSemicolon)
	p.forExpressionGroup(PhraseForControl, TokenSemicolon)
	p.expect(TokenSemicolon)
	p.forExpressionGroup(PhraseForEndOfLoop, TokenCloseParenthesis)
	p.expect(TokenCloseParenthesis)
	if p.controlBody(TokenEndFor) {
		p.endAlternative(TokenEndFor)
	}
	return p.end()
}

func (p *Parser) forExpressionGroup(kind PhraseKind, terminator TokenKind) {
	if !isExpressionStart(p.peek(0)) {
		return
	}
	p.append(p.delimitedList(kind, p.expressionElement, isExpressionStart, TokenComma, []TokenKind{terminator}, false))
}

func (p *Parser) foreachStatement() Node {
	p.start(PhraseForeachStatement)
	p.next()
	p.expect(TokenOpenParenthesis)

	p.start(PhraseForeachCollection)
	p.append(p.expression(0))
	p.append(p.end())

	p.expect(TokenAs)

	if p.check(TokenAmpersand) {
		p.append(p.foreachValue(nil))
	} else {
		expr := p.expression(0)
		if p.check(TokenFatArrow) {
			p.start(PhraseForeachKey)
			p.append(expr)
			p.next()
			p.append(p.end())
			p.append(p.foreachValue(nil))
		} else {
			p.append(p.foreachValue(expr))
		}
	}

	p.expect(TokenCloseParenthesis)
	if p.controlBody(TokenEndForeach) {
		p.endAlternative(TokenEndForeach)
	}
	return p.end()
}

// foreachValue wraps an already parsed expression, or parses an optionally
// by-reference one.
func (p *Parser) foreachValue(expr Node) Node {
	p.start(PhraseForeachValue)
	if expr == nil {
		p.optional(TokenAmpersand)
		expr = p.expression(0)
	}
	p.append(expr)
	return p.end()
}

func (p *Parser) switchStatement() Node {
	p.start(PhraseSwitchStatement)
	p.next()
	p.parenthesisedExpression()

	alternative := p.check(TokenColon)
	if alternative {
		p.next()
	} else {
		p.expect(TokenOpenBrace)
	}
	p.optional(TokenSemicolon)

	closing := TokenCloseBrace
	if alternative {
		closing = TokenEndSwitch
	}
	if !p.check(closing) {
		p.append(p.list(PhraseCaseStatementList, p.caseStatement, tokenIs(TokenCase, TokenDefault),
			[]TokenKind{closing}, []TokenKind{TokenCase, TokenDefault}))
	}
	p.expect(closing)
	if alternative {
		p.expect(TokenSemicolon)
	}
	return p.end()
}

func (p *Parser) caseStatement() Node {
	if p.check(TokenDefault) {
		p.start(PhraseDefaultStatement)
		p.next()
	} else {
		p.start(PhraseCaseStatement)
		p.next()
		p.append(p.expression(0))
	}
	p.expectOneOf(TokenColon, TokenSemicolon)
	if isStatementStart(p.peek(0)) {
		p.append(p.statementList(TokenCase, TokenDefault, TokenCloseBrace, TokenEndSwitch))
	}
	return p.end()
}

func (p *Parser) declareStatement() Node {
	p.start(PhraseDeclareStatement)
	p.next()
	p.expect(TokenOpenParenthesis)
	p.append(p.delimitedList(PhraseDeclareDirectiveList, p.declareDirective, tokenIs(TokenName), TokenComma,
		[]TokenKind{TokenCloseParenthesis}, false))
	p.expect(TokenCloseParenthesis)
	if p.controlBody(TokenEndDeclare) {
		p.endAlternative(TokenEndDeclare)
	}
	return p.end()
}

// declareDirective parses one "name = literal" pair.
func (p *Parser) declareDirective() Node {
	p.start(PhraseDeclareDirective)
	p.next()
	p.expect(TokenEquals)
	p.append(p.expression(0))
	return p.end()
}

func (p *Parser) tryStatement() Node {
	p.start(PhraseTryStatement)
	p.next()
	p.append(p.compoundStatement(PhraseCompoundStatement))

	if p.check(TokenCatch) {
		p.start(PhraseCatchClauseList)
		for p.check(TokenCatch) {
			p.append(p.catchClause())
		}
		p.append(p.end())
	}
	if p.check(TokenFinally) {
		p.start(PhraseFinallyClause)
		p.next()
		p.append(p.compoundStatement(PhraseCompoundStatement))
		p.append(p.end())
	}
	return p.end()
}

func (p *Parser) catchClause() Node {
	p.start(PhraseCatchClause)
	p.next()
	p.expect(TokenOpenParenthesis)
	p.append(p.delimitedList(PhraseCatchNameList, p.qualifiedName, isNameStart, TokenBar,
		[]TokenKind{TokenVariableName, TokenCloseParenthesis}, false))
	p.expect(TokenVariableName)
	p.expect(TokenCloseParenthesis)
	p.append(p.compoundStatement(PhraseCompoundStatement))
	return p.end()
}
