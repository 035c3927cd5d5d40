package parser

func isEncapsulatedPartStart(t *Token) bool {
	switch t.Kind {
	case TokenEncapsulatedAndWhitespace, TokenVariableName, TokenDollarCurlyOpen, TokenCurlyOpen:
		return true
	}
	return false
}

func (p *Parser) quotedStringLiteral(kind PhraseKind, closing TokenKind) Node {
	p.start(kind)
	p.next()
	if !p.check(closing) {
		p.append(p.encapsulatedVariableList(closing))
	}
	p.expect(closing)
	return p.end()
}

func (p *Parser) heredocStringLiteral() Node {
	p.start(PhraseHeredocStringLiteral)
	p.next()
	if !p.check(TokenEndHeredoc) {
		p.append(p.encapsulatedVariableList(TokenEndHeredoc))
	}
	p.expect(TokenEndHeredoc)
	return p.end()
}

// encapsulatedVariableList parses a string body: literal text interleaved
// with interpolated variables and expressions.
func (p *Parser) encapsulatedVariableList(closing TokenKind) *Phrase {
	return p.list(PhraseEncapsulatedVariableList, p.encapsulatedPart, isEncapsulatedPartStart,
		[]TokenKind{closing},
		[]TokenKind{closing, TokenEncapsulatedAndWhitespace, TokenVariableName, TokenDollarCurlyOpen, TokenCurlyOpen})
}

func (p *Parser) encapsulatedPart() Node {
	switch p.peek(0).Kind {
	case TokenEncapsulatedAndWhitespace:
		return p.take()
	case TokenVariableName:
		return p.encapsulatedSimpleVariable()
	case TokenDollarCurlyOpen:
		return p.dollarCurlyOpenVariable()
	case TokenCurlyOpen:
		return p.curlyOpenExpression()
	}
	return p.missing()
}

// encapsulatedSimpleVariable parses "$a", "$a[offset]" or "$a->b" inside a
// string.
func (p *Parser) encapsulatedSimpleVariable() Node {
	p.start(PhraseSimpleVariable)
	p.next()
	variable := p.end()

	switch p.peek(0).Kind {
	case TokenOpenBracket:
		p.start(PhraseSubscriptExpression)
		p.append(variable)
		p.next()
		p.append(p.encapsulatedOffset())
		p.expect(TokenCloseBracket)
		return p.end()
	case TokenArrow:
		p.start(PhrasePropertyAccessExpression)
		p.append(variable)
		p.next()
		p.start(PhraseMemberName)
		p.expect(TokenName)
		p.append(p.end())
		return p.end()
	}
	return variable
}

func (p *Parser) encapsulatedOffset() Node {
	switch p.peek(0).Kind {
	case TokenName, TokenIntegerLiteral:
		return p.take()
	case TokenVariableName:
		return p.simpleVariable()
	case TokenMinus:
		p.start(PhraseUnaryOpExpression)
		p.next()
		p.expect(TokenIntegerLiteral)
		return p.end()
	}
	return p.missing(TokenName, TokenIntegerLiteral, TokenVariableName)
}

// dollarCurlyOpenVariable parses "${name}", "${name[expr]}" and "${expr}".
func (p *Parser) dollarCurlyOpenVariable() Node {
	p.start(PhraseEncapsulatedVariable)
	p.next()
	if p.check(TokenName) {
		switch p.peek(1).Kind {
		case TokenOpenBracket:
			p.start(PhraseSubscriptExpression)
			p.start(PhraseSimpleVariable)
			p.next()
			p.append(p.end())
			p.next()
			p.append(p.expression(0))
			p.expect(TokenCloseBracket)
			p.append(p.end())
			p.expect(TokenCloseBrace)
			return p.end()
		case TokenCloseBrace:
			p.start(PhraseSimpleVariable)
			p.next()
			p.append(p.end())
			p.next()
			return p.end()
		}
	}
	p.append(p.expression(0))
	p.expect(TokenCloseBrace)
	return p.end()
}

func (p *Parser) curlyOpenExpression() Node {
	p.start(PhraseEncapsulatedVariable)
	p.next()
	p.append(p.expression(0))
	p.expect(TokenCloseBrace)
	return p.end()
}
