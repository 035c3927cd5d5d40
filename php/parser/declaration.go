package parser

var classMemberRecoverSet = []TokenKind{
	TokenPublic, TokenPrivate, TokenProtected, TokenStatic, TokenAbstract,
	TokenFinal, TokenFunction, TokenVar, TokenConst, TokenUse,
}

func isClassMemberStart(t *Token) bool {
	switch t.Kind {
	case TokenPublic, TokenPrivate, TokenProtected, TokenStatic, TokenAbstract,
		TokenFinal, TokenFunction, TokenVar, TokenConst, TokenUse:
		return true
	}
	return false
}

func isMemberModifier(kind TokenKind) bool {
	switch kind {
	case TokenPublic, TokenPrivate, TokenProtected, TokenStatic, TokenAbstract,
		TokenFinal, TokenVar:
		return true
	}
	return false
}

func isNameStart(t *Token) bool {
	return t.Kind == TokenName || t.Kind == TokenBackslash || t.Kind == TokenNamespace
}

func isTypeStart(t *Token) bool {
	return isNameStart(t) || t.Kind == TokenQuestion || t.Kind == TokenArray || t.Kind == TokenCallable
}

// namespaceName parses Name ("\" Name)*, stopping before a "\" that is
// followed by "{" so group use clauses can take over.
func (p *Parser) namespaceName() *Phrase {
	p.start(PhraseNamespaceName)
	p.expect(TokenName)
	for p.check(TokenBackslash) && p.peek(1).Kind == TokenName {
		p.next()
		p.next()
	}
	return p.end()
}

// qualifiedName parses a plain, fully qualified ("\A\B") or namespace
// relative ("namespace\A") name.
func (p *Parser) qualifiedName() Node {
	switch p.peek(0).Kind {
	case TokenBackslash:
		p.start(PhraseFullyQualifiedName)
		p.next()
	case TokenNamespace:
		p.start(PhraseRelativeQualifiedName)
		p.next()
		p.expect(TokenBackslash)
	default:
		p.start(PhraseQualifiedName)
	}
	p.append(p.namespaceName())
	return p.end()
}

func (p *Parser) qualifiedNameList(breakOn ...TokenKind) *Phrase {
	return p.delimitedList(PhraseQualifiedNameList, p.qualifiedName, isNameStart, TokenComma, breakOn, false)
}

// identifier wraps a name that may also be a reserved word, as allowed for
// members and class constants.
func (p *Parser) identifier() Node {
	p.start(PhraseIdentifier)
	t := p.peek(0)
	if t.Kind == TokenName || isSemiReserved(t.Kind) {
		p.next()
	} else {
		p.append(p.missing(TokenName))
	}
	return p.end()
}

func isIdentifierStart(t *Token) bool {
	return t.Kind == TokenName || isSemiReserved(t.Kind)
}

func (p *Parser) namespaceDefinition() Node {
	p.start(PhraseNamespaceDefinition)
	p.next()
	if p.check(TokenName) {
		p.append(p.namespaceName())
		if p.check(TokenSemicolon) {
			p.next()
			return p.end()
		}
	}
	p.append(p.compoundStatement(PhraseCompoundStatement))
	return p.end()
}

func (p *Parser) namespaceUseDeclaration() Node {
	p.start(PhraseNamespaceUseDeclaration)
	p.next()
	p.optionalOneOf(TokenFunction, TokenConst)
	p.optional(TokenBackslash)

	if p.check(TokenName) {
		name := p.namespaceName()
		if p.check(TokenBackslash) && p.peek(1).Kind == TokenOpenBrace {
			p.append(name)
			p.next()
			p.next()
			p.append(p.delimitedList(PhraseNamespaceUseGroupClauseList, p.namespaceUseGroupClause,
				tokenIs(TokenName, TokenFunction, TokenConst), TokenComma, []TokenKind{TokenCloseBrace}, false))
			p.expect(TokenCloseBrace)
			p.expect(TokenSemicolon)
			return p.end()
		}

		p.start(PhraseNamespaceUseClauseList)
		p.append(p.namespaceUseClause(name))
		for p.check(TokenComma) {
			p.next()
			p.optional(TokenBackslash)
			p.append(p.namespaceUseClause(nil))
		}
		p.append(p.end())
	} else {
		p.append(p.missing(TokenName))
	}
	p.expect(TokenSemicolon)
	return p.end()
}

func (p *Parser) optionalOneOf(kinds ...TokenKind) *Token {
	if p.match(kinds...) {
		return p.next()
	}
	return nil
}

func (p *Parser) namespaceUseClause(name *Phrase) Node {
	p.start(PhraseNamespaceUseClause)
	if name == nil {
		name = p.namespaceName()
	}
	p.append(name)
	p.namespaceAliasingClause()
	return p.end()
}

func (p *Parser) namespaceUseGroupClause() Node {
	p.start(PhraseNamespaceUseGroupClause)
	p.optionalOneOf(TokenFunction, TokenConst)
	p.append(p.namespaceName())
	p.namespaceAliasingClause()
	return p.end()
}

func (p *Parser) namespaceAliasingClause() {
	if !p.check(TokenAs) {
		return
	}
	p.start(PhraseNamespaceAliasingClause)
	p.next()
	p.expect(TokenName)
	p.append(p.end())
}

func (p *Parser) constDeclaration() Node {
	p.start(PhraseConstDeclaration)
	p.next()
	p.append(p.delimitedList(PhraseConstElementList, p.constElement, tokenIs(TokenName), TokenComma,
		[]TokenKind{TokenSemicolon, TokenCloseTag}, false))
	p.expect(TokenSemicolon)
	return p.end()
}

func (p *Parser) constElement() Node {
	p.start(PhraseConstElement)
	p.next()
	p.expect(TokenEquals)
	p.append(p.expression(0))
	return p.end()
}

func (p *Parser) functionDeclaration() Node {
	p.start(PhraseFunctionDeclaration)
	p.start(PhraseFunctionDeclarationHeader)
	p.next()
	p.optional(TokenAmpersand)
	p.expect(TokenName)
	p.parameterList()
	p.returnType()
	p.append(p.end())
	p.append(p.compoundStatement(PhraseFunctionDeclarationBody))
	return p.end()
}

// parameterList parses "(" parameters ")" into the open phrase.
func (p *Parser) parameterList() {
	p.expect(TokenOpenParenthesis)
	if isParameterStart(p.peek(0)) {
		p.append(p.delimitedList(PhraseParameterDeclarationList, p.parameterDeclaration, isParameterStart,
			TokenComma, []TokenKind{TokenCloseParenthesis}, false))
	}
	p.expect(TokenCloseParenthesis)
}

func isParameterStart(t *Token) bool {
	switch t.Kind {
	case TokenAmpersand, TokenEllipsis, TokenVariableName:
		return true
	}
	return isTypeStart(t)
}

func (p *Parser) parameterDeclaration() Node {
	p.start(PhraseParameterDeclaration)
	if isTypeStart(p.peek(0)) {
		p.append(p.typeDeclaration())
	}
	p.optional(TokenAmpersand)
	p.optional(TokenEllipsis)
	p.expect(TokenVariableName)
	if p.check(TokenEquals) {
		p.next()
		p.append(p.expression(0))
	}
	return p.end()
}

func (p *Parser) typeDeclaration() Node {
	p.start(PhraseTypeDeclaration)
	p.optional(TokenQuestion)
	switch p.peek(0).Kind {
	case TokenArray, TokenCallable:
		p.next()
	default:
		if isNameStart(p.peek(0)) {
			p.append(p.qualifiedName())
		} else {
			p.append(p.missing(TokenName))
		}
	}
	return p.end()
}

func (p *Parser) returnType() {
	if !p.check(TokenColon) {
		return
	}
	p.start(PhraseReturnType)
	p.next()
	p.append(p.typeDeclaration())
	p.append(p.end())
}

func (p *Parser) classDeclaration() Node {
	p.start(PhraseClassDeclaration)
	p.start(PhraseClassDeclarationHeader)
	if p.match(TokenAbstract, TokenFinal) {
		p.start(PhraseClassModifiers)
		for p.match(TokenAbstract, TokenFinal) {
			p.next()
		}
		p.append(p.end())
	}
	p.expect(TokenClass)
	p.expect(TokenName)
	p.classHeaderClauses()
	p.append(p.end())
	p.append(p.classDeclarationBody(PhraseClassDeclarationBody, PhraseClassMemberDeclarationList))
	return p.end()
}

// classHeaderClauses parses the optional extends and implements clauses.
// A name followed by another name is taken as a misspelt "extends": only
// the first word is skipped and the second still forms the base clause.
// Anything else before the body is skipped as a single error.
func (p *Parser) classHeaderClauses() {
	clauseStart := []TokenKind{TokenExtends, TokenImplements, TokenOpenBrace}
	switch {
	case p.match(clauseStart...) || p.check(TokenEndOfFile):
	case p.check(TokenName) && isNameStart(p.peek(1)):
		err := &ParseError{Offset: p.peek(0).Offset, Expected: clauseStart}
		p.skipInto(err, 1)
		p.append(err)
		p.start(PhraseClassBaseClause)
		p.append(p.qualifiedName())
		p.append(p.end())
	default:
		stop := append(clauseStart[:len(clauseStart):len(clauseStart)], p.mergedRecoverSet()...)
		p.append(p.skipUntil(stop, clauseStart...))
	}
	if p.check(TokenExtends) {
		p.start(PhraseClassBaseClause)
		p.next()
		p.append(p.qualifiedName())
		p.append(p.end())
	}
	if p.check(TokenImplements) {
		p.start(PhraseClassInterfaceClause)
		p.next()
		p.append(p.qualifiedNameList(TokenOpenBrace))
		p.append(p.end())
	}
}

func (p *Parser) classDeclarationBody(kind, listKind PhraseKind) Node {
	p.start(kind)
	p.expect(TokenOpenBrace)
	if !p.check(TokenCloseBrace) {
		p.append(p.list(listKind, p.classMemberDeclaration, isClassMemberStart,
			[]TokenKind{TokenCloseBrace}, classMemberRecoverSet))
	}
	p.expect(TokenCloseBrace)
	return p.end()
}

func (p *Parser) interfaceDeclaration() Node {
	p.start(PhraseInterfaceDeclaration)
	p.start(PhraseInterfaceDeclarationHeader)
	p.next()
	p.expect(TokenName)
	if p.check(TokenExtends) {
		p.start(PhraseInterfaceBaseClause)
		p.next()
		p.append(p.qualifiedNameList(TokenOpenBrace))
		p.append(p.end())
	}
	p.append(p.end())
	p.append(p.classDeclarationBody(PhraseInterfaceDeclarationBody, PhraseInterfaceMemberDeclarationList))
	return p.end()
}

func (p *Parser) traitDeclaration() Node {
	p.start(PhraseTraitDeclaration)
	p.start(PhraseTraitDeclarationHeader)
	p.next()
	p.expect(TokenName)
	p.append(p.end())
	p.append(p.classDeclarationBody(PhraseTraitDeclarationBody, PhraseTraitMemberDeclarationList))
	return p.end()
}

// classMemberDeclaration starts every member as an error and renames it
// once the member kind is known.
func (p *Parser) classMemberDeclaration() Node {
	if p.check(TokenUse) {
		return p.traitUseClause()
	}

	member := p.start(PhraseErrorClassMemberDeclaration)
	var modifiers *Phrase
	if isMemberModifier(p.peek(0).Kind) {
		modifiers = p.memberModifierList()
	}

	switch t := p.peek(0); {
	case t.Kind == TokenConst:
		member.Kind = PhraseClassConstDeclaration
		p.append(modifiers)
		p.next()
		p.append(p.delimitedList(PhraseClassConstElementList, p.classConstElement, isIdentifierStart,
			TokenComma, []TokenKind{TokenSemicolon}, false))
		p.expect(TokenSemicolon)
	case t.Kind == TokenFunction:
		member.Kind = PhraseMethodDeclaration
		p.methodDeclaration(modifiers)
	case t.Kind == TokenVariableName && modifiers != nil:
		member.Kind = PhrasePropertyDeclaration
		p.append(modifiers)
		p.propertyElements()
	case isTypeStart(t) && modifiers != nil:
		member.Kind = PhrasePropertyDeclaration
		p.append(modifiers)
		p.append(p.typeDeclaration())
		p.propertyElements()
	default:
		p.append(modifiers)
		p.append(p.missing(TokenFunction, TokenConst, TokenVariableName))
	}
	return p.end()
}

func (p *Parser) memberModifierList() *Phrase {
	p.start(PhraseMemberModifierList)
	for isMemberModifier(p.peek(0).Kind) {
		p.next()
	}
	return p.end()
}

func (p *Parser) classConstElement() Node {
	p.start(PhraseClassConstElement)
	p.append(p.identifier())
	p.expect(TokenEquals)
	p.append(p.expression(0))
	return p.end()
}

func (p *Parser) propertyElements() {
	p.append(p.delimitedList(PhrasePropertyElementList, p.propertyElement, tokenIs(TokenVariableName),
		TokenComma, []TokenKind{TokenSemicolon}, false))
	p.expect(TokenSemicolon)
}

func (p *Parser) propertyElement() Node {
	p.start(PhrasePropertyElement)
	p.next()
	if p.check(TokenEquals) {
		p.start(PhrasePropertyInitialiser)
		p.next()
		p.append(p.expression(0))
		p.append(p.end())
	}
	return p.end()
}

func (p *Parser) methodDeclaration(modifiers *Phrase) {
	p.start(PhraseMethodDeclarationHeader)
	p.append(modifiers)
	p.next()
	p.optional(TokenAmpersand)
	p.append(p.identifier())
	p.parameterList()
	p.returnType()
	p.append(p.end())

	if p.check(TokenOpenBrace) {
		p.append(p.compoundStatement(PhraseMethodDeclarationBody))
		return
	}
	p.start(PhraseMethodDeclarationBody)
	p.expect(TokenSemicolon)
	p.append(p.end())
}

func (p *Parser) traitUseClause() Node {
	p.start(PhraseTraitUseClause)
	p.next()
	p.append(p.qualifiedNameList(TokenSemicolon, TokenOpenBrace))

	p.start(PhraseTraitUseSpecification)
	if p.check(TokenOpenBrace) {
		p.next()
		if !p.check(TokenCloseBrace) {
			p.append(p.list(PhraseTraitAdaptationList, p.traitAdaptation, isTraitAdaptationStart,
				[]TokenKind{TokenCloseBrace}, []TokenKind{TokenSemicolon}))
		}
		p.expect(TokenCloseBrace)
	} else {
		p.expect(TokenSemicolon)
	}
	p.append(p.end())
	return p.end()
}

func isTraitAdaptationStart(t *Token) bool {
	return isNameStart(t) || isSemiReserved(t.Kind)
}

// traitAdaptation parses "A::m insteadof B;" or "[A::]m as [modifier] [alias];".
func (p *Parser) traitAdaptation() Node {
	adaptation := p.start(PhraseErrorTraitAdaptation)

	var ref Node
	if isNameStart(p.peek(0)) && p.peek(1).Kind == TokenColonColon ||
		p.check(TokenBackslash) || p.check(TokenNamespace) {
		p.start(PhraseMethodReference)
		p.append(p.qualifiedName())
		p.expect(TokenColonColon)
		p.append(p.identifier())
		ref = p.end()
	} else {
		ref = p.identifier()
	}
	p.append(ref)

	switch p.peek(0).Kind {
	case TokenInsteadOf:
		adaptation.Kind = PhraseTraitPrecedence
		p.next()
		p.append(p.qualifiedNameList(TokenSemicolon))
	case TokenAs:
		adaptation.Kind = PhraseTraitAlias
		p.next()
		if p.match(TokenPublic, TokenProtected, TokenPrivate) {
			p.next()
		}
		if isIdentifierStart(p.peek(0)) {
			p.append(p.identifier())
		}
	default:
		p.append(p.missing(TokenInsteadOf, TokenAs))
	}
	p.expect(TokenSemicolon)
	return p.end()
}
