// ==============================================================================================
// FILE: parser/parser.go
// ==============================================================================================
// PACKAGE: parser
// PURPOSE: The recursive-descent parser (§4.2). Consumes the scanner's token
//          stream and produces a slice of top-level ast.Statement nodes.
//          Grammar mirrors the precedence ladder in §4.2 exactly: one
//          function per level, from assignment down to primary. Errors are
//          recorded into the shared errors.Accumulator and recovered from at
//          statement boundaries (panic-mode synchronization) rather than by
//          panicking -- matching the teacher's own error-as-value idiom.
// ==============================================================================================

package parser

import (
	"github.com/amoghasbhardwaj/slang/ast"
	"github.com/amoghasbhardwaj/slang/errors"
	"github.com/amoghasbhardwaj/slang/token"
)

const maxArguments = 255
const maxListElements = 100

// Parser walks a flat token slice produced by lexer.ScanTokens.
type Parser struct {
	tokens  []token.Token
	current int
	errs    *errors.Accumulator
}

// New creates a Parser over tokens, recording diagnostics into errs.
func New(tokens []token.Token, errs *errors.Accumulator) *Parser {
	return &Parser{tokens: tokens, errs: errs}
}

// Parse consumes the entire token stream and returns the program as a
// sequence of top-level declarations/statements.
func (p *Parser) Parse() []ast.Statement {
	var statements []ast.Statement
	for !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	return statements
}

// ----------------------------------------------------------------------------------------------
// Token cursor helpers
// ----------------------------------------------------------------------------------------------

func (p *Parser) peek() token.Token     { return p.tokens[p.current] }
func (p *Parser) previous() token.Token { return p.tokens[p.current-1] }
func (p *Parser) isAtEnd() bool         { return p.peek().Kind == token.EOF }

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(kind token.Kind) bool {
	if p.isAtEnd() {
		return kind == token.EOF
	}
	return p.peek().Kind == kind
}

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

// parserKeyword reports whether the current token is the reserved word kind
// among those the scanner leaves tagged as a plain IDENTIFIER (§6.3): elif,
// break, continue, lambda, try, throw.
func (p *Parser) parserKeyword(kind token.Kind) bool {
	if !p.check(token.IDENTIFIER) {
		return false
	}
	got, ok := token.LookupParserKeyword(p.peek().Lexeme)
	return ok && got == kind
}

func (p *Parser) matchParserKeyword(kind token.Kind) bool {
	if p.parserKeyword(kind) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) consume(kind token.Kind, message string) token.Token {
	if p.check(kind) {
		return p.advance()
	}
	p.errorAt(p.peek(), message)
	return p.peek()
}

func (p *Parser) errorAt(tok token.Token, message string) {
	where := "at '" + tok.Lexeme + "'"
	if tok.Kind == token.EOF {
		where = "at end"
	}
	p.errs.Add(tok.Line, where, message)
}

func (p *Parser) badExpr() ast.Expression {
	return &ast.BadExpr{Token: p.peek()}
}

// synchronize discards tokens until it finds a probable statement boundary,
// so one malformed statement doesn't cascade into spurious downstream
// errors (§4.2, §4.7).
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Kind == token.SEMICOLON {
			return
		}
		switch p.peek().Kind {
		case token.CLASS, token.FUN, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		if p.parserKeyword(token.BREAK) {
			return
		}
		p.advance()
	}
}

// ----------------------------------------------------------------------------------------------
// Declarations & statements
// ----------------------------------------------------------------------------------------------

func (p *Parser) declaration() ast.Statement {
	start := p.current
	var stmt ast.Statement
	switch {
	case p.match(token.CLASS):
		stmt = p.classDeclaration()
	case p.match(token.FUN):
		stmt = p.function("function")
	case p.match(token.VAR):
		stmt = p.varDeclaration()
	default:
		stmt = p.statement()
	}
	// A statement that consumed no token at all failed on its first token;
	// synchronize so the caller's loop always makes progress.
	if stmt == nil || p.current == start {
		p.synchronize()
		return nil
	}
	return stmt
}

func (p *Parser) classDeclaration() ast.Statement {
	name := p.consume(token.IDENTIFIER, "expect class name")

	var superclass *ast.Variable
	if p.match(token.LESS) {
		super := p.consume(token.IDENTIFIER, "expect superclass name")
		superclass = &ast.Variable{Name: super}
	}

	p.consume(token.LEFT_BRACE, "expect '{' before class body")

	var methods []*ast.FunctionStmt
	for !p.check(token.RIGHT_BRACE) && !p.isAtEnd() {
		methods = append(methods, p.function("method"))
	}
	p.consume(token.RIGHT_BRACE, "expect '}' after class body")

	return &ast.ClassStmt{Name: name, Superclass: superclass, Methods: methods}
}

// function parses a named function or method declaration. kind is "function"
// or "method", used only to phrase diagnostics.
func (p *Parser) function(kind string) *ast.FunctionStmt {
	name := p.consume(token.IDENTIFIER, "expect "+kind+" name")
	p.consume(token.LEFT_PAREN, "expect '(' after "+kind+" name")

	var params []token.Token
	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(params) >= maxArguments {
				p.errorAt(p.peek(), "can't have more than 255 parameters")
			}
			params = append(params, p.consume(token.IDENTIFIER, "expect parameter name"))
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RIGHT_PAREN, "expect ')' after parameters")
	p.consume(token.LEFT_BRACE, "expect '{' before "+kind+" body")
	body := p.block()

	return &ast.FunctionStmt{Name: name, Params: params, Body: body}
}

func (p *Parser) varDeclaration() ast.Statement {
	name := p.consume(token.IDENTIFIER, "expect variable name")

	var initializer ast.Expression
	if p.match(token.EQUAL) {
		initializer = p.expression()
	}
	p.consume(token.SEMICOLON, "expect ';' after variable declaration")
	return &ast.VarStmt{Name: name, Initializer: initializer}
}

func (p *Parser) statement() ast.Statement {
	switch {
	case p.match(token.FOR):
		return p.forStatement()
	case p.match(token.IF):
		return p.ifStatement()
	case p.match(token.WHILE):
		return p.whileStatement()
	case p.match(token.PRINT):
		return p.printStatement()
	case p.match(token.RETURN):
		return p.returnStatement()
	case p.matchParserKeyword(token.BREAK):
		return p.breakStatement()
	case p.matchParserKeyword(token.CONTINUE):
		return p.continueStatement()
	case p.matchParserKeyword(token.LAMBDA), p.matchParserKeyword(token.TRY), p.matchParserKeyword(token.THROW):
		p.errorAt(p.previous(), "'"+p.previous().Lexeme+"' is reserved and not yet implemented")
		return nil
	case p.match(token.LEFT_BRACE):
		return &ast.BlockStmt{Statements: p.block()}
	default:
		return p.expressionStatement()
	}
}

// forStatement desugars `for (init; cond; incr) body` into a block wrapping
// a WhileStmt, carrying incr separately so `continue` still advances it
// (see ast.WhileStmt.Increment).
func (p *Parser) forStatement() ast.Statement {
	p.consume(token.LEFT_PAREN, "expect '(' after 'for'")

	var initializer ast.Statement
	switch {
	case p.match(token.SEMICOLON):
		initializer = nil
	case p.match(token.VAR):
		initializer = p.varDeclaration()
	default:
		initializer = p.expressionStatement()
	}

	var condition ast.Expression
	if !p.check(token.SEMICOLON) {
		condition = p.expression()
	}
	p.consume(token.SEMICOLON, "expect ';' after loop condition")

	var increment ast.Expression
	if !p.check(token.RIGHT_PAREN) {
		increment = p.expression()
	}
	p.consume(token.RIGHT_PAREN, "expect ')' after for clauses")

	body := p.statement()

	if condition == nil {
		condition = &ast.Literal{Token: p.previous(), Value: true}
	}

	loop := ast.Statement(&ast.WhileStmt{Condition: condition, Body: body, Increment: increment})
	if initializer != nil {
		loop = &ast.BlockStmt{Statements: []ast.Statement{initializer, loop}}
	}
	return loop
}

func (p *Parser) ifStatement() ast.Statement {
	p.consume(token.LEFT_PAREN, "expect '(' after 'if'")
	condition := p.expression()
	p.consume(token.RIGHT_PAREN, "expect ')' after if condition")
	thenBranch := p.statement()

	var elifArms []ast.ElifBranch
	for p.matchParserKeyword(token.ELIF) {
		p.consume(token.LEFT_PAREN, "expect '(' after 'elif'")
		elifCond := p.expression()
		p.consume(token.RIGHT_PAREN, "expect ')' after elif condition")
		elifArms = append(elifArms, ast.ElifBranch{Condition: elifCond, Body: p.statement()})
	}

	var elseBranch ast.Statement
	if p.match(token.ELSE) {
		elseBranch = p.statement()
	}

	return &ast.IfStmt{Condition: condition, Then: thenBranch, ElifArms: elifArms, Else: elseBranch}
}

func (p *Parser) whileStatement() ast.Statement {
	p.consume(token.LEFT_PAREN, "expect '(' after 'while'")
	condition := p.expression()
	p.consume(token.RIGHT_PAREN, "expect ')' after condition")
	body := p.statement()
	return &ast.WhileStmt{Condition: condition, Body: body}
}

func (p *Parser) printStatement() ast.Statement {
	keyword := p.previous()
	value := p.expression()
	p.consume(token.SEMICOLON, "expect ';' after value")
	return &ast.PrintStmt{Keyword: keyword, Expression: value}
}

func (p *Parser) returnStatement() ast.Statement {
	keyword := p.previous()
	var value ast.Expression
	if !p.check(token.SEMICOLON) {
		value = p.expression()
	}
	p.consume(token.SEMICOLON, "expect ';' after return value")
	return &ast.ReturnStmt{Keyword: keyword, Value: value}
}

func (p *Parser) breakStatement() ast.Statement {
	keyword := p.previous()
	p.consume(token.SEMICOLON, "expect ';' after 'break'")
	return &ast.BreakStmt{Keyword: keyword}
}

func (p *Parser) continueStatement() ast.Statement {
	keyword := p.previous()
	p.consume(token.SEMICOLON, "expect ';' after 'continue'")
	return &ast.ContinueStmt{Keyword: keyword}
}

func (p *Parser) block() []ast.Statement {
	var statements []ast.Statement
	for !p.check(token.RIGHT_BRACE) && !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	p.consume(token.RIGHT_BRACE, "expect '}' after block")
	return statements
}

func (p *Parser) expressionStatement() ast.Statement {
	expr := p.expression()
	p.consume(token.SEMICOLON, "expect ';' after expression")
	return &ast.ExpressionStmt{Expression: expr}
}

// ----------------------------------------------------------------------------------------------
// Expressions -- one function per precedence level, low to high (§4.2):
// assignment, logic_or, logic_and, equality, comparison, term, factor,
// unary, postfix, call, primary.
// ----------------------------------------------------------------------------------------------

func (p *Parser) expression() ast.Expression {
	return p.assignment()
}

func (p *Parser) assignment() ast.Expression {
	expr := p.or()

	if p.match(token.EQUAL) {
		equals := p.previous()
		value := p.assignment()

		switch target := expr.(type) {
		case *ast.Variable:
			return &ast.Assign{Name: target.Name, Value: value}
		case *ast.Get:
			return &ast.Set{Object: target.Object, Name: target.Name, Value: value}
		case *ast.Subscript:
			return &ast.IndexSet{Object: target.Object, Bracket: target.Bracket, Index: target.Index, Value: value}
		default:
			p.errorAt(equals, "invalid assignment target")
			return expr
		}
	}

	return expr
}

func (p *Parser) or() ast.Expression {
	expr := p.and()
	for p.match(token.OR) {
		operator := p.previous()
		right := p.and()
		expr = &ast.Logical{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

func (p *Parser) and() ast.Expression {
	expr := p.equality()
	for p.match(token.AND) {
		operator := p.previous()
		right := p.equality()
		expr = &ast.Logical{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

func (p *Parser) equality() ast.Expression {
	expr := p.comparison()
	for p.match(token.BANG_EQUAL, token.EQUAL_EQUAL) {
		operator := p.previous()
		right := p.comparison()
		expr = &ast.Binary{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

func (p *Parser) comparison() ast.Expression {
	expr := p.term()
	for p.match(token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL) {
		operator := p.previous()
		right := p.term()
		expr = &ast.Binary{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

func (p *Parser) term() ast.Expression {
	expr := p.factor()
	for p.match(token.MINUS, token.PLUS) {
		operator := p.previous()
		right := p.factor()
		expr = &ast.Binary{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

func (p *Parser) factor() ast.Expression {
	expr := p.unary()
	for p.match(token.SLASH, token.STAR, token.PERCENT) {
		operator := p.previous()
		right := p.unary()
		expr = &ast.Binary{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

func (p *Parser) unary() ast.Expression {
	if p.match(token.BANG, token.MINUS) {
		operator := p.previous()
		right := p.unary()
		return &ast.Unary{Operator: operator, Right: right}
	}
	return p.postfix()
}

// postfix handles trailing `++`/`--`. These bind tighter than any prefix
// operator and looser than a call/subscript chain.
func (p *Parser) postfix() ast.Expression {
	expr := p.call()
	if p.match(token.PLUS_PLUS) {
		return &ast.Increment{Operator: p.previous(), Target: expr}
	}
	if p.match(token.MINUS_MINUS) {
		return &ast.Decrement{Operator: p.previous(), Target: expr}
	}
	return expr
}

func (p *Parser) call() ast.Expression {
	expr := p.primary()

	for {
		switch {
		case p.match(token.LEFT_PAREN):
			expr = p.finishCall(expr)
		case p.match(token.DOT):
			name := p.consume(token.IDENTIFIER, "expect property name after '.'")
			expr = &ast.Get{Object: expr, Name: name}
		case p.match(token.LEFT_BRACK):
			bracket := p.previous()
			index := p.expression()
			p.consume(token.RIGHT_BRACK, "expect ']' after index")
			expr = &ast.Subscript{Object: expr, Bracket: bracket, Index: index}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expression) ast.Expression {
	var args []ast.Expression
	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(args) >= maxArguments {
				p.errorAt(p.peek(), "can't have more than 255 arguments")
			}
			args = append(args, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	paren := p.consume(token.RIGHT_PAREN, "expect ')' after arguments")
	return &ast.Call{Callee: callee, Paren: paren, Arguments: args}
}

func (p *Parser) primary() ast.Expression {
	switch {
	case p.match(token.FALSE):
		return &ast.Literal{Token: p.previous(), Value: false}
	case p.match(token.TRUE):
		return &ast.Literal{Token: p.previous(), Value: true}
	case p.match(token.NIL):
		return &ast.Literal{Token: p.previous(), Value: nil}
	case p.match(token.INTEGER, token.NUMBER, token.STRING):
		tok := p.previous()
		return &ast.Literal{Token: tok, Value: tok.Literal}
	case p.match(token.THIS):
		return &ast.This{Keyword: p.previous()}
	case p.match(token.SUPER):
		keyword := p.previous()
		p.consume(token.DOT, "expect '.' after 'super'")
		method := p.consume(token.IDENTIFIER, "expect superclass method name")
		return &ast.Super{Keyword: keyword, Method: method}
	case p.match(token.IDENTIFIER):
		return &ast.Variable{Name: p.previous()}
	case p.match(token.LEFT_PAREN):
		expr := p.expression()
		p.consume(token.RIGHT_PAREN, "expect ')' after expression")
		return &ast.Grouping{Expression: expr}
	case p.match(token.LEFT_BRACK):
		return p.listLiteral()
	}

	p.errorAt(p.peek(), "expect expression")
	return p.badExpr()
}

func (p *Parser) listLiteral() ast.Expression {
	bracket := p.previous()
	var elements []ast.Expression
	if !p.check(token.RIGHT_BRACK) {
		for {
			if len(elements) >= maxListElements {
				p.errorAt(p.peek(), "can't have more than 100 list elements")
			}
			elements = append(elements, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RIGHT_BRACK, "expect ']' after list elements")
	return &ast.List{Bracket: bracket, Elements: elements}
}
