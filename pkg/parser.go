package simplf

import (
	"fmt"
	"strconv"
)

const maxArguments = 255

type Parser struct {
	filename  string
	tokenizer Tokenizer
	buf       *Token

	errors    SyntaxErrors
	lexFailed bool
	funcDepth int
}

// bailout unwinds the parser to the nearest declaration after an error has
// been recorded.
type bailout struct{}

func NewParser(tokenizer Tokenizer) *Parser {
	return &Parser{
		tokenizer: tokenizer,
		filename:  tokenizer.GetFilename(),
	}
}

// Run starts the tokenizer and parses the whole token stream. Syntax errors
// are collected in AST.Errors; statements that failed to parse are left out.
// The token stream is always drained to EOF.
func (p *Parser) Run() *AST {
	go p.tokenizer.Do()

	ast := &AST{Filename: p.filename}
	for !p.check(TokenEOF) {
		if stmt := p.declaration(); stmt != nil {
			ast.Statements = append(ast.Statements, stmt)
		}
	}

	ast.Errors = p.errors
	return ast
}

func (p *Parser) peek() Token {
	if p.buf == nil {
		temp := p.fetch()
		p.buf = &temp
	}

	return *p.buf
}

func (p *Parser) next() Token {
	tok := p.peek()
	if tok.Typ != TokenEOF {
		// EOF stays buffered since no more valid tokens are expected
		p.buf = nil
	}

	return tok
}

// fetch reads the next meaningful token, skipping comments. A lexer error is
// recorded and turned into EOF since the lexer stops after reporting it.
func (p *Parser) fetch() Token {
	for {
		tok := p.tokenizer.Get()
		if tok.isComment() {
			continue
		}

		if tok.Typ == TokenError {
			p.errors = append(p.errors, &SyntaxError{
				Loc:        tok.Loc,
				Message:    tok.Value,
				Incomplete: isIncompleteToken(tok),
			})
			p.lexFailed = true

			return Token{Typ: TokenEOF, Loc: tok.Loc}
		}

		return tok
	}
}

func (p *Parser) check(typ TokenType) bool {
	return p.peek().Typ == typ
}

func (p *Parser) match(types ...TokenType) bool {
	for _, typ := range types {
		if p.check(typ) {
			p.next()
			return true
		}
	}

	return false
}

func (p *Parser) expect(typ TokenType, format string, args ...interface{}) Token {
	if p.check(typ) {
		return p.next()
	}

	p.report(p.peek(), format, args...)
	panic(bailout{})
}

// report records an error at tok without unwinding.
func (p *Parser) report(tok Token, format string, args ...interface{}) {
	if p.lexFailed {
		// Anything after a lexer error is noise
		return
	}

	msg := fmt.Sprintf(format, args...)
	if tok.Typ == TokenEOF {
		msg += " at end"
	} else {
		msg += fmt.Sprintf(" at '%s'", tok.Value)
	}

	p.errors = append(p.errors, &SyntaxError{
		Loc:        tok.Loc,
		Message:    msg,
		Incomplete: tok.Typ == TokenEOF,
	})
}

// synchronize skips tokens until something that looks like the start of a new
// statement.
func (p *Parser) synchronize() {
	for !p.check(TokenEOF) {
		if p.next().Typ == TokenSemicolon {
			return
		}

		switch p.peek().Typ {
		case TokenFun, TokenVar, TokenFor, TokenIf, TokenWhile, TokenPrint, TokenReturn:
			return
		}
	}
}

func (p *Parser) declaration() (stmt Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}

			p.synchronize()
			stmt = nil
		}
	}()

	switch p.peek().Typ {
	case TokenFun:
		return p.funcDecl()
	case TokenVar:
		return p.varDecl()
	default:
		return p.statement()
	}
}

func (p *Parser) funcDecl() Stmt {
	p.next() // fun keyword

	name := p.expect(TokenIdentifier, "expected function name")
	p.expect(TokenOpenParentheses, "expected '(' after function name")

	var params []Token
	if !p.check(TokenCloseParentheses) {
		for {
			if len(params) >= maxArguments {
				p.report(p.peek(), "can't have more than %d parameters", maxArguments)
			}

			params = append(params, p.expect(TokenIdentifier, "expected parameter name"))
			if !p.match(TokenComma) {
				break
			}
		}
	}
	p.expect(TokenCloseParentheses, "expected ')' after parameters")

	p.funcDepth++
	defer func() { p.funcDepth-- }()

	return &FunctionStmt{
		Name:   name,
		Params: params,
		Body:   p.blockStmt(),
	}
}

func (p *Parser) varDecl() Stmt {
	p.next() // var keyword

	name := p.expect(TokenIdentifier, "expected variable name")

	var initializer Expr
	if p.match(TokenEqual) {
		initializer = p.expr()
	}

	p.expect(TokenSemicolon, "expected ';' after variable declaration")
	return &VarStmt{
		Name:        name,
		Initializer: initializer,
	}
}

func (p *Parser) statement() Stmt {
	switch p.peek().Typ {
	case TokenPrint:
		return p.printStmt()
	case TokenIf:
		return p.ifStmt()
	case TokenWhile:
		return p.whileStmt()
	case TokenFor:
		return p.forStmt()
	case TokenReturn:
		return p.returnStmt()
	case TokenOpenCurly:
		return &BlockStmt{Statements: p.blockStmt()}
	default:
		return p.exprStmt()
	}
}

func (p *Parser) printStmt() Stmt {
	p.next() // print keyword

	value := p.expr()
	p.expect(TokenSemicolon, "expected ';' after value")

	return &PrintStmt{Expr: value}
}

func (p *Parser) exprStmt() Stmt {
	expr := p.expr()
	p.expect(TokenSemicolon, "expected ';' after expression")

	return &ExpressionStmt{Expr: expr}
}

func (p *Parser) ifStmt() Stmt {
	p.next() // if keyword

	p.expect(TokenOpenParentheses, "expected '(' after 'if'")
	cond := p.expr()
	p.expect(TokenCloseParentheses, "expected ')' after if condition")

	stmt := &IfStmt{
		Cond: cond,
		Then: p.statement(),
	}

	if p.match(TokenElse) {
		stmt.Else = p.statement()
	}

	return stmt
}

func (p *Parser) whileStmt() Stmt {
	p.next() // while keyword

	p.expect(TokenOpenParentheses, "expected '(' after 'while'")
	cond := p.expr()
	p.expect(TokenCloseParentheses, "expected ')' after condition")

	return &WhileStmt{
		Cond: cond,
		Body: p.statement(),
	}
}

func (p *Parser) forStmt() Stmt {
	p.next() // for keyword

	p.expect(TokenOpenParentheses, "expected '(' after 'for'")

	stmt := &ForStmt{}
	switch {
	case p.match(TokenSemicolon):
	case p.check(TokenVar):
		stmt.Init = p.varDecl()
	default:
		stmt.Init = p.exprStmt()
	}

	if !p.check(TokenSemicolon) {
		stmt.Cond = p.expr()
	}
	p.expect(TokenSemicolon, "expected ';' after loop condition")

	if !p.check(TokenCloseParentheses) {
		stmt.Incr = p.expr()
	}
	p.expect(TokenCloseParentheses, "expected ')' after for clauses")

	stmt.Body = p.statement()
	return stmt
}

func (p *Parser) returnStmt() Stmt {
	keyword := p.next()
	if p.funcDepth == 0 {
		p.report(keyword, "can't return from top-level code")
	}

	var value Expr
	if !p.check(TokenSemicolon) {
		value = p.expr()
	}
	p.expect(TokenSemicolon, "expected ';' after return value")

	return &ReturnStmt{
		Keyword: keyword,
		Value:   value,
	}
}

func (p *Parser) blockStmt() []Stmt {
	p.expect(TokenOpenCurly, "expected '{' before block")

	stmts := []Stmt{}
	for !p.check(TokenCloseCurly) && !p.check(TokenEOF) {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}

	p.expect(TokenCloseCurly, "expected '}' after block")
	return stmts
}

func (p *Parser) expr() Expr {
	return p.commaExpr()
}

func (p *Parser) commaExpr() Expr {
	lhs := p.assignment()

	for p.check(TokenComma) {
		op := p.next()
		lhs = &BinaryExpr{
			Operator: op,
			Left:     lhs,
			Right:    p.assignment(),
		}
	}

	return lhs
}

func (p *Parser) assignment() Expr {
	expr := p.conditional()

	if p.check(TokenEqual) {
		equals := p.next()
		value := p.assignment()

		if v, ok := expr.(*VariableExpr); ok {
			return &AssignExpr{
				Name:  v.Name,
				Value: value,
			}
		}

		p.report(equals, "invalid assignment target")
	}

	return expr
}

func (p *Parser) conditional() Expr {
	cond := p.or()

	if p.match(TokenQuestion) {
		then := p.expr()
		p.expect(TokenColon, "expected ':' in conditional expression")

		return &ConditionalExpr{
			Cond: cond,
			Then: then,
			Else: p.conditional(),
		}
	}

	return cond
}

func (p *Parser) or() Expr {
	lhs := p.and()

	for p.check(TokenOr) {
		op := p.next()
		lhs = &LogicalExpr{Operator: op, Left: lhs, Right: p.and()}
	}

	return lhs
}

func (p *Parser) and() Expr {
	lhs := p.equality()

	for p.check(TokenAnd) {
		op := p.next()
		lhs = &LogicalExpr{Operator: op, Left: lhs, Right: p.equality()}
	}

	return lhs
}

func (p *Parser) equality() Expr {
	return p.binary(p.comparison, TokenEqualEqual, TokenBangEqual)
}

func (p *Parser) comparison() Expr {
	return p.binary(p.additiveExpr, TokenGreater, TokenGreaterEqual, TokenLess, TokenLessEqual)
}

func (p *Parser) additiveExpr() Expr {
	return p.binary(p.multiplicativeExpr, TokenPlus, TokenMinus)
}

func (p *Parser) multiplicativeExpr() Expr {
	return p.binary(p.unaryExpr, TokenMulti, TokenDiv)
}

// binary parses a left-associative chain of operands produced by operand and
// joined by any of ops. For example 1 - 3 + 1 nests as (1 - 3) + 1.
func (p *Parser) binary(operand func() Expr, ops ...TokenType) Expr {
	lhs := operand()

	for {
		tok := p.peek()
		if !containsType(ops, tok.Typ) {
			return lhs
		}

		p.next()
		lhs = &BinaryExpr{
			Operator: tok,
			Left:     lhs,
			Right:    operand(),
		}
	}
}

func (p *Parser) unaryExpr() Expr {
	if p.check(TokenMinus) || p.check(TokenBang) {
		op := p.next()

		return &UnaryExpr{
			Operator: op,
			Operand:  p.unaryExpr(),
		}
	}

	return p.call()
}

func (p *Parser) call() Expr {
	expr := p.primary()

	for p.match(TokenOpenParentheses) {
		expr = p.funcCall(expr)
	}

	return expr
}

func (p *Parser) funcCall(callee Expr) Expr {
	var args []Expr
	if !p.check(TokenCloseParentheses) {
		for {
			if len(args) >= maxArguments {
				p.report(p.peek(), "can't have more than %d arguments", maxArguments)
			}

			// Arguments bind tighter than the comma operator
			args = append(args, p.assignment())
			if !p.match(TokenComma) {
				break
			}
		}
	}

	paren := p.expect(TokenCloseParentheses, "expected ')' after arguments")
	return &CallExpr{
		Callee: callee,
		Paren:  paren,
		Args:   args,
	}
}

func (p *Parser) primary() Expr {
	switch tok := p.peek(); tok.Typ {
	case TokenOpenParentheses:
		return p.parenthesisedExpression()
	case TokenIdentifier:
		return &VariableExpr{Name: p.next()}
	}

	return p.literal()
}

func (p *Parser) parenthesisedExpression() Expr {
	p.next() // (

	exp := p.expr()
	p.expect(TokenCloseParentheses, "expected ')' after expression")

	return &GroupingExpr{Inner: exp}
}

func (p *Parser) literal() Expr {
	switch tok := p.peek(); tok.Typ {
	case TokenNumber:
		p.next()

		num, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			p.report(tok, "invalid number")
			panic(bailout{})
		}

		return &LiteralExpr{Value: num}
	case TokenString:
		return &LiteralExpr{Value: p.next().Value}
	case TokenTrue:
		p.next()
		return &LiteralExpr{Value: true}
	case TokenFalse:
		p.next()
		return &LiteralExpr{Value: false}
	case TokenNil:
		p.next()
		return &LiteralExpr{Value: nil}
	default:
		p.report(tok, "expected expression")
		panic(bailout{})
	}
}

func containsType(types []TokenType, typ TokenType) bool {
	for _, t := range types {
		if t == typ {
			return true
		}
	}

	return false
}
