package simplf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type BufferedTokenizerMocker struct {
	buf []Token
	pos int
}

func NewBufferedTokenizerMocker(toks []Token) *BufferedTokenizerMocker {
	return &BufferedTokenizerMocker{
		buf: toks,
		pos: 0,
	}
}

func (b *BufferedTokenizerMocker) Do() {
	return
}

func (b *BufferedTokenizerMocker) Get() Token {
	if len(b.buf) <= b.pos {
		return Token{Typ: TokenEOF}
	}

	tok := b.buf[b.pos]
	b.pos++

	return tok
}

func (b *BufferedTokenizerMocker) GetFilename() string {
	return "testing"
}

func tok(typ TokenType, value string) Token {
	return Token{Typ: typ, Value: value}
}

func num(v float64) *LiteralExpr {
	return &LiteralExpr{Value: v}
}

func variable(name string) *VariableExpr {
	return &VariableExpr{Name: tok(TokenIdentifier, name)}
}

func TestParser(t *testing.T) {
	cases := []struct {
		data   []Token
		fail   bool
		expect []Stmt
	}{
		{
			[]Token{
				tok(TokenFun, "fun"),
				tok(TokenIdentifier, "main"),
				tok(TokenOpenParentheses, "("),
				tok(TokenCloseParentheses, ")"),
				tok(TokenOpenCurly, "{"),
				tok(TokenCloseCurly, "}"),
			},
			false,
			[]Stmt{
				&FunctionStmt{
					Name: tok(TokenIdentifier, "main"),
					Body: []Stmt{},
				},
			},
		},
		{
			[]Token{
				tok(TokenLineComment, "this is a comment"),
			},
			false,
			nil,
		},
		{
			[]Token{
				tok(TokenFun, "fun"),
				tok(TokenIdentifier, "add"),
				tok(TokenOpenParentheses, "("),
				tok(TokenIdentifier, "a"),
				tok(TokenComma, ","),
				tok(TokenIdentifier, "b"),
				tok(TokenCloseParentheses, ")"),
				tok(TokenOpenCurly, "{"),
				tok(TokenLineComment, " this is a comment "),
				tok(TokenReturn, "return"),
				tok(TokenIdentifier, "a"),
				tok(TokenSemicolon, ";"),
				tok(TokenCloseCurly, "}"),
			},
			false,
			[]Stmt{
				&FunctionStmt{
					Name:   tok(TokenIdentifier, "add"),
					Params: []Token{tok(TokenIdentifier, "a"), tok(TokenIdentifier, "b")},
					Body: []Stmt{
						&ReturnStmt{Keyword: tok(TokenReturn, "return"), Value: variable("a")},
					},
				},
			},
		},
		{
			[]Token{
				tok(TokenVar, "var"),
				tok(TokenIdentifier, "únicódeShouldBeVàlid"),
				tok(TokenEqual, "="),
				tok(TokenNumber, "1"),
				tok(TokenSemicolon, ";"),
			},
			false,
			[]Stmt{
				&VarStmt{
					Name:        tok(TokenIdentifier, "únicódeShouldBeVàlid"),
					Initializer: num(1),
				},
			},
		},
		{
			[]Token{
				tok(TokenVar, "var"),
				tok(TokenIdentifier, "x"),
				tok(TokenSemicolon, ";"),
			},
			false,
			[]Stmt{
				&VarStmt{Name: tok(TokenIdentifier, "x")},
			},
		},
		{
			[]Token{
				tok(TokenPrint, "print"),
				tok(TokenNumber, "1"),
				tok(TokenPlus, "+"),
				tok(TokenNumber, "2"),
				tok(TokenMulti, "*"),
				tok(TokenNumber, "3"),
				tok(TokenMinus, "-"),
				tok(TokenNumber, "4"),
				tok(TokenSemicolon, ";"),
			},
			false,
			[]Stmt{
				&PrintStmt{
					Expr: &BinaryExpr{
						Operator: tok(TokenMinus, "-"),
						Left: &BinaryExpr{
							Operator: tok(TokenPlus, "+"),
							Left:     num(1),
							Right: &BinaryExpr{
								Operator: tok(TokenMulti, "*"),
								Left:     num(2),
								Right:    num(3),
							},
						},
						Right: num(4),
					},
				},
			},
		},
		{
			[]Token{
				tok(TokenIdentifier, "a"),
				tok(TokenEqual, "="),
				tok(TokenIdentifier, "b"),
				tok(TokenEqual, "="),
				tok(TokenIdentifier, "c"),
				tok(TokenQuestion, "?"),
				tok(TokenNumber, "1"),
				tok(TokenColon, ":"),
				tok(TokenNumber, "2"),
				tok(TokenSemicolon, ";"),
			},
			false,
			[]Stmt{
				&ExpressionStmt{
					Expr: &AssignExpr{
						Name: tok(TokenIdentifier, "a"),
						Value: &AssignExpr{
							Name: tok(TokenIdentifier, "b"),
							Value: &ConditionalExpr{
								Cond: variable("c"),
								Then: num(1),
								Else: num(2),
							},
						},
					},
				},
			},
		},
		{
			[]Token{
				tok(TokenIdentifier, "f"),
				tok(TokenOpenParentheses, "("),
				tok(TokenNumber, "1"),
				tok(TokenComma, ","),
				tok(TokenMinus, "-"),
				tok(TokenIdentifier, "x"),
				tok(TokenCloseParentheses, ")"),
				tok(TokenOpenParentheses, "("),
				tok(TokenCloseParentheses, ")"),
				tok(TokenComma, ","),
				tok(TokenBang, "!"),
				tok(TokenTrue, "true"),
				tok(TokenSemicolon, ";"),
			},
			false,
			[]Stmt{
				&ExpressionStmt{
					Expr: &BinaryExpr{
						Operator: tok(TokenComma, ","),
						Left: &CallExpr{
							Callee: &CallExpr{
								Callee: variable("f"),
								Paren:  tok(TokenCloseParentheses, ")"),
								Args: []Expr{
									num(1),
									&UnaryExpr{Operator: tok(TokenMinus, "-"), Operand: variable("x")},
								},
							},
							Paren: tok(TokenCloseParentheses, ")"),
						},
						Right: &UnaryExpr{
							Operator: tok(TokenBang, "!"),
							Operand:  &LiteralExpr{Value: true},
						},
					},
				},
			},
		},
		{
			[]Token{
				tok(TokenFun, "fun"),
				tok(TokenOpenCurly, "{"),
				tok(TokenCloseCurly, "}"),
			},
			true,
			nil,
		},
		{
			[]Token{
				tok(TokenPrint, "print"),
				tok(TokenNumber, "1"),
			},
			true,
			nil,
		},
	}

	for _, c := range cases {
		tokenizer := NewBufferedTokenizerMocker(c.data)
		parser := NewParser(tokenizer)

		ast := parser.Run()
		assert.Equal(t, "testing", ast.Filename)

		if c.fail {
			assert.NotEmpty(t, ast.Errors)
			continue
		}

		assert.Empty(t, ast.Errors)
		assert.Equal(t, c.expect, ast.Statements)
	}
}

func TestParseFor(t *testing.T) {
	ast, err := Parse("", strings.NewReader("for (var i = 0; i < 3; i = i + 1) print i;"))
	require.NoError(t, err)
	require.Len(t, ast.Statements, 1)

	loop, ok := ast.Statements[0].(*ForStmt)
	require.True(t, ok)
	assert.IsType(t, &VarStmt{}, loop.Init)
	assert.IsType(t, &BinaryExpr{}, loop.Cond)
	assert.IsType(t, &AssignExpr{}, loop.Incr)
	assert.IsType(t, &PrintStmt{}, loop.Body)

	ast, err = Parse("", strings.NewReader("for (;;) {}"))
	require.NoError(t, err)

	loop, ok = ast.Statements[0].(*ForStmt)
	require.True(t, ok)
	assert.Nil(t, loop.Init)
	assert.Nil(t, loop.Cond)
	assert.Nil(t, loop.Incr)
	assert.Equal(t, &BlockStmt{Statements: []Stmt{}}, loop.Body)

	ast, err = Parse("", strings.NewReader("for (i = 0; i < 3;) {}"))
	require.NoError(t, err)

	loop, ok = ast.Statements[0].(*ForStmt)
	require.True(t, ok)
	assert.IsType(t, &ExpressionStmt{}, loop.Init)
	assert.Nil(t, loop.Incr)
}

func TestParseLogicalPrecedence(t *testing.T) {
	ast, err := Parse("", strings.NewReader("a or b and c == d;"))
	require.NoError(t, err)

	stmt := ast.Statements[0].(*ExpressionStmt)
	or, ok := stmt.Expr.(*LogicalExpr)
	require.True(t, ok)
	assert.Equal(t, TokenOr, or.Operator.Typ)

	and, ok := or.Right.(*LogicalExpr)
	require.True(t, ok)
	assert.Equal(t, TokenAnd, and.Operator.Typ)
	assert.IsType(t, &BinaryExpr{}, and.Right)
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		src        string
		messages   []string
		statements int
		incomplete bool
	}{
		{
			"var = 1; print 2;",
			[]string{"expected variable name at '='"},
			1,
			false,
		},
		{
			"return 1;",
			[]string{"can't return from top-level code at 'return'"},
			1,
			false,
		},
		{
			"1 = 2;",
			[]string{"invalid assignment target at '='"},
			1,
			false,
		},
		{
			"print (1; print 3;",
			[]string{"expected ')' after expression at ';'"},
			1,
			false,
		},
		{
			"print 1",
			[]string{"expected ';' after value at end"},
			0,
			true,
		},
		{
			"fun f() {",
			[]string{"expected '}' after block at end"},
			0,
			true,
		},
		{
			"print 1; @ print 2;",
			[]string{"invalid symbol '@'"},
			1,
			false,
		},
		{
			"var a = \"open",
			[]string{"unterminated string"},
			0,
			true,
		},
		{
			"print ; print ;",
			[]string{"expected expression at ';'", "expected expression at ';'"},
			0,
			false,
		},
	}

	for _, c := range cases {
		ast, err := Parse("t.sf", strings.NewReader(c.src))
		require.Error(t, err, c.src)

		var syntaxErrs SyntaxErrors
		require.ErrorAs(t, err, &syntaxErrs, c.src)

		var messages []string
		for _, e := range syntaxErrs {
			messages = append(messages, e.Message)
			assert.Equal(t, "t.sf", e.Loc.Filename, c.src)
		}

		assert.Equal(t, c.messages, messages, c.src)
		assert.Len(t, ast.Statements, c.statements, c.src)
		assert.Equal(t, c.incomplete, syntaxErrs.Incomplete(), c.src)
	}
}

func TestSyntaxErrorsString(t *testing.T) {
	_, err := Parse("t.sf", strings.NewReader("print ;\nvar 1;"))
	require.Error(t, err)

	assert.Equal(t,
		"t.sf:1:7 syntax error: expected expression at ';'\n"+
			"t.sf:2:5 syntax error: expected variable name at '1'",
		err.Error())
}
