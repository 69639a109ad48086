package simplf

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDesugarFor(t *testing.T) {
	i := tok(TokenIdentifier, "i")
	less := tok(TokenLess, "<")
	plus := tok(TokenPlus, "+")

	init := &VarStmt{Name: i, Initializer: num(0)}
	cond := &BinaryExpr{Operator: less, Left: variable("i"), Right: num(3)}
	incr := &AssignExpr{Name: i, Value: &BinaryExpr{Operator: plus, Left: variable("i"), Right: num(1)}}
	body := &PrintStmt{Expr: variable("i")}

	cases := []struct {
		name   string
		input  Stmt
		expect Stmt
	}{
		{
			"all clauses",
			&ForStmt{Init: init, Cond: cond, Incr: incr, Body: body},
			&BlockStmt{Statements: []Stmt{
				init,
				&WhileStmt{
					Cond: cond,
					Body: &BlockStmt{Statements: []Stmt{
						body,
						&ExpressionStmt{Expr: incr},
					}},
				},
			}},
		},
		{
			"no init",
			&ForStmt{Cond: cond, Incr: incr, Body: body},
			&WhileStmt{
				Cond: cond,
				Body: &BlockStmt{Statements: []Stmt{
					body,
					&ExpressionStmt{Expr: incr},
				}},
			},
		},
		{
			"no increment",
			&ForStmt{Init: init, Cond: cond, Body: body},
			&BlockStmt{Statements: []Stmt{
				init,
				&WhileStmt{Cond: cond, Body: body},
			}},
		},
		{
			"no clauses",
			&ForStmt{Body: body},
			&WhileStmt{Cond: &LiteralExpr{Value: true}, Body: body},
		},
	}

	for _, c := range cases {
		got := Desugar([]Stmt{c.input})
		if diff := cmp.Diff([]Stmt{c.expect}, got); diff != "" {
			t.Errorf("%s: Desugar() mismatch (-want +got):\n%s", c.name, diff)
		}
	}
}

func TestDesugarNested(t *testing.T) {
	src := `
fun f(n) {
  if (n > 0) {
    for (var i = 0; i < n; i = i + 1) {
      while (false) for (;;) print i;
    }
  } else for (;false;) print n;
  return (n ? n : n, n);
}
print f(2);
`
	ast, err := Parse("", strings.NewReader(src))
	require.NoError(t, err)

	out := Desugar(ast.Statements)
	assert.False(t, containsFor(out))
	assert.True(t, containsFor(ast.Statements), "input must not be modified")

	// Already desugared input comes back unchanged
	if diff := cmp.Diff(out, Desugar(out)); diff != "" {
		t.Errorf("Desugar() is not idempotent (-once +twice):\n%s", diff)
	}
}

func TestDesugarTwiceRunsTheSame(t *testing.T) {
	src := `
var total = 0;
for (var i = 0; i < 4; i = i + 1) {
  for (var j = 0; j < i; j = j + 1) total = total + j;
  print total;
}
`
	ast, err := Parse("", strings.NewReader(src))
	require.NoError(t, err)

	var once, twice bytes.Buffer
	desugared := Desugar(ast.Statements)
	require.NoError(t, NewInterpreter(WithOutput(&once)).Interpret(desugared))
	require.NoError(t, NewInterpreter(WithOutput(&twice)).Interpret(Desugar(desugared)))

	assert.Equal(t, "0\n0\n1\n4\n", once.String())
	assert.Equal(t, once.String(), twice.String())
}

func TestDesugarNil(t *testing.T) {
	assert.Nil(t, Desugar(nil))
	assert.Equal(t, []Stmt{}, Desugar([]Stmt{}))
}

func containsFor(stmts []Stmt) bool {
	for _, stmt := range stmts {
		if stmtContainsFor(stmt) {
			return true
		}
	}

	return false
}

func stmtContainsFor(stmt Stmt) bool {
	switch s := stmt.(type) {
	case *ForStmt:
		return true
	case *BlockStmt:
		return containsFor(s.Statements)
	case *IfStmt:
		return stmtContainsFor(s.Then) || stmtContainsFor(s.Else)
	case *WhileStmt:
		return stmtContainsFor(s.Body)
	case *FunctionStmt:
		return containsFor(s.Body)
	default:
		return false
	}
}
