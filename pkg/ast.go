package simplf

import "fmt"

type AST struct {
	Filename   string
	Statements []Stmt
	Errors     SyntaxErrors
}

type Location struct {
	Filename string
	Line     int
	Col      int
}

func (l *Location) String() string {
	if l == nil {
		return "<unknown>"
	}

	if l.Filename == "" {
		return fmt.Sprintf("%d:%d", l.Line, l.Col)
	}

	return fmt.Sprintf("%s:%d:%d", l.Filename, l.Line, l.Col)
}

// Expr is implemented by every expression node. The set of nodes is closed.
type Expr interface {
	exprNode()
}

type LiteralExpr struct {
	Value Value
}

type VariableExpr struct {
	Name Token
}

type GroupingExpr struct {
	Inner Expr
}

type UnaryExpr struct {
	Operator Token
	Operand  Expr
}

type BinaryExpr struct {
	Operator Token
	Left     Expr
	Right    Expr
}

// LogicalExpr is a short-circuiting "and"/"or".
type LogicalExpr struct {
	Operator Token
	Left     Expr
	Right    Expr
}

// ConditionalExpr is the ternary "cond ? then : else".
type ConditionalExpr struct {
	Cond Expr
	Then Expr
	Else Expr
}

type AssignExpr struct {
	Name  Token
	Value Expr
}

type CallExpr struct {
	Callee Expr
	Paren  Token // closing parenthesis, used to locate call errors
	Args   []Expr
}

func (*LiteralExpr) exprNode()     {}
func (*VariableExpr) exprNode()    {}
func (*GroupingExpr) exprNode()    {}
func (*UnaryExpr) exprNode()       {}
func (*BinaryExpr) exprNode()      {}
func (*LogicalExpr) exprNode()     {}
func (*ConditionalExpr) exprNode() {}
func (*AssignExpr) exprNode()      {}
func (*CallExpr) exprNode()        {}

// Stmt is implemented by every statement node. The set of nodes is closed.
type Stmt interface {
	stmtNode()
}

type ExpressionStmt struct {
	Expr Expr
}

type PrintStmt struct {
	Expr Expr
}

type VarStmt struct {
	Name        Token
	Initializer Expr // nil when absent
}

type BlockStmt struct {
	Statements []Stmt
}

type IfStmt struct {
	Cond Expr
	Then Stmt
	Else Stmt // nil when absent
}

type WhileStmt struct {
	Cond Expr
	Body Stmt
}

// ForStmt only exists between parsing and desugaring. Any of Init, Cond and
// Incr may be nil.
type ForStmt struct {
	Init Stmt
	Cond Expr
	Incr Expr
	Body Stmt
}

type FunctionStmt struct {
	Name   Token
	Params []Token
	Body   []Stmt
}

type ReturnStmt struct {
	Keyword Token
	Value   Expr // nil when absent
}

func (*ExpressionStmt) stmtNode() {}
func (*PrintStmt) stmtNode()      {}
func (*VarStmt) stmtNode()        {}
func (*BlockStmt) stmtNode()      {}
func (*IfStmt) stmtNode()         {}
func (*WhileStmt) stmtNode()      {}
func (*ForStmt) stmtNode()        {}
func (*FunctionStmt) stmtNode()   {}
func (*ReturnStmt) stmtNode()     {}
