package simplf

import "fmt"

// Desugar returns an equivalent tree in which every for loop has been
// rewritten into a while loop. The input is left untouched; nodes that contain
// nothing to rewrite may be shared between the two trees.
//
//	for (init; cond; incr) body
//
// becomes
//
//	{ init; while (cond) { body; incr; } }
//
// where a missing cond is true, and the blocks are only introduced for a
// present init or incr.
func Desugar(stmts []Stmt) []Stmt {
	if stmts == nil {
		return nil
	}

	out := make([]Stmt, len(stmts))
	for i, stmt := range stmts {
		out[i] = desugarStmt(stmt)
	}

	return out
}

func desugarStmt(stmt Stmt) Stmt {
	switch s := stmt.(type) {
	case nil:
		return nil
	case *ExpressionStmt:
		return &ExpressionStmt{Expr: desugarExpr(s.Expr)}
	case *PrintStmt:
		return &PrintStmt{Expr: desugarExpr(s.Expr)}
	case *VarStmt:
		return &VarStmt{Name: s.Name, Initializer: desugarExpr(s.Initializer)}
	case *BlockStmt:
		return &BlockStmt{Statements: Desugar(s.Statements)}
	case *IfStmt:
		return &IfStmt{
			Cond: desugarExpr(s.Cond),
			Then: desugarStmt(s.Then),
			Else: desugarStmt(s.Else),
		}
	case *WhileStmt:
		return &WhileStmt{Cond: desugarExpr(s.Cond), Body: desugarStmt(s.Body)}
	case *ForStmt:
		return desugarFor(s)
	case *FunctionStmt:
		return &FunctionStmt{Name: s.Name, Params: s.Params, Body: Desugar(s.Body)}
	case *ReturnStmt:
		return &ReturnStmt{Keyword: s.Keyword, Value: desugarExpr(s.Value)}
	default:
		panic(fmt.Sprintf("desugar: unknown statement %T", stmt))
	}
}

func desugarFor(s *ForStmt) Stmt {
	body := desugarStmt(s.Body)
	if s.Incr != nil {
		body = &BlockStmt{Statements: []Stmt{
			body,
			&ExpressionStmt{Expr: desugarExpr(s.Incr)},
		}}
	}

	var cond Expr = &LiteralExpr{Value: true}
	if s.Cond != nil {
		cond = desugarExpr(s.Cond)
	}

	var loop Stmt = &WhileStmt{Cond: cond, Body: body}
	if s.Init != nil {
		loop = &BlockStmt{Statements: []Stmt{desugarStmt(s.Init), loop}}
	}

	return loop
}

func desugarExpr(expr Expr) Expr {
	switch e := expr.(type) {
	case nil:
		return nil
	case *LiteralExpr, *VariableExpr:
		return e
	case *GroupingExpr:
		return &GroupingExpr{Inner: desugarExpr(e.Inner)}
	case *UnaryExpr:
		return &UnaryExpr{Operator: e.Operator, Operand: desugarExpr(e.Operand)}
	case *BinaryExpr:
		return &BinaryExpr{Operator: e.Operator, Left: desugarExpr(e.Left), Right: desugarExpr(e.Right)}
	case *LogicalExpr:
		return &LogicalExpr{Operator: e.Operator, Left: desugarExpr(e.Left), Right: desugarExpr(e.Right)}
	case *ConditionalExpr:
		return &ConditionalExpr{
			Cond: desugarExpr(e.Cond),
			Then: desugarExpr(e.Then),
			Else: desugarExpr(e.Else),
		}
	case *AssignExpr:
		return &AssignExpr{Name: e.Name, Value: desugarExpr(e.Value)}
	case *CallExpr:
		var args []Expr
		for _, arg := range e.Args {
			args = append(args, desugarExpr(arg))
		}

		return &CallExpr{Callee: desugarExpr(e.Callee), Paren: e.Paren, Args: args}
	default:
		panic(fmt.Sprintf("desugar: unknown expression %T", expr))
	}
}
