package simplf

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

type Interpreter struct {
	globals *Environment
	env     *Environment

	out    io.Writer
	logger *slog.Logger
}

type Option func(in *Interpreter)

// WithOutput sets where print writes. The default is os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(in *Interpreter) {
		in.out = w
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(in *Interpreter) {
		in.logger = logger
	}
}

func NewInterpreter(opts ...Option) *Interpreter {
	globals := NewEnvironment(nil)
	in := &Interpreter{
		globals: globals,
		env:     globals,
		out:     os.Stdout,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(in)
	}

	return in
}

func (in *Interpreter) Globals() *Environment {
	return in.globals
}

// Environment returns the scope currently in effect. Between calls to
// Interpret this is the top-level scope including every declaration made so
// far.
func (in *Interpreter) Environment() *Environment {
	return in.env
}

// Interpret executes the statements in order. The first error stops execution
// and is returned; later statements are not run. stmts must already be
// desugared.
func (in *Interpreter) Interpret(stmts []Stmt) error {
	in.logger.Debug("interpret", "statements", len(stmts))

	for i, stmt := range stmts {
		if err := in.execute(stmt); err != nil {
			if _, ok := err.(*returnSignal); ok {
				return &InvariantError{Message: "return statement outside of a function"}
			}

			in.logger.Debug("interpretation halted", "statement", i, "error", err)
			return err
		}
	}

	return nil
}

func (in *Interpreter) execute(stmt Stmt) error {
	switch s := stmt.(type) {
	case *ExpressionStmt:
		_, err := in.evaluate(s.Expr)
		return err
	case *PrintStmt:
		v, err := in.evaluate(s.Expr)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(in.out, Stringify(v))
		return err
	case *VarStmt:
		var v Value
		if s.Initializer != nil {
			var err error
			if v, err = in.evaluate(s.Initializer); err != nil {
				return err
			}
		}

		in.env = in.env.Define(s.Name.Value, v)
		return nil
	case *BlockStmt:
		return in.executeBlock(s.Statements, NewEnvironment(in.env))
	case *IfStmt:
		cond, err := in.evaluate(s.Cond)
		if err != nil {
			return err
		}

		if isTruthy(cond) {
			return in.execute(s.Then)
		}

		if s.Else != nil {
			return in.execute(s.Else)
		}

		return nil
	case *WhileStmt:
		return in.executeWhile(s)
	case *ForStmt:
		return &InvariantError{Message: "for loop reached the interpreter without being desugared"}
	case *FunctionStmt:
		fn := NewFunction(s, in.env)
		in.env = in.env.Define(s.Name.Value, fn)
		// Let the body see its own name so it can recurse. Later declarations
		// in this scope stay invisible to it.
		fn.closure = in.env

		return nil
	case *ReturnStmt:
		var v Value
		if s.Value != nil {
			var err error
			if v, err = in.evaluate(s.Value); err != nil {
				return err
			}
		}

		return &returnSignal{value: v}
	default:
		return &InvariantError{Message: fmt.Sprintf("unknown statement %T", stmt)}
	}
}

// executeBlock runs stmts with env as the current scope and restores the
// previous scope on every exit path.
func (in *Interpreter) executeBlock(stmts []Stmt, env *Environment) error {
	prev := in.env
	in.env = env
	defer func() { in.env = prev }()

	for _, stmt := range stmts {
		if err := in.execute(stmt); err != nil {
			return err
		}
	}

	return nil
}

func (in *Interpreter) executeWhile(s *WhileStmt) error {
	for {
		cond, err := in.evaluate(s.Cond)
		if err != nil {
			return err
		}

		if !isTruthy(cond) {
			return nil
		}

		if err := in.execute(s.Body); err != nil {
			return err
		}
	}
}

func (in *Interpreter) evaluate(expr Expr) (Value, error) {
	switch e := expr.(type) {
	case *LiteralExpr:
		return e.Value, nil
	case *GroupingExpr:
		return in.evaluate(e.Inner)
	case *VariableExpr:
		return in.env.Get(e.Name)
	case *AssignExpr:
		v, err := in.evaluate(e.Value)
		if err != nil {
			return nil, err
		}

		if err := in.env.Assign(e.Name, v); err != nil {
			return nil, err
		}

		return v, nil
	case *LogicalExpr:
		return in.evalLogical(e)
	case *ConditionalExpr:
		cond, err := in.evaluate(e.Cond)
		if err != nil {
			return nil, err
		}

		if isTruthy(cond) {
			return in.evaluate(e.Then)
		}

		return in.evaluate(e.Else)
	case *UnaryExpr:
		return in.evalUnary(e)
	case *BinaryExpr:
		return in.evalBinary(e)
	case *CallExpr:
		return in.evalCall(e)
	default:
		return nil, &InvariantError{Message: fmt.Sprintf("unknown expression %T", expr)}
	}
}

func (in *Interpreter) evalLogical(e *LogicalExpr) (Value, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}

	if e.Operator.Typ == TokenOr {
		if isTruthy(left) {
			return left, nil
		}
	} else if !isTruthy(left) {
		return left, nil
	}

	return in.evaluate(e.Right)
}

func (in *Interpreter) evalUnary(e *UnaryExpr) (Value, error) {
	operand, err := in.evaluate(e.Operand)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Typ {
	case TokenMinus:
		n, ok := operand.(float64)
		if !ok {
			return nil, newRuntimeError(TypeMismatch, e.Operator, "Operand must be a number.")
		}

		return -n, nil
	case TokenBang:
		return !isTruthy(operand), nil
	default:
		return nil, &InvariantError{Message: fmt.Sprintf("unknown unary operator '%s'", e.Operator.Value)}
	}
}

func (in *Interpreter) evalBinary(e *BinaryExpr) (Value, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}

	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Typ {
	case TokenPlus:
		_, lstr := left.(string)
		_, rstr := right.(string)
		if lstr || rstr {
			return Stringify(left) + Stringify(right), nil
		}

		l, lnum := left.(float64)
		r, rnum := right.(float64)
		if lnum && rnum {
			return l + r, nil
		}

		return nil, newRuntimeError(TypeMismatch, e.Operator, "Addition operation not supported for operands.")
	case TokenEqualEqual:
		return isEqual(left, right), nil
	case TokenBangEqual:
		return !isEqual(left, right), nil
	case TokenComma:
		return right, nil
	}

	l, r, err := checkNumbers(e.Operator, left, right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Typ {
	case TokenMinus:
		return l - r, nil
	case TokenMulti:
		return l * r, nil
	case TokenDiv:
		if r == 0 {
			return nil, newRuntimeError(DivisionByZero, e.Operator, "Cannot divide by zero.")
		}

		return l / r, nil
	case TokenGreater:
		return l > r, nil
	case TokenGreaterEqual:
		return l >= r, nil
	case TokenLess:
		return l < r, nil
	case TokenLessEqual:
		return l <= r, nil
	default:
		return nil, &InvariantError{Message: fmt.Sprintf("unknown binary operator '%s'", e.Operator.Value)}
	}
}

func (in *Interpreter) evalCall(e *CallExpr) (Value, error) {
	callee, err := in.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	fn, ok := callee.(Callable)
	if !ok {
		return nil, newRuntimeError(NotCallable, e.Paren, "Can only call functions.")
	}

	args := make([]Value, 0, len(e.Args))
	for _, arg := range e.Args {
		v, err := in.evaluate(arg)
		if err != nil {
			return nil, err
		}

		args = append(args, v)
	}

	if len(args) != fn.Arity() {
		return nil, arityMismatch(e.Paren, fn.Arity(), len(args))
	}

	return fn.Call(in, args)
}

func checkNumbers(op Token, left, right Value) (float64, float64, error) {
	l, lok := left.(float64)
	r, rok := right.(float64)
	if !lok || !rok {
		return 0, 0, newRuntimeError(TypeMismatch, op, "Operands must be numbers.")
	}

	return l, r, nil
}
