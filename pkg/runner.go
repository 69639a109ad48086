package simplf

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Runner takes source text through lexing, parsing, desugaring and
// interpretation. It owns one Interpreter, so declarations made by one Run
// call are visible to the next.
type Runner struct {
	interpreter *Interpreter
	logger      *slog.Logger
}

func NewRunner(opts ...Option) *Runner {
	in := NewInterpreter(opts...)

	return &Runner{
		interpreter: in,
		logger:      in.logger,
	}
}

func (r *Runner) Interpreter() *Interpreter {
	return r.interpreter
}

func (r *Runner) RunFile(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	return r.Run(filename, f)
}

func (r *Runner) RunString(src string) error {
	return r.Run("", strings.NewReader(src))
}

// Run executes the program read from reader. Syntax errors are returned as
// SyntaxErrors and nothing is executed; runtime failures are returned as
// *RuntimeError or *InvariantError.
func (r *Runner) Run(filename string, reader io.Reader) error {
	ast, err := Parse(filename, reader)
	if err != nil {
		return err
	}

	r.logger.Debug("run", "file", filename, "statements", len(ast.Statements))
	return r.interpreter.Interpret(Desugar(ast.Statements))
}

// Parse reads one program. It returns the AST together with its SyntaxErrors
// when parsing failed.
func Parse(filename string, reader io.Reader) (*AST, error) {
	parser := NewParser(NewLexer(filename, reader))

	ast := parser.Run()
	if len(ast.Errors) != 0 {
		return ast, ast.Errors
	}

	return ast, nil
}
