package simplf

// Function is a user-defined function together with the environment it was
// declared in.
type Function struct {
	decl    *FunctionStmt
	closure *Environment
}

var _ Callable = (*Function)(nil)

func NewFunction(decl *FunctionStmt, closure *Environment) *Function {
	return &Function{
		decl:    decl,
		closure: closure,
	}
}

func (f *Function) Name() string {
	return f.decl.Name.Value
}

func (f *Function) Arity() int {
	return len(f.decl.Params)
}

// Call runs the body in a fresh frame whose parent is the closure, not the
// caller's environment. The caller's environment is restored however the
// body exits.
func (f *Function) Call(in *Interpreter, args []Value) (Value, error) {
	if len(args) != f.Arity() {
		return nil, arityMismatch(f.decl.Name, f.Arity(), len(args))
	}

	env := NewEnvironment(f.closure)
	for i, param := range f.decl.Params {
		env = env.Define(param.Value, args[i])
	}

	in.logger.Debug("call", "function", f.Name(), "args", len(args), "loc", f.decl.Name.Loc)

	err := in.executeBlock(f.decl.Body, env)
	if ret, ok := err.(*returnSignal); ok {
		return ret.value, nil
	}

	return nil, err
}

func (f *Function) String() string {
	return "<fn " + f.decl.Name.Value + ">"
}

// returnSignal carries a return value up to the enclosing Function.Call. It
// travels on the error path so blocks and loops unwind through it, but it is
// never a failure.
type returnSignal struct {
	value Value
}

func (r *returnSignal) Error() string {
	return "return outside of a function"
}

func arityMismatch(tok Token, want, got int) error {
	return newRuntimeError(ArityMismatch, tok, "Expected %d arguments but got %d.", want, got)
}
