package simplf

// binding is a single mutable cell in a frame. Cells are linked newest first
// and are never removed, so a frame obtained earlier keeps seeing exactly the
// cells that existed when it was created.
type binding struct {
	name  string
	value Value
	next  *binding
}

// Environment is one scope level. Define never changes an existing
// Environment; it returns a new one sharing the older cells. Assign writes to
// the cell itself, so the update is seen by every Environment built on it.
type Environment struct {
	enclosing *Environment
	bindings  *binding
}

func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{enclosing: enclosing}
}

func (e *Environment) Enclosing() *Environment {
	return e.enclosing
}

// Define returns an environment that extends e with a new binding for name.
// An older binding with the same name is shadowed, not overwritten.
func (e *Environment) Define(name string, value Value) *Environment {
	return &Environment{
		enclosing: e.enclosing,
		bindings:  &binding{name: name, value: value, next: e.bindings},
	}
}

func (e *Environment) Assign(name Token, value Value) error {
	cell := e.lookup(name.Value)
	if cell == nil {
		return undefinedVariable(name)
	}

	cell.value = value
	return nil
}

func (e *Environment) Get(name Token) (Value, error) {
	cell := e.lookup(name.Value)
	if cell == nil {
		return nil, undefinedVariable(name)
	}

	return cell.value, nil
}

// Names lists the names bound in e itself, innermost first. Shadowed
// bindings are listed once.
func (e *Environment) Names() []string {
	var names []string
	seen := make(map[string]bool)
	for b := e.bindings; b != nil; b = b.next {
		if !seen[b.name] {
			seen[b.name] = true
			names = append(names, b.name)
		}
	}

	return names
}

func (e *Environment) lookup(name string) *binding {
	for env := e; env != nil; env = env.enclosing {
		for b := env.bindings; b != nil; b = b.next {
			if b.name == name {
				return b
			}
		}
	}

	return nil
}

func undefinedVariable(name Token) error {
	return newRuntimeError(UndefinedVariable, name, "Undefined variable '%s'.", name.Value)
}
