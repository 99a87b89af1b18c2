package pseudo

// Variables maps variable names to their values.
type Variables map[string]Value

// Environment holds the bindings of one evaluation. It is never shared
// between evaluations.
type Environment struct {
	vars Variables
}

func NewEnvironment() *Environment {
	return &Environment{vars: make(Variables)}
}

func (e *Environment) Get(name string) (Value, bool) {
	v, ok := e.vars[name]
	return v, ok
}

// Set binds name, declaring it on first use.
func (e *Environment) Set(name string, v Value) {
	e.vars[name] = v
}

func (e *Environment) Len() int { return len(e.vars) }

// Snapshot returns a copy of the current bindings.
func (e *Environment) Snapshot() Variables {
	out := make(Variables, len(e.vars))
	for k, v := range e.vars {
		out[k] = v
	}
	return out
}
