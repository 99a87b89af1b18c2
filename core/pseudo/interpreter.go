package pseudo

import (
	"math"
	"strings"
)

// ExecutionStep records one executed statement in step mode.
type ExecutionStep struct {
	LineNumber int    `json:"line_number"`
	Code       string `json:"code"`
	Output     string `json:"output"`
	Error      string `json:"error,omitempty"`
}

// Execution is the outcome of running a Program.
type Execution struct {
	Output    string
	Variables Variables
	Steps     []ExecutionStep
	// Err is the runtime error that halted execution, if any.
	Err *SourceError
}

// Interpreter runs one Program against a fresh Environment. An Interpreter
// must not be reused across evaluations.
type Interpreter struct {
	env      *Environment
	out      strings.Builder
	lines    []string
	stepMode bool
	steps    []ExecutionStep
}

// NewInterpreter returns an Interpreter; lines are the physical source lines
// used to fill ExecutionStep.Code.
func NewInterpreter(lines []string, stepMode bool) *Interpreter {
	return &Interpreter{
		env:      NewEnvironment(),
		lines:    lines,
		stepMode: stepMode,
	}
}

// Run executes prog until it completes or the first runtime error.
func (in *Interpreter) Run(prog Program) Execution {
	err := in.execBlock(prog)
	return Execution{
		Output:    in.out.String(),
		Variables: in.env.Snapshot(),
		Steps:     in.steps,
		Err:       err,
	}
}

func (in *Interpreter) execBlock(stmts []Statement) *SourceError {
	for _, s := range stmts {
		if err := in.exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) exec(s Statement) *SourceError {
	var printed string
	var branch []Statement
	var err *SourceError

	switch n := s.(type) {
	case *Assignment:
		var v Value
		if v, err = in.eval(n.Value, n.SrcLine); err == nil {
			in.env.Set(n.Target, v)
		}
	case *Print:
		var v Value
		if v, err = in.eval(n.Value, n.SrcLine); err == nil {
			printed = v.String() + "\n"
			in.out.WriteString(printed)
		}
	case *If:
		branch, err = in.chooseBranch(n)
	}

	if in.stepMode {
		step := ExecutionStep{LineNumber: s.Line(), Code: in.sourceLine(s.Line()), Output: printed}
		if err != nil {
			step.Error = err.Message
		}
		in.steps = append(in.steps, step)
	}
	if err != nil {
		return err
	}
	return in.execBlock(branch)
}

func (in *Interpreter) chooseBranch(n *If) ([]Statement, *SourceError) {
	cond, err := in.eval(n.Cond, n.SrcLine)
	if err != nil {
		return nil, err
	}
	b, ok := cond.AsBool()
	if !ok {
		return nil, newSourceError(StageRuntime, n.SrcLine, 0,
			"'if' condition must be true or false, got %s %s", cond.Kind(), quoteValue(cond))
	}
	if b {
		return n.Then, nil
	}
	return n.Else, nil
}

func (in *Interpreter) sourceLine(line int) string {
	if line < 1 || line > len(in.lines) {
		return ""
	}
	return in.lines[line-1]
}

func (in *Interpreter) eval(e Expr, line int) (Value, *SourceError) {
	switch n := e.(type) {
	case *Literal:
		return n.Value, nil
	case *Variable:
		v, ok := in.env.Get(n.Name)
		if !ok {
			return Value{}, newSourceError(StageRuntime, line, 0, "undefined variable '%s'", n.Name)
		}
		return v, nil
	case *Unary:
		v, err := in.eval(n.Operand, line)
		if err != nil {
			return Value{}, err
		}
		f, ok := v.AsNumber()
		if !ok {
			return Value{}, newSourceError(StageRuntime, line, 0, "cannot negate %s %s", v.Kind(), quoteValue(v))
		}
		return Number(-f), nil
	case *Binary:
		left, err := in.eval(n.Left, line)
		if err != nil {
			return Value{}, err
		}
		right, err := in.eval(n.Right, line)
		if err != nil {
			return Value{}, err
		}
		v, msg := applyBinary(n.Op, left, right)
		if msg != "" {
			return Value{}, newSourceError(StageRuntime, line, 0, "%s", msg)
		}
		return v, nil
	}
	return Value{}, newSourceError(StageRuntime, line, 0, "invalid expression")
}

// applyBinary returns a non-empty message when the operation is not allowed.
func applyBinary(op string, l, r Value) (Value, string) {
	if comparisonOps[op] {
		return compare(op, l, r)
	}

	if op == "+" && l.Kind() == StringValue && r.Kind() == StringValue {
		return String(l.str + r.str), ""
	}
	a, lok := l.AsNumber()
	b, rok := r.AsNumber()
	if !lok || !rok {
		return Value{}, "cannot apply '" + op + "' to " + l.Kind().String() + " " + quoteValue(l) +
			" and " + r.Kind().String() + " " + quoteValue(r)
	}
	var f float64
	switch op {
	case "+":
		f = a + b
	case "-":
		f = a - b
	case "*":
		f = a * b
	case "/":
		if b == 0 {
			return Value{}, "division by zero"
		}
		f = a / b
	default:
		return Value{}, "unknown operator '" + op + "'"
	}
	// results must stay printable and JSON-encodable
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return Value{}, "number is too large"
	}
	return Number(f), ""
}

func compare(op string, l, r Value) (Value, string) {
	if l.Kind() != r.Kind() {
		return Value{}, "cannot compare " + l.Kind().String() + " " + quoteValue(l) +
			" with " + r.Kind().String() + " " + quoteValue(r)
	}
	switch op {
	case "==":
		return Bool(l.Equal(r)), ""
	case "!=":
		return Bool(!l.Equal(r)), ""
	}

	var c int
	switch l.Kind() {
	case NumberValue:
		switch {
		case l.num < r.num:
			c = -1
		case l.num > r.num:
			c = 1
		}
	case StringValue:
		c = strings.Compare(l.str, r.str)
	default:
		return Value{}, "booleans can only be compared with '==' or '!='"
	}

	switch op {
	case "<":
		return Bool(c < 0), ""
	case ">":
		return Bool(c > 0), ""
	case "<=":
		return Bool(c <= 0), ""
	default:
		return Bool(c >= 0), ""
	}
}

func quoteValue(v Value) string {
	if v.Kind() == StringValue {
		return `"` + v.str + `"`
	}
	return v.String()
}
