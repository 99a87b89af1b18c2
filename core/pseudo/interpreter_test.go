package pseudo

import (
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, source string, stepMode bool) Execution {
	t.Helper()
	a := analyze(source, Limits{})
	require.Empty(t, a.errs, "source must be valid")
	return NewInterpreter(a.lex.Lines, stepMode).Run(a.program())
}

func TestInterpreter_Run(t *testing.T) {
	tests := []struct {
		name       string
		source     string
		wantOutput string
		wantVars   Variables
	}{
		{
			name:       "empty program",
			source:     "",
			wantOutput: "",
			wantVars:   Variables{},
		},
		{
			name:       "precedence",
			source:     "x = 2 + 3 * 4\nprint x",
			wantOutput: "14\n",
			wantVars:   Variables{"x": Number(14)},
		},
		{
			name:       "then branch",
			source:     "x = 5\nif x < 10 then\n    print \"less\"\nelse\n    print \"more\"\nendif",
			wantOutput: "less\n",
			wantVars:   Variables{"x": Number(5)},
		},
		{
			name:       "else branch",
			source:     "x = 50\nif x < 10 then\n    print \"less\"\nelse\n    print \"more\"\nendif",
			wantOutput: "more\n",
			wantVars:   Variables{"x": Number(50)},
		},
		{
			name:       "false condition without else",
			source:     "if 1 > 2 then\nprint 1\nendif\nprint 2",
			wantOutput: "2\n",
			wantVars:   Variables{},
		},
		{
			name:       "string concatenation",
			source:     "name = \"Ada\"\nprint \"hello \" + name",
			wantOutput: "hello Ada\n",
			wantVars:   Variables{"name": String("Ada")},
		},
		{
			name:       "fractions and negatives",
			source:     "half = 1 / 2\nneg = -half\nprint half\nprint neg",
			wantOutput: "0.5\n-0.5\n",
			wantVars:   Variables{"half": Number(0.5), "neg": Number(-0.5)},
		},
		{
			name:       "reassignment",
			source:     "x = 1\nx = x + 1\nprint x",
			wantOutput: "2\n",
			wantVars:   Variables{"x": Number(2)},
		},
		{
			name:       "booleans",
			source:     "big = 10 > 3\nprint big\nif big == true then\nprint \"yes\"\nendif",
			wantOutput: "true\nyes\n",
			wantVars:   Variables{"big": Bool(true)},
		},
		{
			name:       "string comparison",
			source:     "if \"abc\" < \"abd\" then\nprint \"ordered\"\nendif",
			wantOutput: "ordered\n",
			wantVars:   Variables{},
		},
		{
			name:       "nested if",
			source:     "a = 3\nb = 7\nif a > 1 then\nif b > 5 then\nprint a * b\nendif\nendif",
			wantOutput: "21\n",
			wantVars:   Variables{"a": Number(3), "b": Number(7)},
		},
		{
			name:       "comments and indentation are ignored",
			source:     "// start\n   x = 4 // four\n\tprint x",
			wantOutput: "4\n",
			wantVars:   Variables{"x": Number(4)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := run(t, tt.source, false)
			require.Nil(t, exec.Err)
			assert.Equal(t, tt.wantOutput, exec.Output)
			assert.Equal(t, tt.wantVars, exec.Variables)
			assert.Empty(t, exec.Steps)
		})
	}
}

// bigLiteral is close to the largest float64; squaring it overflows.
var bigLiteral = strings.Repeat("9", 300)

func TestInterpreter_runtimeErrors(t *testing.T) {
	big, err := strconv.ParseFloat(bigLiteral, 64)
	require.NoError(t, err)

	tests := []struct {
		name        string
		source      string
		wantLine    int
		wantMessage string
		wantOutput  string
		wantVars    Variables
	}{
		{
			name:        "undefined variable",
			source:      "print z",
			wantLine:    1,
			wantMessage: "undefined variable 'z'",
			wantVars:    Variables{},
		},
		{
			name:        "division by zero leaves no binding",
			source:      "x = 1 / 0",
			wantLine:    1,
			wantMessage: "division by zero",
			wantVars:    Variables{},
		},
		{
			name:        "output before the error is kept",
			source:      "a = 1\nprint a\nprint a + \"s\"\nprint 3",
			wantLine:    3,
			wantMessage: "cannot apply '+' to number 1 and string \"s\"",
			wantOutput:  "1\n",
			wantVars:    Variables{"a": Number(1)},
		},
		{
			name:        "non boolean condition",
			source:      "x = 3\nif x then\nprint x\nendif",
			wantLine:    2,
			wantMessage: "'if' condition must be true or false, got number 3",
			wantVars:    Variables{"x": Number(3)},
		},
		{
			name:        "mixed comparison",
			source:      "if 1 == \"1\" then\nendif",
			wantLine:    1,
			wantMessage: "cannot compare number 1 with string \"1\"",
			wantVars:    Variables{},
		},
		{
			name:        "ordering booleans",
			source:      "if true < false then\nendif",
			wantLine:    1,
			wantMessage: "booleans can only be compared with '==' or '!='",
			wantVars:    Variables{},
		},
		{
			name:        "negating a string",
			source:      "s = \"a\"\nt = -s",
			wantLine:    2,
			wantMessage: "cannot negate string \"a\"",
			wantVars:    Variables{"s": String("a")},
		},
		{
			name:        "error inside a branch",
			source:      "x = 1\nif x == 1 then\nprint x\ny = x / 0\nendif",
			wantLine:    4,
			wantMessage: "division by zero",
			wantOutput:  "1\n",
			wantVars:    Variables{"x": Number(1)},
		},
		{
			name:        "overflow",
			source:      "x = " + bigLiteral + " * " + bigLiteral,
			wantLine:    1,
			wantMessage: "number is too large",
			wantVars:    Variables{},
		},
		{
			name:        "overflow from variables",
			source:      "x = " + bigLiteral + "\nprint 1\ny = x * x - x * x",
			wantLine:    3,
			wantMessage: "number is too large",
			wantOutput:  "1\n",
			wantVars:    Variables{"x": Number(big)},
		},
		{
			name:        "negative overflow",
			source:      "x = 0 - " + bigLiteral + "\ny = x * " + bigLiteral,
			wantLine:    2,
			wantMessage: "number is too large",
			wantVars:    Variables{"x": Number(-big)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := run(t, tt.source, false)
			require.NotNil(t, exec.Err)
			assert.Equal(t, StageRuntime, exec.Err.Stage)
			assert.Equal(t, tt.wantLine, exec.Err.Line)
			assert.Equal(t, tt.wantMessage, exec.Err.Message)
			assert.Equal(t, tt.wantOutput, exec.Output)
			assert.Equal(t, tt.wantVars, exec.Variables)
		})
	}
}

func TestInterpreter_stepMode(t *testing.T) {
	t.Run("one step per executed statement", func(t *testing.T) {
		exec := run(t, "x = 1\nprint x", true)

		require.Nil(t, exec.Err)
		assert.Equal(t, []ExecutionStep{
			{LineNumber: 1, Code: "x = 1", Output: ""},
			{LineNumber: 2, Code: "print x", Output: "1\n"},
		}, exec.Steps)
	})

	t.Run("only the taken branch", func(t *testing.T) {
		source := "x = 5\nif x < 10 then\n    print \"less\"\nelse\n    print \"more\"\nendif"
		exec := run(t, source, true)

		require.Len(t, exec.Steps, 3)
		assert.Equal(t, 1, exec.Steps[0].LineNumber)
		assert.Equal(t, ExecutionStep{LineNumber: 2, Code: "if x < 10 then"}, exec.Steps[1])
		assert.Equal(t, ExecutionStep{LineNumber: 3, Code: "    print \"less\"", Output: "less\n"}, exec.Steps[2])
	})

	t.Run("failing step carries the error", func(t *testing.T) {
		exec := run(t, "x = 2\ny = x / 0\nprint y", true)

		require.NotNil(t, exec.Err)
		require.Len(t, exec.Steps, 2)
		assert.Equal(t, "division by zero", exec.Steps[1].Error)
		assert.Equal(t, Variables{"x": Number(2)}, exec.Variables)
	})

	t.Run("step outputs concatenate to the output", func(t *testing.T) {
		source := "a = 2\nprint a\nif a > 1 then\nprint a * 10\nelse\nprint 0\nendif\nprint \"done\""
		exec := run(t, source, true)

		var joined strings.Builder
		for _, s := range exec.Steps {
			joined.WriteString(s.Output)
		}
		assert.Equal(t, exec.Output, joined.String())
		assert.Equal(t, "2\n20\ndone\n", exec.Output)
	})
}

func TestInterpreter_deterministic(t *testing.T) {
	source := "a = 1\nb = a + 2\nc = b * 3\nprint c\nif c > 5 then\nprint \"big\"\nendif"
	first := run(t, source, true)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, run(t, source, true))
	}
}

func TestValue_String(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Number(14), "14"},
		{Number(2.5), "2.5"},
		{Number(-3), "-3"},
		{Number(1e21), "1000000000000000000000"},
		{String("hi there"), "hi there"},
		{Bool(false), "false"},
		{Value{}, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.String())
		})
	}
}

func TestValue_JSON(t *testing.T) {
	vars := Variables{"n": Number(14), "s": String("x"), "b": Bool(true)}
	data, err := json.Marshal(vars)
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":14,"s":"x","b":true}`, string(data))

	var decoded Variables
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, vars, decoded)
}

func TestValue_Equal(t *testing.T) {
	assert.True(t, Number(1).Equal(Number(1)))
	assert.False(t, Number(1).Equal(String("1")))
	assert.True(t, String("a").Equal(String("a")))
	assert.False(t, Bool(true).Equal(Bool(false)))
}

func TestEnvironment(t *testing.T) {
	env := NewEnvironment()
	_, ok := env.Get("x")
	assert.False(t, ok)

	env.Set("x", Number(1))
	snap := env.Snapshot()
	env.Set("x", Number(2))

	v, ok := env.Get("x")
	require.True(t, ok)
	assert.Equal(t, Number(2), v)
	assert.Equal(t, Number(1), snap["x"], "snapshot is a copy")
	assert.Equal(t, 1, env.Len())
}
