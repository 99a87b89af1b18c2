package pseudo

import (
	"fmt"

	"github.com/theGnaNtechHub/Elearn/core"
)

type (
	// Service is the pseudo-code interpreter. Every call is independent:
	// nothing is kept between calls, so a Service is safe for concurrent use.
	Service interface {
		Evaluate(code string, stepByStep bool) EvaluationResult
		SyntaxHints(code string) []Diagnostic
		LearningSuggestions(code string) []string
	}

	service struct {
		limits Limits
	}
)

var _ Service = (*service)(nil)

func NewService(conf *core.Config) Service {
	return &service{
		limits: Limits{
			MaxSourceLength: conf.Interpreter.MaxSourceLength,
			MaxNestingDepth: conf.Interpreter.MaxNestingDepth,
			MaxExprDepth:    conf.Interpreter.MaxExprDepth,
		}.withDefaults(),
	}
}

// Evaluate lexes, parses and runs code. Lex and parse errors are reported
// together and prevent execution; a runtime error stops execution where it happens.
func (svc *service) Evaluate(code string, stepByStep bool) EvaluationResult {
	res := EvaluationResult{Status: StatusSuccess, StepMode: stepByStep}

	if len(code) > svc.limits.MaxSourceLength {
		res.Status = StatusError
		res.Message = fmt.Sprintf("Input too large: the program is %d bytes, the limit is %d", len(code), svc.limits.MaxSourceLength)
		return res
	}

	a := analyze(code, svc.limits)
	if len(a.errs) > 0 {
		res.Status = StatusError
		res.Message = syntaxFailureMessage(a.errs)
		res.Errors = a.errs
		return res
	}

	exec := NewInterpreter(a.lex.Lines, stepByStep).Run(a.program())
	res.Executed = true
	res.Output = exec.Output
	res.Variables = exec.Variables
	res.Steps = exec.Steps
	if exec.Err != nil {
		res.Status = StatusError
		res.Message = runtimeFailureMessage(exec.Err)
		res.Errors = []*SourceError{exec.Err}
	}
	return res
}

func (svc *service) SyntaxHints(code string) []Diagnostic {
	return SyntaxHints(code, svc.limits)
}

func (svc *service) LearningSuggestions(code string) []string {
	return LearningSuggestions(code, svc.limits)
}
