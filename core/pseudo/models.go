package pseudo

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

type (
	// CodeRequest is the body of every endpoint. Code is a pointer so that a
	// missing field can be told apart from empty source.
	CodeRequest struct {
		Code *string `json:"code" validate:"required,utf8"`
	}

	EvaluateRequest struct {
		CodeRequest
		StepByStep bool `json:"step_by_step"`
	}

	HintsResponse struct {
		Status string       `json:"status"`
		Hints  []Diagnostic `json:"hints"`
	}

	SuggestionsResponse struct {
		Status      string   `json:"status"`
		Suggestions []string `json:"suggestions"`
	}
)

func (r CodeRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(r)
}

func (r EvaluateRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(r)
}

// Source returns the submitted code, "" when absent.
func (r CodeRequest) Source() string {
	if r.Code == nil {
		return ""
	}
	return *r.Code
}

// EvaluationResult is the outcome of Service.Evaluate. Its JSON form depends on
// the mode and on how far evaluation got.
type EvaluationResult struct {
	Status    string
	Output    string
	Variables Variables
	Steps     []ExecutionStep
	StepMode  bool
	// Executed is false when the program was rejected before running.
	Executed bool
	Message  string
	Errors   []*SourceError
}

func (r EvaluationResult) Failed() bool { return r.Status == StatusError }

type (
	outputJSON struct {
		Status    string         `json:"status"`
		Output    string         `json:"output"`
		Variables Variables      `json:"variables"`
		Message   string         `json:"message,omitempty"`
		Errors    []*SourceError `json:"errors,omitempty"`
	}

	stepsJSON struct {
		Status         string          `json:"status"`
		ExecutionSteps []ExecutionStep `json:"execution_steps"`
		FinalVariables Variables       `json:"final_variables"`
		Message        string          `json:"message,omitempty"`
		Errors         []*SourceError  `json:"errors,omitempty"`
	}

	rejectedJSON struct {
		Status  string         `json:"status"`
		Message string         `json:"message"`
		Errors  []*SourceError `json:"errors,omitempty"`
	}
)

func (r EvaluationResult) MarshalJSON() ([]byte, error) {
	vars := r.Variables
	if vars == nil {
		vars = Variables{}
	}
	switch {
	case !r.Executed:
		return json.Marshal(rejectedJSON{Status: r.Status, Message: r.Message, Errors: r.Errors})
	case r.StepMode:
		steps := r.Steps
		if steps == nil {
			steps = []ExecutionStep{}
		}
		return json.Marshal(stepsJSON{
			Status:         r.Status,
			ExecutionSteps: steps,
			FinalVariables: vars,
			Message:        r.Message,
			Errors:         r.Errors,
		})
	default:
		return json.Marshal(outputJSON{
			Status:    r.Status,
			Output:    r.Output,
			Variables: vars,
			Message:   r.Message,
			Errors:    r.Errors,
		})
	}
}

func syntaxFailureMessage(errs ErrorList) string {
	if len(errs) == 1 {
		return fmt.Sprintf("Syntax error on line %d: %s", errs[0].Line, errs[0].Message)
	}
	return fmt.Sprintf("Found %d syntax errors, the first on line %d: %s", len(errs), errs[0].Line, errs[0].Message)
}

func runtimeFailureMessage(err *SourceError) string {
	return fmt.Sprintf("Runtime error on line %d: %s", err.Line, err.Message)
}
