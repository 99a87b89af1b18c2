package pseudo

import (
	"fmt"
	"sort"
	"strings"
)

// Stage identifies which phase produced a SourceError.
type Stage string

const (
	StageLexer   Stage = "lexer"
	StageParser  Stage = "parser"
	StageRuntime Stage = "runtime"
	StageLimits  Stage = "limits"
)

// SourceError is an error attributed to a 1-based source line.
// Suggestion is only surfaced through syntax hints.
type SourceError struct {
	Stage      Stage  `json:"-"`
	Line       int    `json:"line"`
	Col        int    `json:"-"`
	Message    string `json:"message"`
	Suggestion string `json:"-"`
}

func (e *SourceError) Error() string {
	if e.Line <= 0 {
		return e.Message
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

func newSourceError(stage Stage, line, col int, format string, args ...interface{}) *SourceError {
	return &SourceError{Stage: stage, Line: line, Col: col, Message: fmt.Sprintf(format, args...)}
}

func (e *SourceError) withSuggestion(s string) *SourceError {
	e.Suggestion = s
	return e
}

// ErrorList is a batch of lex or parse errors.
type ErrorList []*SourceError

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	msgs := make([]string, 0, len(l))
	for _, e := range l {
		msgs = append(msgs, e.Error())
	}
	return fmt.Sprintf("%d errors: %s", len(l), strings.Join(msgs, "; "))
}

// lines returns the set of lines carrying at least one error.
func (l ErrorList) lines() map[int]bool {
	set := make(map[int]bool, len(l))
	for _, e := range l {
		set[e.Line] = true
	}
	return set
}

// sortByLine orders errors by line then column, keeping detection order for ties.
func (l ErrorList) sortByLine() {
	sort.SliceStable(l, func(i, j int) bool {
		if l[i].Line != l[j].Line {
			return l[i].Line < l[j].Line
		}
		return l[i].Col < l[j].Col
	})
}

// mergeFrontendErrors combines lex and parse errors. A line that failed to lex
// does not also report the parse errors its damaged token stream caused.
func mergeFrontendErrors(lexErrs, parseErrs ErrorList) ErrorList {
	merged := make(ErrorList, 0, len(lexErrs)+len(parseErrs))
	merged = append(merged, lexErrs...)
	tainted := lexErrs.lines()
	for _, e := range parseErrs {
		if !tainted[e.Line] {
			merged = append(merged, e)
		}
	}
	merged.sortByLine()
	return merged
}
