package pseudo

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Diagnostic is a line-addressed hint. It never stops a program from being analysed.
type Diagnostic struct {
	Line       int    `json:"line"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// minimum difflib ratio for a word to be reported as a misspelled keyword
const keywordMinSimilarity = 0.75

// max edit distance for a variable to be suggested in place of another
const nameMaxDistance = 2

var suggestableKeywords = []string{kwElse, kwEndif, kwIf, kwPrint, kwThen}

// SyntaxHints returns every lex and parse error plus style hints for source.
// It never fails: malformed input yields the hints that could be computed.
func SyntaxHints(source string, limits Limits) []Diagnostic {
	limits = limits.withDefaults()
	if len(source) > limits.MaxSourceLength {
		return []Diagnostic{{
			Line:       1,
			Message:    fmt.Sprintf("the program is too large to analyse (%d bytes, the limit is %d)", len(source), limits.MaxSourceLength),
			Suggestion: "split it into smaller programs",
		}}
	}

	a := analyze(source, limits)
	hints := make([]Diagnostic, 0, len(a.errs))
	for _, e := range a.errs {
		hints = append(hints, Diagnostic{Line: e.Line, Message: e.Message, Suggestion: e.Suggestion})
	}
	for _, rule := range styleRules {
		hints = append(hints, rule(a)...)
	}
	sort.SliceStable(hints, func(i, j int) bool { return hints[i].Line < hints[j].Line })
	return hints
}

type styleRule func(a analysis) []Diagnostic

var styleRules = []styleRule{
	unusedVariables,
	usedBeforeAssigned,
	comparisonAssigned,
	selfAssignment,
	nonBooleanCondition,
	constantCondition,
	emptyBranches,
	literalDivisionByZero,
}

func unusedVariables(a analysis) []Diagnostic {
	f := collectFacts(a.program())
	var hints []Diagnostic
	for _, name := range f.assigned {
		if f.read[name] {
			continue
		}
		hints = append(hints, Diagnostic{
			Line:       f.firstAssign[name],
			Message:    fmt.Sprintf("variable '%s' is assigned but never used", name),
			Suggestion: fmt.Sprintf("print '%s' or use it in a later expression, or remove it", name),
		})
	}
	return hints
}

func usedBeforeAssigned(a analysis) []Diagnostic {
	f := collectFacts(a.program())
	assigned := make(map[string]bool)
	reported := make(map[string]bool)
	var hints []Diagnostic

	walkStmts(a.program(), 0, func(s Statement, _ int) {
		for _, e := range stmtExprs(s) {
			for _, name := range readNames(e) {
				if assigned[name] || reported[name] {
					continue
				}
				reported[name] = true
				suggestion := fmt.Sprintf("assign a value to '%s' before line %d", name, s.Line())
				if alt := closestName(name, f.assigned); alt != "" {
					suggestion = fmt.Sprintf("did you mean '%s'?", alt)
				}
				hints = append(hints, Diagnostic{
					Line:       s.Line(),
					Message:    fmt.Sprintf("variable '%s' is used before it is assigned a value", name),
					Suggestion: suggestion,
				})
			}
		}
		if n, ok := s.(*Assignment); ok {
			assigned[n.Target] = true
		}
	})
	return hints
}

func comparisonAssigned(a analysis) []Diagnostic {
	var hints []Diagnostic
	walkStmts(a.program(), 0, func(s Statement, _ int) {
		if n, ok := s.(*Assignment); ok && isComparison(n.Value) {
			hints = append(hints, Diagnostic{
				Line:       n.SrcLine,
				Message:    fmt.Sprintf("'%s' stores the result of a comparison (true or false)", n.Target),
				Suggestion: "to make a decision, use 'if ... then' instead",
			})
		}
	})
	return hints
}

func selfAssignment(a analysis) []Diagnostic {
	var hints []Diagnostic
	walkStmts(a.program(), 0, func(s Statement, _ int) {
		n, ok := s.(*Assignment)
		if !ok {
			return
		}
		if v, ok := n.Value.(*Variable); ok && v.Name == n.Target {
			hints = append(hints, Diagnostic{
				Line:       n.SrcLine,
				Message:    fmt.Sprintf("assigning '%s' to itself has no effect", n.Target),
				Suggestion: "remove this line",
			})
		}
	})
	return hints
}

func nonBooleanCondition(a analysis) []Diagnostic {
	var hints []Diagnostic
	walkStmts(a.program(), 0, func(s Statement, _ int) {
		n, ok := s.(*If)
		if !ok || n.Cond == nil {
			return
		}
		bad := false
		switch c := n.Cond.(type) {
		case *Literal:
			bad = c.Value.Kind() != BoolValue
		case *Unary:
			bad = true
		case *Binary:
			bad = !comparisonOps[c.Op]
		}
		if bad {
			hints = append(hints, Diagnostic{
				Line:       n.SrcLine,
				Message:    "the 'if' condition is not a comparison, so it is neither true nor false",
				Suggestion: "compare two values, e.g. if x > 0 then",
			})
		}
	})
	return hints
}

func constantCondition(a analysis) []Diagnostic {
	var hints []Diagnostic
	walkStmts(a.program(), 0, func(s Statement, _ int) {
		n, ok := s.(*If)
		if !ok || n.Cond == nil || len(readNames(n.Cond)) > 0 {
			return
		}
		lit, isLit := n.Cond.(*Literal)
		if isComparison(n.Cond) || (isLit && lit.Value.Kind() == BoolValue) {
			hints = append(hints, Diagnostic{
				Line:       n.SrcLine,
				Message:    "the 'if' condition does not use any variable, so it always gives the same answer",
				Suggestion: "compare a variable with a value",
			})
		}
	})
	return hints
}

func emptyBranches(a analysis) []Diagnostic {
	errLines := a.errs.lines()
	// a branch emptied by a line that failed to parse is not reported
	clean := func(from, to int) bool {
		for l := from + 1; l < to; l++ {
			if errLines[l] {
				return false
			}
		}
		return true
	}

	var hints []Diagnostic
	walkStmts(a.program(), 0, func(s Statement, _ int) {
		n, ok := s.(*If)
		if !ok || n.EndLine == 0 {
			return
		}
		thenEnd := n.EndLine
		if n.HasElse {
			thenEnd = n.ElseLine
		}
		if len(n.Then) == 0 && clean(n.SrcLine, thenEnd) {
			hints = append(hints, Diagnostic{
				Line:       n.SrcLine,
				Message:    "the 'then' branch of this 'if' is empty",
				Suggestion: "add statements after 'then' or reverse the condition",
			})
		}
		if n.HasElse && len(n.Else) == 0 && clean(n.ElseLine, n.EndLine) {
			hints = append(hints, Diagnostic{
				Line:       n.ElseLine,
				Message:    "the 'else' branch is empty",
				Suggestion: "remove the empty 'else'",
			})
		}
	})
	return hints
}

func literalDivisionByZero(a analysis) []Diagnostic {
	var hints []Diagnostic
	walkStmts(a.program(), 0, func(s Statement, _ int) {
		for _, e := range stmtExprs(s) {
			walkExpr(e, func(x Expr) {
				b, ok := x.(*Binary)
				if !ok || b.Op != "/" {
					return
				}
				if lit, ok := b.Right.(*Literal); ok {
					if f, isNum := lit.Value.AsNumber(); isNum && f == 0 {
						hints = append(hints, Diagnostic{
							Line:       s.Line(),
							Message:    "division by zero",
							Suggestion: "dividing by 0 stops the program with an error",
						})
					}
				}
			})
		}
	})
	return hints
}

// keywordSuggestion proposes the keyword a misspelled or miscased word most
// likely stands for, or returns "".
func keywordSuggestion(word string) string {
	lower := cases.Lower(language.Und).String(word)
	for _, kw := range suggestableKeywords {
		if lower == kw {
			return fmt.Sprintf("keywords are written in lowercase: did you mean '%s'?", kw)
		}
	}

	best, bestRatio := "", 0.0
	for _, kw := range suggestableKeywords {
		if r := similarity(lower, kw); r > bestRatio {
			best, bestRatio = kw, r
		}
	}
	if bestRatio >= keywordMinSimilarity {
		return fmt.Sprintf("did you mean '%s'?", best)
	}
	return ""
}

func similarity(a, b string) float64 {
	return difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, "")).Ratio()
}

// closestName finds the known name name was most likely meant to be.
func closestName(name string, known []string) string {
	candidates := make([]string, 0, len(known))
	for _, k := range known {
		if k != name {
			candidates = append(candidates, k)
		}
	}
	if len(candidates) == 0 {
		return ""
	}

	// abbreviations first: "cnt" for "count"
	if ranks := fuzzy.RankFindFold(name, candidates); len(ranks) > 0 {
		sort.Stable(ranks)
		return ranks[0].Target
	}

	best, bestDist := "", nameMaxDistance+1
	for _, c := range candidates {
		if d := fuzzy.LevenshteinDistance(name, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
