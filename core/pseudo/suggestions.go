package pseudo

const (
	tipTooLarge      = "Your program is very long. Try solving the problem in smaller programs first."
	tipFixErrors     = "Fix the syntax errors highlighted in the editor first: the program only runs once every line is valid."
	tipAddPrint      = "Add a 'print' statement to see what your program computes."
	tipTryIf         = "Try an 'if ... then ... else ... endif' block to let your program make decisions."
	tipAddElse       = "Add an 'else' branch to say what should happen when the condition is false."
	tipNestedIf      = "You are nesting 'if' blocks. Trace every path by hand to check that each case is handled."
	tipUseVariables  = "Store values in variables so you can reuse them in later steps."
	tipMoreVariables = "Break the problem into steps, using more than one variable to hold intermediate results."
	tipNames         = "Give variables descriptive names such as 'total' or 'average' instead of single letters."
	tipParens        = "Use parentheses to make the order of operations explicit, e.g. (a + b) * c."
	tipConcat        = "You join text with '+'. Both sides must be strings: a number cannot be joined to text."
	tipComments      = "Add comments starting with '//' to explain what each part of your program does."
)

// LearningSuggestions returns pedagogical tips for source, always in the same
// order for the same input.
func LearningSuggestions(source string, limits Limits) []string {
	limits = limits.withDefaults()
	if len(source) > limits.MaxSourceLength {
		return []string{tipTooLarge}
	}

	a := analyze(source, limits)
	f := collectFacts(a.program())
	tips := make([]string, 0)

	if len(a.errs) > 0 {
		tips = append(tips, tipFixErrors)
	}
	if f.statements == 0 {
		return tips
	}

	if f.prints == 0 {
		tips = append(tips, tipAddPrint)
	}
	if f.ifs == 0 {
		tips = append(tips, tipTryIf)
	}
	if f.ifsNoElse > 0 {
		tips = append(tips, tipAddElse)
	}
	if f.nestedIfs > 0 {
		tips = append(tips, tipNestedIf)
	}

	switch len(f.assigned) {
	case 0:
		tips = append(tips, tipUseVariables)
	case 1:
		tips = append(tips, tipMoreVariables)
	}
	if len(f.assigned) >= 3 && hasSingleLetterName(f.assigned) {
		tips = append(tips, tipNames)
	}

	mixed, concat := exprFeatures(a.program())
	if mixed {
		tips = append(tips, tipParens)
	}
	if concat {
		tips = append(tips, tipConcat)
	}
	if f.statements >= 5 && len(a.lex.Comments) == 0 {
		tips = append(tips, tipComments)
	}
	return tips
}

func hasSingleLetterName(names []string) bool {
	for _, n := range names {
		if len([]rune(n)) == 1 {
			return true
		}
	}
	return false
}

// exprFeatures reports whether any expression mixes +/- with an unparenthesised
// * or /, and whether '+' is applied to a string literal.
func exprFeatures(prog Program) (mixedPrecedence, concat bool) {
	walkStmts(prog, 0, func(s Statement, _ int) {
		for _, e := range stmtExprs(s) {
			walkExpr(e, func(x Expr) {
				b, ok := x.(*Binary)
				if !ok || (b.Op != "+" && b.Op != "-") {
					return
				}
				if isUngroupedProduct(b.Left) || isUngroupedProduct(b.Right) {
					mixedPrecedence = true
				}
				if b.Op == "+" && (isStringLiteral(b.Left) || isStringLiteral(b.Right)) {
					concat = true
				}
			})
		}
	})
	return mixedPrecedence, concat
}

func isUngroupedProduct(e Expr) bool {
	b, ok := e.(*Binary)
	return ok && !b.Grouped && (b.Op == "*" || b.Op == "/")
}

func isStringLiteral(e Expr) bool {
	lit, ok := e.(*Literal)
	return ok && lit.Value.Kind() == StringValue
}
