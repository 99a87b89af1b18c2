package pseudo

// analysis is the shared front end of every operation: lex, parse, merge errors.
type analysis struct {
	lex   LexResult
	parse ParseResult
	errs  ErrorList
}

func analyze(source string, limits Limits) analysis {
	lex := Tokenize(source)
	parsed := Parse(lex.Tokens, limits)
	return analysis{
		lex:   lex,
		parse: parsed,
		errs:  mergeFrontendErrors(lex.Errors, parsed.Errors),
	}
}

func (a analysis) program() Program { return a.parse.Program }

// stmtExprs returns the expressions a statement evaluates itself, not those of its branches.
func stmtExprs(s Statement) []Expr {
	switch n := s.(type) {
	case *Assignment:
		return []Expr{n.Value}
	case *Print:
		return []Expr{n.Value}
	case *If:
		return []Expr{n.Cond}
	}
	return nil
}

// readNames lists the variables e reads, in evaluation order with repeats.
func readNames(e Expr) []string {
	var names []string
	walkExpr(e, func(x Expr) {
		if v, ok := x.(*Variable); ok {
			names = append(names, v.Name)
		}
	})
	return names
}

// programFacts summarises a Program for the heuristics.
type programFacts struct {
	statements int
	prints     int
	ifs        int
	ifsNoElse  int
	nestedIfs  int
	// assigned holds names in order of first assignment; firstAssign their lines
	assigned    []string
	firstAssign map[string]int
	read        map[string]bool
}

func collectFacts(prog Program) programFacts {
	f := programFacts{firstAssign: make(map[string]int), read: make(map[string]bool)}
	walkStmts(prog, 0, func(s Statement, depth int) {
		f.statements++
		switch n := s.(type) {
		case *Assignment:
			if _, seen := f.firstAssign[n.Target]; !seen {
				f.firstAssign[n.Target] = n.SrcLine
				f.assigned = append(f.assigned, n.Target)
			}
		case *Print:
			f.prints++
		case *If:
			f.ifs++
			if !n.HasElse {
				f.ifsNoElse++
			}
			if depth > 0 {
				f.nestedIfs++
			}
		}
		for _, e := range stmtExprs(s) {
			for _, name := range readNames(e) {
				f.read[name] = true
			}
		}
	})
	return f
}
