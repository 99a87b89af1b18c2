package pseudo

type (
	// Statement is one executable line of a Program.
	Statement interface {
		Line() int
		stmtNode()
	}

	// Expr is a side-effect free expression tree.
	Expr interface {
		exprNode()
	}

	// Program is the ordered top-level statement sequence.
	Program []Statement
)

type (
	Assignment struct {
		SrcLine int
		Target  string
		Value   Expr
	}

	Print struct {
		SrcLine int
		Value   Expr
	}

	If struct {
		SrcLine int
		Cond    Expr
		Then    []Statement
		Else    []Statement
		HasElse bool
		// ElseLine and EndLine locate the closing keywords; zero when absent.
		ElseLine int
		EndLine  int
	}
)

func (s *Assignment) Line() int { return s.SrcLine }
func (s *Print) Line() int      { return s.SrcLine }
func (s *If) Line() int         { return s.SrcLine }

func (*Assignment) stmtNode() {}
func (*Print) stmtNode()      {}
func (*If) stmtNode()         {}

type (
	Literal struct {
		Value Value
	}

	Variable struct {
		Name string
	}

	Unary struct {
		Op      string
		Operand Expr
	}

	Binary struct {
		Op          string
		Left, Right Expr
		// Grouped is set when the expression was written inside parentheses.
		Grouped bool
	}
)

func (*Literal) exprNode()  {}
func (*Variable) exprNode() {}
func (*Unary) exprNode()    {}
func (*Binary) exprNode()   {}

var comparisonOps = map[string]bool{"<": true, ">": true, "<=": true, ">=": true, "==": true, "!=": true}

func isComparison(e Expr) bool {
	b, ok := e.(*Binary)
	return ok && comparisonOps[b.Op]
}

// walkExpr visits e and its sub-expressions in evaluation order.
func walkExpr(e Expr, visit func(Expr)) {
	if e == nil {
		return
	}
	visit(e)
	switch n := e.(type) {
	case *Unary:
		walkExpr(n.Operand, visit)
	case *Binary:
		walkExpr(n.Left, visit)
		walkExpr(n.Right, visit)
	}
}

// walkStmts visits statements in source order, descending into branches.
// depth is 0 for top-level statements.
func walkStmts(stmts []Statement, depth int, visit func(s Statement, depth int)) {
	for _, s := range stmts {
		visit(s, depth)
		if n, ok := s.(*If); ok {
			walkStmts(n.Then, depth+1, visit)
			walkStmts(n.Else, depth+1, visit)
		}
	}
}
