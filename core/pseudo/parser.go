package pseudo

import (
	"strconv"
	"unicode/utf8"
)

// Limits bound the work one request may cause.
type Limits struct {
	MaxSourceLength int
	MaxNestingDepth int
	MaxExprDepth    int
}

// DefaultLimits are used when a Limits field is left zero.
var DefaultLimits = Limits{
	MaxSourceLength: 64 * 1024,
	MaxNestingDepth: 100,
	MaxExprDepth:    200,
}

func (l Limits) withDefaults() Limits {
	if l.MaxSourceLength <= 0 {
		l.MaxSourceLength = DefaultLimits.MaxSourceLength
	}
	if l.MaxNestingDepth <= 0 {
		l.MaxNestingDepth = DefaultLimits.MaxNestingDepth
	}
	if l.MaxExprDepth <= 0 {
		l.MaxExprDepth = DefaultLimits.MaxExprDepth
	}
	return l
}

// ParseResult holds whatever statements were recognised plus every parse error.
// Program is only safe to execute when Errors is empty.
type ParseResult struct {
	Program Program
	Errors  ErrorList
}

// Parse builds a Program from tokens. Errors confined to one line are collected
// and parsing resumes on the next line; block structure errors (a stray 'else'
// or 'endif', a missing 'endif', nesting past the limit) stop parsing.
func Parse(tokens []Token, limits Limits) ParseResult {
	p := &parser{lines: groupLines(tokens), limits: limits.withDefaults()}
	prog := p.parseBlock(0)
	return ParseResult{Program: prog, Errors: p.errs}
}

func groupLines(tokens []Token) [][]Token {
	var lines [][]Token
	for i, t := range tokens {
		if i == 0 || tokens[i-1].Line != t.Line {
			lines = append(lines, nil)
		}
		lines[len(lines)-1] = append(lines[len(lines)-1], t)
	}
	return lines
}

type parser struct {
	lines  [][]Token
	pos    int // next line to parse
	limits Limits
	errs   ErrorList
	halted bool

	// cursor over the line being parsed
	toks      []Token
	i         int
	exprDepth int
}

func (p *parser) fail(err *SourceError) {
	p.errs = append(p.errs, err)
}

// halt records a structural error; no further statements are accumulated.
func (p *parser) halt(err *SourceError) {
	p.fail(err)
	p.halted = true
}

func (p *parser) startLine() int {
	p.toks = p.lines[p.pos]
	p.i = 0
	p.exprDepth = 0
	p.pos++
	return p.toks[0].Line
}

func (p *parser) atEnd() bool { return p.i >= len(p.toks) }

func (p *parser) cur() Token { return p.toks[p.i] }

func (p *parser) advance() Token {
	t := p.toks[p.i]
	p.i++
	return t
}

// endCol is the column just past the last token of the current line.
func (p *parser) endCol() int {
	last := p.toks[len(p.toks)-1]
	return last.Col + utf8.RuneCountInString(last.Text)
}

func (p *parser) errorAtCursor(format string, args ...interface{}) *SourceError {
	line, col := p.toks[0].Line, p.endCol()
	if !p.atEnd() {
		col = p.cur().Col
	}
	return newSourceError(StageParser, line, col, format, args...)
}

// expectEnd reports tokens left over after a complete statement.
func (p *parser) expectEnd(after string) bool {
	if p.atEnd() {
		return true
	}
	t := p.cur()
	if comparisonOps[t.Text] && t.Kind == OperatorToken {
		p.fail(p.errorAtCursor("comparisons cannot be chained, found a second %s", t.describe()).
			withSuggestion("split the test into nested 'if' blocks"))
		return false
	}
	p.fail(p.errorAtCursor("unexpected %s after %s", t.describe(), after))
	return false
}

// parseBlock parses statements until a line starting with 'else' or 'endif'.
func (p *parser) parseBlock(depth int) []Statement {
	var stmts []Statement
	for !p.halted && p.pos < len(p.lines) {
		first := p.lines[p.pos][0]
		if first.isKeyword(kwElse) || first.isKeyword(kwEndif) {
			if depth == 0 {
				p.halt(newSourceError(StageParser, first.Line, first.Col, "'%s' without a matching 'if'", first.Text).
					withSuggestion("remove it or add an 'if ... then' line above"))
			}
			return stmts
		}
		if s := p.parseStatement(depth); s != nil {
			stmts = append(stmts, s)
		}
	}
	return stmts
}

func (p *parser) parseStatement(depth int) Statement {
	first := p.lines[p.pos][0]
	switch {
	case first.isKeyword(kwIf):
		return p.parseIf(depth)
	case first.isKeyword(kwPrint):
		return p.parsePrint()
	case first.Kind == IdentifierToken:
		return p.parseAssignment()
	}
	line := p.startLine()
	p.fail(newSourceError(StageParser, line, first.Col, "line %d does not start a statement: unexpected %s", line, first.describe()).
		withSuggestion("statements start with a variable name, 'print' or 'if'"))
	return nil
}

func (p *parser) parsePrint() Statement {
	line := p.startLine()
	p.advance() // print
	if p.atEnd() {
		p.fail(p.errorAtCursor("'print' needs a value to print").
			withSuggestion("write the value after print, e.g. print x"))
		return nil
	}
	value, err := p.parseExpr()
	if err != nil {
		p.fail(err)
		return nil
	}
	if !p.expectEnd("the printed value") {
		return nil
	}
	return &Print{SrcLine: line, Value: value}
}

func (p *parser) parseAssignment() Statement {
	line := p.startLine()
	target := p.advance()

	if p.atEnd() || !p.cur().isOperator("=") {
		err := p.errorAtCursor("expected '=' after %s", target.describe())
		switch {
		case !p.atEnd() && p.cur().isOperator("=="):
			err.Suggestion = "use a single '=' to store a value, '==' compares values"
		case !p.atEnd() && p.cur().Kind != OperatorToken:
			err = newSourceError(StageParser, line, target.Col, "unknown statement %s", target.describe())
			err.Suggestion = keywordSuggestion(target.Text)
		default:
			err.Suggestion = keywordSuggestion(target.Text)
		}
		p.fail(err)
		return nil
	}
	p.advance() // =

	if p.atEnd() {
		p.fail(p.errorAtCursor("missing value after '='").
			withSuggestion("assign a number, a string or an expression, e.g. " + target.Text + " = 0"))
		return nil
	}
	value, err := p.parseExpr()
	if err != nil {
		p.fail(err)
		return nil
	}
	if !p.expectEnd("the assigned value") {
		return nil
	}
	return &Assignment{SrcLine: line, Target: target.Text, Value: value}
}

func (p *parser) parseIf(depth int) Statement {
	ifTok := p.lines[p.pos][0]
	if depth >= p.limits.MaxNestingDepth {
		p.halt(newSourceError(StageLimits, ifTok.Line, ifTok.Col,
			"program is too complex: 'if' blocks are nested more than %d levels deep", p.limits.MaxNestingDepth))
		return nil
	}

	line := p.startLine()
	p.advance() // if
	stmt := &If{SrcLine: line}
	p.parseCondition(stmt)

	stmt.Then = p.parseBlock(depth + 1)
	if p.halted {
		return nil
	}
	if p.pos >= len(p.lines) {
		p.halt(p.missingEndif(ifTok))
		return stmt
	}

	if first := p.lines[p.pos][0]; first.isKeyword(kwElse) {
		stmt.HasElse = true
		stmt.ElseLine = p.startLine()
		p.advance()
		if !p.atEnd() {
			err := p.errorAtCursor("unexpected %s after 'else'", p.cur().describe())
			if p.cur().isKeyword(kwIf) {
				err.Suggestion = "put the nested 'if' on its own line after 'else' and close it with its own 'endif'"
			}
			p.fail(err)
		}
		stmt.Else = p.parseBlock(depth + 1)
		if p.halted {
			return nil
		}
		if p.pos >= len(p.lines) {
			p.halt(p.missingEndif(ifTok))
			return stmt
		}
		if first := p.lines[p.pos][0]; first.isKeyword(kwElse) {
			p.halt(newSourceError(StageParser, first.Line, first.Col,
				"second 'else' for the 'if' on line %d", line).
				withSuggestion("an 'if' block can have only one 'else'"))
			return nil
		}
	}

	// the block loop only returns at 'endif' here
	stmt.EndLine = p.startLine()
	p.advance()
	p.expectEnd("'endif'")
	return stmt
}

func (p *parser) parseCondition(stmt *If) {
	if p.atEnd() {
		p.fail(p.errorAtCursor("'if' needs a condition").
			withSuggestion("write a comparison, e.g. if x < 10 then"))
		return
	}
	cond, err := p.parseExpr()
	if err != nil {
		p.fail(err)
		return
	}
	stmt.Cond = cond

	switch {
	case p.atEnd():
		p.fail(p.errorAtCursor("missing 'then' at the end of the 'if' condition").
			withSuggestion("add 'then' after the condition"))
	case p.cur().isOperator("="):
		p.fail(p.errorAtCursor("expected 'then' after the 'if' condition, found '='").
			withSuggestion("use '==' to compare values, a single '=' assigns"))
	case !p.cur().isKeyword(kwThen):
		if comparisonOps[p.cur().Text] {
			p.expectEnd("the condition")
			return
		}
		p.fail(p.errorAtCursor("expected 'then' after the 'if' condition, found %s", p.cur().describe()))
	default:
		p.advance()
		if !p.atEnd() {
			p.fail(p.errorAtCursor("unexpected %s after 'then'", p.cur().describe()).
				withSuggestion("start the branch on the next line"))
		}
	}
}

func (p *parser) missingEndif(ifTok Token) *SourceError {
	return newSourceError(StageParser, ifTok.Line, ifTok.Col, "'if' on line %d has no matching 'endif'", ifTok.Line).
		withSuggestion("did you forget 'endif'?")
}

// Expressions

func (p *parser) parseExpr() (Expr, *SourceError) {
	p.exprDepth++
	defer func() { p.exprDepth-- }()
	if p.exprDepth > p.limits.MaxExprDepth {
		return nil, p.errorAtCursor("expression is too complex: nested more than %d levels deep", p.limits.MaxExprDepth)
	}
	return p.parseComparison()
}

func (p *parser) parseComparison() (Expr, *SourceError) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	if !p.atEnd() && p.cur().Kind == OperatorToken && comparisonOps[p.cur().Text] {
		op := p.advance().Text
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseTerm() (Expr, *SourceError) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for !p.atEnd() && (p.cur().isOperator("+") || p.cur().isOperator("-")) {
		op := p.advance().Text
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseFactor() (Expr, *SourceError) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for !p.atEnd() && (p.cur().isOperator("*") || p.cur().isOperator("/")) {
		op := p.advance().Text
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (Expr, *SourceError) {
	if !p.atEnd() && p.cur().isOperator("-") {
		p.advance()
		p.exprDepth++
		defer func() { p.exprDepth-- }()
		if p.exprDepth > p.limits.MaxExprDepth {
			return nil, p.errorAtCursor("expression is too complex: nested more than %d levels deep", p.limits.MaxExprDepth)
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: "-", Operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Expr, *SourceError) {
	if p.atEnd() {
		return nil, p.errorAtCursor("expected a value but the line ended")
	}
	t := p.cur()
	switch {
	case t.Kind == NumberToken:
		p.advance()
		f, err := strconv.ParseFloat(t.Text, 64)
		if err != nil {
			return nil, newSourceError(StageParser, t.Line, t.Col, "number %s is too large", t.Text)
		}
		return &Literal{Value: Number(f)}, nil
	case t.Kind == StringToken:
		p.advance()
		return &Literal{Value: String(t.Text)}, nil
	case t.isKeyword(kwTrue), t.isKeyword(kwFalse):
		p.advance()
		return &Literal{Value: Bool(t.Text == kwTrue)}, nil
	case t.Kind == IdentifierToken:
		p.advance()
		return &Variable{Name: t.Text}, nil
	case t.is(PunctuationToken, "("):
		p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.atEnd() || !p.cur().is(PunctuationToken, ")") {
			return nil, p.errorAtCursor("missing ')' to close the '(' at column %d", t.Col).
				withSuggestion("every '(' needs a matching ')'")
		}
		p.advance()
		if b, ok := inner.(*Binary); ok {
			b.Grouped = true
		}
		return inner, nil
	}
	return nil, p.errorAtCursor("expected a value, found %s", t.describe())
}
