package pseudo

import "fmt"

// TokenKind is the lexical category of a Token.
type TokenKind int

const (
	KeywordToken TokenKind = iota
	IdentifierToken
	NumberToken
	StringToken
	OperatorToken
	PunctuationToken
	CommentToken
)

var tokenKindNames = [...]string{
	KeywordToken:     "keyword",
	IdentifierToken:  "identifier",
	NumberToken:      "number",
	StringToken:      "string",
	OperatorToken:    "operator",
	PunctuationToken: "punctuation",
	CommentToken:     "comment",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// reserved words, matched case-sensitively
const (
	kwIf    = "if"
	kwThen  = "then"
	kwElse  = "else"
	kwEndif = "endif"
	kwPrint = "print"
	kwTrue  = "true"
	kwFalse = "false"
)

var keywords = map[string]bool{
	kwIf:    true,
	kwThen:  true,
	kwElse:  true,
	kwEndif: true,
	kwPrint: true,
	kwTrue:  true,
	kwFalse: true,
}

// statementKeywords are the keywords that may start a line.
var statementKeywords = []string{kwIf, kwElse, kwEndif, kwPrint}

// Token is one lexeme. Text holds the literal's value for strings (quotes stripped).
type Token struct {
	Kind TokenKind
	Text string
	Line int
	Col  int
}

func (t Token) is(kind TokenKind, text string) bool {
	return t.Kind == kind && t.Text == text
}

func (t Token) isKeyword(text string) bool  { return t.is(KeywordToken, text) }
func (t Token) isOperator(text string) bool { return t.is(OperatorToken, text) }

// describe renders the token the way it appears in error messages.
func (t Token) describe() string {
	if t.Kind == StringToken {
		return fmt.Sprintf("%q", t.Text)
	}
	return "'" + t.Text + "'"
}
