package pseudo

import (
	"strings"
	"unicode"
)

// LexResult is the output of one lexing pass.
type LexResult struct {
	Tokens   []Token
	Comments []Token
	Errors   ErrorList
	// Lines holds the physical source lines, index 0 being line 1.
	Lines []string
}

// two-character operators must be tried before their one-character prefixes
var operators = []string{"<=", ">=", "==", "!=", "=", "+", "-", "*", "/", "<", ">", "(", ")"}

// suggestions for characters students commonly borrow from other languages
var unexpectedCharHints = map[rune]string{
	'!':  "use '!=' to test that two values are different",
	'\'': "strings use double quotes, e.g. \"hello\"",
	'{':  "blocks are written with 'then' ... 'endif' instead of braces",
	'}':  "blocks are written with 'then' ... 'endif' instead of braces",
	':':  "end an 'if' condition with 'then' instead of ':'",
	';':  "each statement ends at the end of its line, no ';' is needed",
	'%':  "only + - * / are supported",
	'&':  "combine conditions with a nested 'if' block",
	'|':  "combine conditions with an 'if' ... 'else' block",
}

// Tokenize splits source into tokens. Lexing never stops early: unexpected
// characters are reported and skipped so every line gets scanned.
func Tokenize(source string) LexResult {
	lines := splitLines(source)
	lx := lexer{res: LexResult{Lines: lines}}
	for i, text := range lines {
		lx.scanLine([]rune(text), i+1)
	}
	return lx.res
}

func splitLines(source string) []string {
	lines := strings.Split(source, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

type lexer struct {
	res LexResult
}

func (lx *lexer) emit(kind TokenKind, text string, line, col int) {
	lx.res.Tokens = append(lx.res.Tokens, Token{Kind: kind, Text: text, Line: line, Col: col})
}

func (lx *lexer) fail(err *SourceError) {
	lx.res.Errors = append(lx.res.Errors, err)
}

func (lx *lexer) scanLine(src []rune, line int) {
	for i := 0; i < len(src); {
		r := src[i]
		col := i + 1

		switch {
		case unicode.IsSpace(r):
			i++

		case r == '/' && i+1 < len(src) && src[i+1] == '/':
			lx.res.Comments = append(lx.res.Comments, Token{Kind: CommentToken, Text: string(src[i:]), Line: line, Col: col})
			return

		case r == '"':
			end := i + 1
			for end < len(src) && src[end] != '"' {
				end++
			}
			if end >= len(src) {
				lx.fail(newSourceError(StageLexer, line, col, "unterminated string").
					withSuggestion("close the string with a matching '\"'"))
				return
			}
			lx.emit(StringToken, string(src[i+1:end]), line, col)
			i = end + 1

		case isDigit(r):
			end := i
			for end < len(src) && isDigit(src[end]) {
				end++
			}
			if end+1 < len(src) && src[end] == '.' && isDigit(src[end+1]) {
				end++
				for end < len(src) && isDigit(src[end]) {
					end++
				}
			}
			lx.emit(NumberToken, string(src[i:end]), line, col)
			i = end

		case isIdentStart(r):
			end := i
			for end < len(src) && isIdentPart(src[end]) {
				end++
			}
			word := string(src[i:end])
			kind := IdentifierToken
			if keywords[word] {
				kind = KeywordToken
			}
			lx.emit(kind, word, line, col)
			i = end

		default:
			op := matchOperator(src[i:])
			if op == "" {
				err := newSourceError(StageLexer, line, col, "unexpected character '%c'", r)
				lx.fail(err.withSuggestion(unexpectedCharHints[r]))
				i++
				continue
			}
			kind := OperatorToken
			if op == "(" || op == ")" {
				kind = PunctuationToken
			}
			lx.emit(kind, op, line, col)
			i += len(op)
		}
	}
}

func matchOperator(src []rune) string {
	for _, op := range operators {
		if len(src) < len(op) {
			continue
		}
		if string(src[:len(op)]) == op {
			return op
		}
	}
	return ""
}

func isDigit(r rune) bool      { return r >= '0' && r <= '9' }
func isIdentStart(r rune) bool { return r == '_' || unicode.IsLetter(r) }
func isIdentPart(r rune) bool  { return isIdentStart(r) || isDigit(r) }
