// Package js_lexer tokenizes ECMAScript (+ minimal TypeScript enum) source
// text for internal/js_parser. Modeled on esbuild's internal/js_lexer in
// shape -- a single Lexer walking the source by byte, producing a stream of
// typed tokens with raw text spans -- but scanned eagerly up front rather
// than interleaved with parser callbacks, since this tool's grammar doesn't
// need JSX's parser-driven retokenization. The classic `/` division-vs-regex
// ambiguity esbuild resolves via parser state is resolved here the same way,
// just locally: the lexer tracks whether the previous significant token
// could end a value expression, and treats `/` as the start of a regex
// literal only when it couldn't.
package js_lexer

import (
	"fmt"
	"strings"

	"github.com/jsreadable/unminify/internal/js_ast"
	"github.com/jsreadable/unminify/internal/logger"
)

type T uint8

const (
	TEOF T = iota
	TIdentifier
	TNumericLiteral
	TStringLiteral
	TTemplateLiteral
	TRegExpLiteral
	TPunctuation // raw text holds the exact punctuator/operator spelling
	TKeyword     // raw text holds the exact keyword spelling
)

// Token is one scanned lexical token.
type Token struct {
	Kind T
	Loc  logger.Loc
	Raw  string // exact source text, including string quotes/regex slashes
}

var keywords = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true, "do": true,
	"else": true, "enum": true, "export": true, "extends": true, "false": true,
	"finally": true, "for": true, "function": true, "if": true, "import": true,
	"in": true, "instanceof": true, "new": true, "null": true, "return": true,
	"super": true, "switch": true, "this": true, "throw": true, "true": true,
	"try": true, "typeof": true, "var": true, "void": true, "while": true,
	"with": true, "let": true, "static": true, "yield": true, "async": true,
	"await": true, "of": true, "get": true, "set": true,
}

// puncts is checked longest-first so e.g. ">>>=" wins over ">>" over ">".
var puncts = []string{
	">>>=", "...", "===", "!==", "**=", "<<=", ">>=", ">>>", "&&=", "||=", "??=",
	"=>", "==", "!=", "<=", ">=", "&&", "||", "??", "?.", "++", "--", "+=", "-=",
	"*=", "/=", "%=", "&=", "|=", "^=", "<<", ">>", "**",
	"{", "}", "(", ")", "[", "]", ".", ";", ",", "<", ">", "+", "-", "*", "%",
	"&", "|", "^", "!", "~", "?", ":", "=", "/",
}

type Lexer struct {
	log    logger.Log
	source *logger.Source
	src    string
	pos    int

	// prevEndsValue tracks whether the previously scanned significant token
	// could be the end of a value expression (identifier, literal, `)`, `]`)
	// -- used to disambiguate `/` as divide vs. the start of a regex.
	prevEndsValue bool
}

func NewLexer(log logger.Log, source *logger.Source) *Lexer {
	return &Lexer{log: log, source: source, src: source.Contents}
}

// Tokenize scans the whole source up front and returns its tokens; the last
// token in the slice is always the TEOF sentinel.
func (l *Lexer) Tokenize() []Token {
	var tokens []Token
	for {
		tok := l.next()
		tokens = append(tokens, tok)
		if tok.Kind == TEOF {
			break
		}
	}
	return tokens
}

func (l *Lexer) errorf(loc logger.Loc, format string, args ...interface{}) {
	l.log.AddError(l.source, loc, fmt.Sprintf(format, args...))
}

func (l *Lexer) next() Token {
	l.skipWhitespaceAndComments()
	start := l.pos
	loc := logger.Loc{Start: int32(start)}
	if l.pos >= len(l.src) {
		return Token{Kind: TEOF, Loc: loc}
	}
	c := l.src[l.pos]

	switch {
	case isIdentStart(c):
		for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
			l.pos++
		}
		raw := l.src[start:l.pos]
		if keywords[raw] {
			l.prevEndsValue = raw == "this" || raw == "super" || raw == "true" || raw == "false" || raw == "null"
			return Token{Kind: TKeyword, Loc: loc, Raw: raw}
		}
		l.prevEndsValue = true
		return Token{Kind: TIdentifier, Loc: loc, Raw: raw}

	case c >= '0' && c <= '9', c == '.' && l.pos+1 < len(l.src) && l.src[l.pos+1] >= '0' && l.src[l.pos+1] <= '9':
		l.scanNumber()
		l.prevEndsValue = true
		return Token{Kind: TNumericLiteral, Loc: loc, Raw: l.src[start:l.pos]}

	case c == '"' || c == '\'':
		l.scanString(c)
		l.prevEndsValue = true
		return Token{Kind: TStringLiteral, Loc: loc, Raw: l.src[start:l.pos]}

	case c == '`':
		l.scanTemplate()
		l.prevEndsValue = true
		return Token{Kind: TTemplateLiteral, Loc: loc, Raw: l.src[start:l.pos]}

	case c == '/' && !l.prevEndsValue:
		if ok := l.scanRegExp(); ok {
			l.prevEndsValue = true
			return Token{Kind: TRegExpLiteral, Loc: loc, Raw: l.src[start:l.pos]}
		}
	}

	for _, p := range puncts {
		if strings.HasPrefix(l.src[l.pos:], p) {
			l.pos += len(p)
			l.prevEndsValue = p == ")" || p == "]"
			return Token{Kind: TPunctuation, Loc: loc, Raw: p}
		}
	}

	l.errorf(loc, "unexpected character %q", string(c))
	l.pos++
	return l.next()
}

func (l *Lexer) skipWhitespaceAndComments() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.pos++
		case c == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '/':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		case c == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '*':
			l.pos += 2
			for l.pos < len(l.src) && !strings.HasPrefix(l.src[l.pos:], "*/") {
				l.pos++
			}
			l.pos += 2
		default:
			return
		}
	}
}

func (l *Lexer) scanNumber() {
	for l.pos < len(l.src) && (isDigit(l.src[l.pos]) || l.src[l.pos] == '.' || l.src[l.pos] == '_' ||
		l.src[l.pos] == 'x' || l.src[l.pos] == 'X' || l.src[l.pos] == 'b' || l.src[l.pos] == 'B' ||
		l.src[l.pos] == 'o' || l.src[l.pos] == 'O' ||
		isHexLetter(l.src[l.pos])) {
		l.pos++
	}
	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		l.pos++
		if l.pos < len(l.src) && (l.src[l.pos] == '+' || l.src[l.pos] == '-') {
			l.pos++
		}
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}
	if l.pos < len(l.src) && l.src[l.pos] == 'n' { // bigint suffix
		l.pos++
	}
}

func (l *Lexer) scanString(quote byte) {
	l.pos++ // opening quote
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == '\\' {
			l.pos += 2
			continue
		}
		l.pos++
		if c == quote {
			return
		}
	}
	l.errorf(logger.Loc{Start: int32(l.pos)}, "unterminated string literal")
}

func (l *Lexer) scanTemplate() {
	l.pos++ // opening backtick
	depth := 0
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == '\\' {
			l.pos += 2
			continue
		}
		if c == '`' && depth == 0 {
			l.pos++
			return
		}
		if c == '$' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '{' {
			depth++
			l.pos += 2
			continue
		}
		if c == '}' && depth > 0 {
			depth--
		}
		l.pos++
	}
	l.errorf(logger.Loc{Start: int32(l.pos)}, "unterminated template literal")
}

func (l *Lexer) scanRegExp() bool {
	save := l.pos
	l.pos++ // opening slash
	inClass := false
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == '\\' {
			l.pos += 2
			continue
		}
		if c == '\n' {
			l.pos = save
			return false
		}
		if c == '[' {
			inClass = true
		} else if c == ']' {
			inClass = false
		} else if c == '/' && !inClass {
			l.pos++
			for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
				l.pos++ // flags
			}
			return true
		}
		l.pos++
	}
	l.pos = save
	return false
}

func isDigit(c byte) bool     { return c >= '0' && c <= '9' }
func isHexLetter(c byte) bool { return (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') }

// isIdentStart and isIdentPart classify one byte at a time rather than a
// decoded rune -- the scanning loops above advance one byte per call -- but
// for every ASCII byte (c < 0x80) that's exactly one full code point, so
// delegating to js_ast's canonical identifier tables is exact, not an
// approximation. A byte >= 0x80 is always part of a multi-byte UTF-8
// sequence (lead or continuation), and this tool accepts any non-ASCII
// identifier character the way esbuild's own lexer does; rejecting specific
// invalid code points there is the parser's job, not the scanner's.
func isIdentStart(c byte) bool {
	if c < 0x80 {
		return js_ast.IsIdentifierStart(rune(c))
	}
	return true
}

func isIdentPart(c byte) bool {
	if c < 0x80 {
		return js_ast.IsIdentifierContinue(rune(c))
	}
	return true
}
