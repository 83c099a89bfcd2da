package parser

import (
	"strings"
	"unicode"
)

// Lexer turns SQL text into a token stream. Positions are tracked so parse
// errors can point at the offending line and column.
type Lexer struct {
	src  []rune
	pos  int
	line int
	col  int
}

func NewLexer(src string) *Lexer {
	return &Lexer{src: []rune(src), line: 1, col: 1}
}

// Tokenize lexes the whole input. The returned slice always ends with a
// TokenEOF carrying the position just past the last character.
func (l *Lexer) Tokenize() ([]Token, error) {
	var toks []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == TokenEOF {
			return toks, nil
		}
	}
}

func (l *Lexer) next() (Token, error) {
	l.skipSpace()

	line, col := l.line, l.col
	if l.pos >= len(l.src) {
		return Token{Kind: TokenEOF, Line: line, Col: col}, nil
	}

	r := l.src[l.pos]
	switch {
	case r == '(':
		return l.symbol(TokenLParen, "("), nil
	case r == ')':
		return l.symbol(TokenRParen, ")"), nil
	case r == ',':
		return l.symbol(TokenComma, ","), nil
	case r == ';':
		return l.symbol(TokenSemicolon, ";"), nil
	case r == '*':
		return l.symbol(TokenStar, "*"), nil
	case r == '=':
		return l.symbol(TokenEq, "="), nil
	case r == '!':
		if l.peekAt(1) == '=' {
			l.advance(2)
			return Token{Kind: TokenNotEq, Literal: "!=", Line: line, Col: col}, nil
		}
		return Token{}, &LexError{Char: r, Line: line}
	case r == '<':
		switch l.peekAt(1) {
		case '>':
			l.advance(2)
			return Token{Kind: TokenNotEq, Literal: "<>", Line: line, Col: col}, nil
		case '=':
			l.advance(2)
			return Token{Kind: TokenLe, Literal: "<=", Line: line, Col: col}, nil
		}
		return l.symbol(TokenLt, "<"), nil
	case r == '>':
		if l.peekAt(1) == '=' {
			l.advance(2)
			return Token{Kind: TokenGe, Literal: ">=", Line: line, Col: col}, nil
		}
		return l.symbol(TokenGt, ">"), nil
	case r == '\'':
		return l.lexString()
	case unicode.IsDigit(r):
		return l.lexNumber(), nil
	case r == '_' || unicode.IsLetter(r):
		return l.lexWord(), nil
	default:
		return Token{}, &LexError{Char: r, Line: line}
	}
}

func (l *Lexer) symbol(kind TokenKind, lit string) Token {
	tok := Token{Kind: kind, Literal: lit, Line: l.line, Col: l.col}
	l.advance(1)
	return tok
}

// lexString reads a single-quoted literal, resolving \' and \\ escapes.
// The stored literal is the unquoted, unescaped content.
func (l *Lexer) lexString() (Token, error) {
	line, col := l.line, l.col
	l.advance(1) // opening quote

	var b strings.Builder
	for l.pos < len(l.src) {
		r := l.src[l.pos]
		switch r {
		case '\'':
			l.advance(1)
			return Token{Kind: TokenString, Literal: b.String(), Line: line, Col: col}, nil
		case '\\':
			next := l.peekAt(1)
			if next == '\'' || next == '\\' {
				b.WriteRune(next)
				l.advance(2)
				continue
			}
			b.WriteRune(r)
			l.advance(1)
		default:
			b.WriteRune(r)
			l.advance(1)
		}
	}
	return Token{}, &LexError{Char: '\'', Line: line}
}

// lexNumber reads an integer or decimal lexeme verbatim; the parser keeps the
// text untouched so round-tripping through the AST preserves it.
func (l *Lexer) lexNumber() Token {
	line, col := l.line, l.col
	start := l.pos
	for l.pos < len(l.src) && unicode.IsDigit(l.src[l.pos]) {
		l.advance(1)
	}
	if l.pos < len(l.src) && l.src[l.pos] == '.' && unicode.IsDigit(l.peekAt(1)) {
		l.advance(1)
		for l.pos < len(l.src) && unicode.IsDigit(l.src[l.pos]) {
			l.advance(1)
		}
	}
	return Token{Kind: TokenNumber, Literal: string(l.src[start:l.pos]), Line: line, Col: col}
}

func (l *Lexer) lexWord() Token {
	line, col := l.line, l.col
	start := l.pos
	for l.pos < len(l.src) {
		r := l.src[l.pos]
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		l.advance(1)
	}
	word := string(l.src[start:l.pos])

	if up := strings.ToUpper(word); keywords[up] {
		return Token{Kind: TokenKeyword, Literal: up, Line: line, Col: col}
	}
	return Token{Kind: TokenIdent, Literal: word, Line: line, Col: col}
}

func (l *Lexer) skipSpace() {
	for l.pos < len(l.src) && unicode.IsSpace(l.src[l.pos]) {
		l.advance(1)
	}
}

func (l *Lexer) peekAt(off int) rune {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

func (l *Lexer) advance(n int) {
	for i := 0; i < n && l.pos < len(l.src); i++ {
		if l.src[l.pos] == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
		l.pos++
	}
}
