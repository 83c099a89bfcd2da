package parser

import "fmt"

// LexError reports a character the lexer cannot form a token from.
type LexError struct {
	Char rune
	Line int
}

func (e *LexError) Error() string {
	return fmt.Sprintf("parser: illegal character %q at line %d", e.Char, e.Line)
}

// ParseError reports an unexpected token (or premature end of input) with its
// position and what the parser was expecting.
type ParseError struct {
	Token Token
	Msg   string
}

func (e *ParseError) Error() string {
	if e.Token.Kind == TokenEOF {
		return fmt.Sprintf("parser: %s at end of input (line %d)", e.Msg, e.Token.Line)
	}
	return fmt.Sprintf("parser: %s at line %d col %d (near %q)",
		e.Msg, e.Token.Line, e.Token.Col, e.Token.Literal)
}
