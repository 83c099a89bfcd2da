package parser

// TokenKind classifies a lexed token.
type TokenKind uint8

const (
	TokenEOF TokenKind = iota
	TokenIdent
	TokenKeyword
	TokenString
	TokenNumber
	TokenLParen
	TokenRParen
	TokenComma
	TokenSemicolon
	TokenStar
	TokenEq
	TokenNotEq // "!=" or "<>", lexeme kept verbatim
	TokenLt
	TokenGt
	TokenLe
	TokenGe
)

func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "EOF"
	case TokenIdent:
		return "identifier"
	case TokenKeyword:
		return "keyword"
	case TokenString:
		return "string"
	case TokenNumber:
		return "number"
	case TokenLParen:
		return "'('"
	case TokenRParen:
		return "')'"
	case TokenComma:
		return "','"
	case TokenSemicolon:
		return "';'"
	case TokenStar:
		return "'*'"
	case TokenEq:
		return "'='"
	case TokenNotEq:
		return "'!='"
	case TokenLt:
		return "'<'"
	case TokenGt:
		return "'>'"
	case TokenLe:
		return "'<='"
	case TokenGe:
		return "'>='"
	default:
		return "unknown"
	}
}

// Token is one lexical unit of a SQL statement. Literal holds the keyword in
// upper case, the unquoted string content, the number lexeme verbatim, or the
// identifier as written. Line and Col are 1-based.
type Token struct {
	Kind    TokenKind
	Literal string
	Line    int
	Col     int
}

// keywords is the reserved word set. Identifiers matching one of these
// (case-insensitively) lex as TokenKeyword with the upper-cased word.
var keywords = map[string]bool{
	"CREATE": true, "TABLE": true,
	"INSERT": true, "INTO": true, "VALUES": true,
	"SELECT": true, "FROM": true, "WHERE": true,
	"UPDATE": true, "SET": true,
	"DELETE": true,
	"AND":    true, "OR": true, "LIKE": true, "NOT": true, "NULL": true,
	"PRIMARY": true, "KEY": true, "UNIQUE": true, "AUTO_INCREMENT": true,
	"INT": true, "INTEGER": true, "VARCHAR": true, "FLOAT": true,
	"DOUBLE": true, "TEXT": true, "BOOLEAN": true,
	"DATE": true, "DATETIME": true, "TIMESTAMP": true,
}

// typeKeywords is the subset of keywords usable as a column data type.
var typeKeywords = map[string]bool{
	"INT": true, "INTEGER": true, "VARCHAR": true, "FLOAT": true,
	"DOUBLE": true, "TEXT": true, "BOOLEAN": true,
	"DATE": true, "DATETIME": true, "TIMESTAMP": true,
}
