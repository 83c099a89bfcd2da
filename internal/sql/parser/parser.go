package parser

import (
	"fmt"
	"strconv"
	"strings"

	"docsql/internal/schema"
)

// Parser consumes a token stream and produces one Statement per Parse call.
// Expressions are parsed by precedence climbing: OR binds loosest, then AND,
// then comparisons. A trailing ';' is accepted but not required.
type Parser struct {
	tokens []Token
	pos    int
}

// Parse lexes and parses a single SQL statement.
func Parse(sql string) (Statement, error) {
	if strings.TrimSpace(sql) == "" {
		return nil, &ParseError{Token: Token{Kind: TokenEOF, Line: 1, Col: 1}, Msg: "empty statement"}
	}

	toks, err := NewLexer(sql).Tokenize()
	if err != nil {
		return nil, err
	}

	p := &Parser{tokens: toks}
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	p.accept(TokenSemicolon)
	if p.cur().Kind != TokenEOF {
		return nil, p.errorf("unexpected input after statement")
	}
	return stmt, nil
}

func (p *Parser) parseStatement() (Statement, error) {
	tok := p.cur()
	if tok.Kind != TokenKeyword {
		return nil, p.errorf("expected a SQL statement")
	}

	switch tok.Literal {
	case "CREATE":
		return p.parseCreateTable()
	case "INSERT":
		return p.parseInsert()
	case "SELECT":
		return p.parseSelect()
	case "UPDATE":
		return p.parseUpdate()
	case "DELETE":
		return p.parseDelete()
	default:
		return nil, p.errorf("unsupported statement %s", tok.Literal)
	}
}

// ----- CREATE TABLE -----

func (p *Parser) parseCreateTable() (Statement, error) {
	p.advance() // CREATE
	if err := p.expectKeyword("TABLE"); err != nil {
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}

	var cols []schema.Column
	for {
		col, err := p.parseColumnDef()
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
		if !p.accept(TokenComma) {
			break
		}
	}
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}

	return &CreateTableStmt{TableName: name, Columns: cols}, nil
}

func (p *Parser) parseColumnDef() (schema.Column, error) {
	name, err := p.expectIdent()
	if err != nil {
		return schema.Column{}, err
	}

	tok := p.cur()
	if tok.Kind != TokenKeyword || !typeKeywords[tok.Literal] {
		return schema.Column{}, p.errorf("expected a data type for column %s", name)
	}
	p.advance()

	typ := schema.DataType{Name: tok.Literal}
	if p.accept(TokenLParen) {
		sizeTok, err := p.expect(TokenNumber)
		if err != nil {
			return schema.Column{}, err
		}
		size, err := strconv.Atoi(sizeTok.Literal)
		if err != nil {
			return schema.Column{}, p.errorf("type size must be an integer")
		}
		if _, err := p.expect(TokenRParen); err != nil {
			return schema.Column{}, err
		}
		typ.Size = size
	}

	col := schema.Column{Name: name, Type: typ}
	for {
		con, ok, err := p.parseConstraint()
		if err != nil {
			return schema.Column{}, err
		}
		if !ok {
			break
		}
		col.Constraints = append(col.Constraints, con)
	}
	return col, nil
}

func (p *Parser) parseConstraint() (schema.Constraint, bool, error) {
	tok := p.cur()
	if tok.Kind != TokenKeyword {
		return "", false, nil
	}
	switch tok.Literal {
	case "PRIMARY":
		p.advance()
		if err := p.expectKeyword("KEY"); err != nil {
			return "", false, err
		}
		return schema.PrimaryKey, true, nil
	case "UNIQUE":
		p.advance()
		return schema.Unique, true, nil
	case "AUTO_INCREMENT":
		p.advance()
		return schema.AutoIncrement, true, nil
	case "NOT":
		p.advance()
		if err := p.expectKeyword("NULL"); err != nil {
			return "", false, err
		}
		return schema.NotNull, true, nil
	default:
		return "", false, nil
	}
}

// ----- INSERT -----

func (p *Parser) parseInsert() (Statement, error) {
	p.advance() // INSERT
	if err := p.expectKeyword("INTO"); err != nil {
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	var cols []string
	if p.accept(TokenLParen) {
		for {
			col, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			cols = append(cols, col)
			if !p.accept(TokenComma) {
				break
			}
		}
		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
	}

	if err := p.expectKeyword("VALUES"); err != nil {
		return nil, err
	}

	var rows [][]Literal
	for {
		row, err := p.parseRowTuple()
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
		if !p.accept(TokenComma) {
			break
		}
	}

	return &InsertStmt{TableName: name, Columns: cols, Rows: rows}, nil
}

func (p *Parser) parseRowTuple() ([]Literal, error) {
	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}
	var row []Literal
	for {
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		row = append(row, lit)
		if !p.accept(TokenComma) {
			break
		}
	}
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}
	return row, nil
}

// ----- SELECT -----

func (p *Parser) parseSelect() (Statement, error) {
	p.advance() // SELECT

	stmt := &SelectStmt{}
	if p.accept(TokenStar) {
		stmt.Star = true
	} else {
		for {
			col, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			stmt.Columns = append(stmt.Columns, col)
			if !p.accept(TokenComma) {
				break
			}
		}
	}

	if err := p.expectKeyword("FROM"); err != nil {
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	stmt.TableName = name

	where, err := p.parseOptionalWhere()
	if err != nil {
		return nil, err
	}
	stmt.Where = where
	return stmt, nil
}

// ----- UPDATE -----

func (p *Parser) parseUpdate() (Statement, error) {
	p.advance() // UPDATE
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("SET"); err != nil {
		return nil, err
	}

	var assigns []Assignment
	for {
		col, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenEq); err != nil {
			return nil, err
		}
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		assigns = append(assigns, Assignment{Column: col, Value: lit})
		if !p.accept(TokenComma) {
			break
		}
	}

	where, err := p.parseOptionalWhere()
	if err != nil {
		return nil, err
	}
	return &UpdateStmt{TableName: name, Assignments: assigns, Where: where}, nil
}

// ----- DELETE -----

func (p *Parser) parseDelete() (Statement, error) {
	p.advance() // DELETE
	if err := p.expectKeyword("FROM"); err != nil {
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	where, err := p.parseOptionalWhere()
	if err != nil {
		return nil, err
	}
	return &DeleteStmt{TableName: name, Where: where}, nil
}

// ----- Expressions -----

func (p *Parser) parseOptionalWhere() (Expr, error) {
	if !p.acceptKeyword("WHERE") {
		return nil, nil
	}
	return p.parseOr()
}

// parseOr implements `orExpr := andExpr (OR andExpr)*`. Chains fold left to
// right into a left-leaning tree.
func (p *Parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.acceptKeyword("OR") {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &Logical{Left: left, Op: OpOr, Right: right}
	}
	return left, nil
}

// parseAnd implements `andExpr := cmpExpr (AND cmpExpr)*`.
func (p *Parser) parseAnd() (Expr, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.acceptKeyword("AND") {
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &Logical{Left: left, Op: OpAnd, Right: right}
	}
	return left, nil
}

// parseComparison implements `cmpExpr := '(' orExpr ')' | operand op operand`.
// A parenthesized group recurses into the full expression grammar; no node is
// produced for the grouping itself.
func (p *Parser) parseComparison() (Expr, error) {
	if p.accept(TokenLParen) {
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		return inner, nil
	}

	left, err := p.parseOperand()
	if err != nil {
		return nil, err
	}

	op, err := p.parseCompareOp()
	if err != nil {
		return nil, err
	}

	right, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	return &Comparison{Left: left, Op: op, Right: right}, nil
}

func (p *Parser) parseCompareOp() (CompareOp, error) {
	tok := p.cur()
	switch tok.Kind {
	case TokenEq, TokenNotEq, TokenLt, TokenGt, TokenLe, TokenGe:
		p.advance()
		return CompareOp(tok.Literal), nil
	case TokenKeyword:
		if tok.Literal == "LIKE" {
			p.advance()
			return CompareOp("LIKE"), nil
		}
	}
	return "", p.errorf("expected a comparison operator")
}

// parseOperand accepts a column reference or a literal value.
func (p *Parser) parseOperand() (Expr, error) {
	tok := p.cur()
	switch tok.Kind {
	case TokenIdent:
		p.advance()
		return &Ident{Name: tok.Literal}, nil
	case TokenString, TokenNumber:
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		return &lit, nil
	case TokenKeyword:
		if tok.Literal == "NULL" {
			p.advance()
			return &Literal{Kind: LiteralNull}, nil
		}
	}
	return nil, p.errorf("expected a column name or literal")
}

// parseLiteral accepts a string, number or NULL and records it verbatim.
func (p *Parser) parseLiteral() (Literal, error) {
	tok := p.cur()
	switch tok.Kind {
	case TokenString:
		p.advance()
		return Literal{Kind: LiteralString, Text: tok.Literal}, nil
	case TokenNumber:
		p.advance()
		return Literal{Kind: LiteralNumber, Text: tok.Literal}, nil
	case TokenKeyword:
		if tok.Literal == "NULL" {
			p.advance()
			return Literal{Kind: LiteralNull}, nil
		}
	}
	return Literal{}, p.errorf("expected a literal value")
}

// ----- Token helpers -----

func (p *Parser) cur() Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
}

func (p *Parser) accept(kind TokenKind) bool {
	if p.cur().Kind == kind {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) acceptKeyword(word string) bool {
	tok := p.cur()
	if tok.Kind == TokenKeyword && tok.Literal == word {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(kind TokenKind) (Token, error) {
	tok := p.cur()
	if tok.Kind != kind {
		return Token{}, p.errorf("expected %s", kind)
	}
	p.advance()
	return tok, nil
}

func (p *Parser) expectKeyword(word string) error {
	if !p.acceptKeyword(word) {
		return p.errorf("expected %s", word)
	}
	return nil
}

func (p *Parser) expectIdent() (string, error) {
	tok, err := p.expect(TokenIdent)
	if err != nil {
		return "", err
	}
	return tok.Literal, nil
}

func (p *Parser) errorf(format string, args ...any) error {
	return &ParseError{Token: p.cur(), Msg: fmt.Sprintf(format, args...)}
}
