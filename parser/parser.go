// Package parser implements Nova's recursive-descent predictive parser:
// single-token lookahead plus one two-token lookahead to distinguish
// assignment from an expression statement.
package parser

import (
	"strconv"

	"github.com/xyproto/novac/ast"
	"github.com/xyproto/novac/compilerr"
	"github.com/xyproto/novac/token"
)

// Parser holds the token stream and a cursor into it.
type Parser struct {
	toks []token.Token
	pos  int
}

func New(toks []token.Token) *Parser {
	return &Parser{toks: toks}
}

// Parse tokenizes nothing itself; it consumes an already-lexed stream
// ending in EOF and returns the top-level Program.
func Parse(toks []token.Token) (*ast.Program, error) {
	return New(toks).parseProgram()
}

func (p *Parser) current() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) peek() token.Token {
	if p.pos+1 < len(p.toks) {
		return p.toks[p.pos+1]
	}
	return p.toks[len(p.toks)-1]
}

func (p *Parser) advance() token.Token {
	tok := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) check(kind token.Kind) bool {
	return p.current().Kind == kind
}

func (p *Parser) match(kind token.Kind) (token.Token, bool) {
	if p.check(kind) {
		return p.advance(), true
	}
	return token.Token{}, false
}

func (p *Parser) expect(kind token.Kind, what string) (token.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return token.Token{}, compilerr.NewParseError(p.current().Line, "expected %s, found %s", what, p.current().Kind)
}

func (p *Parser) parseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	for !p.check(token.EOF) {
		fn, err := p.parseFunction()
		if err != nil {
			return nil, err
		}
		prog.Functions = append(prog.Functions, fn)
	}
	return prog, nil
}

func (p *Parser) parseFunction() (*ast.FunctionDef, error) {
	line := p.current().Line
	if _, err := p.expect(token.FN, "'fn'"); err != nil {
		return nil, err
	}
	name, err := p.expect(token.IDENT, "function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN, "'('"); err != nil {
		return nil, err
	}
	var params []*ast.Param
	if !p.check(token.RPAREN) {
		param, err := p.parseParam()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		for {
			if _, ok := p.match(token.COMMA); !ok {
				break
			}
			param, err := p.parseParam()
			if err != nil {
				return nil, err
			}
			params = append(params, param)
		}
	}
	if _, err := p.expect(token.RPAREN, "')'"); err != nil {
		return nil, err
	}
	retType := ""
	if _, ok := p.match(token.ARROW); ok {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		retType = t
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDef{Name: name.Lexeme, Params: params, ReturnType: retType, Body: body, Line: line}, nil
}

func (p *Parser) parseParam() (*ast.Param, error) {
	line := p.current().Line
	name, err := p.expect(token.IDENT, "parameter name")
	if err != nil {
		return nil, err
	}
	typeName := ""
	if _, ok := p.match(token.COLON); ok {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		typeName = t
	}
	return &ast.Param{Name: name.Lexeme, TypeName: typeName, Line: line}, nil
}

// parseType accepts any identifier as a type name: only the four
// primitive keywords and bare identifiers are accepted here;
// non-primitive names flow through to fail at the equality checks the
// type checker performs.
func (p *Parser) parseType() (string, error) {
	tok := p.current()
	switch tok.Kind {
	case token.IDENT, token.INT_TYPE, token.BOOL_TYPE, token.STRING_TYPE, token.VOID_TYPE:
		p.advance()
		return tok.Lexeme, nil
	default:
		return "", compilerr.NewParseError(tok.Line, "expected type, found %s", tok.Kind)
	}
}

func (p *Parser) parseBlock() (*ast.Block, error) {
	if _, err := p.expect(token.LBRACE, "'{'"); err != nil {
		return nil, err
	}
	block := &ast.Block{}
	for !p.check(token.RBRACE) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, stmt)
	}
	if _, err := p.expect(token.RBRACE, "'}'"); err != nil {
		return nil, err
	}
	return block, nil
}

func (p *Parser) parseStatement() (ast.Stmt, error) {
	switch p.current().Kind {
	case token.LET:
		return p.parseLet()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.RETURN:
		return p.parseReturn()
	}
	if p.check(token.IDENT) && p.peek().Kind == token.ASSIGN {
		line := p.current().Line
		name := p.advance().Lexeme
		p.advance() // '='
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.SEMICOLON, "';'"); err != nil {
			return nil, err
		}
		return &ast.AssignStmt{Name: name, Expr: expr, Line: line}, nil
	}
	line := p.current().Line
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON, "';'"); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{Expr: expr, Line: line}, nil
}

func (p *Parser) parseLet() (ast.Stmt, error) {
	line := p.current().Line
	if _, err := p.expect(token.LET, "'let'"); err != nil {
		return nil, err
	}
	name, err := p.expect(token.IDENT, "identifier after 'let'")
	if err != nil {
		return nil, err
	}
	typeName := ""
	if _, ok := p.match(token.COLON); ok {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		typeName = t
	}
	if _, err := p.expect(token.ASSIGN, "'=' in let binding"); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON, "';'"); err != nil {
		return nil, err
	}
	return &ast.LetStmt{Name: name.Lexeme, TypeName: typeName, Expr: expr, Line: line}, nil
}

func (p *Parser) parseIf() (ast.Stmt, error) {
	line := p.current().Line
	if _, err := p.expect(token.IF, "'if'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN, "'(' after if"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN, "')' after condition"); err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	var elseBlock *ast.Block
	if _, ok := p.match(token.ELSE); ok {
		elseBlock, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}
	return &ast.IfStmt{Cond: cond, Then: then, Else: elseBlock, Line: line}, nil
}

func (p *Parser) parseWhile() (ast.Stmt, error) {
	line := p.current().Line
	if _, err := p.expect(token.WHILE, "'while'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN, "'(' after while"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN, "')' after condition"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Cond: cond, Body: body, Line: line}, nil
}

func (p *Parser) parseReturn() (ast.Stmt, error) {
	line := p.current().Line
	if _, err := p.expect(token.RETURN, "'return'"); err != nil {
		return nil, err
	}
	if p.check(token.SEMICOLON) {
		p.advance()
		return &ast.ReturnStmt{Expr: nil, Line: line}, nil
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON, "';'"); err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{Expr: expr, Line: line}, nil
}

// Expression precedence, lowest to highest: logical-or, logical-and,
// equality, comparison, additive, multiplicative, unary, call, primary.
// All binary levels are left-associative; unary is right-associative.

func (p *Parser) parseExpression() (ast.Expr, error) {
	return p.parseLogicalOr()
}

func (p *Parser) parseLogicalOr() (ast.Expr, error) {
	left, err := p.parseLogicalAnd()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.match(token.OR)
		if !ok {
			return left, nil
		}
		right, err := p.parseLogicalAnd()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryOp(left, "||", right, tok.Line)
	}
}

func (p *Parser) parseLogicalAnd() (ast.Expr, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.match(token.AND)
		if !ok {
			return left, nil
		}
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryOp(left, "&&", right, tok.Line)
	}
}

func (p *Parser) parseEquality() (ast.Expr, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for {
		var opStr string
		tok := p.current()
		switch tok.Kind {
		case token.EQ:
			opStr = "=="
		case token.NE:
			opStr = "!="
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryOp(left, opStr, right, tok.Line)
	}
}

func (p *Parser) parseComparison() (ast.Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		var opStr string
		tok := p.current()
		switch tok.Kind {
		case token.LT:
			opStr = "<"
		case token.GT:
			opStr = ">"
		case token.LE:
			opStr = "<="
		case token.GE:
			opStr = ">="
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryOp(left, opStr, right, tok.Line)
	}
}

func (p *Parser) parseTerm() (ast.Expr, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for {
		var opStr string
		tok := p.current()
		switch tok.Kind {
		case token.PLUS:
			opStr = "+"
		case token.MINUS:
			opStr = "-"
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryOp(left, opStr, right, tok.Line)
	}
}

func (p *Parser) parseFactor() (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		var opStr string
		tok := p.current()
		switch tok.Kind {
		case token.STAR:
			opStr = "*"
		case token.SLASH:
			opStr = "/"
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryOp(left, opStr, right, tok.Line)
	}
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	tok := p.current()
	if tok.Kind == token.MINUS {
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryOp("-", operand, tok.Line), nil
	}
	if tok.Kind == token.BANG {
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryOp("!", operand, tok.Line), nil
	}
	return p.parseCall()
}

func (p *Parser) parseCall() (ast.Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.match(token.LPAREN)
		if !ok {
			return expr, nil
		}
		var args []ast.Expr
		if !p.check(token.RPAREN) {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			for {
				if _, ok := p.match(token.COMMA); !ok {
					break
				}
				arg, err := p.parseExpression()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
			}
		}
		if _, err := p.expect(token.RPAREN, "')' after arguments"); err != nil {
			return nil, err
		}
		ref, ok := expr.(*ast.VarRef)
		if !ok {
			return nil, compilerr.NewParseError(tok.Line, "can only call identifiers")
		}
		expr = ast.NewCall(ref.Name, args, tok.Line)
	}
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok := p.current()
	switch tok.Kind {
	case token.INT:
		p.advance()
		v, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if err != nil {
			return nil, compilerr.NewParseError(tok.Line, "invalid integer literal %q", tok.Lexeme)
		}
		return ast.NewIntLiteral(v, tok.Line), nil
	case token.TRUE:
		p.advance()
		return ast.NewBoolLiteral(true, tok.Line), nil
	case token.FALSE:
		p.advance()
		return ast.NewBoolLiteral(false, tok.Line), nil
	case token.STRING:
		p.advance()
		return ast.NewStringLiteral([]byte(tok.Lexeme), tok.Line), nil
	case token.IDENT:
		p.advance()
		return ast.NewVarRef(tok.Lexeme, tok.Line), nil
	case token.LPAREN:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN, "')'"); err != nil {
			return nil, err
		}
		return expr, nil
	}
	return nil, compilerr.NewParseError(tok.Line, "unexpected token %s", tok.Kind)
}
