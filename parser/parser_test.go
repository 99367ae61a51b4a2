package parser

import (
	"testing"

	"github.com/xyproto/novac/ast"
	"github.com/xyproto/novac/lexer"
)

func parseSrc(t *testing.T, src string) *ast.Program {
	t.Helper()
	toks, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	prog, err := Parse(toks)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return prog
}

func exprOf(t *testing.T, prog *ast.Program) ast.Expr {
	t.Helper()
	fn := prog.Functions[0]
	ret := fn.Body.Statements[0].(*ast.ReturnStmt)
	return ret.Expr
}

func TestPrecedenceAddMul(t *testing.T) {
	// a + b * c parses as a + (b * c)
	prog := parseSrc(t, "fn f(a: int, b: int, c: int) -> int { return a + b * c; }")
	top := exprOf(t, prog).(*ast.BinaryOp)
	if top.Op != "+" {
		t.Fatalf("expected top-level +, got %s", top.Op)
	}
	right := top.Right.(*ast.BinaryOp)
	if right.Op != "*" {
		t.Fatalf("expected right child *, got %s", right.Op)
	}
}

func TestLeftAssociativeSubtraction(t *testing.T) {
	// a - b - c parses as (a - b) - c
	prog := parseSrc(t, "fn f(a: int, b: int, c: int) -> int { return a - b - c; }")
	top := exprOf(t, prog).(*ast.BinaryOp)
	if top.Op != "-" {
		t.Fatalf("expected top-level -, got %s", top.Op)
	}
	left, ok := top.Left.(*ast.BinaryOp)
	if !ok || left.Op != "-" {
		t.Fatalf("expected left child to be another -, got %#v", top.Left)
	}
	if _, ok := top.Right.(*ast.VarRef); !ok {
		t.Fatalf("expected right child to be a bare var ref, got %#v", top.Right)
	}
}

func TestLogicalPrecedence(t *testing.T) {
	// !a && b || c parses as ((!a) && b) || c
	prog := parseSrc(t, "fn f(a: bool, b: bool, c: bool) -> bool { return !a && b || c; }")
	top := exprOf(t, prog).(*ast.BinaryOp)
	if top.Op != "||" {
		t.Fatalf("expected top-level ||, got %s", top.Op)
	}
	left, ok := top.Left.(*ast.BinaryOp)
	if !ok || left.Op != "&&" {
		t.Fatalf("expected left child &&, got %#v", top.Left)
	}
	notExpr, ok := left.Left.(*ast.UnaryOp)
	if !ok || notExpr.Op != "!" {
		t.Fatalf("expected leftmost child to be unary !, got %#v", left.Left)
	}
}

func TestCallRequiresIdentifierCallee(t *testing.T) {
	toks, err := lexer.Tokenize("fn f() { (1)(2); }")
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	if _, err := Parse(toks); err == nil {
		t.Fatal("expected parse error for calling a non-identifier")
	}
}

func TestAssignmentLookahead(t *testing.T) {
	// IDENT '=' must parse as assignment, not as an expression statement
	// whose expression happens to start with an identifier.
	prog := parseSrc(t, "fn f() { let x = 1; x = 2; }")
	fn := prog.Functions[0]
	if len(fn.Body.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(fn.Body.Statements))
	}
	if _, ok := fn.Body.Statements[1].(*ast.AssignStmt); !ok {
		t.Fatalf("expected AssignStmt, got %#v", fn.Body.Statements[1])
	}
}

func TestParamsAndReturnType(t *testing.T) {
	prog := parseSrc(t, "fn add(a: int, b: int) -> int { return a + b; }")
	fn := prog.Functions[0]
	if fn.Name != "add" || len(fn.Params) != 2 || fn.ReturnType != "int" {
		t.Fatalf("got %+v", fn)
	}
}

func TestIfElse(t *testing.T) {
	prog := parseSrc(t, `fn f() { if (true) { } else { } }`)
	stmt := prog.Functions[0].Body.Statements[0].(*ast.IfStmt)
	if stmt.Else == nil {
		t.Fatal("expected else block to be parsed")
	}
}

func TestBareReturn(t *testing.T) {
	prog := parseSrc(t, "fn f() { return; }")
	stmt := prog.Functions[0].Body.Statements[0].(*ast.ReturnStmt)
	if stmt.Expr != nil {
		t.Fatalf("expected nil expr for bare return, got %#v", stmt.Expr)
	}
}

func TestExpectedTokenMismatch(t *testing.T) {
	toks, err := lexer.Tokenize("fn f(a: int { }")
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	if _, err := Parse(toks); err == nil {
		t.Fatal("expected parse error for missing ')'")
	}
}
