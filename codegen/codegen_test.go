package codegen

import (
	"strconv"
	"strings"
	"testing"

	"github.com/xyproto/novac/ast"
	"github.com/xyproto/novac/check"
	"github.com/xyproto/novac/lexer"
	"github.com/xyproto/novac/parser"
)

func compileSrc(t *testing.T, src string) (*ast.Program, string) {
	t.Helper()
	toks, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	prog, err := parser.Parse(toks)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if err := check.Check(prog); err != nil {
		t.Fatalf("type error: %v", err)
	}
	asm, err := Generate(prog)
	if err != nil {
		t.Fatalf("codegen error: %v", err)
	}
	return prog, asm
}

func countOccurrences(haystack, needle string) int {
	return strings.Count(haystack, needle)
}

// TestFrameSizeAlways16ByteAligned checks that every sub rsp, N a
// function emits is a multiple of 16.
func TestFrameSizeAlways16ByteAligned(t *testing.T) {
	cases := []string{
		`fn f(a: int) { let x = 1; }`,
		`fn f(a: int, b: int, c: int) { let x = 1; let y = 2; let z = 3; }`,
		`fn f() { }`,
	}
	for _, src := range cases {
		_, asm := compileSrc(t, src)
		for _, line := range strings.Split(asm, "\n") {
			line = strings.TrimSpace(line)
			if !strings.HasPrefix(line, "sub rsp,") {
				continue
			}
			fields := strings.Split(line, ",")
			n, err := strconv.Atoi(strings.TrimSpace(fields[len(fields)-1]))
			if err != nil {
				t.Fatalf("could not parse %q: %v", line, err)
			}
			if n%16 != 0 {
				t.Fatalf("frame size %d is not 16-byte aligned (from %q)", n, line)
			}
		}
	}
}

// TestStringInterningSharesIdenticalLiterals checks that identical
// literals collapse onto one label while distinct literals don't.
func TestStringInterningSharesIdenticalLiterals(t *testing.T) {
	prog, asm := compileSrc(t, `fn main() { print("hi"); print("hi"); print("bye"); }`)
	mainFn := prog.Functions[0]
	first := mainFn.Body.Statements[0].(*ast.ExprStmt).Expr.(*ast.Call).Args[0].(*ast.StringLiteral)
	second := mainFn.Body.Statements[1].(*ast.ExprStmt).Expr.(*ast.Call).Args[0].(*ast.StringLiteral)
	third := mainFn.Body.Statements[2].(*ast.ExprStmt).Expr.(*ast.Call).Args[0].(*ast.StringLiteral)

	if first.Label != second.Label {
		t.Fatalf("identical literals got different labels: %s vs %s", first.Label, second.Label)
	}
	if first.Label == third.Label {
		t.Fatalf("distinct literals collapsed onto the same label: %s", first.Label)
	}
	if first.Label != ".Lstr0" {
		t.Fatalf("expected first literal to be .Lstr0 (first-appearance order), got %s", first.Label)
	}
	if third.Label != ".Lstr1" {
		t.Fatalf("expected second distinct literal to be .Lstr1, got %s", third.Label)
	}
	if countOccurrences(asm, ".Lstr0:") != 1 {
		t.Fatalf("expected exactly one .Lstr0 definition in the rodata section")
	}
}

// TestShortCircuitAndEmitsGuardBeforeRightOperand and the Or
// counterpart check that the generated jump structure short-circuits
// rather than always evaluating both operands.
func TestShortCircuitAndEmitsGuardBeforeRightOperand(t *testing.T) {
	_, asm := compileSrc(t, `fn f(a: bool, b: bool) -> bool { return a && b; }`)
	if !strings.Contains(asm, "je .Llogic_short") {
		t.Fatalf("expected a je to a logic_short label guarding && evaluation:\n%s", asm)
	}
}

func TestShortCircuitOrEmitsGuardBeforeRightOperand(t *testing.T) {
	_, asm := compileSrc(t, `fn f(a: bool, b: bool) -> bool { return a || b; }`)
	if !strings.Contains(asm, "jne .Llogic_short") {
		t.Fatalf("expected a jne to a logic_short label guarding || evaluation:\n%s", asm)
	}
}

func TestDivisionUsesExactInstructionSequence(t *testing.T) {
	_, asm := compileSrc(t, `fn f(a: int, b: int) -> int { return a / b; }`)
	want := []string{"mov rcx, rax", "mov rax, rbx", "mov rdx, 0", "idiv rcx"}
	idx := 0
	for _, line := range strings.Split(asm, "\n") {
		line = strings.TrimSpace(line)
		if idx < len(want) && line == want[idx] {
			idx++
		}
	}
	if idx != len(want) {
		t.Fatalf("did not find the expected division sequence in order:\n%s", asm)
	}
}

func TestPrintIntUsesPrintfFormat(t *testing.T) {
	_, asm := compileSrc(t, `fn main() { print(42); }`)
	if !strings.Contains(asm, "call printf") {
		t.Fatalf("expected print(int) to call printf:\n%s", asm)
	}
	if !strings.Contains(asm, `.asciz "%ld\n"`) {
		t.Fatalf("expected the int format string in rodata:\n%s", asm)
	}
}

func TestPrintStringUsesPuts(t *testing.T) {
	_, asm := compileSrc(t, `fn main() { print("hello"); }`)
	if !strings.Contains(asm, "call puts") {
		t.Fatalf("expected print(string) to call puts:\n%s", asm)
	}
}

func TestFunctionCallArgumentsLoadInSystemVOrder(t *testing.T) {
	_, asm := compileSrc(t, `
		fn add(a: int, b: int) -> int { return a + b; }
		fn main() { print(add(2, 3)); }
	`)
	if !strings.Contains(asm, "call add") {
		t.Fatalf("expected a call to add:\n%s", asm)
	}
	rdiIdx := strings.Index(asm, "mov rdi, rax")
	rsiIdx := strings.Index(asm, "mov rsi, rax")
	callIdx := strings.Index(asm, "call add")
	if rdiIdx == -1 || rsiIdx == -1 || callIdx == -1 {
		t.Fatalf("expected both argument moves and the call:\n%s", asm)
	}
	if !(rdiIdx < rsiIdx && rsiIdx < callIdx) {
		t.Fatalf("expected rdi, then rsi, then call in order:\n%s", asm)
	}
}

func TestWhileLoopBranchesBackToTop(t *testing.T) {
	_, asm := compileSrc(t, `
		fn main() {
			let i = 0;
			while (i < 3) {
				i = i + 1;
			}
		}
	`)
	if !strings.Contains(asm, "jmp .Lwhile0") {
		t.Fatalf("expected the loop body to jump back to its start label:\n%s", asm)
	}
}

func TestTooManyParametersIsRejected(t *testing.T) {
	toks, err := lexer.Tokenize(`fn f(a: int, b: int, c: int, d: int, e: int, f: int, g: int) { }`)
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	prog, err := parser.Parse(toks)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if err := check.Check(prog); err != nil {
		return
	}
	if _, err := Generate(prog); err == nil {
		t.Fatal("expected an error for a function with more than six parameters")
	}
}
