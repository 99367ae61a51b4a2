package codegen

import "github.com/xyproto/novac/ast"

// emitBinary handles every BinaryOp except the short-circuit logical
// operators, which emitLogical (logic.go) handles with its own
// jump-sink pattern instead of the push/pop template.
func (g *Generator) emitBinary(e *ast.BinaryOp, fr *frame) error {
	if e.Op == "&&" || e.Op == "||" {
		return g.emitLogical(e, fr)
	}

	if err := g.emitExpr(e.Left, fr); err != nil {
		return err
	}
	g.emit("    push rax")
	if err := g.emitExpr(e.Right, fr); err != nil {
		return err
	}
	g.emit("    pop rbx")

	switch e.Op {
	case "+":
		g.emit("    add rax, rbx")
	case "-":
		// rbx holds the original left operand, rax the right; preserve
		// operand order by subtracting into rbx and moving the result.
		g.emit("    sub rbx, rax")
		g.emit("    mov rax, rbx")
	case "*":
		g.emit("    imul rax, rbx")
	case "/":
		g.emitDiv()
	case "==", "!=", "<", ">", "<=", ">=":
		g.emitCompare(e.Op)
	}
	return nil
}

// emitDiv moves the right operand (rax) into rcx and the left operand
// (rbx) into rax, zeroes rdx, then idiv. Truncates toward zero;
// division by zero is undefined.
func (g *Generator) emitDiv() {
	g.emit("    mov rcx, rax")
	g.emit("    mov rax, rbx")
	g.emit("    mov rdx, 0")
	g.emit("    idiv rcx")
}
