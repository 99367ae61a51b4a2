package codegen

import "github.com/xyproto/novac/ast"

// emitLogical implements short-circuit && and ||. These do not follow
// the push/pop binary-operator template: the right operand is only
// evaluated when the left operand does not already determine the
// result.
func (g *Generator) emitLogical(e *ast.BinaryOp, fr *frame) error {
	end := g.newLabel("logic_end")
	short := g.newLabel("logic_short")

	if e.Op == "&&" {
		if err := g.emitExpr(e.Left, fr); err != nil {
			return err
		}
		g.emit("    cmp rax, 0")
		g.emit("    je %s", short)
		if err := g.emitExpr(e.Right, fr); err != nil {
			return err
		}
		g.emit("    cmp rax, 0")
		g.emit("    setne al")
		g.emit("    movzx rax, al")
		g.emit("    jmp %s", end)
		g.emitLabel(short)
		g.emit("    mov rax, 0")
	} else {
		if err := g.emitExpr(e.Left, fr); err != nil {
			return err
		}
		g.emit("    cmp rax, 0")
		g.emit("    jne %s", short)
		if err := g.emitExpr(e.Right, fr); err != nil {
			return err
		}
		g.emit("    cmp rax, 0")
		g.emit("    setne al")
		g.emit("    movzx rax, al")
		g.emit("    jmp %s", end)
		g.emitLabel(short)
		g.emit("    mov rax, 1")
	}
	g.emitLabel(end)
	return nil
}
