package codegen

import "github.com/xyproto/novac/ast"

// emitExpr dispatches on the expression's concrete variant. Every
// expression leaves its result in rax.
func (g *Generator) emitExpr(expr ast.Expr, fr *frame) error {
	switch e := expr.(type) {
	case *ast.IntLiteral:
		g.emit("    mov rax, %d", e.Value)
		return nil
	case *ast.BoolLiteral:
		g.emit("    mov rax, %d", boolToInt(e.Value))
		return nil
	case *ast.StringLiteral:
		g.emit("    lea rax, [rel %s]", e.Label)
		return nil
	case *ast.VarRef:
		g.emit("    mov rax, [rbp-%d]", fr.offsets[e.Name])
		return nil
	case *ast.UnaryOp:
		return g.emitUnary(e, fr)
	case *ast.BinaryOp:
		return g.emitBinary(e, fr)
	case *ast.Call:
		return g.emitCall(e, fr)
	}
	return g.unknownNode(expr.SourceLine(), "expression")
}

func (g *Generator) emitUnary(e *ast.UnaryOp, fr *frame) error {
	if err := g.emitExpr(e.Operand, fr); err != nil {
		return err
	}
	switch e.Op {
	case "-":
		g.emit("    neg rax")
	case "!":
		g.emit("    cmp rax, 0")
		g.emit("    sete al")
		g.emit("    movzx rax, al")
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
