package codegen

import "github.com/xyproto/novac/ast"

// emitIf allocates two fresh labels and emits a cmp/je-guarded branch
// pair; the else arm is empty (just the label) when absent.
func (g *Generator) emitIf(s *ast.IfStmt, fr *frame) error {
	elseLabel := g.newLabel("else")
	endLabel := g.newLabel("endif")

	if err := g.emitExpr(s.Cond, fr); err != nil {
		return err
	}
	g.emit("    cmp rax, 0")
	g.emit("    je %s", elseLabel)
	if err := g.emitBlock(s.Then, fr); err != nil {
		return err
	}
	g.emit("    jmp %s", endLabel)
	g.emitLabel(elseLabel)
	if s.Else != nil {
		if err := g.emitBlock(s.Else, fr); err != nil {
			return err
		}
	}
	g.emitLabel(endLabel)
	return nil
}

// emitWhile emits a top-test loop: evaluate condition, jump past the
// body when false, otherwise run the body and jump back to the top.
func (g *Generator) emitWhile(s *ast.WhileStmt, fr *frame) error {
	startLabel := g.newLabel("while")
	endLabel := g.newLabel("endwhile")

	g.emitLabel(startLabel)
	if err := g.emitExpr(s.Cond, fr); err != nil {
		return err
	}
	g.emit("    cmp rax, 0")
	g.emit("    je %s", endLabel)
	if err := g.emitBlock(s.Body, fr); err != nil {
		return err
	}
	g.emit("    jmp %s", startLabel)
	g.emitLabel(endLabel)
	return nil
}
