package codegen

import (
	"github.com/xyproto/novac/ast"
	"github.com/xyproto/novac/compilerr"
)

// emitFunction emits one function's prologue, body, and epilogue. The
// frame is laid out once up front so every statement in the body can
// address its slots.
func (g *Generator) emitFunction(fn *ast.FunctionDef) error {
	if len(fn.Params) > maxRegisterArgs {
		return compilerr.NewTypeError(fn.Line, "function %s has %d parameters, only %d are supported", fn.Name, len(fn.Params), maxRegisterArgs)
	}

	g.emitLabel(fn.Name)
	g.emit("    push rbp")
	g.emit("    mov rbp, rsp")

	fr := layoutFrame(fn)
	if fr.size > 0 {
		g.emit("    sub rsp, %d", fr.size)
	}

	for idx, param := range fn.Params {
		reg := paramRegs[idx]
		off := fr.offsets[param.Name]
		g.emit("    mov [rbp-%d], %s", off, reg)
	}

	if err := g.emitBlock(fn.Body, fr); err != nil {
		return err
	}

	g.emit("    mov rax, 0")
	g.emit("    leave")
	g.emit("    ret")
	return nil
}

func (g *Generator) emitBlock(block *ast.Block, fr *frame) error {
	for _, stmt := range block.Statements {
		if err := g.emitStmt(stmt, fr); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) emitStmt(stmt ast.Stmt, fr *frame) error {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		if err := g.emitExpr(s.Expr, fr); err != nil {
			return err
		}
		g.emit("    mov [rbp-%d], rax", fr.offsets[s.Name])
		return nil

	case *ast.AssignStmt:
		if err := g.emitExpr(s.Expr, fr); err != nil {
			return err
		}
		g.emit("    mov [rbp-%d], rax", fr.offsets[s.Name])
		return nil

	case *ast.ExprStmt:
		return g.emitExpr(s.Expr, fr)

	case *ast.ReturnStmt:
		if s.Expr != nil {
			if err := g.emitExpr(s.Expr, fr); err != nil {
				return err
			}
		} else {
			g.emit("    mov rax, 0")
		}
		g.emit("    leave")
		g.emit("    ret")
		return nil

	case *ast.IfStmt:
		return g.emitIf(s, fr)

	case *ast.WhileStmt:
		return g.emitWhile(s, fr)
	}
	return g.unknownNode(stmt.SourceLine(), "statement")
}
