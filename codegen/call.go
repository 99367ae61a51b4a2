package codegen

import (
	"github.com/xyproto/novac/ast"
	"github.com/xyproto/novac/compilerr"
	"github.com/xyproto/novac/types"
)

// emitCall special-cases the print builtin on its sole argument's
// inferred type, stamped by the checker; every other callee is a
// user-defined function whose arguments move into the matching System
// V register before the call.
func (g *Generator) emitCall(call *ast.Call, fr *frame) error {
	if call.Callee == "print" {
		return g.emitPrint(call, fr)
	}

	if len(call.Args) > maxRegisterArgs {
		return compilerr.NewTypeError(call.Line, "call to %s has %d arguments, only %d are supported", call.Callee, len(call.Args), maxRegisterArgs)
	}

	for idx, arg := range call.Args {
		if err := g.emitExpr(arg, fr); err != nil {
			return err
		}
		g.emit("    mov %s, rax", paramRegs[idx])
	}
	g.emit("    call %s", call.Callee)
	return nil
}

func (g *Generator) emitPrint(call *ast.Call, fr *frame) error {
	arg := call.Args[0]
	if err := g.emitExpr(arg, fr); err != nil {
		return err
	}
	switch arg.Type() {
	case types.String:
		g.emit("    mov rdi, rax")
		g.emit("    call puts")
		g.emit("    mov rax, 0")
	case types.Int:
		g.emit("    mov rsi, rax")
		g.emit("    lea rdi, [rel .LC_fmt_int]")
		g.emit("    xor eax, eax")
		g.emit("    call printf")
		g.emit("    mov rax, 0")
	}
	return nil
}
