// Package codegen walks a type-checked Nova AST once and emits GNU
// assembler, Intel-syntax, x86-64 text: a string-interning prepass, a
// frame-layout prepass, and a single emission pass per function. Every
// Generator is single-use.
package codegen

import (
	"fmt"
	"strings"

	"github.com/xyproto/novac/ast"
	"github.com/xyproto/novac/compilerr"
)

// paramRegs is the System V integer argument register order. Only the
// first six parameters/arguments are ever assigned a register; a
// seventh is a compile error rather than a silently dropped slot.
var paramRegs = []string{"rdi", "rsi", "rdx", "rcx", "r8", "r9"}

const maxRegisterArgs = 6

// Generator holds the accumulated output lines, the string-intern
// table, and the label counter for one compilation.
type Generator struct {
	lines         []string
	stringLabels  map[string]string // decoded value -> .Lstr<n> label
	stringOrder   []string          // first-appearance order, for the preamble
	labelCounter  int
}

// New returns a fresh, single-use Generator.
func New() *Generator {
	return &Generator{stringLabels: make(map[string]string)}
}

// Generate runs the full code generation pass over an already
// type-checked program and returns the assembled text.
func Generate(prog *ast.Program) (string, error) {
	return New().Generate(prog)
}

func (g *Generator) Generate(prog *ast.Program) (string, error) {
	g.internStrings(prog)
	g.emitPreamble()
	for _, fn := range prog.Functions {
		if err := g.emitFunction(fn); err != nil {
			return "", err
		}
	}
	return strings.Join(g.lines, "\n") + "\n", nil
}

func (g *Generator) emit(format string, args ...interface{}) {
	if len(args) == 0 {
		g.lines = append(g.lines, format)
		return
	}
	g.lines = append(g.lines, fmt.Sprintf(format, args...))
}

func (g *Generator) emitLabel(label string) {
	g.lines = append(g.lines, label+":")
}

// newLabel mints a globally unique label for this Generator instance,
// numbered by a monotonically increasing counter with a per-purpose
// prefix.
func (g *Generator) newLabel(prefix string) string {
	lbl := fmt.Sprintf(".L%s%d", prefix, g.labelCounter)
	g.labelCounter++
	return lbl
}

func (g *Generator) emitPreamble() {
	g.emit(".intel_syntax noprefix")
	g.emit(".section .rodata")
	g.emit(".LC_fmt_int:")
	g.emit(`    .asciz "%ld\n"`)
	for _, value := range g.stringOrder {
		label := g.stringLabels[value]
		g.emitLabel(label)
		g.emit("    .asciz \"%s\"", escapeAsciz(value))
	}
	g.emit(".text")
	g.emit(".globl main")
	g.emit(".extern printf")
	g.emit(".extern puts")
}

// escapeAsciz re-escapes backslash, double quote, newline and tab for a
// GNU-as .asciz directive; every other byte passes through unchanged,
// including non-ASCII bytes.
func escapeAsciz(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}

func (g *Generator) unknownNode(line int, what string) error {
	return compilerr.NewTypeError(line, "code generator: unhandled %s", what)
}
