// Package compile wires the four pipeline stages together: lex, parse,
// check, generate. Each stage reports failure through a normal error
// return rather than a panic, so every caller sees the first
// compilerr.Diagnostic encountered without needing to recover.
package compile

import (
	"errors"

	"github.com/xyproto/novac/ast"
	"github.com/xyproto/novac/check"
	"github.com/xyproto/novac/codegen"
	"github.com/xyproto/novac/lexer"
	"github.com/xyproto/novac/parser"
)

// errARM64Unimplemented is returned when --target arm64 is requested;
// the core has no ARM64 backend.
var errARM64Unimplemented = errors.New("arm64 target not implemented")

// Target is the code generation backend to use. Only X86_64 exists;
// ARM64 is a recognized target value with no backend behind it.
type Target int

const (
	X86_64 Target = iota
	ARM64
)

func (t Target) String() string {
	switch t {
	case X86_64:
		return "x86_64"
	case ARM64:
		return "arm64"
	default:
		return "unknown"
	}
}

// ParseTarget parses a --target flag value.
func ParseTarget(s string) (Target, bool) {
	switch s {
	case "x86_64":
		return X86_64, true
	case "arm64":
		return ARM64, true
	default:
		return 0, false
	}
}

// Stats summarizes one pipeline run, for verbose driver output.
type Stats struct {
	Tokens    int
	Functions int
}

// Source compiles Nova source text to assembly text for the given
// target. Returns the first compilerr.Diagnostic encountered; for ARM64
// it returns errARM64Unimplemented, which is not a Diagnostic.
func Source(src string, target Target) (string, Stats, error) {
	var stats Stats

	toks, err := lexer.Tokenize(src)
	if err != nil {
		return "", stats, err
	}
	stats.Tokens = len(toks)

	prog, err := parser.Parse(toks)
	if err != nil {
		return "", stats, err
	}
	stats.Functions = len(prog.Functions)

	if err := check.Check(prog); err != nil {
		return "", stats, err
	}

	asm, err := generate(prog, target)
	if err != nil {
		return "", stats, err
	}
	return asm, stats, nil
}

func generate(prog *ast.Program, target Target) (string, error) {
	if target == ARM64 {
		return "", errARM64Unimplemented
	}
	return codegen.Generate(prog)
}
