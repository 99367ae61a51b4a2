// Package compilerr defines the closed taxonomy of errors the Nova
// pipeline can report: lex, parse, and type errors. Every stage returns
// one of these instead of panicking, so the driver can report the first
// failure and exit non-zero without a recover().
package compilerr

import "fmt"

// Diagnostic is the common supertype every pipeline error satisfies, so
// the driver can surface lex, parse, and type errors uniformly.
type Diagnostic interface {
	error
	Line() int
}

// LexError reports an unterminated string literal or an unexpected
// character, with the line and column of the offending byte.
type LexError struct {
	Msg  string
	line int
	col  int
}

func NewLexError(line, col int, format string, args ...interface{}) *LexError {
	return &LexError{Msg: fmt.Sprintf(format, args...), line: line, col: col}
}

func (e *LexError) Error() string { return fmt.Sprintf("lex error at %d:%d: %s", e.line, e.col, e.Msg) }
func (e *LexError) Line() int     { return e.line }
func (e *LexError) Column() int   { return e.col }

// ParseError reports an unexpected token, an expected-token mismatch, or
// a non-identifier call target.
type ParseError struct {
	Msg  string
	line int
}

func NewParseError(line int, format string, args ...interface{}) *ParseError {
	return &ParseError{Msg: fmt.Sprintf(format, args...), line: line}
}

func (e *ParseError) Error() string { return fmt.Sprintf("parse error at line %d: %s", e.line, e.Msg) }
func (e *ParseError) Line() int     { return e.line }

// TypeError reports an unknown name, an arity mismatch, an operand or
// return type mismatch, a missing parameter type, or a void/non-void
// return violation.
type TypeError struct {
	Msg  string
	line int
}

func NewTypeError(line int, format string, args ...interface{}) *TypeError {
	return &TypeError{Msg: fmt.Sprintf(format, args...), line: line}
}

func (e *TypeError) Error() string { return fmt.Sprintf("type error at line %d: %s", e.line, e.Msg) }
func (e *TypeError) Line() int     { return e.line }
