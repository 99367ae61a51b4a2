// Package ast defines Nova's abstract syntax tree: a closed set of
// statement and expression variants built by the parser, annotated in
// place by the type checker, and consumed by the code generator.
package ast

import "github.com/xyproto/novac/types"

// Program owns an ordered sequence of function definitions.
type Program struct {
	Functions []*FunctionDef
}

// Param is one function parameter: a name and an optional declared type.
// The checker rejects a missing TypeName during signature collection.
type Param struct {
	Name     string
	TypeName string // "" if absent
	Line     int
}

// FunctionDef is one top-level function: name, parameters, optional
// return type ("" means void), and a body block.
type FunctionDef struct {
	Name       string
	Params     []*Param
	ReturnType string // "" if absent
	Body       *Block
	Line       int
}

// Block owns an ordered sequence of statements. Nova blocks do not
// introduce a new lexical scope; the checker copies the scope map per
// branch instead.
type Block struct {
	Statements []Stmt
}

// Stmt is the closed set of statement variants.
type Stmt interface {
	stmtNode()
	SourceLine() int
}

type LetStmt struct {
	Name     string
	TypeName string // "" if absent
	Expr     Expr
	Line     int
}

type AssignStmt struct {
	Name string
	Expr Expr
	Line int
}

type IfStmt struct {
	Cond      Expr
	Then      *Block
	Else      *Block // nil if absent
	Line      int
}

type WhileStmt struct {
	Cond Expr
	Body *Block
	Line int
}

type ReturnStmt struct {
	Expr Expr // nil for bare "return;"
	Line int
}

type ExprStmt struct {
	Expr Expr
	Line int
}

func (*LetStmt) stmtNode()    {}
func (*AssignStmt) stmtNode() {}
func (*IfStmt) stmtNode()     {}
func (*WhileStmt) stmtNode()  {}
func (*ReturnStmt) stmtNode() {}
func (*ExprStmt) stmtNode()   {}

func (s *LetStmt) SourceLine() int    { return s.Line }
func (s *AssignStmt) SourceLine() int { return s.Line }
func (s *IfStmt) SourceLine() int     { return s.Line }
func (s *WhileStmt) SourceLine() int  { return s.Line }
func (s *ReturnStmt) SourceLine() int { return s.Line }
func (s *ExprStmt) SourceLine() int   { return s.Line }

// Expr is the closed set of expression variants. Every Expr carries an
// InferredType slot, written by the checker and read by the code
// generator (notably for print's overload selection).
type Expr interface {
	exprNode()
	SourceLine() int
	Type() types.Name
	SetType(types.Name)
}

// exprBase factors the InferredType bookkeeping shared by every variant.
type exprBase struct {
	InferredType types.Name
	Line         int
}

func (e *exprBase) Type() types.Name       { return e.InferredType }
func (e *exprBase) SetType(t types.Name)   { e.InferredType = t }
func (e *exprBase) SourceLine() int        { return e.Line }

type IntLiteral struct {
	exprBase
	Value int64
}

type BoolLiteral struct {
	exprBase
	Value bool
}

// StringLiteral carries the decoded byte value plus an interned label,
// assigned by the code generator's string-interning prepass.
type StringLiteral struct {
	exprBase
	Value []byte
	Label string // "" until interned
}

type VarRef struct {
	exprBase
	Name string
}

type UnaryOp struct {
	exprBase
	Op      string // "-" or "!"
	Operand Expr
}

type BinaryOp struct {
	exprBase
	Left  Expr
	Op    string
	Right Expr
}

type Call struct {
	exprBase
	Callee string
	Args   []Expr
}

func (*IntLiteral) exprNode()    {}
func (*BoolLiteral) exprNode()   {}
func (*StringLiteral) exprNode() {}
func (*VarRef) exprNode()        {}
func (*UnaryOp) exprNode()       {}
func (*BinaryOp) exprNode()      {}
func (*Call) exprNode()          {}

// Constructors set the Line slot the parser knows about; InferredType
// stays zero until the checker runs.

func NewIntLiteral(v int64, line int) *IntLiteral {
	return &IntLiteral{exprBase: exprBase{Line: line}, Value: v}
}

func NewBoolLiteral(v bool, line int) *BoolLiteral {
	return &BoolLiteral{exprBase: exprBase{Line: line}, Value: v}
}

func NewStringLiteral(v []byte, line int) *StringLiteral {
	return &StringLiteral{exprBase: exprBase{Line: line}, Value: v}
}

func NewVarRef(name string, line int) *VarRef {
	return &VarRef{exprBase: exprBase{Line: line}, Name: name}
}

func NewUnaryOp(op string, operand Expr, line int) *UnaryOp {
	return &UnaryOp{exprBase: exprBase{Line: line}, Op: op, Operand: operand}
}

func NewBinaryOp(left Expr, op string, right Expr, line int) *BinaryOp {
	return &BinaryOp{exprBase: exprBase{Line: line}, Left: left, Op: op, Right: right}
}

func NewCall(callee string, args []Expr, line int) *Call {
	return &Call{exprBase: exprBase{Line: line}, Callee: callee, Args: args}
}
