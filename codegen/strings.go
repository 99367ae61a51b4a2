package codegen

import (
	"fmt"

	"github.com/xyproto/novac/ast"
)

// internStrings walks the whole program once, in the deterministic
// order functions-in-source-order / statements-in-source-order /
// expressions-left-to-right, assigning each distinct string literal a
// .Lstr<n> label the first time it is seen. Identical literals collapse
// onto the same label.
func (g *Generator) internStrings(prog *ast.Program) {
	for _, fn := range prog.Functions {
		g.internBlock(fn.Body)
	}
}

func (g *Generator) internBlock(block *ast.Block) {
	for _, stmt := range block.Statements {
		switch s := stmt.(type) {
		case *ast.LetStmt:
			g.internExpr(s.Expr)
		case *ast.AssignStmt:
			g.internExpr(s.Expr)
		case *ast.ExprStmt:
			g.internExpr(s.Expr)
		case *ast.ReturnStmt:
			if s.Expr != nil {
				g.internExpr(s.Expr)
			}
		case *ast.IfStmt:
			g.internExpr(s.Cond)
			g.internBlock(s.Then)
			if s.Else != nil {
				g.internBlock(s.Else)
			}
		case *ast.WhileStmt:
			g.internExpr(s.Cond)
			g.internBlock(s.Body)
		}
	}
}

func (g *Generator) internExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.StringLiteral:
		value := string(e.Value)
		label, ok := g.stringLabels[value]
		if !ok {
			label = fmt.Sprintf(".Lstr%d", len(g.stringLabels))
			g.stringLabels[value] = label
			g.stringOrder = append(g.stringOrder, value)
		}
		e.Label = label
	case *ast.BinaryOp:
		g.internExpr(e.Left)
		g.internExpr(e.Right)
	case *ast.UnaryOp:
		g.internExpr(e.Operand)
	case *ast.Call:
		for _, a := range e.Args {
			g.internExpr(a)
		}
	}
}
