// Package check implements Nova's two-phase type checker: collect every
// function signature first so forward and mutually recursive calls
// resolve, then check each body against its signature.
package check

import (
	"github.com/xyproto/novac/ast"
	"github.com/xyproto/novac/compilerr"
	"github.com/xyproto/novac/types"
)

// scope maps a bound name to its type within one branch. Nova blocks do
// not introduce their own scope; If/While bodies check against a copy
// of the parent scope that is discarded on branch exit.
type scope map[string]types.Name

func (s scope) copy() scope {
	c := make(scope, len(s))
	for k, v := range s {
		c[k] = v
	}
	return c
}

// Checker annotates a Program's expressions in place and validates it
// against the signature table it builds from the top level.
type Checker struct {
	prog  *ast.Program
	funcs map[string]types.Sig
}

func New(prog *ast.Program) *Checker {
	return &Checker{prog: prog, funcs: make(map[string]types.Sig)}
}

// Check runs signature collection then per-function body checking.
// Every expression in prog has its inferred type set on success.
func Check(prog *ast.Program) error {
	return New(prog).Check()
}

func (c *Checker) Check() error {
	if err := c.collectFunctions(); err != nil {
		return err
	}
	for _, fn := range c.prog.Functions {
		if err := c.checkFunction(fn); err != nil {
			return err
		}
	}
	return nil
}

func (c *Checker) collectFunctions() error {
	for _, fn := range c.prog.Functions {
		ret := fn.ReturnType
		if ret == "" {
			ret = string(types.Void)
		}
		params := make([]types.Name, 0, len(fn.Params))
		for _, p := range fn.Params {
			if p.TypeName == "" {
				return compilerr.NewTypeError(p.Line, "parameter %q in %s must have a type", p.Name, fn.Name)
			}
			params = append(params, types.Normalize(p.TypeName))
		}
		if _, dup := c.funcs[fn.Name]; dup {
			return compilerr.NewTypeError(fn.Line, "duplicate function definition %q", fn.Name)
		}
		c.funcs[fn.Name] = types.Sig{Params: params, Ret: types.Normalize(ret)}
	}
	return nil
}

func (c *Checker) checkFunction(fn *ast.FunctionDef) error {
	sc := make(scope, len(fn.Params))
	seen := make(map[string]bool, len(fn.Params))
	for _, p := range fn.Params {
		if seen[p.Name] {
			return compilerr.NewTypeError(p.Line, "duplicate parameter %q in %s", p.Name, fn.Name)
		}
		seen[p.Name] = true
		sc[p.Name] = types.Normalize(p.TypeName)
	}
	retType := fn.ReturnType
	if retType == "" {
		retType = string(types.Void)
	}
	return c.checkBlock(fn.Body, sc, types.Normalize(retType))
}

func (c *Checker) checkBlock(block *ast.Block, sc scope, retType types.Name) error {
	for _, stmt := range block.Statements {
		if err := c.checkStmt(stmt, sc, retType); err != nil {
			return err
		}
	}
	return nil
}

func (c *Checker) checkStmt(stmt ast.Stmt, sc scope, retType types.Name) error {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		exprType, err := c.checkExpr(s.Expr, sc)
		if err != nil {
			return err
		}
		if s.TypeName != "" {
			declared := types.Normalize(s.TypeName)
			if declared != exprType {
				return compilerr.NewTypeError(s.Line, "type mismatch in let %s: %s vs %s", s.Name, declared, exprType)
			}
			sc[s.Name] = declared
		} else {
			sc[s.Name] = exprType
		}
		return nil

	case *ast.AssignStmt:
		bound, ok := sc[s.Name]
		if !ok {
			return compilerr.NewTypeError(s.Line, "unknown variable %s", s.Name)
		}
		exprType, err := c.checkExpr(s.Expr, sc)
		if err != nil {
			return err
		}
		if bound != exprType {
			return compilerr.NewTypeError(s.Line, "type mismatch in assignment to %s", s.Name)
		}
		return nil

	case *ast.IfStmt:
		condType, err := c.checkExpr(s.Cond, sc)
		if err != nil {
			return err
		}
		if condType != types.Bool {
			return compilerr.NewTypeError(s.Line, "if condition must be bool")
		}
		if err := c.checkBlock(s.Then, sc.copy(), retType); err != nil {
			return err
		}
		if s.Else != nil {
			if err := c.checkBlock(s.Else, sc.copy(), retType); err != nil {
				return err
			}
		}
		return nil

	case *ast.WhileStmt:
		condType, err := c.checkExpr(s.Cond, sc)
		if err != nil {
			return err
		}
		if condType != types.Bool {
			return compilerr.NewTypeError(s.Line, "while condition must be bool")
		}
		return c.checkBlock(s.Body, sc.copy(), retType)

	case *ast.ReturnStmt:
		if retType == types.Void {
			if s.Expr != nil {
				return compilerr.NewTypeError(s.Line, "void function cannot return a value")
			}
			return nil
		}
		if s.Expr == nil {
			return compilerr.NewTypeError(s.Line, "non-void function must return a value")
		}
		exprType, err := c.checkExpr(s.Expr, sc)
		if err != nil {
			return err
		}
		if exprType != retType {
			return compilerr.NewTypeError(s.Line, "return type mismatch: expected %s, got %s", retType, exprType)
		}
		return nil

	case *ast.ExprStmt:
		_, err := c.checkExpr(s.Expr, sc)
		return err
	}
	return compilerr.NewTypeError(stmt.SourceLine(), "unhandled statement")
}

func (c *Checker) checkExpr(expr ast.Expr, sc scope) (types.Name, error) {
	switch e := expr.(type) {
	case *ast.IntLiteral:
		e.SetType(types.Int)
		return types.Int, nil

	case *ast.BoolLiteral:
		e.SetType(types.Bool)
		return types.Bool, nil

	case *ast.StringLiteral:
		e.SetType(types.String)
		return types.String, nil

	case *ast.VarRef:
		t, ok := sc[e.Name]
		if !ok {
			return "", compilerr.NewTypeError(e.Line, "unknown variable %s", e.Name)
		}
		e.SetType(t)
		return t, nil

	case *ast.UnaryOp:
		inner, err := c.checkExpr(e.Operand, sc)
		if err != nil {
			return "", err
		}
		switch e.Op {
		case "-":
			if inner != types.Int {
				return "", compilerr.NewTypeError(e.Line, "unary - expects int")
			}
			e.SetType(types.Int)
			return types.Int, nil
		case "!":
			if inner != types.Bool {
				return "", compilerr.NewTypeError(e.Line, "unary ! expects bool")
			}
			e.SetType(types.Bool)
			return types.Bool, nil
		}
		return "", compilerr.NewTypeError(e.Line, "unknown unary operator %s", e.Op)

	case *ast.BinaryOp:
		left, err := c.checkExpr(e.Left, sc)
		if err != nil {
			return "", err
		}
		right, err := c.checkExpr(e.Right, sc)
		if err != nil {
			return "", err
		}
		switch e.Op {
		case "+", "-", "*", "/":
			if left != types.Int || right != types.Int {
				return "", compilerr.NewTypeError(e.Line, "arithmetic expects ints")
			}
			e.SetType(types.Int)
			return types.Int, nil
		case "<", ">", "<=", ">=":
			if left != types.Int || right != types.Int {
				return "", compilerr.NewTypeError(e.Line, "comparison expects ints")
			}
			e.SetType(types.Bool)
			return types.Bool, nil
		case "==", "!=":
			if left != right {
				return "", compilerr.NewTypeError(e.Line, "equality operands must match")
			}
			e.SetType(types.Bool)
			return types.Bool, nil
		case "&&", "||":
			if left != types.Bool || right != types.Bool {
				return "", compilerr.NewTypeError(e.Line, "logical operators expect bool")
			}
			e.SetType(types.Bool)
			return types.Bool, nil
		}
		return "", compilerr.NewTypeError(e.Line, "unknown binary operator %s", e.Op)

	case *ast.Call:
		argTypes := make([]types.Name, len(e.Args))
		for i, argExpr := range e.Args {
			got, err := c.checkExpr(argExpr, sc)
			if err != nil {
				return "", err
			}
			argTypes[i] = got
		}
		sig, err := c.resolveFunc(e.Callee, argTypes, e.Line)
		if err != nil {
			return "", err
		}
		for i, got := range argTypes {
			if got != sig.Params[i] {
				return "", compilerr.NewTypeError(e.Line, "argument type mismatch in call to %s", e.Callee)
			}
		}
		e.SetType(sig.Ret)
		return sig.Ret, nil
	}
	return "", compilerr.NewTypeError(expr.SourceLine(), "unhandled expression")
}

func (c *Checker) resolveFunc(name string, argTypes []types.Name, line int) (types.Sig, error) {
	argc := len(argTypes)
	if sigs, ok := types.Builtins[name]; ok {
		var byArity *types.Sig
		for i, sig := range sigs {
			if len(sig.Params) != argc {
				continue
			}
			match := true
			for j, p := range sig.Params {
				match = match && p == argTypes[j]
			}
			if match {
				return sig, nil
			}
			if byArity == nil {
				byArity = &sigs[i]
			}
		}
		if byArity != nil {
			return *byArity, nil
		}
	}
	if sig, ok := c.funcs[name]; ok {
		if len(sig.Params) != argc {
			return types.Sig{}, compilerr.NewTypeError(line, "arity mismatch for %s", name)
		}
		return sig, nil
	}
	return types.Sig{}, compilerr.NewTypeError(line, "unknown function %s", name)
}
