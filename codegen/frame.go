package codegen

import "github.com/xyproto/novac/ast"

// frame maps a bound name to its positive byte offset from rbp, plus
// the 16-byte-aligned total size to reserve with sub rsp.
type frame struct {
	offsets map[string]int
	size    int
}

// layoutFrame collects parameter and local names in the order
// "parameters, then Let-introductions in source order depth-first
// through blocks", skipping a name already seen so that two `let x` in
// disjoint branches share one slot. Blocks get no slots of their own.
func layoutFrame(fn *ast.FunctionDef) *frame {
	var names []string
	for _, p := range fn.Params {
		names = append(names, p.Name)
	}
	names = append(names, collectLocals(fn.Body)...)

	offsets := make(map[string]int, len(names))
	offset := 0
	for _, name := range names {
		if _, seen := offsets[name]; seen {
			continue
		}
		offset += 8
		offsets[name] = offset
	}
	size := ((offset + 15) / 16) * 16
	return &frame{offsets: offsets, size: size}
}

func collectLocals(block *ast.Block) []string {
	var names []string
	for _, stmt := range block.Statements {
		switch s := stmt.(type) {
		case *ast.LetStmt:
			names = append(names, s.Name)
		case *ast.IfStmt:
			names = append(names, collectLocals(s.Then)...)
			if s.Else != nil {
				names = append(names, collectLocals(s.Else)...)
			}
		case *ast.WhileStmt:
			names = append(names, collectLocals(s.Body)...)
		}
	}
	return names
}
