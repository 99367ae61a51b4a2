// Package types defines Nova's primitive type alphabet and the function
// signature record the checker builds while collecting declarations.
package types

import "strings"

// Name is a resolved or opaque type name. Only the four primitives are
// meaningful to the code generator; any other identifier passes through
// unresolved until it fails an equality check.
type Name string

const (
	Int    Name = "int"
	Bool   Name = "bool"
	String Name = "string"
	Void   Name = "void"
)

// IsPrimitive reports whether n is one of the four built-in types.
func (n Name) IsPrimitive() bool {
	switch n {
	case Int, Bool, String, Void:
		return true
	default:
		return false
	}
}

// Normalize lower-cases a parsed type name. Unknown names pass through
// unchanged apart from case folding.
func Normalize(raw string) Name {
	return Name(strings.ToLower(raw))
}

// Sig is a function signature: ordered parameter types and a return type.
type Sig struct {
	Params []Name
	Ret    Name
}

// Builtins holds print's two overloads. The checker selects one by arity
// and argument type; the code generator dispatches on the argument's
// inferred type.
var Builtins = map[string][]Sig{
	"print": {
		{Params: []Name{Int}, Ret: Void},
		{Params: []Name{String}, Ret: Void},
	},
}
