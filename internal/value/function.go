package value

import "github.com/flowbylang/flowby/internal/ast"

// Function is a callable value: a named user function or an anonymous
// lambda, together with the parameter names and body the interpreter needs
// to invoke it, and the closure environment captured when it was created.
//
// Closure is stored as interface{} rather than a concrete environment type
// to avoid a value<->interp import cycle: the interp package is the only
// one that ever type-asserts it back to its own scope-chain snapshot type.
type Function struct {
	Name     string
	Params   []string
	Body     []ast.Statement // nil for a lambda; see BodyExpr
	BodyExpr ast.Expression  // non-nil for a lambda (single-expression body)
	Closure  interface{}
	Line     int

	// Native, when set, is a host-implemented free function (len, str,
	// range, enumerate, zip, ...) called directly instead of executing
	// Body/BodyExpr. Params/Body/Closure are unused for a native function.
	Native func(args []Value) (Value, error)
}
