package compiler

import "juno/internal/ast"

// foldComptime evaluates expr at compile time if it is a pure arithmetic
// subtree over numeric literals, returning the folded value. It does not
// recurse through identifiers referencing other comptime bindings.
func foldComptime(expr ast.Expr) (float64, bool) {
	switch e := expr.(type) {
	case *ast.NumberLit:
		return e.Value, true
	case *ast.BinaryExpr:
		lhs, ok := foldComptime(e.LHS)
		if !ok {
			return 0, false
		}
		rhs, ok := foldComptime(e.RHS)
		if !ok {
			return 0, false
		}
		switch e.Op {
		case ast.Add:
			return lhs + rhs, true
		case ast.Sub:
			return lhs - rhs, true
		case ast.Mul:
			return lhs * rhs, true
		case ast.Div:
			if rhs == 0 {
				return 0, false
			}
			return lhs / rhs, true
		default:
			// Comparisons are not folded: they do not appear as pure
			// arithmetic subtrees, and falling back to normal lowering is
			// always correct.
			return 0, false
		}
	default:
		return 0, false
	}
}
