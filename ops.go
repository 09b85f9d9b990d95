package grove

import (
	"fmt"

	"github.com/grovekit/grove/apply"
	"github.com/grovekit/grove/dense"
	"github.com/grovekit/grove/tree"
)

// opTree dispatches a named operation and normalizes the result to a
// tree, wrapping a bare array result in a leaf.
func opTree(opName string, args []any, kw map[string]any) (*tree.Node, error) {
	res, err := apply.OpKW(opName, args, kw)
	if err != nil {
		return nil, err
	}
	return asTree(res)
}

func asTree(v any) (*tree.Node, error) {
	switch x := v.(type) {
	case *tree.Node:
		return x, nil
	case *dense.Array:
		return tree.Leaf(x), nil
	default:
		a, err := dense.FromAny(v)
		if err != nil {
			return nil, fmt.Errorf("%w: cannot treat a %T as a tree", tree.ErrType, v)
		}
		return tree.Leaf(a), nil
	}
}

// Arithmetic over trees, arrays and scalars in any mix. Tree operands
// must agree in keying mode, with every operand's keys a subset of the
// largest operand's.

func Add(a, b any) (*tree.Node, error)     { return opTree("add", []any{a, b}, nil) }
func Sub(a, b any) (*tree.Node, error)     { return opTree("sub", []any{a, b}, nil) }
func Mul(a, b any) (*tree.Node, error)     { return opTree("mul", []any{a, b}, nil) }
func Div(a, b any) (*tree.Node, error)     { return opTree("div", []any{a, b}, nil) }
func Pow(a, b any) (*tree.Node, error)     { return opTree("pow", []any{a, b}, nil) }
func Mod(a, b any) (*tree.Node, error)     { return opTree("mod", []any{a, b}, nil) }
func Minimum(a, b any) (*tree.Node, error) { return opTree("minimum", []any{a, b}, nil) }
func Maximum(a, b any) (*tree.Node, error) { return opTree("maximum", []any{a, b}, nil) }

func Neg(a any) (*tree.Node, error)  { return opTree("neg", []any{a}, nil) }
func Abs(a any) (*tree.Node, error)  { return opTree("abs", []any{a}, nil) }
func Sqrt(a any) (*tree.Node, error) { return opTree("sqrt", []any{a}, nil) }
func Exp(a any) (*tree.Node, error)  { return opTree("exp", []any{a}, nil) }
func Log(a any) (*tree.Node, error)  { return opTree("log", []any{a}, nil) }

// Comparisons yield boolean leaves of the broadcast shape.

func Eq(a, b any) (*tree.Node, error) { return opTree("eq", []any{a, b}, nil) }
func Ne(a, b any) (*tree.Node, error) { return opTree("ne", []any{a, b}, nil) }
func Lt(a, b any) (*tree.Node, error) { return opTree("lt", []any{a, b}, nil) }
func Le(a, b any) (*tree.Node, error) { return opTree("le", []any{a, b}, nil) }
func Gt(a, b any) (*tree.Node, error) { return opTree("gt", []any{a, b}, nil) }
func Ge(a, b any) (*tree.Node, error) { return opTree("ge", []any{a, b}, nil) }

// Leaf layout operations.

func Transpose(a any, perm ...int) (*tree.Node, error) {
	if len(perm) == 0 {
		return opTree("transpose", []any{a}, nil)
	}
	return opTree("transpose", []any{a, perm}, nil)
}

func Squeeze(a any, axes ...int) (*tree.Node, error) {
	var kw map[string]any
	if len(axes) > 0 {
		kw = map[string]any{"axis": axes}
	}
	return opTree("squeeze", []any{a}, kw)
}

func Ravel(a any, order dense.Order) (*tree.Node, error) {
	return opTree("ravel", []any{a}, map[string]any{"order": order})
}

// Leaf reductions. With no axes each leaf reduces to a 0-d scalar.

func Sum(a any, axes ...int) (*tree.Node, error)  { return reduce("sum", a, axes) }
func Prod(a any, axes ...int) (*tree.Node, error) { return reduce("prod", a, axes) }
func Min(a any, axes ...int) (*tree.Node, error)  { return reduce("min", a, axes) }
func Max(a any, axes ...int) (*tree.Node, error)  { return reduce("max", a, axes) }
func Mean(a any, axes ...int) (*tree.Node, error) { return reduce("mean", a, axes) }

func reduce(opName string, a any, axes []int) (*tree.Node, error) {
	var kw map[string]any
	if len(axes) > 0 {
		kw = map[string]any{"axis": axes}
	}
	return opTree(opName, []any{a}, kw)
}
