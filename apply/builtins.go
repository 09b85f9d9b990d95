package apply

import (
	"errors"
	"fmt"
	"math"

	"github.com/grovekit/grove/dense"
	"github.com/grovekit/grove/tree"
)

// ErrArgs reports a named operation called with arguments it does not
// take.
var ErrArgs = errors.New("bad arguments")

// builtins maps operation names to leaf functions over the dense
// kernels. Binary and unary kernels take their operands positionally;
// reductions and layout operations read "axis", "axes" and "order"
// from kw.
func builtins() map[string]Func {
	return map[string]Func{
		"add":       binary("add", dense.Add),
		"sub":       binary("sub", dense.Sub),
		"mul":       binary("mul", dense.Mul),
		"div":       binary("div", dense.Div),
		"pow":       binary("pow", dense.Pow),
		"mod":       binary("mod", dense.Mod),
		"minimum":   binary("minimum", dense.Minimum),
		"maximum":   binary("maximum", dense.Maximum),
		"eq":        binary("eq", dense.Eq),
		"ne":        binary("ne", dense.Ne),
		"lt":        binary("lt", dense.Lt),
		"le":        binary("le", dense.Le),
		"gt":        binary("gt", dense.Gt),
		"ge":        binary("ge", dense.Ge),
		"and":       binary("and", dense.And),
		"or":        binary("or", dense.Or),
		"xor":       binary("xor", dense.Xor),
		"neg":       unary("neg", dense.Neg),
		"abs":       unary("abs", dense.Abs),
		"sqrt":      unary("sqrt", dense.Sqrt),
		"exp":       unary("exp", dense.Exp),
		"log":       unary("log", dense.Log),
		"sin":       unary("sin", dense.Sin),
		"cos":       unary("cos", dense.Cos),
		"tanh":      unary("tanh", dense.Tanh),
		"not":       unary("not", dense.Not),
		"sum":       reduction("sum", (*dense.Array).Sum),
		"prod":      reduction("prod", (*dense.Array).Prod),
		"min":       reduction("min", (*dense.Array).Min),
		"max":       reduction("max", (*dense.Array).Max),
		"mean":      reduction("mean", (*dense.Array).Mean),
		"all":       allFunc,
		"any":       anyFunc,
		"reshape":   reshapeFunc,
		"ravel":     ravelFunc,
		"squeeze":   squeezeFunc,
		"transpose": transposeFunc,
		"concat":    concatFunc,
		"atleast1d": atLeast1DFunc,
	}
}

func binary(opName string, fn func(a, b *dense.Array) (*dense.Array, error)) Func {
	return func(args []any, kw map[string]any) (any, error) {
		if err := checkKW(opName, kw); err != nil {
			return nil, err
		}
		if err := wantArgs(opName, args, 2); err != nil {
			return nil, err
		}
		a, err := asArray(args[0])
		if err != nil {
			return nil, err
		}
		b, err := asArray(args[1])
		if err != nil {
			return nil, err
		}
		return fn(a, b)
	}
}

func unary(opName string, fn func(a *dense.Array) *dense.Array) Func {
	return func(args []any, kw map[string]any) (any, error) {
		if err := checkKW(opName, kw); err != nil {
			return nil, err
		}
		if err := wantArgs(opName, args, 1); err != nil {
			return nil, err
		}
		a, err := asArray(args[0])
		if err != nil {
			return nil, err
		}
		return fn(a), nil
	}
}

func reduction(opName string, fn func(*dense.Array, ...int) (*dense.Array, error)) Func {
	return func(args []any, kw map[string]any) (any, error) {
		if err := checkKW(opName, kw, "axis"); err != nil {
			return nil, err
		}
		if err := wantArgs(opName, args, 1); err != nil {
			return nil, err
		}
		a, err := asArray(args[0])
		if err != nil {
			return nil, err
		}
		axes, err := kwAxes(opName, kw)
		if err != nil {
			return nil, err
		}
		return fn(a, axes...)
	}
}

func allFunc(args []any, kw map[string]any) (any, error) {
	if err := checkKW("all", kw); err != nil {
		return nil, err
	}
	if err := wantArgs("all", args, 1); err != nil {
		return nil, err
	}
	a, err := asArray(args[0])
	if err != nil {
		return nil, err
	}
	return a.All(), nil
}

func anyFunc(args []any, kw map[string]any) (any, error) {
	if err := checkKW("any", kw); err != nil {
		return nil, err
	}
	if err := wantArgs("any", args, 1); err != nil {
		return nil, err
	}
	a, err := asArray(args[0])
	if err != nil {
		return nil, err
	}
	return a.Any(), nil
}

func reshapeFunc(args []any, kw map[string]any) (any, error) {
	if err := checkKW("reshape", kw, "order"); err != nil {
		return nil, err
	}
	if err := wantArgs("reshape", args, 2); err != nil {
		return nil, err
	}
	a, err := asArray(args[0])
	if err != nil {
		return nil, err
	}
	shape, err := asInts("reshape", args[1])
	if err != nil {
		return nil, err
	}
	o, err := kwOrder("reshape", kw)
	if err != nil {
		return nil, err
	}
	return a.Reshape(dense.Shape(shape), o)
}

func ravelFunc(args []any, kw map[string]any) (any, error) {
	if err := checkKW("ravel", kw, "order"); err != nil {
		return nil, err
	}
	if err := wantArgs("ravel", args, 1); err != nil {
		return nil, err
	}
	a, err := asArray(args[0])
	if err != nil {
		return nil, err
	}
	o, err := kwOrder("ravel", kw)
	if err != nil {
		return nil, err
	}
	return a.Ravel(o), nil
}

func squeezeFunc(args []any, kw map[string]any) (any, error) {
	if err := checkKW("squeeze", kw, "axis"); err != nil {
		return nil, err
	}
	if err := wantArgs("squeeze", args, 1); err != nil {
		return nil, err
	}
	a, err := asArray(args[0])
	if err != nil {
		return nil, err
	}
	axes, err := kwAxes("squeeze", kw)
	if err != nil {
		return nil, err
	}
	return a.Squeeze(axes...)
}

func transposeFunc(args []any, kw map[string]any) (any, error) {
	if err := checkKW("transpose", kw, "axes"); err != nil {
		return nil, err
	}
	if len(args) < 1 || len(args) > 2 {
		return nil, fmt.Errorf("%w: transpose takes 1 or 2 arguments, got %d", ErrArgs, len(args))
	}
	a, err := asArray(args[0])
	if err != nil {
		return nil, err
	}
	var perm []int
	if len(args) == 2 {
		perm, err = asInts("transpose", args[1])
	} else if v, ok := kw["axes"]; ok {
		perm, err = asInts("transpose", v)
	}
	if err != nil {
		return nil, err
	}
	return a.Transpose(perm...)
}

func concatFunc(args []any, kw map[string]any) (any, error) {
	if err := checkKW("concat", kw, "axis"); err != nil {
		return nil, err
	}
	axis, err := kwInt("concat", "axis", kw, 0)
	if err != nil {
		return nil, err
	}
	var arrays []*dense.Array
	add := func(v any) error {
		a, err := asArray(v)
		if err != nil {
			return err
		}
		arrays = append(arrays, a)
		return nil
	}
	for _, v := range args {
		seq, ok := v.([]any)
		if !ok {
			if err := add(v); err != nil {
				return nil, err
			}
			continue
		}
		for _, e := range seq {
			if err := add(e); err != nil {
				return nil, err
			}
		}
	}
	if len(arrays) == 0 {
		return nil, fmt.Errorf("%w: concat takes at least one array", ErrArgs)
	}
	return dense.Concat(axis, arrays...)
}

func atLeast1DFunc(args []any, kw map[string]any) (any, error) {
	if err := checkKW("atleast1d", kw); err != nil {
		return nil, err
	}
	if err := wantArgs("atleast1d", args, 1); err != nil {
		return nil, err
	}
	a, err := asArray(args[0])
	if err != nil {
		return nil, err
	}
	return a.AtLeast1D(), nil
}

// asArray coerces a projected operand to a dense array. Leaf nodes
// unwrap to their arrays, native scalars and nested numeric sequences
// convert, container nodes are rejected.
func asArray(v any) (*dense.Array, error) {
	switch x := v.(type) {
	case *dense.Array:
		return x, nil
	case *tree.Node:
		if x.Kind == tree.LeafKind {
			return x.Arr, nil
		}
		return nil, fmt.Errorf("%w: %s node where an array operand is required", tree.ErrType, x.Kind)
	}
	return dense.FromAny(v)
}

func asInt(opName string, v any) (int, error) {
	switch x := v.(type) {
	case int:
		return x, nil
	case int64:
		return int(x), nil
	case uint64:
		return int(x), nil
	case float64:
		if x != math.Trunc(x) {
			return 0, fmt.Errorf("%w: %s wants an int, got %v", ErrArgs, opName, x)
		}
		return int(x), nil
	case *dense.Array:
		if x.NDim() != 0 {
			return 0, fmt.Errorf("%w: %s wants an int, got shape %s", ErrArgs, opName, x.Shape())
		}
		return int(x.Ints()[0]), nil
	}
	return 0, fmt.Errorf("%w: %s wants an int, got %T", ErrArgs, opName, v)
}

func asInts(opName string, v any) ([]int, error) {
	switch x := v.(type) {
	case []int:
		return x, nil
	case []int64:
		res := make([]int, len(x))
		for i, n := range x {
			res[i] = int(n)
		}
		return res, nil
	case []any:
		res := make([]int, len(x))
		for i, e := range x {
			n, err := asInt(opName, e)
			if err != nil {
				return nil, err
			}
			res[i] = n
		}
		return res, nil
	case *dense.Array:
		if x.NDim() > 1 {
			return nil, fmt.Errorf("%w: %s wants a flat list of ints, got shape %s", ErrArgs, opName, x.Shape())
		}
		ns := x.AtLeast1D().Ints()
		res := make([]int, len(ns))
		for i, n := range ns {
			res[i] = int(n)
		}
		return res, nil
	}
	n, err := asInt(opName, v)
	if err != nil {
		return nil, err
	}
	return []int{n}, nil
}

func kwAxes(opName string, kw map[string]any) ([]int, error) {
	v, ok := kw["axis"]
	if !ok {
		return nil, nil
	}
	return asInts(opName, v)
}

func kwInt(opName, key string, kw map[string]any, def int) (int, error) {
	v, ok := kw[key]
	if !ok {
		return def, nil
	}
	return asInt(opName, v)
}

func kwOrder(opName string, kw map[string]any) (dense.Order, error) {
	v, ok := kw["order"]
	if !ok {
		return dense.RowMajor, nil
	}
	switch x := v.(type) {
	case dense.Order:
		return x, nil
	case string:
		switch x {
		case "C", "row":
			return dense.RowMajor, nil
		case "F", "col":
			return dense.ColMajor, nil
		}
	}
	return 0, fmt.Errorf("%w: %s order must be C or F", ErrArgs, opName)
}

func wantArgs(opName string, args []any, n int) error {
	if len(args) != n {
		return fmt.Errorf("%w: %s takes %d arguments, got %d", ErrArgs, opName, n, len(args))
	}
	return nil
}

func checkKW(opName string, kw map[string]any, allowed ...string) error {
	for k := range kw {
		found := false
		for _, a := range allowed {
			if k == a {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: %s does not take a %q argument", ErrArgs, opName, k)
		}
	}
	return nil
}
