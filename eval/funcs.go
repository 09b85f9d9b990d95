package eval

import (
	"fmt"
	"math"

	"github.com/expr-lang/expr"
)

// exprOpts declares the math helpers available inside expressions on
// top of the expr builtins. Arguments are coerced to float64 by hand
// because the element binding may carry int64 values.
func exprOpts() []expr.Option {
	opts := []expr.Option{
		expr.Function("pow", func(params ...any) (any, error) {
			x, err := toFloat(params[0])
			if err != nil {
				return nil, err
			}
			y, err := toFloat(params[1])
			if err != nil {
				return nil, err
			}
			return math.Pow(x, y), nil
		},
			new(func(float64, float64) float64)),
	}
	for name, fn := range map[string]func(float64) float64{
		"sqrt": math.Sqrt,
		"exp":  math.Exp,
		"log":  math.Log,
		"sin":  math.Sin,
		"cos":  math.Cos,
		"tanh": math.Tanh,
	} {
		opts = append(opts, expr.Function(name, func(params ...any) (any, error) {
			x, err := toFloat(params[0])
			if err != nil {
				return nil, err
			}
			return fn(x), nil
		},
			new(func(float64) float64)))
	}
	return opts
}

func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	default:
		return 0, fmt.Errorf("%w: %v (%T) is not numeric", ErrEval, v, v)
	}
}
