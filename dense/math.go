package dense

import (
	"fmt"
	"math"
)

// elementwise2 applies a binary kernel over the broadcast of a and b,
// producing the given output dtype. Integer kernels run when the output
// is Int64, float kernels otherwise.
func elementwise2(a, b *Array, out DType, fi func(x, y int64) int64, ff func(x, y float64) float64) (*Array, error) {
	sh, err := broadcastShapes(a.shape, b.shape)
	if err != nil {
		return nil, err
	}
	res := &Array{dtype: out, shape: sh}
	n := sh.Size()
	res.alloc(n)
	as := broadcastStrides(a.shape, sh)
	bs := broadcastStrides(b.shape, sh)
	coords := make([]int, len(sh))
	for r := 0; r < n; r++ {
		ai, bi := dot(coords, as), dot(coords, bs)
		switch out {
		case Int64:
			res.i64[r] = fi(a.getI(ai), b.getI(bi))
		default:
			res.f64[r] = ff(a.getF(ai), b.getF(bi))
		}
		incCoords(coords, sh)
	}
	return res, nil
}

// compare2 applies a comparison over the broadcast of a and b, producing
// a Bool array. Integer comparison is used unless either side is float.
func compare2(a, b *Array, fi func(x, y int64) bool, ff func(x, y float64) bool) (*Array, error) {
	sh, err := broadcastShapes(a.shape, b.shape)
	if err != nil {
		return nil, err
	}
	res := &Array{dtype: Bool, shape: sh}
	n := sh.Size()
	res.alloc(n)
	as := broadcastStrides(a.shape, sh)
	bs := broadcastStrides(b.shape, sh)
	asInt := promote(a.dtype, b.dtype) != Float64
	coords := make([]int, len(sh))
	for r := 0; r < n; r++ {
		ai, bi := dot(coords, as), dot(coords, bs)
		if asInt {
			res.bits[r] = fi(a.getI(ai), b.getI(bi))
		} else {
			res.bits[r] = ff(a.getF(ai), b.getF(bi))
		}
		incCoords(coords, sh)
	}
	return res, nil
}

// logical2 applies a boolean kernel over the broadcast of a and b, with
// nonzero numbers reading as true.
func logical2(a, b *Array, fb func(x, y bool) bool) (*Array, error) {
	sh, err := broadcastShapes(a.shape, b.shape)
	if err != nil {
		return nil, err
	}
	res := &Array{dtype: Bool, shape: sh}
	n := sh.Size()
	res.alloc(n)
	as := broadcastStrides(a.shape, sh)
	bs := broadcastStrides(b.shape, sh)
	coords := make([]int, len(sh))
	for r := 0; r < n; r++ {
		res.bits[r] = fb(a.getB(dot(coords, as)), b.getB(dot(coords, bs)))
		incCoords(coords, sh)
	}
	return res, nil
}

// elementwise1 applies a unary kernel to every element of a.
func elementwise1(a *Array, out DType, fi func(int64) int64, ff func(float64) float64) *Array {
	res := &Array{dtype: out, shape: a.shape.Clone()}
	n := a.Size()
	res.alloc(n)
	for i := 0; i < n; i++ {
		switch out {
		case Int64:
			res.i64[i] = fi(a.getI(i))
		default:
			res.f64[i] = ff(a.getF(i))
		}
	}
	return res
}

// Add returns the elementwise sum of a and b under broadcasting.
func Add(a, b *Array) (*Array, error) {
	return elementwise2(a, b, promoteArith(a.dtype, b.dtype),
		func(x, y int64) int64 { return x + y },
		func(x, y float64) float64 { return x + y })
}

// Sub returns the elementwise difference of a and b under broadcasting.
func Sub(a, b *Array) (*Array, error) {
	return elementwise2(a, b, promoteArith(a.dtype, b.dtype),
		func(x, y int64) int64 { return x - y },
		func(x, y float64) float64 { return x - y })
}

// Mul returns the elementwise product of a and b under broadcasting.
func Mul(a, b *Array) (*Array, error) {
	return elementwise2(a, b, promoteArith(a.dtype, b.dtype),
		func(x, y int64) int64 { return x * y },
		func(x, y float64) float64 { return x * y })
}

// Div returns the elementwise quotient of a and b under broadcasting.
// The result is always Float64, with IEEE infinities and NaN on zero
// divisors.
func Div(a, b *Array) (*Array, error) {
	return elementwise2(a, b, Float64, nil,
		func(x, y float64) float64 { return x / y })
}

// Pow returns a raised elementwise to the powers in b under
// broadcasting. Integer bases with negative integer exponents are
// rejected.
func Pow(a, b *Array) (*Array, error) {
	out := promoteArith(a.dtype, b.dtype)
	if out == Int64 {
		for i := 0; i < b.Size(); i++ {
			if b.getI(i) < 0 {
				return nil, fmt.Errorf("%w: integer raised to negative power %d", ErrDType, b.getI(i))
			}
		}
	}
	return elementwise2(a, b, out, ipow, math.Pow)
}

func ipow(x, y int64) int64 {
	var res int64 = 1
	for y > 0 {
		if y&1 == 1 {
			res *= x
		}
		x *= x
		y >>= 1
	}
	return res
}

// Mod returns the elementwise remainder of a and b under broadcasting,
// with the sign following the divisor. Integer remainder by zero is 0
// and float remainder by zero is NaN.
func Mod(a, b *Array) (*Array, error) {
	return elementwise2(a, b, promoteArith(a.dtype, b.dtype), imod, fmod)
}

func imod(x, y int64) int64 {
	if y == 0 {
		return 0
	}
	r := x % y
	if r != 0 && (r < 0) != (y < 0) {
		r += y
	}
	return r
}

func fmod(x, y float64) float64 {
	r := math.Mod(x, y)
	if r != 0 && (r < 0) != (y < 0) {
		r += y
	}
	return r
}

// Minimum returns the elementwise minimum of a and b under broadcasting,
// propagating NaN.
func Minimum(a, b *Array) (*Array, error) {
	return elementwise2(a, b, promoteArith(a.dtype, b.dtype),
		func(x, y int64) int64 {
			if x < y {
				return x
			}
			return y
		},
		math.Min)
}

// Maximum returns the elementwise maximum of a and b under broadcasting,
// propagating NaN.
func Maximum(a, b *Array) (*Array, error) {
	return elementwise2(a, b, promoteArith(a.dtype, b.dtype),
		func(x, y int64) int64 {
			if x > y {
				return x
			}
			return y
		},
		math.Max)
}

// Neg returns the elementwise negation of a, widening Bool to Int64.
func Neg(a *Array) *Array {
	return elementwise1(a, promoteArith(a.dtype, a.dtype),
		func(x int64) int64 { return -x },
		func(x float64) float64 { return -x })
}

// Abs returns the elementwise absolute value of a, widening Bool to
// Int64.
func Abs(a *Array) *Array {
	return elementwise1(a, promoteArith(a.dtype, a.dtype),
		func(x int64) int64 {
			if x < 0 {
				return -x
			}
			return x
		},
		math.Abs)
}

// Sqrt returns the elementwise square root of a as Float64.
func Sqrt(a *Array) *Array {
	return elementwise1(a, Float64, nil, math.Sqrt)
}

// Exp returns the elementwise exponential of a as Float64.
func Exp(a *Array) *Array {
	return elementwise1(a, Float64, nil, math.Exp)
}

// Log returns the elementwise natural logarithm of a as Float64.
func Log(a *Array) *Array {
	return elementwise1(a, Float64, nil, math.Log)
}

// Sin returns the elementwise sine of a as Float64.
func Sin(a *Array) *Array {
	return elementwise1(a, Float64, nil, math.Sin)
}

// Cos returns the elementwise cosine of a as Float64.
func Cos(a *Array) *Array {
	return elementwise1(a, Float64, nil, math.Cos)
}

// Tanh returns the elementwise hyperbolic tangent of a as Float64.
func Tanh(a *Array) *Array {
	return elementwise1(a, Float64, nil, math.Tanh)
}

// Eq returns the elementwise equality of a and b as a Bool array.
func Eq(a, b *Array) (*Array, error) {
	return compare2(a, b,
		func(x, y int64) bool { return x == y },
		func(x, y float64) bool { return x == y })
}

// Ne returns the elementwise inequality of a and b as a Bool array.
func Ne(a, b *Array) (*Array, error) {
	return compare2(a, b,
		func(x, y int64) bool { return x != y },
		func(x, y float64) bool { return x != y })
}

// Lt returns the elementwise less than comparison of a and b.
func Lt(a, b *Array) (*Array, error) {
	return compare2(a, b,
		func(x, y int64) bool { return x < y },
		func(x, y float64) bool { return x < y })
}

// Le returns the elementwise less or equal comparison of a and b.
func Le(a, b *Array) (*Array, error) {
	return compare2(a, b,
		func(x, y int64) bool { return x <= y },
		func(x, y float64) bool { return x <= y })
}

// Gt returns the elementwise greater than comparison of a and b.
func Gt(a, b *Array) (*Array, error) {
	return compare2(a, b,
		func(x, y int64) bool { return x > y },
		func(x, y float64) bool { return x > y })
}

// Ge returns the elementwise greater or equal comparison of a and b.
func Ge(a, b *Array) (*Array, error) {
	return compare2(a, b,
		func(x, y int64) bool { return x >= y },
		func(x, y float64) bool { return x >= y })
}

// And returns the elementwise logical conjunction of a and b.
func And(a, b *Array) (*Array, error) {
	return logical2(a, b, func(x, y bool) bool { return x && y })
}

// Or returns the elementwise logical disjunction of a and b.
func Or(a, b *Array) (*Array, error) {
	return logical2(a, b, func(x, y bool) bool { return x || y })
}

// Xor returns the elementwise logical exclusive or of a and b.
func Xor(a, b *Array) (*Array, error) {
	return logical2(a, b, func(x, y bool) bool { return x != y })
}

// Not returns the elementwise logical negation of a.
func Not(a *Array) *Array {
	res := &Array{dtype: Bool, shape: a.shape.Clone()}
	res.alloc(a.Size())
	for i := range res.bits {
		res.bits[i] = !a.getB(i)
	}
	return res
}
