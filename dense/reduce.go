package dense

import (
	"fmt"
	"math"
)

// normAxes validates reduction axes against ndim, resolving negatives.
// No axes means reduce over everything.
func normAxes(axes []int, ndim int) ([]bool, error) {
	red := make([]bool, ndim)
	if len(axes) == 0 {
		for i := range red {
			red[i] = true
		}
		return red, nil
	}
	for _, ax := range axes {
		i, err := normIndex(ax, ndim)
		if err != nil {
			return nil, err
		}
		if red[i] {
			return nil, fmt.Errorf("%w: duplicate axis %d", ErrIndex, ax)
		}
		red[i] = true
	}
	return red, nil
}

// reduce folds the reduced axes of a into out dtype accumulators seeded
// with the init values.
func (a *Array) reduce(axes []int, out DType, initI int64, initF float64, fi func(acc, v int64) int64, ff func(acc, v float64) float64) (*Array, error) {
	red, err := normAxes(axes, len(a.shape))
	if err != nil {
		return nil, err
	}
	var outShape Shape
	for i, d := range a.shape {
		if !red[i] {
			outShape = append(outShape, d)
		}
	}
	res := &Array{dtype: out, shape: outShape}
	res.alloc(outShape.Size())
	for i := 0; i < res.Size(); i++ {
		if out == Int64 {
			res.i64[i] = initI
		} else {
			res.f64[i] = initF
		}
	}
	outStrides := strides(outShape, RowMajor)
	aligned := make([]int, len(a.shape))
	oi := 0
	for i := range a.shape {
		if red[i] {
			aligned[i] = 0
		} else {
			aligned[i] = outStrides[oi]
			oi++
		}
	}
	coords := make([]int, len(a.shape))
	n := a.Size()
	for r := 0; r < n; r++ {
		o := dot(coords, aligned)
		if out == Int64 {
			res.i64[o] = fi(res.i64[o], a.getI(r))
		} else {
			res.f64[o] = ff(res.f64[o], a.getF(r))
		}
		incCoords(coords, a.shape)
	}
	return res, nil
}

// reducedCount returns the number of elements folded into each output
// cell when reducing over axes.
func (a *Array) reducedCount(axes []int) (int, error) {
	red, err := normAxes(axes, len(a.shape))
	if err != nil {
		return 0, err
	}
	n := 1
	for i, d := range a.shape {
		if red[i] {
			n *= d
		}
	}
	return n, nil
}

// Sum folds the given axes with addition, or everything into a 0-d
// scalar when no axes are given. Bool arrays sum as counts.
func (a *Array) Sum(axes ...int) (*Array, error) {
	return a.reduce(axes, promoteArith(a.dtype, a.dtype), 0, 0,
		func(acc, v int64) int64 { return acc + v },
		func(acc, v float64) float64 { return acc + v })
}

// Prod folds the given axes with multiplication, or everything into a
// 0-d scalar when no axes are given.
func (a *Array) Prod(axes ...int) (*Array, error) {
	return a.reduce(axes, promoteArith(a.dtype, a.dtype), 1, 1,
		func(acc, v int64) int64 { return acc * v },
		func(acc, v float64) float64 { return acc * v })
}

// Min folds the given axes to their smallest element. Empty reductions
// are rejected.
func (a *Array) Min(axes ...int) (*Array, error) {
	n, err := a.reducedCount(axes)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: min of an empty reduction", ErrShape)
	}
	return a.reduce(axes, promoteArith(a.dtype, a.dtype), math.MaxInt64, math.Inf(1),
		func(acc, v int64) int64 {
			if v < acc {
				return v
			}
			return acc
		},
		math.Min)
}

// Max folds the given axes to their largest element. Empty reductions
// are rejected.
func (a *Array) Max(axes ...int) (*Array, error) {
	n, err := a.reducedCount(axes)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: max of an empty reduction", ErrShape)
	}
	return a.reduce(axes, promoteArith(a.dtype, a.dtype), math.MinInt64, math.Inf(-1),
		func(acc, v int64) int64 {
			if v > acc {
				return v
			}
			return acc
		},
		math.Max)
}

// Mean folds the given axes to their Float64 average.
func (a *Array) Mean(axes ...int) (*Array, error) {
	sum, err := a.Sum(axes...)
	if err != nil {
		return nil, err
	}
	n, err := a.reducedCount(axes)
	if err != nil {
		return nil, err
	}
	count := &Array{dtype: Float64, f64: []float64{float64(n)}}
	return Div(sum, count)
}

// All reports whether every element of a is true, with nonzero numbers
// reading as true. An empty array is all true.
func (a *Array) All() bool {
	for i := 0; i < a.Size(); i++ {
		if !a.getB(i) {
			return false
		}
	}
	return true
}

// Any reports whether some element of a is true, with nonzero numbers
// reading as true. An empty array has no true element.
func (a *Array) Any() bool {
	for i := 0; i < a.Size(); i++ {
		if a.getB(i) {
			return true
		}
	}
	return false
}
