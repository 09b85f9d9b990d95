package dense

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
)

// Array is an n-dimensional numeric array with contiguous row major
// storage. Exactly one of the backing slices is non-nil, selected by the
// dtype, mirroring how tagged nodes carry one of several value fields. A
// nil or empty shape denotes a 0-d scalar with one element.
type Array struct {
	dtype DType
	shape Shape
	f64   []float64
	i64   []int64
	bits  []bool
}

// Zeros returns a zero filled array of the given dtype and shape.
func Zeros(dt DType, shape Shape) (*Array, error) {
	if err := shape.check(); err != nil {
		return nil, err
	}
	res := &Array{dtype: dt, shape: shape.Clone()}
	res.alloc(shape.Size())
	return res, nil
}

// Full returns an array of the given dtype and shape with every element
// set to v.
func Full(dt DType, shape Shape, v any) (*Array, error) {
	res, err := Zeros(dt, shape)
	if err != nil {
		return nil, err
	}
	s, err := Scalar(v)
	if err != nil {
		return nil, err
	}
	for i := 0; i < res.Size(); i++ {
		res.setFrom(i, s, 0)
	}
	return res, nil
}

// Scalar returns a 0-d array holding the given Go value.
func Scalar(v any) (*Array, error) {
	res, err := FromAny(v)
	if err != nil {
		return nil, err
	}
	if res.NDim() != 0 {
		return nil, fmt.Errorf("%w: %v is not a scalar", ErrShape, v)
	}
	return res, nil
}

// FromFloats returns a Float64 array with the given shape and data. A nil
// shape means 1-d of len(data).
func FromFloats(shape Shape, data ...float64) (*Array, error) {
	if shape == nil {
		shape = Shape{len(data)}
	}
	if err := shape.check(); err != nil {
		return nil, err
	}
	if shape.Size() != len(data) {
		return nil, fmt.Errorf("%w: %d elements do not fill %v", ErrShape, len(data), shape)
	}
	res := &Array{dtype: Float64, shape: shape.Clone(), f64: make([]float64, len(data))}
	copy(res.f64, data)
	return res, nil
}

// FromInts returns an Int64 array with the given shape and data. A nil
// shape means 1-d of len(data).
func FromInts(shape Shape, data ...int64) (*Array, error) {
	if shape == nil {
		shape = Shape{len(data)}
	}
	if err := shape.check(); err != nil {
		return nil, err
	}
	if shape.Size() != len(data) {
		return nil, fmt.Errorf("%w: %d elements do not fill %v", ErrShape, len(data), shape)
	}
	res := &Array{dtype: Int64, shape: shape.Clone(), i64: make([]int64, len(data))}
	copy(res.i64, data)
	return res, nil
}

// FromBools returns a Bool array with the given shape and data. A nil
// shape means 1-d of len(data).
func FromBools(shape Shape, data ...bool) (*Array, error) {
	if shape == nil {
		shape = Shape{len(data)}
	}
	if err := shape.check(); err != nil {
		return nil, err
	}
	if shape.Size() != len(data) {
		return nil, fmt.Errorf("%w: %d elements do not fill %v", ErrShape, len(data), shape)
	}
	res := &Array{dtype: Bool, shape: shape.Clone(), bits: make([]bool, len(data))}
	copy(res.bits, data)
	return res, nil
}

// FromAny builds an array from nested Go data: numeric and bool scalars,
// arbitrarily nested slices thereof, or an existing *Array, which is
// cloned. The dtype is inferred as the widest element type present, with
// a pure bool nest giving Bool and an all integer nest giving Int64.
// Ragged nesting and non numeric elements are rejected.
func FromAny(v any) (*Array, error) {
	if a, ok := v.(*Array); ok {
		if a == nil {
			return nil, fmt.Errorf("%w: nil array", ErrDType)
		}
		return a.Clone(), nil
	}
	shape, err := inferShape(v)
	if err != nil {
		return nil, err
	}
	flat := make([]any, 0, shape.Size())
	if flat, err = flatten(v, flat); err != nil {
		return nil, err
	}
	dt := Bool
	if len(flat) == 0 {
		dt = Float64
	}
	for _, e := range flat {
		et, err := scalarDType(e)
		if err != nil {
			return nil, err
		}
		dt = promote(dt, et)
	}
	res := &Array{dtype: dt, shape: shape}
	res.alloc(len(flat))
	for i, e := range flat {
		if err := res.setAny(i, e); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func inferShape(v any) (Shape, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, fmt.Errorf("%w: nil element", ErrDType)
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return Shape{}, nil
	}
	n := rv.Len()
	if n == 0 {
		return Shape{0}, nil
	}
	first, err := inferShape(rv.Index(0).Interface())
	if err != nil {
		return nil, err
	}
	for i := 1; i < n; i++ {
		s, err := inferShape(rv.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		if !s.Equal(first) {
			return nil, fmt.Errorf("%w: ragged nesting, %v next to %v", ErrShape, s, first)
		}
	}
	return append(Shape{n}, first...), nil
}

func flatten(v any, acc []any) ([]any, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return append(acc, v), nil
	}
	var err error
	for i := 0; i < rv.Len(); i++ {
		if acc, err = flatten(rv.Index(i).Interface(), acc); err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func scalarDType(v any) (DType, error) {
	switch t := v.(type) {
	case bool:
		return Bool, nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return Int64, nil
	case float32, float64:
		return Float64, nil
	case json.Number:
		if _, err := t.Int64(); err == nil {
			return Int64, nil
		}
		return Float64, nil
	default:
		return 0, fmt.Errorf("%w: element %T is not numeric", ErrDType, v)
	}
}

func (a *Array) alloc(n int) {
	switch a.dtype {
	case Float64:
		a.f64 = make([]float64, n)
	case Int64:
		a.i64 = make([]int64, n)
	case Bool:
		a.bits = make([]bool, n)
	}
}

// DType returns the element type.
func (a *Array) DType() DType {
	return a.dtype
}

// Shape returns a copy of the array shape.
func (a *Array) Shape() Shape {
	return a.shape.Clone()
}

// NDim returns the number of dimensions, 0 for scalars.
func (a *Array) NDim() int {
	return len(a.shape)
}

// Size returns the total number of elements.
func (a *Array) Size() int {
	return a.shape.Size()
}

// Clone returns a deep copy of a.
func (a *Array) Clone() *Array {
	res := &Array{dtype: a.dtype, shape: a.shape.Clone()}
	switch a.dtype {
	case Float64:
		res.f64 = append([]float64(nil), a.f64...)
	case Int64:
		res.i64 = append([]int64(nil), a.i64...)
	case Bool:
		res.bits = append([]bool(nil), a.bits...)
	}
	return res
}

// AsType returns a copy of a cast to the given dtype. Float to int
// conversion truncates, bool reads as 0 or 1, and nonzero numbers read
// as true.
func (a *Array) AsType(dt DType) *Array {
	if dt == a.dtype {
		return a.Clone()
	}
	res := &Array{dtype: dt, shape: a.shape.Clone()}
	res.alloc(a.Size())
	for i := 0; i < a.Size(); i++ {
		res.setFrom(i, a, i)
	}
	return res
}

func (a *Array) getF(i int) float64 {
	switch a.dtype {
	case Float64:
		return a.f64[i]
	case Int64:
		return float64(a.i64[i])
	default:
		if a.bits[i] {
			return 1
		}
		return 0
	}
}

func (a *Array) getI(i int) int64 {
	switch a.dtype {
	case Float64:
		return int64(a.f64[i])
	case Int64:
		return a.i64[i]
	default:
		if a.bits[i] {
			return 1
		}
		return 0
	}
}

func (a *Array) getB(i int) bool {
	switch a.dtype {
	case Float64:
		return a.f64[i] != 0
	case Int64:
		return a.i64[i] != 0
	default:
		return a.bits[i]
	}
}

// setFrom writes src element j into a element i, casting to a's dtype.
func (a *Array) setFrom(i int, src *Array, j int) {
	switch a.dtype {
	case Float64:
		a.f64[i] = src.getF(j)
	case Int64:
		a.i64[i] = src.getI(j)
	case Bool:
		a.bits[i] = src.getB(j)
	}
}

func (a *Array) setAny(i int, v any) error {
	switch t := v.(type) {
	case bool:
		a.setScalar(i, 0, t)
	case int:
		a.setScalar(i, float64(t), t != 0)
		if a.dtype == Int64 {
			a.i64[i] = int64(t)
		}
	case int8:
		return a.setAny(i, int(t))
	case int16:
		return a.setAny(i, int(t))
	case int32:
		return a.setAny(i, int(t))
	case int64:
		a.setScalar(i, float64(t), t != 0)
		if a.dtype == Int64 {
			a.i64[i] = t
		}
	case uint:
		return a.setAny(i, int64(t))
	case uint8:
		return a.setAny(i, int(t))
	case uint16:
		return a.setAny(i, int(t))
	case uint32:
		return a.setAny(i, int64(t))
	case uint64:
		return a.setAny(i, int64(t))
	case float32:
		return a.setAny(i, float64(t))
	case float64:
		a.setScalar(i, t, t != 0)
		if a.dtype == Int64 {
			a.i64[i] = int64(t)
		}
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return a.setAny(i, n)
		}
		f, err := t.Float64()
		if err != nil {
			return fmt.Errorf("%w: bad number %q", ErrDType, t.String())
		}
		return a.setAny(i, f)
	default:
		return fmt.Errorf("%w: element %T is not numeric", ErrDType, v)
	}
	return nil
}

func (a *Array) setScalar(i int, f float64, b bool) {
	switch a.dtype {
	case Float64:
		a.f64[i] = f
	case Bool:
		a.bits[i] = b
	}
}

func (a *Array) offset(coords []int) (int, error) {
	if len(coords) != len(a.shape) {
		return 0, fmt.Errorf("%w: %d coordinates for %d dimensions", ErrIndex, len(coords), len(a.shape))
	}
	st := strides(a.shape, RowMajor)
	off := 0
	for i, c := range coords {
		c, err := normIndex(c, a.shape[i])
		if err != nil {
			return 0, err
		}
		off += c * st[i]
	}
	return off, nil
}

// normIndex resolves a possibly negative index against dimension n.
func normIndex(i, n int) (int, error) {
	j := i
	if j < 0 {
		j += n
	}
	if j < 0 || j >= n {
		return 0, fmt.Errorf("%w: %d out of range for dimension %d", ErrIndex, i, n)
	}
	return j, nil
}

// At returns the element at the given coordinates as a Go value.
func (a *Array) At(coords ...int) (any, error) {
	off, err := a.offset(coords)
	if err != nil {
		return nil, err
	}
	return a.item(off), nil
}

// SetAt assigns the element at the given coordinates, casting v to the
// array dtype.
func (a *Array) SetAt(v any, coords ...int) error {
	off, err := a.offset(coords)
	if err != nil {
		return err
	}
	s, err := Scalar(v)
	if err != nil {
		return err
	}
	a.setFrom(off, s, 0)
	return nil
}

func (a *Array) item(i int) any {
	switch a.dtype {
	case Float64:
		return a.f64[i]
	case Int64:
		return a.i64[i]
	default:
		return a.bits[i]
	}
}

// Item returns the sole element of a size 1 array as a Go value.
func (a *Array) Item() (any, error) {
	if a.Size() != 1 {
		return nil, fmt.Errorf("%w: %v has %d elements, want 1", ErrShape, a.shape, a.Size())
	}
	return a.item(0), nil
}

// Float returns the sole element of a size 1 array as a float64.
func (a *Array) Float() (float64, error) {
	if a.Size() != 1 {
		return 0, fmt.Errorf("%w: %v has %d elements, want 1", ErrShape, a.shape, a.Size())
	}
	return a.getF(0), nil
}

// ToList returns the array as nested Go slices of its element type, or a
// bare scalar for 0-d arrays.
func (a *Array) ToList() any {
	return a.toList(0, strides(a.shape, RowMajor), 0)
}

func (a *Array) toList(dim int, st []int, off int) any {
	if dim == len(a.shape) {
		return a.item(off)
	}
	res := make([]any, a.shape[dim])
	for i := range res {
		res[i] = a.toList(dim+1, st, off+i*st[dim])
	}
	return res
}

// Floats returns a flat row-major copy of the elements as float64.
func (a *Array) Floats() []float64 {
	res := make([]float64, a.Size())
	for i := range res {
		res[i] = a.getF(i)
	}
	return res
}

// Ints returns a flat row-major copy of the elements as int64,
// truncating floats.
func (a *Array) Ints() []int64 {
	res := make([]int64, a.Size())
	for i := range res {
		res[i] = a.getI(i)
	}
	return res
}

// Bools returns a flat row-major copy of the elements as bool, true for
// any nonzero value.
func (a *Array) Bools() []bool {
	res := make([]bool, a.Size())
	for i := range res {
		res[i] = a.getB(i)
	}
	return res
}

// Equal reports whether a and o agree in dtype, shape and every element.
func (a *Array) Equal(o *Array) bool {
	if a == nil || o == nil {
		return a == o
	}
	if a.dtype != o.dtype || !a.shape.Equal(o.shape) {
		return false
	}
	for i := 0; i < a.Size(); i++ {
		if a.item(i) != o.item(i) {
			return false
		}
	}
	return true
}

// Compare defines a total order over arrays: by dtype, then number of
// dimensions, then shape, then element values in row-major order. Nil
// orders before any array.
func (a *Array) Compare(o *Array) int {
	switch {
	case a == nil && o == nil:
		return 0
	case a == nil:
		return -1
	case o == nil:
		return 1
	}
	if d := int(a.dtype) - int(o.dtype); d != 0 {
		return d
	}
	if d := len(a.shape) - len(o.shape); d != 0 {
		return d
	}
	for i := range a.shape {
		if d := a.shape[i] - o.shape[i]; d != 0 {
			return d
		}
	}
	for i := 0; i < a.Size(); i++ {
		switch a.dtype {
		case Int64:
			if x, y := a.i64[i], o.i64[i]; x != y {
				if x < y {
					return -1
				}
				return 1
			}
		case Bool:
			if x, y := a.bits[i], o.bits[i]; x != y {
				if !x {
					return -1
				}
				return 1
			}
		default:
			if x, y := a.f64[i], o.f64[i]; x != y {
				if x < y {
					return -1
				}
				return 1
			}
		}
	}
	return 0
}

// AllClose reports whether a and o have equal shapes and elementwise
// absolute difference within tol, comparing all dtypes as floats.
func (a *Array) AllClose(o *Array, tol float64) bool {
	if a == nil || o == nil {
		return a == o
	}
	if !a.shape.Equal(o.shape) {
		return false
	}
	for i := 0; i < a.Size(); i++ {
		if math.Abs(a.getF(i)-o.getF(i)) > tol {
			return false
		}
	}
	return true
}

func (a *Array) String() string {
	return fmt.Sprintf("%v", a.ToList())
}
