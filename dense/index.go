package dense

import "fmt"

// Sel selects along one dimension of an array. Exactly one
// interpretation applies: a point when At is set, a new length 1
// dimension when IsNewAxis is set, and otherwise a span with optional
// bounds and step. The zero Sel spans the whole dimension. Point
// selections drop their dimension from the result and negative points
// and bounds count from the end, while span bounds clamp to the
// dimension instead of failing.
type Sel struct {
	At        *int
	Lo, Hi    *int
	Step      *int
	IsNewAxis bool
}

// At selects the single position i, dropping the dimension.
func At(i int) Sel {
	return Sel{At: &i}
}

// Span selects positions lo up to but excluding hi.
func Span(lo, hi int) Sel {
	return Sel{Lo: &lo, Hi: &hi}
}

// Step selects positions lo up to but excluding hi, advancing by step.
func Step(lo, hi, step int) Sel {
	return Sel{Lo: &lo, Hi: &hi, Step: &step}
}

// From selects positions lo through the end of the dimension.
func From(lo int) Sel {
	return Sel{Lo: &lo}
}

// To selects positions from the start up to but excluding hi.
func To(hi int) Sel {
	return Sel{Hi: &hi}
}

// All selects the whole dimension.
func All() Sel {
	return Sel{}
}

// NewAxis inserts a length 1 dimension into the result.
func NewAxis() Sel {
	return Sel{IsNewAxis: true}
}

func (s Sel) String() string {
	switch {
	case s.IsNewAxis:
		return "+"
	case s.At != nil:
		return fmt.Sprintf("%d", *s.At)
	default:
		res := ""
		if s.Lo != nil {
			res = fmt.Sprintf("%d", *s.Lo)
		}
		res += ":"
		if s.Hi != nil {
			res += fmt.Sprintf("%d", *s.Hi)
		}
		if s.Step != nil {
			res += fmt.Sprintf(":%d", *s.Step)
		}
		return res
	}
}

// Index selects a rectangular region of an array, one Sel per
// dimension. Dimensions beyond the last Sel are taken whole.
type Index []Sel

// Idx builds an Index from the given selections.
func Idx(sels ...Sel) Index {
	return Index(sels)
}

func (idx Index) String() string {
	res := "["
	for i, s := range idx {
		if i > 0 {
			res += ", "
		}
		res += s.String()
	}
	return res + "]"
}

const (
	axPoint = iota
	axSpan
	axNewAxis
)

// axSel is one resolved selection: a source dimension paired with
// concrete bounds.
type axSel struct {
	kind        int
	at          int
	lo, n, step int
	dim         int
}

// resolve normalizes idx against the shape of a, returning the per axis
// selections and the result shape.
func (a *Array) resolve(idx Index) ([]axSel, Shape, error) {
	var (
		sels []axSel
		out  Shape
	)
	d := 0
	for _, s := range idx {
		if s.IsNewAxis {
			sels = append(sels, axSel{kind: axNewAxis, dim: -1})
			out = append(out, 1)
			continue
		}
		if d >= len(a.shape) {
			return nil, nil, fmt.Errorf("%w: %v has too many selections for shape %v", ErrIndex, idx, a.shape)
		}
		n := a.shape[d]
		if s.At != nil {
			at, err := normIndex(*s.At, n)
			if err != nil {
				return nil, nil, err
			}
			sels = append(sels, axSel{kind: axPoint, at: at, dim: d})
			d++
			continue
		}
		step := 1
		if s.Step != nil {
			step = *s.Step
		}
		if step <= 0 {
			return nil, nil, fmt.Errorf("%w: step %d must be positive", ErrIndex, step)
		}
		lo, hi := 0, n
		if s.Lo != nil {
			lo = clampBound(*s.Lo, n)
		}
		if s.Hi != nil {
			hi = clampBound(*s.Hi, n)
		}
		count := 0
		if hi > lo {
			count = (hi - lo + step - 1) / step
		}
		sels = append(sels, axSel{kind: axSpan, lo: lo, n: count, step: step, dim: d})
		out = append(out, count)
		d++
	}
	for ; d < len(a.shape); d++ {
		sels = append(sels, axSel{kind: axSpan, lo: 0, n: a.shape[d], step: 1, dim: d})
		out = append(out, a.shape[d])
	}
	return sels, out, nil
}

// clampBound resolves a possibly negative span bound against dimension
// n, clamping into [0, n].
func clampBound(b, n int) int {
	if b < 0 {
		b += n
	}
	if b < 0 {
		return 0
	}
	if b > n {
		return n
	}
	return b
}

func (a *Array) sourceOffset(sels []axSel, coords []int, st []int) int {
	off := 0
	ci := 0
	for _, s := range sels {
		switch s.kind {
		case axPoint:
			off += s.at * st[s.dim]
		case axSpan:
			off += (s.lo + coords[ci]*s.step) * st[s.dim]
			ci++
		case axNewAxis:
			ci++
		}
	}
	return off
}

// Slice returns a copy of the region of a selected by idx. Point
// selections reduce dimensionality, so a full Index of points yields a
// 0-d scalar.
func (a *Array) Slice(idx Index) (*Array, error) {
	sels, out, err := a.resolve(idx)
	if err != nil {
		return nil, err
	}
	res := &Array{dtype: a.dtype, shape: out}
	n := out.Size()
	res.alloc(n)
	st := strides(a.shape, RowMajor)
	coords := make([]int, len(out))
	for r := 0; r < n; r++ {
		res.setFrom(r, a, a.sourceOffset(sels, coords, st))
		incCoords(coords, out)
	}
	return res, nil
}

// SetSlice assigns v into the region of a selected by idx, broadcasting
// v to the region shape and casting to the dtype of a.
func (a *Array) SetSlice(idx Index, v *Array) error {
	sels, region, err := a.resolve(idx)
	if err != nil {
		return err
	}
	b, err := broadcastShapes(v.shape, region)
	if err != nil {
		return err
	}
	if !b.Equal(region) {
		return fmt.Errorf("%w: cannot place %v into region %v", ErrShape, v.shape, region)
	}
	vs := broadcastStrides(v.shape, region)
	st := strides(a.shape, RowMajor)
	coords := make([]int, len(region))
	n := region.Size()
	for r := 0; r < n; r++ {
		a.setFrom(a.sourceOffset(sels, coords, st), v, dot(coords, vs))
		incCoords(coords, region)
	}
	return nil
}

// Mask returns the elements of a where m is true as a 1-d array in row
// major order. The mask must be Bool with the same shape as a.
func (a *Array) Mask(m *Array) (*Array, error) {
	if m.dtype != Bool {
		return nil, fmt.Errorf("%w: mask is %v, want bool", ErrDType, m.dtype)
	}
	if !m.shape.Equal(a.shape) {
		return nil, fmt.Errorf("%w: mask shape %v does not match %v", ErrShape, m.shape, a.shape)
	}
	count := 0
	for _, b := range m.bits {
		if b {
			count++
		}
	}
	res := &Array{dtype: a.dtype, shape: Shape{count}}
	res.alloc(count)
	r := 0
	for i, b := range m.bits {
		if b {
			res.setFrom(r, a, i)
			r++
		}
	}
	return res, nil
}

// SetMask assigns v at the elements of a where m is true. v is either a
// single element, assigned everywhere the mask holds, or a 1-d array
// with exactly one element per true mask position.
func (a *Array) SetMask(m, v *Array) error {
	if m.dtype != Bool {
		return fmt.Errorf("%w: mask is %v, want bool", ErrDType, m.dtype)
	}
	if !m.shape.Equal(a.shape) {
		return fmt.Errorf("%w: mask shape %v does not match %v", ErrShape, m.shape, a.shape)
	}
	count := 0
	for _, b := range m.bits {
		if b {
			count++
		}
	}
	fill := v.Size() == 1
	if !fill && v.Size() != count {
		return fmt.Errorf("%w: %d values for %d masked positions", ErrShape, v.Size(), count)
	}
	r := 0
	for i, b := range m.bits {
		if !b {
			continue
		}
		if fill {
			a.setFrom(i, v, 0)
		} else {
			a.setFrom(i, v, r)
		}
		r++
	}
	return nil
}

// Take gathers rows of a along the first dimension at the given integer
// positions, which may be negative. The result shape is the shape of ix
// followed by the remaining dimensions of a.
func (a *Array) Take(ix *Array) (*Array, error) {
	if ix.dtype != Int64 {
		return nil, fmt.Errorf("%w: positions are %v, want int64", ErrDType, ix.dtype)
	}
	if a.NDim() == 0 {
		return nil, fmt.Errorf("%w: cannot take from a scalar", ErrIndex)
	}
	out := append(ix.Shape(), a.shape[1:]...)
	res := &Array{dtype: a.dtype, shape: out}
	n := out.Size()
	res.alloc(n)
	rowSize := Shape(a.shape[1:]).Size()
	for r := 0; r < n; r++ {
		row, err := normIndex(int(ix.i64[r/rowSize]), a.shape[0])
		if err != nil {
			return nil, err
		}
		res.setFrom(r, a, row*rowSize+r%rowSize)
	}
	return res, nil
}

// SetTake assigns v into the rows of a selected by the integer positions
// ix, broadcasting v over the selected region.
func (a *Array) SetTake(ix, v *Array) error {
	if ix.dtype != Int64 {
		return fmt.Errorf("%w: positions are %v, want int64", ErrDType, ix.dtype)
	}
	if a.NDim() == 0 {
		return fmt.Errorf("%w: cannot take from a scalar", ErrIndex)
	}
	region := append(ix.Shape(), a.shape[1:]...)
	b, err := broadcastShapes(v.shape, region)
	if err != nil {
		return err
	}
	if !b.Equal(region) {
		return fmt.Errorf("%w: cannot place %v into region %v", ErrShape, v.shape, region)
	}
	vs := broadcastStrides(v.shape, region)
	rowSize := Shape(a.shape[1:]).Size()
	coords := make([]int, len(region))
	n := region.Size()
	for r := 0; r < n; r++ {
		row, err := normIndex(int(ix.i64[r/rowSize]), a.shape[0])
		if err != nil {
			return err
		}
		a.setFrom(row*rowSize+r%rowSize, v, dot(coords, vs))
		incCoords(coords, region)
	}
	return nil
}
