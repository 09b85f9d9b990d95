package dense

import "fmt"

// Ravel returns the elements of a as a 1-d array, read in the given
// order.
func (a *Array) Ravel(o Order) *Array {
	n := a.Size()
	res := &Array{dtype: a.dtype, shape: Shape{n}}
	res.alloc(n)
	if o == RowMajor {
		for i := 0; i < n; i++ {
			res.setFrom(i, a, i)
		}
		return res
	}
	st := strides(a.shape, RowMajor)
	coords := make([]int, len(a.shape))
	for r := 0; r < n; r++ {
		res.setFrom(r, a, dot(coords, st))
		incCoordsCol(coords, a.shape)
	}
	return res
}

// resolveNewShape fills in at most one -1 dimension from the element
// count.
func resolveNewShape(shape Shape, size int) (Shape, error) {
	res := shape.Clone()
	infer := -1
	known := 1
	for i, d := range res {
		if d == -1 {
			if infer >= 0 {
				return nil, fmt.Errorf("%w: more than one inferred dimension in %v", ErrShape, shape)
			}
			infer = i
			continue
		}
		if d < 0 {
			return nil, fmt.Errorf("%w: negative dimension in %v", ErrShape, shape)
		}
		known *= d
	}
	if infer >= 0 {
		if known == 0 || size%known != 0 {
			return nil, fmt.Errorf("%w: cannot infer dimension of %v for %d elements", ErrShape, shape, size)
		}
		res[infer] = size / known
	}
	if res.Size() != size {
		return nil, fmt.Errorf("%w: cannot reshape %d elements into %v", ErrShape, size, shape)
	}
	return res, nil
}

// Reshape returns a copy of a with the given shape, reading and writing
// elements in the given order. One dimension may be -1 to infer its
// extent.
func (a *Array) Reshape(shape Shape, o Order) (*Array, error) {
	newShape, err := resolveNewShape(shape, a.Size())
	if err != nil {
		return nil, err
	}
	flat := a.Ravel(o)
	res := &Array{dtype: a.dtype, shape: newShape}
	n := flat.Size()
	res.alloc(n)
	if o == RowMajor {
		for i := 0; i < n; i++ {
			res.setFrom(i, flat, i)
		}
		return res, nil
	}
	st := strides(newShape, RowMajor)
	coords := make([]int, len(newShape))
	for r := 0; r < n; r++ {
		res.setFrom(dot(coords, st), flat, r)
		incCoordsCol(coords, newShape)
	}
	return res, nil
}

// Squeeze returns a copy of a with length 1 dimensions removed, either
// the given axes or all of them. A named axis of extent other than 1 is
// rejected. Squeezing every dimension of a single element array yields
// a 0-d scalar.
func (a *Array) Squeeze(axes ...int) (*Array, error) {
	drop := make([]bool, len(a.shape))
	if len(axes) == 0 {
		for i, d := range a.shape {
			drop[i] = d == 1
		}
	} else {
		for _, ax := range axes {
			i, err := normIndex(ax, len(a.shape))
			if err != nil {
				return nil, err
			}
			if a.shape[i] != 1 {
				return nil, fmt.Errorf("%w: axis %d has extent %d, cannot squeeze", ErrShape, ax, a.shape[i])
			}
			drop[i] = true
		}
	}
	var out Shape
	for i, d := range a.shape {
		if !drop[i] {
			out = append(out, d)
		}
	}
	res := a.Clone()
	res.shape = out
	return res, nil
}

// Transpose returns a copy of a with dimensions permuted, reversed when
// no permutation is given.
func (a *Array) Transpose(perm ...int) (*Array, error) {
	nd := len(a.shape)
	if len(perm) == 0 {
		perm = make([]int, nd)
		for i := range perm {
			perm[i] = nd - 1 - i
		}
	}
	if len(perm) != nd {
		return nil, fmt.Errorf("%w: permutation %v does not cover %d dimensions", ErrIndex, perm, nd)
	}
	seen := make([]bool, nd)
	out := make(Shape, nd)
	permSt := make([]int, nd)
	st := strides(a.shape, RowMajor)
	for i, p := range perm {
		p, err := normIndex(p, nd)
		if err != nil {
			return nil, err
		}
		if seen[p] {
			return nil, fmt.Errorf("%w: duplicate axis %d in permutation", ErrIndex, p)
		}
		seen[p] = true
		out[i] = a.shape[p]
		permSt[i] = st[p]
	}
	res := &Array{dtype: a.dtype, shape: out}
	n := out.Size()
	res.alloc(n)
	coords := make([]int, nd)
	for r := 0; r < n; r++ {
		res.setFrom(r, a, dot(coords, permSt))
		incCoords(coords, out)
	}
	return res, nil
}

// Concat joins arrays along an existing axis. All inputs must share
// dimensionality and agree on every other axis, and 0-d scalars cannot
// be concatenated. The result dtype is the widest input dtype.
func Concat(axis int, arrays ...*Array) (*Array, error) {
	if len(arrays) == 0 {
		return nil, fmt.Errorf("%w: nothing to concatenate", ErrShape)
	}
	nd := arrays[0].NDim()
	if nd == 0 {
		return nil, fmt.Errorf("%w: cannot concatenate 0-d scalars", ErrShape)
	}
	ax, err := normIndex(axis, nd)
	if err != nil {
		return nil, err
	}
	dt := arrays[0].dtype
	out := arrays[0].Shape()
	for _, x := range arrays[1:] {
		if x.NDim() != nd {
			return nil, fmt.Errorf("%w: mixed dimensionality %d and %d", ErrShape, nd, x.NDim())
		}
		for i, d := range x.shape {
			if i == ax {
				continue
			}
			if d != out[i] {
				return nil, fmt.Errorf("%w: %v does not align with %v on axis %d", ErrShape, x.shape, out, ax)
			}
		}
		out[ax] += x.shape[ax]
		dt = promote(dt, x.dtype)
	}
	res := &Array{dtype: dt, shape: out}
	res.alloc(out.Size())
	outSt := strides(out, RowMajor)
	off := 0
	for _, x := range arrays {
		coords := make([]int, nd)
		for r := 0; r < x.Size(); r++ {
			o := 0
			for i, c := range coords {
				if i == ax {
					c += off
				}
				o += c * outSt[i]
			}
			res.setFrom(o, x, r)
			incCoords(coords, x.shape)
		}
		off += x.shape[ax]
	}
	return res, nil
}

// AtLeast1D returns a unchanged if it has dimensions, and a 1-d single
// element copy of a 0-d scalar otherwise.
func (a *Array) AtLeast1D() *Array {
	if a.NDim() > 0 {
		return a
	}
	res := a.Clone()
	res.shape = Shape{1}
	return res
}
