package dense

import (
	"fmt"
	"strings"
)

// Shape gives the extent of an Array along each dimension. A zero length
// Shape denotes a 0-d scalar holding exactly one element.
type Shape []int

func (s Shape) Size() int {
	n := 1
	for _, d := range s {
		n *= d
	}
	return n
}

func (s Shape) Clone() Shape {
	if s == nil {
		return nil
	}
	res := make(Shape, len(s))
	copy(res, s)
	return res
}

func (s Shape) Equal(o Shape) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}

func (s Shape) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, d := range s {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%d", d)
	}
	sb.WriteByte(')')
	return sb.String()
}

func (s Shape) check() error {
	for _, d := range s {
		if d < 0 {
			return fmt.Errorf("%w: negative dimension in %v", ErrShape, s)
		}
	}
	return nil
}

// Order selects the linearization of multi dimensional data, with RowMajor
// varying the last axis fastest and ColMajor the first.
type Order int

const (
	RowMajor Order = iota
	ColMajor
)

func (o Order) String() string {
	switch o {
	case RowMajor:
		return "C"
	case ColMajor:
		return "F"
	}
	return "<unknown order>"
}

// strides returns the element strides of a contiguous array with shape s
// in the given order.
func strides(s Shape, o Order) []int {
	res := make([]int, len(s))
	acc := 1
	if o == RowMajor {
		for i := len(s) - 1; i >= 0; i-- {
			res[i] = acc
			acc *= s[i]
		}
	} else {
		for i := 0; i < len(s); i++ {
			res[i] = acc
			acc *= s[i]
		}
	}
	return res
}

// broadcastShapes aligns a and b from the trailing dimension and returns
// the common shape, or ErrShape if some dimension pair is neither equal
// nor 1.
func broadcastShapes(a, b Shape) (Shape, error) {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	res := make(Shape, n)
	for i := 1; i <= n; i++ {
		da, db := 1, 1
		if i <= len(a) {
			da = a[len(a)-i]
		}
		if i <= len(b) {
			db = b[len(b)-i]
		}
		switch {
		case da == db:
			res[n-i] = da
		case da == 1:
			res[n-i] = db
		case db == 1:
			res[n-i] = da
		default:
			return nil, fmt.Errorf("%w: cannot broadcast %v with %v", ErrShape, a, b)
		}
	}
	return res, nil
}

// broadcastStrides returns row major strides for reading an array of shape
// s as if it had shape out, with stride 0 on broadcast dimensions.
func broadcastStrides(s Shape, out Shape) []int {
	base := strides(s, RowMajor)
	res := make([]int, len(out))
	for i := 1; i <= len(s); i++ {
		j := len(out) - i
		if s[len(s)-i] == 1 && out[j] != 1 {
			res[j] = 0
		} else {
			res[j] = base[len(s)-i]
		}
	}
	return res
}

// incCoords advances coords through shape in row major order, returning
// false after the last coordinate wraps around.
func incCoords(coords []int, shape Shape) bool {
	for i := len(coords) - 1; i >= 0; i-- {
		coords[i]++
		if coords[i] < shape[i] {
			return true
		}
		coords[i] = 0
	}
	return false
}

// incCoordsCol is incCoords with the first axis varying fastest.
func incCoordsCol(coords []int, shape Shape) bool {
	for i := 0; i < len(coords); i++ {
		coords[i]++
		if coords[i] < shape[i] {
			return true
		}
		coords[i] = 0
	}
	return false
}

func dot(coords, strides []int) int {
	off := 0
	for i, c := range coords {
		off += c * strides[i]
	}
	return off
}
