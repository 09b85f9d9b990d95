package tree

import (
	"fmt"

	"github.com/grovekit/grove/dense"
)

// leafShape reads a shapes tree leaf as concrete dimensions.
func leafShape(a *dense.Array) (dense.Shape, error) {
	dims := a.Ints()
	sh := make(dense.Shape, len(dims))
	for i, d := range dims {
		if d < 0 {
			return nil, fmt.Errorf("%w: shape entries must be non-negative, got %d", ErrType, d)
		}
		sh[i] = int(d)
	}
	return sh, nil
}

func vectorSize(shapes *Node) (int, error) {
	switch shapes.Kind {
	case LeafKind:
		sh, err := leafShape(shapes.Arr)
		if err != nil {
			return 0, err
		}
		return sh.Size(), nil
	case ListKind, MapKind:
		total := 0
		for _, v := range shapes.Values {
			n, err := vectorSize(v)
			if err != nil {
				return 0, err
			}
			total += n
		}
		return total, nil
	default:
		return 0, fmt.Errorf("%w: a shapes tree cannot hold a %s node", ErrType, shapes.Kind)
	}
}

// FromVector rebuilds a tree from a flat vector and a tree of leaf
// shapes. The vector is flattened in row-major order, each shapes leaf
// consumes as many elements as its dimensions multiply out to, and the
// segment is reshaped in the given element order. The result structure
// mirrors the shapes tree. The vector length must equal the combined
// element count, checked before any leaf is built.
func FromVector(vec *dense.Array, shapes *Node, order dense.Order) (*Node, error) {
	total, err := vectorSize(shapes)
	if err != nil {
		return nil, err
	}
	flat := vec.Ravel(dense.RowMajor)
	if flat.Size() != total {
		return nil, fmt.Errorf("%w: vector holds %d elements but the shapes require %d",
			ErrSize, flat.Size(), total)
	}
	res, _, err := fromVector(flat, shapes, order, 0)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func fromVector(flat *dense.Array, shapes *Node, order dense.Order, off int) (*Node, int, error) {
	switch shapes.Kind {
	case LeafKind:
		sh, err := leafShape(shapes.Arr)
		if err != nil {
			return nil, 0, err
		}
		n := sh.Size()
		seg, err := flat.Slice(dense.Idx(dense.Span(off, off+n)))
		if err != nil {
			return nil, 0, err
		}
		arr, err := seg.Reshape(sh, order)
		if err != nil {
			return nil, 0, err
		}
		return Leaf(arr), off + n, nil
	default:
		res := &Node{
			Kind:   shapes.Kind,
			Keys:   append([]string(nil), shapes.Keys...),
			Values: make([]*Node, len(shapes.Values)),
		}
		for i, v := range shapes.Values {
			child, next, err := fromVector(flat, v, order, off)
			if err != nil {
				return nil, 0, err
			}
			res.Values[i] = child
			off = next
		}
		return res, off, nil
	}
}
