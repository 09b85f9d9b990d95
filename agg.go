package grove

import (
	"fmt"

	"github.com/grovekit/grove/apply"
	"github.com/grovekit/grove/dense"
	"github.com/grovekit/grove/tree"
)

// Shapes mirrors t with every leaf replaced by its dimension list.
func Shapes(t *tree.Node) *tree.Node {
	return t.ShapeTree()
}

// NDims mirrors t with every leaf replaced by its dimension count.
func NDims(t *tree.Node) *tree.Node {
	switch t.Kind {
	case tree.LeafKind:
		a, _ := dense.FromAny(int64(t.Arr.NDim()))
		return tree.Leaf(a)
	case tree.ListKind, tree.MapKind:
		res := &tree.Node{
			Kind:   t.Kind,
			Keys:   append([]string(nil), t.Keys...),
			Values: make([]*tree.Node, t.Len()),
		}
		for i, v := range t.Values {
			res.Values[i] = NDims(v)
		}
		return res
	default:
		return t.Clone()
	}
}

// Size returns the total element count across every leaf.
func Size(t *tree.Node) int {
	return t.Size()
}

// Flatten concatenates every leaf into one 1-d array: leaves in
// depth-first order, each raveled row-major, 0-d leaves promoted to
// one element first. A tree with no leaves flattens to an empty float
// array.
func Flatten(t *tree.Node) (*dense.Array, error) {
	leaves := t.Leaves()
	if len(leaves) == 0 {
		return dense.Zeros(dense.Float64, dense.Shape{0})
	}
	parts := make([]*dense.Array, len(leaves))
	for i, a := range leaves {
		parts[i] = a.AtLeast1D().Ravel(dense.RowMajor)
	}
	return dense.Concat(0, parts...)
}

// Reshape applies one uniform shape or a tree of per-leaf shapes
// through the dispatch engine.
func Reshape(t *tree.Node, shape any, order dense.Order) (*tree.Node, error) {
	return opTree("reshape", []any{t, shape}, map[string]any{"order": order})
}

// FromVector rebuilds a tree from a flat vector and a tree of leaf
// shapes, the inverse of Flatten given Shapes of the original.
func FromVector(vec *dense.Array, shapes *tree.Node, order dense.Order) (*tree.Node, error) {
	return tree.FromVector(vec, shapes, order)
}

// Zeros builds a tree of zero arrays from a tree of leaf shapes.
func Zeros(shapes *tree.Node, dt dense.DType) (*tree.Node, error) {
	total := 0
	for _, a := range shapes.Leaves() {
		n := 1
		for _, d := range a.Ints() {
			if d < 0 {
				return nil, fmt.Errorf("%w: negative dimension %d in shapes", dense.ErrShape, d)
			}
			n *= int(d)
		}
		total += n
	}
	vec, err := dense.Zeros(dt, dense.Shape{total})
	if err != nil {
		return nil, err
	}
	return tree.FromVector(vec, shapes, dense.RowMajor)
}

// SumElems folds the direct children with add, so a container of
// congruent subtrees reduces to one subtree.
func SumElems(t *tree.Node) (*tree.Node, error) {
	if !t.Kind.IsContainer() {
		return nil, fmt.Errorf("%w: cannot sum the children of a %s node", tree.ErrType, t.Kind)
	}
	if t.Len() == 0 {
		return nil, fmt.Errorf("%w: cannot sum an empty container", tree.ErrSize)
	}
	if t.Len() == 1 {
		return t.Values[0].Clone(), nil
	}
	acc := any(t.Values[0])
	for _, v := range t.Values[1:] {
		res, err := apply.Op("add", acc, v)
		if err != nil {
			return nil, err
		}
		acc = res
	}
	return asTree(acc)
}

// SumLeaves reduces every element of every leaf to one 0-d value.
func SumLeaves(t *tree.Node) (*dense.Array, error) {
	flat, err := Flatten(t)
	if err != nil {
		return nil, err
	}
	return flat.Sum()
}

// All reports whether every element of every leaf is truthy.
func All(t *tree.Node) bool {
	return t.All()
}

// Any reports whether some element of some leaf is truthy.
func Any(t *tree.Node) bool {
	return t.Any()
}
