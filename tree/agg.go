package tree

import "github.com/grovekit/grove/dense"

// ShapeTree mirrors t with every leaf replaced by a 1-d integer array
// listing that leaf's dimensions. Index nodes carry over as clones.
func (t *Node) ShapeTree() *Node {
	switch t.Kind {
	case LeafKind:
		sh := t.Arr.Shape()
		dims := make([]int64, len(sh))
		for i, d := range sh {
			dims[i] = int64(d)
		}
		arr, _ := dense.FromInts(dense.Shape{len(dims)}, dims...)
		return Leaf(arr)
	case ListKind, MapKind:
		res := &Node{
			Kind:   t.Kind,
			Keys:   append([]string(nil), t.Keys...),
			Values: make([]*Node, len(t.Values)),
		}
		for i, v := range t.Values {
			res.Values[i] = v.ShapeTree()
		}
		return res
	default:
		return t.Clone()
	}
}

// Size returns the total element count across every leaf.
func (t *Node) Size() int {
	total := 0
	for _, a := range t.Leaves() {
		total += a.Size()
	}
	return total
}

// All reports whether every element of every leaf is truthy. A tree
// with no leaves is vacuously true.
func (t *Node) All() bool {
	for _, a := range t.Leaves() {
		if !a.All() {
			return false
		}
	}
	return true
}

// Any reports whether some element of some leaf is truthy.
func (t *Node) Any() bool {
	for _, a := range t.Leaves() {
		if a.Any() {
			return true
		}
	}
	return false
}
