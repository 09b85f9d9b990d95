package tree

import (
	"fmt"
	"strconv"

	"github.com/grovekit/grove/dense"
)

// Node is one vertex of a grove tree. The Kind selects which fields are
// meaningful: a Leaf carries Arr, an Index carries Idx, a List carries
// Values, and a Map carries Keys parallel to Values in insertion order.
// DType, when set, is the conversion dtype applied to values placed
// under this node.
type Node struct {
	Kind   Kind
	Arr    *dense.Array
	Idx    dense.Index
	Keys   []string
	Values []*Node
	DType  *dense.DType
}

// Leaf returns a leaf node holding the given array. The array is
// adopted, not copied.
func Leaf(a *dense.Array) *Node {
	return &Node{
		Kind: LeafKind,
		Arr:  a,
	}
}

// Sel returns an index node holding the given selection, for use as a
// leaf of a parallel index tree.
func Sel(sels ...dense.Sel) *Node {
	return &Node{
		Kind: IndexKind,
		Idx:  dense.Index(sels),
	}
}

// List returns a sequence node over the given children.
func List(values ...*Node) *Node {
	res := &Node{
		Kind:   ListKind,
		Values: make([]*Node, len(values)),
	}
	copy(res.Values, values)
	return res
}

// KeyVal pairs a mapping key with its child.
type KeyVal struct {
	Key string
	Val *Node
}

// KV builds a KeyVal.
func KV(key string, val *Node) KeyVal {
	return KeyVal{Key: key, Val: val}
}

// Map returns a mapping node over the given pairs, preserving their
// order.
func Map(kvs ...KeyVal) *Node {
	res := &Node{
		Kind:   MapKind,
		Keys:   make([]string, len(kvs)),
		Values: make([]*Node, len(kvs)),
	}
	for i, kv := range kvs {
		res.Keys[i] = kv.Key
		res.Values[i] = kv.Val
	}
	return res
}

// Len returns the number of direct children, 0 for leaves and index
// nodes.
func (t *Node) Len() int {
	return len(t.Values)
}

// MapKeys returns a copy of the mapping keys, nil for other kinds.
func (t *Node) MapKeys() []string {
	if t.Kind != MapKind {
		return nil
	}
	res := make([]string, len(t.Keys))
	copy(res, t.Keys)
	return res
}

// keyStrings renders the valid keys of a container for error messages,
// positions for lists and names for maps.
func (t *Node) keyStrings() []string {
	switch t.Kind {
	case ListKind:
		res := make([]string, len(t.Values))
		for i := range t.Values {
			res[i] = strconv.Itoa(i)
		}
		return res
	case MapKind:
		return t.MapKeys()
	default:
		return nil
	}
}

// childByName returns the position and child under a mapping key, or -1
// when absent.
func (t *Node) childByName(name string) (int, *Node) {
	for i, k := range t.Keys {
		if k == name {
			return i, t.Values[i]
		}
	}
	return -1, nil
}

// Clone returns a deep copy of t: fresh nodes and fresh leaf arrays all
// the way down.
func (t *Node) Clone() *Node {
	res := &Node{}
	return t.CloneTo(res)
}

// CloneTo deep copies t into dst and returns dst.
func (t *Node) CloneTo(dst *Node) *Node {
	dst.Kind = t.Kind
	dst.DType = t.DType
	if t.Arr != nil {
		dst.Arr = t.Arr.Clone()
	}
	dst.Idx = append(dense.Index(nil), t.Idx...)
	dst.Keys = append([]string(nil), t.Keys...)
	dst.Values = make([]*Node, len(t.Values))
	for i, v := range t.Values {
		dstI := &Node{}
		v.CloneTo(dstI)
		dst.Values[i] = dstI
	}
	return dst
}

// Copy returns a shallow copy of t: a fresh node whose children and
// leaf storage are shared with t.
func (t *Node) Copy() *Node {
	return &Node{
		Kind:   t.Kind,
		Arr:    t.Arr,
		Idx:    append(dense.Index(nil), t.Idx...),
		Keys:   append([]string(nil), t.Keys...),
		Values: append([]*Node(nil), t.Values...),
		DType:  t.DType,
	}
}

// Visit walks t depth first, calling f before and after each node's
// children with isPost false and true respectively. Returning false
// from the pre call skips the children.
func (t *Node) Visit(f func(t *Node, isPost bool) (bool, error)) error {
	dive, err := f(t, false)
	if err != nil {
		return err
	}
	if dive {
		for _, v := range t.Values {
			if err := v.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(t, true); err != nil {
		return err
	}
	return nil
}

// Leaves collects every leaf array in depth first order. The arrays are
// the tree's own storage, not copies.
func (t *Node) Leaves() []*dense.Array {
	var res []*dense.Array
	t.Visit(func(n *Node, isPost bool) (bool, error) {
		if !isPost && n.Kind == LeafKind {
			res = append(res, n.Arr)
		}
		return true, nil
	})
	return res
}

// FirstLeaf returns the first leaf array in depth first order, nil when
// the tree has none.
func (t *Node) FirstLeaf() *dense.Array {
	for _, v := range t.Values {
		switch v.Kind {
		case LeafKind:
			return v.Arr
		case ListKind, MapKind:
			if a := v.FirstLeaf(); a != nil {
				return a
			}
		}
	}
	if t.Kind == LeafKind {
		return t.Arr
	}
	return nil
}

// Unpack returns the tree as nested Go containers with the leaf arrays
// themselves at the bottom: map[string]any for mappings, []any for
// sequences, *dense.Array for leaves and dense.Index for index nodes.
// Leaf storage is shared, not copied.
func (t *Node) Unpack() any {
	switch t.Kind {
	case LeafKind:
		return t.Arr
	case IndexKind:
		return t.Idx
	case ListKind:
		res := make([]any, len(t.Values))
		for i, v := range t.Values {
			res[i] = v.Unpack()
		}
		return res
	case MapKind:
		res := make(map[string]any, len(t.Values))
		for i, k := range t.Keys {
			res[k] = t.Values[i].Unpack()
		}
		return res
	default:
		return nil
	}
}

// ToList returns the tree as plain nested Go data, with leaf arrays
// expanded to nested slices of their elements.
func (t *Node) ToList() any {
	switch t.Kind {
	case LeafKind:
		return t.Arr.ToList()
	case IndexKind:
		return t.Idx
	case ListKind:
		res := make([]any, len(t.Values))
		for i, v := range t.Values {
			res[i] = v.ToList()
		}
		return res
	case MapKind:
		res := make(map[string]any, len(t.Values))
		for i, k := range t.Keys {
			res[k] = t.Values[i].ToList()
		}
		return res
	default:
		return nil
	}
}

func (t *Node) String() string {
	return fmt.Sprintf("%v", t.ToList())
}
