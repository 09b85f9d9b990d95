package tree

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/grovekit/grove/debug"
	"github.com/grovekit/grove/dense"
)

// The indexing engine classifies a key once into one of five closed
// variants and then branches exhaustively: plain positions and names
// address a single child, selections and arrays broadcast over every
// leaf, and trees apply a different sub index per branch.

type keyKind int

const (
	keyPos keyKind = iota
	keyName
	keyIdx
	keyArr
	keyTree
)

type keyArg struct {
	kind keyKind
	pos  int
	name string
	idx  dense.Index
	arr  *dense.Array
	tree *Node
}

func classifyKey(key any) (keyArg, error) {
	switch k := key.(type) {
	case int:
		return keyArg{kind: keyPos, pos: k}, nil
	case int8:
		return keyArg{kind: keyPos, pos: int(k)}, nil
	case int16:
		return keyArg{kind: keyPos, pos: int(k)}, nil
	case int32:
		return keyArg{kind: keyPos, pos: int(k)}, nil
	case int64:
		return keyArg{kind: keyPos, pos: int(k)}, nil
	case uint:
		return keyArg{kind: keyPos, pos: int(k)}, nil
	case uint8:
		return keyArg{kind: keyPos, pos: int(k)}, nil
	case uint16:
		return keyArg{kind: keyPos, pos: int(k)}, nil
	case uint32:
		return keyArg{kind: keyPos, pos: int(k)}, nil
	case uint64:
		return keyArg{kind: keyPos, pos: int(k)}, nil
	case string:
		return keyArg{kind: keyName, name: k}, nil
	case dense.Sel:
		return keyArg{kind: keyIdx, idx: dense.Index{k}}, nil
	case dense.Index:
		return keyArg{kind: keyIdx, idx: k}, nil
	case []dense.Sel:
		return keyArg{kind: keyIdx, idx: dense.Index(k)}, nil
	case *dense.Array:
		return keyArg{kind: keyArr, arr: k}, nil
	case *Node:
		switch k.Kind {
		case LeafKind:
			return keyArg{kind: keyArr, arr: k.Arr}, nil
		case IndexKind:
			return keyArg{kind: keyIdx, idx: k.Idx}, nil
		case ListKind, MapKind:
			return keyArg{kind: keyTree, tree: k}, nil
		default:
			return keyArg{}, fmt.Errorf("%w: cannot index with an invalid node", ErrKey)
		}
	default:
		return keyArg{}, fmt.Errorf("%w: cannot index with %T", ErrKey, key)
	}
}

func (ka keyArg) String() string {
	switch ka.kind {
	case keyPos:
		return strconv.Itoa(ka.pos)
	case keyName:
		return ka.name
	case keyIdx:
		return ka.idx.String()
	case keyArr:
		return ka.arr.String()
	default:
		return "<tree>"
	}
}

// Get reads from the tree. Plain positions and names return the child
// itself, not a copy. A selection or an array key slices every leaf
// identically and returns a fresh tree over all keys, and a tree key
// applies its per branch sub indices, returning a fresh tree over
// exactly the keys it names.
func (t *Node) Get(key any) (*Node, error) {
	ka, err := classifyKey(key)
	if err != nil {
		return nil, err
	}
	if debug.Index() {
		debug.Logf("get %s on %s node\n", ka, t.Kind)
	}
	switch ka.kind {
	case keyPos, keyName:
		return t.plainChild(ka)
	case keyIdx, keyArr:
		return t.getRaw(ka)
	default:
		return t.getParallel(ka.tree)
	}
}

func (t *Node) notFound(key string) error {
	return fmt.Errorf("%w: %s is not a key in this tree; valid keys are: %s",
		ErrKeyNotFound, key, strings.Join(t.keyStrings(), ", "))
}

// lookupPlain resolves a plain key against a container without
// reporting errors. Positions and names interconvert: a numeric name
// addresses a sequence position and a position addresses its formatted
// mapping key.
func (t *Node) lookupPlain(ka keyArg) (*Node, bool) {
	switch t.Kind {
	case ListKind:
		pos := ka.pos
		if ka.kind == keyName {
			p, err := strconv.Atoi(ka.name)
			if err != nil {
				return nil, false
			}
			pos = p
		}
		if pos < 0 {
			pos += len(t.Values)
		}
		if pos < 0 || pos >= len(t.Values) {
			return nil, false
		}
		return t.Values[pos], true
	case MapKind:
		name := ka.name
		if ka.kind == keyPos {
			name = strconv.Itoa(ka.pos)
		}
		_, child := t.childByName(name)
		if child == nil {
			return nil, false
		}
		return child, true
	default:
		return nil, false
	}
}

func (t *Node) plainChild(ka keyArg) (*Node, error) {
	switch t.Kind {
	case ListKind, MapKind:
		child, ok := t.lookupPlain(ka)
		if !ok {
			return nil, t.notFound(ka.String())
		}
		return child, nil
	default:
		return nil, fmt.Errorf("%w: a %s node has no keyed children", ErrType, t.Kind)
	}
}

// getRaw applies one selection or array index to every leaf under t.
func (t *Node) getRaw(ka keyArg) (*Node, error) {
	switch t.Kind {
	case LeafKind:
		a, err := applyRawGet(t.Arr, ka)
		if err != nil {
			return nil, err
		}
		return Leaf(a), nil
	case ListKind:
		res := &Node{Kind: ListKind, Values: make([]*Node, len(t.Values))}
		for i, v := range t.Values {
			child, err := v.getRaw(ka)
			if err != nil {
				return nil, err
			}
			res.Values[i] = child
		}
		return res, nil
	case MapKind:
		res := &Node{
			Kind:   MapKind,
			Keys:   append([]string(nil), t.Keys...),
			Values: make([]*Node, len(t.Values)),
		}
		for i, v := range t.Values {
			child, err := v.getRaw(ka)
			if err != nil {
				return nil, err
			}
			res.Values[i] = child
		}
		return res, nil
	default:
		return nil, fmt.Errorf("%w: cannot index a %s node", ErrType, t.Kind)
	}
}

func applyRawGet(a *dense.Array, ka keyArg) (*dense.Array, error) {
	if ka.kind == keyIdx {
		return a.Slice(ka.idx)
	}
	switch ka.arr.DType() {
	case dense.Bool:
		return a.Mask(ka.arr)
	case dense.Int64:
		return a.Take(ka.arr)
	default:
		return nil, fmt.Errorf("%w: a %s array cannot be used as an index", ErrKey, ka.arr.DType())
	}
}

// parallelEntry yields the plain key addressing entry i of an index
// tree.
func parallelEntry(key *Node, i int) keyArg {
	if key.Kind == MapKind {
		return keyArg{kind: keyName, name: key.Keys[i]}
	}
	return keyArg{kind: keyPos, pos: i}
}

// subAsKey turns an index tree entry back into a key for the next
// level down.
func subAsKey(sub *Node) any {
	switch sub.Kind {
	case LeafKind:
		return sub.Arr
	case IndexKind:
		return sub.Idx
	default:
		return sub
	}
}

func (t *Node) getParallel(key *Node) (*Node, error) {
	if !t.Kind.IsContainer() {
		return nil, fmt.Errorf("%w: a tree index cannot be applied to a %s node", ErrKey, t.Kind)
	}
	results := make([]*Node, len(key.Values))
	for i, sub := range key.Values {
		ka := parallelEntry(key, i)
		child, ok := t.lookupPlain(ka)
		if !ok {
			return nil, fmt.Errorf("%w: index tree key %s not present; valid keys are: %s",
				ErrKeyNotFound, ka.String(), strings.Join(t.keyStrings(), ", "))
		}
		if child.Kind == LeafKind && sub.Kind.IsContainer() {
			return nil, fmt.Errorf("%w: index tree nests under key %s but the target is a leaf", ErrKey, ka.String())
		}
		res, err := child.Get(subAsKey(sub))
		if err != nil {
			return nil, err
		}
		results[i] = res
	}
	if t.Kind == MapKind {
		kvs := make([]KeyVal, len(results))
		for i := range results {
			kvs[i] = KV(parallelEntry(key, i).String(), results[i])
		}
		return Map(kvs...), nil
	}
	return List(results...), nil
}

// Set writes into the tree. The value is normalized first: raw
// sequences and mappings become trees, scalars become 0-d leaves, and
// nodes and arrays are adopted as given. A selection or array key
// writes through every leaf slice, a tree key writes each of its
// branches, and a plain key replaces the addressed child, with mapping
// nodes growing on unseen names and sequence nodes rejecting positions
// past the end.
func (t *Node) Set(key, value any) error {
	val, err := t.convertValue(value)
	if err != nil {
		return err
	}
	ka, err := classifyKey(key)
	if err != nil {
		return err
	}
	switch ka.kind {
	case keyIdx, keyArr:
		return t.setRaw(ka, val)
	case keyTree:
		return t.setParallel(ka.tree, val)
	default:
		return t.setPlain(ka, val)
	}
}

func (t *Node) setPlain(ka keyArg, val *Node) error {
	switch t.Kind {
	case ListKind:
		pos := ka.pos
		if ka.kind == keyName {
			p, err := strconv.Atoi(ka.name)
			if err != nil {
				return fmt.Errorf("%w: cannot assign name %q in a sequence tree", ErrKey, ka.name)
			}
			pos = p
		}
		if pos < 0 {
			pos += len(t.Values)
		}
		if pos < 0 || pos >= len(t.Values) {
			return fmt.Errorf("%w: cannot assign position %s in a sequence of length %d; use append instead",
				ErrKey, ka.String(), len(t.Values))
		}
		t.Values[pos] = val
		return nil
	case MapKind:
		name := ka.name
		if ka.kind == keyPos {
			name = strconv.Itoa(ka.pos)
		}
		if i, _ := t.childByName(name); i >= 0 {
			t.Values[i] = val
			return nil
		}
		t.Keys = append(t.Keys, name)
		t.Values = append(t.Values, val)
		return nil
	default:
		return fmt.Errorf("%w: a %s node has no keyed children", ErrType, t.Kind)
	}
}

// setRaw writes val through one selection or array index on every leaf
// under t. A tree shaped val must supply a matching entry for every
// child it meets on the way down.
func (t *Node) setRaw(ka keyArg, val *Node) error {
	switch t.Kind {
	case LeafKind:
		if val.Kind != LeafKind {
			return fmt.Errorf("%w: cannot write a %s value through a leaf slice", ErrKey, val.Kind)
		}
		return applyRawSet(t.Arr, ka, val.Arr)
	case ListKind, MapKind:
		for i, child := range t.Values {
			v := val
			if val.Kind.IsContainer() {
				entry := parallelEntry(t, i)
				vc, ok := val.lookupPlain(entry)
				if !ok {
					return fmt.Errorf("%w: value tree is missing key %s; its keys are: %s",
						ErrKeyNotFound, entry.String(), strings.Join(val.keyStrings(), ", "))
				}
				if child.Kind == LeafKind && vc.Kind != LeafKind {
					return fmt.Errorf("%w: value tree nests under key %s but the target is a leaf",
						ErrKeyNotFound, entry.String())
				}
				v = vc
			}
			if err := child.setRaw(ka, v); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: cannot index a %s node", ErrType, t.Kind)
	}
}

func applyRawSet(a *dense.Array, ka keyArg, v *dense.Array) error {
	if ka.kind == keyIdx {
		return a.SetSlice(ka.idx, v)
	}
	switch ka.arr.DType() {
	case dense.Bool:
		return a.SetMask(ka.arr, v)
	case dense.Int64:
		return a.SetTake(ka.arr, v)
	default:
		return fmt.Errorf("%w: a %s array cannot be used as an index", ErrKey, ka.arr.DType())
	}
}

// setParallel writes through a tree shaped index, branching on whether
// each target child and the value are trees or leaves.
func (t *Node) setParallel(key *Node, val *Node) error {
	if !t.Kind.IsContainer() {
		return fmt.Errorf("%w: a tree index cannot be applied to a %s node", ErrKey, t.Kind)
	}
	for i, sub := range key.Values {
		ka := parallelEntry(key, i)
		child, ok := t.lookupPlain(ka)
		if !ok {
			return fmt.Errorf("%w: index tree key %s not present; valid keys are: %s",
				ErrKeyNotFound, ka.String(), strings.Join(t.keyStrings(), ", "))
		}
		switch {
		case child.Kind.IsContainer() && val.Kind.IsContainer():
			vc, found := val.lookupPlain(ka)
			if !found {
				return fmt.Errorf("%w: value tree is missing key %s; its keys are: %s",
					ErrKeyNotFound, ka.String(), strings.Join(val.keyStrings(), ", "))
			}
			if err := child.Set(subAsKey(sub), vc); err != nil {
				return err
			}
		case child.Kind.IsContainer() && val.Kind == LeafKind:
			if err := child.Set(subAsKey(sub), val); err != nil {
				return err
			}
		case child.Kind == LeafKind && val.Kind == LeafKind:
			if err := setLeafParallel(child, sub, val.Arr); err != nil {
				return err
			}
		case child.Kind == LeafKind && val.Kind.IsContainer():
			vc, found := val.lookupPlain(ka)
			if !found || vc.Kind != LeafKind {
				return fmt.Errorf("%w: value tree does not provide a leaf for key %s; its keys are: %s",
					ErrKeyNotFound, ka.String(), strings.Join(val.keyStrings(), ", "))
			}
			if err := setLeafParallel(child, sub, vc.Arr); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: cannot assign a %s value", ErrType, val.Kind)
		}
	}
	return nil
}

func setLeafParallel(child *Node, sub *Node, v *dense.Array) error {
	switch sub.Kind {
	case LeafKind:
		return applyRawSet(child.Arr, keyArg{kind: keyArr, arr: sub.Arr}, v)
	case IndexKind:
		return applyRawSet(child.Arr, keyArg{kind: keyIdx, idx: sub.Idx}, v)
	default:
		return fmt.Errorf("%w: index tree nests under a leaf target", ErrKey)
	}
}
