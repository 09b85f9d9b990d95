package tree

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"

	"github.com/grovekit/grove/debug"
	"github.com/grovekit/grove/dense"
)

type buildOpts struct {
	dtype   *dense.DType
	convert bool
	share   bool
}

type BuildOption func(*buildOpts)

// WithDType casts every leaf created during construction to the given
// dtype and records it on the tree for later value normalization.
func WithDType(dt dense.DType) BuildOption {
	return func(o *buildOpts) { o.dtype = &dt }
}

// NoConvert disables leaf conversion: numeric sequences stay trees of
// scalar leaves instead of collapsing into arrays, and no dtype
// coercion is applied.
func NoConvert() BuildOption {
	return func(o *buildOpts) { o.convert = false }
}

// Share adopts caller supplied arrays and subtrees by reference instead
// of deep copying them. The default clones everything so the new tree
// cannot alias caller state.
func Share() BuildOption {
	return func(o *buildOpts) { o.share = true }
}

// Build converts nested Go data into a tree. The top level value must
// be sequence like or mapping like; below it, already built nodes are
// taken as given, fully numeric rectangular nests collapse into single
// leaf arrays, other sequences and mappings recurse, scalars become 0-d
// leaves, and selection values become index nodes. Mapping keys must be
// strings or integers, which are formatted; composite keys are
// rejected.
func Build(v any, opts ...BuildOption) (*Node, error) {
	o := &buildOpts{convert: true}
	for _, f := range opts {
		f(o)
	}
	if debug.Build() {
		debug.Logf("build from %T\n", v)
	}
	switch v.(type) {
	case nil:
		return nil, fmt.Errorf("%w: contents must be sequence-like or mapping-like, not nil", ErrType)
	case *Node:
		return nil, fmt.Errorf("%w: contents is already a tree, clone it instead", ErrType)
	case *dense.Array:
		return nil, fmt.Errorf("%w: contents must be sequence-like or mapping-like, not a bare array", ErrType)
	case []KeyVal:
		return buildKeyVals(v.([]KeyVal), o)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		return buildMap(rv, o)
	case reflect.Slice, reflect.Array:
		res := &Node{Kind: ListKind, DType: o.dtype}
		res.Values = make([]*Node, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			child, err := buildValue(rv.Index(i).Interface(), o)
			if err != nil {
				return nil, err
			}
			res.Values[i] = child
		}
		return res, nil
	default:
		return nil, fmt.Errorf("%w: contents must be sequence-like or mapping-like, not %T", ErrType, v)
	}
}

// buildValue converts one child position.
func buildValue(v any, o *buildOpts) (*Node, error) {
	switch val := v.(type) {
	case nil:
		return nil, fmt.Errorf("%w: nil value in contents", ErrType)
	case *Node:
		if val.Kind == InvalidKind {
			return nil, fmt.Errorf("%w: invalid node in contents", ErrType)
		}
		if o.share {
			return val, nil
		}
		return val.Clone(), nil
	case *dense.Array:
		if o.convert && o.dtype != nil {
			return Leaf(val.AsType(*o.dtype)), nil
		}
		if o.share {
			return Leaf(val), nil
		}
		return Leaf(val.Clone()), nil
	case dense.Sel:
		return Sel(val), nil
	case dense.Index:
		return &Node{Kind: IndexKind, Idx: append(dense.Index(nil), val...)}, nil
	case []dense.Sel:
		return &Node{Kind: IndexKind, Idx: append(dense.Index(nil), val...)}, nil
	case bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, json.Number:
		return buildLeaf(val, o)
	case []KeyVal:
		return buildKeyVals(val, o)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		return buildMap(rv, o)
	case reflect.Slice, reflect.Array:
		if o.convert && rv.Len() > 0 {
			if a, err := dense.FromAny(v); err == nil {
				return buildLeafArray(a, o), nil
			}
		}
		res := &Node{Kind: ListKind, DType: o.dtype}
		res.Values = make([]*Node, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			child, err := buildValue(rv.Index(i).Interface(), o)
			if err != nil {
				return nil, err
			}
			res.Values[i] = child
		}
		return res, nil
	default:
		return nil, fmt.Errorf("%w: cannot convert %T into a leaf", ErrType, v)
	}
}

func buildLeaf(v any, o *buildOpts) (*Node, error) {
	a, err := dense.FromAny(v)
	if err != nil {
		return nil, err
	}
	return buildLeafArray(a, o), nil
}

func buildLeafArray(a *dense.Array, o *buildOpts) *Node {
	if o.convert && o.dtype != nil && a.DType() != *o.dtype {
		a = a.AsType(*o.dtype)
	}
	return Leaf(a)
}

func buildKeyVals(kvs []KeyVal, o *buildOpts) (*Node, error) {
	res := &Node{
		Kind:   MapKind,
		Keys:   make([]string, len(kvs)),
		Values: make([]*Node, len(kvs)),
		DType:  o.dtype,
	}
	for i, kv := range kvs {
		child, err := buildValue(kv.Val, o)
		if err != nil {
			return nil, err
		}
		res.Keys[i] = kv.Key
		res.Values[i] = child
	}
	return res, nil
}

func buildMap(rv reflect.Value, o *buildOpts) (*Node, error) {
	type entry struct {
		name  string
		num   int64
		isNum bool
		val   reflect.Value
	}
	entries := make([]entry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		name, num, isNum, err := formatKey(iter.Key())
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry{name: name, num: num, isNum: isNum, val: iter.Value()})
	}
	// Go maps are unordered, so fix a deterministic layout: numeric keys
	// ascend numerically, then string keys ascend lexically.
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.isNum != b.isNum {
			return a.isNum
		}
		if a.isNum {
			return a.num < b.num
		}
		return a.name < b.name
	})
	res := &Node{
		Kind:   MapKind,
		Keys:   make([]string, len(entries)),
		Values: make([]*Node, len(entries)),
		DType:  o.dtype,
	}
	for i, e := range entries {
		child, err := buildValue(e.val.Interface(), o)
		if err != nil {
			return nil, err
		}
		res.Keys[i] = e.name
		res.Values[i] = child
	}
	return res, nil
}

// formatKey renders a mapping key as a string. Integer keys format in
// base 10; composite keys, the analog of tuple keys, are rejected, as
// are bool and float keys.
func formatKey(k reflect.Value) (string, int64, bool, error) {
	if k.Kind() == reflect.Interface {
		k = k.Elem()
	}
	switch k.Kind() {
	case reflect.String:
		return k.String(), 0, false, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10), k.Int(), true, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(k.Uint(), 10), int64(k.Uint()), true, nil
	case reflect.Array, reflect.Slice, reflect.Struct:
		return "", 0, false, fmt.Errorf("%w: composite key %v is not allowed in a mapping", ErrKey, k.Interface())
	default:
		return "", 0, false, fmt.Errorf("%w: mapping key %v must be a string or integer", ErrKey, k.Interface())
	}
}

// convertValue normalizes a value being placed into the tree: nodes and
// arrays are adopted as given, selections become index nodes, raw
// sequences and mappings build fresh subtrees under the receiver's
// dtype, and scalars become 0-d leaves.
func (t *Node) convertValue(v any) (*Node, error) {
	switch val := v.(type) {
	case *Node:
		if val.Kind == InvalidKind {
			return nil, fmt.Errorf("%w: invalid node", ErrType)
		}
		return val, nil
	case *dense.Array:
		return Leaf(val), nil
	case dense.Sel:
		return Sel(val), nil
	case dense.Index:
		return &Node{Kind: IndexKind, Idx: append(dense.Index(nil), val...)}, nil
	case []dense.Sel:
		return &Node{Kind: IndexKind, Idx: append(dense.Index(nil), val...)}, nil
	case []KeyVal:
		return buildKeyVals(val, &buildOpts{convert: true, dtype: t.DType})
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return buildValue(v, &buildOpts{convert: true, dtype: t.DType})
	default:
		a, err := dense.FromAny(v)
		if err != nil {
			return nil, err
		}
		if t.DType != nil {
			a = a.AsType(*t.DType)
		}
		return Leaf(a), nil
	}
}
