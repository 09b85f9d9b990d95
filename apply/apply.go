package apply

import (
	"fmt"
	"sort"
	"strings"

	"github.com/grovekit/grove/tree"
)

// Func is a leaf level operation. Positional arguments arrive in order
// with tree operands projected down to dense arrays; kw carries named
// options such as "axis" or "order".
type Func func(args []any, kw map[string]any) (any, error)

// Call applies fn across the shared structure of any tree operands in
// args. With no tree operand anywhere, fn runs once, natively.
func Call(fn Func, args ...any) (any, error) {
	return CallKW(fn, args, nil)
}

// CallKW is Call with named arguments. Tree operands inside kw
// participate in dispatch the same way positional ones do.
func CallKW(fn Func, args []any, kw map[string]any) (any, error) {
	ops := scanOperands(args, kw)
	if len(ops) == 0 {
		return fn(args, kw)
	}
	ref := ops[0]
	for _, op := range ops[1:] {
		if op.Len() > ref.Len() {
			ref = op
		}
	}
	if err := checkOperands(ops, ref); err != nil {
		return nil, err
	}
	res := ref.Clone()
	for _, k := range sharedKeys(ops, ref) {
		pargs, pkw := projectArgs(args, kw, k)
		sub, err := CallKW(fn, pargs, pkw)
		if err != nil {
			return nil, err
		}
		if err := res.Set(k, sub); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func sortedMapKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// scanOperands collects every tree container reachable from the
// arguments, descending through plain sequences and mappings. Map keys
// are visited in sorted order so the reference choice is deterministic.
func scanOperands(args []any, kw map[string]any) []*tree.Node {
	var ops []*tree.Node
	var scan func(v any)
	scan = func(v any) {
		switch x := v.(type) {
		case *tree.Node:
			if x.Kind.IsContainer() {
				ops = append(ops, x)
			}
		case []any:
			for _, e := range x {
				scan(e)
			}
		case map[string]any:
			for _, k := range sortedMapKeys(x) {
				scan(x[k])
			}
		}
	}
	for _, a := range args {
		scan(a)
	}
	for _, k := range sortedMapKeys(kw) {
		scan(kw[k])
	}
	return ops
}

// checkOperands enforces the compatibility rule: one keying mode, and
// every operand's keys a subset of the reference's.
func checkOperands(ops []*tree.Node, ref *tree.Node) error {
	var refKeys map[string]bool
	if ref.Kind == tree.MapKind {
		refKeys = make(map[string]bool, ref.Len())
		for _, k := range ref.MapKeys() {
			refKeys[k] = true
		}
	}
	for _, op := range ops {
		if op.Kind != ref.Kind {
			return fmt.Errorf("%w: cannot mix %s and %s keyed operands",
				tree.ErrStructure, op.Kind, ref.Kind)
		}
		if op.Kind != tree.MapKind {
			continue
		}
		for _, k := range op.MapKeys() {
			if !refKeys[k] {
				return fmt.Errorf("%w: operand key %s is not among the reference keys %s",
					tree.ErrStructure, k, strings.Join(ref.MapKeys(), ", "))
			}
		}
	}
	return nil
}

// sharedKeys returns the intersection of the operand key sets in the
// reference operand's order.
func sharedKeys(ops []*tree.Node, ref *tree.Node) []any {
	if ref.Kind == tree.ListKind {
		n := ref.Len()
		for _, op := range ops {
			if op.Len() < n {
				n = op.Len()
			}
		}
		keys := make([]any, n)
		for i := range keys {
			keys[i] = i
		}
		return keys
	}
	var keys []any
	for _, k := range ref.MapKeys() {
		inAll := true
		for _, op := range ops {
			if _, err := op.Get(k); err != nil {
				inAll = false
				break
			}
		}
		if inAll {
			keys = append(keys, k)
		}
	}
	return keys
}

func projectArgs(args []any, kw map[string]any, key any) ([]any, map[string]any) {
	pargs := make([]any, 0, len(args))
	for _, a := range args {
		if v, ok := projectValue(a, key); ok {
			pargs = append(pargs, v)
		}
	}
	var pkw map[string]any
	if kw != nil {
		pkw = make(map[string]any, len(kw))
		for k, v := range kw {
			if pv, ok := projectValue(v, key); ok {
				pkw[k] = pv
			}
		}
	}
	return pargs, pkw
}

// projectValue projects one argument onto a shared key. A tree operand
// contributes its child there, with leaf children unwrapped to their
// arrays; an operand without the key is omitted from the projected
// call. Plain sequences and mappings project elementwise, and a
// sequence left holding a single element unwraps to it. Everything
// else passes through unchanged.
func projectValue(v any, key any) (any, bool) {
	switch x := v.(type) {
	case *tree.Node:
		if !x.Kind.IsContainer() {
			return v, true
		}
		child, err := x.Get(key)
		if err != nil {
			return nil, false
		}
		switch child.Kind {
		case tree.LeafKind:
			return child.Arr, true
		case tree.IndexKind:
			return child.Idx, true
		default:
			return child, true
		}
	case []any:
		res := make([]any, 0, len(x))
		for _, e := range x {
			if pv, ok := projectValue(e, key); ok {
				res = append(res, pv)
			}
		}
		if len(res) == 1 {
			return res[0], true
		}
		return res, true
	case map[string]any:
		res := make(map[string]any, len(x))
		for k, e := range x {
			if pv, ok := projectValue(e, key); ok {
				res[k] = pv
			}
		}
		return res, true
	default:
		return v, true
	}
}
