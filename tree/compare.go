package tree

import (
	"sort"
	"strings"
)

func rank(n *Node) int {
	switch n.Kind {
	case LeafKind:
		return 1
	case IndexKind:
		return 2
	case ListKind:
		return 3
	case MapKind:
		return 4
	default:
		return 0
	}
}

// Compare defines a total order over trees. Nodes of different kinds
// order by kind. Leaves delegate to the array order, sequences compare
// children pairwise, and mappings compare in sorted key order so that
// equal mappings compare equal regardless of insertion order. Index
// nodes order by their selection text.
func Compare(a, b *Node) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	if d := rank(a) - rank(b); d != 0 {
		return d
	}
	switch a.Kind {
	case LeafKind:
		return a.Arr.Compare(b.Arr)
	case IndexKind:
		return strings.Compare(a.Idx.String(), b.Idx.String())
	case ListKind:
		if d := len(a.Values) - len(b.Values); d != 0 {
			return d
		}
		for i := range a.Values {
			if d := Compare(a.Values[i], b.Values[i]); d != 0 {
				return d
			}
		}
		return 0
	case MapKind:
		ka, kb := sortedKeys(a), sortedKeys(b)
		if d := len(ka) - len(kb); d != 0 {
			return d
		}
		for i := range ka {
			if d := strings.Compare(ka[i], kb[i]); d != 0 {
				return d
			}
		}
		for _, k := range ka {
			_, va := a.childByName(k)
			_, vb := b.childByName(k)
			if d := Compare(va, vb); d != 0 {
				return d
			}
		}
		return 0
	default:
		return 0
	}
}

func sortedKeys(n *Node) []string {
	ks := append([]string(nil), n.Keys...)
	sort.Strings(ks)
	return ks
}

// Equal reports whether a and b hold the same structure and equal
// leaves, ignoring mapping key order.
func Equal(a, b *Node) bool {
	return Compare(a, b) == 0
}
