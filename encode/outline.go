package encode

import (
	"fmt"
	"strconv"

	"github.com/xlab/treeprint"

	"github.com/grovekit/grove/tree"
)

// Outline renders the structure of a tree without its data: one branch
// per container, one line per leaf with its dtype and shape.
func Outline(t *tree.Node) string {
	root := treeprint.NewWithRoot(describe(t))
	outline(t, root)
	return root.String()
}

func outline(t *tree.Node, br treeprint.Tree) {
	for i, v := range t.Values {
		label := strconv.Itoa(i)
		if t.Kind == tree.MapKind {
			label = t.Keys[i]
		}
		if v.Kind.IsContainer() {
			outline(v, br.AddBranch(fmt.Sprintf("%s %s", label, describe(v))))
			continue
		}
		br.AddNode(fmt.Sprintf("%s %s", label, describe(v)))
	}
}

func describe(t *tree.Node) string {
	switch t.Kind {
	case tree.LeafKind:
		return fmt.Sprintf("%s %s", t.Arr.DType(), t.Arr.Shape())
	case tree.ListKind:
		return fmt.Sprintf("list[%d]", t.Len())
	case tree.MapKind:
		return fmt.Sprintf("map[%d]", t.Len())
	case tree.IndexKind:
		return fmt.Sprintf("index %s", t.Idx)
	default:
		return "invalid"
	}
}
