package apply

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/grovekit/grove/dense"
	"github.com/grovekit/grove/tree"
)

func mustArr(t *testing.T, v any) *dense.Array {
	t.Helper()
	a, err := dense.FromAny(v)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func mustBuild(t *testing.T, v any) *tree.Node {
	t.Helper()
	n, err := tree.Build(v)
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func wantTree(t *testing.T, got any, want *tree.Node) {
	t.Helper()
	node, ok := got.(*tree.Node)
	if !ok {
		t.Fatalf("got %T, want a tree", got)
	}
	if !tree.Equal(node, want) {
		t.Fatalf("got %s, want %s", node, want)
	}
}

func TestCallNoTrees(t *testing.T) {
	res, err := Op("add", 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	a, ok := res.(*dense.Array)
	if !ok {
		t.Fatalf("got %T, want an array", res)
	}
	if v, _ := a.Item(); v != int64(5) {
		t.Fatalf("2+3 = %v", v)
	}
}

func TestOpTreeScalar(t *testing.T) {
	tr := mustBuild(t, map[string]any{
		"a": []int{1, 2},
		"b": map[string]any{"c": []int{3}},
	})
	res, err := Op("add", tr, 1)
	if err != nil {
		t.Fatal(err)
	}
	wantTree(t, res, mustBuild(t, map[string]any{
		"a": []int{2, 3},
		"b": map[string]any{"c": []int{4}},
	}))
	// The operand itself is untouched.
	wantTree(t, tr, mustBuild(t, map[string]any{
		"a": []int{1, 2},
		"b": map[string]any{"c": []int{3}},
	}))
}

func TestOpTreeTree(t *testing.T) {
	t1 := mustBuild(t, map[string]any{"a": []int{1, 2}, "b": []int{3}})
	t2 := mustBuild(t, map[string]any{"a": []int{10, 20}, "b": []int{30}})
	res, err := Op("add", t1, t2)
	if err != nil {
		t.Fatal(err)
	}
	wantTree(t, res, mustBuild(t, map[string]any{"a": []int{11, 22}, "b": []int{33}}))
}

func TestOpLists(t *testing.T) {
	t1 := mustBuild(t, []any{[]int{1, 2}, []int{3}})
	t2 := mustBuild(t, []any{[]int{10, 20}, []int{30}})
	res, err := Op("mul", t1, t2)
	if err != nil {
		t.Fatal(err)
	}
	wantTree(t, res, mustBuild(t, []any{[]int{10, 40}, []int{90}}))
}

func TestOpSubset(t *testing.T) {
	t1 := mustBuild(t, map[string]any{"a": []int{1, 2}, "b": []int{3}})
	t2 := mustBuild(t, map[string]any{"a": []int{10, 20}})
	res, err := Op("add", t1, t2)
	if err != nil {
		t.Fatal(err)
	}
	node := res.(*tree.Node)
	wantTree(t, node, mustBuild(t, map[string]any{"a": []int{11, 22}, "b": []int{3}}))

	// The carried key holds a copy, not the operand's child.
	b, err := node.Get("b")
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Arr.SetAt(99, 0); err != nil {
		t.Fatal(err)
	}
	orig, _ := t1.Get("b")
	if v, _ := orig.Arr.Item(); v != int64(3) {
		t.Fatalf("operand mutated through result: %v", v)
	}
}

func TestOpSubsetViolation(t *testing.T) {
	t1 := mustBuild(t, map[string]any{"a": 1, "b": 2})
	t2 := mustBuild(t, map[string]any{"a": 1, "c": 2})
	_, err := Op("add", t1, t2)
	if !errors.Is(err, tree.ErrStructure) {
		t.Fatalf("err = %v, want ErrStructure", err)
	}
}

func TestOpMixedKinds(t *testing.T) {
	t1 := mustBuild(t, map[string]any{"a": 1})
	t2 := mustBuild(t, []any{1, 2})
	_, err := Op("add", t1, t2)
	if !errors.Is(err, tree.ErrStructure) {
		t.Fatalf("err = %v, want ErrStructure", err)
	}
}

func TestReferenceOrder(t *testing.T) {
	ref := tree.Map(
		tree.KV("b", tree.Leaf(mustArr(t, []int{1}))),
		tree.KV("a", tree.Leaf(mustArr(t, []int{2}))),
	)
	res, err := Op("add", ref, 1)
	if err != nil {
		t.Fatal(err)
	}
	got := res.(*tree.Node).MapKeys()
	if d := cmp.Diff([]string{"b", "a"}, got); d != "" {
		t.Fatalf("result key order (-want +got):\n%s", d)
	}
}

func TestReferenceLargest(t *testing.T) {
	small := mustBuild(t, []any{[]int{1}})
	large := mustBuild(t, []any{[]int{10}, []int{20}})
	res, err := Op("add", small, large)
	if err != nil {
		t.Fatal(err)
	}
	// The larger operand is the reference, so its extra entry carries
	// through untouched.
	wantTree(t, res, mustBuild(t, []any{[]int{11}, []int{20}}))
}

func TestOperandsInsideSequences(t *testing.T) {
	t1 := mustBuild(t, map[string]any{"a": []int{1, 2}})
	t2 := mustBuild(t, map[string]any{"a": []int{10, 20}})
	res, err := Op("add", []any{t1, t2})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := res.(*tree.Node); !ok {
		t.Fatalf("got %T, want a tree", res)
	}
}

func TestSingleElementUnwrap(t *testing.T) {
	tr := mustBuild(t, map[string]any{"a": []int{1, 2}})
	fn := func(args []any, kw map[string]any) (any, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("got %d args", len(args))
		}
		if _, ok := args[0].(*dense.Array); !ok {
			return nil, fmt.Errorf("got %T, want an array", args[0])
		}
		return args[0], nil
	}
	if _, err := Call(fn, []any{tr}); err != nil {
		t.Fatal(err)
	}
}

func TestKWTreeParticipates(t *testing.T) {
	t1 := mustBuild(t, map[string]any{"a": []int{1}, "b": []int{2}})
	t2 := mustBuild(t, map[string]any{"a": []int{10}, "b": []int{20}})
	fn := func(args []any, kw map[string]any) (any, error) {
		return dense.Add(args[0].(*dense.Array), kw["w"].(*dense.Array))
	}
	res, err := CallKW(fn, []any{t1}, map[string]any{"w": t2})
	if err != nil {
		t.Fatal(err)
	}
	wantTree(t, res, mustBuild(t, map[string]any{"a": []int{11}, "b": []int{22}}))
}

func TestOpKWReduction(t *testing.T) {
	tr := mustBuild(t, map[string]any{"a": [][]int{{1, 2}, {3, 4}}})
	res, err := OpKW("sum", []any{tr}, map[string]any{"axis": 0})
	if err != nil {
		t.Fatal(err)
	}
	wantTree(t, res, mustBuild(t, map[string]any{"a": []int{4, 6}}))

	res, err = Op("sum", tr)
	if err != nil {
		t.Fatal(err)
	}
	wantTree(t, res, mustBuild(t, map[string]any{"a": 10}))
}

func TestOpPredicates(t *testing.T) {
	tr := mustBuild(t, map[string]any{
		"a": []bool{true, true},
		"b": []bool{true, false},
	})
	res, err := Op("all", tr)
	if err != nil {
		t.Fatal(err)
	}
	wantTree(t, res, mustBuild(t, map[string]any{"a": true, "b": false}))

	res, err = Op("any", mustBuild(t, map[string]any{
		"a": []bool{false, false},
		"b": []bool{false, true},
	}))
	if err != nil {
		t.Fatal(err)
	}
	wantTree(t, res, mustBuild(t, map[string]any{"a": false, "b": true}))
}

func TestOpManip(t *testing.T) {
	tr := mustBuild(t, map[string]any{"a": []int{1, 2, 3, 4}})
	res, err := Op("reshape", tr, []int{2, 2})
	if err != nil {
		t.Fatal(err)
	}
	wantTree(t, res, mustBuild(t, map[string]any{"a": [][]int{{1, 2}, {3, 4}}}))

	sq := mustBuild(t, map[string]any{"a": [][]int{{1, 2, 3}}})
	res, err = Op("squeeze", sq)
	if err != nil {
		t.Fatal(err)
	}
	wantTree(t, res, mustBuild(t, map[string]any{"a": []int{1, 2, 3}}))

	tp := mustBuild(t, map[string]any{"a": [][]int{{1, 2}, {3, 4}}})
	res, err = Op("transpose", tp)
	if err != nil {
		t.Fatal(err)
	}
	wantTree(t, res, mustBuild(t, map[string]any{"a": [][]int{{1, 3}, {2, 4}}}))
}

func TestOpConcat(t *testing.T) {
	t1 := mustBuild(t, map[string]any{"a": []int{1, 2}})
	t2 := mustBuild(t, map[string]any{"a": []int{3}})
	res, err := Op("concat", t1, t2)
	if err != nil {
		t.Fatal(err)
	}
	wantTree(t, res, mustBuild(t, map[string]any{"a": []int{1, 2, 3}}))
}

func TestOpErrorCarriesLeafCause(t *testing.T) {
	t1 := mustBuild(t, map[string]any{"a": []int{1, 2}})
	t2 := mustBuild(t, map[string]any{"a": []int{1, 2, 3}})
	_, err := Op("add", t1, t2)
	if !errors.Is(err, dense.ErrShape) {
		t.Fatalf("err = %v, want ErrShape", err)
	}
}
