package grove

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/grovekit/grove/dense"
	"github.com/grovekit/grove/tree"
)

func TestShapes(t *testing.T) {
	tr := mustBuild(t, map[string]any{
		"a": [][]int{{1, 2}, {3, 4}},
		"b": []int{1, 2, 3},
	})
	got := Shapes(tr)
	want := mustBuild(t, map[string]any{"a": []int{2, 2}, "b": []int{3}})
	wantEqual(t, got, want)
}

func TestNDims(t *testing.T) {
	tr := mustBuild(t, map[string]any{
		"a": [][]int{{1, 2}, {3, 4}},
		"b": 5,
	})
	got := NDims(tr)
	want := mustBuild(t, map[string]any{"a": 2, "b": 0})
	wantEqual(t, got, want)
}

func TestSizeTotal(t *testing.T) {
	tr := mustBuild(t, map[string]any{
		"a": [][]int{{1, 2}, {3, 4}},
		"b": 5,
	})
	if n := Size(tr); n != 5 {
		t.Fatalf("size = %d, want 5", n)
	}
}

func TestFlatten(t *testing.T) {
	tr := mustBuild(t, map[string]any{
		"a": [][]int{{1, 2}, {3, 4}},
		"c": 7,
	})
	flat, err := Flatten(tr)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]int64{1, 2, 3, 4, 7}, flat.Ints()); d != "" {
		t.Fatal(d)
	}
}

func TestFlattenEmpty(t *testing.T) {
	flat, err := Flatten(tree.Map())
	if err != nil {
		t.Fatal(err)
	}
	if flat.Size() != 0 {
		t.Fatalf("size = %d, want 0", flat.Size())
	}
}

func TestFlattenFromVectorInverse(t *testing.T) {
	tr := mustBuild(t, map[string]any{
		"a": [][]float64{{1, 2}, {3, 4}},
		"b": []float64{5},
		"c": map[string]any{"d": 6.0},
	})
	flat, err := Flatten(tr)
	if err != nil {
		t.Fatal(err)
	}
	back, err := FromVector(flat, Shapes(tr), dense.RowMajor)
	if err != nil {
		t.Fatal(err)
	}
	wantEqual(t, back, tr)
}

func TestReshapeUniform(t *testing.T) {
	tr := mustBuild(t, map[string]any{"a": []int{1, 2, 3, 4}, "b": []int{5, 6, 7, 8}})
	got, err := Reshape(tr, []int{2, 2}, dense.RowMajor)
	if err != nil {
		t.Fatal(err)
	}
	want := mustBuild(t, map[string]any{
		"a": [][]int{{1, 2}, {3, 4}},
		"b": [][]int{{5, 6}, {7, 8}},
	})
	wantEqual(t, got, want)
}

func TestReshapePerLeaf(t *testing.T) {
	tr := mustBuild(t, map[string]any{"a": []int{1, 2, 3, 4}, "b": []int{5, 6, 7, 8}})
	shapes := mustBuild(t, map[string]any{"a": []int{4}, "b": []int{2, 2}})
	got, err := Reshape(tr, shapes, dense.RowMajor)
	if err != nil {
		t.Fatal(err)
	}
	want := mustBuild(t, map[string]any{
		"a": []int{1, 2, 3, 4},
		"b": [][]int{{5, 6}, {7, 8}},
	})
	wantEqual(t, got, want)
}

func TestZeros(t *testing.T) {
	shapes := mustBuild(t, map[string]any{"a": []int{2, 2}, "b": []int{3}})
	got, err := Zeros(shapes, dense.Float64)
	if err != nil {
		t.Fatal(err)
	}
	want := mustBuild(t, map[string]any{
		"a": [][]float64{{0, 0}, {0, 0}},
		"b": []float64{0, 0, 0},
	})
	wantEqual(t, got, want)
}

func TestZerosScalarTarget(t *testing.T) {
	empty, err := dense.FromInts(dense.Shape{0})
	if err != nil {
		t.Fatal(err)
	}
	shapes := tree.Map(tree.KV("s", tree.Leaf(empty)))
	got, err := Zeros(shapes, dense.Int64)
	if err != nil {
		t.Fatal(err)
	}
	s, err := got.Get("s")
	if err != nil {
		t.Fatal(err)
	}
	if n := s.Arr.NDim(); n != 0 {
		t.Fatalf("ndim = %d, want a scalar leaf", n)
	}
	if v, _ := s.Arr.Item(); v != int64(0) {
		t.Fatalf("value = %v, want 0", v)
	}
}

func TestZerosNegativeDim(t *testing.T) {
	shapes := mustBuild(t, map[string]any{"a": []int{-1}})
	if _, err := Zeros(shapes, dense.Float64); err == nil {
		t.Fatal("negative dimension did not error")
	}
}

func TestSumElems(t *testing.T) {
	tr := mustBuild(t, []any{
		map[string]any{"a": 1, "b": []int{2, 3}},
		map[string]any{"a": 10, "b": []int{20, 30}},
		map[string]any{"a": 100, "b": []int{200, 300}},
	})
	got, err := SumElems(tr)
	if err != nil {
		t.Fatal(err)
	}
	want := mustBuild(t, map[string]any{"a": 111, "b": []int{222, 333}})
	wantEqual(t, got, want)
}

func TestSumElemsSingle(t *testing.T) {
	tr := mustBuild(t, []any{map[string]any{"a": 1}})
	got, err := SumElems(tr)
	if err != nil {
		t.Fatal(err)
	}
	wantEqual(t, got, mustBuild(t, map[string]any{"a": 1}))

	// The result is a copy, not an alias of the sole element.
	sub, err := got.Get("a")
	if err != nil {
		t.Fatal(err)
	}
	if err := sub.Arr.SetAt(int64(99)); err != nil {
		t.Fatal(err)
	}
	orig, err := tr.GetPath("$[0].a")
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := orig.Arr.Item(); v != int64(1) {
		t.Fatalf("summing mutated its operand: %v", v)
	}
}

func TestSumElemsErrs(t *testing.T) {
	if _, err := SumElems(mustBuild(t, []any{})); !errors.Is(err, tree.ErrSize) {
		t.Fatalf("empty: err = %v, want ErrSize", err)
	}
	if _, err := SumElems(tree.Leaf(mustArr(t, 5))); !errors.Is(err, tree.ErrType) {
		t.Fatalf("leaf: err = %v, want ErrType", err)
	}
}

func TestSumLeaves(t *testing.T) {
	tr := mustBuild(t, map[string]any{"a": []int{1, 2}, "b": map[string]any{"c": 3}})
	got, err := SumLeaves(tr)
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := got.Item(); v != int64(6) {
		t.Fatalf("sum = %v, want 6", v)
	}
}

func TestAllAny(t *testing.T) {
	tr := mustBuild(t, map[string]any{"a": []int{1, 1}, "b": []int{1, 0}})
	if All(tr) {
		t.Fatal("All true despite a zero element")
	}
	if !Any(tr) {
		t.Fatal("Any false despite nonzero elements")
	}
	if !All(mustBuild(t, map[string]any{"a": []int{1, 1}})) {
		t.Fatal("All false on all-ones")
	}
	if All(tr) != tr.All() || Any(tr) != tr.Any() {
		t.Fatal("package helpers disagree with node methods")
	}
}
