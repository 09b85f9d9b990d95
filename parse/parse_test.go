package parse

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/grovekit/grove/dense"
	"github.com/grovekit/grove/tree"
)

func mustParse(t *testing.T, doc string, opts ...ParseOption) *tree.Node {
	t.Helper()
	n, err := Parse([]byte(doc), opts...)
	if err != nil {
		t.Fatalf("Parse(%q): %v", doc, err)
	}
	return n
}

func TestParseErrs(t *testing.T) {
	pts := []struct {
		in string
		e  error
	}{
		{in: `a: null`, e: ErrParse},
		{in: `a: hello`, e: ErrParse},
		{in: `[1, world]`, e: ErrParse},
		{in: `a: [`, e: ErrParse},
	}
	for _, pt := range pts {
		_, err := Parse([]byte(pt.in))
		if !errors.Is(err, pt.e) {
			t.Errorf("Parse(%q) = %v, want %v", pt.in, err, pt.e)
		}
	}
}

func TestParseCompositeKey(t *testing.T) {
	// Either the decoder or the key formatter must reject this.
	if _, err := Parse([]byte(`{[0, 1]: 2}`)); err == nil {
		t.Fatal("composite mapping key did not error")
	}
}

func TestParseKeyOrder(t *testing.T) {
	n := mustParse(t, "b: [1]\na: [2]\n")
	if d := cmp.Diff([]string{"b", "a"}, n.MapKeys()); d != "" {
		t.Fatalf("key order (-want +got):\n%s", d)
	}
}

func TestParseIntKeys(t *testing.T) {
	n := mustParse(t, "1: [1]\n0: [2]\n")
	if d := cmp.Diff([]string{"1", "0"}, n.MapKeys()); d != "" {
		t.Fatalf("key order (-want +got):\n%s", d)
	}
}

func TestParseCollapse(t *testing.T) {
	n := mustParse(t, `[[1, 2], [3, 4]]`)
	if n.Kind != tree.LeafKind {
		t.Fatalf("rectangular nest did not collapse: %s", n.Kind)
	}
	if !n.Arr.Shape().Equal(dense.Shape{2, 2}) {
		t.Fatalf("shape = %s, want (2 2)", n.Arr.Shape())
	}
	if n.Arr.DType() != dense.Int64 {
		t.Fatalf("dtype = %s, want int64", n.Arr.DType())
	}
}

func TestParseRagged(t *testing.T) {
	n := mustParse(t, `[[1, 2], [3]]`)
	if n.Kind != tree.ListKind || n.Len() != 2 {
		t.Fatalf("ragged nest should stay a sequence tree, got %s", n)
	}
	for i, v := range n.Values {
		if v.Kind != tree.LeafKind {
			t.Fatalf("child %d is a %s, want a leaf", i, v.Kind)
		}
	}
}

func TestParseDTypes(t *testing.T) {
	for _, pt := range []struct {
		in string
		dt dense.DType
	}{
		{in: `[1, 2]`, dt: dense.Int64},
		{in: `[1.0, 2.0]`, dt: dense.Float64},
		{in: `[1, 2.5]`, dt: dense.Float64},
		{in: `[true, false]`, dt: dense.Bool},
		{in: `-3`, dt: dense.Int64},
	} {
		n := mustParse(t, pt.in)
		if n.Arr.DType() != pt.dt {
			t.Errorf("Parse(%q) dtype = %s, want %s", pt.in, n.Arr.DType(), pt.dt)
		}
	}
}

func TestParseDTypeOption(t *testing.T) {
	n := mustParse(t, `a: [1, 2]`, ParseDType(dense.Float64))
	a, err := n.Get("a")
	if err != nil {
		t.Fatal(err)
	}
	if a.Arr.DType() != dense.Float64 {
		t.Fatalf("dtype = %s, want float64", a.Arr.DType())
	}
}

func TestParseNoConvert(t *testing.T) {
	n := mustParse(t, `[1, 2]`, ParseNoConvert())
	if n.Kind != tree.ListKind || n.Len() != 2 {
		t.Fatalf("got %s, want a sequence of scalar leaves", n)
	}
	if n.Values[0].Arr.NDim() != 0 {
		t.Fatalf("child ndim = %d, want 0", n.Values[0].Arr.NDim())
	}
}

func TestParseJSONStrict(t *testing.T) {
	if _, err := Parse([]byte(`{"a": [1, 2]}`), ParseJSON()); err != nil {
		t.Fatal(err)
	}
	_, err := Parse([]byte("a: [1, 2]"), ParseJSON())
	if !errors.Is(err, ErrParse) {
		t.Fatalf("YAML under ParseJSON: %v, want ErrParse", err)
	}
}

func TestParseScalarDoc(t *testing.T) {
	n := mustParse(t, `5`)
	if n.Kind != tree.LeafKind || n.Arr.NDim() != 0 {
		t.Fatalf("got %s, want a 0-d leaf", n)
	}
	if v, _ := n.Arr.Item(); v != int64(5) {
		t.Fatalf("value = %v, want 5", v)
	}
}

func TestParseNested(t *testing.T) {
	n := mustParse(t, `
a:
  b: [[1, 2], [3, 4]]
  c: [5.5]
d: [6, 7]
`)
	want, err := tree.Build(map[string]any{
		"a": map[string]any{
			"b": [][]int{{1, 2}, {3, 4}},
			"c": []float64{5.5},
		},
		"d": []int{6, 7},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !tree.Equal(n, want) {
		t.Fatalf("got %s, want %s", n, want)
	}
}
