package dense

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFromAnyInfersDTypeAndShape(t *testing.T) {
	for _, tc := range []struct {
		name  string
		in    any
		dt    DType
		shape Shape
	}{
		{"scalar-int", 3, Int64, Shape{}},
		{"scalar-float", 1.5, Float64, Shape{}},
		{"scalar-bool", true, Bool, Shape{}},
		{"ints", []int{1, 2, 3}, Int64, Shape{3}},
		{"floats", []float64{1, 2}, Float64, Shape{2}},
		{"bools", []bool{true, false}, Bool, Shape{2}},
		{"mixed-widens", []any{1, 2.5}, Float64, Shape{2}},
		{"bool-and-int", []any{true, 2}, Int64, Shape{2}},
		{"nested", [][]int{{1, 2, 3}, {4, 5, 6}}, Int64, Shape{2, 3}},
		{"empty", []float64{}, Float64, Shape{0}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			a, err := FromAny(tc.in)
			if err != nil {
				t.Fatal(err)
			}
			if a.DType() != tc.dt {
				t.Errorf("dtype: got %v want %v", a.DType(), tc.dt)
			}
			if !a.Shape().Equal(tc.shape) {
				t.Errorf("shape: got %v want %v", a.Shape(), tc.shape)
			}
		})
	}
}

func TestFromAnyRejectsRaggedAndNonNumeric(t *testing.T) {
	if _, err := FromAny([]any{[]int{1, 2}, []int{3}}); !errors.Is(err, ErrShape) {
		t.Errorf("ragged: got %v want ErrShape", err)
	}
	if _, err := FromAny([]any{1, "two"}); !errors.Is(err, ErrDType) {
		t.Errorf("string element: got %v want ErrDType", err)
	}
}

func TestToListRoundTrip(t *testing.T) {
	a, err := FromAny([][]float64{{1, 2}, {3, 4}})
	if err != nil {
		t.Fatal(err)
	}
	want := []any{[]any{1.0, 2.0}, []any{3.0, 4.0}}
	if d := cmp.Diff(want, a.ToList()); d != "" {
		t.Errorf("unexpected list (-want +got):\n%s", d)
	}
	b, err := FromAny(a.ToList())
	if err != nil {
		t.Fatal(err)
	}
	if !a.Equal(b) {
		t.Errorf("round trip changed the array: %v vs %v", a, b)
	}
}

func TestAsTypeCasts(t *testing.T) {
	a, err := FromFloats(nil, 1.9, -0.5, 0)
	if err != nil {
		t.Fatal(err)
	}
	ints := a.AsType(Int64)
	if got := ints.i64; got[0] != 1 || got[1] != 0 || got[2] != 0 {
		t.Errorf("float to int truncation: got %v", got)
	}
	bools := a.AsType(Bool)
	if got := bools.bits; !got[0] || !got[1] || got[2] {
		t.Errorf("float to bool truthiness: got %v", got)
	}
}

func TestItemAndAt(t *testing.T) {
	a, err := FromInts(Shape{2, 2}, 1, 2, 3, 4)
	if err != nil {
		t.Fatal(err)
	}
	v, err := a.At(1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if v != int64(3) {
		t.Errorf("At(1,0): got %v want 3", v)
	}
	v, err = a.At(-1, -1)
	if err != nil {
		t.Fatal(err)
	}
	if v != int64(4) {
		t.Errorf("At(-1,-1): got %v want 4", v)
	}
	if _, err := a.At(2, 0); !errors.Is(err, ErrIndex) {
		t.Errorf("out of range: got %v want ErrIndex", err)
	}
	if _, err := a.Item(); !errors.Is(err, ErrShape) {
		t.Errorf("Item on 4 elements: got %v want ErrShape", err)
	}
	s, err := Scalar(7)
	if err != nil {
		t.Fatal(err)
	}
	v, err = s.Item()
	if err != nil {
		t.Fatal(err)
	}
	if v != int64(7) {
		t.Errorf("scalar item: got %v want 7", v)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	a, err := FromFloats(nil, 1, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	b := a.Clone()
	if err := b.SetAt(9.0, 0); err != nil {
		t.Fatal(err)
	}
	if v, _ := a.At(0); v != 1.0 {
		t.Errorf("mutating a clone changed the original: %v", a)
	}
}
