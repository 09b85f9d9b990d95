package dense

import (
	"errors"
	"testing"
)

func TestReshapeOrders(t *testing.T) {
	a := mustFromAny(t, []int{1, 2, 3, 4, 5, 6})
	c, err := a.Reshape(Shape{2, 3}, RowMajor)
	if err != nil {
		t.Fatal(err)
	}
	if !c.Equal(mustFromAny(t, [][]int{{1, 2, 3}, {4, 5, 6}})) {
		t.Errorf("row major: got %v", c)
	}
	f, err := a.Reshape(Shape{2, 3}, ColMajor)
	if err != nil {
		t.Fatal(err)
	}
	if !f.Equal(mustFromAny(t, [][]int{{1, 3, 5}, {2, 4, 6}})) {
		t.Errorf("column major: got %v", f)
	}
	if _, err := a.Reshape(Shape{4}, RowMajor); !errors.Is(err, ErrShape) {
		t.Errorf("size mismatch: got %v want ErrShape", err)
	}
}

func TestReshapeInfersDimension(t *testing.T) {
	a := mustFromAny(t, []int{1, 2, 3, 4, 5, 6})
	got, err := a.Reshape(Shape{3, -1}, RowMajor)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Shape().Equal(Shape{3, 2}) {
		t.Errorf("shape: got %v want (3 2)", got.Shape())
	}
	if _, err := a.Reshape(Shape{-1, -1}, RowMajor); !errors.Is(err, ErrShape) {
		t.Errorf("double inference: got %v want ErrShape", err)
	}
	if _, err := a.Reshape(Shape{4, -1}, RowMajor); !errors.Is(err, ErrShape) {
		t.Errorf("indivisible: got %v want ErrShape", err)
	}
}

func TestRavelOrders(t *testing.T) {
	a := mustFromAny(t, [][]int{{1, 2, 3}, {4, 5, 6}})
	if got := a.Ravel(RowMajor); !got.Equal(mustFromAny(t, []int{1, 2, 3, 4, 5, 6})) {
		t.Errorf("row major: got %v", got)
	}
	if got := a.Ravel(ColMajor); !got.Equal(mustFromAny(t, []int{1, 4, 2, 5, 3, 6})) {
		t.Errorf("column major: got %v", got)
	}
}

func TestReshapeRavelRoundTrip(t *testing.T) {
	a := mustFromAny(t, [][]int{{1, 2, 3}, {4, 5, 6}})
	for _, o := range []Order{RowMajor, ColMajor} {
		back, err := a.Ravel(o).Reshape(Shape{2, 3}, o)
		if err != nil {
			t.Fatal(err)
		}
		if !back.Equal(a) {
			t.Errorf("order %v: got %v want %v", o, back, a)
		}
	}
}

func TestSqueeze(t *testing.T) {
	a, err := mustFromAny(t, []int{1, 2, 3}).Reshape(Shape{1, 3, 1}, RowMajor)
	if err != nil {
		t.Fatal(err)
	}
	all, err := a.Squeeze()
	if err != nil {
		t.Fatal(err)
	}
	if !all.Shape().Equal(Shape{3}) {
		t.Errorf("squeeze all: got %v", all.Shape())
	}
	one, err := a.Squeeze(0)
	if err != nil {
		t.Fatal(err)
	}
	if !one.Shape().Equal(Shape{3, 1}) {
		t.Errorf("squeeze axis 0: got %v", one.Shape())
	}
	if _, err := a.Squeeze(1); !errors.Is(err, ErrShape) {
		t.Errorf("squeeze wide axis: got %v want ErrShape", err)
	}
	s, err := mustFromAny(t, []int{7}).Squeeze()
	if err != nil {
		t.Fatal(err)
	}
	if s.NDim() != 0 {
		t.Errorf("single element squeezes to scalar, got shape %v", s.Shape())
	}
}

func TestTranspose(t *testing.T) {
	a := mustFromAny(t, [][]int{{1, 2, 3}, {4, 5, 6}})
	got, err := a.Transpose()
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(mustFromAny(t, [][]int{{1, 4}, {2, 5}, {3, 6}})) {
		t.Errorf("got %v", got)
	}
	same, err := a.Transpose(0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !same.Equal(a) {
		t.Errorf("identity permutation: got %v", same)
	}
	if _, err := a.Transpose(0, 0); !errors.Is(err, ErrIndex) {
		t.Errorf("bad permutation: got %v want ErrIndex", err)
	}
}

func TestConcat(t *testing.T) {
	a := mustFromAny(t, []int{1, 2})
	b := mustFromAny(t, []float64{3})
	got, err := Concat(0, a, b)
	if err != nil {
		t.Fatal(err)
	}
	if got.DType() != Float64 {
		t.Errorf("dtype widening: got %v", got.DType())
	}
	if !got.Equal(mustFromAny(t, []float64{1, 2, 3})) {
		t.Errorf("got %v", got)
	}
	m := mustFromAny(t, [][]int{{1, 2}, {3, 4}})
	cols, err := Concat(1, m, m)
	if err != nil {
		t.Fatal(err)
	}
	if !cols.Equal(mustFromAny(t, [][]int{{1, 2, 1, 2}, {3, 4, 3, 4}})) {
		t.Errorf("axis 1: got %v", cols)
	}
	if _, err := Concat(0, m, a); !errors.Is(err, ErrShape) {
		t.Errorf("mixed ndim: got %v want ErrShape", err)
	}
}

func TestAtLeast1D(t *testing.T) {
	s, err := Scalar(5)
	if err != nil {
		t.Fatal(err)
	}
	if got := s.AtLeast1D(); !got.Shape().Equal(Shape{1}) {
		t.Errorf("scalar: got %v", got.Shape())
	}
	v := mustFromAny(t, []int{1, 2})
	if got := v.AtLeast1D(); got != v {
		t.Errorf("1-d input should pass through")
	}
}
