package dense

import (
	"errors"
	"testing"
)

func TestSliceSelections(t *testing.T) {
	a := mustFromAny(t, [][]int{{1, 2, 3}, {4, 5, 6}})
	for _, tc := range []struct {
		name string
		idx  Index
		want any
	}{
		{"row", Idx(At(0)), []int{1, 2, 3}},
		{"negative-row", Idx(At(-1)), []int{4, 5, 6}},
		{"cell", Idx(At(1), At(2)), 6},
		{"column", Idx(All(), At(1)), []int{2, 5}},
		{"span", Idx(All(), Span(0, 2)), [][]int{{1, 2}, {4, 5}}},
		{"open-span", Idx(All(), From(1)), [][]int{{2, 3}, {5, 6}}},
		{"clamped-span", Idx(All(), Span(1, 99)), [][]int{{2, 3}, {5, 6}}},
		{"stepped", Idx(All(), Step(0, 3, 2)), [][]int{{1, 3}, {4, 6}}},
		{"new-axis", Idx(NewAxis(), At(0)), [][]int{{1, 2, 3}}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := a.Slice(tc.idx)
			if err != nil {
				t.Fatal(err)
			}
			want := mustFromAny(t, tc.want)
			if !got.Equal(want) {
				t.Errorf("got %v %v want %v %v", got, got.Shape(), want, want.Shape())
			}
		})
	}
	empty, err := a.Slice(Idx(Span(1, 1)))
	if err != nil {
		t.Fatal(err)
	}
	if !empty.Shape().Equal(Shape{0, 3}) {
		t.Errorf("empty span shape: got %v want (0 3)", empty.Shape())
	}
}

func TestSliceErrors(t *testing.T) {
	a := mustFromAny(t, []int{1, 2, 3})
	if _, err := a.Slice(Idx(At(3))); !errors.Is(err, ErrIndex) {
		t.Errorf("point out of range: got %v want ErrIndex", err)
	}
	if _, err := a.Slice(Idx(At(0), At(0))); !errors.Is(err, ErrIndex) {
		t.Errorf("too many selections: got %v want ErrIndex", err)
	}
	if _, err := a.Slice(Idx(Step(0, 3, 0))); !errors.Is(err, ErrIndex) {
		t.Errorf("zero step: got %v want ErrIndex", err)
	}
}

func TestSetSlice(t *testing.T) {
	a := mustFromAny(t, [][]int{{1, 2, 3}, {4, 5, 6}})
	if err := a.SetSlice(Idx(At(0)), mustFromAny(t, []int{7, 8, 9})); err != nil {
		t.Fatal(err)
	}
	if !a.Equal(mustFromAny(t, [][]int{{7, 8, 9}, {4, 5, 6}})) {
		t.Errorf("row assign: got %v", a)
	}
	if err := a.SetSlice(Idx(All(), At(0)), mustFromAny(t, 0)); err != nil {
		t.Fatal(err)
	}
	if !a.Equal(mustFromAny(t, [][]int{{0, 8, 9}, {0, 5, 6}})) {
		t.Errorf("broadcast scalar assign: got %v", a)
	}
	err := a.SetSlice(Idx(At(0)), mustFromAny(t, []int{1, 2}))
	if !errors.Is(err, ErrShape) {
		t.Errorf("misfit value: got %v want ErrShape", err)
	}
}

func TestSetSliceCastsToReceiverDType(t *testing.T) {
	a := mustFromAny(t, []int{1, 2, 3})
	if err := a.SetSlice(Idx(At(1)), mustFromAny(t, 2.9)); err != nil {
		t.Fatal(err)
	}
	if a.DType() != Int64 {
		t.Fatalf("dtype changed to %v", a.DType())
	}
	if !a.Equal(mustFromAny(t, []int{1, 2, 3})) {
		t.Errorf("got %v want [1 2 3]", a)
	}
}

func TestMask(t *testing.T) {
	a := mustFromAny(t, [][]int{{1, 2}, {3, 4}})
	m := mustFromAny(t, [][]bool{{true, false}, {false, true}})
	got, err := a.Mask(m)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(mustFromAny(t, []int{1, 4})) {
		t.Errorf("got %v", got)
	}
	if _, err := a.Mask(mustFromAny(t, []bool{true, false})); !errors.Is(err, ErrShape) {
		t.Errorf("mask shape: got %v want ErrShape", err)
	}
	if _, err := a.Mask(mustFromAny(t, [][]int{{1, 0}, {0, 1}})); !errors.Is(err, ErrDType) {
		t.Errorf("non bool mask: got %v want ErrDType", err)
	}
}

func TestSetMask(t *testing.T) {
	a := mustFromAny(t, []int{1, 2, 3, 4})
	m := mustFromAny(t, []bool{true, false, true, false})
	if err := a.SetMask(m, mustFromAny(t, 0)); err != nil {
		t.Fatal(err)
	}
	if !a.Equal(mustFromAny(t, []int{0, 2, 0, 4})) {
		t.Errorf("fill assign: got %v", a)
	}
	if err := a.SetMask(m, mustFromAny(t, []int{8, 9})); err != nil {
		t.Fatal(err)
	}
	if !a.Equal(mustFromAny(t, []int{8, 2, 9, 4})) {
		t.Errorf("positional assign: got %v", a)
	}
	err := a.SetMask(m, mustFromAny(t, []int{1, 2, 3}))
	if !errors.Is(err, ErrShape) {
		t.Errorf("count mismatch: got %v want ErrShape", err)
	}
}

func TestTake(t *testing.T) {
	a := mustFromAny(t, [][]int{{1, 2}, {3, 4}, {5, 6}})
	got, err := a.Take(mustFromAny(t, []int{2, 0, 2}))
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(mustFromAny(t, [][]int{{5, 6}, {1, 2}, {5, 6}})) {
		t.Errorf("got %v", got)
	}
	neg, err := a.Take(mustFromAny(t, []int{-1}))
	if err != nil {
		t.Fatal(err)
	}
	if !neg.Equal(mustFromAny(t, [][]int{{5, 6}})) {
		t.Errorf("negative position: got %v", neg)
	}
	if _, err := a.Take(mustFromAny(t, []int{3})); !errors.Is(err, ErrIndex) {
		t.Errorf("row out of range: got %v want ErrIndex", err)
	}
	if _, err := a.Take(mustFromAny(t, []float64{0})); !errors.Is(err, ErrDType) {
		t.Errorf("float positions: got %v want ErrDType", err)
	}
}

func TestSetTake(t *testing.T) {
	a := mustFromAny(t, [][]int{{1, 2}, {3, 4}})
	if err := a.SetTake(mustFromAny(t, []int{1}), mustFromAny(t, []int{9, 9})); err != nil {
		t.Fatal(err)
	}
	if !a.Equal(mustFromAny(t, [][]int{{1, 2}, {9, 9}})) {
		t.Errorf("got %v", a)
	}
	if err := a.SetTake(mustFromAny(t, []int{0, 1}), mustFromAny(t, 0)); err != nil {
		t.Fatal(err)
	}
	if !a.Equal(mustFromAny(t, [][]int{{0, 0}, {0, 0}})) {
		t.Errorf("broadcast fill: got %v", a)
	}
}
