package dense

import (
	"errors"
	"testing"
)

func TestSum(t *testing.T) {
	a := mustFromAny(t, [][]int{{1, 2, 3}, {4, 5, 6}})
	full, err := a.Sum()
	if err != nil {
		t.Fatal(err)
	}
	if full.NDim() != 0 {
		t.Fatalf("full sum shape: got %v", full.Shape())
	}
	if v, _ := full.Item(); v != int64(21) {
		t.Errorf("full sum: got %v want 21", v)
	}
	rows, err := a.Sum(0)
	if err != nil {
		t.Fatal(err)
	}
	if !rows.Equal(mustFromAny(t, []int{5, 7, 9})) {
		t.Errorf("sum axis 0: got %v", rows)
	}
	cols, err := a.Sum(1)
	if err != nil {
		t.Fatal(err)
	}
	if !cols.Equal(mustFromAny(t, []int{6, 15})) {
		t.Errorf("sum axis 1: got %v", cols)
	}
}

func TestSumCountsBools(t *testing.T) {
	a := mustFromAny(t, []bool{true, true, false})
	got, err := a.Sum()
	if err != nil {
		t.Fatal(err)
	}
	if got.DType() != Int64 {
		t.Errorf("dtype: got %v want int64", got.DType())
	}
	if v, _ := got.Item(); v != int64(2) {
		t.Errorf("got %v want 2", v)
	}
}

func TestProd(t *testing.T) {
	got, err := mustFromAny(t, []int{2, 3, 4}).Prod()
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := got.Item(); v != int64(24) {
		t.Errorf("got %v want 24", v)
	}
}

func TestMinMax(t *testing.T) {
	a := mustFromAny(t, [][]float64{{3, 1}, {2, 4}})
	lo, err := a.Min()
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := lo.Float(); v != 1 {
		t.Errorf("min: got %v", v)
	}
	hi, err := a.Max(0)
	if err != nil {
		t.Fatal(err)
	}
	if !hi.Equal(mustFromAny(t, []float64{3, 4})) {
		t.Errorf("max axis 0: got %v", hi)
	}
	if _, err := mustFromAny(t, []float64{}).Min(); !errors.Is(err, ErrShape) {
		t.Errorf("empty min: got %v want ErrShape", err)
	}
}

func TestMean(t *testing.T) {
	got, err := mustFromAny(t, []int{1, 2, 3, 4}).Mean()
	if err != nil {
		t.Fatal(err)
	}
	if got.DType() != Float64 {
		t.Errorf("dtype: got %v want float64", got.DType())
	}
	if v, _ := got.Float(); v != 2.5 {
		t.Errorf("got %v want 2.5", v)
	}
}

func TestReduceAxisErrors(t *testing.T) {
	a := mustFromAny(t, [][]int{{1, 2}, {3, 4}})
	if _, err := a.Sum(2); !errors.Is(err, ErrIndex) {
		t.Errorf("axis out of range: got %v want ErrIndex", err)
	}
	if _, err := a.Sum(0, 0); !errors.Is(err, ErrIndex) {
		t.Errorf("duplicate axis: got %v want ErrIndex", err)
	}
}

func TestAllAny(t *testing.T) {
	if !mustFromAny(t, []int{1, 2}).All() {
		t.Error("all nonzero should be true")
	}
	if mustFromAny(t, []int{1, 0}).All() {
		t.Error("zero element should break all")
	}
	if !mustFromAny(t, []int{0, 3}).Any() {
		t.Error("nonzero element should satisfy any")
	}
	empty := mustFromAny(t, []float64{})
	if !empty.All() {
		t.Error("empty all should be true")
	}
	if empty.Any() {
		t.Error("empty any should be false")
	}
}
