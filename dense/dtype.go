package dense

import "fmt"

// DType identifies the element type of an Array. The zero value is Float64,
// matching the default leaf conversion type.
type DType int

const (
	Float64 DType = iota
	Int64
	Bool
)

func (t DType) String() string {
	s, ok := map[DType]string{
		Float64: "float64",
		Int64:   "int64",
		Bool:    "bool",
	}[t]
	if ok {
		return s
	}
	return "<unknown dtype>"
}

func (t DType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *DType) UnmarshalText(d []byte) error {
	tt, ok := map[string]DType{
		"float64": Float64,
		"int64":   Int64,
		"bool":    Bool,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized dtype %q", d)
	}
	*t = tt
	return nil
}

func DTypes() []DType {
	return []DType{
		Float64,
		Int64,
		Bool,
	}
}

func (t DType) IsNumeric() bool {
	switch t {
	case Float64, Int64:
		return true
	default:
		return false
	}
}

// promote returns the common dtype of two operands under the usual
// widening order Bool < Int64 < Float64.
func promote(a, b DType) DType {
	if a == Float64 || b == Float64 {
		return Float64
	}
	if a == Int64 || b == Int64 {
		return Int64
	}
	return Bool
}

// promoteArith is promote with Bool widened to Int64, since arithmetic
// on truth values yields counts.
func promoteArith(a, b DType) DType {
	p := promote(a, b)
	if p == Bool {
		p = Int64
	}
	return p
}
