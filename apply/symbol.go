package apply

// Symbol is a named operation in the registry.
type Symbol interface {
	String() string
	Func() Func
}

type name string

func (s name) String() string {
	return string(s)
}

type funcSymbol struct {
	name
	fn Func
}

func (s *funcSymbol) Func() Func {
	return s.fn
}

// NewSymbol pairs a name with a leaf operation for registration.
func NewSymbol(n string, fn Func) Symbol {
	return &funcSymbol{name: name(n), fn: fn}
}
