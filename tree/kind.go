package tree

import "fmt"

// Kind discriminates the variants of a Node.
type Kind int

const (
	InvalidKind Kind = iota
	LeafKind
	ListKind
	MapKind
	IndexKind
)

func (k Kind) String() string {
	s, ok := map[Kind]string{
		InvalidKind: "Invalid",
		LeafKind:    "Leaf",
		ListKind:    "List",
		MapKind:     "Map",
		IndexKind:   "Index",
	}[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	kk, ok := map[string]Kind{
		"Invalid": InvalidKind,
		"Leaf":    LeafKind,
		"List":    ListKind,
		"Map":     MapKind,
		"Index":   IndexKind,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized kind %q", d)
	}
	*k = kk
	return nil
}

func Kinds() []Kind {
	return []Kind{
		InvalidKind,
		LeafKind,
		ListKind,
		MapKind,
		IndexKind,
	}
}

// IsContainer reports whether the kind carries children.
func (k Kind) IsContainer() bool {
	switch k {
	case ListKind, MapKind:
		return true
	default:
		return false
	}
}
