package tree

import "errors"

var (
	// ErrType indicates a value of the wrong shape for the operation, such
	// as building a tree from something neither sequence nor mapping like,
	// or appending to a mapping node.
	ErrType = errors.New("bad type")
	// ErrKey indicates a malformed or misused key: a composite mapping
	// key, a tree shaped index applied to a leaf, or assignment past the
	// end of a sequence node.
	ErrKey = errors.New("bad key")
	// ErrKeyNotFound indicates a referenced key absent from a node. The
	// message carries the valid key set.
	ErrKeyNotFound = errors.New("key not found")
	// ErrStructure indicates trees that cannot be combined: mixed keying
	// modes, or an operand key set that is not a subset of the reference
	// operand's.
	ErrStructure = errors.New("structural mismatch")
	// ErrSize indicates a flat vector whose length does not match the
	// total element count requested by a shape tree.
	ErrSize = errors.New("size mismatch")
)
