package dense

import "errors"

var (
	// ErrShape indicates incompatible or malformed array shapes.
	ErrShape = errors.New("shape mismatch")
	// ErrDType indicates an element type unsupported by the operation.
	ErrDType = errors.New("bad dtype")
	// ErrIndex indicates an out of range or malformed selection.
	ErrIndex = errors.New("bad index")
)
