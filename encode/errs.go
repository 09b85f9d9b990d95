package encode

import "errors"

// ErrEncoding reports a tree that cannot be rendered in the requested
// format.
var ErrEncoding = errors.New("encoding error")
