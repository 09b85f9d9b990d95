package parse

import "errors"

// ErrParse reports a document that cannot decode into a tree.
var ErrParse = errors.New("parse error")
