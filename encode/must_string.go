package encode

import (
	"bytes"
	"strings"

	"github.com/grovekit/grove/tree"
)

// Bytes encodes t into memory.
func Bytes(t *tree.Node, opts ...EncodeOption) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := Encode(t, buf, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func MustString(t *tree.Node, opts ...EncodeOption) string {
	d, err := Bytes(t, opts...)
	if err != nil {
		panic(err)
	}
	return strings.TrimSpace(string(d))
}
