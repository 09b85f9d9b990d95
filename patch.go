package grove

import (
	jsonpatch "github.com/evanphx/json-patch"

	"github.com/grovekit/grove/debug"
	"github.com/grovekit/grove/encode"
	"github.com/grovekit/grove/format"
	"github.com/grovekit/grove/parse"
	"github.com/grovekit/grove/tree"
)

// PatchJSON applies an RFC 6902 patch document to the JSON form of t
// and parses the result back into a tree. Leaf boundaries are not
// preserved through the byte form: the result re-collapses rectangular
// numeric sequences the way Parse does.
func PatchJSON(t *tree.Node, patchDoc []byte) (*tree.Node, error) {
	doc, err := encode.Bytes(t, encode.EncodeFormat(format.JSONFormat), encode.EncodeWire(true))
	if err != nil {
		return nil, err
	}
	ops, err := jsonpatch.DecodePatch(patchDoc)
	if err != nil {
		return nil, err
	}
	if debug.Diff() {
		debug.Logf("patch: %d byte doc, %d ops\n", len(doc), len(ops))
	}
	out, err := ops.Apply(doc)
	if err != nil {
		return nil, err
	}
	return parse.Parse(out, parse.ParseJSON())
}
