// Package treediff computes structural diffs between trees. A diff is
// an ordered report of changes, each addressed by a "$" rooted path.
// Sequences align positionally through a rune-interned text diff, so
// insertions in the middle of a sequence do not cascade into spurious
// replacements of everything after them.
package treediff

import (
	"fmt"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/grovekit/grove/debug"
	"github.com/grovekit/grove/encode"
	"github.com/grovekit/grove/tree"
)

type ChangeKind int

const (
	InsertKind ChangeKind = iota
	DeleteKind
	ReplaceKind
	ValueKind
)

func (k ChangeKind) String() string {
	switch k {
	case InsertKind:
		return "insert"
	case DeleteKind:
		return "delete"
	case ReplaceKind:
		return "replace"
	case ValueKind:
		return "value"
	default:
		return "unknown"
	}
}

// Change is one reported difference. From is nil for insertions and To
// is nil for deletions. ValueKind marks two leaves of matching dtype
// and shape whose elements differ.
type Change struct {
	Path string
	Kind ChangeKind
	From *tree.Node
	To   *tree.Node
}

func (c Change) String() string {
	switch c.Kind {
	case InsertKind:
		return fmt.Sprintf("%s: insert %s", c.Path, render(c.To))
	case DeleteKind:
		return fmt.Sprintf("%s: delete %s", c.Path, render(c.From))
	case ReplaceKind:
		return fmt.Sprintf("%s: replace %s -> %s", c.Path, render(c.From), render(c.To))
	default:
		return fmt.Sprintf("%s: %s", c.Path, leafDelta(c.From, c.To))
	}
}

// Report is the ordered change list produced by Diff. Positions inside
// changed sequences count slots of an interleaved view of the two
// sequences, so a deletion and the insertion after it each own a slot.
type Report struct {
	Changes []Change
}

func (r *Report) add(c Change) {
	r.Changes = append(r.Changes, c)
}

func (r *Report) Empty() bool {
	return len(r.Changes) == 0
}

func (r *Report) String() string {
	lines := make([]string, len(r.Changes))
	for i, c := range r.Changes {
		lines[i] = c.String()
	}
	return strings.Join(lines, "\n")
}

// Diff reports the changes that turn from into to. Mappings compare by
// key regardless of order, matching Equal; sequences compare
// positionally after alignment.
func Diff(from, to *tree.Node) *Report {
	rep := &Report{}
	diffNodes(from, to, "$", rep)
	if debug.Diff() {
		debug.Logf("diff: %d changes\n", len(rep.Changes))
	}
	return rep
}

func diffNodes(from, to *tree.Node, path string, rep *Report) {
	if from.Kind != to.Kind {
		rep.add(Change{path, ReplaceKind, from, to})
		return
	}
	switch from.Kind {
	case tree.MapKind:
		diffMap(from, to, path, rep)
	case tree.ListKind:
		diffList(from, to, path, rep)
	case tree.LeafKind:
		diffLeaf(from, to, path, rep)
	default:
		if !tree.Equal(from, to) {
			rep.add(Change{path, ReplaceKind, from, to})
		}
	}
}

func diffLeaf(from, to *tree.Node, path string, rep *Report) {
	if tree.Equal(from, to) {
		return
	}
	if from.Arr.DType() == to.Arr.DType() && from.Arr.Shape().Equal(to.Arr.Shape()) {
		rep.add(Change{path, ValueKind, from, to})
		return
	}
	rep.add(Change{path, ReplaceKind, from, to})
}

// diffMap walks key sets: a key present on both sides recurses, a key
// on one side only reports as a deletion or insertion. Deletions come
// first, then the remaining changes in to's key order.
func diffMap(from, to *tree.Node, path string, rep *Report) {
	fromIdx := make(map[string]int, len(from.Keys))
	for i, k := range from.Keys {
		fromIdx[k] = i
	}
	toSet := make(map[string]bool, len(to.Keys))
	for _, k := range to.Keys {
		toSet[k] = true
	}
	for i, k := range from.Keys {
		if !toSet[k] {
			rep.add(Change{fieldPath(path, k), DeleteKind, from.Values[i], nil})
		}
	}
	for i, k := range to.Keys {
		fi, ok := fromIdx[k]
		if !ok {
			rep.add(Change{fieldPath(path, k), InsertKind, nil, to.Values[i]})
			continue
		}
		diffNodes(from.Values[fi], to.Values[i], fieldPath(path, k), rep)
	}
}

// diffList interns a summary of each element into a rune, diffs the two
// rune sequences, and converts the delete/equal/insert segments into
// positional changes. A deletion run followed directly by an insertion
// run pairs up element-wise into replacements.
func diffList(from, to *tree.Node, path string, rep *Report) {
	m := map[string]rune{}
	fromRunes := internValues(m, from.Values)
	toRunes := internValues(m, to.Values)
	diffCfg := diffpatch.New()
	diffs := diffCfg.DiffMainRunes(fromRunes, toRunes, false)
	fi, ti, ri := 0, 0, 0
	for i := 0; i < len(diffs); i++ {
		d := &diffs[i]
		switch d.Type {
		case diffpatch.DiffEqual:
			for range d.Text {
				diffNodes(from.Values[fi], to.Values[ti], elemPath(path, ri), rep)
				fi++
				ti++
				ri++
			}
		case diffpatch.DiffDelete:
			nd := len([]rune(d.Text))
			ni := 0
			if i+1 < len(diffs) && diffs[i+1].Type == diffpatch.DiffInsert {
				ni = len([]rune(diffs[i+1].Text))
				i++
			}
			k := min(nd, ni)
			for j := 0; j < k; j++ {
				rep.add(Change{elemPath(path, ri), ReplaceKind, from.Values[fi], to.Values[ti]})
				fi++
				ti++
				ri++
			}
			for j := k; j < nd; j++ {
				rep.add(Change{elemPath(path, ri), DeleteKind, from.Values[fi], nil})
				fi++
				ri++
			}
			for j := k; j < ni; j++ {
				rep.add(Change{elemPath(path, ri), InsertKind, nil, to.Values[ti]})
				ti++
				ri++
			}
		case diffpatch.DiffInsert:
			for range d.Text {
				rep.add(Change{elemPath(path, ri), InsertKind, nil, to.Values[ti]})
				ti++
				ri++
			}
		}
	}
}

func internValues(m map[string]rune, values []*tree.Node) []rune {
	rs := make([]rune, len(values))
	for i, v := range values {
		sum := summary(v)
		r, ok := m[sum]
		if !ok {
			r = rune(len(m))
			m[sum] = r
		}
		rs[i] = r
	}
	return rs
}

// summary renders an element for alignment. Containers summarize by
// kind alone so same-kind containers align and recurse; leaves align by
// dtype and shape so changed values diff element-wise instead of as
// delete plus insert pairs.
func summary(n *tree.Node) string {
	switch n.Kind {
	case tree.MapKind, tree.ListKind:
		return n.Kind.String()
	case tree.IndexKind:
		return "index-" + n.Idx.String()
	case tree.LeafKind:
		return "leaf-" + n.Arr.DType().String() + "-" + n.Arr.Shape().String()
	default:
		return "invalid"
	}
}

func fieldPath(path, key string) string {
	return path + (&tree.Path{Field: &key}).String()[1:]
}

func elemPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

// render gives a change operand's wire form; index nodes have no
// document form and fall back to their Go rendering.
func render(n *tree.Node) string {
	if n == nil {
		return ""
	}
	d, err := encode.Bytes(n, encode.EncodeWire(true))
	if err != nil {
		return n.String()
	}
	return strings.TrimSpace(string(d))
}

// leafDelta renders a changed leaf pair as a wdiff style inline diff of
// the two wire forms, insertions in {+...+} and deletions in {-...-}.
func leafDelta(from, to *tree.Node) string {
	diffCfg := diffpatch.New()
	diffs := diffCfg.DiffMain(render(from), render(to), false)
	var buf strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffpatch.DiffInsert:
			buf.WriteString("{+" + d.Text + "+}")
		case diffpatch.DiffDelete:
			buf.WriteString("{-" + d.Text + "-}")
		default:
			buf.WriteString(d.Text)
		}
	}
	return buf.String()
}
