package tree

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/grovekit/grove/dense"
)

// Path is one parsed step of a "$" rooted path expression. A step is a
// mapping field (".name" or ".'quoted name'"), a sequence position
// ("[2]"), or an array selection ("[0:2]", "[1, :]", "[*]").
type Path struct {
	Field *string
	Index *int
	Sel   dense.Index
	Next  *Path
}

func (p *Path) String() string {
	var buf strings.Builder
	buf.WriteByte('$')
	for x := p; x != nil; x = x.Next {
		switch {
		case x.Field != nil:
			buf.WriteString("." + quoteField(*x.Field))
		case x.Index != nil:
			fmt.Fprintf(&buf, "[%d]", *x.Index)
		case x.Sel != nil:
			buf.WriteString(x.Sel.String())
		}
	}
	return buf.String()
}

func quoteField(f string) string {
	if f != "" && strings.IndexAny(f, "'.*$[]") == -1 {
		return f
	}
	return "'" + strings.Replace(f, "'", "\\'", -1) + "'"
}

// ParsePath parses a "$" rooted path expression. The bare root "$"
// parses to nil.
func ParsePath(p string) (*Path, error) {
	if len(p) == 0 || p[0] != '$' {
		return nil, fmt.Errorf("%w: path %q should start with '$'", ErrKey, p)
	}
	if len(p) == 1 {
		return nil, nil
	}
	root := &Path{}
	if err := parseFrag(p[1:], root); err != nil {
		return nil, err
	}
	return root, nil
}

func parseFrag(frag string, parent *Path) error {
	if len(frag) == 0 {
		return nil
	}
	switch frag[0] {
	case '.':
		field, rest, err := parseField(frag[1:])
		if err != nil {
			return err
		}
		parent.Field = &field
		if len(rest) == 0 {
			return nil
		}
		next := &Path{}
		if err := parseFrag(rest, next); err != nil {
			return err
		}
		parent.Next = next
		return nil
	case '[':
		i := strings.IndexByte(frag[1:], ']')
		if i == -1 {
			return fmt.Errorf("%w: expected '[' <selection> ']'", ErrKey)
		}
		pos, sel, err := parseBracket(frag[1 : i+1])
		if err != nil {
			return err
		}
		parent.Index = pos
		parent.Sel = sel
		if len(frag) == i+2 {
			return nil
		}
		next := &Path{}
		if err := parseFrag(frag[i+2:], next); err != nil {
			return err
		}
		parent.Next = next
		return nil
	default:
		return fmt.Errorf("%w: expected '.' or '[' in path", ErrKey)
	}
}

func parseField(frag string) (field, rest string, err error) {
	if len(frag) == 0 {
		return "", "", fmt.Errorf("%w: expected field at end of path", ErrKey)
	}
	if frag[0] != '\'' {
		i := strings.IndexAny(frag, ".[")
		if i == -1 {
			return frag, "", nil
		}
		return frag[:i], frag[i:], nil
	}
	escaped := false
	res := make([]byte, 0, len(frag))
	for i := 1; i < len(frag); i++ {
		c := frag[i]
		switch c {
		case '\\':
			escaped = true
		case '\'':
			if !escaped {
				return string(res), frag[i+1:], nil
			}
			fallthrough
		default:
			escaped = false
			res = append(res, c)
		}
	}
	return "", "", fmt.Errorf("%w: end of path scanning for \"'\"", ErrKey)
}

// parseBracket reads the inside of a bracketed step. A lone integer is
// a plain position; anything with spans, stars or commas becomes an
// array selection.
func parseBracket(s string) (*int, dense.Index, error) {
	parts := strings.Split(s, ",")
	if len(parts) == 1 && !strings.ContainsAny(s, ":*+") {
		pos, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return nil, nil, fmt.Errorf("%w: bad position %q", ErrKey, s)
		}
		return &pos, nil, nil
	}
	idx := make(dense.Index, len(parts))
	for i, part := range parts {
		sel, err := parseSel(strings.TrimSpace(part))
		if err != nil {
			return nil, nil, err
		}
		idx[i] = sel
	}
	return nil, idx, nil
}

func parseSel(s string) (dense.Sel, error) {
	switch s {
	case "*", ":":
		return dense.All(), nil
	case "+":
		return dense.NewAxis(), nil
	}
	if !strings.Contains(s, ":") {
		i, err := strconv.Atoi(s)
		if err != nil {
			return dense.Sel{}, fmt.Errorf("%w: bad selection %q", ErrKey, s)
		}
		return dense.At(i), nil
	}
	fields := strings.Split(s, ":")
	if len(fields) > 3 {
		return dense.Sel{}, fmt.Errorf("%w: bad selection %q", ErrKey, s)
	}
	var sel dense.Sel
	for i, f := range fields {
		if f == "" {
			continue
		}
		v, err := strconv.Atoi(f)
		if err != nil {
			return dense.Sel{}, fmt.Errorf("%w: bad selection %q", ErrKey, s)
		}
		switch i {
		case 0:
			sel.Lo = &v
		case 1:
			sel.Hi = &v
		default:
			sel.Step = &v
		}
	}
	return sel, nil
}

// pathKey converts a step into a Get or Set key for the node it lands
// on. A plain position addresses a container child but selects a row
// when the target is a leaf.
func pathKey(cur *Node, x *Path) any {
	switch {
	case x.Field != nil:
		return *x.Field
	case x.Index != nil:
		if cur.Kind == LeafKind {
			return dense.Idx(dense.At(*x.Index))
		}
		return *x.Index
	default:
		return x.Sel
	}
}

// GetPath resolves a "$" rooted path expression against the tree.
func (t *Node) GetPath(path string) (*Node, error) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	cur := t
	for x := p; x != nil; x = x.Next {
		cur, err = cur.Get(pathKey(cur, x))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", (&Path{Field: x.Field, Index: x.Index, Sel: x.Sel}).String(), err)
		}
	}
	return cur, nil
}

// SetPath writes v at a "$" rooted path expression. All steps but the
// last must already resolve; the final step follows Set semantics.
func (t *Node) SetPath(path string, v any) error {
	p, err := ParsePath(path)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("%w: cannot assign to the root path", ErrKey)
	}
	cur := t
	for x := p; x != nil; x = x.Next {
		if x.Next == nil {
			return cur.Set(pathKey(cur, x), v)
		}
		cur, err = cur.Get(pathKey(cur, x))
		if err != nil {
			return fmt.Errorf("%s: %w", (&Path{Field: x.Field, Index: x.Index, Sel: x.Sel}).String(), err)
		}
	}
	return nil
}
