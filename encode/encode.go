package encode

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/grovekit/grove/format"
	"github.com/grovekit/grove/tree"
)

// EncState carries the encoder position and layout switches through a
// document walk. Containers lay out in block or bracket style per the
// format, while leaf arrays always render in flow style so numeric
// payloads stay one value row per line.
type EncState struct {
	line, col     int
	depth, indent int
	brackets      bool

	format format.Format
	wire   bool

	Color func(tree.Kind, ColorAttr, string) string
}

// Encode renders a tree as YAML or JSON.
func Encode(t *tree.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 2,
	}
	for _, opt := range opts {
		opt(es)
	}
	if !es.brackets {
		es.brackets = es.format.IsJSON()
	}
	if err := encode(t, w, es); err != nil {
		return err
	}
	es.col = 1
	es.depth = 0
	return writeNL(w, es)
}

func writeNL(w io.Writer, es *EncState) error {
	if es.wire {
		return nil
	}
	if es.col == 0 {
		return nil
	}
	indentString := strings.Repeat(strings.Repeat(" ", es.indent), es.depth)
	if err := writeString(w, "\n"+indentString); err != nil {
		return err
	}
	es.line++
	es.col = len(indentString)
	return nil
}

func writeString(w io.Writer, s string) error {
	_, err := w.Write([]byte(s))
	return err
}

func writeSpace(w io.Writer, es *EncState) error {
	es.col++
	return writeString(w, " ")
}

func applyColor(es *EncState, k tree.Kind, attr ColorAttr, v string) string {
	if es.Color == nil {
		return v
	}
	return es.Color(k, attr, v)
}

func encode(t *tree.Node, w io.Writer, es *EncState) error {
	switch t.Kind {
	case tree.LeafKind:
		return encodeLeaf(t, w, es)
	case tree.ListKind:
		return encodeList(t, w, es)
	case tree.MapKind:
		return encodeMap(t, w, es)
	case tree.IndexKind:
		return fmt.Errorf("%w: an index node has no document form", ErrEncoding)
	default:
		return fmt.Errorf("%w: invalid node", ErrEncoding)
	}
}

// Mapping encoding

func encodeMap(t *tree.Node, w io.Writer, es *EncState) error {
	n := t.Len()
	if err := writeMapOpen(w, es, n); err != nil {
		return err
	}
	for i, key := range t.Keys {
		if err := writeMapFieldPrefix(i, w, es); err != nil {
			return err
		}
		if err := writeField(w, key, es); err != nil {
			return err
		}
		if err := encodeMapValue(t.Values[i], w, es); err != nil {
			return err
		}
		if i < n-1 {
			if err := writeCommaSeparator(w, es, tree.MapKind); err != nil {
				return err
			}
		}
	}
	return writeMapClose(w, es, n)
}

func writeMapOpen(w io.Writer, es *EncState, nFields int) error {
	if !esBracket(es) && nFields != 0 {
		return nil
	}
	open := applyColor(es, tree.MapKind, SepColor, "{")
	es.col++
	if err := writeString(w, open); err != nil {
		return err
	}
	es.depth++
	return nil
}

func writeMapClose(w io.Writer, es *EncState, nFields int) error {
	if !esBracket(es) && nFields != 0 {
		return nil
	}
	es.depth--
	if !es.wire && nFields != 0 {
		if err := writeNL(w, es); err != nil {
			return err
		}
	}
	es.col++
	return writeString(w, applyColor(es, tree.MapKind, SepColor, "}"))
}

// writeMapFieldPrefix positions field i. The first field never takes a
// newline in block mode; the caller has already placed it, either at
// the start of the document, after a sequence marker, or on a fresh
// indented line under its parent key.
func writeMapFieldPrefix(i int, w io.Writer, es *EncState) error {
	if es.wire {
		return nil
	}
	if es.brackets {
		return writeNL(w, es)
	}
	if i == 0 {
		return nil
	}
	return writeNL(w, es)
}

func writeField(w io.Writer, f string, es *EncState) error {
	sep := ":"
	if isJSON(es) || needsQuote(f) {
		f = strconv.Quote(f)
	}
	fc := f
	if es.Color != nil {
		fc = applyColor(es, tree.MapKind, FieldColor, f)
		sep = applyColor(es, tree.MapKind, SepColor, sep)
	}
	if err := writeString(w, fc+sep); err != nil {
		return err
	}
	es.col += len(f) + 1
	return nil
}

func encodeMapValue(v *tree.Node, w io.Writer, es *EncState) error {
	es.depth++
	defer func() { es.depth-- }()
	switch v.Kind {
	case tree.MapKind:
		if esBracket(es) || v.Len() == 0 {
			if err := writeSpace(w, es); err != nil {
				return err
			}
			es.depth--
			err := encode(v, w, es)
			es.depth++
			return err
		}
		// Block mode: nested fields indent one level under the key.
		if err := writeNL(w, es); err != nil {
			return err
		}
		return encode(v, w, es)
	case tree.ListKind:
		if esBracket(es) || v.Len() == 0 {
			if err := writeSpace(w, es); err != nil {
				return err
			}
			es.depth--
			err := encode(v, w, es)
			es.depth++
			return err
		}
		// Block sequences sit at the key's own indent.
		es.depth--
		if err := writeNL(w, es); err != nil {
			return err
		}
		err := encode(v, w, es)
		es.depth++
		return err
	default:
		if !es.wire || !isJSON(es) {
			if err := writeSpace(w, es); err != nil {
				return err
			}
		}
		return encode(v, w, es)
	}
}

// Sequence tree encoding

func encodeList(t *tree.Node, w io.Writer, es *EncState) error {
	n := t.Len()
	if err := writeListOpen(w, es, n); err != nil {
		return err
	}
	for i, v := range t.Values {
		if err := writeListElementPrefix(i, w, es); err != nil {
			return err
		}
		if err := writeListElementMarker(w, es); err != nil {
			return err
		}
		doDepth := !esBracket(es)
		if doDepth {
			es.depth++
		}
		if err := encode(v, w, es); err != nil {
			if doDepth {
				es.depth--
			}
			return err
		}
		if doDepth {
			es.depth--
		}
		if i < n-1 {
			if err := writeCommaSeparator(w, es, tree.ListKind); err != nil {
				return err
			}
		}
	}
	return writeListClose(w, es, n)
}

func writeListOpen(w io.Writer, es *EncState, nValues int) error {
	if !esBracket(es) && nValues != 0 {
		return nil
	}
	if err := writeString(w, applyColor(es, tree.ListKind, SepColor, "[")); err != nil {
		return err
	}
	es.col++
	es.depth++
	return nil
}

func writeListClose(w io.Writer, es *EncState, nValues int) error {
	if !esBracket(es) && nValues != 0 {
		return nil
	}
	es.depth--
	if !es.wire && nValues > 0 {
		if err := writeNL(w, es); err != nil {
			return err
		}
	}
	es.col++
	return writeString(w, applyColor(es, tree.ListKind, SepColor, "]"))
}

func writeListElementPrefix(i int, w io.Writer, es *EncState) error {
	if !esBracket(es) && i == 0 {
		return nil
	}
	return writeNL(w, es)
}

func writeListElementMarker(w io.Writer, es *EncState) error {
	if esBracket(es) {
		return nil
	}
	sep := applyColor(es, tree.ListKind, SepColor, "-")
	if err := writeString(w, sep+" "); err != nil {
		return err
	}
	es.col += 2
	return nil
}

func writeCommaSeparator(w io.Writer, es *EncState, k tree.Kind) error {
	var sep string
	switch es.format {
	case format.JSONFormat:
		sep = ","
	case format.YAMLFormat:
		if !esBracket(es) {
			return nil
		}
		if es.wire {
			sep = ", "
		} else {
			sep = ","
		}
	default:
		return fmt.Errorf("%w: %s", format.ErrBadFormat, es.format)
	}
	es.col += len(sep)
	if es.Color != nil {
		sep = es.Color(k, SepColor, sep)
	}
	return writeString(w, sep)
}

// Leaf encoding. Arrays render in flow style in every mode, one
// bracket level per dimension, so a matrix reads as its rows.

func encodeLeaf(t *tree.Node, w io.Writer, es *EncState) error {
	return writeArrayValue(t.Arr.ToList(), w, es)
}

func writeArrayValue(v any, w io.Writer, es *EncState) error {
	seq, ok := v.([]any)
	if !ok {
		tok, err := scalarToken(v, es)
		if err != nil {
			return err
		}
		es.col += len(tok)
		return writeString(w, applyColor(es, tree.LeafKind, scalarAttr(v), tok))
	}
	if err := writeString(w, applyColor(es, tree.LeafKind, SepColor, "[")); err != nil {
		return err
	}
	es.col++
	for i, e := range seq {
		if i > 0 {
			es.col += 2
			if err := writeString(w, applyColor(es, tree.LeafKind, SepColor, ", ")); err != nil {
				return err
			}
		}
		if err := writeArrayValue(e, w, es); err != nil {
			return err
		}
	}
	es.col++
	return writeString(w, applyColor(es, tree.LeafKind, SepColor, "]"))
}

func scalarAttr(v any) ColorAttr {
	if _, ok := v.(bool); ok {
		return BoolColor
	}
	return ValueColor
}

func scalarToken(v any, es *EncState) (string, error) {
	switch x := v.(type) {
	case int64:
		return strconv.FormatInt(x, 10), nil
	case bool:
		return strconv.FormatBool(x), nil
	case float64:
		return floatToken(x, es)
	default:
		return "", fmt.Errorf("%w: cannot render a %T element", ErrEncoding, v)
	}
}

// floatToken formats a float so it reads back as a float: a value that
// would print as a plain integer gains a trailing ".0".
func floatToken(x float64, es *EncState) (string, error) {
	switch {
	case math.IsNaN(x), math.IsInf(x, 0):
		if isJSON(es) {
			return "", fmt.Errorf("%w: %v has no JSON form", ErrEncoding, x)
		}
		if math.IsNaN(x) {
			return ".nan", nil
		}
		if x > 0 {
			return ".inf", nil
		}
		return "-.inf", nil
	}
	v := strconv.FormatFloat(x, 'g', -1, 64)
	if !strings.ContainsAny(v, ".eE") {
		v += ".0"
	}
	return v, nil
}

// needsQuote reports whether a mapping key must be quoted to read back
// as the same string key.
func needsQuote(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_', r == '-', r == '.':
		default:
			return true
		}
	}
	switch s {
	case "true", "false", "null", "yes", "no", "on", "off":
		return true
	}
	// A key that reads as a float would come back as a number.
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		if _, err := strconv.ParseInt(s, 10, 64); err != nil {
			return true
		}
	}
	return false
}

func isJSON(es *EncState) bool {
	return es.format == format.JSONFormat
}

func esBracket(es *EncState) bool {
	if es.wire {
		return true
	}
	if es.format.IsJSON() {
		return true
	}
	return es.brackets
}
