package parse

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/goccy/go-yaml"

	"github.com/grovekit/grove/dense"
	"github.com/grovekit/grove/format"
	"github.com/grovekit/grove/tree"
)

// Parse decodes a YAML or JSON document into a tree. Mappings keep the
// document's key order, rectangular numeric sequences collapse into
// single leaf arrays, and bare scalars become 0-d leaves. JSON needs
// no second decoder: every JSON document is a YAML document, so the
// JSON format only adds a validity check.
func Parse(data []byte, opts ...ParseOption) (*tree.Node, error) {
	o := newParseOpts(opts...)
	if o.format == format.JSONFormat && !json.Valid(data) {
		return nil, fmt.Errorf("%w: not a JSON document", ErrParse)
	}
	var v any
	if err := yaml.UnmarshalWithOptions(data, &v, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return fromYAML(v, o)
}

// ParseString is Parse over a string document.
func ParseString(doc string, opts ...ParseOption) (*tree.Node, error) {
	return Parse([]byte(doc), opts...)
}

func fromYAML(v any, o *parseOpts) (*tree.Node, error) {
	switch x := v.(type) {
	case yaml.MapSlice:
		kvs := make([]tree.KeyVal, 0, len(x))
		for _, item := range x {
			key, err := mapKey(item.Key)
			if err != nil {
				return nil, err
			}
			child, err := fromYAML(item.Value, o)
			if err != nil {
				return nil, err
			}
			kvs = append(kvs, tree.KV(key, child))
		}
		res := tree.Map(kvs...)
		res.DType = o.dtype
		return res, nil
	case []any:
		if o.convert && len(x) > 0 {
			if a, err := dense.FromAny(x); err == nil {
				return leaf(a, o), nil
			}
		}
		vals := make([]*tree.Node, len(x))
		for i, e := range x {
			child, err := fromYAML(e, o)
			if err != nil {
				return nil, err
			}
			vals[i] = child
		}
		res := tree.List(vals...)
		res.DType = o.dtype
		return res, nil
	case nil:
		return nil, fmt.Errorf("%w: a tree document cannot hold null", ErrParse)
	case bool, int, int64, uint64, float64:
		a, err := dense.FromAny(x)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		return leaf(a, o), nil
	case string:
		return nil, fmt.Errorf("%w: a tree document holds numbers and booleans, not string %q", ErrParse, x)
	default:
		return nil, fmt.Errorf("%w: cannot place a %T in a tree", ErrParse, v)
	}
}

func leaf(a *dense.Array, o *parseOpts) *tree.Node {
	if o.convert && o.dtype != nil && a.DType() != *o.dtype {
		a = a.AsType(*o.dtype)
	}
	return tree.Leaf(a)
}

// mapKey renders a document mapping key. Integer keys format in base
// 10, matching the construction layer's key handling.
func mapKey(k any) (string, error) {
	switch x := k.(type) {
	case string:
		return x, nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case uint64:
		return strconv.FormatUint(x, 10), nil
	default:
		return "", fmt.Errorf("%w: mapping key %v must be a string or integer", tree.ErrKey, k)
	}
}
