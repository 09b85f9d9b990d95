package tree

import "fmt"

func (t *Node) descend(path []any) (*Node, error) {
	cur := t
	for _, key := range path {
		ka, err := classifyKey(key)
		if err != nil {
			return nil, err
		}
		if ka.kind != keyPos && ka.kind != keyName {
			return nil, fmt.Errorf("%w: path steps must be plain keys", ErrKey)
		}
		next, err := cur.plainChild(ka)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

// Append normalizes v and adds it to the end of a sequence node. An
// optional path of plain keys picks a nested container to extend.
func (t *Node) Append(v any, path ...any) error {
	target, err := t.descend(path)
	if err != nil {
		return err
	}
	switch target.Kind {
	case ListKind:
		val, err := target.convertValue(v)
		if err != nil {
			return err
		}
		target.Values = append(target.Values, val)
		return nil
	case MapKind:
		return fmt.Errorf("%w: cannot append to a mapping tree; use update instead", ErrType)
	default:
		return fmt.Errorf("%w: cannot append to a %s node", ErrType, target.Kind)
	}
}

// Update merges the entries of a mapping value into a mapping node,
// replacing names that already exist and adding the rest. An optional
// path of plain keys picks a nested container to merge into.
func (t *Node) Update(v any, path ...any) error {
	target, err := t.descend(path)
	if err != nil {
		return err
	}
	switch target.Kind {
	case MapKind:
		val, err := target.convertValue(v)
		if err != nil {
			return err
		}
		if val.Kind != MapKind {
			return fmt.Errorf("%w: update requires mapping-like contents, got %s", ErrType, val.Kind)
		}
		for i, name := range val.Keys {
			if j, _ := target.childByName(name); j >= 0 {
				target.Values[j] = val.Values[i]
				continue
			}
			target.Keys = append(target.Keys, name)
			target.Values = append(target.Values, val.Values[i])
		}
		return nil
	case ListKind:
		return fmt.Errorf("%w: cannot update a sequence tree; use append instead", ErrType)
	default:
		return fmt.Errorf("%w: cannot update a %s node", ErrType, target.Kind)
	}
}
