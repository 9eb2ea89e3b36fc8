package value

import (
	"fmt"
	"strconv"
	"strings"
)

// SplitPath validates and splits a path of the form "$" or
// "$.<segment>(.<segment>)*" into its dot-separated segments. The empty
// path and "$" both split to zero segments (identity).
func SplitPath(p string) ([]string, error) {
	if p == "" || p == "$" {
		return nil, nil
	}
	if !strings.HasPrefix(p, "$.") {
		return nil, fmt.Errorf("value: invalid path %q: must be \"$\" or start with \"$.\"", p)
	}
	rest := p[2:]
	if rest == "" {
		return nil, fmt.Errorf("value: invalid path %q: empty segment", p)
	}
	segs := strings.Split(rest, ".")
	for _, s := range segs {
		if s == "" {
			return nil, fmt.Errorf("value: invalid path %q: empty segment", p)
		}
	}
	return segs, nil
}

// GetByPath descends through map keys and sequence indices, returning
// null on any missed lookup or out-of-range index.
func GetByPath(v Value, p string) (Value, error) {
	segs, err := SplitPath(p)
	if err != nil {
		return Null(), err
	}
	cur := v
	for _, seg := range segs {
		switch cur.Kind() {
		case KindMap:
			obj := cur.AsObject()
			if obj == nil {
				return Null(), nil
			}
			val, ok := obj.Get(seg)
			if !ok {
				return Null(), nil
			}
			cur = val
		case KindSeq:
			idx, convErr := strconv.Atoi(seg)
			if convErr != nil || idx < 0 || idx >= len(cur.AsSeq()) {
				return Null(), nil
			}
			cur = cur.AsSeq()[idx]
		default:
			return Null(), nil
		}
	}
	return cur, nil
}

// ApplyInputPath returns v unchanged if p is empty or "$"; otherwise
// GetByPath(v, p).
func ApplyInputPath(v Value, p string) (Value, error) {
	return GetByPath(v, p)
}

// ApplyOutputPath returns v unchanged if p is empty or "$"; otherwise
// GetByPath(v, p).
func ApplyOutputPath(v Value, p string) (Value, error) {
	return GetByPath(v, p)
}

// PlaceByPath deep-clones root, then writes value at path p, creating
// intermediate maps, creating sequences when a segment parses as a
// non-negative integer, and extending sequences with nulls to reach the
// index. If p is "$" or empty, value replaces the whole tree.
func PlaceByPath(root Value, p string, val Value) (Value, error) {
	segs, err := SplitPath(p)
	if err != nil {
		return Null(), err
	}
	cloned := DeepClone(root)
	if len(segs) == 0 {
		return val, nil
	}
	return placeSegs(cloned, segs, val), nil
}

func placeSegs(cur Value, segs []string, val Value) Value {
	if len(segs) == 0 {
		return val
	}
	seg := segs[0]
	rest := segs[1:]

	if idx, convErr := strconv.Atoi(seg); convErr == nil && idx >= 0 {
		var items []Value
		if cur.Kind() == KindSeq {
			items = append(items, cur.AsSeq()...)
		}
		for len(items) <= idx {
			items = append(items, Null())
		}
		items[idx] = placeSegs(items[idx], rest, val)
		return Seq(items...)
	}

	var obj *Object
	if cur.Kind() == KindMap && cur.AsObject() != nil {
		obj = cloneObjectShallow(cur.AsObject())
	} else {
		obj = NewObject()
	}
	existing, _ := obj.Get(seg)
	obj.Set(seg, placeSegs(existing, rest, val))
	return Map(obj)
}

func cloneObjectShallow(o *Object) *Object {
	no := NewObject()
	if o != nil {
		for _, k := range o.Keys() {
			v, _ := o.Get(k)
			no.Set(k, v)
		}
	}
	return no
}

// MergeObjects implements the interpreter's merge law:
//   - one side null → the other side;
//   - both maps → recursive key-wise merge (right wins on scalar conflict);
//   - both sequences → concatenation (left then right);
//   - otherwise → b.
func MergeObjects(a, b Value) Value {
	if a.IsNull() {
		return b
	}
	if b.IsNull() {
		return a
	}
	if a.Kind() == KindMap && b.Kind() == KindMap {
		ao, bo := a.AsObject(), b.AsObject()
		if ao == nil {
			ao = NewObject()
		}
		if bo == nil {
			bo = NewObject()
		}
		result := NewObject()
		for _, k := range ao.Keys() {
			v, _ := ao.Get(k)
			result.Set(k, v)
		}
		for _, k := range bo.Keys() {
			bv, _ := bo.Get(k)
			if av, ok := result.Get(k); ok {
				result.Set(k, MergeObjects(av, bv))
			} else {
				result.Set(k, bv)
			}
		}
		return Map(result)
	}
	if a.Kind() == KindSeq && b.Kind() == KindSeq {
		merged := make([]Value, 0, len(a.AsSeq())+len(b.AsSeq()))
		merged = append(merged, a.AsSeq()...)
		merged = append(merged, b.AsSeq()...)
		return Seq(merged...)
	}
	return b
}
