package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
)

// Kind identifies the shape of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindSeq
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindSeq:
		return "seq"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value is the tagged JSON value that flows through the interpreter:
// V = null | bool | number | string | Seq<V> | Map<string,V>.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	seq  []Value
	obj  *Object
}

// Object is an insertion-ordered string-keyed map of Value.
type Object struct {
	keys []string
	vals map[string]Value
}

// NewObject returns an empty ordered object.
func NewObject() *Object {
	return &Object{vals: make(map[string]Value)}
}

// Set inserts or overwrites key, preserving first-insertion order.
func (o *Object) Set(key string, v Value) {
	if _, ok := o.vals[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = v
}

// Get returns the value for key and whether it was present.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.vals[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	return o.keys
}

// Len returns the number of entries.
func (o *Object) Len() int {
	return len(o.keys)
}

// Values returns the values in key-insertion order.
func (o *Object) Values() []Value {
	out := make([]Value, 0, len(o.keys))
	for _, k := range o.keys {
		out = append(out, o.vals[k])
	}
	return out
}

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number wraps a float64.
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Seq wraps an ordered sequence of values.
func Seq(items ...Value) Value {
	return Value{kind: KindSeq, seq: items}
}

// Map wraps an ordered object. A nil Object becomes an empty one.
func Map(o *Object) Value {
	if o == nil {
		o = NewObject()
	}
	return Value{kind: KindMap, obj: o}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean payload; zero value if not a bool.
func (v Value) AsBool() bool { return v.b }

// AsNumber returns the numeric payload; zero value if not a number.
func (v Value) AsNumber() float64 { return v.n }

// AsString returns the string payload; zero value if not a string.
func (v Value) AsString() string { return v.s }

// AsSeq returns the sequence payload; nil if not a sequence.
func (v Value) AsSeq() []Value { return v.seq }

// AsObject returns the object payload; nil if not a map.
func (v Value) AsObject() *Object { return v.obj }

// Equal reports structural equality.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindNumber:
		return a.n == b.n
	case KindString:
		return a.s == b.s
	case KindSeq:
		if len(a.seq) != len(b.seq) {
			return false
		}
		for i := range a.seq {
			if !Equal(a.seq[i], b.seq[i]) {
				return false
			}
		}
		return true
	case KindMap:
		ao, bo := a.obj, b.obj
		if ao == nil {
			ao = NewObject()
		}
		if bo == nil {
			bo = NewObject()
		}
		if ao.Len() != bo.Len() {
			return false
		}
		for _, k := range ao.Keys() {
			av, _ := ao.Get(k)
			bv, ok := bo.Get(k)
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// DeepClone returns a structural copy; scalars are copied by value.
func DeepClone(v Value) Value {
	switch v.kind {
	case KindSeq:
		out := make([]Value, len(v.seq))
		for i, item := range v.seq {
			out[i] = DeepClone(item)
		}
		return Value{kind: KindSeq, seq: out}
	case KindMap:
		o := NewObject()
		if v.obj != nil {
			for _, k := range v.obj.Keys() {
				cv, _ := v.obj.Get(k)
				o.Set(k, DeepClone(cv))
			}
		}
		return Value{kind: KindMap, obj: o}
	default:
		return v
	}
}

// FromJSON parses raw JSON into a Value tree, preserving object key order.
func FromJSON(data []byte) (Value, error) {
	if !gjson.ValidBytes(data) {
		return Null(), fmt.Errorf("value: invalid JSON")
	}
	return fromGJSON(gjson.ParseBytes(data)), nil
}

func fromGJSON(r gjson.Result) Value {
	switch r.Type {
	case gjson.Null:
		return Null()
	case gjson.True:
		return Bool(true)
	case gjson.False:
		return Bool(false)
	case gjson.Number:
		return Number(r.Num)
	case gjson.String:
		return String(r.Str)
	case gjson.JSON:
		if r.IsArray() {
			var items []Value
			r.ForEach(func(_, item gjson.Result) bool {
				items = append(items, fromGJSON(item))
				return true
			})
			return Seq(items...)
		}
		o := NewObject()
		r.ForEach(func(key, item gjson.Result) bool {
			o.Set(key.String(), fromGJSON(item))
			return true
		})
		return Map(o)
	default:
		return Null()
	}
}

// ToJSON serializes v to JSON, preserving object key order.
func (v Value) ToJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v Value) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.b))
	case KindNumber:
		enc, err := json.Marshal(v.n)
		if err != nil {
			return err
		}
		buf.Write(enc)
	case KindString:
		enc, err := json.Marshal(v.s)
		if err != nil {
			return err
		}
		buf.Write(enc)
	case KindSeq:
		buf.WriteByte('[')
		for i, item := range v.seq {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindMap:
		buf.WriteByte('{')
		if v.obj != nil {
			for i, k := range v.obj.Keys() {
				if i > 0 {
					buf.WriteByte(',')
				}
				kenc, err := json.Marshal(k)
				if err != nil {
					return err
				}
				buf.Write(kenc)
				buf.WriteByte(':')
				cv, _ := v.obj.Get(k)
				if err := writeJSON(buf, cv); err != nil {
					return err
				}
			}
		}
		buf.WriteByte('}')
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return v.ToJSON()
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := FromJSON(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
