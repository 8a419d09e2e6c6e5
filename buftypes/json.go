package buftypes

import (
	"encoding/json"
	"reflect"
	"sort"

	"github.com/unkn0wn-root/rowtypes"
)

// JSONType accepts string|number|boolean|object (including arrays and null),
// encoding through encoding/json on write and decoding on read. Equality is
// deep structural comparison; Hash is a canonical encoding with object keys
// sorted recursively, so insertion order never affects the hash.
type JSONType struct {
	notComparable
	property string
	hooks    rowtypes.Hooks
}

var _ rowtypes.Type = JSONType{}

// NewJSONType binds property. An optional Hooks argument receives
// EnvelopeSelfHealed if a stored envelope turns out corrupt on read.
func NewJSONType(property string, hooks ...rowtypes.Hooks) JSONType {
	return JSONType{property: property, hooks: firstHooks(hooks)}
}

func (t JSONType) Property() string  { return t.property }
func (t JSONType) IsEncrypted() bool { return false }

func (t JSONType) Serialize(row rowtypes.Row, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return rowtypes.WrapEnvelopeError("JSONType", t.property, err)
	}
	return packOrWrap("JSONType", t.property, row, b)
}

func (t JSONType) Deserialize(row rowtypes.Row) (any, error) {
	b, err := unpackOrWrap("JSONType", t.property, row, t.hooks)
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, rowtypes.WrapDecodeError("JSONType", t.property, err, t.hooks)
	}
	return v, nil
}

func (t JSONType) Equal(a, b any) bool { return reflect.DeepEqual(a, b) }

func (t JSONType) Clone(v any) any {
	b, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	_ = json.Unmarshal(b, &out)
	return out
}

// Hash canonicalizes v (object keys sorted recursively) before encoding, so
// two values that differ only in insertion order hash equal.
func (t JSONType) Hash(v any) (string, error) {
	b, err := json.Marshal(canonicalize(v))
	if err != nil {
		return "", rowtypes.WrapEnvelopeError("JSONType", t.property, err)
	}
	return string(b), nil
}

// canonicalize copies map[string]any and []any values recursively, leaving
// scalars as-is. The copies are plain Go maps with no key order of their
// own; the sorted key order in the hash comes from json.Marshal, which
// writes map keys in sorted order at every nesting level.
func canonicalize(v any) any {
	switch x := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make(map[string]any, len(x))
		for _, k := range keys {
			out[k] = canonicalize(x[k])
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = canonicalize(e)
		}
		return out
	default:
		return x
	}
}

func (t JSONType) SerializeValue(row rowtypes.Row, v any) error { return t.Serialize(row, v) }

func (t JSONType) DeserializeValue(row rowtypes.Row) (any, error) { return t.Deserialize(row) }

func (t JSONType) EqualValues(a, b any) (bool, error) { return t.Equal(a, b), nil }

func (t JSONType) StringValue(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", rowtypes.WrapEnvelopeError("JSONType", t.property, err)
	}
	return string(b), nil
}

func (t JSONType) FilterCondition(rowtypes.Operator, any) (string, error) {
	return "", rowtypes.NotComparableErr("JSONType", t.property, "filterCondition")
}
