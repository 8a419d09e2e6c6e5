package buftypes

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"
	"github.com/unkn0wn-root/rowtypes"
)

// CBORType is JSONType's sibling: same any-valued contract, but the wire
// payload is CBOR rather than JSON, for callers that want a compact binary
// encoding without giving up self-describing structure.
type CBORType struct {
	notComparable
	property string
	hooks    rowtypes.Hooks
}

var _ rowtypes.Type = CBORType{}

// NewCBORType binds property. An optional Hooks argument receives
// EnvelopeSelfHealed if a stored envelope turns out corrupt on read.
func NewCBORType(property string, hooks ...rowtypes.Hooks) CBORType {
	return CBORType{property: property, hooks: firstHooks(hooks)}
}

func (t CBORType) Property() string  { return t.property }
func (t CBORType) IsEncrypted() bool { return false }

func (t CBORType) Serialize(row rowtypes.Row, v any) error {
	b, err := cbor.Marshal(v)
	if err != nil {
		return rowtypes.WrapEnvelopeError("CBORType", t.property, err)
	}
	return packOrWrap("CBORType", t.property, row, b)
}

func (t CBORType) Deserialize(row rowtypes.Row) (any, error) {
	b, err := unpackOrWrap("CBORType", t.property, row, t.hooks)
	if err != nil {
		return nil, err
	}
	var v any
	if err := cbor.Unmarshal(b, &v); err != nil {
		return nil, rowtypes.WrapDecodeError("CBORType", t.property, err, t.hooks)
	}
	return v, nil
}

func (t CBORType) Equal(a, b any) bool { return reflect.DeepEqual(a, b) }

func (t CBORType) Clone(v any) any {
	b, err := cbor.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	_ = cbor.Unmarshal(b, &out)
	return out
}

// Hash is the deterministic CBOR encoding (map keys are sorted by an encoder
// built from cbor.CanonicalEncOptions, not by cbor.Marshal's defaults).
func (t CBORType) Hash(v any) (string, error) {
	opts := cbor.CanonicalEncOptions()
	em, err := opts.EncMode()
	if err != nil {
		return "", rowtypes.WrapEnvelopeError("CBORType", t.property, err)
	}
	b, err := em.Marshal(v)
	if err != nil {
		return "", rowtypes.WrapEnvelopeError("CBORType", t.property, err)
	}
	return string(b), nil
}

func (t CBORType) SerializeValue(row rowtypes.Row, v any) error { return t.Serialize(row, v) }

func (t CBORType) DeserializeValue(row rowtypes.Row) (any, error) { return t.Deserialize(row) }

func (t CBORType) EqualValues(a, b any) (bool, error) { return t.Equal(a, b), nil }

func (t CBORType) StringValue(v any) (string, error) {
	b, err := cbor.Marshal(v)
	if err != nil {
		return "", rowtypes.WrapEnvelopeError("CBORType", t.property, err)
	}
	return string(b), nil
}

func (t CBORType) FilterCondition(rowtypes.Operator, any) (string, error) {
	return "", rowtypes.NotComparableErr("CBORType", t.property, "filterCondition")
}
