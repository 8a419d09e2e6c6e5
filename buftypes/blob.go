package buftypes

import (
	"bytes"
	"fmt"

	"github.com/unkn0wn-root/rowtypes"
)

// BlobType is the identity codec: the domain value is raw bytes, written
// through the envelope unchanged.
type BlobType struct {
	notComparable
	property string
	hooks    rowtypes.Hooks
}

var _ rowtypes.Type = BlobType{}

// NewBlobType binds property. An optional Hooks argument receives
// EnvelopeSelfHealed if a stored envelope turns out corrupt on read.
func NewBlobType(property string, hooks ...rowtypes.Hooks) BlobType {
	return BlobType{property: property, hooks: firstHooks(hooks)}
}

func (t BlobType) Property() string  { return t.property }
func (t BlobType) IsEncrypted() bool { return false }

func (t BlobType) Serialize(row rowtypes.Row, v []byte) error {
	return packOrWrap("BlobType", t.property, row, v)
}

func (t BlobType) Deserialize(row rowtypes.Row) ([]byte, error) {
	return unpackOrWrap("BlobType", t.property, row, t.hooks)
}

func (t BlobType) Equal(a, b []byte) bool { return bytes.Equal(a, b) }
func (t BlobType) Clone(v []byte) []byte  { return append([]byte(nil), v...) }

// Hash is the bytes themselves, per §4.6.
func (t BlobType) Hash(v []byte) []byte { return v }

func (t BlobType) SerializeValue(row rowtypes.Row, v any) error {
	b, ok := v.([]byte)
	if !ok {
		return &rowtypes.TypeError{Kind: rowtypes.FormatInvalid, Variant: "BlobType", Property: t.property,
			Message: fmt.Sprintf("expected []byte, got %T", v)}
	}
	return t.Serialize(row, b)
}

func (t BlobType) DeserializeValue(row rowtypes.Row) (any, error) { return t.Deserialize(row) }

func (t BlobType) EqualValues(a, b any) (bool, error) {
	ba, ok1 := a.([]byte)
	bb, ok2 := b.([]byte)
	if !ok1 || !ok2 {
		return false, rowtypes.NewTypeMismatch("BlobType", t.property, "[]byte", a)
	}
	return t.Equal(ba, bb), nil
}

func (t BlobType) StringValue(any) (string, error) {
	return "", rowtypes.NotImplementedErr("BlobType", t.property, "string")
}

func (t BlobType) FilterCondition(rowtypes.Operator, any) (string, error) {
	return "", rowtypes.NotComparableErr("BlobType", t.property, "filterCondition")
}
