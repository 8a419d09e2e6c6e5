package buftypes

import (
	"github.com/unkn0wn-root/rowtypes"
	"github.com/unkn0wn-root/rowtypes/slugarray"
)

// SlugIdArrayType serializes a *slugarray.SlugIdArray through the same
// chunked envelope as the other buffer-based types: toBuffer returns the
// live packed view, fromBuffer wraps raw bytes as a new array.
type SlugIdArrayType struct {
	notComparable
	property string
	hooks    rowtypes.Hooks
}

var _ rowtypes.Type = SlugIdArrayType{}

// NewSlugIdArrayType binds property. An optional Hooks argument receives
// EnvelopeSelfHealed if a stored envelope turns out corrupt on read.
func NewSlugIdArrayType(property string, hooks ...rowtypes.Hooks) SlugIdArrayType {
	return SlugIdArrayType{property: property, hooks: firstHooks(hooks)}
}

func (t SlugIdArrayType) Property() string  { return t.property }
func (t SlugIdArrayType) IsEncrypted() bool { return false }

func (t SlugIdArrayType) Serialize(row rowtypes.Row, v *slugarray.SlugIdArray) error {
	return packOrWrap("SlugIdArrayType", t.property, row, v.GetBufferView())
}

func (t SlugIdArrayType) Deserialize(row rowtypes.Row) (*slugarray.SlugIdArray, error) {
	b, err := unpackOrWrap("SlugIdArrayType", t.property, row, t.hooks)
	if err != nil {
		return nil, err
	}
	a, err := slugarray.FromBuffer(b)
	if err != nil {
		return nil, rowtypes.WrapDecodeError("SlugIdArrayType", t.property, err, t.hooks)
	}
	return a, nil
}

func (t SlugIdArrayType) Equal(a, b *slugarray.SlugIdArray) bool { return a.Equals(b) }

func (t SlugIdArrayType) Clone(v *slugarray.SlugIdArray) *slugarray.SlugIdArray { return v.Clone() }

// Hash is the packed live-region bytes.
func (t SlugIdArrayType) Hash(v *slugarray.SlugIdArray) []byte { return v.GetBufferView() }

func (t SlugIdArrayType) SerializeValue(row rowtypes.Row, v any) error {
	a, ok := v.(*slugarray.SlugIdArray)
	if !ok {
		return rowtypes.NewTypeMismatch("SlugIdArrayType", t.property, "*slugarray.SlugIdArray", v)
	}
	return t.Serialize(row, a)
}

func (t SlugIdArrayType) DeserializeValue(row rowtypes.Row) (any, error) { return t.Deserialize(row) }

func (t SlugIdArrayType) EqualValues(a, b any) (bool, error) {
	aa, ok1 := a.(*slugarray.SlugIdArray)
	bb, ok2 := b.(*slugarray.SlugIdArray)
	if !ok1 || !ok2 {
		return false, rowtypes.NewTypeMismatch("SlugIdArrayType", t.property, "*slugarray.SlugIdArray", a)
	}
	return t.Equal(aa, bb), nil
}

func (t SlugIdArrayType) StringValue(any) (string, error) {
	return "", rowtypes.NotImplementedErr("SlugIdArrayType", t.property, "string")
}

func (t SlugIdArrayType) FilterCondition(rowtypes.Operator, any) (string, error) {
	return "", rowtypes.NotComparableErr("SlugIdArrayType", t.property, "filterCondition")
}
