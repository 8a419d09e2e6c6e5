package buftypes

import "github.com/unkn0wn-root/rowtypes"

// TextType UTF-8 encodes a string on write and decodes on read through the
// chunked envelope, so long text need not fit in a single wire cell.
type TextType struct {
	notComparable
	property string
	hooks    rowtypes.Hooks
}

var _ rowtypes.Type = TextType{}

// NewTextType binds property. An optional Hooks argument receives
// EnvelopeSelfHealed if a stored envelope turns out corrupt on read.
func NewTextType(property string, hooks ...rowtypes.Hooks) TextType {
	return TextType{property: property, hooks: firstHooks(hooks)}
}

func (t TextType) Property() string  { return t.property }
func (t TextType) IsEncrypted() bool { return false }

func (t TextType) Serialize(row rowtypes.Row, v string) error {
	return packOrWrap("TextType", t.property, row, []byte(v))
}

func (t TextType) Deserialize(row rowtypes.Row) (string, error) {
	b, err := unpackOrWrap("TextType", t.property, row, t.hooks)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (t TextType) Equal(a, b string) bool { return a == b }
func (t TextType) Clone(v string) string  { return v }

// Hash is the string itself; no re-encoding.
func (t TextType) Hash(v string) string { return v }

func (t TextType) SerializeValue(row rowtypes.Row, v any) error {
	s, ok := v.(string)
	if !ok {
		return rowtypes.NewTypeMismatch("TextType", t.property, "string", v)
	}
	return t.Serialize(row, s)
}

func (t TextType) DeserializeValue(row rowtypes.Row) (any, error) { return t.Deserialize(row) }

func (t TextType) EqualValues(a, b any) (bool, error) {
	sa, ok1 := a.(string)
	sb, ok2 := b.(string)
	if !ok1 || !ok2 {
		return false, rowtypes.NewTypeMismatch("TextType", t.property, "string", a)
	}
	return t.Equal(sa, sb), nil
}

func (t TextType) StringValue(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", rowtypes.NewTypeMismatch("TextType", t.property, "string", v)
	}
	return s, nil
}

func (t TextType) FilterCondition(rowtypes.Operator, any) (string, error) {
	return "", rowtypes.NotComparableErr("TextType", t.property, "filterCondition")
}
