package rowtypes

// StringType is the scalar codec for Go string values. It writes the raw
// string into one cell with no annotation.
type StringType struct {
	property string
}

var _ Type = StringType{}

// NewStringType binds a StringType to property.
func NewStringType(property string) StringType { return StringType{property: property} }

func (t StringType) Property() string  { return t.property }
func (t StringType) Ordered() bool     { return true }
func (t StringType) Comparable() bool  { return true }
func (t StringType) IsEncrypted() bool { return false }

func (t StringType) Validate(v string) error { return nil }

func (t StringType) Serialize(row Row, v string) error {
	if err := t.Validate(v); err != nil {
		return err
	}
	row[t.property] = v
	return nil
}

func (t StringType) Deserialize(row Row) (string, error) {
	raw, ok := row[t.property]
	if !ok {
		return "", newErr(TypeMismatch, "StringType", t.property, "missing cell")
	}
	v, ok := raw.(string)
	if err := checkCategory("StringType", t.property, ok, "string", goTypeName(raw)); err != nil {
		return "", err
	}
	return v, t.Validate(v)
}

func (t StringType) Equal(a, b string) bool { return a == b }
func (t StringType) Clone(v string) string  { return v }
func (t StringType) String(v string) string { return v }

func (t StringType) Compare(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// --- Type interface adapters ---

func (t StringType) SerializeValue(row Row, v any) error {
	s, ok := v.(string)
	if err := checkCategory("StringType", t.property, ok, "string", goTypeName(v)); err != nil {
		return err
	}
	return t.Serialize(row, s)
}

func (t StringType) DeserializeValue(row Row) (any, error) { return t.Deserialize(row) }

func (t StringType) EqualValues(a, b any) (bool, error) {
	sa, ok1 := a.(string)
	sb, ok2 := b.(string)
	if !ok1 || !ok2 {
		return false, newErr(TypeMismatch, "StringType", t.property, "equal requires two strings")
	}
	return t.Equal(sa, sb), nil
}

func (t StringType) StringValue(v any) (string, error) {
	s, ok := v.(string)
	if err := checkCategory("StringType", t.property, ok, "string", goTypeName(v)); err != nil {
		return "", err
	}
	return t.String(s), nil
}

func (t StringType) FilterCondition(op Operator, operand any) (string, error) {
	s, ok := operand.(string)
	if err := checkCategory("StringType", t.property, ok, "string", goTypeName(operand)); err != nil {
		return "", err
	}
	return renderCondition(t.property, op, renderString(s))
}
