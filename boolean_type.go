package rowtypes

// BooleanType is the scalar codec for Go bool values. Not ordered: boolean
// filters only ever test equality.
type BooleanType struct {
	property string
}

var _ Type = BooleanType{}

func NewBooleanType(property string) BooleanType { return BooleanType{property: property} }

func (t BooleanType) Property() string  { return t.property }
func (t BooleanType) Ordered() bool     { return false }
func (t BooleanType) Comparable() bool  { return true }
func (t BooleanType) IsEncrypted() bool { return false }

func (t BooleanType) Serialize(row Row, v bool) error {
	row[t.property] = v
	return nil
}

func (t BooleanType) Deserialize(row Row) (bool, error) {
	raw, ok := row[t.property]
	if !ok {
		return false, newErr(TypeMismatch, "BooleanType", t.property, "missing cell")
	}
	v, ok := raw.(bool)
	if err := checkCategory("BooleanType", t.property, ok, "bool", goTypeName(raw)); err != nil {
		return false, err
	}
	return v, nil
}

func (t BooleanType) Equal(a, b bool) bool { return a == b }
func (t BooleanType) Clone(v bool) bool    { return v }

func (t BooleanType) String(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

func (t BooleanType) SerializeValue(row Row, v any) error {
	b, ok := v.(bool)
	if err := checkCategory("BooleanType", t.property, ok, "bool", goTypeName(v)); err != nil {
		return err
	}
	return t.Serialize(row, b)
}

func (t BooleanType) DeserializeValue(row Row) (any, error) { return t.Deserialize(row) }

func (t BooleanType) EqualValues(a, b any) (bool, error) {
	ba, ok1 := a.(bool)
	bb, ok2 := b.(bool)
	if !ok1 || !ok2 {
		return false, newErr(TypeMismatch, "BooleanType", t.property, "equal requires two bools")
	}
	return t.Equal(ba, bb), nil
}

func (t BooleanType) StringValue(v any) (string, error) {
	b, ok := v.(bool)
	if err := checkCategory("BooleanType", t.property, ok, "bool", goTypeName(v)); err != nil {
		return "", err
	}
	return t.String(b), nil
}

func (t BooleanType) FilterCondition(op Operator, operand any) (string, error) {
	b, ok := operand.(bool)
	if err := checkCategory("BooleanType", t.property, ok, "bool", goTypeName(operand)); err != nil {
		return "", err
	}
	return renderCondition(t.property, op, renderLiteral(t.String(b)))
}
