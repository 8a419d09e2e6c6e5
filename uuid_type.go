package rowtypes

import "github.com/google/uuid"

// UUIDType is the scalar codec for github.com/google/uuid.UUID values.
// Cells are written as the canonical lowercase hex-with-dashes form,
// annotated Edm.Guid. Equality is case-insensitive (canonicalized on parse,
// so in practice this reduces to byte equality of the parsed UUID).
//
// Compare is undefined per §4.4/§9: both UUID and SlugId explicitly reject
// ordering, resolving the source's ambiguous prototype override in favor of
// a single, unambiguous NotComparable failure.
type UUIDType struct {
	property string
}

var _ Type = UUIDType{}

func NewUUIDType(property string) UUIDType { return UUIDType{property: property} }

func (t UUIDType) Property() string  { return t.property }
func (t UUIDType) Ordered() bool     { return true }
func (t UUIDType) Comparable() bool  { return true }
func (t UUIDType) IsEncrypted() bool { return false }

func (t UUIDType) Serialize(row Row, v uuid.UUID) error {
	row[t.property] = v.String()
	row[odataTypeCell(t.property)] = EdmGuid
	return nil
}

func (t UUIDType) Deserialize(row Row) (uuid.UUID, error) {
	raw, ok := row[t.property]
	if !ok {
		return uuid.UUID{}, newErr(TypeMismatch, "UUIDType", t.property, "missing cell")
	}
	s, ok := raw.(string)
	if err := checkCategory("UUIDType", t.property, ok, "string (Edm.Guid)", goTypeName(raw)); err != nil {
		return uuid.UUID{}, err
	}
	v, err := uuid.Parse(s)
	if err != nil {
		return uuid.UUID{}, wrapErr(FormatInvalid, "UUIDType", t.property, "malformed UUID", err)
	}
	return v, nil
}

func (t UUIDType) Equal(a, b uuid.UUID) bool { return a == b }
func (t UUIDType) Clone(v uuid.UUID) uuid.UUID { return v }
func (t UUIDType) String(v uuid.UUID) string { return v.String() }

// Compare always fails: UUID has no meaningful ordering for this store.
func (t UUIDType) Compare(a, b uuid.UUID) (int, error) {
	return 0, NotComparableErr("UUIDType", t.property, "compare")
}

func (t UUIDType) SerializeValue(row Row, v any) error {
	u, ok := v.(uuid.UUID)
	if err := checkCategory("UUIDType", t.property, ok, "uuid.UUID", goTypeName(v)); err != nil {
		return err
	}
	return t.Serialize(row, u)
}

func (t UUIDType) DeserializeValue(row Row) (any, error) { return t.Deserialize(row) }

func (t UUIDType) EqualValues(a, b any) (bool, error) {
	ua, ok1 := a.(uuid.UUID)
	ub, ok2 := b.(uuid.UUID)
	if !ok1 || !ok2 {
		return false, newErr(TypeMismatch, "UUIDType", t.property, "equal requires two uuid.UUID values")
	}
	return t.Equal(ua, ub), nil
}

func (t UUIDType) StringValue(v any) (string, error) {
	u, ok := v.(uuid.UUID)
	if err := checkCategory("UUIDType", t.property, ok, "uuid.UUID", goTypeName(v)); err != nil {
		return "", err
	}
	return t.String(u), nil
}

func (t UUIDType) FilterCondition(op Operator, operand any) (string, error) {
	u, ok := operand.(uuid.UUID)
	if err := checkCategory("UUIDType", t.property, ok, "uuid.UUID", goTypeName(operand)); err != nil {
		return "", err
	}
	return renderCondition(t.property, op, renderGuid(t.String(u)))
}
