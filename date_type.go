package rowtypes

import "time"

// dateLayout is the ISO-8601 (RFC3339 with milliseconds) layout used for the
// wire representation and for canonical stringification.
const dateLayout = "2006-01-02T15:04:05.000Z"

// DateType is the scalar codec for time.Time values. Cells are written as an
// ISO-8601 string annotated Edm.DateTime; equality is millisecond-precision.
type DateType struct {
	property string
}

var _ Type = DateType{}

func NewDateType(property string) DateType { return DateType{property: property} }

func (t DateType) Property() string  { return t.property }
func (t DateType) Ordered() bool     { return true }
func (t DateType) Comparable() bool  { return true }
func (t DateType) IsEncrypted() bool { return false }

func (t DateType) Serialize(row Row, v time.Time) error {
	row[t.property] = v.UTC().Format(dateLayout)
	row[odataTypeCell(t.property)] = EdmDateTime
	return nil
}

func (t DateType) Deserialize(row Row) (time.Time, error) {
	raw, ok := row[t.property]
	if !ok {
		return time.Time{}, newErr(TypeMismatch, "DateType", t.property, "missing cell")
	}
	s, ok := raw.(string)
	if err := checkCategory("DateType", t.property, ok, "string (Edm.DateTime)", goTypeName(raw)); err != nil {
		return time.Time{}, err
	}
	v, err := time.Parse(dateLayout, s)
	if err != nil {
		// Tolerate an absent trailing ".000" or a different sub-second precision.
		if v2, err2 := time.Parse(time.RFC3339Nano, s); err2 == nil {
			return v2.UTC(), nil
		}
		return time.Time{}, wrapErr(FormatInvalid, "DateType", t.property, "malformed ISO-8601 timestamp", err)
	}
	return v.UTC(), nil
}

// Equal compares at millisecond precision, per §4.4.
func (t DateType) Equal(a, b time.Time) bool {
	return a.Truncate(time.Millisecond).Equal(b.Truncate(time.Millisecond))
}

func (t DateType) Clone(v time.Time) time.Time { return v }
func (t DateType) String(v time.Time) string   { return v.UTC().Format(dateLayout) }

func (t DateType) Compare(a, b time.Time) int {
	am, bm := a.Truncate(time.Millisecond), b.Truncate(time.Millisecond)
	switch {
	case am.Before(bm):
		return -1
	case am.After(bm):
		return 1
	default:
		return 0
	}
}

func (t DateType) SerializeValue(row Row, v any) error {
	d, ok := v.(time.Time)
	if !ok {
		return newErr(FormatInvalid, "DateType", t.property, "expected time.Time, got "+goTypeName(v))
	}
	return t.Serialize(row, d)
}

func (t DateType) DeserializeValue(row Row) (any, error) { return t.Deserialize(row) }

func (t DateType) EqualValues(a, b any) (bool, error) {
	da, ok1 := a.(time.Time)
	db, ok2 := b.(time.Time)
	if !ok1 || !ok2 {
		return false, newErr(TypeMismatch, "DateType", t.property, "equal requires two time.Time values")
	}
	return t.Equal(da, db), nil
}

func (t DateType) StringValue(v any) (string, error) {
	d, ok := v.(time.Time)
	if err := checkCategory("DateType", t.property, ok, "time.Time", goTypeName(v)); err != nil {
		return "", err
	}
	return t.String(d), nil
}

func (t DateType) FilterCondition(op Operator, operand any) (string, error) {
	d, ok := operand.(time.Time)
	if err := checkCategory("DateType", t.property, ok, "time.Time", goTypeName(operand)); err != nil {
		return "", err
	}
	return renderCondition(t.property, op, renderDate(t.String(d)))
}
