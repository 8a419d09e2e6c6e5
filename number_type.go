package rowtypes

import (
	"math"
	"strconv"
)

// bigIntThreshold is 2^31; integers whose absolute value meets or exceeds
// this are written as an Edm.Int64 string cell instead of a raw double, to
// avoid precision loss in consumers that decode the cell as a float64.
const bigIntThreshold = 1 << 31

// NumberType is the scalar codec for numeric values. Values that are whole
// numbers with |v| >= 2^31 are written as a decimal string annotated
// Edm.Int64; all other values are written as a bare numeric cell.
type NumberType struct {
	property string
}

var _ Type = NumberType{}

func NewNumberType(property string) NumberType { return NumberType{property: property} }

func (t NumberType) Property() string  { return t.property }
func (t NumberType) Ordered() bool     { return true }
func (t NumberType) Comparable() bool  { return true }
func (t NumberType) IsEncrypted() bool { return false }

func isWholeNumber(v float64) bool { return v == math.Trunc(v) && !math.IsInf(v, 0) }

func isBigInt(v float64) bool {
	return isWholeNumber(v) && math.Abs(v) >= bigIntThreshold
}

func (t NumberType) Serialize(row Row, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return newErr(FormatInvalid, "NumberType", t.property, "value must be finite")
	}
	if isBigInt(v) {
		row[t.property] = strconv.FormatInt(int64(v), 10)
		row[odataTypeCell(t.property)] = EdmInt64
		return nil
	}
	row[t.property] = v
	delete(row, odataTypeCell(t.property))
	return nil
}

func (t NumberType) Deserialize(row Row) (float64, error) {
	raw, ok := row[t.property]
	if !ok {
		return 0, newErr(TypeMismatch, "NumberType", t.property, "missing cell")
	}
	if ann, _ := row[odataTypeCell(t.property)].(string); ann == EdmInt64 {
		s, ok := raw.(string)
		if err := checkCategory("NumberType", t.property, ok, "string (Edm.Int64)", goTypeName(raw)); err != nil {
			return 0, err
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, wrapErr(DecodeFailure, "NumberType", t.property, "malformed Edm.Int64 value", err)
		}
		return float64(n), nil
	}
	switch v := raw.(type) {
	case float64:
		return v, nil
	default:
		return 0, checkCategory("NumberType", t.property, false, "number", goTypeName(raw))
	}
}

func (t NumberType) Equal(a, b float64) bool { return a == b }
func (t NumberType) Clone(v float64) float64 { return v }

func (t NumberType) String(v float64) string {
	if isWholeNumber(v) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (t NumberType) Compare(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (t NumberType) SerializeValue(row Row, v any) error {
	f, ok := v.(float64)
	if err := checkCategory("NumberType", t.property, ok, "float64", goTypeName(v)); err != nil {
		return err
	}
	return t.Serialize(row, f)
}

func (t NumberType) DeserializeValue(row Row) (any, error) { return t.Deserialize(row) }

func (t NumberType) EqualValues(a, b any) (bool, error) {
	fa, ok1 := a.(float64)
	fb, ok2 := b.(float64)
	if !ok1 || !ok2 {
		return false, newErr(TypeMismatch, "NumberType", t.property, "equal requires two numbers")
	}
	return t.Equal(fa, fb), nil
}

func (t NumberType) StringValue(v any) (string, error) {
	f, ok := v.(float64)
	if err := checkCategory("NumberType", t.property, ok, "float64", goTypeName(v)); err != nil {
		return "", err
	}
	return t.String(f), nil
}

func (t NumberType) FilterCondition(op Operator, operand any) (string, error) {
	f, ok := operand.(float64)
	if err := checkCategory("NumberType", t.property, ok, "float64", goTypeName(operand)); err != nil {
		return "", err
	}
	return renderCondition(t.property, op, renderLiteral(t.String(f)))
}
