package rowtypes

// maxPositiveInteger is 2^32. PositiveIntegerType.Validate rejects any value
// > maxPositiveInteger; maxPositiveInteger itself is the largest accepted value
// (the boundary is checked as "> 2^32", not ">="; see DESIGN.md Open
// Question on PositiveInteger's upper bound).
const maxPositiveInteger = 1 << 32

// PositiveIntegerType layers integer/range validation on top of NumberType's
// wire representation (bare double, or Edm.Int64 string once |v| >= 2^31).
type PositiveIntegerType struct {
	NumberType
}

var _ Type = PositiveIntegerType{}

func NewPositiveIntegerType(property string) PositiveIntegerType {
	return PositiveIntegerType{NumberType: NewNumberType(property)}
}

func (t PositiveIntegerType) Validate(v float64) error {
	if !isWholeNumber(v) {
		return newErr(FormatInvalid, "PositiveIntegerType", t.Property(), "value must be an integer")
	}
	if v < 0 {
		return newErr(FormatInvalid, "PositiveIntegerType", t.Property(), "value must not be negative")
	}
	if v > maxPositiveInteger {
		return newErr(FormatInvalid, "PositiveIntegerType", t.Property(), "value must not exceed 2^32")
	}
	return nil
}

func (t PositiveIntegerType) Serialize(row Row, v float64) error {
	if err := t.Validate(v); err != nil {
		return err
	}
	return t.NumberType.Serialize(row, v)
}

func (t PositiveIntegerType) Deserialize(row Row) (float64, error) {
	v, err := t.NumberType.Deserialize(row)
	if err != nil {
		return 0, err
	}
	if err := t.Validate(v); err != nil {
		return 0, err
	}
	return v, nil
}

func (t PositiveIntegerType) SerializeValue(row Row, v any) error {
	f, ok := v.(float64)
	if err := checkCategory("PositiveIntegerType", t.Property(), ok, "float64", goTypeName(v)); err != nil {
		return err
	}
	return t.Serialize(row, f)
}

func (t PositiveIntegerType) DeserializeValue(row Row) (any, error) { return t.Deserialize(row) }
