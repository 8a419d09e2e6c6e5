package rowtypes

import "testing"

func TestNumberRoundTripSmall(t *testing.T) {
	typ := NewNumberType("count")
	row := Row{}
	if err := typ.Serialize(row, 42.5); err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if _, hasAnnotation := row["count@odata.type"]; hasAnnotation {
		t.Fatalf("small value should not carry an Edm.Int64 annotation")
	}
	got, err := typ.Deserialize(row)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if got != 42.5 {
		t.Fatalf("got %v, want 42.5", got)
	}
}

func TestNumberRoundTripBigInt(t *testing.T) {
	typ := NewNumberType("total")
	row := Row{}
	big := float64(1 << 40)
	if err := typ.Serialize(row, big); err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if row["total@odata.type"] != EdmInt64 {
		t.Fatalf("expected Edm.Int64 annotation for big whole number")
	}
	if _, ok := row["total"].(string); !ok {
		t.Fatalf("expected big int cell to be wire-encoded as a string")
	}
	got, err := typ.Deserialize(row)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if got != big {
		t.Fatalf("got %v, want %v", got, big)
	}
}

func TestNumberSerializeRejectsNaN(t *testing.T) {
	typ := NewNumberType("x")
	if err := typ.Serialize(Row{}, nanValue()); err == nil {
		t.Fatalf("expected error for NaN")
	}
}

func nanValue() float64 {
	var zero float64
	return zero / zero
}

func TestNumberStringFormatsIntegerVsFloat(t *testing.T) {
	typ := NewNumberType("x")
	if typ.String(3) != "3" {
		t.Fatalf("got %q, want 3", typ.String(3))
	}
	if typ.String(3.5) != "3.5" {
		t.Fatalf("got %q, want 3.5", typ.String(3.5))
	}
}

func TestNumberAnnotationClearedOnShrink(t *testing.T) {
	typ := NewNumberType("x")
	row := Row{}
	if err := typ.Serialize(row, float64(1<<40)); err != nil {
		t.Fatalf("Serialize big: %v", err)
	}
	if err := typ.Serialize(row, 1.5); err != nil {
		t.Fatalf("Serialize small: %v", err)
	}
	if _, ok := row["x@odata.type"]; ok {
		t.Fatalf("expected stale Edm.Int64 annotation to be cleared")
	}
}
