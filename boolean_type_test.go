package rowtypes

import "testing"

func TestBooleanRoundTrip(t *testing.T) {
	typ := NewBooleanType("active")
	row := Row{}
	if err := typ.Serialize(row, true); err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	got, err := typ.Deserialize(row)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if got != true {
		t.Fatalf("got %v, want true", got)
	}
}

func TestBooleanStringRendersLowercase(t *testing.T) {
	typ := NewBooleanType("active")
	if typ.String(true) != "true" {
		t.Fatalf("got %q, want true", typ.String(true))
	}
	if typ.String(false) != "false" {
		t.Fatalf("got %q, want false", typ.String(false))
	}
}

func TestBooleanNotOrdered(t *testing.T) {
	typ := NewBooleanType("active")
	if typ.Ordered() {
		t.Fatalf("BooleanType must not be Ordered")
	}
	if !typ.Comparable() {
		t.Fatalf("BooleanType must be Comparable")
	}
}

func TestBooleanFilterConditionRendersBareLiteral(t *testing.T) {
	typ := NewBooleanType("active")
	got, err := typ.FilterCondition(OpEqual, false)
	if err != nil {
		t.Fatalf("FilterCondition: %v", err)
	}
	if got != "active eq false" {
		t.Fatalf("got %q, want %q", got, "active eq false")
	}
}
