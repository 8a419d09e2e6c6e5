package rowtypes

import "testing"

func TestStringRoundTrip(t *testing.T) {
	typ := NewStringType("name")
	row := Row{}
	if err := typ.Serialize(row, "ada lovelace"); err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	got, err := typ.Deserialize(row)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if got != "ada lovelace" {
		t.Fatalf("got %q, want %q", got, "ada lovelace")
	}
}

func TestStringDeserializeMissingCell(t *testing.T) {
	typ := NewStringType("name")
	if _, err := typ.Deserialize(Row{}); err == nil {
		t.Fatalf("expected error for missing cell")
	}
}

func TestStringFilterConditionEscapesQuotes(t *testing.T) {
	typ := NewStringType("name")
	got, err := typ.FilterCondition(OpEqual, "o'brien")
	if err != nil {
		t.Fatalf("FilterCondition: %v", err)
	}
	want := "name eq 'o''brien'"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestStringCompareOrders(t *testing.T) {
	typ := NewStringType("name")
	if typ.Compare("a", "b") >= 0 {
		t.Fatalf("expected a < b")
	}
	if typ.Compare("b", "a") <= 0 {
		t.Fatalf("expected b > a")
	}
	if typ.Compare("a", "a") != 0 {
		t.Fatalf("expected a == a")
	}
}
