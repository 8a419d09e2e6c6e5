package buftypes

import (
	"errors"
	"testing"

	"github.com/unkn0wn-root/rowtypes"
	"github.com/unkn0wn-root/rowtypes/slugarray"
	"github.com/unkn0wn-root/rowtypes/slugid"
)

func newTestArray(t *testing.T, seeds ...byte) *slugarray.SlugIdArray {
	t.Helper()
	arr := slugarray.New()
	for i, seed := range seeds {
		raw := make([]byte, 16)
		for j := range raw {
			raw[j] = seed + byte(i*j)
		}
		slug, err := slugid.Encode(raw)
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		if err := arr.Push(slug); err != nil {
			t.Fatalf("Push: %v", err)
		}
	}
	return arr
}

func TestBlobRoundTrip(t *testing.T) {
	typ := NewBlobType("payload")
	row := rowtypes.Row{}
	want := []byte{0x01, 0x02, 0x03, 0xff}
	if err := typ.Serialize(row, want); err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	got, err := typ.Deserialize(row)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if !typ.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestBlobClonedIsIndependent(t *testing.T) {
	typ := NewBlobType("p")
	orig := []byte{1, 2, 3}
	clone := typ.Clone(orig)
	clone[0] = 9
	if orig[0] != 1 {
		t.Fatalf("Clone aliased the original backing array")
	}
}

func TestTextRoundTrip(t *testing.T) {
	typ := NewTextType("note")
	row := rowtypes.Row{}
	want := "héllo wörld"
	if err := typ.Serialize(row, want); err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	got, err := typ.Deserialize(row)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestJSONRoundTripObject(t *testing.T) {
	typ := NewJSONType("meta")
	row := rowtypes.Row{}
	want := map[string]any{"a": float64(1), "b": "two", "c": []any{float64(1), float64(2)}}
	if err := typ.Serialize(row, want); err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	got, err := typ.Deserialize(row)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if !typ.Equal(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestJSONHashIgnoresKeyOrder(t *testing.T) {
	typ := NewJSONType("meta")
	a := map[string]any{"a": float64(1), "b": float64(2)}
	b := map[string]any{"b": float64(2), "a": float64(1)}
	ha, err := typ.Hash(a)
	if err != nil {
		t.Fatalf("Hash(a): %v", err)
	}
	hb, err := typ.Hash(b)
	if err != nil {
		t.Fatalf("Hash(b): %v", err)
	}
	if ha != hb {
		t.Fatalf("hash differs by key order: %q vs %q", ha, hb)
	}
}

func TestJSONHashNestedKeyOrder(t *testing.T) {
	typ := NewJSONType("meta")
	a := map[string]any{"outer": map[string]any{"x": float64(1), "y": float64(2)}}
	b := map[string]any{"outer": map[string]any{"y": float64(2), "x": float64(1)}}
	ha, _ := typ.Hash(a)
	hb, _ := typ.Hash(b)
	if ha != hb {
		t.Fatalf("nested hash differs by key order: %q vs %q", ha, hb)
	}
}

func TestCBORRoundTrip(t *testing.T) {
	typ := NewCBORType("blob")
	row := rowtypes.Row{}
	want := map[string]any{"n": uint64(7), "s": "hi"}
	if err := typ.Serialize(row, want); err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	got, err := typ.Deserialize(row)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	gm, ok := got.(map[string]any)
	if !ok {
		t.Fatalf("got %T, want map[string]any", got)
	}
	if gm["s"] != "hi" {
		t.Fatalf("got s=%v, want hi", gm["s"])
	}
}

func TestSchemaAppliesDefaultOnMissingField(t *testing.T) {
	schemaJSON := []byte(`{
		"type": "object",
		"properties": {
			"name": {"type": "string"},
			"role": {"type": "string", "default": "member"}
		},
		"required": ["name"]
	}`)
	var applied []string
	hooks := testHooks{onDefault: func(property, field string) { applied = append(applied, field) }}
	typ, err := NewSchemaType(SchemaOptions{Property: "profile", SchemaJSON: schemaJSON, Hooks: hooks})
	if err != nil {
		t.Fatalf("NewSchemaType: %v", err)
	}
	row := rowtypes.Row{}
	if err := typ.Serialize(row, map[string]any{"name": "ada"}); err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	got, err := typ.Deserialize(row)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	gm := got.(map[string]any)
	if gm["role"] != "member" {
		t.Fatalf("role = %v, want default 'member'", gm["role"])
	}
	if len(applied) != 1 || applied[0] != "role" {
		t.Fatalf("hook calls = %v, want [role]", applied)
	}
}

func TestSchemaRejectsInvalidValue(t *testing.T) {
	schemaJSON := []byte(`{"type": "object", "properties": {"age": {"type": "integer"}}, "required": ["age"]}`)
	typ, err := NewSchemaType(SchemaOptions{Property: "p", SchemaJSON: schemaJSON})
	if err != nil {
		t.Fatalf("NewSchemaType: %v", err)
	}
	row := rowtypes.Row{}
	v := map[string]any{"age": "not a number"}
	err = typ.Serialize(row, v)
	if err == nil {
		t.Fatalf("expected schema validation error")
	}
	var typeErr *rowtypes.TypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("expected *rowtypes.TypeError, got %T", err)
	}
	if typeErr.Kind != rowtypes.SchemaInvalid {
		t.Fatalf("Kind = %v, want SchemaInvalid", typeErr.Kind)
	}
	if len(typeErr.SchemaErrors) == 0 {
		t.Fatalf("expected SchemaErrors to be populated")
	}
	got, ok := typeErr.Value.(map[string]any)
	if !ok || got["age"] != "not a number" {
		t.Fatalf("Value = %#v, want the offending map", typeErr.Value)
	}
}

type testHooks struct {
	rowtypes.NopHooks
	onDefault  func(property, field string)
	onSelfHeal func(property, reason string)
}

func (h testHooks) SchemaDefaultApplied(property, field string) {
	if h.onDefault != nil {
		h.onDefault(property, field)
	}
}

func (h testHooks) EnvelopeSelfHealed(property, reason string) {
	if h.onSelfHeal != nil {
		h.onSelfHeal(property, reason)
	}
}

func TestBlobDeserializeFiresEnvelopeSelfHealedOnCorruption(t *testing.T) {
	var fired []string
	hooks := testHooks{onSelfHeal: func(property, reason string) { fired = append(fired, property) }}
	typ := NewBlobType("payload", hooks)
	row := rowtypes.Row{}
	if err := typ.Serialize(row, []byte("hello")); err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	// Corrupt the chunk count cell so Unpack reports ErrCorrupt.
	row["__bufchunks_payload"] = "not a number"
	if _, err := typ.Deserialize(row); err == nil {
		t.Fatalf("expected decode failure on corrupted envelope")
	}
	if len(fired) != 1 || fired[0] != "payload" {
		t.Fatalf("EnvelopeSelfHealed fired = %v, want one call for property payload", fired)
	}
}

func TestSlugIdArrayRoundTrip(t *testing.T) {
	typ := NewSlugIdArrayType("members")
	arr := newTestArray(t, 0x10, 0x20)
	row := rowtypes.Row{}
	if err := typ.Serialize(row, arr); err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	got, err := typ.Deserialize(row)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if !typ.Equal(got, arr) {
		t.Fatalf("round-tripped array does not equal original")
	}
}
