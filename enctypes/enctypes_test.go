package enctypes

import (
	"bytes"
	"errors"
	"testing"

	"github.com/unkn0wn-root/rowtypes"
)

func testKey() []byte {
	k := make([]byte, 32)
	for i := range k {
		k[i] = byte(i * 7)
	}
	return k
}

func TestEncryptedBlobRoundTrip(t *testing.T) {
	typ := NewEncryptedBlob("secret", nil)
	row := rowtypes.Row{}
	key := testKey()
	want := []byte("top secret bytes")
	if err := typ.Serialize(row, want, key); err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	got, err := typ.Deserialize(row, key)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEncryptedBlobDifferentIVsSameHash(t *testing.T) {
	typ := NewEncryptedBlob("secret", nil)
	key := testKey()
	row1, row2 := rowtypes.Row{}, rowtypes.Row{}
	plain := []byte("identical plaintext")
	if err := typ.Serialize(row1, plain, key); err != nil {
		t.Fatalf("Serialize 1: %v", err)
	}
	if err := typ.Serialize(row2, plain, key); err != nil {
		t.Fatalf("Serialize 2: %v", err)
	}
	if row1["__buf0_secret"] == row2["__buf0_secret"] {
		t.Fatalf("two encryptions produced identical ciphertext chunks")
	}
	h1, err := typ.HashValue(plain)
	if err != nil {
		t.Fatalf("HashValue: %v", err)
	}
	h2, err := typ.HashValue(plain)
	if err != nil {
		t.Fatalf("HashValue: %v", err)
	}
	if h1 != h2 {
		t.Fatalf("plaintext hash differs despite equal input: %q vs %q", h1, h2)
	}
}

func TestEncryptedTextWrongKeyFails(t *testing.T) {
	typ := NewEncryptedText("note", nil)
	row := rowtypes.Row{}
	key := testKey()
	if err := typ.Serialize(row, "hello", key); err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	wrongKey := testKey()
	wrongKey[0] ^= 0xff
	if _, err := typ.Deserialize(row, wrongKey); err == nil {
		t.Fatalf("expected decrypt failure under the wrong key")
	}
}

func TestEncryptedJSONRoundTrip(t *testing.T) {
	typ := NewEncryptedJSON("payload", nil)
	row := rowtypes.Row{}
	key := testKey()
	want := map[string]any{"id": float64(1), "name": "ada"}
	if err := typ.Serialize(row, want, key); err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	got, err := typ.Deserialize(row, key)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	eq, err := typ.EqualValues(got, want)
	if err != nil {
		t.Fatalf("EqualValues: %v", err)
	}
	if !eq {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestEncryptedSchemaAppliesDefaultAndValidates(t *testing.T) {
	schemaJSON := []byte(`{
		"type": "object",
		"properties": {
			"tier": {"type": "string", "default": "free"}
		}
	}`)
	typ, err := NewEncryptedSchema(EncryptedSchemaOptions{Property: "account", SchemaJSON: schemaJSON})
	if err != nil {
		t.Fatalf("NewEncryptedSchema: %v", err)
	}
	row := rowtypes.Row{}
	key := testKey()
	if err := typ.Serialize(row, map[string]any{}, key); err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	got, err := typ.Deserialize(row, key)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	gm := got.(map[string]any)
	if gm["tier"] != "free" {
		t.Fatalf("tier = %v, want default 'free'", gm["tier"])
	}
}

func TestEncryptedSchemaRejectsInvalidValue(t *testing.T) {
	schemaJSON := []byte(`{"type": "object", "properties": {"age": {"type": "integer"}}, "required": ["age"]}`)
	typ, err := NewEncryptedSchema(EncryptedSchemaOptions{Property: "account", SchemaJSON: schemaJSON})
	if err != nil {
		t.Fatalf("NewEncryptedSchema: %v", err)
	}
	row := rowtypes.Row{}
	key := testKey()
	v := map[string]any{"age": "not a number"}
	err = typ.Serialize(row, v, key)
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

func TestSerializeRejectsOversizedPlaintext(t *testing.T) {
	typ := NewEncryptedBlob("big", nil)
	row := rowtypes.Row{}
	key := testKey()
	if err := typ.Serialize(row, make([]byte, MaxPlaintext+1), key); err == nil {
		t.Fatalf("expected error for plaintext over the 256 KiB - 32 byte cap")
	}
}

type recordingHooks struct {
	rowtypes.NopHooks
	selfHealed []string
}

func (h *recordingHooks) EnvelopeSelfHealed(property, reason string) {
	h.selfHealed = append(h.selfHealed, property)
}

func TestEncryptedBlobDeserializeFiresEnvelopeSelfHealedOnCorruption(t *testing.T) {
	hooks := &recordingHooks{}
	typ := NewEncryptedBlob("secret", hooks)
	row := rowtypes.Row{}
	key := testKey()
	if err := typ.Serialize(row, []byte("top secret"), key); err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	row["__bufchunks_secret"] = "not a number"
	if _, err := typ.Deserialize(row, key); err == nil {
		t.Fatalf("expected decode failure on corrupted envelope")
	}
	if len(hooks.selfHealed) != 1 || hooks.selfHealed[0] != "secret" {
		t.Fatalf("EnvelopeSelfHealed fired = %v, want one call for property secret", hooks.selfHealed)
	}
}
