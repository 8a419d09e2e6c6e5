// Package enctypes implements the encrypted counterparts of buftypes's
// buffer-based codecs: EncryptedBlob, EncryptedText, EncryptedJSON and
// EncryptedSchema each wrap the plaintext codec's (de)serialization in the
// AES-256-CBC envelope from crypt, routed through the same chunked binary
// envelope as their unencrypted siblings.
//
// None of these types implement rowtypes.Type: every operation requires a
// caller-supplied key, which Type's fixed signatures have no room for. They
// implement rowtypes.EncryptedType instead.
package enctypes

import (
	"encoding/json"
	"reflect"

	"github.com/unkn0wn-root/rowtypes"
	"github.com/unkn0wn-root/rowtypes/crypt"
	"github.com/unkn0wn-root/rowtypes/internal/envelope"
)

// MaxPlaintext reserves headroom in the 256 KiB envelope cap for the IV and
// one full block of PKCS#7 padding (padding can add up to a whole block when
// the plaintext length is already block-aligned).
const MaxPlaintext = envelope.MaxPayload - crypt.IVSize - crypt.BlockSize

func toEnvelopeRow(row rowtypes.Row) envelope.Row { return envelope.Row(row) }

func sealAndPack(variant, property string, row rowtypes.Row, key, plain []byte) error {
	if len(plain) > MaxPlaintext {
		return &rowtypes.TypeError{Kind: rowtypes.SizeExceeded, Variant: variant, Property: property,
			Message: "plaintext exceeds 256 KiB - 32 bytes of IV/padding headroom"}
	}
	blob, err := crypt.Encrypt(key, plain)
	if err != nil {
		return &rowtypes.TypeError{Kind: rowtypes.FormatInvalid, Variant: variant, Property: property,
			Message: "encrypt failed", Cause: err}
	}
	if err := envelope.Pack(toEnvelopeRow(row), property, blob); err != nil {
		return rowtypes.WrapEnvelopeError(variant, property, err)
	}
	return nil
}

func unpackAndOpen(variant, property string, row rowtypes.Row, key []byte, hooks rowtypes.Hooks) ([]byte, error) {
	blob, err := envelope.Unpack(toEnvelopeRow(row), property)
	if err != nil {
		return nil, rowtypes.WrapDecodeError(variant, property, err, hooks)
	}
	plain, err := crypt.Decrypt(key, blob)
	if err != nil {
		if hooks != nil {
			hooks.DecryptKeyRejected(property)
		}
		return nil, &rowtypes.TypeError{Kind: rowtypes.DecodeFailure, Variant: variant, Property: property,
			Message: "decrypt failed (wrong key or corrupt envelope)", Cause: err}
	}
	return plain, nil
}

func coalesceHooks(h rowtypes.Hooks) rowtypes.Hooks {
	return rowtypes.Coalesce[rowtypes.Hooks](h, rowtypes.NopHooks{})
}

// EncryptedBlob is Blob's encrypted counterpart: identity bytes under the
// encryption envelope.
type EncryptedBlob struct {
	property string
	hooks    rowtypes.Hooks
}

var _ rowtypes.EncryptedType = EncryptedBlob{}

func NewEncryptedBlob(property string, hooks rowtypes.Hooks) EncryptedBlob {
	return EncryptedBlob{property: property, hooks: coalesceHooks(hooks)}
}

func (t EncryptedBlob) Property() string  { return t.property }
func (t EncryptedBlob) IsEncrypted() bool { return true }

func (t EncryptedBlob) Serialize(row rowtypes.Row, v, key []byte) error {
	return sealAndPack("EncryptedBlob", t.property, row, key, v)
}

func (t EncryptedBlob) Deserialize(row rowtypes.Row, key []byte) ([]byte, error) {
	return unpackAndOpen("EncryptedBlob", t.property, row, key, t.hooks)
}

func (t EncryptedBlob) SerializeValue(row rowtypes.Row, v any, key []byte) error {
	b, ok := v.([]byte)
	if !ok {
		return rowtypes.NewTypeMismatch("EncryptedBlob", t.property, "[]byte", v)
	}
	return t.Serialize(row, b, key)
}

func (t EncryptedBlob) DeserializeValue(row rowtypes.Row, key []byte) (any, error) {
	return t.Deserialize(row, key)
}

func (t EncryptedBlob) EqualValues(a, b any) (bool, error) {
	ba, ok1 := a.([]byte)
	bb, ok2 := b.([]byte)
	if !ok1 || !ok2 {
		return false, rowtypes.NewTypeMismatch("EncryptedBlob", t.property, "[]byte", a)
	}
	return reflect.DeepEqual(ba, bb), nil
}

func (t EncryptedBlob) HashValue(v any) (string, error) {
	b, ok := v.([]byte)
	if !ok {
		return "", rowtypes.NewTypeMismatch("EncryptedBlob", t.property, "[]byte", v)
	}
	return string(b), nil
}

// EncryptedText is Text's encrypted counterpart.
type EncryptedText struct {
	property string
	hooks    rowtypes.Hooks
}

var _ rowtypes.EncryptedType = EncryptedText{}

func NewEncryptedText(property string, hooks rowtypes.Hooks) EncryptedText {
	return EncryptedText{property: property, hooks: coalesceHooks(hooks)}
}

func (t EncryptedText) Property() string  { return t.property }
func (t EncryptedText) IsEncrypted() bool { return true }

func (t EncryptedText) Serialize(row rowtypes.Row, v string, key []byte) error {
	return sealAndPack("EncryptedText", t.property, row, key, []byte(v))
}

func (t EncryptedText) Deserialize(row rowtypes.Row, key []byte) (string, error) {
	b, err := unpackAndOpen("EncryptedText", t.property, row, key, t.hooks)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (t EncryptedText) SerializeValue(row rowtypes.Row, v any, key []byte) error {
	s, ok := v.(string)
	if !ok {
		return rowtypes.NewTypeMismatch("EncryptedText", t.property, "string", v)
	}
	return t.Serialize(row, s, key)
}

func (t EncryptedText) DeserializeValue(row rowtypes.Row, key []byte) (any, error) {
	return t.Deserialize(row, key)
}

func (t EncryptedText) EqualValues(a, b any) (bool, error) {
	sa, ok1 := a.(string)
	sb, ok2 := b.(string)
	if !ok1 || !ok2 {
		return false, rowtypes.NewTypeMismatch("EncryptedText", t.property, "string", a)
	}
	return sa == sb, nil
}

func (t EncryptedText) HashValue(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", rowtypes.NewTypeMismatch("EncryptedText", t.property, "string", v)
	}
	return s, nil
}

// EncryptedJSON is JSON's encrypted counterpart.
type EncryptedJSON struct {
	property string
	hooks    rowtypes.Hooks
}

var _ rowtypes.EncryptedType = EncryptedJSON{}

func NewEncryptedJSON(property string, hooks rowtypes.Hooks) EncryptedJSON {
	return EncryptedJSON{property: property, hooks: coalesceHooks(hooks)}
}

func (t EncryptedJSON) Property() string  { return t.property }
func (t EncryptedJSON) IsEncrypted() bool { return true }

func (t EncryptedJSON) Serialize(row rowtypes.Row, v any, key []byte) error {
	b, err := json.Marshal(v)
	if err != nil {
		return rowtypes.WrapEnvelopeError("EncryptedJSON", t.property, err)
	}
	return sealAndPack("EncryptedJSON", t.property, row, key, b)
}

func (t EncryptedJSON) Deserialize(row rowtypes.Row, key []byte) (any, error) {
	b, err := unpackAndOpen("EncryptedJSON", t.property, row, key, t.hooks)
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, rowtypes.WrapDecodeError("EncryptedJSON", t.property, err, t.hooks)
	}
	return v, nil
}

func (t EncryptedJSON) SerializeValue(row rowtypes.Row, v any, key []byte) error {
	return t.Serialize(row, v, key)
}

func (t EncryptedJSON) DeserializeValue(row rowtypes.Row, key []byte) (any, error) {
	return t.Deserialize(row, key)
}

func (t EncryptedJSON) EqualValues(a, b any) (bool, error) { return reflect.DeepEqual(a, b), nil }

func (t EncryptedJSON) HashValue(v any) (string, error) {
	b, err := json.Marshal(canonicalize(v))
	if err != nil {
		return "", rowtypes.WrapEnvelopeError("EncryptedJSON", t.property, err)
	}
	return string(b), nil
}

func canonicalize(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = canonicalize(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = canonicalize(e)
		}
		return out
	default:
		return x
	}
}
