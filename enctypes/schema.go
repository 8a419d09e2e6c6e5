package enctypes

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/unkn0wn-root/rowtypes"
)

// EncryptedSchemaOptions configures an EncryptedSchema.
type EncryptedSchemaOptions struct {
	Property   string
	SchemaJSON []byte
	Hooks      rowtypes.Hooks
}

// EncryptedSchema is Schema's encrypted counterpart: defaults are applied
// and the value validated before encryption, and applied again and
// re-validated after decryption on read.
type EncryptedSchema struct {
	property string
	compiled *jsonschema.Schema
	raw      map[string]any
	hooks    rowtypes.Hooks
}

var _ rowtypes.EncryptedType = (*EncryptedSchema)(nil)

func NewEncryptedSchema(opts EncryptedSchemaOptions) (*EncryptedSchema, error) {
	if len(opts.SchemaJSON) == 0 {
		return nil, rowtypes.NewTypeMismatch("EncryptedSchema", opts.Property, "non-empty schema document", nil)
	}
	const resourceURL = "mem://encrypted-schema.json"
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(resourceURL, strings.NewReader(string(opts.SchemaJSON))); err != nil {
		return nil, rowtypes.WrapEnvelopeError("EncryptedSchema", opts.Property, err)
	}
	compiled, err := compiler.Compile(resourceURL)
	if err != nil {
		return nil, rowtypes.WrapEnvelopeError("EncryptedSchema", opts.Property, err)
	}
	var raw map[string]any
	if err := json.Unmarshal(opts.SchemaJSON, &raw); err != nil {
		return nil, rowtypes.WrapEnvelopeError("EncryptedSchema", opts.Property, err)
	}
	return &EncryptedSchema{
		property: opts.Property,
		compiled: compiled,
		raw:      raw,
		hooks:    coalesceHooks(opts.Hooks),
	}, nil
}

func (t *EncryptedSchema) Property() string  { return t.property }
func (t *EncryptedSchema) IsEncrypted() bool { return true }

// flattenSchemaErrors walks a jsonschema validation failure down to its leaf
// causes, so SchemaErrors reports one entry per failing field instead of one
// nested tree.
func flattenSchemaErrors(err error) []error {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []error{err}
	}
	if len(ve.Causes) == 0 {
		return []error{ve}
	}
	var out []error
	for _, c := range ve.Causes {
		out = append(out, flattenSchemaErrors(c)...)
	}
	return out
}

func (t *EncryptedSchema) applyDefaults(v any, schema map[string]any) any {
	obj, ok := v.(map[string]any)
	if !ok {
		return v
	}
	props, _ := schema["properties"].(map[string]any)
	for field, rawSub := range props {
		sub, ok := rawSub.(map[string]any)
		if !ok {
			continue
		}
		if existing, present := obj[field]; present {
			obj[field] = t.applyDefaults(existing, sub)
			continue
		}
		if def, has := sub["default"]; has {
			obj[field] = def
			t.hooks.SchemaDefaultApplied(t.property, field)
		}
	}
	return obj
}

func (t *EncryptedSchema) Serialize(row rowtypes.Row, v any, key []byte) error {
	v = t.applyDefaults(v, t.raw)
	if err := t.compiled.Validate(v); err != nil {
		return rowtypes.NewSchemaInvalid("EncryptedSchema", t.property, v, flattenSchemaErrors(err))
	}
	b, err := json.Marshal(v)
	if err != nil {
		return rowtypes.WrapEnvelopeError("EncryptedSchema", t.property, err)
	}
	return sealAndPack("EncryptedSchema", t.property, row, key, b)
}

func (t *EncryptedSchema) Deserialize(row rowtypes.Row, key []byte) (any, error) {
	b, err := unpackAndOpen("EncryptedSchema", t.property, row, key, t.hooks)
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, rowtypes.WrapDecodeError("EncryptedSchema", t.property, err, t.hooks)
	}
	v = t.applyDefaults(v, t.raw)
	if err := t.compiled.Validate(v); err != nil {
		return nil, rowtypes.NewSchemaInvalid("EncryptedSchema", t.property, v, flattenSchemaErrors(err))
	}
	return v, nil
}

func (t *EncryptedSchema) SerializeValue(row rowtypes.Row, v any, key []byte) error {
	return t.Serialize(row, v, key)
}

func (t *EncryptedSchema) DeserializeValue(row rowtypes.Row, key []byte) (any, error) {
	return t.Deserialize(row, key)
}

func (t *EncryptedSchema) EqualValues(a, b any) (bool, error) { return reflect.DeepEqual(a, b), nil }

func (t *EncryptedSchema) HashValue(v any) (string, error) {
	b, err := json.Marshal(canonicalize(v))
	if err != nil {
		return "", rowtypes.WrapEnvelopeError("EncryptedSchema", t.property, err)
	}
	return string(b), nil
}
