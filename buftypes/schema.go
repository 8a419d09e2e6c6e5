package buftypes

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/unkn0wn-root/rowtypes"
)

// SchemaOptions configures a SchemaType, following the Options-struct +
// coalesce-defaults construction idiom used across this module.
type SchemaOptions struct {
	Property string
	// SchemaJSON is the raw JSON Schema document text.
	SchemaJSON []byte
	Hooks      rowtypes.Hooks
	Logger     rowtypes.Logger
}

// SchemaType is JSONType plus a compiled JSON-Schema validator: Serialize
// fills in schema-declared defaults for any object fields missing from v,
// then validates the (possibly defaulted) value before writing it through
// the envelope, same as JSONType. Deserialize fills in defaults the same way
// before re-validating the stored value.
type SchemaType struct {
	notComparable
	property string
	compiled *jsonschema.Schema
	raw      map[string]any
	hooks    rowtypes.Hooks
	logger   rowtypes.Logger
}

var _ rowtypes.Type = (*SchemaType)(nil)

// NewSchemaType compiles opts.SchemaJSON and returns a bound SchemaType.
func NewSchemaType(opts SchemaOptions) (*SchemaType, error) {
	if len(opts.SchemaJSON) == 0 {
		return nil, rowtypes.NewTypeMismatch("SchemaType", opts.Property, "non-empty schema document", nil)
	}
	const resourceURL = "mem://schema.json"
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(resourceURL, strings.NewReader(string(opts.SchemaJSON))); err != nil {
		return nil, rowtypes.WrapEnvelopeError("SchemaType", opts.Property, err)
	}
	compiled, err := compiler.Compile(resourceURL)
	if err != nil {
		return nil, rowtypes.WrapEnvelopeError("SchemaType", opts.Property, err)
	}
	var raw map[string]any
	if err := json.Unmarshal(opts.SchemaJSON, &raw); err != nil {
		return nil, rowtypes.WrapEnvelopeError("SchemaType", opts.Property, err)
	}
	return &SchemaType{
		property: opts.Property,
		compiled: compiled,
		raw:      raw,
		hooks:    rowtypes.Coalesce[rowtypes.Hooks](opts.Hooks, rowtypes.NopHooks{}),
		logger:   rowtypes.Coalesce[rowtypes.Logger](opts.Logger, rowtypes.NopLogger{}),
	}, nil
}

func (t *SchemaType) Property() string  { return t.property }
func (t *SchemaType) IsEncrypted() bool { return false }

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

// applyDefaults walks v against schema, filling in any "default" values
// declared for object properties that v is missing. Reports each filled
// field via Hooks.SchemaDefaultApplied.
func (t *SchemaType) applyDefaults(v any, schema map[string]any) any {
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

func (t *SchemaType) Serialize(row rowtypes.Row, v any) error {
	v = t.applyDefaults(v, t.raw)
	if err := t.compiled.Validate(v); err != nil {
		return rowtypes.NewSchemaInvalid("SchemaType", t.property, v, flattenSchemaErrors(err))
	}
	b, err := json.Marshal(v)
	if err != nil {
		return rowtypes.WrapEnvelopeError("SchemaType", t.property, err)
	}
	return packOrWrap("SchemaType", t.property, row, b)
}

func (t *SchemaType) Deserialize(row rowtypes.Row) (any, error) {
	b, err := unpackOrWrap("SchemaType", t.property, row, t.hooks)
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, rowtypes.WrapDecodeError("SchemaType", t.property, err, t.hooks)
	}
	v = t.applyDefaults(v, t.raw)
	if err := t.compiled.Validate(v); err != nil {
		return nil, rowtypes.NewSchemaInvalid("SchemaType", t.property, v, flattenSchemaErrors(err))
	}
	return v, nil
}

func (t *SchemaType) Equal(a, b any) bool { return reflect.DeepEqual(a, b) }

func (t *SchemaType) Clone(v any) any {
	b, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	_ = json.Unmarshal(b, &out)
	return out
}

func (t *SchemaType) Hash(v any) (string, error) {
	b, err := json.Marshal(canonicalize(v))
	if err != nil {
		return "", rowtypes.WrapEnvelopeError("SchemaType", t.property, err)
	}
	return string(b), nil
}

func (t *SchemaType) SerializeValue(row rowtypes.Row, v any) error { return t.Serialize(row, v) }

func (t *SchemaType) DeserializeValue(row rowtypes.Row) (any, error) { return t.Deserialize(row) }

func (t *SchemaType) EqualValues(a, b any) (bool, error) { return t.Equal(a, b), nil }

func (t *SchemaType) StringValue(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", rowtypes.WrapEnvelopeError("SchemaType", t.property, err)
	}
	return string(b), nil
}

func (t *SchemaType) FilterCondition(rowtypes.Operator, any) (string, error) {
	return "", rowtypes.NotComparableErr("SchemaType", t.property, "filterCondition")
}
