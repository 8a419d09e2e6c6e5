package rowtypes

import "fmt"

// Kind is the error taxonomy every Type failure is classified under.
type Kind int

const (
	// TypeMismatch: the value's primitive category does not match the
	// expected set (e.g. a string given where a bool was required).
	TypeMismatch Kind = iota
	// FormatInvalid: a structural check failed (UUID regex, slug regex,
	// non-integer where integer required, out-of-range PositiveInteger,
	// non-Date for Date, non-[]byte for Blob).
	FormatInvalid
	// SchemaInvalid: JSON-Schema validation failed.
	SchemaInvalid
	// SizeExceeded: payload exceeds 256 KiB (or 256 KiB - 32 encrypted).
	SizeExceeded
	// NotComparable: filterCondition or compare invoked on a type that
	// does not support it.
	NotComparable
	// NotImplemented: a base operation not overridden; a defensive default.
	NotImplemented
	// DecodeFailure: corrupted envelope on deserialize (missing chunk
	// count, malformed base64, truncated ciphertext, padding failure).
	DecodeFailure
)

func (k Kind) String() string {
	switch k {
	case TypeMismatch:
		return "TypeMismatch"
	case FormatInvalid:
		return "FormatInvalid"
	case SchemaInvalid:
		return "SchemaInvalid"
	case SizeExceeded:
		return "SizeExceeded"
	case NotComparable:
		return "NotComparable"
	case NotImplemented:
		return "NotImplemented"
	case DecodeFailure:
		return "DecodeFailure"
	default:
		return "Unknown"
	}
}

// TypeError is the single error type every Type implementation raises.
// It names the offending variant and property so a caller debugging a
// mixed-type row can tell at a glance which codec failed.
type TypeError struct {
	Kind     Kind
	Variant  string // e.g. "StringType", "SchemaType"
	Property string
	Message  string
	Cause    error
	// Value is the offending value for SchemaInvalid (and any other kind
	// where the raw input is useful to a caller inspecting the failure).
	Value any
	// SchemaErrors carries the validator's raw error list for SchemaInvalid.
	SchemaErrors []error
}

func (e *TypeError) Error() string {
	msg := fmt.Sprintf("rowtypes: %s(%s): %s: %s", e.Variant, e.Property, e.Kind, e.Message)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *TypeError) Unwrap() error { return e.Cause }

// newErr constructs a *TypeError for the given variant/property pair.
func newErr(kind Kind, variant, property, message string) *TypeError {
	return &TypeError{Kind: kind, Variant: variant, Property: property, Message: message}
}

func wrapErr(kind Kind, variant, property, message string, cause error) *TypeError {
	return &TypeError{Kind: kind, Variant: variant, Property: property, Message: message, Cause: cause}
}

// NotComparableErr is returned by Compare/FilterCondition on types that do
// not support ordering or equality (buffer-based types, UUID.Compare,
// SlugId.Compare — see DESIGN.md for the Open Question this resolves).
func NotComparableErr(variant, property, op string) *TypeError {
	return newErr(NotComparable, variant, property, fmt.Sprintf("%s not supported on this type", op))
}

// NewTypeMismatch lets codecs outside this package (buftypes, enctypes,
// slugarray wrappers) raise the same TypeMismatch shape checkCategory uses
// internally.
func NewTypeMismatch(variant, property, expected string, got any) *TypeError {
	return newErr(TypeMismatch, variant, property, fmt.Sprintf("expected %s, got %s", expected, goTypeName(got)))
}

// NotImplementedErr marks an operation a Type deliberately leaves
// unsupported (e.g. StringValue on buffer-based types).
func NotImplementedErr(variant, property, op string) *TypeError {
	return newErr(NotImplemented, variant, property, fmt.Sprintf("%s not implemented on this type", op))
}

// NewSchemaInvalid wraps a jsonschema validation failure, carrying both the
// offending value and the validator's per-field error list so a caller can
// report exactly which fields failed.
func NewSchemaInvalid(variant, property string, value any, causes []error) *TypeError {
	return &TypeError{
		Kind:         SchemaInvalid,
		Variant:      variant,
		Property:     property,
		Message:      fmt.Sprintf("%d schema validation error(s)", len(causes)),
		Value:        value,
		SchemaErrors: causes,
	}
}
