package rowtypes

import "fmt"

// Row is the flat cell map handed to/from the table store. Cells are
// name-addressed; a scalar property P occupies cell P (plus an optional
// "P@odata.type" annotation cell); a buffer property occupies
// "__buf0_P".."__bufN-1_P" plus "__bufchunks_P" (see internal/envelope).
//
// Values are restricted to the store's primitive wire set: string, float64,
// bool. The codec owns which annotations it emits; callers must not invent
// cells under a property's namespace.
type Row map[string]any

// odataTypeCell returns the annotation cell name for a scalar cell.
func odataTypeCell(property string) string { return property + "@odata.type" }

const (
	// EdmInt64 annotates a string-valued cell holding a big integer that
	// doesn't fit a float64 without precision loss.
	EdmInt64 = "Edm.Int64"
	// EdmDateTime annotates an ISO-8601 string-valued cell.
	EdmDateTime = "Edm.DateTime"
	// EdmGuid annotates a canonical-UUID string-valued cell.
	EdmGuid = "Edm.Guid"
	// EdmBinary annotates a base64 string-valued binary chunk cell.
	EdmBinary = "Edm.Binary"
)

// Type is the uniform operation set every codec in this module honors. It is
// the trait surface described by the source's prototype lattice, reimplemented
// as a plain interface over opaque (any) domain values — concrete types such
// as StringType also expose typed convenience methods (Serialize(Row, string)
// error, and so on) that this interface's methods delegate to after a type
// assertion, so direct callers never have to juggle `any`.
type Type interface {
	// Property is the logical column this Type instance is bound to.
	Property() string
	// Ordered reports whether <, <=, >, >= filters are supported.
	Ordered() bool
	// Comparable reports whether =, != filters are supported.
	Comparable() bool
	// IsEncrypted reports whether Serialize/Deserialize require a 32-byte key.
	IsEncrypted() bool

	// SerializeValue validates v and writes it into row.
	SerializeValue(row Row, v any) error
	// DeserializeValue reads and revalidates the property's value from row.
	DeserializeValue(row Row) (any, error)
	// EqualValues reports whether a and b are equal under this type's rules.
	EqualValues(a, b any) (bool, error)
	// StringValue produces the canonical stringification of v.
	StringValue(v any) (string, error)
	// FilterCondition renders "<property> <op-token> <operand>" for op/operand.
	FilterCondition(op Operator, operand any) (string, error)
}

// EncryptedType mirrors Type for the encrypted buffer-based codecs
// (enctypes): every operation additionally takes the caller-supplied 32-byte
// key, since the encryption envelope never retains one across calls. It is a
// distinct interface rather than an extra Type method because Type's
// signatures are shared with every unencrypted codec, none of which take a
// key.
type EncryptedType interface {
	Property() string
	IsEncrypted() bool

	SerializeValue(row Row, v any, key []byte) error
	DeserializeValue(row Row, key []byte) (any, error)
	EqualValues(a, b any) (bool, error)
	// HashValue produces the canonical hash over the plaintext domain value,
	// so two encryptions of equal values hash equal despite differing IVs.
	HashValue(v any) (string, error)
}

// checkCategory is the single type-checking utility described in §4.9: given
// an expected category name and a type assertion result, it either accepts or
// fails with a uniform diagnostic naming the variant, the property, and the
// expected/actual categories.
func checkCategory(variant, property string, ok bool, expected, actual string) error {
	if ok {
		return nil
	}
	return newErr(TypeMismatch, variant, property,
		fmt.Sprintf("expected %s, got %s", expected, actual))
}

// goTypeName returns a short diagnostic name for v's dynamic type.
func goTypeName(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
