// Package buftypes implements the buffer-based Types layered on the chunked
// binary envelope (internal/envelope): Blob (identity bytes), Text (UTF-8),
// JSON (canonical-hashable), CBOR (a sibling codec exercising
// fxamacker/cbor, see DESIGN.md), Schema (JSON plus a compiled JSON-Schema
// validator), and SlugIdArrayType (a SlugIdArray serialized through the same
// envelope).
//
// None of these types are Ordered or Comparable: FilterCondition and the
// Type interface's Compare-adjacent operations always fail NotComparable,
// per §4.6.
package buftypes

import (
	"github.com/unkn0wn-root/rowtypes"
	"github.com/unkn0wn-root/rowtypes/internal/envelope"
)

func toEnvelopeRow(row rowtypes.Row) envelope.Row { return envelope.Row(row) }

// packOrWrap runs envelope.Pack and reclassifies its sentinel errors into the
// shared *rowtypes.TypeError taxonomy.
func packOrWrap(variant, property string, row rowtypes.Row, payload []byte) error {
	if err := envelope.Pack(toEnvelopeRow(row), property, payload); err != nil {
		return rowtypes.WrapEnvelopeError(variant, property, err)
	}
	return nil
}

// unpackOrWrap runs envelope.Unpack and reclassifies its sentinel errors,
// firing hooks.EnvelopeSelfHealed when the envelope turns out corrupt.
func unpackOrWrap(variant, property string, row rowtypes.Row, hooks rowtypes.Hooks) ([]byte, error) {
	b, err := envelope.Unpack(toEnvelopeRow(row), property)
	if err != nil {
		return nil, rowtypes.WrapDecodeError(variant, property, err, hooks)
	}
	return b, nil
}

// firstHooks coalesces an optional trailing Hooks argument (used by the
// buffer types' New* constructors) down to a single non-nil Hooks value.
func firstHooks(hs []rowtypes.Hooks) rowtypes.Hooks {
	if len(hs) == 0 {
		return rowtypes.NopHooks{}
	}
	return rowtypes.Coalesce[rowtypes.Hooks](hs[0], rowtypes.NopHooks{})
}

// notComparable implements the Ordered/Comparable corner of the Type
// interface identically for every buffer-based type; each type defines its
// own FilterCondition, which always fails NotComparable.
type notComparable struct{}

func (notComparable) Ordered() bool    { return false }
func (notComparable) Comparable() bool { return false }
