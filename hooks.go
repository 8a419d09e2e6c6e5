package rowtypes

// Hooks are lightweight callbacks for high-signal, non-fatal events raised
// while serializing/deserializing rows. Implementations MUST be cheap and
// non-blocking; do not perform I/O. If work may block, buffer it and drop on
// backpressure (best effort) — see rthooks/async for a ready-made wrapper.
type Hooks interface {
	// SchemaDefaultApplied fires when SchemaType or EncryptedSchema (on
	// Serialize or Deserialize) fills in a missing optional field from the
	// schema's declared default.
	SchemaDefaultApplied(property, field string)
	// EnvelopeSelfHealed fires when a corrupt buffer envelope is detected on
	// read (missing chunk count, malformed base64, short chunk) and the
	// caller's Deserialize call is about to fail with DecodeFailure.
	EnvelopeSelfHealed(property, reason string)
	// DecryptKeyRejected fires when decrypting an encrypted type's envelope
	// fails: a key that does not match the one used to encrypt, a key of the
	// wrong size, or a ciphertext that is truncated or fails the padding check.
	DecryptKeyRejected(property string)
}

// NopHooks is a default no-op.
type NopHooks struct{}

func (NopHooks) SchemaDefaultApplied(string, string) {}
func (NopHooks) EnvelopeSelfHealed(string, string)   {}
func (NopHooks) DecryptKeyRejected(string)            {}

// Multi returns a Hooks that fans out to all provided hooks, in order.
// Nil entries are ignored. Panics from a hook propagate to the caller.
func Multi(hs ...Hooks) Hooks {
	nn := make([]Hooks, 0, len(hs))
	for _, h := range hs {
		if h != nil {
			nn = append(nn, h)
		}
	}
	return multiHooks(nn)
}

type multiHooks []Hooks

func (m multiHooks) SchemaDefaultApplied(property, field string) {
	for _, h := range m {
		h.SchemaDefaultApplied(property, field)
	}
}
func (m multiHooks) EnvelopeSelfHealed(property, reason string) {
	for _, h := range m {
		h.EnvelopeSelfHealed(property, reason)
	}
}
func (m multiHooks) DecryptKeyRejected(property string) {
	for _, h := range m {
		h.DecryptKeyRejected(property)
	}
}
