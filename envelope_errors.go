package rowtypes

import (
	"errors"

	"github.com/unkn0wn-root/rowtypes/internal/envelope"
)

// WrapEnvelopeError reclassifies an internal/envelope sentinel error into
// this package's *TypeError taxonomy, so buftypes/enctypes callers surface a
// uniform error shape regardless of which layer detected the problem.
func WrapEnvelopeError(variant, property string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, envelope.ErrTooLarge):
		return wrapErr(SizeExceeded, variant, property, "payload exceeds the 256 KiB envelope limit", err)
	case errors.Is(err, envelope.ErrCorrupt):
		return wrapErr(DecodeFailure, variant, property, "corrupt buffer envelope", err)
	default:
		return wrapErr(DecodeFailure, variant, property, "envelope error", err)
	}
}

// WrapDecodeError is WrapEnvelopeError for the read path: on a DecodeFailure
// it additionally fires hooks.EnvelopeSelfHealed before returning, so a
// caller watching for corrupt envelopes learns about it even though the
// Deserialize call is about to fail. hooks may be nil.
func WrapDecodeError(variant, property string, err error, hooks Hooks) error {
	wrapped := WrapEnvelopeError(variant, property, err)
	if wrapped == nil {
		return nil
	}
	var te *TypeError
	if errors.As(wrapped, &te) && te.Kind == DecodeFailure {
		if hooks == nil {
			hooks = NopHooks{}
		}
		hooks.EnvelopeSelfHealed(property, te.Message)
	}
	return wrapped
}
