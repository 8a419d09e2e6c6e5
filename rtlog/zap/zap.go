package zap

import (
	"go.uber.org/zap"

	"github.com/unkn0wn-root/rowtypes"
)

// Logger adapts *zap.Logger to rowtypes.Logger.
type Logger struct{ L *zap.Logger }

var _ rowtypes.Logger = Logger{}

func (l Logger) Debug(msg string, f rowtypes.Fields) { l.L.Debug(msg, zf(f)...) }
func (l Logger) Info(msg string, f rowtypes.Fields)  { l.L.Info(msg, zf(f)...) }
func (l Logger) Warn(msg string, f rowtypes.Fields)  { l.L.Warn(msg, zf(f)...) }
func (l Logger) Error(msg string, f rowtypes.Fields) { l.L.Error(msg, zf(f)...) }

func zf(f rowtypes.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(f))
	for k, v := range f {
		out = append(out, zap.Any(k, v))
	}
	return out
}
