package logger

import (
	"strings"

	"go.uber.org/zap"
)

// Structured field keys shared by every model call log line.
const (
	FieldProvider  = "ai_provider"
	FieldModel     = "ai_model"
	FieldOperation = "ai_operation"
)

// Call identifies a model call in logs. Blank parts are left out.
type Call struct {
	Provider  string
	Model     string
	Operation string
}

// Fields returns the non-blank parts of c as zap fields, in provider, model,
// operation order.
func (c Call) Fields() []zap.Field {
	fields := make([]zap.Field, 0, 3)
	for _, kv := range [...][2]string{
		{FieldProvider, c.Provider},
		{FieldModel, c.Model},
		{FieldOperation, c.Operation},
	} {
		if v := strings.TrimSpace(kv[1]); v != "" {
			fields = append(fields, zap.String(kv[0], v))
		}
	}
	return fields
}

// ForCall returns log annotated with c. A nil log becomes a no-op logger.
func ForCall(log *zap.Logger, c Call) *zap.Logger {
	if log == nil {
		log = zap.NewNop()
	}
	if fields := c.Fields(); len(fields) > 0 {
		return log.With(fields...)
	}
	return log
}
