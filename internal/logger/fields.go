package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldRequestID is the structured log field key for the per-request identifier.
	FieldRequestID = "request_id"
	// FieldStage is the structured log field key for the pipeline stage name.
	FieldStage = "stage"
	// FieldModel is the structured log field key for the model identifier.
	FieldModel = "ai_model"
	// FieldTier is the structured log field key for the model tier.
	FieldTier = "ai_tier"
	// FieldSchema is the structured log field key for the output schema name.
	FieldSchema = "schema"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches the provided fields to the logger, defaulting to a no-op logger when nil.
func WithFields(l *zap.Logger, fields ...zap.Field) *zap.Logger {
	l = OrNop(l)
	if len(fields) == 0 {
		return l
	}
	return l.With(fields...)
}

// GenerationFields returns the fields describing one structured generation call.
// Empty values are ignored to keep entries compact.
func GenerationFields(schema, tier, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldSchema, Value: schema},
		StringField{Key: FieldTier, Value: tier},
		StringField{Key: FieldModel, Value: model},
	)
}
