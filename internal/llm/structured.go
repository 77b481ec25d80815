package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/jonathan/resume-rewriter/internal/logger"
	"github.com/jonathan/resume-rewriter/internal/schemas"
	"go.uber.org/zap"
)

// DefaultCallTimeout bounds a single generation call when none is configured.
const DefaultCallTimeout = 90 * time.Second

const previewLength = 200

// StructuredGenerator turns a prompt into a typed record: it calls the model, strips
// wrappers around the JSON, validates it against a schema, then decodes it.
type StructuredGenerator struct {
	client  Client
	timeout time.Duration
	log     *zap.Logger
}

// NewStructuredGenerator creates a generator. A non-positive timeout selects DefaultCallTimeout.
func NewStructuredGenerator(client Client, timeout time.Duration, log *zap.Logger) *StructuredGenerator {
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}
	return &StructuredGenerator{
		client:  client,
		timeout: timeout,
		log:     logger.OrNop(log),
	}
}

// Generate runs prompt on the tier's model and decodes the schema-conforming output into out.
func (g *StructuredGenerator) Generate(ctx context.Context, prompt string, schema schemas.Schema, tier ModelTier, out any) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	log := logger.WithFields(g.log, logger.GenerationFields(schema.Name, string(tier), g.client.GetModel(tier))...)
	log.Debug("generation request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, previewLength)),
	)

	start := time.Now()
	raw, err := g.client.GenerateJSON(ctx, prompt, tier)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return &APICallError{Message: fmt.Sprintf("%s timed out after %s", schema.Name, g.timeout), Cause: err}
		}
		return &APICallError{Message: fmt.Sprintf("failed to generate %s", schema.Name), Cause: err}
	}

	cleaned := CleanJSONBlock(raw)
	log.Debug("generation response",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("response_length", len(cleaned)),
		zap.String("response_preview", logger.TruncateForLog(cleaned, previewLength)),
	)

	if !json.Valid([]byte(cleaned)) {
		return &ParseError{Message: fmt.Sprintf("%s response is not valid JSON: %s", schema.Name, logger.TruncateForLog(cleaned, previewLength))}
	}

	if err := schema.Validate(cleaned); err != nil {
		return &SchemaViolationError{Schema: schema.Name, Cause: err}
	}

	normalized, err := NumbersToText(cleaned)
	if err != nil {
		return &ParseError{Message: fmt.Sprintf("failed to decode %s", schema.Name), Cause: err}
	}
	if err := json.Unmarshal(normalized, out); err != nil {
		return &ParseError{Message: fmt.Sprintf("failed to decode %s", schema.Name), Cause: err}
	}

	return nil
}
