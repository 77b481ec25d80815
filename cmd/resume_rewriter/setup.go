package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-rewriter/internal/auth"
	"github.com/jonathan/resume-rewriter/internal/config"
	"github.com/jonathan/resume-rewriter/internal/llm"
	"github.com/jonathan/resume-rewriter/internal/logger"
	"github.com/jonathan/resume-rewriter/internal/pipeline"
)

// loadConfig reads configuration with the command's flags bound over file and environment.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	return config.Load(configFile, cmd.Flags())
}

// newPipeline builds the Gemini-backed pipeline. The returned close function releases the client.
func newPipeline(ctx context.Context, cfg *config.Config, log *zap.Logger) (*pipeline.Pipeline, func() error, error) {
	client, err := llm.NewClient(ctx, cfg.LLMSettings(), cfg.LLM.APIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	gen := llm.NewStructuredGenerator(client, cfg.LLM.CallTimeout, log)
	p := pipeline.NewDefault(gen, log, pipeline.WithProgress(progressLogger(log)))
	return p, client.Close, nil
}

// progressLogger logs pipeline state transitions at debug level.
func progressLogger(log *zap.Logger) pipeline.ProgressCallback {
	return func(event pipeline.ProgressEvent) {
		log.Debug(event.Message,
			zap.String(logger.FieldRequestID, event.RequestID),
			zap.String(logger.FieldStage, string(event.State)),
		)
	}
}

// newAuthorizer selects the authorizer for the configured mode.
func newAuthorizer(cfg *config.Config) (auth.Authorizer, error) {
	switch cfg.Auth.Mode {
	case config.AuthModeRemote:
		return auth.NewRemoteVerifier(cfg.Auth.VerifyURL, cfg.Auth.Timeout), nil
	case config.AuthModeJWT:
		return auth.NewJWTVerifier(cfg.Auth.JWTSecret), nil
	default:
		return nil, fmt.Errorf("unsupported auth mode %q", cfg.Auth.Mode)
	}
}
