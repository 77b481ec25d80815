package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-rewriter/internal/logger"
	"github.com/jonathan/resume-rewriter/internal/server"
	"github.com/jonathan/resume-rewriter/internal/server/ratelimit"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes POST /rewrite/ for rewriting uploaded resumes.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p, closeClient, err := newPipeline(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeClient(); err != nil {
			log.Warn("failed to close LLM client", zap.Error(err))
		}
	}()

	authorizer, err := newAuthorizer(cfg)
	if err != nil {
		return err
	}

	rlConfig, err := cfg.RateLimitSettings()
	if err != nil {
		return err
	}

	srv := server.New(server.Config{
		Port:           cfg.Server.Port,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		CORSOrigins:    cfg.Server.CORSOrigins,
		OnProgress:     progressLogger(log),
	}, p, authorizer, ratelimit.NewLimiter(rlConfig), log)

	log.Info("configuration loaded",
		zap.String("auth_mode", cfg.Auth.Mode),
		zap.String("extraction_model", cfg.LLM.ExtractionModel),
		zap.String("rewrite_model", cfg.LLM.RewriteModel),
		zap.Bool("rate_limit", rlConfig.Enabled),
	)
	return srv.Run(ctx)
}
