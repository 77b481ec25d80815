package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-rewriter/internal/auth"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for jwt auth mode",
	Long:  "Signs an HS256 token with the configured auth.jwt_secret for calling a server running in jwt auth mode.",
	RunE:  runToken,
}

var (
	tokenSubject string
	tokenTTL     time.Duration
)

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "resume-rewriter-client", "Token subject")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "Token lifetime")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(cfg.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret (JWT_SECRET) must be at least 32 characters")
	}
	if tokenTTL <= 0 {
		return fmt.Errorf("--ttl must be positive")
	}

	token, err := auth.NewJWTVerifier(cfg.Auth.JWTSecret).GenerateToken(tokenSubject, tokenTTL)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), "Bearer "+token)
	return err
}
