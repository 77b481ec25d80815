// Package main provides the entry point for the resume rewriter HTTP service and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "resume_rewriter",
	Short: "Resume Rewriter HTTP API Server",
	Long: "Resume Rewriter extracts structured fields from an uploaded resume and rewrites the most " +
		"recent work experience to match a job description.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a YAML or JSON config file")
	rootCmd.PersistentFlags().Bool("json", false, "Log in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
