package main

import (
	"encoding/json"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-rewriter/internal/chunking"
	"github.com/jonathan/resume-rewriter/internal/logger"
	"github.com/jonathan/resume-rewriter/internal/observability"
	"github.com/jonathan/resume-rewriter/internal/pipeline"
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite",
	Short: "Rewrite a local resume against a job description",
	Long: "Runs the full pipeline on a local docx or pdf resume without authorization and writes " +
		"the merged payload as JSON.",
	RunE: runRewrite,
}

var (
	rewriteResumeFile  string
	rewriteJobFile     string
	rewriteContentType string
	rewriteOutputFile  string
	rewriteSummary     bool
)

func init() {
	rewriteCmd.Flags().StringVarP(&rewriteResumeFile, "resume", "r", "", "Path to the resume (.docx or .pdf) (required)")
	rewriteCmd.Flags().StringVarP(&rewriteJobFile, "job", "j", "", "Path to the job description text or HTML file (required)")
	rewriteCmd.Flags().StringVar(&rewriteContentType, "content-type", "", "Resume media type (default: from extension, then sniffed)")
	rewriteCmd.Flags().StringVarP(&rewriteOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	rewriteCmd.Flags().BoolVar(&rewriteSummary, "summary", false, "Print a human-readable summary to stderr")

	if err := rewriteCmd.MarkFlagRequired("resume"); err != nil {
		panic(fmt.Sprintf("failed to mark resume flag as required: %v", err))
	}
	if err := rewriteCmd.MarkFlagRequired("job"); err != nil {
		panic(fmt.Sprintf("failed to mark job flag as required: %v", err))
	}

	rootCmd.AddCommand(rewriteCmd)
}

func runRewrite(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.ValidateLLM(); err != nil {
		return err
	}

	resume, err := os.ReadFile(rewriteResumeFile)
	if err != nil {
		return fmt.Errorf("failed to read resume file: %w", err)
	}
	jobDescription, err := os.ReadFile(rewriteJobFile)
	if err != nil {
		return fmt.Errorf("failed to read job description file: %w", err)
	}

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	p, closeClient, err := newPipeline(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeClient(); err != nil {
			log.Warn("failed to close LLM client", zap.Error(err))
		}
	}()

	payload, err := p.Run(cmd.Context(), pipeline.Input{
		Resume:         resume,
		ContentType:    resumeContentType(rewriteResumeFile, rewriteContentType),
		JobDescription: string(jobDescription),
		RequestID:      uuid.NewString(),
	})
	if err != nil {
		return fmt.Errorf("rewrite failed: %w", err)
	}

	if rewriteSummary {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintPayload(payload)
	}

	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}
	out = append(out, '\n')

	if rewriteOutputFile == "" {
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}
	if err := os.WriteFile(rewriteOutputFile, out, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Wrote payload to %s\n", rewriteOutputFile)
	return nil
}

// resumeContentType prefers an explicit type, then the file extension. An empty result lets
// the chunker sniff the content.
func resumeContentType(path, explicit string) string {
	if explicit != "" {
		return explicit
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".docx":
		return chunking.TypeDOCX
	case ".pdf":
		return chunking.TypePDF
	}
	return mime.TypeByExtension(filepath.Ext(path))
}
