// Package rewriting rewrites the responsibilities of the most recent work experience so they
// speak to the target job description.
package rewriting

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/jonathan/resume-rewriter/internal/llm"
	"github.com/jonathan/resume-rewriter/internal/logger"
	"github.com/jonathan/resume-rewriter/internal/merge"
	"github.com/jonathan/resume-rewriter/internal/prompts"
	"github.com/jonathan/resume-rewriter/internal/schemas"
	"github.com/jonathan/resume-rewriter/internal/types"
	"go.uber.org/zap"
)

// Generator produces a schema-conforming record from a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string, schema schemas.Schema, tier llm.ModelTier, out any) error
}

// RewriteError reports a failed rewrite of the top work experience.
type RewriteError struct {
	Company string
	Cause   error
}

func (e *RewriteError) Error() string {
	if e.Company != "" {
		return fmt.Sprintf("rewrite of work experience at %s failed: %v", e.Company, e.Cause)
	}
	return fmt.Sprintf("rewrite of work experience failed: %v", e.Cause)
}

func (e *RewriteError) Unwrap() error {
	return e.Cause
}

// Rewriter issues the rewrite call.
type Rewriter struct {
	gen Generator
	log *zap.Logger
}

// New creates a Rewriter.
func New(gen Generator, log *zap.Logger) *Rewriter {
	return &Rewriter{gen: gen, log: logger.OrNop(log)}
}

// ResponsibilityCount is the number of statements the rewrite is asked to produce: the number
// of ". "-separated segments in the original responsibility.
func ResponsibilityCount(top types.WorkExperience) int {
	return len(merge.SplitResponsibilities(top.Responsibility))
}

// Rewrite rewrites top, which must be the most recent work experience, against the job
// description. The result holds exactly one entry.
func (r *Rewriter) Rewrite(ctx context.Context, top types.WorkExperience, jobDescription string) (*types.RewrittenWorkHistory, error) {
	count := ResponsibilityCount(top)
	log := r.log.With(zap.String(logger.FieldStage, "rewrite"), zap.Int("requested_segments", count))

	schema, err := schemas.Get(schemas.RewrittenWorkHistory)
	if err != nil {
		return nil, &RewriteError{Company: top.Company, Cause: err}
	}

	experience, err := json.MarshalIndent(top, "", "  ")
	if err != nil {
		return nil, &RewriteError{Company: top.Company, Cause: err}
	}

	prompt, err := prompts.Render("rewriting.json", "rewrite-top-experience", map[string]string{
		"Count":              strconv.Itoa(count),
		"Experience":         string(experience),
		"JobDescription":     jobDescription,
		"FormatInstructions": schema.FormatInstructions(),
	})
	if err != nil {
		return nil, &RewriteError{Company: top.Company, Cause: err}
	}

	start := time.Now()
	var out types.RewrittenWorkHistory
	if err := r.gen.Generate(ctx, prompt, schema, llm.TierAdvanced, &out); err != nil {
		log.Warn("rewrite failed", zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		return nil, &RewriteError{Company: top.Company, Cause: err}
	}
	if len(out.WorkExperience) != 1 {
		return nil, &RewriteError{Company: top.Company, Cause: fmt.Errorf("expected exactly one rewritten entry, got %d", len(out.WorkExperience))}
	}

	checks := Check(out.WorkExperience[0].NewResponsibility, count)
	log.Info("rewrite completed",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("segments", checks.Segments),
		zap.Bool("segment_count_matches", checks.SegmentCountMatches),
		zap.Bool("quantified", checks.Quantified),
		zap.Bool("strong_verb", checks.StrongVerb),
		zap.Strings("leaked_phrases", checks.LeakedPhrases),
	)

	return &out, nil
}
