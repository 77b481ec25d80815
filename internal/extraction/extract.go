// Package extraction runs the three independent structured-generation calls that turn a chunked
// resume into a profile, a work history, and skills with certifications.
package extraction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/resume-rewriter/internal/chunking"
	"github.com/jonathan/resume-rewriter/internal/llm"
	"github.com/jonathan/resume-rewriter/internal/logger"
	"github.com/jonathan/resume-rewriter/internal/prompts"
	"github.com/jonathan/resume-rewriter/internal/schemas"
	"github.com/jonathan/resume-rewriter/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Stage names reported in StageError.
const (
	StageProfile     = "profile"
	StageWorkHistory = "work_history"
	StageSkillsCerts = "skills_certs"
)

const promptFile = "extraction.json"

// Generator produces a schema-conforming record from a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string, schema schemas.Schema, tier llm.ModelTier, out any) error
}

// Result holds the three extraction outputs.
type Result struct {
	Profile     *types.Profile
	WorkHistory *types.WorkHistory
	SkillsCerts *types.SkillsCerts
}

// StageError reports which extraction call failed.
type StageError struct {
	Stage string
	Cause error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("extraction of %s failed: %v", e.Stage, e.Cause)
}

func (e *StageError) Unwrap() error {
	return e.Cause
}

// Extractor issues the extraction calls.
type Extractor struct {
	gen Generator
	log *zap.Logger
}

// New creates an Extractor.
func New(gen Generator, log *zap.Logger) *Extractor {
	return &Extractor{gen: gen, log: logger.OrNop(log)}
}

type call struct {
	stage     string
	promptKey string
	schema    string
	data      map[string]string
	out       any
}

// Extract runs the profile, work history and skills calls concurrently. The first failure
// cancels the remaining calls and fails the whole stage.
func (e *Extractor) Extract(ctx context.Context, chunks []chunking.Chunk, jobDescription string) (*Result, error) {
	resume := RenderDocument(chunks)
	result := &Result{
		Profile:     &types.Profile{},
		WorkHistory: &types.WorkHistory{},
		SkillsCerts: &types.SkillsCerts{},
	}

	// the work history prompt never sees the job description
	calls := []call{
		{
			stage:     StageProfile,
			promptKey: "extract-profile",
			schema:    schemas.Profile,
			data:      map[string]string{"Resume": resume, "JobDescription": jobDescription},
			out:       result.Profile,
		},
		{
			stage:     StageWorkHistory,
			promptKey: "extract-work-history",
			schema:    schemas.WorkHistory,
			data:      map[string]string{"Resume": resume},
			out:       result.WorkHistory,
		},
		{
			stage:     StageSkillsCerts,
			promptKey: "extract-skills-certs",
			schema:    schemas.SkillsCerts,
			data:      map[string]string{"Resume": resume, "JobDescription": jobDescription},
			out:       result.SkillsCerts,
		},
	}

	g, gCtx := errgroup.WithContext(ctx)
	for _, c := range calls {
		g.Go(func() error {
			return e.run(gCtx, c)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result.SkillsCerts.Skills = NormalizeSkills(result.SkillsCerts.Skills)
	result.SkillsCerts.JobDescriptionSkills = NormalizeSkills(result.SkillsCerts.JobDescriptionSkills)

	return result, nil
}

func (e *Extractor) run(ctx context.Context, c call) error {
	log := e.log.With(zap.String(logger.FieldStage, c.stage))

	schema, err := schemas.Get(c.schema)
	if err != nil {
		return &StageError{Stage: c.stage, Cause: err}
	}

	data := make(map[string]string, len(c.data)+1)
	for k, v := range c.data {
		data[k] = v
	}
	data["FormatInstructions"] = schema.FormatInstructions()

	prompt, err := prompts.Render(promptFile, c.promptKey, data)
	if err != nil {
		return &StageError{Stage: c.stage, Cause: err}
	}

	start := time.Now()
	log.Debug("extraction started")
	if err := e.gen.Generate(ctx, prompt, schema, llm.TierStandard, c.out); err != nil {
		log.Warn("extraction failed", zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		return &StageError{Stage: c.stage, Cause: err}
	}
	log.Info("extraction completed", zap.Duration("elapsed", time.Since(start)))
	return nil
}

// RenderDocument serializes the chunk sequence as prompt context, one labelled block per chunk.
func RenderDocument(chunks []chunking.Chunk) string {
	var sb strings.Builder
	for i, c := range chunks {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "[page %d]\n%s", c.Index+1, strings.TrimSpace(c.Content))
	}
	return sb.String()
}
