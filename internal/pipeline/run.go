// Package pipeline orchestrates a single rewrite request: chunk the resume, run the extraction
// calls, rewrite the top work experience, then merge everything into the response payload.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/resume-rewriter/internal/chunking"
	"github.com/jonathan/resume-rewriter/internal/extraction"
	"github.com/jonathan/resume-rewriter/internal/ingestion"
	"github.com/jonathan/resume-rewriter/internal/logger"
	"github.com/jonathan/resume-rewriter/internal/merge"
	"github.com/jonathan/resume-rewriter/internal/rewriting"
	"github.com/jonathan/resume-rewriter/internal/types"
	"go.uber.org/zap"
)

var (
	// ErrEmptyJobDescription is returned when the job description has no text after cleaning.
	ErrEmptyJobDescription = errors.New("job description is empty")
	// ErrNoExtractableText is wrapped in a chunking.DocumentError when no chunk holds any text.
	ErrNoExtractableText = errors.New("document has no extractable text")
)

// MergeError reports a failure assembling the final payload.
type MergeError struct {
	Cause error
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("merge failed: %v", e.Cause)
}

func (e *MergeError) Unwrap() error {
	return e.Cause
}

// Chunker reads a document into ordered chunks.
type Chunker interface {
	Chunk(data []byte, contentType string) ([]chunking.Chunk, error)
}

// Extractor runs the extraction calls.
type Extractor interface {
	Extract(ctx context.Context, chunks []chunking.Chunk, jobDescription string) (*extraction.Result, error)
}

// Rewriter rewrites the most recent work experience.
type Rewriter interface {
	Rewrite(ctx context.Context, top types.WorkExperience, jobDescription string) (*types.RewrittenWorkHistory, error)
}

// Input is one rewrite request.
type Input struct {
	Resume         []byte
	ContentType    string
	JobDescription string
	RequestID      string
}

// Pipeline runs rewrite requests. It holds no per-request state and is safe for concurrent use.
type Pipeline struct {
	chunker    Chunker
	extractor  Extractor
	rewriter   Rewriter
	log        *zap.Logger
	onProgress ProgressCallback
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithProgress registers a callback for state transitions.
func WithProgress(cb ProgressCallback) Option {
	return func(p *Pipeline) {
		p.onProgress = cb
	}
}

// New creates a Pipeline from its stages.
func New(chunker Chunker, extractor Extractor, rewriter Rewriter, log *zap.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		chunker:   chunker,
		extractor: extractor,
		rewriter:  rewriter,
		log:       logger.OrNop(log),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewDefault wires the standard chunker, extractor and rewriter around one generator.
func NewDefault(gen extraction.Generator, log *zap.Logger, opts ...Option) *Pipeline {
	return New(chunking.New(), extraction.New(gen, log), rewriting.New(gen, log), log, opts...)
}

// Run processes one request. Any stage failure aborts the run; there is no partial payload.
func (p *Pipeline) Run(ctx context.Context, in Input) (*types.FinalPayload, error) {
	start := time.Now()
	log := logger.WithFields(p.log, logger.StringFields(logger.StringField{Key: logger.FieldRequestID, Value: in.RequestID})...)
	tracker := p.tracker(ctx, in.RequestID)

	chunks, err := p.chunker.Chunk(in.Resume, in.ContentType)
	if err != nil {
		return nil, err
	}
	if !hasText(chunks) {
		return nil, &chunking.DocumentError{
			ContentType: chunking.ResolveContentType(in.Resume, in.ContentType),
			Cause:       ErrNoExtractableText,
		}
	}

	jobDescription := ingestion.CleanJobDescription(in.JobDescription)
	if jobDescription == "" {
		return nil, ErrEmptyJobDescription
	}
	log.Debug("inputs prepared", zap.Int("chunks", len(chunks)), zap.Int("job_description_length", len(jobDescription)))

	if err := tracker.Advance(StateExtracting, fmt.Sprintf("Extracting from %d chunks", len(chunks))); err != nil {
		return nil, err
	}
	extracted, err := p.extractor.Extract(ctx, chunks, jobDescription)
	if err != nil {
		return nil, err
	}

	var rewritten *types.RewrittenWorkHistory
	if top, ok := extracted.WorkHistory.Top(); ok {
		if err := tracker.Advance(StateRewriting, fmt.Sprintf("Rewriting work experience at %s", top.Company)); err != nil {
			return nil, err
		}
		rewritten, err = p.rewriter.Rewrite(ctx, top, jobDescription)
		if err != nil {
			return nil, err
		}
	} else {
		log.Info("work history is empty, skipping rewrite")
	}

	if err := tracker.Advance(StateMerging, "Merging results"); err != nil {
		return nil, err
	}
	payload, err := merge.Merge(extracted.Profile, extracted.WorkHistory, extracted.SkillsCerts, rewritten)
	if err != nil {
		return nil, &MergeError{Cause: err}
	}

	if err := tracker.Advance(StateResponded, "Payload ready"); err != nil {
		return nil, err
	}
	log.Info("pipeline completed",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("work_experience", len(payload.WorkExperience)),
		zap.Int("skills", len(payload.Skills)),
	)
	return payload, nil
}

// tracker continues the lifecycle carried by ctx. Callers that did not authorize the
// request themselves are trusted local callers, so a fresh tracker passes straight
// through authorization.
func (p *Pipeline) tracker(ctx context.Context, requestID string) *Tracker {
	if t := TrackerFrom(ctx); t != nil {
		return t
	}
	t := NewTracker(requestID, p.onProgress, p.log)
	_ = t.Advance(StateAuthorizing, "Local request, no credential required")
	return t
}

func hasText(chunks []chunking.Chunk) bool {
	for _, c := range chunks {
		if strings.TrimSpace(c.Content) != "" {
			return true
		}
	}
	return false
}
