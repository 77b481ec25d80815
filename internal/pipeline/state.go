package pipeline

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/jonathan/resume-rewriter/internal/logger"
)

// State is a step of the request lifecycle.
type State string

// Request lifecycle: Received, Authorizing, then either Unauthorized or
// Extracting, Rewriting, Merging and Responded.
const (
	StateReceived     State = "received"
	StateAuthorizing  State = "authorizing"
	StateUnauthorized State = "unauthorized"
	StateExtracting   State = "extracting"
	StateRewriting    State = "rewriting"
	StateMerging      State = "merging"
	StateResponded    State = "responded"
)

var transitions = map[State][]State{
	StateReceived:    {StateAuthorizing},
	StateAuthorizing: {StateUnauthorized, StateExtracting},
	StateExtracting:  {StateRewriting, StateMerging},
	StateRewriting:   {StateMerging},
	StateMerging:     {StateResponded},
}

// CanTransition reports whether next may follow s.
func (s State) CanTransition(next State) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no state may follow s.
func (s State) Terminal() bool {
	return s == StateUnauthorized || s == StateResponded
}

// TransitionError reports a step that may not follow the request's current state.
type TransitionError struct {
	From State
	To   State
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid state transition %s -> %s", e.From, e.To)
}

// ProgressEvent represents a state transition during a run
type ProgressEvent struct {
	RequestID string `json:"request_id,omitempty"`
	State     State  `json:"state"`
	Message   string `json:"message"`
}

// ProgressCallback is called when a run changes state
type ProgressCallback func(event ProgressEvent)

// Tracker follows one request through its lifecycle and reports every step to a callback.
type Tracker struct {
	mu        sync.Mutex
	requestID string
	current   State
	onEvent   ProgressCallback
	log       *zap.Logger
}

// NewTracker starts a request in StateReceived and reports it. A nil callback only logs.
func NewTracker(requestID string, cb ProgressCallback, log *zap.Logger) *Tracker {
	t := &Tracker{
		requestID: requestID,
		current:   StateReceived,
		onEvent:   cb,
		log:       logger.OrNop(log),
	}
	t.report(StateReceived, "Request received")
	return t
}

// State returns the current step.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Advance moves the request to next. A step that may not follow the current one is
// refused with a *TransitionError and the state is left unchanged.
func (t *Tracker) Advance(next State, message string) error {
	t.mu.Lock()
	from := t.current
	if !from.CanTransition(next) {
		t.mu.Unlock()
		t.log.Warn("refusing state transition",
			zap.String(logger.FieldRequestID, t.requestID),
			zap.String("from", string(from)),
			zap.String("to", string(next)),
		)
		return &TransitionError{From: from, To: next}
	}
	t.current = next
	t.mu.Unlock()

	t.report(next, message)
	if next.Terminal() {
		t.log.Debug("request finished",
			zap.String(logger.FieldRequestID, t.requestID),
			zap.String(logger.FieldStage, string(next)),
		)
	}
	return nil
}

func (t *Tracker) report(state State, message string) {
	if t.onEvent != nil {
		t.onEvent(ProgressEvent{RequestID: t.requestID, State: state, Message: message})
	}
}

type trackerKey struct{}

// WithTracker returns a context carrying t. Run continues that request's lifecycle
// instead of starting its own.
func WithTracker(ctx context.Context, t *Tracker) context.Context {
	return context.WithValue(ctx, trackerKey{}, t)
}

// TrackerFrom returns the tracker stored in ctx, or nil.
func TrackerFrom(ctx context.Context) *Tracker {
	t, _ := ctx.Value(trackerKey{}).(*Tracker)
	return t
}
