// Package resolver turns a chart request into a chart response: sanitize
// the prompt, generate an intent, normalize and validate it, execute it.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/spektr-org/promptchart/engine"
	"github.com/spektr-org/promptchart/translator"
)

// ErrEmptyPrompt is returned when nothing is left of the prompt after
// sanitizing.
var ErrEmptyPrompt = errors.New("invalid or empty prompt")

// Request is one natural language chart request.
type Request struct {
	Prompt    string         `json:"prompt"`
	Context   map[string]any `json:"context,omitempty"`
	RequestID string         `json:"-"`
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithTimeout bounds each intent generation call. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(r *Resolver) { r.timeout = d }
}

// WithLogger routes resolver logs to logger.
func WithLogger(logger log.FieldLogger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Resolver orchestrates the intent generator and the engine.
type Resolver struct {
	generator translator.IntentGenerator
	engine    *engine.Engine
	ictx      translator.IntentContext
	timeout   time.Duration
	logger    log.FieldLogger
}

// New creates a Resolver. generator may be nil, in which case only
// ResolveIntent works. The intent context is built once: catalogs never
// change after startup.
func New(generator translator.IntentGenerator, eng *engine.Engine, opts ...Option) *Resolver {
	r := &Resolver{
		generator: generator,
		engine:    eng,
		ictx:      translator.NewIntentContext(eng.Adapter()),
		timeout:   30 * time.Second,
		logger:    log.StandardLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// HasGenerator reports whether natural language requests can be served.
func (r *Resolver) HasGenerator() bool { return r.generator != nil }

// IntentContext returns the dataset context offered to the generator.
func (r *Resolver) IntentContext() translator.IntentContext { return r.ictx }

// Engine returns the query engine.
func (r *Resolver) Engine() *engine.Engine { return r.engine }

// Resolve processes a natural language prompt into a chart response.
func (r *Resolver) Resolve(ctx context.Context, req Request) (engine.ChartResponse, error) {
	prompt := translator.SanitizePrompt(req.Prompt)
	if prompt == "" {
		return engine.ChartResponse{}, ErrEmptyPrompt
	}
	if r.generator == nil {
		return engine.ChartResponse{}, fmt.Errorf("%w: no intent generator configured", translator.ErrGeneration)
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	start := time.Now()
	intent, err := r.generator.GenerateIntent(ctx, prompt, r.ictx.WithExtra(req.Context))
	if err != nil {
		if !errors.Is(err, translator.ErrGeneration) {
			err = fmt.Errorf("%w: %v", translator.ErrGeneration, err)
		}
		r.logger.WithError(err).WithField("requestId", req.RequestID).Warn("intent generation failed")
		return engine.ChartResponse{}, err
	}
	r.logger.WithFields(log.Fields{
		"requestId": req.RequestID,
		"dataset":   intent.Dataset,
		"elapsed":   time.Since(start).String(),
	}).Info("🔧 PromptChart: intent generated")

	return r.ResolveIntent(intent, req.RequestID)
}

// ResolveIntent normalizes, validates and executes a ready-made intent.
func (r *Resolver) ResolveIntent(intent engine.ChartIntent, requestID string) (engine.ChartResponse, error) {
	engine.NormalizeIntent(&intent)

	if err := translator.ValidateIntent(intent); err != nil {
		return engine.ChartResponse{}, err
	}

	resp, err := r.engine.Respond(intent, requestID)
	if err != nil {
		return engine.ChartResponse{}, fmt.Errorf("resolve %s: %w", intent.Dataset, err)
	}
	return resp, nil
}
