package translator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spektr-org/promptchart/engine"
	"github.com/spektr-org/promptchart/schema"
)

// ============================================================================
// TRANSLATOR — AI boundary for natural language → ChartIntent
// ============================================================================
// The generator is the ONLY component that calls an external AI service.
// It receives dataset descriptors + the user's prompt and returns a
// ChartIntent. It never sees raw records, only field names and samples.
// ============================================================================

var (
	// ErrGeneration wraps every failure to obtain an intent from the
	// provider: transport, API error, empty or unparseable reply.
	ErrGeneration = errors.New("intent generation failed")

	// ErrInvalidIntent wraps structural validation failures.
	ErrInvalidIntent = errors.New("invalid chart intent")
)

// IntentGenerator turns a natural language prompt into a ChartIntent.
// Implementations: OpenAI (go-openai), Gemini (REST).
type IntentGenerator interface {
	GenerateIntent(ctx context.Context, prompt string, ictx IntentContext) (engine.ChartIntent, error)
}

// IntentContext is everything the generator may know about the data.
type IntentContext struct {
	Datasets   []schema.Config `json:"datasets"`
	ChartTypes []string        `json:"chartTypes"`
	Extra      map[string]any  `json:"extra,omitempty"` // caller-supplied context from the request
}

// NewIntentContext describes every dataset the adapter serves.
func NewIntentContext(adapter engine.DataAdapter) IntentContext {
	return IntentContext{
		Datasets:   schema.FromAdapter(adapter),
		ChartTypes: append([]string{}, engine.ChartTypes...),
	}
}

// WithExtra returns a copy carrying caller-supplied context.
func (c IntentContext) WithExtra(extra map[string]any) IntentContext {
	c.Extra = extra
	return c
}

// Config holds generator configuration.
type Config struct {
	APIKey    string // AI provider API key (consumer's key)
	Model     string // Model name (e.g., "gpt-4o-mini")
	Endpoint  string // API endpoint override (empty = default)
	MaxTokens int
}

// DefaultOpenAIConfig returns a Config with sensible OpenAI defaults.
func DefaultOpenAIConfig(apiKey string) Config {
	return Config{
		APIKey:    apiKey,
		Model:     "gpt-4o-mini",
		MaxTokens: 1000,
	}
}

// DefaultGeminiConfig returns a Config with sensible Gemini defaults.
func DefaultGeminiConfig(apiKey string) Config {
	return Config{
		APIKey:    apiKey,
		Model:     "gemini-2.5-flash-lite",
		Endpoint:  "https://generativelanguage.googleapis.com/v1beta/models",
		MaxTokens: 1000,
	}
}

// Provider names accepted by NewGenerator.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// NewGenerator builds the generator for a provider name.
func NewGenerator(provider string, cfg Config) (IntentGenerator, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", ProviderOpenAI:
		return NewOpenAI(cfg), nil
	case ProviderGemini:
		return NewGemini(cfg), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q (want %s or %s)", provider, ProviderOpenAI, ProviderGemini)
	}
}
