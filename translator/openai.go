package translator

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"

	"github.com/spektr-org/promptchart/engine"
)

// ============================================================================
// OPENAI GENERATOR — Chat completions in JSON mode
// ============================================================================

// OpenAIGenerator implements IntentGenerator using the OpenAI chat API.
type OpenAIGenerator struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// NewOpenAI creates a new OpenAI generator. Endpoint, when set, replaces
// the API base URL (Azure-compatible proxies, local gateways, tests).
func NewOpenAI(cfg Config) *OpenAIGenerator {
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 1000
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientCfg.BaseURL = cfg.Endpoint
	}

	return &OpenAIGenerator{
		client:    openai.NewClientWithConfig(clientCfg),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}
}

// GenerateIntent asks the model for a ChartIntent.
func (g *OpenAIGenerator) GenerateIntent(ctx context.Context, prompt string, ictx IntentContext) (engine.ChartIntent, error) {
	log.Printf("🔄 PromptChart Translator: provider=openai model=%s prompt=\"%s\"", g.model, truncate(prompt, 80))

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: BuildPrompt(prompt, ictx)},
		},
		MaxTokens: g.maxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return engine.ChartIntent{}, fmt.Errorf("%w: openai API error: %v", ErrGeneration, err)
	}

	if len(resp.Choices) == 0 {
		return engine.ChartIntent{}, fmt.Errorf("%w: no response from OpenAI", ErrGeneration)
	}

	intent, err := ParseIntent(resp.Choices[0].Message.Content)
	if err != nil {
		return engine.ChartIntent{}, err
	}

	log.Printf("✅ PromptChart Translator: dataset=%s chartType=%s metrics=%d",
		intent.Dataset, intent.ChartType, len(intent.Metrics))
	return intent, nil
}
