package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/spektr-org/promptchart/engine"
)

// ============================================================================
// GEMINI GENERATOR — Calls Google Gemini generateContent over REST
// ============================================================================

// GeminiGenerator implements IntentGenerator using the Google Gemini API.
type GeminiGenerator struct {
	config Config
	client *http.Client
}

// NewGemini creates a new Gemini generator.
func NewGemini(cfg Config) *GeminiGenerator {
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash-lite"
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = "https://generativelanguage.googleapis.com/v1beta/models"
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 1000
	}

	return &GeminiGenerator{
		config: cfg,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GenerateIntent asks Gemini for a ChartIntent. The system prompt travels
// as a system instruction; the user turn carries datasets and the request.
func (g *GeminiGenerator) GenerateIntent(ctx context.Context, prompt string, ictx IntentContext) (engine.ChartIntent, error) {
	log.Printf("🔄 PromptChart Translator: provider=gemini model=%s prompt=\"%s\"", g.config.Model, truncate(prompt, 80))

	text, err := g.generateContent(ctx, SystemPrompt, BuildPrompt(prompt, ictx))
	if err != nil {
		return engine.ChartIntent{}, fmt.Errorf("%w: gemini: %v", ErrGeneration, err)
	}

	intent, err := ParseIntent(text)
	if err != nil {
		return engine.ChartIntent{}, err
	}

	log.Printf("✅ PromptChart Translator: dataset=%s chartType=%s metrics=%d",
		intent.Dataset, intent.ChartType, len(intent.Metrics))
	return intent, nil
}

// ============================================================================
// GEMINI API CALL
// ============================================================================

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent `json:"systemInstruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  struct {
		ResponseMimeType string  `json:"responseMimeType"`
		MaxOutputTokens  int     `json:"maxOutputTokens"`
		Temperature      float64 `json:"temperature"`
	} `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// text returns the first candidate's text parts joined.
func (r geminiResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, part := range r.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String()
}

func (g *GeminiGenerator) generateContent(ctx context.Context, system, user string) (string, error) {
	body := geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: system}}},
		Contents:          []geminiContent{{Role: "user", Parts: []geminiPart{{Text: user}}}},
	}
	body.GenerationConfig.ResponseMimeType = "application/json"
	body.GenerationConfig.MaxOutputTokens = g.config.MaxTokens

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s:generateContent?%s",
		strings.TrimRight(g.config.Endpoint, "/"), url.PathEscape(g.config.Model),
		url.Values{"key": {g.config.APIKey}}.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, snippet)
	}

	var decoded geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if decoded.Error != nil {
		return "", fmt.Errorf("error %d: %s", decoded.Error.Code, decoded.Error.Message)
	}

	text := decoded.text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("empty response")
	}
	return text, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
