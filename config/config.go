// Package config loads PromptChart settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/spektr-org/promptchart/translator"
)

// Config is the process configuration.
type Config struct {
	Port           string
	LLMProvider    string
	OpenAIKey      string
	OpenAIModel    string
	OpenAIBaseURL  string
	GeminiKey      string
	GeminiModel    string
	MaxTokens      int
	RequestTimeout time.Duration
	LogLevel       string
	LogFormat      string
	GinMode        string

	// CSVDatasets maps dataset name → CSV path, served after the fixtures.
	CSVDatasets map[string]string
}

// Load reads .env files (missing files are fine; existing environment
// variables win) and then the environment.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables only.
func FromEnv() (Config, error) {
	cfg := Config{
		Port:          envOr("PORT", "3000"),
		LLMProvider:   strings.ToLower(envOr("LLM_PROVIDER", translator.ProviderOpenAI)),
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   envOr("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		GeminiKey:     os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   envOr("GEMINI_MODEL", "gemini-2.5-flash-lite"),
		LogLevel:      envOr("LOG_LEVEL", "info"),
		LogFormat:     envOr("LOG_FORMAT", "text"),
		GinMode:       os.Getenv("GIN_MODE"),
	}

	var err error
	if cfg.MaxTokens, err = strconv.Atoi(envOr("MAX_TOKENS", "1000")); err != nil || cfg.MaxTokens <= 0 {
		return Config{}, fmt.Errorf("MAX_TOKENS must be a positive integer, got %q", os.Getenv("MAX_TOKENS"))
	}
	if cfg.RequestTimeout, err = parseTimeout(envOr("REQUEST_TIMEOUT", "30s")); err != nil {
		return Config{}, err
	}
	if cfg.CSVDatasets, err = parseDatasets(os.Getenv("CSV_DATASETS")); err != nil {
		return Config{}, err
	}

	switch cfg.LLMProvider {
	case translator.ProviderOpenAI, translator.ProviderGemini:
	default:
		return Config{}, fmt.Errorf("LLM_PROVIDER must be %s or %s, got %q",
			translator.ProviderOpenAI, translator.ProviderGemini, cfg.LLMProvider)
	}
	return cfg, nil
}

// ============================================================================
// GENERATOR
// ============================================================================

// GeneratorConfig returns the translator settings for the selected provider.
func (c Config) GeneratorConfig() translator.Config {
	if c.LLMProvider == translator.ProviderGemini {
		gc := translator.DefaultGeminiConfig(c.GeminiKey)
		gc.Model = c.GeminiModel
		gc.MaxTokens = c.MaxTokens
		return gc
	}
	oc := translator.DefaultOpenAIConfig(c.OpenAIKey)
	oc.Model = c.OpenAIModel
	oc.Endpoint = c.OpenAIBaseURL
	oc.MaxTokens = c.MaxTokens
	return oc
}

// Generator builds the intent generator. With no API key for the selected
// provider it logs a warning and returns nil: the process still serves
// ready-made intents.
func (c Config) Generator() (translator.IntentGenerator, error) {
	gc := c.GeneratorConfig()
	if gc.APIKey == "" {
		log.WithField("provider", c.LLMProvider).Warn("⚠️ No API key set for LLM provider, natural language requests will fail")
		return nil, nil
	}
	return translator.NewGenerator(c.LLMProvider, gc)
}

// ============================================================================
// LOGGING
// ============================================================================

// SetupLogging applies LOG_LEVEL and LOG_FORMAT to the standard logger.
func (c Config) SetupLogging() error {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	log.SetLevel(level)
	if strings.EqualFold(c.LogFormat, "json") {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return nil
}

// ============================================================================
// HELPERS
// ============================================================================

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// parseTimeout accepts a Go duration ("45s") or whole seconds ("45").
func parseTimeout(s string) (time.Duration, error) {
	if secs, err := strconv.Atoi(s); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("REQUEST_TIMEOUT must be a duration, got %q", s)
	}
	return d, nil
}

// parseDatasets reads "name=path,name2=path2".
func parseDatasets(s string) (map[string]string, error) {
	out := map[string]string{}
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, path, ok := strings.Cut(entry, "=")
		name, path = strings.TrimSpace(name), strings.TrimSpace(path)
		if !ok || name == "" || path == "" {
			return nil, fmt.Errorf("CSV_DATASETS entry %q must be name=path", entry)
		}
		out[name] = path
	}
	return out, nil
}
