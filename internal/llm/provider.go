package llm

import (
	"fmt"
	"time"
)

type ProviderConfig struct {
	Provider string
	APIKey   string
	Model    string
	Timeout  time.Duration
}

func NewClient(cfg ProviderConfig) (Client, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	switch cfg.Provider {
	case "perplexity":
		return NewPerplexityClient(cfg.APIKey, cfg.Model, cfg.Timeout), nil
	case "anthropic":
		return NewAnthropicClient(cfg.APIKey, cfg.Model, cfg.Timeout), nil
	case "openai":
		return NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", cfg.Provider)
	}
}
