package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	LLMProvider    string // perplexity, openai, anthropic
	PerplexityKey  string
	OpenAIKey      string
	AnthropicKey   string
	LLMModel       string
	LLMTimeoutSecs int
	DatabasePath   string
	HTTPAddr       string
	SweepCron      string
	WebhookURL     string
}

func Load() *Config {
	_ = godotenv.Load() // ignore error if no .env

	return &Config{
		LLMProvider:    envOr("LLM_PROVIDER", "perplexity"),
		PerplexityKey:  os.Getenv("PERPLEXITY_API_KEY"),
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		AnthropicKey:   os.Getenv("ANTHROPIC_API_KEY"),
		LLMModel:       os.Getenv("LLM_MODEL"),
		LLMTimeoutSecs: envIntOr("LLM_TIMEOUT_SECONDS", 30),
		DatabasePath:   envOr("DATABASE_PATH", "./saathi.db"),
		HTTPAddr:       envOr("HTTP_ADDR", ":5000"),
		SweepCron:      envOr("SWEEP_CRON", "* * * * *"),
		WebhookURL:     os.Getenv("WEBHOOK_URL"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
