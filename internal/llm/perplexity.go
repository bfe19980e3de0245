package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
)

const perplexityAPI = "https://api.perplexity.ai/chat/completions"

// PerplexityClient talks to the Perplexity chat-completions endpoint.
// The API is OpenAI-shaped and accepts the system message inline in the
// messages array, so the prompt sequence is sent verbatim.
type PerplexityClient struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

func NewPerplexityClient(apiKey, model string, timeout time.Duration) *PerplexityClient {
	if model == "" {
		model = "sonar-pro"
	}
	return &PerplexityClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: perplexityAPI,
		http:    &http.Client{Timeout: timeout},
	}
}

type pplxRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

func (c *PerplexityClient) Chat(ctx context.Context, messages []Message) (string, error) {
	reqBody := pplxRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: 0.7,
		MaxTokens:   250,
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("perplexity request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != 200 {
		return "", fmt.Errorf("perplexity chat: %s %s", resp.Status, string(respBody))
	}

	content := gjson.GetBytes(respBody, "choices.0.message.content")
	if !content.Exists() {
		return "", fmt.Errorf("perplexity chat: malformed response: %s", string(respBody))
	}
	return content.String(), nil
}
