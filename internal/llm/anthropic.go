package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const anthropicAPI = "https://api.anthropic.com/v1/messages"

// AnthropicClient talks to the Anthropic messages endpoint. Unlike
// Perplexity, the system message rides in a separate request field, so
// the leading system message is peeled off the sequence here.
type AnthropicClient struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

func NewAnthropicClient(apiKey, model string, timeout time.Duration) *AnthropicClient {
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}
	return &AnthropicClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: anthropicAPI,
		http:    &http.Client{Timeout: timeout},
	}
}

type anthRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []Message `json:"messages"`
}

func (c *AnthropicClient) Chat(ctx context.Context, messages []Message) (string, error) {
	var system string
	if len(messages) > 0 && messages[0].Role == RoleSystem {
		system = messages[0].Content
		messages = messages[1:]
	}

	reqBody := anthRequest{
		Model:     c.model,
		MaxTokens: 250,
		System:    system,
		Messages:  messages,
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
	req.Header.Set("anthropic-version", "2023-06-01")
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("anthropic request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != 200 {
		return "", fmt.Errorf("anthropic chat: %s %s", resp.Status, string(respBody))
	}

	var sb strings.Builder
	for _, block := range gjson.GetBytes(respBody, "content").Array() {
		if block.Get("type").String() == "text" {
			sb.WriteString(block.Get("text").String())
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("anthropic chat: no text content in response")
	}
	return sb.String(), nil
}
