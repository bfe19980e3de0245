package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/openai/openai-go/v3/option"
)

func TestOpenAIChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"You are doing great."}}]}`))
	}))
	defer srv.Close()

	c := newOpenAIClient("test-key", "", time.Second,
		option.WithBaseURL(srv.URL), option.WithMaxRetries(0))

	reply, err := c.Chat(context.Background(), []Message{
		{Role: RoleSystem, Content: "be kind"},
		{Role: RoleUser, Content: "hello"},
	})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if reply != "You are doing great." {
		t.Errorf("unexpected reply %q", reply)
	}
}

func TestOpenAIChatTimeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(block)

	c := newOpenAIClient("test-key", "", 50*time.Millisecond,
		option.WithBaseURL(srv.URL), option.WithMaxRetries(0))

	start := time.Now()
	_, err := c.Chat(context.Background(), []Message{{Role: RoleUser, Content: "hello"}})
	if err == nil {
		t.Fatal("expected a timeout error from a stalled provider")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("request was not bounded by the timeout, took %v", elapsed)
	}
}
