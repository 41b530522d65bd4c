package openai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/decagondev/react-component-generator/llm"
	"github.com/decagondev/react-component-generator/llm/openai"
)

func TestComplete(t *testing.T) {
	var gotBody struct {
		Model       string  `json:"model"`
		Temperature float64 `json:"temperature"`
		MaxTokens   int     `json:"max_tokens"`
		Messages    []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "generated component"}},
			},
		})
	}))
	defer srv.Close()

	client := openai.New("test-key", "test-model", llm.Options{Temperature: 0.5, MaxTokens: 4096}).
		WithBaseURL(srv.URL)

	got, err := client.Complete(context.Background(), "system instruction", "user prompt")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "generated component" {
		t.Errorf("response = %q, want %q", got, "generated component")
	}

	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q, want Bearer test-key", gotAuth)
	}
	if gotBody.Temperature != 0.5 {
		t.Errorf("temperature = %v, want 0.5", gotBody.Temperature)
	}
	if len(gotBody.Messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(gotBody.Messages))
	}
	if gotBody.Messages[0].Role != "system" || gotBody.Messages[0].Content != "system instruction" {
		t.Errorf("first message = %+v, want system instruction", gotBody.Messages[0])
	}
	if gotBody.Messages[1].Role != "user" || gotBody.Messages[1].Content != "user prompt" {
		t.Errorf("second message = %+v, want user prompt", gotBody.Messages[1])
	}
}

func TestComplete_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	client := openai.New("k", "", llm.DefaultOptions()).WithBaseURL(srv.URL)

	_, err := client.Complete(context.Background(), "s", "u")
	if err == nil {
		t.Fatal("expected error for empty choices, got nil")
	}
}

func TestComplete_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := openai.New("k", "", llm.DefaultOptions()).WithBaseURL(srv.URL)

	_, err := client.Complete(context.Background(), "s", "u")
	if err == nil {
		t.Fatal("expected error for 429 response, got nil")
	}
}
