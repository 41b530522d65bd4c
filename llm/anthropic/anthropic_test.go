package anthropic_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/decagondev/react-component-generator/llm"
	"github.com/decagondev/react-component-generator/llm/anthropic"
)

func TestComplete(t *testing.T) {
	var gotBody map[string]any
	var gotHeaders http.Header

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{
				{"type": "text", "text": "generated component"},
			},
		})
	}))
	defer srv.Close()

	client := anthropic.New("test-key", "test-model", llm.Options{Temperature: 0.5, MaxTokens: 4096}).
		WithBaseURL(srv.URL)

	got, err := client.Complete(context.Background(), "system instruction", "user prompt")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "generated component" {
		t.Errorf("response = %q, want %q", got, "generated component")
	}

	if gotHeaders.Get("x-api-key") != "test-key" {
		t.Errorf("x-api-key = %q, want test-key", gotHeaders.Get("x-api-key"))
	}
	if gotHeaders.Get("anthropic-version") == "" {
		t.Error("anthropic-version header missing")
	}
	if gotBody["system"] != "system instruction" {
		t.Errorf("system = %v, want system instruction", gotBody["system"])
	}
	if gotBody["temperature"] != 0.5 {
		t.Errorf("temperature = %v, want 0.5", gotBody["temperature"])
	}
	if gotBody["max_tokens"] != float64(4096) {
		t.Errorf("max_tokens = %v, want 4096", gotBody["max_tokens"])
	}
}

func TestComplete_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"invalid api key"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := anthropic.New("bad-key", "", llm.DefaultOptions()).WithBaseURL(srv.URL)

	_, err := client.Complete(context.Background(), "s", "u")
	if err == nil {
		t.Fatal("expected error for 401 response, got nil")
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("error %q does not mention status code", err)
	}
}

func TestComplete_NoTextContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"content": []map[string]string{}})
	}))
	defer srv.Close()

	client := anthropic.New("k", "", llm.DefaultOptions()).WithBaseURL(srv.URL)

	_, err := client.Complete(context.Background(), "s", "u")
	if err == nil {
		t.Fatal("expected error for empty content, got nil")
	}
}
