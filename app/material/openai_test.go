package material

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenAIClientComplete(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotBody)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"chatcmpl-1","object":"chat.completion","created":1,"model":"gpt-test","choices":[{"index":0,"message":{"role":"assistant","content":"Vocabulary: Hello"},"finish_reason":"stop"}],"usage":{"prompt_tokens":1,"completion_tokens":1,"total_tokens":2}}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient(srv.Client(), srv.URL+"/v1", "sk-test", "gpt-test")
	got, err := client.Complete(context.Background(), "the prompt")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if got != "Vocabulary: Hello" {
		t.Errorf("Expected completion content, got %q", got)
	}
	if gotPath != "/v1/chat/completions" {
		t.Errorf("Unexpected path %q", gotPath)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("Expected bearer token, got %q", gotAuth)
	}
	if gotBody.Model != "gpt-test" {
		t.Errorf("Expected model 'gpt-test', got '%s'", gotBody.Model)
	}
	if len(gotBody.Messages) != 1 || gotBody.Messages[0].Role != "user" || gotBody.Messages[0].Content != "the prompt" {
		t.Errorf("Expected a single user message, got %+v", gotBody.Messages)
	}
}

func TestOpenAIClientErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
	}))
	defer srv.Close()

	if _, err := NewOpenAIClient(srv.Client(), srv.URL+"/v1", "sk-test", "m").Complete(context.Background(), "p"); err == nil {
		t.Error("Expected error for HTTP 500")
	}

	if _, err := NewOpenAIClient(srv.Client(), srv.URL+"/v1", "", "m").Complete(context.Background(), "p"); err != errMissingOpenAIKey {
		t.Errorf("Expected missing key error, got %v", err)
	}
}

func TestOpenAIClientNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"x","object":"chat.completion","created":1,"model":"m","choices":[]}`))
	}))
	defer srv.Close()

	if _, err := NewOpenAIClient(srv.Client(), srv.URL+"/v1", "sk-test", "m").Complete(context.Background(), "p"); err == nil {
		t.Error("Expected error for empty choices")
	}
}
