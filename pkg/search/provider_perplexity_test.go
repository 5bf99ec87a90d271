package search

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerplexityProviderSearch(t *testing.T) {
	var gotBody map[string]any
	var gotPath, gotAuth, gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("x-request-id")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "cmpl-1",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "perplexity/sonar-pro",
			"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "Sonar answer"}}],
			"citations": ["https://a.example.com", "https://b.example.com"]
		}`))
	}))
	defer server.Close()

	provider := &perplexityProvider{}
	params := Params{APIKey: "sk-or-test", BaseURL: server.URL + "/api/v1", Model: "perplexity/sonar-pro", TimeoutSecs: 5}
	resp, err := provider.Search(context.Background(), params, Request{Query: "what is go"})
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/chat/completions", gotPath)
	assert.Equal(t, "Bearer sk-or-test", gotAuth)
	assert.True(t, strings.HasPrefix(gotRequestID, "ws_"))
	assert.Equal(t, "perplexity/sonar-pro", gotBody["model"])
	messages, ok := gotBody["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 1)
	message := messages[0].(map[string]any)
	assert.Equal(t, "user", message["role"])
	assert.Equal(t, "what is go", message["content"])

	assert.Equal(t, ProviderPerplexity, resp.Provider)
	assert.Equal(t, "Sonar answer", resp.Content)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, resp.Citations)
}

func TestPerplexityProviderSearchEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","created":1,"model":"m","choices":[]}`))
	}))
	defer server.Close()

	provider := &perplexityProvider{}
	resp, err := provider.Search(context.Background(), Params{APIKey: "k", BaseURL: server.URL, Model: "m", TimeoutSecs: 5}, Request{Query: "q"})
	require.NoError(t, err)
	assert.Equal(t, noResponseContent, resp.Content)
	assert.Empty(t, resp.Citations)
}

func TestPerplexityProviderSearchStatusError(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"slow down"}}`))
	}))
	defer server.Close()

	provider := &perplexityProvider{}
	_, err := provider.Search(context.Background(), Params{APIKey: "k", BaseURL: server.URL, Model: "m", TimeoutSecs: 5}, Request{Query: "q"})
	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, http.StatusTooManyRequests, transportErr.StatusCode)
	assert.Equal(t, 1, calls)
}
