package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"go.mau.fi/util/ptr"

	"github.com/beeper/websearch/pkg/search"
)

type stubProvider struct {
	calls atomic.Int32
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) ResolveParams(cfg *search.Config, env search.Env) search.Params {
	return search.Params{APIKey: env.Getenv("STUB_KEY")}
}

func (p *stubProvider) MissingKeyError() *search.ConfigError {
	return &search.ConfigError{Code: "missing_stub_api_key", Provider: "stub", Message: "set STUB_KEY", Err: search.ErrMissingAPIKey}
}

func (p *stubProvider) Search(ctx context.Context, params search.Params, req search.Request) (*search.Response, error) {
	p.calls.Add(1)
	return &search.Response{Content: "stub answer for " + req.Query, Citations: []string{"https://stub.example.com"}}, nil
}

func newStubTool(t *testing.T, cfg *search.Config, env search.MapEnv) (*Tool, *stubProvider) {
	t.Helper()
	provider := &stubProvider{}
	registry := search.NewRegistry()
	registry.Register(provider)
	tool := NewWebSearchTool(cfg, WebSearchOptions{Env: env, Registry: registry})
	if tool == nil {
		t.Fatalf("expected tool")
	}
	return tool, provider
}

func TestNewWebSearchToolDisabled(t *testing.T) {
	if tool := NewWebSearchTool(&search.Config{Enabled: ptr.Ptr(false)}, WebSearchOptions{}); tool != nil {
		t.Fatalf("expected nil tool when disabled")
	}
	tool := NewWebSearchTool(nil, WebSearchOptions{Sandboxed: true})
	if tool == nil {
		t.Fatalf("expected tool with default config")
	}
	if tool.Name != "web_search" || tool.Group != GroupSearch {
		t.Fatalf("unexpected tool metadata %q %q", tool.Name, tool.Group)
	}
}

func TestWebSearchMissingQuery(t *testing.T) {
	tool, provider := newStubTool(t, &search.Config{Provider: "stub"}, search.MapEnv{"STUB_KEY": "k"})
	for _, input := range []map[string]any{{}, {"query": "  "}, {"query": 42}} {
		result, err := tool.Execute(context.Background(), input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError() {
			t.Fatalf("expected error result for %#v", input)
		}
	}
	if provider.calls.Load() != 0 {
		t.Fatalf("provider must not be called")
	}
}

func TestWebSearchMissingKeyResult(t *testing.T) {
	tool, provider := newStubTool(t, &search.Config{Provider: "stub"}, search.MapEnv{})
	result, err := tool.Execute(context.Background(), map[string]any{"query": "q"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError() {
		t.Fatalf("expected error result")
	}
	if result.Details["error"] != "missing_stub_api_key" || result.Details["provider"] != "stub" {
		t.Fatalf("unexpected details %#v", result.Details)
	}
	if result.Text() != "set STUB_KEY" {
		t.Fatalf("unexpected text %q", result.Text())
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(result.Content[0].Text), &payload); err != nil || payload["error"] != "missing_stub_api_key" {
		t.Fatalf("unexpected content block %q", result.Content[0].Text)
	}
	if provider.calls.Load() != 0 {
		t.Fatalf("provider must not be called")
	}
}

func TestWebSearchUnknownProviderResult(t *testing.T) {
	tool, _ := newStubTool(t, &search.Config{Provider: "nope"}, search.MapEnv{})
	result, _ := tool.Execute(context.Background(), map[string]any{"query": "q"})
	if !result.IsError() || result.Details["error"] != "unknown_search_provider" {
		t.Fatalf("unexpected result %#v", result)
	}
}

func TestWebSearchEnvelope(t *testing.T) {
	tool, provider := newStubTool(t, &search.Config{Provider: "stub", CacheTtlMinutes: 1}, search.MapEnv{"STUB_KEY": "k"})

	result, err := tool.Execute(context.Background(), map[string]any{"query": "golang", "count": "3", "freshness": "bogus"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError() {
		t.Fatalf("unexpected error result: %s", result.Text())
	}
	details := result.Details
	if details["provider"] != "stub" || details["query"] != "golang" || details["content"] != "stub answer for golang" {
		t.Fatalf("unexpected details %#v", details)
	}
	if _, ok := details["tookMs"].(float64); !ok {
		t.Fatalf("expected numeric tookMs, got %#v", details["tookMs"])
	}
	if _, ok := details["cached"]; ok {
		t.Fatalf("cached must be absent on a fresh result")
	}
	citations, ok := details["citations"].([]any)
	if !ok || len(citations) != 1 {
		t.Fatalf("unexpected citations %#v", details["citations"])
	}

	again, _ := tool.Execute(context.Background(), map[string]any{"query": "golang", "count": 3})
	if again.Details["cached"] != true {
		t.Fatalf("expected cached result, got %#v", again.Details)
	}
	if provider.calls.Load() != 1 {
		t.Fatalf("expected one provider call, got %d", provider.calls.Load())
	}
}

func TestWebSearchZhipuEndToEnd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/web_search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"search_result":[
			{"title":"A","link":"https://a.example.com","content":"alpha","media":"MA","publish_date":"2024-01-01"},
			{"title":"B","link":"https://b.example.com","content":"beta","media":"MB","publish_date":"2024-01-02"}
		]}`))
	}))
	defer server.Close()

	cfg := &search.Config{Provider: "zhipu", Zhipu: &search.ProviderConfig{BaseURL: server.URL}}
	tool := NewWebSearchTool(cfg, WebSearchOptions{Env: search.MapEnv{search.EnvZhipuAPIKey: "zk"}})
	result, err := tool.Execute(context.Background(), map[string]any{"query": "letters"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError() {
		t.Fatalf("unexpected error result: %s", result.Text())
	}
	if want := "A\nMA 2024-01-01\nalpha\n\nB\nMB 2024-01-02\nbeta"; result.Details["content"] != want {
		t.Fatalf("unexpected content %q", result.Details["content"])
	}
	citations := result.Details["citations"].([]any)
	if len(citations) != 2 || citations[0] != "https://a.example.com" || citations[1] != "https://b.example.com" {
		t.Fatalf("unexpected citations %#v", citations)
	}
	if tookMs := result.Details["tookMs"].(float64); tookMs < 0 {
		t.Fatalf("negative tookMs %v", tookMs)
	}
}

func TestWebSearchTransportFailureResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	cfg := &search.Config{Provider: "zhipu", Zhipu: &search.ProviderConfig{APIKey: "zk", BaseURL: server.URL}}
	result, err := NewWebSearchTool(cfg, WebSearchOptions{}).Execute(context.Background(), map[string]any{"query": "q"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError() || result.Details["error"] != "search_failed" || result.Details["status"] != http.StatusForbidden {
		t.Fatalf("unexpected result %#v", result)
	}
}
