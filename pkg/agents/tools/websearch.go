package tools

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/beeper/websearch/pkg/search"
	"github.com/beeper/websearch/pkg/shared/toolspec"
)

// WebSearchOptions wires the collaborators of the web_search tool. Nil
// fields fall back to the process environment, the built-in providers and
// no metrics.
type WebSearchOptions struct {
	// Sandboxed is accepted for parity with other tools; web search stays
	// available in sandboxed sessions.
	Sandboxed bool

	Env      search.Env
	Registry *search.Registry
	MCP      search.MCPCaller
	Cache    *search.Cache
	Metrics  *search.Metrics
	Logger   *zerolog.Logger
}

// NewWebSearchTool builds the web_search tool for cfg, or returns nil when
// web search is disabled in configuration.
func NewWebSearchTool(cfg *search.Config, opts WebSearchOptions) *Tool {
	if !cfg.IsEnabled() {
		return nil
	}
	searchOpts := search.Options{
		Env:      opts.Env,
		Registry: opts.Registry,
		Cache:    opts.Cache,
		Metrics:  opts.Metrics,
		Logger:   opts.Logger,
	}
	if searchOpts.Registry == nil {
		searchOpts.Registry = search.NewDefaultRegistry(opts.MCP)
	}
	if searchOpts.Cache == nil && cfg != nil && cfg.CacheTtlMinutes > 0 {
		searchOpts.Cache = search.NewCache()
	}
	return &Tool{
		Tool: mcp.Tool{
			Name:        toolspec.WebSearchName,
			Description: toolspec.WebSearchDescription,
			Annotations: &mcp.ToolAnnotations{Title: "Web Search"},
			InputSchema: toolspec.WebSearchSchema(),
		},
		Type:  ToolTypeBuiltin,
		Group: GroupSearch,
		Execute: func(ctx context.Context, input map[string]any) (*Result, error) {
			return executeWebSearch(ctx, cfg, searchOpts, input)
		},
	}
}

func executeWebSearch(ctx context.Context, cfg *search.Config, opts search.Options, input map[string]any) (*Result, error) {
	query, err := ReadString(input, "query", true)
	if err != nil {
		return ErrorResult(toolspec.WebSearchName, err.Error()), nil
	}
	count, _ := ReadInt(input, "count", false)
	freshness, _ := ReadString(input, "freshness", false)
	country, _ := ReadString(input, "country", false)
	searchLang, _ := ReadString(input, "search_lang", false)
	uiLang, _ := ReadString(input, "ui_lang", false)

	resp, err := search.Search(ctx, search.Request{
		Query:      query,
		Count:      count,
		Freshness:  freshness,
		Country:    country,
		SearchLang: searchLang,
		UILang:     uiLang,
	}, cfg, opts)
	if err != nil {
		return searchErrorResult(err), nil
	}
	return JSONResult(resp), nil
}

func searchErrorResult(err error) *Result {
	var cfgErr *search.ConfigError
	var transportErr *search.TransportError
	switch {
	case errors.As(err, &cfgErr):
		extra := map[string]any{}
		if cfgErr.Provider != "" {
			extra["provider"] = cfgErr.Provider
		}
		return CodedErrorResult(toolspec.WebSearchName, cfgErr.Code, cfgErr.Message, extra)
	case errors.As(err, &transportErr):
		extra := map[string]any{"provider": transportErr.Provider}
		if transportErr.StatusCode > 0 {
			extra["status"] = transportErr.StatusCode
		}
		return CodedErrorResult(toolspec.WebSearchName, "search_failed", transportErr.Error(), extra)
	default:
		return ErrorResult(toolspec.WebSearchName, err.Error())
	}
}
