package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/beeper/websearch/pkg/shared/httputil"
	"github.com/beeper/websearch/pkg/shared/stringutil"
)

type zhipuProvider struct {
	mcp MCPCaller
}

// ResolveZhipuAPIKey returns the configured key, then ZHIPU_API_KEY, then "".
func ResolveZhipuAPIKey(cfg *ProviderConfig, env Env) string {
	return configOrEnv(cfg, env, EnvZhipuAPIKey)
}

// ResolveZhipuTransport returns "mcp" when the MCP transport is selected and
// "http" otherwise.
func ResolveZhipuTransport(cfg *ProviderConfig) string {
	if cfg != nil && strings.EqualFold(strings.TrimSpace(cfg.Transport), TransportMCP) {
		return TransportMCP
	}
	return TransportHTTP
}

// ResolveZhipuMCPEndpoint returns the streamable HTTP endpoint of the Zhipu
// MCP server.
func ResolveZhipuMCPEndpoint(cfg *ProviderConfig) string {
	if cfg == nil {
		return DefaultZhipuMCPEndpoint
	}
	return stringutil.FirstNonEmpty(cfg.MCPEndpoint, DefaultZhipuMCPEndpoint)
}

func (p *zhipuProvider) Name() string {
	return ProviderZhipu
}

func (p *zhipuProvider) ResolveParams(cfg *Config, env Env) Params {
	slice := cfg.ProviderSlice(ProviderZhipu)
	params := Params{
		APIKey:      ResolveZhipuAPIKey(slice, env),
		BaseURL:     stringutil.FirstNonEmpty(slice.baseURL(), DefaultZhipuBaseURL),
		Model:       strings.TrimSpace(slice.model()),
		Transport:   ResolveZhipuTransport(slice),
		TimeoutSecs: cfg.timeoutSecs(),
	}
	params.KeySource = keySourceFor(slice, params.APIKey)
	if params.Transport == TransportMCP {
		params.BaseURL = ResolveZhipuMCPEndpoint(slice)
	}
	return params
}

func (p *zhipuProvider) MissingKeyError() *ConfigError {
	return missingKeyError(ProviderZhipu, "missing_zhipu_api_key",
		"web_search (zhipu) needs a Zhipu API key. Set ZHIPU_API_KEY in the environment, or configure tools.web.search.zhipu.apiKey.")
}

func (p *zhipuProvider) Search(ctx context.Context, params Params, req Request) (*Response, error) {
	if params.Transport == TransportMCP {
		return p.searchMCP(ctx, req)
	}
	endpoint := strings.TrimRight(params.BaseURL, "/") + "/web_search"
	data, _, err := httputil.PostJSON(ctx, endpoint, bearerHeaders(params.APIKey), buildZhipuRequest(req), params.TimeoutSecs)
	if err != nil {
		return nil, transportError(ProviderZhipu, err)
	}
	resp, err := normalizeZhipuResponse(data)
	if err != nil {
		return nil, transportError(ProviderZhipu, err)
	}
	resp.Query = req.Query
	return resp, nil
}

func buildZhipuRequest(req Request) map[string]any {
	return map[string]any{
		"search_query":          req.Query,
		"search_engine":         "search_std",
		"count":                 req.Count,
		"search_recency_filter": zhipuRecencyFilter(req.Freshness),
		"content_size":          "medium",
	}
}

// normalizeZhipuResponse renders each search_result entry as a block of
// title, "media publish_date" and content, in response order.
func normalizeZhipuResponse(data []byte) (*Response, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("failed to parse results: %w", ErrMalformedResponse)
	}
	entries := gjson.GetBytes(data, "search_result").Array()
	blocks := make([]string, 0, len(entries))
	citations := make([]string, 0, len(entries))
	results := make([]Result, 0, len(entries))
	for _, entry := range entries {
		title := strings.TrimSpace(entry.Get("title").String())
		link := strings.TrimSpace(entry.Get("link").String())
		content := strings.TrimSpace(entry.Get("content").String())
		media := strings.TrimSpace(entry.Get("media").String())
		published := strings.TrimSpace(entry.Get("publish_date").String())

		lines := make([]string, 0, 3)
		if title != "" {
			lines = append(lines, title)
		}
		if media != "" && published != "" {
			lines = append(lines, media+" "+published)
		}
		if content != "" {
			lines = append(lines, content)
		}
		if len(lines) > 0 {
			blocks = append(blocks, strings.Join(lines, "\n"))
		}
		if link != "" {
			citations = append(citations, link)
		}
		results = append(results, Result{
			Title:       title,
			URL:         link,
			Description: content,
			Published:   published,
			SiteName:    media,
		})
	}
	return &Response{
		Provider:  ProviderZhipu,
		Content:   strings.Join(blocks, "\n\n"),
		Citations: citations,
		Count:     len(results),
		Results:   results,
	}, nil
}

func bearerHeaders(apiKey string) map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + apiKey,
	}
}

func keySourceFor(cfg *ProviderConfig, resolved string) KeySource {
	switch {
	case resolved == "":
		return KeySourceNone
	case strings.TrimSpace(cfg.apiKey()) != "":
		return KeySourceConfig
	default:
		return KeySourceEnv
	}
}
