package search

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/beeper/websearch/pkg/shared/httputil"
	"github.com/beeper/websearch/pkg/shared/stringutil"
)

type braveProvider struct{}

func (p *braveProvider) Name() string {
	return ProviderBrave
}

func (p *braveProvider) ResolveParams(cfg *Config, env Env) Params {
	slice := cfg.ProviderSlice(ProviderBrave)
	params := Params{
		APIKey:      configOrEnv(slice, env, EnvBraveAPIKey),
		BaseURL:     DefaultBraveBaseURL,
		TimeoutSecs: cfg.timeoutSecs(),
	}
	params.KeySource = keySourceFor(slice, params.APIKey)
	return params
}

func (p *braveProvider) MissingKeyError() *ConfigError {
	return missingKeyError(ProviderBrave, "missing_brave_api_key",
		"web_search needs a Brave Search API key. Set BRAVE_API_KEY in the environment, or configure tools.web.search.apiKey.")
}

func (p *braveProvider) Search(ctx context.Context, params Params, req Request) (*Response, error) {
	searchURL, err := url.Parse(params.BaseURL)
	if err != nil {
		return nil, &ConfigError{Code: "invalid_base_url", Provider: ProviderBrave, Message: err.Error(), Err: err}
	}
	queryValues := searchURL.Query()
	queryValues.Set("q", req.Query)
	queryValues.Set("count", strconv.Itoa(req.Count))
	if req.Country != "" {
		queryValues.Set("country", req.Country)
	}
	if req.SearchLang != "" {
		queryValues.Set("search_lang", req.SearchLang)
	}
	if req.UILang != "" {
		queryValues.Set("ui_lang", req.UILang)
	}
	if req.Freshness != "" {
		queryValues.Set("freshness", req.Freshness)
	}
	searchURL.RawQuery = queryValues.Encode()

	data, _, err := httputil.GetJSON(ctx, searchURL.String(), map[string]string{
		"Accept":               "application/json",
		"X-Subscription-Token": params.APIKey,
	}, params.TimeoutSecs)
	if err != nil {
		return nil, transportError(ProviderBrave, err)
	}
	if !gjson.ValidBytes(data) {
		return nil, transportError(ProviderBrave, fmt.Errorf("failed to parse results: %w", ErrMalformedResponse))
	}

	entries := gjson.GetBytes(data, "web.results").Array()
	blocks := make([]string, 0, len(entries))
	citations := make([]string, 0, len(entries))
	results := make([]Result, 0, len(entries))
	for _, entry := range entries {
		result := Result{
			Title:       stringutil.StripHTML(entry.Get("title").String()),
			URL:         strings.TrimSpace(entry.Get("url").String()),
			Description: stringutil.StripHTML(entry.Get("description").String()),
			Published:   strings.TrimSpace(entry.Get("age").String()),
		}
		result.SiteName = resolveSiteName(result.URL)
		results = append(results, result)
		if result.URL != "" {
			citations = append(citations, result.URL)
		}
		if block := formatResultBlock(result); block != "" {
			blocks = append(blocks, block)
		}
	}

	return &Response{
		Provider:  ProviderBrave,
		Query:     req.Query,
		Content:   strings.Join(blocks, "\n\n"),
		Citations: citations,
		Count:     len(results),
		Results:   results,
	}, nil
}

func formatResultBlock(result Result) string {
	lines := make([]string, 0, 3)
	if result.Title != "" {
		lines = append(lines, result.Title)
	}
	if result.Published != "" {
		lines = append(lines, result.Published)
	}
	if result.Description != "" {
		lines = append(lines, result.Description)
	}
	return strings.Join(lines, "\n")
}

func resolveSiteName(raw string) string {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	return parsed.Hostname()
}
