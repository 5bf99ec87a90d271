package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/beeper/websearch/pkg/shared/httputil"
	"github.com/beeper/websearch/pkg/shared/stringutil"
)

// noResponseContent stands in for an answer-style provider that returned no text.
const noResponseContent = "No response"

type grokProvider struct{}

// ResolveGrokAPIKey returns the configured key, then XAI_API_KEY, then "".
func ResolveGrokAPIKey(cfg *ProviderConfig, env Env) string {
	return configOrEnv(cfg, env, EnvXAIAPIKey)
}

// ResolveGrokModel returns the configured model or grok-4-1-fast.
func ResolveGrokModel(cfg *ProviderConfig) string {
	return stringutil.FirstNonEmpty(cfg.model(), DefaultGrokModel)
}

// ResolveGrokInlineCitations defaults to false when unset.
func ResolveGrokInlineCitations(cfg *ProviderConfig) bool {
	if cfg == nil {
		return false
	}
	return isEnabled(cfg.InlineCitations, false)
}

// ExtractGrokContent pulls the answer text out of a Responses API payload.
// output[0].content[0].text wins, then the top-level output_text, then the
// first output_text part of a later message item.
func ExtractGrokContent(raw []byte) string {
	if text := gjson.GetBytes(raw, "output.0.content.0.text").String(); strings.TrimSpace(text) != "" {
		return text
	}
	if text := gjson.GetBytes(raw, "output_text").String(); strings.TrimSpace(text) != "" {
		return text
	}
	for _, item := range gjson.GetBytes(raw, "output").Array() {
		if item.Get("type").String() != "message" {
			continue
		}
		for _, part := range item.Get("content").Array() {
			if part.Get("type").String() != "output_text" {
				continue
			}
			if text := part.Get("text").String(); strings.TrimSpace(text) != "" {
				return text
			}
		}
	}
	return ""
}

func (p *grokProvider) Name() string {
	return ProviderGrok
}

func (p *grokProvider) ResolveParams(cfg *Config, env Env) Params {
	slice := cfg.ProviderSlice(ProviderGrok)
	params := Params{
		APIKey:          ResolveGrokAPIKey(slice, env),
		BaseURL:         stringutil.FirstNonEmpty(slice.baseURL(), DefaultGrokBaseURL),
		Model:           ResolveGrokModel(slice),
		InlineCitations: ResolveGrokInlineCitations(slice),
		TimeoutSecs:     cfg.timeoutSecs(),
	}
	params.KeySource = keySourceFor(slice, params.APIKey)
	return params
}

func (p *grokProvider) MissingKeyError() *ConfigError {
	return missingKeyError(ProviderGrok, "missing_xai_api_key",
		"web_search (grok) needs an xAI API key. Set XAI_API_KEY in the environment, or configure tools.web.search.grok.apiKey.")
}

func (p *grokProvider) Search(ctx context.Context, params Params, req Request) (*Response, error) {
	endpoint := strings.TrimRight(params.BaseURL, "/") + "/responses"
	data, _, err := httputil.PostJSON(ctx, endpoint, bearerHeaders(params.APIKey), buildGrokRequest(params, req), params.TimeoutSecs)
	if err != nil {
		return nil, transportError(ProviderGrok, err)
	}
	if !gjson.ValidBytes(data) {
		return nil, transportError(ProviderGrok, fmt.Errorf("failed to parse results: %w", ErrMalformedResponse))
	}
	content := ExtractGrokContent(data)
	if content == "" {
		content = noResponseContent
	}
	resp := &Response{
		Provider:  ProviderGrok,
		Query:     req.Query,
		Content:   content,
		Citations: citationsFrom(gjson.GetBytes(data, "citations")),
		Model:     params.Model,
	}
	if params.InlineCitations {
		if inline := gjson.GetBytes(data, "inline_citations"); inline.Exists() {
			resp.InlineCitations = inline.Value()
		}
	}
	return resp, nil
}

func buildGrokRequest(params Params, req Request) map[string]any {
	body := map[string]any{
		"model": params.Model,
		"input": []map[string]string{
			{"role": "user", "content": req.Query},
		},
		"tools": []map[string]any{
			{"type": "web_search"},
		},
	}
	if params.InlineCitations {
		body["include"] = []string{"inline_citations"}
	}
	return body
}

// citationsFrom reads a JSON array of citation URLs, accepting either plain
// strings or objects with a url field. Order is preserved.
func citationsFrom(value gjson.Result) []string {
	items := value.Array()
	out := make([]string, 0, len(items))
	for _, item := range items {
		link := item.String()
		if item.IsObject() {
			link = item.Get("url").String()
		}
		if link = strings.TrimSpace(link); link != "" {
			out = append(out, link)
		}
	}
	return out
}
