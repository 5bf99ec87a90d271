package search

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/tidwall/gjson"

	"github.com/beeper/websearch/pkg/shared/stringutil"
)

const perplexityDirectHost = "api.perplexity.ai"

// PerplexityKeyKind is the backend implied by the shape of an API key.
type PerplexityKeyKind string

const (
	PerplexityKeyUnknown    PerplexityKeyKind = ""
	PerplexityKeyDirect     PerplexityKeyKind = "direct"
	PerplexityKeyOpenRouter PerplexityKeyKind = "openrouter"
)

var (
	perplexityKeyPrefixes = []string{"pplx-"}
	openRouterKeyPrefixes = []string{"sk-or-v1-"}
)

type perplexityProvider struct{}

// InferPerplexityBaseURLFromAPIKey guesses the backend from the key prefix.
// Unrecognized formats return PerplexityKeyUnknown.
func InferPerplexityBaseURLFromAPIKey(apiKey string) PerplexityKeyKind {
	normalized := strings.ToLower(strings.TrimSpace(apiKey))
	if normalized == "" {
		return PerplexityKeyUnknown
	}
	if hasAnyPrefix(normalized, perplexityKeyPrefixes) {
		return PerplexityKeyDirect
	}
	if hasAnyPrefix(normalized, openRouterKeyPrefixes) {
		return PerplexityKeyOpenRouter
	}
	return PerplexityKeyUnknown
}

// ResolvePerplexityAPIKey returns the key and where it came from: config,
// then PERPLEXITY_API_KEY, then OPENROUTER_API_KEY.
func ResolvePerplexityAPIKey(cfg *ProviderConfig, env Env) (string, KeySource) {
	if key := strings.TrimSpace(cfg.apiKey()); key != "" {
		return key, KeySourceConfig
	}
	if key := envValue(env, EnvPerplexityAPIKey); key != "" {
		return key, KeySourcePerplexityEnv
	}
	if key := envValue(env, EnvOpenRouterAPIKey); key != "" {
		return key, KeySourceOpenRouterEnv
	}
	return "", KeySourceNone
}

// ResolvePerplexityBaseURL picks the host for a Perplexity-compatible call.
// An explicit baseUrl always wins. Otherwise the key source decides, and for
// keys from config the key prefix does; OpenRouter is the fallback.
func ResolvePerplexityBaseURL(cfg *ProviderConfig, source KeySource, apiKey string) string {
	if baseURL := strings.TrimSpace(cfg.baseURL()); baseURL != "" {
		return baseURL
	}
	switch source {
	case KeySourcePerplexityEnv:
		return DefaultPerplexityBaseURL
	case KeySourceOpenRouterEnv:
		return DefaultOpenRouterBaseURL
	case KeySourceConfig:
		if InferPerplexityBaseURLFromAPIKey(apiKey) == PerplexityKeyDirect {
			return DefaultPerplexityBaseURL
		}
	}
	return DefaultOpenRouterBaseURL
}

// IsDirectPerplexityBaseURL reports whether baseURL points at the Perplexity
// API itself rather than a proxy such as OpenRouter.
func IsDirectPerplexityBaseURL(baseURL string) bool {
	parsed, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || parsed.Hostname() == "" {
		return false
	}
	return strings.EqualFold(parsed.Hostname(), perplexityDirectHost)
}

// ResolvePerplexityRequestModel strips a "provider/" prefix from the model
// when talking to the direct API, which rejects prefixed names.
func ResolvePerplexityRequestModel(baseURL, model string) string {
	if !IsDirectPerplexityBaseURL(baseURL) {
		return model
	}
	idx := strings.Index(model, "/")
	if idx <= 0 || idx == len(model)-1 {
		return model
	}
	return model[idx+1:]
}

// ResolvePerplexityModel returns the configured model or the default.
func ResolvePerplexityModel(cfg *ProviderConfig) string {
	return stringutil.FirstNonEmpty(cfg.model(), DefaultPerplexityModel)
}

func (p *perplexityProvider) Name() string {
	return ProviderPerplexity
}

func (p *perplexityProvider) ResolveParams(cfg *Config, env Env) Params {
	slice := cfg.ProviderSlice(ProviderPerplexity)
	apiKey, source := ResolvePerplexityAPIKey(slice, env)
	baseURL := ResolvePerplexityBaseURL(slice, source, apiKey)
	return Params{
		APIKey:      apiKey,
		KeySource:   source,
		BaseURL:     baseURL,
		Model:       ResolvePerplexityRequestModel(baseURL, ResolvePerplexityModel(slice)),
		TimeoutSecs: cfg.timeoutSecs(),
	}
}

func (p *perplexityProvider) MissingKeyError() *ConfigError {
	return missingKeyError(ProviderPerplexity, "missing_perplexity_api_key",
		"web_search (perplexity) needs an API key. Set PERPLEXITY_API_KEY or OPENROUTER_API_KEY in the environment, or configure tools.web.search.perplexity.apiKey.")
}

func (p *perplexityProvider) Search(ctx context.Context, params Params, req Request) (*Response, error) {
	client := openai.NewClient(
		option.WithAPIKey(params.APIKey),
		option.WithBaseURL(params.BaseURL),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(time.Duration(params.TimeoutSecs)*time.Second),
		option.WithMiddleware(requestTraceMiddleware(ProviderPerplexity)),
	)
	completion, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(params.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(req.Query),
		},
	})
	if err != nil {
		return nil, transportError(ProviderPerplexity, err)
	}
	content := ""
	if len(completion.Choices) > 0 {
		content = strings.TrimSpace(completion.Choices[0].Message.Content)
	}
	if content == "" {
		content = noResponseContent
	}
	return &Response{
		Provider:  ProviderPerplexity,
		Query:     req.Query,
		Content:   content,
		Citations: citationsFrom(gjson.Get(completion.RawJSON(), "citations")),
		Model:     params.Model,
	}, nil
}

func hasAnyPrefix(value string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}
