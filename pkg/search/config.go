package search

import "strings"

const (
	ProviderBrave      = "brave"
	ProviderZhipu      = "zhipu"
	ProviderPerplexity = "perplexity"
	ProviderGrok       = "grok"

	DefaultProvider    = ProviderBrave
	DefaultSearchCount = 5
	MaxSearchCount     = 10
	DefaultTimeoutSecs = 30

	DefaultBraveBaseURL      = "https://api.search.brave.com/res/v1/web/search"
	DefaultZhipuBaseURL      = "https://open.bigmodel.cn/api/paas/v4"
	DefaultZhipuMCPEndpoint  = "https://open.bigmodel.cn/api/mcp/web_search_prime/mcp"
	DefaultPerplexityBaseURL = "https://api.perplexity.ai"
	DefaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	DefaultGrokBaseURL       = "https://api.x.ai/v1"

	DefaultPerplexityModel = "perplexity/sonar-pro"
	DefaultGrokModel       = "grok-4-1-fast"

	TransportHTTP = "http"
	TransportMCP  = "mcp"
)

// Root mirrors the top of the host configuration document. Only the
// tools.web.search subtree is read.
type Root struct {
	Tools struct {
		Web struct {
			Search *Config `yaml:"search" json:"search"`
		} `yaml:"web" json:"web"`
	} `yaml:"tools" json:"tools"`
}

// Config is the tools.web.search configuration slice.
type Config struct {
	Enabled         *bool  `yaml:"enabled" json:"enabled,omitempty"`
	Provider        string `yaml:"provider" json:"provider,omitempty"`
	APIKey          string `yaml:"apiKey" json:"apiKey,omitempty"`
	MaxResults      int    `yaml:"maxResults" json:"maxResults,omitempty"`
	TimeoutSecs     int    `yaml:"timeoutSeconds" json:"timeoutSeconds,omitempty"`
	CacheTtlMinutes int    `yaml:"cacheTtlMinutes" json:"cacheTtlMinutes,omitempty"`

	Zhipu      *ProviderConfig `yaml:"zhipu" json:"zhipu,omitempty"`
	Perplexity *ProviderConfig `yaml:"perplexity" json:"perplexity,omitempty"`
	Grok       *ProviderConfig `yaml:"grok" json:"grok,omitempty"`
}

// ProviderConfig holds the per-provider connection settings. Fields that do
// not apply to a provider are ignored by it.
type ProviderConfig struct {
	APIKey          string `yaml:"apiKey" json:"apiKey,omitempty"`
	BaseURL         string `yaml:"baseUrl" json:"baseUrl,omitempty"`
	Model           string `yaml:"model" json:"model,omitempty"`
	InlineCitations *bool  `yaml:"inlineCitations" json:"inlineCitations,omitempty"`

	// Zhipu only.
	Transport   string `yaml:"transport" json:"transport,omitempty"`
	MCPEndpoint string `yaml:"mcpEndpoint" json:"mcpEndpoint,omitempty"`
}

func (p *ProviderConfig) apiKey() string {
	if p == nil {
		return ""
	}
	return p.APIKey
}

func (p *ProviderConfig) baseURL() string {
	if p == nil {
		return ""
	}
	return p.BaseURL
}

func (p *ProviderConfig) model() string {
	if p == nil {
		return ""
	}
	return p.Model
}

// IsEnabled reports whether web search is turned on. Search is enabled unless
// the configuration explicitly says otherwise.
func (c *Config) IsEnabled() bool {
	if c == nil {
		return true
	}
	return isEnabled(c.Enabled, true)
}

// ProviderName returns the configured provider tag, lowercased, or the default.
func (c *Config) ProviderName() string {
	if c == nil {
		return DefaultProvider
	}
	name := strings.ToLower(strings.TrimSpace(c.Provider))
	if name == "" {
		return DefaultProvider
	}
	return name
}

// ProviderSlice returns the config slice for the given provider tag, or nil.
func (c *Config) ProviderSlice(name string) *ProviderConfig {
	if c == nil {
		return nil
	}
	switch name {
	case ProviderZhipu:
		return c.Zhipu
	case ProviderPerplexity:
		return c.Perplexity
	case ProviderGrok:
		return c.Grok
	case ProviderBrave:
		return &ProviderConfig{APIKey: c.APIKey}
	}
	return nil
}

func (c *Config) timeoutSecs() int {
	if c == nil || c.TimeoutSecs <= 0 {
		return DefaultTimeoutSecs
	}
	return c.TimeoutSecs
}

func (c *Config) defaultCount() int {
	if c == nil || c.MaxResults <= 0 {
		return DefaultSearchCount
	}
	return clampCount(c.MaxResults)
}

func (c *Config) cacheTTLSecs() int {
	if c == nil || c.CacheTtlMinutes <= 0 {
		return 0
	}
	return c.CacheTtlMinutes * 60
}

func isEnabled(flag *bool, fallback bool) bool {
	if flag == nil {
		return fallback
	}
	return *flag
}

func clampCount(value int) int {
	if value <= 0 {
		return DefaultSearchCount
	}
	if value > MaxSearchCount {
		return MaxSearchCount
	}
	return value
}
