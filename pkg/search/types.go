package search

// Request represents a normalized web search request.
type Request struct {
	Query      string
	Count      int
	Freshness  string
	Country    string
	SearchLang string
	UILang     string
}

// Result is a single structured search hit, kept for providers that return
// ranked result lists.
type Result struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
	Published   string `json:"published,omitempty"`
	SiteName    string `json:"siteName,omitempty"`
}

// Response is the normalized search response shared by all providers.
type Response struct {
	Provider        string   `json:"provider"`
	Query           string   `json:"query"`
	Content         string   `json:"content"`
	Citations       []string `json:"citations"`
	TookMs          int64    `json:"tookMs"`
	Cached          bool     `json:"cached,omitempty"`
	Model           string   `json:"model,omitempty"`
	Count           int      `json:"count,omitempty"`
	Results         []Result `json:"results,omitempty"`
	InlineCitations any      `json:"inlineCitations,omitempty"`
}

// KeySource describes where a resolved API key came from.
type KeySource string

const (
	KeySourceNone          KeySource = ""
	KeySourceConfig        KeySource = "config"
	KeySourceEnv           KeySource = "env"
	KeySourcePerplexityEnv KeySource = "perplexity_env"
	KeySourceOpenRouterEnv KeySource = "openrouter_env"
)

// Params are the effective connection parameters for one provider call.
// An empty APIKey means no key could be resolved.
type Params struct {
	APIKey          string
	KeySource       KeySource
	BaseURL         string
	Model           string
	InlineCitations bool
	Transport       string
	TimeoutSecs     int
}
