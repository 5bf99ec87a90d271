package search

import (
	"os"
	"strings"

	"github.com/beeper/websearch/pkg/shared/stringutil"
)

const (
	EnvZhipuAPIKey      = "ZHIPU_API_KEY"
	EnvXAIAPIKey        = "XAI_API_KEY"
	EnvPerplexityAPIKey = "PERPLEXITY_API_KEY"
	EnvOpenRouterAPIKey = "OPENROUTER_API_KEY"
	EnvBraveAPIKey      = "BRAVE_API_KEY"
)

// Env is a read-only view of environment variables.
type Env interface {
	Getenv(key string) string
}

// OSEnv reads from the process environment.
type OSEnv struct{}

func (OSEnv) Getenv(key string) string {
	return os.Getenv(key)
}

// MapEnv is a fixed environment, mostly useful in tests.
type MapEnv map[string]string

func (m MapEnv) Getenv(key string) string {
	return m[key]
}

func envValue(env Env, key string) string {
	if env == nil {
		env = OSEnv{}
	}
	return strings.TrimSpace(env.Getenv(key))
}

// configOrEnv returns the trimmed config value when set, otherwise the env
// value. An empty result means no key is available.
func configOrEnv(cfg *ProviderConfig, env Env, key string) string {
	return stringutil.FirstNonEmpty(cfg.apiKey(), envValue(env, key))
}
