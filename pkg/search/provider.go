package search

import (
	"context"
	"sort"
)

// Provider performs web searches for a given backend.
type Provider interface {
	Name() string
	// ResolveParams computes the effective key, base URL and model without
	// touching the network.
	ResolveParams(cfg *Config, env Env) Params
	// MissingKeyError describes how to supply a key for this provider.
	MissingKeyError() *ConfigError
	// Search builds the provider request, performs it and normalizes the
	// response. TookMs is filled in by the caller.
	Search(ctx context.Context, params Params, req Request) (*Response, error)
}

// Registry stores named providers.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// NewDefaultRegistry registers every built-in provider. mcp may be nil, in
// which case the Zhipu MCP transport reports an error when selected.
func NewDefaultRegistry(mcp MCPCaller) *Registry {
	registry := NewRegistry()
	registry.Register(&braveProvider{})
	registry.Register(&zhipuProvider{mcp: mcp})
	registry.Register(&perplexityProvider{})
	registry.Register(&grokProvider{})
	return registry
}

// Register adds or replaces a provider by name.
func (r *Registry) Register(provider Provider) {
	if r == nil || provider == nil {
		return
	}
	if r.providers == nil {
		r.providers = make(map[string]Provider)
	}
	r.providers[provider.Name()] = provider
}

// Get returns a provider by name.
func (r *Registry) Get(name string) Provider {
	if r == nil {
		return nil
	}
	return r.providers[name]
}

// Names returns registered provider names in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.providers))
	for name := range r.providers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
