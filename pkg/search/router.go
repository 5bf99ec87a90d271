package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options carries the collaborators of Search. The zero value is usable:
// it reads the process environment and uses the built-in providers.
type Options struct {
	Env      Env
	Registry *Registry
	Cache    *Cache
	Metrics  *Metrics
	Logger   *zerolog.Logger
}

// Search runs req against the provider selected by cfg. Configuration
// problems are returned as *ConfigError before any network access, provider
// failures as *TransportError.
func Search(ctx context.Context, req Request, cfg *Config, opts Options) (*Response, error) {
	log := loggerFromContext(ctx, opts.Logger)
	if !cfg.IsEnabled() {
		return nil, &ConfigError{Code: "search_disabled", Message: "web_search is disabled", Err: ErrSearchDisabled}
	}
	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" {
		return nil, ErrMissingQuery
	}
	req = normalizeRequest(req, cfg, log)

	registry := opts.Registry
	if registry == nil {
		registry = NewDefaultRegistry(nil)
	}
	name := cfg.ProviderName()
	provider := registry.Get(name)
	if provider == nil {
		opts.Metrics.observe(name, outcomeConfigError, 0)
		return nil, unknownProviderError(name)
	}
	params := provider.ResolveParams(cfg, opts.Env)
	if params.APIKey == "" {
		opts.Metrics.observe(name, outcomeConfigError, 0)
		return nil, provider.MissingKeyError()
	}

	call := func(ctx context.Context) (*Response, error) {
		return runProvider(ctx, provider, params, req, opts.Metrics, log)
	}
	if ttl := cfg.cacheTTLSecs(); opts.Cache != nil && ttl > 0 {
		resp, hit, err := opts.Cache.Do(ctx, cacheKey(name, req), time.Duration(ttl)*time.Second, func(shared context.Context) (*Response, error) {
			shared, cancel := context.WithTimeout(shared, time.Duration(params.TimeoutSecs)*time.Second)
			defer cancel()
			return call(shared)
		})
		if hit {
			opts.Metrics.observe(name, outcomeCached, 0)
			log.Debug().Str("provider", name).Msg("Web search served from cache")
		}
		return resp, err
	}
	return call(ctx)
}

func runProvider(ctx context.Context, provider Provider, params Params, req Request, metrics *Metrics, log *zerolog.Logger) (*Response, error) {
	name := provider.Name()
	log.Debug().
		Str("provider", name).
		Int("query_len", len(req.Query)).
		Int("count", req.Count).
		Str("freshness", req.Freshness).
		Msg("Starting web search")
	start := time.Now()
	resp, err := provider.Search(ctx, params, req)
	elapsed := time.Since(start)
	if err == nil && resp == nil {
		err = transportError(name, fmt.Errorf("provider %s returned empty response", name))
	}
	if err != nil {
		var cfgErr *ConfigError
		if errors.As(err, &cfgErr) {
			metrics.observe(name, outcomeConfigError, elapsed)
			return nil, err
		}
		metrics.observe(name, outcomeTransportError, elapsed)
		log.Warn().Err(err).
			Str("provider", name).
			Int64("took_ms", elapsed.Milliseconds()).
			Msg("Web search failed")
		return nil, transportError(name, err)
	}
	metrics.observe(name, outcomeOK, elapsed)

	if resp.Provider == "" {
		resp.Provider = name
	}
	if resp.Query == "" {
		resp.Query = req.Query
	}
	if resp.Citations == nil {
		resp.Citations = []string{}
	}
	if resp.Count == 0 {
		resp.Count = len(resp.Results)
	}
	resp.TookMs = elapsed.Milliseconds()
	resp.Cached = false
	log.Debug().
		Str("provider", name).
		Int("citations", len(resp.Citations)).
		Int64("took_ms", resp.TookMs).
		Msg("Finished web search")
	return resp, nil
}

func normalizeRequest(req Request, cfg *Config, log *zerolog.Logger) Request {
	if req.Count <= 0 {
		req.Count = cfg.defaultCount()
	} else {
		req.Count = clampCount(req.Count)
	}
	if req.Freshness != "" {
		normalized, ok := NormalizeFreshness(req.Freshness)
		if !ok {
			log.Debug().Str("freshness", req.Freshness).Msg("Ignoring invalid freshness value")
		}
		req.Freshness = normalized
	}
	req.Country = strings.TrimSpace(req.Country)
	req.SearchLang = strings.TrimSpace(req.SearchLang)
	req.UILang = strings.TrimSpace(req.UILang)
	return req
}
