package search

import (
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"

	"github.com/beeper/websearch/pkg/shared/httputil"
)

var (
	ErrMissingQuery      = errors.New("missing query")
	ErrSearchDisabled    = errors.New("web search is disabled")
	ErrUnknownProvider   = errors.New("unknown search provider")
	ErrMissingAPIKey     = errors.New("missing api key")
	ErrMalformedResponse = errors.New("malformed response")
)

// ConfigError is returned before any network access when the configuration
// cannot produce a usable provider call.
type ConfigError struct {
	Code     string
	Provider string
	Message  string
	Err      error
}

func (e *ConfigError) Error() string {
	return e.Message
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func unknownProviderError(name string) *ConfigError {
	return &ConfigError{
		Code:     "unknown_search_provider",
		Provider: name,
		Message:  fmt.Sprintf("web_search provider %q is not supported", name),
		Err:      ErrUnknownProvider,
	}
}

func missingKeyError(provider, code, message string) *ConfigError {
	return &ConfigError{
		Code:     code,
		Provider: provider,
		Message:  message,
		Err:      ErrMissingAPIKey,
	}
}

// TransportError wraps a failed provider call: a non-2xx status, a network
// failure, an undecodable body or a failed MCP call.
type TransportError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s search failed (status %d): %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s search failed: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func transportError(provider string, err error) error {
	if err == nil {
		return nil
	}
	var te *TransportError
	if errors.As(err, &te) {
		return err
	}
	out := &TransportError{Provider: provider, Err: err}
	var statusErr *httputil.StatusError
	var apiErr *openai.Error
	switch {
	case errors.As(err, &statusErr):
		out.StatusCode = statusErr.StatusCode
	case errors.As(err, &apiErr):
		out.StatusCode = apiErr.StatusCode
	}
	return out
}
