package search

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go/v3/option"
	"github.com/rs/zerolog"
	"go.mau.fi/util/random"
)

var nopLogger = zerolog.Nop()

// loggerFromContext returns the logger from the context if available,
// otherwise falls back to the provided logger.
func loggerFromContext(ctx context.Context, fallback *zerolog.Logger) *zerolog.Logger {
	if ctx != nil {
		if ctxLog := zerolog.Ctx(ctx); ctxLog != nil && ctxLog.GetLevel() != zerolog.Disabled {
			return ctxLog
		}
	}
	if fallback != nil {
		return fallback
	}
	return &nopLogger
}

func newOutboundRequestID() string {
	return "ws_" + random.String(12)
}

func requestTraceMiddleware(provider string) option.Middleware {
	return func(req *http.Request, next option.MiddlewareNext) (*http.Response, error) {
		traceLog := zerolog.Ctx(req.Context()).With().
			Str("component", "search_http").
			Str("provider", provider).
			Logger()
		start := time.Now()
		requestID := strings.TrimSpace(req.Header.Get("x-request-id"))
		if requestID == "" {
			requestID = newOutboundRequestID()
			req.Header.Set("x-request-id", requestID)
		}
		reqPath := ""
		if req.URL != nil {
			reqPath = req.URL.Path
		}

		resp, err := next(req)
		elapsedMs := time.Since(start).Milliseconds()
		if err != nil {
			traceLog.Debug().
				Err(err).
				Str("request_id", requestID).
				Str("request_path", reqPath).
				Int64("duration_ms", elapsedMs).
				Msg("Search HTTP request failed")
			return nil, err
		}
		event := traceLog.Debug().
			Str("request_id", requestID).
			Str("request_path", reqPath).
			Int("status_code", resp.StatusCode).
			Int64("duration_ms", elapsedMs)
		if upstream := strings.TrimSpace(resp.Header.Get("x-request-id")); upstream != "" {
			event = event.Str("upstream_request_id", upstream)
		}
		event.Msg("Search HTTP response")
		return resp, nil
	}
}
