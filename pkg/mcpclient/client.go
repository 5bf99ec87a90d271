// Package mcpclient calls tools on remote MCP servers over the streamable
// HTTP transport.
package mcpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const defaultTimeoutSecs = 30

// Server describes one MCP server reachable by name.
type Server struct {
	Name        string
	Endpoint    string
	Token       string
	TimeoutSecs int

	// Transport overrides the streamable HTTP transport, e.g. for in-process servers.
	Transport mcp.Transport
}

// Client opens a short-lived session per call.
type Client struct {
	servers map[string]Server
}

func New(servers ...Server) *Client {
	c := &Client{servers: make(map[string]Server, len(servers))}
	for _, server := range servers {
		c.servers[server.Name] = server
	}
	return c
}

type authRoundTripper struct {
	base          http.RoundTripper
	authorization string
}

func (rt *authRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	base := rt.base
	if base == nil {
		base = http.DefaultTransport
	}
	if rt.authorization == "" {
		return base.RoundTrip(req)
	}
	cloned := req.Clone(req.Context())
	cloned.Header = req.Header.Clone()
	if strings.TrimSpace(cloned.Header.Get("Authorization")) == "" {
		cloned.Header.Set("Authorization", rt.authorization)
	}
	return base.RoundTrip(cloned)
}

func (s Server) timeout() time.Duration {
	if s.TimeoutSecs <= 0 {
		return defaultTimeoutSecs * time.Second
	}
	return time.Duration(s.TimeoutSecs) * time.Second
}

func (s Server) transport() (mcp.Transport, error) {
	if s.Transport != nil {
		return s.Transport, nil
	}
	if strings.TrimSpace(s.Endpoint) == "" {
		return nil, fmt.Errorf("MCP server %q has no endpoint", s.Name)
	}
	authorization := ""
	if token := strings.TrimSpace(s.Token); token != "" {
		authorization = "Bearer " + token
	}
	return &mcp.StreamableClientTransport{
		Endpoint: s.Endpoint,
		HTTPClient: &http.Client{
			Timeout:   s.timeout(),
			Transport: &authRoundTripper{base: http.DefaultTransport, authorization: authorization},
		},
		MaxRetries: 1,
	}, nil
}

// Call invokes tool on the named server and decodes its result: structured
// content when present, otherwise a single text item parsed as JSON when
// possible, otherwise the raw text.
func (c *Client) Call(ctx context.Context, serverName, tool string, args any) (any, error) {
	server, ok := c.servers[serverName]
	if !ok {
		return nil, fmt.Errorf("unknown MCP server %q", serverName)
	}
	transport, err := server.transport()
	if err != nil {
		return nil, err
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, server.timeout())
		defer cancel()
	}

	client := mcp.NewClient(&mcp.Implementation{Name: "websearch", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect MCP server %q: %w", serverName, err)
	}
	defer session.Close()

	result, err := session.CallTool(ctx, &mcp.CallToolParams{Name: tool, Arguments: args})
	if err != nil {
		return nil, fmt.Errorf("MCP call failed for %s on %s: %w", tool, serverName, err)
	}
	return decodeResult(result)
}

func decodeResult(result *mcp.CallToolResult) (any, error) {
	if result == nil {
		return nil, nil
	}
	text := joinedText(result.Content)
	if result.IsError {
		if text == "" {
			text = "tool reported an error"
		}
		return nil, errors.New(text)
	}
	if result.StructuredContent != nil {
		return result.StructuredContent, nil
	}
	if text == "" {
		return nil, nil
	}
	var parsed any
	if err := json.Unmarshal([]byte(text), &parsed); err == nil {
		return parsed, nil
	}
	return text, nil
}

func joinedText(content []mcp.Content) string {
	parts := make([]string, 0, len(content))
	for _, item := range content {
		if textContent, ok := item.(*mcp.TextContent); ok {
			if text := strings.TrimSpace(textContent.Text); text != "" {
				parts = append(parts, text)
			}
		}
	}
	return strings.Join(parts, "\n")
}
