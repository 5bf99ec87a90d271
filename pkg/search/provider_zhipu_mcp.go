package search

import (
	"context"
	"errors"
	"strings"
)

const (
	ZhipuMCPServer = "zhipu-mcp"
	ZhipuMCPTool   = "web_search_prime"

	defaultZhipuMCPResults = 10
)

// MCPCaller invokes a tool on a named MCP server and returns the decoded
// payload (usually a map[string]any).
type MCPCaller func(ctx context.Context, server, tool string, args any) (any, error)

// ZhipuMCPResult is one item of a web_search_prime response.
type ZhipuMCPResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// ZhipuMCPOptions are the arguments of ExecuteZhipuMCPSearch.
type ZhipuMCPOptions struct {
	Query      string
	NumResults int
}

// ExecuteZhipuMCPSearch calls web_search_prime on the zhipu-mcp server. A
// payload that is not an object with an items array yields no results; an
// error from the call itself is returned as is.
func ExecuteZhipuMCPSearch(ctx context.Context, opts ZhipuMCPOptions, call MCPCaller) ([]ZhipuMCPResult, error) {
	if call == nil {
		return nil, errors.New("no MCP client configured")
	}
	numResults := opts.NumResults
	if numResults <= 0 {
		numResults = defaultZhipuMCPResults
	}
	raw, err := call(ctx, ZhipuMCPServer, ZhipuMCPTool, map[string]any{
		"query":       opts.Query,
		"num_results": numResults,
	})
	if err != nil {
		return nil, err
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return []ZhipuMCPResult{}, nil
	}
	items, _ := obj["items"].([]any)
	results := make([]ZhipuMCPResult, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		results = append(results, ZhipuMCPResult{
			Title:   stringField(entry, "title"),
			URL:     stringField(entry, "url"),
			Snippet: stringField(entry, "snippet"),
		})
	}
	return results, nil
}

func (p *zhipuProvider) searchMCP(ctx context.Context, req Request) (*Response, error) {
	items, err := ExecuteZhipuMCPSearch(ctx, ZhipuMCPOptions{Query: req.Query, NumResults: req.Count}, p.mcp)
	if err != nil {
		return nil, transportError(ProviderZhipu, err)
	}
	blocks := make([]string, 0, len(items))
	citations := make([]string, 0, len(items))
	results := make([]Result, 0, len(items))
	for _, item := range items {
		lines := make([]string, 0, 2)
		if item.Title != "" {
			lines = append(lines, item.Title)
		}
		if item.Snippet != "" {
			lines = append(lines, item.Snippet)
		}
		if len(lines) > 0 {
			blocks = append(blocks, strings.Join(lines, "\n"))
		}
		if item.URL != "" {
			citations = append(citations, item.URL)
		}
		results = append(results, Result{
			Title:       item.Title,
			URL:         item.URL,
			Description: item.Snippet,
			SiteName:    resolveSiteName(item.URL),
		})
	}
	return &Response{
		Provider:  ProviderZhipu,
		Query:     req.Query,
		Content:   strings.Join(blocks, "\n\n"),
		Citations: citations,
		Count:     len(results),
		Results:   results,
	}, nil
}

func stringField(m map[string]any, key string) string {
	value, _ := m[key].(string)
	return strings.TrimSpace(value)
}
