package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteZhipuMCPSearch(t *testing.T) {
	var gotServer, gotTool string
	var gotArgs map[string]any
	call := func(ctx context.Context, server, tool string, args any) (any, error) {
		gotServer, gotTool = server, tool
		gotArgs, _ = args.(map[string]any)
		return map[string]any{
			"items": []any{
				map[string]any{"title": "T1", "url": "https://one.example.com/a", "snippet": "S1"},
				"not an object",
				map[string]any{"title": "T2", "url": "https://two.example.com/b"},
			},
		}, nil
	}

	results, err := ExecuteZhipuMCPSearch(context.Background(), ZhipuMCPOptions{Query: "q"}, call)
	require.NoError(t, err)
	assert.Equal(t, ZhipuMCPServer, gotServer)
	assert.Equal(t, ZhipuMCPTool, gotTool)
	assert.Equal(t, "q", gotArgs["query"])
	assert.Equal(t, 10, gotArgs["num_results"])
	assert.Equal(t, []ZhipuMCPResult{
		{Title: "T1", URL: "https://one.example.com/a", Snippet: "S1"},
		{Title: "T2", URL: "https://two.example.com/b"},
	}, results)
}

func TestExecuteZhipuMCPSearchShapeMismatch(t *testing.T) {
	for _, payload := range []any{nil, "text", []any{1, 2}, map[string]any{"items": "nope"}, map[string]any{}} {
		call := func(context.Context, string, string, any) (any, error) {
			return payload, nil
		}
		results, err := ExecuteZhipuMCPSearch(context.Background(), ZhipuMCPOptions{Query: "q", NumResults: 3}, call)
		require.NoError(t, err)
		assert.Empty(t, results)
	}
}

func TestExecuteZhipuMCPSearchPropagatesCallError(t *testing.T) {
	boom := errors.New("server unavailable")
	call := func(context.Context, string, string, any) (any, error) {
		return nil, boom
	}
	_, err := ExecuteZhipuMCPSearch(context.Background(), ZhipuMCPOptions{Query: "q"}, call)
	assert.ErrorIs(t, err, boom)

	_, err = ExecuteZhipuMCPSearch(context.Background(), ZhipuMCPOptions{Query: "q"}, nil)
	assert.Error(t, err)
}

func TestZhipuProviderSearchOverMCP(t *testing.T) {
	call := func(ctx context.Context, server, tool string, args any) (any, error) {
		return map[string]any{"items": []any{
			map[string]any{"title": "T1", "url": "https://one.example.com/a", "snippet": "S1"},
		}}, nil
	}
	provider := &zhipuProvider{mcp: call}
	resp, err := provider.Search(context.Background(), Params{Transport: TransportMCP}, Request{Query: "q", Count: 2})
	require.NoError(t, err)
	assert.Equal(t, "T1\nS1", resp.Content)
	assert.Equal(t, []string{"https://one.example.com/a"}, resp.Citations)
	assert.Equal(t, "one.example.com", resp.Results[0].SiteName)

	failing := &zhipuProvider{mcp: func(context.Context, string, string, any) (any, error) {
		return nil, errors.New("boom")
	}}
	_, err = failing.Search(context.Background(), Params{Transport: TransportMCP}, Request{Query: "q"})
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, ProviderZhipu, transportErr.Provider)
}
