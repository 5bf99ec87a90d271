package toolspec

// Shared tool schema definitions used by the agent tool and the CLI.

const (
	WebSearchName        = "web_search"
	WebSearchDescription = "Search the web using the configured provider. Returns a summary with citations. Supports result count, freshness filters (pd, pw, pm, py or YYYY-MM-DDtoYYYY-MM-DD), country and language hints."
)

// WebSearchSchema returns the JSON schema for the web search tool.
func WebSearchSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": "Search query string.",
			},
			"count": map[string]any{
				"type":        "number",
				"description": "Number of results to return (1-10).",
				"minimum":     1,
				"maximum":     10,
			},
			"freshness": map[string]any{
				"type":        "string",
				"description": "Filter by discovery time: 'pd' (past day), 'pw' (past week), 'pm' (past month), 'py' (past year) or a range 'YYYY-MM-DDtoYYYY-MM-DD'.",
			},
			"country": map[string]any{
				"type":        "string",
				"description": "2-letter country code for region-specific results, e.g. 'DE' or 'US'.",
			},
			"search_lang": map[string]any{
				"type":        "string",
				"description": "ISO language code for search results, e.g. 'de' or 'en'.",
			},
			"ui_lang": map[string]any{
				"type":        "string",
				"description": "ISO language code for UI elements.",
			},
		},
		"required": []string{"query"},
	}
}
