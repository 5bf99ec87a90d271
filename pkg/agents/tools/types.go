// Package tools exposes search capabilities as agent-callable tools.
package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// GroupSearch groups tools that query external search backends.
const GroupSearch = "group:search"

// Tool wraps an MCP tool with execution logic and metadata.
type Tool struct {
	mcp.Tool                                                                  // Name, Description, InputSchema
	Type     ToolType                                                         // builtin, mcp
	Group    string                                                           // group:search, etc.
	Execute  func(ctx context.Context, input map[string]any) (*Result, error) // never returns a nil result without an error
}

// ToolType categorizes tools by their execution model.
type ToolType string

const (
	// ToolTypeBuiltin are tools implemented locally.
	ToolTypeBuiltin ToolType = "builtin"
	// ToolTypeMCP are tools from MCP servers.
	ToolTypeMCP ToolType = "mcp"
)

// Result is the uniform envelope returned to the calling agent.
type Result struct {
	Status  ResultStatus   `json:"status"`
	Content []ContentBlock `json:"content,omitempty"`
	Details map[string]any `json:"details,omitempty"` // Structured metadata for parsing
	Error   string         `json:"error,omitempty"`
}

// Text returns the first text block, or the error message if status is error.
func (r *Result) Text() string {
	if r.Status == ResultError && r.Error != "" {
		return r.Error
	}
	for _, block := range r.Content {
		if block.Type == "text" && block.Text != "" {
			return block.Text
		}
	}
	return ""
}

// ContentBlock is one block of tool output.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// ResultStatus indicates the outcome of tool execution.
type ResultStatus string

const (
	ResultSuccess ResultStatus = "success"
	ResultError   ResultStatus = "error"
)

// ToMCPTool converts a Tool to its underlying mcp.Tool.
func (t *Tool) ToMCPTool() mcp.Tool {
	return t.Tool
}
