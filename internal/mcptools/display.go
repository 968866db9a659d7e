package mcptools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// DisplayTool reports the calculator display without pressing anything
type DisplayTool struct {
	calc *Calculator
}

// NewDisplayTool creates a new display tool
func NewDisplayTool(calc *Calculator) *DisplayTool {
	return &DisplayTool{calc: calc}
}

// GetTool returns the MCP tool definition
func (t *DisplayTool) GetTool() mcp.Tool {
	return mcp.NewTool(ToolDisplay,
		mcp.WithDescription("Show the current calculator display, pending expression and highlighted operator"),
	)
}

// Handle processes the tool request
func (t *DisplayTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	v, err := t.calc.view()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to read display: %v", err)), nil
	}
	return jsonResult(v)
}
