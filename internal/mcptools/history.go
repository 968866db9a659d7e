package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 500
)

// HistoryTool lists the calculations completed in this session
type HistoryTool struct {
	calc *Calculator
}

// NewHistoryTool creates a new history tool
func NewHistoryTool(calc *Calculator) *HistoryTool {
	return &HistoryTool{calc: calc}
}

// GetTool returns the MCP tool definition
func (t *HistoryTool) GetTool() mcp.Tool {
	return mcp.NewTool(ToolHistory,
		mcp.WithDescription("List recent calculations of this session, newest first"),
		mcp.WithNumber("limit", mcp.Description("Maximum number of entries (default 20, at most 500)")),
	)
}

// Handle processes the tool request
func (t *HistoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := mcp.ParseInt(req, "limit", defaultHistoryLimit)
	switch {
	case limit <= 0:
		limit = defaultHistoryLimit
	case limit > maxHistoryLimit:
		limit = maxHistoryLimit
	}

	entries, err := t.calc.recorder.List(ctx, t.calc.sessionID, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list history: %v", err)), nil
	}

	if len(entries) == 0 {
		return mcp.NewToolResultText("No calculations recorded"), nil
	}

	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = fmt.Sprintf("%s = %s", e.Expression, e.Result)
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}
