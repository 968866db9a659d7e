package mcptools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"go-chi-calculator/internal/display"
	"go-chi-calculator/internal/engine"
)

// EvaluateTool evaluates a flat expression without touching the session
type EvaluateTool struct{}

// NewEvaluateTool creates a new evaluate tool
func NewEvaluateTool() *EvaluateTool {
	return &EvaluateTool{}
}

// GetTool returns the MCP tool definition
func (t *EvaluateTool) GetTool() mcp.Tool {
	return mcp.NewTool(ToolEvaluate,
		mcp.WithDescription("Evaluate a flat arithmetic expression with × and ÷ before + and -. No parentheses."),
		mcp.WithString("expression", mcp.Required(), mcp.Description("Expression such as \"2 + 3 * 4\"")),
	)
}

// Handle processes the tool request
func (t *EvaluateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	expr := mcp.ParseString(req, "expression", "")
	if expr == "" {
		return mcp.NewToolResultError("expression parameter is required"), nil
	}

	tokens, err := engine.ParseExpression(expr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Malformed expression: %v", err)), nil
	}

	result, err := engine.Evaluate(tokens)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Malformed expression: %v", err)), nil
	}

	text := fmt.Sprintf("%s = %s", display.FormatExpression(tokens), display.FormatNumber(engine.FormatResult(result)))
	if engine.CheckResult(result) != nil {
		text += " (not a finite number)"
	}
	return mcp.NewToolResultText(text), nil
}
