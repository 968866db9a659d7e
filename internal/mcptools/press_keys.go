package mcptools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"go-chi-calculator/internal/display"
	"go-chi-calculator/internal/engine"
	"go-chi-calculator/internal/history"
	"go-chi-calculator/internal/observability"
)

// PressKeysTool feeds keypad keys to the session calculator
type PressKeysTool struct {
	calc *Calculator
}

// NewPressKeysTool creates a new press keys tool
func NewPressKeysTool(calc *Calculator) *PressKeysTool {
	return &PressKeysTool{calc: calc}
}

// PressKeysResult is what the tool reports back.
type PressKeysResult struct {
	View    display.View `json:"view"`
	Ignored []string     `json:"ignored,omitempty"`
}

// GetTool returns the MCP tool definition
func (t *PressKeysTool) GetTool() mcp.Tool {
	tool := mcp.NewTool(ToolPressKeys,
		mcp.WithDescription("Press calculator keys in order and return the display. "+
			"Keys are separated by spaces: digits, '.', '+', '-', '*', '/', '=', 'AC', 'CE', 'backspace'."),
		mcp.WithString("keys", mcp.Required(), mcp.Description("Space-separated keys, e.g. \"1 2 + 3 =\"")),
	)
	return tool
}

// Handle processes the tool request
func (t *PressKeysTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	keys := strings.Fields(mcp.ParseString(req, "keys", ""))
	if len(keys) == 0 {
		return mcp.NewToolResultError("keys parameter is required"), nil
	}

	var ignored []string
	var completed []history.Entry

	s, err := t.calc.sessions.Apply(t.calc.sessionID, func(s engine.State) (engine.State, error) {
		for i, key := range keys {
			next, err := t.calc.engine.Press(s, key)
			switch {
			case errors.Is(err, engine.ErrUnknownKey):
				return s, fmt.Errorf("key %d: %w", i, err)
			case errors.Is(err, engine.ErrMalformedExpression):
				ignored = append(ignored, key)
			}

			if next.Evaluations != s.Evaluations {
				completed = append(completed, history.Entry{
					SessionID:     t.calc.sessionID,
					Expression:    engine.JoinTokens(next.LastEvaluated),
					Result:        next.Operand,
					Indeterminate: next.Indeterminate(),
				})
			}
			s = next
		}
		return s, nil
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to press keys: %v", err)), nil
	}

	for _, entry := range completed {
		if err := t.calc.recorder.Record(ctx, entry); err != nil {
			observability.Logger.Warn("recording calculation failed", zap.Error(err))
		}
	}

	return jsonResult(PressKeysResult{View: display.Render(s), Ignored: ignored})
}
