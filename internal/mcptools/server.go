// Package mcptools exposes the calculator to MCP clients over stdio.
package mcptools

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"go-chi-calculator/internal/display"
	"go-chi-calculator/internal/engine"
	"go-chi-calculator/internal/history"
	"go-chi-calculator/internal/session"
)

// Calculator is the state shared by the tools: one keypad session that
// lives as long as the MCP connection.
type Calculator struct {
	engine    engine.Engine
	sessions  *session.Store
	sessionID string
	recorder  history.Recorder
}

// NewCalculator starts a cleared session. A nil recorder keeps no history.
func NewCalculator(eng engine.Engine, recorder history.Recorder) *Calculator {
	if recorder == nil {
		recorder = history.Nop{}
	}
	sessions := session.NewStore()
	id, _ := sessions.Create()

	return &Calculator{
		engine:    eng,
		sessions:  sessions,
		sessionID: id,
		recorder:  recorder,
	}
}

// NewServer creates an MCP server with every calculator tool registered.
func NewServer(calc *Calculator) *server.MCPServer {
	s := server.NewMCPServer(serverName, serverVersion)

	pressKeys := NewPressKeysTool(calc)
	s.AddTool(pressKeys.GetTool(), pressKeys.Handle)

	show := NewDisplayTool(calc)
	s.AddTool(show.GetTool(), show.Handle)

	evaluate := NewEvaluateTool()
	s.AddTool(evaluate.GetTool(), evaluate.Handle)

	hist := NewHistoryTool(calc)
	s.AddTool(hist.GetTool(), hist.Handle)

	return s
}

// jsonResult renders v as an indented JSON text result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

func (c *Calculator) view() (display.View, error) {
	s, err := c.sessions.Get(c.sessionID)
	if err != nil {
		return display.View{}, err
	}
	return display.Render(s), nil
}
