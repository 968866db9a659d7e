package mcptools

// Tool name prefix for all MCP tools
const ToolPrefix = "calculator."

// Tool names
const (
	ToolPressKeys = ToolPrefix + "press_keys"
	ToolDisplay   = ToolPrefix + "display"
	ToolEvaluate  = ToolPrefix + "evaluate"
	ToolHistory   = ToolPrefix + "history"
)

const (
	serverName    = "go-chi-calculator"
	serverVersion = "0.1.0"
)
