package learntools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/vibelearn/vibelearn/internal/learning"
)

// SessionContextTool handles the session_context MCP tool.
type SessionContextTool struct {
	engine *learning.Engine
}

// NewSessionContextTool creates a SessionContextTool with the given engine.
func NewSessionContextTool(engine *learning.Engine) *SessionContextTool {
	return &SessionContextTool{engine: engine}
}

// Definition returns the MCP tool definition for session_context.
func (t *SessionContextTool) Definition() mcp.Tool {
	return mcp.NewTool("session_context",
		mcp.WithDescription(
			"Render the session-start context block: unexplored knowledge gaps and the "+
				"due-review backlog. Call this at the beginning of a coding session to know "+
				"what's worth reinforcing.",
		),
	)
}

// Handle processes the session_context tool call.
func (t *SessionContextTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := t.engine.ContextReport()
	if err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText(report), nil
}
