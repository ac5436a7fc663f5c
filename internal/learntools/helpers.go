// Package learntools provides the MCP tool handlers for the learning
// progression engine.
//
// Each tool handler follows the same pattern:
// - A struct with the engine injected via constructor
// - Definition() returns the mcp.Tool schema
// - Handle() processes the request and returns a result
//
// Domain failures (validation, gated asks, busy storage) surface as tool
// result errors so the calling agent can read and react to them; Go errors
// are reserved for protocol-level breakage.
package learntools

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/vibelearn/vibelearn/internal/learning"
)

// intArg extracts an integer argument from a tool request, returning
// defaultVal if the key is missing or not a number (JSON numbers are float64).
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// boolArg extracts an optional boolean argument, reporting presence.
func boolArg(req mcp.CallToolRequest, key string) (value, present bool) {
	v, ok := req.GetArguments()[key].(bool)
	return v, ok
}

// errorResult renders a domain error as a tool-result error, appending the
// engine's suggestion when it carries one.
func errorResult(err error) *mcp.CallToolResult {
	msg := err.Error()
	if s := learning.SuggestionOf(err); s != "" {
		msg += " — " + s
	}
	return mcp.NewToolResultError(msg)
}

func yesNo(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
