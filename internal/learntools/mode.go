package learntools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/vibelearn/vibelearn/internal/learning"
)

// GetModeTool handles the get_mode MCP tool.
type GetModeTool struct {
	engine *learning.Engine
}

// NewGetModeTool creates a GetModeTool with the given engine.
func NewGetModeTool(engine *learning.Engine) *GetModeTool {
	return &GetModeTool{engine: engine}
}

// Definition returns the MCP tool definition for get_mode.
func (t *GetModeTool) Definition() mcp.Tool {
	return mcp.NewTool("get_mode",
		mcp.WithDescription(
			"Show the current questioning mode: the senior (pre-task) and after (post-task) "+
				"toggles, any active pause, and the focus area filter.",
		),
	)
}

// Handle processes the get_mode tool call.
func (t *GetModeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mode, err := t.engine.GetMode()
	if err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText(formatMode(mode)), nil
}

// SetModeTool handles the set_mode MCP tool. Every parameter is optional;
// only what is passed changes.
type SetModeTool struct {
	engine *learning.Engine
}

// NewSetModeTool creates a SetModeTool with the given engine.
func NewSetModeTool(engine *learning.Engine) *SetModeTool {
	return &SetModeTool{engine: engine}
}

// Definition returns the MCP tool definition for set_mode.
func (t *SetModeTool) Definition() mcp.Tool {
	return mcp.NewTool("set_mode",
		mcp.WithDescription(
			"Change the questioning mode. All parameters are optional and independent: "+
				"toggle senior (pre-task) or after (post-task) questioning, pause for a number "+
				"of minutes or until an absolute deadline, resume from a pause, or set/clear "+
				"the focus area (e.g. 'testing' to only get testing questions).",
		),
		mcp.WithBoolean("senior_enabled",
			mcp.Description("Enable/disable pre-task questioning"),
		),
		mcp.WithBoolean("after_enabled",
			mcp.Description("Enable/disable post-task questioning"),
		),
		mcp.WithNumber("pause_minutes",
			mcp.Description("Pause questioning for this many minutes from now"),
		),
		mcp.WithString("paused_until",
			mcp.Description("Pause questioning until an absolute UTC deadline (2006-01-02 15:04:05)"),
		),
		mcp.WithBoolean("resume",
			mcp.Description("Clear any active pause immediately"),
		),
		mcp.WithString("focus_area",
			mcp.Description("Restrict questions to one topic area"),
		),
		mcp.WithBoolean("clear_focus",
			mcp.Description("Remove the focus area filter"),
		),
	)
}

// Handle processes the set_mode tool call.
func (t *SetModeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var update learning.ModeUpdate

	if v, ok := boolArg(req, "senior_enabled"); ok {
		update.SeniorEnabled = &v
	}
	if v, ok := boolArg(req, "after_enabled"); ok {
		update.AfterEnabled = &v
	}
	if v, ok := boolArg(req, "resume"); ok && v {
		update.ClearPause = true
	}
	if v, ok := boolArg(req, "clear_focus"); ok && v {
		update.ClearFocus = true
	}
	if v := req.GetString("focus_area", ""); v != "" {
		update.FocusArea = &v
	}
	if v := req.GetString("paused_until", ""); v != "" {
		update.PausedUntil = &v
	}

	// pause_minutes wins over paused_until when both are passed.
	if minutes := intArg(req, "pause_minutes", 0); minutes > 0 {
		deadline := learning.PauseDeadline(time.Duration(minutes) * time.Minute)
		update.PausedUntil = &deadline
	}

	mode, err := t.engine.SetMode(update)
	if err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText(formatMode(mode)), nil
}

func formatMode(mode *learning.ModeState) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "senior_enabled: %s\n", yesNo(mode.SeniorEnabled))
	fmt.Fprintf(&sb, "after_enabled: %s\n", yesNo(mode.AfterEnabled))
	if mode.PausedUntil != nil {
		fmt.Fprintf(&sb, "paused_until: %s\n", *mode.PausedUntil)
	} else {
		sb.WriteString("paused_until: none\n")
	}
	if mode.FocusArea != nil {
		fmt.Fprintf(&sb, "focus_area: %s", *mode.FocusArea)
	} else {
		sb.WriteString("focus_area: none")
	}
	return sb.String()
}
