package learntools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/vibelearn/vibelearn/internal/learning"
)

// ShouldAskTool handles the should_ask_question MCP tool — the fatigue gate.
type ShouldAskTool struct {
	engine *learning.Engine
}

// NewShouldAskTool creates a ShouldAskTool with the given engine.
func NewShouldAskTool(engine *learning.Engine) *ShouldAskTool {
	return &ShouldAskTool{engine: engine}
}

// Definition returns the MCP tool definition for should_ask_question.
func (t *ShouldAskTool) Definition() mcp.Tool {
	return mcp.NewTool("should_ask_question",
		mcp.WithDescription(
			"Check whether a learning question may be asked right now. Respects the mode "+
				"toggles, any active pause, and the cooldown between questions. "+
				"ALWAYS call this before asking — if should_ask is false, do not ask. "+
				"pending_reviews reports the review backlog regardless of the verdict.",
		),
	)
}

// Handle processes the should_ask_question tool call.
func (t *ShouldAskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	decision, err := t.engine.ShouldAskQuestion()
	if err != nil {
		return errorResult(err), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "should_ask: %s\n", yesNo(decision.ShouldAsk))
	fmt.Fprintf(&sb, "reason: %s\n", decision.Reason)
	fmt.Fprintf(&sb, "pending_reviews: %d\n", decision.PendingReviews)
	fmt.Fprintf(&sb, "consecutive_skips: %d", decision.ConsecutiveSkips)

	if mode, err := t.engine.GetMode(); err == nil && mode.FocusArea != nil {
		fmt.Fprintf(&sb, "\nfocus_area: %s", *mode.FocusArea)
	}

	return mcp.NewToolResultText(sb.String()), nil
}
