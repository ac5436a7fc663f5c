package learntools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/vibelearn/vibelearn/internal/learning"
)

// RecordLearningTool handles the record_learning MCP tool — the engine's
// single write path. One call updates the mastery level, the review
// schedule, and the fatigue counters together.
type RecordLearningTool struct {
	engine *learning.Engine
}

// NewRecordLearningTool creates a RecordLearningTool with the given engine.
func NewRecordLearningTool(engine *learning.Engine) *RecordLearningTool {
	return &RecordLearningTool{engine: engine}
}

// Definition returns the MCP tool definition for record_learning.
func (t *RecordLearningTool) Definition() mcp.Tool {
	return mcp.NewTool("record_learning",
		mcp.WithDescription(
			"Record the outcome of a learning question. YOU judge the user's answer and pass "+
				"a categorical result: 'correct', 'partial', 'incorrect', or 'skipped'. "+
				"This updates the mastery level, schedules the next spaced-repetition review, "+
				"and updates fatigue tracking in one step. Always call this after the user responds "+
				"(or declines) — skips are recorded too.",
		),
		mcp.WithString("concept_id",
			mcp.Required(),
			mcp.Description("Concept the question was about (e.g. 'cache-aside')"),
		),
		mcp.WithNumber("level",
			mcp.Required(),
			mcp.Description("Mastery level (1-5) the question was asked at"),
		),
		mcp.WithString("result",
			mcp.Required(),
			mcp.Description("Answer outcome: correct | partial | incorrect | skipped"),
		),
	)
}

// Handle processes the record_learning tool call.
func (t *RecordLearningTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	conceptID := req.GetString("concept_id", "")
	level := intArg(req, "level", 0)
	result := req.GetString("result", "")

	outcome, err := t.engine.RecordLearning(conceptID, level, result)
	if err != nil {
		return errorResult(err), nil
	}

	var sb strings.Builder
	sb.WriteString(outcome.Message)
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "new_level: %d\n", outcome.NewLevel)
	fmt.Fprintf(&sb, "level_changed: %s\n", yesNo(outcome.LevelChanged))
	if outcome.NextReview != "" {
		fmt.Fprintf(&sb, "next_review: %s\n", outcome.NextReview)
	}
	fmt.Fprintf(&sb, "consecutive_skips: %d", outcome.ConsecutiveSkips)

	return mcp.NewToolResultText(sb.String()), nil
}
