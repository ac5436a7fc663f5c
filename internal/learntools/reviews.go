package learntools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/vibelearn/vibelearn/internal/learning"
)

// DueReviewsTool handles the get_due_reviews MCP tool.
type DueReviewsTool struct {
	engine *learning.Engine
}

// NewDueReviewsTool creates a DueReviewsTool with the given engine.
func NewDueReviewsTool(engine *learning.Engine) *DueReviewsTool {
	return &DueReviewsTool{engine: engine}
}

// Definition returns the MCP tool definition for get_due_reviews.
func (t *DueReviewsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_due_reviews",
		mcp.WithDescription(
			"List concepts whose spaced-repetition review is due, most overdue first. "+
				"Prefer these concepts when picking what to ask about.",
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum concepts to return (default 10)"),
		),
	)
}

// Handle processes the get_due_reviews tool call.
func (t *DueReviewsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := intArg(req, "limit", 10)

	reviews, err := t.engine.DueReviews(limit)
	if err != nil {
		return errorResult(err), nil
	}
	if len(reviews) == 0 {
		return mcp.NewToolResultText("No reviews due. Nothing to reinforce right now."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Due Reviews (%d)\n\n", len(reviews))
	for _, r := range reviews {
		fmt.Fprintf(&sb, "- **%s** (level %d", r.ConceptID, r.CurrentLevel)
		if r.DaysOverdue > 0 {
			fmt.Fprintf(&sb, ", %dd overdue", r.DaysOverdue)
		}
		if r.LastResult != "" {
			fmt.Fprintf(&sb, ", last: %s", r.LastResult)
		}
		sb.WriteString(")\n")
	}

	return mcp.NewToolResultText(sb.String()), nil
}
