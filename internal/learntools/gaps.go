package learntools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/vibelearn/vibelearn/internal/learning"
)

// RecordGapTool handles the record_unknown_unknown MCP tool.
type RecordGapTool struct {
	engine *learning.Engine
}

// NewRecordGapTool creates a RecordGapTool with the given engine.
func NewRecordGapTool(engine *learning.Engine) *RecordGapTool {
	return &RecordGapTool{engine: engine}
}

// Definition returns the MCP tool definition for record_unknown_unknown.
func (t *RecordGapTool) Definition() mcp.Tool {
	return mcp.NewTool("record_unknown_unknown",
		mcp.WithDescription(
			"Register a concept the user probably doesn't know they don't know — something "+
				"adjacent to what they just worked on. Re-registering the same concept bumps "+
				"its appearance count. Gaps surface in the session context until the concept "+
				"gets its first learning record.",
		),
		mcp.WithString("concept_id",
			mcp.Required(),
			mcp.Description("The unfamiliar concept (e.g. 'connection-pooling')"),
		),
		mcp.WithString("related_to",
			mcp.Required(),
			mcp.Description("The concept or task it surfaced from"),
		),
		mcp.WithString("context",
			mcp.Description("Brief context of where it came up"),
		),
		mcp.WithString("why_important",
			mcp.Description("Why the user should eventually learn this"),
		),
	)
}

// Handle processes the record_unknown_unknown tool call.
func (t *RecordGapTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	gap, err := t.engine.RecordGap(learning.GapParams{
		ConceptID:    req.GetString("concept_id", ""),
		RelatedTo:    req.GetString("related_to", ""),
		Context:      req.GetString("context", ""),
		WhyImportant: req.GetString("why_important", ""),
	})
	if err != nil {
		return errorResult(err), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"Gap recorded: %q (related to %s, seen %dx)",
		gap.ConceptID, gap.RelatedTo, gap.Appearances,
	)), nil
}

// ListGapsTool handles the get_unknown_unknowns MCP tool.
type ListGapsTool struct {
	engine *learning.Engine
}

// NewListGapsTool creates a ListGapsTool with the given engine.
func NewListGapsTool(engine *learning.Engine) *ListGapsTool {
	return &ListGapsTool{engine: engine}
}

// Definition returns the MCP tool definition for get_unknown_unknowns.
func (t *ListGapsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_unknown_unknowns",
		mcp.WithDescription(
			"List registered knowledge gaps, most frequently seen first. "+
				"Unexplored gaps are good candidates for the next learning question.",
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum gaps to return (default 5)"),
		),
		mcp.WithBoolean("include_explored",
			mcp.Description("Also list gaps that already have learning records"),
		),
	)
}

// Handle processes the get_unknown_unknowns tool call.
func (t *ListGapsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := intArg(req, "limit", 5)
	includeExplored, _ := boolArg(req, "include_explored")

	gaps, err := t.engine.Gaps(limit, includeExplored)
	if err != nil {
		return errorResult(err), nil
	}
	if len(gaps) == 0 {
		return mcp.NewToolResultText("No knowledge gaps recorded."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Unknown Unknowns (%d)\n\n", len(gaps))
	for _, g := range gaps {
		fmt.Fprintf(&sb, "- **%s** (from %s, seen %dx", g.ConceptID, g.RelatedTo, g.Appearances)
		if g.Explored {
			sb.WriteString(", explored")
		}
		sb.WriteString(")")
		if g.WhyImportant != "" {
			fmt.Fprintf(&sb, ": %s", g.WhyImportant)
		}
		sb.WriteString("\n")
	}

	return mcp.NewToolResultText(sb.String()), nil
}
