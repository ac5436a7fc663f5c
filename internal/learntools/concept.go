package learntools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/vibelearn/vibelearn/internal/learning"
)

// ConceptLevelTool handles the get_concept_level MCP tool.
type ConceptLevelTool struct {
	engine *learning.Engine
}

// NewConceptLevelTool creates a ConceptLevelTool with the given engine.
func NewConceptLevelTool(engine *learning.Engine) *ConceptLevelTool {
	return &ConceptLevelTool{engine: engine}
}

// Definition returns the MCP tool definition for get_concept_level.
func (t *ConceptLevelTool) Definition() mcp.Tool {
	return mcp.NewTool("get_concept_level",
		mcp.WithDescription(
			"Get the user's current mastery level (1-5) for a concept, e.g. 'cache-aside'. "+
				"New concepts start at level 3. Use the level to calibrate question difficulty "+
				"before asking a learning question.",
		),
		mcp.WithString("concept_id",
			mcp.Required(),
			mcp.Description("Concept identifier (lowercase, hyphen-separated, e.g. 'unit-testing')"),
		),
	)
}

// Handle processes the get_concept_level tool call.
func (t *ConceptLevelTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	conceptID := req.GetString("concept_id", "")

	summary, err := t.engine.GetConceptLevel(conceptID)
	if err != nil {
		return errorResult(err), nil
	}

	lastSeen := "never"
	if summary.LastSeen != nil {
		lastSeen = *summary.LastSeen
	}
	return mcp.NewToolResultText(fmt.Sprintf(
		"concept: %s\nlevel: %d\nattempts: %d\nlast_seen: %s",
		summary.ConceptID, summary.CurrentLevel, summary.Attempts, lastSeen,
	)), nil
}
