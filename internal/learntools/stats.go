package learntools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/vibelearn/vibelearn/internal/learning"
)

// StatsTool handles the learning_stats MCP tool.
type StatsTool struct {
	engine *learning.Engine
}

// NewStatsTool creates a StatsTool with the given engine.
func NewStatsTool(engine *learning.Engine) *StatsTool {
	return &StatsTool{engine: engine}
}

// Definition returns the MCP tool definition for learning_stats.
func (t *StatsTool) Definition() mcp.Tool {
	return mcp.NewTool("learning_stats",
		mcp.WithDescription(
			"Show aggregate learning statistics — concepts tracked, answer accuracy, "+
				"level distribution, review backlog, and open knowledge gaps.",
		),
	)
}

// Handle processes the learning_stats tool call.
func (t *StatsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := t.engine.Stats()
	if err != nil {
		return errorResult(err), nil
	}

	var sb strings.Builder
	sb.WriteString("## Learning Statistics\n\n")
	fmt.Fprintf(&sb, "- **Concepts tracked**: %d\n", stats.TotalConcepts)
	fmt.Fprintf(&sb, "- **Answers recorded**: %d\n", stats.TotalRecords)
	fmt.Fprintf(&sb, "- **Accuracy**: %.0f%%\n", stats.Accuracy*100)
	fmt.Fprintf(&sb, "- **Reviews due**: %d\n", stats.DueCount)
	fmt.Fprintf(&sb, "- **Open gaps**: %d\n", stats.OpenGaps)

	if len(stats.ByLevel) > 0 {
		sb.WriteString("- **By level**: ")
		var parts []string
		for level := 1; level <= 5; level++ {
			if n, ok := stats.ByLevel[level]; ok {
				parts = append(parts, fmt.Sprintf("L%d: %d", level, n))
			}
		}
		sb.WriteString(strings.Join(parts, ", "))
		sb.WriteString("\n")
	}

	return mcp.NewToolResultText(sb.String()), nil
}
