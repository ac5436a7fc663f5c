package learning

import (
	"fmt"
	"strings"
)

// ContextReport renders the session-start context block: unexplored
// knowledge gaps worth a look, plus the due-review backlog. Both the
// session_context tool and the session-start hook emit this exact text.
func (e *Engine) ContextReport() (string, error) {
	gaps, err := e.Gaps(5, false)
	if err != nil {
		return "", err
	}
	due, err := e.DueReviews(5)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("# [vibelearn] Session Context\n\n")

	if len(gaps) > 0 {
		b.WriteString("## Unknown Unknowns (concepts to explore)\n")
		for _, g := range gaps {
			fmt.Fprintf(&b, "- **%s** (from %s)", g.ConceptID, g.RelatedTo)
			if g.WhyImportant != "" {
				fmt.Fprintf(&b, ": %s", g.WhyImportant)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(due) > 0 {
		b.WriteString("## Due for Review\n")
		for _, r := range due {
			fmt.Fprintf(&b, "- %s (Level %d", r.ConceptID, r.CurrentLevel)
			if r.DaysOverdue > 0 {
				fmt.Fprintf(&b, ", %dd overdue", r.DaysOverdue)
			}
			b.WriteString(")\n")
		}
		b.WriteString("\n")
	}

	if len(gaps) == 0 && len(due) == 0 {
		b.WriteString("No pending items. Ready to learn!\n")
	}

	return b.String(), nil
}
