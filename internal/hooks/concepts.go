package hooks

import "strings"

// significantTools are the tool invocations that count as real work for the
// fatigue threshold. Reads and searches are free.
var significantTools = map[string]bool{
	"Edit":  true,
	"Write": true,
	"Bash":  true,
}

// conceptPatterns maps path substrings to normalized concept ids, first
// match wins. These ids land in the engine as real concepts (via
// record_learning), so the table must stay stable across versions —
// renaming an entry orphans existing concept_progress rows.
var conceptPatterns = []struct {
	keywords []string
	concept  string
}{
	{[]string{"test", "spec"}, "unit-testing"},
	{[]string{"auth", "login", "jwt"}, "authentication"},
	{[]string{"api", "endpoint", "route"}, "api-design"},
	{[]string{"cache", "redis"}, "caching"},
	{[]string{".tsx", ".jsx"}, "react-components"},
	{[]string{"db", "database", "prisma"}, "database"},
}

// ExtractConcept derives a concept hint from a tool invocation: file paths
// are matched against the keyword table, shell commands against the two
// command families worth reinforcing. Returns "" when nothing recognizable
// appears.
func ExtractConcept(input ToolInput) string {
	path := input.FilePath
	if path == "" {
		path = input.Path
	}
	if path != "" {
		lower := strings.ToLower(path)
		for _, p := range conceptPatterns {
			for _, kw := range p.keywords {
				if strings.Contains(lower, kw) {
					return p.concept
				}
			}
		}
	}

	if strings.Contains(input.Command, "git") {
		return "git-workflow"
	}
	if strings.Contains(input.Command, "docker") {
		return "containerization"
	}
	return ""
}
