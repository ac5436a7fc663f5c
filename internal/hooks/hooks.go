package hooks

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/vibelearn/vibelearn/internal/learning"
)

const (
	// ToolThreshold is how many significant tool calls accumulate before
	// the stop gate considers prompting a learning question.
	ToolThreshold = 3

	// PromptCooldown is the minimum gap between stop-gate prompts.
	PromptCooldown = 15 * time.Minute
)

// ToolInput carries the fields of a tool invocation the hooks care about.
// Unknown fields are ignored by design.
type ToolInput struct {
	FilePath string `json:"file_path"`
	Path     string `json:"path"`
	Command  string `json:"command"`
}

// ToolEvent is the PostToolUse hook payload.
type ToolEvent struct {
	ToolName  string    `json:"tool_name"`
	ToolInput ToolInput `json:"tool_input"`
}

// Hooks bundles the tracker with an optional engine. Engine may be nil when
// the database could not be opened; every entry point tolerates that.
type Hooks struct {
	Tracker *TrackerStore
	Engine  *learning.Engine
}

// TrackActivity handles the PostToolUse event: count significant tool calls
// and harvest concept hints for later prompts. Malformed input is ignored.
func (h *Hooks) TrackActivity(in io.Reader) error {
	var event ToolEvent
	if err := json.NewDecoder(in).Decode(&event); err != nil {
		return nil
	}
	if !significantTools[event.ToolName] {
		return nil
	}
	state := h.Tracker.Load()
	state.ToolCount++
	if concept := ExtractConcept(event.ToolInput); concept != "" {
		state.AddConcept(concept)
	}
	return h.Tracker.Save(state)
}

// sessionStartOutput is the SessionStart hook response envelope.
type sessionStartOutput struct {
	HookSpecificOutput hookSpecificOutput `json:"hookSpecificOutput"`
}

type hookSpecificOutput struct {
	HookEventName     string `json:"hookEventName"`
	AdditionalContext string `json:"additionalContext"`
}

// SessionStart handles the SessionStart event: inject pending reviews and
// unexplored knowledge gaps into the new session's context. When interactive
// (run by hand in a terminal) the report goes to errw as plain text instead.
func (h *Hooks) SessionStart(out, errw io.Writer, interactive bool) error {
	// A fresh session starts with a clean fatigue counter.
	h.resetToolCount()

	if h.Engine == nil {
		return nil
	}
	report, err := h.Engine.ContextReport()
	if err != nil {
		return nil
	}
	if interactive {
		fmt.Fprintln(errw, report)
		return nil
	}
	return json.NewEncoder(out).Encode(sessionStartOutput{
		HookSpecificOutput: hookSpecificOutput{
			HookEventName:     "SessionStart",
			AdditionalContext: report,
		},
	})
}

// blockDecision is the Stop hook response that makes the agent pause and ask
// a learning question before finishing.
type blockDecision struct {
	Decision string `json:"decision"`
	Reason   string `json:"reason"`
}

// CheckLearning handles the Stop event. When enough significant work has
// accumulated, after-mode is on, and the cooldown has elapsed, it emits a
// block decision instructing the agent to ask one learning question.
// In every other case it produces no output, which the host reads as
// "proceed".
func (h *Hooks) CheckLearning(out io.Writer) error {
	state := h.Tracker.Load()
	if state.ToolCount < ToolThreshold {
		return nil
	}

	// The engine's mode state is the single source of truth for toggles
	// and pauses. No database means no questions.
	if h.Engine == nil {
		return nil
	}
	mode, err := h.Engine.GetMode()
	if err != nil || !mode.AfterEnabled || mode.PausedUntil != nil {
		return nil
	}

	now := timeNow().UTC()
	if state.LastLearningPrompt > 0 {
		last := time.UnixMilli(state.LastLearningPrompt).UTC()
		if now.Sub(last) < PromptCooldown {
			return nil
		}
	}

	concept := state.LastConcept("the task you just completed")
	state.ToolCount = 0
	state.LastLearningPrompt = now.UnixMilli()
	if err := h.Tracker.Save(state); err != nil {
		return nil
	}

	return json.NewEncoder(out).Encode(blockDecision{
		Decision: "block",
		Reason:   promptReason(concept),
	})
}

// resetToolCount zeroes the fatigue counter, keeping concept hints and the
// prompt cooldown timestamp.
func (h *Hooks) resetToolCount() {
	state := h.Tracker.Load()
	if state.ToolCount == 0 {
		return
	}
	state.ToolCount = 0
	h.Tracker.Save(state)
}

// promptReason builds the block-decision text that instructs the agent to
// ask one learning question about the given concept.
func promptReason(concept string) string {
	return fmt.Sprintf(`Before finishing, ask the user ONE brief learning question about %s — something related to the work just done. Keep it conversational, not a quiz.

After they answer (or skip), call mcp__vibelearn__record_learning with the concept, its level, and the result (correct, partial, incorrect, or skipped). If you noticed a concept adjacent to this work the user may not know, also call mcp__vibelearn__record_unknown_unknown. Then finish normally.`, concept)
}
