// Package hooks implements the host-integration shims that connect an AI
// coding agent's hook events to the learning engine: activity tracking,
// session-start context injection, and the stop-gate learning trigger.
//
// Hooks are best-effort by contract: malformed stdin or a missing database
// must never fail the host agent, so every entry point degrades to silence.
package hooks

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// timeNow is a package-level variable for testability.
var timeNow = time.Now

// TrackerFile is the tracker filename inside the data directory. The field
// names below match the original tracker format so existing installations
// keep their counters.
const TrackerFile = "claude_tracker.json"

// maxTrackedConcepts bounds the rolling concept-hint list.
const maxTrackedConcepts = 10

// TrackerState is the activity tracker's persisted state: per-session tool
// counts and concept hints, plus the last time the stop gate prompted.
// Mode toggles are NOT stored here — the engine's mode state is the single
// source of truth.
type TrackerState struct {
	ToolCount          int      `json:"tool_count"`
	LastLearningPrompt int64    `json:"last_learning_prompt"` // unix milliseconds
	Concepts           []string `json:"concepts"`
}

// TrackerStore persists TrackerState as a JSON file at an injected path —
// no process-wide globals, so tests and concurrent sessions get their own.
type TrackerStore struct {
	Path string
}

// NewTrackerStore creates a tracker store under the given data directory.
func NewTrackerStore(dataDir string) *TrackerStore {
	return &TrackerStore{Path: filepath.Join(dataDir, TrackerFile)}
}

// Load reads the tracker state. A missing or corrupt file yields the zero
// state — the tracker is disposable bookkeeping, never precious.
func (s *TrackerStore) Load() *TrackerState {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return &TrackerState{}
	}
	var state TrackerState
	if err := json.Unmarshal(data, &state); err != nil {
		return &TrackerState{}
	}
	return &state
}

// Save writes the tracker state, creating the directory if needed.
func (s *TrackerStore) Save(state *TrackerState) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0700); err != nil {
		return err
	}
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path, data, 0600)
}

// AddConcept appends a concept hint, deduplicated, keeping the most recent
// maxTrackedConcepts entries.
func (state *TrackerState) AddConcept(concept string) {
	for _, c := range state.Concepts {
		if c == concept {
			return
		}
	}
	state.Concepts = append(state.Concepts, concept)
	if len(state.Concepts) > maxTrackedConcepts {
		state.Concepts = state.Concepts[len(state.Concepts)-maxTrackedConcepts:]
	}
}

// LastConcept returns the most recent concept hint, or fallback.
func (state *TrackerState) LastConcept(fallback string) string {
	if len(state.Concepts) == 0 {
		return fallback
	}
	return state.Concepts[len(state.Concepts)-1]
}
