// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it creates the learning store and engine
// and injects them into the tools that depend on them. No business logic
// lives here — only wiring.
package server

import (
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/server"
	"github.com/vibelearn/vibelearn/internal/learning"
	"github.com/vibelearn/vibelearn/internal/learntools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all learning tools
// registered.
//
// The returned cleanup function closes the store's database connection and
// must be called on shutdown (typically via defer). It is always non-nil
// and safe to call even if initialization failed.
func New() (*server.MCPServer, func(), error) {
	store, err := learning.New(learning.DefaultConfig())
	if err != nil {
		return nil, noop, fmt.Errorf("opening learning store: %w", err)
	}
	cleanup := func() {
		if err := store.Close(); err != nil {
			log.Printf("WARNING: learning store close: %v", err)
		}
	}

	engine := learning.NewEngine(store)

	s := server.NewMCPServer(
		"vibelearn",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	registerLearningTools(s, engine)

	return s, cleanup, nil
}

// noop is a no-op cleanup function used when initialization failed before
// the store was opened.
func noop() {}

// registerLearningTools registers all 10 learning MCP tools with the server.
func registerLearningTools(s *server.MCPServer, engine *learning.Engine) {
	// --- Progression ---
	conceptLevel := learntools.NewConceptLevelTool(engine)
	s.AddTool(conceptLevel.Definition(), conceptLevel.Handle)

	record := learntools.NewRecordLearningTool(engine)
	s.AddTool(record.Definition(), record.Handle)

	// --- Fatigue gate & reviews ---
	shouldAsk := learntools.NewShouldAskTool(engine)
	s.AddTool(shouldAsk.Definition(), shouldAsk.Handle)

	dueReviews := learntools.NewDueReviewsTool(engine)
	s.AddTool(dueReviews.Definition(), dueReviews.Handle)

	// --- Mode control ---
	getMode := learntools.NewGetModeTool(engine)
	s.AddTool(getMode.Definition(), getMode.Handle)

	setMode := learntools.NewSetModeTool(engine)
	s.AddTool(setMode.Definition(), setMode.Handle)

	// --- Knowledge gaps ---
	recordGap := learntools.NewRecordGapTool(engine)
	s.AddTool(recordGap.Definition(), recordGap.Handle)

	listGaps := learntools.NewListGapsTool(engine)
	s.AddTool(listGaps.Definition(), listGaps.Handle)

	// --- Reporting ---
	stats := learntools.NewStatsTool(engine)
	s.AddTool(stats.Definition(), stats.Handle)

	sessionContext := learntools.NewSessionContextTool(engine)
	s.AddTool(sessionContext.Definition(), sessionContext.Handle)
}

// serverInstructions returns the system instructions that tell the AI how
// to run the learning loop well.
func serverInstructions() string {
	return `You have access to VibeLearn, a learning progression MCP server.
It tracks how well the user understands the concepts that come up while you
work together, schedules spaced-repetition reviews, and tells you when a
learning question is welcome.

## The Learning Loop

1. Before asking any learning question, call should_ask_question.
   If should_ask is false, respect it silently — do not mention the gate,
   do not apologize, just keep working. The reason field is for you, not
   for the user.

2. When should_ask is true and a natural pause occurs (a task just
   finished, a review is pending), ask ONE brief question about a concept
   from the current work. Prefer concepts returned by get_due_reviews —
   those are scheduled reviews the user is about to forget.

3. Calibrate the question to the concept's level (get_concept_level):
   - Level 1-2: recognition ("what does X do?")
   - Level 3: application ("where would you use X here?")
   - Level 4-5: tradeoffs ("when would X be the wrong choice?")

4. After the user answers (or skips), ALWAYS call record_learning with the
   concept, the level you asked at, and the result:
   - correct: they got it
   - partial: roughly right, missed something
   - incorrect: wrong or "I don't know"
   - skipped: they declined or ignored the question
   Never record an answer the user did not actually give.

## Question Style

- ONE question at a time, woven into the conversation. Never a quiz block.
- Keep it under two sentences. No preamble like "time for a learning check".
- If the user answers incorrectly, give a one-paragraph explanation, then
  move on. No lectures.
- If the user skips twice, the server auto-pauses questions for an hour —
  do not fight it.

## Unknown Unknowns

While working, watch for concepts adjacent to the task that the user has
never mentioned and may not know exist (e.g. they write cache code but have
never heard of cache stampede). Call record_unknown_unknown with the
concept, what it related to, and why it matters. Do NOT interrupt the task
to explain it — the server surfaces these at the start of future sessions.

## Mode Control

The user controls questioning through you:
- "stop asking questions" → set_mode with the relevant toggle off
- "no questions for a while" → set_mode with pause_minutes
- "quiz me on goroutines" → set_mode with focus_area, then prefer that area
- "resume questions" → set_mode with resume

Honor these immediately and confirm in one short sentence.

## Session Start

At the start of a session, session_context returns pending reviews and
unexplored unknown unknowns. Mention at most one or two items naturally if
they relate to the current work — never dump the whole list.`
}
