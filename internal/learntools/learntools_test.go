package learntools

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/vibelearn/vibelearn/internal/learning"
)

// ─── Test helpers ────────────────────────────────────────────────────────────

// newTestEngine creates a learning.Engine over a temp-directory store.
func newTestEngine(t *testing.T) *learning.Engine {
	t.Helper()
	cfg := learning.DefaultConfig()
	cfg.DataDir = t.TempDir()
	store, err := learning.New(cfg)
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return learning.NewEngine(store)
}

// makeReq builds a mcp.CallToolRequest with the given arguments.
func makeReq(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// resultText extracts the text content from a tool result.
func resultText(r *mcp.CallToolResult) string {
	if r == nil || len(r.Content) == 0 {
		return ""
	}
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

// ─── ConceptLevelTool Tests ──────────────────────────────────────────────────

func TestConceptLevelTool_Definition(t *testing.T) {
	tool := NewConceptLevelTool(newTestEngine(t))
	def := tool.Definition()

	if def.Name != "get_concept_level" {
		t.Errorf("tool name = %q, want %q", def.Name, "get_concept_level")
	}
	if _, ok := def.InputSchema.Properties["concept_id"]; !ok {
		t.Error("missing 'concept_id' parameter")
	}
}

func TestConceptLevelTool_NewConcept(t *testing.T) {
	tool := NewConceptLevelTool(newTestEngine(t))

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"concept_id": "Cache Aside",
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	text := resultText(result)
	if !strings.Contains(text, "concept: cache-aside") {
		t.Errorf("id not normalized: %q", text)
	}
	if !strings.Contains(text, "level: 3") {
		t.Errorf("new concept should start at level 3: %q", text)
	}
	if !strings.Contains(text, "last_seen: never") {
		t.Errorf("unseen concept should say never: %q", text)
	}
}

func TestConceptLevelTool_EmptyID(t *testing.T) {
	tool := NewConceptLevelTool(newTestEngine(t))

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !result.IsError {
		t.Error("empty concept_id should produce a tool error")
	}
}

// ─── RecordLearningTool Tests ────────────────────────────────────────────────

func TestRecordLearningTool_Correct(t *testing.T) {
	engine := newTestEngine(t)
	tool := NewRecordLearningTool(engine)

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"concept_id": "goroutines",
		"level":      float64(3),
		"result":     "correct",
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	text := resultText(result)
	if result.IsError {
		t.Fatalf("unexpected tool error: %q", text)
	}
	if !strings.Contains(text, "new_level: 3") {
		t.Errorf("first correct should hold level 3: %q", text)
	}
	if !strings.Contains(text, "level_changed: false") {
		t.Errorf("missing level_changed: %q", text)
	}
	if !strings.Contains(text, "next_review: ") {
		t.Errorf("missing next_review: %q", text)
	}

	// Second correct levels up.
	result, err = tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"concept_id": "goroutines",
		"level":      float64(3),
		"result":     "correct",
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	text = resultText(result)
	if !strings.Contains(text, "new_level: 4") || !strings.Contains(text, "level_changed: true") {
		t.Errorf("second correct should level up: %q", text)
	}
}

func TestRecordLearningTool_InvalidInputs(t *testing.T) {
	tool := NewRecordLearningTool(newTestEngine(t))

	tests := []map[string]interface{}{
		{"concept_id": "x", "level": float64(3), "result": "sort of"},
		{"concept_id": "x", "level": float64(0), "result": "correct"},
		{"concept_id": "", "level": float64(3), "result": "correct"},
	}
	for _, args := range tests {
		result, err := tool.Handle(context.Background(), makeReq(args))
		if err != nil {
			t.Fatalf("Handle(%v): %v", args, err)
		}
		if !result.IsError {
			t.Errorf("args %v should produce a tool error, got %q", args, resultText(result))
		}
	}
}

func TestRecordLearningTool_SkipReportsCounter(t *testing.T) {
	tool := NewRecordLearningTool(newTestEngine(t))

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"concept_id": "interfaces",
		"level":      float64(3),
		"result":     "skipped",
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !strings.Contains(resultText(result), "consecutive_skips: 1") {
		t.Errorf("skip counter missing: %q", resultText(result))
	}
}

// ─── ShouldAskTool Tests ─────────────────────────────────────────────────────

func TestShouldAskTool_FreshSession(t *testing.T) {
	tool := NewShouldAskTool(newTestEngine(t))

	result, err := tool.Handle(context.Background(), makeReq(nil))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	text := resultText(result)
	if !strings.Contains(text, "should_ask: true") {
		t.Errorf("fresh session should allow: %q", text)
	}
	if !strings.Contains(text, "pending_reviews: 0") {
		t.Errorf("missing pending_reviews: %q", text)
	}
}

func TestShouldAskTool_CooldownAfterAnswer(t *testing.T) {
	engine := newTestEngine(t)
	if _, err := engine.RecordLearning("channels", 3, "correct"); err != nil {
		t.Fatal(err)
	}

	result, err := NewShouldAskTool(engine).Handle(context.Background(), makeReq(nil))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	text := resultText(result)
	if !strings.Contains(text, "should_ask: false") || !strings.Contains(text, "cooldown") {
		t.Errorf("expected cooldown gate: %q", text)
	}
}

func TestShouldAskTool_ReportsFocusArea(t *testing.T) {
	engine := newTestEngine(t)
	focus := "testing"
	if _, err := engine.SetMode(learning.ModeUpdate{FocusArea: &focus}); err != nil {
		t.Fatal(err)
	}

	result, err := NewShouldAskTool(engine).Handle(context.Background(), makeReq(nil))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !strings.Contains(resultText(result), "focus_area: testing") {
		t.Errorf("focus area missing: %q", resultText(result))
	}
}

// ─── DueReviewsTool Tests ────────────────────────────────────────────────────

func TestDueReviewsTool_Empty(t *testing.T) {
	tool := NewDueReviewsTool(newTestEngine(t))

	result, err := tool.Handle(context.Background(), makeReq(nil))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !strings.Contains(resultText(result), "No reviews due") {
		t.Errorf("empty backlog message missing: %q", resultText(result))
	}
}

// ─── Mode Tool Tests ─────────────────────────────────────────────────────────

func TestGetModeTool_Defaults(t *testing.T) {
	tool := NewGetModeTool(newTestEngine(t))

	result, err := tool.Handle(context.Background(), makeReq(nil))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	text := resultText(result)
	for _, want := range []string{
		"senior_enabled: true",
		"after_enabled: true",
		"paused_until: none",
		"focus_area: none",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("missing %q in %q", want, text)
		}
	}
}

func TestSetModeTool_PauseMinutes(t *testing.T) {
	engine := newTestEngine(t)
	tool := NewSetModeTool(engine)

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"pause_minutes": float64(30),
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	text := resultText(result)
	if strings.Contains(text, "paused_until: none") {
		t.Fatalf("pause not applied: %q", text)
	}

	// Resume clears it again.
	result, err = tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"resume": true,
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !strings.Contains(resultText(result), "paused_until: none") {
		t.Fatalf("resume did not clear: %q", resultText(result))
	}
}

func TestSetModeTool_TogglesAndFocus(t *testing.T) {
	tool := NewSetModeTool(newTestEngine(t))

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"senior_enabled": false,
		"focus_area":     "sql",
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	text := resultText(result)
	if !strings.Contains(text, "senior_enabled: false") {
		t.Errorf("toggle not applied: %q", text)
	}
	if !strings.Contains(text, "after_enabled: true") {
		t.Errorf("untouched toggle changed: %q", text)
	}
	if !strings.Contains(text, "focus_area: sql") {
		t.Errorf("focus not applied: %q", text)
	}
}

func TestSetModeTool_RejectsBadDeadline(t *testing.T) {
	tool := NewSetModeTool(newTestEngine(t))

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"paused_until": "whenever",
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !result.IsError {
		t.Errorf("bad deadline should produce a tool error: %q", resultText(result))
	}
}

// ─── Gap Tool Tests ──────────────────────────────────────────────────────────

func TestRecordGapTool_RoundTrip(t *testing.T) {
	engine := newTestEngine(t)
	record := NewRecordGapTool(engine)
	list := NewListGapsTool(engine)

	result, err := record.Handle(context.Background(), makeReq(map[string]interface{}{
		"concept_id":    "Connection Pooling",
		"related_to":    "database layer",
		"why_important": "per-request connections exhaust the server",
	}))
	if err != nil {
		t.Fatalf("record Handle: %v", err)
	}
	if !strings.Contains(resultText(result), `"connection-pooling"`) {
		t.Fatalf("gap id not normalized: %q", resultText(result))
	}

	result, err = list.Handle(context.Background(), makeReq(nil))
	if err != nil {
		t.Fatalf("list Handle: %v", err)
	}
	text := resultText(result)
	if !strings.Contains(text, "connection-pooling") || !strings.Contains(text, "seen 1x") {
		t.Fatalf("listed gap wrong: %q", text)
	}
	if !strings.Contains(text, "per-request connections") {
		t.Fatalf("why_important missing: %q", text)
	}
}

func TestRecordGapTool_RequiresRelatedTo(t *testing.T) {
	tool := NewRecordGapTool(newTestEngine(t))

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"concept_id": "indexes",
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !result.IsError {
		t.Error("missing related_to should produce a tool error")
	}
}

func TestListGapsTool_Empty(t *testing.T) {
	tool := NewListGapsTool(newTestEngine(t))

	result, err := tool.Handle(context.Background(), makeReq(nil))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !strings.Contains(resultText(result), "No knowledge gaps") {
		t.Errorf("empty message missing: %q", resultText(result))
	}
}

// ─── StatsTool Tests ─────────────────────────────────────────────────────────

func TestStatsTool_Aggregates(t *testing.T) {
	engine := newTestEngine(t)
	if _, err := engine.RecordLearning("maps", 3, "correct"); err != nil {
		t.Fatal(err)
	}
	if _, err := engine.RecordLearning("slices", 3, "incorrect"); err != nil {
		t.Fatal(err)
	}

	result, err := NewStatsTool(engine).Handle(context.Background(), makeReq(nil))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	text := resultText(result)
	for _, want := range []string{
		"**Concepts tracked**: 2",
		"**Answers recorded**: 2",
		"**Accuracy**: 50%",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("missing %q in %q", want, text)
		}
	}
}

// ─── SessionContextTool Tests ────────────────────────────────────────────────

func TestSessionContextTool(t *testing.T) {
	engine := newTestEngine(t)
	tool := NewSessionContextTool(engine)

	result, err := tool.Handle(context.Background(), makeReq(nil))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !strings.Contains(resultText(result), "No pending items") {
		t.Errorf("empty context should say so: %q", resultText(result))
	}

	if _, err := engine.RecordGap(learning.GapParams{
		ConceptID: "write-amplification",
		RelatedTo: "lsm trees",
	}); err != nil {
		t.Fatal(err)
	}

	result, err = tool.Handle(context.Background(), makeReq(nil))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	text := resultText(result)
	if !strings.Contains(text, "Unknown Unknowns") || !strings.Contains(text, "write-amplification") {
		t.Errorf("gap missing from context: %q", text)
	}
}
