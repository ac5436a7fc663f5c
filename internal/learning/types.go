package learning

// ─── Answer results ──────────────────────────────────────────────────────────

// Result is the categorical outcome of a learning question, as judged by the
// calling agent. The engine never grades free text itself.
type Result string

const (
	ResultCorrect   Result = "correct"
	ResultPartial   Result = "partial"
	ResultIncorrect Result = "incorrect"
	ResultSkipped   Result = "skipped"
)

// ParseResult validates and normalizes a result string.
func ParseResult(s string) (Result, error) {
	switch Result(s) {
	case ResultCorrect, ResultPartial, ResultIncorrect, ResultSkipped:
		return Result(s), nil
	}
	return "", validationErr("parse result",
		"result must be one of: correct, partial, incorrect, skipped")
}

// Quality maps a result onto the 0–5 scale used by the scheduler formulas.
func (r Result) Quality() int {
	switch r {
	case ResultCorrect:
		return 5
	case ResultPartial:
		return 3
	case ResultIncorrect:
		return 1
	default: // skipped
		return 0
	}
}

// ─── Persisted rows ──────────────────────────────────────────────────────────

// ConceptProgress is the per-concept mastery and scheduling state.
// Timestamps are sqlite text in UTC ("2006-01-02 15:04:05").
type ConceptProgress struct {
	ConceptID    string  `json:"concept_id"`
	Level        int     `json:"level"`
	Easiness     float64 `json:"easiness_factor"`
	IntervalDays int     `json:"interval_days"`
	NextReview   *string `json:"next_review,omitempty"`
	Attempts     int     `json:"total_attempts"`
	CorrectCount int     `json:"correct_count"`
	CreatedAt    string  `json:"created_at"`
}

// LearningRecord is one append-only log entry: the level a question was asked
// at and how it went. Records are never updated or deleted.
type LearningRecord struct {
	ID        int64  `json:"id"`
	ConceptID string `json:"concept_id"`
	Level     int    `json:"level"`
	Result    Result `json:"result"`
	CreatedAt string `json:"created_at"`
}

// SessionState is the singleton fatigue-tracking row. Daily counters are
// reset lazily when a read observes a new calendar day.
type SessionState struct {
	QuestionsToday   int     `json:"questions_today"`
	LastQuestionAt   *string `json:"last_question_at,omitempty"`
	ConsecutiveSkips int     `json:"consecutive_skips"`
	LastResetDate    string  `json:"last_reset_date"`
}

// ModeState is the singleton questioning-mode row. Both toggles default to
// true; a pause is a single absolute deadline cleared once observed expired.
type ModeState struct {
	SeniorEnabled bool    `json:"senior_enabled"`
	AfterEnabled  bool    `json:"after_enabled"`
	PausedUntil   *string `json:"paused_until,omitempty"`
	FocusArea     *string `json:"focus_area,omitempty"`
}

// KnowledgeGap is an "unknown unknown": a concept the agent flagged as
// adjacent to the user's work that they may not know yet.
type KnowledgeGap struct {
	ConceptID    string `json:"concept_id"`
	RelatedTo    string `json:"related_to"`
	Context      string `json:"context,omitempty"`
	WhyImportant string `json:"why_important,omitempty"`
	Appearances  int    `json:"appearances"`
	FirstSeen    string `json:"first_seen"`
	Explored     bool   `json:"explored"`
}

// ─── Partial updates ─────────────────────────────────────────────────────────

// ProgressUpdate holds partial update fields for a concept's progress row.
// Nil pointers leave the column untouched; deltas are additive.
type ProgressUpdate struct {
	Level        *int
	Easiness     *float64
	IntervalDays *int
	NextReview   *string
	AttemptDelta int
	CorrectDelta int
}

// SessionUpdate holds partial update fields for the session singleton.
type SessionUpdate struct {
	QuestionsToday   *int
	LastQuestionAt   *string
	ConsecutiveSkips *int
	LastResetDate    *string
}

// ModeUpdate holds partial update fields for the mode singleton.
// ClearPause and ClearFocus null the column; they win over the pointer field.
type ModeUpdate struct {
	SeniorEnabled *bool
	AfterEnabled  *bool
	PausedUntil   *string
	ClearPause    bool
	FocusArea     *string
	ClearFocus    bool
}

// GapParams holds the input for registering a knowledge gap.
type GapParams struct {
	ConceptID    string
	RelatedTo    string
	Context      string
	WhyImportant string
}

// ─── Operation results ───────────────────────────────────────────────────────

// ConceptLevel is the read-side summary for a single concept.
type ConceptLevel struct {
	ConceptID    string  `json:"concept_id"`
	CurrentLevel int     `json:"current_level"`
	Attempts     int     `json:"total_attempts"`
	LastSeen     *string `json:"last_seen,omitempty"`
}

// RecordOutcome describes what a RecordLearning call changed.
type RecordOutcome struct {
	Recorded         bool   `json:"recorded"`
	NewLevel         int    `json:"new_level"`
	NextReview       string `json:"next_review,omitempty"` // ISO date (2006-01-02)
	Message          string `json:"message"`
	LevelChanged     bool   `json:"level_changed"`
	ConsecutiveSkips int    `json:"consecutive_skips"`
}

// AskDecision is the fatigue gate's verdict. PendingReviews is populated
// regardless of ShouldAsk so callers can reason about backlog while gated.
type AskDecision struct {
	ShouldAsk        bool   `json:"should_ask"`
	Reason           string `json:"reason"`
	PendingReviews   int    `json:"pending_reviews"`
	ConsecutiveSkips int    `json:"consecutive_skips"`
}

// DueReview is one overdue concept in the review backlog.
type DueReview struct {
	ConceptID    string `json:"concept_id"`
	CurrentLevel int    `json:"current_level"`
	DaysOverdue  int    `json:"days_overdue"`
	LastResult   Result `json:"last_result,omitempty"`
}

// Stats holds aggregate learning statistics.
type Stats struct {
	TotalConcepts int         `json:"total_concepts"`
	TotalRecords  int         `json:"total_records"`
	CorrectCount  int         `json:"correct_count"`
	Accuracy      float64     `json:"accuracy"`
	ByLevel       map[int]int `json:"by_level"`
	DueCount      int         `json:"due_count"`
	OpenGaps      int         `json:"open_gaps"`
}
