// Package learning implements the learning progression engine for VibeLearn.
//
// It tracks a person's depth of understanding of software-engineering
// concepts met during coding sessions and decides when and what to ask so
// retention is reinforced without fatigue. Persistence is SQLite; the
// mastery-level state machine, the SM-2 review scheduler, and the fatigue
// gate all update inside one transaction per recorded answer.
package learning

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// ─── Config ──────────────────────────────────────────────────────────────────

// Config holds every tunable of the engine. All scheduling constants are
// named fields rather than literals scattered through the algorithms.
type Config struct {
	DataDir string

	// Scheduler
	DefaultLevel        int     // starting mastery level for new concepts
	InitialEasiness     float64 // EF for new concepts
	MinEasiness         float64 // EF floor after any update
	InitialIntervalDays int     // interval after the first success or a miss
	SecondIntervalDays  int     // interval after the second consecutive success
	StreakWindow        int     // records scanned when recomputing the streak

	// Level adapter
	LevelUpThreshold int // recent-window size for level-up decisions

	// Fatigue gate
	CooldownMinutes   int           // minimum minutes between questions
	SkipThreshold     int           // consecutive skips before auto-pause
	AutoPauseDuration time.Duration // pause applied when the threshold trips

	MaxDueResults int // cap for due-review listings
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{
		DataDir:             filepath.Join(home, ".vibelearn"),
		DefaultLevel:        3,
		InitialEasiness:     2.5,
		MinEasiness:         1.3,
		InitialIntervalDays: 1,
		SecondIntervalDays:  6,
		StreakWindow:        10,
		LevelUpThreshold:    2,
		CooldownMinutes:     15,
		SkipThreshold:       2,
		AutoPauseDuration:   time.Hour,
		MaxDueResults:       20,
	}
}

// ─── Store ───────────────────────────────────────────────────────────────────

// Repository is the persistence contract the engine works against. The
// Store implements it directly for reads; Transact provides a tx-scoped
// Repository so every write touched by one RecordLearning call commits
// atomically.
type Repository interface {
	GetOrCreateConceptProgress(id string) (*ConceptProgress, error)
	UpdateConceptProgress(id string, u ProgressUpdate) error
	AppendLearningRecord(rec LearningRecord) (*LearningRecord, error)
	RecentRecords(conceptID string, limit int) ([]LearningRecord, error)
	DueConcepts(limit int) ([]ConceptProgress, error)
	CountDue() (int, error)
	SessionState() (*SessionState, error)
	UpdateSessionState(u SessionUpdate) error
	ModeState() (*ModeState, error)
	UpdateModeState(u ModeUpdate) error
	RecordGap(p GapParams) (*KnowledgeGap, error)
	ListGaps(limit int, includeExplored bool) ([]KnowledgeGap, error)
	MarkGapExplored(conceptID string) error
}

// Store is the sqlite-backed repository.
type Store struct {
	db  *sql.DB
	cfg Config
}

// queryable is satisfied by both *sql.DB and *sql.Tx.
type queryable interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// repo binds the SQL implementation to either the root connection or a tx.
type repo struct {
	q   queryable
	cfg Config
}

// New creates a Store: it creates the data directory if needed, opens
// SQLite with WAL mode, and runs migrations.
func New(cfg Config) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, fmt.Errorf("learning: create data dir: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, "learning.db")
	db, err := openDB("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("learning: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("learning: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, cfg: cfg}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("learning: migration: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Config returns the store's configuration.
func (s *Store) Config() Config {
	return s.cfg
}

// Transact runs fn against a tx-scoped Repository. Any error rolls the
// whole transaction back.
func (s *Store) Transact(fn func(Repository) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(&repo{q: tx, cfg: s.cfg}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *Store) root() *repo {
	return &repo{q: s.db, cfg: s.cfg}
}

// ─── Migrations ──────────────────────────────────────────────────────────────

// migrations are ordered and idempotent per run: each entry applies inside
// its own transaction and bumps schema_version, so partially-upgraded
// databases resume cleanly. Never sniff columns to infer schema state.
var migrations = []string{
	// v1: core tables
	`
	CREATE TABLE concept_progress (
		concept_id      TEXT PRIMARY KEY,
		current_level   INTEGER NOT NULL,
		easiness_factor REAL    NOT NULL,
		interval_days   INTEGER NOT NULL DEFAULT 1,
		next_review     TEXT,
		total_attempts  INTEGER NOT NULL DEFAULT 0,
		correct_count   INTEGER NOT NULL DEFAULT 0,
		created_at      TEXT    NOT NULL DEFAULT (datetime('now')),
		CHECK (current_level BETWEEN 1 AND 5),
		CHECK (interval_days >= 1),
		CHECK (total_attempts >= 0),
		CHECK (correct_count >= 0)
	);

	CREATE TABLE learning_records (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		concept_id TEXT    NOT NULL,
		level      INTEGER NOT NULL,
		result     TEXT    NOT NULL,
		created_at TEXT    NOT NULL DEFAULT (datetime('now')),
		CHECK (result IN ('correct', 'partial', 'incorrect', 'skipped'))
	);

	CREATE INDEX idx_records_concept ON learning_records(concept_id, created_at DESC);
	CREATE INDEX idx_progress_due    ON concept_progress(next_review);

	CREATE TABLE session_state (
		id                INTEGER PRIMARY KEY CHECK (id = 1),
		questions_today   INTEGER NOT NULL DEFAULT 0,
		last_question_at  TEXT,
		consecutive_skips INTEGER NOT NULL DEFAULT 0,
		last_reset_date   TEXT    NOT NULL
	);

	CREATE TABLE mode_state (
		id             INTEGER PRIMARY KEY CHECK (id = 1),
		senior_enabled INTEGER NOT NULL DEFAULT 1,
		after_enabled  INTEGER NOT NULL DEFAULT 1,
		paused_until   TEXT,
		focus_area     TEXT
	);
	`,
	// v2: knowledge gaps ("unknown unknowns")
	`
	CREATE TABLE knowledge_gaps (
		concept_id    TEXT PRIMARY KEY,
		related_to    TEXT NOT NULL,
		context       TEXT,
		why_important TEXT,
		appearances   INTEGER NOT NULL DEFAULT 1,
		first_seen    TEXT    NOT NULL DEFAULT (datetime('now')),
		explored      INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX idx_gaps_open ON knowledge_gaps(explored, appearances DESC);
	`,
}

func (s *Store) migrate() error {
	if _, err := s.db.Exec(
		`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`,
	); err != nil {
		return err
	}

	var version int
	if err := s.db.QueryRow(
		`SELECT COALESCE(MAX(version), 0) FROM schema_version`,
	).Scan(&version); err != nil {
		return err
	}

	for v := version; v < len(migrations); v++ {
		tx, err := s.db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(migrations[v]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d: %w", v+1, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_version (version) VALUES (?)`, v+1); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d: record version: %w", v+1, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migration %d: commit: %w", v+1, err)
		}
	}

	return nil
}

// SchemaVersion returns the current schema version, for diagnostics.
func (s *Store) SchemaVersion() (int, error) {
	var version int
	err := s.db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&version)
	return version, err
}

// ─── Store delegation (read side uses the root connection) ───────────────────

func (s *Store) GetOrCreateConceptProgress(id string) (*ConceptProgress, error) {
	return s.root().GetOrCreateConceptProgress(id)
}
func (s *Store) UpdateConceptProgress(id string, u ProgressUpdate) error {
	return s.root().UpdateConceptProgress(id, u)
}
func (s *Store) AppendLearningRecord(rec LearningRecord) (*LearningRecord, error) {
	return s.root().AppendLearningRecord(rec)
}
func (s *Store) RecentRecords(conceptID string, limit int) ([]LearningRecord, error) {
	return s.root().RecentRecords(conceptID, limit)
}
func (s *Store) DueConcepts(limit int) ([]ConceptProgress, error) {
	return s.root().DueConcepts(limit)
}
func (s *Store) CountDue() (int, error) { return s.root().CountDue() }
func (s *Store) SessionState() (*SessionState, error) {
	return s.root().SessionState()
}
func (s *Store) UpdateSessionState(u SessionUpdate) error {
	return s.root().UpdateSessionState(u)
}
func (s *Store) ModeState() (*ModeState, error) { return s.root().ModeState() }
func (s *Store) UpdateModeState(u ModeUpdate) error {
	return s.root().UpdateModeState(u)
}
func (s *Store) RecordGap(p GapParams) (*KnowledgeGap, error) {
	return s.root().RecordGap(p)
}
func (s *Store) ListGaps(limit int, includeExplored bool) ([]KnowledgeGap, error) {
	return s.root().ListGaps(limit, includeExplored)
}
func (s *Store) MarkGapExplored(conceptID string) error {
	return s.root().MarkGapExplored(conceptID)
}

// ─── Concept progress ────────────────────────────────────────────────────────

const progressColumns = `concept_id, current_level, easiness_factor, interval_days,
	next_review, total_attempts, correct_count, created_at`

// GetOrCreateConceptProgress fetches a concept's progress row, lazily
// creating it at the mid-level default on first reference.
func (r *repo) GetOrCreateConceptProgress(id string) (*ConceptProgress, error) {
	p, err := r.getProgress(id)
	if err == nil {
		return p, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	// INSERT OR IGNORE tolerates a concurrent creator; re-read wins either way.
	if _, err := r.q.Exec(
		`INSERT OR IGNORE INTO concept_progress
		 (concept_id, current_level, easiness_factor, interval_days, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		id, r.cfg.DefaultLevel, r.cfg.InitialEasiness, r.cfg.InitialIntervalDays, Now(),
	); err != nil {
		return nil, fmt.Errorf("create concept progress: %w", err)
	}

	p, err = r.getProgress(id)
	if err != nil {
		return nil, fmt.Errorf("reread concept progress: %w", err)
	}
	return p, nil
}

func (r *repo) getProgress(id string) (*ConceptProgress, error) {
	row := r.q.QueryRow(
		`SELECT `+progressColumns+` FROM concept_progress WHERE concept_id = ?`, id,
	)
	var p ConceptProgress
	if err := row.Scan(
		&p.ConceptID, &p.Level, &p.Easiness, &p.IntervalDays,
		&p.NextReview, &p.Attempts, &p.CorrectCount, &p.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateConceptProgress applies a partial update. Nil fields are untouched;
// attempt/correct deltas are additive so concurrent counters never clobber.
func (r *repo) UpdateConceptProgress(id string, u ProgressUpdate) error {
	var sets []string
	var args []any

	if u.Level != nil {
		sets = append(sets, "current_level = ?")
		args = append(args, *u.Level)
	}
	if u.Easiness != nil {
		sets = append(sets, "easiness_factor = ?")
		args = append(args, *u.Easiness)
	}
	if u.IntervalDays != nil {
		sets = append(sets, "interval_days = ?")
		args = append(args, *u.IntervalDays)
	}
	if u.NextReview != nil {
		sets = append(sets, "next_review = ?")
		args = append(args, *u.NextReview)
	}
	if u.AttemptDelta != 0 {
		sets = append(sets, "total_attempts = total_attempts + ?")
		args = append(args, u.AttemptDelta)
	}
	if u.CorrectDelta != 0 {
		sets = append(sets, "correct_count = correct_count + ?")
		args = append(args, u.CorrectDelta)
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	res, err := r.q.Exec(
		`UPDATE concept_progress SET `+strings.Join(sets, ", ")+` WHERE concept_id = ?`,
		args...,
	)
	if err != nil {
		return fmt.Errorf("update concept progress: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ─── Learning records ────────────────────────────────────────────────────────

// AppendLearningRecord appends one immutable log entry and returns it with
// its assigned id and timestamp.
func (r *repo) AppendLearningRecord(rec LearningRecord) (*LearningRecord, error) {
	createdAt := rec.CreatedAt
	if createdAt == "" {
		createdAt = Now()
	}
	res, err := r.q.Exec(
		`INSERT INTO learning_records (concept_id, level, result, created_at)
		 VALUES (?, ?, ?, ?)`,
		rec.ConceptID, rec.Level, string(rec.Result), createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("append learning record: %w", err)
	}
	id, _ := res.LastInsertId()
	rec.ID = id
	rec.CreatedAt = createdAt
	return &rec, nil
}

// RecentRecords returns a concept's records, most recent first.
func (r *repo) RecentRecords(conceptID string, limit int) ([]LearningRecord, error) {
	if limit <= 0 {
		limit = r.cfg.StreakWindow
	}
	rows, err := r.q.Query(
		`SELECT id, concept_id, level, result, created_at
		 FROM learning_records
		 WHERE concept_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		conceptID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("recent records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []LearningRecord
	for rows.Next() {
		var rec LearningRecord
		var result string
		if err := rows.Scan(&rec.ID, &rec.ConceptID, &rec.Level, &result, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.Result = Result(result)
		results = append(results, rec)
	}
	return results, rows.Err()
}

// ─── Due reviews ─────────────────────────────────────────────────────────────

// DueConcepts returns concepts whose next review is at or before now,
// most overdue first.
func (r *repo) DueConcepts(limit int) ([]ConceptProgress, error) {
	if limit <= 0 {
		limit = r.cfg.MaxDueResults
	}
	rows, err := r.q.Query(
		`SELECT `+progressColumns+`
		 FROM concept_progress
		 WHERE next_review IS NOT NULL AND next_review <= ?
		 ORDER BY next_review ASC
		 LIMIT ?`,
		Now(), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("due concepts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []ConceptProgress
	for rows.Next() {
		var p ConceptProgress
		if err := rows.Scan(
			&p.ConceptID, &p.Level, &p.Easiness, &p.IntervalDays,
			&p.NextReview, &p.Attempts, &p.CorrectCount, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		results = append(results, p)
	}
	return results, rows.Err()
}

// CountDue returns the size of the review backlog.
func (r *repo) CountDue() (int, error) {
	var n int
	err := r.q.QueryRow(
		`SELECT COUNT(*) FROM concept_progress
		 WHERE next_review IS NOT NULL AND next_review <= ?`,
		Now(),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count due: %w", err)
	}
	return n, nil
}

// ─── Session state ───────────────────────────────────────────────────────────

// SessionState returns the singleton session row, creating it on first read.
func (r *repo) SessionState() (*SessionState, error) {
	st, err := r.getSession()
	if err == nil {
		return st, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	if _, err := r.q.Exec(
		`INSERT OR IGNORE INTO session_state (id, last_reset_date) VALUES (1, ?)`,
		Today(),
	); err != nil {
		return nil, fmt.Errorf("create session state: %w", err)
	}
	return r.getSession()
}

func (r *repo) getSession() (*SessionState, error) {
	row := r.q.QueryRow(
		`SELECT questions_today, last_question_at, consecutive_skips, last_reset_date
		 FROM session_state WHERE id = 1`,
	)
	var st SessionState
	if err := row.Scan(&st.QuestionsToday, &st.LastQuestionAt, &st.ConsecutiveSkips, &st.LastResetDate); err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *repo) UpdateSessionState(u SessionUpdate) error {
	if _, err := r.SessionState(); err != nil {
		return err
	}

	var sets []string
	var args []any
	if u.QuestionsToday != nil {
		sets = append(sets, "questions_today = ?")
		args = append(args, *u.QuestionsToday)
	}
	if u.LastQuestionAt != nil {
		sets = append(sets, "last_question_at = ?")
		args = append(args, *u.LastQuestionAt)
	}
	if u.ConsecutiveSkips != nil {
		sets = append(sets, "consecutive_skips = ?")
		args = append(args, *u.ConsecutiveSkips)
	}
	if u.LastResetDate != nil {
		sets = append(sets, "last_reset_date = ?")
		args = append(args, *u.LastResetDate)
	}
	if len(sets) == 0 {
		return nil
	}

	_, err := r.q.Exec(`UPDATE session_state SET `+strings.Join(sets, ", ")+` WHERE id = 1`, args...)
	if err != nil {
		return fmt.Errorf("update session state: %w", err)
	}
	return nil
}

// ─── Mode state ──────────────────────────────────────────────────────────────

// ModeState returns the singleton mode row, creating it (both toggles on)
// on first read.
func (r *repo) ModeState() (*ModeState, error) {
	m, err := r.getMode()
	if err == nil {
		return m, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	if _, err := r.q.Exec(`INSERT OR IGNORE INTO mode_state (id) VALUES (1)`); err != nil {
		return nil, fmt.Errorf("create mode state: %w", err)
	}
	return r.getMode()
}

func (r *repo) getMode() (*ModeState, error) {
	row := r.q.QueryRow(
		`SELECT senior_enabled, after_enabled, paused_until, focus_area
		 FROM mode_state WHERE id = 1`,
	)
	var m ModeState
	var senior, after int
	if err := row.Scan(&senior, &after, &m.PausedUntil, &m.FocusArea); err != nil {
		return nil, err
	}
	m.SeniorEnabled = senior != 0
	m.AfterEnabled = after != 0
	return &m, nil
}

func (r *repo) UpdateModeState(u ModeUpdate) error {
	if _, err := r.ModeState(); err != nil {
		return err
	}

	var sets []string
	var args []any
	if u.SeniorEnabled != nil {
		sets = append(sets, "senior_enabled = ?")
		args = append(args, boolToInt(*u.SeniorEnabled))
	}
	if u.AfterEnabled != nil {
		sets = append(sets, "after_enabled = ?")
		args = append(args, boolToInt(*u.AfterEnabled))
	}
	switch {
	case u.ClearPause:
		sets = append(sets, "paused_until = NULL")
	case u.PausedUntil != nil:
		sets = append(sets, "paused_until = ?")
		args = append(args, *u.PausedUntil)
	}
	switch {
	case u.ClearFocus:
		sets = append(sets, "focus_area = NULL")
	case u.FocusArea != nil:
		sets = append(sets, "focus_area = ?")
		args = append(args, *u.FocusArea)
	}
	if len(sets) == 0 {
		return nil
	}

	_, err := r.q.Exec(`UPDATE mode_state SET `+strings.Join(sets, ", ")+` WHERE id = 1`, args...)
	if err != nil {
		return fmt.Errorf("update mode state: %w", err)
	}
	return nil
}

// ─── Knowledge gaps ──────────────────────────────────────────────────────────

// RecordGap upserts an unknown-unknown. Re-registering an existing gap
// bumps its appearance count and refreshes any non-empty context fields.
func (r *repo) RecordGap(p GapParams) (*KnowledgeGap, error) {
	if _, err := r.q.Exec(
		`INSERT INTO knowledge_gaps (concept_id, related_to, context, why_important, first_seen)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(concept_id) DO UPDATE SET
			appearances   = appearances + 1,
			related_to    = COALESCE(NULLIF(excluded.related_to, ''), related_to),
			context       = COALESCE(NULLIF(excluded.context, ''), context),
			why_important = COALESCE(NULLIF(excluded.why_important, ''), why_important)`,
		p.ConceptID, p.RelatedTo, nullableString(p.Context), nullableString(p.WhyImportant), Now(),
	); err != nil {
		return nil, fmt.Errorf("record gap: %w", err)
	}
	return r.getGap(p.ConceptID)
}

func (r *repo) getGap(conceptID string) (*KnowledgeGap, error) {
	row := r.q.QueryRow(
		`SELECT concept_id, related_to, COALESCE(context, ''), COALESCE(why_important, ''),
		        appearances, first_seen, explored
		 FROM knowledge_gaps WHERE concept_id = ?`,
		conceptID,
	)
	var g KnowledgeGap
	var explored int
	if err := row.Scan(&g.ConceptID, &g.RelatedTo, &g.Context, &g.WhyImportant,
		&g.Appearances, &g.FirstSeen, &explored); err != nil {
		return nil, err
	}
	g.Explored = explored != 0
	return &g, nil
}

// ListGaps returns gaps ordered by appearance count, newest first among ties.
func (r *repo) ListGaps(limit int, includeExplored bool) ([]KnowledgeGap, error) {
	if limit <= 0 {
		limit = 5
	}
	query := `SELECT concept_id, related_to, COALESCE(context, ''), COALESCE(why_important, ''),
	                 appearances, first_seen, explored
	          FROM knowledge_gaps`
	if !includeExplored {
		query += ` WHERE explored = 0`
	}
	query += ` ORDER BY appearances DESC, first_seen DESC LIMIT ?`

	rows, err := r.q.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("list gaps: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []KnowledgeGap
	for rows.Next() {
		var g KnowledgeGap
		var explored int
		if err := rows.Scan(&g.ConceptID, &g.RelatedTo, &g.Context, &g.WhyImportant,
			&g.Appearances, &g.FirstSeen, &explored); err != nil {
			return nil, err
		}
		g.Explored = explored != 0
		results = append(results, g)
	}
	return results, rows.Err()
}

// MarkGapExplored flags a gap as explored. Marking a concept that has no
// gap row is a no-op, not an error.
func (r *repo) MarkGapExplored(conceptID string) error {
	_, err := r.q.Exec(
		`UPDATE knowledge_gaps SET explored = 1 WHERE concept_id = ?`, conceptID,
	)
	if err != nil {
		return fmt.Errorf("mark gap explored: %w", err)
	}
	return nil
}

// ─── Stats ───────────────────────────────────────────────────────────────────

// Stats returns aggregate learning statistics.
func (s *Store) Stats() (*Stats, error) {
	st := &Stats{ByLevel: map[int]int{}}

	_ = s.db.QueryRow(`SELECT COUNT(*) FROM concept_progress`).Scan(&st.TotalConcepts)
	_ = s.db.QueryRow(`SELECT COUNT(*) FROM learning_records`).Scan(&st.TotalRecords)
	_ = s.db.QueryRow(`SELECT COUNT(*) FROM learning_records WHERE result = 'correct'`).Scan(&st.CorrectCount)
	_ = s.db.QueryRow(`SELECT COUNT(*) FROM knowledge_gaps WHERE explored = 0`).Scan(&st.OpenGaps)

	if due, err := s.CountDue(); err == nil {
		st.DueCount = due
	}

	// Accuracy over answered (non-skipped) records only.
	var answered int
	_ = s.db.QueryRow(`SELECT COUNT(*) FROM learning_records WHERE result != 'skipped'`).Scan(&answered)
	if answered > 0 {
		st.Accuracy = float64(st.CorrectCount) / float64(answered)
	}

	rows, err := s.db.Query(`SELECT current_level, COUNT(*) FROM concept_progress GROUP BY current_level`)
	if err != nil {
		return st, nil
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var level, count int
		if err := rows.Scan(&level, &count); err == nil {
			st.ByLevel[level] = count
		}
	}

	return st, nil
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
