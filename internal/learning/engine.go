package learning

import (
	"fmt"
	"log"
	"regexp"
	"strings"
)

// Engine composes the scheduler, the level adapter, and the fatigue gate
// over a Store. Every recorded answer updates all three inside a single
// transaction; the engine itself holds no mutable state and performs no
// locking of its own.
type Engine struct {
	store *Store
	cfg   Config
}

// NewEngine creates an Engine over the given store.
func NewEngine(store *Store) *Engine {
	return &Engine{store: store, cfg: store.Config()}
}

// conceptIDJunk matches everything a concept id may not contain.
var conceptIDJunk = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeConceptID lowercases and hyphenates a concept identifier
// ("Cache Aside!" → "cache-aside"). Empty-after-normalization is a
// validation error.
func NormalizeConceptID(raw string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	v = conceptIDJunk.ReplaceAllString(v, " ")
	v = strings.Join(strings.Fields(v), "-")
	if v == "" {
		return "", validationErr("normalize concept id", "concept id must not be empty")
	}
	if len(v) > 100 {
		v = v[:100]
	}
	return v, nil
}

// GetConceptLevel returns the summary for one concept, lazily creating its
// progress row at the mid-level default on first reference.
func (e *Engine) GetConceptLevel(conceptID string) (*ConceptLevel, error) {
	id, err := NormalizeConceptID(conceptID)
	if err != nil {
		return nil, err
	}

	progress, err := e.store.GetOrCreateConceptProgress(id)
	if err != nil {
		return nil, storageErr("get concept level", err)
	}

	summary := &ConceptLevel{
		ConceptID:    id,
		CurrentLevel: progress.Level,
		Attempts:     progress.Attempts,
	}

	records, err := e.store.RecentRecords(id, 1)
	if err != nil {
		return nil, storageErr("get concept level", err)
	}
	if len(records) > 0 {
		summary.LastSeen = &records[0].CreatedAt
	}
	return summary, nil
}

// RecordLearning records one answer: it appends the audit record, then —
// for non-skips — runs the level adapter and the scheduler and updates the
// fatigue counters, all in one transaction. Validation happens before any
// mutation.
func (e *Engine) RecordLearning(conceptID string, level int, result string) (*RecordOutcome, error) {
	id, err := NormalizeConceptID(conceptID)
	if err != nil {
		return nil, err
	}
	if level < MinLevel || level > MaxLevel {
		return nil, validationErr("record learning",
			fmt.Sprintf("level %d out of range [%d,%d]", level, MinLevel, MaxLevel))
	}
	res, err := ParseResult(result)
	if err != nil {
		return nil, err
	}

	var out RecordOutcome
	err = e.store.Transact(func(r Repository) error {
		session, err := e.freshSession(r)
		if err != nil {
			return err
		}

		progress, err := r.GetOrCreateConceptProgress(id)
		if err != nil {
			return err
		}

		// Prior history, fetched before the new record lands: both the
		// streak and the level window see only what came before this answer.
		window := e.cfg.StreakWindow
		if e.cfg.LevelUpThreshold > window {
			window = e.cfg.LevelUpThreshold
		}
		prior, err := r.RecentRecords(id, window)
		if err != nil {
			return err
		}

		// Even skips are logged, to preserve fatigue and audit history.
		if _, err := r.AppendLearningRecord(LearningRecord{
			ConceptID: id,
			Level:     level,
			Result:    res,
		}); err != nil {
			return err
		}

		if res == ResultSkipped {
			return e.recordSkip(r, session, progress, &out)
		}
		return e.recordAnswer(r, session, progress, prior, res, &out)
	})
	if err != nil {
		if IsValidation(err) || IsNotFound(err) {
			return nil, err
		}
		return nil, storageErr("record learning", err)
	}

	// Best-effort: a concept that was registered as a knowledge gap counts
	// as explored once it has a learning record. Failure here must never
	// fail the primary call.
	if err := e.store.MarkGapExplored(id); err != nil {
		log.Printf("WARNING: mark gap explored for %q: %v", id, err)
	}

	return &out, nil
}

// recordSkip applies the gate's skip transition: the skip counter grows,
// and at the threshold the gate auto-pauses and zeroes the counter.
// Scheduler and level state are untouched — a skip never penalizes the
// learner.
func (e *Engine) recordSkip(r Repository, session *SessionState, progress *ConceptProgress, out *RecordOutcome) error {
	skips := session.ConsecutiveSkips + 1
	message := "Skipped — will ask again later."

	if skips >= e.cfg.SkipThreshold {
		until := formatTime(timeNow().UTC().Add(e.cfg.AutoPauseDuration))
		if err := r.UpdateModeState(ModeUpdate{PausedUntil: &until}); err != nil {
			return err
		}
		skips = 0
		message = fmt.Sprintf("Skipped — questions paused for %s.",
			formatRemaining(e.cfg.AutoPauseDuration))
	}

	if err := r.UpdateSessionState(SessionUpdate{ConsecutiveSkips: &skips}); err != nil {
		return err
	}

	out.Recorded = true
	out.NewLevel = progress.Level
	out.LevelChanged = false
	out.ConsecutiveSkips = skips
	out.Message = message
	if progress.NextReview != nil {
		out.NextReview = dateOf(*progress.NextReview)
	}
	return nil
}

// recordAnswer applies the full non-skip path: gate recordQuestion
// transition, level adapter, scheduler, progress counters.
func (e *Engine) recordAnswer(r Repository, session *SessionState, progress *ConceptProgress,
	prior []LearningRecord, res Result, out *RecordOutcome) error {

	// recordQuestion: an answered question stamps the cooldown clock and
	// resets the skip streak.
	now := Now()
	zero := 0
	questions := session.QuestionsToday + 1
	if err := r.UpdateSessionState(SessionUpdate{
		QuestionsToday:   &questions,
		LastQuestionAt:   &now,
		ConsecutiveSkips: &zero,
	}); err != nil {
		return err
	}

	newLevel := NextLevel(e.cfg, progress.Level, prior, res)

	schedule := Reschedule(e.cfg, ScheduleState{
		Easiness:     progress.Easiness,
		IntervalDays: progress.IntervalDays,
		Streak:       RepetitionStreak(prior),
	}, res, timeNow())

	nextReview := formatTime(schedule.NextReview)
	correctDelta := 0
	if res == ResultCorrect {
		correctDelta = 1
	}
	if err := r.UpdateConceptProgress(progress.ConceptID, ProgressUpdate{
		Level:        &newLevel,
		Easiness:     &schedule.Easiness,
		IntervalDays: &schedule.IntervalDays,
		NextReview:   &nextReview,
		AttemptDelta: 1,
		CorrectDelta: correctDelta,
	}); err != nil {
		return err
	}

	out.Recorded = true
	out.NewLevel = newLevel
	out.LevelChanged = newLevel != progress.Level
	out.ConsecutiveSkips = 0
	out.NextReview = schedule.NextReview.Format(isoDate)
	out.Message = outcomeMessage(res, newLevel, progress.Level, schedule.IntervalDays)
	return nil
}

func outcomeMessage(res Result, newLevel, oldLevel, intervalDays int) string {
	switch {
	case newLevel > oldLevel:
		return fmt.Sprintf("Level up! Now at level %d. Next review in %d days.", newLevel, intervalDays)
	case newLevel < oldLevel:
		return fmt.Sprintf("Recalibrated to level %d. Next review in %d days.", newLevel, intervalDays)
	case res == ResultPartial:
		return fmt.Sprintf("Partially correct. Next review in %d days.", intervalDays)
	case res == ResultIncorrect:
		return fmt.Sprintf("Not quite. Next review in %d days.", intervalDays)
	default:
		return fmt.Sprintf("Correct. Next review in %d days.", intervalDays)
	}
}

// ShouldAskQuestion is the fatigue gate: it never mutates anything except
// the lazy self-heal of expired pause windows and stale daily counters.
func (e *Engine) ShouldAskQuestion() (*AskDecision, error) {
	mode, err := e.GetMode()
	if err != nil {
		return nil, err
	}

	var session *SessionState
	err = e.store.Transact(func(r Repository) error {
		session, err = e.freshSession(r)
		return err
	})
	if err != nil {
		return nil, storageErr("should ask question", err)
	}

	pending, err := e.store.CountDue()
	if err != nil {
		return nil, storageErr("should ask question", err)
	}

	shouldAsk, reason := gateDecision(e.cfg, *mode, *session, timeNow())
	return &AskDecision{
		ShouldAsk:        shouldAsk,
		Reason:           reason,
		PendingReviews:   pending,
		ConsecutiveSkips: session.ConsecutiveSkips,
	}, nil
}

// DueReviews lists the overdue backlog, most overdue first.
func (e *Engine) DueReviews(limit int) ([]DueReview, error) {
	if limit <= 0 || limit > e.cfg.MaxDueResults {
		limit = e.cfg.MaxDueResults
	}
	due, err := e.store.DueConcepts(limit)
	if err != nil {
		return nil, storageErr("due reviews", err)
	}

	now := timeNow()
	reviews := make([]DueReview, 0, len(due))
	for _, p := range due {
		review := DueReview{
			ConceptID:    p.ConceptID,
			CurrentLevel: p.Level,
		}
		if p.NextReview != nil {
			review.DaysOverdue = daysOverdue(*p.NextReview, now)
		}
		records, err := e.store.RecentRecords(p.ConceptID, 1)
		if err != nil {
			return nil, storageErr("due reviews", err)
		}
		if len(records) > 0 {
			review.LastResult = records[0].Result
		}
		reviews = append(reviews, review)
	}
	return reviews, nil
}

// Stats returns aggregate statistics over the whole store.
func (e *Engine) Stats() (*Stats, error) {
	st, err := e.store.Stats()
	if err != nil {
		return nil, storageErr("stats", err)
	}
	return st, nil
}

// freshSession reads the session singleton and lazily applies the daily
// reset: on the first read of a new UTC calendar day, the per-day counters
// zero out. lastQuestionAt survives so the cooldown can't be dodged at
// midnight.
func (e *Engine) freshSession(r Repository) (*SessionState, error) {
	session, err := r.SessionState()
	if err != nil {
		return nil, err
	}

	today := Today()
	if session.LastResetDate == today {
		return session, nil
	}

	zero := 0
	if err := r.UpdateSessionState(SessionUpdate{
		QuestionsToday:   &zero,
		ConsecutiveSkips: &zero,
		LastResetDate:    &today,
	}); err != nil {
		return nil, err
	}
	session.QuestionsToday = 0
	session.ConsecutiveSkips = 0
	session.LastResetDate = today
	return session, nil
}
