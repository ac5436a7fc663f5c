package learning

import (
	"math"
	"time"
)

// The review scheduler is an SM-2 derivative: successful recalls grow the
// interval (modulated by a per-concept easiness factor), a clear miss resets
// it, and a skip leaves the schedule exactly where it was.

// ScheduleState is the scheduler's view of a concept before an answer.
type ScheduleState struct {
	Easiness     float64
	IntervalDays int
	Streak       int // consecutive successful repetitions, freshly recomputed
}

// Schedule is the scheduler's output after an answer.
type Schedule struct {
	Easiness     float64
	IntervalDays int
	NextReview   time.Time
}

// Reschedule applies the SM-2 update rule for one answer.
//
// Quality 0 (skipped) changes nothing: a skip must never penalize the
// scheduling history, and the item resurfaces at its existing due point.
func Reschedule(cfg Config, state ScheduleState, result Result, now time.Time) Schedule {
	q := result.Quality()

	ef := state.Easiness
	interval := state.IntervalDays
	if interval < 1 {
		interval = 1
	}

	if q == 0 {
		return Schedule{
			Easiness:     ef,
			IntervalDays: interval,
			NextReview:   now.UTC().AddDate(0, 0, interval),
		}
	}

	// EF' = EF + (0.1 − (5−q)·(0.08 + (5−q)·0.02)), clamped to the floor.
	diff := float64(5 - q)
	ef += 0.1 - diff*(0.08+diff*0.02)
	if ef < cfg.MinEasiness {
		ef = cfg.MinEasiness
	}

	switch {
	case q < 3:
		// A clear miss recalibrates the schedule quickly.
		interval = cfg.InitialIntervalDays
	case state.Streak == 0:
		interval = cfg.InitialIntervalDays
	case state.Streak == 1:
		interval = cfg.SecondIntervalDays
	default:
		interval = int(math.Round(float64(interval) * ef))
	}
	if interval < 1 {
		interval = 1
	}

	return Schedule{
		Easiness:     ef,
		IntervalDays: interval,
		NextReview:   now.UTC().AddDate(0, 0, interval),
	}
}

// RepetitionStreak counts consecutive successful repetitions walking from
// the most recent record: correct and partial extend the streak, incorrect
// terminates it, skipped is ignored entirely. The streak is recomputed fresh
// on every call — persisting a counter would be a second source of truth
// that could drift from the record log.
func RepetitionStreak(records []LearningRecord) int {
	streak := 0
	for _, rec := range records {
		switch rec.Result {
		case ResultCorrect, ResultPartial:
			streak++
		case ResultIncorrect:
			return streak
		case ResultSkipped:
			// neither extends nor breaks
		}
	}
	return streak
}
