package learning

// Mastery levels run 1 (beginner) to 5 (expert). New concepts start at the
// mid-level default so experienced users aren't insulted with beginner
// questions on first contact.

const (
	// MinLevel and MaxLevel bound the mastery scale.
	MinLevel = 1
	MaxLevel = 5
)

// NextLevel decides the level after one answer. It is a pure function of the
// current level, the records persisted before this answer, and the result:
//
//   - correct: level up by exactly one when the recent window shows
//     sustained correctness (threshold−1 corrects among the last
//     threshold prior records), never past MaxLevel.
//   - incorrect: level down by exactly one immediately — fast recalibration
//     to the user's true level beats hysteresis.
//   - partial, skipped: unchanged.
func NextLevel(cfg Config, current int, prior []LearningRecord, result Result) int {
	current = clampLevel(current)

	switch result {
	case ResultCorrect:
		window := cfg.LevelUpThreshold
		need := window - 1
		if need < 1 {
			need = 1
		}
		if current < MaxLevel && correctsInWindow(prior, window) >= need {
			return current + 1
		}
		return current
	case ResultIncorrect:
		if current > MinLevel {
			return current - 1
		}
		return current
	default:
		return current
	}
}

// correctsInWindow counts correct results among the first n records of a
// most-recent-first slice.
func correctsInWindow(records []LearningRecord, n int) int {
	if n > len(records) {
		n = len(records)
	}
	count := 0
	for _, rec := range records[:n] {
		if rec.Result == ResultCorrect {
			count++
		}
	}
	return count
}

func clampLevel(level int) int {
	if level < MinLevel {
		return MinLevel
	}
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}
