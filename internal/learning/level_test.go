package learning

import "testing"

func TestNextLevelCorrectNeedsPriorEvidence(t *testing.T) {
	cfg := schedCfg()

	// First-ever correct answer: no prior records, level holds.
	if got := NextLevel(cfg, 3, nil, ResultCorrect); got != 3 {
		t.Fatalf("first correct should not level up, got %d", got)
	}

	// One prior correct inside the window: level up.
	prior := []LearningRecord{{Result: ResultCorrect}}
	if got := NextLevel(cfg, 3, prior, ResultCorrect); got != 4 {
		t.Fatalf("sustained correctness should level up, got %d", got)
	}
}

func TestNextLevelUpIsSingleStep(t *testing.T) {
	cfg := schedCfg()
	prior := []LearningRecord{
		{Result: ResultCorrect},
		{Result: ResultCorrect},
		{Result: ResultCorrect},
	}
	if got := NextLevel(cfg, 2, prior, ResultCorrect); got != 3 {
		t.Fatalf("level up must be exactly one step, got %d", got)
	}
}

func TestNextLevelWindowIsMostRecent(t *testing.T) {
	cfg := schedCfg() // window 2, needs 1 correct among the last 2

	// The only correct sits outside the window.
	prior := []LearningRecord{
		{Result: ResultPartial},
		{Result: ResultPartial},
		{Result: ResultCorrect},
	}
	if got := NextLevel(cfg, 3, prior, ResultCorrect); got != 3 {
		t.Fatalf("correct outside the window should not count, got %d", got)
	}
}

func TestNextLevelCapsAtMax(t *testing.T) {
	cfg := schedCfg()
	prior := []LearningRecord{{Result: ResultCorrect}, {Result: ResultCorrect}}
	if got := NextLevel(cfg, MaxLevel, prior, ResultCorrect); got != MaxLevel {
		t.Fatalf("level must cap at %d, got %d", MaxLevel, got)
	}
}

func TestNextLevelIncorrectDropsImmediately(t *testing.T) {
	cfg := schedCfg()
	if got := NextLevel(cfg, 4, nil, ResultIncorrect); got != 3 {
		t.Fatalf("incorrect should drop one level, got %d", got)
	}
	if got := NextLevel(cfg, MinLevel, nil, ResultIncorrect); got != MinLevel {
		t.Fatalf("level must floor at %d, got %d", MinLevel, got)
	}
}

func TestNextLevelPartialAndSkipHold(t *testing.T) {
	cfg := schedCfg()
	prior := []LearningRecord{{Result: ResultCorrect}, {Result: ResultCorrect}}

	if got := NextLevel(cfg, 3, prior, ResultPartial); got != 3 {
		t.Fatalf("partial should hold the level, got %d", got)
	}
	if got := NextLevel(cfg, 3, prior, ResultSkipped); got != 3 {
		t.Fatalf("skip should hold the level, got %d", got)
	}
}

func TestNextLevelClampsOutOfRangeInput(t *testing.T) {
	cfg := schedCfg()
	if got := NextLevel(cfg, 0, nil, ResultPartial); got != MinLevel {
		t.Fatalf("below-range input should clamp to %d, got %d", MinLevel, got)
	}
	if got := NextLevel(cfg, 9, nil, ResultPartial); got != MaxLevel {
		t.Fatalf("above-range input should clamp to %d, got %d", MaxLevel, got)
	}
}
