package learning

import (
	"testing"
	"time"
)

func TestGetModeSelfHealsExpiredPause(t *testing.T) {
	engine, setNow := newTestEngine(t)

	if _, err := engine.PauseFor(30 * time.Minute); err != nil {
		t.Fatalf("PauseFor: %v", err)
	}

	mode, err := engine.GetMode()
	if err != nil {
		t.Fatal(err)
	}
	if mode.PausedUntil == nil {
		t.Fatal("pause not set")
	}

	setNow(time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC))
	mode, err = engine.GetMode()
	if err != nil {
		t.Fatal(err)
	}
	if mode.PausedUntil != nil {
		t.Fatal("expired pause should be cleared on read")
	}

	// The clear is persisted, not just masked in the returned value.
	raw, err := engine.store.ModeState()
	if err != nil {
		t.Fatal(err)
	}
	if raw.PausedUntil != nil {
		t.Fatal("expired pause still stored")
	}
}

func TestSetModeValidatesPausedUntil(t *testing.T) {
	engine, _ := newTestEngine(t)

	bad := "next tuesday"
	if _, err := engine.SetMode(ModeUpdate{PausedUntil: &bad}); !IsValidation(err) {
		t.Fatalf("unparseable deadline: %v", err)
	}

	past := "2020-01-01 00:00:00"
	if _, err := engine.SetMode(ModeUpdate{PausedUntil: &past}); !IsValidation(err) {
		t.Fatalf("past deadline: %v", err)
	}
}

func TestPauseForRejectsNonPositive(t *testing.T) {
	engine, _ := newTestEngine(t)
	if _, err := engine.PauseFor(0); !IsValidation(err) {
		t.Fatalf("zero duration: %v", err)
	}
	if _, err := engine.PauseFor(-time.Minute); !IsValidation(err) {
		t.Fatalf("negative duration: %v", err)
	}
}

func TestResumeClearsPause(t *testing.T) {
	engine, _ := newTestEngine(t)

	if _, err := engine.PauseFor(time.Hour); err != nil {
		t.Fatal(err)
	}
	mode, err := engine.Resume()
	if err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if mode.PausedUntil != nil {
		t.Fatal("resume did not clear the pause")
	}
}

func TestSetModeFocusArea(t *testing.T) {
	engine, _ := newTestEngine(t)

	focus := "database internals"
	mode, err := engine.SetMode(ModeUpdate{FocusArea: &focus})
	if err != nil {
		t.Fatal(err)
	}
	if mode.FocusArea == nil || *mode.FocusArea != focus {
		t.Fatalf("focus area = %v", mode.FocusArea)
	}

	mode, err = engine.SetMode(ModeUpdate{ClearFocus: true})
	if err != nil {
		t.Fatal(err)
	}
	if mode.FocusArea != nil {
		t.Fatal("clear_focus did not clear")
	}
}
