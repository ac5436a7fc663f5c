package learning

import (
	"fmt"
	"time"
)

// The fatigue gate decides whether a new question may be asked right now.
// It is pure computation over the mode and session singletons at the moment
// of the call — no background timer exists, so reads are idempotent.

// gateDecision returns the shouldAsk verdict and its reason. Priority order:
// mode toggles, then pause window, then cooldown.
func gateDecision(cfg Config, mode ModeState, session SessionState, now time.Time) (bool, string) {
	if !mode.SeniorEnabled && !mode.AfterEnabled {
		return false, "questioning is off (both senior and after modes disabled)"
	}

	if mode.PausedUntil != nil {
		if until, err := parseTime(*mode.PausedUntil); err == nil && until.After(now.UTC()) {
			return false, fmt.Sprintf("paused for another %s", formatRemaining(until.Sub(now.UTC())))
		}
	}

	if session.LastQuestionAt != nil {
		elapsed := minutesSince(*session.LastQuestionAt, now)
		if elapsed < cfg.CooldownMinutes {
			return false, fmt.Sprintf("cooldown: %dm of %dm remaining",
				cfg.CooldownMinutes-elapsed, cfg.CooldownMinutes)
		}
		return true, fmt.Sprintf("%dm since last question", elapsed)
	}

	return true, "first question of the session"
}

// pauseExpired reports whether a stored pause deadline has passed (or is
// unparseable, which counts as expired so a corrupt value self-heals).
func pauseExpired(pausedUntil string, now time.Time) bool {
	until, err := parseTime(pausedUntil)
	if err != nil {
		return true
	}
	return !until.After(now.UTC())
}
