package learning

import (
	"time"
)

// The mode controller owns the two questioning toggles, the pause window,
// and the focus-area filter. Every read self-heals a stale pause so no
// external sweep is ever needed.

// GetMode returns the current mode state. A stored pause deadline that has
// already passed is cleared (and persisted as cleared) before returning.
func (e *Engine) GetMode() (*ModeState, error) {
	mode, err := e.store.ModeState()
	if err != nil {
		return nil, storageErr("get mode", err)
	}

	if mode.PausedUntil != nil && pauseExpired(*mode.PausedUntil, timeNow()) {
		if err := e.store.UpdateModeState(ModeUpdate{ClearPause: true}); err != nil {
			return nil, storageErr("get mode", err)
		}
		mode.PausedUntil = nil
	}
	return mode, nil
}

// SetMode applies any combination of toggle, pause, and focus changes and
// returns the resulting state. A PausedUntil value must parse as a
// timestamp and lie in the future.
func (e *Engine) SetMode(u ModeUpdate) (*ModeState, error) {
	if u.PausedUntil != nil && !u.ClearPause {
		until, err := parseTime(*u.PausedUntil)
		if err != nil {
			return nil, validationErr("set mode", "paused_until must be a timestamp (2006-01-02 15:04:05, UTC)")
		}
		if !until.After(timeNow().UTC()) {
			return nil, validationErr("set mode", "paused_until must be in the future")
		}
	}

	if err := e.store.UpdateModeState(u); err != nil {
		return nil, storageErr("set mode", err)
	}
	return e.GetMode()
}

// PauseFor pauses questioning for a duration from now.
func (e *Engine) PauseFor(d time.Duration) (*ModeState, error) {
	if d <= 0 {
		return nil, validationErr("pause", "pause duration must be positive")
	}
	until := PauseDeadline(d)
	return e.SetMode(ModeUpdate{PausedUntil: &until})
}

// PauseDeadline renders the pause deadline a duration from now, in the
// store's timestamp layout.
func PauseDeadline(d time.Duration) string {
	return formatTime(timeNow().UTC().Add(d))
}

// Resume clears any pause window immediately.
func (e *Engine) Resume() (*ModeState, error) {
	return e.SetMode(ModeUpdate{ClearPause: true})
}
