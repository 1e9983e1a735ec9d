package engine

import "errors"

// State conflicts reflect a real workflow clash the coach must resolve; they are surfaced to
// the caller and never retried automatically.
var (
	ErrGameAlreadyStarted   = errors.New("game already started")
	ErrGameNotStarted       = errors.New("game not started")
	ErrGameAlreadyEnded     = errors.New("game already ended")
	ErrPeriodAlreadyRunning = errors.New("another period is already running")
	ErrPeriodNotRunning     = errors.New("no period is running")
	ErrPlayerAlreadyOn      = errors.New("player is already on court")
	ErrPlayerNotOn          = errors.New("player is not on court")
)

// IsStateConflict reports whether err is one of the workflow-conflict errors, as opposed to
// a missing record or a persistence failure.
func IsStateConflict(err error) bool {
	for _, conflict := range []error{
		ErrGameAlreadyStarted,
		ErrGameNotStarted,
		ErrGameAlreadyEnded,
		ErrPeriodAlreadyRunning,
		ErrPeriodNotRunning,
		ErrPlayerAlreadyOn,
		ErrPlayerNotOn,
	} {
		if errors.Is(err, conflict) {
			return true
		}
	}
	return false
}
