// Package engine owns the game lifecycle: the game and period state machines, the
// substitution ledger that turns on/off events into elapsed playing time, and the
// exactly-once fold of a finished game's numbers into career statistics. All state lives in
// the stores; the engine serializes mutations per game and sequences the store calls.
package engine

import (
	"SubTrackApi/internal/clock"
	"SubTrackApi/internal/data"
)

// GameStore persists game aggregates. Update must apply a whole logical operation in one
// transaction; Finalize must set the finalized marker and the player statistics atomically,
// acting as a no-op when the marker is already set.
type GameStore interface {
	Get(pin string) (*data.Game, error)
	Update(game *data.Game) error
	Finalize(game *data.Game, totals []data.GameTotals) error
	GetUnfinalized() ([]string, error)
}

// PlayerStore resolves roster players referenced by substitutions and the MVP slot.
type PlayerStore interface {
	Get(id int64) (*data.Player, error)
}

type Engine struct {
	games   GameStore
	players PlayerStore
	clock   clock.Clock
	locks   lockTable
}

func New(games GameStore, players PlayerStore, c clock.Clock) *Engine {
	return &Engine{
		games:   games,
		players: players,
		clock:   c,
		locks:   newLockTable(),
	}
}
