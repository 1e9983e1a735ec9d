package engine

import (
	"SubTrackApi/internal/data"
	"slices"
	"time"
)

// PlayerLine is one player's live numbers within a game snapshot.
type PlayerLine struct {
	PlayerID    int64 `json:"player_id"`
	OnCourt     bool  `json:"on_court"`
	PlaySeconds int64 `json:"play_seconds"`
	Appearances int64 `json:"appearances"`
}

// GameSnapshot is a read-only view of a game as of a single instant: the aggregate plus
// per-player live playing time. Open intervals are measured up to AsOf but never persisted.
type GameSnapshot struct {
	Game    *data.Game   `json:"game"`
	AsOf    time.Time    `json:"as_of"`
	Players []PlayerLine `json:"players"`
}

// Snapshot loads and renders a game without taking the game's lock: the aggregate load is
// itself transactional, so the view is a consistent best-effort picture that may trail a
// concurrent mutation but can never be torn.
func (e *Engine) Snapshot(pin string) (*GameSnapshot, error) {
	game, err := e.games.Get(pin)
	if err != nil {
		return nil, err
	}

	asOf := e.clock.Now()

	seen := make(map[int64]bool)
	players := make([]PlayerLine, 0)
	for _, period := range game.Periods {
		for _, sub := range period.Subs {
			if seen[sub.PlayerID] {
				continue
			}
			seen[sub.PlayerID] = true
			players = append(players, PlayerLine{
				PlayerID:    sub.PlayerID,
				OnCourt:     onCourt(game, sub.PlayerID),
				PlaySeconds: int64(elapsedFor(game.Periods, sub.PlayerID, asOf) / time.Second),
				Appearances: appearancesFor(game.Periods, sub.PlayerID),
			})
		}
	}
	slices.SortFunc(players, func(a, b PlayerLine) int {
		return int(a.PlayerID - b.PlayerID)
	})

	return &GameSnapshot{
		Game:    game,
		AsOf:    asOf,
		Players: players,
	}, nil
}

// Elapsed reports one player's live playing time in a game as of now.
func (e *Engine) Elapsed(pin string, playerID int64) (time.Duration, error) {
	game, err := e.games.Get(pin)
	if err != nil {
		return 0, err
	}

	return elapsedFor(game.Periods, playerID, e.clock.Now()), nil
}
