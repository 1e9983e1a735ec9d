package engine

import "SubTrackApi/internal/data"

// StartGame transitions a game to in-progress. It happens at most once per game and does not
// start a period; the coach starts the first period explicitly.
func (e *Engine) StartGame(pin string) (*data.Game, error) {
	e.locks.acquire(pin)
	defer e.locks.release(pin)

	game, err := e.games.Get(pin)
	if err != nil {
		return nil, err
	}

	if game.Ended() {
		return nil, ErrGameAlreadyEnded
	}
	if game.Started() {
		return nil, ErrGameAlreadyStarted
	}

	now := e.clock.Now()
	game.StartedAt = &now
	game.Status = data.INPROGRESS

	err = e.games.Update(game)
	if err != nil {
		return nil, err
	}

	return game, nil
}

// EndGame is terminal: it stops any running period, force-closes every open interval at the
// end timestamp, persists the ended state, and folds the game's totals into career
// statistics. The fold is idempotent on the game's finalized marker, so a duplicate request
// (or a crash-and-retry between the two store calls) can never double-count.
func (e *Engine) EndGame(pin string) (*data.Game, error) {
	e.locks.acquire(pin)
	defer e.locks.release(pin)

	game, err := e.games.Get(pin)
	if err != nil {
		return nil, err
	}

	if game.Ended() {
		return nil, ErrGameAlreadyEnded
	}
	if !game.Started() {
		return nil, ErrGameNotStarted
	}

	now := e.clock.Now()
	for _, period := range game.Periods {
		if period.Running() {
			closeOpenSubs(period, now)
			end := now
			period.EndedAt = &end
		}
	}
	game.EndedAt = &now
	game.Status = data.FINISHED

	err = e.games.Update(game)
	if err != nil {
		return nil, err
	}

	err = e.games.Finalize(game, gameTotals(game))
	if err != nil {
		return nil, err
	}

	return game, nil
}

// SetMvp upserts the game's MVP. The award is allowed in any game state, including
// retroactively on an ended game.
func (e *Engine) SetMvp(pin string, playerID int64) (*data.Game, error) {
	e.locks.acquire(pin)
	defer e.locks.release(pin)

	game, err := e.games.Get(pin)
	if err != nil {
		return nil, err
	}

	_, err = e.players.Get(playerID)
	if err != nil {
		return nil, err
	}

	game.MvpID = &playerID

	err = e.games.Update(game)
	if err != nil {
		return nil, err
	}

	return game, nil
}
