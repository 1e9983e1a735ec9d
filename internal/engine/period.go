package engine

import "SubTrackApi/internal/data"

// StartPeriod opens the next period of a started game. A period is identified by its
// auto-incrementing sequence index; only one may run at a time.
func (e *Engine) StartPeriod(pin string) (*data.Game, error) {
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
	if game.RunningPeriod() != nil {
		return nil, ErrPeriodAlreadyRunning
	}

	period := &data.Period{
		GameID:    game.ID,
		Index:     game.NextPeriodIndex(),
		StartedAt: e.clock.Now(),
		Subs:      make([]*data.Substitution, 0),
	}
	game.Periods = append(game.Periods, period)

	err = e.games.Update(game)
	if err != nil {
		return nil, err
	}

	return game, nil
}

// StopPeriod stops the game's running period, force-closing every open interval at the stop
// timestamp. A stopped period is terminal; play resumes by starting a new period.
func (e *Engine) StopPeriod(pin string) (*data.Game, error) {
	e.locks.acquire(pin)
	defer e.locks.release(pin)

	game, err := e.games.Get(pin)
	if err != nil {
		return nil, err
	}

	period := game.RunningPeriod()
	if period == nil {
		return nil, ErrPeriodNotRunning
	}

	now := e.clock.Now()
	closeOpenSubs(period, now)
	period.EndedAt = &now

	err = e.games.Update(game)
	if err != nil {
		return nil, err
	}

	return game, nil
}

// SubOn puts a player on court in the running period.
func (e *Engine) SubOn(pin string, playerID int64) (*data.Game, error) {
	e.locks.acquire(pin)
	defer e.locks.release(pin)

	game, err := e.games.Get(pin)
	if err != nil {
		return nil, err
	}

	period := game.RunningPeriod()
	if period == nil {
		return nil, ErrPeriodNotRunning
	}

	_, err = e.players.Get(playerID)
	if err != nil {
		return nil, err
	}

	_, err = subOn(period, playerID, e.clock.Now())
	if err != nil {
		return nil, err
	}

	err = e.games.Update(game)
	if err != nil {
		return nil, err
	}

	return game, nil
}

// SubOff takes a player off court, closing their open interval and crediting one appearance.
func (e *Engine) SubOff(pin string, playerID int64) (*data.Game, error) {
	e.locks.acquire(pin)
	defer e.locks.release(pin)

	game, err := e.games.Get(pin)
	if err != nil {
		return nil, err
	}

	period := game.RunningPeriod()
	if period == nil {
		return nil, ErrPeriodNotRunning
	}

	_, err = subOff(period, playerID, e.clock.Now())
	if err != nil {
		return nil, err
	}

	err = e.games.Update(game)
	if err != nil {
		return nil, err
	}

	return game, nil
}
