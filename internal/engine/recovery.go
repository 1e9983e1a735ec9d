package engine

// RecoverUnfinalized finishes the aggregation step for any game that was marked ended but
// crashed before its statistics were folded into the roster. Run once at startup. Each
// recovered game goes through the same idempotent Finalize as the live path, so racing a
// concurrent retry is harmless. Returns the number of games finalized.
func (e *Engine) RecoverUnfinalized() (int, error) {
	gamePins, err := e.games.GetUnfinalized()
	if err != nil {
		return 0, err
	}

	recovered := 0
	for _, pin := range gamePins {
		e.locks.acquire(pin)

		game, err := e.games.Get(pin)
		if err != nil {
			e.locks.release(pin)
			return recovered, err
		}

		if game.Finalized || !game.Ended() {
			e.locks.release(pin)
			continue
		}

		err = e.games.Finalize(game, gameTotals(game))
		e.locks.release(pin)
		if err != nil {
			return recovered, err
		}
		recovered++
	}

	return recovered, nil
}
