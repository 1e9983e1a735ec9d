package data

import (
	"context"
	"time"
)

// Finalize folds one finished game's totals into the roster's career statistics. The
// finalized marker is compare-and-set in the same transaction as the player updates, so a
// game's numbers land exactly once no matter how many times the call is retried: if the
// marker was already set the whole call is a no-op.
func (m *GameModel) Finalize(game *Game, totals []GameTotals) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	marker := `
		UPDATE games
		SET finalized = true
		WHERE id = $1 AND finalized = false`

	result, err := tx.ExecContext(ctx, marker, game.ID)
	if err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return rollbackErr
		}
		return err
	}

	claimed, err := result.RowsAffected()
	if err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return rollbackErr
		}
		return err
	}
	if claimed == 0 {
		// Another call already finalized this game.
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return rollbackErr
		}
		game.Finalized = true
		return nil
	}

	stmt := `
		UPDATE players
		SET total_play_seconds = total_play_seconds + $1,
			total_appearances = total_appearances + $2,
			total_games_played = total_games_played + 1,
			version = version + 1
		WHERE id = $3`

	for _, t := range totals {
		if t.Appearances == 0 {
			continue
		}

		_, err := tx.ExecContext(ctx, stmt, int64(t.Playing/time.Second), t.Appearances,
			t.PlayerID)
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				return rollbackErr
			}
			return err
		}
	}

	err = tx.Commit()
	if err != nil {
		return err
	}

	game.Finalized = true
	return nil
}
