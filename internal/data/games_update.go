package data

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Update persists the whole aggregate in one transaction: the game row under an optimistic
// version check, new periods and substitutions (ID zero), and end-timestamp changes to
// existing ones. A failure leaves nothing of the logical operation visible.
func (m *GameModel) Update(game *Game) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	err = updateGame(game, tx, ctx)
	if err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return rollbackErr
		}
		return err
	}

	for _, period := range game.Periods {
		err = savePeriod(period, game.ID, tx, ctx)
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				return rollbackErr
			}
			return err
		}

		for _, sub := range period.Subs {
			err = saveSub(sub, period.ID, tx, ctx)
			if err != nil {
				if rollbackErr := tx.Rollback(); rollbackErr != nil {
					return rollbackErr
				}
				return err
			}
		}
	}

	return tx.Commit()
}

func updateGame(game *Game, tx *sql.Tx, ctx context.Context) error {
	stmt := `
		UPDATE games
		SET status = $1, started_at = $2, ended_at = $3, mvp_id = $4, version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING version`

	args := []any{
		game.Status,
		game.StartedAt,
		game.EndedAt,
		game.MvpID,
		game.ID,
		game.Version,
	}

	err := tx.QueryRowContext(ctx, stmt, args...).Scan(&game.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrEditConflict
		default:
			return err
		}
	}

	return nil
}

func savePeriod(period *Period, gameID int64, tx *sql.Tx, ctx context.Context) error {
	if period.ID == 0 {
		stmt := `
			INSERT INTO periods (game_id, idx, started_at, ended_at)
			VALUES ($1, $2, $3, $4)
			RETURNING id, game_id`

		return tx.QueryRowContext(ctx, stmt, gameID, period.Index, period.StartedAt,
			period.EndedAt).Scan(&period.ID, &period.GameID)
	}

	stmt := `
		UPDATE periods
		SET ended_at = $1
		WHERE id = $2`

	_, err := tx.ExecContext(ctx, stmt, period.EndedAt, period.ID)
	return err
}

func saveSub(sub *Substitution, periodID int64, tx *sql.Tx, ctx context.Context) error {
	if sub.ID == 0 {
		stmt := `
			INSERT INTO substitutions (period_id, player_id, on_at, off_at)
			VALUES ($1, $2, $3, $4)
			RETURNING id, period_id`

		return tx.QueryRowContext(ctx, stmt, periodID, sub.PlayerID, sub.OnAt,
			sub.OffAt).Scan(&sub.ID, &sub.PeriodID)
	}

	stmt := `
		UPDATE substitutions
		SET off_at = $1
		WHERE id = $2`

	_, err := tx.ExecContext(ctx, stmt, sub.OffAt, sub.ID)
	return err
}
