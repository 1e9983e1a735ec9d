package data

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Get loads the full game aggregate in one transaction so a concurrent writer can never be
// observed mid-operation: the game row, its periods in sequence order, and every
// substitution interval.
func (m *GameModel) Get(pin string) (*Game, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	game, err := getGame(pin, tx, ctx)
	if err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return nil, rollbackErr
		}
		return nil, err
	}

	err = getGamePeriods(game, tx, ctx)
	if err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return nil, rollbackErr
		}
		return nil, err
	}

	err = getPeriodSubs(game, tx, ctx)
	if err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return nil, rollbackErr
		}
		return nil, err
	}

	err = tx.Commit()
	if err != nil {
		return nil, err
	}

	return game, nil
}

func getGame(pin string, tx *sql.Tx, ctx context.Context) (*Game, error) {
	stmt := `
		SELECT id, pin, created_at, version, status, started_at, ended_at, finalized, mvp_id
		FROM games
		WHERE pin = $1`

	game := &Game{}
	err := tx.QueryRowContext(ctx, stmt, pin).Scan(
		&game.ID,
		&game.Pin,
		&game.CreatedAt,
		&game.Version,
		&game.Status,
		&game.StartedAt,
		&game.EndedAt,
		&game.Finalized,
		&game.MvpID,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return game, nil
}

func getGamePeriods(game *Game, tx *sql.Tx, ctx context.Context) error {
	stmt := `
		SELECT id, game_id, idx, started_at, ended_at
		FROM periods
		WHERE game_id = $1
		ORDER BY idx`

	rows, err := tx.QueryContext(ctx, stmt, game.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	game.Periods = make([]*Period, 0)
	for rows.Next() {
		period := &Period{}
		err := rows.Scan(
			&period.ID,
			&period.GameID,
			&period.Index,
			&period.StartedAt,
			&period.EndedAt,
		)
		if err != nil {
			return err
		}
		period.Subs = make([]*Substitution, 0)
		game.Periods = append(game.Periods, period)
	}

	return rows.Err()
}

func getPeriodSubs(game *Game, tx *sql.Tx, ctx context.Context) error {
	stmt := `
		SELECT substitutions.id, substitutions.period_id, substitutions.player_id,
			substitutions.on_at, substitutions.off_at
		FROM substitutions
		INNER JOIN periods ON periods.id = substitutions.period_id
		WHERE periods.game_id = $1
		ORDER BY substitutions.on_at, substitutions.id`

	rows, err := tx.QueryContext(ctx, stmt, game.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	byID := make(map[int64]*Period)
	for _, p := range game.Periods {
		byID[p.ID] = p
	}

	for rows.Next() {
		sub := &Substitution{}
		err := rows.Scan(
			&sub.ID,
			&sub.PeriodID,
			&sub.PlayerID,
			&sub.OnAt,
			&sub.OffAt,
		)
		if err != nil {
			return err
		}
		if period, ok := byID[sub.PeriodID]; ok {
			period.Subs = append(period.Subs, sub)
		}
	}

	return rows.Err()
}

func (m *GameModel) GetAll() ([]*Game, error) {
	stmt := `
		SELECT id, pin, created_at, version, status, started_at, ended_at, finalized, mvp_id
		FROM games
		ORDER BY created_at DESC, id DESC`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := m.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := make([]*Game, 0)
	for rows.Next() {
		game := &Game{}
		err := rows.Scan(
			&game.ID,
			&game.Pin,
			&game.CreatedAt,
			&game.Version,
			&game.Status,
			&game.StartedAt,
			&game.EndedAt,
			&game.Finalized,
			&game.MvpID,
		)
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return games, nil
}

// GetUnfinalized returns the pins of games that ended but never had their statistics folded
// into the roster, so the recovery pass can finish them after a crash.
func (m *GameModel) GetUnfinalized() ([]string, error) {
	stmt := `
		SELECT pin
		FROM games
		WHERE ended_at IS NOT NULL AND finalized = false
		ORDER BY ended_at`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := m.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	gamePins := make([]string, 0)
	for rows.Next() {
		var pin string
		if err := rows.Scan(&pin); err != nil {
			return nil, err
		}
		gamePins = append(gamePins, pin)
	}

	return gamePins, rows.Err()
}
