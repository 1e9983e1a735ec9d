package data

import (
	"SubTrackApi/internal/pins"
	"context"
	"strings"
	"time"
)

func (m *GameModel) Insert(game *Game) error {
	stmt := `
		INSERT INTO games (pin)
		VALUES ($1)
		RETURNING id, created_at, version, status, finalized`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	// Pins are short, so collisions are possible. Regenerate and retry a bounded number of
	// times before giving up.
	for i := 0; i < 5; i++ {
		game.Pin = pins.Generate(pins.GamePinLength)

		err := m.db.QueryRowContext(ctx, stmt, game.Pin).Scan(
			&game.ID,
			&game.CreatedAt,
			&game.Version,
			&game.Status,
			&game.Finalized,
		)
		if err != nil {
			if strings.Contains(err.Error(), `duplicate key value violates unique constraint "games_pin_key"`) {
				continue
			}
			return err
		}

		game.Periods = make([]*Period, 0)
		return nil
	}

	return pins.ErrDuplicatePin
}
