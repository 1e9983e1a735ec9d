package data

import (
	"SubTrackApi/internal/validator"
	"context"
	"database/sql"
	"errors"
	"time"
)

// Player is a roster entry. The three Total* fields are career statistics and are written
// only by GameModel.Finalize; name and number edits never touch them.
type Player struct {
	ID               int64     `json:"id"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Number           int       `json:"number"`
	CreatedAt        time.Time `json:"-"`
	Version          int32     `json:"-"`
	TotalPlaySeconds int64     `json:"total_play_seconds"`
	TotalAppearances int64     `json:"total_appearances"`
	TotalGamesPlayed int64     `json:"total_games_played"`
}

type PlayerModel struct {
	db *sql.DB
}

func (m *PlayerModel) Insert(player *Player) error {
	stmt := `
		INSERT INTO players (first_name, last_name, number)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version`

	args := []any{
		player.FirstName,
		player.LastName,
		player.Number,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	return m.db.QueryRowContext(ctx, stmt, args...).Scan(&player.ID, &player.CreatedAt,
		&player.Version)
}

func (m *PlayerModel) Get(id int64) (*Player, error) {
	stmt := `
		SELECT id, first_name, last_name, number, created_at, version,
			total_play_seconds, total_appearances, total_games_played
		FROM players
		WHERE id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	player := &Player{}
	err := m.db.QueryRowContext(ctx, stmt, id).Scan(
		&player.ID,
		&player.FirstName,
		&player.LastName,
		&player.Number,
		&player.CreatedAt,
		&player.Version,
		&player.TotalPlaySeconds,
		&player.TotalAppearances,
		&player.TotalGamesPlayed,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return player, nil
}

func (m *PlayerModel) GetAll() ([]*Player, error) {
	stmt := `
		SELECT id, first_name, last_name, number, created_at, version,
			total_play_seconds, total_appearances, total_games_played
		FROM players
		ORDER BY last_name, first_name, id`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := m.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]*Player, 0)
	for rows.Next() {
		player := &Player{}
		err := rows.Scan(
			&player.ID,
			&player.FirstName,
			&player.LastName,
			&player.Number,
			&player.CreatedAt,
			&player.Version,
			&player.TotalPlaySeconds,
			&player.TotalAppearances,
			&player.TotalGamesPlayed,
		)
		if err != nil {
			return nil, err
		}
		players = append(players, player)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return players, nil
}

// Update persists name and number edits only. Career statistics are deliberately not
// assignable here; they belong to GameModel.Finalize.
func (m *PlayerModel) Update(player *Player) error {
	stmt := `
		UPDATE players
		SET first_name = $1, last_name = $2, number = $3, version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING version`

	args := []any{
		player.FirstName,
		player.LastName,
		player.Number,
		player.ID,
		player.Version,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := m.db.QueryRowContext(ctx, stmt, args...).Scan(&player.Version)
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

func ValidatePlayer(v *validator.Validator, player *Player) {
	v.Check(player.FirstName != "", "first_name", "must be provided")
	v.Check(len(player.FirstName) > 1, "first_name", "must be greater than 1 character")
	v.Check(len(player.FirstName) <= 20, "first_name", "must be 20 character or less")

	v.Check(player.LastName != "", "last_name", "must be provided")
	v.Check(len(player.LastName) > 1, "last_name", "must be greater than 1 character")
	v.Check(len(player.LastName) <= 20, "last_name", "must be 20 characters or less")

	v.Check(player.Number >= 0, "number", "must be 0 or greater")
	v.Check(player.Number < 100, "number", "must be less than 100")
}
