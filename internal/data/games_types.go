package data

import (
	"SubTrackApi/internal/pins"
	"database/sql"
	"errors"
	"time"
)

// Game is the aggregate root for one tracked match: the game row itself plus every period
// and every substitution interval, loaded and saved as a unit.
type Game struct {
	ID        int64      `json:"-"`
	Pin       pins.Pin   `json:"pin"`
	CreatedAt time.Time  `json:"created_at"`
	Version   int64      `json:"-"`
	Status    GameStatus `json:"status"`
	StartedAt *time.Time `json:"started_at,omitempty"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
	Finalized bool       `json:"-"`
	MvpID     *int64     `json:"mvp_id,omitempty"`
	Periods   []*Period  `json:"periods"`
}

func (g *Game) Started() bool {
	return g.StartedAt != nil
}

func (g *Game) Ended() bool {
	return g.EndedAt != nil
}

// RunningPeriod scans the period list for the one with no end time. At most one can exist;
// the running flag is derived, never held as separate state.
func (g *Game) RunningPeriod() *Period {
	for _, p := range g.Periods {
		if p.Running() {
			return p
		}
	}
	return nil
}

func (g *Game) NextPeriodIndex() int64 {
	var max int64
	for _, p := range g.Periods {
		if p.Index > max {
			max = p.Index
		}
	}
	return max + 1
}

type Period struct {
	ID        int64           `json:"-"`
	GameID    int64           `json:"-"`
	Index     int64           `json:"index"`
	StartedAt time.Time       `json:"started_at"`
	EndedAt   *time.Time      `json:"ended_at,omitempty"`
	Subs      []*Substitution `json:"substitutions"`
}

func (p *Period) Running() bool {
	return p.EndedAt == nil
}

// Substitution is one on-court interval for one player within one period. A nil OffAt means
// the player is currently on court.
type Substitution struct {
	ID       int64      `json:"-"`
	PeriodID int64      `json:"-"`
	PlayerID int64      `json:"player_id"`
	OnAt     time.Time  `json:"on_at"`
	OffAt    *time.Time `json:"off_at,omitempty"`
}

func (s *Substitution) Open() bool {
	return s.OffAt == nil
}

// Duration reports the interval's length, measuring open intervals up to asOf. Only closed
// intervals ever contribute to persisted statistics.
func (s *Substitution) Duration(asOf time.Time) time.Duration {
	if s.OffAt != nil {
		return s.OffAt.Sub(s.OnAt)
	}
	return asOf.Sub(s.OnAt)
}

// GameTotals is one player's finalized numbers for a single game, handed to Finalize.
type GameTotals struct {
	PlayerID    int64
	Playing     time.Duration
	Appearances int64
}

type GameModel struct {
	db *sql.DB
}

type GameStatus int64

const (
	NOTSTARTED GameStatus = iota
	INPROGRESS
	FINISHED
)

func (s GameStatus) MarshalJSON() ([]byte, error) {
	switch s {
	case NOTSTARTED:
		return []byte(`"not-started"`), nil
	case INPROGRESS:
		return []byte(`"in-progress"`), nil
	case FINISHED:
		return []byte(`"finished"`), nil
	default:
		return nil, errors.New("invalid game status")
	}
}
