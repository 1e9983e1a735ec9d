package data

import (
	"database/sql"
	"errors"
)

var ErrRecordNotFound = errors.New("record not found")
var ErrEditConflict = errors.New("edit conflict")

type Models struct {
	Players PlayerModel
	Games   GameModel
}

func NewModels(initDb *sql.DB) Models {
	return Models{
		Players: PlayerModel{db: initDb},
		Games:   GameModel{db: initDb},
	}
}
