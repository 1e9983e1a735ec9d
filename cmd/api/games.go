package main

import (
	"SubTrackApi/internal/data"
	"net/http"
)

func (app *application) InsertGame(w http.ResponseWriter, r *http.Request) {
	game := &data.Game{}

	err := app.models.Games.Insert(game)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"game": game}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetAllGames(w http.ResponseWriter, r *http.Request) {
	games, err := app.models.Games.GetAll()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"games": games}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// GetGame returns the live snapshot: the aggregate plus per-player elapsed time measured at
// this instant. Clients poll this endpoint; there is no push channel.
func (app *application) GetGame(w http.ResponseWriter, r *http.Request) {
	pin := app.readPinParam(r)

	snapshot, err := app.engine.Snapshot(pin)
	if err != nil {
		app.engineErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"snapshot": snapshot}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) StartGame(w http.ResponseWriter, r *http.Request) {
	pin := app.readPinParam(r)

	game, err := app.engine.StartGame(pin)
	if err != nil {
		app.engineErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"game": game}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) EndGame(w http.ResponseWriter, r *http.Request) {
	pin := app.readPinParam(r)

	game, err := app.engine.EndGame(pin)
	if err != nil {
		app.engineErrorResponse(w, r, err)
		return
	}

	if app.config.report.recipient != "" {
		app.backgroundTask(func() {
			app.sendGameReport(game)
		})
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"game": game}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) SetMvp(w http.ResponseWriter, r *http.Request) {
	pin := app.readPinParam(r)

	var input struct {
		PlayerID int64 `json:"player_id"`
	}

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	game, err := app.engine.SetMvp(pin, input.PlayerID)
	if err != nil {
		app.engineErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"game": game}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
