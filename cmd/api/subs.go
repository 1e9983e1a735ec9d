package main

import "net/http"

func (app *application) SubOn(w http.ResponseWriter, r *http.Request) {
	var input struct {
		PlayerID int64 `json:"player_id"`
	}

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	game, err := app.engine.SubOn(app.readPinParam(r), input.PlayerID)
	if err != nil {
		app.engineErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"game": game}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) SubOff(w http.ResponseWriter, r *http.Request) {
	var input struct {
		PlayerID int64 `json:"player_id"`
	}

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	game, err := app.engine.SubOff(app.readPinParam(r), input.PlayerID)
	if err != nil {
		app.engineErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"game": game}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
