package main

import "net/http"

func (app *application) StartPeriod(w http.ResponseWriter, r *http.Request) {
	pin := app.readPinParam(r)

	game, err := app.engine.StartPeriod(pin)
	if err != nil {
		app.engineErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"game": game}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) StopPeriod(w http.ResponseWriter, r *http.Request) {
	pin := app.readPinParam(r)

	game, err := app.engine.StopPeriod(pin)
	if err != nil {
		app.engineErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"game": game}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
