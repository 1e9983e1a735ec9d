package main

import (
	"expvar"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (app *application) routes() http.Handler {
	router := chi.NewRouter()

	// Router
	router.NotFound(app.notFoundResponse)
	router.MethodNotAllowed(app.methodNotAllowedResponse)

	// Middleware
	router.Use(app.metrics)
	router.Use(app.recoverPanic)
	router.Use(app.requestID)
	router.Use(app.enableCORS)
	router.Use(app.rateLimit)

	// Healthcheck
	router.Get("/v1/healthcheck", app.HealthCheck)
	router.Method(http.MethodGet, "/v1/metrics", expvar.Handler())

	// Player Endpoints (delete is deliberately absent: roster entries are never removed)
	router.Route("/v1/player", func(router chi.Router) {
		router.Post("/", app.InsertPlayer)
		router.Get("/", app.GetAllPlayers)
		router.Get("/{id}", app.GetPlayer)
		router.Patch("/{id}", app.UpdatePlayer)
	})

	// Game Endpoints
	router.Route("/v1/game", func(router chi.Router) {
		router.Post("/", app.InsertGame)
		router.Get("/", app.GetAllGames)
		router.Get("/{pin}", app.GetGame)

		router.Post("/{pin}/start", app.StartGame)
		router.Post("/{pin}/end", app.EndGame)
		router.Put("/{pin}/mvp", app.SetMvp)

		router.Post("/{pin}/period/start", app.StartPeriod)
		router.Post("/{pin}/period/stop", app.StopPeriod)

		router.Post("/{pin}/sub/on", app.SubOn)
		router.Post("/{pin}/sub/off", app.SubOff)
	})

	return router
}
