package main

import (
	"SubTrackApi/internal/data"
	"fmt"
)

type reportLine struct {
	Name        string
	Number      int
	Minutes     int64
	Seconds     int64
	Appearances int64
}

// sendGameReport emails the configured recipient a summary of a finished game. Runs as a
// background task; failures are logged, never surfaced to the request that ended the game.
func (app *application) sendGameReport(game *data.Game) {
	snapshot, err := app.engine.Snapshot(string(game.Pin))
	if err != nil {
		app.logger.PrintError(err, map[string]string{"game_pin": string(game.Pin)})
		return
	}

	lines := make([]reportLine, 0, len(snapshot.Players))
	for _, line := range snapshot.Players {
		player, err := app.models.Players.Get(line.PlayerID)
		if err != nil {
			app.logger.PrintError(err, map[string]string{"game_pin": string(game.Pin)})
			return
		}

		lines = append(lines, reportLine{
			Name:        fmt.Sprintf("%s %s", player.FirstName, player.LastName),
			Number:      player.Number,
			Minutes:     line.PlaySeconds / 60,
			Seconds:     line.PlaySeconds % 60,
			Appearances: line.Appearances,
		})
	}

	var mvpName string
	if game.MvpID != nil {
		mvp, err := app.models.Players.Get(*game.MvpID)
		if err == nil {
			mvpName = fmt.Sprintf("%s %s", mvp.FirstName, mvp.LastName)
		}
	}

	report := struct {
		GamePin string
		Lines   []reportLine
		MvpName string
	}{
		GamePin: string(game.Pin),
		Lines:   lines,
		MvpName: mvpName,
	}

	err = app.mailer.Send(app.config.report.recipient, "game_report.tmpl", report)
	if err != nil {
		app.logger.PrintError(err, map[string]string{"game_pin": string(game.Pin)})
	}
}
