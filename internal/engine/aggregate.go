package engine

import (
	"SubTrackApi/internal/data"
	"slices"
	"time"
)

// gameTotals computes each participating player's finalized numbers for a game whose
// intervals are all closed: total playing time and completed appearance count. Players with
// no participation are absent. The result is ordered by player id so store writes are
// deterministic.
func gameTotals(g *data.Game) []data.GameTotals {
	byPlayer := make(map[int64]*data.GameTotals)

	for _, period := range g.Periods {
		for _, sub := range period.Subs {
			if sub.Open() {
				// EndGame closes everything before aggregating; an open interval here
				// would mean a caller bug, so it simply contributes nothing.
				continue
			}

			t, ok := byPlayer[sub.PlayerID]
			if !ok {
				t = &data.GameTotals{PlayerID: sub.PlayerID}
				byPlayer[sub.PlayerID] = t
			}
			t.Playing += sub.Duration(time.Time{})
			t.Appearances++
		}
	}

	totals := make([]data.GameTotals, 0, len(byPlayer))
	for _, t := range byPlayer {
		totals = append(totals, *t)
	}
	slices.SortFunc(totals, func(a, b data.GameTotals) int {
		return int(a.PlayerID - b.PlayerID)
	})

	return totals
}
