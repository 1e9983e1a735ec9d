package engine

import (
	"SubTrackApi/internal/data"
	"time"
)

// The substitution ledger: on/off interval bookkeeping within a period. Callers guarantee
// the period is running; the ledger guarantees at most one open interval per player per
// period.

func openSub(p *data.Period, playerID int64) *data.Substitution {
	// Subs are ordered by on-time, so the last open one is the most recent.
	for i := len(p.Subs) - 1; i >= 0; i-- {
		if p.Subs[i].PlayerID == playerID && p.Subs[i].Open() {
			return p.Subs[i]
		}
	}
	return nil
}

func subOn(p *data.Period, playerID int64, at time.Time) (*data.Substitution, error) {
	if openSub(p, playerID) != nil {
		return nil, ErrPlayerAlreadyOn
	}

	sub := &data.Substitution{
		PeriodID: p.ID,
		PlayerID: playerID,
		OnAt:     at,
	}
	p.Subs = append(p.Subs, sub)

	return sub, nil
}

func subOff(p *data.Period, playerID int64, at time.Time) (*data.Substitution, error) {
	sub := openSub(p, playerID)
	if sub == nil {
		return nil, ErrPlayerNotOn
	}

	off := at
	sub.OffAt = &off

	return sub, nil
}

// closeOpenSubs force-closes every open interval in the period at the given time, returning
// how many were closed. Calling it on a period with nothing open is a no-op.
func closeOpenSubs(p *data.Period, at time.Time) int {
	closed := 0
	for _, sub := range p.Subs {
		if sub.Open() {
			off := at
			sub.OffAt = &off
			closed++
		}
	}
	return closed
}

// elapsedFor sums the player's closed interval durations across the given periods, plus live
// time for any interval still open as of asOf. Read-only; used for display, never persisted.
func elapsedFor(periods []*data.Period, playerID int64, asOf time.Time) time.Duration {
	var total time.Duration
	for _, p := range periods {
		for _, sub := range p.Subs {
			if sub.PlayerID == playerID {
				total += sub.Duration(asOf)
			}
		}
	}
	return total
}

// appearancesFor counts completed on/off cycles: an appearance is earned when the interval
// closes, so an interval still open does not count yet.
func appearancesFor(periods []*data.Period, playerID int64) int64 {
	var count int64
	for _, p := range periods {
		for _, sub := range p.Subs {
			if sub.PlayerID == playerID && !sub.Open() {
				count++
			}
		}
	}
	return count
}

func onCourt(g *data.Game, playerID int64) bool {
	p := g.RunningPeriod()
	if p == nil {
		return false
	}
	return openSub(p, playerID) != nil
}
