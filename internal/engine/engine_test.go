package engine

import (
	"SubTrackApi/internal/assert"
	"SubTrackApi/internal/data"
	"sync"
	"testing"
	"time"
)

func TestStartGame(t *testing.T) {
	e, store, _ := newTestEngine(t, t0)
	store.addGame("abc123")

	game, err := e.StartGame("abc123")
	assert.NilError(t, err)
	assert.Equal(t, game.Status, data.INPROGRESS)
	assert.Equal(t, game.StartedAt.Equal(t0), true)
	assert.Equal(t, len(game.Periods), 0)

	_, err = e.StartGame("abc123")
	assert.ErrorIs(t, err, ErrGameAlreadyStarted)

	_, err = e.StartGame("nosuch")
	assert.ErrorIs(t, err, data.ErrRecordNotFound)
}

func TestStartPeriod(t *testing.T) {
	e, store, mock := newTestEngine(t, t0)
	store.addGame("abc123")

	_, err := e.StartPeriod("abc123")
	assert.ErrorIs(t, err, ErrGameNotStarted)

	_, err = e.StartGame("abc123")
	assert.NilError(t, err)

	game, err := e.StartPeriod("abc123")
	assert.NilError(t, err)
	assert.Equal(t, len(game.Periods), 1)
	assert.Equal(t, game.Periods[0].Index, int64(1))
	assert.Equal(t, game.Periods[0].Running(), true)

	// A second period cannot start while one runs, and the running one is untouched.
	_, err = e.StartPeriod("abc123")
	assert.ErrorIs(t, err, ErrPeriodAlreadyRunning)

	snap, err := e.Snapshot("abc123")
	assert.NilError(t, err)
	assert.Equal(t, snap.Game.RunningPeriod().Index, int64(1))

	mock.Advance(10 * time.Minute)
	_, err = e.StopPeriod("abc123")
	assert.NilError(t, err)

	game, err = e.StartPeriod("abc123")
	assert.NilError(t, err)
	assert.Equal(t, len(game.Periods), 2)
	assert.Equal(t, game.Periods[1].Index, int64(2))
}

func TestStopPeriodForceClosesIntervals(t *testing.T) {
	e, store, mock := newTestEngine(t, t0)
	store.addGame("abc123")
	a := store.addPlayer("Alice", "Archer", 4)
	b := store.addPlayer("Bob", "Barker", 5)
	c := store.addPlayer("Cara", "Cole", 6)

	_, err := e.StopPeriod("abc123")
	assert.ErrorIs(t, err, ErrPeriodNotRunning)

	_, _ = e.StartGame("abc123")
	_, _ = e.StartPeriod("abc123")

	_, err = e.SubOn("abc123", a.ID)
	assert.NilError(t, err)
	_, err = e.SubOn("abc123", b.ID)
	assert.NilError(t, err)

	mock.Advance(5 * time.Minute)
	_, err = e.SubOn("abc123", c.ID)
	assert.NilError(t, err)
	_, err = e.SubOff("abc123", c.ID)
	assert.NilError(t, err)

	mock.Advance(10 * time.Minute)
	game, err := e.StopPeriod("abc123")
	assert.NilError(t, err)

	period := game.Periods[0]
	assert.Equal(t, period.Running(), false)
	for _, sub := range period.Subs {
		assert.Equal(t, sub.Open(), false)
	}
	// The two force-closed intervals each gained stopTime - onTime.
	assert.Equal(t, elapsedFor(game.Periods, a.ID, time.Time{}), 15*time.Minute)
	assert.Equal(t, elapsedFor(game.Periods, b.ID, time.Time{}), 15*time.Minute)
	assert.Equal(t, elapsedFor(game.Periods, c.ID, time.Time{}), 0*time.Minute)

	// A stopped period rejects all substitution traffic.
	_, err = e.SubOn("abc123", a.ID)
	assert.ErrorIs(t, err, ErrPeriodNotRunning)
	_, err = e.SubOff("abc123", b.ID)
	assert.ErrorIs(t, err, ErrPeriodNotRunning)
}

func TestSubOnUnknownPlayer(t *testing.T) {
	e, store, _ := newTestEngine(t, t0)
	store.addGame("abc123")
	_, _ = e.StartGame("abc123")
	_, _ = e.StartPeriod("abc123")

	_, err := e.SubOn("abc123", 99)
	assert.ErrorIs(t, err, data.ErrRecordNotFound)
}

// TestEndGame walks the worked scenario: Alice and Bob on at t=0, Alice off at t=600s, the
// period stopped at t=900s force-closing Bob, then the game ended at t=900s.
func TestEndGame(t *testing.T) {
	e, store, mock := newTestEngine(t, t0)
	store.addGame("abc123")
	alice := store.addPlayer("Alice", "Archer", 4)
	bob := store.addPlayer("Bob", "Barker", 5)

	_, err := e.EndGame("abc123")
	assert.ErrorIs(t, err, ErrGameNotStarted)

	_, _ = e.StartGame("abc123")
	_, _ = e.StartPeriod("abc123")
	_, _ = e.SubOn("abc123", alice.ID)
	_, _ = e.SubOn("abc123", bob.ID)

	mock.Advance(600 * time.Second)
	_, err = e.SubOff("abc123", alice.ID)
	assert.NilError(t, err)

	mock.Advance(300 * time.Second)
	_, err = e.StopPeriod("abc123")
	assert.NilError(t, err)

	game, err := e.EndGame("abc123")
	assert.NilError(t, err)
	assert.Equal(t, game.Status, data.FINISHED)
	assert.Equal(t, game.Ended(), true)
	assert.Equal(t, game.Finalized, true)
	assert.Equal(t, store.foldedGames, 1)

	aliceStats, _ := store.GetPlayer(alice.ID)
	bobStats, _ := store.GetPlayer(bob.ID)
	assert.Equal(t, aliceStats.TotalPlaySeconds, int64(600))
	assert.Equal(t, aliceStats.TotalAppearances, int64(1))
	assert.Equal(t, aliceStats.TotalGamesPlayed, int64(1))
	assert.Equal(t, bobStats.TotalPlaySeconds, int64(900))
	assert.Equal(t, bobStats.TotalAppearances, int64(1))
	assert.Equal(t, bobStats.TotalGamesPlayed, int64(1))
}

func TestEndGameClosesRunningPeriod(t *testing.T) {
	e, store, mock := newTestEngine(t, t0)
	store.addGame("abc123")
	p := store.addPlayer("Dana", "Dodd", 8)

	_, _ = e.StartGame("abc123")
	_, _ = e.StartPeriod("abc123")
	_, _ = e.SubOn("abc123", p.ID)

	mock.Advance(time.Minute)
	game, err := e.EndGame("abc123")
	assert.NilError(t, err)

	assert.Equal(t, game.RunningPeriod() == nil, true)
	for _, period := range game.Periods {
		assert.Equal(t, period.Running(), false)
		for _, sub := range period.Subs {
			assert.Equal(t, sub.Open(), false)
		}
	}

	stats, _ := store.GetPlayer(p.ID)
	assert.Equal(t, stats.TotalPlaySeconds, int64(60))
}

func TestEndGameTwiceCannotDoubleCount(t *testing.T) {
	e, store, mock := newTestEngine(t, t0)
	store.addGame("abc123")
	p := store.addPlayer("Dana", "Dodd", 8)

	_, _ = e.StartGame("abc123")
	_, _ = e.StartPeriod("abc123")
	_, _ = e.SubOn("abc123", p.ID)
	mock.Advance(time.Minute)

	_, err := e.EndGame("abc123")
	assert.NilError(t, err)
	_, err = e.EndGame("abc123")
	assert.ErrorIs(t, err, ErrGameAlreadyEnded)

	stats, _ := store.GetPlayer(p.ID)
	assert.Equal(t, stats.TotalPlaySeconds, int64(60))
	assert.Equal(t, stats.TotalGamesPlayed, int64(1))
	assert.Equal(t, store.foldedGames, 1)
}

func TestEndGameConcurrentDuplicate(t *testing.T) {
	e, store, mock := newTestEngine(t, t0)
	store.addGame("abc123")
	p := store.addPlayer("Dana", "Dodd", 8)

	_, _ = e.StartGame("abc123")
	_, _ = e.StartPeriod("abc123")
	_, _ = e.SubOn("abc123", p.ID)
	mock.Advance(time.Minute)

	// A double-tap on "Stop": both requests race, exactly one wins.
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = e.EndGame("abc123")
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, ErrGameAlreadyEnded)
		}
	}
	assert.Equal(t, winners, 1)
	assert.Equal(t, store.foldedGames, 1)

	stats, _ := store.GetPlayer(p.ID)
	assert.Equal(t, stats.TotalGamesPlayed, int64(1))
}

func TestSetMvp(t *testing.T) {
	e, store, _ := newTestEngine(t, t0)
	store.addGame("abc123")
	a := store.addPlayer("Alice", "Archer", 4)
	b := store.addPlayer("Bob", "Barker", 5)

	_, err := e.SetMvp("abc123", 99)
	assert.ErrorIs(t, err, data.ErrRecordNotFound)

	// Allowed before the game starts, for planning.
	game, err := e.SetMvp("abc123", a.ID)
	assert.NilError(t, err)
	assert.Equal(t, *game.MvpID, a.ID)

	_, _ = e.StartGame("abc123")
	_, _ = e.EndGame("abc123")

	// And retroactively after it ends, replacing the previous holder.
	game, err = e.SetMvp("abc123", b.ID)
	assert.NilError(t, err)
	assert.Equal(t, *game.MvpID, b.ID)
}

func TestSnapshot(t *testing.T) {
	e, store, mock := newTestEngine(t, t0)
	store.addGame("abc123")
	a := store.addPlayer("Alice", "Archer", 4)
	b := store.addPlayer("Bob", "Barker", 5)

	_, _ = e.StartGame("abc123")
	_, _ = e.StartPeriod("abc123")
	_, _ = e.SubOn("abc123", a.ID)
	_, _ = e.SubOn("abc123", b.ID)

	mock.Advance(2 * time.Minute)
	_, _ = e.SubOff("abc123", a.ID)

	mock.Advance(1 * time.Minute)
	snap, err := e.Snapshot("abc123")
	assert.NilError(t, err)
	assert.Equal(t, len(snap.Players), 2)

	assert.Equal(t, snap.Players[0].PlayerID, a.ID)
	assert.Equal(t, snap.Players[0].OnCourt, false)
	assert.Equal(t, snap.Players[0].PlaySeconds, int64(120))
	assert.Equal(t, snap.Players[0].Appearances, int64(1))

	// Bob is still on court, so his line is live and not yet an appearance.
	assert.Equal(t, snap.Players[1].PlayerID, b.ID)
	assert.Equal(t, snap.Players[1].OnCourt, true)
	assert.Equal(t, snap.Players[1].PlaySeconds, int64(180))
	assert.Equal(t, snap.Players[1].Appearances, int64(0))

	elapsed, err := e.Elapsed("abc123", b.ID)
	assert.NilError(t, err)
	assert.Equal(t, elapsed, 3*time.Minute)
}

func TestRecoverUnfinalized(t *testing.T) {
	e, store, mock := newTestEngine(t, t0)
	store.addGame("abc123")
	p := store.addPlayer("Dana", "Dodd", 8)

	_, _ = e.StartGame("abc123")
	_, _ = e.StartPeriod("abc123")
	_, _ = e.SubOn("abc123", p.ID)
	mock.Advance(time.Minute)
	_, _ = e.StopPeriod("abc123")

	// Simulate a crash between persisting the ended game and folding its statistics.
	store.mu.Lock()
	game := store.games["abc123"]
	now := mock.Now()
	game.EndedAt = &now
	game.Status = data.FINISHED
	store.mu.Unlock()

	recovered, err := e.RecoverUnfinalized()
	assert.NilError(t, err)
	assert.Equal(t, recovered, 1)

	stats, _ := store.GetPlayer(p.ID)
	assert.Equal(t, stats.TotalPlaySeconds, int64(60))
	assert.Equal(t, stats.TotalGamesPlayed, int64(1))

	// A second pass finds nothing and changes nothing.
	recovered, err = e.RecoverUnfinalized()
	assert.NilError(t, err)
	assert.Equal(t, recovered, 0)

	stats, _ = store.GetPlayer(p.ID)
	assert.Equal(t, stats.TotalPlaySeconds, int64(60))
	assert.Equal(t, stats.TotalGamesPlayed, int64(1))
}
