package engine

import (
	"SubTrackApi/internal/clock"
	"SubTrackApi/internal/data"
	"SubTrackApi/internal/pins"
	"sync"
	"testing"
	"time"
)

// fakeStore is an in-memory GameStore and PlayerStore with the same contract as the SQL
// models: Get hands back a copy of the aggregate, Update persists a copy, and Finalize
// compare-and-sets the finalized marker before folding totals into the roster.
type fakeStore struct {
	mu            sync.Mutex
	games         map[string]*data.Game
	players       map[int64]*data.Player
	nextID        int64
	finalizeCalls int
	foldedGames   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		games:   make(map[string]*data.Game),
		players: make(map[int64]*data.Player),
		nextID:  1,
	}
}

func (s *fakeStore) id() int64 {
	id := s.nextID
	s.nextID++
	return id
}

func (s *fakeStore) addPlayer(firstName, lastName string, number int) *data.Player {
	s.mu.Lock()
	defer s.mu.Unlock()

	player := &data.Player{
		ID:        s.id(),
		FirstName: firstName,
		LastName:  lastName,
		Number:    number,
	}
	s.players[player.ID] = player
	return player
}

func (s *fakeStore) addGame(pin string) *data.Game {
	s.mu.Lock()
	defer s.mu.Unlock()

	game := &data.Game{
		ID:      s.id(),
		Pin:     pins.Pin(pin),
		Periods: make([]*data.Period, 0),
	}
	s.games[pin] = game
	return copyGame(game)
}

func (s *fakeStore) Get(pin string) (*data.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, ok := s.games[pin]
	if !ok {
		return nil, data.ErrRecordNotFound
	}
	return copyGame(game), nil
}

func (s *fakeStore) Update(game *data.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.games[string(game.Pin)]
	if !ok {
		return data.ErrRecordNotFound
	}
	if stored.Version != game.Version {
		return data.ErrEditConflict
	}

	for _, period := range game.Periods {
		if period.ID == 0 {
			period.ID = s.id()
		}
		for _, sub := range period.Subs {
			if sub.ID == 0 {
				sub.ID = s.id()
				sub.PeriodID = period.ID
			}
		}
	}
	game.Version++
	s.games[string(game.Pin)] = copyGame(game)

	return nil
}

func (s *fakeStore) Finalize(game *data.Game, totals []data.GameTotals) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.finalizeCalls++

	stored, ok := s.games[string(game.Pin)]
	if !ok {
		return data.ErrRecordNotFound
	}
	if stored.Finalized {
		game.Finalized = true
		return nil
	}

	stored.Finalized = true
	s.foldedGames++
	for _, t := range totals {
		if t.Appearances == 0 {
			continue
		}
		player := s.players[t.PlayerID]
		player.TotalPlaySeconds += int64(t.Playing / time.Second)
		player.TotalAppearances += t.Appearances
		player.TotalGamesPlayed++
	}

	game.Finalized = true
	return nil
}

func (s *fakeStore) GetUnfinalized() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gamePins := make([]string, 0)
	for pin, game := range s.games {
		if game.Ended() && !game.Finalized {
			gamePins = append(gamePins, pin)
		}
	}
	return gamePins, nil
}

func (s *fakeStore) GetPlayer(id int64) (*data.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, ok := s.players[id]
	if !ok {
		return nil, data.ErrRecordNotFound
	}
	cp := *player
	return &cp, nil
}

// playerStore adapts fakeStore to the PlayerStore interface without clashing with GameStore.
type playerStore struct {
	store *fakeStore
}

func (p playerStore) Get(id int64) (*data.Player, error) {
	return p.store.GetPlayer(id)
}

func copyGame(g *data.Game) *data.Game {
	cp := *g
	cp.Periods = make([]*data.Period, 0, len(g.Periods))
	for _, period := range g.Periods {
		pc := *period
		pc.Subs = make([]*data.Substitution, 0, len(period.Subs))
		for _, sub := range period.Subs {
			sc := *sub
			pc.Subs = append(pc.Subs, &sc)
		}
		cp.Periods = append(cp.Periods, &pc)
	}
	return &cp
}

func newTestEngine(t *testing.T, start time.Time) (*Engine, *fakeStore, *clock.Mock) {
	t.Helper()

	store := newFakeStore()
	mock := clock.NewMock(start)
	e := New(store, playerStore{store}, mock)
	return e, store, mock
}
