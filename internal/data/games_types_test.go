package data

import (
	"SubTrackApi/internal/assert"
	"testing"
	"time"
)

var t0 = time.Date(2025, 3, 8, 14, 0, 0, 0, time.UTC)

func closedPeriod(index int64, end time.Time) *Period {
	return &Period{Index: index, StartedAt: t0, EndedAt: &end}
}

func TestGameRunningPeriod(t *testing.T) {
	tests := []struct {
		name      string
		periods   []*Period
		wantIndex int64
	}{
		{
			name:      "No Periods",
			periods:   []*Period{},
			wantIndex: 0,
		},
		{
			name:      "All Stopped",
			periods:   []*Period{closedPeriod(1, t0.Add(time.Minute))},
			wantIndex: 0,
		},
		{
			name: "One Running",
			periods: []*Period{
				closedPeriod(1, t0.Add(time.Minute)),
				{Index: 2, StartedAt: t0.Add(2 * time.Minute)},
			},
			wantIndex: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := &Game{Periods: tt.periods}
			running := game.RunningPeriod()
			if tt.wantIndex == 0 {
				assert.Equal(t, running == nil, true)
				return
			}
			assert.Equal(t, running.Index, tt.wantIndex)
		})
	}
}

func TestGameNextPeriodIndex(t *testing.T) {
	game := &Game{Periods: []*Period{}}
	assert.Equal(t, game.NextPeriodIndex(), int64(1))

	game.Periods = append(game.Periods, closedPeriod(1, t0.Add(time.Minute)))
	game.Periods = append(game.Periods, closedPeriod(2, t0.Add(2*time.Minute)))
	assert.Equal(t, game.NextPeriodIndex(), int64(3))
}

func TestSubstitutionDuration(t *testing.T) {
	off := t0.Add(90 * time.Second)

	closed := &Substitution{PlayerID: 7, OnAt: t0, OffAt: &off}
	assert.Equal(t, closed.Open(), false)
	assert.Equal(t, closed.Duration(t0.Add(time.Hour)), 90*time.Second)

	open := &Substitution{PlayerID: 7, OnAt: t0}
	assert.Equal(t, open.Open(), true)
	assert.Equal(t, open.Duration(t0.Add(30*time.Second)), 30*time.Second)
}

func TestGameStatusMarshalJSON(t *testing.T) {
	tests := []struct {
		name   string
		status GameStatus
		want   string
	}{
		{name: "Not Started", status: NOTSTARTED, want: `"not-started"`},
		{name: "In Progress", status: INPROGRESS, want: `"in-progress"`},
		{name: "Finished", status: FINISHED, want: `"finished"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.status.MarshalJSON()
			assert.NilError(t, err)
			assert.Equal(t, string(got), tt.want)
		})
	}

	_, err := GameStatus(9).MarshalJSON()
	assert.Equal(t, err != nil, true)
}
