package quota

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestState_CanCall(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		state State
		want  bool
	}{
		{
			name:  "uninitialized state allows the first call",
			state: State{},
			want:  true,
		},
		{
			name: "under the limit on the same day",
			state: State{
				LastAccess: now.Add(-time.Hour),
				CallsMade:  4,
				DailyLimit: 5,
			},
			want: true,
		},
		{
			name: "at the limit on the same day",
			state: State{
				LastAccess: now.Add(-time.Hour),
				CallsMade:  5,
				DailyLimit: 5,
			},
			want: false,
		},
		{
			name: "over the limit on the same day",
			state: State{
				LastAccess: now.Add(-time.Hour),
				CallsMade:  6,
				DailyLimit: 5,
			},
			want: false,
		},
		{
			name: "at the limit but the date rolled over",
			state: State{
				LastAccess: now.AddDate(0, 0, -1),
				CallsMade:  5,
				DailyLimit: 5,
			},
			want: true,
		},
		{
			name: "at the limit, last access just before midnight",
			state: State{
				LastAccess: time.Date(2024, 6, 14, 23, 59, 59, 0, time.UTC),
				CallsMade:  5,
				DailyLimit: 5,
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.CanCall(now))
		})
	}
}

func TestState_RecordCall(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("first call initializes the state", func(t *testing.T) {
		state := State{DailyLimit: 5}
		state.RecordCall(now)

		assert.Equal(t, 1, state.CallsMade)
		assert.Equal(t, now, state.LastAccess)
	})

	t.Run("same-day calls accumulate", func(t *testing.T) {
		state := State{LastAccess: now.Add(-time.Hour), CallsMade: 2, DailyLimit: 5}
		state.RecordCall(now)

		assert.Equal(t, 3, state.CallsMade)
	})

	t.Run("date rollover resets the counter before incrementing", func(t *testing.T) {
		state := State{LastAccess: now.AddDate(0, 0, -1), CallsMade: 5, DailyLimit: 5}
		state.RecordCall(now)

		assert.Equal(t, 1, state.CallsMade)
		assert.Equal(t, now, state.LastAccess)
	})
}

func TestState_Remaining(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		state State
		want  int
	}{
		{
			name:  "uninitialized state has the full limit",
			state: State{DailyLimit: 5},
			want:  5,
		},
		{
			name:  "same day subtracts calls made",
			state: State{LastAccess: now.Add(-time.Hour), CallsMade: 3, DailyLimit: 5},
			want:  2,
		},
		{
			name:  "exhausted",
			state: State{LastAccess: now.Add(-time.Hour), CallsMade: 5, DailyLimit: 5},
			want:  0,
		},
		{
			name:  "rollover restores the full limit",
			state: State{LastAccess: now.AddDate(0, 0, -1), CallsMade: 5, DailyLimit: 5},
			want:  5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.Remaining(now))
		})
	}
}
