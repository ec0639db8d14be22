package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchStatsDelta(t *testing.T) {
	prev := MatchStats{Goals: 1, Assists: 2, MinutesPlayed: 45}
	next := MatchStats{Goals: 3, Assists: 1, YellowCards: 1, MinutesPlayed: 90}

	delta := next.Delta(prev)
	assert.Equal(t, StatsDelta{Goals: 2, Assists: -1, YellowCards: 1}, delta)

	// minutes never reach the career totals
	assert.True(t, MatchStats{MinutesPlayed: 90}.Delta(MatchStats{}).IsZero())
}

func TestMatchStatsIsZero(t *testing.T) {
	assert.True(t, MatchStats{}.IsZero())
	assert.False(t, MatchStats{MinutesPlayed: 1}.IsZero())
	assert.False(t, MatchStats{Goals: 1}.IsZero())
}

func TestMatchStatsValidate(t *testing.T) {
	tests := []struct {
		name  string
		stats MatchStats
		ok    bool
	}{
		{"zero line", MatchStats{}, true},
		{"full line", MatchStats{Goals: 3, Assists: 2, YellowCards: 2, RedCards: 1, MinutesPlayed: 120}, true},
		{"negative goals", MatchStats{Goals: -1}, false},
		{"negative assists", MatchStats{Assists: -1}, false},
		{"three yellows", MatchStats{YellowCards: 3}, false},
		{"two reds", MatchStats{RedCards: 2}, false},
		{"too many minutes", MatchStats{MinutesPlayed: 121}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.stats.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrStatsOutOfRange)
			}
		})
	}
}

func TestStatsPatchApply(t *testing.T) {
	base := MatchStats{Goals: 1, Assists: 1, MinutesPlayed: 60}

	// empty patch changes nothing
	assert.Equal(t, base, StatsPatch{}.Apply(base))

	zero := 0
	two := 2
	got := StatsPatch{Goals: &zero, Assists: &two}.Apply(base)
	assert.Equal(t, MatchStats{Goals: 0, Assists: 2, MinutesPlayed: 60}, got)
}
