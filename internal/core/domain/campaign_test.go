package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRemainingAmount(t *testing.T) {
	tests := []struct {
		name   string
		target int64
		raised int64
		want   int64
	}{
		{"nothing raised", 1000, 0, 1000},
		{"partially funded", 1000, 250, 750},
		{"exactly funded", 1000, 1000, 0},
		{"overfunded floors at zero", 1000, 1100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Campaign{TargetAmount: tt.target, RaisedAmount: tt.raised}
			assert.Equal(t, tt.want, c.RemainingAmount())
		})
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name   string
		target int64
		raised int64
		want   int64
	}{
		{"zero", 1000, 0, 0},
		{"half", 1000, 500, 50},
		{"rounds down", 1000, 999, 99},
		{"sub-percent rounds to zero", 1000, 9, 0},
		{"full", 1000, 1000, 100},
		{"overfunded exceeds hundred", 1000, 1100, 110},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Campaign{TargetAmount: tt.target, RaisedAmount: tt.raised}
			assert.Equal(t, tt.want, c.Progress())
		})
	}
}

func TestEnded(t *testing.T) {
	deadline := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	c := Campaign{Deadline: deadline}

	assert.False(t, c.Ended(deadline.Add(-time.Second)))
	assert.True(t, c.Ended(deadline), "deadline instant itself closes the window")
	assert.True(t, c.Ended(deadline.Add(time.Second)))
}
