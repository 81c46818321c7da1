package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetLevelStatus(t *testing.T) {
	tests := []struct {
		points   int
		level    string
		next     string
		target   int
		progress float64
	}{
		{0, LevelExplorer, LevelLocalFriend, 500, 0},
		{-20, LevelExplorer, LevelLocalFriend, 500, 0},
		{125, LevelExplorer, LevelLocalFriend, 500, 25},
		{500, LevelLocalFriend, LevelAmbassador, 1000, 50},
		{999, LevelLocalFriend, LevelAmbassador, 1000, 99.9},
		{1000, LevelAmbassador, LevelLegend, 2000, 50},
		{1333, LevelAmbassador, LevelLegend, 2000, 66.65},
		{2000, LevelLegend, LevelMax, 2000, 100},
		{9000, LevelLegend, LevelMax, 2000, 100},
	}

	for _, tt := range tests {
		got := GetLevelStatus(tt.points)
		assert.Equal(t, tt.level, got.Level, "points=%d", tt.points)
		assert.Equal(t, tt.next, got.NextLevel, "points=%d", tt.points)
		assert.Equal(t, tt.target, got.TargetPoints, "points=%d", tt.points)
		assert.InDelta(t, tt.progress, got.Progress, 0.001, "points=%d", tt.points)
	}
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, "Explorer", LevelFor(499))
	assert.Equal(t, "Local Friend", LevelFor(500))
	assert.Equal(t, "Ambassador", LevelFor(1999))
	assert.Equal(t, "Legend", LevelFor(2500))
}
