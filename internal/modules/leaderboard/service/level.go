package service

import (
	"math"

	"desideri.com/pugliaclub/pkg/dto"
)

// Level thresholds on lifetime points. Levels never demote through normal
// play; only a manual admin deduction can lower total points.
const (
	PointsLegend      = 2000
	PointsAmbassador  = 1000
	PointsLocalFriend = 500
	PointsExplorer    = 0
)

const (
	LevelExplorer    = "Explorer"
	LevelLocalFriend = "Local Friend"
	LevelAmbassador  = "Ambassador"
	LevelLegend      = "Legend"
	LevelMax         = "Max Level"
)

// LevelFor returns the level name for a lifetime point total.
func LevelFor(totalPoints int) string {
	return GetLevelStatus(totalPoints).Level
}

// GetLevelStatus calculates the level and the progress toward the next one.
// Progress is the share of the next threshold already reached.
func GetLevelStatus(totalPoints int) dto.LevelStatus {
	var status dto.LevelStatus
	status.TotalPoints = totalPoints

	switch {
	case totalPoints >= PointsLegend:
		status.Level = LevelLegend
		status.NextLevel = LevelMax
		status.TargetPoints = PointsLegend
		status.Progress = 100

	case totalPoints >= PointsAmbassador:
		status.Level = LevelAmbassador
		status.NextLevel = LevelLegend
		status.TargetPoints = PointsLegend
		status.Progress = (float64(totalPoints) / float64(PointsLegend)) * 100

	case totalPoints >= PointsLocalFriend:
		status.Level = LevelLocalFriend
		status.NextLevel = LevelAmbassador
		status.TargetPoints = PointsAmbassador
		status.Progress = (float64(totalPoints) / float64(PointsAmbassador)) * 100

	default:
		status.Level = LevelExplorer
		status.NextLevel = LevelLocalFriend
		status.TargetPoints = PointsLocalFriend
		if totalPoints > 0 {
			status.Progress = (float64(totalPoints) / float64(PointsLocalFriend)) * 100
		}
	}

	status.Progress = math.Round(status.Progress*100) / 100

	return status
}
