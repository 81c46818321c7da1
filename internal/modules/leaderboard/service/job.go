package service

import (
	"context"
	"time"

	"desideri.com/pugliaclub/pkg/period"
)

const MonthlyCloseJobName = "leaderboard-monthly-close"

// MonthlyCloseJob closes the previous month shortly after midnight on the
// first day of every month.
type MonthlyCloseJob struct {
	service  LeaderboardService
	schedule string
	now      func() time.Time
}

func NewMonthlyCloseJob(service LeaderboardService, schedule string, now func() time.Time) *MonthlyCloseJob {
	if schedule == "" {
		schedule = "5 0 1 * *"
	}
	if now == nil {
		now = time.Now
	}
	return &MonthlyCloseJob{service: service, schedule: schedule, now: now}
}

func (j *MonthlyCloseJob) Name() string     { return MonthlyCloseJobName }
func (j *MonthlyCloseJob) Schedule() string { return j.schedule }

func (j *MonthlyCloseJob) Run(ctx context.Context) error {
	_, err := j.service.CloseMonth(ctx, period.PreviousMonth(j.now()))
	return err
}
