package service

import (
	"context"
	"time"

	"desideri.com/pugliaclub/internal/entity"
	"desideri.com/pugliaclub/pkg/apperror"
	"desideri.com/pugliaclub/pkg/period"
	"github.com/google/uuid"
)

var activeStatuses = []string{entity.StatusPending, entity.StatusApproved}

// periodStart returns the beginning of the mission's current window. One
// time missions have no window and return the zero time.
func periodStart(frequency string, now time.Time) time.Time {
	switch frequency {
	case entity.FrequencyDaily:
		return period.StartOfDay(now)
	case entity.FrequencyWeekly:
		return period.StartOfWeek(now)
	case entity.FrequencyMonthly:
		return period.StartOfMonth(now)
	default:
		return time.Time{}
	}
}

func atLeastOne(n int) int64 {
	if n < 1 {
		return 1
	}
	return int64(n)
}

// checkLimits returns the first rule that blocks the member from
// completing the mission now. Rejected submissions never count.
func (s *missionService) checkLimits(ctx context.Context, userID uuid.UUID, mission *entity.Mission, now time.Time) error {
	count := func(statuses []string, since time.Time) (int64, error) {
		return s.repo.CountSubmissions(ctx, userID, mission.ID, statuses, since)
	}

	switch mission.Frequency {
	case entity.FrequencyOneTime:
		approved, err := count([]string{entity.StatusApproved}, time.Time{})
		if err != nil {
			return err
		}
		if approved > 0 {
			return apperror.BadRequest("Mission already completed")
		}
		pending, err := count([]string{entity.StatusPending}, time.Time{})
		if err != nil {
			return err
		}
		if pending > 0 {
			return apperror.BadRequest("Mission already submitted and awaiting approval")
		}

	case entity.FrequencyDaily:
		n, err := count(activeStatuses, period.StartOfDay(now))
		if err != nil {
			return err
		}
		if n >= atLeastOne(mission.DailyLimit) {
			return apperror.BadRequest("Daily limit reached for this mission")
		}

	case entity.FrequencyWeekly:
		n, err := count(activeStatuses, period.StartOfWeek(now))
		if err != nil {
			return err
		}
		if n >= atLeastOne(mission.WeeklyLimit) {
			return apperror.BadRequest("Weekly limit reached for this mission")
		}

	case entity.FrequencyMonthly:
		n, err := count(activeStatuses, period.StartOfMonth(now))
		if err != nil {
			return err
		}
		if n >= 1 {
			return apperror.BadRequest("Monthly limit reached for this mission")
		}
	}

	if mission.DailyLimit > 0 {
		n, err := count(activeStatuses, period.StartOfDay(now))
		if err != nil {
			return err
		}
		if n >= int64(mission.DailyLimit) {
			return apperror.BadRequest("Daily limit reached for this mission")
		}
	}
	if mission.WeeklyLimit > 0 {
		n, err := count(activeStatuses, period.StartOfWeek(now))
		if err != nil {
			return err
		}
		if n >= int64(mission.WeeklyLimit) {
			return apperror.BadRequest("Weekly limit reached for this mission")
		}
	}

	return nil
}
