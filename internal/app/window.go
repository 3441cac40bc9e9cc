package app

import (
	"fmt"
	"time"

	"github.com/Downforcedemon/MinimalHome/internal/domain"
)

const maxAppNameLen = 255

// startOfDay truncates t to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// alignToWeekStart returns the midnight of the most recent weekStart day at
// or before t. This is the calendar-week anchor used by weekly stats; the
// limit evaluator deliberately uses a trailing window instead.
func alignToWeekStart(t time.Time, weekStart time.Weekday) time.Time {
	day := startOfDay(t)
	diff := (int(day.Weekday()) - int(weekStart) + 7) % 7
	return day.AddDate(0, 0, -diff)
}

func validateUserID(userID int64) error {
	if userID <= 0 {
		return fmt.Errorf("%w: got %d", domain.ErrInvalidUserID, userID)
	}
	return nil
}

func validateAppName(appName string) error {
	if appName == "" || len(appName) > maxAppNameLen {
		return fmt.Errorf("%w: got %d characters", domain.ErrInvalidAppName, len(appName))
	}
	return nil
}

func validateWindow(start, end time.Time) error {
	if end.Before(start) {
		return fmt.Errorf("%w: [%s, %s)", domain.ErrInvalidWindow,
			start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return nil
}
