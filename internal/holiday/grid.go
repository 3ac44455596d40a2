package holiday

import (
	"time"

	"github.com/username/timesheet-console/pkg/dateutil"
)

// WeeklyHolidayDay is the recurring non-working weekday. The backend
// treats "weekly" holidays as Fridays (regional weekend day), so the
// whole bulk path is keyed to this constant.
const WeeklyHolidayDay = time.Friday

// DaysInMonth returns the number of days in the given month.
// Day 0 of the following month is the last day of this one.
func DaysInMonth(month time.Month, year int) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekday returns the weekday of the 1st of the month (Sunday = 0),
// used to pad leading blank cells in the calendar grid
func FirstWeekday(month time.Month, year int) time.Weekday {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday()
}

// FridaysInMonth returns the YYYY-MM-DD keys of every Friday in the
// month, in ascending date order. A month always has 4 or 5.
func FridaysInMonth(month time.Month, year int) []string {
	var fridays []string
	for day := 1; day <= DaysInMonth(month, year); day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		if date.Weekday() == WeeklyHolidayDay {
			fridays = append(fridays, dateutil.DateKey(date))
		}
	}
	return fridays
}
