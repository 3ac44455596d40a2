package dateutil

import "time"

// DateKeyFormat is the wire format for calendar dates (YYYY-MM-DD)
const DateKeyFormat = "2006-01-02"

// StartOfDay returns the start of the day (00:00:00) for the given date
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// EndOfDay returns the end of the day (23:59:59.999) for the given date
func EndOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 23, 59, 59, 999999999, date.Location())
}

// DateKey formats a date as its YYYY-MM-DD calendar key
func DateKey(date time.Time) string {
	return date.Format(DateKeyFormat)
}

// ParseDateKey parses a YYYY-MM-DD calendar key
func ParseDateKey(key string) (time.Time, error) {
	return time.Parse(DateKeyFormat, key)
}

// IsSameDay returns true if two dates are on the same day
func IsSameDay(date1, date2 time.Time) bool {
	return date1.Year() == date2.Year() &&
		date1.Month() == date2.Month() &&
		date1.Day() == date2.Day()
}

// IsWeekday returns true if the date is Monday-Friday
func IsWeekday(date time.Time) bool {
	weekday := date.Weekday()
	return weekday >= time.Monday && weekday <= time.Friday
}

// IsWeekend returns true if the date is Saturday or Sunday
func IsWeekend(date time.Time) bool {
	weekday := date.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// InRange returns true if date falls within [from, to] inclusive,
// comparing calendar days only
func InRange(date, from, to time.Time) bool {
	d := StartOfDay(date)
	return !d.Before(StartOfDay(from)) && !d.After(StartOfDay(to))
}

// ParseDate parses date string in various accepted input formats
func ParseDate(dateStr string) (time.Time, error) {
	formats := []string{
		"2006-01-02",
		"02.01.2006",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04:05Z",
	}

	var lastErr error
	for _, format := range formats {
		t, err := time.Parse(format, dateStr)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}

	return time.Time{}, lastErr
}

// Today returns today's date (start of day)
func Today() time.Time {
	return StartOfDay(time.Now())
}
