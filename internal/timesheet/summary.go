package timesheet

import (
	"fmt"
	"sort"
	"time"

	"github.com/username/timesheet-console/internal/api"
	"github.com/username/timesheet-console/pkg/dateutil"
	"go.uber.org/zap"
)

// DaySummary aggregates the entries of one calendar day
type DaySummary struct {
	Date       string // YYYY-MM-DD
	Hours      float64
	Pay        float64
	EntryCount int
}

// PeriodSummary aggregates a date range of timesheet entries
type PeriodSummary struct {
	From       time.Time
	To         time.Time
	TotalHours float64
	TotalPay   float64
	EntryCount int
	Daily      []DaySummary // ascending by date
}

// Summarizer computes period summaries over fetched timesheet entries
type Summarizer struct {
	logger *zap.Logger
}

// NewSummarizer creates a new timesheet summarizer
func NewSummarizer(logger *zap.Logger) *Summarizer {
	return &Summarizer{logger: logger}
}

// FilterRange keeps only entries whose date falls within [from, to]
// inclusive. Entries with unparseable dates are dropped with a warning.
func (s *Summarizer) FilterRange(entries []api.TimesheetEntry, from, to time.Time) []api.TimesheetEntry {
	var filtered []api.TimesheetEntry
	for _, entry := range entries {
		date, err := dateutil.ParseDateKey(entry.Date)
		if err != nil {
			s.logger.Warn("Skipping entry with invalid date",
				zap.String("id", entry.ID.String()),
				zap.String("date", entry.Date))
			continue
		}
		if dateutil.InRange(date, from, to) {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

// FilterEmployee keeps only entries belonging to the given employee id
func (s *Summarizer) FilterEmployee(entries []api.TimesheetEntry, employeeID string) []api.TimesheetEntry {
	var filtered []api.TimesheetEntry
	for _, entry := range entries {
		if entry.EmployeeID.String() == employeeID {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

// Summarize computes hour totals, pay summation and the per-day
// breakdown for the entries of [from, to]
func (s *Summarizer) Summarize(entries []api.TimesheetEntry, from, to time.Time) *PeriodSummary {
	inRange := s.FilterRange(entries, from, to)

	summary := &PeriodSummary{
		From:       from,
		To:         to,
		EntryCount: len(inRange),
	}

	byDay := make(map[string]*DaySummary)
	for _, entry := range inRange {
		pay := entry.Hours * entry.HourlyRate

		summary.TotalHours += entry.Hours
		summary.TotalPay += pay

		day, ok := byDay[entry.Date]
		if !ok {
			day = &DaySummary{Date: entry.Date}
			byDay[entry.Date] = day
		}
		day.Hours += entry.Hours
		day.Pay += pay
		day.EntryCount++
	}

	summary.Daily = make([]DaySummary, 0, len(byDay))
	for _, day := range byDay {
		summary.Daily = append(summary.Daily, *day)
	}
	sort.Slice(summary.Daily, func(i, j int) bool {
		return summary.Daily[i].Date < summary.Daily[j].Date
	})

	s.logger.Info("Period summarized",
		zap.Time("from", from),
		zap.Time("to", to),
		zap.Int("entries", summary.EntryCount),
		zap.Float64("total_hours", summary.TotalHours),
		zap.Float64("total_pay", summary.TotalPay))

	return summary
}

// FormatHours renders an hour total for tables, e.g. "7.5h"
func FormatHours(hours float64) string {
	return fmt.Sprintf("%.1fh", hours)
}
