package holiday

import (
	"fmt"
	"time"

	"github.com/username/timesheet-console/internal/api"
	"github.com/username/timesheet-console/pkg/dateutil"
)

// maxBadgesPerCell caps how many holiday badges a day cell shows before
// collapsing the rest into an overflow counter
const maxBadgesPerCell = 2

// Badge is a single holiday marker on a day cell
type Badge struct {
	Label string // truncated type label: Gov / Weekly
	Type  string
}

// Cell is one slot of the month grid. Day 0 marks a leading blank cell
// padding the first week so day 1 lands on its weekday column.
type Cell struct {
	Day        int
	Date       string // YYYY-MM-DD, empty for blanks
	Badges     []Badge
	Overflow   int // records beyond maxBadgesPerCell
	IsToday    bool
	IsSelected bool
}

// OverflowLabel renders the "+N more" marker for a cell, or ""
func (c Cell) OverflowLabel() string {
	if c.Overflow <= 0 {
		return ""
	}
	return fmt.Sprintf("+%d more", c.Overflow)
}

// RenderMonth produces the cell grid for a month: FirstWeekday leading
// blanks, then one cell per day annotated against the holiday list, the
// selected-Friday set and today's date. Pure function of its inputs.
func RenderMonth(month time.Month, year int, holidays []api.Holiday, selected map[string]bool, today time.Time) []Cell {
	cells := make([]Cell, 0, 31+int(FirstWeekday(month, year)))

	for i := 0; i < int(FirstWeekday(month, year)); i++ {
		cells = append(cells, Cell{})
	}

	todayKey := dateutil.DateKey(today)

	for day := 1; day <= DaysInMonth(month, year); day++ {
		dateKey := dateutil.DateKey(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))

		cell := Cell{
			Day:        day,
			Date:       dateKey,
			IsToday:    dateKey == todayKey,
			IsSelected: selected[dateKey],
		}

		for _, h := range holidays {
			if h.Date != dateKey {
				continue
			}
			if len(cell.Badges) < maxBadgesPerCell {
				cell.Badges = append(cell.Badges, Badge{Label: badgeLabel(h.Type), Type: h.Type})
			} else {
				cell.Overflow++
			}
		}

		cells = append(cells, cell)
	}

	return cells
}

func badgeLabel(holidayType string) string {
	switch holidayType {
	case api.HolidayTypeGovernment:
		return "Gov"
	case api.HolidayTypeWeekly:
		return "Weekly"
	default:
		return holidayType
	}
}
