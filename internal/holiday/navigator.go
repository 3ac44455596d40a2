package holiday

import "time"

// Navigator holds the visible month of the calendar. Only explicit
// navigation changes it; holiday mutations never do. The year range is
// unbounded in both directions.
type Navigator struct {
	month time.Month
	year  int
}

// NewNavigator creates a navigator positioned at the given month
func NewNavigator(month time.Month, year int) *Navigator {
	return &Navigator{month: month, year: year}
}

// Current returns the visible month and year
func (n *Navigator) Current() (time.Month, int) {
	return n.month, n.year
}

// Next advances one month, wrapping December into January of the next year
func (n *Navigator) Next() {
	if n.month == time.December {
		n.month = time.January
		n.year++
		return
	}
	n.month++
}

// Prev goes back one month, wrapping January into December of the previous year
func (n *Navigator) Prev() {
	if n.month == time.January {
		n.month = time.December
		n.year--
		return
	}
	n.month--
}
