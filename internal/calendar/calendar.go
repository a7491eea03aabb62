// internal/calendar/calendar.go
package calendar

import "time"

// Calendar answers whether a date is a holiday: the union of the Russian
// public holiday calendar and a configured list of extra month-days the
// store treats as holiday-grade demand (school year start, the days right
// before New Year, and so on).
type Calendar struct {
	extra map[string]struct{}
}

// Nationwide non-working holidays. The long New Year break (Jan 1-8,
// including Orthodox Christmas on Jan 7) is fixed by the labor code.
var publicHolidays = map[string]struct{}{
	"01-01": {}, "01-02": {}, "01-03": {}, "01-04": {},
	"01-05": {}, "01-06": {}, "01-07": {}, "01-08": {},
	"02-23": {}, // Defender of the Fatherland Day
	"03-08": {}, // International Women's Day
	"05-01": {}, // Spring and Labour Day
	"05-09": {}, // Victory Day
	"06-12": {}, // Russia Day
	"11-04": {}, // Unity Day
}

// New builds a calendar with extra month-days in "01-07" form. Malformed
// entries are ignored.
func New(extraMonthDays []string) *Calendar {
	extra := make(map[string]struct{}, len(extraMonthDays))
	for _, md := range extraMonthDays {
		if _, err := time.Parse("01-02", md); err != nil {
			continue
		}
		extra[md] = struct{}{}
	}
	return &Calendar{extra: extra}
}

// IsHoliday reports whether the date falls on a public or extra holiday.
func (c *Calendar) IsHoliday(date time.Time) bool {
	md := date.Format("01-02")
	if _, ok := publicHolidays[md]; ok {
		return true
	}
	_, ok := c.extra[md]
	return ok
}
