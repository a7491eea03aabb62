// internal/domain/weekday.go
package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Weekday is a day of the week with Monday = 0, matching how delivery
// schedules are written out by suppliers.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

func (d Weekday) String() string {
	if d < Monday || d > Sunday {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// ParseWeekday accepts the short names used on the wire ("mon".."sun").
func ParseWeekday(s string) (Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range weekdayNames {
		if n == name {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("invalid weekday %q", s)
}

// WeekdayOf converts from time.Weekday (Sunday = 0) ordering.
func WeekdayOf(t time.Time) Weekday {
	return Weekday((int(t.Weekday()) + 6) % 7)
}

// WeekdaySet is a set of weekdays, stored compactly so a supplier's
// delivery days round-trip as a list of ordinals.
type WeekdaySet uint8

// NewWeekdaySet builds a set from individual days.
func NewWeekdaySet(days ...Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s = s.Add(d)
	}
	return s
}

// EveryDay covers the whole week.
func EveryDay() WeekdaySet {
	return NewWeekdaySet(Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday)
}

func (s WeekdaySet) Add(d Weekday) WeekdaySet {
	if d < Monday || d > Sunday {
		return s
	}
	return s | 1<<uint(d)
}

func (s WeekdaySet) Has(d Weekday) bool {
	if d < Monday || d > Sunday {
		return false
	}
	return s&(1<<uint(d)) != 0
}

// Days returns the members in Monday-first order.
func (s WeekdaySet) Days() []Weekday {
	var days []Weekday
	for d := Monday; d <= Sunday; d++ {
		if s.Has(d) {
			days = append(days, d)
		}
	}
	return days
}

// Ordinals returns the members as int64 ordinals for persistence.
func (s WeekdaySet) Ordinals() []int64 {
	days := s.Days()
	out := make([]int64, len(days))
	for i, d := range days {
		out[i] = int64(d)
	}
	return out
}

// WeekdaySetFromOrdinals rebuilds a set from persisted ordinals, ignoring
// out-of-range values.
func WeekdaySetFromOrdinals(ordinals []int64) WeekdaySet {
	var s WeekdaySet
	for _, o := range ordinals {
		s = s.Add(Weekday(o))
	}
	return s
}

func (s WeekdaySet) String() string {
	days := s.Days()
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.String()
	}
	return strings.Join(names, ",")
}

// MarshalJSON renders the set as a list of short day names.
func (s WeekdaySet) MarshalJSON() ([]byte, error) {
	days := s.Days()
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.String()
	}
	return json.Marshal(names)
}

func (s *WeekdaySet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	var set WeekdaySet
	for _, n := range names {
		d, err := ParseWeekday(n)
		if err != nil {
			return err
		}
		set = set.Add(d)
	}
	*s = set
	return nil
}
