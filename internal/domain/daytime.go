// internal/domain/daytime.go
package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// DayTime is a wall-clock time of day (an order deadline). It carries no
// date or zone; the store's configured timezone applies.
type DayTime struct {
	Hour   int
	Minute int
}

// ParseDayTime parses "15:04".
func ParseDayTime(s string) (DayTime, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return DayTime{}, fmt.Errorf("invalid time of day %q", s)
	}
	return DayTime{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (d DayTime) String() string {
	return fmt.Sprintf("%02d:%02d", d.Hour, d.Minute)
}

// On anchors the time of day to a calendar date in the given location.
func (d DayTime) On(date time.Time, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), d.Hour, d.Minute, 0, 0, loc)
}

// MinutesOfDay is the offset from midnight, for deadline arithmetic.
func (d DayTime) MinutesOfDay() int {
	return d.Hour*60 + d.Minute
}

func (d DayTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *DayTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDayTime(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value stores the deadline as a TIME column value.
func (d DayTime) Value() (driver.Value, error) {
	return fmt.Sprintf("%02d:%02d:00", d.Hour, d.Minute), nil
}

// Scan accepts TIME column representations from the driver.
func (d *DayTime) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*d = DayTime{Hour: v.Hour(), Minute: v.Minute()}
		return nil
	case []byte:
		return d.scanString(string(v))
	case string:
		return d.scanString(v)
	default:
		return fmt.Errorf("cannot scan %T into DayTime", src)
	}
}

func (d *DayTime) scanString(s string) error {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			*d = DayTime{Hour: t.Hour(), Minute: t.Minute()}
			return nil
		}
	}
	return fmt.Errorf("cannot scan %q into DayTime", s)
}
