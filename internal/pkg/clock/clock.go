package clock

import (
	"fmt"
	"time"
)

// Clock is the injected time source. Services never call time.Now directly;
// the business calendar day is derived once per request and passed down.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// System returns a Clock backed by the wall clock (UTC).
func System() Clock { return systemClock{} }

// Fixed returns a Clock frozen at t, for tests.
func Fixed(t time.Time) Clock { return fixedClock{t} }

type fixedClock struct{ t time.Time }

func (f fixedClock) Now() time.Time { return f.t }

// Calendar converts instants into business calendar dates using a fixed
// offset from UTC. Every store shares the one business calendar.
type Calendar struct {
	loc *time.Location
}

func NewCalendar(offsetMinutes int) Calendar {
	name := fmt.Sprintf("UTC%+03d:%02d", offsetMinutes/60, abs(offsetMinutes)%60)
	return Calendar{loc: time.FixedZone(name, offsetMinutes*60)}
}

func (c Calendar) Location() *time.Location { return c.loc }

// DateOf returns the business calendar date containing the instant t.
func (c Calendar) DateOf(t time.Time) Date {
	y, m, d := t.In(c.loc).Date()
	return Date{Year: y, Month: m, Day: d, loc: c.loc}
}

// Date is a calendar date in the business timezone.
type Date struct {
	Year  int
	Month time.Month
	Day   int

	loc *time.Location
}

// ParseDate parses a "YYYY-MM-DD" string into a Date on the calendar.
func (c Calendar) ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation("2006-01-02", s, c.loc)
	if err != nil {
		return Date{}, err
	}
	return c.DateOf(t), nil
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Time returns the Date as a time.Time at midnight in the business timezone.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, d.location())
}

// At combines the date with a "15:04" time-of-day string.
func (d Date) At(timeOfDay string) (time.Time, error) {
	tod, err := time.Parse("15:04", timeOfDay)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time of day %q: %w", timeOfDay, err)
	}
	return time.Date(d.Year, d.Month, d.Day, tod.Hour(), tod.Minute(), 0, 0, d.location()), nil
}

// AddDays returns the date shifted by n calendar days.
func (d Date) AddDays(n int) Date {
	t := d.Time().AddDate(0, 0, n)
	y, m, day := t.Date()
	return Date{Year: y, Month: m, Day: day, loc: d.loc}
}

func (d Date) Next() Date { return d.AddDays(1) }
func (d Date) Prev() Date { return d.AddDays(-1) }

func (d Date) Equal(o Date) bool {
	return d.Year == o.Year && d.Month == o.Month && d.Day == o.Day
}

func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

func (d Date) After(o Date) bool { return o.Before(d) }

func (d Date) location() *time.Location {
	if d.loc == nil {
		return time.UTC
	}
	return d.loc
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
