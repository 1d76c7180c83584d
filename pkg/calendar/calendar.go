// Package calendar holds the date arithmetic behind the month view: diary
// date keys, day parsing and the month grid.
package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultKeyLayout renders dates the way an en-US browser's toLocaleDateString
// does, so collections exported from the browser keep their keys.
const DefaultKeyLayout = "1/2/2006"

var ErrInvalidDay = errors.New("invalid day")
var ErrInvalidMonth = errors.New("invalid month")

// Key returns the diary key for the calendar day of t.
func Key(t time.Time, layout string) string {
	if layout == "" {
		layout = DefaultKeyLayout
	}
	return t.Format(layout)
}

// ParseDay accepts "today", "yesterday" or YYYY-MM-DD. The empty string means today.
func ParseDay(s string, now time.Time) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return startOfDay(now), nil
	case "yesterday":
		return startOfDay(now).AddDate(0, 0, -1), nil
	}

	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q (want YYYY-MM-DD, today or yesterday)", ErrInvalidDay, s)
	}
	return t, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Month is one page of the calendar.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth accepts YYYY-MM. The empty string means the month of now.
func ParseMonth(s string, now time.Time) (Month, error) {
	if strings.TrimSpace(s) == "" {
		return MonthOf(now), nil
	}
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return Month{}, fmt.Errorf("%w: %q (want YYYY-MM)", ErrInvalidMonth, s)
	}
	return MonthOf(t), nil
}

// First returns midnight of the first day of the month in loc.
func (m Month) First(loc *time.Location) time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, loc)
}

// Day returns midnight of day d of the month in loc.
func (m Month) Day(d int, loc *time.Location) time.Time {
	return time.Date(m.Year, m.Month, d, 0, 0, 0, 0, loc)
}

func (m Month) Prev() Month {
	return MonthOf(m.First(time.UTC).AddDate(0, -1, 0))
}

func (m Month) Next() Month {
	return MonthOf(m.First(time.UTC).AddDate(0, 1, 0))
}

// Days returns the number of days in the month.
func (m Month) Days() int {
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekday is the weekday of day 1; Sunday starts the week.
func (m Month) FirstWeekday() time.Weekday {
	return m.First(time.UTC).Weekday()
}

// Contains reports whether t falls in the month.
func (m Month) Contains(t time.Time) bool {
	return t.Year() == m.Year && t.Month() == m.Month
}

// Grid lays the month out in Sunday-first weeks. Zero marks a blank cell.
func (m Month) Grid() [][7]int {
	var weeks [][7]int
	var week [7]int
	col := int(m.FirstWeekday())
	for d := 1; d <= m.Days(); d++ {
		week[col] = d
		col++
		if col == 7 {
			weeks = append(weeks, week)
			week = [7]int{}
			col = 0
		}
	}
	if col > 0 {
		weeks = append(weeks, week)
	}
	return weeks
}

// Title is the calendar heading, e.g. "2025 / 10".
func (m Month) Title() string {
	return fmt.Sprintf("%d / %d", m.Year, int(m.Month))
}

// String renders the month as YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// ResolveKey turns a day argument into a diary key. It accepts whatever
// ParseDay accepts, or a key already rendered with layout.
func ResolveKey(arg, layout string, now time.Time) (string, error) {
	if layout == "" {
		layout = DefaultKeyLayout
	}
	day, err := ParseDay(arg, now)
	if err == nil {
		return Key(day, layout), nil
	}
	if parsed, keyErr := time.ParseInLocation(layout, strings.TrimSpace(arg), now.Location()); keyErr == nil {
		return Key(parsed, layout), nil
	}
	return "", err
}
