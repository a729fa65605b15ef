package calendar

import (
	"fmt"
	"strings"
	"time"
)

// DaysPerWeek is the fixed height of every grid column.
const DaysPerWeek = 7

const dateLayout = "2006-01-02"

// WeekStart selects which weekday occupies row 0 of the grid.
type WeekStart string

const (
	WeekStartSunday WeekStart = "sun"
	WeekStartMonday WeekStart = "mon"
)

// ParseWeekStart accepts "sun" or "mon" in any case. Empty input means Sunday.
func ParseWeekStart(raw string) (WeekStart, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(WeekStartSunday), "sunday":
		return WeekStartSunday, nil
	case string(WeekStartMonday), "monday":
		return WeekStartMonday, nil
	default:
		return "", fmt.Errorf("unknown week start %q", raw)
	}
}

// Grid is the week-by-day date matrix for one year.
type Grid struct {
	Year      int
	WeekStart WeekStart
	GridStart time.Time
	StartDate time.Time
	EndDate   time.Time
	Weeks     int
	// Dates is indexed [week][day]. Every value is a UTC midnight.
	Dates [][DaysPerWeek]time.Time
}

// Build lays out the calendar grid for year. All arithmetic runs in UTC so the
// host time zone can never shift a boundary by a day.
func Build(year int, ws WeekStart) Grid {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	gridStart := start.AddDate(0, 0, -WeekdayIndex(start, ws))
	totalDays := DaysBetween(gridStart, end) + 1
	weeks := (totalDays + DaysPerWeek - 1) / DaysPerWeek

	dates := make([][DaysPerWeek]time.Time, weeks)
	for w := 0; w < weeks; w++ {
		for d := 0; d < DaysPerWeek; d++ {
			dates[w][d] = gridStart.AddDate(0, 0, w*DaysPerWeek+d)
		}
	}

	return Grid{
		Year:      year,
		WeekStart: ws,
		GridStart: gridStart,
		StartDate: start,
		EndDate:   end,
		Weeks:     weeks,
		Dates:     dates,
	}
}

// InBounds reports whether (week, day) addresses a cell of the grid.
func (g Grid) InBounds(week, day int) bool {
	return week >= 0 && week < g.Weeks && day >= 0 && day < DaysPerWeek
}

// InYear reports whether the cell holds a date of the grid's target year.
// Out-of-bounds cells are never in the year.
func (g Grid) InYear(week, day int) bool {
	if !g.InBounds(week, day) {
		return false
	}
	return InYear(g.Dates[week][day], g.Year)
}

// At returns the date of a cell. The caller must stay in bounds.
func (g Grid) At(week, day int) time.Time {
	return g.Dates[week][day]
}

// InYear reports whether t falls in year (UTC).
func InYear(t time.Time, year int) bool {
	return t.UTC().Year() == year
}

// WeekdayIndex maps t onto [0,6] under the given convention:
// Sunday-indexed Sun=0..Sat=6, Monday-indexed Mon=0..Sun=6.
func WeekdayIndex(t time.Time, ws WeekStart) int {
	dow := int(t.UTC().Weekday())
	if ws == WeekStartMonday {
		return (dow + 6) % 7
	}
	return dow
}

// DaysBetween counts whole UTC days from a to b; negative when b precedes a.
func DaysBetween(a, b time.Time) int {
	da := dateOnly(a)
	db := dateOnly(b)
	return int(db.Sub(da).Hours() / 24)
}

// FormatDate renders t as YYYY-MM-DD in UTC.
func FormatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// ParseDate is the inverse of FormatDate.
func ParseDate(raw string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, strings.TrimSpace(raw), time.UTC)
}

func dateOnly(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
