package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBuild2024Sunday(t *testing.T) {
	g := Build(2024, WeekStartSunday)

	require.Equal(t, "2023-12-31", FormatDate(g.GridStart))
	require.Equal(t, "2024-01-01", FormatDate(g.StartDate))
	require.Equal(t, "2024-12-31", FormatDate(g.EndDate))
	require.Equal(t, 53, g.Weeks)
	require.Len(t, g.Dates, 53)
	require.Equal(t, g.GridStart, g.Dates[0][0])
	require.False(t, g.InYear(0, 0))
	require.True(t, g.InYear(0, 1))
	require.Equal(t, "2024-12-31", FormatDate(g.Dates[52][2]))
	require.False(t, g.InYear(52, 3))
}

func TestBuild2024Monday(t *testing.T) {
	g := Build(2024, WeekStartMonday)

	// 2024-01-01 is a Monday, so there is no leading padding.
	require.Equal(t, "2024-01-01", FormatDate(g.GridStart))
	require.True(t, g.InYear(0, 0))
	require.Equal(t, 53, g.Weeks)
}

func TestBuildInvariants(t *testing.T) {
	for year := 1999; year <= 2031; year++ {
		for _, ws := range []WeekStart{WeekStartSunday, WeekStartMonday} {
			g := Build(year, ws)
			jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)

			require.Equal(t, 0, WeekdayIndex(g.GridStart, ws), "year %d %s", year, ws)
			require.False(t, g.GridStart.After(jan1))
			require.Equal(t, g.GridStart, g.Dates[0][0])

			daysInYear := DaysBetween(g.StartDate, g.EndDate) + 1
			offset := DaysBetween(g.GridStart, g.StartDate)
			require.GreaterOrEqual(t, g.Weeks*DaysPerWeek, daysInYear+offset)
			require.Less(t, (g.Weeks-1)*DaysPerWeek, daysInYear+offset, "weeks must be minimal")

			prev := g.Dates[0][0]
			for w := 0; w < g.Weeks; w++ {
				for d := 0; d < DaysPerWeek; d++ {
					if w == 0 && d == 0 {
						continue
					}
					require.Equal(t, 1, DaysBetween(prev, g.Dates[w][d]))
					prev = g.Dates[w][d]
				}
			}
		}
	}
}

func TestBuildLeapYearCoversFeb29(t *testing.T) {
	g := Build(2028, WeekStartSunday)
	found := false
	for w := 0; w < g.Weeks; w++ {
		for d := 0; d < DaysPerWeek; d++ {
			if FormatDate(g.Dates[w][d]) == "2028-02-29" {
				found = true
			}
		}
	}
	require.True(t, found)
}

func TestBuildIgnoresLocalZone(t *testing.T) {
	original := time.Local
	time.Local = time.FixedZone("UTC-11", -11*60*60)
	defer func() { time.Local = original }()

	g := Build(2025, WeekStartSunday)
	require.Equal(t, "2024-12-29", FormatDate(g.GridStart))
	require.Equal(t, time.UTC, g.GridStart.Location())
}

func TestParseWeekStart(t *testing.T) {
	ws, err := ParseWeekStart("MON")
	require.NoError(t, err)
	require.Equal(t, WeekStartMonday, ws)

	ws, err = ParseWeekStart("")
	require.NoError(t, err)
	require.Equal(t, WeekStartSunday, ws)

	_, err = ParseWeekStart("tue")
	require.Error(t, err)
}

func TestWeekdayIndex(t *testing.T) {
	sunday := time.Date(2024, time.January, 7, 0, 0, 0, 0, time.UTC)
	require.Equal(t, 0, WeekdayIndex(sunday, WeekStartSunday))
	require.Equal(t, 6, WeekdayIndex(sunday, WeekStartMonday))
}

func TestGridBounds(t *testing.T) {
	g := Build(2024, WeekStartSunday)
	require.False(t, g.InYear(-1, 0))
	require.False(t, g.InYear(0, 7))
	require.False(t, g.InYear(g.Weeks, 0))
}

func TestParseDateRoundTrip(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	require.Equal(t, "2024-02-29", FormatDate(d))

	_, err = ParseDate("2024/02/29")
	require.Error(t, err)
}
