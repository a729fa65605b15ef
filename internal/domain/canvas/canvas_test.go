package canvas

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/commit-canvas/internal/domain/calendar"
	"github.com/yanqian/commit-canvas/internal/domain/glyph"
	"github.com/yanqian/commit-canvas/pkg/random"
)

// 2024 starts on a Monday, so with Sunday weeks the first column holds
// 2023-12-31 in row 0 and weeks 1..5 are fully inside the year.
func TestCompositeLetterA(t *testing.T) {
	grid := calendar.Build(2024, calendar.WeekStartSunday)
	bmp := glyph.Rasterize("A", 1)
	params := Params{XOffsetWeeks: 1, YOffsetDays: 0, Intensity: 3}

	out := Composite(grid, bmp, params, random.NewSequence())

	require.Equal(t, grid.Weeks, out.Weeks())
	for w := 0; w < grid.Weeks; w++ {
		for d := 0; d < calendar.DaysPerWeek; d++ {
			want := 0
			if w >= 1 && w < 6 && bmp.At(d, w-1) {
				want = 3
			}
			require.Equal(t, want, out[w][d], "week %d day %d", w, d)
		}
	}
}

func TestCompositeLetterAInverted(t *testing.T) {
	grid := calendar.Build(2024, calendar.WeekStartSunday)
	bmp := glyph.Rasterize("A", 1)
	params := Params{XOffsetWeeks: 1, Invert: true, Intensity: 4}

	out := Composite(grid, bmp, params, random.NewSequence())

	for w := 0; w < grid.Weeks; w++ {
		for d := 0; d < calendar.DaysPerWeek; d++ {
			want := 0
			switch {
			case !grid.InYear(w, d):
				want = 0
			case w >= 1 && w < 6 && bmp.At(d, w-1):
				want = 0
			default:
				want = 4
			}
			require.Equal(t, want, out[w][d], "week %d day %d", w, d)
		}
	}
}

func TestCompositeEmptyText(t *testing.T) {
	grid := calendar.Build(2025, calendar.WeekStartMonday)
	bmp := glyph.Rasterize("", 1)

	plain := Composite(grid, bmp, Params{XOffsetWeeks: 7, YOffsetDays: 3}, random.NewSequence())
	require.Zero(t, plain.Lit())

	inverted := Composite(grid, bmp, Params{XOffsetWeeks: 7, YOffsetDays: 3, Invert: true, Intensity: 2}, random.NewSequence())
	for w := 0; w < grid.Weeks; w++ {
		for d := 0; d < calendar.DaysPerWeek; d++ {
			if grid.InYear(w, d) {
				require.Equal(t, 2, inverted[w][d])
			} else {
				require.Zero(t, inverted[w][d])
			}
		}
	}
}

func TestCompositeRoundTripAtOffsets(t *testing.T) {
	grid := calendar.Build(2023, calendar.WeekStartSunday)
	bmp := glyph.Rasterize("HI 42", 1)

	for _, off := range [][2]int{{0, 0}, {10, 0}, {-3, 0}, {40, 2}, {50, -4}, {-100, 0}, {0, 9}} {
		out := Composite(grid, bmp, Params{XOffsetWeeks: off[0], YOffsetDays: off[1]}, random.NewSequence())
		for w := 0; w < grid.Weeks; w++ {
			for d := 0; d < calendar.DaysPerWeek; d++ {
				lit := grid.InYear(w, d) && bmp.At(d-off[1], w-off[0])
				require.Equal(t, lit, out[w][d] > 0, "offset %v week %d day %d", off, w, d)
			}
		}
	}
}

func TestCompositeLevelsStayInRange(t *testing.T) {
	grid := calendar.Build(2024, calendar.WeekStartMonday)
	bmp := glyph.Rasterize("WIDE TEXT", 0)
	rnd := random.NewSeeded(7)

	for _, p := range []Params{
		{XOffsetWeeks: -20, YOffsetDays: -3, Noise: 0.5, Intensity: 9},
		{XOffsetWeeks: 60, YOffsetDays: 12, Noise: 2, Intensity: -1, Invert: true},
		{XOffsetWeeks: 2, YOffsetDays: 1, Noise: math.NaN()},
	} {
		out := Composite(grid, bmp, p, rnd)
		for w := range out {
			for d := 0; d < calendar.DaysPerWeek; d++ {
				require.GreaterOrEqual(t, out[w][d], MinLevel)
				require.LessOrEqual(t, out[w][d], MaxLevel)
			}
		}
	}
}

func TestCompositeWithoutNoiseIsDeterministic(t *testing.T) {
	grid := calendar.Build(2024, calendar.WeekStartSunday)
	bmp := glyph.Rasterize("AB12", 1)
	params := Params{XOffsetWeeks: 1, Intensity: 4, Invert: true}

	seq := random.NewSequence(0)
	first := Composite(grid, bmp, params, seq)
	second := Composite(grid, bmp, params, random.New())

	require.Equal(t, first, second)
	require.Zero(t, seq.Draws())
}

func TestCompositeFullNoiseLightsBackground(t *testing.T) {
	grid := calendar.Build(2024, calendar.WeekStartSunday)
	bmp := glyph.Rasterize("A", 1)

	// Every draw is below the threshold, so every dark cell in the year is lit.
	out := Composite(grid, bmp, Params{XOffsetWeeks: 1, Noise: 1, Intensity: 4}, random.NewSequence(0))
	for w := 0; w < grid.Weeks; w++ {
		for d := 0; d < calendar.DaysPerWeek; d++ {
			switch {
			case !grid.InYear(w, d):
				require.Zero(t, out[w][d])
			case w >= 1 && w < 6 && bmp.At(d, w-1):
				require.Equal(t, 4, out[w][d])
			default:
				require.Equal(t, 1, out[w][d], "week %d day %d", w, d)
			}
		}
	}

	inverted := Composite(grid, bmp, Params{XOffsetWeeks: 1, Noise: 1, Intensity: 4, Invert: true}, random.NewSequence(0))
	require.Equal(t, 3, inverted[20][3], "background noise degrades to intensity-1")
	require.Equal(t, 1, inverted[1][3], "noise inside the text area lights holes at level 1")
	require.Equal(t, 4, inverted[1][0], "unlit glyph pixels keep the lit background")
}

func TestCompositeNoiseDrawsAboveThresholdKeepZero(t *testing.T) {
	grid := calendar.Build(2024, calendar.WeekStartSunday)
	bmp := glyph.Rasterize("A", 1)

	out := Composite(grid, bmp, Params{XOffsetWeeks: 1, Noise: 0.3, Intensity: 4}, random.NewSequence(0.9))
	require.Equal(t, 18, out.Lit(), "only the 18 lit pixels of A remain")
}

func TestParamsNormalize(t *testing.T) {
	p := Params{Noise: -1}.Normalize()
	require.Zero(t, p.Noise)
	require.Equal(t, DefaultIntensity, p.Intensity)

	p = Params{Noise: 3, Intensity: 7}.Normalize()
	require.Equal(t, 1.0, p.Noise)
	require.Equal(t, MaxLevel, p.Intensity)

	p = Params{Intensity: -2}.Normalize()
	require.Equal(t, 1, p.Intensity)
}

func TestIntensityRows(t *testing.T) {
	in := NewIntensity(2)
	in[1][6] = 3
	rows := in.Rows()
	require.Len(t, rows, 2)
	require.Equal(t, []int{0, 0, 0, 0, 0, 0, 3}, rows[1])
	require.Equal(t, 1, in.Lit())
}

func TestAlignXOffset(t *testing.T) {
	require.Equal(t, 1, AlignLeft.XOffset(53, 23, 9))
	require.Equal(t, 15, AlignCenter.XOffset(53, 23, 9))
	require.Equal(t, 29, AlignRight.XOffset(53, 23, 9))
	require.Equal(t, 9, AlignNone.XOffset(53, 23, 9))
	require.Equal(t, -4, AlignCenter.XOffset(53, 60, 0), "floor division for oversized text")

	a, err := ParseAlign("Centre")
	require.NoError(t, err)
	require.Equal(t, AlignCenter, a)
	_, err = ParseAlign("middle")
	require.Error(t, err)
}
