package canvas

import (
	"github.com/yanqian/commit-canvas/internal/domain/calendar"
	"github.com/yanqian/commit-canvas/internal/domain/glyph"
	"github.com/yanqian/commit-canvas/pkg/random"
)

const (
	// MinLevel is the level of an empty cell.
	MinLevel = 0
	// MaxLevel is the brightest palette step.
	MaxLevel = 4
	// DefaultIntensity is used when Params.Intensity is unset.
	DefaultIntensity = MaxLevel
)

// Params positions and styles the text on the grid.
type Params struct {
	XOffsetWeeks int
	YOffsetDays  int
	Invert       bool
	// Noise is the probability in [0,1] that a dark cell lights up at level 1.
	Noise float64
	// Intensity is the level in [1,4] used for lit text pixels.
	Intensity int
}

// Normalize clamps Noise and Intensity into their valid ranges.
func (p Params) Normalize() Params {
	switch {
	case p.Noise != p.Noise || p.Noise < 0: // NaN counts as no noise
		p.Noise = 0
	case p.Noise > 1:
		p.Noise = 1
	}
	switch {
	case p.Intensity == 0:
		p.Intensity = DefaultIntensity
	case p.Intensity < 1:
		p.Intensity = 1
	case p.Intensity > MaxLevel:
		p.Intensity = MaxLevel
	}
	return p
}

// Intensity is the per-cell level matrix, indexed [week][day] like calendar.Grid.Dates.
type Intensity [][calendar.DaysPerWeek]int

// NewIntensity returns an all-zero matrix with the given number of weeks.
func NewIntensity(weeks int) Intensity {
	if weeks < 0 {
		weeks = 0
	}
	return make(Intensity, weeks)
}

// Weeks is the number of columns.
func (in Intensity) Weeks() int {
	return len(in)
}

// Lit counts cells with a level above zero.
func (in Intensity) Lit() int {
	n := 0
	for w := range in {
		for d := 0; d < calendar.DaysPerWeek; d++ {
			if in[w][d] > 0 {
				n++
			}
		}
	}
	return n
}

// Rows converts the matrix into nested slices for serialization.
func (in Intensity) Rows() [][]int {
	out := make([][]int, len(in))
	for w := range in {
		out[w] = append([]int(nil), in[w][:]...)
	}
	return out
}

// Composite paints bmp onto the year grid and returns the intensity matrix.
//
// Cells outside the grid's target year are never painted. rnd is only
// consulted when p.Noise > 0; with zero noise the result is deterministic.
func Composite(grid calendar.Grid, bmp glyph.Bitmap, p Params, rnd random.Source) Intensity {
	p = p.Normalize()
	out := NewIntensity(grid.Weeks)

	if p.Invert {
		for w := 0; w < grid.Weeks; w++ {
			for d := 0; d < calendar.DaysPerWeek; d++ {
				if grid.InYear(w, d) {
					out[w][d] = p.Intensity
				}
			}
		}
	}

	rows, cols := bmp.Rows(), bmp.Cols
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			week := p.XOffsetWeeks + col
			day := p.YOffsetDays + row
			if !grid.InYear(week, day) {
				continue
			}

			on := bmp.At(row, col) != p.Invert
			level := 0
			if on {
				level = p.Intensity
			} else if p.Noise > 0 && rnd.Float64() < p.Noise {
				level = 1
			}
			out[week][day] = clamp(level, MinLevel, MaxLevel)
		}
	}

	if p.Noise > 0 {
		background := 1
		if p.Invert {
			background = max(0, p.Intensity-1)
		}
		for w := 0; w < grid.Weeks; w++ {
			for d := 0; d < calendar.DaysPerWeek; d++ {
				if !grid.InYear(w, d) || insideText(w, d, p, rows, cols) {
					continue
				}
				if rnd.Float64() < p.Noise {
					out[w][d] = background
				}
			}
		}
	}

	return out
}

// insideText reports whether (week, day) lies in the glyph's bounding rectangle.
func insideText(week, day int, p Params, rows, cols int) bool {
	return week >= p.XOffsetWeeks && week < p.XOffsetWeeks+cols &&
		day >= p.YOffsetDays && day < p.YOffsetDays+rows
}

func clamp(n, lo, hi int) int {
	return max(lo, min(hi, n))
}
