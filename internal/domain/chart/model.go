package chart

import (
	"time"

	"github.com/yanqian/commit-canvas/internal/domain/calendar"
	"github.com/yanqian/commit-canvas/internal/domain/contrib"
	"github.com/yanqian/commit-canvas/pkg/metrics"
)

// CanvasRequest carries every knob that shapes the intensity grid.
type CanvasRequest struct {
	// Year defaults to the current UTC year when zero.
	Year      int    `json:"year" validate:"omitempty,gte=1,lte=9999"`
	WeekStart string `json:"weekStart"`
	Text      string `json:"text"`
	// Spacing and XOffsetWeeks fall back to configured defaults when omitted.
	// Numeric knobs are clamped rather than rejected.
	Spacing      *int    `json:"spacing,omitempty"`
	XOffsetWeeks *int    `json:"xOffsetWeeks,omitempty"`
	YOffsetDays  int     `json:"yOffsetDays"`
	Align        string  `json:"align"`
	Invert       bool    `json:"invert"`
	Noise        float64 `json:"noise"`
	// Intensity is the level of lit pixels; zero means the configured default.
	Intensity int `json:"intensity"`
	// Seed makes noise and random commit times reproducible.
	Seed *uint64 `json:"seed,omitempty"`
}

// ExportRequest extends a canvas with the repository identity and event policy.
type ExportRequest struct {
	CanvasRequest
	RepoName   string `json:"repoName" validate:"required,max=100,reponame"`
	User       string `json:"user" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email"`
	TimeMode   string `json:"timeMode"`
	CustomTime string `json:"customTime"`
	CountScale string `json:"countScale"`
}

// Palette maps levels 0..4 to display colors.
type Palette struct {
	Name   string    `json:"name"`
	Colors [5]string `json:"colors"`
}

// DefaultPalette is the dark contribution heatmap palette.
var DefaultPalette = Palette{
	Name:   "github-dark",
	Colors: [5]string{"#161b22", "#0e4429", "#006d32", "#26a641", "#39d353"},
}

// Preview is everything a display surface needs to draw the chart.
type Preview struct {
	Year         int                 `json:"year"`
	WeekStart    calendar.WeekStart  `json:"weekStart"`
	GridStart    string              `json:"gridStart"`
	StartDate    string              `json:"startDate"`
	EndDate      string              `json:"endDate"`
	Weeks        int                 `json:"weeks"`
	TextWidth    int                 `json:"textWidth"`
	XOffsetWeeks int                 `json:"xOffsetWeeks"`
	YOffsetDays  int                 `json:"yOffsetDays"`
	Intensity    int                 `json:"intensity"`
	Grid         [][]int             `json:"grid"`
	Dates        [][]string          `json:"dates"`
	InYear       [][]bool            `json:"inYear"`
	Palette      Palette             `json:"palette"`
	Total        int                 `json:"total"`
	Stats        metrics.CanvasStats `json:"stats"`
}

// Archive is a generated repository archive ready for download.
type Archive struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Data        []byte `json:"data"`
}

// FontInfo describes the characters the rasterizer can draw.
type FontInfo struct {
	GlyphWidth  int      `json:"glyphWidth"`
	GlyphHeight int      `json:"glyphHeight"`
	Uppercase   string   `json:"uppercase"`
	Lowercase   string   `json:"lowercase"`
	Digits      string   `json:"digits"`
	Symbols     []string `json:"symbols"`
}

// Config wires runtime defaults for the chart domain.
type Config struct {
	DefaultWeekStart calendar.WeekStart
	DefaultSpacing   int
	DefaultXOffset   int
	DefaultIntensity int
	MaxTextLength    int
	CountScale       contrib.CountScale
	TimeMode         string
	CustomTime       string
	Palette          Palette
	CacheTTL         time.Duration
}
