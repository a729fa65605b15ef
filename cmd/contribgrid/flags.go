package main

import (
	"github.com/spf13/cobra"

	"github.com/yanqian/commit-canvas/internal/domain/chart"
)

type canvasFlags struct {
	year      int
	weekStart string
	text      string
	spacing   int
	xOffset   int
	yOffset   int
	align     string
	invert    bool
	noise     float64
	intensity int
	seed      uint64
}

func (f *canvasFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.IntVar(&f.year, "year", 0, "calendar year (default: current year)")
	fs.StringVar(&f.weekStart, "week-start", "sun", "first day of the week: sun or mon")
	fs.StringVarP(&f.text, "text", "t", "", "text to draw")
	fs.IntVar(&f.spacing, "spacing", 1, "blank columns between glyphs")
	fs.IntVarP(&f.xOffset, "x-offset", "x", 1, "horizontal offset in weeks")
	fs.IntVarP(&f.yOffset, "y-offset", "y", 0, "vertical offset in days")
	fs.StringVar(&f.align, "align", "", "left, center or right; overrides --x-offset")
	fs.BoolVar(&f.invert, "invert", false, "draw the text as holes in a filled background")
	fs.Float64Var(&f.noise, "noise", 0, "background noise probability between 0 and 1")
	fs.IntVar(&f.intensity, "intensity", 4, "level of lit cells, 1 to 4")
	fs.Uint64Var(&f.seed, "seed", 0, "seed for reproducible noise and commit times")
}

func (f *canvasFlags) request(cmd *cobra.Command) chart.CanvasRequest {
	req := chart.CanvasRequest{
		Year:        f.year,
		WeekStart:   f.weekStart,
		Text:        f.text,
		YOffsetDays: f.yOffset,
		Align:       f.align,
		Invert:      f.invert,
		Noise:       f.noise,
		Intensity:   f.intensity,
	}
	spacing, xOffset := f.spacing, f.xOffset
	req.Spacing = &spacing
	req.XOffsetWeeks = &xOffset
	if cmd.Flags().Changed("seed") {
		seed := f.seed
		req.Seed = &seed
	}
	return req
}

type repoFlags struct {
	canvas     canvasFlags
	repoName   string
	user       string
	email      string
	timeMode   string
	customTime string
	countScale string
	out        string
}

func (f *repoFlags) register(cmd *cobra.Command) {
	f.canvas.register(cmd)
	fs := cmd.Flags()
	fs.StringVar(&f.repoName, "repo", "", "repository name")
	fs.StringVar(&f.user, "user", "", "commit author name")
	fs.StringVar(&f.email, "email", "", "commit author email")
	fs.StringVar(&f.timeMode, "time-mode", "random", "commit time policy: random or custom")
	fs.StringVar(&f.customTime, "time", "12:00:00", "commit time for --time-mode custom (HH:MM[:SS])")
	fs.StringVar(&f.countScale, "count-scale", "raw", "count scale: raw or normalized")
	fs.StringVarP(&f.out, "out", "o", "", "output file")
}

func (f *repoFlags) request(cmd *cobra.Command) chart.ExportRequest {
	return chart.ExportRequest{
		CanvasRequest: f.canvas.request(cmd),
		RepoName:      f.repoName,
		User:          f.user,
		Email:         f.email,
		TimeMode:      f.timeMode,
		CustomTime:    f.customTime,
		CountScale:    f.countScale,
	}
}
