package chart

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/yanqian/commit-canvas/internal/domain/calendar"
	"github.com/yanqian/commit-canvas/internal/domain/canvas"
	"github.com/yanqian/commit-canvas/internal/domain/contrib"
	"github.com/yanqian/commit-canvas/internal/domain/glyph"
	apperrors "github.com/yanqian/commit-canvas/pkg/errors"
	"github.com/yanqian/commit-canvas/pkg/metrics"
	"github.com/yanqian/commit-canvas/pkg/random"
)

const (
	maxSpacing          = 64
	generateFailMessage = "Failed to generate repository"
)

// Service exposes the grid synthesis pipeline.
type Service interface {
	Preview(ctx context.Context, req CanvasRequest) (Preview, error)
	Export(ctx context.Context, req ExportRequest) (contrib.RepoRequest, error)
	Generate(ctx context.Context, req ExportRequest) (Archive, error)
	Font() FontInfo
}

// ArchiveClient talks to the remote repository generator.
type ArchiveClient interface {
	Generate(ctx context.Context, req contrib.RepoRequest) (Archive, error)
}

// ArchiveStore caches archives of reproducible requests.
type ArchiveStore interface {
	Get(ctx context.Context, key string) (Archive, bool, error)
	Save(ctx context.Context, key string, archive Archive, ttl time.Duration) error
}

type service struct {
	cfg       Config
	client    ArchiveClient
	store     ArchiveStore
	logger    *slog.Logger
	validate  *validator.Validate
	now       func() time.Time
	newSource func(seed *uint64) random.Source
}

// NewService wires the chart domain. store may be nil to disable caching.
func NewService(cfg Config, client ArchiveClient, store ArchiveStore, logger *slog.Logger) Service {
	return &service{
		cfg:       withDefaults(cfg),
		client:    client,
		store:     store,
		logger:    logger.With("component", "chart.service"),
		validate:  newValidator(),
		now:       time.Now,
		newSource: sourceFor,
	}
}

func sourceFor(seed *uint64) random.Source {
	if seed != nil {
		return random.NewSeeded(*seed)
	}
	return random.New()
}

func withDefaults(cfg Config) Config {
	if cfg.DefaultWeekStart == "" {
		cfg.DefaultWeekStart = calendar.WeekStartSunday
	}
	if cfg.DefaultIntensity == 0 {
		cfg.DefaultIntensity = canvas.DefaultIntensity
	}
	if cfg.CountScale == "" {
		cfg.CountScale = contrib.ScaleRaw
	}
	if cfg.TimeMode == "" {
		cfg.TimeMode = string(contrib.TimeRandom)
	}
	if cfg.CustomTime == "" {
		cfg.CustomTime = "12:00:00"
	}
	if cfg.Palette.Name == "" {
		cfg.Palette = DefaultPalette
	}
	return cfg
}

// rendering is the composited canvas plus the random source that produced
// it, so event synthesis keeps drawing from the same stream.
type rendering struct {
	grid   calendar.Grid
	bitmap glyph.Bitmap
	params canvas.Params
	levels canvas.Intensity
	rnd    random.Source
	seeded bool
}

func (s *service) Preview(ctx context.Context, req CanvasRequest) (Preview, error) {
	r, err := s.render(req)
	if err != nil {
		return Preview{}, err
	}

	g := r.grid
	preview := Preview{
		Year:         g.Year,
		WeekStart:    g.WeekStart,
		GridStart:    calendar.FormatDate(g.GridStart),
		StartDate:    calendar.FormatDate(g.StartDate),
		EndDate:      calendar.FormatDate(g.EndDate),
		Weeks:        g.Weeks,
		TextWidth:    r.bitmap.Cols,
		XOffsetWeeks: r.params.XOffsetWeeks,
		YOffsetDays:  r.params.YOffsetDays,
		Intensity:    r.params.Intensity,
		Grid:         r.levels.Rows(),
		Dates:        make([][]string, g.Weeks),
		InYear:       make([][]bool, g.Weeks),
		Palette:      s.cfg.Palette,
	}
	var stats metrics.CanvasStats
	for w := 0; w < g.Weeks; w++ {
		preview.Dates[w] = make([]string, calendar.DaysPerWeek)
		preview.InYear[w] = make([]bool, calendar.DaysPerWeek)
		for d := 0; d < calendar.DaysPerWeek; d++ {
			inYear := g.InYear(w, d)
			preview.Dates[w][d] = calendar.FormatDate(g.At(w, d))
			preview.InYear[w][d] = inYear
			stats.Observe(r.levels[w][d], inYear)
		}
	}
	preview.Total = stats.Lit
	preview.Stats = stats

	s.logger.Debug("canvas rendered", "year", g.Year, "weeks", g.Weeks, "lit", stats.Lit, "text_width", r.bitmap.Cols)
	return preview, nil
}

func (s *service) Export(ctx context.Context, req ExportRequest) (contrib.RepoRequest, error) {
	repoReq, _, err := s.export(req)
	return repoReq, err
}

func (s *service) Generate(ctx context.Context, req ExportRequest) (Archive, error) {
	repoReq, reproducible, err := s.export(req)
	if err != nil {
		return Archive{}, err
	}

	var key string
	if reproducible && s.store != nil {
		key, err = cacheKey(repoReq)
		if err != nil {
			s.logger.Warn("archive cache key failed", "error", err)
		} else if cached, ok, getErr := s.store.Get(ctx, key); getErr != nil {
			s.logger.Warn("archive cache lookup failed", "error", getErr)
		} else if ok {
			s.logger.Info("archive served from cache", "repo", repoReq.RepoName, "total", repoReq.Total)
			return cached, nil
		}
	}

	start := s.now()
	archive, err := s.client.Generate(ctx, repoReq)
	if err != nil {
		if !apperrors.IsCode(err, apperrors.CodeArchive) {
			err = apperrors.Wrap(apperrors.CodeArchive, generateFailMessage, err)
		}
		s.logger.Error("archive generation failed", "repo", repoReq.RepoName, "total", repoReq.Total, "error", err)
		return Archive{}, err
	}
	s.logger.Info("archive generated", "repo", repoReq.RepoName, "total", repoReq.Total, "bytes", len(archive.Data), "elapsed_ms", s.now().Sub(start).Milliseconds())

	if key != "" {
		if err := s.store.Save(ctx, key, archive, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("archive cache save failed", "error", err)
		}
	}
	return archive, nil
}

func (s *service) Font() FontInfo {
	return FontInfo{
		GlyphWidth:  glyph.Width,
		GlyphHeight: glyph.Height,
		Uppercase:   "A-Z",
		Lowercase:   "a-z",
		Digits:      "0-9",
		Symbols:     glyph.Symbols(),
	}
}

// export renders the canvas and converts it into a repository request. The
// boolean reports whether the same input always yields the same request.
func (s *service) export(req ExportRequest) (contrib.RepoRequest, bool, error) {
	if err := s.validateStruct(req); err != nil {
		return contrib.RepoRequest{}, false, err
	}

	mode := firstNonEmpty(req.TimeMode, s.cfg.TimeMode)
	policy, err := contrib.ParseTimePolicy(mode, firstNonEmpty(req.CustomTime, s.cfg.CustomTime))
	if err != nil {
		return contrib.RepoRequest{}, false, apperrors.Wrap(apperrors.CodeInvalidInput, err.Error(), err)
	}
	scale := s.cfg.CountScale
	if req.CountScale != "" {
		if scale, err = contrib.ParseCountScale(req.CountScale); err != nil {
			return contrib.RepoRequest{}, false, apperrors.Wrap(apperrors.CodeInvalidInput, err.Error(), err)
		}
	}

	r, err := s.render(req.CanvasRequest)
	if err != nil {
		return contrib.RepoRequest{}, false, err
	}

	events := contrib.Synthesize(r.levels, r.grid, contrib.Options{Time: policy, Scale: scale}, r.rnd)
	repoReq := contrib.NewRepoRequest(req.RepoName, req.User, req.Email, events)
	reproducible := r.seeded || (r.params.Noise == 0 && policy.Deterministic())
	return repoReq, reproducible, nil
}

func (s *service) render(req CanvasRequest) (rendering, error) {
	if err := s.validateStruct(req); err != nil {
		return rendering{}, err
	}

	year := req.Year
	if year == 0 {
		year = s.now().UTC().Year()
	}
	ws := s.cfg.DefaultWeekStart
	if req.WeekStart != "" {
		parsed, err := calendar.ParseWeekStart(req.WeekStart)
		if err != nil {
			return rendering{}, apperrors.Wrap(apperrors.CodeInvalidInput, "weekStart must be sun or mon", err)
		}
		ws = parsed
	}
	align, err := canvas.ParseAlign(req.Align)
	if err != nil {
		return rendering{}, apperrors.Wrap(apperrors.CodeInvalidInput, "align must be left, center or right", err)
	}
	if s.cfg.MaxTextLength > 0 && utf8.RuneCountInString(req.Text) > s.cfg.MaxTextLength {
		return rendering{}, apperrors.Invalid(fmt.Sprintf("text cannot exceed %d characters", s.cfg.MaxTextLength))
	}

	spacing := s.cfg.DefaultSpacing
	if req.Spacing != nil {
		spacing = *req.Spacing
	}
	spacing = min(max(spacing, 0), maxSpacing)
	xOffset := s.cfg.DefaultXOffset
	if req.XOffsetWeeks != nil {
		xOffset = *req.XOffsetWeeks
	}
	intensity := req.Intensity
	if intensity == 0 {
		intensity = s.cfg.DefaultIntensity
	}

	grid := calendar.Build(year, ws)
	bmp := glyph.Rasterize(req.Text, spacing)
	params := canvas.Params{
		XOffsetWeeks: align.XOffset(grid.Weeks, bmp.Cols, xOffset),
		YOffsetDays:  req.YOffsetDays,
		Invert:       req.Invert,
		Noise:        req.Noise,
		Intensity:    intensity,
	}.Normalize()

	rnd := s.newSource(req.Seed)
	return rendering{
		grid:   grid,
		bitmap: bmp,
		params: params,
		levels: canvas.Composite(grid, bmp, params, rnd),
		rnd:    rnd,
		seeded: req.Seed != nil,
	}, nil
}

func cacheKey(req contrib.RepoRequest) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
