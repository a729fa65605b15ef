package contrib

import (
	"fmt"
	"strings"
	"time"

	"github.com/yanqian/commit-canvas/internal/domain/calendar"
	"github.com/yanqian/commit-canvas/internal/domain/canvas"
	"github.com/yanqian/commit-canvas/pkg/random"
)

// LevelNormalizer divides levels under ScaleNormalized.
const LevelNormalizer = 4

// Event is one synthetic commit day sent to the archive service.
type Event struct {
	Date  string  `json:"date"`
	Count float64 `json:"count"`
	Time  string  `json:"time"`
}

// RepoRequest is the payload accepted by the archive service.
type RepoRequest struct {
	RepoName      string  `json:"repoName"`
	User          string  `json:"user"`
	Email         string  `json:"email"`
	Total         int     `json:"total"`
	Contributions []Event `json:"contributions"`
}

// NewRepoRequest assembles a request; Total always mirrors len(events).
func NewRepoRequest(repoName, user, email string, events []Event) RepoRequest {
	if events == nil {
		events = []Event{}
	}
	return RepoRequest{
		RepoName:      repoName,
		User:          user,
		Email:         email,
		Total:         len(events),
		Contributions: events,
	}
}

// CountScale converts a cell level into an event count.
type CountScale string

const (
	// ScaleRaw emits the level itself (1..4).
	ScaleRaw CountScale = "raw"
	// ScaleNormalized emits level / LevelNormalizer (0.25..1).
	ScaleNormalized CountScale = "normalized"
)

// ParseCountScale accepts "raw" or "normalized". Empty input means raw.
func ParseCountScale(raw string) (CountScale, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(ScaleRaw):
		return ScaleRaw, nil
	case string(ScaleNormalized):
		return ScaleNormalized, nil
	default:
		return "", fmt.Errorf("unknown count scale %q", raw)
	}
}

// Count applies the scale to level.
func (s CountScale) Count(level int) float64 {
	if s == ScaleNormalized {
		return float64(level) / LevelNormalizer
	}
	return float64(level)
}

// Options control how cells become events.
type Options struct {
	Time  TimePolicy
	Scale CountScale
}

// Synthesize walks the grid in (week, day) order and emits one event per
// lit cell. The grid is assumed to be year-scoped already; no date filtering
// happens here.
func Synthesize(levels canvas.Intensity, grid calendar.Grid, opts Options, rnd random.Source) []Event {
	weeks := min(len(levels), grid.Weeks)
	events := make([]Event, 0, levels.Lit())
	for w := 0; w < weeks; w++ {
		for d := 0; d < calendar.DaysPerWeek; d++ {
			level := levels[w][d]
			if level <= 0 {
				continue
			}
			events = append(events, Event{
				Date:  calendar.FormatDate(grid.At(w, d)),
				Count: opts.Scale.Count(level),
				Time:  opts.Time.Next(rnd),
			})
		}
	}
	return events
}

// TimeMode names a TimePolicy variant.
type TimeMode string

const (
	TimeRandom TimeMode = "random"
	TimeFixed  TimeMode = "custom"
)

// TimePolicy decides the commit time of each event.
type TimePolicy struct {
	mode  TimeMode
	fixed string
}

// RandomTime draws an independent uniform time of day for every event.
func RandomTime() TimePolicy {
	return TimePolicy{mode: TimeRandom}
}

// FixedTime stamps every event with clock, which must be a valid HH:MM:SS.
func FixedTime(clock string) (TimePolicy, error) {
	normalized, err := NormalizeClock(clock)
	if err != nil {
		return TimePolicy{}, err
	}
	return TimePolicy{mode: TimeFixed, fixed: normalized}, nil
}

// ParseTimePolicy maps a mode ("random", "custom" or "fixed") and an optional
// clock onto a policy. Empty mode means random.
func ParseTimePolicy(mode, clock string) (TimePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", string(TimeRandom):
		return RandomTime(), nil
	case string(TimeFixed), "fixed":
		return FixedTime(clock)
	default:
		return TimePolicy{}, fmt.Errorf("unknown time mode %q", mode)
	}
}

// Mode reports the policy variant. The zero TimePolicy is random.
func (p TimePolicy) Mode() TimeMode {
	if p.mode == "" {
		return TimeRandom
	}
	return p.mode
}

// Deterministic reports whether Next ignores its random source.
func (p TimePolicy) Deterministic() bool {
	return p.Mode() == TimeFixed
}

// Next returns the time for the next event. Random draws happen in hour,
// minute, second order.
func (p TimePolicy) Next(rnd random.Source) string {
	if p.Mode() == TimeFixed {
		return p.fixed
	}
	hour := rnd.IntN(24)
	minute := rnd.IntN(60)
	second := rnd.IntN(60)
	return fmt.Sprintf("%02d:%02d:%02d", hour, minute, second)
}

// NormalizeClock validates a time of day and pads HH:MM to HH:MM:SS.
func NormalizeClock(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if strings.Count(trimmed, ":") == 1 {
		trimmed += ":00"
	}
	parsed, err := time.Parse("15:04:05", trimmed)
	if err != nil {
		return "", fmt.Errorf("time must be formatted as HH:MM:SS: %w", err)
	}
	return parsed.Format("15:04:05"), nil
}
