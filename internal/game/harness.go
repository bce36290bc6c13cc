package game

import (
	"time"

	"github.com/Garsondee/Shape-Reveal/internal/config"
)

// DefaultFrameStep is one 60 Hz frame.
const DefaultFrameStep = time.Second / 60

// harnessEpoch is where every harness clock starts.
var harnessEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// Harness drives an App headlessly on a manual clock. Tests and the
// headless report use it to play rounds without a window.
type Harness struct {
	App   *App
	Clock *ManualClock
	Log   *RoundLog
	Step  time.Duration

	Loaded      int
	Completions int
	GameOvers   []GameOverEvent
}

// HarnessOption adjusts the config or the harness before the App is built.
type HarnessOption func(*config.Config, *Harness)

// WithLevel sets the level passed to Start.
func WithLevel(level int) HarnessOption {
	return func(c *config.Config, _ *Harness) { c.Level = level }
}

// WithTimeLimit sets the round length in seconds.
func WithTimeLimit(seconds float64) HarnessOption {
	return func(c *config.Config, _ *Harness) { c.TimeLimit = seconds }
}

// WithProfile selects the device profile.
func WithProfile(profile string) HarnessOption {
	return func(c *config.Config, _ *Harness) { c.Profile = profile }
}

// WithFrameStep sets how far the clock moves per frame.
func WithFrameStep(d time.Duration) HarnessOption {
	return func(_ *config.Config, h *Harness) { h.Step = d }
}

// WithVerbose enables per-frame round log entries.
func WithVerbose(v bool) HarnessOption {
	return func(_ *config.Config, h *Harness) { h.Log = NewRoundLog(v) }
}

// NewHarness builds an App from config.Default plus opts and counts the
// lifecycle events it publishes.
func NewHarness(opts ...HarnessOption) (*Harness, error) {
	cfg := config.Default()
	h := &Harness{
		Clock: NewManualClock(harnessEpoch),
		Log:   NewRoundLog(false),
		Step:  DefaultFrameStep,
	}
	for _, o := range opts {
		o(&cfg, h)
	}

	app, err := New(cfg, WithClock(h.Clock), WithRoundLog(h.Log))
	if err != nil {
		return nil, err
	}
	h.App = app
	app.On(EventLoaded, func(any) { h.Loaded++ })
	app.On(EventDrawingCompleted, func(any) { h.Completions++ })
	app.On(EventGameOver, func(payload any) {
		if ev, ok := payload.(GameOverEvent); ok {
			h.GameOvers = append(h.GameOvers, ev)
		}
	})
	return h, nil
}

// Frame advances the clock one step and ticks the App.
func (h *Harness) Frame() {
	h.Clock.Advance(h.Step)
	h.App.Tick()
}

// RunFrames advances n frames.
func (h *Harness) RunFrames(n int) {
	for i := 0; i < n; i++ {
		h.Frame()
	}
}

// RunUntil advances up to maxFrames, stopping early once cond holds. It
// returns the number of frames run, or -1 if cond never held.
func (h *Harness) RunUntil(cond func() bool, maxFrames int) int {
	for i := 0; i < maxFrames; i++ {
		if cond() {
			return i
		}
		h.Frame()
	}
	if cond() {
		return maxFrames
	}
	return -1
}

// StartRound ticks until loaded and starts the configured level.
func (h *Harness) StartRound() error {
	h.RunUntil(func() bool { return h.Loaded > 0 }, 10)
	return h.App.Start(h.App.Config().Level)
}

// WaitForDrawing runs frames until the surface accepts strokes.
func (h *Harness) WaitForDrawing(maxFrames int) bool {
	return h.RunUntil(h.App.Player().CanDraw, maxFrames) >= 0
}

// Stroke presses at the first point, moves through the rest with one frame
// per point and releases at the last. A single point is a zero-length stroke.
func (h *Harness) Stroke(points ...Point) {
	if len(points) == 0 {
		return
	}
	h.App.PointerDown(points[0])
	for _, p := range points[1:] {
		h.App.PointerMove(p)
		h.Frame()
	}
	h.App.PointerUp(points[len(points)-1])
}

// SweepSurface paints horizontal strokes spacing units apart, starting at
// offset, until the shape completes or drawing is disabled. It reports
// whether a completion happened.
func (h *Harness) SweepSurface(offset, spacing float64) bool {
	cfg := h.App.Config()
	before := h.Completions
	w := float64(cfg.Width)
	for y := offset; y < float64(cfg.Height); y += spacing {
		if !h.App.Player().CanDraw() {
			break
		}
		h.Stroke(Point{X: 0, Y: y}, Point{X: w, Y: y})
	}
	return h.Completions > before
}

// PlayUntilOver alternates waiting for the surface and sweeping it until
// the round ends or maxFrames pass.
func (h *Harness) PlayUntilOver(offset, spacing float64, maxFrames int) {
	deadline := h.App.Frame() + maxFrames
	for !h.App.Stopped() && h.App.Frame() < deadline {
		if !h.App.Player().CanDraw() {
			h.Frame()
			continue
		}
		if !h.SweepSurface(offset, spacing) {
			h.Frame()
		}
	}
}
