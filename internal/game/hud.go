package game

import (
	"fmt"
	"image"
	"math"
	"time"

	"github.com/Garsondee/Shape-Reveal/internal/assets"
	"github.com/Garsondee/Shape-Reveal/internal/store"
	"github.com/Garsondee/Shape-Reveal/internal/tween"
)

const (
	clockPulseStep = 80 * time.Millisecond
	scorePulseStep = 100 * time.Millisecond
	hudFontSize    = 20.0
)

// Sprite is a sheet frame placed on the canvas. X and Y are either the
// centre or the top-left corner depending on Centered.
type Sprite struct {
	Frame    string
	Src      image.Rectangle
	X, Y     float64
	W, H     float64
	Centered bool
}

// HUDLayout is the resolved placement of every HUD element in canvas pixels
// (window offset not included).
type HUDLayout struct {
	PointsBar   Sprite
	PointsIcon  Sprite
	TimeBar     Sprite
	TimeBarFull Sprite
	Clock       Sprite
	Pointer     Sprite
	ScoreAt     Point
	LevelAt     Point
	FontSize    float64
}

// HUDView is what the host needs to render the HUD for one frame.
type HUDView struct {
	Phase      store.Phase
	Score      string // zero-padded to four digits
	Multiplier string // "x<level>"
	TimeFactor float64
	ClockScale float64
	ScoreScale float64
	Pointer    Point // canvas pixels
	Layout     HUDLayout
}

// HUD drives the round timer, the score display and the pointer sprite. It
// also loads the asset bundle and shares it over the bus.
type HUD struct {
	d        deps
	load     func() (*assets.Bundle, error)
	bundle   *assets.Bundle
	viewport Viewport
	layout   HUDLayout

	timeLimit     float64 // seconds
	startTime     time.Time
	started       bool
	finished      bool
	timeFactor    float64
	currentSecond int

	clockScale float64
	scoreScale float64
	clockPulse *tween.Tween
	scorePulse *tween.Tween

	pointer Point
}

func newHUD(d deps, load func() (*assets.Bundle, error)) *HUD {
	h := &HUD{
		d:          d,
		load:       load,
		viewport:   Identity(d.cfg.Width, d.cfg.Height),
		timeLimit:  d.cfg.TimeLimit,
		clockScale: 1,
		scoreScale: 1,
	}

	steps := []struct {
		to   float64
		ease tween.Easing
	}{
		{0.9, tween.QuadOut},
		{0.95, tween.QuadOut},
		{0.9, tween.QuadOut},
		{1, tween.QuadIn},
	}
	var prev *tween.Tween
	for _, s := range steps {
		t := d.tweens.New(&h.clockScale).To(s.to, clockPulseStep).Ease(s.ease)
		if prev == nil {
			h.clockPulse = t
		} else {
			prev.Chain(t)
		}
		prev = t
	}

	grow := d.tweens.New(&h.scoreScale).To(1.2, scorePulseStep).Ease(tween.QuadIn)
	shrink := d.tweens.New(&h.scoreScale).To(1, scorePulseStep).Ease(tween.QuadOut)
	h.scorePulse = grow.Chain(shrink)
	return h
}

// Setup loads the bundle, shares it on the bus and marks the HUD ready.
func (h *HUD) Setup() error {
	b, err := h.load()
	if err != nil {
		return fmt.Errorf("load hud assets: %w", err)
	}
	h.bundle = b
	h.layout = h.computeLayout()

	h.d.bus.Subscribe(EventStart, h.onStart)
	h.d.bus.Subscribe(EventDrawingCompleted, h.onDrawingCompleted)

	h.d.bus.Publish(EventAssetsReady, b)
	h.d.store.Dispatch(store.SetUISketchReady{})
	return nil
}

func (h *HUD) onStart(any) {
	h.startTime = h.d.clock.Now()
	h.started = true
	h.currentSecond = 0
	h.timeFactor = 0
}

func (h *HUD) onDrawingCompleted(any) {
	h.d.store.Dispatch(store.UpScore{})
	h.d.store.Dispatch(store.UpComboCounter{})
	st := h.d.store.State()
	h.d.log.Add(CatScore, KeyUp, fmt.Sprintf("score=%d combo=%d", st.Score, st.ComboCounter), float64(st.Score))
	h.scorePulse.Start(h.d.clock.Now())
}

// Draw validates the timer once per frame while in Play.
func (h *HUD) Draw() {
	if h.d.phase() != store.Play || !h.started {
		return
	}
	h.validateTimer()
}

func (h *HUD) validateTimer() {
	now := h.d.clock.Now()
	elapsed := now.Sub(h.startTime).Seconds()
	h.timeFactor = elapsed / h.timeLimit
	if h.timeFactor > 1 {
		h.finish()
		return
	}
	if whole := int(math.Ceil(elapsed)); whole != h.currentSecond {
		h.currentSecond = whole
		h.clockPulse.Start(now)
		h.d.log.AddVerbose(CatTimer, KeySecond, fmt.Sprintf("%ds", whole), float64(whole))
	}
}

// finish ends the round. It runs at most once.
func (h *HUD) finish() {
	if h.finished {
		return
	}
	h.finished = true
	h.d.log.Add(CatTimer, KeyExpired, fmt.Sprintf("%.2fs", h.timeFactor*h.timeLimit), h.timeFactor)

	h.d.store.Dispatch(store.CalcFinalScore{})
	h.d.store.Dispatch(store.SetGameState{Phase: store.GameOver})
	st := h.d.store.State()
	h.d.log.Add(CatScore, KeyFinal, fmt.Sprintf("%d", st.FinalScore), float64(st.FinalScore))

	h.d.bus.Publish(EventGameOver, GameOverEvent{
		Log:   h.d.log.Summary(st),
		Score: st.FinalScore,
	})
}

// Resize re-derives the layout for v.
func (h *HUD) Resize(v Viewport) {
	h.viewport = v
	if h.bundle != nil {
		h.layout = h.computeLayout()
	}
}

func (h *HUD) HandlePointerStart(p Point)   { h.pointer = p }
func (h *HUD) HandlePointerMove(p Point)    { h.pointer = p }
func (h *HUD) HandlePointerRelease(p Point) { h.pointer = p }

func (h *HUD) computeLayout() HUDLayout {
	s := h.viewport.Scale
	gw := float64(h.viewport.Width)
	gh := float64(h.viewport.Height)

	sprite := func(name string) Sprite {
		r := h.bundle.Frames[name]
		return Sprite{Frame: name, Src: r, W: float64(r.Dx()) * s, H: float64(r.Dy()) * s}
	}

	var l HUDLayout
	l.FontSize = hudFontSize * s

	l.PointsBar = sprite(assets.FramePointsBar)
	l.PointsBar.X, l.PointsBar.Y, l.PointsBar.Centered = gw/2, 63*s, true

	l.PointsIcon = sprite(assets.FramePointsIcon)
	l.PointsIcon.X, l.PointsIcon.Y, l.PointsIcon.Centered = gw/2+9*s, 60*s, true

	l.TimeBar = sprite(assets.FrameTimeBar)
	l.TimeBar.X, l.TimeBar.Y, l.TimeBar.Centered = gw/2, gh-63*s, true

	l.TimeBarFull = sprite(assets.FrameTimeBarFull)
	l.TimeBarFull.X = gw/2 - l.TimeBarFull.W/2
	l.TimeBarFull.Y = l.TimeBar.Y - l.TimeBarFull.H/2

	l.Clock = sprite(assets.FrameClock)
	l.Clock.X, l.Clock.Y, l.Clock.Centered = l.TimeBarFull.X, l.TimeBar.Y, true

	l.Pointer = sprite(assets.FrameHandPointer)

	l.ScoreAt = Point{X: gw/2 - l.PointsBar.W/4 + 5*s, Y: 63 * s}
	l.LevelAt = Point{X: gw/2 + l.PointsBar.W/2 - l.PointsBar.W*0.15, Y: 62 * s}
	return l
}

// View snapshots the HUD for rendering. The clock sprite travels along the
// bar with the elapsed fraction of the round.
func (h *HUD) View() HUDView {
	st := h.d.store.State()
	tf := math.Max(0, math.Min(1, h.timeFactor))

	l := h.layout
	l.Clock.X = l.TimeBarFull.X + tf*l.TimeBarFull.W

	return HUDView{
		Phase:      st.Phase,
		Score:      fmt.Sprintf("%04d", st.Score),
		Multiplier: fmt.Sprintf("x%d", st.Level),
		TimeFactor: tf,
		ClockScale: h.clockScale,
		ScoreScale: h.scoreScale,
		Pointer:    h.viewport.ToCanvas(h.pointer),
		Layout:     l,
	}
}

// Bundle returns the loaded assets, or nil before Setup.
func (h *HUD) Bundle() *assets.Bundle {
	return h.bundle
}

// TimeFactor returns the elapsed fraction of the round (may exceed 1 at the
// final frame).
func (h *HUD) TimeFactor() float64 {
	return h.timeFactor
}
