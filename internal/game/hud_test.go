package game

import (
	"errors"
	"math"
	"testing"

	"github.com/Garsondee/Shape-Reveal/internal/assets"
	"github.com/Garsondee/Shape-Reveal/internal/config"
	"github.com/Garsondee/Shape-Reveal/internal/store"
)

func TestHUD_SetupErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	_, err := New(config.Default(), WithAssets(func() (*assets.Bundle, error) { return nil, boom }))
	if !errors.Is(err, boom) {
		t.Fatalf("New error = %v, want wrapping %v", err, boom)
	}
}

func TestHUD_ViewFormatsScoreAndLevel(t *testing.T) {
	h, err := NewHarness(WithLevel(3))
	if err != nil {
		t.Fatalf("NewHarness: %v", err)
	}
	if err := h.StartRound(); err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	v := h.App.HUD().View()
	if v.Score != "0000" || v.Multiplier != "x3" {
		t.Fatalf("view score=%q multiplier=%q", v.Score, v.Multiplier)
	}
	if v.Phase != store.Play {
		t.Fatalf("view phase = %s", v.Phase)
	}
}

func TestHUD_TimerEndsRoundOnce(t *testing.T) {
	h, err := NewHarness(WithTimeLimit(1), WithLevel(2))
	if err != nil {
		t.Fatalf("NewHarness: %v", err)
	}
	if err := h.StartRound(); err != nil {
		t.Fatalf("StartRound: %v", err)
	}

	h.RunFrames(59)
	if h.App.State().Phase != store.Play {
		t.Fatalf("round ended early at frame %d", h.App.Frame())
	}
	if tf := h.App.HUD().View().TimeFactor; tf <= 0.9 || tf > 1 {
		t.Fatalf("TimeFactor = %v near the end of the round", tf)
	}

	h.RunFrames(120)
	if len(h.GameOvers) != 1 {
		t.Fatalf("gameOver published %d times, want 1", len(h.GameOvers))
	}
	st := h.App.State()
	if st.Phase != store.GameOver || !h.App.Stopped() {
		t.Fatalf("phase=%s stopped=%v", st.Phase, h.App.Stopped())
	}
	if h.GameOvers[0].Score != st.FinalScore {
		t.Fatalf("payload score %d, final %d", h.GameOvers[0].Score, st.FinalScore)
	}
	if h.Log.CountCategory(CatTimer, KeyExpired) != 1 {
		t.Fatalf("expected one expiry entry\n%s", h.Log.Format())
	}
}

func TestHUD_ClockPulsesEachSecond(t *testing.T) {
	h, err := NewHarness(WithVerbose(true))
	if err != nil {
		t.Fatalf("NewHarness: %v", err)
	}
	if err := h.StartRound(); err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	h.RunFrames(3)
	if s := h.App.HUD().View().ClockScale; s >= 1 {
		t.Fatalf("ClockScale = %v, want pulse below 1", s)
	}
	h.RunFrames(30)
	if s := h.App.HUD().View().ClockScale; math.Abs(s-1) > 1e-9 {
		t.Fatalf("ClockScale = %v after the pulse settled, want 1", s)
	}
	h.RunFrames(60)
	if n := h.Log.CountCategory(CatTimer, KeySecond); n < 2 {
		t.Fatalf("logged %d second ticks, want at least 2", n)
	}
}

func TestHUD_ScorePulseOnCompletion(t *testing.T) {
	h := newDrawingHarness(t)
	if !h.SweepSurface(4, 8) {
		t.Fatal("sweep did not complete the shape")
	}
	h.RunFrames(3)
	v := h.App.HUD().View()
	if v.ScoreScale <= 1 {
		t.Fatalf("ScoreScale = %v, want pulse above 1", v.ScoreScale)
	}
	if v.Score != "0010" {
		t.Fatalf("Score = %q, want 0010", v.Score)
	}
	h.RunFrames(20)
	if s := h.App.HUD().View().ScoreScale; math.Abs(s-1) > 1e-9 {
		t.Fatalf("ScoreScale = %v after the pulse settled, want 1", s)
	}
}

func TestHUD_LayoutFollowsViewport(t *testing.T) {
	h, err := NewHarness()
	if err != nil {
		t.Fatalf("NewHarness: %v", err)
	}
	v := h.App.Resize(720, 1280)
	l := h.App.HUD().View().Layout

	bar := h.App.Assets().Frames[assets.FramePointsBar]
	if math.Abs(l.PointsBar.W-float64(bar.Dx())*v.Scale) > 1e-9 {
		t.Fatalf("PointsBar.W = %v, want %v", l.PointsBar.W, float64(bar.Dx())*v.Scale)
	}
	if l.PointsBar.X != float64(v.Width)/2 || !l.PointsBar.Centered {
		t.Fatalf("PointsBar not centred: %+v", l.PointsBar)
	}
	if math.Abs(l.FontSize-hudFontSize*v.Scale) > 1e-9 {
		t.Fatalf("FontSize = %v", l.FontSize)
	}
	if l.Clock.X != l.TimeBarFull.X {
		t.Fatalf("clock should start at the bar's left edge: %v vs %v", l.Clock.X, l.TimeBarFull.X)
	}
}

func TestHUD_PointerInCanvasPixels(t *testing.T) {
	h, err := NewHarness()
	if err != nil {
		t.Fatalf("NewHarness: %v", err)
	}
	v := h.App.Resize(720, 1280)
	h.App.PointerMove(Point{X: 100, Y: 200})
	got := h.App.HUD().View().Pointer
	if math.Abs(got.X-100*v.Scale) > 1e-9 || math.Abs(got.Y-200*v.Scale) > 1e-9 {
		t.Fatalf("Pointer = %v", got)
	}
}
