package game

import (
	"bytes"
	"errors"
	"log"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/Garsondee/Shape-Reveal/internal/config"
	"github.com/Garsondee/Shape-Reveal/internal/store"
)

func TestNew_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.TimeLimit = 0
	if _, err := New(cfg); !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("New error = %v, want ErrInvalid", err)
	}
}

func TestApp_LoadedOnceInEitherLatchOrder(t *testing.T) {
	orders := map[string][]store.Action{
		"player first": {store.SetPlayerSketchReady{}, store.SetUISketchReady{}},
		"ui first":     {store.SetUISketchReady{}, store.SetPlayerSketchReady{}},
	}
	for name, latches := range orders {
		t.Run(name, func(t *testing.T) {
			a := newApp(config.Default(), WithClock(NewManualClock(harnessEpoch)))
			loaded := 0
			a.On(EventLoaded, func(any) { loaded++ })

			a.Tick()
			a.store.Dispatch(latches[0])
			a.Tick()
			if loaded != 0 || a.State().Phase != store.Loading {
				t.Fatalf("loaded=%d phase=%s with one latch set", loaded, a.State().Phase)
			}

			a.store.Dispatch(latches[1])
			a.Tick()
			a.Tick()
			a.Tick()
			if loaded != 1 {
				t.Fatalf("loaded published %d times, want 1", loaded)
			}
			if a.State().Phase != store.Loaded {
				t.Fatalf("phase = %s, want LOADED", a.State().Phase)
			}
		})
	}
}

func TestApp_StartOnlyOnce(t *testing.T) {
	h, err := NewHarness(WithLevel(4))
	if err != nil {
		t.Fatalf("NewHarness: %v", err)
	}
	starts := 0
	h.App.On(EventStart, func(any) { starts++ })

	if err := h.StartRound(); err != nil {
		t.Fatalf("first Start: %v", err)
	}
	st := h.App.State()
	if st.Phase != store.Play || st.Level != 4 || st.ScoreFactor != ScoreFactor {
		t.Fatalf("state after Start = %+v", st)
	}
	if err := h.App.Start(1); !errors.Is(err, ErrAlreadyStarted) {
		t.Fatalf("second Start error = %v, want ErrAlreadyStarted", err)
	}
	if starts != 1 {
		t.Fatalf("start published %d times, want 1", starts)
	}
	if h.App.State().Level != 4 {
		t.Fatal("rejected Start changed the level")
	}
}

func TestApp_TicksBeforeReadyOnlyAdvanceTweens(t *testing.T) {
	a := newApp(config.Default(), WithClock(NewManualClock(harnessEpoch)))
	for i := 0; i < 5; i++ {
		a.Tick()
	}
	if a.Frame() != 5 {
		t.Fatalf("Frame = %d, want 5", a.Frame())
	}
	if a.State().Phase != store.Loading {
		t.Fatalf("phase = %s, want LOADING", a.State().Phase)
	}
}

func TestApp_LoggerReceivesDispatches(t *testing.T) {
	var buf bytes.Buffer
	a, err := New(config.Default(),
		WithClock(NewManualClock(harnessEpoch)),
		WithLogger(log.New(&buf, "", 0)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	a.Tick()
	if err := a.Start(2); err != nil {
		t.Fatalf("Start: %v", err)
	}
	out := buf.String()
	for _, want := range []string{store.TypeSetUISketchReady, "phase=PLAY", "round started at level 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}

func TestApp_RoundEndsWithConsistentScore(t *testing.T) {
	h, err := NewHarness(WithTimeLimit(4), WithLevel(2))
	if err != nil {
		t.Fatalf("NewHarness: %v", err)
	}
	if err := h.StartRound(); err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	h.PlayUntilOver(4, 8, 600)

	if !h.App.Stopped() {
		t.Fatalf("round did not stop\n%s", h.Log.Format())
	}
	if len(h.GameOvers) != 1 {
		t.Fatalf("gameOver published %d times, want 1", len(h.GameOvers))
	}
	st := h.App.State()
	if h.Completions == 0 {
		t.Fatalf("no shapes revealed in a 4s round\n%s", h.Log.Format())
	}
	if st.Score != h.Completions*ScoreFactor {
		t.Fatalf("Score = %d, want %d", st.Score, h.Completions*ScoreFactor)
	}
	if st.FinalScore != st.Score*st.Level {
		t.Fatalf("FinalScore = %d, want %d", st.FinalScore, st.Score*st.Level)
	}
	ev := h.GameOvers[0]
	if ev.Score != st.FinalScore {
		t.Fatalf("payload score %d, final %d", ev.Score, st.FinalScore)
	}
	if !strings.Contains(ev.Log, "phase=GAME_OVER") {
		t.Fatalf("payload log = %q", ev.Log)
	}

	// The loop is halted: more frames change nothing.
	frozen := h.App.State()
	h.RunFrames(30)
	if h.App.State() != frozen || len(h.GameOvers) != 1 {
		t.Fatal("state moved after game over")
	}
}

func TestApp_PhaseNeverMovesBackward(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		h, err := NewHarness(WithTimeLimit(2))
		if err != nil {
			t.Fatalf("NewHarness: %v", err)
		}
		var phases []store.Phase
		h.App.store.Subscribe(func() { phases = append(phases, h.App.State().Phase) })

		rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- test determinism
		randPoint := func() Point {
			return Point{X: rng.Float64() * 360, Y: rng.Float64() * 640}
		}
		for i := 0; i < 400 && !h.App.Stopped(); i++ {
			switch rng.Intn(6) {
			case 0:
				_ = h.App.Start(1 + rng.Intn(3))
			case 1:
				h.App.PointerDown(randPoint())
			case 2:
				h.App.PointerMove(randPoint())
			case 3:
				h.App.PointerUp(randPoint())
			default:
				h.Clock.Advance(time.Duration(rng.Intn(50)) * time.Millisecond)
				h.App.Tick()
			}
		}

		for i := 1; i < len(phases); i++ {
			if phases[i] < phases[i-1] {
				t.Fatalf("seed %d: phase moved %s -> %s", seed, phases[i-1], phases[i])
			}
		}
		if len(h.GameOvers) > 1 {
			t.Fatalf("seed %d: gameOver published %d times", seed, len(h.GameOvers))
		}
		if st := h.App.State(); st.Score != h.Completions*st.ScoreFactor {
			t.Fatalf("seed %d: score %d with %d completions", seed, st.Score, h.Completions)
		}
	}
}

func TestApp_ResizeReachesSketches(t *testing.T) {
	h, err := NewHarness()
	if err != nil {
		t.Fatalf("NewHarness: %v", err)
	}
	v := h.App.Resize(1080, 1920)
	if h.App.Player().viewport != v || h.App.HUD().viewport != v || h.App.Viewport() != v {
		t.Fatal("viewport not propagated to every sketch")
	}
}
