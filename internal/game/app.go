// Package game wires the store, the event bus and the two sketches (drawing
// surface and HUD) into a playable round. It has no Ebiten dependency: the
// host feeds it pointer events and frame ticks and renders what it exposes.
package game

import (
	"errors"
	"fmt"
	"log"

	"github.com/Garsondee/Shape-Reveal/internal/assets"
	"github.com/Garsondee/Shape-Reveal/internal/config"
	"github.com/Garsondee/Shape-Reveal/internal/pubsub"
	"github.com/Garsondee/Shape-Reveal/internal/store"
	"github.com/Garsondee/Shape-Reveal/internal/tween"
)

// ScoreFactor is the points awarded per revealed shape.
const ScoreFactor = 10

// ErrAlreadyStarted is returned by Start once the round is in Play or over.
var ErrAlreadyStarted = errors.New("round already started")

// Option configures an App.
type Option func(*App)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(a *App) { a.clock = c }
}

// WithLogger logs store dispatches and lifecycle messages to l.
func WithLogger(l *log.Logger) Option {
	return func(a *App) { a.logger = l }
}

// WithAssets replaces the embedded asset loader.
func WithAssets(load func() (*assets.Bundle, error)) Option {
	return func(a *App) { a.loadAssets = load }
}

// WithRoundLog records round events into rl instead of a fresh quiet log.
func WithRoundLog(rl *RoundLog) Option {
	return func(a *App) { a.roundLog = rl }
}

// App is the orchestrator of one round. All methods must be called from the
// frame loop's goroutine.
type App struct {
	cfg        config.Config
	bus        *pubsub.Bus
	store      *store.Store
	tweens     *tween.Group
	clock      Clock
	logger     *log.Logger
	roundLog   *RoundLog
	loadAssets func() (*assets.Bundle, error)

	player   *Player
	hud      *HUD
	sketches []Sketch
	viewport Viewport

	frame     int
	lastPhase store.Phase
	stopped   bool
}

// New builds an App for cfg and runs every sketch's Setup.
func New(cfg config.Config, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := newApp(cfg, opts...)
	for _, s := range a.sketches {
		if err := s.Setup(); err != nil {
			return nil, fmt.Errorf("setup: %w", err)
		}
	}
	return a, nil
}

// newApp constructs the App without running Setup.
func newApp(cfg config.Config, opts ...Option) *App {
	a := &App{
		cfg:        cfg,
		bus:        pubsub.New(),
		tweens:     tween.NewGroup(),
		clock:      SystemClock{},
		loadAssets: assets.LoadDefault,
		viewport:   Identity(cfg.Width, cfg.Height),
	}
	for _, o := range opts {
		o(a)
	}
	if a.roundLog == nil {
		a.roundLog = NewRoundLog(false)
	}

	var storeOpts []store.Option
	if a.logger != nil {
		storeOpts = append(storeOpts, store.WithLogger(a.logger))
	}
	a.store = store.NewGame(storeOpts...)
	a.lastPhase = a.store.State().Phase
	a.store.Subscribe(a.onStateChange)

	d := deps{
		cfg:    cfg,
		bus:    a.bus,
		store:  a.store,
		tweens: a.tweens,
		clock:  a.clock,
		log:    a.roundLog,
	}
	// The player subscribes before the HUD publishes its bundle.
	a.player = newPlayer(d)
	a.hud = newHUD(d, a.loadAssets)
	a.sketches = []Sketch{a.player, a.hud}
	return a
}

func (a *App) onStateChange() {
	st := a.store.State()
	if st.Phase == a.lastPhase {
		return
	}
	a.roundLog.Add(CatPhase, KeyChange, fmt.Sprintf("%s → %s", a.lastPhase, st.Phase), float64(st.Phase))
	a.lastPhase = st.Phase
}

// Start begins a round at level. It fails with ErrAlreadyStarted once the
// round has left the loading phases.
func (a *App) Start(level int) error {
	if a.store.State().Phase >= store.Play {
		return ErrAlreadyStarted
	}
	a.store.Dispatch(store.SetScoreFactors{ScoreFactor: ScoreFactor, Level: level})
	a.store.Dispatch(store.SetGameState{Phase: store.Play})
	a.bus.Publish(EventStart, nil)
	if a.logger != nil {
		a.logger.Printf("game: round started at level %d", level)
	}
	return nil
}

// On subscribes handler to a bus event. Handlers cannot be removed.
func (a *App) On(event string, handler pubsub.Handler) {
	a.bus.Subscribe(event, handler)
}

// Tick advances one frame: tweens first, then the phase-specific work.
// Nothing but tweens runs until both sketches are ready. Rendering polls the
// store here every frame; store listeners never draw.
func (a *App) Tick() {
	if a.stopped {
		return
	}
	a.frame++
	a.roundLog.SetFrame(a.frame)
	a.tweens.Update(a.clock.Now())

	st := a.store.State()
	if !st.Ready() {
		return
	}
	switch st.Phase {
	case store.Loading:
		a.store.Dispatch(store.SetGameState{Phase: store.Loaded})
		a.bus.Publish(EventLoaded, nil)
	case store.Play:
		for _, s := range a.sketches {
			s.Draw()
		}
	case store.GameOver:
		a.stop()
	}
}

func (a *App) stop() {
	if a.stopped {
		return
	}
	a.stopped = true
	if a.logger != nil {
		a.logger.Printf("game: stopped after %d frames", a.frame)
	}
}

// PointerDown forwards a press in surface units to every sketch.
func (a *App) PointerDown(p Point) {
	for _, s := range a.sketches {
		s.HandlePointerStart(p)
	}
}

// PointerMove forwards a pointer position in surface units.
func (a *App) PointerMove(p Point) {
	for _, s := range a.sketches {
		s.HandlePointerMove(p)
	}
}

// PointerUp forwards a release in surface units.
func (a *App) PointerUp(p Point) {
	for _, s := range a.sketches {
		s.HandlePointerRelease(p)
	}
}

// Resize fits the surface into a window of w x h and returns the viewport.
func (a *App) Resize(w, h int) Viewport {
	a.viewport = Fit(w, h, a.cfg.Width, a.cfg.Height)
	for _, s := range a.sketches {
		s.Resize(a.viewport)
	}
	return a.viewport
}

// State returns the current store snapshot.
func (a *App) State() store.State { return a.store.State() }

// Stopped reports whether the frame loop has halted after game over. Once
// stopped, Tick does nothing.
func (a *App) Stopped() bool { return a.stopped }

// Frame returns the number of ticks so far.
func (a *App) Frame() int { return a.frame }

func (a *App) Config() config.Config  { return a.cfg }
func (a *App) Viewport() Viewport     { return a.viewport }
func (a *App) Player() *Player        { return a.player }
func (a *App) HUD() *HUD              { return a.hud }
func (a *App) RoundLog() *RoundLog    { return a.roundLog }
func (a *App) Assets() *assets.Bundle { return a.hud.Bundle() }
