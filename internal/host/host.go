// Package host runs a game.App inside an Ebiten window: it translates mouse
// and touch input to surface coordinates, ticks the App once per frame and
// renders the drawing surface and the HUD.
package host

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Garsondee/Shape-Reveal/internal/assets"
	"github.com/Garsondee/Shape-Reveal/internal/config"
	"github.com/Garsondee/Shape-Reveal/internal/game"
	"github.com/Garsondee/Shape-Reveal/internal/scores"
	"github.com/Garsondee/Shape-Reveal/internal/store"
)

const recordTimeout = 2 * time.Second

var numbers = message.NewPrinter(language.English)

var (
	windowBg   = color.RGBA{R: 24, G: 16, B: 8, A: 255}
	scoreColor = color.RGBA{R: 255, G: 240, B: 200, A: 255}
	dimOverlay = color.RGBA{A: 170}
)

// Option configures a Host.
type Option func(*Host)

// WithScores records finished rounds into s.
func WithScores(s *scores.Store) Option {
	return func(h *Host) { h.scores = s }
}

// WithLogger sets the logger for lifecycle messages and store dispatches.
func WithLogger(l *log.Logger) Option {
	return func(h *Host) { h.logger = l }
}

// WithDebugFeed shows the round log panel from the first frame.
func WithDebugFeed(on bool) Option {
	return func(h *Host) { h.showFeed = on }
}

// Host implements ebiten.Game.
type Host struct {
	cfg    config.Config
	app    *game.App
	scores *scores.Store
	logger *log.Logger

	outsideW, outsideH int
	viewport           game.Viewport

	surface *ebiten.Image
	sheet   *ebiten.Image
	sprites map[string]*ebiten.Image
	face    *text.GoXFace

	loaded   bool
	result   *game.GameOverEvent
	best     int
	ticks    int
	notice   string
	noticeAt int

	touchID  ebiten.TouchID
	touching bool
	prevKeys map[ebiten.Key]bool

	feed     *Feed
	showFeed bool
}

// New builds a Host and its first round.
func New(cfg config.Config, opts ...Option) (*Host, error) {
	h := &Host{
		cfg:      cfg,
		logger:   log.Default(),
		face:     text.NewGoXFace(basicfont.Face7x13),
		prevKeys: map[ebiten.Key]bool{},
		feed:     NewFeed(),
		surface:  ebiten.NewImage(cfg.Width, cfg.Height),
	}
	for _, o := range opts {
		o(h)
	}
	if err := h.reset(); err != nil {
		return nil, err
	}
	return h, nil
}

// reset replaces the App with a fresh one. Bus handlers belong to the old
// App and are dropped with it.
func (h *Host) reset() error {
	app, err := game.New(h.cfg, game.WithLogger(h.logger))
	if err != nil {
		return fmt.Errorf("new round: %w", err)
	}
	h.app = app
	h.loaded = false
	h.result = nil
	h.feed.Reset()

	app.On(game.EventLoaded, func(any) { h.loaded = true })
	app.On(game.EventGameOver, h.onGameOver)

	if h.sheet == nil {
		h.loadSprites(app.Assets())
	}
	if h.outsideW > 0 {
		h.viewport = app.Resize(h.outsideW, h.outsideH)
	}
	h.best = h.bestScore()
	return nil
}

func (h *Host) loadSprites(b *assets.Bundle) {
	h.sheet = ebiten.NewImageFromImage(b.Atlas.Image)
	h.sprites = make(map[string]*ebiten.Image, len(b.Frames))
	for name, r := range b.Frames {
		h.sprites[name] = h.sheet.SubImage(r).(*ebiten.Image)
	}
}

func (h *Host) onGameOver(payload any) {
	ev, ok := payload.(game.GameOverEvent)
	if !ok {
		return
	}
	h.result = &ev
	h.logger.Printf("host: game over: %s", ev.Log)

	if h.scores == nil {
		return
	}
	st := h.app.State()
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()
	_, err := h.scores.Record(ctx, scores.Result{
		Level:      st.Level,
		Score:      st.Score,
		FinalScore: st.FinalScore,
		Shapes:     h.app.Player().Completed(),
		PlayedAt:   time.Now(),
	})
	if err != nil {
		h.logger.Printf("host: record score: %v", err)
		return
	}
	h.best = h.bestScore()
}

func (h *Host) bestScore() int {
	if h.scores == nil {
		return 0
	}
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()
	best, err := h.scores.Best(ctx, h.cfg.Level)
	if err != nil {
		h.logger.Printf("host: best score: %v", err)
		return 0
	}
	return best
}

// Update handles input and advances the App one frame.
func (h *Host) Update() error {
	h.ticks++
	if err := h.handleKeys(); err != nil {
		return err
	}
	h.handlePointer()
	h.app.Tick()
	h.feed.Sync(h.app.RoundLog())
	return nil
}

func (h *Host) keyPressed(k ebiten.Key, current map[ebiten.Key]bool) bool {
	current[k] = ebiten.IsKeyPressed(k)
	return current[k] && !h.prevKeys[k]
}

func (h *Host) handleKeys() error {
	currentKeys := map[ebiten.Key]bool{}
	defer func() { h.prevKeys = currentKeys }()

	// L: toggle the round log panel.
	if h.keyPressed(ebiten.KeyL, currentKeys) {
		h.showFeed = !h.showFeed
	}

	// C: copy the round summary.
	if h.keyPressed(ebiten.KeyC, currentKeys) {
		summary := h.app.RoundLog().Summary(h.app.State())
		if err := clipboard.WriteAll(summary); err != nil {
			h.logger.Printf("host: clipboard: %v", err)
			h.setNotice("clipboard unavailable")
		} else {
			h.setNotice("summary copied")
		}
	}

	// R: new round once this one is over.
	if h.keyPressed(ebiten.KeyR, currentKeys) && h.app.Stopped() {
		if err := h.reset(); err != nil {
			return err
		}
	}
	return nil
}

func (h *Host) setNotice(msg string) {
	h.notice = msg
	h.noticeAt = h.ticks
}

func (h *Host) toSurface(x, y int) game.Point {
	return h.viewport.ToSurface(float64(x), float64(y))
}

// handlePointer feeds mouse and the first active touch to the App. A press
// while loaded starts the round instead of drawing.
func (h *Host) handlePointer() {
	press := func(p game.Point) {
		if h.loaded && h.app.State().Phase == store.Loaded {
			if err := h.app.Start(h.cfg.Level); err != nil {
				h.logger.Printf("host: start: %v", err)
			}
			return
		}
		h.app.PointerDown(p)
	}

	mx, my := ebiten.CursorPosition()
	mouse := h.toSurface(mx, my)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		press(mouse)
	}
	h.app.PointerMove(mouse)
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		h.app.PointerUp(mouse)
	}

	if !h.touching {
		if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
			h.touchID = ids[0]
			h.touching = true
			press(h.toSurface(ebiten.TouchPosition(h.touchID)))
		}
		return
	}
	if inpututil.IsTouchJustReleased(h.touchID) {
		h.touching = false
		h.app.PointerUp(h.toSurface(inpututil.TouchPositionInPreviousTick(h.touchID)))
		return
	}
	h.app.PointerMove(h.toSurface(ebiten.TouchPosition(h.touchID)))
}

// Draw renders the surface, the HUD and any phase overlay.
func (h *Host) Draw(screen *ebiten.Image) {
	screen.Fill(windowBg)
	v := h.viewport
	st := h.app.State()

	if st.Phase >= store.Play {
		h.surface.WritePixels(h.app.Player().Buffer().Pix)
		var op ebiten.DrawImageOptions
		op.GeoM.Scale(v.Scale, v.Scale)
		op.GeoM.Translate(v.OffsetX, v.OffsetY)
		screen.DrawImage(h.surface, &op)
		h.drawHUD(screen, h.app.HUD().View())
	}

	switch st.Phase {
	case store.Loading:
		h.drawCentered(screen, "LOADING...", 0, 2)
	case store.Loaded:
		h.dim(screen)
		h.drawCentered(screen, "CLICK TO PLAY", 0, 3)
		if h.best > 0 {
			h.drawCentered(screen, numbers.Sprintf("BEST %d", h.best), 40*v.Scale, 2)
		}
	case store.GameOver:
		h.dim(screen)
		h.drawCentered(screen, "TIME'S UP", -40*v.Scale, 3)
		final := st.FinalScore
		if h.result != nil {
			final = h.result.Score
		}
		h.drawCentered(screen, numbers.Sprintf("SCORE %d", final), 0, 3)
		if h.best > 0 {
			h.drawCentered(screen, numbers.Sprintf("BEST %d", h.best), 40*v.Scale, 2)
		}
		h.drawCentered(screen, "R: play again   C: copy summary", 80*v.Scale, 1)
	}

	if h.notice != "" && h.ticks-h.noticeAt < 120 {
		ebitenutil.DebugPrintAt(screen, h.notice, int(v.OffsetX)+6, int(v.OffsetY)+6)
	}
	if h.showFeed {
		h.feed.Draw(screen, h.outsideW-feedPanelWidth, h.outsideH)
	}
}

func (h *Host) dim(screen *ebiten.Image) {
	v := h.viewport
	vector.FillRect(screen, float32(v.OffsetX), float32(v.OffsetY), float32(v.Width), float32(v.Height), dimOverlay, false)
}

func (h *Host) drawSprite(screen *ebiten.Image, s game.Sprite, scale float64) {
	img, ok := h.sprites[s.Frame]
	if !ok || s.Src.Dx() == 0 || s.Src.Dy() == 0 {
		return
	}
	w, hgt := s.W*scale, s.H*scale
	x, y := s.X, s.Y
	if s.Centered {
		x -= w / 2
		y -= hgt / 2
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(w/float64(s.Src.Dx()), hgt/float64(s.Src.Dy()))
	op.GeoM.Translate(x+h.viewport.OffsetX, y+h.viewport.OffsetY)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, &op)
}

// drawTimeBarFull clips the full bar to the remaining time.
func (h *Host) drawTimeBarFull(screen *ebiten.Image, s game.Sprite, remaining float64) {
	img, ok := h.sprites[s.Frame]
	if !ok || remaining <= 0 {
		return
	}
	src := s.Src
	src.Max.X = src.Min.X + int(float64(src.Dx())*remaining)
	if src.Dx() <= 0 {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(s.W/float64(s.Src.Dx()), s.H/float64(s.Src.Dy()))
	op.GeoM.Translate(s.X+h.viewport.OffsetX, s.Y+h.viewport.OffsetY)
	screen.DrawImage(img.SubImage(src).(*ebiten.Image), &op)
}

func (h *Host) drawHUD(screen *ebiten.Image, view game.HUDView) {
	l := view.Layout
	h.drawSprite(screen, l.PointsBar, 1)
	h.drawSprite(screen, l.PointsIcon, 1)
	h.drawSprite(screen, l.TimeBar, 1)
	h.drawTimeBarFull(screen, l.TimeBarFull, 1-view.TimeFactor)
	h.drawSprite(screen, l.Clock, view.ClockScale)

	h.drawText(screen, view.Score, l.ScoreAt, l.FontSize*view.ScoreScale, text.AlignCenter)
	h.drawText(screen, view.Multiplier, l.LevelAt, l.FontSize, text.AlignEnd)

	if view.Phase == store.Play {
		ptr := l.Pointer
		ptr.X, ptr.Y = view.Pointer.X, view.Pointer.Y
		h.drawSprite(screen, ptr, 1)
	}
}

// drawText draws s at p (canvas pixels) with a pixel height of size.
func (h *Host) drawText(screen *ebiten.Image, s string, p game.Point, size float64, align text.Align) {
	k := size / float64(basicfont.Face7x13.Height)
	op := &text.DrawOptions{}
	op.PrimaryAlign = align
	op.SecondaryAlign = text.AlignCenter
	op.GeoM.Scale(k, k)
	op.GeoM.Translate(p.X+h.viewport.OffsetX, p.Y+h.viewport.OffsetY)
	op.ColorScale.ScaleWithColor(scoreColor)
	text.Draw(screen, s, h.face, op)
}

func (h *Host) drawCentered(screen *ebiten.Image, s string, dy, scale float64) {
	v := h.viewport
	center := game.Point{X: float64(v.Width) / 2, Y: float64(v.Height)/2 + dy}
	h.drawText(screen, s, center, float64(basicfont.Face7x13.Height)*scale, text.AlignCenter)
}

// Layout fits the surface into the window; the canvas is the window.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != h.outsideW || outsideHeight != h.outsideH {
		h.outsideW, h.outsideH = outsideWidth, outsideHeight
		h.viewport = h.app.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// App returns the current round.
func (h *Host) App() *game.App {
	return h.app
}
