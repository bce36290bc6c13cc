package game

import (
	"fmt"
	"image"
	"math"
	"time"

	"golang.org/x/image/draw"

	"github.com/Garsondee/Shape-Reveal/internal/assets"
	"github.com/Garsondee/Shape-Reveal/internal/config"
	"github.com/Garsondee/Shape-Reveal/internal/coverage"
	"github.com/Garsondee/Shape-Reveal/internal/store"
	"github.com/Garsondee/Shape-Reveal/internal/tween"
)

const (
	brushSpacing      = 5.0 // distance between stamps along a stroke
	shapeFill         = 0.9 // shape edge as a fraction of the surface's short side
	revealInDuration  = 300 * time.Millisecond
	revealOutDuration = 200 * time.Millisecond
)

// Player is the drawing surface. It owns the offscreen pixel buffer the
// silhouette is painted over and decides when a shape has been revealed.
//
// While a shape transition is running the scene is recomposed every frame.
// Otherwise the buffer is only touched by brush stamps so strokes accumulate.
type Player struct {
	d      deps
	brush  config.Brush
	eval   *coverage.Evaluator
	bundle *assets.Bundle
	buffer *image.RGBA

	bgSrc    image.Rectangle
	brushSrc image.Rectangle
	viewport Viewport

	shapeIndex int
	shapeScale float64
	revealIn   *tween.Tween
	revealOut  *tween.Tween

	pointer   Point
	lastPoint Point
	drawing   bool // a stroke is in progress
	tweening  bool // a shape transition is in flight

	progress  int
	completed int
}

func newPlayer(d deps) *Player {
	p := &Player{
		d:        d,
		brush:    d.cfg.Brush(),
		buffer:   image.NewRGBA(image.Rect(0, 0, d.cfg.Width, d.cfg.Height)),
		viewport: Identity(d.cfg.Width, d.cfg.Height),
		tweening: true,
	}
	p.eval = coverage.NewEvaluator(p.brush.MinProgress)

	p.revealIn = d.tweens.New(&p.shapeScale).
		To(1, revealInDuration).
		Ease(tween.ElasticOut).
		OnComplete(p.onRevealed)
	p.revealOut = d.tweens.New(&p.shapeScale).
		To(0, revealOutDuration).
		Ease(tween.QuadIn).
		OnStart(func() { p.tweening = true }).
		OnComplete(p.nextShape).
		Chain(p.revealIn)
	return p
}

// Setup subscribes to the bus. The buffer is allocated at construction.
func (p *Player) Setup() error {
	p.d.bus.Subscribe(EventAssetsReady, p.onAssetsReady)
	p.d.bus.Subscribe(EventStart, p.onStart)
	return nil
}

func (p *Player) onAssetsReady(payload any) {
	b, ok := payload.(*assets.Bundle)
	if !ok || b == nil || len(b.Shapes) == 0 {
		return
	}
	p.bundle = b
	p.bgSrc = b.Frames[assets.FrameBackground]
	p.brushSrc = b.Frames[assets.FrameBrush]
	p.d.store.Dispatch(store.SetPlayerSketchReady{})
}

func (p *Player) onStart(any) {
	p.revealIn.Start(p.d.clock.Now())
	p.d.log.Add(CatShape, KeyNext, fmt.Sprintf("shape %d", p.shapeIndex), float64(p.shapeIndex))
}

// onRevealed re-renders the scene at full scale and captures the baseline
// from that exact image before drawing is allowed.
func (p *Player) onRevealed() {
	p.shapeScale = 1
	p.renderScene()
	baseline := p.eval.Capture(p.buffer.Pix)
	p.progress = 0
	p.tweening = false
	p.d.log.Add(CatCoverage, KeyBaseline, fmt.Sprintf("%d px", baseline), float64(baseline))
	p.d.log.Add(CatShape, KeyRevealed, fmt.Sprintf("shape %d", p.shapeIndex), float64(p.shapeIndex))
}

func (p *Player) nextShape() {
	if p.bundle != nil {
		p.shapeIndex = (p.shapeIndex + 1) % len(p.bundle.Shapes)
	}
	p.d.log.Add(CatShape, KeyNext, fmt.Sprintf("shape %d", p.shapeIndex), float64(p.shapeIndex))
}

// Draw runs once per frame while in Play.
func (p *Player) Draw() {
	if p.d.phase() != store.Play || p.bundle == nil {
		return
	}
	if p.tweening {
		p.renderScene()
		return
	}
	if p.drawing {
		p.strokeTo(p.pointer)
	}
}

// Resize records the viewport. The buffer stays at base resolution.
func (p *Player) Resize(v Viewport) {
	p.viewport = v
}

func (p *Player) HandlePointerStart(pt Point) {
	p.pointer = pt
	if !p.CanDraw() {
		return
	}
	p.drawing = true
	p.lastPoint = pt
	p.d.log.Add(CatStroke, KeyBegin, fmt.Sprintf("(%.0f,%.0f)", pt.X, pt.Y), 0)
}

func (p *Player) HandlePointerMove(pt Point) {
	p.pointer = pt
}

// HandlePointerRelease ends the stroke and evaluates coverage. Releases
// outside Play or during a transition are ignored.
func (p *Player) HandlePointerRelease(pt Point) {
	p.pointer = pt
	if !p.CanDraw() {
		p.drawing = false
		return
	}
	if p.drawing {
		p.strokeTo(pt)
	}
	p.drawing = false
	p.d.log.Add(CatStroke, KeyEnd, fmt.Sprintf("(%.0f,%.0f)", pt.X, pt.Y), 0)
	p.evaluate()
}

// CanDraw reports whether strokes currently paint.
func (p *Player) CanDraw() bool {
	return p.bundle != nil && !p.tweening && p.d.phase() == store.Play
}

func (p *Player) evaluate() {
	progress, complete := p.eval.Evaluate(p.buffer.Pix)
	p.progress = progress
	p.d.log.Add(CatCoverage, KeyProgress, fmt.Sprintf("%d%%", progress), float64(progress))
	if !complete {
		return
	}
	// Drawing is disabled before the transition's first update so the
	// completion cannot fire twice for the same shape.
	p.tweening = true
	p.completed++
	p.d.log.Add(CatShape, KeyCompleted, fmt.Sprintf("shape %d at %d%%", p.shapeIndex, progress), float64(progress))
	p.revealOut.Start(p.d.clock.Now())
	p.d.bus.Publish(EventDrawingCompleted, nil)
}

// strokeTo stamps the brush every brushSpacing units from the last point
// toward to. A zero-length segment stamps nothing.
func (p *Player) strokeTo(to Point) {
	from := p.lastPoint
	dist := Distance(from, to)
	angle := Angle(from, to)
	sin, cos := math.Sincos(angle)
	for i := 0.0; i < dist; i += brushSpacing {
		p.stamp(from.X+sin*i, from.Y+cos*i)
	}
	p.lastPoint = to
}

func (p *Player) stamp(x, y float64) {
	size := float64(p.brush.Size)
	x0 := int(math.Round(x - size/2))
	y0 := int(math.Round(y - size/2))
	dr := image.Rect(x0, y0, x0+p.brush.Size, y0+p.brush.Size)
	draw.NearestNeighbor.Scale(p.buffer, dr, p.bundle.Atlas.Image, p.brushSrc, draw.Over, nil)
}

// renderScene paints the background and the current shape at shapeScale.
// Nearest-neighbour sampling keeps silhouette pixels solid black.
func (p *Player) renderScene() {
	bounds := p.buffer.Bounds()
	draw.NearestNeighbor.Scale(p.buffer, bounds, p.bundle.Atlas.Image, p.bgSrc, draw.Src, nil)

	short := math.Min(float64(bounds.Dx()), float64(bounds.Dy()))
	edge := int(math.Round(short * shapeFill * p.shapeScale))
	if edge < 1 {
		return
	}
	shape := p.bundle.Shapes[p.shapeIndex]
	x0 := (bounds.Dx() - edge) / 2
	y0 := (bounds.Dy() - edge) / 2
	dr := image.Rect(x0, y0, x0+edge, y0+edge)
	draw.NearestNeighbor.Scale(p.buffer, dr, shape, shape.Bounds(), draw.Over, nil)
}

// Buffer returns the offscreen surface. The host uploads it every frame.
func (p *Player) Buffer() *image.RGBA {
	return p.buffer
}

// Progress returns the last evaluated coverage percentage.
func (p *Player) Progress() int {
	return p.progress
}

// Completed returns how many shapes have been revealed this round.
func (p *Player) Completed() int {
	return p.completed
}

// ShapeIndex returns the index of the current shape.
func (p *Player) ShapeIndex() int {
	return p.shapeIndex
}

// ShapeScale returns the current transition scale.
func (p *Player) ShapeScale() float64 {
	return p.shapeScale
}

// Baseline returns the silhouette pixel count captured for the current shape.
func (p *Player) Baseline() int {
	return p.eval.Baseline()
}
