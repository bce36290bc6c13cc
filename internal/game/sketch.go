package game

import (
	"github.com/Garsondee/Shape-Reveal/internal/config"
	"github.com/Garsondee/Shape-Reveal/internal/pubsub"
	"github.com/Garsondee/Shape-Reveal/internal/store"
	"github.com/Garsondee/Shape-Reveal/internal/tween"
)

// Sketch is the lifecycle shared by the drawing surface and the HUD. The App
// composes sketches and fans frame, resize and pointer events out to them.
type Sketch interface {
	Setup() error
	Draw()
	Resize(v Viewport)
	HandlePointerStart(p Point)
	HandlePointerMove(p Point)
	HandlePointerRelease(p Point)
}

// deps are the collaborators every sketch is built with.
type deps struct {
	cfg    config.Config
	bus    *pubsub.Bus
	store  *store.Store
	tweens *tween.Group
	clock  Clock
	log    *RoundLog
}

func (d deps) phase() store.Phase {
	return d.store.State().Phase
}
