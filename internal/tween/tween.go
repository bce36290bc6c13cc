// Package tween interpolates float64 fields over time. Tweens belong to a
// Group that the frame loop advances once per tick with the current time.
package tween

import (
	"time"
)

// Group owns the set of running tweens.
type Group struct {
	active   []*Tween
	added    []*Tween
	updating bool
}

// NewGroup creates an empty group.
func NewGroup() *Group {
	return &Group{}
}

// New creates a stopped tween that animates *target.
func (g *Group) New(target *float64) *Tween {
	return &Tween{group: g, target: target, easing: Linear}
}

// Len returns the number of running tweens.
func (g *Group) Len() int {
	return len(g.active)
}

// Update advances every running tween to now. Tweens started by callbacks
// during the update (including chained tweens) are advanced in the same call.
func (g *Group) Update(now time.Time) {
	g.updating = true
	batch := append([]*Tween(nil), g.active...)
	for len(batch) > 0 {
		g.added = nil
		for _, t := range batch {
			if t.playing {
				t.update(now)
			}
		}
		batch = g.added
	}
	g.updating = false
	g.added = nil

	kept := g.active[:0]
	for _, t := range g.active {
		if t.playing {
			kept = append(kept, t)
		} else {
			t.inGroup = false
		}
	}
	for i := len(kept); i < len(g.active); i++ {
		g.active[i] = nil
	}
	g.active = kept
}

func (g *Group) add(t *Tween) {
	if !t.inGroup {
		t.inGroup = true
		g.active = append(g.active, t)
	}
	if g.updating {
		g.added = append(g.added, t)
	}
}

// Tween animates one float64 from its value at Start to a target value.
type Tween struct {
	group    *Group
	target   *float64
	from, to float64
	duration time.Duration
	easing   Easing

	startTime time.Time
	playing   bool
	started   bool
	inGroup   bool

	onStart    func()
	onComplete func()
	chained    []*Tween
}

// To sets the end value and duration.
func (t *Tween) To(value float64, d time.Duration) *Tween {
	t.to = value
	t.duration = d
	return t
}

// Ease sets the easing curve. Nil means Linear.
func (t *Tween) Ease(e Easing) *Tween {
	if e == nil {
		e = Linear
	}
	t.easing = e
	return t
}

// OnStart registers fn to run on the first update after Start.
func (t *Tween) OnStart(fn func()) *Tween {
	t.onStart = fn
	return t
}

// OnComplete registers fn to run when the tween reaches its end value.
func (t *Tween) OnComplete(fn func()) *Tween {
	t.onComplete = fn
	return t
}

// Chain starts next tweens, in order, when this one completes.
func (t *Tween) Chain(next ...*Tween) *Tween {
	t.chained = next
	return t
}

// Start (re)starts the tween from the target's current value.
func (t *Tween) Start(now time.Time) *Tween {
	t.from = *t.target
	t.startTime = now
	t.playing = true
	t.started = false
	t.group.add(t)
	return t
}

// Stop halts the tween without running completion callbacks or chains.
func (t *Tween) Stop() {
	t.playing = false
}

// Playing reports whether the tween is running.
func (t *Tween) Playing() bool {
	return t.playing
}

func (t *Tween) update(now time.Time) {
	if now.Before(t.startTime) {
		return
	}
	if !t.started {
		t.started = true
		if t.onStart != nil {
			t.onStart()
		}
	}

	k := 1.0
	if t.duration > 0 {
		k = float64(now.Sub(t.startTime)) / float64(t.duration)
		if k > 1 {
			k = 1
		}
	}
	*t.target = t.from + (t.to-t.from)*t.easing(k)

	if k < 1 {
		return
	}
	t.playing = false
	if t.onComplete != nil {
		t.onComplete()
	}
	end := t.startTime.Add(t.duration)
	for _, c := range t.chained {
		c.Start(end)
	}
}
