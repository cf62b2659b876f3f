package hive

import (
	"math"
	"time"

	"github.com/vovakirdan/tui-hive/internal/config"
	"github.com/vovakirdan/tui-hive/internal/hexagon"
	"github.com/vovakirdan/tui-hive/internal/level"
)

// recoilReach is how far a rejected entity leans toward its target, in radii.
const recoilReach = 0.3

// track follows the latest change of one entity.
type track struct {
	revision uint64
	start    time.Duration
	duration time.Duration
}

// Animator is the visual collaborator of a level: it times every applied
// change and settles the entity once its transition has played.
type Animator struct {
	timing config.AnimationConfig
	now    time.Duration
	tracks map[int]track
}

// NewAnimator creates an animator with the given durations.
func NewAnimator(timing config.AnimationConfig) *Animator {
	return &Animator{
		timing: timing,
		tracks: make(map[int]track),
	}
}

// Reset forgets every running transition.
func (a *Animator) Reset() {
	a.now = 0
	clear(a.tracks)
}

// Duration returns how long a change of the given kind keeps its entity busy.
func (a *Animator) Duration(kind level.ChangeKind) time.Duration {
	switch kind {
	case level.ChangeWalk, level.ChangePush, level.ChangePushed:
		return a.timing.Move()
	case level.ChangeTurn:
		return a.timing.Turn()
	case level.ChangeToggle:
		return a.timing.Focus()
	case level.ChangeBlocked, level.ChangeInvalid:
		return a.timing.Recoil()
	default:
		return 0
	}
}

// Advance moves the clock by dt, starts transitions for newly applied
// changes and settles entities whose transition is over.
func (a *Animator) Advance(lvl *level.Level, dt time.Duration) {
	a.now += dt

	for _, e := range lvl.Entities() {
		t := a.tracks[e.ID()]
		if rev := e.Revision(); rev != t.revision {
			c, _ := e.LastChange()
			t = track{revision: rev, start: a.now - dt, duration: a.Duration(c.Kind)}
			a.tracks[e.ID()] = t
		}

		if !e.CanChange() && a.now-t.start >= t.duration {
			e.Settle()
		}
	}
}

// Progress returns how far the entity's current transition has played,
// from 0 to 1. Entities without a transition are at 1.
func (a *Animator) Progress(e *level.Entity) float64 {
	t, ok := a.tracks[e.ID()]
	if !ok || t.revision != e.Revision() || t.duration <= 0 || e.CanChange() {
		return 1
	}
	p := float64(a.now-t.start) / float64(t.duration)
	return math.Max(0, math.Min(p, 1))
}

// Point returns where e is drawn under m at the current moment.
func (a *Animator) Point(lvl *level.Level, m hexagon.Metrics, e *level.Entity) (x, y float64, ok bool) {
	x, y, ok = lvl.AnchorPoint(m, e.Position())
	if !ok {
		return 0, 0, false
	}

	c, changed := e.LastChange()
	p := a.Progress(e)
	if !changed || p >= 1 {
		return x, y, true
	}

	switch c.Kind {
	case level.ChangeWalk, level.ChangePush, level.ChangePushed:
		fx, fy, fok := lvl.AnchorPoint(m, c.Move.From)
		if !fok {
			return x, y, true
		}
		t := easeOutQuad(p)
		return fx + (x-fx)*t, fy + (y-fy)*t, true

	case level.ChangeBlocked, level.ChangeInvalid:
		angle := c.Face.Direction.Angle()
		lean := math.Sin(p*math.Pi) * m.Radius * recoilReach
		// Screen Y grows downward
		return x + math.Cos(angle)*lean, y - math.Sin(angle)*lean, true
	}

	return x, y, true
}

// easeOutQuad provides smooth deceleration for animation.
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}
