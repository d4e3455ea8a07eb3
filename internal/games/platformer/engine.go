package platformer

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/focusflow/internal/config"
	"github.com/vovakirdan/focusflow/internal/core"
)

var (
	// ErrGameRunning is returned by Reset while the current run is still alive.
	ErrGameRunning = errors.New("platformer: game still running")

	// ErrInvalidGeometry is returned by NewEngine for unusable level or physics data.
	ErrInvalidGeometry = errors.New("platformer: invalid geometry")
)

// Engine owns the character, the live level copy and the run state, and
// advances them one fixed tick at a time. It is not safe for concurrent use;
// the host drives Tick and Reset from a single goroutine.
type Engine struct {
	phys  config.PlatformerPhysics
	level Level // template, never mutated

	char         Character
	platforms    []Platform
	obstacles    []Obstacle
	collectibles []Collectible
	state        State

	grounded bool // Landed on a platform during the previous tick
	ticks    uint64
}

// NewEngine validates the physics and level and starts a fresh run.
func NewEngine(phys config.PlatformerPhysics, lvl Level) (*Engine, error) {
	if err := validate(phys, lvl); err != nil {
		return nil, err
	}
	e := &Engine{
		phys:  phys,
		level: cloneLevel(lvl),
	}
	e.Start()
	return e, nil
}

func validate(phys config.PlatformerPhysics, lvl Level) error {
	switch {
	case phys.MoveSpeed <= 0:
		return fmt.Errorf("%w: move speed must be positive", ErrInvalidGeometry)
	case phys.Gravity <= 0:
		return fmt.Errorf("%w: gravity must be positive", ErrInvalidGeometry)
	case phys.MaxFallSpeed <= 0:
		return fmt.Errorf("%w: max fall speed must be positive", ErrInvalidGeometry)
	case phys.JumpImpulse >= 0:
		return fmt.Errorf("%w: jump impulse must be negative (upward)", ErrInvalidGeometry)
	case lvl.ViewportW <= 0 || lvl.ViewportH <= 0:
		return fmt.Errorf("%w: viewport %vx%v", ErrInvalidGeometry, lvl.ViewportW, lvl.ViewportH)
	case lvl.Spawn.Box().Empty():
		return fmt.Errorf("%w: character has no area", ErrInvalidGeometry)
	}

	for i, p := range lvl.Platforms {
		if p.Empty() {
			return fmt.Errorf("%w: platform %d has no area", ErrInvalidGeometry, i)
		}
		// Landing only looks at the top half of a platform, so anything
		// thinner than two ticks of terminal velocity can be fallen through.
		if p.H/2 < phys.MaxFallSpeed {
			return fmt.Errorf("%w: platform %d is %v thick, needs at least %v",
				ErrInvalidGeometry, i, p.H, 2*phys.MaxFallSpeed)
		}
	}
	for i, o := range lvl.Obstacles {
		if o.Empty() {
			return fmt.Errorf("%w: obstacle %d has no area", ErrInvalidGeometry, i)
		}
	}
	for i, c := range lvl.Collectibles {
		if c.Empty() {
			return fmt.Errorf("%w: collectible %d has no area", ErrInvalidGeometry, i)
		}
	}
	return nil
}

func cloneLevel(lvl Level) Level {
	lvl.Platforms = append([]Platform(nil), lvl.Platforms...)
	lvl.Obstacles = append([]Obstacle(nil), lvl.Obstacles...)
	lvl.Collectibles = append([]Collectible(nil), lvl.Collectibles...)
	return lvl
}

// Start begins a new run from the level template. It is the explicit
// start/restart trigger and is always allowed.
func (e *Engine) Start() {
	e.char = e.level.Spawn
	e.char.VX, e.char.VY = 0, 0
	e.char.Jumping = false

	e.platforms = append(e.platforms[:0], e.level.Platforms...)
	e.obstacles = append(e.obstacles[:0], e.level.Obstacles...)
	e.collectibles = append(e.collectibles[:0], e.level.Collectibles...)
	for i := range e.collectibles {
		e.collectibles[i].Collected = false
	}

	e.state = State{}
	e.grounded = false
	e.ticks = 0
}

// Reset restarts a finished run. It fails with ErrGameRunning while the run
// is still alive and leaves the state untouched.
func (e *Engine) Reset() error {
	if !e.state.GameOver {
		return ErrGameRunning
	}
	e.Start()
	return nil
}

// Tick advances the run by one fixed timestep using the held intent.
// Once the run is over every tick is a no-op until Reset or Start.
func (e *Engine) Tick(in core.Intent) TickResult {
	if e.state.GameOver {
		return TickResult{State: e.state}
	}
	e.ticks++

	var events []Event
	c := &e.char

	// Right wins when both directions are held.
	switch {
	case in.Right:
		c.VX = e.phys.MoveSpeed
	case in.Left:
		c.VX = -e.phys.MoveSpeed
	default:
		c.VX = 0
	}

	if in.Up && !c.Jumping {
		c.VY = e.phys.JumpImpulse
		c.Jumping = true
		events = append(events, Event{Kind: EventJumped})
	}

	c.VY = math.Min(c.VY+e.phys.Gravity, e.phys.MaxFallSpeed)

	e.moveHorizontal()
	c.Y += c.VY

	landed := e.land()
	if landed && !e.grounded {
		events = append(events, Event{Kind: EventLanded})
	}
	e.grounded = landed

	body := c.Box()
	cam := e.state.CameraOffsetX

	// Obstacles are checked before collectibles: a fatal tick collects nothing.
	for _, o := range e.obstacles {
		if body.Intersects(o.Offset(-cam, 0)) {
			e.state.GameOver = true
			events = append(events, Event{Kind: EventDied, Cause: DeathObstacle, Obstacle: o.Kind})
			return TickResult{State: e.state, Events: events}
		}
	}

	if c.Y > e.phys.FallDeathY {
		e.state.GameOver = true
		events = append(events, Event{Kind: EventDied, Cause: DeathFall})
		return TickResult{State: e.state, Events: events}
	}

	for i := range e.collectibles {
		item := &e.collectibles[i]
		if item.Collected || !body.Intersects(item.Offset(-cam, 0)) {
			continue
		}
		item.Collected = true
		pts := item.Kind.Points()
		e.state.Score += pts
		events = append(events, Event{Kind: EventCollected, Collectible: item.Kind, Points: pts})
	}

	return TickResult{State: e.state, Events: events}
}

// moveHorizontal applies VX either to the character or to the world.
// Moving right, the character walks to the middle of the viewport and then
// the world scrolls. Moving left, the world scrolls back to its origin before
// the character itself moves, stopping at the left edge.
func (e *Engine) moveHorizontal() {
	c := &e.char
	mid := e.level.ViewportW / 2

	switch {
	case c.VX > 0:
		if c.X < mid {
			c.X = math.Min(c.X+c.VX, mid)
			return
		}
		e.state.WorldPosition += c.VX
		e.state.CameraOffsetX += c.VX
	case c.VX < 0:
		if e.state.WorldPosition > 0 {
			d := math.Min(-c.VX, e.state.WorldPosition)
			e.state.WorldPosition -= d
			e.state.CameraOffsetX = math.Max(e.state.CameraOffsetX-d, 0)
			return
		}
		c.X = math.Max(c.X+c.VX, 0)
	}
}

// land snaps a falling character onto the first platform whose top half
// contains its feet. Reports whether a landing happened.
func (e *Engine) land() bool {
	c := &e.char
	if c.VY <= 0 {
		return false
	}

	body := c.Box()
	bottom := body.Bottom()
	cam := e.state.CameraOffsetX

	for _, p := range e.platforms {
		top := p.Offset(-cam, 0)
		if !body.OverlapsX(top) {
			continue
		}
		if bottom < top.Y || bottom > top.Y+top.H/2 {
			continue
		}
		c.Y = top.Y - c.H
		c.VY = 0
		c.Jumping = false
		return true
	}
	return false
}

// State returns the current run state.
func (e *Engine) State() State {
	return e.state
}

// Character returns a copy of the character.
func (e *Engine) Character() Character {
	return e.char
}

// Ticks returns the number of live ticks in the current run.
func (e *Engine) Ticks() uint64 {
	return e.ticks
}

// Level returns the template the engine was built from.
func (e *Engine) Level() Level {
	return cloneLevel(e.level)
}
