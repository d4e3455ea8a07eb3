// Package platformer implements the break-time side-scroller: a character
// runs through an office, landing on desks and shelves, avoiding furniture
// and collecting coffee and documents for points.
package platformer

import (
	"fmt"

	"github.com/vovakirdan/focusflow/internal/config"
	"github.com/vovakirdan/focusflow/internal/core"
)

// GameID is the score table key for the platformer.
const GameID = "platformer"

// messageTicks is how long a HUD toast stays visible.
const messageTicks = 45

// Game adapts the Engine to the core.Game interface used by the terminal platform.
type Game struct {
	engine  *Engine
	pending *Engine // reconfigured engine, swapped in at the next restart
	paused  bool
	status  string // host-supplied status line, display only

	message      string
	messageTicks int
}

// NewGame builds a game for the given physics and level.
func NewGame(cfg config.PlatformerConfig, lvl Level) (*Game, error) {
	engine, err := NewEngine(cfg.Physics, lvl)
	if err != nil {
		return nil, err
	}
	return &Game{engine: engine}, nil
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Office Dash"
}

// Reset starts a new run regardless of the current state.
func (g *Game) Reset(_ core.RuntimeConfig) {
	if g.pending != nil {
		g.engine, g.pending = g.pending, nil
	}
	g.engine.Start()
	g.paused = false
	g.message = ""
	g.messageTicks = 0
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) && g.restart() {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.engine.State().GameOver {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if g.messageTicks > 0 {
		g.messageTicks--
	}

	result := g.engine.Tick(in.Intent())
	for _, ev := range result.Events {
		switch ev.Kind {
		case EventCollected:
			g.toast(fmt.Sprintf("+%d %s", ev.Points, ev.Collectible))
		case EventDied:
			if ev.Cause == DeathObstacle {
				g.toast("Ouch, a " + ev.Obstacle.String())
			} else {
				g.toast("Fell off the office floor")
			}
		}
	}

	return core.StepResult{State: g.State()}
}

// restart resets a finished run. Restart requests during a live run are ignored.
func (g *Game) restart() bool {
	if err := g.engine.Reset(); err != nil {
		return false
	}
	if g.pending != nil {
		g.engine, g.pending = g.pending, nil
	}
	g.paused = false
	g.message = ""
	g.messageTicks = 0
	return true
}

func (g *Game) toast(msg string) {
	g.message = msg
	g.messageTicks = messageTicks
}

// Reconfigure prepares an engine with new physics (and optionally a new
// level). The current run continues unchanged; the new engine takes over at
// the next restart.
func (g *Game) Reconfigure(phys config.PlatformerPhysics, lvl *Level) error {
	level := g.engine.Level()
	if lvl != nil {
		level = *lvl
	}
	engine, err := NewEngine(phys, level)
	if err != nil {
		return err
	}
	g.pending = engine
	return nil
}

// Pending reports whether a reconfiguration is waiting for the next restart.
func (g *Game) Pending() bool {
	return g.pending != nil
}

// SetStatus sets the right-hand HUD text (the focus timer's remaining time).
// It has no effect on gameplay.
func (g *Game) SetStatus(s string) {
	g.status = s
}

// Snapshot returns a read-only copy of the current frame.
func (g *Game) Snapshot() Snapshot {
	return g.engine.Snapshot()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := g.engine.State()
	return core.GameState{
		Score:    st.Score,
		GameOver: st.GameOver,
		Paused:   g.paused,
	}
}
