package platformer

import (
	"fmt"

	"github.com/vovakirdan/focusflow/internal/core"
)

// PlatformKind is the decorative category of a platform.
type PlatformKind int

const (
	PlatformFloor PlatformKind = iota
	PlatformDesk
	PlatformShelf
)

var platformNames = []string{"floor", "desk", "shelf"}

func (k PlatformKind) String() string {
	if int(k) < 0 || int(k) >= len(platformNames) {
		return "unknown"
	}
	return platformNames[k]
}

// ParsePlatformKind converts a lowercase category name to a PlatformKind.
func ParsePlatformKind(s string) (PlatformKind, error) {
	for i, name := range platformNames {
		if name == s {
			return PlatformKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown platform category %q", s)
}

// ObstacleKind is the decorative category of an obstacle. Every kind is fatal.
type ObstacleKind int

const (
	ObstacleChair ObstacleKind = iota
	ObstacleTrash
	ObstaclePrinter
	ObstacleComputer
	ObstaclePaperclip
)

var obstacleNames = []string{"chair", "trash", "printer", "computer", "paperclip"}

func (k ObstacleKind) String() string {
	if int(k) < 0 || int(k) >= len(obstacleNames) {
		return "unknown"
	}
	return obstacleNames[k]
}

// ParseObstacleKind converts a lowercase category name to an ObstacleKind.
func ParseObstacleKind(s string) (ObstacleKind, error) {
	for i, name := range obstacleNames {
		if name == s {
			return ObstacleKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown obstacle category %q", s)
}

// CollectibleKind determines how many points a collectible is worth.
type CollectibleKind int

const (
	CollectibleCoffee CollectibleKind = iota
	CollectibleDocument
	CollectiblePoint
)

var collectibleNames = []string{"coffee", "document", "point"}

func (k CollectibleKind) String() string {
	if int(k) < 0 || int(k) >= len(collectibleNames) {
		return "unknown"
	}
	return collectibleNames[k]
}

// ParseCollectibleKind converts a lowercase category name to a CollectibleKind.
func ParseCollectibleKind(s string) (CollectibleKind, error) {
	for i, name := range collectibleNames {
		if name == s {
			return CollectibleKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown collectible category %q", s)
}

// Points returns the score value of the collectible kind.
// These values are fixed for compatibility with existing high scores.
func (k CollectibleKind) Points() int {
	switch k {
	case CollectibleCoffee:
		return 10
	case CollectibleDocument:
		return 20
	case CollectiblePoint:
		return 15
	default:
		return 0
	}
}

// Character is the player avatar. X is a screen position; the world scrolls
// underneath it.
type Character struct {
	X, Y    float64
	W, H    float64
	VX, VY  float64
	Jumping bool // Airborne after a jump; cleared on landing
}

// Box returns the character's bounding box in screen coordinates.
func (c Character) Box() core.Box {
	return core.NewBox(c.X, c.Y, c.W, c.H)
}

// Platform is static level geometry the character can land on.
type Platform struct {
	core.Box
	Kind PlatformKind
}

// Obstacle is static level geometry that ends the run on contact.
type Obstacle struct {
	core.Box
	Kind ObstacleKind
}

// Collectible awards points once per run.
type Collectible struct {
	core.Box
	Kind      CollectibleKind
	Collected bool
}

// Level is an immutable level template. Geometry is in world coordinates.
type Level struct {
	ID           string
	Name         string
	ViewportW    float64 // Visible play area width
	ViewportH    float64 // Visible play area height
	Spawn        Character
	Platforms    []Platform
	Obstacles    []Obstacle
	Collectibles []Collectible
}

// Extent returns the right-most and bottom-most world coordinates used by the level.
func (l Level) Extent() (w, h float64) {
	w, h = l.ViewportW, l.ViewportH
	grow := func(b core.Box) {
		w = max(w, b.Right())
		h = max(h, b.Bottom())
	}
	for _, p := range l.Platforms {
		grow(p.Box)
	}
	for _, o := range l.Obstacles {
		grow(o.Box)
	}
	for _, c := range l.Collectibles {
		grow(c.Box)
	}
	return w, h
}

// State is the per-run scoring and camera state.
type State struct {
	Score         int
	CameraOffsetX float64 // Horizontal translation applied to level geometry
	WorldPosition float64 // Distance scrolled right since the run started
	GameOver      bool
}

// DeathCause records why a run ended.
type DeathCause int

const (
	DeathNone DeathCause = iota
	DeathObstacle
	DeathFall
)

func (d DeathCause) String() string {
	switch d {
	case DeathObstacle:
		return "obstacle"
	case DeathFall:
		return "fall"
	default:
		return "none"
	}
}

// EventKind identifies what happened during a tick.
type EventKind int

const (
	EventJumped EventKind = iota + 1
	EventLanded
	EventCollected
	EventDied
)

// Event is emitted by Tick for the host (HUD messages, logging).
type Event struct {
	Kind        EventKind
	Collectible CollectibleKind // EventCollected
	Points      int             // EventCollected
	Cause       DeathCause      // EventDied
	Obstacle    ObstacleKind    // EventDied with DeathObstacle
}

// TickResult is the outcome of one engine tick.
type TickResult struct {
	State  State
	Events []Event
}
