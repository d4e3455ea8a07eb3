// Package breathe implements a paced breathing guide for breaks: the guide
// eases a scale between 0 (empty lungs) and 1 (full) through the phases of a
// breathing pattern.
package breathe

import (
	"fmt"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Phase is one step of a breathing cycle.
type Phase int

const (
	Inhale Phase = iota
	HoldIn
	Exhale
	HoldOut
	phaseCount
)

func (p Phase) String() string {
	switch p {
	case Inhale:
		return "Breathe in"
	case HoldIn, HoldOut:
		return "Hold"
	case Exhale:
		return "Breathe out"
	default:
		return "unknown"
	}
}

// Pattern sets the length of each phase. Zero-length phases are skipped.
type Pattern struct {
	Name    string
	Inhale  time.Duration
	HoldIn  time.Duration
	Exhale  time.Duration
	HoldOut time.Duration
}

// Built-in patterns.
var (
	Box      = Pattern{Name: "box", Inhale: 4 * time.Second, HoldIn: 4 * time.Second, Exhale: 4 * time.Second, HoldOut: 4 * time.Second}
	Relax478 = Pattern{Name: "478", Inhale: 4 * time.Second, HoldIn: 7 * time.Second, Exhale: 8 * time.Second}
	Coherent = Pattern{Name: "coherent", Inhale: 5 * time.Second, Exhale: 5 * time.Second}
)

// Patterns lists the built-in patterns by name.
func Patterns() []Pattern {
	return []Pattern{Box, Relax478, Coherent}
}

// ParsePattern returns the built-in pattern with the given name.
func ParsePattern(name string) (Pattern, error) {
	for _, p := range Patterns() {
		if p.Name == name {
			return p, nil
		}
	}
	return Pattern{}, fmt.Errorf("breathe: unknown pattern %q", name)
}

func (p Pattern) duration(ph Phase) time.Duration {
	switch ph {
	case Inhale:
		return p.Inhale
	case HoldIn:
		return p.HoldIn
	case Exhale:
		return p.Exhale
	default:
		return p.HoldOut
	}
}

// Cycle returns the length of one full breath.
func (p Pattern) Cycle() time.Duration {
	return p.Inhale + p.HoldIn + p.Exhale + p.HoldOut
}

// target is the scale a phase ends at.
func target(ph Phase) float32 {
	if ph == Inhale || ph == HoldIn {
		return 1
	}
	return 0
}

// Frame is what the guide shows at one moment.
type Frame struct {
	Phase     Phase
	Scale     float64       // 0 = empty lungs, 1 = full
	Cycle     int           // Completed breaths
	Remaining time.Duration // Time left in the phase
}

// Guide steps through a pattern. It is not safe for concurrent use.
type Guide struct {
	pattern Pattern
	phase   Phase
	elapsed time.Duration // Within the current phase
	cycle   int
	scale   float32
	tween   *gween.Tween
}

// New creates a guide at the start of an inhale. A pattern with no positive
// phase falls back to box breathing.
func New(p Pattern) *Guide {
	if p.Cycle() <= 0 || p.Inhale < 0 || p.HoldIn < 0 || p.Exhale < 0 || p.HoldOut < 0 {
		p = Box
	}
	g := &Guide{pattern: p, phase: HoldOut}
	g.next()
	return g
}

// next enters the following phase with a positive duration.
func (g *Guide) next() {
	for {
		g.phase = (g.phase + 1) % phaseCount
		if g.phase == Inhale && g.tween != nil {
			g.cycle++
		}
		if g.pattern.duration(g.phase) > 0 {
			break
		}
	}
	g.elapsed = 0
	secs := float32(g.pattern.duration(g.phase).Seconds())
	g.tween = gween.New(g.scale, target(g.phase), secs, ease.InOutSine)
}

// Update advances the guide by dt and returns the new frame.
func (g *Guide) Update(dt time.Duration) Frame {
	for dt > 0 {
		left := g.pattern.duration(g.phase) - g.elapsed
		if dt < left {
			g.elapsed += dt
			g.scale, _ = g.tween.Update(float32(dt.Seconds()))
			break
		}
		dt -= left
		g.scale = target(g.phase)
		g.next()
	}
	return g.Frame()
}

// Frame returns the current frame without advancing.
func (g *Guide) Frame() Frame {
	return Frame{
		Phase:     g.phase,
		Scale:     float64(g.scale),
		Cycle:     g.cycle,
		Remaining: g.pattern.duration(g.phase) - g.elapsed,
	}
}

// Pattern returns the pattern being guided.
func (g *Guide) Pattern() Pattern {
	return g.pattern
}
