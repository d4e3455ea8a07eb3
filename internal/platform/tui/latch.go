package tui

import (
	"github.com/vovakirdan/focusflow/internal/core"
)

// IntentLatch turns key presses into held movement. Terminals report key
// presses (and auto-repeats) but never releases, so each press holds its
// direction for a number of ticks; auto-repeat refreshes the hold before it
// runs out. Pause and restart are one-shot and fire on the next tick only.
type IntentLatch struct {
	hold  int // Ticks a press stays held
	left  int
	right int
	jump  int

	pause   bool
	restart bool
}

// NewIntentLatch creates a latch holding each press for hold ticks.
func NewIntentLatch(hold int) *IntentLatch {
	if hold < 1 {
		hold = 1
	}
	return &IntentLatch{hold: hold}
}

// HoldTicksFor returns a hold window of about a quarter second, long enough
// to bridge typical keyboard auto-repeat.
func HoldTicksFor(tickRate int) int {
	return max(tickRate/4, 1)
}

// Press records a key press.
func (l *IntentLatch) Press(a core.Action) {
	switch a {
	case core.ActionLeft:
		l.left = l.hold
		l.right = 0
	case core.ActionRight:
		l.right = l.hold
		l.left = 0
	case core.ActionJump:
		l.jump = l.hold
	case core.ActionPause:
		l.pause = true
	case core.ActionRestart:
		l.restart = true
	}
}

// Frame returns the actions active for the coming tick.
func (l *IntentLatch) Frame() core.InputFrame {
	f := core.NewInputFrame()
	if l.left > 0 {
		f.Set(core.ActionLeft)
	}
	if l.right > 0 {
		f.Set(core.ActionRight)
	}
	if l.jump > 0 {
		f.Set(core.ActionJump)
	}
	if l.pause {
		f.Set(core.ActionPause)
	}
	if l.restart {
		f.Set(core.ActionRestart)
	}
	return f
}

// Tick ages held keys by one tick and drops one-shot actions.
func (l *IntentLatch) Tick() {
	l.left = max(l.left-1, 0)
	l.right = max(l.right-1, 0)
	l.jump = max(l.jump-1, 0)
	l.pause = false
	l.restart = false
}

// Release drops everything, e.g. when the game view loses focus.
func (l *IntentLatch) Release() {
	*l = IntentLatch{hold: l.hold}
}
