// Package timer implements the focus/break countdown that hosts the
// break-time games. The timer is driven by explicit Advance calls so the
// host decides the clock (a Bubble Tea tick, a test loop).
package timer

import (
	"fmt"
	"time"

	"github.com/vovakirdan/focusflow/internal/config"
)

// Phase is one segment of the focus cycle.
type Phase int

const (
	PhaseFocus Phase = iota
	PhaseShortBreak
	PhaseLongBreak
)

func (p Phase) String() string {
	switch p {
	case PhaseFocus:
		return "focus"
	case PhaseShortBreak:
		return "short break"
	case PhaseLongBreak:
		return "long break"
	default:
		return "unknown"
	}
}

// IsBreak reports whether the phase is a break, when the platformer and the
// breathing guide are offered.
func (p Phase) IsBreak() bool {
	return p == PhaseShortBreak || p == PhaseLongBreak
}

// Durations is the timer cadence.
type Durations struct {
	Focus          time.Duration
	ShortBreak     time.Duration
	LongBreak      time.Duration
	LongBreakEvery int  // Focus sessions per long break
	AutoStart      bool // Start the next phase immediately
}

// DefaultDurations returns the classic 25/5/15 cadence with a long break
// every fourth session.
func DefaultDurations() Durations {
	return DurationsFrom(config.DefaultTimerConfig())
}

// DurationsFrom converts a minute-based config into Durations.
func DurationsFrom(cfg config.TimerConfig) Durations {
	return Durations{
		Focus:          time.Duration(cfg.FocusMinutes) * time.Minute,
		ShortBreak:     time.Duration(cfg.ShortBreakMinutes) * time.Minute,
		LongBreak:      time.Duration(cfg.LongBreakMinutes) * time.Minute,
		LongBreakEvery: cfg.LongBreakEvery,
		AutoStart:      cfg.AutoStart,
	}
}

// normalized replaces non-positive values with the defaults.
func (d Durations) normalized() Durations {
	def := config.DefaultTimerConfig()
	if d.Focus <= 0 {
		d.Focus = time.Duration(def.FocusMinutes) * time.Minute
	}
	if d.ShortBreak <= 0 {
		d.ShortBreak = time.Duration(def.ShortBreakMinutes) * time.Minute
	}
	if d.LongBreak <= 0 {
		d.LongBreak = time.Duration(def.LongBreakMinutes) * time.Minute
	}
	if d.LongBreakEvery <= 0 {
		d.LongBreakEvery = def.LongBreakEvery
	}
	return d
}

// For returns the planned length of a phase.
func (d Durations) For(p Phase) time.Duration {
	switch p {
	case PhaseShortBreak:
		return d.ShortBreak
	case PhaseLongBreak:
		return d.LongBreak
	default:
		return d.Focus
	}
}

// EventKind identifies a timer transition.
type EventKind int

const (
	PhaseCompleted EventKind = iota + 1
	PhaseSkipped
)

// Event reports that a phase ended and which phase follows.
type Event struct {
	Kind    EventKind
	Phase   Phase         // The phase that ended
	Planned time.Duration // Its planned length
	Next    Phase
}

// Timer is a pausable countdown cycling focus and break phases.
// It is not safe for concurrent use.
type Timer struct {
	d              Durations
	phase          Phase
	remaining      time.Duration
	running        bool
	completedFocus int
}

// New creates a stopped timer at the start of a focus phase.
// Invalid durations fall back to the defaults.
func New(d Durations) *Timer {
	d = d.normalized()
	return &Timer{
		d:         d,
		phase:     PhaseFocus,
		remaining: d.Focus,
	}
}

// Start runs the countdown. Calling Start on a running timer does nothing.
func (t *Timer) Start() {
	t.running = true
}

// Pause stops the countdown, keeping the remaining time.
func (t *Timer) Pause() {
	t.running = false
}

// Resume is Start, named for the paused case.
func (t *Timer) Resume() {
	t.running = true
}

// Toggle starts a stopped timer and pauses a running one.
func (t *Timer) Toggle() {
	t.running = !t.running
}

// Skip ends the current phase early. A skipped focus phase does not count
// toward the long break.
func (t *Timer) Skip() Event {
	ev := Event{Kind: PhaseSkipped, Phase: t.phase, Planned: t.d.For(t.phase)}
	next := PhaseFocus
	if t.phase == PhaseFocus {
		next = PhaseShortBreak
	}
	t.enter(next)
	ev.Next = next
	return ev
}

// Advance counts down by dt while running. A phase reaching zero emits
// PhaseCompleted and the timer moves to the next phase; without AutoStart it
// then stops and the rest of dt is discarded.
func (t *Timer) Advance(dt time.Duration) []Event {
	var events []Event
	for t.running && dt > 0 {
		if dt < t.remaining {
			t.remaining -= dt
			break
		}
		dt -= t.remaining

		ended := t.phase
		next := PhaseFocus
		if ended == PhaseFocus {
			t.completedFocus++
			next = PhaseShortBreak
			if t.completedFocus%t.d.LongBreakEvery == 0 {
				next = PhaseLongBreak
			}
		}
		events = append(events, Event{
			Kind:    PhaseCompleted,
			Phase:   ended,
			Planned: t.d.For(ended),
			Next:    next,
		})
		t.enter(next)
	}
	return events
}

func (t *Timer) enter(p Phase) {
	t.phase = p
	t.remaining = t.d.For(p)
	t.running = t.d.AutoStart
}

// Reset returns to a stopped focus phase and clears the session count.
func (t *Timer) Reset() {
	t.enter(PhaseFocus)
	t.running = false
	t.completedFocus = 0
}

// Phase returns the current phase.
func (t *Timer) Phase() Phase {
	return t.phase
}

// Remaining returns the time left in the current phase.
func (t *Timer) Remaining() time.Duration {
	return t.remaining
}

// Planned returns the full length of the current phase.
func (t *Timer) Planned() time.Duration {
	return t.d.For(t.phase)
}

// Progress returns the elapsed fraction of the current phase, 0..1.
func (t *Timer) Progress() float64 {
	planned := t.Planned()
	return float64(planned-t.remaining) / float64(planned)
}

// Running reports whether the countdown is active.
func (t *Timer) Running() bool {
	return t.running
}

// CompletedFocus returns the number of focus phases completed (not skipped).
func (t *Timer) CompletedFocus() int {
	return t.completedFocus
}

// Durations returns the normalized cadence.
func (t *Timer) Durations() Durations {
	return t.d
}

// FormatRemaining renders a duration as MM:SS, rounding up so a phase never
// shows 00:00 while time is left.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
