package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/focusflow/internal/config"
	"github.com/vovakirdan/focusflow/internal/games/platformer"
	"github.com/vovakirdan/focusflow/internal/games/platformer/levels"
	"github.com/vovakirdan/focusflow/internal/timer"
)

var (
	spaceKey = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
)

func newTestApp(t *testing.T) App {
	t.Helper()

	lvl, err := levels.Default()
	if err != nil {
		t.Fatalf("levels.Default: %v", err)
	}
	game, err := platformer.NewGame(config.DefaultPlatformerConfig(), lvl)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}

	return NewApp(Options{
		Durations: timer.Durations{
			Focus:          2 * time.Second,
			ShortBreak:     time.Second,
			LongBreak:      3 * time.Second,
			LongBreakEvery: 4,
		},
		Game:     game,
		TickRate: 30,
		Width:    100,
		Height:   30,
	})
}

func send(m App, msg tea.Msg) App {
	next, _ := m.Update(msg)
	return next.(App)
}

// runFor ticks the app across d of wall-clock time in one-second steps.
func runFor(m App, start time.Time, d time.Duration) App {
	m = send(m, TickMsg(start))
	for elapsed := time.Second; elapsed <= d; elapsed += time.Second {
		m = send(m, TickMsg(start.Add(elapsed)))
	}
	return m
}

func TestGameLockedDuringFocus(t *testing.T) {
	m := newTestApp(t)

	m = send(m, runeKey('g'))
	if m.CurrentView() != ViewTimer {
		t.Fatalf("view = %v, want timer during focus", m.CurrentView())
	}
	if !strings.Contains(m.View(), "unlock during breaks") {
		t.Error("expected a notice explaining the game is locked")
	}
}

func TestFocusCompletesIntoBreak(t *testing.T) {
	m := newTestApp(t)
	m = send(m, spaceKey)

	m = runFor(m, time.Unix(0, 0), 2*time.Second)

	if got := m.Timer().Phase(); got != timer.PhaseShortBreak {
		t.Fatalf("phase = %v, want short break", got)
	}
	if m.Timer().CompletedFocus() != 1 {
		t.Errorf("completed focus = %d, want 1", m.Timer().CompletedFocus())
	}
	if !strings.Contains(m.View(), "Time for a short break") {
		t.Error("expected a break notice")
	}

	m = send(m, runeKey('g'))
	if m.CurrentView() != ViewGame {
		t.Errorf("view = %v, want game during a break", m.CurrentView())
	}
}

func TestBreakEndReturnsToTimer(t *testing.T) {
	m := newTestApp(t)
	m = send(m, runeKey('n')) // skip to the short break
	m = send(m, spaceKey)     // start it
	m = send(m, runeKey('g'))
	if m.CurrentView() != ViewGame {
		t.Fatalf("view = %v, want game", m.CurrentView())
	}

	m = runFor(m, time.Unix(100, 0), time.Second)

	if m.Timer().Phase() != timer.PhaseFocus {
		t.Fatalf("phase = %v, want focus", m.Timer().Phase())
	}
	if m.CurrentView() != ViewTimer {
		t.Errorf("view = %v, want timer after the break", m.CurrentView())
	}
}

func TestTickGapIsCapped(t *testing.T) {
	m := newTestApp(t)
	m = send(m, spaceKey)

	start := time.Unix(0, 0)
	m = send(m, TickMsg(start))
	m = send(m, TickMsg(start.Add(10*time.Minute)))

	if m.Timer().Phase() != timer.PhaseFocus {
		t.Fatalf("phase = %v, a long gap ended the focus phase", m.Timer().Phase())
	}
	if got := m.Timer().Remaining(); got != time.Second {
		t.Errorf("remaining = %v, want 1s", got)
	}
}

func TestGameViewStepsAndLeaves(t *testing.T) {
	m := newTestApp(t)
	m = send(m, runeKey('n'))
	m = send(m, runeKey('g'))

	before := m.game.Snapshot().Character.X
	m = send(m, tea.KeyMsg{Type: tea.KeyRight})
	m = send(m, TickMsg(time.Unix(0, 0)))
	if after := m.game.Snapshot().Character.X; after <= before {
		t.Errorf("character x = %v, want > %v after moving right", after, before)
	}

	if !strings.Contains(m.View(), "Score:") {
		t.Error("game view missing the HUD")
	}

	m = send(m, escKey)
	if m.CurrentView() != ViewTimer {
		t.Errorf("view = %v, want timer after esc", m.CurrentView())
	}
}

func TestBreatheView(t *testing.T) {
	m := newTestApp(t)
	m = send(m, runeKey('b'))
	if m.CurrentView() != ViewBreathe {
		t.Fatalf("view = %v, want breathe", m.CurrentView())
	}
	m = runFor(m, time.Unix(0, 0), time.Second)
	if !strings.Contains(m.View(), "Breathe in") {
		t.Error("breathe view should show the inhale phase")
	}
}

func TestReloadDefersToRestart(t *testing.T) {
	m := newTestApp(t)

	phys := config.DefaultPlatformerConfig().Physics
	phys.MoveSpeed = 8
	m = send(m, PhysicsReloadMsg{Physics: phys})
	if !m.game.Pending() {
		t.Error("valid physics should be pending")
	}

	bad := phys
	bad.Gravity = 0
	m = send(m, PhysicsReloadMsg{Physics: bad})
	if !strings.Contains(m.View(), "Config rejected") {
		t.Error("expected a rejection notice")
	}
}

func TestQuit(t *testing.T) {
	m := newTestApp(t)
	_, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("quit returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command did not produce tea.QuitMsg")
	}
}
