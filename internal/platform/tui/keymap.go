package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/focusflow/internal/core"
)

// KeyMap holds every binding the app understands. Views pick the subset
// they show in the help bar.
type KeyMap struct {
	// Timer
	Toggle  key.Binding
	Skip    key.Binding
	Play    key.Binding
	Breathe key.Binding
	History key.Binding

	// Game
	Left    key.Binding
	Right   key.Binding
	Jump    key.Binding
	Pause   key.Binding
	Restart key.Binding

	// History
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding

	// Global
	Back key.Binding
	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "start/pause"),
		),
		Skip: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "skip phase"),
		),
		Play: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "play"),
		),
		Breathe: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "breathe"),
		),
		History: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "history"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "right"),
		),
		Jump: key.NewBinding(
			key.WithKeys("up", "w", " "),
			key.WithHelp("↑/w/space", "jump"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "sessions/scores"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// GameAction maps a key press to a game action. Keys that mean nothing to
// the game map to core.ActionNone.
func (k KeyMap) GameAction(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.Jump):
		return core.ActionJump
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	}
	return core.ActionNone
}

// viewHelp adapts the bindings of one view to help.KeyMap.
type viewHelp struct {
	short []key.Binding
	full  [][]key.Binding
}

func (h viewHelp) ShortHelp() []key.Binding  { return h.short }
func (h viewHelp) FullHelp() [][]key.Binding { return h.full }

func (k KeyMap) timerHelp() viewHelp {
	return viewHelp{
		short: []key.Binding{k.Toggle, k.Skip, k.Play, k.Breathe, k.Help},
		full: [][]key.Binding{
			{k.Toggle, k.Skip},
			{k.Play, k.Breathe, k.History},
			{k.Help, k.Quit},
		},
	}
}

func (k KeyMap) gameHelp() viewHelp {
	return viewHelp{
		short: []key.Binding{k.Left, k.Right, k.Jump, k.Pause, k.Restart, k.Back},
		full:  [][]key.Binding{{k.Left, k.Right, k.Jump}, {k.Pause, k.Restart, k.Back, k.Quit}},
	}
}

func (k KeyMap) breatheHelp() viewHelp {
	return viewHelp{
		short: []key.Binding{k.Back, k.Quit},
		full:  [][]key.Binding{{k.Back, k.Quit}},
	}
}

func (k KeyMap) historyHelp() viewHelp {
	return viewHelp{
		short: []key.Binding{k.Up, k.Down, k.NextTab, k.Back},
		full:  [][]key.Binding{{k.Up, k.Down, k.NextTab}, {k.Back, k.Quit}},
	}
}
