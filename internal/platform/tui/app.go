package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/focusflow/internal/breathe"
	"github.com/vovakirdan/focusflow/internal/config"
	"github.com/vovakirdan/focusflow/internal/core"
	"github.com/vovakirdan/focusflow/internal/games/platformer"
	"github.com/vovakirdan/focusflow/internal/storage"
	"github.com/vovakirdan/focusflow/internal/timer"
)

// View identifies which screen the app shows.
type View int

const (
	ViewTimer View = iota
	ViewGame
	ViewBreathe
	ViewHistory
)

// maxTickGap caps the wall-clock time credited to one tick, so a suspended
// terminal does not burn through a phase in one step.
const maxTickGap = time.Second

// Options configures an App.
type Options struct {
	Durations timer.Durations
	Game      *platformer.Game // Nil disables the game view
	Pattern   breathe.Pattern
	Store     *storage.Store // Nil disables history and score saving
	TickRate  int
	StartView View
	FreePlay  bool // Allow the game during focus phases
	Reload    <-chan PhysicsReloadMsg
	Width     int
	Height    int
}

// PhysicsReloadMsg carries platformer physics re-read from disk.
type PhysicsReloadMsg struct {
	Physics config.PlatformerPhysics
	Err     error
}

// App is the top-level Bubble Tea model: timer, game, breathing guide and
// history behind one tick loop.
type App struct {
	opts     Options
	keys     KeyMap
	help     help.Model
	progress progress.Model
	timer    *timer.Timer
	game     *platformer.Game
	guide    *breathe.Guide
	history  HistoryModel
	latch    *IntentLatch
	screen   *core.Screen
	runtime  core.RuntimeConfig

	view       View
	width      int
	height     int
	lastTick   time.Time
	scoreSaved bool
	notice     string
	quitting   bool
}

// NewApp creates the app model.
func NewApp(opts Options) App {
	if opts.TickRate <= 0 {
		opts.TickRate = core.DefaultConfig().TickRate
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = core.DefaultConfig().ScreenW, core.DefaultConfig().ScreenH
	}
	if opts.Game == nil && opts.StartView == ViewGame {
		opts.StartView = ViewTimer
	}

	runtime := core.RuntimeConfig{
		ScreenW:  opts.Width,
		ScreenH:  opts.Height - 1,
		TickRate: opts.TickRate,
	}

	m := App{
		opts:     opts,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		timer:    timer.New(opts.Durations),
		game:     opts.Game,
		guide:    breathe.New(opts.Pattern),
		history:  NewHistoryModel(opts.Store, opts.Width, opts.Height),
		latch:    NewIntentLatch(HoldTicksFor(opts.TickRate)),
		screen:   core.NewScreen(runtime.ScreenW, runtime.ScreenH),
		runtime:  runtime,
		view:     opts.StartView,
	}
	m.resize(opts.Width, opts.Height)
	return m
}

// Init starts the tick loop.
func (m App) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.opts.TickRate), listenReload(m.opts.Reload))
}

func listenReload(ch <-chan PhysicsReloadMsg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

// Update handles messages and updates the model state.
func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case PhysicsReloadMsg:
		m.handleReload(msg)
		return m, listenReload(m.opts.Reload)
	}

	if m.view == ViewHistory {
		var cmd tea.Cmd
		m.history, cmd = m.history.Update(msg, m.keys)
		return m, cmd
	}
	return m, nil
}

func (m *App) resize(width, height int) {
	m.width, m.height = width, height
	m.runtime.ScreenW, m.runtime.ScreenH = width, max(height-1, 1)
	m.screen.Resize(m.runtime.ScreenW, m.runtime.ScreenH)
	m.help.Width = width
	m.progress.Width = max(min(width-16, 60), 10)
	m.history.SetSize(width, height)
}

// handleKey processes keyboard input.
func (m App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.view {
	case ViewGame:
		if key.Matches(msg, m.keys.Back) {
			m.leaveBreakView()
			return m, nil
		}
		m.latch.Press(m.keys.GameAction(msg))
		return m, nil

	case ViewBreathe:
		if key.Matches(msg, m.keys.Back) {
			m.leaveBreakView()
		}
		return m, nil

	case ViewHistory:
		if key.Matches(msg, m.keys.Back) {
			m.view = ViewTimer
			return m, nil
		}
		var cmd tea.Cmd
		m.history, cmd = m.history.Update(msg, m.keys)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Toggle):
		m.timer.Toggle()
		m.notice = ""
	case key.Matches(msg, m.keys.Skip):
		m.recordPhase(m.timer.Skip())
	case key.Matches(msg, m.keys.Play):
		m.enterGame()
	case key.Matches(msg, m.keys.Breathe):
		m.guide = breathe.New(m.guide.Pattern())
		m.view = ViewBreathe
	case key.Matches(msg, m.keys.History):
		m.history.Reload()
		m.view = ViewHistory
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *App) enterGame() {
	switch {
	case m.game == nil:
		m.notice = "The game is unavailable: no playable level."
	case !m.opts.FreePlay && !m.timer.Phase().IsBreak():
		m.notice = "Games unlock during breaks. Stay focused!"
	default:
		if m.game.State().GameOver {
			m.game.Reset(m.runtime)
		}
		m.latch.Release()
		m.view = ViewGame
	}
}

func (m *App) leaveBreakView() {
	m.latch.Release()
	m.view = ViewTimer
}

// handleTick advances the timer and the active view by one tick.
func (m App) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	var dt time.Duration
	if !m.lastTick.IsZero() {
		dt = min(max(now.Sub(m.lastTick), 0), maxTickGap)
	}
	m.lastTick = now

	for _, ev := range m.timer.Advance(dt) {
		m.recordPhase(ev)
	}

	switch m.view {
	case ViewGame:
		m.stepGame()
	case ViewBreathe:
		m.guide.Update(dt)
	}

	return m, tickCmd(m.opts.TickRate)
}

func (m *App) stepGame() {
	m.game.SetStatus(fmt.Sprintf("%s %s", m.timer.Phase(), timer.FormatRemaining(m.timer.Remaining())))

	result := m.game.Step(m.latch.Frame())
	m.latch.Tick()

	state := result.State
	if !state.GameOver {
		m.scoreSaved = false
		return
	}
	if !m.scoreSaved && state.Score > 0 && m.opts.Store != nil {
		//nolint:errcheck // Best-effort save, game continues regardless
		m.opts.Store.SaveScore(m.game.ID(), state.Score)
	}
	m.scoreSaved = true
}

// recordPhase persists a finished phase and reacts to the transition.
func (m *App) recordPhase(ev timer.Event) {
	if m.opts.Store != nil {
		//nolint:errcheck // Best-effort save, the timer continues regardless
		m.opts.Store.SaveSession(storage.Session{
			Phase:       ev.Phase.String(),
			PlannedSecs: int(ev.Planned / time.Second),
			Completed:   ev.Kind == timer.PhaseCompleted,
		})
	}

	switch {
	case ev.Next.IsBreak():
		m.notice = fmt.Sprintf("Time for a %s! Press g to play or b to breathe.", ev.Next)
		if m.game == nil {
			m.notice = fmt.Sprintf("Time for a %s! Press b to breathe.", ev.Next)
		}
	default:
		m.notice = "Break's over. Back to focus."
		if !m.opts.FreePlay && (m.view == ViewGame || m.view == ViewBreathe) {
			m.leaveBreakView()
		}
	}
}

func (m *App) handleReload(msg PhysicsReloadMsg) {
	if m.game == nil {
		return
	}
	if msg.Err != nil {
		m.notice = "Config reload failed: " + msg.Err.Error()
		return
	}
	if err := m.game.Reconfigure(msg.Physics, nil); err != nil {
		m.notice = "Config rejected: " + err.Error()
		return
	}
	m.notice = "Physics reloaded; applies on the next restart."
}

// View renders the current state to a string for display.
func (m App) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case ViewGame:
		m.game.Render(m.screen)
		return RenderScreen(m.screen) + "\n" + dimStyle.Render(m.help.ShortHelpView(m.keys.gameHelp().short))
	case ViewBreathe:
		return m.breatheView()
	case ViewHistory:
		return m.history.View() + "\n" + dimStyle.Render(m.help.View(m.keys.historyHelp()))
	default:
		return m.timerView()
	}
}

func (m App) timerView() string {
	phase := m.timer.Phase()
	phaseStyle := focusStyle
	if phase.IsBreak() {
		phaseStyle = breakStyle
	}

	status := "paused"
	if m.timer.Running() {
		status = "running"
	}
	d := m.timer.Durations()
	sessions := fmt.Sprintf("%d focus sessions done · long break every %d", m.timer.CompletedFocus(), d.LongBreakEvery)

	lines := []string{
		titleStyle.Render("FOCUSFLOW"),
		"",
		phaseStyle.Render(strings.ToUpper(phase.String())),
		"",
		lipgloss.NewStyle().Bold(true).Render(timer.FormatRemaining(m.timer.Remaining())) + dimStyle.Render("  "+status),
		"",
		m.progress.ViewAs(m.timer.Progress()),
		"",
		dimStyle.Render(sessions),
	}
	if m.notice != "" {
		lines = append(lines, "", noticeStyle.Render(m.notice))
	}

	panel := panelStyle.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
	body := lipgloss.Place(m.width, max(m.height-2, 1), lipgloss.Center, lipgloss.Center, panel)
	return body + "\n" + centerText(dimStyle.Render(m.help.View(m.keys.timerHelp())), m.width)
}

// breathing box bounds, in cells
const (
	minBreathW = 4
	maxBreathW = 40
)

func (m App) breatheView() string {
	f := m.guide.Frame()

	w := minBreathW + int(f.Scale*float64(maxBreathW-minBreathW))
	h := max(w/4, 1)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("6")).
		Width(w).
		Height(h).
		Render("")

	secs := int((f.Remaining + time.Second - 1) / time.Second)
	lines := []string{
		breakStyle.Render(f.Phase.String()),
		dimStyle.Render(fmt.Sprintf("%ds", secs)),
		"",
		lipgloss.PlaceHorizontal(maxBreathW+2, lipgloss.Center, box),
		"",
		dimStyle.Render(fmt.Sprintf("%s breathing · %d breaths · %s %s left",
			m.guide.Pattern().Name, f.Cycle, m.timer.Phase(), timer.FormatRemaining(m.timer.Remaining()))),
	}

	body := lipgloss.Place(m.width, max(m.height-1, 1), lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, lines...))
	return body + "\n" + centerText(dimStyle.Render(m.help.View(m.keys.breatheHelp())), m.width)
}

// CurrentView returns the active view.
func (m App) CurrentView() View {
	return m.view
}

// Timer exposes the timer, for hosts that report on exit.
func (m App) Timer() *timer.Timer {
	return m.timer
}

// Run starts the Bubble Tea program with the given options.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewApp(opts),
		tea.WithAltScreen(), // Use alternate screen buffer
	)
	_, err := p.Run()
	return err
}
