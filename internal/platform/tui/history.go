package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/focusflow/internal/games/platformer"
	"github.com/vovakirdan/focusflow/internal/storage"
)

// History layout constants
const (
	maxHistoryRows = 100
	historyChrome  = 10 // Rows used by title, stats, tabs and help
)

type historyTab int

const (
	tabSessions historyTab = iota
	tabScores
)

func (t historyTab) String() string {
	if t == tabScores {
		return "High scores"
	}
	return "Sessions"
}

// HistoryModel shows recent focus sessions and platformer high scores.
type HistoryModel struct {
	store    *storage.Store
	tab      historyTab
	sessions []storage.Session
	scores   []storage.ScoreEntry
	stats    storage.FocusStats
	err      error
	table    table.Model
	width    int
	height   int
}

// NewHistoryModel creates a history view and loads its data.
func NewHistoryModel(store *storage.Store, width, height int) HistoryModel {
	m := HistoryModel{
		store:  store,
		width:  width,
		height: height,
	}
	m.Reload()
	return m
}

// Reload re-reads sessions, scores and stats from the store.
func (m *HistoryModel) Reload() {
	m.err = nil
	if m.store != nil {
		if m.sessions, m.err = m.store.RecentSessions(maxHistoryRows); m.err == nil {
			if m.scores, m.err = m.store.TopScores(platformer.GameID, maxHistoryRows); m.err == nil {
				m.stats, m.err = m.store.FocusStats(storage.StartOfDay(time.Now()))
			}
		}
	}
	m.table = m.createTable()
}

// SetSize adapts the table to a new terminal size.
func (m *HistoryModel) SetSize(width, height int) {
	m.width, m.height = width, height
	m.table = m.createTable()
}

// createTable creates a table for the active tab.
func (m *HistoryModel) createTable() table.Model {
	var (
		columns []table.Column
		rows    []table.Row
	)

	switch m.tab {
	case tabScores:
		columns = []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Score", Width: 10},
			{Title: "Date", Width: 18},
		}
		for i, s := range m.scores {
			rows = append(rows, table.Row{
				fmt.Sprintf("#%d", i+1),
				fmt.Sprintf("%d", s.Score),
				s.CreatedAt.Local().Format("Jan 02 15:04"),
			})
		}
	default:
		columns = []table.Column{
			{Title: "When", Width: 14},
			{Title: "Phase", Width: 12},
			{Title: "Length", Width: 8},
			{Title: "Result", Width: 10},
		}
		for _, s := range m.sessions {
			result := "done"
			if !s.Completed {
				result = "skipped"
			}
			rows = append(rows, table.Row{
				s.CreatedAt.Local().Format("Jan 02 15:04"),
				s.Phase,
				fmt.Sprintf("%dm", s.PlannedSecs/60),
				result,
			})
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-historyChrome, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// Update handles keys for the history view.
func (m HistoryModel) Update(msg tea.Msg, keys KeyMap) (HistoryModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, keys.NextTab) {
		m.tab = (m.tab + 1) % 2
		m.table = m.createTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history view without the help bar.
func (m HistoryModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(centerText("HISTORY", m.width)))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("Today: %d focus sessions   All time: %d (%d min)   Skipped: %d",
		m.stats.Today, m.stats.Completed, m.stats.TotalMinutes, m.stats.Skipped)
	b.WriteString(centerText(dimStyle.Render(stats), m.width))
	b.WriteString("\n\n")

	activeTab := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)
	tabs := make([]string, 0, 2)
	for _, t := range []historyTab{tabSessions, tabScores} {
		if t == m.tab {
			tabs = append(tabs, activeTab.Render(t.String()))
		} else {
			tabs = append(tabs, dimStyle.Render(" "+t.String()+" "))
		}
	}
	b.WriteString(centerText(strings.Join(tabs, " "), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(tableStyle.Render(m.tableContent()), m.width))

	return b.String()
}

// tableContent renders the table or an empty message.
func (m HistoryModel) tableContent() string {
	empty := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return empty.Render("History is unavailable: no database.")
	case m.err != nil:
		return empty.Render("Could not load history:\n" + m.err.Error())
	case m.tab == tabSessions && len(m.sessions) == 0:
		return empty.Render("No sessions recorded yet.\nFinish a focus session to start your history!")
	case m.tab == tabScores && len(m.scores) == 0:
		return empty.Render("No scores recorded yet.\nPlay a break to set a high score!")
	}
	return m.table.View()
}
