// Package tui implements the preview mode: a small Bubbletea program that
// renders the live frame cycle in the terminal, so the schedule and row
// formatting can be checked without display hardware on the serial port.
package tui

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"

	"gitlab.com/tinyland/lab/lcd-pulse/display"
	"gitlab.com/tinyland/lab/lcd-pulse/sched"
)

// tickMsg advances the preview to the next schedule entry.
type tickMsg time.Time

// keyMap defines the preview key bindings.
type keyMap struct {
	Quit  key.Binding
	Pause key.Binding
	Next  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Pause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "pause"),
		),
		Next: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next frame"),
		),
	}
}

var (
	screenStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().Bold(true)

	helpStyle = lipgloss.NewStyle().Faint(true)
)

// Model is the Bubbletea model for preview mode. It walks the same
// schedule entries the daemon would transmit, building each frame on its
// dwell cadence.
type Model struct {
	entries []sched.Entry
	keys    keyMap

	index  int
	frame  display.Frame
	paused bool
	width  int
}

// New creates a preview Model over the given schedule. The entry list must
// not be empty (config validation guarantees this for the daemon path).
func New(entries []sched.Entry) Model {
	m := Model{
		entries: entries,
		keys:    defaultKeyMap(),
		width:   detectTerminalWidth(),
	}
	m.frame = entries[0].Builder.Build()
	return m
}

// Init implements tea.Model: schedule the first dwell tick.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

// tick returns a command that fires after the current entry's dwell.
func (m Model) tick() tea.Cmd {
	return tea.Tick(m.entries[m.index].Dwell, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// advance moves to the next schedule entry, wrapping, and rebuilds.
func (m Model) advance() Model {
	m.index = (m.index + 1) % len(m.entries)
	m.frame = m.entries[m.index].Builder.Build()
	return m
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
			if !m.paused {
				return m, m.tick()
			}
			return m, nil
		case key.Matches(msg, m.keys.Next):
			m = m.advance()
			if m.paused {
				return m, nil
			}
			return m, m.tick()
		}
		return m, nil

	case tickMsg:
		if m.paused {
			return m, nil
		}
		m = m.advance()
		return m, m.tick()
	}

	return m, nil
}

// View implements tea.Model: the current 16x2 frame in a bordered box with
// the schedule position above and key help below.
func (m Model) View() string {
	entry := m.entries[m.index]

	title := fmt.Sprintf("%s  (%d/%d)", entry.Builder.Name(), m.index+1, len(m.entries))
	if m.paused {
		title += "  [paused]"
	}

	screen := screenStyle.Render(m.frame.Row1 + "\n" + m.frame.Row2)

	help := fmt.Sprintf("%s · %s · %s",
		m.keys.Pause.Help().Key+" "+m.keys.Pause.Help().Desc,
		m.keys.Next.Help().Key+" "+m.keys.Next.Help().Desc,
		m.keys.Quit.Help().Key+" "+m.keys.Quit.Help().Desc,
	)

	content := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(title),
		screen,
		helpStyle.Render(help),
	)

	if m.width > 0 {
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, content)
	}
	return content
}

// detectTerminalWidth returns the terminal width before the first
// WindowSizeMsg arrives. It tries TTY detection, then the COLUMNS
// environment variable, then an 80 column default.
func detectTerminalWidth() int {
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	if cols := os.Getenv("COLUMNS"); cols != "" {
		if w, err := strconv.Atoi(cols); err == nil && w > 0 {
			return w
		}
	}
	return 80
}

// Run starts the preview program on the terminal.
func Run(entries []sched.Entry) error {
	if len(entries) == 0 {
		return fmt.Errorf("tui: no schedule entries to preview")
	}
	p := tea.NewProgram(New(entries), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
