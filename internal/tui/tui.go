// Package tui is a Bubble Tea front-end for the round controller. It renders
// the same text as the console, with a scrolling log and an input line.
package tui

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// logMsg appends text to the game log.
type logMsg struct{ text string }

// promptMsg enables the input line for one answer.
type promptMsg struct{}

// farewellMsg carries the final session summary.
type farewellMsg struct{ text string }

// Model is the Bubble Tea model. It also serves as the controller's
// round.LineReader.
type Model struct {
	title  string
	logger *log.Logger

	logViewport viewport.Model
	moveInput   textinput.Model

	gameLog  []string
	lines    chan string
	closing  sync.Once
	closed   bool
	awaiting bool
	quitting bool
	farewell string

	width  int
	height int
}

// NewModel creates a model showing title in its header.
func NewModel(title string, logger *log.Logger) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "1..N, a move name, ? for help, 0 to exit"
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 60
	ti.PromptStyle = PromptStyle
	ti.TextStyle = InputTextStyle
	ti.Prompt = "> "

	return &Model{
		title:       title,
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
		moveInput:   ti,
		lines:       make(chan string, 1),
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case logMsg:
		m.addLogEntry(msg.text)
	case promptMsg:
		m.awaiting = true
	case farewellMsg:
		m.farewell = msg.text
		m.addLogEntry(msg.text)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			m.closeInput()
			return m, tea.Quit
		case tea.KeyEnter:
			m.submit()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.moveInput, cmd = m.moveInput.Update(msg)
	cmds = append(cmds, cmd)
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit hands the input line to the controller, if it is waiting for one.
func (m *Model) submit() {
	if !m.awaiting || m.closed {
		return
	}
	line := strings.TrimSpace(m.moveInput.Value())
	m.moveInput.SetValue("")
	m.awaiting = false
	m.addLogEntry("> " + line)
	m.logger.Debug("Submitted line", "line", line)
	m.lines <- line
}

// View renders the TUI.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := HeaderStyle.Render(m.title)
	logPane := LogPaneStyle.Width(m.logViewport.Width).Render(m.logViewport.View())

	help := "Enter to submit • ↑↓ scroll • Esc to quit"
	if !m.awaiting {
		help = "Waiting for the next round... • Esc to quit"
	}
	inputPane := InputPaneStyle.Width(m.logViewport.Width).Render(m.moveInput.View())

	return lipgloss.JoinVertical(lipgloss.Left, header, logPane, inputPane, HelpStyle.Render(help))
}

func (m *Model) resize() {
	// header, help line and two bordered panes
	width := max(m.width-2, 1)
	height := max(m.height-1-1-2-3, 1)
	m.logViewport.Width = width
	m.logViewport.Height = height
	m.moveInput.Width = max(width-4, 1)
	m.logViewport.GotoBottom()
}

func (m *Model) addLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

func (m *Model) closeInput() {
	m.closing.Do(func() {
		m.closed = true
		close(m.lines)
	})
}

// ReadLine waits for the user to submit a line. It returns io.EOF once the
// TUI has been closed.
func (m *Model) ReadLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-m.lines:
		if !ok {
			return "", io.EOF
		}
		return line, nil
	}
}

// Log returns the entries shown so far.
func (m *Model) Log() []string {
	return append([]string(nil), m.gameLog...)
}

// Farewell returns the summary shown when the game ended, if any.
func (m *Model) Farewell() string {
	return m.farewell
}
