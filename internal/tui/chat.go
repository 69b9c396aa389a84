// Package tui is the thin interactive loop over the interruption
// coordinator. It owns no task state: every line of input is handed to
// ProcessCommand and the result is echoed back.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rmagtoto/tala/internal/interrupt"
)

// maxTranscript caps how many lines the transcript keeps.
const maxTranscript = 200

// Model is the Bubble Tea model for the chat loop.
type Model struct {
	coord      *interrupt.Coordinator
	input      textinput.Model
	transcript []string
	width      int
	height     int
	quitting   bool
}

// Run starts the chat loop.
func Run(coord *interrupt.Coordinator) error {
	p := tea.NewProgram(NewModel(coord))
	_, err := p.Run()
	return err
}

// NewModel creates the initial chat model.
func NewModel(coord *interrupt.Coordinator) Model {
	ti := textinput.New()
	ti.Placeholder = "Tell me what to do... (sabihin mo lang)"
	ti.CharLimit = 256
	ti.Width = 60
	ti.Focus()

	return Model{
		coord: coord,
		input: ti,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			// Best-effort flush; the documents were persisted on every
			// mutation already.
			m.coord.Flush()
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit(), nil
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit dispatches the current input line to the coordinator.
func (m Model) submit() Model {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m
	}

	m.appendLine(promptStyle.Render("> " + text))
	out, err := m.coord.ProcessCommand(text)
	if err != nil {
		m.appendLine(errorStyle.Render("error: " + err.Error()))
	} else {
		for _, line := range strings.Split(out, "\n") {
			m.appendLine(line)
		}
	}

	m.input.Reset()
	return m
}

func (m *Model) appendLine(line string) {
	m.transcript = append(m.transcript, line)
	if len(m.transcript) > maxTranscript {
		m.transcript = m.transcript[len(m.transcript)-maxTranscript:]
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("tala") + "\n\n")

	visible := m.transcript
	if limit := m.height - 6; limit > 0 && len(visible) > limit {
		visible = visible[len(visible)-limit:]
	}
	for _, line := range visible {
		b.WriteString(line + "\n")
	}
	if len(visible) > 0 {
		b.WriteString("\n")
	}

	b.WriteString(statusBarStyle.Render(m.statusLine()) + "\n")
	b.WriteString(m.input.View() + "\n")
	b.WriteString(helpStyle.Render("enter: send • esc: quit"))
	return b.String()
}

func (m Model) statusLine() string {
	cur := "none"
	if c := m.coord.Current(); c != nil {
		cur = c.Description
	}
	return fmt.Sprintf("current: %s • interrupted: %d", cur, len(m.coord.Interrupted()))
}
