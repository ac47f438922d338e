package ui

import (
	"fmt"
	"strings"
	"time"

	help "github.com/charmbracelet/bubbles/help"
	key "github.com/charmbracelet/bubbles/key"
	textinput "github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	lipgloss "github.com/charmbracelet/lipgloss"
	domain "github.com/inference-gateway/envkeys/internal/domain"
	teainput "github.com/inference-gateway/envkeys/internal/input/teainput"
	styles "github.com/inference-gateway/envkeys/internal/ui/styles"
)

type tickMsg time.Time

type quitMsg struct{}

// Model is the bubbletea view of an envkeys session. Every key press is fed
// to source before the model handles it; presses claimed by a hotkey stop
// there.
type Model struct {
	session *Session
	source  *teainput.Source
	keys    KeyMap
	styles  styles.Styles

	input textinput.Model
	help  help.Model
	width int
}

// NewModel creates a model rendering session and feeding source
func NewModel(session *Session, source *teainput.Source) Model {
	input := textinput.New()
	input.Placeholder = "type here without triggering tags"
	input.Prompt = "> "
	input.CharLimit = 256

	return Model{
		session: session,
		source:  source,
		keys:    DefaultKeyMap(),
		styles:  styles.New(),
		input:   input,
		help:    help.New(),
		width:   80,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tick()}
	if m.session.Quitter != nil {
		cmds = append(cmds, waitForQuit(m.session.Quitter))
	}
	return tea.Batch(cmds...)
}

func tick() tea.Cmd {
	return tea.Tick(RefreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func waitForQuit(q *Quitter) tea.Cmd {
	return func() tea.Msg {
		<-q.Done()
		return quitMsg{}
	}
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-4, 10)
		return m, nil

	case tickMsg:
		return m, tick()

	case quitMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.input.Focused() {
		switch {
		case key.Matches(msg, m.keys.Blur):
			m.input.Blur()
			return m, nil
		case key.Matches(msg, m.keys.Submit):
			m.input.Reset()
			return m, nil
		}

		m.source.Feed(msg, domain.SurfaceTextEntry)
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	if press := m.source.Feed(msg, domain.SurfaceDocument); press != nil && press.DefaultPrevented() {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Focus):
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// View implements tea.Model
func (m Model) View() string {
	snap := m.session.Snapshot()
	var b strings.Builder

	b.WriteString(m.styles.Header.Render("envkeys"))
	b.WriteString("\n")

	var envs []string
	if len(snap.Environments) == 0 {
		envs = append(envs, m.styles.Placeholder.Render("no environments configured"))
	}
	for _, env := range snap.Environments {
		envs = append(envs, m.renderEnvironment(env))
	}
	b.WriteString(m.styles.Border.Width(max(m.width-2, 20)).Render(strings.Join(envs, "\n")))
	b.WriteString("\n")

	if snap.Buffer != "" {
		b.WriteString(m.styles.Dim.Render("buffer ") + m.styles.Buffer.Render(snap.Buffer))
		b.WriteString("\n")
	}

	if toast := m.session.Toast; toast != nil {
		if text := toast.Render(m.width); text != "" {
			b.WriteString(m.styles.Toast.Render(text))
			b.WriteString("\n")
		}
	}

	for _, line := range snap.Activity {
		b.WriteString(m.styles.Dim.Render("  " + line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m Model) renderEnvironment(env domain.Environment) string {
	marker := styles.Circle
	name := m.styles.Inactive.Render(env.Name)
	if env.IsActive {
		marker = m.styles.Active.Render(styles.Bullet)
		name = m.styles.Active.Render(env.Name)
	}

	hotkeys := make([]string, 0, len(env.Shortcuts))
	for _, s := range env.Shortcuts {
		hotkeys = append(hotkeys, s.Token)
	}

	line := fmt.Sprintf("%s %s %s", marker, name, m.styles.Tag.Render("["+env.Tag+"]"))
	if len(hotkeys) > 0 {
		line = lipgloss.JoinHorizontal(lipgloss.Top, line, m.styles.Dim.Render("  "+strings.Join(hotkeys, ", ")))
	}
	return line
}
