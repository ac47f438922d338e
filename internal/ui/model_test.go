package ui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	domain "github.com/inference-gateway/envkeys/internal/domain"
	teainput "github.com/inference-gateway/envkeys/internal/input/teainput"
	notify "github.com/inference-gateway/envkeys/internal/notify"
	manager "github.com/inference-gateway/envkeys/manager"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
	zap "go.uber.org/zap"
)

func newTestSession(t *testing.T) (*manager.Manager, *Session, *teainput.Source) {
	t.Helper()

	toast := notify.NewToast(time.Minute)
	activity := NewActivity(3)
	m := manager.New(
		manager.WithNotifier(toast),
		manager.WithLogger(zap.NewNop()),
		manager.WithListener(activity),
		manager.WithObserver(activity),
	)
	t.Cleanup(m.Destroy)

	source := teainput.NewSource()
	require.NoError(t, m.Init(source))

	require.True(t, m.CreateEnvironment("gaming", "gx"))
	require.True(t, m.CreateEnvironment("coding", "cx"))

	session := &Session{
		Host:       m,
		Toast:      toast,
		Activity:   activity,
		Quitter:    NewQuitter(),
		ShowBuffer: true,
	}
	return m, session, source
}

func typeRunes(t *testing.T, model tea.Model, s string) tea.Model {
	t.Helper()
	for _, r := range s {
		model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return model
}

func TestModel_TypingTagActivatesEnvironment(t *testing.T) {
	m, session, source := newTestSession(t)
	model := tea.Model(NewModel(session, source))

	model = typeRunes(t, model, "g")
	assert.Equal(t, "g", m.Buffer())
	assert.Contains(t, model.View(), "buffer")

	typeRunes(t, model, "x")

	active, ok := m.GetCurrentEnvironmentName()
	require.True(t, ok)
	assert.Equal(t, "gaming", active)
	assert.Empty(t, m.Buffer())

	view := model.View()
	assert.Contains(t, view, "gaming")
	assert.Contains(t, view, "Environment 'gaming' activated.")
}

func TestModel_HotkeyClaimsKey(t *testing.T) {
	m, session, source := newTestSession(t)

	calls := 0
	require.True(t, m.AddHotkeyToEnvironment("coding", "Tab", func() error {
		calls++
		return nil
	}))
	require.True(t, m.SetActiveEnvironmentByName("coding"))

	model := tea.Model(NewModel(session, source))
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyTab})

	assert.Equal(t, 1, calls)
	assert.False(t, model.(Model).input.Focused(), "claimed keys do not reach the interface bindings")
}

func TestModel_PromptIsolatesTyping(t *testing.T) {
	m, session, source := newTestSession(t)
	model := tea.Model(NewModel(session, source))

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.True(t, model.(Model).input.Focused())

	model = typeRunes(t, model, "gx")

	_, ok := m.GetCurrentEnvironmentName()
	assert.False(t, ok)
	assert.Empty(t, m.Buffer())
	assert.Equal(t, "gx", model.(Model).input.Value())

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Empty(t, model.(Model).input.Value())

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, model.(Model).input.Focused())

	typeRunes(t, model, "cx")
	active, _ := m.GetCurrentEnvironmentName()
	assert.Equal(t, "coding", active)
}

func TestModel_Quit(t *testing.T) {
	_, session, source := newTestSession(t)
	model := tea.Model(NewModel(session, source))

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	_, cmd = model.Update(quitMsg{})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_WaitForQuit(t *testing.T) {
	q := NewQuitter()
	cmd := waitForQuit(q)

	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	q.Quit()
	q.Quit()

	select {
	case msg := <-done:
		assert.Equal(t, quitMsg{}, msg)
	case <-time.After(time.Second):
		t.Fatal("quit was not delivered")
	}
}

func TestModel_ToggleHelp(t *testing.T) {
	_, session, source := newTestSession(t)
	model := tea.Model(NewModel(session, source))

	assert.False(t, model.(Model).help.ShowAll)
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
	assert.True(t, model.(Model).help.ShowAll)
	assert.Contains(t, model.View(), "leave prompt")
}

func TestActivity(t *testing.T) {
	activity := NewActivity(2)
	activity.now = func() time.Time { return time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC) }

	activity.OnEnvironmentActivated("", "gaming")
	activity.OnEnvironmentActivated("gaming", "coding")
	activity.OnHotkeyInvoked("coding", domain.Shortcut{Token: "Control+K"}, errors.New("boom"))

	assert.Equal(t, []string{
		"15:04:05 switched gaming -> coding",
		"15:04:05 Control+K in coding failed: boom",
	}, activity.Lines())
}

func TestSnapshot_Lines(t *testing.T) {
	snap := Snapshot{
		Environments: []domain.Environment{
			{Name: "gaming", Tag: "gx", IsActive: true, Shortcuts: []domain.Shortcut{{Token: "F1"}}},
			{Name: "coding", Tag: "cx"},
		},
		Buffer:   "c",
		Toast:    "Environment 'gaming' activated.",
		Activity: []string{"activated gaming"},
	}

	assert.Equal(t, []string{
		"envkeys",
		"  ● gaming [gx] 1 hotkeys",
		"  ○ coding [cx] 0 hotkeys",
		"",
		"buffer: c",
		"Environment 'gaming' activated.",
		"  activated gaming",
	}, snap.Lines())

	assert.Contains(t, Snapshot{}.Lines(), "  no environments configured")
}
