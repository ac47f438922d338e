package ui

import (
	"context"
	"strings"
	"testing"
	"time"

	tcell "github.com/gdamore/tcell/v2"
	tcellinput "github.com/inference-gateway/envkeys/internal/input/tcellinput"
	manager "github.com/inference-gateway/envkeys/manager"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
	zap "go.uber.org/zap"
)

func screenText(screen tcell.SimulationScreen) string {
	cells, width, _ := screen.GetContents()
	var b strings.Builder
	for i, cell := range cells {
		if i > 0 && i%width == 0 {
			b.WriteString("\n")
		}
		if len(cell.Runes) == 0 {
			b.WriteString(" ")
			continue
		}
		b.WriteString(string(cell.Runes))
	}
	return b.String()
}

func newSimulationScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(60, 12)
	t.Cleanup(screen.Fini)
	return screen
}

func TestTcellView_Draw(t *testing.T) {
	m := manager.New(manager.WithLogger(zap.NewNop()))
	t.Cleanup(m.Destroy)
	require.True(t, m.CreateEnvironment("gaming", "gx"))
	require.True(t, m.SetActiveEnvironmentByName("gaming"))

	screen := newSimulationScreen(t)
	view := NewTcellView(screen, &Session{Host: m}, tcellinput.NewSource())
	view.Draw()

	text := screenText(screen)
	assert.Contains(t, text, "envkeys")
	assert.Contains(t, text, "● gaming [gx] 0 hotkeys")
	assert.Contains(t, text, "ctrl+c quit")
}

func TestTcellView_RunFeedsKeys(t *testing.T) {
	m := manager.New(manager.WithLogger(zap.NewNop()))
	t.Cleanup(m.Destroy)
	require.True(t, m.CreateEnvironment("coding", "cx"))

	source := tcellinput.NewSource()
	require.NoError(t, m.Init(source))

	screen := newSimulationScreen(t)
	view := NewTcellView(screen, &Session{Host: m, ShowBuffer: true}, source)

	done := make(chan error, 1)
	go func() { done <- view.Run(context.Background()) }()

	screen.InjectKey(tcell.KeyRune, 'c', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)

	assert.Eventually(t, func() bool {
		active, ok := m.GetCurrentEnvironmentName()
		return ok && active == "coding"
	}, time.Second, 10*time.Millisecond)

	screen.InjectKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("view did not stop on ctrl+c")
	}
}

func TestTcellView_RunStopsOnQuit(t *testing.T) {
	screen := newSimulationScreen(t)
	quitter := NewQuitter()
	view := NewTcellView(screen, &Session{Quitter: quitter}, tcellinput.NewSource())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- view.Run(ctx) }()

	quitter.Quit()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("view did not stop on quit")
	}
}
