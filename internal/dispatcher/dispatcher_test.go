package dispatcher

import (
	"errors"
	"testing"
	"time"

	domain "github.com/inference-gateway/envkeys/internal/domain"
	domainfakes "github.com/inference-gateway/envkeys/internal/domain/domainfakes"
	environment "github.com/inference-gateway/envkeys/internal/environment"
	logger "github.com/inference-gateway/envkeys/internal/logger"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

type observedCall struct {
	environment string
	token       string
	err         error
}

type recordingObserver struct {
	calls []observedCall
}

func (o *recordingObserver) OnHotkeyInvoked(env string, shortcut domain.Shortcut, err error) {
	o.calls = append(o.calls, observedCall{environment: env, token: shortcut.Token, err: err})
}

func press(key string) *domain.KeyPress {
	return &domain.KeyPress{Name: key}
}

func typeText(d *Dispatcher, text string) {
	for _, r := range text {
		d.HandleKey(press(string(r)))
	}
}

func newTestDispatcher(t *testing.T, opts ...Option) (*Dispatcher, *environment.Registry, *domainfakes.FakeNotifier) {
	t.Helper()

	notifier := &domainfakes.FakeNotifier{}
	registry := environment.NewRegistry(notifier, nil)
	require.NoError(t, registry.Create("editing", "ed"))
	require.NoError(t, registry.Create("browsing", "br"))

	d := New(registry, opts...)
	t.Cleanup(d.Close)
	return d, registry, notifier
}

func TestDispatcher_HotkeyInvokesActionOnce(t *testing.T) {
	d, registry, _ := newTestDispatcher(t)

	calls := 0
	require.NoError(t, registry.AddShortcut("editing", "Control+K", func() error {
		calls++
		return nil
	}))
	require.NoError(t, registry.Activate("editing"))

	typeText(d, "b")
	require.Equal(t, "b", d.Buffer())

	ev := &domain.KeyPress{CtrlKey: true, Name: "k"}
	d.HandleKey(ev)

	assert.Equal(t, 1, calls)
	assert.True(t, ev.DefaultPrevented())
	assert.True(t, ev.PropagationStopped())
	assert.Equal(t, "b", d.Buffer(), "a matched hotkey leaves the buffer alone")
}

func TestDispatcher_FirstMatchingShortcutWins(t *testing.T) {
	d, registry, _ := newTestDispatcher(t)

	var fired []string
	require.NoError(t, registry.AddShortcut("editing", "ctrl+k", func() error {
		fired = append(fired, "first")
		return nil
	}))
	require.NoError(t, registry.AddShortcut("editing", "control+K", func() error {
		fired = append(fired, "second")
		return nil
	}))
	require.NoError(t, registry.Activate("editing"))

	d.HandleKey(&domain.KeyPress{CtrlKey: true, Name: "k"})

	assert.Equal(t, []string{"first"}, fired)
}

func TestDispatcher_InactiveEnvironmentShortcutsAreDormant(t *testing.T) {
	d, registry, _ := newTestDispatcher(t)

	calls := 0
	require.NoError(t, registry.AddShortcut("browsing", "ctrl+k", func() error {
		calls++
		return nil
	}))
	require.NoError(t, registry.Activate("editing"))

	ev := &domain.KeyPress{CtrlKey: true, Name: "k"}
	d.HandleKey(ev)

	assert.Equal(t, 0, calls)
	assert.False(t, ev.Handled())
	assert.Equal(t, "", d.Buffer(), "ctrl combinations never reach the buffer")
}

func TestDispatcher_NoActiveEnvironment(t *testing.T) {
	d, registry, _ := newTestDispatcher(t)

	calls := 0
	require.NoError(t, registry.AddShortcut("editing", "f1", func() error {
		calls++
		return nil
	}))

	d.HandleKey(press("F1"))
	assert.Equal(t, 0, calls)
}

func TestDispatcher_ActionErrorsAreContained(t *testing.T) {
	log, logs := logger.TestLogger()
	observer := &recordingObserver{}
	d, registry, _ := newTestDispatcher(t, WithLogger(log), WithObserver(observer))

	boom := errors.New("boom")
	require.NoError(t, registry.AddShortcut("editing", "ctrl+e", func() error { return boom }))
	require.NoError(t, registry.AddShortcut("editing", "ctrl+p", func() error { panic("kaboom") }))
	require.NoError(t, registry.Activate("editing"))

	errEvent := &domain.KeyPress{CtrlKey: true, Name: "e"}
	assert.NotPanics(t, func() { d.HandleKey(errEvent) })
	assert.True(t, errEvent.Handled(), "a failing hotkey still suppresses the event")

	panicEvent := &domain.KeyPress{CtrlKey: true, Name: "p"}
	assert.NotPanics(t, func() { d.HandleKey(panicEvent) })
	assert.True(t, panicEvent.Handled())

	require.Len(t, observer.calls, 2)
	assert.ErrorIs(t, observer.calls[0].err, boom)
	var panicErr *domain.HotkeyPanicError
	require.ErrorAs(t, observer.calls[1].err, &panicErr)
	assert.Equal(t, "kaboom", panicErr.Value)
	assert.Equal(t, "Control+P", panicErr.Token)

	assert.Equal(t, 2, logs.FilterMessage("hotkey action failed").Len())

	typeText(d, "br")
	name, _ := registry.Active()
	assert.Equal(t, "browsing", name, "the dispatcher stays usable after failures")
}

func TestDispatcher_TypingTagActivatesEnvironment(t *testing.T) {
	d, registry, notifier := newTestDispatcher(t)

	typeText(d, "e")
	assert.Equal(t, "e", d.Buffer())
	assert.True(t, d.Pending())

	typeText(d, "d")

	name, ok := registry.Active()
	require.True(t, ok)
	assert.Equal(t, "editing", name)
	assert.Equal(t, "", d.Buffer())
	assert.False(t, d.Pending())
	require.Equal(t, 1, notifier.ShowCallCount())
	assert.Equal(t, "Environment 'editing' activated.", notifier.ShowArgsForCall(0))
}

func TestDispatcher_TagsAreCaseSensitive(t *testing.T) {
	d, registry, _ := newTestDispatcher(t)

	d.HandleKey(&domain.KeyPress{ShiftKey: true, Name: "E"})
	d.HandleKey(press("d"))

	_, ok := registry.Active()
	assert.False(t, ok)
	assert.Equal(t, "Ed", d.Buffer())
}

func TestDispatcher_ShiftedCharactersAreBuffered(t *testing.T) {
	d, registry, _ := newTestDispatcher(t)
	require.NoError(t, registry.Create("upper", "UP"))

	d.HandleKey(&domain.KeyPress{ShiftKey: true, Name: "U"})
	d.HandleKey(&domain.KeyPress{ShiftKey: true, Name: "P"})

	name, _ := registry.Active()
	assert.Equal(t, "upper", name)
}

func TestDispatcher_ModifiedKeysAreDropped(t *testing.T) {
	tests := []struct {
		name     string
		event    *domain.KeyPress
		expected string
	}{
		{name: "Ctrl character", event: &domain.KeyPress{CtrlKey: true, Name: "x"}, expected: "b"},
		{name: "Alt character", event: &domain.KeyPress{AltKey: true, Name: "x"}, expected: "b"},
		{name: "Meta character", event: &domain.KeyPress{MetaKey: true, Name: "x"}, expected: "b"},
		{name: "Ctrl backspace", event: &domain.KeyPress{CtrlKey: true, Name: "Backspace"}, expected: "b"},
		{name: "Ctrl shift backspace", event: &domain.KeyPress{CtrlKey: true, ShiftKey: true, Name: "Backspace"}, expected: "b"},
		{name: "Ctrl shift character", event: &domain.KeyPress{CtrlKey: true, ShiftKey: true, Name: "X"}, expected: "bX"},
		{name: "Named key", event: press("Enter"), expected: "b"},
		{name: "Function key", event: press("F3"), expected: "b"},
		{name: "Bare modifier", event: &domain.KeyPress{ShiftKey: true, Name: "Shift"}, expected: "b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _, _ := newTestDispatcher(t)
			typeText(d, "b")

			d.HandleKey(tt.event)
			assert.Equal(t, tt.expected, d.Buffer())
		})
	}
}

func TestDispatcher_Backspace(t *testing.T) {
	d, registry, _ := newTestDispatcher(t)

	d.HandleKey(press("Backspace"))
	assert.Equal(t, "", d.Buffer(), "backspace on an empty buffer is a no-op")
	assert.False(t, d.Pending())

	typeText(d, "ex")
	d.HandleKey(press("Backspace"))
	assert.Equal(t, "e", d.Buffer())
	_, ok := registry.Active()
	assert.False(t, ok)

	typeText(d, "d")
	name, _ := registry.Active()
	assert.Equal(t, "editing", name)
}

func TestDispatcher_BackspaceCompletingTagActivates(t *testing.T) {
	d, registry, _ := newTestDispatcher(t)

	typeText(d, "gxz")
	require.NoError(t, registry.Create("gaming", "gx"))
	_, ok := registry.Active()
	require.False(t, ok)

	d.HandleKey(press("Backspace"))

	name, ok := registry.Active()
	require.True(t, ok)
	assert.Equal(t, "gaming", name)
	assert.Equal(t, "", d.Buffer())
}

func TestDispatcher_BackspaceToEmptyCancelsTimer(t *testing.T) {
	d, _, _ := newTestDispatcher(t)

	typeText(d, "x")
	require.True(t, d.Pending())

	d.HandleKey(press("Backspace"))
	assert.Equal(t, "", d.Buffer())
	assert.False(t, d.Pending())
}

func TestDispatcher_TextEntrySurfaceIsIgnored(t *testing.T) {
	d, registry, _ := newTestDispatcher(t)

	calls := 0
	require.NoError(t, registry.AddShortcut("editing", "ctrl+k", func() error {
		calls++
		return nil
	}))
	require.NoError(t, registry.Activate("editing"))

	hotkey := &domain.KeyPress{CtrlKey: true, Name: "k", Origin: domain.SurfaceTextEntry}
	d.HandleKey(hotkey)
	assert.Equal(t, 0, calls)
	assert.False(t, hotkey.Handled())

	for _, r := range "br" {
		d.HandleKey(&domain.KeyPress{Name: string(r), Origin: domain.SurfaceTextEntry})
	}
	assert.Equal(t, "", d.Buffer())
	name, _ := registry.Active()
	assert.Equal(t, "editing", name)
}

func TestDispatcher_IdleTimeoutClearsBuffer(t *testing.T) {
	d, registry, _ := newTestDispatcher(t, WithBufferTimeout(30*time.Millisecond))
	assert.Equal(t, 30*time.Millisecond, d.Timeout())

	typeText(d, "e")
	require.Equal(t, "e", d.Buffer())

	assert.Eventually(t, func() bool {
		return d.Buffer() == "" && !d.Pending()
	}, time.Second, 5*time.Millisecond)

	typeText(d, "br")
	name, _ := registry.Active()
	assert.Equal(t, "browsing", name, "a fresh sequence matches from scratch after expiry")
}

func TestDispatcher_KeystrokeRestartsIdleTimer(t *testing.T) {
	d, _, _ := newTestDispatcher(t, WithBufferTimeout(150*time.Millisecond))

	typeText(d, "x")
	time.Sleep(100 * time.Millisecond)
	typeText(d, "y")
	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, "xy", d.Buffer(), "the second keystroke restarted the idle period")

	assert.Eventually(t, func() bool {
		return d.Buffer() == ""
	}, time.Second, 5*time.Millisecond)
}

func TestDispatcher_ActivationResetsBuffer(t *testing.T) {
	d, registry, _ := newTestDispatcher(t)

	typeText(d, "zz")
	require.True(t, d.Pending())

	require.NoError(t, registry.Activate("browsing"))

	assert.Equal(t, "", d.Buffer())
	assert.False(t, d.Pending())
}

func TestDispatcher_TypingActiveTagClearsBuffer(t *testing.T) {
	d, registry, notifier := newTestDispatcher(t)
	require.NoError(t, registry.Activate("editing"))

	typeText(d, "ed")

	assert.Equal(t, "", d.Buffer())
	assert.False(t, d.Pending())
	assert.Equal(t, 1, notifier.ShowCallCount(), "re-activating the active environment is silent")
}

func TestDispatcher_ReentrantActivationFromAction(t *testing.T) {
	d, registry, _ := newTestDispatcher(t)

	require.NoError(t, registry.AddShortcut("editing", "ctrl+b", func() error {
		return registry.Activate("browsing")
	}))
	require.NoError(t, registry.AddShortcut("browsing", "ctrl+b", func() error {
		return registry.Activate("browsing")
	}))
	require.NoError(t, registry.Activate("editing"))

	typeText(d, "q")
	d.HandleKey(&domain.KeyPress{CtrlKey: true, Name: "b"})

	name, _ := registry.Active()
	assert.Equal(t, "browsing", name)
	assert.Equal(t, "", d.Buffer())

	d.HandleKey(&domain.KeyPress{CtrlKey: true, Name: "b"})
	name, _ = registry.Active()
	assert.Equal(t, "browsing", name)
}

func TestDispatcher_CloseStopsProcessing(t *testing.T) {
	d, registry, _ := newTestDispatcher(t, WithBufferTimeout(20*time.Millisecond))

	calls := 0
	require.NoError(t, registry.AddShortcut("editing", "ctrl+k", func() error {
		calls++
		return nil
	}))
	require.NoError(t, registry.Activate("editing"))

	typeText(d, "b")
	require.True(t, d.Pending())

	d.Close()
	d.Close()

	assert.False(t, d.Pending())
	assert.Equal(t, "", d.Buffer())

	d.HandleKey(&domain.KeyPress{CtrlKey: true, Name: "k"})
	typeText(d, "br")

	assert.Equal(t, 0, calls)
	assert.Equal(t, "", d.Buffer())
	name, _ := registry.Active()
	assert.Equal(t, "editing", name)
}

func TestDispatcher_NilEvent(t *testing.T) {
	d, _, _ := newTestDispatcher(t)
	assert.NotPanics(t, func() { d.HandleKey(nil) })
}

func TestTextBuffer(t *testing.T) {
	var b TextBuffer

	b.Pop()
	assert.Equal(t, 0, b.Len())

	b.Push("a")
	b.Push("é")
	b.Push("B")
	assert.Equal(t, "aéB", b.String())
	assert.Equal(t, 3, b.Len())

	b.Pop()
	assert.Equal(t, "aé", b.String())

	b.Reset()
	assert.Equal(t, "", b.String())
}
