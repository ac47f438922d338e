package actions

import (
	"context"
	"errors"
	"testing"
	"time"

	config "github.com/inference-gateway/envkeys/config"
	desktop "github.com/inference-gateway/envkeys/internal/desktop"
	domain "github.com/inference-gateway/envkeys/internal/domain"
	domainfakes "github.com/inference-gateway/envkeys/internal/domain/domainfakes"
	environment "github.com/inference-gateway/envkeys/internal/environment"
	logger "github.com/inference-gateway/envkeys/internal/logger"
	manager "github.com/inference-gateway/envkeys/manager"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
	zap "go.uber.org/zap"
)

type recordingClipboard struct {
	text string
	err  error
}

func (c *recordingClipboard) WriteText(text string) error {
	c.text = text
	return c.err
}

type recordingKeyboard struct {
	typed []string
	sent  []string
	err   error
}

func (k *recordingKeyboard) TypeText(text string) error {
	k.typed = append(k.typed, text)
	return k.err
}

func (k *recordingKeyboard) SendCombo(token string) error {
	k.sent = append(k.sent, token)
	return k.err
}

func TestBuild_Notify(t *testing.T) {
	tests := []struct {
		name string
		hk   config.HotkeyConfig
		want string
	}{
		{name: "Message", hk: config.HotkeyConfig{Keys: "Ctrl+K", Action: config.ActionNotify, Message: "hello", Description: "desc"}, want: "hello"},
		{name: "Falls back to description", hk: config.HotkeyConfig{Keys: "Ctrl+K", Action: config.ActionNotify, Description: "desc"}, want: "desc"},
		{name: "Falls back to keys", hk: config.HotkeyConfig{Keys: "Ctrl+K", Action: config.ActionNotify}, want: "Ctrl+K"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier := &domainfakes.FakeNotifier{}
			builder := NewBuilder(WithNotifier(notifier), WithLogger(zap.NewNop()))

			action, err := builder.Build(tt.hk)
			require.NoError(t, err)
			require.NoError(t, action())

			require.Equal(t, 1, notifier.ShowCallCount())
			assert.Equal(t, tt.want, notifier.ShowArgsForCall(0))
		})
	}
}

func TestBuild_Activate(t *testing.T) {
	registry := environment.NewRegistry(nil, zap.NewNop())
	require.NoError(t, registry.Create("coding", "cx"))

	builder := NewBuilder(WithActivator(registry), WithLogger(zap.NewNop()))

	action, err := builder.Build(config.HotkeyConfig{Keys: "F2", Action: config.ActionActivate, Target: "coding"})
	require.NoError(t, err)
	require.NoError(t, action())

	active, ok := registry.Active()
	require.True(t, ok)
	assert.Equal(t, "coding", active)

	action, err = builder.Build(config.HotkeyConfig{Keys: "F3", Action: config.ActionActivate, Target: "missing"})
	require.NoError(t, err)
	assert.ErrorIs(t, action(), domain.ErrUnknownEnvironment)

	_, err = builder.Build(config.HotkeyConfig{Keys: "F3", Action: config.ActionActivate})
	assert.Error(t, err)
}

func TestBuild_Exec(t *testing.T) {
	var gotName string
	var gotArgs []string
	var gotDeadline time.Time

	runner := func(ctx context.Context, name string, args ...string) ([]byte, error) {
		gotName = name
		gotArgs = args
		gotDeadline, _ = ctx.Deadline()
		if name == "false" {
			return []byte("  boom \n"), errors.New("exit status 1")
		}
		return []byte("ok"), nil
	}

	notifier := &domainfakes.FakeNotifier{}
	log, logs := logger.TestLogger()
	builder := NewBuilder(WithCommandRunner(runner), WithNotifier(notifier), WithLogger(log))

	command := []string{"echo", "hello", "world"}
	action, err := builder.Build(config.HotkeyConfig{Keys: "F5", Action: config.ActionExec, Command: command, Timeout: time.Second})
	require.NoError(t, err)

	command[0] = "mutated"
	start := time.Now()
	require.NoError(t, action())
	builder.Wait()

	assert.Equal(t, "echo", gotName)
	assert.Equal(t, []string{"hello", "world"}, gotArgs)
	assert.WithinDuration(t, start.Add(time.Second), gotDeadline, 500*time.Millisecond)
	assert.Equal(t, 0, notifier.ShowCallCount())

	action, err = builder.Build(config.HotkeyConfig{Keys: "F6", Action: config.ActionExec, Command: []string{"false"}})
	require.NoError(t, err)

	start = time.Now()
	require.NoError(t, action())
	builder.Wait()

	assert.WithinDuration(t, start.Add(DefaultExecTimeout), gotDeadline, time.Second)
	require.Equal(t, 1, notifier.ShowCallCount())
	assert.Contains(t, notifier.ShowArgsForCall(0), "boom")
	assert.Equal(t, 1, logs.FilterMessage("exec action failed").Len())

	_, err = builder.Build(config.HotkeyConfig{Keys: "F7", Action: config.ActionExec})
	assert.Error(t, err)
}

func TestBuild_ExecDoesNotBlockDispatch(t *testing.T) {
	release := make(chan struct{})
	finished := make(chan struct{})
	runner := func(ctx context.Context, name string, args ...string) ([]byte, error) {
		defer close(finished)
		select {
		case <-release:
		case <-ctx.Done():
		}
		return nil, nil
	}

	mgr := manager.New(manager.WithLogger(zap.NewNop()))
	defer mgr.Destroy()

	builder := NewBuilder(WithCommandRunner(runner), WithActivator(mgr.Registry()), WithLogger(zap.NewNop()))
	cfg := &config.Config{
		InitialEnvironment: "build",
		Environments: []config.EnvironmentConfig{{
			Name:    "build",
			Tag:     "bd",
			Hotkeys: []config.HotkeyConfig{{Keys: "ctrl+r", Action: config.ActionExec, Command: []string{"make"}}},
		}},
	}
	require.NoError(t, LoadEnvironments(mgr.Registry(), cfg, builder))
	require.True(t, mgr.SetActiveEnvironmentByName("build"))

	ev := &domain.KeyPress{CtrlKey: true, Name: "r"}
	start := time.Now()
	mgr.HandleKey(ev)
	assert.Less(t, time.Since(start), 100*time.Millisecond)
	assert.True(t, ev.DefaultPrevented())

	select {
	case <-finished:
		t.Fatal("command finished before it was released")
	default:
	}

	close(release)
	builder.Wait()
}

func TestBuilder_CloseCancelsRunningCommands(t *testing.T) {
	started := make(chan struct{})
	runner := func(ctx context.Context, name string, args ...string) ([]byte, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	}

	builder := NewBuilder(WithCommandRunner(runner), WithLogger(zap.NewNop()))
	action, err := builder.Build(config.HotkeyConfig{Keys: "F5", Action: config.ActionExec, Command: []string{"sleep", "60"}})
	require.NoError(t, err)
	require.NoError(t, action())

	<-started
	builder.Close()

	assert.ErrorIs(t, action(), context.Canceled)
}

func TestBuild_ClipboardAndType(t *testing.T) {
	notifier := &domainfakes.FakeNotifier{}
	clip := &recordingClipboard{}
	keyboard := &recordingKeyboard{}

	builder := NewBuilder(
		WithNotifier(notifier),
		WithClipboard(clip),
		WithKeyboard(keyboard),
		WithLogger(zap.NewNop()),
	)

	copyAction, err := builder.Build(config.HotkeyConfig{Keys: "Ctrl+Shift+C", Action: config.ActionClipboard, Text: "snippet"})
	require.NoError(t, err)
	require.NoError(t, copyAction())
	assert.Equal(t, "snippet", clip.text)
	assert.Equal(t, 1, notifier.ShowCallCount())

	typeAction, err := builder.Build(config.HotkeyConfig{Keys: "Ctrl+Shift+T", Action: config.ActionType, Text: "signature"})
	require.NoError(t, err)
	require.NoError(t, typeAction())
	assert.Equal(t, []string{"signature"}, keyboard.typed)

	clip.err = desktop.ErrUnavailable
	assert.ErrorIs(t, copyAction(), desktop.ErrUnavailable)
}

func TestBuild_Send(t *testing.T) {
	keyboard := &recordingKeyboard{}
	builder := NewBuilder(WithKeyboard(keyboard), WithLogger(zap.NewNop()))

	action, err := builder.Build(config.HotkeyConfig{Keys: "F2", Action: config.ActionSend, Combo: "shift+ctrl+t"})
	require.NoError(t, err)
	require.NoError(t, action())
	assert.Equal(t, []string{"Control+Shift+T"}, keyboard.sent)

	keyboard.err = desktop.ErrUnavailable
	assert.ErrorIs(t, action(), desktop.ErrUnavailable)

	_, err = builder.Build(config.HotkeyConfig{Keys: "F3", Action: config.ActionSend, Combo: "ctrl+a+b"})
	assert.ErrorIs(t, err, domain.ErrInvalidCombination)
}

func TestBuild_Quit(t *testing.T) {
	action, err := NewBuilder(WithLogger(zap.NewNop())).Build(config.HotkeyConfig{Keys: "Ctrl+Q", Action: config.ActionQuit})
	require.NoError(t, err)
	assert.ErrorIs(t, action(), ErrQuitUnavailable)

	quit := 0
	action, err = NewBuilder(WithQuit(func() { quit++ }), WithLogger(zap.NewNop())).Build(config.HotkeyConfig{Keys: "Ctrl+Q", Action: config.ActionQuit})
	require.NoError(t, err)
	require.NoError(t, action())
	assert.Equal(t, 1, quit)
}

func TestBuild_UnknownAction(t *testing.T) {
	_, err := NewBuilder(WithLogger(zap.NewNop())).Build(config.HotkeyConfig{Keys: "F1", Action: "launch"})
	assert.Error(t, err)
}

func TestLoadEnvironments(t *testing.T) {
	cfg := &config.Config{
		Environments: []config.EnvironmentConfig{
			{
				Name: "gaming",
				Tag:  "gx",
				Hotkeys: []config.HotkeyConfig{
					{Keys: "Ctrl+K", Action: config.ActionNotify, Message: "gaming"},
					{Keys: "Shift", Action: config.ActionNotify, Message: "modifier only"},
				},
			},
			{Name: "coding", Tag: "gx"},
			{
				Name: "writing",
				Tag:  "wr",
				Hotkeys: []config.HotkeyConfig{
					{Keys: "F1", Action: config.ActionActivate, Target: "gaming"},
					{Keys: "F2", Action: "launch"},
				},
			},
		},
	}

	registry := environment.NewRegistry(nil, zap.NewNop())
	err := LoadEnvironments(registry, cfg, NewBuilder(WithActivator(registry), WithLogger(zap.NewNop())))
	require.Error(t, err)

	assert.ErrorIs(t, err, domain.ErrInvalidCombination)
	assert.ErrorIs(t, err, domain.ErrDuplicateTag)
	assert.Contains(t, err.Error(), "launch")

	assert.Equal(t, 2, registry.Len())

	gaming, ok := registry.Get("gaming")
	require.True(t, ok)
	require.Len(t, gaming.Shortcuts, 1)
	assert.Equal(t, "Control+K", gaming.Shortcuts[0].Token)

	writing, ok := registry.Get("writing")
	require.True(t, ok)
	require.Len(t, writing.Shortcuts, 1)

	require.NoError(t, writing.Shortcuts[0].Action())
	active, _ := registry.Active()
	assert.Equal(t, "gaming", active)
}
