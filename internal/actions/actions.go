// Package actions builds hotkey actions from configuration.
package actions

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"

	config "github.com/inference-gateway/envkeys/config"
	desktop "github.com/inference-gateway/envkeys/internal/desktop"
	domain "github.com/inference-gateway/envkeys/internal/domain"
	environment "github.com/inference-gateway/envkeys/internal/environment"
	keys "github.com/inference-gateway/envkeys/internal/keys"
	logger "github.com/inference-gateway/envkeys/internal/logger"
	zap "go.uber.org/zap"
)

// DefaultExecTimeout bounds exec actions that configure no timeout
const DefaultExecTimeout = 30 * time.Second

// ErrQuitUnavailable is returned by quit actions when no quit handler is set
var ErrQuitUnavailable = errors.New("quit is not available")

// Activator switches the active environment
type Activator interface {
	Activate(name string) error
}

// CommandRunner runs an external command and returns its combined output
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Builder turns hotkey configuration into actions
type Builder struct {
	notifier  domain.Notifier
	activator Activator
	clipboard desktop.Clipboard
	keyboard  desktop.Keyboard
	run       CommandRunner
	quit      func()
	log       *zap.Logger

	ctx     context.Context
	cancel  context.CancelFunc
	running sync.WaitGroup
}

// Option configures a Builder
type Option func(*Builder)

// WithNotifier sets where notify actions show their message
func WithNotifier(notifier domain.Notifier) Option {
	return func(b *Builder) { b.notifier = notifier }
}

// WithActivator sets what activate actions switch
func WithActivator(activator Activator) Option {
	return func(b *Builder) { b.activator = activator }
}

// WithClipboard replaces the system clipboard
func WithClipboard(c desktop.Clipboard) Option {
	return func(b *Builder) { b.clipboard = c }
}

// WithKeyboard replaces the system keyboard used by type and send actions
func WithKeyboard(k desktop.Keyboard) Option {
	return func(b *Builder) { b.keyboard = k }
}

// WithCommandRunner replaces os/exec for exec actions
func WithCommandRunner(run CommandRunner) Option {
	return func(b *Builder) { b.run = run }
}

// WithQuit sets the handler invoked by quit actions
func WithQuit(quit func()) Option {
	return func(b *Builder) { b.quit = quit }
}

// WithLogger sets the builder's logger
func WithLogger(log *zap.Logger) Option {
	return func(b *Builder) { b.log = log }
}

// NewBuilder creates a builder backed by the system clipboard and keyboard
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		clipboard: desktop.SystemClipboard(),
		keyboard:  desktop.SystemKeyboard(),
		run:       runCommand,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.log == nil {
		b.log = logger.L()
	}
	b.ctx, b.cancel = context.WithCancel(context.Background())
	return b
}

// Wait blocks until every started exec command has finished
func (b *Builder) Wait() {
	b.running.Wait()
}

// Close cancels running exec commands and waits for them to exit
func (b *Builder) Close() {
	b.cancel()
	b.running.Wait()
}

// Build returns the action configured by hk
func (b *Builder) Build(hk config.HotkeyConfig) (domain.Action, error) {
	switch hk.Action {
	case config.ActionNotify:
		return b.notify(hk), nil
	case config.ActionActivate:
		if hk.Target == "" {
			return nil, fmt.Errorf("activate action requires a target")
		}
		return b.activate(hk.Target), nil
	case config.ActionExec:
		if len(hk.Command) == 0 {
			return nil, fmt.Errorf("exec action requires a command")
		}
		return b.exec(hk.Command, hk.Timeout), nil
	case config.ActionClipboard:
		return func() error {
			if err := b.clipboard.WriteText(hk.Text); err != nil {
				return fmt.Errorf("failed to copy to clipboard: %w", err)
			}
			b.show("Copied to clipboard")
			return nil
		}, nil
	case config.ActionType:
		return func() error {
			if err := b.keyboard.TypeText(hk.Text); err != nil {
				return fmt.Errorf("failed to type text: %w", err)
			}
			return nil
		}, nil
	case config.ActionSend:
		token := keys.NormalizeSpec(hk.Combo)
		if token == "" {
			return nil, fmt.Errorf("%w: send combo %q", domain.ErrInvalidCombination, hk.Combo)
		}
		return func() error {
			if err := b.keyboard.SendCombo(token); err != nil {
				return fmt.Errorf("failed to send %s: %w", token, err)
			}
			return nil
		}, nil
	case config.ActionQuit:
		return func() error {
			if b.quit == nil {
				return ErrQuitUnavailable
			}
			b.quit()
			return nil
		}, nil
	default:
		return nil, fmt.Errorf("unknown action %q", hk.Action)
	}
}

func (b *Builder) notify(hk config.HotkeyConfig) domain.Action {
	message := hk.Message
	if message == "" {
		message = hk.Description
	}
	if message == "" {
		message = hk.Keys
	}
	return domain.BindArgs(func(args ...any) error {
		b.show(fmt.Sprint(args...))
		return nil
	}, message)
}

func (b *Builder) activate(target string) domain.Action {
	return func() error {
		if b.activator == nil {
			return fmt.Errorf("cannot activate %q: no activator configured", target)
		}
		return b.activator.Activate(target)
	}
}

// exec returns an action that starts the command in the background, so a
// slow command never holds up key dispatch. Failures are logged and shown.
func (b *Builder) exec(command []string, timeout time.Duration) domain.Action {
	if timeout <= 0 {
		timeout = DefaultExecTimeout
	}
	argv := make([]string, len(command))
	copy(argv, command)

	return func() error {
		if err := b.ctx.Err(); err != nil {
			return fmt.Errorf("command %q not started: %w", argv[0], err)
		}

		b.running.Add(1)
		go func() {
			defer b.running.Done()

			if err := b.runCommand(argv, timeout); err != nil {
				b.log.Warn("exec action failed", zap.Strings("command", argv), zap.Error(err))
				b.show(err.Error())
			}
		}()
		return nil
	}
}

func (b *Builder) runCommand(argv []string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(b.ctx, timeout)
	defer cancel()

	output, err := b.run(ctx, argv[0], argv[1:]...)
	outputStr := strings.TrimSpace(string(output))
	if err != nil {
		if outputStr != "" {
			return fmt.Errorf("command %q failed: %w: %s", argv[0], err, outputStr)
		}
		return fmt.Errorf("command %q failed: %w", argv[0], err)
	}

	b.log.Debug("command finished", zap.String("command", argv[0]), zap.String("output", outputStr))
	return nil
}

func (b *Builder) show(message string) {
	if b.notifier != nil {
		b.notifier.Show(message)
	}
}

// LoadEnvironments declares every configured environment and its hotkeys in
// registry. Every failure is collected; environments that fail to be created
// skip their hotkeys.
func LoadEnvironments(registry *environment.Registry, cfg *config.Config, builder *Builder) error {
	var errs []error
	for _, env := range cfg.Environments {
		if err := registry.Create(env.Name, env.Tag); err != nil {
			errs = append(errs, fmt.Errorf("environment %q: %w", env.Name, err))
			continue
		}

		for i, hk := range env.Hotkeys {
			action, err := builder.Build(hk)
			if err != nil {
				errs = append(errs, fmt.Errorf("environment %q hotkey #%d (%s): %w", env.Name, i+1, hk.Keys, err))
				continue
			}
			if err := registry.AddShortcut(env.Name, hk.Keys, action); err != nil {
				errs = append(errs, fmt.Errorf("environment %q hotkey #%d (%s): %w", env.Name, i+1, hk.Keys, err))
			}
		}
	}
	return errors.Join(errs...)
}
