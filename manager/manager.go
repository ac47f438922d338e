// Package manager is the host-facing API: create environments, bind
// hotkeys, attach an input source and switch environments by name or by
// typing their tag.
package manager

import (
	"sync"
	"time"

	dispatcher "github.com/inference-gateway/envkeys/internal/dispatcher"
	domain "github.com/inference-gateway/envkeys/internal/domain"
	environment "github.com/inference-gateway/envkeys/internal/environment"
	logger "github.com/inference-gateway/envkeys/internal/logger"
	zap "go.uber.org/zap"
)

// Manager owns one registry/dispatcher pair and its input subscription
type Manager struct {
	registry   *environment.Registry
	dispatcher *dispatcher.Dispatcher
	log        *zap.Logger

	mutex       sync.Mutex
	unsubscribe func()
	initialized bool
	destroyed   bool
}

type options struct {
	notifier  domain.Notifier
	timeout   time.Duration
	log       *zap.Logger
	listeners []domain.ActivationListener
	observers []domain.HotkeyObserver
}

// Option configures a Manager
type Option func(*options)

// WithNotifier sets the notifier shown on every environment activation
func WithNotifier(notifier domain.Notifier) Option {
	return func(o *options) { o.notifier = notifier }
}

// WithBufferTimeout sets the idle period of the tag buffer
func WithBufferTimeout(timeout time.Duration) Option {
	return func(o *options) { o.timeout = timeout }
}

// WithLogger sets the logger; defaults to the process logger
func WithLogger(log *zap.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithListener adds an activation listener
func WithListener(listener domain.ActivationListener) Option {
	return func(o *options) { o.listeners = append(o.listeners, listener) }
}

// WithObserver adds a hotkey observer
func WithObserver(observer domain.HotkeyObserver) Option {
	return func(o *options) { o.observers = append(o.observers, observer) }
}

// New creates a manager. Call Init to start receiving key events.
func New(opts ...Option) *Manager {
	o := &options{
		timeout: dispatcher.DefaultBufferTimeout,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.log == nil {
		o.log = logger.L()
	}

	registry := environment.NewRegistry(o.notifier, o.log)

	dispatcherOpts := []dispatcher.Option{
		dispatcher.WithBufferTimeout(o.timeout),
		dispatcher.WithLogger(o.log),
	}
	for _, observer := range o.observers {
		dispatcherOpts = append(dispatcherOpts, dispatcher.WithObserver(observer))
	}

	m := &Manager{
		registry:   registry,
		dispatcher: dispatcher.New(registry, dispatcherOpts...),
		log:        o.log,
	}

	for _, listener := range o.listeners {
		registry.AddListener(listener)
	}

	return m
}

// Init subscribes the manager to source. A manager can be initialized once.
func (m *Manager) Init(source domain.InputSource) error {
	if source == nil {
		return domain.ErrNoInputSource
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.destroyed {
		return domain.ErrDestroyed
	}
	if m.initialized {
		return domain.ErrAlreadyInitialized
	}

	m.unsubscribe = source.Subscribe(m.dispatcher.HandleKey)
	m.initialized = true

	m.log.Debug("manager initialized")
	return nil
}

// HandleKey feeds one key event directly, for hosts that push events
// instead of exposing an InputSource
func (m *Manager) HandleKey(ev domain.KeyEvent) {
	m.dispatcher.HandleKey(ev)
}

// CreateEnvironment registers an environment switched to by typing tag
func (m *Manager) CreateEnvironment(name, tag string) bool {
	if err := m.registry.Create(name, tag); err != nil {
		m.log.Warn("failed to create environment",
			zap.String("environment", name),
			zap.String("tag", tag),
			zap.Error(err))
		return false
	}
	return true
}

// AddHotkeyToEnvironment binds spec (for example "ctrl+shift+a") to action
// inside the named environment. Use domain.BindArgs to pass fixed arguments.
func (m *Manager) AddHotkeyToEnvironment(envName, spec string, action domain.Action) bool {
	if err := m.registry.AddShortcut(envName, spec, action); err != nil {
		m.log.Warn("failed to add hotkey",
			zap.String("environment", envName),
			zap.String("spec", spec),
			zap.Error(err))
		return false
	}
	return true
}

// SetActiveEnvironmentByName activates the named environment
func (m *Manager) SetActiveEnvironmentByName(name string) bool {
	if err := m.registry.Activate(name); err != nil {
		m.log.Warn("failed to activate environment",
			zap.String("environment", name),
			zap.Error(err))
		return false
	}
	return true
}

// GetCurrentEnvironmentName returns the active environment, if any
func (m *Manager) GetCurrentEnvironmentName() (string, bool) {
	return m.registry.Active()
}

// Environments returns copies of every environment sorted by name
func (m *Manager) Environments() []domain.Environment {
	return m.registry.List()
}

// Buffer returns the characters typed toward a tag so far
func (m *Manager) Buffer() string {
	return m.dispatcher.Buffer()
}

// BufferTimeout returns the idle period of the tag buffer
func (m *Manager) BufferTimeout() time.Duration {
	return m.dispatcher.Timeout()
}

// Registry exposes the error-returning registry
func (m *Manager) Registry() *environment.Registry {
	return m.registry
}

// AddListener adds an activation listener after construction
func (m *Manager) AddListener(listener domain.ActivationListener) {
	m.registry.AddListener(listener)
}

// AddObserver adds a hotkey observer after construction
func (m *Manager) AddObserver(observer domain.HotkeyObserver) {
	m.dispatcher.AddObserver(observer)
}

// Destroy releases the input subscription, cancels the idle timer and
// clears all state. It is safe to call more than once.
func (m *Manager) Destroy() {
	m.mutex.Lock()
	if m.destroyed {
		m.mutex.Unlock()
		return
	}
	m.destroyed = true
	unsubscribe := m.unsubscribe
	m.unsubscribe = nil
	m.mutex.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}

	m.dispatcher.Close()
	m.registry.Reset()

	m.log.Debug("manager destroyed")
}
