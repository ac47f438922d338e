package dispatcher

import (
	"sync"
	"time"

	domain "github.com/inference-gateway/envkeys/internal/domain"
	environment "github.com/inference-gateway/envkeys/internal/environment"
	keys "github.com/inference-gateway/envkeys/internal/keys"
	zap "go.uber.org/zap"
)

// DefaultBufferTimeout is the idle period after which an unmatched buffer is cleared
const DefaultBufferTimeout = 10 * time.Second

// Dispatcher routes key events to hotkeys of the active environment or to
// the tag buffer that switches environments
type Dispatcher struct {
	registry  *environment.Registry
	timeout   time.Duration
	log       *zap.Logger
	observers []domain.HotkeyObserver

	mutex    sync.Mutex
	buffer   TextBuffer
	timer    *time.Timer
	timerGen uint64
	closed   bool
}

// Compile-time assertion that Dispatcher listens to activations
var _ domain.ActivationListener = (*Dispatcher)(nil)

// Option configures a Dispatcher
type Option func(*Dispatcher)

// WithBufferTimeout sets the idle period of the tag buffer
func WithBufferTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) {
		if timeout > 0 {
			d.timeout = timeout
		}
	}
}

// WithLogger sets the logger used to report hotkey failures
func WithLogger(log *zap.Logger) Option {
	return func(d *Dispatcher) {
		if log != nil {
			d.log = log
		}
	}
}

// WithObserver adds a hotkey observer
func WithObserver(observer domain.HotkeyObserver) Option {
	return func(d *Dispatcher) {
		if observer != nil {
			d.observers = append(d.observers, observer)
		}
	}
}

// New creates a dispatcher bound to registry and subscribes it to activations
func New(registry *environment.Registry, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry:  registry,
		timeout:   DefaultBufferTimeout,
		log:       zap.NewNop(),
		observers: make([]domain.HotkeyObserver, 0),
	}

	for _, opt := range opts {
		opt(d)
	}

	registry.AddListener(d)
	return d
}

// Timeout returns the idle period of the tag buffer
func (d *Dispatcher) Timeout() time.Duration {
	return d.timeout
}

// AddObserver adds a hotkey observer
func (d *Dispatcher) AddObserver(observer domain.HotkeyObserver) {
	if observer == nil {
		return
	}
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.observers = append(d.observers, observer)
}

// HandleKey processes one key press to completion
func (d *Dispatcher) HandleKey(ev domain.KeyEvent) {
	if ev == nil || ev.Surface() == domain.SurfaceTextEntry {
		return
	}

	if d.isClosed() {
		return
	}

	if token := keys.NormalizeEvent(ev); token != "" {
		if shortcut, envName, ok := d.registry.Match(token); ok {
			ev.PreventDefault()
			ev.StopPropagation()
			d.invoke(envName, shortcut)
			return
		}
	}

	key := ev.Key()
	if !keys.IsPrintableCharacter(key) && !keys.IsBackspace(key) {
		return
	}

	if ev.Ctrl() || ev.Alt() || ev.Meta() {
		// Shift plus a character still types into the buffer
		if !ev.Shift() || !keys.IsPrintableCharacter(key) {
			return
		}
	}

	d.updateBuffer(key)
}

// OnEnvironmentActivated clears the buffer and cancels the idle timer
func (d *Dispatcher) OnEnvironmentActivated(_, _ string) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.buffer.Reset()
	d.stopTimerLocked()
}

// Buffer returns the current tag buffer contents
func (d *Dispatcher) Buffer() string {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.buffer.String()
}

// Pending reports whether an idle timer is armed
func (d *Dispatcher) Pending() bool {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.timer != nil
}

// Close cancels the idle timer, clears the buffer and ignores later events
func (d *Dispatcher) Close() {
	d.mutex.Lock()
	if d.closed {
		d.mutex.Unlock()
		return
	}
	d.closed = true
	d.buffer.Reset()
	d.stopTimerLocked()
	d.mutex.Unlock()

	d.registry.RemoveListener(d)
}

func (d *Dispatcher) isClosed() bool {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.closed
}

func (d *Dispatcher) updateBuffer(key string) {
	d.mutex.Lock()

	if d.closed {
		d.mutex.Unlock()
		return
	}

	d.stopTimerLocked()

	if keys.IsBackspace(key) {
		d.buffer.Pop()
	} else {
		d.buffer.Push(key)
	}

	if d.buffer.Len() == 0 {
		d.mutex.Unlock()
		return
	}

	current := d.buffer.String()
	name, found := d.registry.FindByTag(current)
	if !found {
		d.armTimerLocked()
		d.mutex.Unlock()
		return
	}

	d.buffer.Reset()
	d.mutex.Unlock()

	d.log.Debug("environment tag typed", zap.String("tag", current), zap.String("environment", name))
	if err := d.registry.Activate(name); err != nil {
		d.log.Warn("failed to activate environment from tag",
			zap.String("environment", name),
			zap.Error(err))
	}
}

func (d *Dispatcher) armTimerLocked() {
	d.timerGen++
	gen := d.timerGen
	d.timer = time.AfterFunc(d.timeout, func() {
		d.expire(gen)
	})
}

func (d *Dispatcher) stopTimerLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.timerGen++
}

func (d *Dispatcher) expire(gen uint64) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	// A newer keystroke re-armed or cancelled the timer
	if gen != d.timerGen || d.timer == nil {
		return
	}

	d.log.Debug("tag buffer expired", zap.Int("length", d.buffer.Len()))
	d.buffer.Reset()
	d.timer = nil
}

func (d *Dispatcher) invoke(envName string, shortcut domain.Shortcut) {
	err := runAction(shortcut)
	if err != nil {
		d.log.Error("hotkey action failed",
			zap.String("environment", envName),
			zap.String("token", shortcut.Token),
			zap.Error(err))
	} else {
		d.log.Debug("hotkey invoked",
			zap.String("environment", envName),
			zap.String("token", shortcut.Token))
	}

	d.mutex.Lock()
	observers := make([]domain.HotkeyObserver, len(d.observers))
	copy(observers, d.observers)
	d.mutex.Unlock()

	for _, observer := range observers {
		observer.OnHotkeyInvoked(envName, shortcut, err)
	}
}

func runAction(shortcut domain.Shortcut) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &domain.HotkeyPanicError{Token: shortcut.Token, Value: r}
		}
	}()
	return shortcut.Action()
}
