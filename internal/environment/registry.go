package environment

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	domain "github.com/inference-gateway/envkeys/internal/domain"
	keys "github.com/inference-gateway/envkeys/internal/keys"
	zap "go.uber.org/zap"
)

// ActivationMessage formats the notification shown when an environment becomes active
func ActivationMessage(name string) string {
	return fmt.Sprintf("Environment '%s' activated.", name)
}

// Registry owns the environments and the single active environment
type Registry struct {
	environments map[string]*domain.Environment
	order        []string
	active       string
	mutex        sync.RWMutex

	notifier  domain.Notifier
	listeners []domain.ActivationListener
	log       *zap.Logger
}

// NewRegistry creates an empty registry. A nil notifier disables activation
// notifications; a nil logger discards log output.
func NewRegistry(notifier domain.Notifier, log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		environments: make(map[string]*domain.Environment),
		order:        make([]string, 0),
		notifier:     notifier,
		listeners:    make([]domain.ActivationListener, 0),
		log:          log,
	}
}

// AddListener adds an activation listener
func (r *Registry) AddListener(listener domain.ActivationListener) {
	if listener == nil {
		return
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.listeners = append(r.listeners, listener)
}

// RemoveListener removes an activation listener
func (r *Registry) RemoveListener(listener domain.ActivationListener) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for i, l := range r.listeners {
		if l == listener {
			r.listeners = append(r.listeners[:i], r.listeners[i+1:]...)
			break
		}
	}
}

// Create registers a new, inactive environment with no shortcuts
func (r *Registry) Create(name, tag string) error {
	if strings.TrimSpace(name) == "" {
		return domain.ErrEmptyName
	}
	if strings.TrimSpace(tag) == "" {
		return domain.ErrEmptyTag
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.environments[name]; exists {
		return fmt.Errorf("%w: '%s'", domain.ErrDuplicateName, name)
	}

	for _, env := range r.environments {
		if env.Tag == tag {
			return fmt.Errorf("%w: '%s' is used by environment '%s'", domain.ErrDuplicateTag, tag, env.Name)
		}
	}

	r.environments[name] = &domain.Environment{
		Name:      name,
		Tag:       tag,
		Shortcuts: make([]domain.Shortcut, 0),
	}
	r.order = append(r.order, name)

	r.log.Debug("environment created", zap.String("environment", name), zap.String("tag", tag))
	return nil
}

// Activate makes name the single active environment. Activating the
// environment that is already active is a successful no-op.
func (r *Registry) Activate(name string) error {
	r.mutex.Lock()

	target, exists := r.environments[name]
	if !exists {
		r.mutex.Unlock()
		return fmt.Errorf("%w: '%s'", domain.ErrUnknownEnvironment, name)
	}

	if r.active == name {
		r.mutex.Unlock()
		return nil
	}

	previous := r.active
	if prev, ok := r.environments[previous]; ok {
		prev.IsActive = false
	}
	target.IsActive = true
	r.active = name

	listeners := make([]domain.ActivationListener, len(r.listeners))
	copy(listeners, r.listeners)
	notifier := r.notifier
	r.mutex.Unlock()

	r.log.Info("environment activated", zap.String("environment", name), zap.String("previous", previous))

	for _, listener := range listeners {
		listener.OnEnvironmentActivated(previous, name)
	}

	if notifier != nil {
		notifier.Show(ActivationMessage(name))
	}

	return nil
}

// AddShortcut appends a shortcut to an environment. Shortcuts keep their
// registration order; duplicate tokens are allowed and the first one wins.
func (r *Registry) AddShortcut(envName, spec string, action domain.Action) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	env, exists := r.environments[envName]
	if !exists {
		return fmt.Errorf("cannot add hotkey: %w: '%s'", domain.ErrUnknownEnvironment, envName)
	}

	if action == nil {
		return fmt.Errorf("hotkey '%s': %w", spec, domain.ErrNilAction)
	}

	token := keys.NormalizeSpec(spec)
	if token == "" {
		return fmt.Errorf("%w: '%s'", domain.ErrInvalidCombination, spec)
	}

	env.Shortcuts = append(env.Shortcuts, domain.Shortcut{
		Spec:   spec,
		Token:  token,
		Action: action,
	})

	r.log.Debug("hotkey added",
		zap.String("environment", envName),
		zap.String("spec", spec),
		zap.String("token", token))
	return nil
}

// Active returns the name of the active environment
func (r *Registry) Active() (string, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.active, r.active != ""
}

// Match returns the first shortcut of the active environment bound to token
func (r *Registry) Match(token string) (domain.Shortcut, string, bool) {
	if token == "" {
		return domain.Shortcut{}, "", false
	}

	r.mutex.RLock()
	defer r.mutex.RUnlock()

	env, exists := r.environments[r.active]
	if !exists || !env.IsActive {
		return domain.Shortcut{}, "", false
	}

	for _, shortcut := range env.Shortcuts {
		if shortcut.Token == token {
			return shortcut, env.Name, true
		}
	}

	return domain.Shortcut{}, "", false
}

// FindByTag returns the name of the environment whose tag equals tag exactly
func (r *Registry) FindByTag(tag string) (string, bool) {
	if tag == "" {
		return "", false
	}

	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, name := range r.order {
		if r.environments[name].Tag == tag {
			return name, true
		}
	}
	return "", false
}

// Get returns a copy of the named environment
func (r *Registry) Get(name string) (domain.Environment, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	env, exists := r.environments[name]
	if !exists {
		return domain.Environment{}, false
	}
	return env.Clone(), true
}

// List returns copies of all environments sorted by name
func (r *Registry) List() []domain.Environment {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	envs := make([]domain.Environment, 0, len(r.environments))
	for _, env := range r.environments {
		envs = append(envs, env.Clone())
	}

	sort.Slice(envs, func(i, j int) bool {
		return envs[i].Name < envs[j].Name
	})

	return envs
}

// Len returns the number of environments
func (r *Registry) Len() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.environments)
}

// Reset drops every environment and listener
func (r *Registry) Reset() {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.environments = make(map[string]*domain.Environment)
	r.order = r.order[:0]
	r.active = ""
	r.listeners = r.listeners[:0]
}
