package container

import (
	"fmt"

	config "github.com/inference-gateway/envkeys/config"
	actions "github.com/inference-gateway/envkeys/internal/actions"
	domain "github.com/inference-gateway/envkeys/internal/domain"
	storage "github.com/inference-gateway/envkeys/internal/infra/storage"
	journal "github.com/inference-gateway/envkeys/internal/journal"
	notify "github.com/inference-gateway/envkeys/internal/notify"
	ui "github.com/inference-gateway/envkeys/internal/ui"
	manager "github.com/inference-gateway/envkeys/manager"
	zap "go.uber.org/zap"
)

// ServiceContainer wires the envkeys runtime from configuration
type ServiceContainer struct {
	config *config.Config
	log    *zap.Logger

	// Notifications
	toast    *notify.Toast
	notifier domain.Notifier

	// Activity journal
	journalStore storage.JournalStorage
	journal      *journal.Writer

	// UI state
	activity *ui.Activity
	quitter  *ui.Quitter

	manager *manager.Manager
	builder *actions.Builder
	loadErr error
}

// NewServiceContainer creates the runtime described by cfg. Environments
// that fail to load are reported by LoadError; the container stays usable.
func NewServiceContainer(cfg *config.Config, log *zap.Logger) (*ServiceContainer, error) {
	if log == nil {
		log = zap.NewNop()
	}

	c := &ServiceContainer{
		config:   cfg,
		log:      log,
		activity: ui.NewActivity(ui.DefaultActivitySize),
		quitter:  ui.NewQuitter(),
	}

	if err := c.initializeNotifiers(); err != nil {
		return nil, err
	}
	if err := c.initializeJournal(); err != nil {
		return nil, err
	}
	c.initializeManager()
	c.initializeEnvironments()

	return c, nil
}

func (c *ServiceContainer) initializeNotifiers() error {
	c.toast = notify.NewToast(c.config.Notifications.ToastDuration)

	notifiers := []domain.Notifier{c.toast}
	if c.config.Notifications.Log {
		notifiers = append(notifiers, notify.NewLogNotifier(c.log))
	}
	limit := c.config.Notifications.RateLimit
	if c.config.Notifications.Desktop {
		desktop := notify.NewDesktopNotifier(c.log)
		notifiers = append(notifiers, notify.NewThrottled("desktop", desktop, notify.NewRateLimiter(limit), c.log))
	}

	if tg := c.config.Notifications.Telegram; tg.Enabled {
		telegram, err := notify.NewTelegramNotifier(tg.Token, tg.ChatID, c.log)
		if err != nil {
			return fmt.Errorf("failed to create telegram notifier: %w", err)
		}
		notifiers = append(notifiers, notify.NewThrottled("telegram", telegram, notify.NewRateLimiter(limit), c.log))
	}

	c.notifier = notify.NewMulti(notifiers...)
	return nil
}

func (c *ServiceContainer) initializeJournal() error {
	if !c.config.Journal.Enabled {
		return nil
	}

	store, err := storage.NewStorage(c.config.Journal)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}

	c.journalStore = store
	c.journal = journal.NewWriter(store, c.config.Journal.BufferSize, c.log)
	return nil
}

func (c *ServiceContainer) initializeManager() {
	opts := []manager.Option{
		manager.WithNotifier(c.notifier),
		manager.WithBufferTimeout(c.config.Buffer.Timeout),
		manager.WithLogger(c.log),
		manager.WithListener(c.activity),
		manager.WithObserver(c.activity),
	}
	if c.journal != nil {
		opts = append(opts, manager.WithListener(c.journal), manager.WithObserver(c.journal))
	}

	c.manager = manager.New(opts...)
}

func (c *ServiceContainer) initializeEnvironments() {
	c.builder = actions.NewBuilder(
		actions.WithNotifier(c.notifier),
		actions.WithActivator(c.manager.Registry()),
		actions.WithQuit(c.quitter.Quit),
		actions.WithLogger(c.log),
	)

	c.loadErr = actions.LoadEnvironments(c.manager.Registry(), c.config, c.builder)
	if c.loadErr != nil {
		c.log.Warn("some environments failed to load", zap.Error(c.loadErr))
	}
}

// ActivateInitial activates the configured initial environment, if any
func (c *ServiceContainer) ActivateInitial() bool {
	if c.config.InitialEnvironment == "" {
		return false
	}
	return c.manager.SetActiveEnvironmentByName(c.config.InitialEnvironment)
}

// Session returns what the terminal views render
func (c *ServiceContainer) Session() *ui.Session {
	return &ui.Session{
		Host:       c.manager,
		Toast:      c.toast,
		Activity:   c.activity,
		Quitter:    c.quitter,
		ShowBuffer: c.config.UI.ShowBuffer,
	}
}

// Close destroys the manager, stops running commands and flushes the journal
func (c *ServiceContainer) Close() error {
	c.manager.Destroy()
	c.builder.Close()
	if c.journal != nil {
		return c.journal.Close()
	}
	return nil
}

func (c *ServiceContainer) GetConfig() *config.Config {
	return c.config
}

func (c *ServiceContainer) GetManager() *manager.Manager {
	return c.manager
}

func (c *ServiceContainer) GetNotifier() domain.Notifier {
	return c.notifier
}

func (c *ServiceContainer) GetToast() *notify.Toast {
	return c.toast
}

func (c *ServiceContainer) GetJournalStorage() storage.JournalStorage {
	return c.journalStore
}

func (c *ServiceContainer) GetQuitter() *ui.Quitter {
	return c.quitter
}

// LoadError returns every problem met while loading environments
func (c *ServiceContainer) LoadError() error {
	return c.loadErr
}
