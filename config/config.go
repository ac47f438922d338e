package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"
)

const (
	// ConfigDirName is the per-project configuration directory
	ConfigDirName = ".envkeys"
	// ConfigFileName is the configuration file inside ConfigDirName
	ConfigFileName = "config.yaml"
	// DefaultConfigPath is the config path relative to the working directory
	DefaultConfigPath = ConfigDirName + "/" + ConfigFileName
	// EnvPrefix prefixes environment variable overrides
	EnvPrefix = "ENVKEYS"

	// DefaultBufferTimeout is how long an unmatched tag buffer survives
	DefaultBufferTimeout = 10 * time.Second
)

// Hotkey action kinds
const (
	ActionNotify    = "notify"
	ActionActivate  = "activate"
	ActionExec      = "exec"
	ActionClipboard = "clipboard"
	ActionType      = "type"
	ActionSend      = "send"
	ActionQuit      = "quit"
)

// ActionKinds lists every supported hotkey action kind
var ActionKinds = []string{ActionNotify, ActionActivate, ActionExec, ActionClipboard, ActionType, ActionSend, ActionQuit}

// Journal backends
const (
	JournalMemory   = "memory"
	JournalJSONL    = "jsonl"
	JournalSQLite   = "sqlite"
	JournalPostgres = "postgres"
	JournalRedis    = "redis"
)

// UI backends
const (
	BackendTea   = "tea"
	BackendTcell = "tcell"
)

// Config represents the envkeys configuration
type Config struct {
	Buffer             BufferConfig        `yaml:"buffer" mapstructure:"buffer"`
	InitialEnvironment string              `yaml:"initial_environment" mapstructure:"initial_environment"`
	Environments       []EnvironmentConfig `yaml:"environments" mapstructure:"environments"`
	Notifications      NotificationsConfig `yaml:"notifications" mapstructure:"notifications"`
	Journal            JournalConfig       `yaml:"journal" mapstructure:"journal"`
	Logging            LoggingConfig       `yaml:"logging" mapstructure:"logging"`
	UI                 UIConfig            `yaml:"ui" mapstructure:"ui"`
}

// BufferConfig contains tag buffer settings
type BufferConfig struct {
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// EnvironmentConfig declares one environment and its hotkeys
type EnvironmentConfig struct {
	Name    string         `yaml:"name" mapstructure:"name"`
	Tag     string         `yaml:"tag" mapstructure:"tag"`
	Hotkeys []HotkeyConfig `yaml:"hotkeys" mapstructure:"hotkeys"`
}

// HotkeyConfig binds a key combination to an action
type HotkeyConfig struct {
	Keys        string        `yaml:"keys" mapstructure:"keys"`
	Action      string        `yaml:"action" mapstructure:"action"`
	Description string        `yaml:"description,omitempty" mapstructure:"description"`
	Message     string        `yaml:"message,omitempty" mapstructure:"message"`
	Target      string        `yaml:"target,omitempty" mapstructure:"target"`
	Command     []string      `yaml:"command,omitempty" mapstructure:"command"`
	Text        string        `yaml:"text,omitempty" mapstructure:"text"`
	Combo       string        `yaml:"combo,omitempty" mapstructure:"combo"`
	Timeout     time.Duration `yaml:"timeout,omitempty" mapstructure:"timeout"`
}

// NotificationsConfig selects the notifiers shown on environment activation
type NotificationsConfig struct {
	Log           bool            `yaml:"log" mapstructure:"log"`
	Desktop       bool            `yaml:"desktop" mapstructure:"desktop"`
	ToastDuration time.Duration   `yaml:"toast_duration" mapstructure:"toast_duration"`
	Telegram      TelegramConfig  `yaml:"telegram" mapstructure:"telegram"`
	RateLimit     RateLimitConfig `yaml:"rate_limit" mapstructure:"rate_limit"`
}

// RateLimitConfig bounds how often desktop and Telegram notifications fire
type RateLimitConfig struct {
	Enabled       bool `yaml:"enabled" mapstructure:"enabled"`
	MaxMessages   int  `yaml:"max_messages" mapstructure:"max_messages"`
	WindowSeconds int  `yaml:"window_seconds" mapstructure:"window_seconds"`
}

// TelegramConfig contains Telegram notifier settings
type TelegramConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Token   string `yaml:"token,omitempty" mapstructure:"token"`
	ChatID  int64  `yaml:"chat_id,omitempty" mapstructure:"chat_id"`
}

// JournalConfig contains activity journal settings
type JournalConfig struct {
	Enabled    bool           `yaml:"enabled" mapstructure:"enabled"`
	Type       string         `yaml:"type" mapstructure:"type"`
	BufferSize int            `yaml:"buffer_size" mapstructure:"buffer_size"`
	JSONL      JSONLConfig    `yaml:"jsonl" mapstructure:"jsonl"`
	SQLite     SQLiteConfig   `yaml:"sqlite" mapstructure:"sqlite"`
	Postgres   PostgresConfig `yaml:"postgres" mapstructure:"postgres"`
	Redis      RedisConfig    `yaml:"redis" mapstructure:"redis"`
}

// JSONLConfig contains JSONL journal settings
type JSONLConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// SQLiteConfig contains SQLite journal settings
type SQLiteConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// PostgresConfig contains Postgres journal settings
type PostgresConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	Database string `yaml:"database" mapstructure:"database"`
	Username string `yaml:"username" mapstructure:"username"`
	Password string `yaml:"password,omitempty" mapstructure:"password"`
	SSLMode  string `yaml:"ssl_mode" mapstructure:"ssl_mode"`
}

// RedisConfig contains Redis journal settings
type RedisConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	Database int    `yaml:"database" mapstructure:"database"`
	Password string `yaml:"password,omitempty" mapstructure:"password"`
	Username string `yaml:"username,omitempty" mapstructure:"username"`
	MaxLen   int64  `yaml:"max_len" mapstructure:"max_len"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Verbose bool   `yaml:"verbose" mapstructure:"verbose"`
	File    string `yaml:"file,omitempty" mapstructure:"file"`
}

// UIConfig contains terminal UI settings
type UIConfig struct {
	Backend    string `yaml:"backend" mapstructure:"backend"`
	ShowBuffer bool   `yaml:"show_buffer" mapstructure:"show_buffer"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Buffer: BufferConfig{
			Timeout: DefaultBufferTimeout,
		},
		Notifications: NotificationsConfig{
			Log:           true,
			Desktop:       false,
			ToastDuration: 3 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:       true,
				MaxMessages:   10,
				WindowSeconds: 60,
			},
		},
		Journal: JournalConfig{
			Enabled:    false,
			Type:       JournalJSONL,
			BufferSize: 128,
			JSONL: JSONLConfig{
				Path: filepath.Join(ConfigDirName, "journal.jsonl"),
			},
			SQLite: SQLiteConfig{
				Path: filepath.Join(ConfigDirName, "journal.db"),
			},
			Postgres: PostgresConfig{
				Host:     "localhost",
				Port:     5432,
				Database: "envkeys",
				Username: "envkeys",
				SSLMode:  "disable",
			},
			Redis: RedisConfig{
				Host:   "localhost",
				Port:   6379,
				MaxLen: 1000,
			},
		},
		Logging: LoggingConfig{
			Verbose: false,
			File:    filepath.Join(ConfigDirName, "logs", "envkeys.log"),
		},
		UI: UIConfig{
			Backend:    BackendTea,
			ShowBuffer: true,
		},
	}
}

// ExampleConfig returns the default configuration with two sample
// environments, used by "config init"
func ExampleConfig() *Config {
	cfg := DefaultConfig()
	cfg.InitialEnvironment = "editing"
	cfg.Environments = []EnvironmentConfig{
		{
			Name: "editing",
			Tag:  "ed",
			Hotkeys: []HotkeyConfig{
				{
					Keys:        "ctrl+k",
					Action:      ActionNotify,
					Description: "say hello",
					Message:     "Hello from the editing environment",
				},
				{
					Keys:        "ctrl+b",
					Action:      ActionActivate,
					Description: "switch to browsing",
					Target:      "browsing",
				},
			},
		},
		{
			Name: "browsing",
			Tag:  "br",
			Hotkeys: []HotkeyConfig{
				{
					Keys:        "ctrl+k",
					Action:      ActionNotify,
					Description: "say hello",
					Message:     "Hello from the browsing environment",
				},
				{
					Keys:        "ctrl+e",
					Action:      ActionActivate,
					Description: "switch to editing",
					Target:      "editing",
				},
			},
		},
	}

	return cfg
}

// Load loads configuration from a YAML file. A missing file yields the
// default configuration.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	data, err := os.ReadFile(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to a YAML file with 2-space indentation
func (c *Config) Save(configPath string) error {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to close YAML encoder: %w", err)
	}

	if err := os.WriteFile(configPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks the fields that can be verified without building a
// registry: action kinds, action parameters and backend names
func (c *Config) Validate() error {
	var errs []error

	if c.Buffer.Timeout < 0 {
		errs = append(errs, fmt.Errorf("buffer.timeout must not be negative"))
	}

	if c.UI.Backend != "" && c.UI.Backend != BackendTea && c.UI.Backend != BackendTcell {
		errs = append(errs, fmt.Errorf("ui.backend %q is not one of %s, %s", c.UI.Backend, BackendTea, BackendTcell))
	}

	if c.Journal.Enabled {
		switch c.Journal.Type {
		case JournalMemory, JournalJSONL, JournalSQLite, JournalPostgres, JournalRedis:
		default:
			errs = append(errs, fmt.Errorf("journal.type %q is not supported", c.Journal.Type))
		}
	}

	if c.Notifications.Telegram.Enabled && (c.Notifications.Telegram.Token == "" || c.Notifications.Telegram.ChatID == 0) {
		errs = append(errs, fmt.Errorf("notifications.telegram requires token and chat_id"))
	}

	if rl := c.Notifications.RateLimit; rl.Enabled && (rl.MaxMessages <= 0 || rl.WindowSeconds <= 0) {
		errs = append(errs, fmt.Errorf("notifications.rate_limit needs positive max_messages and window_seconds"))
	}

	for _, env := range c.Environments {
		for i, hk := range env.Hotkeys {
			if err := hk.validate(); err != nil {
				errs = append(errs, fmt.Errorf("environment %q hotkey #%d (%s): %w", env.Name, i+1, hk.Keys, err))
			}
		}
	}

	if c.InitialEnvironment != "" && c.FindEnvironment(c.InitialEnvironment) == nil {
		errs = append(errs, fmt.Errorf("initial_environment %q is not declared", c.InitialEnvironment))
	}

	return errors.Join(errs...)
}

func (h HotkeyConfig) validate() error {
	if !slices.Contains(ActionKinds, h.Action) {
		return fmt.Errorf("unknown action %q (expected one of %s)", h.Action, strings.Join(ActionKinds, ", "))
	}

	switch h.Action {
	case ActionActivate:
		if h.Target == "" {
			return fmt.Errorf("activate action requires a target")
		}
	case ActionExec:
		if len(h.Command) == 0 {
			return fmt.Errorf("exec action requires a command")
		}
	case ActionClipboard, ActionType:
		if h.Text == "" {
			return fmt.Errorf("%s action requires text", h.Action)
		}
	case ActionSend:
		if h.Combo == "" {
			return fmt.Errorf("send action requires a combo")
		}
	}

	return nil
}

// FindEnvironment returns the declared environment with the given name
func (c *Config) FindEnvironment(name string) *EnvironmentConfig {
	for i := range c.Environments {
		if c.Environments[i].Name == name {
			return &c.Environments[i]
		}
	}
	return nil
}
