package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	config "github.com/inference-gateway/envkeys/config"
	viper "github.com/spf13/viper"
	gotenv "github.com/subosito/gotenv"
)

// appConfig is the configuration loaded by initConfig
var appConfig *config.Config

func currentConfig() (*config.Config, error) {
	if appConfig != nil {
		return appConfig, nil
	}
	return loadConfig("")
}

// loadDotEnv exports the variables of path that are not already set. A
// missing file is not an error.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return gotenv.Load(path)
}

// loadConfig reads the YAML config at path, defaulting to
// config.DefaultConfigPath, and applies ENVKEYS_* overrides. A missing file
// yields the defaults.
func loadConfig(path string) (*config.Config, error) {
	v := newViper()

	if path == "" {
		path = config.DefaultConfigPath
	}

	_, err := os.Stat(path)
	switch {
	case err == nil:
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("failed to access config file %s: %w", path, err)
	}

	cfg := &config.Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(config.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := config.DefaultConfig()
	v.SetDefault("buffer.timeout", defaults.Buffer.Timeout)
	v.SetDefault("initial_environment", defaults.InitialEnvironment)

	v.SetDefault("notifications.log", defaults.Notifications.Log)
	v.SetDefault("notifications.desktop", defaults.Notifications.Desktop)
	v.SetDefault("notifications.toast_duration", defaults.Notifications.ToastDuration)
	v.SetDefault("notifications.telegram.enabled", defaults.Notifications.Telegram.Enabled)
	v.SetDefault("notifications.telegram.token", defaults.Notifications.Telegram.Token)
	v.SetDefault("notifications.telegram.chat_id", defaults.Notifications.Telegram.ChatID)
	v.SetDefault("notifications.rate_limit.enabled", defaults.Notifications.RateLimit.Enabled)
	v.SetDefault("notifications.rate_limit.max_messages", defaults.Notifications.RateLimit.MaxMessages)
	v.SetDefault("notifications.rate_limit.window_seconds", defaults.Notifications.RateLimit.WindowSeconds)

	v.SetDefault("journal.enabled", defaults.Journal.Enabled)
	v.SetDefault("journal.type", defaults.Journal.Type)
	v.SetDefault("journal.buffer_size", defaults.Journal.BufferSize)
	v.SetDefault("journal.jsonl.path", defaults.Journal.JSONL.Path)
	v.SetDefault("journal.sqlite.path", defaults.Journal.SQLite.Path)
	v.SetDefault("journal.postgres.host", defaults.Journal.Postgres.Host)
	v.SetDefault("journal.postgres.port", defaults.Journal.Postgres.Port)
	v.SetDefault("journal.postgres.database", defaults.Journal.Postgres.Database)
	v.SetDefault("journal.postgres.username", defaults.Journal.Postgres.Username)
	v.SetDefault("journal.postgres.password", defaults.Journal.Postgres.Password)
	v.SetDefault("journal.postgres.ssl_mode", defaults.Journal.Postgres.SSLMode)
	v.SetDefault("journal.redis.host", defaults.Journal.Redis.Host)
	v.SetDefault("journal.redis.port", defaults.Journal.Redis.Port)
	v.SetDefault("journal.redis.database", defaults.Journal.Redis.Database)
	v.SetDefault("journal.redis.username", defaults.Journal.Redis.Username)
	v.SetDefault("journal.redis.password", defaults.Journal.Redis.Password)
	v.SetDefault("journal.redis.max_len", defaults.Journal.Redis.MaxLen)

	v.SetDefault("logging.verbose", defaults.Logging.Verbose)
	v.SetDefault("logging.file", defaults.Logging.File)

	v.SetDefault("ui.backend", defaults.UI.Backend)
	v.SetDefault("ui.show_buffer", defaults.UI.ShowBuffer)

	return v
}
