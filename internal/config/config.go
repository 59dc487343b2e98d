// Package config assembles application configuration from Viper. Values
// come from the config file, environment variables (including the
// well-known NOTES_* and MONITOR_* names), and defaults set by the root
// command, in that order of precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/jonesrussell/vidwatch/internal/logger"
	"github.com/jonesrussell/vidwatch/internal/notify"
	"github.com/jonesrussell/vidwatch/internal/poller"
	"github.com/jonesrussell/vidwatch/internal/storage"
	"github.com/jonesrussell/vidwatch/internal/summarizer"
	"github.com/jonesrussell/vidwatch/internal/youtube"
)

// AppConfig holds application-level settings.
type AppConfig struct {
	// Name is the application name
	Name string `yaml:"name"`
	// Environment is the deployment environment (development, production)
	Environment string `yaml:"environment"`
	// Debug enables debug logging
	Debug bool `yaml:"debug"`
}

// SchedulerConfig holds scheduler command settings.
type SchedulerConfig struct {
	// Cron is the standard 5-field cron expression for channel checks
	Cron string `yaml:"cron"`
}

// Config is the full application configuration.
type Config struct {
	App        AppConfig
	Logger     logger.Config
	Storage    storage.Config
	YouTube    youtube.Config
	Summarizer summarizer.Config
	Slack      notify.Config
	Monitor    poller.Config
	Scheduler  SchedulerConfig
}

// Load reads configuration from Viper. Storage settings are validated here
// because every command needs them; monitor and summarizer settings are
// validated by the commands that use them.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        v.GetString("app.name"),
			Environment: v.GetString("app.environment"),
			Debug:       v.GetBool("app.debug"),
		},
		Logger: logger.Config{
			Level:       v.GetString("logger.level"),
			Encoding:    v.GetString("logger.encoding"),
			Development: v.GetBool("logger.development"),
		},
		Storage: storage.Config{
			Backend:   v.GetString("storage.backend"),
			LocalDir:  v.GetString("storage.local_dir"),
			Endpoint:  v.GetString("storage.endpoint"),
			AccessKey: v.GetString("storage.access_key"),
			SecretKey: v.GetString("storage.secret_key"),
			UseSSL:    v.GetBool("storage.use_ssl"),
			Bucket:    v.GetString("storage.bucket"),
			Region:    v.GetString("storage.region"),
		},
		YouTube: youtube.Config{
			MinDuration: v.GetDuration("youtube.min_duration"),
		},
		Summarizer: summarizer.Config{
			APIKey:    v.GetString("summarizer.api_key"),
			Model:     v.GetString("summarizer.model"),
			MaxTokens: v.GetInt64("summarizer.max_tokens"),
		},
		Slack: notify.Config{
			WebhookURL: v.GetString("slack.webhook_url"),
			BotToken:   v.GetString("slack.bot_token"),
			Channel:    v.GetString("slack.channel"),
		},
		Monitor: poller.Config{
			Channels:    channelList(v),
			Concurrency: v.GetInt("monitor.concurrency"),
		},
		Scheduler: SchedulerConfig{
			Cron: v.GetString("scheduler.cron"),
		},
	}

	if cfg.App.Debug {
		cfg.Logger.Level = "debug"
	}
	if cfg.App.Environment == "development" {
		cfg.Logger.Development = true
	}

	if err := cfg.Storage.Validate(); err != nil {
		return nil, fmt.Errorf("invalid storage configuration: %w", err)
	}

	return cfg, nil
}

// channelList reads the monitored channels. The MONITOR_CHANNEL_URLS
// environment variable carries a comma-separated string; the config file
// carries a YAML list. Both are accepted.
func channelList(v *viper.Viper) []string {
	raw := v.GetStringSlice("monitor.channels")
	channels := make([]string, 0, len(raw))
	for _, entry := range raw {
		for _, channelURL := range strings.Split(entry, ",") {
			if trimmed := strings.TrimSpace(channelURL); trimmed != "" {
				channels = append(channels, trimmed)
			}
		}
	}
	return channels
}
