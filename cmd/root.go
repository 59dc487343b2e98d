// Package cmd implements the command-line interface for vidwatch.
// It provides the root command and subcommands for monitoring YouTube
// channels and analyzing individual videos.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jonesrussell/vidwatch/cmd/analyze"
	"github.com/jonesrussell/vidwatch/cmd/check"
	cmdscheduler "github.com/jonesrussell/vidwatch/cmd/scheduler"
)

const version = "1.0.0"

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// debug enables debug mode for all commands.
	debug bool

	// rootCmd represents the root command for the vidwatch CLI.
	rootCmd = &cobra.Command{
		Use:   "vidwatch",
		Short: "YouTube channel monitor and summarizer",
		Long: `vidwatch monitors YouTube channels for new uploads, summarizes each
new video with an LLM, saves the summary as a markdown note, and sends a
Slack notification. Processed videos are tracked in a shared index so
overlapping runs never analyze the same video twice.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	// Load .env early so environment variables are available to Viper.
	_ = godotenv.Load()

	_ = rootCmd.ParseFlags(os.Args[1:])

	if err := initConfig(); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is ./config.yaml or ./config/config.yaml)",
	)
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug mode")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("vidwatch version %s\n", version)
		},
	})

	rootCmd.AddCommand(check.Command())
	rootCmd.AddCommand(analyze.Command())
	rootCmd.AddCommand(cmdscheduler.Command())
}

// initConfig reads in the config file and environment variables.
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	// Config file is optional: environment variables and defaults suffice.
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: config file not found: %v (using defaults and environment variables)\n", err)
	}

	if err := bindEnvVars(); err != nil {
		return err
	}

	if debug || viper.GetBool("app.debug") {
		viper.Set("app.debug", true)
		viper.Set("logger.level", "debug")
	}

	return nil
}

// bindEnvVars maps the well-known environment variable names onto config
// keys. These names predate the config file and stay supported.
func bindEnvVars() error {
	bindings := map[string][]string{
		"app.environment":    {"APP_ENV"},
		"logger.level":       {"LOG_LEVEL"},
		"logger.encoding":    {"LOG_FORMAT"},
		"storage.backend":    {"NOTES_BACKEND"},
		"storage.local_dir":  {"NOTES_LOCAL_DIR"},
		"storage.bucket":     {"NOTES_S3_BUCKET"},
		"storage.endpoint":   {"S3_ENDPOINT"},
		"storage.region":     {"AWS_REGION", "AWS_DEFAULT_REGION"},
		"storage.access_key": {"AWS_ACCESS_KEY_ID"},
		"storage.secret_key": {"AWS_SECRET_ACCESS_KEY"},
		"monitor.channels":   {"MONITOR_CHANNEL_URLS"},
		"summarizer.api_key": {"ANTHROPIC_API_KEY"},
		"slack.webhook_url":  {"SLACK_WEBHOOK_URL"},
		"slack.bot_token":    {"SLACK_BOT_TOKEN"},
		"slack.channel":      {"SLACK_DEFAULT_CHANNEL"},
	}

	for key, envVars := range bindings {
		args := append([]string{key}, envVars...)
		if err := viper.BindEnv(args...); err != nil {
			return fmt.Errorf("failed to bind %s: %w", envVars[0], err)
		}
	}
	return nil
}

// setDefaults sets default configuration values.
func setDefaults() {
	viper.SetDefault("app", map[string]any{
		"name":        "vidwatch",
		"environment": "production",
		"debug":       false,
	})

	viper.SetDefault("logger", map[string]any{
		"level":       "info",
		"encoding":    "json",
		"development": false,
	})

	viper.SetDefault("storage", map[string]any{
		"backend":   "local",
		"local_dir": "./data",
		"endpoint":  "s3.amazonaws.com",
		"use_ssl":   true,
		"region":    "us-east-1",
	})

	viper.SetDefault("youtube", map[string]any{
		"min_duration": "90s",
	})

	viper.SetDefault("summarizer", map[string]any{
		"model":      "claude-sonnet-4-20250514",
		"max_tokens": 2048,
	})

	viper.SetDefault("monitor", map[string]any{
		"concurrency": 2,
	})

	viper.SetDefault("scheduler", map[string]any{
		"cron": "0 * * * *",
	})
}
