// Package common provides shared utilities for command implementations.
package common

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/jonesrussell/vidwatch/internal/config"
	"github.com/jonesrussell/vidwatch/internal/index"
	"github.com/jonesrussell/vidwatch/internal/logger"
	"github.com/jonesrussell/vidwatch/internal/notes"
	"github.com/jonesrussell/vidwatch/internal/notify"
	"github.com/jonesrussell/vidwatch/internal/pipeline"
	"github.com/jonesrussell/vidwatch/internal/poller"
	"github.com/jonesrussell/vidwatch/internal/storage"
	"github.com/jonesrussell/vidwatch/internal/summarizer"
	"github.com/jonesrussell/vidwatch/internal/transcript"
	"github.com/jonesrussell/vidwatch/internal/youtube"
)

// Dependency validation errors.
var (
	ErrLoggerRequired = errors.New("logger is required")
	ErrConfigRequired = errors.New("config is required")
)

// CommandDeps holds common dependencies for all commands.
// Use this instead of context.Value for type-safe dependency injection.
type CommandDeps struct {
	Logger logger.Interface
	Config *config.Config
}

// Validate ensures all required dependencies are present.
func (d CommandDeps) Validate() error {
	if d.Logger == nil {
		return ErrLoggerRequired
	}
	if d.Config == nil {
		return ErrConfigRequired
	}
	return nil
}

// NewCommandDeps loads configuration and creates the logger.
func NewCommandDeps() (*CommandDeps, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}

	log, err := logger.New(&cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return &CommandDeps{Logger: log, Config: cfg}, nil
}

// Components is the constructed application graph shared by the commands.
type Components struct {
	Tracker *index.Tracker
	YouTube *youtube.Client
	Runner  *pipeline.Runner
	Poller  *poller.Poller
}

// NewComponents wires storage, index, and the pipeline from configuration.
// The blob store is constructed once here and injected everywhere it is
// needed; nothing else holds backend-specific state.
func NewComponents(deps *CommandDeps) (*Components, error) {
	if err := deps.Validate(); err != nil {
		return nil, err
	}
	cfg, log := deps.Config, deps.Logger

	blob, err := storage.New(&cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob store: %w", err)
	}

	tracker := index.NewTracker(
		index.NewStore(blob, log.WithComponent("index")),
		log.WithComponent("index"),
	)

	summary, err := summarizer.NewAnthropic(&cfg.Summarizer, log.WithComponent("summarizer"))
	if err != nil {
		return nil, fmt.Errorf("failed to create summarizer: %w", err)
	}

	youtubeClient := youtube.NewClient(&cfg.YouTube, log.WithComponent("youtube"))

	runner := pipeline.NewRunner(
		transcript.NewFetcher(log.WithComponent("transcript")),
		summary,
		notes.NewWriter(blob, log.WithComponent("notes")),
		notify.NewSlack(&cfg.Slack, log.WithComponent("notify")),
		tracker,
		log.WithComponent("pipeline"),
	)

	return &Components{
		Tracker: tracker,
		YouTube: youtubeClient,
		Runner:  runner,
		Poller:  poller.New(youtubeClient, tracker, runner, &cfg.Monitor, log.WithComponent("poller")),
	}, nil
}
