// Package poller checks configured channels for new uploads and hands
// unseen videos to the processing pipeline. The processed index is the
// source of truth for "unseen": the poller checks it before claiming and
// claims before running, so overlapping invocations (scheduled plus manual,
// or retried runs) settle on one winner per video.
package poller

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/jonesrussell/vidwatch/internal/index"
	"github.com/jonesrussell/vidwatch/internal/logger"
	"github.com/jonesrussell/vidwatch/internal/pipeline"
	"github.com/jonesrussell/vidwatch/internal/youtube"
)

// Outcome classifies one channel check.
type Outcome string

// Channel check outcomes.
const (
	// OutcomeProcessed means a new video was found and processed.
	OutcomeProcessed Outcome = "processed"
	// OutcomeUpToDate means the latest video was already in the index.
	OutcomeUpToDate Outcome = "up_to_date"
	// OutcomeSkipped means another actor claimed the video first, or the
	// index was unavailable and claiming would have been unsafe.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeFailed means the check or the pipeline errored.
	OutcomeFailed Outcome = "failed"
)

// Result is the outcome of checking one channel.
type Result struct {
	ChannelURL string
	VideoID    string
	Title      string
	Outcome    Outcome
	Err        error
}

// FeedReader surfaces the latest qualifying upload from a channel.
type FeedReader interface {
	LatestVideo(ctx context.Context, channelURL string) (*youtube.Video, error)
}

// Tracker is the index surface the poller needs.
type Tracker interface {
	IsProcessed(ctx context.Context, videoID string) bool
	Claim(ctx context.Context, videoID string, meta index.VideoMeta) bool
	CheckpointChannel(ctx context.Context, channelID string, meta index.ChannelMeta, lastVideoID string) error
}

// Runner executes the processing pipeline for one video.
type Runner interface {
	Run(ctx context.Context, item pipeline.Item) error
}

// Config holds poller configuration.
type Config struct {
	// Channels is the list of channel URLs to monitor
	Channels []string `yaml:"channels"`
	// Concurrency bounds how many channels are checked at once
	Concurrency int `yaml:"concurrency"`
}

// DefaultConcurrency bounds parallel channel checks when unconfigured.
const DefaultConcurrency = 2

// Validate validates the poller configuration.
func (c *Config) Validate() error {
	if len(c.Channels) == 0 {
		return errors.New("monitor channels required: set monitor.channels or MONITOR_CHANNEL_URLS")
	}
	return nil
}

// Poller checks channels for new videos.
type Poller struct {
	feeds       FeedReader
	tracker     Tracker
	runner      Runner
	concurrency int
	logger      logger.Interface
}

// New creates a poller.
func New(feeds FeedReader, tracker Tracker, runner Runner, cfg *Config, log logger.Interface) *Poller {
	concurrency := DefaultConcurrency
	if cfg != nil && cfg.Concurrency > 0 {
		concurrency = cfg.Concurrency
	}
	return &Poller{
		feeds:       feeds,
		tracker:     tracker,
		runner:      runner,
		concurrency: concurrency,
		logger:      log,
	}
}

// CheckAll checks every channel through a bounded worker pool. One channel's
// failure never aborts the others; each result is reported individually.
func (p *Poller) CheckAll(ctx context.Context, channelURLs []string) []Result {
	results := make([]Result, len(channelURLs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for i, channelURL := range channelURLs {
		g.Go(func() error {
			results[i] = p.CheckChannel(gctx, channelURL)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// CheckChannel polls one channel: fetch the latest qualifying video, stop if
// it is already tracked, claim it, and run the pipeline. The channel
// checkpoint is written after every poll that surfaced a video, whether or
// not it was new.
func (p *Poller) CheckChannel(ctx context.Context, channelURL string) Result {
	log := p.logger.With("channel_url", channelURL)
	log.Info("Checking channel")

	video, err := p.feeds.LatestVideo(ctx, channelURL)
	if err != nil {
		log.Error("Failed to fetch latest video", "error", err)
		return Result{ChannelURL: channelURL, Outcome: OutcomeFailed, Err: err}
	}

	// Bookkeeping only: a failed checkpoint must not abort the check.
	defer func() {
		if err := p.tracker.CheckpointChannel(ctx, video.ChannelID, index.ChannelMeta{
			Name: video.ChannelName,
			URL:  channelURL,
		}, video.ID); err != nil {
			log.Warn("Channel checkpoint failed", "error", err)
		}
	}()

	result := Result{ChannelURL: channelURL, VideoID: video.ID, Title: video.Title}

	if p.tracker.IsProcessed(ctx, video.ID) {
		log.Info("Latest video already processed",
			"video_id", video.ID, "title", video.Title)
		result.Outcome = OutcomeUpToDate
		return result
	}

	meta := index.VideoMeta{
		Title:       video.Title,
		ChannelID:   video.ChannelID,
		ChannelName: video.ChannelName,
	}
	if !p.tracker.Claim(ctx, video.ID, meta) {
		log.Info("Could not claim video, skipping",
			"video_id", video.ID, "title", video.Title)
		result.Outcome = OutcomeSkipped
		return result
	}

	log.Info("New video found", "video_id", video.ID, "title", video.Title)

	if err := p.runner.Run(ctx, pipeline.Item{
		VideoID:     video.ID,
		VideoURL:    video.URL,
		Title:       video.Title,
		ChannelID:   video.ChannelID,
		ChannelName: video.ChannelName,
	}); err != nil {
		log.Error("Pipeline failed", "video_id", video.ID, "error", err)
		result.Outcome = OutcomeFailed
		result.Err = err
		return result
	}

	result.Outcome = OutcomeProcessed
	return result
}
