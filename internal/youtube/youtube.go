// Package youtube reads YouTube channel feeds and video metadata without
// an API key: channel Atom feeds for new uploads, watch-page scrapes for
// durations and channel IDs, and the oembed endpoint for titles.
package youtube

import (
	"errors"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/jonesrussell/vidwatch/internal/logger"
)

// Errors returned when a channel yields nothing usable.
var (
	// ErrNoVideos means the channel feed contained no entries.
	ErrNoVideos = errors.New("no videos found in channel feed")
	// ErrOnlyShorts means every feed entry was below the minimum duration.
	ErrOnlyShorts = errors.New("no full-length videos found in channel feed")
	// ErrChannelID means the channel ID could not be determined from the URL.
	ErrChannelID = errors.New("could not extract channel ID")
)

const (
	// metadataTimeout bounds every metadata/feed fetch.
	metadataTimeout = 10 * time.Second

	// userAgent is sent on scraping requests; YouTube serves a reduced page
	// to unidentified clients.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	// DefaultMinDuration filters out Shorts: feed entries shorter than this
	// are skipped when looking for the latest upload.
	DefaultMinDuration = 90 * time.Second
)

// Video describes one upload surfaced from a channel feed.
type Video struct {
	ID          string
	URL         string
	Title       string
	Published   string
	ChannelID   string
	ChannelName string
	Duration    time.Duration
}

// Config holds YouTube client configuration.
type Config struct {
	// MinDuration is the shortest upload still considered a full video
	MinDuration time.Duration `yaml:"min_duration"`
}

// Client fetches channel and video information.
type Client struct {
	httpClient  *http.Client
	parser      *gofeed.Parser
	minDuration time.Duration
	logger      logger.Interface
}

// NewClient creates a YouTube client.
func NewClient(cfg *Config, log logger.Interface) *Client {
	httpClient := &http.Client{Timeout: metadataTimeout}

	parser := gofeed.NewParser()
	parser.Client = httpClient
	parser.UserAgent = userAgent

	minDuration := DefaultMinDuration
	if cfg != nil && cfg.MinDuration > 0 {
		minDuration = cfg.MinDuration
	}

	return &Client{
		httpClient:  httpClient,
		parser:      parser,
		minDuration: minDuration,
		logger:      log,
	}
}
