package youtube

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var (
	lengthSecondsPattern = regexp.MustCompile(`"lengthSeconds":"(\d+)"`)
	durationMsPattern    = regexp.MustCompile(`"approxDurationMs":"(\d+)"`)
)

// LatestVideo returns the newest full-length upload from a channel. Entries
// shorter than the configured minimum duration (Shorts) are skipped; an
// entry whose duration cannot be determined is given the benefit of the
// doubt and returned.
func (c *Client) LatestVideo(ctx context.Context, channelURL string) (*Video, error) {
	channelID, err := c.ExtractChannelID(ctx, channelURL)
	if err != nil {
		return nil, err
	}

	feed, err := c.parser.ParseURLWithContext(FeedURL(channelID), ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch channel feed for %s: %w", channelID, err)
	}

	channelName := feed.Title
	if channelName == "" {
		channelName = "Unknown Channel"
	}

	if len(feed.Items) == 0 {
		return nil, fmt.Errorf("channel %s: %w", channelID, ErrNoVideos)
	}

	for _, item := range feed.Items {
		videoID := videoIDFromFeedItem(item.Extensions["yt"]["videoId"], item.Link)
		if videoID == "" {
			continue
		}

		duration := c.videoDuration(ctx, videoID)
		if duration > 0 && duration < c.minDuration {
			c.logger.Debug("Skipping short-form video",
				"video_id", videoID, "duration", duration)
			continue
		}

		video := &Video{
			ID:          videoID,
			URL:         WatchURL(videoID),
			Title:       item.Title,
			ChannelID:   channelID,
			ChannelName: channelName,
			Duration:    duration,
		}
		if item.PublishedParsed != nil {
			video.Published = item.PublishedParsed.Format(time.RFC3339)
		}
		return video, nil
	}

	return nil, fmt.Errorf("channel %s: %w", channelID, ErrOnlyShorts)
}

// videoDuration scrapes the watch page for the video length. Returns zero
// when the duration cannot be determined.
func (c *Client) videoDuration(ctx context.Context, videoID string) time.Duration {
	body, err := c.fetchPage(ctx, WatchURL(videoID))
	if err != nil {
		c.logger.Debug("Could not fetch video duration",
			"video_id", videoID, "error", err)
		return 0
	}

	if m := lengthSecondsPattern.FindStringSubmatch(body); m != nil {
		if seconds, err := strconv.Atoi(m[1]); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	if m := durationMsPattern.FindStringSubmatch(body); m != nil {
		if ms, err := strconv.Atoi(m[1]); err == nil {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return 0
}
