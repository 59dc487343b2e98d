package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	ext "github.com/mmcdole/gofeed/extensions"
)

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`^([a-zA-Z0-9_-]{11})$`),
}

// ExtractVideoID pulls the 11-character video ID out of a watch URL, a
// youtu.be short link, an embed URL, or a raw ID.
func ExtractVideoID(videoURL string) (string, bool) {
	for _, pattern := range videoIDPatterns {
		if m := pattern.FindStringSubmatch(videoURL); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// WatchURL returns the canonical watch URL for a video ID.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

// videoIDFromFeedItem reads the yt:videoId feed extension, falling back to
// parsing the entry link.
func videoIDFromFeedItem(videoIDExt []ext.Extension, link string) string {
	if len(videoIDExt) > 0 && videoIDExt[0].Value != "" {
		return videoIDExt[0].Value
	}
	if id, ok := ExtractVideoID(link); ok {
		return id
	}
	return ""
}

// Metadata is the title and channel information for a single video.
type Metadata struct {
	Title       string
	ChannelName string
	URL         string
}

// VideoMetadata fetches a video's title and channel name from the oembed
// endpoint (no API key needed). Lookup failures degrade to placeholder
// values rather than failing the caller: metadata here is descriptive only.
func (c *Client) VideoMetadata(ctx context.Context, videoID string) Metadata {
	meta := Metadata{
		Title:       "Unknown Title",
		ChannelName: "Unknown Channel",
		URL:         WatchURL(videoID),
	}

	oembedURL := fmt.Sprintf(
		"https://www.youtube.com/oembed?url=%s&format=json", WatchURL(videoID))

	body, err := c.fetchPage(ctx, oembedURL)
	if err != nil {
		c.logger.Debug("oembed lookup failed", "video_id", videoID, "error", err)
		return meta
	}

	var payload struct {
		Title      string `json:"title"`
		AuthorName string `json:"author_name"`
	}
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		c.logger.Debug("oembed decode failed", "video_id", videoID, "error", err)
		return meta
	}

	if payload.Title != "" {
		meta.Title = payload.Title
	}
	if payload.AuthorName != "" {
		meta.ChannelName = payload.AuthorName
	}
	return meta
}
