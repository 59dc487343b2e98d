package youtube

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const feedURLFormat = "https://www.youtube.com/feeds/videos.xml?channel_id=%s"

var (
	channelPathPattern = regexp.MustCompile(`/channel/(UC[a-zA-Z0-9_-]+)`)
	channelIDPattern   = regexp.MustCompile(`"channelId":"(UC[a-zA-Z0-9_-]+)"`)
	externalIDPattern  = regexp.MustCompile(`"externalId":"(UC[a-zA-Z0-9_-]+)"`)
)

// ExtractChannelID resolves a channel URL to its UC… channel ID.
//
// Direct /channel/UC… URLs are handled with a regex. Handle-style URLs
// (/@name, /c/name, /user/name) carry no channel ID, so the channel page is
// fetched and the ID pulled from its metadata.
func (c *Client) ExtractChannelID(ctx context.Context, channelURL string) (string, error) {
	channelURL = strings.TrimRight(strings.TrimSpace(channelURL), "/")
	channelURL = strings.TrimSuffix(channelURL, "/videos")

	if m := channelPathPattern.FindStringSubmatch(channelURL); m != nil {
		return m[1], nil
	}

	for _, marker := range []string{"/@", "/c/", "/user/"} {
		if strings.Contains(channelURL, marker) {
			return c.fetchChannelIDFromPage(ctx, channelURL)
		}
	}

	return "", fmt.Errorf("%w from URL: %s", ErrChannelID, channelURL)
}

// fetchChannelIDFromPage scrapes the channel page for its ID. YouTube embeds
// it in the page JSON and in the canonical link.
func (c *Client) fetchChannelIDFromPage(ctx context.Context, channelURL string) (string, error) {
	body, err := c.fetchPage(ctx, channelURL)
	if err != nil {
		return "", fmt.Errorf("%w: fetch channel page: %w", ErrChannelID, err)
	}

	if m := channelIDPattern.FindStringSubmatch(body); m != nil {
		return m[1], nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err == nil {
		canonical, _ := doc.Find(`link[rel="canonical"]`).Attr("href")
		if m := channelPathPattern.FindStringSubmatch(canonical); m != nil {
			return m[1], nil
		}
	}

	if m := externalIDPattern.FindStringSubmatch(body); m != nil {
		return m[1], nil
	}

	return "", fmt.Errorf("%w: channel ID not found in page %s", ErrChannelID, channelURL)
}

// FeedURL returns the Atom feed URL for a channel ID.
func FeedURL(channelID string) string {
	return fmt.Sprintf(feedURLFormat, channelID)
}

// fetchPage gets a YouTube page body with the browser user agent.
func (c *Client) fetchPage(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, http.NoBody)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d for %s", resp.StatusCode, pageURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
