// Package transcript fetches YouTube video transcripts by scraping the
// caption tracks embedded in the watch page. Error values distinguish the
// permanent conditions (captions disabled, video gone) from transient
// fetch failures, because the pipeline treats them differently: permanent
// conditions are skipped at the source, transient ones may be retried on a
// later cycle.
package transcript

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/jonesrussell/vidwatch/internal/logger"
)

// Permanent per-video failure conditions.
var (
	// ErrTranscriptsDisabled means the uploader turned captions off.
	ErrTranscriptsDisabled = errors.New("transcripts are disabled for video")
	// ErrNoTranscript means captions exist but none could be retrieved.
	ErrNoTranscript = errors.New("no transcript found for video")
	// ErrVideoUnavailable means the video is deleted, private, or blocked.
	ErrVideoUnavailable = errors.New("video is unavailable")
)

// IsPermanent reports whether err is a condition that will not resolve by
// retrying the same video.
func IsPermanent(err error) bool {
	return errors.Is(err, ErrTranscriptsDisabled) ||
		errors.Is(err, ErrNoTranscript) ||
		errors.Is(err, ErrVideoUnavailable)
}

const (
	fetchTimeout = 30 * time.Second
	userAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

var (
	captionTracksPattern = regexp.MustCompile(`"captionTracks":\s*(\[.*?\])`)
	playabilityPattern   = regexp.MustCompile(`"playabilityStatus":\s*\{\s*"status":\s*"(ERROR|LOGIN_REQUIRED|UNPLAYABLE)"`)
)

// Fetcher retrieves the full transcript text for a video.
type Fetcher interface {
	Fetch(ctx context.Context, videoID string) (string, error)
}

// HTTPFetcher fetches transcripts from YouTube's caption endpoints.
type HTTPFetcher struct {
	httpClient *http.Client
	logger     logger.Interface
}

// NewFetcher creates a transcript fetcher.
func NewFetcher(log logger.Interface) *HTTPFetcher {
	return &HTTPFetcher{
		httpClient: &http.Client{Timeout: fetchTimeout},
		logger:     log,
	}
}

// captionTrack is one entry of the watch page's captionTracks array.
type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
}

// Fetch returns the video's transcript as a single space-joined string.
func (f *HTTPFetcher) Fetch(ctx context.Context, videoID string) (string, error) {
	page, err := f.get(ctx, "https://www.youtube.com/watch?v="+videoID)
	if err != nil {
		return "", fmt.Errorf("fetch watch page for %s: %w", videoID, err)
	}

	if playabilityPattern.MatchString(page) {
		return "", fmt.Errorf("%s: %w", videoID, ErrVideoUnavailable)
	}

	track, err := pickCaptionTrack(page)
	if err != nil {
		return "", fmt.Errorf("%s: %w", videoID, err)
	}

	body, err := f.get(ctx, track.BaseURL)
	if err != nil {
		return "", fmt.Errorf("fetch caption track for %s: %w", videoID, err)
	}

	text, err := parseTimedText(body)
	if err != nil {
		return "", fmt.Errorf("parse caption track for %s: %w", videoID, err)
	}
	if text == "" {
		return "", fmt.Errorf("%s: %w", videoID, ErrNoTranscript)
	}

	f.logger.Debug("Transcript fetched", "video_id", videoID, "chars", len(text))
	return text, nil
}

// pickCaptionTrack selects a caption track from the page, preferring
// manually created tracks over auto-generated ("asr") ones.
func pickCaptionTrack(page string) (*captionTrack, error) {
	m := captionTracksPattern.FindStringSubmatch(page)
	if m == nil {
		return nil, ErrTranscriptsDisabled
	}

	var tracks []captionTrack
	if err := json.Unmarshal([]byte(m[1]), &tracks); err != nil {
		return nil, fmt.Errorf("decode caption tracks: %w", err)
	}
	if len(tracks) == 0 {
		return nil, ErrNoTranscript
	}

	for i := range tracks {
		if tracks[i].Kind != "asr" && tracks[i].BaseURL != "" {
			return &tracks[i], nil
		}
	}
	return &tracks[0], nil
}

// timedText is YouTube's caption XML document.
type timedText struct {
	Texts []struct {
		Value string `xml:",chardata"`
	} `xml:"text"`
}

// parseTimedText joins the caption snippets into one string.
func parseTimedText(body string) (string, error) {
	var doc timedText
	if err := xml.Unmarshal([]byte(body), &doc); err != nil {
		return "", err
	}

	parts := make([]string, 0, len(doc.Texts))
	for _, t := range doc.Texts {
		// Caption text is frequently double-escaped (&amp;#39;).
		snippet := strings.TrimSpace(html.UnescapeString(t.Value))
		if snippet != "" {
			parts = append(parts, snippet)
		}
	}
	return strings.Join(parts, " "), nil
}

func (f *HTTPFetcher) get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", ErrVideoUnavailable
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
