// Package notify delivers summary notifications to Slack. Delivery is
// best-effort throughout: a failed or unconfigured notification never rolls
// back the note that was already written.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jonesrussell/vidwatch/internal/logger"
)

const (
	postMessageURL = "https://slack.com/api/chat.postMessage"
	slackTimeout   = 10 * time.Second
	defaultChannel = "#youtube-summaries"
)

// Notification is the content of one summary notification.
type Notification struct {
	VideoTitle   string
	ChannelName  string
	VideoURL     string
	Overview     string
	KeyPoints    []string
	MainTakeaway string
}

// Notifier delivers a notification.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// Config holds Slack configuration. Webhook delivery is preferred; the bot
// token API is used when only a token is configured. With neither set,
// notifications are skipped.
type Config struct {
	// WebhookURL is an incoming-webhook URL
	WebhookURL string `yaml:"webhook_url"`
	// BotToken is a bot user OAuth token for chat.postMessage
	BotToken string `yaml:"bot_token"`
	// Channel is the target channel when using the bot token
	Channel string `yaml:"channel"`
}

// SlackNotifier sends Block Kit formatted messages to Slack.
type SlackNotifier struct {
	config     *Config
	httpClient *http.Client
	logger     logger.Interface
}

// NewSlack creates a Slack notifier.
func NewSlack(cfg *Config, log logger.Interface) *SlackNotifier {
	return &SlackNotifier{
		config:     cfg,
		httpClient: &http.Client{Timeout: slackTimeout},
		logger:     log,
	}
}

// Notify sends the notification via webhook or bot token. Missing
// configuration is not an error; the notification is skipped.
func (s *SlackNotifier) Notify(ctx context.Context, n Notification) error {
	blocks := buildBlocks(n)
	fallback := fallbackText(n)

	switch {
	case s.config.WebhookURL != "":
		payload := map[string]any{"text": fallback, "blocks": blocks}
		return s.post(ctx, s.config.WebhookURL, "", payload)
	case s.config.BotToken != "":
		channel := s.config.Channel
		if channel == "" {
			channel = defaultChannel
		}
		payload := map[string]any{"channel": channel, "text": fallback, "blocks": blocks}
		return s.post(ctx, postMessageURL, s.config.BotToken, payload)
	default:
		s.logger.Info("No Slack configuration found, notification skipped",
			"video_title", n.VideoTitle)
		return nil
	}
}

func (s *SlackNotifier) post(ctx context.Context, url, token string, payload map[string]any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode slack payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build slack request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send slack notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("slack returned status %d", resp.StatusCode)
	}

	// chat.postMessage reports API errors in the body with HTTP 200.
	if token != "" {
		var apiResp struct {
			OK    bool   `json:"ok"`
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
			return fmt.Errorf("decode slack response: %w", err)
		}
		if !apiResp.OK {
			return fmt.Errorf("slack API error: %s", apiResp.Error)
		}
	}

	s.logger.Info("Slack notification sent", "video_title", payloadTitle(payload))
	return nil
}

// block is a minimal Slack Block Kit element.
type block struct {
	Type     string `json:"type"`
	Text     *text  `json:"text,omitempty"`
	Elements []text `json:"elements,omitempty"`
}

type text struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Emoji bool   `json:"emoji,omitempty"`
}

// buildBlocks assembles the Block Kit layout: header, title, overview,
// optional main takeaway, key points, and a watch link.
func buildBlocks(n Notification) []block {
	blocks := []block{
		{Type: "header", Text: &text{
			Type: "plain_text", Text: "📹 YouTube Video Analysis Complete", Emoji: true}},
		{Type: "section", Text: &text{
			Type: "mrkdwn", Text: fmt.Sprintf("*%s*\n_%s_", n.VideoTitle, n.ChannelName)}},
		{Type: "divider"},
		{Type: "section", Text: &text{
			Type: "mrkdwn", Text: "*Overview*\n" + n.Overview}},
	}

	if n.MainTakeaway != "" {
		blocks = append(blocks, block{Type: "section", Text: &text{
			Type: "mrkdwn", Text: "*🎯 Main Takeaway*\n" + n.MainTakeaway}})
	}

	if len(n.KeyPoints) > 0 {
		var points strings.Builder
		for _, point := range n.KeyPoints {
			fmt.Fprintf(&points, "• %s\n", point)
		}
		blocks = append(blocks, block{Type: "section", Text: &text{
			Type: "mrkdwn", Text: "*📌 Key Points*\n" + strings.TrimRight(points.String(), "\n")}})
	}

	blocks = append(blocks,
		block{Type: "divider"},
		block{Type: "context", Elements: []text{
			{Type: "mrkdwn", Text: fmt.Sprintf("<%s|▶️ Watch on YouTube>", n.VideoURL)},
		}},
	)
	return blocks
}

func fallbackText(n Notification) string {
	overview := n.Overview
	const maxFallback = 100
	if len(overview) > maxFallback {
		overview = overview[:maxFallback] + "..."
	}
	return fmt.Sprintf("YouTube Analysis: %s - %s", n.VideoTitle, overview)
}

func payloadTitle(payload map[string]any) string {
	if t, ok := payload["text"].(string); ok {
		return t
	}
	return ""
}
