// Package summarizer turns a video transcript into a structured summary
// using the Anthropic API.
package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Request carries the transcript and descriptive context for one video.
type Request struct {
	VideoID     string
	VideoURL    string
	Title       string
	ChannelName string
	Transcript  string
}

// Summary is the structured result of analyzing one transcript.
type Summary struct {
	Overview     string   `json:"overview"`
	KeyPoints    []string `json:"key_points"`
	Quotes       []string `json:"quotes,omitempty"`
	ActionItems  []string `json:"action_items,omitempty"`
	MainTakeaway string   `json:"main_takeaway,omitempty"`
}

// Summarizer produces a structured summary from a transcript.
type Summarizer interface {
	Summarize(ctx context.Context, req Request) (*Summary, error)
}

// Config holds summarizer configuration.
type Config struct {
	// APIKey authenticates against the Anthropic API
	APIKey string `yaml:"api_key"`
	// Model is the model identifier to use
	Model string `yaml:"model"`
	// MaxTokens caps the response length
	MaxTokens int64 `yaml:"max_tokens"`
}

// Defaults applied when config fields are unset.
const (
	DefaultModel     = "claude-sonnet-4-20250514"
	DefaultMaxTokens = 2048
)

// Validate validates the summarizer configuration.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("summarizer api_key required")
	}
	return nil
}

// Markdown renders the summary as the note body.
func (s *Summary) Markdown(videoURL, channelName string) string {
	var b strings.Builder

	if channelName != "" {
		fmt.Fprintf(&b, "**Channel:** %s\n\n", channelName)
	}
	if videoURL != "" {
		fmt.Fprintf(&b, "**Video:** %s\n\n", videoURL)
	}

	b.WriteString("## Overview\n\n")
	b.WriteString(s.Overview)
	b.WriteString("\n")

	if s.MainTakeaway != "" {
		b.WriteString("\n## Main Takeaway\n\n")
		b.WriteString(s.MainTakeaway)
		b.WriteString("\n")
	}

	if len(s.KeyPoints) > 0 {
		b.WriteString("\n## Key Points\n\n")
		for _, point := range s.KeyPoints {
			fmt.Fprintf(&b, "- %s\n", point)
		}
	}

	if len(s.Quotes) > 0 {
		b.WriteString("\n## Notable Quotes\n\n")
		for _, quote := range s.Quotes {
			fmt.Fprintf(&b, "> %s\n\n", quote)
		}
	}

	if len(s.ActionItems) > 0 {
		b.WriteString("\n## Action Items\n\n")
		for _, item := range s.ActionItems {
			fmt.Fprintf(&b, "- %s\n", item)
		}
	}

	return b.String()
}
