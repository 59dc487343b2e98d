package summarizer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/jonesrussell/vidwatch/internal/logger"
)

const systemPrompt = `You are a YouTube video analyzer. Given a video transcript, produce a JSON object with these fields:
- "overview": a 2-3 sentence summary of what the video is about
- "key_points": 3-5 main takeaways as an array of strings
- "quotes": 2-3 interesting or important direct quotes from the transcript (array of strings)
- "action_items": actionable advice or recommendations mentioned, if any (array of strings)
- "main_takeaway": the single most important insight (string)

Respond with the JSON object only, no surrounding prose or code fences.`

// AnthropicSummarizer implements Summarizer against the Anthropic API.
type AnthropicSummarizer struct {
	client    anthropic.Client
	model     anthropic.Model
	maxTokens int64
	logger    logger.Interface
}

// NewAnthropic creates an Anthropic-backed summarizer.
func NewAnthropic(cfg *Config, log logger.Interface) (*AnthropicSummarizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	return &AnthropicSummarizer{
		client:    anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:     anthropic.Model(model),
		maxTokens: maxTokens,
		logger:    log,
	}, nil
}

// Summarize sends the transcript to the model and decodes its structured
// response.
func (s *AnthropicSummarizer) Summarize(ctx context.Context, req Request) (*Summary, error) {
	prompt := fmt.Sprintf("Video title: %s\nChannel: %s\n\nTranscript:\n%s",
		req.Title, req.ChannelName, req.Transcript)

	s.logger.Debug("Requesting summary",
		"video_id", req.VideoID, "model", string(s.model),
		"transcript_chars", len(req.Transcript))

	message, err := s.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     s.model,
		MaxTokens: s.maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("summarize %s: %w", req.VideoID, err)
	}

	var text strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	summary, err := decodeSummary(text.String())
	if err != nil {
		return nil, fmt.Errorf("summarize %s: %w", req.VideoID, err)
	}
	return summary, nil
}

// decodeSummary parses the model response, tolerating code fences the model
// sometimes adds despite instructions.
func decodeSummary(text string) (*Summary, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var summary Summary
	if err := json.Unmarshal([]byte(text), &summary); err != nil {
		return nil, fmt.Errorf("decode summary response: %w", err)
	}
	if summary.Overview == "" {
		return nil, fmt.Errorf("decode summary response: missing overview")
	}
	return &summary, nil
}
