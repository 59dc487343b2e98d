package summarizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSummary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:  "plain JSON",
			input: `{"overview": "About things.", "key_points": ["a", "b"]}`,
		},
		{
			name:  "json code fence",
			input: "```json\n{\"overview\": \"About things.\"}\n```",
		},
		{
			name:  "bare code fence",
			input: "```\n{\"overview\": \"About things.\"}\n```",
		},
		{
			name:  "surrounding whitespace",
			input: "  \n{\"overview\": \"About things.\"}\n  ",
		},
		{
			name:    "missing overview",
			input:   `{"key_points": ["a"]}`,
			wantErr: true,
		},
		{
			name:    "not JSON",
			input:   "Here is my analysis of the video...",
			wantErr: true,
		},
		{
			name:    "empty response",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			summary, err := decodeSummary(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "About things.", summary.Overview)
		})
	}
}

func TestDecodeSummary_AllFields(t *testing.T) {
	t.Parallel()

	summary, err := decodeSummary(`{
		"overview": "A video.",
		"key_points": ["one", "two"],
		"quotes": ["a quote"],
		"action_items": ["do this"],
		"main_takeaway": "the point"
	}`)
	require.NoError(t, err)

	assert.Equal(t, []string{"one", "two"}, summary.KeyPoints)
	assert.Equal(t, []string{"a quote"}, summary.Quotes)
	assert.Equal(t, []string{"do this"}, summary.ActionItems)
	assert.Equal(t, "the point", summary.MainTakeaway)
}

func TestSummaryMarkdown(t *testing.T) {
	t.Parallel()

	summary := &Summary{
		Overview:     "A video about Go.",
		KeyPoints:    []string{"interfaces", "channels"},
		Quotes:       []string{"do not communicate by sharing memory"},
		ActionItems:  []string{"read Effective Go"},
		MainTakeaway: "Go is simple.",
	}

	md := summary.Markdown("https://www.youtube.com/watch?v=vid1", "Go Channel")

	assert.Contains(t, md, "**Channel:** Go Channel")
	assert.Contains(t, md, "**Video:** https://www.youtube.com/watch?v=vid1")
	assert.Contains(t, md, "## Overview\n\nA video about Go.")
	assert.Contains(t, md, "## Main Takeaway\n\nGo is simple.")
	assert.Contains(t, md, "- interfaces\n- channels\n")
	assert.Contains(t, md, "> do not communicate by sharing memory")
	assert.Contains(t, md, "- read Effective Go")
}

func TestSummaryMarkdown_Minimal(t *testing.T) {
	t.Parallel()

	summary := &Summary{Overview: "Just an overview."}
	md := summary.Markdown("", "")

	assert.Contains(t, md, "## Overview\n\nJust an overview.")
	assert.NotContains(t, md, "**Channel:**")
	assert.NotContains(t, md, "## Key Points")
	assert.NotContains(t, md, "## Notable Quotes")
	assert.NotContains(t, md, "## Action Items")
	assert.NotContains(t, md, "## Main Takeaway")
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	assert.Error(t, (&Config{}).Validate())
	assert.NoError(t, (&Config{APIKey: "sk-test"}).Validate())
}
