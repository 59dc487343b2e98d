package youtube_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/vidwatch/internal/logger"
	"github.com/jonesrussell/vidwatch/internal/youtube"
)

func TestExtractVideoID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{
			name:  "watch URL",
			input: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			want:  "dQw4w9WgXcQ",
			ok:    true,
		},
		{
			name:  "short link",
			input: "https://youtu.be/dQw4w9WgXcQ",
			want:  "dQw4w9WgXcQ",
			ok:    true,
		},
		{
			name:  "embed URL",
			input: "https://www.youtube.com/embed/dQw4w9WgXcQ",
			want:  "dQw4w9WgXcQ",
			ok:    true,
		},
		{
			name:  "watch URL with extra params",
			input: "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s",
			want:  "dQw4w9WgXcQ",
			ok:    true,
		},
		{
			name:  "raw video ID",
			input: "dQw4w9WgXcQ",
			want:  "dQw4w9WgXcQ",
			ok:    true,
		},
		{
			name:  "channel URL is not a video",
			input: "https://www.youtube.com/channel/UCabcdefghijklmnopqrstuv",
			ok:    false,
		},
		{
			name:  "empty string",
			input: "",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := youtube.ExtractVideoID(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestWatchURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://www.youtube.com/watch?v=abc123defgh", youtube.WatchURL("abc123defgh"))
}

func TestFeedURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		"https://www.youtube.com/feeds/videos.xml?channel_id=UCtest",
		youtube.FeedURL("UCtest"))
}

func TestExtractChannelID_DirectURL(t *testing.T) {
	t.Parallel()

	client := youtube.NewClient(nil, logger.NewNoOp())
	ctx := context.Background()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "channel URL",
			input: "https://www.youtube.com/channel/UC1234567890abcdefghijk",
			want:  "UC1234567890abcdefghijk",
		},
		{
			name:  "trailing slash",
			input: "https://www.youtube.com/channel/UC1234567890abcdefghijk/",
			want:  "UC1234567890abcdefghijk",
		},
		{
			name:  "videos tab",
			input: "https://www.youtube.com/channel/UC1234567890abcdefghijk/videos",
			want:  "UC1234567890abcdefghijk",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := client.ExtractChannelID(ctx, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractChannelID_Unresolvable(t *testing.T) {
	t.Parallel()

	client := youtube.NewClient(nil, logger.NewNoOp())

	_, err := client.ExtractChannelID(context.Background(), "https://example.com/not-a-channel")
	assert.ErrorIs(t, err, youtube.ErrChannelID)
}
