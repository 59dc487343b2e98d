package transcript

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPermanent(t *testing.T) {
	t.Parallel()

	assert.True(t, IsPermanent(ErrTranscriptsDisabled))
	assert.True(t, IsPermanent(ErrNoTranscript))
	assert.True(t, IsPermanent(ErrVideoUnavailable))
	assert.False(t, IsPermanent(errors.New("connection reset")))
	assert.False(t, IsPermanent(nil))
}

func TestPickCaptionTrack(t *testing.T) {
	t.Parallel()

	t.Run("prefers manual track over asr", func(t *testing.T) {
		t.Parallel()

		page := `..."captionTracks": [` +
			`{"baseUrl": "https://yt/auto", "languageCode": "en", "kind": "asr"},` +
			`{"baseUrl": "https://yt/manual", "languageCode": "en"}]...`

		track, err := pickCaptionTrack(page)
		require.NoError(t, err)
		assert.Equal(t, "https://yt/manual", track.BaseURL)
	})

	t.Run("falls back to asr when nothing else", func(t *testing.T) {
		t.Parallel()

		page := `"captionTracks": [{"baseUrl": "https://yt/auto", "languageCode": "en", "kind": "asr"}]`

		track, err := pickCaptionTrack(page)
		require.NoError(t, err)
		assert.Equal(t, "https://yt/auto", track.BaseURL)
	})

	t.Run("no caption tracks means disabled", func(t *testing.T) {
		t.Parallel()

		_, err := pickCaptionTrack(`<html>watch page without captions</html>`)
		assert.ErrorIs(t, err, ErrTranscriptsDisabled)
	})

	t.Run("empty track list", func(t *testing.T) {
		t.Parallel()

		_, err := pickCaptionTrack(`"captionTracks": []`)
		assert.ErrorIs(t, err, ErrNoTranscript)
	})
}

func TestParseTimedText(t *testing.T) {
	t.Parallel()

	body := `<?xml version="1.0" encoding="utf-8"?>
<transcript>
  <text start="0.0" dur="2.5">hello world</text>
  <text start="2.5" dur="1.0">it&amp;#39;s a test</text>
  <text start="3.5" dur="1.0">   </text>
  <text start="4.5" dur="2.0">the end</text>
</transcript>`

	text, err := parseTimedText(body)
	require.NoError(t, err)
	assert.Equal(t, "hello world it's a test the end", text)
}

func TestParseTimedText_Empty(t *testing.T) {
	t.Parallel()

	text, err := parseTimedText(`<transcript></transcript>`)
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestParseTimedText_Malformed(t *testing.T) {
	t.Parallel()

	_, err := parseTimedText(`not xml at all <`)
	assert.Error(t, err)
}
