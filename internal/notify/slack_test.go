package notify_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/vidwatch/internal/logger"
	"github.com/jonesrussell/vidwatch/internal/notify"
)

func testNotification() notify.Notification {
	return notify.Notification{
		VideoTitle:   "Deep Dive",
		ChannelName:  "Test Channel",
		VideoURL:     "https://www.youtube.com/watch?v=vid1",
		Overview:     "An overview of the video.",
		KeyPoints:    []string{"point one", "point two"},
		MainTakeaway: "The takeaway.",
	}
}

func TestNotify_Webhook(t *testing.T) {
	t.Parallel()

	var received map[string]json.RawMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("Authorization"), "webhook requests carry no token")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier := notify.NewSlack(&notify.Config{WebhookURL: server.URL}, logger.NewNoOp())

	require.NoError(t, notifier.Notify(context.Background(), testNotification()))

	require.Contains(t, received, "blocks")
	require.Contains(t, received, "text")

	var fallback string
	require.NoError(t, json.Unmarshal(received["text"], &fallback))
	assert.Contains(t, fallback, "Deep Dive")

	var blocks []map[string]any
	require.NoError(t, json.Unmarshal(received["blocks"], &blocks))
	require.NotEmpty(t, blocks)
	assert.Equal(t, "header", blocks[0]["type"])

	blob := string(received["blocks"])
	assert.Contains(t, blob, "The takeaway.")
	assert.Contains(t, blob, "point one")
	assert.Contains(t, blob, "Watch on YouTube")
}

func TestNotify_WebhookServerError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	notifier := notify.NewSlack(&notify.Config{WebhookURL: server.URL}, logger.NewNoOp())

	err := notifier.Notify(context.Background(), testNotification())
	assert.Error(t, err)
}

func TestNotify_Unconfigured(t *testing.T) {
	t.Parallel()

	notifier := notify.NewSlack(&notify.Config{}, logger.NewNoOp())

	// Missing configuration skips delivery without failing the pipeline.
	assert.NoError(t, notifier.Notify(context.Background(), testNotification()))
}

func TestNotify_MinimalNotification(t *testing.T) {
	t.Parallel()

	var received map[string]json.RawMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier := notify.NewSlack(&notify.Config{WebhookURL: server.URL}, logger.NewNoOp())

	n := testNotification()
	n.KeyPoints = nil
	n.MainTakeaway = ""
	require.NoError(t, notifier.Notify(context.Background(), n))

	blob := string(received["blocks"])
	assert.NotContains(t, blob, "Key Points")
	assert.NotContains(t, blob, "Main Takeaway")
}
