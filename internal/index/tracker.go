package index

import (
	"context"
	"fmt"
	"time"

	"github.com/jonesrussell/vidwatch/internal/logger"
)

// VideoMeta is the descriptive metadata recorded with a claim or commit.
type VideoMeta struct {
	Title       string
	ChannelID   string
	ChannelName string
}

// ChannelMeta is the descriptive metadata recorded with a channel checkpoint.
type ChannelMeta struct {
	Name string
	URL  string
}

// Tracker layers the claim/commit protocol over the index store. Every
// method is a complete load-mutate-save cycle; none of them hold the index
// across external work.
type Tracker struct {
	store  *Store
	logger logger.Interface
	now    func() time.Time
}

// NewTracker creates a tracker over the given index store.
func NewTracker(store *Store, log logger.Interface) *Tracker {
	return &Tracker{
		store:  store,
		logger: log,
		now:    time.Now,
	}
}

// IsProcessed reports whether a record exists for videoID in any state.
// A claim still in "processing" counts: once any actor has claimed the
// video, no second actor should start the pipeline for it.
//
// If the index cannot be loaded the video is reported as processed. Running
// the expensive pipeline twice costs more than skipping one poll cycle.
func (t *Tracker) IsProcessed(ctx context.Context, videoID string) bool {
	idx, err := t.store.Load(ctx)
	if err != nil {
		t.logger.Error("Assuming video already processed: index unavailable",
			"video_id", videoID, "error", err)
		return true
	}
	_, ok := idx.Videos[videoID]
	return ok
}

// Claim records that this actor is starting the pipeline for videoID. It
// returns true only when the claim was durably written; on false the caller
// must skip the video. A false return covers three cases: the index could
// not be loaded, another actor already holds a record for the video, or the
// save failed (the claim is lost and a later poll may retry).
func (t *Tracker) Claim(ctx context.Context, videoID string, meta VideoMeta) bool {
	idx, err := t.store.Load(ctx)
	if err != nil {
		t.logger.Error("Skipping claim: index unavailable",
			"video_id", videoID, "error", err)
		return false
	}

	if _, exists := idx.Videos[videoID]; exists {
		t.logger.Info("Video already claimed or processed",
			"video_id", videoID, "title", meta.Title)
		return false
	}

	idx.Videos[videoID] = VideoRecord{
		Status:            StatusProcessing,
		ProcessingStarted: t.timestamp(),
		Title:             meta.Title,
		ChannelID:         meta.ChannelID,
		ChannelName:       meta.ChannelName,
	}

	if err := t.store.Save(ctx, idx); err != nil {
		t.logger.Error("Failed to save claim", "video_id", videoID, "error", err)
		return false
	}
	return true
}

// Commit marks videoID processed and records where the note was written.
// A prior claim is not required (direct single-video runs commit without
// one), but when a claim exists its processing_started timestamp is
// preserved.
//
// If the index cannot be loaded the write is skipped entirely and the error
// returned: writing a synthesized record over an unreadable index would
// destroy every other claim in it.
func (t *Tracker) Commit(ctx context.Context, videoID string, meta VideoMeta, notePath string) error {
	idx, err := t.store.Load(ctx)
	if err != nil {
		t.logger.Error("Skipping commit: index unavailable",
			"video_id", videoID, "error", err)
		return fmt.Errorf("commit %s: %w", videoID, err)
	}

	existing := idx.Videos[videoID]

	idx.Videos[videoID] = VideoRecord{
		Status:            StatusProcessed,
		ProcessingStarted: existing.ProcessingStarted,
		ProcessedAt:       t.timestamp(),
		Title:             meta.Title,
		ChannelID:         meta.ChannelID,
		ChannelName:       meta.ChannelName,
		NotePath:          notePath,
		Extra:             existing.Extra,
	}

	if err := t.store.Save(ctx, idx); err != nil {
		return fmt.Errorf("commit %s: %w", videoID, err)
	}

	t.logger.Info("Video marked processed",
		"video_id", videoID, "title", meta.Title, "note_path", notePath)
	return nil
}

// CheckpointChannel records that the channel was polled and which video the
// poll surfaced. Pure bookkeeping: callers treat failures as non-fatal, but
// the no-write-on-unreadable-index rule still applies.
func (t *Tracker) CheckpointChannel(ctx context.Context, channelID string, meta ChannelMeta, lastVideoID string) error {
	idx, err := t.store.Load(ctx)
	if err != nil {
		t.logger.Error("Skipping channel checkpoint: index unavailable",
			"channel_id", channelID, "error", err)
		return fmt.Errorf("checkpoint %s: %w", channelID, err)
	}

	existing := idx.Channels[channelID]

	idx.Channels[channelID] = ChannelRecord{
		Name:        meta.Name,
		URL:         meta.URL,
		LastChecked: t.timestamp(),
		LastVideoID: lastVideoID,
		Extra:       existing.Extra,
	}

	if err := t.store.Save(ctx, idx); err != nil {
		return fmt.Errorf("checkpoint %s: %w", channelID, err)
	}
	return nil
}

func (t *Tracker) timestamp() string {
	return t.now().Format(time.RFC3339)
}
