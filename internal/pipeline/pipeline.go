// Package pipeline runs the expensive per-video work: transcript retrieval,
// summarization, note writing, notification, and the final commit to the
// processed index.
//
// Commit ordering is deliberate: the index is only updated after the note
// is durably written, so a failure anywhere before that leaves the video's
// claim in "processing" and nothing half-recorded. Notification failures do
// not block the commit.
package pipeline

import (
	"context"
	"fmt"

	"github.com/jonesrussell/vidwatch/internal/index"
	"github.com/jonesrussell/vidwatch/internal/logger"
	"github.com/jonesrussell/vidwatch/internal/notify"
	"github.com/jonesrussell/vidwatch/internal/summarizer"
	"github.com/jonesrussell/vidwatch/internal/transcript"
)

// Item is one video handed to the runner. Transcript may be pre-fetched by
// the caller; when empty the runner fetches it.
type Item struct {
	VideoID     string
	VideoURL    string
	Title       string
	ChannelID   string
	ChannelName string
	Transcript  string
}

// NoteWriter persists a note and returns its location.
type NoteWriter interface {
	Write(ctx context.Context, title, content string) (string, error)
}

// Committer records a completed video in the processed index.
type Committer interface {
	Commit(ctx context.Context, videoID string, meta index.VideoMeta, notePath string) error
}

// Runner orchestrates the processing pipeline for one video at a time.
type Runner struct {
	transcripts transcript.Fetcher
	summarizer  summarizer.Summarizer
	notes       NoteWriter
	notifier    notify.Notifier
	committer   Committer
	logger      logger.Interface
}

// NewRunner creates a pipeline runner.
func NewRunner(
	transcripts transcript.Fetcher,
	summary summarizer.Summarizer,
	noteWriter NoteWriter,
	notifier notify.Notifier,
	committer Committer,
	log logger.Interface,
) *Runner {
	return &Runner{
		transcripts: transcripts,
		summarizer:  summary,
		notes:       noteWriter,
		notifier:    notifier,
		committer:   committer,
		logger:      log,
	}
}

// Run processes one video end to end. On permanent content failures
// (transcripts disabled, video gone) the video is left uncommitted so a
// later cycle can retry if the source condition changes.
func (r *Runner) Run(ctx context.Context, item Item) error {
	log := r.logger.With("video_id", item.VideoID, "title", item.Title)

	text := item.Transcript
	if text == "" {
		var err error
		text, err = r.transcripts.Fetch(ctx, item.VideoID)
		if err != nil {
			if transcript.IsPermanent(err) {
				log.Warn("Video has no usable transcript, skipping", "error", err)
			}
			return fmt.Errorf("pipeline for %s: %w", item.VideoID, err)
		}
	}

	summary, err := r.summarizer.Summarize(ctx, summarizer.Request{
		VideoID:     item.VideoID,
		VideoURL:    item.VideoURL,
		Title:       item.Title,
		ChannelName: item.ChannelName,
		Transcript:  text,
	})
	if err != nil {
		return fmt.Errorf("pipeline for %s: %w", item.VideoID, err)
	}

	notePath, err := r.notes.Write(ctx, item.Title, summary.Markdown(item.VideoURL, item.ChannelName))
	if err != nil {
		return fmt.Errorf("pipeline for %s: %w", item.VideoID, err)
	}

	if err := r.notifier.Notify(ctx, notify.Notification{
		VideoTitle:   item.Title,
		ChannelName:  item.ChannelName,
		VideoURL:     item.VideoURL,
		Overview:     summary.Overview,
		KeyPoints:    summary.KeyPoints,
		MainTakeaway: summary.MainTakeaway,
	}); err != nil {
		// Best-effort: the note exists and the commit still happens.
		log.Warn("Notification failed", "error", err)
	}

	if err := r.committer.Commit(ctx, item.VideoID, index.VideoMeta{
		Title:       item.Title,
		ChannelID:   item.ChannelID,
		ChannelName: item.ChannelName,
	}, notePath); err != nil {
		return fmt.Errorf("pipeline for %s: %w", item.VideoID, err)
	}

	log.Info("Video processed", "note_path", notePath)
	return nil
}
