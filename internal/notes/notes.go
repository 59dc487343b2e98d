// Package notes writes summary notes as markdown documents in blob storage.
package notes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonesrussell/vidwatch/internal/logger"
	"github.com/jonesrussell/vidwatch/internal/storage"
)

const (
	notesPrefix     = "notes/"
	noteContentType = "text/markdown"
	maxFilenameLen  = 100
	filenameStamp   = "20060102_150405"
)

// Writer persists notes and returns the location they were written to.
type Writer struct {
	blob   storage.BlobStore
	logger logger.Interface
	now    func() time.Time
}

// NewWriter creates a note writer over the given blob store.
func NewWriter(blob storage.BlobStore, log logger.Interface) *Writer {
	return &Writer{blob: blob, logger: log, now: time.Now}
}

// Write saves a markdown note and returns its location (a file path or
// s3:// URL depending on the backend).
func (w *Writer) Write(ctx context.Context, title, content string) (string, error) {
	if content == "" {
		return "", fmt.Errorf("note content cannot be empty")
	}

	now := w.now()
	key := fmt.Sprintf("%s%s_%s.md",
		notesPrefix, now.Format(filenameStamp), SanitizeFilename(title))

	body := fmt.Sprintf("# %s\n\n*Generated: %s*\n\n%s",
		title, now.Format(time.RFC3339), content)

	if err := w.blob.Put(ctx, key, []byte(body), noteContentType); err != nil {
		return "", fmt.Errorf("save note %q: %w", title, err)
	}

	location := w.blob.Location(key)
	w.logger.Info("Note saved", "title", title, "location", location)
	return location, nil
}

// SanitizeFilename converts a title into a safe filename fragment:
// filesystem-hostile characters are stripped, spaces become underscores,
// and the result is capped at 100 characters.
func SanitizeFilename(title string) string {
	safe := strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
			return -1
		case ' ':
			return '_'
		}
		return r
	}, title)

	if len(safe) > maxFilenameLen {
		safe = safe[:maxFilenameLen]
	}
	return safe
}
