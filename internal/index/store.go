package index

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jonesrussell/vidwatch/internal/logger"
	"github.com/jonesrussell/vidwatch/internal/storage"
)

// Persisted document locations. IndexKey is canonical; LegacyIndexKey is a
// read-only fallback kept for deployments whose index predates the
// metadata/ layout.
const (
	IndexKey       = "metadata/processed_videos.json"
	LegacyIndexKey = "notes/processed_videos.json"

	indexContentType = "application/json"
)

// ErrIndexLoad is returned when the index exists but cannot be read or
// decoded. It is deliberately distinct from the absent-document case: a
// missing index means a fresh start, an unreadable one means the true
// state is unknown and nothing may be written back over it.
var ErrIndexLoad = errors.New("processed index load failed")

// Store persists the Index document in a blob store.
type Store struct {
	blob   storage.BlobStore
	logger logger.Interface
}

// NewStore creates an index store over the given blob store.
func NewStore(blob storage.BlobStore, log logger.Interface) *Store {
	return &Store{blob: blob, logger: log}
}

// Load fetches and decodes the index document. An absent document (at both
// the canonical and legacy keys) is not an error: a fresh empty index is
// returned. Every other failure wraps ErrIndexLoad so callers can refuse
// to write.
func (s *Store) Load(ctx context.Context) (*Index, error) {
	data, err := s.blob.Get(ctx, IndexKey)
	if errors.Is(err, storage.ErrObjectNotFound) {
		data, err = s.blob.Get(ctx, LegacyIndexKey)
		if errors.Is(err, storage.ErrObjectNotFound) {
			return NewIndex(), nil
		}
	}
	if err != nil {
		s.logger.Error("Failed to load processed index", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrIndexLoad, err)
	}

	idx := NewIndex()
	if err := json.Unmarshal(data, idx); err != nil {
		s.logger.Error("Failed to decode processed index", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrIndexLoad, err)
	}
	if idx.Videos == nil {
		idx.Videos = make(map[string]VideoRecord)
	}
	if idx.Channels == nil {
		idx.Channels = make(map[string]ChannelRecord)
	}
	return idx, nil
}

// Save encodes the index and overwrites the canonical document. The legacy
// key is never written. Last writer wins: there is no version token, so
// callers keep the load-mutate-save window short and never hold the index
// across external I/O.
func (s *Store) Save(ctx context.Context, idx *Index) error {
	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return fmt.Errorf("encode processed index: %w", err)
	}
	if err := s.blob.Put(ctx, IndexKey, data, indexContentType); err != nil {
		return fmt.Errorf("save processed index: %w", err)
	}
	return nil
}
