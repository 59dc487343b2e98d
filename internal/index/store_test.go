package index_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/vidwatch/internal/index"
	"github.com/jonesrussell/vidwatch/internal/logger"
	"github.com/jonesrussell/vidwatch/internal/storage"
)

// fakeBlobStore is an in-memory BlobStore with injectable failures.
type fakeBlobStore struct {
	objects map[string][]byte
	getErr  error
	putErr  error
	puts    int
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: make(map[string][]byte)}
}

func (f *fakeBlobStore) Get(_ context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	data, ok := f.objects[key]
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, storage.ErrObjectNotFound)
	}
	return data, nil
}

func (f *fakeBlobStore) Put(_ context.Context, key string, data []byte, _ string) error {
	f.puts++
	if f.putErr != nil {
		return f.putErr
	}
	f.objects[key] = data
	return nil
}

func (f *fakeBlobStore) Location(key string) string {
	return "fake://" + key
}

func newTestStore(blob storage.BlobStore) *index.Store {
	return index.NewStore(blob, logger.NewNoOp())
}

func TestStore_LoadFreshStart(t *testing.T) {
	t.Parallel()

	store := newTestStore(newFakeBlobStore())

	idx, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, idx.Videos)
	assert.Empty(t, idx.Channels)
}

func TestStore_LoadCanonicalKey(t *testing.T) {
	t.Parallel()

	blob := newFakeBlobStore()
	blob.objects[index.IndexKey] = []byte(
		`{"videos":{"v1":{"status":"processed","title":"First"}},"channels":{}}`)
	store := newTestStore(blob)

	idx, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Contains(t, idx.Videos, "v1")
	assert.Equal(t, index.StatusProcessed, idx.Videos["v1"].Status)
	assert.Equal(t, "First", idx.Videos["v1"].Title)
}

func TestStore_LoadLegacyFallback(t *testing.T) {
	t.Parallel()

	blob := newFakeBlobStore()
	blob.objects[index.LegacyIndexKey] = []byte(
		`{"videos":{"old1":{"status":"processed"}},"channels":{}}`)
	store := newTestStore(blob)

	idx, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Contains(t, idx.Videos, "old1")
}

func TestStore_LoadTransientErrorIsNotEmpty(t *testing.T) {
	t.Parallel()

	blob := newFakeBlobStore()
	blob.getErr = errors.New("connection timed out")
	store := newTestStore(blob)

	idx, err := store.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, index.ErrIndexLoad)
	assert.Nil(t, idx)
}

func TestStore_LoadCorruptDocument(t *testing.T) {
	t.Parallel()

	blob := newFakeBlobStore()
	blob.objects[index.IndexKey] = []byte(`{"videos": not json`)
	store := newTestStore(blob)

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, index.ErrIndexLoad)
}

func TestStore_LoadToleratesMissingMaps(t *testing.T) {
	t.Parallel()

	blob := newFakeBlobStore()
	blob.objects[index.IndexKey] = []byte(`{}`)
	store := newTestStore(blob)

	idx, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, idx.Videos)
	assert.NotNil(t, idx.Channels)
}

func TestStore_SaveWritesCanonicalKeyOnly(t *testing.T) {
	t.Parallel()

	blob := newFakeBlobStore()
	store := newTestStore(blob)

	idx := index.NewIndex()
	idx.Videos["v1"] = index.VideoRecord{Status: index.StatusProcessing}

	require.NoError(t, store.Save(context.Background(), idx))
	assert.Contains(t, blob.objects, index.IndexKey)
	assert.NotContains(t, blob.objects, index.LegacyIndexKey)
}

func TestStore_RoundTripPreservesUnknownFields(t *testing.T) {
	t.Parallel()

	blob := newFakeBlobStore()
	blob.objects[index.IndexKey] = []byte(`{
		"videos": {
			"v1": {"status": "processed", "title": "T", "retry_count": 3}
		},
		"channels": {
			"c1": {"name": "Chan", "subscriber_tier": "gold"}
		}
	}`)
	store := newTestStore(blob)

	ctx := context.Background()
	idx, err := store.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, idx))

	var saved map[string]map[string]map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(blob.objects[index.IndexKey], &saved))
	assert.Contains(t, saved["videos"]["v1"], "retry_count")
	assert.Contains(t, saved["channels"]["c1"], "subscriber_tier")
}
