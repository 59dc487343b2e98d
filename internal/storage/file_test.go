package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/vidwatch/internal/storage"
)

func TestFileStore_PutGet(t *testing.T) {
	t.Parallel()

	store := storage.NewFileStore(t.TempDir())
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "metadata/index.json", []byte(`{"videos":{}}`), "application/json"))

	data, err := store.Get(ctx, "metadata/index.json")
	require.NoError(t, err)
	assert.Equal(t, `{"videos":{}}`, string(data))
}

func TestFileStore_PutCreatesNestedDirectories(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := storage.NewFileStore(dir)

	require.NoError(t, store.Put(context.Background(), "notes/2024/note.md", []byte("# hi"), "text/markdown"))

	_, err := os.Stat(filepath.Join(dir, "notes", "2024", "note.md"))
	assert.NoError(t, err)
}

func TestFileStore_GetMissingKey(t *testing.T) {
	t.Parallel()

	store := storage.NewFileStore(t.TempDir())

	_, err := store.Get(context.Background(), "metadata/missing.json")
	assert.ErrorIs(t, err, storage.ErrObjectNotFound)
}

func TestFileStore_PutOverwrites(t *testing.T) {
	t.Parallel()

	store := storage.NewFileStore(t.TempDir())
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "k", []byte("one"), ""))
	require.NoError(t, store.Put(ctx, "k", []byte("two"), ""))

	data, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))
}

func TestFileStore_Location(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := storage.NewFileStore(dir)

	assert.Equal(t, filepath.Join(dir, "notes", "a.md"), store.Location("notes/a.md"))
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     storage.Config
		wantErr bool
	}{
		{
			name: "valid local",
			cfg:  storage.Config{Backend: storage.BackendLocal, LocalDir: "./data"},
		},
		{
			name:    "local without dir",
			cfg:     storage.Config{Backend: storage.BackendLocal},
			wantErr: true,
		},
		{
			name: "valid s3",
			cfg: storage.Config{
				Backend:  storage.BackendS3,
				Endpoint: "s3.amazonaws.com",
				Bucket:   "notes-bucket",
			},
		},
		{
			name:    "s3 without bucket",
			cfg:     storage.Config{Backend: storage.BackendS3, Endpoint: "s3.amazonaws.com"},
			wantErr: true,
		},
		{
			name:    "unknown backend",
			cfg:     storage.Config{Backend: "ftp"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
