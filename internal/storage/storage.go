// Package storage provides blob storage backends for the processed index
// and saved notes. A single BlobStore implementation is selected at startup;
// callers never branch on the backend type.
package storage

import (
	"context"
	"errors"
)

// ErrObjectNotFound is returned by Get when the key does not exist in the
// store. Callers rely on this being distinguishable from transient backend
// errors: "absent" is safe to default, "unreadable" is not.
var ErrObjectNotFound = errors.New("object not found")

// BlobStore reads and writes opaque byte blobs at string keys.
type BlobStore interface {
	// Get returns the blob at key, or an error wrapping ErrObjectNotFound
	// if the key is absent. Any other error indicates a backend failure.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put overwrites the blob at key.
	Put(ctx context.Context, key string, data []byte, contentType string) error
	// Location returns a human-readable locator for key (a path or URL).
	Location(key string) string
}

// Config holds blob storage configuration.
type Config struct {
	// Backend selects the storage implementation ("local" or "s3")
	Backend string `yaml:"backend"`
	// LocalDir is the root directory for the local backend
	LocalDir string `yaml:"local_dir"`
	// Endpoint is the S3-compatible server address (e.g., "s3.amazonaws.com")
	Endpoint string `yaml:"endpoint"`
	// AccessKey for object store authentication
	AccessKey string `yaml:"access_key"`
	// SecretKey for object store authentication
	SecretKey string `yaml:"secret_key"`
	// UseSSL enables HTTPS for object store connections
	UseSSL bool `yaml:"use_ssl"`
	// Bucket is the bucket holding notes and index metadata
	Bucket string `yaml:"bucket"`
	// Region is the bucket region
	Region string `yaml:"region"`
}

// Backend names accepted in Config.Backend.
const (
	BackendLocal = "local"
	BackendS3    = "s3"
)

// Validate validates the storage configuration.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendLocal:
		if c.LocalDir == "" {
			return errors.New("storage local_dir required for local backend")
		}
	case BackendS3:
		if c.Endpoint == "" {
			return errors.New("storage endpoint required for s3 backend")
		}
		if c.Bucket == "" {
			return errors.New("storage bucket required for s3 backend")
		}
	default:
		return errors.New("storage backend must be \"local\" or \"s3\"")
	}
	return nil
}
