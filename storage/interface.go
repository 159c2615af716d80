package storage

import (
	"time"
)

// ObjectInfo metadata recorded for a stored object
type ObjectInfo struct {
	CreatedAt   time.Time
	ContentType string
}

// Storage interface for different object store implementations.
// The update engine only appends new objects; it never updates or
// deletes existing ones.
type Storage interface {
	// ListObjects returns the full names of all objects under prefix.
	ListObjects(prefix string) ([]string, error)

	// ReadObject returns an object's bytes and metadata.
	ReadObject(path string) ([]byte, ObjectInfo, error)

	// StatObject returns an object's metadata without its bytes.
	StatObject(path string) (ObjectInfo, error)

	// WriteObject stores a new object.
	WriteObject(path string, data []byte, contentType string) error

	// SignReadURL returns a time-limited URL for downloading an object.
	SignReadURL(path string, ttl time.Duration) (string, error)

	// General operations
	Close() error
}

// StorageType storage backend type
type StorageType string

const (
	StorageTypePebble StorageType = "pebble"
	StorageTypeLocal  StorageType = "local"
	StorageTypeMemory StorageType = "memory"
)

// Config storage backend configuration
type Config struct {
	Type StorageType

	// DataDir is the PebbleDB directory (pebble backend).
	DataDir string

	// BasePath is the filesystem root (local backend).
	BasePath string

	// PublicURL and SigningKey configure the signed asset URL scheme.
	PublicURL  string
	SigningKey string
}

// New create a storage backend for the given configuration
func New(cfg Config) (Storage, error) {
	signer := NewURLSigner(cfg.PublicURL, cfg.SigningKey)

	switch cfg.Type {
	case StorageTypePebble:
		return NewPebbleStorage(cfg.DataDir, signer)
	case StorageTypeLocal:
		return NewLocalStorage(cfg.BasePath, signer)
	case StorageTypeMemory:
		return NewMemoryStorage(signer), nil
	default:
		return nil, ErrUnsupportedStorageType
	}
}
