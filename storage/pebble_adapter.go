package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/pebble"
)

// PebbleStorage PebbleDB object store implementation with one collection
// per concern: object bytes and object metadata.
type PebbleStorage struct {
	collections map[string]*pebble.DB
	signer      *URLSigner
}

// Collection names and their key-value formats
const (
	collectionObjectData = "object_data" // key: {object path}, value: raw bytes
	collectionObjectMeta = "object_meta" // key: {object path}, value: JSON(objectMeta)
)

// objectMeta stored alongside every object
type objectMeta struct {
	CreatedAt   time.Time `json:"created_at"`
	ContentType string    `json:"content_type"`
}

// NewPebbleStorage create a PebbleDB object store under dataDir
func NewPebbleStorage(dataDir string, signer *URLSigner) (*PebbleStorage, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dataDir, err)
	}

	collectionNames := []string{
		collectionObjectData,
		collectionObjectMeta,
	}

	// Open PebbleDB for each collection
	collections := make(map[string]*pebble.DB)
	for _, name := range collectionNames {
		collectionPath := filepath.Join(dataDir, "store_db", name)
		db, err := pebble.Open(collectionPath, &pebble.Options{})
		if err != nil {
			for _, openedDB := range collections {
				openedDB.Close()
			}
			return nil, fmt.Errorf("failed to open collection %s at %s: %w", name, collectionPath, err)
		}
		collections[name] = db
	}

	log.Printf("PebbleDB object store opened at %s with %d collections", dataDir, len(collections))
	return &PebbleStorage{collections: collections, signer: signer}, nil
}

// ListObjects iterates the metadata collection over the prefix key range.
func (p *PebbleStorage) ListObjects(prefix string) ([]string, error) {
	metaDB := p.collections[collectionObjectMeta]

	lower := []byte(prefix)
	iter, err := metaDB.NewIter(&pebble.IterOptions{
		LowerBound: lower,
		UpperBound: keyUpperBound(lower),
	})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var names []string
	for iter.First(); iter.Valid(); iter.Next() {
		names = append(names, string(iter.Key()))
	}
	return names, iter.Error()
}

// ReadObject returns an object's bytes and metadata.
func (p *PebbleStorage) ReadObject(path string) ([]byte, ObjectInfo, error) {
	dataDB := p.collections[collectionObjectData]

	val, closer, err := dataDB.Get([]byte(path))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, ObjectInfo{}, ErrNotFound
		}
		return nil, ObjectInfo{}, err
	}
	data := make([]byte, len(val))
	copy(data, val)
	closer.Close()

	info, err := p.StatObject(path)
	if err != nil {
		return nil, ObjectInfo{}, err
	}
	return data, info, nil
}

// StatObject returns an object's metadata.
func (p *PebbleStorage) StatObject(path string) (ObjectInfo, error) {
	metaDB := p.collections[collectionObjectMeta]

	val, closer, err := metaDB.Get([]byte(path))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return ObjectInfo{}, ErrNotFound
		}
		return ObjectInfo{}, err
	}
	defer closer.Close()

	var meta objectMeta
	if err := json.Unmarshal(val, &meta); err != nil {
		return ObjectInfo{}, fmt.Errorf("failed to decode object meta for %s: %w", path, err)
	}
	return ObjectInfo{CreatedAt: meta.CreatedAt, ContentType: meta.ContentType}, nil
}

// WriteObject stores a new object and its metadata.
func (p *PebbleStorage) WriteObject(path string, data []byte, contentType string) error {
	dataDB := p.collections[collectionObjectData]
	metaDB := p.collections[collectionObjectMeta]

	metaJSON, err := json.Marshal(objectMeta{
		CreatedAt:   time.Now(),
		ContentType: contentType,
	})
	if err != nil {
		return err
	}

	if err := dataDB.Set([]byte(path), data, pebble.Sync); err != nil {
		return fmt.Errorf("failed to write object %s: %w", path, err)
	}
	if err := metaDB.Set([]byte(path), metaJSON, pebble.Sync); err != nil {
		return fmt.Errorf("failed to write object meta %s: %w", path, err)
	}
	return nil
}

// SignReadURL returns a signed download URL for path.
func (p *PebbleStorage) SignReadURL(path string, ttl time.Duration) (string, error) {
	return p.signer.Sign(path, ttl)
}

// Close closes all collections.
func (p *PebbleStorage) Close() error {
	var firstErr error
	for name, db := range p.collections {
		if err := db.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close collection %s: %w", name, err)
		}
	}
	return firstErr
}

// keyUpperBound returns the smallest key greater than every key with the
// given prefix.
func keyUpperBound(b []byte) []byte {
	end := make([]byte, len(b))
	copy(end, b)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil // prefix is all 0xff, no upper bound
}
