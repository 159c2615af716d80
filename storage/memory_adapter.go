package storage

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryStorage in-memory object store. Used by unit tests and local
// development; contents are lost on shutdown.
type MemoryStorage struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
	signer  *URLSigner
}

type memoryObject struct {
	data        []byte
	contentType string
	createdAt   time.Time
}

// NewMemoryStorage create an empty in-memory store
func NewMemoryStorage(signer *URLSigner) *MemoryStorage {
	return &MemoryStorage{
		objects: make(map[string]memoryObject),
		signer:  signer,
	}
}

// ListObjects returns all object names with the given prefix, sorted.
func (m *MemoryStorage) ListObjects(prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var names []string
	for name := range m.objects {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// ReadObject returns an object's bytes and metadata.
func (m *MemoryStorage) ReadObject(path string) ([]byte, ObjectInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	obj, ok := m.objects[path]
	if !ok {
		return nil, ObjectInfo{}, ErrNotFound
	}
	data := make([]byte, len(obj.data))
	copy(data, obj.data)
	return data, ObjectInfo{CreatedAt: obj.createdAt, ContentType: obj.contentType}, nil
}

// StatObject returns an object's metadata.
func (m *MemoryStorage) StatObject(path string) (ObjectInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	obj, ok := m.objects[path]
	if !ok {
		return ObjectInfo{}, ErrNotFound
	}
	return ObjectInfo{CreatedAt: obj.createdAt, ContentType: obj.contentType}, nil
}

// WriteObject stores a new object.
func (m *MemoryStorage) WriteObject(path string, data []byte, contentType string) error {
	return m.WriteObjectAt(path, data, contentType, time.Now())
}

// WriteObjectAt stores an object with an explicit creation time. Tests use
// it to control bundle timestamps.
func (m *MemoryStorage) WriteObjectAt(path string, data []byte, contentType string, createdAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	m.objects[path] = memoryObject{
		data:        stored,
		contentType: contentType,
		createdAt:   createdAt,
	}
	return nil
}

// SignReadURL returns a signed download URL for path.
func (m *MemoryStorage) SignReadURL(path string, ttl time.Duration) (string, error) {
	return m.signer.Sign(path, ttl)
}

// Close implements Storage.
func (m *MemoryStorage) Close() error {
	return nil
}
