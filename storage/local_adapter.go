package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LocalStorage filesystem object store. Object names map directly to
// file paths under the base directory; object creation time is the
// file modification time. List prefixes must align with directory
// boundaries, which holds for channel and root-folder prefixes.
type LocalStorage struct {
	basePath string
	signer   *URLSigner
}

// NewLocalStorage create a filesystem store rooted at basePath
func NewLocalStorage(basePath string, signer *URLSigner) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	return &LocalStorage{basePath: basePath, signer: signer}, nil
}

// ListObjects walks the prefix directory and returns full object names.
func (l *LocalStorage) ListObjects(prefix string) ([]string, error) {
	root := filepath.Join(l.basePath, filepath.FromSlash(prefix))
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if !info.IsDir() {
		return []string{prefix}, nil
	}

	var names []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		names = append(names, prefix+"/"+filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// ReadObject returns a file's bytes and metadata.
func (l *LocalStorage) ReadObject(path string) ([]byte, ObjectInfo, error) {
	full, err := l.resolve(path)
	if err != nil {
		return nil, ObjectInfo{}, err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ObjectInfo{}, ErrNotFound
		}
		return nil, ObjectInfo{}, err
	}
	info, err := os.Stat(full)
	if err != nil {
		return nil, ObjectInfo{}, err
	}
	return data, l.objectInfo(path, info.ModTime()), nil
}

// StatObject returns a file's metadata.
func (l *LocalStorage) StatObject(path string) (ObjectInfo, error) {
	full, err := l.resolve(path)
	if err != nil {
		return ObjectInfo{}, err
	}
	info, err := os.Stat(full)
	if err != nil {
		if os.IsNotExist(err) {
			return ObjectInfo{}, ErrNotFound
		}
		return ObjectInfo{}, err
	}
	return l.objectInfo(path, info.ModTime()), nil
}

// WriteObject stores a new file, creating parent directories as needed.
// The content type is not persisted; reads infer it from the extension.
func (l *LocalStorage) WriteObject(path string, data []byte, contentType string) error {
	full, err := l.resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return fmt.Errorf("failed to create object directory: %w", err)
	}
	return os.WriteFile(full, data, 0644)
}

// SignReadURL returns a signed download URL for path.
func (l *LocalStorage) SignReadURL(path string, ttl time.Duration) (string, error) {
	return l.signer.Sign(path, ttl)
}

// Close implements Storage.
func (l *LocalStorage) Close() error {
	return nil
}

// resolve maps an object name to a file path and rejects escapes from
// the base directory.
func (l *LocalStorage) resolve(path string) (string, error) {
	full := filepath.Join(l.basePath, filepath.FromSlash(path))
	base := filepath.Clean(l.basePath)
	if full != base && !strings.HasPrefix(full, base+string(os.PathSeparator)) {
		return "", errors.New("invalid object path")
	}
	return full, nil
}

func (l *LocalStorage) objectInfo(path string, modTime time.Time) ObjectInfo {
	contentType := mime.TypeByExtension(filepath.Ext(path))
	return ObjectInfo{CreatedAt: modTime, ContentType: contentType}
}
