package archive

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zip"
)

// Entry one extracted file from an uploaded bundle archive.
type Entry struct {
	Path string
	Data []byte
}

// Extract unpacks a zip archive into its file entries. Directory entries
// are skipped; paths that are absolute or escape the archive root are
// rejected.
func Extract(data []byte) ([]Entry, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	var entries []Entry
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name := strings.ReplaceAll(f.Name, "\\", "/")
		if err := checkPath(name); err != nil {
			return nil, err
		}

		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open archive entry %s: %w", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read archive entry %s: %w", f.Name, err)
		}

		entries = append(entries, Entry{Path: name, Data: content})
	}
	return entries, nil
}

// checkPath rejects entry names that could escape the extraction root.
func checkPath(name string) error {
	if name == "" || strings.HasPrefix(name, "/") {
		return fmt.Errorf("invalid file path in archive: %q", name)
	}
	for _, seg := range strings.Split(name, "/") {
		if seg == ".." {
			return fmt.Errorf("invalid file path in archive: %q", name)
		}
	}
	return nil
}
