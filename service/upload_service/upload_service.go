package upload_service

import (
	"errors"
	"fmt"
	"mime"
	"path"
	"strconv"
	"time"

	"expo-update-service/archive"
	"expo-update-service/engine"
	"expo-update-service/storage"
	"expo-update-service/tool"
)

// UploadService handles bundle uploads and rollback issuance. All writes
// are append-only: a new timestamped object is created, existing bundle
// state is never mutated or deleted.
type UploadService struct {
	store  storage.Storage
	engine *engine.Engine
	cfg    engine.Config
}

// NewUploadService create an upload service instance
func NewUploadService(store storage.Storage, cfg engine.Config) *UploadService {
	eng := engine.New(store, cfg)
	return &UploadService{store: store, engine: eng, cfg: eng.Config()}
}

var (
	// ErrDuplicateUpdate the uploaded bundle matches the newest bundle's
	// metadata identity
	ErrDuplicateUpdate = errors.New("update already exists")

	// ErrInvalidBundle the archive holds no usable update content
	ErrInvalidBundle = errors.New("invalid update bundle")
)

// UploadBundle extracts an uploaded archive and appends its files as a new
// timestamped bundle. When the channel's newest bundle is a normal update,
// a byte-identical metadata.json short-circuits with ErrDuplicateUpdate.
func (s *UploadService) UploadBundle(ch engine.Channel, bundleTimestamp string, zipData []byte) error {
	entries, err := archive.Extract(zipData)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return ErrInvalidBundle
	}

	newMetadata := findEntry(entries, s.cfg.MetadataFileName)
	if newMetadata == nil {
		return ErrInvalidBundle
	}

	cat, err := s.engine.LoadCatalog(ch)
	if err != nil {
		return err
	}
	if latest := cat.Latest(); latest != "" && s.engine.ClassifyBundle(cat, latest) == engine.KindNormalUpdate {
		meta, err := s.engine.ReadBundleMetadata(ch, latest)
		if err != nil {
			return err
		}
		if meta.ID == tool.SHA256Hex(newMetadata.Data) {
			return ErrDuplicateUpdate
		}
	}

	for _, entry := range entries {
		objectPath := s.cfg.BundlePath(ch, bundleTimestamp, entry.Path)
		contentType := mime.TypeByExtension(path.Ext(entry.Path))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		if err := s.store.WriteObject(objectPath, entry.Data, contentType); err != nil {
			return fmt.Errorf("failed to store bundle file %s: %w", entry.Path, err)
		}
	}
	return nil
}

// RollbackOutcome describes what a rollback request appended.
type RollbackOutcome struct {
	// Timestamp is the new rollback bundle's timestamp.
	Timestamp string

	// Embedded is set when an embedded-rollback marker was written.
	Embedded bool

	// Bundle is the pointer target when a rollback pointer was written.
	Bundle string
}

// RollbackToEmbedded appends an embedded-rollback marker as a new bundle.
// The channel must already hold at least one bundle.
func (s *UploadService) RollbackToEmbedded(ch engine.Channel) (*RollbackOutcome, error) {
	cat, err := s.engine.LoadCatalog(ch)
	if err != nil {
		return nil, err
	}
	if cat.IsEmpty() {
		return nil, engine.ErrNoPreviousUpdate
	}
	ts := newBundleTimestamp()
	if err := s.writeEmbeddedMarker(ch, ts); err != nil {
		return nil, err
	}
	return &RollbackOutcome{Timestamp: ts, Embedded: true}, nil
}

// RollbackToPrevious resolves the previous-update target for the channel
// and appends either a rollback pointer or an embedded-rollback marker.
func (s *UploadService) RollbackToPrevious(ch engine.Channel) (*RollbackOutcome, error) {
	target, err := s.engine.PreviousUpdateTarget(ch)
	if err != nil {
		return nil, err
	}

	ts := newBundleTimestamp()
	if target.Embedded {
		if err := s.writeEmbeddedMarker(ch, ts); err != nil {
			return nil, err
		}
		return &RollbackOutcome{Timestamp: ts, Embedded: true}, nil
	}

	pointerPath := s.cfg.BundlePath(ch, ts, s.cfg.RollbackFileName)
	if err := s.store.WriteObject(pointerPath, []byte(target.Bundle), "text/plain"); err != nil {
		return nil, fmt.Errorf("failed to write rollback pointer: %w", err)
	}
	return &RollbackOutcome{Timestamp: ts, Bundle: target.Bundle}, nil
}

func (s *UploadService) writeEmbeddedMarker(ch engine.Channel, ts string) error {
	markerPath := s.cfg.BundlePath(ch, ts, s.cfg.RollbackEmbeddedFileName)
	if err := s.store.WriteObject(markerPath, []byte{}, "text/plain"); err != nil {
		return fmt.Errorf("failed to write rollback marker: %w", err)
	}
	return nil
}

func newBundleTimestamp() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}

func findEntry(entries []archive.Entry, name string) *archive.Entry {
	for i := range entries {
		if entries[i].Path == name {
			return &entries[i]
		}
	}
	return nil
}
