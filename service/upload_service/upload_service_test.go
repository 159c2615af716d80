package upload_service

import (
	"bytes"
	"errors"
	"testing"

	"github.com/klauspost/compress/zip"

	"expo-update-service/engine"
	"expo-update-service/storage"
)

var testChannel = engine.Channel{UpdatesKey: "app", Platform: "ios", RuntimeVersion: "1.0.0"}

func newTestService(t *testing.T) (*UploadService, *storage.MemoryStorage) {
	t.Helper()
	store := storage.NewMemoryStorage(storage.NewURLSigner("http://localhost:7290", "test-key"))
	return NewUploadService(store, engine.Config{}), store
}

// buildBundleZip assembles a minimal valid bundle archive.
func buildBundleZip(t *testing.T, metadata string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	files := map[string]string{
		"metadata.json":   metadata,
		"bundles/ios.js":  "var x=1;",
		"expoConfig.json": `{"name":"demo"}`,
	}
	for name, content := range files {
		f, err := w.Create(name)
		if err != nil {
			t.Fatalf("failed to create zip entry: %v", err)
		}
		f.Write([]byte(content))
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}
	return buf.Bytes()
}

const metadataV1 = `{"version":0,"fileMetadata":{"ios":{"bundle":"bundles/ios.js","assets":[]}}}`
const metadataV2 = `{"version":0,"fileMetadata":{"ios":{"bundle":"bundles/ios2.js","assets":[]}}}`

func TestUploadBundle(t *testing.T) {
	svc, store := newTestService(t)

	if err := svc.UploadBundle(testChannel, "100", buildBundleZip(t, metadataV1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, _, err := store.ReadObject("updates/app-ios/1.0.0/100/metadata.json")
	if err != nil {
		t.Fatalf("expected metadata stored: %v", err)
	}
	if string(data) != metadataV1 {
		t.Fatalf("unexpected metadata content: %s", data)
	}
	if _, _, err := store.ReadObject("updates/app-ios/1.0.0/100/bundles/ios.js"); err != nil {
		t.Fatalf("expected launch bundle stored: %v", err)
	}
}

func TestUploadBundleDuplicate(t *testing.T) {
	svc, _ := newTestService(t)

	if err := svc.UploadBundle(testChannel, "100", buildBundleZip(t, metadataV1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.UploadBundle(testChannel, "200", buildBundleZip(t, metadataV1)); !errors.Is(err, ErrDuplicateUpdate) {
		t.Fatalf("expected ErrDuplicateUpdate, got %v", err)
	}
	// Different metadata bytes are not a duplicate.
	if err := svc.UploadBundle(testChannel, "200", buildBundleZip(t, metadataV2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUploadBundleDuplicateCheckSkipsRollbackHead(t *testing.T) {
	svc, store := newTestService(t)

	if err := svc.UploadBundle(testChannel, "100", buildBundleZip(t, metadataV1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Newest bundle is now a rollback marker; re-uploading the same
	// metadata must go through.
	store.WriteObject("updates/app-ios/1.0.0/200/rollback_embedded", []byte{}, "text/plain")
	if err := svc.UploadBundle(testChannel, "300", buildBundleZip(t, metadataV1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUploadBundleWithoutMetadata(t *testing.T) {
	svc, _ := newTestService(t)

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, _ := w.Create("bundles/ios.js")
	f.Write([]byte("var x=1;"))
	w.Close()

	if err := svc.UploadBundle(testChannel, "100", buf.Bytes()); !errors.Is(err, ErrInvalidBundle) {
		t.Fatalf("expected ErrInvalidBundle, got %v", err)
	}
}

func TestUploadBundleEmptyArchive(t *testing.T) {
	svc, _ := newTestService(t)

	var buf bytes.Buffer
	zip.NewWriter(&buf).Close()

	if err := svc.UploadBundle(testChannel, "100", buf.Bytes()); !errors.Is(err, ErrInvalidBundle) {
		t.Fatalf("expected ErrInvalidBundle, got %v", err)
	}
}

func TestRollbackToEmbedded(t *testing.T) {
	svc, store := newTestService(t)

	if err := svc.UploadBundle(testChannel, "100", buildBundleZip(t, metadataV1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	outcome, err := svc.RollbackToEmbedded(testChannel)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !outcome.Embedded || outcome.Timestamp == "" {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}

	markerPath := "updates/app-ios/1.0.0/" + outcome.Timestamp + "/rollback_embedded"
	if _, err := store.StatObject(markerPath); err != nil {
		t.Fatalf("expected embedded marker at %s: %v", markerPath, err)
	}
}

func TestRollbackToEmbeddedEmptyChannel(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.RollbackToEmbedded(testChannel); !errors.Is(err, engine.ErrNoPreviousUpdate) {
		t.Fatalf("expected ErrNoPreviousUpdate, got %v", err)
	}
}

func TestRollbackToPreviousWritesPointer(t *testing.T) {
	svc, store := newTestService(t)

	if err := svc.UploadBundle(testChannel, "100", buildBundleZip(t, metadataV1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.UploadBundle(testChannel, "200", buildBundleZip(t, metadataV2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	outcome, err := svc.RollbackToPrevious(testChannel)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Embedded || outcome.Bundle != "100" {
		t.Fatalf("expected pointer at bundle 100, got %+v", outcome)
	}

	pointerPath := "updates/app-ios/1.0.0/" + outcome.Timestamp + "/rollback"
	data, _, err := store.ReadObject(pointerPath)
	if err != nil {
		t.Fatalf("expected pointer object: %v", err)
	}
	if string(data) != "100" {
		t.Fatalf("expected pointer body 100, got %s", data)
	}
}

func TestRollbackToPreviousSingleBundleWritesEmbeddedMarker(t *testing.T) {
	svc, _ := newTestService(t)

	if err := svc.UploadBundle(testChannel, "100", buildBundleZip(t, metadataV1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	outcome, err := svc.RollbackToPrevious(testChannel)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !outcome.Embedded {
		t.Fatalf("expected embedded fallback, got %+v", outcome)
	}
}

func TestRollbackToPreviousEmptyChannel(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.RollbackToPrevious(testChannel); !errors.Is(err, engine.ErrNoPreviousUpdate) {
		t.Fatalf("expected ErrNoPreviousUpdate, got %v", err)
	}
}
