package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"expo-update-service/storage"
)

func TestConvertSHA256HashToUUID(t *testing.T) {
	digest := "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"
	want := "01234567-89ab-cdef-0123-456789abcdef"
	if got := ConvertSHA256HashToUUID(digest); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestConvertSHA256HashToUUIDShortInput(t *testing.T) {
	if got := ConvertSHA256HashToUUID("abc"); got != "abc" {
		t.Fatalf("expected short input returned unchanged, got %s", got)
	}
}

func TestReadBundleMetadataIdentityIsContentAddressed(t *testing.T) {
	e, store := newTestEngine(t)
	cfg := e.Config()
	metadata := []byte(`{"version":0,"fileMetadata":{"ios":{"bundle":"bundles/ios.js","assets":[]}}}`)

	// Same bytes at two different creation times.
	store.WriteObjectAt(cfg.BundlePath(testChannel, "100", cfg.MetadataFileName), metadata, "application/json", time.Unix(100, 0))
	store.WriteObjectAt(cfg.BundlePath(testChannel, "200", cfg.MetadataFileName), metadata, "application/json", time.Unix(200, 0))

	a, err := e.ReadBundleMetadata(testChannel, "100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := e.ReadBundleMetadata(testChannel, "200")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.ID != b.ID {
		t.Fatalf("expected identical IDs for identical bytes, got %s and %s", a.ID, b.ID)
	}

	sum := sha256.Sum256(metadata)
	if a.ID != hex.EncodeToString(sum[:]) {
		t.Fatalf("expected hex sha256 of the raw bytes, got %s", a.ID)
	}
}

func TestReadBundleMetadataRejectsInvalidJSON(t *testing.T) {
	e, store := newTestEngine(t)
	cfg := e.Config()
	store.WriteObject(cfg.BundlePath(testChannel, "100", cfg.MetadataFileName), []byte("{broken"), "application/json")

	if _, err := e.ReadBundleMetadata(testChannel, "100"); err == nil {
		t.Fatalf("expected error for invalid metadata json")
	}
}

// writeFullBundle stores a complete servable bundle with two assets.
func writeFullBundle(t *testing.T, e *Engine, store *storage.MemoryStorage, ts string) []byte {
	t.Helper()
	cfg := e.Config()
	metadata := []byte(`{
		"version": 0,
		"fileMetadata": {
			"ios": {
				"bundle": "bundles/ios.js",
				"assets": [
					{"path": "assets/icon", "ext": "png"},
					{"path": "assets/splash", "ext": "jpg"}
				]
			}
		}
	}`)
	files := map[string][]byte{
		cfg.MetadataFileName:   metadata,
		"bundles/ios.js":       []byte("var app=1;"),
		"assets/icon":          []byte("png-bytes"),
		"assets/splash":        []byte("jpg-bytes"),
		cfg.ExpoConfigFileName: []byte(`{"name":"demo","slug":"demo"}`),
	}
	for rel, data := range files {
		if err := store.WriteObject(cfg.BundlePath(testChannel, ts, rel), data, ""); err != nil {
			t.Fatalf("failed to write %s: %v", rel, err)
		}
	}
	return metadata
}

func TestBuildManifest(t *testing.T) {
	e, store := newTestEngine(t)
	writeFullBundle(t, e, store, "100")

	meta, err := e.ReadBundleMetadata(testChannel, "100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	manifest, err := e.BuildManifest(testChannel, "100", meta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if manifest.ID != ConvertSHA256HashToUUID(meta.ID) {
		t.Fatalf("expected manifest id derived from metadata digest, got %s", manifest.ID)
	}
	if manifest.RuntimeVersion != testChannel.RuntimeVersion {
		t.Fatalf("expected runtime version %s, got %s", testChannel.RuntimeVersion, manifest.RuntimeVersion)
	}

	// Declared asset order is preserved despite the concurrent fetch.
	if len(manifest.Assets) != 2 {
		t.Fatalf("expected 2 assets, got %d", len(manifest.Assets))
	}
	if manifest.Assets[0].FileExtension != ".png" || manifest.Assets[1].FileExtension != ".jpg" {
		t.Fatalf("asset order not preserved: %+v", manifest.Assets)
	}
	if manifest.Assets[0].ContentType != "image/png" {
		t.Fatalf("expected image/png, got %s", manifest.Assets[0].ContentType)
	}

	if manifest.LaunchAsset.FileExtension != ".bundle" {
		t.Fatalf("expected launch asset extension .bundle, got %s", manifest.LaunchAsset.FileExtension)
	}
	if manifest.LaunchAsset.ContentType != "application/javascript" {
		t.Fatalf("expected javascript content type, got %s", manifest.LaunchAsset.ContentType)
	}

	// Hash is URL-safe unpadded base64; the cache key is 32 hex chars.
	if strings.ContainsAny(manifest.LaunchAsset.Hash, "+/=") {
		t.Fatalf("expected url-safe unpadded hash, got %s", manifest.LaunchAsset.Hash)
	}
	if len(manifest.Assets[0].Key) != 32 {
		t.Fatalf("expected 32-char md5 hex key, got %s", manifest.Assets[0].Key)
	}

	// Asset URLs are signed.
	if !strings.Contains(manifest.LaunchAsset.URL, "signature=") || !strings.Contains(manifest.LaunchAsset.URL, "expires=") {
		t.Fatalf("expected signed asset url, got %s", manifest.LaunchAsset.URL)
	}
	if string(manifest.Extra.ExpoClient) != `{"name":"demo","slug":"demo"}` {
		t.Fatalf("unexpected expo config: %s", manifest.Extra.ExpoClient)
	}
}

func TestBuildManifestIsDeterministic(t *testing.T) {
	e, store := newTestEngine(t)
	writeFullBundle(t, e, store, "100")

	meta, err := e.ReadBundleMetadata(testChannel, "100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a, err := e.BuildManifest(testChannel, "100", meta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := e.BuildManifest(testChannel, "100", meta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.ID != b.ID {
		t.Fatalf("expected stable manifest id, got %s and %s", a.ID, b.ID)
	}
	if a.Assets[0].Hash != b.Assets[0].Hash || a.Assets[0].Key != b.Assets[0].Key {
		t.Fatalf("expected stable asset identity across builds")
	}
}

func TestBuildManifestMissingPlatform(t *testing.T) {
	e, store := newTestEngine(t)
	writeFullBundle(t, e, store, "100")

	meta, err := e.ReadBundleMetadata(testChannel, "100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	android := testChannel
	android.Platform = "android"
	if _, err := e.BuildManifest(android, "100", meta); err == nil {
		t.Fatalf("expected error for undeclared platform")
	}
}

func TestBuildManifestMissingExpoConfig(t *testing.T) {
	e, store := newTestEngine(t)
	cfg := e.Config()
	writeNormal(t, e, store, "100")

	meta, err := e.ReadBundleMetadata(testChannel, "100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := e.BuildManifest(testChannel, "100", meta); err == nil {
		t.Fatalf("expected error when %s is absent", cfg.ExpoConfigFileName)
	}
}
