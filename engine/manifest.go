package engine

import (
	"encoding/json"
	"fmt"
	"mime"
	"strings"
	"sync"
	"time"

	"github.com/tidwall/gjson"

	"expo-update-service/tool"
)

// isoTimeLayout millisecond ISO-8601, the format expo clients expect.
const isoTimeLayout = "2006-01-02T15:04:05.000Z"

// defaultLaunchAssetContentType content type used when an asset declares no
// extension (the launch asset).
const defaultLaunchAssetContentType = "application/javascript"

// Metadata a bundle's parsed metadata.json plus its content identity.
// The identity is content-addressed: byte-identical metadata always
// produces the same ID regardless of creation time.
type Metadata struct {
	Raw       []byte
	CreatedAt time.Time
	ID        string // hex SHA-256 digest of Raw
}

// ReadBundleMetadata reads and validates a bundle's metadata object.
func (e *Engine) ReadBundleMetadata(ch Channel, bundle string) (*Metadata, error) {
	path := e.cfg.BundlePath(ch, bundle, e.cfg.MetadataFileName)
	data, info, err := e.store.ReadObject(path)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("error on parsing metadata of bundle %s: invalid json", bundle)
	}
	return &Metadata{Raw: data, CreatedAt: info.CreatedAt, ID: tool.SHA256Hex(data)}, nil
}

// ConvertSHA256HashToUUID regroups the first 32 hex digest characters into
// the 8-4-4-4-12 UUID shape. The mapping is deterministic, not a random
// UUID.
func ConvertSHA256HashToUUID(digest string) string {
	if len(digest) < 32 {
		return digest
	}
	return fmt.Sprintf("%s-%s-%s-%s-%s",
		digest[0:8], digest[8:12], digest[12:16], digest[16:20], digest[20:32])
}

// Asset one entry of a manifest's asset list.
type Asset struct {
	Hash          string `json:"hash"`
	Key           string `json:"key"`
	FileExtension string `json:"fileExtension"`
	ContentType   string `json:"contentType"`
	URL           string `json:"url"`
}

// Manifest the client-facing description of a servable update. Built
// fresh per request, never persisted.
type Manifest struct {
	ID             string            `json:"id"`
	CreatedAt      string            `json:"createdAt"`
	RuntimeVersion string            `json:"runtimeVersion"`
	Assets         []Asset           `json:"assets"`
	LaunchAsset    Asset             `json:"launchAsset"`
	Metadata       map[string]string `json:"metadata"`
	Extra          ManifestExtra     `json:"extra"`
}

// ManifestExtra opaque extra configuration forwarded to the client.
type ManifestExtra struct {
	ExpoClient json.RawMessage `json:"expoClient,omitempty"`
}

// BuildManifest assembles the manifest for a resolved metadata-bearing
// bundle: per-platform asset list with content hashes and signed URLs,
// plus the bundle's expo config. Assets are fetched and hashed
// concurrently but the declared order is preserved in the output.
func (e *Engine) BuildManifest(ch Channel, bundle string, meta *Metadata) (*Manifest, error) {
	platformMeta := gjson.GetBytes(meta.Raw, "fileMetadata."+ch.Platform)
	if !platformMeta.Exists() {
		return nil, fmt.Errorf("no file metadata for platform %s in bundle %s", ch.Platform, bundle)
	}
	launchPath := platformMeta.Get("bundle").String()
	if launchPath == "" {
		return nil, fmt.Errorf("no launch bundle declared for platform %s in bundle %s", ch.Platform, bundle)
	}

	type assetDecl struct {
		path string
		ext  string
	}
	var decls []assetDecl
	for _, a := range platformMeta.Get("assets").Array() {
		decls = append(decls, assetDecl{
			path: a.Get("path").String(),
			ext:  a.Get("ext").String(),
		})
	}

	// Read-only fan-out; results land at their declared index.
	assets := make([]Asset, len(decls))
	errs := make([]error, len(decls))
	var wg sync.WaitGroup
	for i, decl := range decls {
		wg.Add(1)
		go func(i int, decl assetDecl) {
			defer wg.Done()
			assets[i], errs[i] = e.buildAsset(ch, bundle, decl.path, decl.ext)
		}(i, decl)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	launchAsset, err := e.buildAsset(ch, bundle, launchPath, "")
	if err != nil {
		return nil, err
	}

	expoConfig, err := e.readExpoConfig(ch, bundle)
	if err != nil {
		return nil, err
	}

	if assets == nil {
		assets = []Asset{}
	}
	return &Manifest{
		ID:             ConvertSHA256HashToUUID(meta.ID),
		CreatedAt:      meta.CreatedAt.UTC().Format(isoTimeLayout),
		RuntimeVersion: ch.RuntimeVersion,
		Assets:         assets,
		LaunchAsset:    launchAsset,
		Metadata:       map[string]string{},
		Extra:          ManifestExtra{ExpoClient: expoConfig},
	}, nil
}

// buildAsset fetches one asset, derives its content hash and cache key,
// and signs a download URL. The hash is URL-safe unpadded base64 of the
// SHA-256 digest; the key is a second digest (MD5 hex) of the same bytes.
func (e *Engine) buildAsset(ch Channel, bundle, relPath, ext string) (Asset, error) {
	objectPath := e.cfg.BundlePath(ch, bundle, relPath)
	data, _, err := e.store.ReadObject(objectPath)
	if err != nil {
		return Asset{}, fmt.Errorf("failed to read asset %s: %w", objectPath, err)
	}
	url, err := e.store.SignReadURL(objectPath, e.cfg.SignedURLTTL)
	if err != nil {
		return Asset{}, fmt.Errorf("failed to sign asset url %s: %w", objectPath, err)
	}

	suffix := "bundle"
	contentType := defaultLaunchAssetContentType
	if ext != "" {
		suffix = strings.TrimPrefix(ext, ".")
		contentType = mime.TypeByExtension("." + suffix)
		if contentType == "" {
			contentType = "application/octet-stream"
		}
	}

	return Asset{
		Hash:          tool.SHA256Base64URL(data),
		Key:           tool.MD5Hex(data),
		FileExtension: "." + suffix,
		ContentType:   contentType,
		URL:           url,
	}, nil
}

// readExpoConfig reads a bundle's expo config object as an opaque blob.
func (e *Engine) readExpoConfig(ch Channel, bundle string) (json.RawMessage, error) {
	path := e.cfg.BundlePath(ch, bundle, e.cfg.ExpoConfigFileName)
	data, _, err := e.store.ReadObject(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read expo config of bundle %s: %w", bundle, err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("error on parsing expo config of bundle %s: invalid json", bundle)
	}
	return json.RawMessage(data), nil
}
