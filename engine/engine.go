package engine

import (
	"time"

	"expo-update-service/storage"
)

// Config immutable engine configuration. Every entry point receives the
// marker file names and folder layout through this value; the engine keeps
// no process-wide state.
type Config struct {
	RootFolder               string
	RollbackFileName         string
	RollbackEmbeddedFileName string
	MetadataFileName         string
	ExpoConfigFileName       string
	SignedURLTTL             time.Duration
}

// WithDefaults fills unset configuration fields.
func (c Config) WithDefaults() Config {
	if c.RootFolder == "" {
		c.RootFolder = "updates"
	}
	if c.RollbackFileName == "" {
		c.RollbackFileName = "rollback"
	}
	if c.RollbackEmbeddedFileName == "" {
		c.RollbackEmbeddedFileName = "rollback_embedded"
	}
	if c.MetadataFileName == "" {
		c.MetadataFileName = "metadata.json"
	}
	if c.ExpoConfigFileName == "" {
		c.ExpoConfigFileName = "expoConfig.json"
	}
	if c.SignedURLTTL == 0 {
		c.SignedURLTTL = 15 * time.Minute
	}
	return c
}

// Channel identifies one logical partition of the bundle store.
type Channel struct {
	UpdatesKey     string
	Platform       string
	RuntimeVersion string
}

// ChannelPrefix returns the object name prefix holding a channel's bundles.
func (c Config) ChannelPrefix(ch Channel) string {
	return c.RootFolder + "/" + ch.UpdatesKey + "-" + ch.Platform + "/" + ch.RuntimeVersion
}

// BundlePrefix returns the object name prefix of one bundle.
func (c Config) BundlePrefix(ch Channel, bundle string) string {
	return c.ChannelPrefix(ch) + "/" + bundle
}

// BundlePath returns the full object name of a file inside a bundle.
func (c Config) BundlePath(ch Channel, bundle, relPath string) string {
	return c.BundlePrefix(ch, bundle) + "/" + relPath
}

// Engine resolves update requests and rollback targets against an object
// store holding timestamped bundles.
type Engine struct {
	store storage.Storage
	cfg   Config
}

// New create an engine over the given store
func New(store storage.Storage, cfg Config) *Engine {
	return &Engine{store: store, cfg: cfg.WithDefaults()}
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// LoadCatalog lists a channel's objects and builds its bundle catalog.
func (e *Engine) LoadCatalog(ch Channel) (*Catalog, error) {
	prefix := e.cfg.ChannelPrefix(ch)
	objects, err := e.store.ListObjects(prefix)
	if err != nil {
		return nil, err
	}
	return BuildCatalog(objects, prefix), nil
}

// ClassifyBundle returns the update kind of one bundle in the catalog.
func (e *Engine) ClassifyBundle(cat *Catalog, bundle string) UpdateKind {
	return Classify(cat.FilesUnder(bundle), e.cfg.RollbackEmbeddedFileName, e.cfg.RollbackFileName)
}
