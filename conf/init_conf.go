package conf

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config application configuration structure
type Config struct {
	// Server configuration
	Server ServerConfig

	// Storage configuration
	Storage StorageConfig

	// Updates configuration
	Updates UpdatesConfig
}

// ServerConfig HTTP server configuration
type ServerConfig struct {
	Port           string // Listen port
	PublicURL      string // Public base URL used in signed asset URLs
	SwaggerBaseUrl string // Swagger API base URL
}

// StorageConfig storage configuration
type StorageConfig struct {
	Type   string // Storage backend type: pebble, local, memory
	Local  LocalStorageConfig
	Pebble PebbleStorageConfig

	SigningKey       string // HMAC key for signed asset URLs
	SignedURLTTLMins int    // Signed asset URL lifetime in minutes
}

// LocalStorageConfig local filesystem storage configuration
type LocalStorageConfig struct {
	BasePath string
}

// PebbleStorageConfig PebbleDB storage configuration
type PebbleStorageConfig struct {
	DataDir string
}

// UpdatesConfig update channel configuration
type UpdatesConfig struct {
	RootFolder               string // Root folder prefix for all channels
	RollbackFileName         string // Marker file carrying a rollback pointer
	RollbackEmbeddedFileName string // Marker file for rollback-to-embedded
	AuthFileName             string // Object holding the admin token digest
}

// Cfg global configuration instance
var Cfg *Config

// InitConfig initialize configuration
func InitConfig() error {
	viper.SetConfigFile(GetYaml())
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("Fatal error config file: %s", err)
	}

	// Create configuration instance
	Cfg = &Config{
		Server: ServerConfig{
			Port:           viper.GetString("server.port"),
			PublicURL:      viper.GetString("server.public_url"),
			SwaggerBaseUrl: viper.GetString("server.swagger_base_url"),
		},

		Storage: StorageConfig{
			Type: viper.GetString("storage.type"),
			Local: LocalStorageConfig{
				BasePath: viper.GetString("storage.local.base_path"),
			},
			Pebble: PebbleStorageConfig{
				DataDir: viper.GetString("storage.pebble.data_dir"),
			},
			SigningKey:       viper.GetString("storage.signing_key"),
			SignedURLTTLMins: viper.GetInt("storage.signed_url_ttl_minutes"),
		},

		Updates: UpdatesConfig{
			RootFolder:               viper.GetString("updates.root_folder"),
			RollbackFileName:         viper.GetString("updates.rollback_file_name"),
			RollbackEmbeddedFileName: viper.GetString("updates.rollback_embedded_file_name"),
			AuthFileName:             viper.GetString("updates.auth_file_name"),
		},
	}

	// Set default values
	if Cfg.Server.Port == "" {
		Cfg.Server.Port = "7290"
	}
	if Cfg.Server.PublicURL == "" {
		Cfg.Server.PublicURL = "http://localhost:" + Cfg.Server.Port
	}
	if Cfg.Server.SwaggerBaseUrl == "" {
		Cfg.Server.SwaggerBaseUrl = "localhost:" + Cfg.Server.Port
	}
	if Cfg.Storage.Type == "" {
		Cfg.Storage.Type = "pebble"
	}
	if Cfg.Storage.Local.BasePath == "" {
		Cfg.Storage.Local.BasePath = "./update_data"
	}
	if Cfg.Storage.Pebble.DataDir == "" {
		Cfg.Storage.Pebble.DataDir = "./update_db"
	}
	if Cfg.Storage.SignedURLTTLMins == 0 {
		Cfg.Storage.SignedURLTTLMins = 15
	}
	if Cfg.Updates.RootFolder == "" {
		Cfg.Updates.RootFolder = "updates"
	}
	if Cfg.Updates.RollbackFileName == "" {
		Cfg.Updates.RollbackFileName = "rollback"
	}
	if Cfg.Updates.RollbackEmbeddedFileName == "" {
		Cfg.Updates.RollbackEmbeddedFileName = "rollback_embedded"
	}
	if Cfg.Updates.AuthFileName == "" {
		Cfg.Updates.AuthFileName = "auth_token"
	}

	return nil
}
