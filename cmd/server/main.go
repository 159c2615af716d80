package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"expo-update-service/conf"
	"expo-update-service/controller"
	"expo-update-service/engine"
	"expo-update-service/storage"
)

var ENV string

func init() {
	flag.StringVar(&ENV, "env", "prod", "Environment: loc/dev/prod")
}

// @title           Expo Update Service API
// @version         1.0
// @description     Expo OTA update server, provides update resolution, bundle upload and rollback functionality
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:7290
// @BasePath  /

// @schemes https http

func main() {
	// Initialize all components
	srv, cleanup := initAll()
	defer cleanup()

	// Start HTTP API service (in goroutine)
	go startServer(srv)
	log.Println("Update service started successfully")

	// Wait for shutdown signal
	waitForShutdown()

	log.Println("Shutting down update service...")

	// Gracefully shutdown HTTP service
	shutdownServer(srv)

	log.Println("Server exited")
}

// initEnv initialize environment
func initEnv() {
	if ENV == "loc" {
		conf.SystemEnvironmentEnum = conf.LocalEnvironmentEnum
	} else if ENV == "dev" {
		conf.SystemEnvironmentEnum = conf.DevEnvironmentEnum
	} else if ENV == "prod" {
		conf.SystemEnvironmentEnum = conf.ProdEnvironmentEnum
	}
	fmt.Printf("Environment: %s\n", ENV)
}

// initAll initialize all components
func initAll() (*http.Server, func()) {
	// Parse command line parameters
	flag.Parse()

	// Set environment
	initEnv()

	// Initialize configuration
	if err := conf.InitConfig(); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}
	log.Printf("Configuration loaded: env=%s, storage=%s, port=%s", ENV, conf.Cfg.Storage.Type, conf.Cfg.Server.Port)

	// Initialize storage backend
	store, err := storage.New(storage.Config{
		Type:       storage.StorageType(conf.Cfg.Storage.Type),
		DataDir:    conf.Cfg.Storage.Pebble.DataDir,
		BasePath:   conf.Cfg.Storage.Local.BasePath,
		PublicURL:  conf.Cfg.Server.PublicURL,
		SigningKey: conf.Cfg.Storage.SigningKey,
	})
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// Build engine configuration from config file
	engineCfg := engine.Config{
		RootFolder:               conf.Cfg.Updates.RootFolder,
		RollbackFileName:         conf.Cfg.Updates.RollbackFileName,
		RollbackEmbeddedFileName: conf.Cfg.Updates.RollbackEmbeddedFileName,
		SignedURLTTL:             time.Duration(conf.Cfg.Storage.SignedURLTTLMins) * time.Minute,
	}.WithDefaults()

	// Signer for verifying asset download URLs
	signer := storage.NewURLSigner(conf.Cfg.Server.PublicURL, conf.Cfg.Storage.SigningKey)

	// Setup update service router
	router := controller.SetupRouter(store, engineCfg, signer)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + conf.Cfg.Server.Port,
		Handler: router,
	}

	// Return server instance and cleanup function
	cleanup := func() {
		if err := store.Close(); err != nil {
			log.Printf("Failed to close storage: %v", err)
		}
	}

	return srv, cleanup
}

// startServer start HTTP server
func startServer(srv *http.Server) {
	log.Printf("Update API service starting on port %s...", conf.Cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// waitForShutdown wait for shutdown signal
func waitForShutdown() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
}

// shutdownServer gracefully shutdown server
func shutdownServer(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
}
