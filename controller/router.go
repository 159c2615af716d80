package controller

import (
	"expo-update-service/conf"
	"expo-update-service/controller/handler"
	"expo-update-service/controller/respond"
	"expo-update-service/docs"
	"expo-update-service/engine"
	"expo-update-service/service/auth_service"
	"expo-update-service/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter setup update service router
func SetupRouter(store storage.Storage, engineCfg engine.Config, signer *storage.URLSigner) *gin.Engine {
	// Set Swagger host from config
	if conf.Cfg.Server.SwaggerBaseUrl != "" {
		docs.SwaggerInfo.Host = conf.Cfg.Server.SwaggerBaseUrl
	}

	// Create Gin engine
	r := gin.Default()

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Allow all origins, can be configured to specific domains
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization", "Accept", "Cache-Control", "X-Requested-With", respond.HeaderProtocolVersion, respond.HeaderPlatform, respond.HeaderRuntimeVersion, respond.HeaderUpdatesKey, respond.HeaderCurrentUpdateID, respond.HeaderEmbeddedUpdateID},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", respond.HeaderProtocolVersion, respond.HeaderSFVVersion},
		AllowCredentials: true,
		MaxAge:           12 * 3600, // 12 hours
	}))

	// Add timing and request id middleware
	r.Use(respond.TimingMiddleware())
	r.Use(respond.RequestIDMiddleware())

	// Create auth service instance
	authService := auth_service.NewAuthService(store, engineCfg.RootFolder, conf.Cfg.Updates.AuthFileName)

	// Create handlers
	updateHandler := handler.NewUpdateHandler(store, engineCfg)
	uploadHandler := handler.NewUploadHandler(store, engineCfg, authService)
	authHandler := handler.NewAuthHandler(authService)
	assetHandler := handler.NewAssetHandler(store, signer)

	// API route group
	api := r.Group("/api")
	{
		// Resolve an update for a client device
		api.GET("/manifest", updateHandler.GetManifest)

		// Upload a new update bundle
		api.POST("/upload", uploadHandler.UploadBundle)

		// Roll a channel back
		api.POST("/rollback", uploadHandler.Rollback)

		// Generate the admin token (one time)
		api.POST("/auth/init", authHandler.InitializeToken)
	}

	// Signed asset downloads
	r.GET("/assets/*path", assetHandler.ServeAsset)

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "expo-update-service",
		})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.InstanceName("swagger")))

	return r
}
