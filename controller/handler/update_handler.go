package handler

import (
	"log"
	"strconv"

	"github.com/gin-gonic/gin"

	"expo-update-service/controller/respond"
	"expo-update-service/engine"
	"expo-update-service/service/update_service"
	"expo-update-service/storage"
)

// UpdateHandler manifest request handler
type UpdateHandler struct {
	updateService *update_service.UpdateService
}

// NewUpdateHandler create a manifest request handler instance
func NewUpdateHandler(store storage.Storage, cfg engine.Config) *UpdateHandler {
	return &UpdateHandler{
		updateService: update_service.NewUpdateService(store, cfg),
	}
}

// GetManifest resolve and serve an update manifest
// @Summary Resolve an update for a client device
// @Description Resolves the channel's newest bundle to a manifest, a rollBackToEmbedded directive, or noUpdateAvailable, encoded as multipart/mixed
// @Tags Updates
// @Produce mixed
// @Param expo-protocol-version header int false "Protocol version (0 or 1)" default(0)
// @Param expo-platform header string true "Platform (ios or android)"
// @Param expo-runtime-version header string true "Runtime version"
// @Param x-expo-updates-key header string true "Updates key"
// @Param expo-current-update-id header string false "Currently installed update id"
// @Param expo-embedded-update-id header string false "Embedded update id"
// @Success 200 {string} string "multipart/mixed body"
// @Failure 400 {object} respond.Response
// @Failure 404 {object} respond.Response
// @Router /api/manifest [get]
func (h *UpdateHandler) GetManifest(c *gin.Context) {
	protocolVersion := 0
	if raw := c.GetHeader(respond.HeaderProtocolVersion); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || (v != 0 && v != 1) {
			respond.InvalidParam(c, "Unsupported protocol version. Expected either 0 or 1.")
			return
		}
		protocolVersion = v
	}

	platform := headerOrQuery(c, respond.HeaderPlatform, "platform")
	if platform != "ios" && platform != "android" {
		respond.InvalidParam(c, "Unsupported platform. Expected either ios or android.")
		return
	}

	runtimeVersion := headerOrQuery(c, respond.HeaderRuntimeVersion, "runtime-version")
	if runtimeVersion == "" {
		respond.InvalidParam(c, "No runtimeVersion provided.")
		return
	}

	updatesKey := c.GetHeader(respond.HeaderUpdatesKey)
	if updatesKey == "" {
		respond.InvalidParam(c, "No x-expo-updates-key provided.")
		return
	}

	result, err := h.updateService.SendUpdate(update_service.Request{
		Channel: engine.Channel{
			UpdatesKey:     updatesKey,
			Platform:       platform,
			RuntimeVersion: runtimeVersion,
		},
		ProtocolVersion:  protocolVersion,
		CurrentUpdateID:  c.GetHeader(respond.HeaderCurrentUpdateID),
		EmbeddedUpdateID: c.GetHeader(respond.HeaderEmbeddedUpdateID),
	})
	if err != nil {
		log.Printf("Failed to resolve update for key=%s platform=%s runtime=%s: %v",
			updatesKey, platform, runtimeVersion, err)
		respond.NotFound(c, err.Error())
		return
	}

	if result.Manifest != nil {
		if err := respond.WriteManifest(c, protocolVersion, result.Manifest); err != nil {
			log.Printf("Failed to encode manifest: %v", err)
			respond.ServerError(c, "failed to encode manifest")
		}
		return
	}

	if err := respond.WriteDirective(c, protocolVersion, result.Directive); err != nil {
		// noUpdateAvailable has no protocol v0 encoding.
		log.Printf("Failed to encode directive: %v", err)
		respond.ServerError(c, err.Error())
	}
}

// headerOrQuery read a value from a header, falling back to a query param
func headerOrQuery(c *gin.Context, header, query string) string {
	if v := c.GetHeader(header); v != "" {
		return v
	}
	return c.Query(query)
}
