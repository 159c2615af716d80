package handler

import (
	"errors"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"expo-update-service/controller/respond"
	"expo-update-service/engine"
	"expo-update-service/service/auth_service"
	"expo-update-service/service/upload_service"
	"expo-update-service/storage"
)

// UploadHandler bundle upload and rollback handler
type UploadHandler struct {
	uploadService *upload_service.UploadService
	authService   *auth_service.AuthService
}

// NewUploadHandler create an upload handler instance
func NewUploadHandler(store storage.Storage, cfg engine.Config, authService *auth_service.AuthService) *UploadHandler {
	return &UploadHandler{
		uploadService: upload_service.NewUploadService(store, cfg),
		authService:   authService,
	}
}

// checkAuth verify the bearer token before any mutation
func (h *UploadHandler) checkAuth(c *gin.Context) bool {
	if err := h.authService.VerifyBearer(c.GetHeader("Authorization")); err != nil {
		respond.Unauthorized(c, "Unauthorized token. Please check and provide a valid token.")
		return false
	}
	return true
}

// UploadBundle upload a new update bundle zip
// @Summary Upload an update bundle
// @Description Extracts the uploaded zip and appends its files as a new timestamped bundle in the channel
// @Tags Updates
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "bundle zip file"
// @Param updatesKey formData string true "Updates key"
// @Param platform formData string true "Platform (ios or android)"
// @Param runtimeVersion formData string true "Runtime version"
// @Param bundleTimestamp formData string true "Bundle timestamp (milliseconds)"
// @Success 201 {object} respond.Response
// @Failure 400 {object} respond.Response
// @Failure 401 {object} respond.Response
// @Failure 500 {object} respond.Response
// @Router /api/upload [post]
func (h *UploadHandler) UploadBundle(c *gin.Context) {
	if !h.checkAuth(c) {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		respond.InvalidParam(c, "Missing required fields.")
		return
	}
	updatesKey := c.PostForm("updatesKey")
	platform := c.PostForm("platform")
	runtimeVersion := c.PostForm("runtimeVersion")
	bundleTimestamp := c.PostForm("bundleTimestamp")
	if updatesKey == "" || platform == "" || runtimeVersion == "" || bundleTimestamp == "" {
		respond.InvalidParam(c, "Missing required fields.")
		return
	}
	if platform != "ios" && platform != "android" {
		respond.InvalidParam(c, "Unsupported platform. Expected either ios or android.")
		return
	}
	if _, err := strconv.ParseInt(bundleTimestamp, 10, 64); err != nil {
		respond.InvalidParam(c, "Invalid bundleTimestamp.")
		return
	}
	if !strings.HasSuffix(strings.ToLower(file.Filename), ".zip") {
		respond.InvalidParam(c, "file must be a zip file")
		return
	}

	src, err := file.Open()
	if err != nil {
		respond.ServerError(c, "failed to open file")
		return
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		respond.ServerError(c, "failed to read file")
		return
	}

	ch := engine.Channel{
		UpdatesKey:     updatesKey,
		Platform:       platform,
		RuntimeVersion: runtimeVersion,
	}
	err = h.uploadService.UploadBundle(ch, bundleTimestamp, data)
	switch {
	case errors.Is(err, upload_service.ErrDuplicateUpdate):
		respond.SuccessWithMsg(c, "Update already exists.", nil)
	case errors.Is(err, upload_service.ErrInvalidBundle):
		respond.InvalidParam(c, "Invalid update bundle.")
	case err != nil:
		log.Printf("Failed to upload bundle for key=%s: %v", updatesKey, err)
		respond.ServerError(c, "Internal server error.")
	default:
		respond.Created(c, "Update uploaded successfully.", nil)
	}
}

// rollbackRequest rollback request body
type rollbackRequest struct {
	RollbackType   string `json:"rollbackType"`
	UpdatesKey     string `json:"updatesKey"`
	Platform       string `json:"platform"`
	RuntimeVersion string `json:"runtimeVersion"`
}

// Rollback issue a rollback for a channel
// @Summary Issue a rollback
// @Description Appends a rollback-to-embedded marker or a rollback pointer bundle, resolving the target through the rollback chain
// @Tags Updates
// @Accept json
// @Produce json
// @Param request body rollbackRequest true "rollback request"
// @Success 201 {object} respond.Response
// @Failure 400 {object} respond.Response
// @Failure 401 {object} respond.Response
// @Failure 404 {object} respond.Response
// @Router /api/rollback [post]
func (h *UploadHandler) Rollback(c *gin.Context) {
	if !h.checkAuth(c) {
		return
	}

	var req rollbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.InvalidParam(c, "Invalid request body.")
		return
	}
	if req.UpdatesKey == "" || req.Platform == "" || req.RuntimeVersion == "" || req.RollbackType == "" {
		respond.InvalidParam(c, "Missing required fields.")
		return
	}
	if req.RollbackType != "embedded" && req.RollbackType != "previous" {
		respond.InvalidParam(c, "Invalid rollback type.")
		return
	}

	ch := engine.Channel{
		UpdatesKey:     req.UpdatesKey,
		Platform:       req.Platform,
		RuntimeVersion: req.RuntimeVersion,
	}

	var (
		outcome *upload_service.RollbackOutcome
		err     error
	)
	if req.RollbackType == "embedded" {
		outcome, err = h.uploadService.RollbackToEmbedded(ch)
	} else {
		outcome, err = h.uploadService.RollbackToPrevious(ch)
	}

	switch {
	case errors.Is(err, engine.ErrNoPreviousUpdate):
		respond.NotFound(c, "No previous update available.")
	case err != nil:
		log.Printf("Failed to roll back key=%s: %v", req.UpdatesKey, err)
		respond.ServerError(c, "Internal server error.")
	case outcome.Embedded:
		respond.Created(c, "Rollback to embedded successful.", nil)
	default:
		respond.Created(c, "Rollback to previous update successful.", nil)
	}
}
