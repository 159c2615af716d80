package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"expo-update-service/controller/respond"
	"expo-update-service/storage"
)

// AssetHandler signed asset download handler
type AssetHandler struct {
	store  storage.Storage
	signer *storage.URLSigner
}

// NewAssetHandler create an asset handler instance
func NewAssetHandler(store storage.Storage, signer *storage.URLSigner) *AssetHandler {
	return &AssetHandler{store: store, signer: signer}
}

// ServeAsset serve a bundle asset through a signed URL
// @Summary Download a bundle asset
// @Description Serves an object after verifying the URL signature and expiry
// @Tags Assets
// @Produce octet-stream
// @Param path path string true "object path"
// @Param expires query int true "expiry (unix seconds)"
// @Param signature query string true "hex HMAC signature"
// @Success 200 {string} string "asset bytes"
// @Failure 403 {object} respond.Response
// @Failure 404 {object} respond.Response
// @Router /assets/{path} [get]
func (h *AssetHandler) ServeAsset(c *gin.Context) {
	objectPath := strings.TrimPrefix(c.Param("path"), "/")
	if objectPath == "" {
		respond.NotFound(c, "asset not found")
		return
	}

	expires, err := strconv.ParseInt(c.Query("expires"), 10, 64)
	if err != nil {
		respond.Forbidden(c, "invalid signature")
		return
	}
	if err := h.signer.Verify(objectPath, expires, c.Query("signature")); err != nil {
		respond.Forbidden(c, err.Error())
		return
	}

	data, info, err := h.store.ReadObject(objectPath)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.NotFound(c, "asset not found")
			return
		}
		respond.ServerError(c, "failed to read asset")
		return
	}

	contentType := info.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Data(http.StatusOK, contentType, data)
}
