package handler

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"

	"expo-update-service/controller/respond"
	"expo-update-service/service/auth_service"
)

// AuthHandler auth token handler
type AuthHandler struct {
	authService *auth_service.AuthService
}

// NewAuthHandler create an auth handler instance
func NewAuthHandler(authService *auth_service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// InitializeToken generate the admin token
// @Summary Generate the admin token
// @Description Generates the admin bearer token and stores its digest; refuses if a token already exists
// @Tags Auth
// @Produce json
// @Success 200 {object} respond.Response
// @Failure 403 {object} respond.Response
// @Failure 500 {object} respond.Response
// @Router /api/auth/init [post]
func (h *AuthHandler) InitializeToken(c *gin.Context) {
	token, err := h.authService.InitializeToken()
	switch {
	case errors.Is(err, auth_service.ErrTokenAlreadyInitialized):
		respond.Forbidden(c, "Auth token file has been generated. Please check storage server.")
	case err != nil:
		log.Printf("Failed to initialize auth token: %v", err)
		respond.ServerError(c, "Internal server error.")
	default:
		respond.SuccessWithMsg(c, "Auth Token generated successfully.", gin.H{
			"authToken": token,
		})
	}
}
