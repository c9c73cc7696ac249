package handler

import (
	"github.com/gin-gonic/gin"
	identityapp "github.com/tornado/portal/internal/application/identity"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *identityapp.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login verifies credentials and issues an access token
func (h *AuthHandler) Login(c *gin.Context) {
	var req identityapp.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Me returns the acting user's resolved context
func (h *AuthHandler) Me(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	h.Success(c, gin.H{
		"user_id":     actor.UserID,
		"role":        actor.Role.String(),
		"partner_id":  actor.PartnerID,
		"permissions": actor.Role.Permissions(),
	})
}
