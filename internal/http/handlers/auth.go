package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/platewise/platewise-backend/internal/http/response"
	"github.com/platewise/platewise-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// POST /auth/register
func (ah *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	user, err := ah.authService.Register(c.Request.Context(), req)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"user": user})
}

// POST /auth/login
func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	token, user, err := ah.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"access_token": token,
		"expires_in":   int(ah.authService.AccessTTL().Seconds()),
		"user":         user,
	})
}
