package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"video-catalog-service/internal/auth"
	"video-catalog-service/internal/config"
)

// AuthHandler exchanges the fixed credentials for a bearer token.
type AuthHandler struct {
	authService  *auth.JWTService
	username     string
	passwordHash []byte
}

// NewAuthHandler creates an auth handler. The configured password is hashed
// once at startup so the plaintext never sits in memory longer than needed.
func NewAuthHandler(authService *auth.JWTService, cfg config.AuthConfig) (*AuthHandler, error) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &AuthHandler{
		authService:  authService,
		username:     cfg.Username,
		passwordHash: passwordHash,
	}, nil
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token.
type LoginResponse struct {
	Token string `json:"token"`
}

// Login validates the credentials and returns a time-boxed JWT.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Username != h.username ||
		bcrypt.CompareHashAndPassword(h.passwordHash, []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := h.authService.GenerateToken(req.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Token: token})
}
