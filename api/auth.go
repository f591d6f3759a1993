package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/Domenick1991/metroticket/internal/auth"
	"github.com/Domenick1991/metroticket/internal/domain"
	"github.com/gin-gonic/gin"
)

type Authenticator interface {
	Login(ctx context.Context, userID, password string) (*auth.Session, error)
	User(userID string) (domain.User, bool)
}

type AuthHandler struct {
	auth Authenticator
}

type loginRequest struct {
	ID       string `json:"id"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string      `json:"token"`
	TokenType string      `json:"token_type"`
	ExpiresAt string      `json:"expires_at"`
	User      domain.User `json:"user"`
}

func NewAuthHandler(auth Authenticator) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) RegisterPublic(router *gin.RouterGroup, limit ...gin.HandlerFunc) {
	handlers := append(append([]gin.HandlerFunc{}, limit...), h.login)
	router.POST("/login", handlers...)
}

func (h *AuthHandler) RegisterProtected(router *gin.RouterGroup) {
	router.GET("/me", h.me)
}

func (h *AuthHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req.ID = strings.TrimSpace(req.ID)
	if req.ID == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id and password are required"})
		return
	}

	session, err := h.auth.Login(c.Request.Context(), req.ID, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		Token:     session.Token,
		TokenType: "Bearer",
		ExpiresAt: session.ExpiresAt.Format(time.RFC3339),
		User:      session.User,
	})
}

func (h *AuthHandler) me(c *gin.Context) {
	user, ok := h.auth.User(currentUserID(c))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}
