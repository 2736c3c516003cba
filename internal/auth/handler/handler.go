package handler

import (
	"errors"
	"net/http"

	"tictactoe-gateway/internal/auth"
	"tictactoe-gateway/internal/logger"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authority *auth.Authority
}

func NewHandler(authority *auth.Authority) *Handler {
	return &Handler{authority: authority}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	grp := r.Group("/api/auth")
	grp.POST("/login", h.login)
	grp.GET("/verify/:sessionId", h.verify)
	grp.POST("/logout/:sessionId", h.logout)
}

type loginRequest struct {
	Username string `json:"username"`
}

type loginResponse struct {
	Success   bool          `json:"success"`
	User      auth.Identity `json:"user"`
	SessionID string        `json:"sessionId"`
	Message   string        `json:"message"`
}

type verifyResponse struct {
	Success bool          `json:"success"`
	User    auth.Identity `json:"user"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username is required"})
		return
	}

	sess, err := h.authority.Login(c.Request.Context(), req.Username)
	if err != nil {
		if auth.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("login failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		Success: true,
		User: auth.Identity{
			UserID:   sess.UserID,
			Username: sess.Username,
		},
		SessionID: sess.SessionID,
		Message:   "Login successful",
	})
}

func (h *Handler) verify(c *gin.Context) {
	identity, err := h.authority.Verify(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		if errors.Is(err, auth.ErrSessionNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			return
		}
		logger.Error("session verification failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Session verification failed"})
		return
	}

	c.JSON(http.StatusOK, verifyResponse{
		Success: true,
		User:    *identity,
	})
}

// logout always answers 200 on success, even for sessions that were never
// issued or are already gone.
func (h *Handler) logout(c *gin.Context) {
	if err := h.authority.Logout(c.Request.Context(), c.Param("sessionId")); err != nil {
		logger.Error("logout failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out successfully",
	})
}
