package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"tictactoe-gateway/internal/auth"
	"tictactoe-gateway/internal/engine"
	"tictactoe-gateway/internal/logger"
	"tictactoe-gateway/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Relay is the outbound side of the gateway, satisfied by *engine.Client.
type Relay interface {
	CreateGame(ctx context.Context, identity auth.Identity, gameMode string) (*engine.Response, error)
	JoinGame(ctx context.Context, identity auth.Identity, gameID string) (*engine.Response, error)
	MakeMove(ctx context.Context, identity auth.Identity, gameID string, position int) (*engine.Response, error)
	GetState(ctx context.Context, gameID string) (*engine.Response, error)
	ListGames(ctx context.Context) (*engine.Response, error)
}

type Handler struct {
	relay Relay
}

func NewHandler(relay Relay) *Handler {
	return &Handler{relay: relay}
}

// RegisterRoutes expects a group already behind the session gate.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/create", h.createGame)
	r.POST("/join/:gameId", h.joinGame)
	r.POST("/move/:gameId", h.makeMove)
	r.GET("/state/:gameId", h.getState)
	r.GET("/list", h.listGames)
}

type createGameBody struct {
	GameMode string `json:"gameMode"`
}

type moveBody struct {
	// json.Number keeps the raw token so non-integer and non-numeric
	// positions can be rejected locally instead of forwarded.
	Position json.Number `json:"position"`
}

func (h *Handler) createGame(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session ID required"})
		return
	}

	var body createGameBody
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
	}
	if body.GameMode == "" {
		body.GameMode = "vs_human"
	}

	res, err := h.relay.CreateGame(c.Request.Context(), identity, body.GameMode)
	if err != nil {
		logger.Error("game creation error", map[string]any{"error": err.Error()})
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create game"})
		return
	}

	passthrough(c, res)
}

func (h *Handler) joinGame(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session ID required"})
		return
	}

	res, err := h.relay.JoinGame(c.Request.Context(), identity, c.Param("gameId"))
	if err != nil {
		logger.Error("game join error", map[string]any{"error": err.Error()})
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to join game"})
		return
	}

	passthrough(c, res)
}

func (h *Handler) makeMove(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session ID required"})
		return
	}

	var body moveBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid position. Must be 0-8."})
		return
	}

	position, err := body.Position.Int64()
	if err != nil || position < 0 || position > 8 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid position. Must be 0-8."})
		return
	}

	res, err := h.relay.MakeMove(c.Request.Context(), identity, c.Param("gameId"), int(position))
	if err != nil {
		logger.Error("move error", map[string]any{"error": err.Error()})
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to make move"})
		return
	}

	passthrough(c, res)
}

func (h *Handler) getState(c *gin.Context) {
	res, err := h.relay.GetState(c.Request.Context(), c.Param("gameId"))
	if err != nil {
		logger.Error("get game state error", map[string]any{"error": err.Error()})
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to get game state"})
		return
	}

	passthrough(c, res)
}

func (h *Handler) listGames(c *gin.Context) {
	res, err := h.relay.ListGames(c.Request.Context())
	if err != nil {
		logger.Error("get games list error", map[string]any{"error": err.Error()})
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to get games list"})
		return
	}

	passthrough(c, res)
}

// passthrough relays the engine's status and body unchanged, success or
// structured error alike.
func passthrough(c *gin.Context, res *engine.Response) {
	c.Data(res.Status, res.ContentType, res.Body)
}
