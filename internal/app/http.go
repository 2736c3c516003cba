package app

import (
	"tictactoe-gateway/internal/auth"
	authhandler "tictactoe-gateway/internal/auth/handler"
	"tictactoe-gateway/internal/config"
	"tictactoe-gateway/internal/engine"
	gamehandler "tictactoe-gateway/internal/game/handler"
	"tictactoe-gateway/internal/middleware"
	"tictactoe-gateway/internal/session"

	"github.com/gin-gonic/gin"
)

func setupHTTP(cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	sessionStore := session.NewRedisStore(infra.Redis.Client)
	authority := auth.NewAuthority(sessionStore)
	engineClient := engine.New(cfg.GameEngineURL, cfg.EngineTimeout)

	authHandler := authhandler.NewHandler(authority)
	gameHandler := gamehandler.NewHandler(engineClient)

	authMiddleware := middleware.NewAuthMiddleware(authority)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())

	// ----------------------------
	// Public Routes
	// ----------------------------

	authHandler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "tictactoe-gateway",
		})
	})

	// ----------------------------
	// Protected Game Routes
	// ----------------------------

	game := router.Group("/api/game")
	game.Use(middleware.GinRequireSession(authMiddleware))

	gameHandler.RegisterRoutes(game)

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, func() error {
		return infra.Redis.Close()
	}, nil
}
