package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/sufrah/backend/config"
	"github.com/sufrah/backend/internal/api"
	"github.com/sufrah/backend/internal/middleware"
	"github.com/sufrah/backend/internal/notify"
	"github.com/sufrah/backend/internal/storage"
)

// Server wraps the gin engine and the HTTP listener.
type Server struct {
	cfg    *config.Config
	router *gin.Engine
	http   *http.Server
	hub    *notify.Hub
}

// New builds the full HTTP stack: CORS, API routes, health endpoint.
// redisClient may be nil; rate limiting is then disabled.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, blobs storage.BlobStore) *Server {
	router := gin.Default()
	router.Use(middleware.CORS())

	hub := notify.NewHub()
	api.SetupAPI(router, db, redisClient, blobs, hub, cfg.JWTSecret)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return &Server{
		cfg:    cfg,
		router: router,
		hub:    hub,
	}
}

// Start begins serving and blocks until the listener stops.
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:    s.cfg.ServerHost + ":" + s.cfg.ServerPort,
		Handler: s.router,
	}
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http != nil {
		return s.http.Shutdown(ctx)
	}
	return nil
}
