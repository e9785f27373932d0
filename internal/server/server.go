package server

import (
	"context"
	"log"
	"net/http"

	"github.com/foodgram/backend/config"
	"github.com/foodgram/backend/internal/database"
	"github.com/foodgram/backend/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server represents the HTTP server
type Server struct {
	cfg    *config.Config
	engine *gin.Engine
	http   *http.Server
	db     *gorm.DB
	redis  *redis.Client
}

// New wires the full application: database, optional Redis and S3, and the
// route tree. Redis and S3 failures are downgraded to warnings; the API
// runs without rate limiting or image uploads.
func New(cfg *config.Config) (*Server, error) {
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.New(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.RunMigrations(db); err != nil {
		return nil, err
	}

	var redisClient *redis.Client
	if cfg.RedisHost != "" || cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClient(cfg)
		if err != nil {
			log.Printf("Redis unavailable, rate limiting disabled: %v", err)
			redisClient = nil
		}
	}

	var s3Config *config.S3Config
	if cfg.S3Bucket != "" {
		s3Config, err = config.NewS3Config(context.Background(), cfg)
		if err != nil {
			log.Printf("S3 unavailable, image uploads disabled: %v", err)
			s3Config = nil
		}
	}

	engine := router.Setup(cfg, db, redisClient, s3Config)

	return &Server{
		cfg:    cfg,
		engine: engine,
		db:     db,
		redis:  redisClient,
	}, nil
}

// Start runs the HTTP server until Shutdown is called.
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:    s.cfg.ServerHost + ":" + s.cfg.ServerPort,
		Handler: s.engine,
	}

	log.Printf("Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http != nil {
		return s.http.Shutdown(ctx)
	}
	return nil
}
