// Package server implements the mindarch backend: account auth, per-user
// plan storage, and a generation proxy that keeps API keys server-side.
package server

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mindarch/mindarch/internal/ai"
	"github.com/mindarch/mindarch/internal/logger"
	"github.com/mindarch/mindarch/internal/plan"
)

type Server struct {
	db        *gorm.DB
	auth      *AuthService
	generator ai.Generator
	log       *logger.Logger
	engine    *gin.Engine
}

// New wires the HTTP server. generator may be nil when no API key is
// configured; POST /api/generate then reports the missing configuration.
func New(db *gorm.DB, log *logger.Logger, jwtSecret string, generator ai.Generator) *Server {
	if generator == nil {
		generator = unconfiguredGenerator{}
	}
	s := &Server{
		db:        db,
		auth:      NewAuthService(db, log, jwtSecret),
		generator: generator,
		log:       log.With("component", "server"),
	}
	s.engine = s.buildRouter()
	return s
}

func (s *Server) buildRouter() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(s.log))

	engine.GET("/healthz", s.handleHealthz)

	authGroup := engine.Group("/api/auth")
	{
		authGroup.POST("/signup", s.handleSignUp)
		authGroup.POST("/login", s.handleLogIn)
		authGroup.POST("/logout", requireAuth(s.auth), s.handleLogOut)
		authGroup.GET("/session", requireAuth(s.auth), s.handleSession)
	}

	api := engine.Group("/api", requireAuth(s.auth))
	{
		api.GET("/plan", s.handleGetPlan)
		api.PUT("/plan", s.handlePutPlan)
		api.DELETE("/plan", s.handleDeletePlan)
		api.POST("/generate", s.handleGenerate)
	}
	return engine
}

// Router exposes the handler for tests and custom listeners.
func (s *Server) Router() *gin.Engine {
	return s.engine
}

// Run serves until the listener fails.
func (s *Server) Run(addr string) error {
	s.log.Info("listening", "addr", addr)
	return s.engine.Run(addr)
}

type unconfiguredGenerator struct{}

func (unconfiguredGenerator) Generate(_ context.Context, _ plan.GenerationParams) (*plan.GeneratedSchedule, error) {
	return nil, errors.New("generation is not configured on this server")
}
