package config

import (
	"ChatbotFunil/internal/api/chat"
	chatHandler "ChatbotFunil/internal/api/chat/handler"
	chatService "ChatbotFunil/internal/api/chat/service"
	leadHandler "ChatbotFunil/internal/api/lead/handler"
	leadRepository "ChatbotFunil/internal/api/lead/repository"
	leadService "ChatbotFunil/internal/api/lead/service"
	"ChatbotFunil/internal/funnel"
	"ChatbotFunil/internal/middleware"
	"ChatbotFunil/internal/session"
	"ChatbotFunil/pkg/artifact"
	"ChatbotFunil/pkg/postgres"
	"ChatbotFunil/pkg/redis"
	"ChatbotFunil/pkg/utils"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine      *fiber.App
	db          *sqlx.DB
	log         *logrus.Logger
	middleware  middleware.Middleware
	validator   *validator.Validate
	utils       utils.IUtils
	artifacts   *artifact.Bundle
	redisServer redis.IRedis
	sessions    session.Store
	leadService leadService.ILeadService
	handlers    []handler
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.artifacts == nil {
		return nil, fmt.Errorf("artifacts are required")
	}
	if server.middleware == nil {
		server.middleware = middleware.New(server.log)
	}
	if server.validator == nil {
		server.validator = NewValidator()
	}
	if server.utils == nil {
		server.utils = utils.New()
	}
	if server.sessions == nil {
		server.sessions = session.New(server.log)
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithArtifacts(bundle *artifact.Bundle) ServerOption {
	return func(s *Server) error {
		s.artifacts = bundle
		return nil
	}
}

func WithSessionStore(store session.Store) ServerOption {
	return func(s *Server) error {
		s.sessions = store
		return nil
	}
}

// WithDatabase connects to postgres when DATABASE_URL is set. Without it the
// lead hand-off skips persistence.
func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New()
		if errors.Is(err, postgres.ErrNotConfigured) {
			if s.log != nil {
				s.log.Warn("DATABASE_URL not set, lead persistence disabled")
			}
			return nil
		}
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Lead Domain
	var leadRepo leadRepository.Repository
	if s.db != nil {
		leadRepo = leadRepository.New(s.db, s.log)
	}
	s.leadService = leadService.NewLeadService(s.log, leadRepo, s.redisServer)
	s.leadService.Start(context.Background())
	leadHandlers := leadHandler.New(s.log, s.middleware, s.leadService)

	// Chat Domain
	nlpProcessor := NewNLPProcessor(s.log, s.artifacts)
	machine := funnel.New(s.log, s.artifacts.Dataset)
	chatServices := chatService.NewChatService(s.log, nlpProcessor, machine, s.sessions, s.leadService, s.utils)
	chatHandlers := chatHandler.New(s.log, s.validator, s.middleware, chatServices)

	s.setupHealthCheck()
	s.setupMetrics()
	s.handlers = append(s.handlers, chatHandlers, leadHandlers)
}

// App mounts the middleware and the registered handlers and returns the
// engine without listening.
func (s *Server) App() *fiber.App {
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(s.middleware.NewLoggingMiddleware())

	router := s.engine.Group("/api/v1")
	for _, h := range s.handlers {
		h.Start(router)
	}

	return s.engine
}

func (s *Server) Run() error {
	app := s.App()

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return app.Listen(fmt.Sprintf(":%s", port))
}

// Shutdown stops accepting requests, drains queued leads and closes the
// external connections.
func (s *Server) Shutdown() error {
	err := s.engine.Shutdown()

	if s.leadService != nil {
		s.leadService.Stop()
	}
	if s.redisServer != nil {
		if cerr := s.redisServer.Close(); cerr != nil {
			s.log.Errorf("Failed to close redis client: %v", cerr)
		}
	}
	if s.db != nil {
		if cerr := s.db.Close(); cerr != nil {
			s.log.Errorf("Failed to close database: %v", cerr)
		}
	}

	return err
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.JSON(chat.HealthResponse{
			Status:  "UP",
			Message: "Chatbot server is healthy!",
		})
	})
}

func (s *Server) setupMetrics() {
	s.engine.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
