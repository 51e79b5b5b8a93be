package chatHandler

import (
	chatService "ChatbotFunil/internal/api/chat/service"
	"ChatbotFunil/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ChatHandler struct {
	log         *logrus.Logger
	validator   *validator.Validate
	middleware  middleware.Middleware
	chatService chatService.IChatService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	chatService chatService.IChatService,
) *ChatHandler {
	return &ChatHandler{
		log:         log,
		validator:   validate,
		middleware:  middleware,
		chatService: chatService,
	}
}

func (h *ChatHandler) Start(srv fiber.Router) {
	srv.Post("/chat", h.middleware.NewRateLimiter, h.Chat)
	srv.Get("/session/:userId", h.GetSession)
}
