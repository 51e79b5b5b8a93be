package leadHandler

import (
	leadService "ChatbotFunil/internal/api/lead/service"
	"ChatbotFunil/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type LeadHandler struct {
	log         *logrus.Logger
	middleware  middleware.Middleware
	leadService leadService.ILeadService
}

func New(
	log *logrus.Logger,
	middleware middleware.Middleware,
	leadService leadService.ILeadService,
) *LeadHandler {
	return &LeadHandler{
		log:         log,
		middleware:  middleware,
		leadService: leadService,
	}
}

func (h *LeadHandler) Start(srv fiber.Router) {
	leads := srv.Group("/leads")

	leads.Get("/:userId", h.GetLeadsByUserID)
}
