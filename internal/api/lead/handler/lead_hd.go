package leadHandler

import (
	contextPkg "ChatbotFunil/pkg/context"
	"ChatbotFunil/pkg/handlerUtil"
	"ChatbotFunil/pkg/log"
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
)

func (h *LeadHandler) GetLeadsByUserID(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing get leads request")

	userID := ctx.Params("userId")
	if userID == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("user ID is required"), ctx.Path())
	}

	leads, err := h.leadService.GetLeadsByUserID(c, userID)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_leads")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
			"leads": leads,
		})
	}
}
